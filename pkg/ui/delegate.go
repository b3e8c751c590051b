package ui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// OpportunityDelegate renders opportunity rows in the list
type OpportunityDelegate struct {
	Theme Theme
}

func (d OpportunityDelegate) Height() int {
	return 1
}

func (d OpportunityDelegate) Spacing() int {
	return 0
}

func (d OpportunityDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd {
	return nil
}

func (d OpportunityDelegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	i, ok := listItem.(OpportunityItem)
	if !ok {
		return
	}

	t := d.Theme
	width := m.Width()
	if width <= 0 {
		width = 80
	}
	// Reduce width by 1 to prevent terminal wrapping on the exact edge
	width = width - 1

	isSelected := index == m.Index()

	// Layout: [cursor] [checkbox] [id] [stage] [title...] [prob] [revenue]
	checkbox := "[ ]"
	if i.Checked {
		checkbox = t.Checkbox.Render("[x]")
	}

	stageStyle := t.Renderer.NewStyle().Foreground(t.StageColor(i.Opp.Stage))
	stage := stageStyle.Render(padRight(string(i.Opp.Stage), 13))

	rightWidth := 0
	var rightParts []string
	if width > 60 {
		rightParts = append(rightParts, t.MutedText.Render(fmt.Sprintf("%4d%%", i.Opp.Probability)))
		rightWidth += 6
		revenue := FormatMoney(i.Opp.ExpectedRevenue)
		rightParts = append(rightParts, t.SecondaryText.Render(fmt.Sprintf("%14s", revenue)))
		rightWidth += 15
	}
	if width > 90 && i.Opp.CloseDate != "" {
		rightParts = append(rightParts, t.MutedText.Render(fmt.Sprintf("%10s", i.Opp.CloseDate)))
		rightWidth += 11
	}

	// cursor(2) + checkbox(4) + id(9) + stage(14)
	leftFixedWidth := 2 + 4 + 9 + 14

	titleWidth := width - leftFixedWidth - rightWidth - 2
	if titleWidth < 10 {
		titleWidth = 10
	}
	title := padRight(truncate(i.Opp.Name, titleWidth), titleWidth)

	cursor := "  "
	if isSelected {
		cursor = t.PrimaryBold.Render("> ")
	}

	id := t.SecondaryText.Render(padRight(i.Opp.ID, 8))

	row := fmt.Sprintf("%s%s %s %s %s", cursor, checkbox, id, stage, title)
	for _, p := range rightParts {
		row += " " + p
	}

	if isSelected {
		row = t.Renderer.NewStyle().Background(t.Highlight).Render(row)
	}

	// Clamp to the list width so long rows never wrap.
	fmt.Fprint(w, lipgloss.NewStyle().MaxWidth(width).Render(row))
}
