package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/srivarthinivelu/tender-poc/pkg/model"
	"github.com/srivarthinivelu/tender-poc/pkg/session"
	"github.com/srivarthinivelu/tender-poc/pkg/store"
)

// chromeHeight is the vertical space taken by the header and footer rows.
const chromeHeight = 5

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.helpView()
	}

	var body string
	switch m.sess.Page {
	case session.PageOpportunities:
		body = m.listView()
	case session.PageNew:
		body = m.formView()
	case session.PageDetail:
		body = m.detailView()
	case session.PageSubmit:
		body = m.submitView()
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.headerView(),
		body,
		m.footerView(),
	)
}

// headerView renders the title bar and the page tabs.
func (m Model) headerView() string {
	r := m.theme.Renderer

	title := m.theme.Header.Render("tm")

	var tabs []string
	for i, p := range session.Pages {
		label := fmt.Sprintf("%d %s", i+1, p)
		if p == m.sess.Page {
			tabs = append(tabs, m.theme.PrimaryBold.Render(label))
		} else {
			tabs = append(tabs, m.theme.MutedText.Render(label))
		}
	}

	back := ""
	if m.sess.CanGoBack() {
		back = m.theme.SecondaryText.Render("  [b] back")
	}

	row := title + "  " + strings.Join(tabs, r.NewStyle().Foreground(m.theme.Border).Render(" | ")) + back
	return lipgloss.NewStyle().MaxWidth(m.width).Render(row) + "\n"
}

// footerView renders the status line and the shareable deep link.
func (m Model) footerView() string {
	status := m.statusMsg
	style := m.theme.MutedText
	if m.statusIsError {
		style = m.theme.ErrorText
	}

	link := m.theme.SecondaryText.Render("link: " + m.link.Encode())
	hints := m.theme.MutedText.Render(m.keyHints())

	lines := []string{
		lipgloss.NewStyle().MaxWidth(m.width).Render(style.Render(status)),
		lipgloss.NewStyle().MaxWidth(m.width).Render(link + "   " + hints),
	}
	return "\n" + strings.Join(lines, "\n")
}

func (m Model) keyHints() string {
	switch m.sess.Page {
	case session.PageOpportunities:
		return "[space] select  [enter] open  [n] new  [s] stage  [y] copy link  [?] help  [q] quit"
	case session.PageDetail:
		return "[p] product  [a] attach  [t] submit tender  [b] back  [?] help"
	case session.PageSubmit:
		return "[ctrl+s] submit  [ctrl+x] cancel  [esc] back"
	default:
		return "[?] help"
	}
}

// listView renders the Opportunities page: the record list above a
// pipeline summary line.
func (m Model) listView() string {
	if len(m.doc.Opportunities) == 0 {
		return m.infoBox("No opportunities yet. Press [n] to create the first one.")
	}

	filter := m.stageFilter
	if filter == "" {
		filter = store.StageFilterAll
	}
	filterLine := m.theme.SecondaryText.Render(fmt.Sprintf("Stage: %s (%d shown)", filter, len(m.visible)))

	summary := m.theme.MutedText.Render(fmt.Sprintf(
		"Pipeline: %s total  •  %s weighted  •  %.0f%% mean probability",
		FormatMoney(m.summary.TotalRevenue),
		FormatMoney(m.summary.WeightedRevenue),
		m.summary.MeanProbability,
	))

	return lipgloss.JoinVertical(lipgloss.Left, filterLine, m.list.View(), summary)
}

func (m Model) formView() string {
	if m.form == nil {
		return m.infoBox("Form unavailable")
	}
	return m.form.View()
}

// detailView renders the Opportunity Detail page, with any product or
// attach modal on top.
func (m Model) detailView() string {
	if m.productForm != nil {
		return lipgloss.Place(m.width, m.height-chromeHeight, lipgloss.Center, lipgloss.Center, m.productForm.View())
	}
	if m.attachInput != nil {
		box := m.theme.Renderer.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(m.theme.Primary).
			Padding(1, 2).
			Render("Attach file\n\n" + m.attachInput.View() + "\n\n" +
				m.theme.MutedText.Render("[Enter] Attach   [Esc] Cancel"))
		return lipgloss.Place(m.width, m.height-chromeHeight, lipgloss.Center, lipgloss.Center, box)
	}

	if m.sess.CurrentID == "" {
		return m.infoBox("No tender selected. Pick one on the Opportunities page.")
	}
	if store.GetByID(m.doc, m.sess.CurrentID) == nil {
		return m.infoBox(fmt.Sprintf("Record %s no longer exists.", m.sess.CurrentID))
	}
	return m.viewport.View()
}

// detailContent builds the markdown body for the detail viewport.
func (m Model) detailContent() string {
	opp := store.GetByID(m.doc, m.sess.CurrentID)
	if opp == nil {
		return ""
	}

	var md strings.Builder
	fmt.Fprintf(&md, "# %s — %s\n\n", opp.ID, opp.Name)
	fmt.Fprintf(&md, "**Account:** %s  \n", opp.AccountName)
	fmt.Fprintf(&md, "**Stage:** %s  \n", opp.Stage)
	fmt.Fprintf(&md, "**Probability:** %d%%  \n", opp.Probability)
	fmt.Fprintf(&md, "**Expected revenue:** %s  \n", FormatMoney(opp.ExpectedRevenue))
	if opp.CloseDate != "" {
		fmt.Fprintf(&md, "**Close date:** %s  \n", opp.CloseDate)
	}
	if opp.NextStep != "" {
		fmt.Fprintf(&md, "**Next step:** %s  \n", opp.NextStep)
	}
	if opp.Type != "" {
		fmt.Fprintf(&md, "**Type:** %s  \n", opp.Type)
	}
	if opp.LeadSource != "" {
		fmt.Fprintf(&md, "**Lead source:** %s  \n", opp.LeadSource)
	}
	if opp.MainCompetitors != "" {
		fmt.Fprintf(&md, "**Main competitors:** %s  \n", opp.MainCompetitors)
	}
	if opp.DeliveryInstallationStatus != "" {
		fmt.Fprintf(&md, "**Delivery status:** %s  \n", opp.DeliveryInstallationStatus)
	}
	fmt.Fprintf(&md, "**Created by:** %s  \n", opp.CreatedBy)
	fmt.Fprintf(&md, "**Last modified by:** %s  \n", opp.LastModifiedBy)

	md.WriteString("\n## Products\n\n")
	if len(opp.Products) == 0 {
		md.WriteString("_No products yet. Press `p` to add one._\n")
	} else {
		md.WriteString("| Product | Qty | Unit price | Total | Date |\n")
		md.WriteString("|---|---|---|---|---|\n")
		for _, p := range opp.Products {
			total := float64(p.Quantity) * p.Price
			fmt.Fprintf(&md, "| %s | %d | %s | %s | %s |\n",
				p.Name, p.Quantity, FormatMoney(p.Price), FormatMoney(total), p.Date)
		}
	}

	md.WriteString("\n## Attachments\n\n")
	if len(opp.Attachments) == 0 {
		md.WriteString("_No attachments. Press `a` to attach a file._\n")
	} else {
		for _, a := range opp.Attachments {
			fmt.Fprintf(&md, "- %s (%d bytes, uploaded %s)\n", a.Name, a.Size, a.UploadedOn)
		}
	}

	return renderMarkdown(md.String(), m.viewport.Width)
}

// submitView renders the Submit Tender page.
func (m Model) submitView() string {
	if m.sess.CurrentID == "" {
		return m.infoBox("No tender selected. Pick one on the Opportunities page first.")
	}
	opp := store.GetByID(m.doc, m.sess.CurrentID)
	if opp == nil {
		return m.infoBox(fmt.Sprintf("Record %s no longer exists.", m.sess.CurrentID))
	}

	r := m.theme.Renderer

	var content strings.Builder
	content.WriteString(r.NewStyle().Bold(true).Foreground(m.theme.Primary).
		Render(fmt.Sprintf("Submit Tender: %s", opp.ID)))
	content.WriteString("\n\n")
	fmt.Fprintf(&content, "%s %s\n", m.theme.SecondaryText.Render("Name:"), opp.Name)
	fmt.Fprintf(&content, "%s %s\n", m.theme.SecondaryText.Render("Account:"), opp.AccountName)
	fmt.Fprintf(&content, "%s %s\n", m.theme.SecondaryText.Render("Stage:"),
		r.NewStyle().Foreground(m.theme.StageColor(opp.Stage)).Render(string(opp.Stage)))
	fmt.Fprintf(&content, "%s %s\n", m.theme.SecondaryText.Render("Revenue:"), FormatMoney(opp.ExpectedRevenue))

	if len(opp.Products) > 0 {
		content.WriteString("\nProducts:\n")
		for _, p := range opp.Products {
			fmt.Fprintf(&content, "  %s ×%d @ %s\n", truncate(p.Name, 30), p.Quantity, FormatMoney(p.Price))
		}
	}

	if opp.Stage == model.StageSubmitted {
		content.WriteString("\n")
		content.WriteString(m.theme.Checkbox.Render("Already submitted."))
		content.WriteString(m.theme.MutedText.Render(" Submitting again keeps the same end state."))
		content.WriteString("\n")
	}

	content.WriteString("\nRemarks (discarded after submission):\n")
	content.WriteString(m.remarks.View())

	box := r.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.theme.Primary).
		Padding(1, 2).
		Render(content.String())

	return lipgloss.Place(m.width, m.height-chromeHeight, lipgloss.Center, lipgloss.Center, box)
}

// infoBox renders a centered informational message.
func (m Model) infoBox(msg string) string {
	box := m.theme.Renderer.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.theme.Border).
		Foreground(m.theme.Subtext).
		Padding(1, 3).
		Render(msg)
	return lipgloss.Place(m.width, m.height-chromeHeight, lipgloss.Center, lipgloss.Center, box)
}

const helpMarkdown = "# tm — tender manager\n\n" +
	"## Navigation\n\n" +
	"| Key | Action |\n|---|---|\n" +
	"| 1-4 | Jump to page |\n" +
	"| b / esc | Back |\n" +
	"| y | Copy deep link |\n" +
	"| ? | Toggle this help |\n" +
	"| q / ctrl+c | Quit |\n\n" +
	"## Opportunities\n\n" +
	"| Key | Action |\n|---|---|\n" +
	"| space | Select / clear a record |\n" +
	"| enter / o | Open record detail |\n" +
	"| n | New opportunity |\n" +
	"| s | Cycle stage filter |\n" +
	"| / | Filter by text |\n\n" +
	"## Opportunity Detail\n\n" +
	"| Key | Action |\n|---|---|\n" +
	"| p | Add a product line |\n" +
	"| a | Attach a file |\n" +
	"| t | Go to Submit Tender |\n\n" +
	"## Submit Tender\n\n" +
	"| Key | Action |\n|---|---|\n" +
	"| ctrl+s | Submit |\n" +
	"| ctrl+x | Cancel back to the list |\n"

func (m Model) helpView() string {
	body := renderMarkdown(helpMarkdown, m.width-4)
	return body + "\n" + m.theme.MutedText.Render("Press any key to close")
}

// renderMarkdown renders markdown for the terminal, falling back to the
// raw text when the renderer cannot be built.
func renderMarkdown(md string, width int) string {
	if width <= 0 {
		width = 80
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return out
}
