package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/srivarthinivelu/tender-poc/pkg/model"
)

// FieldType defines the type of form field
type FieldType int

const (
	FieldText FieldType = iota
	FieldTextArea
	FieldSelect
)

// Field represents a single form field
type Field struct {
	Label    string
	Type     FieldType
	Input    textinput.Model // for text fields
	TextArea textarea.Model  // for textarea fields
	Options  []string        // for select fields
	Selected int             // current selection index for select fields
}

// Fixed option sets for the record form.
func stageOptions() []string {
	opts := make([]string, len(model.Stages))
	for i, s := range model.Stages {
		opts[i] = string(s)
	}
	return opts
}

func typeOptions() []string {
	return []string{"New Business", "Existing Business"}
}

func leadSourceOptions() []string {
	return []string{"Web", "Phone Inquiry", "Partner Referral", "Purchased List", "Other"}
}

func deliveryStatusOptions() []string {
	return []string{"Yet to begin", "In progress", "Completed"}
}

func yesNoOptions() []string {
	return []string{"No", "Yes"}
}

// OpportunityForm collects the fields of a new tender record.
type OpportunityForm struct {
	fields          []Field
	focusedField    int
	width           int
	height          int
	theme           Theme
	saveRequested   bool
	cancelRequested bool
}

// Field indices, matching the order built in NewOpportunityForm.
const (
	fieldName = iota
	fieldAccount
	fieldStage
	fieldProbability
	fieldRevenue
	fieldCloseDate
	fieldNextStep
	fieldType
	fieldLeadSource
	fieldPrivate
	fieldCampaign
	fieldCompetitors
	fieldOrderNumber
	fieldGenerators
	fieldTracking
	fieldDelivery
)

// NewOpportunityForm creates a form with creation defaults.
func NewOpportunityForm(theme Theme) OpportunityForm {
	fields := []Field{
		makeTextField("Name", "", theme),
		makeTextField("Account", "", theme),
		makeSelectField("Stage", string(model.StageQualification), stageOptions(), theme),
		makeTextField("Probability %", "10", theme),
		makeTextField("Expected revenue", "0", theme),
		makeTextField("Close date", "", theme),
		makeTextField("Next step", "", theme),
		makeSelectField("Type", "New Business", typeOptions(), theme),
		makeSelectField("Lead source", "Web", leadSourceOptions(), theme),
		makeSelectField("Private", "No", yesNoOptions(), theme),
		makeTextField("Campaign source", "", theme),
		makeTextField("Main competitors", "", theme),
		makeTextField("Order number", "", theme),
		makeTextField("Current generators", "", theme),
		makeTextField("Tracking number", "", theme),
		makeSelectField("Delivery status", "Yet to begin", deliveryStatusOptions(), theme),
	}

	fields[0].Input.Focus()

	return OpportunityForm{
		fields:       fields,
		focusedField: 0,
		theme:        theme,
	}
}

func makeTextField(label, value string, theme Theme) Field {
	ti := textinput.New()
	ti.SetValue(value)
	ti.CharLimit = 200
	ti.Width = 40

	return Field{
		Label: label,
		Type:  FieldText,
		Input: ti,
	}
}

func makeSelectField(label, value string, options []string, theme Theme) Field {
	selected := 0
	for i, opt := range options {
		if opt == value {
			selected = i
			break
		}
	}

	return Field{
		Label:    label,
		Type:     FieldSelect,
		Options:  options,
		Selected: selected,
	}
}

// Update handles input for the form
func (m OpportunityForm) Update(msg tea.Msg) (OpportunityForm, tea.Cmd) {
	var cmd tea.Cmd
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+s":
			m.saveRequested = true
			return m, nil

		case "esc":
			m.cancelRequested = true
			return m, nil

		case "tab", "down":
			m.fields[m.focusedField] = m.blurField(m.fields[m.focusedField])
			m.focusedField = (m.focusedField + 1) % len(m.fields)
			m.fields[m.focusedField] = m.focusField(m.fields[m.focusedField])
			return m, nil

		case "shift+tab", "up":
			m.fields[m.focusedField] = m.blurField(m.fields[m.focusedField])
			m.focusedField = (m.focusedField - 1 + len(m.fields)) % len(m.fields)
			m.fields[m.focusedField] = m.focusField(m.fields[m.focusedField])
			return m, nil

		case "left":
			if m.fields[m.focusedField].Type == FieldSelect {
				field := &m.fields[m.focusedField]
				field.Selected = (field.Selected - 1 + len(field.Options)) % len(field.Options)
				return m, nil
			}

		case "right":
			if m.fields[m.focusedField].Type == FieldSelect {
				field := &m.fields[m.focusedField]
				field.Selected = (field.Selected + 1) % len(field.Options)
				return m, nil
			}
		}

		// Pass key to focused field
		field := &m.fields[m.focusedField]
		switch field.Type {
		case FieldText:
			field.Input, cmd = field.Input.Update(msg)
			cmds = append(cmds, cmd)
		case FieldTextArea:
			field.TextArea, cmd = field.TextArea.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	return m, tea.Batch(cmds...)
}

func (m OpportunityForm) focusField(field Field) Field {
	switch field.Type {
	case FieldText:
		field.Input.Focus()
	case FieldTextArea:
		field.TextArea.Focus()
	}
	return field
}

func (m OpportunityForm) blurField(field Field) Field {
	switch field.Type {
	case FieldText:
		field.Input.Blur()
	case FieldTextArea:
		field.TextArea.Blur()
	}
	return field
}

func (m OpportunityForm) value(i int) string {
	field := m.fields[i]
	switch field.Type {
	case FieldText:
		return strings.TrimSpace(field.Input.Value())
	case FieldTextArea:
		return strings.TrimSpace(field.TextArea.Value())
	case FieldSelect:
		if field.Selected >= 0 && field.Selected < len(field.Options) {
			return field.Options[field.Selected]
		}
	}
	return ""
}

// SetValue overwrites a field's value, mainly for tests.
func (m *OpportunityForm) SetValue(i int, v string) {
	field := &m.fields[i]
	switch field.Type {
	case FieldText:
		field.Input.SetValue(v)
	case FieldTextArea:
		field.TextArea.SetValue(v)
	case FieldSelect:
		for j, opt := range field.Options {
			if opt == v {
				field.Selected = j
			}
		}
	}
}

// BuildOpportunity assembles a record from the form values. The caller
// supplies the allocated id and the operator recorded as creator.
func (m OpportunityForm) BuildOpportunity(id, operator string) (model.Opportunity, error) {
	name := m.value(fieldName)
	if name == "" {
		return model.Opportunity{}, fmt.Errorf("name is required")
	}

	probability := 0
	if v := m.value(fieldProbability); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			return model.Opportunity{}, fmt.Errorf("probability must be a whole number")
		}
		probability = p
	}

	revenue := 0.0
	if v := m.value(fieldRevenue); v != "" {
		r, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return model.Opportunity{}, fmt.Errorf("expected revenue must be a number")
		}
		revenue = r
	}

	stage, _ := model.ParseStage(m.value(fieldStage))

	opp := model.Opportunity{
		ID:                         id,
		Name:                       name,
		AccountName:                m.value(fieldAccount),
		Private:                    m.value(fieldPrivate) == "Yes",
		ExpectedRevenue:            revenue,
		CloseDate:                  m.value(fieldCloseDate),
		NextStep:                   m.value(fieldNextStep),
		Stage:                      stage,
		Probability:                probability,
		Type:                       m.value(fieldType),
		LeadSource:                 m.value(fieldLeadSource),
		PrimaryCampaignSource:      m.value(fieldCampaign),
		MainCompetitors:            m.value(fieldCompetitors),
		OrderNumber:                m.value(fieldOrderNumber),
		CurrentGenerators:          m.value(fieldGenerators),
		TrackingNumber:             m.value(fieldTracking),
		DeliveryInstallationStatus: m.value(fieldDelivery),
		CreatedBy:                  operator,
		LastModifiedBy:             operator,
		Products:                   []model.Product{},
		Attachments:                []model.Attachment{},
	}
	if err := opp.Validate(); err != nil {
		return model.Opportunity{}, err
	}
	return opp, nil
}

// View renders the form
func (m OpportunityForm) View() string {
	r := m.theme.Renderer

	boxWidth := m.width - 10
	if boxWidth < 60 {
		boxWidth = 60
	}
	if boxWidth > 80 {
		boxWidth = 80
	}

	headerStyle := r.NewStyle().
		Bold(true).
		Foreground(m.theme.Primary)

	var content strings.Builder
	content.WriteString(headerStyle.Render("New Opportunity"))
	content.WriteString("\n\n")

	labelStyle := r.NewStyle().
		Foreground(m.theme.Secondary).
		Width(20).
		Align(lipgloss.Right)

	focusedLabelStyle := r.NewStyle().
		Foreground(m.theme.Primary).
		Bold(true).
		Width(20).
		Align(lipgloss.Right)

	selectStyle := r.NewStyle().
		Foreground(m.theme.Primary)

	for i, field := range m.fields {
		isFocused := i == m.focusedField

		if isFocused {
			content.WriteString(focusedLabelStyle.Render(field.Label + ":"))
		} else {
			content.WriteString(labelStyle.Render(field.Label + ":"))
		}
		content.WriteString(" ")

		switch field.Type {
		case FieldText:
			content.WriteString(field.Input.View())
		case FieldTextArea:
			content.WriteString(field.TextArea.View())
		case FieldSelect:
			val := field.Options[field.Selected]
			if isFocused {
				content.WriteString(selectStyle.Render(fmt.Sprintf("< %s >", val)))
			} else {
				content.WriteString(val)
			}
		}
		content.WriteString("\n")
	}

	content.WriteString("\n")
	subtextStyle := r.NewStyle().
		Foreground(m.theme.Subtext).
		Italic(true)

	instructions := "[Tab] Next field   [Ctrl+S] Create   [Esc] Cancel"
	if m.fields[m.focusedField].Type == FieldSelect {
		instructions = "[←/→] Change   [Tab] Next field   [Ctrl+S] Create   [Esc] Cancel"
	}
	content.WriteString(subtextStyle.Render(instructions))

	boxStyle := r.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.theme.Primary).
		Padding(1, 2).
		Width(boxWidth)

	return boxStyle.Render(content.String())
}

// SetSize sets the form dimensions
func (m *OpportunityForm) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// IsSaveRequested returns true if ctrl+s was pressed
func (m OpportunityForm) IsSaveRequested() bool {
	return m.saveRequested
}

// IsCancelRequested returns true if esc was pressed
func (m OpportunityForm) IsCancelRequested() bool {
	return m.cancelRequested
}

// ClearRequests resets the save/cancel latches after they are handled.
func (m *OpportunityForm) ClearRequests() {
	m.saveRequested = false
	m.cancelRequested = false
}

// ProductForm collects a product line for the detail page.
type ProductForm struct {
	fields          []Field
	focusedField    int
	theme           Theme
	saveRequested   bool
	cancelRequested bool
}

const (
	productFieldName = iota
	productFieldQuantity
	productFieldPrice
	productFieldDate
)

// NewProductForm creates an empty product entry form.
func NewProductForm(theme Theme) ProductForm {
	fields := []Field{
		makeTextField("Product", "", theme),
		makeTextField("Quantity", "1", theme),
		makeTextField("Unit price", "0", theme),
		makeTextField("Date", "", theme),
	}
	fields[0].Input.Focus()

	return ProductForm{fields: fields, theme: theme}
}

// Update handles input for the product form
func (m ProductForm) Update(msg tea.Msg) (ProductForm, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+s", "enter":
			m.saveRequested = true
			return m, nil
		case "esc":
			m.cancelRequested = true
			return m, nil
		case "tab", "down":
			m.fields[m.focusedField].Input.Blur()
			m.focusedField = (m.focusedField + 1) % len(m.fields)
			m.fields[m.focusedField].Input.Focus()
			return m, nil
		case "shift+tab", "up":
			m.fields[m.focusedField].Input.Blur()
			m.focusedField = (m.focusedField - 1 + len(m.fields)) % len(m.fields)
			m.fields[m.focusedField].Input.Focus()
			return m, nil
		}

		m.fields[m.focusedField].Input, cmd = m.fields[m.focusedField].Input.Update(msg)
	}

	return m, cmd
}

// SetValue overwrites a field's value, mainly for tests.
func (m *ProductForm) SetValue(i int, v string) {
	m.fields[i].Input.SetValue(v)
}

// BuildProduct assembles a product line from the form values.
func (m ProductForm) BuildProduct() (model.Product, error) {
	name := strings.TrimSpace(m.fields[productFieldName].Input.Value())
	if name == "" {
		return model.Product{}, fmt.Errorf("product name is required")
	}

	quantity := 0
	if v := strings.TrimSpace(m.fields[productFieldQuantity].Input.Value()); v != "" {
		q, err := strconv.Atoi(v)
		if err != nil {
			return model.Product{}, fmt.Errorf("quantity must be a whole number")
		}
		quantity = q
	}

	price := 0.0
	if v := strings.TrimSpace(m.fields[productFieldPrice].Input.Value()); v != "" {
		p, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return model.Product{}, fmt.Errorf("price must be a number")
		}
		price = p
	}

	if quantity < 0 || price < 0 {
		return model.Product{}, fmt.Errorf("quantity and price must be non-negative")
	}

	return model.Product{
		Name:     name,
		Quantity: quantity,
		Price:    price,
		Date:     strings.TrimSpace(m.fields[productFieldDate].Input.Value()),
	}, nil
}

// View renders the product form
func (m ProductForm) View() string {
	r := m.theme.Renderer

	headerStyle := r.NewStyle().Bold(true).Foreground(m.theme.Primary)
	labelStyle := r.NewStyle().Foreground(m.theme.Secondary).Width(12).Align(lipgloss.Right)
	focusedLabelStyle := r.NewStyle().Foreground(m.theme.Primary).Bold(true).Width(12).Align(lipgloss.Right)

	var content strings.Builder
	content.WriteString(headerStyle.Render("Add Product"))
	content.WriteString("\n\n")

	for i, field := range m.fields {
		if i == m.focusedField {
			content.WriteString(focusedLabelStyle.Render(field.Label + ":"))
		} else {
			content.WriteString(labelStyle.Render(field.Label + ":"))
		}
		content.WriteString(" ")
		content.WriteString(field.Input.View())
		content.WriteString("\n")
	}

	content.WriteString("\n")
	content.WriteString(r.NewStyle().Foreground(m.theme.Subtext).Italic(true).
		Render("[Enter] Add   [Esc] Cancel"))

	boxStyle := r.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.theme.Primary).
		Padding(1, 2)

	return boxStyle.Render(content.String())
}

// IsSaveRequested returns true if the form was confirmed
func (m ProductForm) IsSaveRequested() bool {
	return m.saveRequested
}

// IsCancelRequested returns true if esc was pressed
func (m ProductForm) IsCancelRequested() bool {
	return m.cancelRequested
}

// ClearRequests resets the save/cancel latches after they are handled.
func (m *ProductForm) ClearRequests() {
	m.saveRequested = false
	m.cancelRequested = false
}
