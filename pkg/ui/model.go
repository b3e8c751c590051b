package ui

import (
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/srivarthinivelu/tender-poc/pkg/analysis"
	"github.com/srivarthinivelu/tender-poc/pkg/config"
	"github.com/srivarthinivelu/tender-poc/pkg/debug"
	"github.com/srivarthinivelu/tender-poc/pkg/model"
	"github.com/srivarthinivelu/tender-poc/pkg/session"
	"github.com/srivarthinivelu/tender-poc/pkg/store"
	"github.com/srivarthinivelu/tender-poc/pkg/watcher"
)

// FileChangedMsg is sent when the data file changes on disk
type FileChangedMsg struct{}

// WatchFileCmd returns a command that waits for file changes and sends FileChangedMsg
func WatchFileCmd(w *watcher.Watcher) tea.Cmd {
	return func() tea.Msg {
		<-w.Changed()
		return FileChangedMsg{}
	}
}

// Stage filter cycle order: sentinel first, then each stage.
func filterCycle() []string {
	cycle := []string{store.StageFilterAll}
	for _, s := range model.Stages {
		cycle = append(cycle, string(s))
	}
	return cycle
}

// Model is the top-level Bubble Tea model for the tender manager.
type Model struct {
	// Data
	st   *store.Store
	cfg  config.Config
	doc  *model.Document
	sess *session.Session

	stageFilter string
	visible     []model.Opportunity
	summary     analysis.PipelineSummary

	// Components
	list        list.Model
	viewport    viewport.Model
	remarks     textarea.Model
	form        *OpportunityForm
	productForm *ProductForm
	attachInput *textinput.Model

	watcher *watcher.Watcher
	theme   Theme

	// startLink is the deep link given on the command line, hydrated on
	// the first pass only.
	startLink session.DeepLink
	// link is the shareable deep link for the visible state.
	link session.DeepLink

	width    int
	height   int
	ready    bool
	showHelp bool

	statusMsg     string
	statusIsError bool

	quitting bool
}

// New builds the initial model. The watcher may be nil when live reload
// is unavailable.
func New(st *store.Store, cfg config.Config, doc *model.Document, link session.DeepLink, w *watcher.Watcher) Model {
	theme := DefaultTheme(lipgloss.DefaultRenderer())

	l := list.New(nil, OpportunityDelegate{Theme: theme}, 0, 0)
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(true)

	vp := viewport.New(0, 0)

	ta := textarea.New()
	ta.Placeholder = "Remarks for the submission desk (not recorded)"
	ta.SetHeight(4)

	stageFilter := cfg.UI.DefaultStageFilter
	if _, ok := model.ParseStage(stageFilter); !ok {
		stageFilter = store.StageFilterAll
	}

	m := Model{
		st:          st,
		cfg:         cfg,
		doc:         doc,
		sess:        session.New(doc),
		stageFilter: stageFilter,
		list:        l,
		viewport:    vp,
		remarks:     ta,
		watcher:     w,
		theme:       theme,
		startLink:   link,
	}
	m.runPass("")
	return m
}

// Init starts the file watcher command when live reload is active.
func (m Model) Init() tea.Cmd {
	if m.watcher != nil {
		return WatchFileCmd(m.watcher)
	}
	return nil
}

// CurrentPage returns the page the session is showing.
func (m Model) CurrentPage() session.Page {
	return m.sess.Page
}

// Link returns the shareable deep link for the visible state.
func (m Model) Link() session.DeepLink {
	return m.link
}

// runPass drives one navigation pass: consume any pending intent, hydrate
// from the deep link once, apply the user's pick, and close the pass.
// An empty pick means no explicit navigation this pass.
func (m *Model) runPass(pick session.Page) {
	m.sess.BeginPass(m.doc, m.startLink)
	m.startLink = session.DeepLink{}
	if pick != "" {
		m.sess.Navigate(pick)
	}
	m.link = m.sess.FinishPass()
	m.syncPage()
}

// syncPage rebuilds page-local component state after navigation or a data
// change.
func (m *Model) syncPage() {
	m.visible = store.FilterByStage(m.doc, m.stageFilter)
	m.sess.SyncSelection(m.visibleIDs())
	m.summary = analysis.Summarize(m.visible)
	m.refreshList()

	switch m.sess.Page {
	case session.PageNew:
		if m.form == nil {
			f := NewOpportunityForm(m.theme)
			f.SetSize(m.width, m.height)
			m.form = &f
		}
	case session.PageDetail:
		m.form = nil
		m.viewport.SetContent(m.detailContent())
		m.viewport.GotoTop()
	case session.PageSubmit:
		m.form = nil
	default:
		m.form = nil
	}
	if m.sess.Page != session.PageDetail {
		m.productForm = nil
		m.attachInput = nil
	}
}

func (m *Model) visibleIDs() []string {
	ids := make([]string, len(m.visible))
	for i, o := range m.visible {
		ids[i] = o.ID
	}
	return ids
}

// refreshList rebuilds the list items from the visible records and the
// session's selection flags, keeping the cursor on the same record when
// it survives the rebuild.
func (m *Model) refreshList() {
	prevID := m.cursorID()

	items := make([]list.Item, len(m.visible))
	cursor := 0
	for i, o := range m.visible {
		items[i] = OpportunityItem{Opp: o, Checked: m.sess.Selection[o.ID]}
		if o.ID == prevID {
			cursor = i
		}
	}
	m.list.SetItems(items)
	if len(items) > 0 {
		m.list.Select(cursor)
	}
}

// cursorID returns the record id under the list cursor, empty when the
// list is empty.
func (m *Model) cursorID() string {
	if item, ok := m.list.SelectedItem().(OpportunityItem); ok {
		return item.Opp.ID
	}
	return ""
}

// toggleSelection flips one checkbox and reconciles the whole flag set
// through the session's single-selection rules.
func (m *Model) toggleSelection(id string) {
	submitted := make(map[string]bool, len(m.sess.Selection))
	for k, v := range m.sess.Selection {
		submitted[k] = v
	}
	submitted[id] = !submitted[id]

	out := m.sess.ApplySelection(m.visibleIDs(), submitted)
	debug.Log("ui: selection -> %q (refresh=%v)", out.SelectedID, out.Refresh)
	m.refreshList()
	m.link = m.sess.Link()
}

// selectAndOpen checks the given record and navigates to its detail page.
func (m *Model) selectAndOpen(id string) {
	submitted := make(map[string]bool, len(m.sess.Selection))
	for k := range m.sess.Selection {
		submitted[k] = false
	}
	submitted[id] = true
	m.sess.ApplySelection(m.visibleIDs(), submitted)
	m.runPass(session.PageDetail)
}

// cycleStageFilter advances the stage quick-filter to the next value.
func (m *Model) cycleStageFilter() {
	cycle := filterCycle()
	next := cycle[0]
	for i, v := range cycle {
		if v == m.stageFilter {
			next = cycle[(i+1)%len(cycle)]
			break
		}
	}
	m.stageFilter = next
	m.syncPage()
}

func (m *Model) setStatus(msg string, isError bool) {
	m.statusMsg = msg
	m.statusIsError = isError
}

// createOpportunity persists the form's record and queues navigation to
// its detail page, mirroring the create-then-open flow.
func (m *Model) createOpportunity() {
	opp, err := m.form.BuildOpportunity(store.NextID(m.doc), m.cfg.Operator)
	if err != nil {
		m.setStatus(err.Error(), true)
		m.form.ClearRequests()
		return
	}
	if err := m.st.Append(m.doc, opp); err != nil {
		m.setStatus(err.Error(), true)
		m.form.ClearRequests()
		return
	}

	m.sess.CurrentID = opp.ID
	m.setStatus(fmt.Sprintf("Created %s", opp.ID), false)
	m.form = nil
	m.sess.SetIntent(session.PageDetail)
	m.runPass("")
}

// submitTender runs the submit transition for the current record.
func (m *Model) submitTender() {
	id := m.sess.CurrentID
	if id == "" {
		m.setStatus("No tender selected to submit", true)
		return
	}
	if err := m.st.SubmitTender(m.doc, id, m.cfg.Operator); err != nil {
		m.setStatus(err.Error(), true)
		return
	}
	// Remarks are intentionally not recorded anywhere.
	m.remarks.Reset()
	m.setStatus(fmt.Sprintf("Submitted %s", id), false)
	m.syncPage()
}

// goBack pops the history stack and forces a fresh pass at the target.
func (m *Model) goBack() {
	link, ok := m.sess.Back()
	if !ok {
		m.setStatus("Nothing to go back to", false)
		return
	}
	m.link = link
	m.runPass("")
}

func (m *Model) copyLink() {
	encoded := m.link.Encode()
	if err := clipboard.WriteAll(encoded); err != nil {
		m.setStatus(fmt.Sprintf("Clipboard unavailable: %v", err), true)
		return
	}
	m.setStatus(fmt.Sprintf("Copied link %s", encoded), false)
}

// reload re-reads the document from disk, keeping session state.
func (m *Model) reload() {
	m.doc = m.st.Load()
	m.syncPage()
	m.setStatus("Data file reloaded", false)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.list.SetSize(msg.Width, msg.Height-chromeHeight)
		m.viewport.Width = msg.Width - 4
		m.viewport.Height = msg.Height - chromeHeight
		m.remarks.SetWidth(msg.Width - 8)
		if m.form != nil {
			m.form.SetSize(msg.Width, msg.Height)
		}
		return m, nil

	case FileChangedMsg:
		m.reload()
		if m.watcher != nil {
			cmds = append(cmds, WatchFileCmd(m.watcher))
		}
		return m, tea.Batch(cmds...)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

// handleKey routes key input to the active component or the page handler.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.quitting = true
		if m.watcher != nil {
			m.watcher.Stop()
		}
		return m, tea.Quit
	}

	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	// Modal components swallow everything except their own exits.
	if m.productForm != nil {
		return m.updateProductForm(msg)
	}
	if m.attachInput != nil {
		return m.updateAttachInput(msg)
	}
	if m.sess.Page == session.PageNew && m.form != nil {
		return m.updateForm(msg)
	}

	// Plain-letter shortcuts stay out of the way while the user is typing
	// into the list filter or the remarks box.
	typing := m.sess.Page == session.PageSubmit ||
		(m.sess.Page == session.PageOpportunities && m.list.FilterState() == list.Filtering)

	switch msg.String() {
	case "esc":
		if m.sess.Page != session.PageOpportunities {
			m.goBack()
			return m, nil
		}
	case "q":
		if !typing && m.sess.Page == session.PageOpportunities {
			m.quitting = true
			if m.watcher != nil {
				m.watcher.Stop()
			}
			return m, tea.Quit
		}
	case "?":
		if !typing {
			m.showHelp = true
			return m, nil
		}
	case "1", "2", "3", "4":
		if !typing {
			idx := int(msg.String()[0] - '1')
			m.runPass(session.Pages[idx])
			return m, nil
		}
	case "b":
		if !typing {
			m.goBack()
			return m, nil
		}
	case "y":
		if !typing {
			m.copyLink()
			return m, nil
		}
	}

	switch m.sess.Page {
	case session.PageOpportunities:
		return m.updateListPage(msg)
	case session.PageDetail:
		return m.updateDetailPage(msg)
	case session.PageSubmit:
		return m.updateSubmitPage(msg)
	}
	return m, nil
}

func (m Model) updateListPage(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.list.FilterState() != list.Filtering {
		switch msg.String() {
		case " ":
			if id := m.cursorID(); id != "" {
				m.toggleSelection(id)
			}
			return m, nil
		case "enter", "o":
			if id := m.cursorID(); id != "" {
				m.selectAndOpen(id)
			}
			return m, nil
		case "n":
			m.runPass(session.PageNew)
			return m, nil
		case "s":
			m.cycleStageFilter()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) updateDetailPage(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "p":
		if m.sess.CurrentID != "" {
			f := NewProductForm(m.theme)
			m.productForm = &f
		}
		return m, nil
	case "a":
		if m.sess.CurrentID != "" {
			ti := textinput.New()
			ti.Placeholder = "Path of the file to attach"
			ti.Width = 60
			ti.Focus()
			m.attachInput = &ti
		}
		return m, nil
	case "t":
		if m.sess.CurrentID != "" {
			m.runPass(session.PageSubmit)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) updateSubmitPage(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+s":
		m.submitTender()
		return m, nil
	case "ctrl+x":
		// Cancel returns to the list through the intent mechanism.
		m.sess.SetIntent(session.PageOpportunities)
		m.runPass("")
		return m, nil
	}

	var cmd tea.Cmd
	if !m.remarks.Focused() {
		cmds := []tea.Cmd{m.remarks.Focus()}
		m.remarks, cmd = m.remarks.Update(msg)
		cmds = append(cmds, cmd)
		return m, tea.Batch(cmds...)
	}
	m.remarks, cmd = m.remarks.Update(msg)
	return m, cmd
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	form, cmd := m.form.Update(msg)
	m.form = &form

	if m.form.IsSaveRequested() {
		m.createOpportunity()
		return m, cmd
	}
	if m.form.IsCancelRequested() {
		m.form = nil
		if m.sess.CanGoBack() {
			m.goBack()
		} else {
			// Deep-linked straight onto the form: nothing to pop, so fall
			// back to the list.
			m.sess.SetIntent(session.PageOpportunities)
			m.runPass("")
		}
		return m, cmd
	}
	return m, cmd
}

func (m Model) updateProductForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	form, cmd := m.productForm.Update(msg)
	m.productForm = &form

	if m.productForm.IsSaveRequested() {
		p, err := m.productForm.BuildProduct()
		if err != nil {
			m.setStatus(err.Error(), true)
			m.productForm.ClearRequests()
			return m, cmd
		}
		if err := m.st.AddProduct(m.doc, m.sess.CurrentID, p); err != nil {
			m.setStatus(err.Error(), true)
			m.productForm.ClearRequests()
			return m, cmd
		}
		m.setStatus(fmt.Sprintf("Added product %q to %s", p.Name, m.sess.CurrentID), false)
		m.productForm = nil
		m.syncPage()
		return m, cmd
	}
	if m.productForm.IsCancelRequested() {
		m.productForm = nil
		return m, cmd
	}
	return m, cmd
}

func (m Model) updateAttachInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		path := m.attachInput.Value()
		m.attachInput = nil
		if path == "" {
			return m, nil
		}
		att, err := m.st.AttachFile(m.doc, m.sess.CurrentID, path)
		if err != nil {
			m.setStatus(err.Error(), true)
			return m, nil
		}
		m.setStatus(fmt.Sprintf("Attached %s (%d bytes)", att.Name, att.Size), false)
		m.syncPage()
		return m, nil
	case "esc":
		m.attachInput = nil
		return m, nil
	}

	var cmd tea.Cmd
	ti, cmd := m.attachInput.Update(msg)
	m.attachInput = &ti
	return m, cmd
}
