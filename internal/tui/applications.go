package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/LupasteanRaoul/myjob-careercopilot/internal/api"
	"github.com/LupasteanRaoul/myjob-careercopilot/internal/gamify"
	"github.com/LupasteanRaoul/myjob-careercopilot/internal/optimistic"
	"github.com/LupasteanRaoul/myjob-careercopilot/internal/ui"
)

const filterAll = "All"

type appsMode int

const (
	appsModeList appsMode = iota
	appsModeForm
	appsModeConfirmDelete
	appsModeImportURL
	appsModeImportPDF
)

type applicationsModel struct {
	ctx  context.Context
	deps Deps

	width int

	list     *optimistic.List[api.Application]
	loading  bool
	lastLog  string
	selected int

	filterStatus string
	search       *field
	searching    bool

	mode appsMode

	// form state
	editID      string
	formFields  []*field
	formFocus   int
	formStatus  int
	formTech    string
	saving      bool
	deleteID    string
	importField *field
	importing   bool
	fromImport  bool
}

type appsLoadedMsg struct {
	apps []api.Application
	err  error
}

type appCreatedMsg struct {
	tempID string
	app    *api.Application
	err    error
}

type appUpdatedMsg struct {
	id  string
	app *api.Application
	err error
}

type appDeletedMsg struct {
	id  string
	err error
}

// appsReconciledMsg carries the full reload that follows a failed delete.
type appsReconciledMsg struct {
	apps []api.Application
	err  error
}

type appScrapedMsg struct {
	job *api.ScrapedJob
	err error
}

type badgesEarnedMsg struct {
	codes []string
}

type captureRecordedMsg struct {
	err error
}

func newApplicationsModel(ctx context.Context, deps Deps) *applicationsModel {
	return &applicationsModel{
		ctx:          ctx,
		deps:         deps,
		list:         optimistic.NewList(func(a api.Application) string { return a.ID }),
		loading:      true,
		filterStatus: filterAll,
		search:       &field{label: "Search"},
	}
}

func (m *applicationsModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m *applicationsModel) capturing() bool {
	return m.searching || m.mode == appsModeForm || m.mode == appsModeImportURL || m.mode == appsModeImportPDF
}

func (m *applicationsModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		apps, err := m.deps.Client.ListApplications(m.ctx)
		return appsLoadedMsg{apps: apps, err: err}
	}
}

func (m *applicationsModel) reconcileCmd() tea.Cmd {
	return func() tea.Msg {
		apps, err := m.deps.Client.ListApplications(m.ctx)
		return appsReconciledMsg{apps: apps, err: err}
	}
}

// refreshUserCmd re-fetches the user after a mutation so XP and badges stay
// current; newly earned badges get announced in the status line.
func (m *applicationsModel) refreshUserCmd() tea.Cmd {
	return func() tea.Msg {
		earned, err := m.deps.Session.RefreshUser(m.ctx)
		if err != nil || len(earned) == 0 {
			return nil
		}
		return badgesEarnedMsg{codes: earned}
	}
}

func (m *applicationsModel) recordCaptureCmd(app api.Application) tea.Cmd {
	return func() tea.Msg {
		return captureRecordedMsg{err: m.deps.History.Add(m.ctx, app.Company, app.Role, app.URL)}
	}
}

func (m *applicationsModel) openForm(app *api.Application) {
	m.mode = appsModeForm
	m.formFocus = 0
	m.formStatus = 0
	m.formTech = ""
	m.editID = ""
	m.fromImport = false
	m.formFields = []*field{
		{label: "Company"},
		{label: "Role"},
		{label: "Location"},
		{label: "Salary range"},
		{label: "URL"},
		{label: "Notes"},
		{label: "Tech stack (comma separated)"},
	}
	if app != nil {
		m.editID = app.ID
		m.formFields[0].value = app.Company
		m.formFields[1].value = app.Role
		m.formFields[2].value = app.Location
		m.formFields[3].value = app.SalaryRange
		m.formFields[4].value = app.URL
		m.formFields[5].value = app.Notes
		m.formFields[6].value = strings.Join(app.TechStack, ", ")
		for i, s := range api.Statuses {
			if s == app.Status {
				m.formStatus = i
			}
		}
	}
}

func (m *applicationsModel) prefillForm(job *api.ScrapedJob) {
	m.openForm(nil)
	m.fromImport = true
	m.formFields[0].value = job.Company
	m.formFields[1].value = job.Role
	m.formFields[2].value = job.Location
	m.formFields[3].value = job.SalaryRange
	m.formFields[4].value = job.URL
	m.formFields[5].value = job.Notes
	m.formFields[6].value = strings.Join(job.TechStack, ", ")
}

func (m *applicationsModel) formInput() api.ApplicationInput {
	var tech []string
	for _, t := range strings.Split(m.formFields[6].value, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tech = append(tech, t)
		}
	}
	return api.ApplicationInput{
		Company:     strings.TrimSpace(m.formFields[0].value),
		Role:        strings.TrimSpace(m.formFields[1].value),
		Status:      api.Statuses[m.formStatus],
		Location:    strings.TrimSpace(m.formFields[2].value),
		SalaryRange: strings.TrimSpace(m.formFields[3].value),
		URL:         strings.TrimSpace(m.formFields[4].value),
		Notes:       strings.TrimSpace(m.formFields[5].value),
		TechStack:   tech,
	}
}

func (m *applicationsModel) submitForm() tea.Cmd {
	in := m.formInput()
	if err := in.Validate(); err != nil {
		m.lastLog = err.Error()
		return nil
	}
	m.saving = true

	if m.editID != "" {
		// Edits are modal-gated; no placeholder, prior state untouched on
		// failure.
		id := m.editID
		return func() tea.Msg {
			app, err := m.deps.Client.UpdateApplication(m.ctx, id, in)
			return appUpdatedMsg{id: id, app: app, err: err}
		}
	}

	tempID := optimistic.NewTempID()
	staged := api.Application{
		ID:          tempID,
		Company:     in.Company,
		Role:        in.Role,
		Status:      in.Status,
		Location:    in.Location,
		SalaryRange: in.SalaryRange,
		URL:         in.URL,
		Notes:       in.Notes,
		TechStack:   in.TechStack,
	}
	if err := m.list.StageCreate(staged); err != nil {
		m.saving = false
		m.lastLog = err.Error()
		return nil
	}
	return func() tea.Msg {
		app, err := m.deps.Client.CreateApplication(m.ctx, in)
		return appCreatedMsg{tempID: tempID, app: app, err: err}
	}
}

func (m *applicationsModel) visible() []api.Application {
	var out []api.Application
	needle := strings.ToLower(strings.TrimSpace(m.search.value))
	for _, a := range m.list.Items() {
		if m.filterStatus != filterAll && a.Status != m.filterStatus {
			continue
		}
		if needle != "" {
			hay := strings.ToLower(a.Company + " " + a.Role)
			if !strings.Contains(hay, needle) {
				continue
			}
		}
		out = append(out, a)
	}
	return out
}

func (m *applicationsModel) Update(msg tea.Msg) (page, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case appsLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.lastLog = "Failed to load applications: " + msg.err.Error()
			return m, nil
		}
		m.list.Reset(msg.apps)
		m.lastLog = ""
		return m, nil

	case appsReconciledMsg:
		if msg.err != nil {
			m.lastLog = "Reload failed: " + msg.err.Error()
			return m, nil
		}
		m.list.Reset(msg.apps)
		return m, nil

	case appCreatedMsg:
		m.saving = false
		if msg.err != nil {
			m.list.RollbackCreate(msg.tempID)
			m.lastLog = "Failed to save: " + msg.err.Error()
			return m, nil
		}
		m.list.CommitCreate(msg.tempID, *msg.app)
		m.mode = appsModeList
		m.lastLog = fmt.Sprintf("Added %s @ %s! +%d XP", msg.app.Role, msg.app.Company, msg.app.XPEarned)
		cmds := []tea.Cmd{m.refreshUserCmd()}
		if m.fromImport {
			// Imported postings land in the local capture history, same as
			// the capture command.
			m.fromImport = false
			cmds = append(cmds, m.recordCaptureCmd(*msg.app))
		}
		return m, tea.Batch(cmds...)

	case appUpdatedMsg:
		m.saving = false
		if msg.err != nil {
			m.lastLog = "Failed to save: " + msg.err.Error()
			return m, nil
		}
		m.list.Replace(msg.id, *msg.app)
		m.mode = appsModeList
		m.lastLog = "Updated."
		return m, m.refreshUserCmd()

	case appDeletedMsg:
		if msg.err != nil {
			// Ordering is not recoverable locally; reconcile with a full
			// reload instead of reinserting.
			m.lastLog = "Failed to delete: " + msg.err.Error()
			return m, m.reconcileCmd()
		}
		m.lastLog = "Deleted."
		return m, m.refreshUserCmd()

	case appScrapedMsg:
		m.importing = false
		if msg.err != nil {
			m.mode = appsModeList
			m.lastLog = "Could not import: " + msg.err.Error()
			return m, nil
		}
		m.prefillForm(msg.job)
		m.lastLog = "Job imported! Review and save."
		return m, nil

	case captureRecordedMsg:
		if msg.err != nil {
			m.lastLog = "Could not record capture history: " + msg.err.Error()
		}
		return m, nil

	case badgesEarnedMsg:
		var parts []string
		for _, code := range msg.codes {
			meta := gamify.BadgeMeta(code)
			parts = append(parts, meta.Icon+" "+meta.Label)
		}
		m.lastLog = ui.IconTrophy + " New badge earned: " + strings.Join(parts, ", ")
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *applicationsModel) handleKey(msg tea.KeyMsg) (page, tea.Cmd) {
	switch m.mode {
	case appsModeForm:
		return m.handleFormKey(msg)
	case appsModeConfirmDelete:
		switch msg.String() {
		case "y":
			id := m.deleteID
			m.deleteID = ""
			m.mode = appsModeList
			// Removal is trivially reversible via reload; drop it now.
			m.list.Remove(id)
			return m, func() tea.Msg {
				return appDeletedMsg{id: id, err: m.deps.Client.DeleteApplication(m.ctx, id)}
			}
		case "n", "esc":
			m.deleteID = ""
			m.mode = appsModeList
		}
		return m, nil
	case appsModeImportURL, appsModeImportPDF:
		switch msg.Type {
		case tea.KeyEsc:
			m.mode = appsModeList
			return m, nil
		case tea.KeyEnter:
			value := strings.TrimSpace(m.importField.value)
			if value == "" {
				return m, nil
			}
			m.importing = true
			if m.mode == appsModeImportPDF {
				return m, func() tea.Msg {
					content, err := os.ReadFile(value)
					if err != nil {
						return appScrapedMsg{err: fmt.Errorf("read pdf: %w", err)}
					}
					job, err := m.deps.Client.ParsePDF(m.ctx, filepath.Base(value), content)
					return appScrapedMsg{job: job, err: err}
				}
			}
			return m, func() tea.Msg {
				job, err := m.deps.Client.ScrapeJob(m.ctx, value)
				return appScrapedMsg{job: job, err: err}
			}
		}
		m.importField.handleKey(msg)
		return m, nil
	}

	if m.searching {
		switch msg.Type {
		case tea.KeyEsc, tea.KeyEnter:
			m.searching = false
			return m, nil
		}
		m.search.handleKey(msg)
		m.selected = 0
		return m, nil
	}

	switch msg.String() {
	case "up", "k":
		if m.selected > 0 {
			m.selected--
		}
	case "down", "j":
		if m.selected < len(m.visible())-1 {
			m.selected++
		}
	case "a":
		m.openForm(nil)
	case "e":
		vis := m.visible()
		if m.selected >= 0 && m.selected < len(vis) {
			app := vis[m.selected]
			m.openForm(&app)
		}
	case "d":
		vis := m.visible()
		if m.selected >= 0 && m.selected < len(vis) {
			m.deleteID = vis[m.selected].ID
			m.mode = appsModeConfirmDelete
		}
	case "u":
		m.importField = &field{label: "Job posting URL"}
		m.mode = appsModeImportURL
	case "p":
		m.importField = &field{label: "Job posting PDF path"}
		m.mode = appsModeImportPDF
	case "/":
		m.searching = true
	case "f":
		m.filterStatus = nextFilter(m.filterStatus)
		m.selected = 0
	case "r":
		m.loading = true
		m.lastLog = "Refreshing…"
		return m, m.loadCmd()
	}
	return m, nil
}

func nextFilter(cur string) string {
	options := append([]string{filterAll}, api.Statuses...)
	for i, s := range options {
		if s == cur {
			return options[(i+1)%len(options)]
		}
	}
	return filterAll
}

func (m *applicationsModel) handleFormKey(msg tea.KeyMsg) (page, tea.Cmd) {
	if m.saving {
		return m, nil
	}
	// The status selector sits after the text fields in the focus order.
	statusPos := len(m.formFields)
	switch msg.Type {
	case tea.KeyEsc:
		m.mode = appsModeList
		return m, nil
	case tea.KeyTab, tea.KeyDown:
		m.formFocus = (m.formFocus + 1) % (statusPos + 1)
		return m, nil
	case tea.KeyShiftTab, tea.KeyUp:
		m.formFocus = (m.formFocus - 1 + statusPos + 1) % (statusPos + 1)
		return m, nil
	case tea.KeyLeft:
		if m.formFocus == statusPos {
			m.formStatus = (m.formStatus - 1 + len(api.Statuses)) % len(api.Statuses)
		}
		return m, nil
	case tea.KeyRight:
		if m.formFocus == statusPos {
			m.formStatus = (m.formStatus + 1) % len(api.Statuses)
		}
		return m, nil
	case tea.KeyEnter:
		if m.formFocus < statusPos {
			m.formFocus++
			return m, nil
		}
		return m, m.submitForm()
	}
	if m.formFocus < statusPos {
		m.formFields[m.formFocus].handleKey(msg)
	}
	return m, nil
}

func (m *applicationsModel) View() string {
	var b strings.Builder
	b.WriteString("\n" + ui.Heading(ui.IconBriefcase, "Applications") + "\n\n")

	switch m.mode {
	case appsModeForm:
		return b.String() + m.formView()
	case appsModeImportURL, appsModeImportPDF:
		b.WriteString("  " + m.importField.view(true) + "\n\n")
		if m.importing {
			b.WriteString("  " + ui.Muted.Render("Analyzing job posting with AI…") + "\n")
		}
		b.WriteString("  " + ui.Dim.Render("enter: import   esc: cancel") + "\n")
		return b.String()
	}

	b.WriteString("  " + ui.LabelValue("Filter", m.filterStatus) + "   " + m.search.view(m.searching) + "\n\n")

	if m.loading {
		b.WriteString("  Loading…\n")
		return b.String()
	}

	vis := m.visible()
	if m.selected >= len(vis) {
		m.selected = len(vis) - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}

	if len(vis) == 0 {
		b.WriteString("  " + ui.Muted.Render("(no applications match)") + "\n")
	}
	for i, a := range vis {
		cursor := "  "
		if i == m.selected {
			cursor = ui.Gold.Render("> ")
		}
		pending := ""
		if optimistic.IsTempID(a.ID) {
			pending = " " + ui.Muted.Render("(saving…)")
		}
		line := fmt.Sprintf("%s%s @ %s  %s%s", cursor, truncate(a.Role, 32), truncate(a.Company, 24), ui.StatusText(a.Status), pending)
		if a.Location != "" {
			line += "  " + ui.Muted.Render(a.Location)
		}
		b.WriteString(line + "\n")
	}

	if m.mode == appsModeConfirmDelete {
		b.WriteString("\n  " + ui.Warn.Render("Delete this application? (y/n)") + "\n")
	}
	if m.lastLog != "" {
		b.WriteString("\n  " + m.lastLog + "\n")
	}
	b.WriteString("\n  " + ui.Dim.Render("a: add   e: edit   d: delete   u: import URL   p: import PDF   /: search   f: filter   r: refresh") + "\n")
	return b.String()
}

func (m *applicationsModel) formView() string {
	var b strings.Builder
	title := "Add application"
	if m.editID != "" {
		title = "Edit application"
	}
	b.WriteString("  " + ui.H2.Render(title) + "\n\n")
	for i, f := range m.formFields {
		b.WriteString("  " + f.view(i == m.formFocus) + "\n")
	}
	statusFocused := m.formFocus == len(m.formFields)
	marker := " "
	if statusFocused {
		marker = ui.Gold.Render("▌")
	}
	b.WriteString("  " + ui.Key.Render("Status: ") + "◂ " + ui.StatusText(api.Statuses[m.formStatus]) + " ▸" + marker + "\n\n")
	if m.saving {
		b.WriteString("  " + ui.Muted.Render("Saving…") + "\n")
	}
	if m.lastLog != "" {
		b.WriteString("  " + ui.Bad.Render(m.lastLog) + "\n")
	}
	b.WriteString("  " + ui.Dim.Render("enter: next/save   tab: next field   ←/→: status   esc: cancel") + "\n")
	return b.String()
}
