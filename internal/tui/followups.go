package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/LupasteanRaoul/myjob-careercopilot/internal/api"
	"github.com/LupasteanRaoul/myjob-careercopilot/internal/ui"
)

type followupsModel struct {
	ctx  context.Context
	deps Deps

	loading    bool
	generating bool
	candidates []api.Application
	cursor     int
	lastLog    string

	// Draft for the application the cursor was on when generation started.
	draft *api.FollowupDraft
}

type followupsLoadedMsg struct {
	candidates []api.Application
	err        error
}

type followupDraftMsg struct {
	draft *api.FollowupDraft
	err   error
}

type followupSentMsg struct {
	appID string
	err   error
}

func newFollowupsModel(ctx context.Context, deps Deps) *followupsModel {
	return &followupsModel{ctx: ctx, deps: deps, loading: true}
}

func (m *followupsModel) Init() tea.Cmd { return m.loadCmd() }

func (m *followupsModel) capturing() bool { return false }

func (m *followupsModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		candidates, err := m.deps.Client.ListFollowups(m.ctx)
		return followupsLoadedMsg{candidates: candidates, err: err}
	}
}

func (m *followupsModel) generateCmd(appID string) tea.Cmd {
	return func() tea.Msg {
		draft, err := m.deps.Client.GenerateFollowup(m.ctx, appID)
		return followupDraftMsg{draft: draft, err: err}
	}
}

func (m *followupsModel) markSentCmd(appID string) tea.Cmd {
	return func() tea.Msg {
		err := m.deps.Client.MarkFollowupSent(m.ctx, appID)
		return followupSentMsg{appID: appID, err: err}
	}
}

func (m *followupsModel) Update(msg tea.Msg) (page, tea.Cmd) {
	switch msg := msg.(type) {
	case followupsLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.lastLog = "Load failed: " + msg.err.Error()
			return m, nil
		}
		m.candidates = msg.candidates
		if m.cursor >= len(m.candidates) {
			m.cursor = 0
		}
		m.lastLog = ""
		return m, nil

	case followupDraftMsg:
		m.generating = false
		if msg.err != nil {
			m.lastLog = "Generation failed: " + msg.err.Error()
			return m, nil
		}
		m.draft = msg.draft
		m.lastLog = ""
		return m, nil

	case followupSentMsg:
		if msg.err != nil {
			m.lastLog = "Mark sent failed: " + msg.err.Error()
			return m, m.loadCmd()
		}
		m.lastLog = "Follow-up recorded" + " " + ui.IconDone
		return m, nil

	case tea.KeyMsg:
		if m.loading || m.generating {
			return m, nil
		}
		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.candidates)-1 {
				m.cursor++
			}
		case "enter", "g":
			if len(m.candidates) == 0 {
				return m, nil
			}
			m.generating = true
			m.draft = nil
			m.lastLog = ""
			return m, m.generateCmd(m.candidates[m.cursor].ID)
		case "s":
			if len(m.candidates) == 0 {
				return m, nil
			}
			app := m.candidates[m.cursor]
			// Drop the row right away, the server call follows.
			m.candidates = append(m.candidates[:m.cursor:m.cursor], m.candidates[m.cursor+1:]...)
			if m.cursor >= len(m.candidates) && m.cursor > 0 {
				m.cursor--
			}
			if m.draft != nil && m.draft.AppID == app.ID {
				m.draft = nil
			}
			return m, m.markSentCmd(app.ID)
		case "r":
			m.loading = true
			return m, m.loadCmd()
		}
	}
	return m, nil
}

// idleDays reports how long an application has sat without movement.
func idleDays(app api.Application) int {
	stamp := app.UpdatedAt
	if stamp == "" {
		stamp = app.AppliedDate
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, stamp); err == nil {
			return int(time.Since(t).Hours() / 24)
		}
	}
	return 0
}

func (m *followupsModel) View() string {
	var b strings.Builder
	b.WriteString("\n" + ui.Heading(ui.IconMail, "Follow-ups") + "\n\n")

	if m.loading {
		b.WriteString("  " + ui.Muted.Render("Loading candidates…") + "\n")
		return b.String()
	}
	if len(m.candidates) == 0 {
		b.WriteString("  " + ui.Muted.Render("Nothing needs a follow-up right now.") + "\n")
	}

	for i, app := range m.candidates {
		line := fmt.Sprintf("%s at %s  %s",
			app.Role, app.Company, ui.Dim.Render(fmt.Sprintf("(%dd idle)", idleDays(app))))
		if i == m.cursor {
			line = ui.SelectedRow.Render("> " + line)
		} else {
			line = "  " + line
		}
		b.WriteString("  " + line + "\n")
	}

	if m.generating {
		b.WriteString("\n  " + ui.Muted.Render("Drafting follow-up email…") + "\n")
	}
	if m.draft != nil {
		b.WriteString("\n" + ui.H2.Render("  Draft for "+m.draft.Role+" at "+m.draft.Company) + "\n")
		b.WriteString(ui.Panel.Render(wrapText(m.draft.EmailDraft, 76)) + "\n")
	}
	if m.lastLog != "" {
		b.WriteString("\n  " + ui.Warn.Render(m.lastLog) + "\n")
	}
	b.WriteString("\n  " + ui.Dim.Render("enter: generate draft   s: mark sent   r: refresh") + "\n")
	return b.String()
}
