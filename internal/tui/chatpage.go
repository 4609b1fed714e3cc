package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/LupasteanRaoul/myjob-careercopilot/internal/api"
	"github.com/LupasteanRaoul/myjob-careercopilot/internal/chat"
	"github.com/LupasteanRaoul/myjob-careercopilot/internal/ui"
)

type chatModel struct {
	ctx  context.Context
	deps Deps
	ctl  *chat.Controller

	width int

	input   *field
	sending bool
	lastLog string

	// interview mode job picker
	jobs       []api.Application
	pickerOpen bool
	pickerIdx  int
	jobLabel   string
}

type chatJobsLoadedMsg struct {
	jobs []api.Application
	err  error
}

type chatReplyMsg struct {
	err error
}

func newChatModel(ctx context.Context, deps Deps, ctl *chat.Controller) *chatModel {
	return &chatModel{ctx: ctx, deps: deps, ctl: ctl, input: &field{label: "You"}}
}

func (m *chatModel) Init() tea.Cmd {
	if m.ctl.Mode() == api.ModeInterview {
		return m.loadJobsCmd()
	}
	return nil
}

func (m *chatModel) capturing() bool { return true }

// loadJobsCmd fetches applications worth interviewing for; rejected and
// ghosted ones are filtered out.
func (m *chatModel) loadJobsCmd() tea.Cmd {
	return func() tea.Msg {
		apps, err := m.deps.Client.ListApplications(m.ctx)
		if err != nil {
			return chatJobsLoadedMsg{err: err}
		}
		var jobs []api.Application
		for _, a := range apps {
			if a.Status == api.StatusRejected || a.Status == api.StatusGhosted {
				continue
			}
			jobs = append(jobs, a)
		}
		return chatJobsLoadedMsg{jobs: jobs}
	}
}

func (m *chatModel) deliverCmd() tea.Cmd {
	return func() tea.Msg {
		return chatReplyMsg{err: m.ctl.Deliver(m.ctx)}
	}
}

func (m *chatModel) Update(msg tea.Msg) (page, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case chatJobsLoadedMsg:
		if msg.err != nil {
			m.lastLog = "Failed to load jobs: " + msg.err.Error()
			return m, nil
		}
		m.jobs = msg.jobs
		return m, nil

	case chatReplyMsg:
		m.sending = false
		if msg.err != nil {
			m.lastLog = "Failed to get AI response: " + msg.err.Error()
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *chatModel) handleKey(msg tea.KeyMsg) (page, tea.Cmd) {
	if m.pickerOpen {
		switch msg.Type {
		case tea.KeyEsc:
			m.pickerOpen = false
		case tea.KeyUp:
			if m.pickerIdx > 0 {
				m.pickerIdx--
			}
		case tea.KeyDown:
			if m.pickerIdx < len(m.jobs)-1 {
				m.pickerIdx++
			}
		case tea.KeyEnter:
			if m.pickerIdx >= 0 && m.pickerIdx < len(m.jobs) {
				job := m.jobs[m.pickerIdx]
				m.ctl.SelectJob(job.ID)
				m.jobLabel = job.Role + " @ " + job.Company
				m.pickerOpen = false
				m.lastLog = ""
			}
		}
		return m, nil
	}

	switch msg.Type {
	case tea.KeyCtrlT:
		// Mode switch wipes the conversation; modes are never mixed.
		if m.ctl.Mode() == api.ModeAssistant {
			m.ctl.SwitchMode(api.ModeInterview)
			m.jobLabel = ""
			return m, m.loadJobsCmd()
		}
		m.ctl.SwitchMode(api.ModeAssistant)
		m.jobLabel = ""
		return m, nil
	case tea.KeyCtrlN:
		m.ctl.Clear()
		m.lastLog = ""
		return m, nil
	case tea.KeyCtrlJ:
		if m.ctl.Mode() == api.ModeInterview {
			m.pickerOpen = true
			m.pickerIdx = 0
		}
		return m, nil
	case tea.KeyEnter:
		if m.sending {
			return m, nil
		}
		staged, err := m.ctl.Stage(m.input.value)
		if err != nil {
			if errors.Is(err, chat.ErrNoJobSelected) {
				m.lastLog = err.Error()
				m.pickerOpen = true
				m.pickerIdx = 0
				return m, nil
			}
			m.lastLog = err.Error()
			return m, nil
		}
		if !staged {
			return m, nil
		}
		m.input.value = ""
		m.sending = true
		m.lastLog = ""
		return m, m.deliverCmd()
	}

	m.input.handleKey(msg)
	return m, nil
}

func (m *chatModel) View() string {
	var b strings.Builder
	mode := m.ctl.Mode()
	if mode == api.ModeInterview {
		b.WriteString("\n" + ui.Heading(ui.IconMic, "Mock Interview") + "\n")
		if m.jobLabel != "" {
			b.WriteString("  " + ui.LabelValue("Practicing for", m.jobLabel) + "\n")
		} else {
			b.WriteString("  " + ui.Warn.Render("No job selected — ctrl+j to pick one") + "\n")
		}
	} else {
		b.WriteString("\n" + ui.Heading(ui.IconChat, "AI Career Assistant") + "\n")
	}
	b.WriteString("\n")

	if m.pickerOpen {
		b.WriteString(ui.H2.Render("  Pick a job to interview for") + "\n")
		if len(m.jobs) == 0 {
			b.WriteString("  " + ui.Muted.Render("(no active applications)") + "\n")
		}
		for i, j := range m.jobs {
			cursor := "  "
			if i == m.pickerIdx {
				cursor = ui.Gold.Render("> ")
			}
			b.WriteString(fmt.Sprintf("  %s%s @ %s\n", cursor, j.Role, j.Company))
		}
		b.WriteString("\n  " + ui.Dim.Render("enter: select   esc: close") + "\n")
		return b.String()
	}

	msgs := m.ctl.Messages()
	if len(msgs) == 0 {
		b.WriteString("  " + ui.Muted.Render("Ask about your search: stats, follow-ups, interview prep…") + "\n")
	}
	wrap := m.width - 12
	if wrap < 30 {
		wrap = 60
	}
	for _, msg := range msgs {
		who := ui.Key.Render("You")
		if msg.Role == chat.RoleAssistant {
			who = ui.Good.Render("AI ")
		}
		b.WriteString("  " + who + " " + wrapText(msg.Content, wrap) + "\n")
	}
	if m.sending {
		b.WriteString("  " + ui.Muted.Render("AI  thinking…") + "\n")
	}

	b.WriteString("\n  " + m.input.view(true) + "\n")
	if m.lastLog != "" {
		b.WriteString("  " + ui.Warn.Render(m.lastLog) + "\n")
	}
	b.WriteString("\n  " + ui.Dim.Render("enter: send   ctrl+t: mode   ctrl+n: new chat   ctrl+j: pick job") + "\n")
	return b.String()
}

// wrapText wraps content onto continuation lines indented under the speaker
// label.
func wrapText(s string, width int) string {
	if width <= 0 {
		return s
	}
	words := strings.Fields(s)
	var lines []string
	cur := ""
	for _, w := range words {
		if cur == "" {
			cur = w
			continue
		}
		if len(cur)+1+len(w) > width {
			lines = append(lines, cur)
			cur = w
			continue
		}
		cur += " " + w
	}
	if cur != "" {
		lines = append(lines, cur)
	}
	return strings.Join(lines, "\n      ")
}
