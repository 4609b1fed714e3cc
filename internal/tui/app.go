package tui

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/LupasteanRaoul/myjob-careercopilot/internal/chat"
	"github.com/LupasteanRaoul/myjob-careercopilot/internal/session"
	"github.com/LupasteanRaoul/myjob-careercopilot/internal/ui"
)

// page is one screen. Each page owns its data fetching and local state; the
// app model only routes messages and gates everything on the session.
type page interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (page, tea.Cmd)
	View() string
	// capturing reports whether a text field has focus, in which case the
	// app stays out of the way of number-key navigation.
	capturing() bool
}

type appModel struct {
	ctx  context.Context
	deps Deps
	chat *chat.Controller

	width  int
	height int

	initialized bool
	current     page
}

type sessionReadyMsg struct {
	err error
}

// authenticatedMsg is emitted by the auth page after a successful login or
// register so the app can route to the dashboard.
type authenticatedMsg struct{}

func newAppModel(ctx context.Context, deps Deps) appModel {
	return appModel{
		ctx:  ctx,
		deps: deps,
		chat: chat.NewController(deps.Client),
	}
}

func (m appModel) Init() tea.Cmd {
	return func() tea.Msg {
		return sessionReadyMsg{err: m.deps.Session.Initialize(m.ctx)}
	}
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.current != nil {
			var cmd tea.Cmd
			m.current, cmd = m.current.Update(msg)
			return m, cmd
		}
		return m, nil

	case sessionReadyMsg:
		m.initialized = true
		if m.deps.Session.State() == session.StateAuthenticated {
			return m.switchTo(newDashboardModel(m.ctx, m.deps))
		}
		return m.switchTo(newAuthModel(m.ctx, m.deps))

	case authenticatedMsg:
		return m.switchTo(newDashboardModel(m.ctx, m.deps))

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.current != nil && !m.current.capturing() && m.deps.Session.State() == session.StateAuthenticated {
			switch msg.String() {
			case "q":
				return m, tea.Quit
			case "1":
				return m.switchTo(newDashboardModel(m.ctx, m.deps))
			case "2":
				return m.switchTo(newApplicationsModel(m.ctx, m.deps))
			case "3":
				return m.switchTo(newAnalyticsModel(m.ctx, m.deps))
			case "4":
				return m.switchTo(newChatModel(m.ctx, m.deps, m.chat))
			case "5":
				return m.switchTo(newResumeModel(m.ctx, m.deps))
			case "6":
				return m.switchTo(newFollowupsModel(m.ctx, m.deps))
			}
		}
	}

	if m.current != nil {
		var cmd tea.Cmd
		m.current, cmd = m.current.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m appModel) switchTo(p page) (tea.Model, tea.Cmd) {
	m.current = p
	cmds := []tea.Cmd{p.Init()}
	if m.width > 0 {
		resized, cmd := p.Update(tea.WindowSizeMsg{Width: m.width, Height: m.height})
		m.current = resized
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

func (m appModel) View() string {
	if !m.initialized {
		return "MyJob — loading session…\n"
	}
	if m.current == nil {
		return ""
	}
	body := m.current.View()
	if m.deps.Session.State() != session.StateAuthenticated {
		return body
	}
	return m.navBar() + "\n" + body
}

func (m appModel) navBar() string {
	tabs := []string{
		"[1] Dashboard",
		"[2] Applications",
		"[3] Analytics",
		"[4] Chat",
		"[5] Resume",
		"[6] Follow-ups",
	}
	user := m.deps.Session.User()
	who := ""
	if user != nil {
		who = "  " + ui.Muted.Render(user.Name)
	}
	return ui.H2.Render("MyJob") + "  " + ui.Dim.Render(strings.Join(tabs, "  ")) + who
}
