package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/LupasteanRaoul/myjob-careercopilot/internal/api"
	"github.com/LupasteanRaoul/myjob-careercopilot/internal/gamify"
	"github.com/LupasteanRaoul/myjob-careercopilot/internal/ui"
)

type dashboardModel struct {
	ctx  context.Context
	deps Deps

	width int

	apps      []api.Application
	analytics *api.Analytics

	appsDone      bool
	analyticsDone bool
	loading       bool
	lastLog       string
}

// Applications and analytics load independently; either half renders as soon
// as it lands, a failed half never discards the other.
type dashAppsMsg struct {
	apps []api.Application
	err  error
}

type dashAnalyticsMsg struct {
	analytics *api.Analytics
	err       error
}

func newDashboardModel(ctx context.Context, deps Deps) *dashboardModel {
	return &dashboardModel{ctx: ctx, deps: deps, loading: true}
}

func (m *dashboardModel) Init() tea.Cmd {
	return tea.Batch(m.loadAppsCmd(), m.loadAnalyticsCmd())
}

func (m *dashboardModel) capturing() bool { return false }

func (m *dashboardModel) loadAppsCmd() tea.Cmd {
	return func() tea.Msg {
		apps, err := m.deps.Client.ListApplications(m.ctx)
		return dashAppsMsg{apps: apps, err: err}
	}
}

func (m *dashboardModel) loadAnalyticsCmd() tea.Cmd {
	return func() tea.Msg {
		analytics, err := m.deps.Client.GetAnalytics(m.ctx)
		return dashAnalyticsMsg{analytics: analytics, err: err}
	}
}

func (m *dashboardModel) Update(msg tea.Msg) (page, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	case dashAppsMsg:
		m.appsDone = true
		m.loading = !(m.appsDone && m.analyticsDone)
		if msg.err != nil {
			m.lastLog = "Failed to load applications: " + msg.err.Error()
			return m, nil
		}
		m.apps = msg.apps
		return m, nil
	case dashAnalyticsMsg:
		m.analyticsDone = true
		m.loading = !(m.appsDone && m.analyticsDone)
		if msg.err != nil {
			m.lastLog = "Failed to load analytics: " + msg.err.Error()
			return m, nil
		}
		m.analytics = msg.analytics
		return m, nil
	case tea.KeyMsg:
		if msg.String() == "r" {
			m.appsDone = false
			m.analyticsDone = false
			m.loading = true
			m.lastLog = ""
			return m, tea.Batch(m.loadAppsCmd(), m.loadAnalyticsCmd())
		}
	}
	return m, nil
}

func (m *dashboardModel) View() string {
	user := m.deps.Session.User()
	var b strings.Builder

	name := ""
	if user != nil {
		name = strings.SplitN(user.Name, " ", 2)[0]
	}
	b.WriteString("\n" + ui.Heading(ui.IconBriefcase, "Good to see you, "+name) + "\n")
	b.WriteString(ui.Muted.Render("Your job search command center") + "\n\n")

	if m.loading {
		b.WriteString("Loading…\n")
		return b.String()
	}

	interviews := 0
	offers := 0
	for _, a := range m.apps {
		switch a.Status {
		case api.StatusInterview:
			interviews++
		case api.StatusOffer:
			offers++
		}
	}
	responseRate := 0.0
	followupPending := 0
	if m.analytics != nil {
		responseRate = m.analytics.ResponseRate
		followupPending = m.analytics.FollowupPending
	}

	b.WriteString(fmt.Sprintf("  %s %-4d  %s %-4d  %s %-4d  %s %.1f%%\n\n",
		ui.Key.Render("Total Applied:"), len(m.apps),
		ui.Key.Render("Interviews:"), interviews,
		ui.Key.Render("Offers:"), offers,
		ui.Key.Render("Response Rate:"), responseRate,
	))

	if user != nil {
		have, need := gamify.Progress(user.XP)
		b.WriteString(fmt.Sprintf("  %s Level %d  %s  %d XP (%d to next)\n",
			ui.IconBolt, gamify.LevelForXP(user.XP), ui.ProgressBar(have, need, 30), user.XP, need-have))
		if len(user.Badges) > 0 {
			var parts []string
			for _, code := range user.Badges {
				meta := gamify.BadgeMeta(code)
				parts = append(parts, meta.Icon+" "+meta.Label)
			}
			b.WriteString("  " + ui.Muted.Render(strings.Join(parts, "   ")) + "\n")
		}
		b.WriteString("\n")
	}

	if followupPending > 0 {
		b.WriteString("  " + ui.Warn.Render(fmt.Sprintf("%s %d application(s) waiting on a follow-up — press 6", ui.IconMail, followupPending)) + "\n\n")
	}

	b.WriteString(ui.H2.Render("Recent applications") + "\n")
	recent := m.apps
	if len(recent) > 5 {
		recent = recent[:5]
	}
	if len(recent) == 0 {
		b.WriteString("  " + ui.Muted.Render("(none yet — press 2 to add your first)") + "\n")
	}
	for _, a := range recent {
		b.WriteString(fmt.Sprintf("  - %s @ %s  %s\n", a.Role, a.Company, ui.StatusText(a.Status)))
	}

	if m.lastLog != "" {
		b.WriteString("\n" + ui.Bad.Render(m.lastLog) + "\n")
	}
	b.WriteString("\n" + ui.Dim.Render("r: refresh   q: quit") + "\n")
	return b.String()
}
