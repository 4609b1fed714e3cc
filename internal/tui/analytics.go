package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/LupasteanRaoul/myjob-careercopilot/internal/api"
	"github.com/LupasteanRaoul/myjob-careercopilot/internal/ui"
)

type analyticsModel struct {
	ctx  context.Context
	deps Deps

	analytics *api.Analytics
	loading   bool
	lastLog   string
}

type analyticsLoadedMsg struct {
	analytics *api.Analytics
	err       error
}

func newAnalyticsModel(ctx context.Context, deps Deps) *analyticsModel {
	return &analyticsModel{ctx: ctx, deps: deps, loading: true}
}

func (m *analyticsModel) Init() tea.Cmd {
	return func() tea.Msg {
		a, err := m.deps.Client.GetAnalytics(m.ctx)
		return analyticsLoadedMsg{analytics: a, err: err}
	}
}

func (m *analyticsModel) capturing() bool { return false }

func (m *analyticsModel) Update(msg tea.Msg) (page, tea.Cmd) {
	switch msg := msg.(type) {
	case analyticsLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.lastLog = "Failed to load analytics: " + msg.err.Error()
			return m, nil
		}
		m.analytics = msg.analytics
		return m, nil
	case tea.KeyMsg:
		if msg.String() == "r" {
			m.loading = true
			return m, m.Init()
		}
	}
	return m, nil
}

func (m *analyticsModel) View() string {
	var b strings.Builder
	b.WriteString("\n" + ui.Heading(ui.IconChart, "Analytics") + "\n\n")

	if m.loading {
		b.WriteString("  Loading…\n")
		return b.String()
	}
	if m.analytics == nil {
		b.WriteString("  " + ui.Bad.Render(m.lastLog) + "\n")
		return b.String()
	}
	a := m.analytics

	b.WriteString("  " + ui.LabelValue("Total applications", a.TotalApplications) + "\n")
	b.WriteString(fmt.Sprintf("  %s %.1f%%   %s %.1f%%   %s %.1f%%\n\n",
		ui.Key.Render("Response rate:"), a.ResponseRate,
		ui.Key.Render("Interview rate:"), a.InterviewRate,
		ui.Key.Render("Offer rate:"), a.OfferRate,
	))

	b.WriteString(ui.H2.Render("  Status breakdown") + "\n")
	maxCount := 1
	for _, s := range a.StatusBreakdown {
		if s.Count > maxCount {
			maxCount = s.Count
		}
	}
	for _, s := range a.StatusBreakdown {
		b.WriteString(fmt.Sprintf("  %-10s %s %d\n", s.Status, ui.ProgressBar(s.Count, maxCount, 24), s.Count))
	}

	b.WriteString("\n" + ui.H2.Render("  Applications per week") + "\n")
	maxWeek := 1
	for _, w := range a.WeeklyApplications {
		if w.Count > maxWeek {
			maxWeek = w.Count
		}
	}
	for _, w := range a.WeeklyApplications {
		b.WriteString(fmt.Sprintf("  %-8s %s %d\n", w.Week, ui.ProgressBar(w.Count, maxWeek, 24), w.Count))
	}

	if len(a.TopCompanies) > 0 {
		b.WriteString("\n" + ui.H2.Render("  Top companies") + "\n")
		for _, c := range a.TopCompanies {
			b.WriteString(fmt.Sprintf("  - %s %s\n", c.Company, ui.Muted.Render(fmt.Sprintf("(%d)", c.Count))))
		}
	}

	if m.lastLog != "" {
		b.WriteString("\n  " + ui.Bad.Render(m.lastLog) + "\n")
	}
	b.WriteString("\n  " + ui.Dim.Render("r: refresh   q: quit") + "\n")
	return b.String()
}
