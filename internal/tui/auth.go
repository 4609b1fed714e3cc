package tui

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/LupasteanRaoul/myjob-careercopilot/internal/api"
	"github.com/LupasteanRaoul/myjob-careercopilot/internal/ui"
)

type authModel struct {
	ctx  context.Context
	deps Deps

	registering bool
	fields      []*field
	focus       int
	submitting  bool
	errMsg      string
}

type authDoneMsg struct {
	user *api.User
	err  error
}

func newAuthModel(ctx context.Context, deps Deps) *authModel {
	m := &authModel{ctx: ctx, deps: deps}
	m.buildFields()
	return m
}

func (m *authModel) buildFields() {
	email := &field{label: "Email"}
	password := &field{label: "Password", secret: true}
	if m.registering {
		m.fields = []*field{{label: "Name"}, email, password}
	} else {
		m.fields = []*field{email, password}
	}
	m.focus = 0
}

func (m *authModel) Init() tea.Cmd { return nil }

func (m *authModel) capturing() bool { return true }

func (m *authModel) submitCmd() tea.Cmd {
	vals := make([]string, len(m.fields))
	for i, f := range m.fields {
		vals[i] = strings.TrimSpace(f.value)
	}
	registering := m.registering
	return func() tea.Msg {
		if registering {
			user, err := m.deps.Session.Register(m.ctx, vals[0], vals[1], vals[2])
			return authDoneMsg{user: user, err: err}
		}
		user, err := m.deps.Session.Login(m.ctx, vals[0], vals[1])
		return authDoneMsg{user: user, err: err}
	}
}

func (m *authModel) Update(msg tea.Msg) (page, tea.Cmd) {
	switch msg := msg.(type) {
	case authDoneMsg:
		m.submitting = false
		if msg.err != nil {
			m.errMsg = msg.err.Error()
			return m, nil
		}
		return m, func() tea.Msg { return authenticatedMsg{} }

	case tea.KeyMsg:
		if m.submitting {
			return m, nil
		}
		switch msg.Type {
		case tea.KeyTab, tea.KeyDown:
			m.focus = (m.focus + 1) % len(m.fields)
			return m, nil
		case tea.KeyShiftTab, tea.KeyUp:
			m.focus = (m.focus - 1 + len(m.fields)) % len(m.fields)
			return m, nil
		case tea.KeyEnter:
			if m.focus < len(m.fields)-1 {
				m.focus++
				return m, nil
			}
			for _, f := range m.fields {
				if strings.TrimSpace(f.value) == "" {
					m.errMsg = "all fields are required"
					return m, nil
				}
			}
			m.submitting = true
			m.errMsg = ""
			return m, m.submitCmd()
		case tea.KeyCtrlR:
			m.registering = !m.registering
			m.errMsg = ""
			m.buildFields()
			return m, nil
		}
		m.fields[m.focus].handleKey(msg)
		return m, nil
	}
	return m, nil
}

func (m *authModel) View() string {
	title := "Sign in to MyJob"
	hint := "ctrl+r: create an account instead"
	if m.registering {
		title = "Create your MyJob account"
		hint = "ctrl+r: back to sign in"
	}

	var b strings.Builder
	b.WriteString(ui.Heading(ui.IconBriefcase, title) + "\n\n")
	for i, f := range m.fields {
		b.WriteString("  " + f.view(i == m.focus) + "\n")
	}
	b.WriteString("\n")
	if m.submitting {
		b.WriteString("  " + ui.Muted.Render("Signing in…") + "\n")
	}
	if m.errMsg != "" {
		b.WriteString("  " + ui.Bad.Render(ui.IconError+" "+m.errMsg) + "\n")
	}
	b.WriteString("\n  " + ui.Dim.Render("enter: submit   tab: next field   "+hint+"   ctrl+c: quit") + "\n")
	return b.String()
}
