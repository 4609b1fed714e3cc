package tui

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/LupasteanRaoul/myjob-careercopilot/internal/api"
	"github.com/LupasteanRaoul/myjob-careercopilot/internal/session"
	"github.com/LupasteanRaoul/myjob-careercopilot/internal/store"
)

// Deps is everything the pages share. The session store is the single owner
// of auth state; pages read it and never mutate tokens themselves.
type Deps struct {
	Client  *api.Client
	Session *session.Store
	History *store.HistoryRepo
}

func Run(ctx context.Context, deps Deps, out io.Writer) error {
	m := newAppModel(ctx, deps)
	p := tea.NewProgram(m, tea.WithOutput(out), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
