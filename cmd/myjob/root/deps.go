package root

import (
	"context"
	"database/sql"
	"errors"

	"github.com/LupasteanRaoul/myjob-careercopilot/internal/api"
	"github.com/LupasteanRaoul/myjob-careercopilot/internal/config"
	"github.com/LupasteanRaoul/myjob-careercopilot/internal/session"
	"github.com/LupasteanRaoul/myjob-careercopilot/internal/store"
)

// appDeps is the shared wiring every command needs: config, local sqlite,
// the backend client, and the session store built on top of them.
type appDeps struct {
	cfg     *config.Config
	db      *sql.DB
	client  *api.Client
	session *session.Store
	creds   *store.CredentialsRepo
	history *store.HistoryRepo
}

func openDeps(ctx context.Context) (*appDeps, func(), error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}
	path, err := store.ResolveDBPath(cfg.DBPath)
	if err != nil {
		return nil, nil, err
	}
	db, err := store.Open(ctx, path)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		_ = db.Close()
	}

	creds := store.NewCredentialsRepo(db)
	client := api.NewClient(cfg.BackendURL, cfg.RequestTimeout, session.CredentialsSaver{Repo: creds})
	sess := session.NewStore(client, creds)

	return &appDeps{
		cfg:     cfg,
		db:      db,
		client:  client,
		session: sess,
		creds:   creds,
		history: store.NewHistoryRepo(db),
	}, cleanup, nil
}

// requireAuth initializes the session and fails with a friendly message when
// no valid login is stored.
func (d *appDeps) requireAuth(ctx context.Context) error {
	if err := d.session.Initialize(ctx); err != nil {
		return err
	}
	if d.session.State() != session.StateAuthenticated {
		return errors.New("not logged in (run: myjob login)")
	}
	return nil
}
