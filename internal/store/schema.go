package store

import (
	"context"
	"database/sql"
	"fmt"
)

func Migrate(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		// Single-row token store, written only by login/refresh/logout.
		`CREATE TABLE IF NOT EXISTS credentials (
			key TEXT PRIMARY KEY,
			access_token TEXT NOT NULL DEFAULT '',
			refresh_token TEXT NOT NULL DEFAULT '',
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);`,
		// Local history of jobs saved through the capture flow, capped at
		// HistoryCap entries, newest first.
		`CREATE TABLE IF NOT EXISTS saved_jobs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			company TEXT NOT NULL,
			role TEXT NOT NULL,
			url TEXT,
			saved_at DATETIME NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_saved_jobs_saved_at ON saved_jobs(saved_at);`,
	}

	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
