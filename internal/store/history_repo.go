package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// HistoryCap bounds the capture history like the extension's saved-jobs list.
const HistoryCap = 20

type HistoryRepo struct {
	db *sql.DB
}

func NewHistoryRepo(db *sql.DB) *HistoryRepo {
	return &HistoryRepo{db: db}
}

// Add records a saved job and prunes anything beyond HistoryCap, oldest
// first. Insert and prune run in one transaction.
func (r *HistoryRepo) Add(ctx context.Context, company, role, url string) error {
	return WithTx(ctx, r.db, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO saved_jobs (company, role, url, saved_at) VALUES (?, ?, ?, ?)
		`, company, role, url, time.Now().UTC())
		if err != nil {
			return fmt.Errorf("history insert: %w", err)
		}
		_, err = tx.ExecContext(ctx, `
			DELETE FROM saved_jobs WHERE id NOT IN (
				SELECT id FROM saved_jobs ORDER BY saved_at DESC, id DESC LIMIT ?
			)
		`, HistoryCap)
		if err != nil {
			return fmt.Errorf("history prune: %w", err)
		}
		return nil
	})
}

// List returns saved jobs newest first.
func (r *HistoryRepo) List(ctx context.Context) ([]SavedJob, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, company, role, COALESCE(url, ''), saved_at
		FROM saved_jobs ORDER BY saved_at DESC, id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("history list: %w", err)
	}
	defer rows.Close()

	var out []SavedJob
	for rows.Next() {
		var j SavedJob
		if err := rows.Scan(&j.ID, &j.Company, &j.Role, &j.URL, &j.SavedAt); err != nil {
			return nil, fmt.Errorf("history scan: %w", err)
		}
		out = append(out, j)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("history rows: %w", err)
	}
	return out, nil
}
