package store

import (
	"context"
	"database/sql"
	"fmt"
)

const credentialsKey = "main_user"

type CredentialsRepo struct {
	db *sql.DB
}

func NewCredentialsRepo(db *sql.DB) *CredentialsRepo {
	return &CredentialsRepo{db: db}
}

// Get returns the stored token pair, or nil when nothing is persisted.
func (r *CredentialsRepo) Get(ctx context.Context) (*Credentials, error) {
	row := r.db.QueryRowContext(ctx, `SELECT access_token, refresh_token FROM credentials WHERE key = ?`, credentialsKey)

	var c Credentials
	if err := row.Scan(&c.AccessToken, &c.RefreshToken); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("credentials get: %w", err)
	}
	if c.AccessToken == "" && c.RefreshToken == "" {
		return nil, nil
	}
	return &c, nil
}

func (r *CredentialsRepo) Save(ctx context.Context, access, refresh string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO credentials (key, access_token, refresh_token, updated_at)
		VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET
			access_token = excluded.access_token,
			refresh_token = excluded.refresh_token,
			updated_at = CURRENT_TIMESTAMP
	`, credentialsKey, access, refresh)
	if err != nil {
		return fmt.Errorf("credentials save: %w", err)
	}
	return nil
}

func (r *CredentialsRepo) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM credentials WHERE key = ?`, credentialsKey); err != nil {
		return fmt.Errorf("credentials clear: %w", err)
	}
	return nil
}
