package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"darna-backend/internal/repository"
)

type settingsRepository struct {
	db *sql.DB
}

func NewSettingsRepository(db *sql.DB) repository.SettingsRepository {
	return &settingsRepository{db: db}
}

func (r *settingsRepository) Get(ctx context.Context, key string) ([]byte, error) {
	var payload []byte
	err := r.db.QueryRowContext(ctx, `SELECT payload FROM platform_settings WHERE key = $1`, key).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return payload, nil
}

func (r *settingsRepository) GetAll(ctx context.Context) (map[string][]byte, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT key, payload FROM platform_settings`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	all := make(map[string][]byte)
	for rows.Next() {
		var key string
		var payload []byte
		if err := rows.Scan(&key, &payload); err != nil {
			return nil, err
		}
		all[key] = payload
	}
	return all, rows.Err()
}

// Upsert persists the payload and fires the change notification so every
// process re-fetches its snapshot. The notify rides in the same transaction
// as the write: subscribers only hear about committed payloads.
func (r *settingsRepository) Upsert(ctx context.Context, key string, payload []byte) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `INSERT INTO platform_settings (key, payload, updated_on) VALUES ($1, $2, $3)
	          ON CONFLICT (key) DO UPDATE SET payload = EXCLUDED.payload, updated_on = EXCLUDED.updated_on`
	if _, err := tx.ExecContext(ctx, query, key, payload, time.Now()); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `SELECT pg_notify('settings_changed', $1)`, key); err != nil {
		return err
	}
	return tx.Commit()
}
