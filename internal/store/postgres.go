/**
 * @description
 * Postgres-backed snapshot store. Snapshots keep the same one-blob-per-key
 * layout as the file backend; each key maps to a jsonb row that is upserted
 * on every save. Selected with STORE_BACKEND=postgres.
 */
package store

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore persists snapshots in a single snapshots table.
type PostgresStore struct {
	db     *pgxpool.Pool
	logger *slog.Logger
}

// NewPostgresStore ensures the snapshots table exists and returns the store.
func NewPostgresStore(ctx context.Context, db *pgxpool.Pool, logger *slog.Logger) (*PostgresStore, error) {
	_, err := db.Exec(ctx, `
        CREATE TABLE IF NOT EXISTS snapshots (
            key        TEXT PRIMARY KEY,
            data       JSONB NOT NULL,
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )
    `)
	if err != nil {
		return nil, fmt.Errorf("create snapshots table: %w", err)
	}
	return &PostgresStore{db: db, logger: logger}, nil
}

// Load decodes the snapshot row for key. pgx scans jsonb straight into the
// destination value, so a row that fails to decode is reported as absent,
// matching the file backend's recovery behavior.
func (s *PostgresStore) Load(ctx context.Context, key string, into any) (bool, error) {
	query := `SELECT data FROM snapshots WHERE key = $1`
	err := s.db.QueryRow(ctx, query, key).Scan(into)
	if err != nil {
		if err == pgx.ErrNoRows {
			return false, nil
		}
		s.logger.Warn("failed to load snapshot row", "key", key, "error", err)
		return false, nil
	}
	return true, nil
}

// Save upserts the full snapshot for key.
func (s *PostgresStore) Save(ctx context.Context, key string, value any) error {
	query := `
        INSERT INTO snapshots (key, data, updated_at)
        VALUES ($1, $2, NOW())
        ON CONFLICT (key) DO UPDATE SET
            data = EXCLUDED.data,
            updated_at = NOW()
    `
	if _, err := s.db.Exec(ctx, query, key, value); err != nil {
		return fmt.Errorf("save snapshot %s: %w", key, err)
	}
	return nil
}
