package blob

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Postgres keeps the blob in a single-row keyed table:
//
//	CREATE TABLE IF NOT EXISTS history_blobs (
//	    key        text PRIMARY KEY,
//	    data       bytea NOT NULL,
//	    updated_at timestamptz NOT NULL DEFAULT now()
//	);
type Postgres struct {
	pool *pgxpool.Pool
	key  string
}

// NewPostgres creates a PostgreSQL-backed blob store.
func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{
		pool: pool,
		key:  "history",
	}
}

func (p *Postgres) Get(ctx context.Context) ([]byte, error) {
	query := `
		SELECT data FROM history_blobs
		WHERE key = $1
	`

	var data []byte

	err := p.pool.QueryRow(ctx, query, p.key).Scan(&data)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}

		return nil, err
	}

	return data, nil
}

func (p *Postgres) Set(ctx context.Context, data []byte) error {
	query := `
		INSERT INTO history_blobs (key, data, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE SET data = EXCLUDED.data, updated_at = now()
	`

	_, err := p.pool.Exec(ctx, query, p.key, data)

	return err
}

func (p *Postgres) Clear(ctx context.Context) error {
	_, err := p.pool.Exec(ctx, `DELETE FROM history_blobs WHERE key = $1`, p.key)

	return err
}
