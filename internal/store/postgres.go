package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
)

var _ Cache = (*PostgresCache)(nil)

const (
	queryCreateTable = `
		CREATE TABLE IF NOT EXISTS brochure_cache (
			cache_key  TEXT PRIMARY KEY,
			payload    BYTEA NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`

	queryLoad = `SELECT payload FROM brochure_cache WHERE cache_key = $1`

	queryUpsert = `
		INSERT INTO brochure_cache (cache_key, payload, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (cache_key)
		DO UPDATE SET payload = EXCLUDED.payload, updated_at = NOW()`

	queryDelete = `DELETE FROM brochure_cache WHERE cache_key = $1`
)

// PostgresCache stores the document in the brochure_cache table, one row
// per key. Several editor instances may share one database.
type PostgresCache struct {
	db  *sql.DB
	key string
}

// OpenPostgres connects through the pgx stdlib driver, verifies the
// connection and ensures the table exists.
func OpenPostgres(ctx context.Context, dsn, key string) (*PostgresCache, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	c := NewPostgresCache(db, key)
	if _, err := db.ExecContext(ctx, queryCreateTable); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating cache table: %w", err)
	}
	return c, nil
}

// NewPostgresCache wraps an open database. The table must already exist.
func NewPostgresCache(db *sql.DB, key string) *PostgresCache {
	if key == "" {
		key = DefaultKey
	}
	return &PostgresCache{db: db, key: key}
}

func (c *PostgresCache) Load(ctx context.Context) ([]byte, error) {
	var payload []byte
	err := c.db.QueryRowContext(ctx, queryLoad, c.key).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("loading cache: %w", err)
	}
	return payload, nil
}

func (c *PostgresCache) Save(ctx context.Context, data []byte) error {
	if _, err := c.db.ExecContext(ctx, queryUpsert, c.key, data); err != nil {
		return fmt.Errorf("saving cache: %w", err)
	}
	return nil
}

func (c *PostgresCache) Clear(ctx context.Context) error {
	if _, err := c.db.ExecContext(ctx, queryDelete, c.key); err != nil {
		return fmt.Errorf("clearing cache: %w", err)
	}
	return nil
}

// Close closes the underlying database.
func (c *PostgresCache) Close() error {
	return c.db.Close()
}
