// Package database owns the PostgreSQL pool, the sheet schema and the slot queries.
package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNoSlot is returned by ReadSlot when the key has no row.
var ErrNoSlot = errors.New("slot not found")

// Options configures Connect.
type Options struct {
	URL      string
	MaxConns int
	MinConns int
}

// DB wraps a pgx connection pool.
type DB struct {
	Pool *pgxpool.Pool
}

// schema holds the durable slots and the progress event log.
const schema = `
CREATE TABLE IF NOT EXISTS slots (
	key        TEXT PRIMARY KEY,
	value      BYTEA NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS progress_events (
	id          UUID PRIMARY KEY,
	question_id TEXT NOT NULL,
	event_type  TEXT NOT NULL,
	data        JSONB NOT NULL DEFAULT '{}'::jsonb,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS progress_events_question_idx ON progress_events (question_id, created_at);
`

// ParseURL validates a PostgreSQL connection URL.
func ParseURL(url string) (*pgxpool.Config, error) {
	if url == "" {
		return nil, fmt.Errorf("database URL is empty")
	}
	cfg, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, fmt.Errorf("invalid database URL: %w", err)
	}
	return cfg, nil
}

// poolConfig parses o.URL and applies the pool sizing. Non-positive sizes
// keep the pgx defaults.
func poolConfig(o Options) (*pgxpool.Config, error) {
	cfg, err := ParseURL(o.URL)
	if err != nil {
		return nil, err
	}
	if o.MaxConns > 0 {
		cfg.MaxConns = int32(o.MaxConns)
	}
	if o.MinConns > 0 {
		cfg.MinConns = int32(o.MinConns)
	}
	if cfg.MinConns > cfg.MaxConns {
		return nil, fmt.Errorf("min conns %d exceeds max conns %d", cfg.MinConns, cfg.MaxConns)
	}
	cfg.MaxConnIdleTime = 5 * time.Minute
	return cfg, nil
}

// Connect opens a pool sized by o and applies the schema.
func Connect(ctx context.Context, o Options) (*DB, error) {
	cfg, err := poolConfig(o)
	if err != nil {
		return nil, err
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	db := &DB{Pool: pool}
	if err := db.Migrate(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return db, nil
}

// Migrate creates the tables if they do not exist.
func (db *DB) Migrate(ctx context.Context) error {
	if _, err := db.Pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("applying schema: %w", err)
	}
	return nil
}

// ReadSlot returns the value stored under key or ErrNoSlot.
func (db *DB) ReadSlot(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := db.Pool.QueryRow(ctx, `SELECT value FROM slots WHERE key = $1`, key).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNoSlot
	}
	return value, err
}

// WriteSlot upserts key and bumps updated_at.
func (db *DB) WriteSlot(ctx context.Context, key string, value []byte) error {
	_, err := db.Pool.Exec(ctx,
		`INSERT INTO slots (key, value, updated_at)
		 VALUES ($1, $2, NOW())
		 ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()`,
		key, value,
	)
	return err
}

// Close shuts down the connection pool.
func (db *DB) Close() {
	db.Pool.Close()
}

// HealthCheck pings the pool.
func (db *DB) HealthCheck(ctx context.Context) error {
	return db.Pool.Ping(ctx)
}
