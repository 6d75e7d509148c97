package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/p-n-ai/dsa-sheet/internal/platform/database"
)

// Postgres stores slots in the slots table created by database.Migrate.
type Postgres struct {
	db *database.DB
}

// NewPostgres wraps a migrated database. Close closes its pool.
func NewPostgres(db *database.DB) *Postgres {
	return &Postgres{db: db}
}

func (p *Postgres) Name() string { return "postgres" }

// Pool exposes the connection pool so the progress event log can share it.
func (p *Postgres) Pool() *pgxpool.Pool {
	return p.db.Pool
}

func (p *Postgres) Get(ctx context.Context, key string) ([]byte, error) {
	v, err := p.db.ReadSlot(ctx, key)
	if errors.Is(err, database.ErrNoSlot) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read slot %s: %w", key, err)
	}
	return v, nil
}

func (p *Postgres) Put(ctx context.Context, key string, value []byte) error {
	if err := p.db.WriteSlot(ctx, key, value); err != nil {
		return fmt.Errorf("write slot %s: %w", key, err)
	}
	return nil
}

func (p *Postgres) HealthCheck(ctx context.Context) error {
	return p.db.HealthCheck(ctx)
}

func (p *Postgres) Close() error {
	p.db.Close()
	return nil
}
