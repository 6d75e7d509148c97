// Package storage provides the durable key-value slots that hold the
// serialized progress record, identity and theme. Each slot is written
// independently so a failure on one never touches the others.
package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/p-n-ai/dsa-sheet/internal/platform/cache"
	"github.com/p-n-ai/dsa-sheet/internal/platform/config"
	"github.com/p-n-ai/dsa-sheet/internal/platform/database"
	"github.com/p-n-ai/dsa-sheet/internal/platform/kv"
)

// Slot keys.
const (
	KeyProgress = "dsa_progress"
	KeyUser     = "dsa_user"
	KeyTheme    = "dsa_theme"
)

// ErrNotFound is returned by Get when a slot has never been written.
var ErrNotFound = errors.New("slot not found")

// Slot reads and writes whole serialized records by key.
type Slot interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
}

// Backend is a Slot with a lifecycle.
type Backend interface {
	Slot
	Name() string
	HealthCheck(ctx context.Context) error
	Close() error
}

// Open connects the backend selected by cfg.Storage.Backend.
func Open(ctx context.Context, cfg *config.Config) (Backend, error) {
	switch cfg.Storage.Backend {
	case config.BackendMemory:
		return NewMemory(), nil

	case config.BackendBadger:
		db, err := kv.Open(badgerConfig(cfg.Storage.Path))
		if err != nil {
			return nil, err
		}
		return NewBadger(db), nil

	case config.BackendSQLite:
		return OpenSQLite(ctx, cfg.Storage.SQLitePath)

	case config.BackendRedis:
		c, err := cache.Connect(ctx, cache.Options{URL: cfg.Cache.URL, Prefix: cfg.Cache.Prefix})
		if err != nil {
			return nil, err
		}
		return NewRedis(c), nil

	case config.BackendPostgres:
		db, err := database.Connect(ctx, database.Options{
			URL:      cfg.Database.URL,
			MaxConns: cfg.Database.MaxConns,
			MinConns: cfg.Database.MinConns,
		})
		if err != nil {
			return nil, err
		}
		return NewPostgres(db), nil

	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}

// badgerConfig routes BadgerDB's internal logs through slog.
func badgerConfig(path string) kv.Config {
	cfg := kv.DefaultConfig(path)
	cfg.Logger = slog.Default().With("component", "badger")
	return cfg
}
