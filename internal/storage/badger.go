package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"

	"github.com/p-n-ai/dsa-sheet/internal/platform/kv"
)

// Badger stores slots in an embedded BadgerDB directory.
type Badger struct {
	db *kv.DB
}

// NewBadger wraps an open database. Close closes it.
func NewBadger(db *kv.DB) *Badger {
	return &Badger{db: db}
}

func (b *Badger) Name() string { return "badger" }

func (b *Badger) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	v, err := b.db.Get([]byte(key))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read slot %s: %w", key, err)
	}
	return v, nil
}

func (b *Badger) Put(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := b.db.Set([]byte(key), value); err != nil {
		return fmt.Errorf("write slot %s: %w", key, err)
	}
	return nil
}

func (b *Badger) HealthCheck(context.Context) error {
	if b.db.IsClosed() {
		return errors.New("badger database is closed")
	}
	return nil
}

func (b *Badger) Close() error {
	return b.db.Close()
}
