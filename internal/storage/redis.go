package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/p-n-ai/dsa-sheet/internal/platform/cache"
)

// Redis stores each slot as a plain string key without expiry.
type Redis struct {
	cache *cache.Cache
}

// NewRedis wraps a connected cache. Close closes it.
func NewRedis(c *cache.Cache) *Redis {
	return &Redis{cache: c}
}

func (r *Redis) Name() string { return "redis" }

func (r *Redis) Get(ctx context.Context, key string) ([]byte, error) {
	v, err := r.cache.Load(ctx, key)
	if errors.Is(err, cache.ErrMiss) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read slot %s: %w", key, err)
	}
	return v, nil
}

func (r *Redis) Put(ctx context.Context, key string, value []byte) error {
	if err := r.cache.Store(ctx, key, value); err != nil {
		return fmt.Errorf("write slot %s: %w", key, err)
	}
	return nil
}

func (r *Redis) HealthCheck(ctx context.Context) error {
	return r.cache.HealthCheck(ctx)
}

func (r *Redis) Close() error {
	return r.cache.Close()
}
