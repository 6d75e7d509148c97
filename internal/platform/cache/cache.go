// Package cache is the Redis client behind the redis slot store.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrMiss is returned by Load when a key has never been stored.
var ErrMiss = errors.New("cache miss")

// Options configures Connect.
type Options struct {
	URL    string
	Prefix string

	DialTimeout time.Duration
	IOTimeout   time.Duration
}

// Cache namespaces every key under a prefix so several sheets can share one Redis.
type Cache struct {
	client *redis.Client
	prefix string
}

// ParseURL validates a Redis connection URL.
func ParseURL(url string) (*redis.Options, error) {
	if url == "" {
		return nil, fmt.Errorf("cache URL is empty")
	}
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid cache URL: %w", err)
	}
	return opts, nil
}

// Connect dials Redis and pings it once.
func Connect(ctx context.Context, o Options) (*Cache, error) {
	opts, err := ParseURL(o.URL)
	if err != nil {
		return nil, err
	}

	opts.DialTimeout = orDefault(o.DialTimeout, 5*time.Second)
	opts.ReadTimeout = orDefault(o.IOTimeout, 3*time.Second)
	opts.WriteTimeout = opts.ReadTimeout

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("pinging cache: %w", err)
	}
	return &Cache{client: client, prefix: o.Prefix}, nil
}

func orDefault(d, def time.Duration) time.Duration {
	if d <= 0 {
		return def
	}
	return d
}

// Key returns the namespaced Redis key for key.
func (c *Cache) Key(key string) string {
	return c.prefix + key
}

// Load returns the stored bytes or ErrMiss.
func (c *Cache) Load(ctx context.Context, key string) ([]byte, error) {
	v, err := c.client.Get(ctx, c.Key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrMiss
	}
	return v, err
}

// Store writes value without expiry.
func (c *Cache) Store(ctx context.Context, key string, value []byte) error {
	return c.client.Set(ctx, c.Key(key), value, 0).Err()
}

// Delete removes keys. Missing keys are ignored.
func (c *Cache) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = c.Key(k)
	}
	return c.client.Del(ctx, full...).Err()
}

// Close shuts down the client.
func (c *Cache) Close() error {
	return c.client.Close()
}

// HealthCheck pings Redis.
func (c *Cache) HealthCheck(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}
