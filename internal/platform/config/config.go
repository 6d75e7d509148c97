// Package config loads application configuration from environment variables.
// All variables use the DSA_ prefix.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Storage backends accepted by DSA_STORAGE_BACKEND.
const (
	BackendMemory   = "memory"
	BackendBadger   = "badger"
	BackendSQLite   = "sqlite"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
)

// Config holds all application configuration.
type Config struct {
	Server      ServerConfig
	Storage     StorageConfig
	Database    DatabaseConfig
	Cache       CacheConfig
	Log         LogConfig
	CatalogPath string
	// BookmarkFilter overrides the catalog header's bookmark filter flag
	// when set ("true"/"false"); empty keeps the catalog value.
	BookmarkFilter string
	QuoteInterval  time.Duration
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port int
	Host string
}

// StorageConfig selects where progress, identity and theme are persisted.
type StorageConfig struct {
	Backend    string
	Path       string // badger directory
	SQLitePath string
	Timeout    time.Duration
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	URL      string
	MaxConns int
	MinConns int
}

// CacheConfig holds Redis connection settings.
type CacheConfig struct {
	URL    string
	Prefix string
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string
	Format string // "json", "text" or "auto"
}

// Load reads configuration from environment variables with DSA_ prefix.
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port: envInt("DSA_SERVER_PORT", 8080),
			Host: envStr("DSA_SERVER_HOST", "127.0.0.1"),
		},
		Storage: StorageConfig{
			Backend:    strings.ToLower(envStr("DSA_STORAGE_BACKEND", BackendBadger)),
			Path:       envStr("DSA_STORAGE_PATH", "./data/badger"),
			SQLitePath: envStr("DSA_SQLITE_PATH", "./data/dsa-sheet.db"),
			Timeout:    envDuration("DSA_STORAGE_TIMEOUT", 5*time.Second),
		},
		Database: DatabaseConfig{
			URL:      envStr("DSA_DATABASE_URL", ""),
			MaxConns: envInt("DSA_DATABASE_MAX_CONNS", 5),
			MinConns: envInt("DSA_DATABASE_MIN_CONNS", 1),
		},
		Cache: CacheConfig{
			URL:    envStr("DSA_CACHE_URL", ""),
			Prefix: envStr("DSA_CACHE_PREFIX", "dsa-sheet:"),
		},
		Log: LogConfig{
			Level:  strings.ToLower(envStr("DSA_LOG_LEVEL", "info")),
			Format: strings.ToLower(envStr("DSA_LOG_FORMAT", "auto")),
		},
		CatalogPath:    envStr("DSA_CATALOG_PATH", ""),
		BookmarkFilter: strings.ToLower(envStr("DSA_BOOKMARK_FILTER", "")),
		QuoteInterval:  envDuration("DSA_QUOTE_INTERVAL", 30*time.Second),
	}

	return cfg, nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("DSA_SERVER_PORT must be between 1 and 65535, got %d", c.Server.Port)
	}

	switch c.Storage.Backend {
	case BackendMemory:
	case BackendBadger:
		if c.Storage.Path == "" {
			return fmt.Errorf("DSA_STORAGE_PATH is required for the badger backend")
		}
	case BackendSQLite:
		if c.Storage.SQLitePath == "" {
			return fmt.Errorf("DSA_SQLITE_PATH is required for the sqlite backend")
		}
	case BackendRedis:
		if c.Cache.URL == "" {
			return fmt.Errorf("DSA_CACHE_URL is required for the redis backend")
		}
	case BackendPostgres:
		if c.Database.URL == "" {
			return fmt.Errorf("DSA_DATABASE_URL is required for the postgres backend")
		}
	default:
		return fmt.Errorf("DSA_STORAGE_BACKEND must be one of memory, badger, sqlite, redis, postgres; got %q", c.Storage.Backend)
	}

	if c.Storage.Timeout <= 0 {
		return fmt.Errorf("DSA_STORAGE_TIMEOUT must be positive, got %s", c.Storage.Timeout)
	}

	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("DSA_LOG_LEVEL must be debug, info, warn or error; got %q", c.Log.Level)
	}
	switch c.Log.Format {
	case "json", "text", "auto":
	default:
		return fmt.Errorf("DSA_LOG_FORMAT must be json, text or auto; got %q", c.Log.Format)
	}

	switch c.BookmarkFilter {
	case "", "true", "false", "1", "0":
	default:
		return fmt.Errorf("DSA_BOOKMARK_FILTER must be true or false, got %q", c.BookmarkFilter)
	}

	return nil
}

// Addr returns the host:port the HTTP server listens on.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// BookmarkFilterEnabled resolves the bookmark filter capability, falling
// back to the catalog's own flag.
func (c *Config) BookmarkFilterEnabled(catalogDefault bool) bool {
	switch c.BookmarkFilter {
	case "true", "1":
		return true
	case "false", "0":
		return false
	}
	return catalogDefault
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
