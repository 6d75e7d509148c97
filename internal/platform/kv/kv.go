// Package kv opens the embedded BadgerDB store used for local persistence.
package kv

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/dgraph-io/badger/v4"
)

// Config controls how the database is opened.
type Config struct {
	// Path is the database directory. Ignored when InMemory is true.
	Path string

	InMemory bool

	// SyncWrites fsyncs every write. Progress records are small, so this
	// stays on outside tests.
	SyncWrites bool

	// Logger receives BadgerDB's internal logs. Nil silences them.
	Logger *slog.Logger

	// GCInterval is how often the value log is garbage collected. Zero disables it.
	GCInterval     time.Duration
	GCDiscardRatio float64
}

// DefaultConfig returns settings for an on-disk database at path.
func DefaultConfig(path string) Config {
	return Config{
		Path:           path,
		SyncWrites:     true,
		GCInterval:     10 * time.Minute,
		GCDiscardRatio: 0.5,
	}
}

// InMemoryConfig returns settings for a throwaway database.
func InMemoryConfig() Config {
	return Config{InMemory: true}
}

// DB is a BadgerDB handle with an optional background value-log GC loop.
type DB struct {
	*badger.DB
	stop chan struct{}
	done chan struct{}
}

// Open opens or creates the database described by cfg.
func Open(cfg Config) (*DB, error) {
	if !cfg.InMemory && cfg.Path == "" {
		return nil, errors.New("path is required for a persistent database")
	}

	var opts badger.Options
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if err := os.MkdirAll(cfg.Path, 0o750); err != nil {
			return nil, fmt.Errorf("create database directory %s: %w", cfg.Path, err)
		}
		opts = badger.DefaultOptions(cfg.Path)
	}
	opts = opts.WithSyncWrites(cfg.SyncWrites).WithNumVersionsToKeep(1)
	if cfg.Logger != nil {
		opts = opts.WithLogger(&logAdapter{logger: cfg.Logger})
	} else {
		opts = opts.WithLogger(nil)
	}

	bdb, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger database: %w", err)
	}

	db := &DB{DB: bdb}
	if cfg.GCInterval > 0 && !cfg.InMemory {
		db.stop = make(chan struct{})
		db.done = make(chan struct{})
		go db.gcLoop(cfg.GCInterval, cfg.GCDiscardRatio)
	}
	return db, nil
}

// Get returns a copy of the value stored at key, or badger.ErrKeyNotFound.
func (db *DB) Get(key []byte) ([]byte, error) {
	var value []byte
	err := db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})
	return value, err
}

// Set writes value at key in its own transaction.
func (db *DB) Set(key, value []byte) error {
	return db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, value)
	})
}

// Close stops the GC loop and closes the database.
func (db *DB) Close() error {
	if db.stop != nil {
		close(db.stop)
		<-db.done
	}
	return db.DB.Close()
}

func (db *DB) gcLoop(interval time.Duration, ratio float64) {
	defer close(db.done)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-db.stop:
			return
		case <-ticker.C:
			if err := db.RunValueLogGC(ratio); err != nil && !errors.Is(err, badger.ErrNoRewrite) {
				slog.Warn("badger value log gc failed", "error", err)
			}
		}
	}
}

type logAdapter struct {
	logger *slog.Logger
}

func (l *logAdapter) Errorf(format string, args ...any) {
	l.logger.Error(fmt.Sprintf(format, args...))
}

func (l *logAdapter) Warningf(format string, args ...any) {
	l.logger.Warn(fmt.Sprintf(format, args...))
}

// Infof logs at debug: badger reports every table load and compaction at info.
func (l *logAdapter) Infof(format string, args ...any) {
	l.logger.Debug(fmt.Sprintf(format, args...))
}

func (l *logAdapter) Debugf(format string, args ...any) {
	l.logger.Debug(fmt.Sprintf(format, args...))
}
