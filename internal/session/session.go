// Package session holds the local display identity and theme preference.
// The identity is cosmetic: there is no password, token or verification.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/p-n-ai/dsa-sheet/internal/storage"
)

const defaultTimeout = 5 * time.Second

// Identity is the signed-in display name. Name and Email are meaningless
// unless LoggedIn is set.
type Identity struct {
	LoggedIn bool   `json:"isLoggedIn"`
	Name     string `json:"username"`
	Email    string `json:"email"`
}

// DisplayName returns the name when logged in and "" otherwise.
func (i Identity) DisplayName() string {
	if !i.LoggedIn {
		return ""
	}
	return i.Name
}

// Option configures a store.
type Option func(*options)

type options struct {
	key     string
	timeout time.Duration
}

// WithKey overrides the slot key.
func WithKey(key string) Option {
	return func(o *options) {
		if key != "" {
			o.key = key
		}
	}
}

// WithTimeout bounds each slot operation.
func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.timeout = d
		}
	}
}

func buildOptions(key string, opts []Option) options {
	o := options{key: key, timeout: defaultTimeout}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Store owns the identity record.
type Store struct {
	slot storage.Slot
	opts options

	id      Identity
	outcome storage.LoadOutcome
	mu      sync.RWMutex
}

// Open loads the identity from slot, falling back to logged out.
func Open(ctx context.Context, slot storage.Slot, opts ...Option) *Store {
	s := &Store{slot: slot, opts: buildOptions(storage.KeyUser, opts)}

	data, outcome := read(ctx, slot, s.opts)
	s.outcome = outcome
	if outcome == storage.OutcomeLoaded {
		if err := json.Unmarshal(data, &s.id); err != nil {
			slog.Warn("identity slot malformed, using defaults", "key", s.opts.key, "error", err)
			s.id = Identity{}
			s.outcome = storage.OutcomeDefaulted
		}
	}
	if !s.id.LoggedIn {
		s.id = Identity{}
	}
	return s
}

// Outcome reports how the identity was obtained at Open.
func (s *Store) Outcome() storage.LoadOutcome {
	return s.outcome
}

// Login records name and email verbatim.
func (s *Store) Login(name, email string) Identity {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.id = Identity{LoggedIn: true, Name: name, Email: email}
	s.persistLocked()
	return s.id
}

// Logout resets to the logged-out identity.
func (s *Store) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.id = Identity{}
	s.persistLocked()
}

func (s *Store) Current() Identity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.id
}

func (s *Store) LoggedIn() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.id.LoggedIn
}

func (s *Store) persistLocked() {
	data, err := json.Marshal(s.id)
	if err != nil {
		slog.Error("identity encode failed", "error", err)
		return
	}
	write(s.slot, s.opts, data)
}

// read fetches the raw slot. A returned outcome other than OutcomeLoaded
// means data is nil.
func read(ctx context.Context, slot storage.Slot, o options) ([]byte, storage.LoadOutcome) {
	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	data, err := slot.Get(ctx, o.key)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, storage.OutcomeMissing
	}
	if err != nil {
		slog.Warn("slot read failed, using defaults", "key", o.key, "error", err)
		return nil, storage.OutcomeDefaulted
	}
	return data, storage.OutcomeLoaded
}

// write stores data, logging and swallowing failures.
func write(slot storage.Slot, o options, data []byte) bool {
	ctx, cancel := context.WithTimeout(context.Background(), o.timeout)
	defer cancel()

	if err := slot.Put(ctx, o.key, data); err != nil {
		slog.Warn("slot write failed", "key", o.key, "error", err)
		return false
	}
	return true
}
