package progress

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/p-n-ai/dsa-sheet/internal/storage"
)

const defaultTimeout = 5 * time.Second

// Reader answers per-question progress lookups without I/O.
type Reader interface {
	IsCompleted(id string) bool
	IsBookmarked(id string) bool
	Note(id string) string
}

// ChangeKind names a progress mutation.
type ChangeKind string

const (
	ChangeCompleted  ChangeKind = "completed"
	ChangeBookmarked ChangeKind = "bookmarked"
	ChangeNote       ChangeKind = "note"
)

// Change describes one applied mutation. Persisted is false when the slot
// write failed; the in-memory state still reflects the change.
type Change struct {
	Kind       ChangeKind `json:"kind"`
	QuestionID string     `json:"questionId"`
	Value      bool       `json:"value"`
	Note       string     `json:"note,omitempty"`
	Persisted  bool       `json:"persisted"`
	At         time.Time  `json:"at"`
}

// Store owns the progress record for one process. Every mutation rewrites
// the whole record to its slot; reads are served from memory.
type Store struct {
	slot      storage.Slot
	key       string
	timeout   time.Duration
	events    EventLogger
	observers []func(Change)

	rec     Record
	outcome LoadOutcome
	mu      sync.RWMutex
}

// Option configures a Store.
type Option func(*Store)

// WithEventLogger records an Event for every mutation.
func WithEventLogger(l EventLogger) Option {
	return func(s *Store) {
		if l != nil {
			s.events = l
		}
	}
}

// WithObserver registers fn to be called after every mutation.
func WithObserver(fn func(Change)) Option {
	return func(s *Store) {
		if fn != nil {
			s.observers = append(s.observers, fn)
		}
	}
}

// WithTimeout bounds each slot operation.
func WithTimeout(d time.Duration) Option {
	return func(s *Store) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// WithKey overrides the slot key (default storage.KeyProgress).
func WithKey(key string) Option {
	return func(s *Store) {
		if key != "" {
			s.key = key
		}
	}
}

// Open loads the record from slot. A missing, unreadable or malformed slot
// yields an empty record; Outcome reports which.
func Open(ctx context.Context, slot storage.Slot, opts ...Option) *Store {
	s := &Store{
		slot:    slot,
		key:     storage.KeyProgress,
		timeout: defaultTimeout,
		events:  NopEventLogger{},
	}
	for _, opt := range opts {
		opt(s)
	}

	s.rec, s.outcome = s.load(ctx)
	slog.Debug("progress loaded",
		"key", s.key,
		"outcome", s.outcome.String(),
		"completed", len(s.rec.Completed),
		"bookmarked", len(s.rec.Bookmarked),
	)
	return s
}

func (s *Store) load(ctx context.Context) (Record, LoadOutcome) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	data, err := s.slot.Get(ctx, s.key)
	if errors.Is(err, storage.ErrNotFound) {
		return NewRecord(), OutcomeMissing
	}
	if err != nil {
		slog.Warn("progress slot read failed, using defaults", "key", s.key, "error", err)
		return NewRecord(), OutcomeDefaulted
	}

	rec, err := Decode(data)
	if err != nil {
		slog.Warn("progress slot malformed, using defaults", "key", s.key, "error", err)
		return NewRecord(), OutcomeDefaulted
	}
	return rec, OutcomeLoaded
}

// Outcome reports how the record was obtained at Open.
func (s *Store) Outcome() LoadOutcome {
	return s.outcome
}

// ToggleCompleted flips the completion flag and returns the new value.
func (s *Store) ToggleCompleted(id string) bool {
	s.mu.Lock()
	v := !s.rec.Completed[id]
	s.rec.Completed[id] = v
	ok := s.persistLocked()
	s.mu.Unlock()

	s.emit(Change{Kind: ChangeCompleted, QuestionID: id, Value: v, Persisted: ok}, "completed_toggled")
	return v
}

// ToggleBookmarked flips the bookmark flag and returns the new value.
func (s *Store) ToggleBookmarked(id string) bool {
	s.mu.Lock()
	v := !s.rec.Bookmarked[id]
	s.rec.Bookmarked[id] = v
	ok := s.persistLocked()
	s.mu.Unlock()

	s.emit(Change{Kind: ChangeBookmarked, QuestionID: id, Value: v, Persisted: ok}, "bookmark_toggled")
	return v
}

// SetNote stores text as the note for id, replacing any previous note.
func (s *Store) SetNote(id, text string) {
	s.mu.Lock()
	s.rec.Notes[id] = text
	ok := s.persistLocked()
	s.mu.Unlock()

	s.emit(Change{Kind: ChangeNote, QuestionID: id, Value: text != "", Note: text, Persisted: ok}, "note_saved")
}

func (s *Store) IsCompleted(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.rec.Completed[id]
}

func (s *Store) IsBookmarked(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.rec.Bookmarked[id]
}

func (s *Store) Note(id string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.rec.Notes[id]
}

// Snapshot returns a deep copy of the current record.
func (s *Store) Snapshot() Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.rec.clone()
}

// persistLocked writes the whole record. Failures are logged and swallowed.
// Callers must hold s.mu so writes land in mutation order.
func (s *Store) persistLocked() bool {
	data, err := Encode(s.rec)
	if err != nil {
		slog.Error("progress encode failed", "key", s.key, "error", err)
		return false
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	if err := s.slot.Put(ctx, s.key, data); err != nil {
		slog.Warn("progress slot write failed", "key", s.key, "error", err)
		return false
	}
	return true
}

func (s *Store) emit(c Change, eventType string) {
	c.At = time.Now()

	data := map[string]any{"value": c.Value, "persisted": c.Persisted}
	if c.Kind == ChangeNote {
		data["note_len"] = len(c.Note)
	}
	if err := s.events.LogEvent(Event{
		QuestionID: c.QuestionID,
		EventType:  eventType,
		Data:       data,
		CreatedAt:  c.At,
	}); err != nil {
		slog.Warn("progress event log failed", "type", eventType, "question_id", c.QuestionID, "error", err)
	}

	for _, fn := range s.observers {
		fn(c)
	}
}
