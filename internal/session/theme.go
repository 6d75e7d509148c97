package session

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/p-n-ai/dsa-sheet/internal/storage"
)

// Theme is the colour scheme preference.
type Theme string

const (
	Light Theme = "light"
	Dark  Theme = "dark"
)

// ParseTheme accepts "light" or "dark" in any case.
func ParseTheme(s string) (Theme, error) {
	switch t := Theme(strings.ToLower(strings.TrimSpace(s))); t {
	case Light, Dark:
		return t, nil
	default:
		return "", fmt.Errorf("unknown theme %q (want light or dark)", s)
	}
}

// ThemeStore owns the theme preference.
type ThemeStore struct {
	slot storage.Slot
	opts options

	theme   Theme
	outcome storage.LoadOutcome
	mu      sync.RWMutex
}

// OpenTheme loads the theme from slot. Anything other than "dark" is light.
func OpenTheme(ctx context.Context, slot storage.Slot, opts ...Option) *ThemeStore {
	s := &ThemeStore{slot: slot, opts: buildOptions(storage.KeyTheme, opts), theme: Light}

	data, outcome := read(ctx, slot, s.opts)
	s.outcome = outcome
	if outcome == storage.OutcomeLoaded {
		switch Theme(data) {
		case Dark:
			s.theme = Dark
		case Light:
		default:
			slog.Warn("theme slot malformed, using light", "key", s.opts.key, "value", string(data))
			s.outcome = storage.OutcomeDefaulted
		}
	}
	return s
}

// Outcome reports how the theme was obtained at OpenTheme.
func (s *ThemeStore) Outcome() storage.LoadOutcome {
	return s.outcome
}

func (s *ThemeStore) Theme() Theme {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.theme
}

// Toggle switches between light and dark and returns the new theme.
func (s *ThemeStore) Toggle() Theme {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.theme == Dark {
		s.theme = Light
	} else {
		s.theme = Dark
	}
	write(s.slot, s.opts, []byte(s.theme))
	return s.theme
}

// Set stores t. Values other than Dark are stored as Light.
func (s *ThemeStore) Set(t Theme) {
	if t != Dark {
		t = Light
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.theme = t
	write(s.slot, s.opts, []byte(s.theme))
}
