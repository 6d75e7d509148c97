package session_test

import (
	"context"
	"testing"

	"github.com/p-n-ai/dsa-sheet/internal/session"
	"github.com/p-n-ai/dsa-sheet/internal/storage"
)

func TestOpenTheme(t *testing.T) {
	tests := []struct {
		name        string
		stored      string
		write       bool
		wantTheme   session.Theme
		wantOutcome storage.LoadOutcome
	}{
		{"missing", "", false, session.Light, storage.OutcomeMissing},
		{"dark", "dark", true, session.Dark, storage.OutcomeLoaded},
		{"light", "light", true, session.Light, storage.OutcomeLoaded},
		{"garbage", "DARK!", true, session.Light, storage.OutcomeDefaulted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			slot := storage.NewMemory()
			if tt.write {
				_ = slot.Put(ctx, storage.KeyTheme, []byte(tt.stored))
			}

			s := session.OpenTheme(ctx, slot)
			if s.Theme() != tt.wantTheme {
				t.Errorf("Theme() = %q, want %q", s.Theme(), tt.wantTheme)
			}
			if s.Outcome() != tt.wantOutcome {
				t.Errorf("Outcome() = %v, want %v", s.Outcome(), tt.wantOutcome)
			}
		})
	}
}

func TestThemeStore_ToggleAndSet(t *testing.T) {
	ctx := context.Background()
	slot := storage.NewMemory()
	s := session.OpenTheme(ctx, slot)

	if got := s.Toggle(); got != session.Dark {
		t.Fatalf("Toggle() = %q, want dark", got)
	}
	raw, _ := slot.Get(ctx, storage.KeyTheme)
	if string(raw) != "dark" {
		t.Errorf("stored theme = %q, want dark", raw)
	}
	if got := s.Toggle(); got != session.Light {
		t.Fatalf("Toggle() = %q, want light", got)
	}

	s.Set(session.Dark)
	if session.OpenTheme(ctx, slot).Theme() != session.Dark {
		t.Error("Set(dark) not persisted")
	}
	s.Set("sepia")
	if s.Theme() != session.Light {
		t.Errorf("Set(sepia) = %q, want light", s.Theme())
	}
}

func TestParseTheme(t *testing.T) {
	tests := []struct {
		in      string
		want    session.Theme
		wantErr bool
	}{
		{"light", session.Light, false},
		{" Dark ", session.Dark, false},
		{"", "", true},
		{"blue", "", true},
	}
	for _, tt := range tests {
		got, err := session.ParseTheme(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseTheme(%q) = %q, %v", tt.in, got, err)
		}
	}
}
