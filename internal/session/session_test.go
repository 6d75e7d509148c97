package session_test

import (
	"context"
	"errors"
	"testing"

	"github.com/p-n-ai/dsa-sheet/internal/session"
	"github.com/p-n-ai/dsa-sheet/internal/storage"
)

type brokenSlot struct{}

func (brokenSlot) Get(context.Context, string) ([]byte, error) {
	return nil, errors.New("quota exceeded")
}

func (brokenSlot) Put(context.Context, string, []byte) error {
	return errors.New("quota exceeded")
}

func TestOpen_Missing(t *testing.T) {
	s := session.Open(context.Background(), storage.NewMemory())

	if s.Outcome() != storage.OutcomeMissing {
		t.Errorf("Outcome() = %v, want missing", s.Outcome())
	}
	if s.LoggedIn() || s.Current() != (session.Identity{}) {
		t.Errorf("Current() = %+v, want logged out", s.Current())
	}
}

func TestLoginLogout(t *testing.T) {
	ctx := context.Background()
	slot := storage.NewMemory()
	s := session.Open(ctx, slot)

	got := s.Login("ada", "ada@example.com")
	want := session.Identity{LoggedIn: true, Name: "ada", Email: "ada@example.com"}
	if got != want {
		t.Errorf("Login() = %+v, want %+v", got, want)
	}
	if s.Current().DisplayName() != "ada" {
		t.Errorf("DisplayName() = %q", s.Current().DisplayName())
	}

	reloaded := session.Open(ctx, slot)
	if reloaded.Outcome() != storage.OutcomeLoaded || reloaded.Current() != want {
		t.Errorf("reloaded = %+v (%v)", reloaded.Current(), reloaded.Outcome())
	}

	s.Logout()
	if s.LoggedIn() || s.Current() != (session.Identity{}) {
		t.Errorf("after Logout() = %+v", s.Current())
	}
	if session.Open(ctx, slot).LoggedIn() {
		t.Error("logout not persisted")
	}
}

func TestLogin_Verbatim(t *testing.T) {
	s := session.Open(context.Background(), storage.NewMemory())

	got := s.Login("  not an email ", "???")
	if got.Name != "  not an email " || got.Email != "???" {
		t.Errorf("Login() altered input: %+v", got)
	}
}

func TestIdentity_DisplayName(t *testing.T) {
	tests := []struct {
		name string
		id   session.Identity
		want string
	}{
		{"logged in", session.Identity{LoggedIn: true, Name: "ada"}, "ada"},
		{"logged out with stale name", session.Identity{Name: "ada"}, ""},
		{"zero", session.Identity{}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.id.DisplayName(); got != tt.want {
				t.Errorf("DisplayName() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestOpen_LoggedOutRecordDropsFields(t *testing.T) {
	ctx := context.Background()
	slot := storage.NewMemory()
	_ = slot.Put(ctx, storage.KeyUser, []byte(`{"isLoggedIn":false,"username":"ghost","email":"g@x"}`))

	if got := session.Open(ctx, slot).Current(); got != (session.Identity{}) {
		t.Errorf("Current() = %+v, want zero identity", got)
	}
}

func TestOpen_Malformed(t *testing.T) {
	ctx := context.Background()
	slot := storage.NewMemory()
	_ = slot.Put(ctx, storage.KeyUser, []byte(`{"isLoggedIn":`))
	_ = slot.Put(ctx, storage.KeyProgress, []byte(`{"completedQuestions":{"q1":true}}`))

	s := session.Open(ctx, slot)
	if s.Outcome() != storage.OutcomeDefaulted || s.LoggedIn() {
		t.Errorf("Open() = %+v (%v), want defaulted logged out", s.Current(), s.Outcome())
	}

	s.Login("ada", "a@b")
	raw, _ := slot.Get(ctx, storage.KeyProgress)
	if string(raw) != `{"completedQuestions":{"q1":true}}` {
		t.Errorf("progress slot changed: %s", raw)
	}
}

func TestStore_FailSoft(t *testing.T) {
	s := session.Open(context.Background(), brokenSlot{})
	if s.Outcome() != storage.OutcomeDefaulted {
		t.Errorf("Outcome() = %v, want defaulted", s.Outcome())
	}

	s.Login("ada", "a@b")
	if !s.LoggedIn() {
		t.Error("in-memory login lost after failed write")
	}
}
