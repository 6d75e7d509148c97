package progress_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/p-n-ai/dsa-sheet/internal/progress"
	"github.com/p-n-ai/dsa-sheet/internal/storage"
)

// failingSlot rejects every write and optionally every read.
type failingSlot struct {
	readErr error
}

func (f failingSlot) Get(context.Context, string) ([]byte, error) {
	if f.readErr != nil {
		return nil, f.readErr
	}
	return nil, storage.ErrNotFound
}

func (failingSlot) Put(context.Context, string, []byte) error {
	return errors.New("disk full")
}

func TestOpen_Defaults(t *testing.T) {
	s := progress.Open(context.Background(), storage.NewMemory())

	if s.Outcome() != progress.OutcomeMissing {
		t.Errorf("Outcome() = %v, want missing", s.Outcome())
	}
	if s.IsCompleted("q1") || s.IsBookmarked("q1") || s.Note("q1") != "" {
		t.Error("unknown id should read as defaults")
	}
}

func TestToggleCompleted_Involution(t *testing.T) {
	s := progress.Open(context.Background(), storage.NewMemory())

	if got := s.ToggleCompleted("q1"); !got {
		t.Fatal("first toggle should return true")
	}
	if !s.IsCompleted("q1") {
		t.Error("IsCompleted after first toggle = false")
	}
	if got := s.ToggleCompleted("q1"); got {
		t.Fatal("second toggle should return false")
	}
	if s.IsCompleted("q1") {
		t.Error("IsCompleted after second toggle = true")
	}
}

func TestToggleBookmarked_PersistsAcrossReload(t *testing.T) {
	ctx := context.Background()
	slot := storage.NewMemory()

	s := progress.Open(ctx, slot)
	if !s.ToggleBookmarked("q1") {
		t.Fatal("ToggleBookmarked() = false, want true")
	}

	reloaded := progress.Open(ctx, slot)
	if reloaded.Outcome() != progress.OutcomeLoaded {
		t.Errorf("Outcome() = %v, want loaded", reloaded.Outcome())
	}
	if !reloaded.IsBookmarked("q1") {
		t.Error("bookmark lost after reload")
	}
	if reloaded.IsCompleted("q1") {
		t.Error("bookmark should not mark completion")
	}
}

func TestSetNote(t *testing.T) {
	ctx := context.Background()
	slot := storage.NewMemory()
	s := progress.Open(ctx, slot)

	s.SetNote("q1", "use two pointers")
	s.SetNote("q1", "use a hash map")
	if got := s.Note("q1"); got != "use a hash map" {
		t.Errorf("Note() = %q, want replaced note", got)
	}

	reloaded := progress.Open(ctx, slot)
	if got := reloaded.Note("q1"); got != "use a hash map" {
		t.Errorf("reloaded Note() = %q", got)
	}
}

func TestOpen_MalformedSlot(t *testing.T) {
	ctx := context.Background()
	slot := storage.NewMemory()
	_ = slot.Put(ctx, storage.KeyProgress, []byte("{not json"))
	_ = slot.Put(ctx, storage.KeyUser, []byte(`{"isLoggedIn":true,"username":"a","email":"b"}`))

	s := progress.Open(ctx, slot)
	if s.Outcome() != progress.OutcomeDefaulted {
		t.Errorf("Outcome() = %v, want defaulted", s.Outcome())
	}
	if len(s.Snapshot().Completed) != 0 {
		t.Error("malformed slot should yield empty record")
	}

	// The identity slot is untouched by a progress write.
	s.ToggleCompleted("q1")
	raw, err := slot.Get(ctx, storage.KeyUser)
	if err != nil || string(raw) != `{"isLoggedIn":true,"username":"a","email":"b"}` {
		t.Errorf("identity slot changed: %q, %v", raw, err)
	}
}

func TestOpen_ReadFailure(t *testing.T) {
	s := progress.Open(context.Background(), failingSlot{readErr: errors.New("io error")})
	if s.Outcome() != progress.OutcomeDefaulted {
		t.Errorf("Outcome() = %v, want defaulted", s.Outcome())
	}
}

func TestStore_FailSoftWrites(t *testing.T) {
	var changes []progress.Change
	s := progress.Open(context.Background(), failingSlot{},
		progress.WithObserver(func(c progress.Change) { changes = append(changes, c) }),
	)

	if !s.ToggleCompleted("q1") {
		t.Fatal("toggle should still succeed in memory")
	}
	if !s.IsCompleted("q1") {
		t.Error("in-memory state should be authoritative after a failed write")
	}
	if len(changes) != 1 || changes[0].Persisted {
		t.Errorf("changes = %+v, want one unpersisted change", changes)
	}
}

func TestStore_Observer(t *testing.T) {
	var got []progress.Change
	s := progress.Open(context.Background(), storage.NewMemory(),
		progress.WithObserver(func(c progress.Change) { got = append(got, c) }),
	)

	s.ToggleCompleted("a")
	s.ToggleBookmarked("b")
	s.SetNote("c", "hi")

	want := []struct {
		kind  progress.ChangeKind
		id    string
		value bool
	}{
		{progress.ChangeCompleted, "a", true},
		{progress.ChangeBookmarked, "b", true},
		{progress.ChangeNote, "c", true},
	}
	if len(got) != len(want) {
		t.Fatalf("len(changes) = %d, want %d", len(got), len(want))
	}
	for i, w := range want {
		if got[i].Kind != w.kind || got[i].QuestionID != w.id || got[i].Value != w.value || !got[i].Persisted {
			t.Errorf("change[%d] = %+v, want %+v", i, got[i], w)
		}
		if got[i].At.IsZero() {
			t.Errorf("change[%d].At not set", i)
		}
	}
	if got[2].Note != "hi" {
		t.Errorf("note change Note = %q", got[2].Note)
	}
}

func TestStore_EventLogger(t *testing.T) {
	events := progress.NewMemoryEventLogger()
	s := progress.Open(context.Background(), storage.NewMemory(), progress.WithEventLogger(events))

	s.ToggleCompleted("q1")
	s.ToggleBookmarked("q1")
	s.SetNote("q1", "note")

	got := events.Events()
	wantTypes := []string{"completed_toggled", "bookmark_toggled", "note_saved"}
	if len(got) != len(wantTypes) {
		t.Fatalf("len(events) = %d, want %d", len(got), len(wantTypes))
	}
	for i, typ := range wantTypes {
		if got[i].EventType != typ {
			t.Errorf("event[%d].EventType = %q, want %q", i, got[i].EventType, typ)
		}
		if got[i].QuestionID != "q1" || got[i].ID == "" {
			t.Errorf("event[%d] = %+v", i, got[i])
		}
	}
}

func TestSnapshot_IsCopy(t *testing.T) {
	s := progress.Open(context.Background(), storage.NewMemory())
	s.ToggleCompleted("q1")

	snap := s.Snapshot()
	snap.Completed["q2"] = true

	if s.IsCompleted("q2") {
		t.Error("mutating a snapshot leaked into the store")
	}
}

func TestWithKey(t *testing.T) {
	ctx := context.Background()
	slot := storage.NewMemory()

	s := progress.Open(ctx, slot, progress.WithKey("alt_progress"))
	s.ToggleCompleted("q1")

	if _, err := slot.Get(ctx, storage.KeyProgress); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("default key written: %v", err)
	}
	if _, err := slot.Get(ctx, "alt_progress"); err != nil {
		t.Errorf("custom key not written: %v", err)
	}
}

func TestStore_ConcurrentToggles(t *testing.T) {
	s := progress.Open(context.Background(), storage.NewMemory())

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.ToggleCompleted("q1")
			_ = s.IsCompleted("q1")
		}()
	}
	wg.Wait()

	// An even number of toggles leaves the flag cleared.
	if s.IsCompleted("q1") {
		t.Error("IsCompleted after 50 toggles = true")
	}
}
