package progress_test

import (
	"testing"

	"github.com/p-n-ai/dsa-sheet/internal/progress"
)

func TestMemoryEventLogger_LogEvent(t *testing.T) {
	logger := progress.NewMemoryEventLogger()

	err := logger.LogEvent(progress.Event{
		QuestionID: "arrays-1-2",
		EventType:  "completed_toggled",
		Data: map[string]any{
			"value": true,
		},
	})
	if err != nil {
		t.Fatalf("LogEvent() error = %v", err)
	}

	events := logger.Events()
	if len(events) != 1 {
		t.Fatalf("len(events) = %d, want 1", len(events))
	}
	if events[0].EventType != "completed_toggled" {
		t.Errorf("EventType = %q, want completed_toggled", events[0].EventType)
	}
	if events[0].CreatedAt.IsZero() {
		t.Error("CreatedAt should be set")
	}
	if events[0].ID == "" {
		t.Error("ID should be set")
	}
}

func TestMemoryEventLogger_RequiresType(t *testing.T) {
	logger := progress.NewMemoryEventLogger()
	if err := logger.LogEvent(progress.Event{QuestionID: "q1"}); err == nil {
		t.Fatal("expected error for missing event type")
	}
}

func TestPostgresEventLogger_LogEvent_NilPool(t *testing.T) {
	logger := progress.NewPostgresEventLogger(nil)

	err := logger.LogEvent(progress.Event{
		QuestionID: "q1",
		EventType:  "note_saved",
	})
	if err == nil {
		t.Fatal("expected error for nil pool")
	}
}
