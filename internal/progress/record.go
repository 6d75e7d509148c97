// Package progress tracks per-question completion, bookmarks and notes and
// persists them as a single record in a storage slot.
package progress

import (
	"encoding/json"
	"fmt"

	"github.com/p-n-ai/dsa-sheet/internal/storage"
)

// Record is the persisted progress state. An absent key reads as false or "".
type Record struct {
	Completed  map[string]bool   `json:"completedQuestions"`
	Bookmarked map[string]bool   `json:"bookmarkedQuestions"`
	Notes      map[string]string `json:"notes"`
}

// NewRecord returns an empty record with all maps allocated.
func NewRecord() Record {
	return Record{
		Completed:  map[string]bool{},
		Bookmarked: map[string]bool{},
		Notes:      map[string]string{},
	}
}

func (r Record) clone() Record {
	out := NewRecord()
	for k, v := range r.Completed {
		out.Completed[k] = v
	}
	for k, v := range r.Bookmarked {
		out.Bookmarked[k] = v
	}
	for k, v := range r.Notes {
		out.Notes[k] = v
	}
	return out
}

func (r *Record) fill() {
	if r.Completed == nil {
		r.Completed = map[string]bool{}
	}
	if r.Bookmarked == nil {
		r.Bookmarked = map[string]bool{}
	}
	if r.Notes == nil {
		r.Notes = map[string]string{}
	}
}

// Encode serializes a record to its slot format.
func Encode(r Record) ([]byte, error) {
	r.fill()
	data, err := json.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("encode progress: %w", err)
	}
	return data, nil
}

// Decode parses the slot format. Missing fields decode as empty maps.
func Decode(data []byte) (Record, error) {
	var r Record
	if err := json.Unmarshal(data, &r); err != nil {
		return NewRecord(), fmt.Errorf("decode progress: %w", err)
	}
	r.fill()
	return r, nil
}

// LoadOutcome reports how the record was obtained at Open.
type LoadOutcome = storage.LoadOutcome

const (
	OutcomeLoaded    = storage.OutcomeLoaded
	OutcomeMissing   = storage.OutcomeMissing
	OutcomeDefaulted = storage.OutcomeDefaulted
)
