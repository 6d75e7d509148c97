package storage

import "fmt"

// LoadOutcome reports how a record read from a slot was obtained.
type LoadOutcome int

const (
	// OutcomeLoaded means the slot held a valid record.
	OutcomeLoaded LoadOutcome = iota
	// OutcomeMissing means the slot was empty and defaults were used.
	OutcomeMissing
	// OutcomeDefaulted means the slot was unreadable or malformed and defaults were used.
	OutcomeDefaulted
)

func (o LoadOutcome) String() string {
	switch o {
	case OutcomeLoaded:
		return "loaded"
	case OutcomeMissing:
		return "missing"
	case OutcomeDefaulted:
		return "defaulted"
	default:
		return fmt.Sprintf("LoadOutcome(%d)", int(o))
	}
}
