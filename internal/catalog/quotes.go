package catalog

import (
	"math/rand/v2"
	"sync"
)

// Rotator cycles through the catalog's motivational quotes.
type Rotator struct {
	quotes  []Quote
	current int
	intn    func(n int) int
	mu      sync.Mutex
}

// NewRotator creates a rotator positioned on the first quote.
func NewRotator(quotes []Quote) *Rotator {
	return &Rotator{
		quotes: append([]Quote(nil), quotes...),
		intn:   rand.IntN,
	}
}

// Current returns the quote on display. ok is false when there are no quotes.
func (r *Rotator) Current() (q Quote, ok bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.at(r.current)
}

// Next advances one quote, wrapping to the first.
func (r *Rotator) Next() (Quote, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.quotes) > 0 {
		r.current = (r.current + 1) % len(r.quotes)
	}
	return r.at(r.current)
}

// Prev steps back one quote, wrapping to the last.
func (r *Rotator) Prev() (Quote, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.quotes) > 0 {
		r.current = (r.current - 1 + len(r.quotes)) % len(r.quotes)
	}
	return r.at(r.current)
}

// Random jumps to a quote other than the current one when more than one exists.
func (r *Rotator) Random() (Quote, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.quotes) <= 1 {
		r.current = 0
		return r.at(0)
	}
	next := r.current
	for next == r.current {
		next = r.intn(len(r.quotes))
	}
	r.current = next
	return r.at(next)
}

func (r *Rotator) at(i int) (Quote, bool) {
	if i < 0 || i >= len(r.quotes) {
		return Quote{}, false
	}
	return r.quotes[i], true
}
