// Package organizer arranges catalog topics into the curated display order.
package organizer

import (
	"regexp"
	"strings"

	"github.com/p-n-ai/dsa-sheet/internal/catalog"
)

// PlaceholderSubHeading marks topics that are configured but not in the catalog yet.
const PlaceholderSubHeading = "Coming soon"

// Entry is one slot in the display order: the canonical heading and the
// fragment expected somewhere in the matching topic's path.
type Entry struct {
	Name     string
	Fragment string
}

// DefaultOrder is the curated topic sequence.
var DefaultOrder = []Entry{
	{"Basics", "basics"},
	{"Sorting Techniques", "sorting"},
	{"Arrays", "arrays"},
	{"Binary Search", "binary_search"},
	{"Strings", "strings_part_1"},
	{"Linked List", "linked_list"},
	{"Recursion", "recursion"},
	{"Two Pointers", "two_pointers"},
	{"Bit Manipulation", "bit_manipulation"},
	{"Stack & Queue", "stacks_queues"},
	{"Heaps", "heaps"},
	{"Greedy Algorithms", "greedy"},
	{"Binary Tree", "binary_trees"},
	{"Binary Search Tree", "binary_search_trees"},
	{"Graphs", "graphs"},
	{"Dynamic Programming", "dynamic_programming"},
	{"Tries", "tries"},
	{"Strings (Hard Problems and Standard Algorithms)", "strings_part_2"},
}

// Organizer applies a fixed display order to a catalog.
type Organizer struct {
	order []Entry
}

// New creates an organizer for the given order.
func New(order []Entry) *Organizer {
	return &Organizer{order: append([]Entry(nil), order...)}
}

// Organize orders c using DefaultOrder.
func Organize(c *catalog.Catalog) []catalog.Topic {
	return New(DefaultOrder).Organize(c)
}

// Organize returns the ordered entries first, each either the matching
// catalog topic (renamed to the entry name) or a placeholder, followed by
// every catalog topic not yet emitted in catalog order. Topics are
// deduplicated by path. The catalog is not modified.
func (o *Organizer) Organize(c *catalog.Catalog) []catalog.Topic {
	var topics []catalog.Topic
	if c != nil {
		topics = c.Topics
	}

	out := make([]catalog.Topic, 0, len(o.order)+len(topics))
	emitted := make(map[string]bool, cap(out))

	for _, e := range o.order {
		if t, ok := match(topics, e, emitted); ok {
			t.Heading = e.Name
			out = append(out, t)
			emitted[t.Path] = true
			continue
		}
		out = append(out, placeholder(e))
	}

	for _, t := range topics {
		if emitted[t.Path] {
			continue
		}
		emitted[t.Path] = true
		out = append(out, t)
	}

	return out
}

// match picks the first topic, in catalog order and not yet emitted, whose
// path contains the entry's fragment. Entries without a fragment match the
// slugified name exactly.
func match(topics []catalog.Topic, e Entry, emitted map[string]bool) (catalog.Topic, bool) {
	if e.Fragment == "" {
		want := Slugify(e.Name)
		for _, t := range topics {
			if !emitted[t.Path] && t.Slug() == want {
				return t, true
			}
		}
		return catalog.Topic{}, false
	}

	for _, t := range topics {
		if !emitted[t.Path] && strings.Contains(t.Path, e.Fragment) {
			return t, true
		}
	}
	return catalog.Topic{}, false
}

func placeholder(e Entry) catalog.Topic {
	slug := e.Fragment
	if slug == "" {
		slug = Slugify(e.Name)
	}
	return catalog.Topic{
		Path:       "/" + slug,
		Heading:    e.Name,
		SubHeading: PlaceholderSubHeading,
	}
}

var whitespace = regexp.MustCompile(`\s+`)

// Slugify lower-cases a name and replaces whitespace runs with underscores.
func Slugify(name string) string {
	return whitespace.ReplaceAllString(strings.ToLower(strings.TrimSpace(name)), "_")
}

// IsPlaceholder reports whether t was synthesized for a missing topic.
func IsPlaceholder(t catalog.Topic) bool {
	return t.SubHeading == PlaceholderSubHeading && len(t.Categories) == 0
}
