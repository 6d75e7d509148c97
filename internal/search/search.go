// Package search finds questions by heading and narrows the results by
// difficulty and bookmark state.
package search

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/p-n-ai/dsa-sheet/internal/catalog"
	"github.com/p-n-ai/dsa-sheet/internal/difficulty"
)

// BookmarkChecker reports whether a question is bookmarked.
type BookmarkChecker interface {
	IsBookmarked(id string) bool
}

// Hit is a matching question with its owning topic and category.
type Hit struct {
	Question     catalog.Question `json:"question"`
	TopicName    string           `json:"topicName"`
	TopicPath    string           `json:"topicPath"`
	CategoryName string           `json:"categoryName"`
	CategoryID   int              `json:"categoryId"`
}

// Level returns the difficulty of the hit's category.
func (h Hit) Level() difficulty.Level {
	return difficulty.Classify(h.CategoryID)
}

// Result is the outcome of a search. Searched is false only when the query
// was blank, which is distinct from a query that matched nothing.
type Result struct {
	Hits     []Hit
	Searched bool
}

// Count is the number of hits after all filters.
func (r Result) Count() int {
	return len(r.Hits)
}

// FilterOptions reports which filter controls are available.
type FilterOptions struct {
	BookmarkFilterEnabled bool `json:"bookmarkFilterEnabled"`
}

// Query combines search text with the optional filters.
type Query struct {
	Text          string
	Level         difficulty.Level
	BookmarksOnly bool
}

// Search matches query against question headings, case-insensitively, in
// topic, category, question order.
func Search(c *catalog.Catalog, query string) Result {
	if isBlank(query) {
		return Result{}
	}

	needle := fold(query)
	res := Result{Searched: true}
	walk(c, func(h Hit) {
		if strings.Contains(fold(h.Question.Heading), needle) {
			res.Hits = append(res.Hits, h)
		}
	})
	return res
}

// FilterByDifficulty keeps hits whose category classifies to level.
func FilterByDifficulty(hits []Hit, level difficulty.Level) []Hit {
	if level == difficulty.All || level == "" {
		return hits
	}
	var out []Hit
	for _, h := range hits {
		if difficulty.Matches(h.CategoryID, level) {
			out = append(out, h)
		}
	}
	return out
}

// FilterByBookmark keeps bookmarked hits when only is set.
func FilterByBookmark(hits []Hit, only bool, b BookmarkChecker) []Hit {
	if !only || b == nil {
		return hits
	}
	var out []Hit
	for _, h := range hits {
		if b.IsBookmarked(h.Question.ID) {
			out = append(out, h)
		}
	}
	return out
}

// Run applies search text, then difficulty, then bookmark filtering.
func Run(c *catalog.Catalog, q Query, b BookmarkChecker) Result {
	res := Search(c, q.Text)
	if !res.Searched {
		return res
	}
	res.Hits = FilterByDifficulty(res.Hits, q.Level)
	res.Hits = FilterByBookmark(res.Hits, q.BookmarksOnly, b)
	return res
}

// Apply disables the bookmark filter when the options do not offer it.
func (o FilterOptions) Apply(q Query) Query {
	if !o.BookmarkFilterEnabled {
		q.BookmarksOnly = false
	}
	return q
}

// Bookmarks lists bookmarked questions filtered by level, then by text
// matched against the question heading, topic name or category name.
func Bookmarks(c *catalog.Catalog, b BookmarkChecker, text string, level difficulty.Level) []Hit {
	if b == nil {
		return nil
	}

	var hits []Hit
	walk(c, func(h Hit) {
		if b.IsBookmarked(h.Question.ID) {
			hits = append(hits, h)
		}
	})
	hits = FilterByDifficulty(hits, level)
	if text == "" {
		return hits
	}

	needle := fold(text)
	var out []Hit
	for _, h := range hits {
		if strings.Contains(fold(h.Question.Heading), needle) ||
			strings.Contains(fold(h.TopicName), needle) ||
			strings.Contains(fold(h.CategoryName), needle) {
			out = append(out, h)
		}
	}
	return out
}

// Topics filters topics by heading or subheading. Blank text returns topics.
func Topics(topics []catalog.Topic, text string) []catalog.Topic {
	if isBlank(text) {
		return topics
	}
	needle := fold(text)
	var out []catalog.Topic
	for _, t := range topics {
		if strings.Contains(fold(t.Heading), needle) || strings.Contains(fold(t.SubHeading), needle) {
			out = append(out, t)
		}
	}
	return out
}

func walk(c *catalog.Catalog, fn func(Hit)) {
	if c == nil {
		return
	}
	for _, t := range c.Topics {
		for _, cat := range t.Categories {
			for _, q := range cat.Questions {
				fn(Hit{
					Question:     q,
					TopicName:    t.Heading,
					TopicPath:    t.Path,
					CategoryName: cat.Name,
					CategoryID:   cat.ID,
				})
			}
		}
	}
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// fold applies Unicode case folding. Casers hold state, so each call gets its own.
func fold(s string) string {
	return cases.Fold().String(s)
}
