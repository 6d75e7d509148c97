package search

import (
	"strings"

	"github.com/p-n-ai/dsa-sheet/internal/catalog"
	"github.com/p-n-ai/dsa-sheet/internal/difficulty"
)

// CategoryView is a category with the questions that survived filtering.
type CategoryView struct {
	ID        int                `json:"id"`
	Name      string             `json:"name"`
	Level     difficulty.Level   `json:"difficulty"`
	Total     int                `json:"total"`
	Questions []catalog.Question `json:"questions"`
}

// View is a topic detail page. Every category is kept, even when empty.
type View struct {
	Topic      catalog.Topic  `json:"-"`
	Path       string         `json:"path"`
	Heading    string         `json:"heading"`
	SubHeading string         `json:"subHeading,omitempty"`
	Categories []CategoryView `json:"categories"`
}

// HasQuestions reports whether any category kept a question.
func (v View) HasQuestions() bool {
	for _, c := range v.Categories {
		if len(c.Questions) > 0 {
			return true
		}
	}
	return false
}

// TopicView filters the topic with the given slug. It returns false when
// no such topic exists.
func TopicView(c *catalog.Catalog, slug string, q Query, b BookmarkChecker) (View, bool) {
	if c == nil {
		return View{}, false
	}
	t, ok := c.TopicBySlug(strings.TrimPrefix(slug, "/"))
	if !ok {
		return View{}, false
	}

	needle := ""
	if !isBlank(q.Text) {
		needle = fold(q.Text)
	}

	v := View{
		Topic:      t,
		Path:       t.Path,
		Heading:    t.Heading,
		SubHeading: t.SubHeading,
		Categories: make([]CategoryView, 0, len(t.Categories)),
	}
	for _, cat := range t.Categories {
		cv := CategoryView{
			ID:        cat.ID,
			Name:      cat.Name,
			Level:     difficulty.Classify(cat.ID),
			Total:     len(cat.Questions),
			Questions: []catalog.Question{},
		}
		if difficulty.Matches(cat.ID, q.Level) {
			for _, question := range cat.Questions {
				if needle != "" && !strings.Contains(fold(question.Heading), needle) {
					continue
				}
				if q.BookmarksOnly && (b == nil || !b.IsBookmarked(question.ID)) {
					continue
				}
				cv.Questions = append(cv.Questions, question)
			}
		}
		v.Categories = append(v.Categories, cv)
	}
	return v, true
}
