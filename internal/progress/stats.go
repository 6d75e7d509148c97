package progress

import (
	"math"

	"github.com/p-n-ai/dsa-sheet/internal/catalog"
)

// Count is a completion tally.
type Count struct {
	Total      int `json:"total"`
	Completed  int `json:"completed"`
	Bookmarked int `json:"bookmarked"`
	Percent    int `json:"percent"`
}

func (c *Count) add(r Reader, id string) {
	c.Total++
	if r.IsCompleted(id) {
		c.Completed++
	}
	if r.IsBookmarked(id) {
		c.Bookmarked++
	}
}

func (c *Count) merge(o Count) {
	c.Total += o.Total
	c.Completed += o.Completed
	c.Bookmarked += o.Bookmarked
}

func (c *Count) finish() {
	c.Percent = Percent(c.Completed, c.Total)
}

// CategoryStats tallies one category.
type CategoryStats struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Count
}

// TopicStats tallies one topic and its categories.
type TopicStats struct {
	Path       string          `json:"path"`
	Heading    string          `json:"heading"`
	Categories []CategoryStats `json:"categories"`
	Count
}

// Summary tallies a whole catalog.
type Summary struct {
	Topics []TopicStats `json:"topics"`
	Count
}

// Percent returns completed/total as a rounded percentage, 0 when total is 0.
func Percent(completed, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(completed) * 100 / float64(total)))
}

// Stats computes counts from the question lists and r, ignoring the
// catalog's denormalized counters.
func Stats(c *catalog.Catalog, r Reader) Summary {
	var s Summary
	if c == nil {
		return s
	}
	for _, t := range c.Topics {
		ts := TopicSummary(t, r)
		s.Topics = append(s.Topics, ts)
		s.merge(ts.Count)
	}
	s.finish()
	return s
}

// TopicSummary computes counts for a single topic.
func TopicSummary(t catalog.Topic, r Reader) TopicStats {
	ts := TopicStats{Path: t.Path, Heading: t.Heading}
	for _, cat := range t.Categories {
		cs := CategoryStats{ID: cat.ID, Name: cat.Name}
		for _, q := range cat.Questions {
			cs.add(r, q.ID)
		}
		cs.finish()
		ts.Categories = append(ts.Categories, cs)
		ts.merge(cs.Count)
	}
	ts.finish()
	return ts
}
