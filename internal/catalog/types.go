package catalog

import "strings"

// Catalog is the read-only question set. It is built once by Load or Parse
// and never mutated afterwards.
type Catalog struct {
	Header Header  `yaml:"header" json:"header"`
	Topics []Topic `yaml:"content" json:"topics" validate:"dive"`

	index map[string]position
}

// Header holds catalog-wide metadata.
type Header struct {
	Quotes                []Quote `yaml:"motivationalQuotes" json:"quotes" validate:"dive"`
	BookmarkFilterEnabled bool    `yaml:"isBookmarkFilterRequired" json:"bookmarkFilterEnabled"`
	TotalQuestions        int     `yaml:"totalQuestions" json:"totalQuestions" validate:"gte=0"`
	CompletedQuestions    int     `yaml:"completedQuestions" json:"completedQuestions" validate:"gte=0"`
}

// Quote is a motivational quote shown on the landing view.
type Quote struct {
	Text   string `yaml:"quote" json:"quote" validate:"required"`
	Author string `yaml:"author" json:"author"`
}

// Topic is a top-level subject grouping such as "Arrays".
type Topic struct {
	Path               string     `yaml:"contentPath" json:"path" validate:"required,startswith=/"`
	Heading            string     `yaml:"contentHeading" json:"heading" validate:"required"`
	SubHeading         string     `yaml:"contentSubHeading" json:"subHeading,omitempty"`
	TotalQuestions     int        `yaml:"contentTotalQuestions" json:"totalQuestions" validate:"gte=0"`
	CompletedQuestions int        `yaml:"contentCompletedQuestions" json:"completedQuestions" validate:"gte=0"`
	Categories         []Category `yaml:"categoryList" json:"categories" validate:"dive"`
}

// Slug returns the topic path without its leading slash.
func (t Topic) Slug() string {
	return strings.TrimPrefix(t.Path, "/")
}

// QuestionCount counts the questions listed under the topic.
func (t Topic) QuestionCount() int {
	n := 0
	for _, c := range t.Categories {
		n += len(c.Questions)
	}
	return n
}

// Category is a difficulty-banded subgroup within a topic. The counters are
// denormalized display values and are not authoritative.
type Category struct {
	ID                 int        `yaml:"categoryId" json:"id"`
	Name               string     `yaml:"categoryName" json:"name" validate:"required"`
	TotalQuestions     int        `yaml:"categoryTotalQuestions" json:"totalQuestions" validate:"gte=0"`
	CompletedQuestions int        `yaml:"categoryCompletedQuestions" json:"completedQuestions" validate:"gte=0"`
	Questions          []Question `yaml:"questionList" json:"questions" validate:"dive"`
}

// Question is a single practice problem.
type Question struct {
	ID      string `yaml:"questionId" json:"id" validate:"required"`
	Heading string `yaml:"questionHeading" json:"heading" validate:"required"`
	Index   int    `yaml:"questionIndex" json:"index" validate:"gte=0"`
	Links   Links  `yaml:",inline" json:"links"`
}

// Links are the optional external resources for a question. Empty means absent.
type Links struct {
	Article  string `yaml:"questionLink" json:"article,omitempty" validate:"omitempty,url"`
	GFG      string `yaml:"gfgLink" json:"gfg,omitempty" validate:"omitempty,url"`
	LeetCode string `yaml:"leetCodeLink" json:"leetCode,omitempty" validate:"omitempty,url"`
	YouTube  string `yaml:"youTubeLink" json:"youTube,omitempty" validate:"omitempty,url"`
}

type position struct {
	topic, category, question int
}

// TopicBySlug finds a topic by its slug (path without the leading slash).
func (c *Catalog) TopicBySlug(slug string) (Topic, bool) {
	for _, t := range c.Topics {
		if t.Slug() == slug {
			return t, true
		}
	}
	return Topic{}, false
}

// Locate returns the topic, category and question for a question id.
func (c *Catalog) Locate(id string) (Topic, Category, Question, bool) {
	if c.index != nil {
		p, ok := c.index[id]
		if !ok {
			return Topic{}, Category{}, Question{}, false
		}
		t := c.Topics[p.topic]
		cat := t.Categories[p.category]
		return t, cat, cat.Questions[p.question], true
	}

	// Catalogs assembled in code have no index.
	for _, t := range c.Topics {
		for _, cat := range t.Categories {
			for _, q := range cat.Questions {
				if q.ID == id {
					return t, cat, q, true
				}
			}
		}
	}
	return Topic{}, Category{}, Question{}, false
}

// QuestionCount counts every question in the catalog.
func (c *Catalog) QuestionCount() int {
	n := 0
	for _, t := range c.Topics {
		n += t.QuestionCount()
	}
	return n
}

func (c *Catalog) buildIndex() {
	c.index = make(map[string]position, c.QuestionCount())
	for ti, t := range c.Topics {
		for ci, cat := range t.Categories {
			for qi, q := range cat.Questions {
				if _, dup := c.index[q.ID]; !dup {
					c.index[q.ID] = position{ti, ci, qi}
				}
			}
		}
	}
}
