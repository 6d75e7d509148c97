package search_test

import (
	"testing"

	"github.com/p-n-ai/dsa-sheet/internal/difficulty"
	"github.com/p-n-ai/dsa-sheet/internal/search"
)

func TestTopicView_NotFound(t *testing.T) {
	if _, ok := search.TopicView(testCatalog(), "graphs", search.Query{}, nil); ok {
		t.Error("TopicView(graphs) found a topic")
	}
	if _, ok := search.TopicView(nil, "arrays", search.Query{}, nil); ok {
		t.Error("TopicView(nil catalog) found a topic")
	}
}

func TestTopicView(t *testing.T) {
	b := bookmarks{"a2": true}

	tests := []struct {
		name    string
		slug    string
		query   search.Query
		want    [][]string
		wantAny bool
	}{
		{"no filters", "arrays", search.Query{}, [][]string{{"a1", "a2"}, {"a3"}}, true},
		{"leading slash", "/arrays", search.Query{}, [][]string{{"a1", "a2"}, {"a3"}}, true},
		{"text", "arrays", search.Query{Text: "sum"}, [][]string{{"a1"}, {"a3"}}, true},
		{"level", "arrays", search.Query{Level: difficulty.Hard}, [][]string{{}, {"a3"}}, true},
		{"bookmarks", "arrays", search.Query{BookmarksOnly: true}, [][]string{{"a2"}, {}}, true},
		{"nothing survives", "arrays", search.Query{Text: "zzz"}, [][]string{{}, {}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, ok := search.TopicView(testCatalog(), tt.slug, tt.query, b)
			if !ok {
				t.Fatal("TopicView() not found")
			}
			if v.Heading != "Arrays" || v.Path != "/arrays" {
				t.Errorf("view header = %q %q", v.Heading, v.Path)
			}
			if len(v.Categories) != len(tt.want) {
				t.Fatalf("len(Categories) = %d, want %d", len(v.Categories), len(tt.want))
			}
			for i, want := range tt.want {
				var got []string
				for _, q := range v.Categories[i].Questions {
					got = append(got, q.ID)
				}
				if !equal(got, want) {
					t.Errorf("category %d = %v, want %v", i, got, want)
				}
			}
			if v.HasQuestions() != tt.wantAny {
				t.Errorf("HasQuestions() = %v, want %v", v.HasQuestions(), tt.wantAny)
			}
		})
	}
}

func TestTopicView_CategoryLevels(t *testing.T) {
	v, _ := search.TopicView(testCatalog(), "arrays", search.Query{}, nil)
	if v.Categories[0].Level != difficulty.Easy || v.Categories[1].Level != difficulty.Hard {
		t.Errorf("levels = %s, %s", v.Categories[0].Level, v.Categories[1].Level)
	}
	if v.Categories[0].Total != 2 {
		t.Errorf("Total = %d, want 2", v.Categories[0].Total)
	}
}
