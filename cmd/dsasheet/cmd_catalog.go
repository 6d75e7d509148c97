package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/p-n-ai/dsa-sheet/internal/catalog"
	"github.com/p-n-ai/dsa-sheet/internal/difficulty"
	"github.com/p-n-ai/dsa-sheet/internal/organizer"
	"github.com/p-n-ai/dsa-sheet/internal/progress"
	"github.com/p-n-ai/dsa-sheet/internal/search"
)

func newTopicsCmd() *cobra.Command {
	var query string

	cmd := &cobra.Command{
		Use:   "topics",
		Short: "List topics in display order with completion",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			w := cmd.OutOrStdout()
			for _, t := range search.Topics(organizer.Organize(a.catalog), query) {
				if organizer.IsPlaceholder(t) {
					fmt.Fprintf(w, "  %-48s %s\n", t.Heading, styles.Muted.Render(t.SubHeading))
					continue
				}
				c := progress.TopicSummary(t, a.progress).Count
				fmt.Fprintf(w, "  %-48s %s %3d%% (%d/%d)  %s\n",
					styles.Heading.Render(t.Heading), progressBar(c, 20), c.Percent, c.Completed, c.Total,
					styles.Muted.Render(t.Slug()))
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&query, "query", "q", "", "filter topics by heading or subheading")
	return cmd
}

func newTopicCmd() *cobra.Command {
	var f queryFlags

	cmd := &cobra.Command{
		Use:   "topic <slug>",
		Short: "Show one topic's questions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			q, err := f.query(a)
			if err != nil {
				return err
			}
			v, ok := search.TopicView(a.catalog, args[0], q, a.progress)
			if !ok {
				return fmt.Errorf("topic %q not found", args[0])
			}

			w := cmd.OutOrStdout()
			fmt.Fprintln(w, styles.Title.Render(v.Heading))
			if v.SubHeading != "" {
				fmt.Fprintln(w, styles.Muted.Render(v.SubHeading))
			}
			for _, c := range v.Categories {
				fmt.Fprintf(w, "\n%s %s\n", styles.Heading.Render(c.Name), renderLevel(c.Level))
				for _, question := range c.Questions {
					fmt.Fprintf(w, "  %s %s %-22s %s\n",
						checkbox(a.progress.IsCompleted(question.ID)),
						star(a.progress.IsBookmarked(question.ID)),
						question.ID, question.Heading)
				}
			}
			if !v.HasQuestions() {
				fmt.Fprintln(w, styles.Muted.Render("\nNo questions match the current filters."))
			}
			return nil
		},
	}
	f.register(cmd, true)
	return cmd
}

func newSearchCmd() *cobra.Command {
	var f queryFlags

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search question headings",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			f.text = strings.Join(args, " ")
			q, err := f.query(a)
			if err != nil {
				return err
			}

			res := search.Run(a.catalog, q, a.progress)
			w := cmd.OutOrStdout()
			if !res.Searched {
				fmt.Fprintln(w, styles.Muted.Render("Type something to search."))
				return nil
			}
			fmt.Fprintf(w, "%s\n", styles.Title.Render(fmt.Sprintf("%d results", res.Count())))
			if res.Count() == 0 {
				fmt.Fprintln(w, styles.Muted.Render("No questions found."))
				return nil
			}
			printHits(w, res.Hits, a.progress)
			return nil
		},
	}
	f.register(cmd, false)
	return cmd
}

func newBookmarksCmd() *cobra.Command {
	var (
		text  string
		level string
	)

	cmd := &cobra.Command{
		Use:   "bookmarks",
		Short: "List bookmarked questions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			l, err := difficulty.Parse(level)
			if err != nil {
				return err
			}
			hits := search.Bookmarks(a.catalog, a.progress, text, l)
			w := cmd.OutOrStdout()
			if len(hits) == 0 {
				fmt.Fprintln(w, styles.Muted.Render("No bookmarked questions."))
				return nil
			}
			printHits(w, hits, a.progress)
			return nil
		},
	}
	cmd.Flags().StringVarP(&text, "query", "q", "", "match heading, topic or category name")
	cmd.Flags().StringVarP(&level, "difficulty", "d", "all", "all, easy, medium or hard")
	return cmd
}

func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a question with its links, status and note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			id := args[0]
			t, c, q, ok := a.catalog.Locate(id)
			if !ok {
				return fmt.Errorf("question %q not found", id)
			}

			var b strings.Builder
			fmt.Fprintf(&b, "%s\n", styles.Title.Render(q.Heading))
			fmt.Fprintf(&b, "%s / %s  %s\n", t.Heading, c.Name, renderLevel(difficulty.Classify(c.ID)))
			fmt.Fprintf(&b, "completed %s  bookmarked %s\n", checkbox(a.progress.IsCompleted(id)), checkbox(a.progress.IsBookmarked(id)))
			for _, l := range links(q.Links) {
				fmt.Fprintf(&b, "%-9s %s\n", l[0], l[1])
			}
			if note := a.progress.Note(id); note != "" {
				fmt.Fprintf(&b, "\n%s\n", note)
			}
			fmt.Fprintln(cmd.OutOrStdout(), styles.Box.Render(strings.TrimRight(b.String(), "\n")))
			return nil
		},
	}
}

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [path]",
		Short: "Validate a catalog file or directory",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if len(args) == 1 {
				cfg.CatalogPath = args[0]
			}

			c, err := loadCatalog(cfg)
			w := cmd.OutOrStdout()
			var verr *catalog.ValidationError
			if errors.As(err, &verr) {
				for _, p := range verr.Problems {
					fmt.Fprintln(w, styles.Error.Render("  - "+p))
				}
				return fmt.Errorf("%d catalog problems", len(verr.Problems))
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(w, "%s %d topics, %d questions\n", styles.Success.Render("ok"), len(c.Topics), c.QuestionCount())
			return nil
		},
	}
}

// queryFlags are the search filters shared by topic and search.
type queryFlags struct {
	text       string
	level      string
	bookmarked bool
}

func (f *queryFlags) register(cmd *cobra.Command, withText bool) {
	if withText {
		cmd.Flags().StringVarP(&f.text, "query", "q", "", "filter question headings")
	}
	cmd.Flags().StringVarP(&f.level, "difficulty", "d", "all", "all, easy, medium or hard")
	cmd.Flags().BoolVarP(&f.bookmarked, "bookmarked", "b", false, "only bookmarked questions")
}

func (f *queryFlags) query(a *app) (search.Query, error) {
	level, err := difficulty.Parse(f.level)
	if err != nil {
		return search.Query{}, err
	}
	return a.filterOptions().Apply(search.Query{Text: f.text, Level: level, BookmarksOnly: f.bookmarked}), nil
}

func links(l catalog.Links) [][2]string {
	var out [][2]string
	for _, kv := range [][2]string{
		{"article", l.Article},
		{"leetcode", l.LeetCode},
		{"gfg", l.GFG},
		{"youtube", l.YouTube},
	} {
		if kv[1] != "" {
			out = append(out, kv)
		}
	}
	return out
}
