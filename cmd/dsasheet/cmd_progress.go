package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/p-n-ai/dsa-sheet/internal/export"
	"github.com/p-n-ai/dsa-sheet/internal/progress"
)

// mutate opens the app, checks that id is in the catalog and runs fn.
func mutate(cmd *cobra.Command, id string, fn func(a *app) string) error {
	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	if _, _, _, ok := a.catalog.Locate(id); !ok {
		return fmt.Errorf("question %q not found", id)
	}
	fmt.Fprintln(cmd.OutOrStdout(), fn(a))
	return nil
}

func newDoneCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "done <id>",
		Short: "Toggle a question's completed flag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return mutate(cmd, args[0], func(a *app) string {
				if a.progress.ToggleCompleted(args[0]) {
					return styles.Success.Render("completed " + args[0])
				}
				return "cleared " + args[0]
			})
		},
	}
}

func newBookmarkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "bookmark <id>",
		Short: "Toggle a question's bookmark",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return mutate(cmd, args[0], func(a *app) string {
				if a.progress.ToggleBookmarked(args[0]) {
					return "bookmarked " + args[0]
				}
				return "removed bookmark " + args[0]
			})
		},
	}
}

func newNoteCmd() *cobra.Command {
	var clearNote bool

	cmd := &cobra.Command{
		Use:   "note <id> [text...]",
		Short: "Show or set a question's note",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			return mutate(cmd, id, func(a *app) string {
				if len(args) == 1 && !clearNote {
					if note := a.progress.Note(id); note != "" {
						return note
					}
					return styles.Muted.Render("no note for " + id)
				}
				text := strings.Join(args[1:], " ")
				a.progress.SetNote(id, text)
				if text == "" {
					return "cleared note for " + id
				}
				return "saved note for " + id
			})
		},
	}
	cmd.Flags().BoolVar(&clearNote, "clear", false, "remove the note")
	return cmd
}

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show completion statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			sum := progress.Stats(a.catalog, a.progress)
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "%s %s %d%% (%d/%d), %d bookmarked\n",
				styles.Title.Render("Overall"), progressBar(sum.Count, 30),
				sum.Percent, sum.Completed, sum.Total, sum.Bookmarked)
			for _, t := range sum.Topics {
				fmt.Fprintf(w, "  %-28s %s %3d%% (%d/%d)\n",
					t.Heading, progressBar(t.Count, 20), t.Percent, t.Completed, t.Total)
			}
			return nil
		},
	}
}

func newExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export <file.xlsx>",
		Short: "Write the catalog and progress to a spreadsheet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			if err := export.WriteFile(args[0], a.catalog, a.progress); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", args[0])
			return nil
		},
	}
}
