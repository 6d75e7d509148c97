package main

import (
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "dsasheet",
		Short:         "Track progress through a DSA practice sheet",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	root.AddCommand(
		newServeCmd(),
		newTopicsCmd(),
		newTopicCmd(),
		newSearchCmd(),
		newBookmarksCmd(),
		newDoneCmd(),
		newBookmarkCmd(),
		newNoteCmd(),
		newShowCmd(),
		newStatsCmd(),
		newLoginCmd(),
		newLogoutCmd(),
		newWhoamiCmd(),
		newThemeCmd(),
		newQuoteCmd(),
		newExportCmd(),
		newValidateCmd(),
	)
	return root
}
