package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/p-n-ai/dsa-sheet/internal/catalog"
	"github.com/p-n-ai/dsa-sheet/internal/session"
)

func newLoginCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "login <name> <email>",
		Short: "Set the local display name",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			id := a.session.Login(args[0], args[1])
			fmt.Fprintf(cmd.OutOrStdout(), "welcome, %s\n", styles.Heading.Render(id.DisplayName()))
			return nil
		},
	}
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear the local display name",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			a.session.Logout()
			fmt.Fprintln(cmd.OutOrStdout(), "logged out")
			return nil
		},
	}
}

func newWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the local display name",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			id := a.session.Current()
			if !id.LoggedIn {
				fmt.Fprintln(cmd.OutOrStdout(), styles.Muted.Render("not logged in"))
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s <%s>\n", id.DisplayName(), id.Email)
			return nil
		},
	}
}

func newThemeCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "theme [toggle|light|dark]",
		Short:     "Show or change the theme preference",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"toggle", "light", "dark"},
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			if len(args) == 1 {
				if args[0] == "toggle" {
					a.theme.Toggle()
				} else {
					t, err := session.ParseTheme(args[0])
					if err != nil {
						return err
					}
					a.theme.Set(t)
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), a.theme.Theme())
			return nil
		},
	}
}

func newQuoteCmd() *cobra.Command {
	var random bool

	cmd := &cobra.Command{
		Use:   "quote",
		Short: "Print a motivational quote",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			c, err := loadCatalog(cfg)
			if err != nil {
				return err
			}

			r := catalog.NewRotator(c.Header.Quotes)
			q, ok := r.Current()
			if random {
				q, ok = r.Random()
			}
			if !ok {
				return fmt.Errorf("catalog has no quotes")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\n  %s\n", styles.Quote.Render(`"`+q.Text+`"`), styles.Muted.Render("- "+q.Author))
			return nil
		},
	}
	cmd.Flags().BoolVarP(&random, "random", "r", false, "pick a random quote")
	return cmd
}
