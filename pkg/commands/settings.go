package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	goversion "go.hein.dev/go-version"

	"tableflip.dev/willow/pkg/runner/info"
	"tableflip.dev/willow/pkg/runner/key"
	"tableflip.dev/willow/pkg/runner/theme"
)

func addTheme(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:       "theme [light|dark|toggle]",
		Short:     "Show or change the color theme of the interactive planner.",
		ValidArgs: []string{"light", "dark", "toggle"},
		Example: `
willow theme
willow theme dark
willow theme toggle
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if err := cobra.MaximumNArgs(1)(cmd, args); err != nil {
				return err
			}
			return cobra.OnlyValidArgs(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnvironment(cmd, oo, func(ctx context.Context, e *environment) error {
				s := theme.Theme{Preferences: e.preferences, Out: cmd.OutOrStdout()}
				if len(args) == 1 {
					s.Set = args[0]
				}
				return s.Do(ctx)
			})
		},
	}

	topLevel.AddCommand(cmd)
}

func addInfo(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Where willow reads its configuration and keeps its files.",
		Example: `
willow info
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withEnvironment(cmd, oo, func(ctx context.Context, e *environment) error {
				s := info.Info{
					Config:      e.config,
					Session:     e.session,
					Preferences: e.preferences,
					Out:         cmd.OutOrStdout(),
				}
				return s.Do(ctx)
			})
		},
	}

	topLevel.AddCommand(cmd)
}

func addKey(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "key",
		Short: "Print the legend of the marks used in lists.",
		Example: `
willow key
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s := key.Key{Out: cmd.OutOrStdout()}
			return s.Do(context.Background())
		},
	}

	topLevel.AddCommand(cmd)
}

func addVersion(topLevel *cobra.Command) {
	shortened := false
	version := "dev"
	commit := "none"
	date := "unknown"
	output := "json"
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Get willow version.",
		Example: `
willow version
willow version --short
`,
		Args: cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			resp := goversion.FuncWithOutput(shortened, version, commit, date, output)
			_, _ = fmt.Fprint(cmd.OutOrStdout(), resp)
		},
	}

	cmd.Flags().BoolVarP(&shortened, "short", "s", false, "Print just the version number.")
	cmd.Flags().StringVarP(&output, "output", "o", "json", "Output format. One of 'yaml' or 'json'.")

	topLevel.AddCommand(cmd)
}
