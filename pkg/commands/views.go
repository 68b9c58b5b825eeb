package commands

import (
	"context"
	"errors"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"tableflip.dev/willow/pkg/commands/options"
	"tableflip.dev/willow/pkg/planner"
	"tableflip.dev/willow/pkg/runner/calendar"
	"tableflip.dev/willow/pkg/runner/today"
	"tableflip.dev/willow/pkg/runner/ui"
)

func addToday(topLevel *cobra.Command) {
	on := &options.OnOptions{}
	io := &options.IDOptions{}
	po := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:   "today",
		Short: "Print the dashboard: quote, progress, tasks, goals, schedule and notes.",
		Example: `
willow today
willow today --on tomorrow --show-id
`,
		Args: cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			return po.Validate()
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			day, err := on.GetOn()
			if err != nil {
				return err
			}
			return withSession(cmd, po, func(ctx context.Context, e *environment) error {
				s := today.Today{
					Controller: e.controller,
					On:         day,
					ShowID:     io.ShowID,
					Format:     po.Format,
					Out:        cmd.OutOrStdout(),
				}
				return s.Do(ctx)
			})
		},
	}

	options.AddOnArgs(cmd, on)
	options.AddShowIDArgs(cmd, io)
	options.AddOutputArg(cmd, po)

	topLevel.AddCommand(cmd)
}

func addCalendar(topLevel *cobra.Command) {
	mo := &options.MonthOptions{}
	po := &options.OutputOptions{}
	long := false

	cmd := &cobra.Command{
		Use:     "calendar",
		Aliases: []string{"cal"},
		Short:   "Print a month of dated tasks.",
		Example: `
willow calendar
willow calendar --month 2025-3 --long
`,
		Args: cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			return po.Validate()
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			now := time.Now()
			month, err := mo.GetMonth(now)
			if err != nil {
				return err
			}
			return withSession(cmd, po, func(ctx context.Context, e *environment) error {
				s := calendar.Calendar{
					Controller: e.controller,
					Month:      month,
					Today:      planner.DateOf(now),
					Long:       long,
					Format:     po.Format,
					Out:        cmd.OutOrStdout(),
				}
				return s.Do(ctx)
			})
		},
	}

	options.AddMonthArgs(cmd, mo)
	options.AddOutputArg(cmd, po)
	cmd.Flags().BoolVarP(&long, "long", "l", false, "List each day's tasks under the grid.")

	topLevel.AddCommand(cmd)
}

func addUI(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "ui",
		Short: "Open the interactive planner.",
		Example: `
willow ui
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !options.Interactive() {
				return errors.New("the interactive planner needs a terminal")
			}
			return runUI(cmd)
		},
	}

	topLevel.AddCommand(cmd)
}

// runUI resumes the saved session when it can and opens the UI either way;
// without a session the UI starts on the login screen.
func runUI(cmd *cobra.Command) error {
	return withEnvironment(cmd, oo, func(ctx context.Context, e *environment) error {
		if err := e.resume(ctx); err != nil {
			if e.controller == nil {
				return err
			}
			e.logger.Info("starting logged out", zap.Error(err))
		}
		s := ui.UI{
			Controller:  e.controller,
			Preferences: e.preferences,
			Session:     e.session,
			Disk:        e.disk,
			Logger:      e.logger,
		}
		return s.Do(ctx)
	})
}
