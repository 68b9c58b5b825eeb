package commands

import (
	"context"
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/willow/pkg/commands/options"
	"tableflip.dev/willow/pkg/planner"
	"tableflip.dev/willow/pkg/runner/categories"
	"tableflip.dev/willow/pkg/runner/events"
	"tableflip.dev/willow/pkg/runner/goals"
	"tableflip.dev/willow/pkg/runner/note"
)

func addCategory(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "category",
		Aliases: []string{"categories"},
		Short:   "List and add task categories.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	io := &options.IDOptions{}
	po := &options.OutputOptions{}
	list := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List categories and how many tasks each holds.",
		Example: `
willow category list --show-id
`,
		Args: cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			return po.Validate()
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withSession(cmd, po, func(ctx context.Context, e *environment) error {
				s := categories.List{Controller: e.controller, ShowID: io.ShowID, Format: po.Format, Out: cmd.OutOrStdout()}
				return s.Do(ctx)
			})
		},
	}
	options.AddShowIDArgs(list, io)
	options.AddOutputArg(list, po)

	add := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a category.",
		Example: `
willow category add chores
`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, oo, func(ctx context.Context, e *environment) error {
				s := categories.Add{Controller: e.controller, Name: strings.Join(args, " "), Out: cmd.OutOrStdout()}
				return s.Do(ctx)
			})
		},
	}

	cmd.AddCommand(list, add)
	topLevel.AddCommand(cmd)
}

func addGoal(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "goal",
		Aliases: []string{"goals", "focus"},
		Short:   "Daily goals: list, add, toggle and delete.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	on := &options.OnOptions{}
	io := &options.IDOptions{}
	po := &options.OutputOptions{}
	list := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List the goals for a day.",
		Example: `
willow goal list
willow goal list --on yesterday
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
				s := goals.List{Controller: e.controller, On: day, ShowID: io.ShowID, Format: po.Format, Out: cmd.OutOrStdout()}
				return s.Do(ctx)
			})
		},
	}
	options.AddOnArgs(list, on)
	options.AddShowIDArgs(list, io)
	options.AddOutputArg(list, po)

	addOn := &options.OnOptions{}
	add := &cobra.Command{
		Use:   "add <text>",
		Short: "Add a goal for a day.",
		Example: `
willow goal add Finish the draft
willow goal add Call mom --on tomorrow
`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := addOn.GetOn()
			if err != nil {
				return err
			}
			return withSession(cmd, oo, func(ctx context.Context, e *environment) error {
				s := goals.Add{Controller: e.controller, Text: strings.Join(args, " "), On: day, Out: cmd.OutOrStdout()}
				return s.Do(ctx)
			})
		},
	}
	options.AddOnArgs(add, addOn)

	toggle := &cobra.Command{
		Use:   "toggle <id>",
		Short: "Flip a goal between done and not done.",
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := options.ParseID(args)
			if err != nil {
				return err
			}
			return withSession(cmd, oo, func(ctx context.Context, e *environment) error {
				s := goals.Toggle{Controller: e.controller, ID: id, Out: cmd.OutOrStdout()}
				return s.Do(ctx)
			})
		},
	}

	co := &options.ConfirmOptions{}
	del := &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a goal.",
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := options.ParseID(args)
			if err != nil {
				return err
			}
			return withSession(cmd, oo, func(ctx context.Context, e *environment) error {
				s := goals.Delete{Controller: e.controller, ID: id, Confirm: co.Confirm(), Out: cmd.OutOrStdout()}
				return s.Do(ctx)
			})
		},
	}
	options.AddConfirmArgs(del, co)

	cmd.AddCommand(list, add, toggle, del)
	topLevel.AddCommand(cmd)
}

func addEvent(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "event",
		Aliases: []string{"events", "schedule"},
		Short:   "The hourly schedule: list, add and delete events.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	on := &options.OnOptions{}
	io := &options.IDOptions{}
	po := &options.OutputOptions{}
	busy := false
	list := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "Show the schedule for a day, one row per hour.",
		Example: `
willow event list
willow event list --busy --on 3/4
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
				s := events.List{
					Controller: e.controller,
					On:         day,
					BusyOnly:   busy,
					ShowID:     io.ShowID,
					Format:     po.Format,
					Out:        cmd.OutOrStdout(),
				}
				return s.Do(ctx)
			})
		},
	}
	options.AddOnArgs(list, on)
	options.AddShowIDArgs(list, io)
	options.AddOutputArg(list, po)
	list.Flags().BoolVar(&busy, "busy", false, "Only print the hours that have an event.")

	addOn := &options.OnOptions{}
	var start, end string
	add := &cobra.Command{
		Use:   "add <title>",
		Short: "Add an event to the schedule.",
		Example: `
willow event add Dentist --start 14:00 --end 15:00
willow event add Gym --start 07:00 --on tomorrow
`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if start == "" {
				return errors.New("an event needs --start")
			}
			day, err := addOn.GetOn()
			if err != nil {
				return err
			}
			s, en, err := options.Times(start, end)
			if err != nil {
				return err
			}
			event := planner.NewScheduleEvent{Title: strings.Join(args, " "), Date: day, StartTime: s, EndTime: en}
			return withSession(cmd, oo, func(ctx context.Context, e *environment) error {
				r := events.Add{Controller: e.controller, Event: event, Out: cmd.OutOrStdout()}
				return r.Do(ctx)
			})
		},
	}
	options.AddOnArgs(add, addOn)
	add.Flags().StringVar(&start, "start", "", `Start time, example: --start=14:00.`)
	add.Flags().StringVar(&end, "end", "", `End time, example: --end=15:00.`)

	co := &options.ConfirmOptions{}
	del := &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete an event.",
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := options.ParseID(args)
			if err != nil {
				return err
			}
			return withSession(cmd, oo, func(ctx context.Context, e *environment) error {
				s := events.Delete{Controller: e.controller, ID: id, Confirm: co.Confirm(), Out: cmd.OutOrStdout()}
				return s.Do(ctx)
			})
		},
	}
	options.AddConfirmArgs(del, co)

	cmd.AddCommand(list, add, del)
	topLevel.AddCommand(cmd)
}

func addNote(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "note",
		Aliases: []string{"notes"},
		Short:   "Read and write the note for a day.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	on := &options.OnOptions{}
	po := &options.OutputOptions{}
	get := &cobra.Command{
		Use:   "get",
		Short: "Print the note for a day.",
		Example: `
willow note get
willow note get --on yesterday
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
				s := note.Get{Controller: e.controller, On: day, Format: po.Format, Out: cmd.OutOrStdout()}
				return s.Do(ctx)
			})
		},
	}
	options.AddOnArgs(get, on)
	options.AddOutputArg(get, po)

	setOn := &options.OnOptions{}
	set := &cobra.Command{
		Use:   "set [content]",
		Short: "Replace the note for a day. Without content, it is prompted for.",
		Example: `
willow note set "Slept badly, keep it light."
willow note set --on tomorrow
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := setOn.GetOn()
			if err != nil {
				return err
			}
			content := strings.Join(args, " ")
			if len(args) == 0 {
				if !options.Interactive() {
					return errors.New("requires the note content")
				}
				if content, err = options.Prompt("Note for "+day.Format("Jan 2"), false); err != nil {
					return err
				}
			}
			return withSession(cmd, oo, func(ctx context.Context, e *environment) error {
				s := note.Set{Controller: e.controller, On: day, Content: content, Out: cmd.OutOrStdout()}
				return s.Do(ctx)
			})
		},
	}
	options.AddOnArgs(set, setOn)

	cmd.AddCommand(get, set)
	topLevel.AddCommand(cmd)
}
