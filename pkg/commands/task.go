package commands

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/willow/pkg/commands/options"
	"tableflip.dev/willow/pkg/runner/tasks"
)

func addTask(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "task",
		Aliases: []string{"tasks", "todo"},
		Short:   "List, add, complete and delete tasks.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	addTaskList(cmd)
	addTaskAdd(cmd)
	addTaskComplete(cmd, "done", false)
	addTaskComplete(cmd, "undo", true)
	addTaskToggle(cmd)
	addTaskDelete(cmd)

	topLevel.AddCommand(cmd)
}

func addTaskList(topLevel *cobra.Command) {
	on := &options.OnOptions{}
	io := &options.IDOptions{}
	po := &options.OutputOptions{}
	all := false
	pending := false

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List the tasks due on a day.",
		Example: `
willow task list
willow task list --on tomorrow --pending
willow task list --all -o json
`,
		Args: cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			return po.Validate()
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withSession(cmd, po, func(ctx context.Context, e *environment) error {
				s := tasks.List{
					Controller: e.controller,
					Pending:    pending,
					ShowID:     io.ShowID,
					Format:     po.Format,
					Out:        cmd.OutOrStdout(),
				}
				if !all {
					day, err := on.GetOn()
					if err != nil {
						return err
					}
					s.Due = day
				}
				return s.Do(ctx)
			})
		},
	}

	options.AddOnArgs(cmd, on)
	options.AddShowIDArgs(cmd, io)
	options.AddOutputArg(cmd, po)
	cmd.Flags().BoolVar(&all, "all", false, "List every task, whatever its due date.")
	cmd.Flags().BoolVar(&pending, "pending", false, "Only list tasks that are not done.")

	topLevel.AddCommand(cmd)
}

func addTaskAdd(topLevel *cobra.Command) {
	on := &options.OnOptions{}
	to := &options.TaskOptions{}

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a task.",
		Example: `
willow task add Water the plants
willow task add Standup --start 09:30 --end 09:45 --priority high
willow task add "Pay rent" --on 2025-3-1
`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := on.GetOn()
			if err != nil {
				return err
			}
			task, err := to.Task(strings.Join(args, " "), day)
			if err != nil {
				return err
			}
			return withSession(cmd, oo, func(ctx context.Context, e *environment) error {
				s := tasks.Add{Controller: e.controller, Task: task, Out: cmd.OutOrStdout()}
				return s.Do(ctx)
			})
		},
	}

	options.AddOnArgs(cmd, on)
	options.AddTaskArgs(cmd, to)

	topLevel.AddCommand(cmd)
}

func addTaskComplete(topLevel *cobra.Command, verb string, undo bool) {
	short := "Mark a task done."
	if undo {
		short = "Mark a task not done."
	}

	cmd := &cobra.Command{
		Use:   verb + " <id>",
		Short: short,
		Example: `
willow task ` + verb + ` 12
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := options.ParseID(args)
			if err != nil {
				return err
			}
			return withSession(cmd, oo, func(ctx context.Context, e *environment) error {
				s := tasks.Complete{Controller: e.controller, ID: id, Undo: undo, Out: cmd.OutOrStdout()}
				return s.Do(ctx)
			})
		},
	}

	topLevel.AddCommand(cmd)
}

func addTaskToggle(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "toggle <id>",
		Short: "Flip a task between done and not done.",
		Example: `
willow task toggle 12
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := options.ParseID(args)
			if err != nil {
				return err
			}
			return withSession(cmd, oo, func(ctx context.Context, e *environment) error {
				s := tasks.Toggle{Controller: e.controller, ID: id, Out: cmd.OutOrStdout()}
				return s.Do(ctx)
			})
		},
	}

	topLevel.AddCommand(cmd)
}

func addTaskDelete(topLevel *cobra.Command) {
	co := &options.ConfirmOptions{}

	cmd := &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a task.",
		Example: `
willow task delete 12
willow task delete 12 --yes
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := options.ParseID(args)
			if err != nil {
				return err
			}
			return withSession(cmd, oo, func(ctx context.Context, e *environment) error {
				s := tasks.Delete{Controller: e.controller, ID: id, Confirm: co.Confirm(), Out: cmd.OutOrStdout()}
				return s.Do(ctx)
			})
		},
	}

	options.AddConfirmArgs(cmd, co)

	topLevel.AddCommand(cmd)
}
