package options

import (
	"fmt"

	"github.com/spf13/cobra"

	"tableflip.dev/willow/pkg/planner"
)

// TaskOptions
type TaskOptions struct {
	Description string
	Priority    string
	Category    int
	Start       string
	End         string
}

func AddTaskArgs(cmd *cobra.Command, o *TaskOptions) {
	cmd.Flags().StringVarP(&o.Description, "description", "d", "",
		"Longer description of the task.")
	cmd.Flags().StringVarP(&o.Priority, "priority", "p", "medium",
		"Priority: low, medium or high.")
	cmd.Flags().IntVar(&o.Category, "category", 0,
		"Category id, as shown by category list --show-id.")
	cmd.Flags().StringVar(&o.Start, "start", "",
		`Start time, example: --start=09:30.`)
	cmd.Flags().StringVar(&o.End, "end", "",
		`End time, example: --end=10:30. Requires --start.`)
}

// Task builds the create payload for title due on day.
func (o *TaskOptions) Task(title string, day planner.Date) (planner.NewTask, error) {
	p, err := planner.ParsePriority(o.Priority)
	if err != nil {
		return planner.NewTask{}, err
	}
	t := planner.NewTask{Title: title, Description: o.Description, DueDate: day, Priority: p}
	if o.Category > 0 {
		id := o.Category
		t.Category = &id
	}
	if t.StartTime, t.EndTime, err = Times(o.Start, o.End); err != nil {
		return planner.NewTask{}, err
	}
	return t, nil
}

// Times parses the --start and --end flags.
func Times(start, end string) (*planner.Clock, *planner.Clock, error) {
	if start == "" && end != "" {
		return nil, nil, fmt.Errorf("--end requires --start")
	}
	return planner.ParseSpan(start, end)
}
