// Package tasks provides the CLI runners for the task list.
package tasks

import (
	"context"
	"io"

	"tableflip.dev/willow/pkg/app"
	"tableflip.dev/willow/pkg/planner"
	"tableflip.dev/willow/pkg/printers"
)

// List prints the tasks due on Due, or every task when Due is zero.
type List struct {
	Controller *app.Controller
	Due        planner.Date
	Pending    bool
	ShowID     bool
	Format     string
	Out        io.Writer
}

func (l *List) Do(ctx context.Context) error {
	pp := printers.PrettyPrint{ShowID: l.ShowID, Out: l.Out}
	if err := l.Controller.RefreshTasks(ctx); err != nil {
		pp.Notification(l.Controller.Notifier().Current())
		return err
	}
	s := l.Controller.Snapshot()
	all := s.Tasks
	if !l.Due.IsZero() {
		all = planner.TasksDue(all, l.Due)
	}
	if l.Pending {
		pending := make([]planner.Task, 0, len(all))
		for _, t := range all {
			if !t.Completed {
				pending = append(pending, t)
			}
		}
		all = pending
	}

	if handled, err := printers.Encode(pp.Writer(), l.Format, all); handled {
		return err
	}

	pp.Categories = s.Categories
	pp.NewLine()
	title := "All tasks"
	if !l.Due.IsZero() {
		title = l.Due.Format("Monday, January 2, 2006")
	}
	pp.TitleWithCount(title, len(all), "task")
	pp.Tasks(all...)
	if !l.Due.IsZero() {
		pp.Progress(planner.Progress(all))
	}
	return nil
}

type Add struct {
	Controller *app.Controller
	Task       planner.NewTask
	Out        io.Writer
}

func (a *Add) Do(ctx context.Context) error {
	err := a.Controller.AddTask(ctx, a.Task)
	pp := printers.PrettyPrint{Out: a.Out}
	pp.Notification(a.Controller.Notifier().Current())
	return err
}

// Complete marks a task done, or not done when Undo is set.
type Complete struct {
	Controller *app.Controller
	ID         int
	Undo       bool
	Out        io.Writer
}

func (c *Complete) Do(ctx context.Context) error {
	pp := printers.PrettyPrint{Out: c.Out}
	err := c.Controller.SetTaskCompleted(ctx, c.ID, !c.Undo)
	pp.Notification(c.Controller.Notifier().Current())
	if err != nil || c.Undo {
		return err
	}
	if u := c.Controller.Snapshot().User; u.Profile != nil {
		pp.Profile(u)
	}
	return nil
}

type Delete struct {
	Controller *app.Controller
	ID         int
	Confirm    app.Confirm
	Out        io.Writer
}

func (d *Delete) Do(ctx context.Context) error {
	pp := printers.PrettyPrint{Out: d.Out}
	err := d.Controller.DeleteTask(ctx, d.ID, d.Confirm)
	pp.Notification(d.Controller.Notifier().Current())
	return err
}

// Toggle flips the completed flag of a task.
type Toggle struct {
	Controller *app.Controller
	ID         int
	Out        io.Writer
}

func (t *Toggle) Do(ctx context.Context) error {
	err := t.Controller.ToggleTask(ctx, t.ID)
	pp := printers.PrettyPrint{Out: t.Out}
	pp.Notification(t.Controller.Notifier().Current())
	return err
}
