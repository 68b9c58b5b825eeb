// Package goals provides the CLI runners for a day's focus items.
package goals

import (
	"context"
	"io"

	"tableflip.dev/willow/pkg/app"
	"tableflip.dev/willow/pkg/planner"
	"tableflip.dev/willow/pkg/printers"
)

type List struct {
	Controller *app.Controller
	On         planner.Date
	ShowID     bool
	Format     string
	Out        io.Writer
}

func (l *List) Do(ctx context.Context) error {
	pp := printers.PrettyPrint{ShowID: l.ShowID, Out: l.Out}
	if err := l.Controller.RefreshPlanner(ctx); err != nil {
		pp.Notification(l.Controller.Notifier().Current())
		return err
	}
	goals := planner.GoalsOn(l.Controller.Snapshot().Goals, l.On)
	if handled, err := printers.Encode(pp.Writer(), l.Format, goals); handled {
		return err
	}
	pp.NewLine()
	pp.TitleWithCount("Goals for "+l.On.Format("January 2"), len(goals), "goal")
	pp.Goals(goals...)
	return nil
}

type Add struct {
	Controller *app.Controller
	Text       string
	On         planner.Date
	Out        io.Writer
}

func (a *Add) Do(ctx context.Context) error {
	err := a.Controller.AddGoal(ctx, a.Text, a.On)
	pp := printers.PrettyPrint{Out: a.Out}
	pp.Notification(a.Controller.Notifier().Current())
	return err
}

type Toggle struct {
	Controller *app.Controller
	ID         int
	Out        io.Writer
}

func (t *Toggle) Do(ctx context.Context) error {
	pp := printers.PrettyPrint{Out: t.Out}
	err := t.Controller.RefreshPlanner(ctx)
	if err == nil {
		err = t.Controller.ToggleGoal(ctx, t.ID)
	}
	pp.Notification(t.Controller.Notifier().Current())
	return err
}

type Delete struct {
	Controller *app.Controller
	ID         int
	Confirm    app.Confirm
	Out        io.Writer
}

func (d *Delete) Do(ctx context.Context) error {
	pp := printers.PrettyPrint{Out: d.Out}
	err := d.Controller.RefreshPlanner(ctx)
	if err == nil {
		err = d.Controller.DeleteGoal(ctx, d.ID, d.Confirm)
	}
	pp.Notification(d.Controller.Notifier().Current())
	return err
}
