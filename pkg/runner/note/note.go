// Package note provides the CLI runners for the note kept on each day.
package note

import (
	"context"
	"io"

	"tableflip.dev/willow/pkg/app"
	"tableflip.dev/willow/pkg/planner"
	"tableflip.dev/willow/pkg/printers"
)

type Get struct {
	Controller *app.Controller
	On         planner.Date
	Format     string
	Out        io.Writer
}

func (g *Get) Do(ctx context.Context) error {
	pp := printers.PrettyPrint{Out: g.Out}
	if err := g.Controller.RefreshPlanner(ctx); err != nil {
		pp.Notification(g.Controller.Notifier().Current())
		return err
	}
	n, ok := planner.NoteFor(g.Controller.Snapshot().Notes, g.On)
	if ok {
		if handled, err := printers.Encode(pp.Writer(), g.Format, n); handled {
			return err
		}
	} else if handled, err := printers.Encode(pp.Writer(), g.Format, nil); handled {
		return err
	}
	pp.NewLine()
	pp.Title("Notes for " + g.On.Format("January 2"))
	pp.Note(n, ok)
	return nil
}

// Set replaces the day's note with Content.
type Set struct {
	Controller *app.Controller
	On         planner.Date
	Content    string
	Out        io.Writer
}

func (s *Set) Do(ctx context.Context) error {
	pp := printers.PrettyPrint{Out: s.Out}
	// the existing note decides between create and update
	err := s.Controller.RefreshPlanner(ctx)
	if err == nil {
		err = s.Controller.SaveNote(ctx, s.On, s.Content)
	}
	pp.Notification(s.Controller.Notifier().Current())
	return err
}
