// Package categories provides the CLI runners for task categories.
package categories

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/willow/pkg/app"
	"tableflip.dev/willow/pkg/printers"
)

type List struct {
	Controller *app.Controller
	ShowID     bool
	Format     string
	Out        io.Writer
}

func (l *List) Do(ctx context.Context) error {
	pp := printers.PrettyPrint{ShowID: l.ShowID, Out: l.Out}
	if err := l.Controller.RefreshCategories(ctx); err != nil {
		pp.Notification(l.Controller.Notifier().Current())
		return err
	}
	s := l.Controller.Snapshot()
	if handled, err := printers.Encode(pp.Writer(), l.Format, s.Categories); handled {
		return err
	}

	used := make(map[int]int, len(s.Categories))
	for _, t := range s.Tasks {
		if t.Category != nil {
			used[*t.Category]++
		}
	}

	pp.NewLine()
	pp.TitleWithCount("Categories", len(s.Categories), "category")
	faint := color.New(color.Faint)
	tbl := uitable.New()
	tbl.Separator = "  "
	for _, c := range s.Categories {
		row := []interface{}{"#" + c.Name, faint.Sprintf("%d task(s)", used[c.ID])}
		if l.ShowID {
			row = append([]interface{}{color.New(color.FgHiYellow, color.Faint).Sprint(c.ID)}, row...)
		}
		tbl.AddRow(row...)
	}
	_, _ = fmt.Fprintln(pp.Writer(), tbl)
	return nil
}

type Add struct {
	Controller *app.Controller
	Name       string
	Out        io.Writer
}

func (a *Add) Do(ctx context.Context) error {
	err := a.Controller.AddCategory(ctx, a.Name)
	pp := printers.PrettyPrint{Out: a.Out}
	pp.Notification(a.Controller.Notifier().Current())
	return err
}
