package printers

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/willow/pkg/glyph"
	"tableflip.dev/willow/pkg/planner"
)

type PrettyPrint struct {
	ShowID     bool
	Categories []planner.Category
	Out        io.Writer
}

const idWidth = 6

var spacing = strings.Repeat(" ", idWidth)

func (pp *PrettyPrint) out() io.Writer {
	if pp.Out != nil {
		return pp.Out
	}
	return color.Output
}

// Writer is where the printer writes, color.Output unless Out is set.
func (pp *PrettyPrint) Writer() io.Writer {
	return pp.out()
}

func (pp *PrettyPrint) NewLine() {
	_, _ = fmt.Fprintln(pp.out(), "")
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)

	if pp.ShowID {
		_, _ = t.Fprint(pp.out(), spacing)
	}
	_, _ = t.Fprintln(pp.out(), title)
}

func (pp *PrettyPrint) TitleWithCount(title string, count int, noun string) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	if pp.ShowID {
		_, _ = t.Fprint(pp.out(), spacing)
	}
	_, _ = t.Fprint(pp.out(), title)
	_, _ = c.Fprintf(pp.out(), " - %d", count)

	switch count {
	case 1:
		_, _ = c.Fprintf(pp.out(), " %s\n", noun)
	default:
		_, _ = c.Fprintf(pp.out(), " %ss\n", noun)
	}
}

func (pp *PrettyPrint) none() {
	f := color.New(color.Faint, color.Italic)
	if pp.ShowID {
		_, _ = f.Fprint(pp.out(), spacing)
	}
	_, _ = f.Fprint(pp.out(), " none\n\n")
}

func (pp *PrettyPrint) id(tbl *uitable.Table, id int, cells ...interface{}) {
	if pp.ShowID {
		y := color.New(color.FgHiYellow, color.Italic, color.Faint)
		cells = append([]interface{}{y.Sprint(id)}, cells...)
	}
	tbl.AddRow(cells...)
}

// Tasks prints one row per task: bullet, priority, title, due date and time.
func (pp *PrettyPrint) Tasks(tasks ...planner.Task) {
	if len(tasks) == 0 {
		pp.none()
		return
	}

	done := color.New(color.Faint, color.CrossedOut)
	faint := color.New(color.Faint)

	tbl := uitable.New()
	tbl.Separator = " "
	for _, t := range tasks {
		title := t.Title
		if t.Completed {
			title = done.Sprint(title)
		}
		when := t.DueDate.String()
		if t.StartTime != nil {
			when += " " + t.StartTime.String()
			if t.EndTime != nil {
				when += "-" + t.EndTime.String()
			}
		}
		cat := planner.CategoryName(pp.Categories, t.Category)
		if cat != "" {
			cat = "#" + cat
		}
		pp.id(tbl, t.ID,
			glyph.ForTask(t.Completed).String(),
			glyph.ForPriority(string(t.Priority)).String(),
			title,
			faint.Sprint(when),
			faint.Sprint(cat))
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
	pp.NewLine()
}

func (pp *PrettyPrint) Goals(goals ...planner.FocusItem) {
	if len(goals) == 0 {
		pp.none()
		return
	}

	done := color.New(color.Faint, color.CrossedOut)

	tbl := uitable.New()
	tbl.Separator = " "
	for _, g := range goals {
		text := g.Text
		if g.Completed {
			text = done.Sprint(text)
		}
		pp.id(tbl, g.ID, glyph.ForGoal(g.Completed).String(), text)
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
	pp.NewLine()
}

// Schedule prints the hourly slots. With busyOnly, empty hours are skipped.
func (pp *PrettyPrint) Schedule(slots []planner.Slot, busyOnly bool) {
	faint := color.New(color.Faint)
	tbl := uitable.New()
	tbl.Separator = "  "
	rows := 0
	for _, s := range slots {
		if s.Event == nil {
			if !busyOnly {
				tbl.AddRow(faint.Sprint(s.Time.String()), "")
				rows++
			}
			continue
		}
		title := glyph.Event.String() + " " + s.Event.Title
		if s.Event.EndTime != nil {
			title += faint.Sprintf(" (%s-%s)", s.Event.StartTime, s.Event.EndTime)
		} else if s.Event.StartTime.Minute != 0 {
			title += faint.Sprintf(" (%s)", s.Event.StartTime)
		}
		if pp.ShowID {
			title += faint.Sprintf(" [%d]", s.Event.ID)
		}
		tbl.AddRow(s.Time.String(), title)
		rows++
	}
	if rows == 0 {
		pp.none()
		return
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
	pp.NewLine()
}

func (pp *PrettyPrint) Note(note planner.Note, ok bool) {
	if !ok || strings.TrimSpace(note.Content) == "" {
		pp.none()
		return
	}
	for _, line := range strings.Split(note.Content, "\n") {
		_, _ = fmt.Fprintf(pp.out(), "%s %s\n", glyph.Note, line)
	}
	pp.NewLine()
}

// Profile prints the account and, when the server sent them, its stats.
func (pp *PrettyPrint) Profile(u planner.User) {
	b := color.New(color.Bold)
	faint := color.New(color.Faint)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(b.Sprint("Username"), u.Username)
	tbl.AddRow(b.Sprint("Email"), u.Email)
	if u.Profile != nil {
		tbl.AddRow(b.Sprint("Level"), u.Profile.Level)
		tbl.AddRow(b.Sprint("XP"), u.Profile.XP)
		tbl.AddRow(b.Sprint("Streak"), faint.Sprintf("%d day(s)", u.Profile.CurrentStreak))
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
}

func (pp *PrettyPrint) Progress(done, total int) {
	g := color.New(color.FgGreen)
	const width = 20
	filled := 0
	if total > 0 {
		filled = done * width / total
	}
	bar := g.Sprint(strings.Repeat("█", filled)) + strings.Repeat("░", width-filled)
	_, _ = fmt.Fprintf(pp.out(), "%s %d/%d done\n\n", bar, done, total)
}

func (pp *PrettyPrint) Quote(q planner.Quote) {
	i := color.New(color.Italic)
	faint := color.New(color.Faint)
	_, _ = i.Fprintf(pp.out(), "“%s”\n", q.Text)
	_, _ = faint.Fprintf(pp.out(), "  - %s\n\n", q.Author)
}
