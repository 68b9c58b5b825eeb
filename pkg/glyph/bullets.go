package glyph

// Glyph is one symbol in the printed legend.
type Glyph struct {
	Symbol    string
	Meaning   string
	Signifier bool
}

func DefaultGlyphs() []Glyph {
	return []Glyph{
		{Symbol: "●", Meaning: "task"},
		{Symbol: "✘", Meaning: "task completed"},
		{Symbol: "○", Meaning: "goal"},
		{Symbol: "◉", Meaning: "goal reached"},
		{Symbol: "◷", Meaning: "scheduled event"},
		{Symbol: "⁃", Meaning: "note"},
		{Symbol: "✷", Meaning: "high priority", Signifier: true},
		{Symbol: "!", Meaning: "medium priority", Signifier: true},
		{Symbol: " ", Meaning: "low priority", Signifier: true},
	}
}

func (g Glyph) String() string {
	return g.Symbol
}

type Bullet int

const (
	Task Bullet = iota
	Completed
	Goal
	GoalReached
	Event
	Note
)

type Signifier int

const (
	High Signifier = iota + 6
	Medium
	Low
)

func (b Bullet) Glyph() Glyph {
	return DefaultGlyphs()[b]
}

func (b Bullet) String() string {
	return b.Glyph().String()
}

func (s Signifier) Glyph() Glyph {
	return DefaultGlyphs()[s]
}

func (s Signifier) String() string {
	return s.Glyph().String()
}

// ForTask picks the bullet for a task's completion state.
func ForTask(completed bool) Bullet {
	if completed {
		return Completed
	}
	return Task
}

// ForGoal picks the bullet for a goal's completion state.
func ForGoal(completed bool) Bullet {
	if completed {
		return GoalReached
	}
	return Goal
}

// ForPriority maps a priority code to its signifier; unknown codes are Low.
func ForPriority(p string) Signifier {
	switch p {
	case "H":
		return High
	case "M":
		return Medium
	}
	return Low
}
