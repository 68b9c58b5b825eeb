package glyph

import "testing"

func TestGlyphIndexes(t *testing.T) {
	tests := map[string]struct {
		got  Glyph
		want string
	}{
		"task":      {got: ForTask(false).Glyph(), want: "task"},
		"completed": {got: ForTask(true).Glyph(), want: "task completed"},
		"goal":      {got: ForGoal(false).Glyph(), want: "goal"},
		"reached":   {got: ForGoal(true).Glyph(), want: "goal reached"},
		"event":     {got: Event.Glyph(), want: "scheduled event"},
		"note":      {got: Note.Glyph(), want: "note"},
		"high":      {got: ForPriority("H").Glyph(), want: "high priority"},
		"medium":    {got: ForPriority("M").Glyph(), want: "medium priority"},
		"low":       {got: ForPriority("L").Glyph(), want: "low priority"},
		"unknown":   {got: ForPriority("?").Glyph(), want: "low priority"},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			if tc.got.Meaning != tc.want {
				t.Fatalf("meaning = %q, want %q", tc.got.Meaning, tc.want)
			}
		})
	}
	if !High.Glyph().Signifier || Task.Glyph().Signifier {
		t.Fatalf("signifier flags wrong")
	}
}
