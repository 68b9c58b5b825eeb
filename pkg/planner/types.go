// Package planner holds the daily planner's domain types and the pure helpers
// screens use to lay them out by day, hour slot and month.
package planner

import (
	"fmt"
	"strings"
)

// Priority is the server's one-letter priority code.
type Priority string

const (
	PriorityLow    Priority = "L"
	PriorityMedium Priority = "M"
	PriorityHigh   Priority = "H"
)

// ParsePriority accepts the code or the word, in any case.
func ParsePriority(v string) (Priority, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "l", "low":
		return PriorityLow, nil
	case "", "m", "medium":
		return PriorityMedium, nil
	case "h", "high":
		return PriorityHigh, nil
	}
	return "", fmt.Errorf("unknown priority %q, want low, medium or high", v)
}

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

func (p Priority) String() string {
	switch p {
	case PriorityLow:
		return "Low"
	case PriorityHigh:
		return "High"
	case PriorityMedium:
		return "Medium"
	}
	return string(p)
}

// Stats is the gamification block the server attaches to a profile.
type Stats struct {
	XP            int `json:"xp" yaml:"xp"`
	Level         int `json:"level" yaml:"level"`
	CurrentStreak int `json:"current_streak" yaml:"current_streak"`
}

type User struct {
	ID       int    `json:"id" yaml:"id"`
	Username string `json:"username" yaml:"username"`
	Email    string `json:"email,omitempty" yaml:"email,omitempty"`
	Profile  *Stats `json:"profile,omitempty" yaml:"profile,omitempty"`
}

type Category struct {
	ID   int    `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

type Task struct {
	ID          int      `json:"id" yaml:"id"`
	Title       string   `json:"title" yaml:"title"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
	DueDate     Date     `json:"due_date" yaml:"due_date"`
	StartTime   *Clock   `json:"start_time,omitempty" yaml:"start_time,omitempty"`
	EndTime     *Clock   `json:"end_time,omitempty" yaml:"end_time,omitempty"`
	Priority    Priority `json:"priority,omitempty" yaml:"priority,omitempty"`
	Category    *int     `json:"category,omitempty" yaml:"category,omitempty"`
	Completed   bool     `json:"completed" yaml:"completed"`
}

// FocusItem is a goal for the day.
type FocusItem struct {
	ID        int    `json:"id" yaml:"id"`
	Text      string `json:"text" yaml:"text"`
	Date      Date   `json:"date" yaml:"date"`
	Completed bool   `json:"completed" yaml:"completed"`
}

type ScheduleEvent struct {
	ID        int    `json:"id" yaml:"id"`
	Title     string `json:"title" yaml:"title"`
	Date      Date   `json:"date" yaml:"date"`
	StartTime Clock  `json:"start_time" yaml:"start_time"`
	EndTime   *Clock `json:"end_time,omitempty" yaml:"end_time,omitempty"`
}

// Note is the free-form note kept for one day.
type Note struct {
	ID      int    `json:"id" yaml:"id"`
	Date    Date   `json:"date" yaml:"date"`
	Content string `json:"content" yaml:"content"`
}

// CategoryName resolves a task's category reference, "" when unset or unknown.
func CategoryName(categories []Category, id *int) string {
	if id == nil {
		return ""
	}
	for _, c := range categories {
		if c.ID == *id {
			return c.Name
		}
	}
	return ""
}
