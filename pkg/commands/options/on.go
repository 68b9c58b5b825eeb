package options

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/willow/pkg/planner"
)

const (
	layoutISO      = "2006-1-2"
	layoutISOShort = "1/2"
)

// OnOptions
type OnOptions struct {
	OnString string
	Now      func() time.Time
}

func AddOnArgs(cmd *cobra.Command, o *OnOptions) {
	cmd.Flags().StringVar(&o.OnString, "on", "today",
		`Specify a date, example: --on="2025-3-4", --on="3/4" or --on=tomorrow.`)
}

func (o *OnOptions) now() time.Time {
	if o.Now != nil {
		return o.Now()
	}
	return time.Now()
}

// GetOn resolves the --on flag to a calendar day.
func (o *OnOptions) GetOn() (planner.Date, error) {
	today := planner.DateOf(o.now())
	switch strings.ToLower(strings.TrimSpace(o.OnString)) {
	case "", "today":
		return today, nil
	case "tomorrow":
		return today.AddDays(1), nil
	case "yesterday":
		return today.AddDays(-1), nil
	}
	t, err := time.ParseInLocation(layoutISO, o.OnString, time.Local)
	if err == nil {
		return planner.DateOf(t), nil
	}
	// Let the year be the same.
	t, err = time.ParseInLocation(layoutISOShort, o.OnString, time.Local)
	if err != nil {
		return planner.Date{}, fmt.Errorf("invalid date %q, want YYYY-M-D or M/D", o.OnString)
	}
	d := planner.NewDate(today.Year(), t.Month(), t.Day())
	// I am gonna assume if you said 1/3 on 12/5, you meant next year, not 11 months ago.
	if d.Before(today.Time) {
		d = planner.NewDate(today.Year()+1, t.Month(), t.Day())
	}
	return d, nil
}

// MonthOptions
type MonthOptions struct {
	Month string
}

func AddMonthArgs(cmd *cobra.Command, o *MonthOptions) {
	cmd.Flags().StringVar(&o.Month, "month", "",
		`Month to show, example: --month="2025-3". Defaults to the current month.`)
}

func (o *MonthOptions) GetMonth(now time.Time) (time.Time, error) {
	if o.Month == "" {
		return planner.NewDate(now.Year(), now.Month(), 1).Time, nil
	}
	t, err := time.ParseInLocation("2006-1", o.Month, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid month %q, want YYYY-M", o.Month)
	}
	return t, nil
}
