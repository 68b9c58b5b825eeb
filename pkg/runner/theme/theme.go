// Package theme shows and changes the stored color theme.
package theme

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"

	"tableflip.dev/willow/pkg/store"
)

type Theme struct {
	Preferences *store.Preferences
	// Set is "light", "dark" or "toggle". Empty prints the current theme.
	Set string
	Out io.Writer
}

func (t *Theme) Do(_ context.Context) error {
	out := t.Out
	if out == nil {
		out = color.Output
	}

	var (
		th  store.Theme
		err error
	)
	switch t.Set {
	case "":
		th, err = t.Preferences.Theme()
	case "toggle":
		th, err = t.Preferences.ToggleTheme()
	default:
		th, err = store.ParseTheme(t.Set)
		if err == nil {
			err = t.Preferences.SetTheme(th)
		}
	}
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(out, "theme: %s\n", th)
	return nil
}
