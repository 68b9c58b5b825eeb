// Package info prints where willow reads its configuration and keeps its
// files.
package info

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/willow/pkg/config"
	"tableflip.dev/willow/pkg/store"
)

type Info struct {
	Config      *config.Config
	Session     *store.Session
	Preferences *store.Preferences
	Out         io.Writer
}

func (n *Info) Do(_ context.Context) error {
	out := n.Out
	if out == nil {
		out = color.Output
	}
	if n.Config == nil {
		return fmt.Errorf("no configuration loaded")
	}
	bold := color.New(color.Bold)
	faint := color.New(color.Faint)

	if override := os.Getenv(config.ConfigPathEnv); override != "" {
		_, _ = fmt.Fprintf(out, "%s found on env, using %s\n", config.ConfigPathEnv, override)
	} else {
		_, _ = faint.Fprintf(out, "%s env var not set\n", config.ConfigPathEnv)
	}

	configFile := n.Config.ConfigFileUse
	if configFile == "" {
		configFile = faint.Sprint("(defaults)")
	}

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("Config file"), configFile)
	tbl.AddRow(bold.Sprint("API"), n.Config.APIURL)
	tbl.AddRow(bold.Sprint("Data path"), n.Config.BasePath())
	tbl.AddRow(bold.Sprint("Log file"), n.Config.LogFile)
	tbl.AddRow(bold.Sprint("Timeout"), n.Config.Timeout)

	if n.Session != nil {
		_, ok, err := n.Session.Restore()
		if err != nil {
			return err
		}
		state := "logged out"
		if ok {
			state = "token saved"
		}
		tbl.AddRow(bold.Sprint("Session"), state)
	}
	if n.Preferences != nil {
		th, err := n.Preferences.Theme()
		if err != nil {
			return err
		}
		tbl.AddRow(bold.Sprint("Theme"), th)
	}
	_, _ = fmt.Fprintln(out, tbl)
	return nil
}
