package printers

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"

	"tableflip.dev/willow/pkg/notify"
)

const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
)

// Encode writes v as JSON or YAML. It reports false for the table format so
// the caller can pretty print instead.
func Encode(w io.Writer, format string, v interface{}) (bool, error) {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return true, enc.Encode(v)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return true, err
		}
		return true, enc.Close()
	case "", FormatTable:
		return false, nil
	}
	return true, fmt.Errorf("unknown output format %q", format)
}

// Notification prints the controller's latest message, coloured by kind.
func (pp *PrettyPrint) Notification(n notify.Notification, ok bool) {
	if !ok {
		return
	}
	c := color.New(color.FgCyan)
	switch n.Kind {
	case notify.Success:
		c = color.New(color.FgGreen)
	case notify.Error:
		c = color.New(color.FgRed, color.Bold)
	}
	_, _ = c.Fprintln(pp.out(), n.Text)
}
