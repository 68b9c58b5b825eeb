package options

import (
	"encoding/json"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"tableflip.dev/willow/pkg/printers"
)

// OutputOptions
type OutputOptions struct {
	Format string
}

func AddOutputArg(cmd *cobra.Command, po *OutputOptions) {
	cmd.Flags().StringVarP(&po.Format, "output", "o", printers.FormatTable,
		"Output format. One of 'table', 'json' or 'yaml'.")
}

func (o *OutputOptions) Validate() error {
	switch o.Format {
	case "", printers.FormatTable, printers.FormatJSON, printers.FormatYAML:
		return nil
	}
	return fmt.Errorf("unknown output format %q, want table, json or yaml", o.Format)
}

func (o *OutputOptions) JSON() bool {
	return o.Format == printers.FormatJSON
}

// HandleError reports err as a JSON document when JSON output was asked for.
func (o *OutputOptions) HandleError(err error) error {
	if o.JSON() && err != nil {
		out := map[string]string{
			"error": err.Error(),
		}
		b, err := json.Marshal(out)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintln(color.Output, string(b))
		return nil
	}
	return err
}
