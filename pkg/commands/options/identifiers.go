package options

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

// IDOptions
type IDOptions struct {
	ShowID bool
}

func AddShowIDArgs(cmd *cobra.Command, o *IDOptions) {
	cmd.Flags().BoolVar(&o.ShowID, "show-id", false,
		"Print the server id of each item.")
}

// ParseID reads the single numeric id argument.
func ParseID(args []string) (int, error) {
	if len(args) < 1 {
		return 0, errors.New("requires an id")
	}
	if len(args) > 1 {
		return 0, fmt.Errorf("expected one id, got %d arguments", len(args))
	}
	id, err := strconv.Atoi(args[0])
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", args[0])
	}
	return id, nil
}
