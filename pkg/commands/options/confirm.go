package options

import (
	"os"

	"github.com/charmbracelet/huh"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"tableflip.dev/willow/pkg/app"
)

// ConfirmOptions
type ConfirmOptions struct {
	Yes bool
}

func AddConfirmArgs(cmd *cobra.Command, o *ConfirmOptions) {
	cmd.Flags().BoolVarP(&o.Yes, "yes", "y", false,
		"Do not ask for confirmation.")
}

// Confirm asks on the terminal unless --yes was given. Without a terminal
// to ask on, the action is declined.
func (o *ConfirmOptions) Confirm() app.Confirm {
	if o.Yes {
		return app.Confirmed
	}
	return func(prompt string) bool {
		if !Interactive() {
			return false
		}
		ok := false
		err := huh.NewConfirm().
			Title(prompt).
			Affirmative("Delete").
			Negative("Keep").
			Value(&ok).
			Run()
		return err == nil && ok
	}
}

// Interactive reports whether stdin and stdout are terminals.
func Interactive() bool {
	return isTerminal(os.Stdin.Fd()) && isTerminal(os.Stdout.Fd())
}

func isTerminal(fd uintptr) bool {
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// Prompt asks for a value on the terminal. Secret input is masked.
func Prompt(title string, secret bool) (string, error) {
	var v string
	in := huh.NewInput().Title(title).Value(&v)
	if secret {
		in = in.EchoMode(huh.EchoModePassword)
	}
	if err := in.Run(); err != nil {
		return "", err
	}
	return v, nil
}
