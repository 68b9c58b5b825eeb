package commands

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"tableflip.dev/willow/pkg/commands/options"
	"tableflip.dev/willow/pkg/planner"
	"tableflip.dev/willow/pkg/runner/account"
)

// CredentialOptions
type CredentialOptions struct {
	Username string
	Email    string
	Password string
}

func addCredentialArgs(cmd *cobra.Command, o *CredentialOptions, email bool) {
	cmd.Flags().StringVarP(&o.Username, "username", "u", "",
		"Account username. Prompted for when missing.")
	if email {
		cmd.Flags().StringVar(&o.Email, "email", "",
			"Account email. Prompted for when missing.")
	}
	cmd.Flags().StringVar(&o.Password, "password", "",
		"Account password. Prompted for, masked, when missing.")
}

// fill prompts for the values that were not given as flags.
func (o *CredentialOptions) fill(email bool) error {
	need := []struct {
		title  string
		value  *string
		secret bool
	}{
		{"Username", &o.Username, false},
		{"Email", &o.Email, false},
		{"Password", &o.Password, true},
	}
	for _, n := range need {
		if *n.value != "" || (!email && n.value == &o.Email) {
			continue
		}
		if !options.Interactive() {
			return errors.New("missing " + n.title + ", pass it as a flag")
		}
		v, err := options.Prompt(n.title, n.secret)
		if err != nil {
			return err
		}
		*n.value = v
	}
	return nil
}

func addLogin(topLevel *cobra.Command) {
	co := &CredentialOptions{}

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in to the planner.",
		Example: `
willow login
willow login --username ada
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := co.fill(false); err != nil {
				return err
			}
			return withEnvironment(cmd, oo, func(ctx context.Context, e *environment) error {
				if err := e.connect(); err != nil {
					return err
				}
				s := account.Login{
					Controller:  e.controller,
					Credentials: planner.Credentials{Username: co.Username, Password: co.Password},
					Out:         cmd.OutOrStdout(),
				}
				return s.Do(ctx)
			})
		},
	}

	addCredentialArgs(cmd, co, false)

	topLevel.AddCommand(cmd)
}

func addLogout(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "logout",
		Short: "Forget the saved session.",
		Example: `
willow logout
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withEnvironment(cmd, oo, func(ctx context.Context, e *environment) error {
				if err := e.connect(); err != nil {
					return err
				}
				s := account.Logout{Controller: e.controller, Out: cmd.OutOrStdout()}
				return s.Do(ctx)
			})
		},
	}

	topLevel.AddCommand(cmd)
}

func addRegister(topLevel *cobra.Command) {
	co := &CredentialOptions{}

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a planner account.",
		Example: `
willow register --username ada --email ada@example.com
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := co.fill(true); err != nil {
				return err
			}
			return withEnvironment(cmd, oo, func(ctx context.Context, e *environment) error {
				if err := e.connect(); err != nil {
					return err
				}
				s := account.Register{
					Controller: e.controller,
					Registration: planner.Registration{
						Username: co.Username,
						Email:    co.Email,
						Password: co.Password,
					},
					Out: cmd.OutOrStdout(),
				}
				return s.Do(ctx)
			})
		},
	}

	addCredentialArgs(cmd, co, true)

	topLevel.AddCommand(cmd)
}

func addResetPassword(topLevel *cobra.Command) {
	email := ""

	cmd := &cobra.Command{
		Use:   "reset-password [email]",
		Short: "Ask for a password reset email.",
		Example: `
willow reset-password ada@example.com
`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				email = args[0]
			}
			if email == "" {
				if !options.Interactive() {
					return errors.New("requires an email")
				}
				var err error
				if email, err = options.Prompt("Email", false); err != nil {
					return err
				}
			}
			return withEnvironment(cmd, oo, func(ctx context.Context, e *environment) error {
				if err := e.connect(); err != nil {
					return err
				}
				s := account.ResetPassword{Controller: e.controller, Email: email, Out: cmd.OutOrStdout()}
				return s.Do(ctx)
			})
		},
	}

	topLevel.AddCommand(cmd)
}

func addWhoAmI(topLevel *cobra.Command) {
	po := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged in account and its progress.",
		Example: `
willow whoami
willow whoami -o yaml
`,
		Args: cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			return po.Validate()
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withSession(cmd, po, func(ctx context.Context, e *environment) error {
				s := account.WhoAmI{Controller: e.controller, Format: po.Format, Out: cmd.OutOrStdout()}
				return s.Do(ctx)
			})
		},
	}

	options.AddOutputArg(cmd, po)

	topLevel.AddCommand(cmd)
}

func addAccount(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Change the logged in account.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	addAccountEmail(cmd)
	addAccountPassword(cmd)

	topLevel.AddCommand(cmd)
}

func addAccountEmail(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "email <new email>",
		Short: "Change the account email.",
		Example: `
willow account email ada@example.org
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, oo, func(ctx context.Context, e *environment) error {
				s := account.Email{Controller: e.controller, Email: args[0], Out: cmd.OutOrStdout()}
				return s.Do(ctx)
			})
		},
	}

	topLevel.AddCommand(cmd)
}

func addAccountPassword(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "password",
		Short: "Change the account password. All three values are prompted for.",
		Example: `
willow account password
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !options.Interactive() {
				return errors.New("changing the password needs a terminal")
			}
			change := planner.PasswordChange{}
			for _, p := range []struct {
				title string
				value *string
			}{
				{"Current password", &change.CurrentPassword},
				{"New password", &change.NewPassword},
				{"Confirm new password", &change.ReNewPassword},
			} {
				v, err := options.Prompt(p.title, true)
				if err != nil {
					return err
				}
				*p.value = v
			}
			return withSession(cmd, oo, func(ctx context.Context, e *environment) error {
				s := account.Password{Controller: e.controller, Change: change, Out: cmd.OutOrStdout()}
				return s.Do(ctx)
			})
		},
	}

	topLevel.AddCommand(cmd)
}
