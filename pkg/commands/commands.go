package commands

import (
	base "github.com/n3wscott/cli-base/pkg/commands/options"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"tableflip.dev/willow/pkg/commands/options"
	"tableflip.dev/willow/pkg/config"
)

var (
	oo = &options.OutputOptions{}
	v  *viper.Viper
)

func New() *cobra.Command {
	v = config.New()

	cmd := &cobra.Command{
		Use:   "willow",
		Short: base.Wrap80("A daily planner for tasks, goals, schedule and notes."),
		Long: base.Wrap80("Willow keeps your tasks, daily goals, schedule and notes on a planner " +
			"server. Run it without arguments, or with `willow ui`, to open the interactive planner."),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return config.BindFlags(v, cmd.Flags())
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if !options.Interactive() {
				return cmd.Help()
			}
			return runUI(cmd)
		},
	}

	cmd.PersistentFlags().String(config.KeyAPIURL, "", "Planner server base url.")
	cmd.PersistentFlags().String(config.KeyPath, "", "Directory for the session, preferences and log.")
	cmd.PersistentFlags().String(config.KeyTimeout, "", "Request timeout, example: --timeout=5s.")

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addUI(topLevel)
	addLogin(topLevel)
	addLogout(topLevel)
	addRegister(topLevel)
	addResetPassword(topLevel)
	addWhoAmI(topLevel)
	addAccount(topLevel)
	addToday(topLevel)
	addTask(topLevel)
	addCategory(topLevel)
	addGoal(topLevel)
	addEvent(topLevel)
	addNote(topLevel)
	addCalendar(topLevel)
	addTheme(topLevel)
	addInfo(topLevel)
	addKey(topLevel)
	addVersion(topLevel)
}
