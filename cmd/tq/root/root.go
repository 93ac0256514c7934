package root

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"taskquest/internal/ui"
)

const Version = "0.1.0"

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "tq",
		Short:         "TaskQuest, a gamified task tracker",
		Long:          "TaskQuest tracks your tasks and rewards you with points, levels, skills, badges, streaks and quests.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "App config file (default ~/.taskquest/config.yaml)")
	pf.String("data", "", "Data file (default ~/.taskquest/taskquest-data.json)")
	pf.String("log-level", "", "Log level (debug|info|warn|error)")
	pf.String("log-format", "", "Log format (text|json)")
	pf.String("timezone", "", "IANA timezone for day boundaries (default local)")

	rootCmd.AddCommand(
		newAddCmd(),
		newListCmd(),
		newEditCmd(),
		newDoCmd(),
		newRmCmd(),
		newStatsCmd(),
		newStatusCmd(),
		newQuestCmd(),
		newConfigCmd(),
		newAdminCmd(),
		newExportCmd(),
		newArchiveCmd(),
		newPathCmd(),
		newBoardCmd(),
		newServeCmd(),
	)
	return rootCmd
}

func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.Bad.Render(ui.IconError+" "+err.Error()))
		os.Exit(1)
	}
}
