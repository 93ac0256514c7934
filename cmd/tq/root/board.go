package root

import (
	"github.com/spf13/cobra"

	"taskquest/internal/tui"
)

func newBoardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "board",
		Short: "Open the TUI dashboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, cleanup, err := openService(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			return tui.RunBoard(cmd.Context(), svc, cmd.OutOrStdout())
		},
	}

	return cmd
}
