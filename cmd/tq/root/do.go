package root

import (
	"fmt"

	"github.com/spf13/cobra"

	"taskquest/internal/ui"
)

func newDoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "do <id>",
		Short: "Toggle a task between done and open",
		Args:  idArg,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, cleanup, err := openService(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			res, err := svc.ToggleTaskComplete(cmd.Context(), parseID(args[0]))
			if err != nil {
				return err
			}
			if res.Completed {
				fmt.Fprintf(cmd.OutOrStdout(), "%s #%d\n", ui.Good.Render(ui.IconDone+" Completed"), res.ID)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "%s #%d %s\n", ui.Warn.Render(ui.IconTodo+" Reopened"), res.ID, ui.Muted.Render("(points kept)"))
			}
			printOutcome(cmd.OutOrStdout(), res.Outcome)
			return nil
		},
	}

	return cmd
}
