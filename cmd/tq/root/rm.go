package root

import (
	"fmt"

	"github.com/spf13/cobra"

	"taskquest/internal/ui"
)

func newRmCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a task",
		Args:  idArg,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, cleanup, err := openService(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			id := parseID(args[0])
			res, err := svc.DeleteTask(cmd.Context(), id)
			if err != nil {
				return err
			}
			if !res.Deleted {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render(fmt.Sprintf("No task #%d.", id)))
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s #%d\n", ui.Warn.Render(ui.IconTrash+" Deleted"), id)
			return nil
		},
	}

	return cmd
}
