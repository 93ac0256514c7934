package root

import (
	"fmt"

	"github.com/spf13/cobra"

	"taskquest/internal/ui"
)

func newListCmd() *cobra.Command {
	var pendingOnly bool
	var doneOnly bool

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List tasks, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, cleanup, err := openService(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			tasks, err := svc.ListTasks(cmd.Context())
			if err != nil {
				return err
			}
			shown := 0
			for _, t := range tasks {
				if pendingOnly && t.Completed || doneOnly && !t.Completed {
					continue
				}
				fmt.Fprintln(cmd.OutOrStdout(), taskLine(t))
				if t.Description != "" {
					fmt.Fprintln(cmd.OutOrStdout(), "   "+ui.Muted.Render(t.Description))
				}
				shown++
			}
			if shown == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("No tasks."))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&pendingOnly, "pending", false, "Only open tasks")
	cmd.Flags().BoolVar(&doneOnly, "done", false, "Only completed tasks")
	cmd.MarkFlagsMutuallyExclusive("pending", "done")

	return cmd
}
