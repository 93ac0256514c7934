package root

import (
	"fmt"

	"github.com/spf13/cobra"

	"taskquest/internal/engine"
	"taskquest/internal/storage"
	"taskquest/internal/ui"
)

func newEditCmd() *cobra.Command {
	var title, desc, priority string
	var minutes int

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change a task's title, description, priority or estimate",
		Args:  idArg,
		RunE: func(cmd *cobra.Command, args []string) error {
			var patch engine.TaskPatch
			flags := cmd.Flags()
			if flags.Changed("title") {
				patch.Title = &title
			}
			if flags.Changed("desc") {
				patch.Description = &desc
			}
			if flags.Changed("priority") {
				p, err := engine.ParsePriority(priority)
				if err != nil {
					return err
				}
				patch.Priority = &p
			}
			if flags.Changed("time") {
				patch.EstimatedTime = &minutes
			}

			svc, cleanup, err := openService(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			res, err := svc.UpdateTask(cmd.Context(), parseID(args[0]), patch)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", ui.H2.Render(ui.IconEdit+" Updated"), taskLine(res.Task))
			printOutcome(cmd.OutOrStdout(), res.Outcome)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "New title")
	cmd.Flags().StringVarP(&desc, "desc", "d", "", "New description")
	cmd.Flags().StringVarP(&priority, "priority", "p", string(storage.PriorityMedium), "New priority (low|medium|high)")
	cmd.Flags().IntVarP(&minutes, "time", "t", engine.DefaultEstimatedTime, "New estimate in minutes (5-480)")

	return cmd
}
