package root

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"taskquest/internal/engine"
	"taskquest/internal/ui"
)

func newAddCmd() *cobra.Command {
	var desc string
	var priority string
	var minutes int

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a task",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return errors.New("title is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := engine.ParsePriority(priority)
			if err != nil {
				return err
			}
			svc, cleanup, err := openService(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			res, err := svc.CreateTask(cmd.Context(), engine.CreateTaskInput{
				Title:         strings.Join(args, " "),
				Description:   desc,
				Priority:      p,
				EstimatedTime: minutes,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", ui.Good.Render(ui.IconPlus+" Added"), taskLine(res.Task))
			printOutcome(cmd.OutOrStdout(), res.Outcome)
			return nil
		},
	}

	cmd.Flags().StringVarP(&desc, "desc", "d", "", "Description")
	cmd.Flags().StringVarP(&priority, "priority", "p", "medium", "Priority (low|medium|high)")
	cmd.Flags().IntVarP(&minutes, "time", "t", engine.DefaultEstimatedTime, "Estimated minutes (5-480)")

	return cmd
}
