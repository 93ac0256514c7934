package root

import (
	"fmt"

	"github.com/spf13/cobra"

	"taskquest/internal/ui"
)

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show task counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, cleanup, err := openService(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			st, err := svc.Stats(cmd.Context())
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			fmt.Fprintln(w, ui.Heading(ui.IconBox, "Tasks"))
			fmt.Fprintln(w, ui.LabelValue("Total", st.Total))
			fmt.Fprintln(w, ui.LabelValue("Completed", st.Completed))
			fmt.Fprintln(w, ui.LabelValue("Pending", st.Pending))
			fmt.Fprintln(w, ui.LabelValue("High priority open", st.HighPriority))
			return nil
		},
	}

	return cmd
}
