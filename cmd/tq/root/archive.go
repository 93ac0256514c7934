package root

import (
	"fmt"

	"github.com/spf13/cobra"

	"taskquest/internal/storage"
	"taskquest/internal/ui"
)

func newArchiveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "archive",
		Short: "Inspect SQLite export archives",
	}
	cmd.AddCommand(newArchiveLsCmd())
	return cmd
}

func newArchiveLsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ls <file>",
		Short: "List the exports stored in an archive",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := storage.ListArchive(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("Archive is empty."))
				return nil
			}
			for _, e := range entries {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n",
					ui.Key.Render(e.ExportID),
					e.ExportedAt.Local().Format("2006-01-02 15:04:05"),
					ui.Muted.Render(fmt.Sprintf("%d tasks, %d quests", e.TaskCount, e.QuestCount)))
			}
			return nil
		},
	}
}
