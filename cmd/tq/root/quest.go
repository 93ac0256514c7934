package root

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"taskquest/internal/engine"
	"taskquest/internal/storage"
	"taskquest/internal/ui"
)

func newQuestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "quest",
		Short: "Manage quests",
	}
	cmd.AddCommand(
		newQuestListCmd(),
		newQuestActiveCmd(),
		newQuestNewCmd(),
		newQuestActivateCmd(),
		newQuestDeactivateCmd(),
	)
	return cmd
}

func questLine(q storage.Quest) string {
	state := ui.Muted.Render("inactive")
	if q.IsActive {
		state = ui.H2.Render("active")
	}
	return fmt.Sprintf("%s #%d %s %s %s %s",
		ui.IconScroll, q.ID, q.Title, state,
		ui.Bar(q.Progress, q.Target, 10),
		ui.Muted.Render(fmt.Sprintf("%d/%d %s +%d", q.Progress, q.Target, q.Type, q.Reward)))
}

func printQuests(cmd *cobra.Command, quests []storage.Quest) {
	if len(quests) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("No quests."))
		return
	}
	for _, q := range quests {
		fmt.Fprintln(cmd.OutOrStdout(), questLine(q))
	}
}

func newQuestListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the quest catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, cleanup, err := openService(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			quests, err := svc.Quests(cmd.Context())
			if err != nil {
				return err
			}
			printQuests(cmd, quests)
			return nil
		},
	}
}

func newQuestActiveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "active",
		Short: "List active quests",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, cleanup, err := openService(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			quests, err := svc.ActiveQuests(cmd.Context())
			if err != nil {
				return err
			}
			printQuests(cmd, quests)
			return nil
		},
	}
}

func newQuestNewCmd() *cobra.Command {
	var in engine.QuestInput
	var cooldown int

	cmd := &cobra.Command{
		Use:   "new <title>",
		Short: "Add a quest to the catalog",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return errors.New("title is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			in.Title = strings.Join(args, " ")
			if cmd.Flags().Changed("cooldown") {
				in.CooldownHours = &cooldown
			}
			svc, cleanup, err := openService(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			q, err := svc.CreateQuest(cmd.Context(), in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", ui.Good.Render(ui.IconPlus+" Quest added"), questLine(*q))
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", ui.Muted.Render("💡 Start it with"), ui.Key.Render(fmt.Sprintf("tq quest activate %d", q.ID)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&in.Description, "desc", "d", "", "Description")
	cmd.Flags().StringVar(&in.Type, "type", engine.QuestTypeCompletion, "Event type to track (completion matches everything)")
	cmd.Flags().IntVar(&in.Target, "target", 1, "Progress needed")
	cmd.Flags().IntVar(&in.Reward, "reward", 50, "Points on completion")
	cmd.Flags().IntVar(&cooldown, "cooldown", 0, "Cooldown hours (informational)")

	return cmd
}

func newQuestActivateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "activate <id>",
		Short: "Start tracking a quest",
		Args:  idArg,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, cleanup, err := openService(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			q, err := svc.ActivateQuest(cmd.Context(), parseID(args[0]))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", ui.Good.Render("Activated"), questLine(*q))
			return nil
		},
	}
}

func newQuestDeactivateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "deactivate <id>",
		Short: "Stop tracking a quest (progress is discarded)",
		Args:  idArg,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, cleanup, err := openService(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			id := parseID(args[0])
			removed, err := svc.DeactivateQuest(cmd.Context(), id)
			if err != nil {
				return err
			}
			if !removed {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render(fmt.Sprintf("Quest #%d was not active.", id)))
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s #%d\n", ui.Warn.Render("Deactivated"), id)
			return nil
		},
	}
}
