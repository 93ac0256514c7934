package root

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"taskquest/internal/ui"
)

func newAdminCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Adjust the profile directly",
	}
	cmd.AddCommand(
		newAdminAddPointsCmd(),
		newAdminResetProfileCmd(),
		newAdminAddBadgeCmd(),
	)
	return cmd
}

func newAdminAddPointsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add-points <amount>",
		Short: "Grant points (level and skill rules apply)",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("amount is required")
			}
			if _, err := strconv.Atoi(args[0]); err != nil {
				return errors.New("amount must be an integer")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, _ := strconv.Atoi(args[0])
			svc, cleanup, err := openService(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			res, err := svc.AdminAddPoints(cmd.Context(), amount)
			if err != nil {
				return err
			}
			printOutcome(cmd.OutOrStdout(), res.Outcome)
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Total", res.Profile.TotalPoints))
			return nil
		},
	}
}

func newAdminResetProfileCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "reset-profile",
		Short: "Reset level, points, streak, skills and badges",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return errors.New("this wipes all progression; rerun with --yes")
			}
			svc, cleanup, err := openService(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			if _, err := svc.ResetProfile(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Warn.Render(ui.IconWarn+" Profile reset"))
			return nil
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "Confirm the reset")
	return cmd
}

func newAdminAddBadgeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add-badge <id>",
		Short: "Grant a badge",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, cleanup, err := openService(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			added, err := svc.AdminAddBadge(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if !added {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("Badge already held."))
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", ui.IconMedal, ui.Gold.Render("Granted "+args[0]))
			return nil
		},
	}
}
