package root

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"taskquest/internal/ui"
)

func newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show level, streak, skills and badges",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			svc, cleanup, err := openService(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			p, err := svc.Profile(ctx)
			if err != nil {
				return err
			}
			lp, err := svc.LevelProgress(ctx)
			if err != nil {
				return err
			}
			cfg, err := svc.Config(ctx)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			fmt.Fprintln(w, ui.Heading(ui.IconSparkle, "Profile"))
			fmt.Fprintln(w, ui.LabelValue("Level", lp.Level))
			if lp.PointsNeeded > 0 {
				fmt.Fprintln(w, ui.LabelValue("Points", fmt.Sprintf("%d (next at %d, %d to go) %s", p.TotalPoints, lp.NextThreshold, lp.PointsNeeded, ui.Bar(lp.ProgressToNext, lp.NextThreshold-lp.CurrentThreshold, 20))))
			} else {
				fmt.Fprintln(w, ui.LabelValue("Points", fmt.Sprintf("%d %s", p.TotalPoints, ui.Gold.Render("(max level)"))))
			}
			streak := fmt.Sprintf("%d day(s)", p.Streak)
			if p.LastActiveDate != nil {
				streak += " " + ui.Muted.Render("(last active "+*p.LastActiveDate+")")
			}
			fmt.Fprintln(w, ui.LabelValue(ui.IconFire+" Streak", streak))
			fmt.Fprintln(w, "")

			fmt.Fprintln(w, ui.H2.Render("📊 Skills"))
			names := make([]string, 0, len(p.Skills))
			for name := range p.Skills {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				s := p.Skills[name]
				fmt.Fprintf(w, "- %s: lvl %d %s\n", name, s.Level, ui.Bar(s.Points, cfg.SkillPointsRequired, 10))
			}
			fmt.Fprintln(w, "")

			badges, err := svc.Badges(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintln(w, ui.H2.Render(ui.IconMedal+" Badges"))
			for _, b := range badges {
				state := ui.Muted.Render("locked")
				if b.Earned {
					state = ui.Good.Render("earned")
				}
				fmt.Fprintf(w, "- %s %s %s %s\n", b.Icon, b.Name, state, ui.Muted.Render(b.Description))
			}
			fmt.Fprintln(w, "")

			s := p.Stats
			fmt.Fprintln(w, ui.H2.Render("📈 Stats"))
			fmt.Fprintf(w, "- created %d, completed %d, modified %d\n", s.TasksCreated, s.TasksCompleted, s.TasksModified)
			fmt.Fprintf(w, "- %d minutes of estimated work done\n", s.TotalTimeSpent)
			fmt.Fprintf(w, "- early bird %d, night owl %d\n", s.EarlyBirdTasks, s.NightOwlTasks)
			return nil
		},
	}

	return cmd
}
