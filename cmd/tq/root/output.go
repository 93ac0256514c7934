package root

import (
	"fmt"
	"io"
	"strings"

	"taskquest/internal/engine"
	"taskquest/internal/storage"
	"taskquest/internal/ui"
)

func taskLine(t storage.Task) string {
	return fmt.Sprintf("%s #%d %s %s %s",
		ui.CheckIcon(t.Completed), t.ID, t.Title,
		ui.PriorityText(string(t.Priority)),
		ui.Muted.Render(fmt.Sprintf("(%dm)", t.EstimatedTime)))
}

// printOutcome reports what a mutation earned. Nothing is printed for an
// outcome without any reward.
func printOutcome(w io.Writer, out engine.Outcome) {
	if out.PointsAwarded > 0 {
		fmt.Fprintf(w, "%s %s\n", ui.Gold.Render(ui.IconBolt), ui.Good.Render(fmt.Sprintf("+%d pts", out.PointsAwarded)))
	}
	if out.LevelUp {
		fmt.Fprintf(w, "%s %s\n", ui.BadgeLevelUp, ui.LabelValue("Level", fmt.Sprintf("%d → %d", out.LevelBefore, out.LevelAfter)))
	}
	for _, s := range out.SkillLevelUps {
		fmt.Fprintf(w, "%s %s\n", ui.IconSparkle, ui.H2.Render("Skill up: "+s))
	}
	for _, b := range out.BadgesEarned {
		fmt.Fprintf(w, "%s %s\n", ui.IconMedal, ui.Gold.Render("Badge earned: "+b))
	}
	if len(out.QuestsCompleted) > 0 {
		ids := make([]string, len(out.QuestsCompleted))
		for i, id := range out.QuestsCompleted {
			ids[i] = fmt.Sprintf("#%d", id)
		}
		fmt.Fprintf(w, "%s %s\n", ui.IconTrophy, ui.Gold.Render("Quest complete: "+strings.Join(ids, ", ")))
	}
}
