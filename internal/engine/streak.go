package engine

import "time"

const dateLayout = "2006-01-02"

// legacyDateLayout is how older data files wrote lastActiveDate.
const legacyDateLayout = "Mon Jan 02 2006"

func dayKey(t time.Time) string { return t.Format(dateLayout) }

// parseDay accepts both stored date layouts and returns the canonical key.
func parseDay(s string) (string, bool) {
	for _, layout := range []string{dateLayout, legacyDateLayout} {
		if d, err := time.Parse(layout, s); err == nil {
			return d.Format(dateLayout), true
		}
	}
	return "", false
}

// updateStreak counts today as active if any task was completed today.
// A completion the day after lastActiveDate extends the streak; any other
// gap restarts it at 1.
func (s *Service) updateStreak() {
	now := s.clock()
	today := dayKey(now)

	completedToday := false
	for _, t := range s.doc.Tasks {
		if t.Completed && t.CompletedAt != nil && dayKey(t.CompletedAt.In(s.loc)) == today {
			completedToday = true
			break
		}
	}
	if !completedToday {
		return
	}

	p := &s.doc.Profile
	last := ""
	if p.LastActiveDate != nil {
		last, _ = parseDay(*p.LastActiveDate)
	}
	if last == today {
		return
	}

	yesterday := dayKey(now.AddDate(0, 0, -1))
	if last == yesterday {
		p.Streak++
	} else {
		p.Streak = 1
	}
	p.LastActiveDate = &today
	s.log.WithField("streak", p.Streak).Debug("streak updated")
}
