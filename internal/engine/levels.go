package engine

import "context"

// LevelForPoints returns the 1-based level reached with totalPoints: the
// largest i+1 such that totalPoints >= thresholds[i]. Thresholds are
// expected to be strictly increasing and start at 0.
func LevelForPoints(thresholds []int, totalPoints int) int {
	level := 1
	for i, th := range thresholds {
		if totalPoints < th {
			break
		}
		level = i + 1
	}
	return level
}

// LevelProgress describes how far the profile is into its current level.
// ProgressToNext is in points past CurrentThreshold; ProgressPercent is the
// same distance as a share of the level span, clamped to 0..100. At the top
// level NextThreshold is the last threshold and PointsNeeded may be zero or
// negative.
type LevelProgress struct {
	Level            int `json:"level"`
	CurrentPoints    int `json:"currentPoints"`
	CurrentThreshold int `json:"currentThreshold"`
	NextThreshold    int `json:"nextThreshold"`
	ProgressToNext   int `json:"progressToNext"`
	ProgressPercent  int `json:"progressPercent"`
	PointsNeeded     int `json:"pointsNeeded"`
}

func levelProgress(thresholds []int, level, totalPoints int) LevelProgress {
	lp := LevelProgress{Level: level, CurrentPoints: totalPoints}
	if n := len(thresholds); n > 0 {
		if level >= 1 && level <= n {
			lp.CurrentThreshold = thresholds[level-1]
		}
		if level < n {
			lp.NextThreshold = thresholds[level]
		} else {
			lp.NextThreshold = thresholds[n-1]
		}
	}
	lp.PointsNeeded = lp.NextThreshold - totalPoints
	lp.ProgressToNext = totalPoints - lp.CurrentThreshold

	span := lp.NextThreshold - lp.CurrentThreshold
	switch {
	case span <= 0:
		lp.ProgressPercent = 100
	default:
		lp.ProgressPercent = lp.ProgressToNext * 100 / span
	}
	lp.ProgressPercent = max(0, min(100, lp.ProgressPercent))
	return lp
}

func (s *Service) checkLevelUp(out *Outcome) {
	p := &s.doc.Profile
	level := LevelForPoints(s.doc.Config.LevelThresholds, p.TotalPoints)
	if level <= p.Level {
		return
	}
	before := p.Level
	p.Level = level
	out.LevelAfter = level
	out.LevelUp = true
	s.log.WithField("from", before).WithField("to", level).Info("level up")
}

// LevelProgress reports progress toward the next level.
func (s *Service) LevelProgress(ctx context.Context) (LevelProgress, error) {
	if err := ctx.Err(); err != nil {
		return LevelProgress{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.doc.Profile
	return levelProgress(s.doc.Config.LevelThresholds, p.Level, p.TotalPoints), nil
}
