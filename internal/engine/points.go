package engine

import "taskquest/internal/storage"

// Action is a point-earning event.
type Action string

const (
	ActionCreate   Action = "create"
	ActionComplete Action = "complete"
	ActionModify   Action = "modify"
)

// Outcome reports what a mutation did to the profile.
type Outcome struct {
	PointsAwarded   int      `json:"pointsAwarded"`
	LevelBefore     int      `json:"levelBefore"`
	LevelAfter      int      `json:"levelAfter"`
	LevelUp         bool     `json:"levelUp"`
	SkillLevelUps   []string `json:"skillLevelUps,omitempty"`
	BadgesEarned    []string `json:"badgesEarned,omitempty"`
	QuestsCompleted []int64  `json:"questsCompleted,omitempty"`
}

func (s *Service) newOutcome() *Outcome {
	level := s.doc.Profile.Level
	return &Outcome{LevelBefore: level, LevelAfter: level}
}

// PointsFor returns the points action on t is worth under cfg. Completion
// points are multiplied for high priority and long tasks, then truncated.
func PointsFor(action Action, t storage.Task, cfg storage.Config) int {
	switch action {
	case ActionCreate:
		return cfg.PointsPerCreate
	case ActionModify:
		return cfg.PointsPerModify
	case ActionComplete:
		pts := float64(cfg.PointsPerComplete)
		if t.Priority == storage.PriorityHigh {
			pts *= cfg.HighPriorityMultiplier
		}
		if t.EstimatedTime >= cfg.LongTaskThreshold {
			pts *= cfg.LongTaskMultiplier
		}
		return int(pts)
	default:
		return 0
	}
}

// awardPoints bumps the stat counter for action and adds its points.
func (s *Service) awardPoints(out *Outcome, action Action, t *storage.Task) {
	stats := &s.doc.Profile.Stats
	switch action {
	case ActionCreate:
		stats.TasksCreated++
	case ActionModify:
		stats.TasksModified++
	case ActionComplete:
		stats.TasksCompleted++
		stats.TotalTimeSpent += t.EstimatedTime
	}
	s.addPoints(out, PointsFor(action, *t, s.doc.Config))
}

// addPoints is the only place totalPoints grows.
func (s *Service) addPoints(out *Outcome, amount int) {
	if amount <= 0 {
		return
	}
	p := &s.doc.Profile
	p.TotalPoints += amount
	p.CurrentLevelPoints += amount
	out.PointsAwarded += amount

	s.checkLevelUp(out)
	s.addSkillPoints(out, amount)
}
