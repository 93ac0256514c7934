package engine

import "context"

type ToggleResult struct {
	ID        int64 `json:"id"`
	Updated   bool  `json:"updated"`
	Completed bool  `json:"completed"`
	Outcome
}

// ToggleTaskComplete flips the completion state of task id. Completing runs
// the whole reward pipeline; uncompleting clears completedAt and keeps
// every point already earned.
func (s *Service) ToggleTaskComplete(ctx context.Context, id int64) (*ToggleResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	task := s.findTask(id)
	if task == nil {
		return nil, NotFoundError{Kind: "task", ID: id}
	}

	now := s.clock()
	out := s.newOutcome()
	task.Completed = !task.Completed
	task.UpdatedAt = now

	if task.Completed {
		completedAt := now
		task.CompletedAt = &completedAt
		s.awardPoints(out, ActionComplete, task)
		s.checkTimeBasedBadges(out, task)
		s.updateQuestProgress(out, QuestTypeCompletion, 1)
		s.updateStreak()
	} else {
		task.CompletedAt = nil
	}

	res := &ToggleResult{ID: id, Updated: true, Completed: task.Completed, Outcome: *out}
	if err := s.commit(ctx); err != nil {
		return nil, err
	}
	s.log.WithField("task", id).WithField("completed", res.Completed).WithField("points", out.PointsAwarded).Info("task toggled")
	return res, nil
}
