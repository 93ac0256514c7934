package engine

import (
	"context"
	"strings"

	"taskquest/internal/storage"
)

// TaskPatch lists the fields to change; nil fields are left alone.
type TaskPatch struct {
	Title         *string           `json:"title,omitempty"`
	Description   *string           `json:"description,omitempty"`
	Priority      *storage.Priority `json:"priority,omitempty"`
	EstimatedTime *int              `json:"estimatedTime,omitempty"`
}

func (p TaskPatch) empty() bool {
	return p.Title == nil && p.Description == nil && p.Priority == nil && p.EstimatedTime == nil
}

type UpdateResult struct {
	Task storage.Task `json:"task"`
	Outcome
}

// UpdateTask applies patch to task id and awards modify points.
func (s *Service) UpdateTask(ctx context.Context, id int64, patch TaskPatch) (*UpdateResult, error) {
	if patch.empty() {
		return nil, invalid("", "nothing to update")
	}
	var title string
	if patch.Title != nil {
		t, err := normalizeTitle(*patch.Title)
		if err != nil {
			return nil, err
		}
		title = t
	}
	if patch.Priority != nil && !patch.Priority.IsValid() {
		return nil, invalid("priority", "must be low, medium or high, got %q", *patch.Priority)
	}
	if patch.EstimatedTime != nil {
		if err := checkEstimatedTime(*patch.EstimatedTime); err != nil {
			return nil, err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	task := s.findTask(id)
	if task == nil {
		return nil, NotFoundError{Kind: "task", ID: id}
	}
	if patch.Title != nil {
		task.Title = title
	}
	if patch.Description != nil {
		task.Description = strings.TrimSpace(*patch.Description)
	}
	if patch.Priority != nil {
		task.Priority = *patch.Priority
	}
	if patch.EstimatedTime != nil {
		task.EstimatedTime = *patch.EstimatedTime
	}
	task.UpdatedAt = s.clock()

	out := s.newOutcome()
	s.awardPoints(out, ActionModify, task)

	res := &UpdateResult{Task: task.Clone(), Outcome: *out}
	if err := s.commit(ctx); err != nil {
		return nil, err
	}
	s.log.WithField("task", id).Info("task updated")
	return res, nil
}
