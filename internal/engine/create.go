package engine

import (
	"context"
	"strings"

	"taskquest/internal/storage"
)

// CreateTaskInput is a new task. Zero Priority means medium and zero
// EstimatedTime means DefaultEstimatedTime.
type CreateTaskInput struct {
	Title         string           `json:"title"`
	Description   string           `json:"description"`
	Priority      storage.Priority `json:"priority"`
	EstimatedTime int              `json:"estimatedTime"`
}

type CreateResult struct {
	Task storage.Task `json:"task"`
	Outcome
}

func (s *Service) CreateTask(ctx context.Context, in CreateTaskInput) (*CreateResult, error) {
	title, err := normalizeTitle(in.Title)
	if err != nil {
		return nil, err
	}
	priority := in.Priority
	if priority == "" {
		priority = storage.PriorityMedium
	}
	if !priority.IsValid() {
		return nil, invalid("priority", "must be low, medium or high, got %q", priority)
	}
	minutes := in.EstimatedTime
	if minutes == 0 {
		minutes = DefaultEstimatedTime
	}
	if err := checkEstimatedTime(minutes); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	now := s.clock()
	s.doc.Tasks = append(s.doc.Tasks, storage.Task{
		ID:            s.doc.NextTaskID,
		Title:         title,
		Description:   strings.TrimSpace(in.Description),
		Priority:      priority,
		EstimatedTime: minutes,
		CreatedAt:     now,
		UpdatedAt:     now,
	})
	s.doc.NextTaskID++
	task := &s.doc.Tasks[len(s.doc.Tasks)-1]

	out := s.newOutcome()
	s.awardPoints(out, ActionCreate, task)
	s.updateQuestProgress(out, QuestTypeCreateTasks, 1)

	res := &CreateResult{Task: task.Clone(), Outcome: *out}
	if err := s.commit(ctx); err != nil {
		return nil, err
	}
	s.log.WithField("task", res.Task.ID).WithField("points", out.PointsAwarded).Info("task created")
	return res, nil
}
