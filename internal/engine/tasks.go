package engine

import (
	"context"
	"sort"

	"taskquest/internal/storage"
)

type DeleteResult struct {
	Deleted bool `json:"deleted"`
}

// Stats summarizes the task list.
type Stats struct {
	Total        int `json:"total"`
	Completed    int `json:"completed"`
	Pending      int `json:"pending"`
	HighPriority int `json:"high_priority"` // open high-priority tasks
}

// ListTasks returns every task, newest first.
func (s *Service) ListTasks(ctx context.Context) ([]storage.Task, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]storage.Task, len(s.doc.Tasks))
	for i, t := range s.doc.Tasks {
		out[i] = t.Clone()
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

// GetTask returns one task.
func (s *Service) GetTask(ctx context.Context, id int64) (*storage.Task, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	t := s.findTask(id)
	if t == nil {
		return nil, NotFoundError{Kind: "task", ID: id}
	}
	out := t.Clone()
	return &out, nil
}

// DeleteTask removes task id. Points already earned from it are kept.
func (s *Service) DeleteTask(ctx context.Context, id int64) (*DeleteResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	idx := -1
	for i := range s.doc.Tasks {
		if s.doc.Tasks[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return &DeleteResult{Deleted: false}, nil
	}
	s.doc.Tasks = append(s.doc.Tasks[:idx], s.doc.Tasks[idx+1:]...)
	if err := s.commit(ctx); err != nil {
		return nil, err
	}
	s.log.WithField("task", id).Info("task deleted")
	return &DeleteResult{Deleted: true}, nil
}

func (s *Service) Stats(ctx context.Context) (Stats, error) {
	if err := ctx.Err(); err != nil {
		return Stats{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	var st Stats
	for _, t := range s.doc.Tasks {
		st.Total++
		if t.Completed {
			st.Completed++
			continue
		}
		if t.Priority == storage.PriorityHigh {
			st.HighPriority++
		}
	}
	st.Pending = st.Total - st.Completed
	return st, nil
}
