package engine

import (
	"context"
	"strings"

	"taskquest/internal/storage"
)

const (
	QuestTypeCreateTasks = "create_tasks"
	// QuestTypeCompletion is emitted on every task completion and also
	// matches every progress event.
	QuestTypeCompletion = "completion"
)

// QuestInput describes a new catalog quest.
type QuestInput struct {
	Title         string `json:"title"`
	Description   string `json:"description"`
	Type          string `json:"type"`
	Target        int    `json:"target"`
	Reward        int    `json:"reward"`
	CooldownHours *int   `json:"cooldownHours,omitempty"`
}

func (s *Service) questIndex(id int64) int {
	for i := range s.doc.Quests {
		if s.doc.Quests[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Service) activeIndex(id int64) int {
	for i := range s.doc.ActiveQuests {
		if s.doc.ActiveQuests[i].ID == id {
			return i
		}
	}
	return -1
}

// reconcileQuests makes the catalog authoritative for the active set. An
// active entry the catalog lacks is added to it; progress stored on the
// active entry wins, since that is the copy the tracker advanced.
func (s *Service) reconcileQuests() {
	for _, a := range s.doc.ActiveQuests {
		i := s.questIndex(a.ID)
		if i < 0 {
			q := a.Clone()
			q.IsActive = true
			s.doc.Quests = append(s.doc.Quests, q)
			continue
		}
		s.doc.Quests[i].IsActive = true
		s.doc.Quests[i].Progress = a.Progress
	}
	s.refreshActive()
}

// refreshActive rewrites every active entry from its catalog record.
func (s *Service) refreshActive() {
	for i, a := range s.doc.ActiveQuests {
		if j := s.questIndex(a.ID); j >= 0 {
			s.doc.ActiveQuests[i] = s.doc.Quests[j].Clone()
		}
	}
}

func (s *Service) removeActive(id int64) bool {
	i := s.activeIndex(id)
	if i < 0 {
		return false
	}
	s.doc.ActiveQuests = append(s.doc.ActiveQuests[:i], s.doc.ActiveQuests[i+1:]...)
	return true
}

// updateQuestProgress advances every active quest whose type is eventType
// or the completion wildcard.
func (s *Service) updateQuestProgress(out *Outcome, eventType string, amount int) {
	ids := make([]int64, len(s.doc.ActiveQuests))
	for i, a := range s.doc.ActiveQuests {
		ids[i] = a.ID
	}

	for _, id := range ids {
		j := s.questIndex(id)
		if j < 0 {
			continue
		}
		q := &s.doc.Quests[j]
		if q.Type != eventType && q.Type != QuestTypeCompletion {
			continue
		}
		q.Progress += amount
		if q.Progress >= q.Target {
			s.completeQuest(out, j)
		}
	}
	s.refreshActive()
}

func (s *Service) completeQuest(out *Outcome, j int) {
	q := &s.doc.Quests[j]
	if q.Progress > q.Target {
		q.Progress = q.Target
	}
	q.IsActive = false
	id, reward, title := q.ID, q.Reward, q.Title
	s.removeActive(id)

	s.addPoints(out, reward)
	out.QuestsCompleted = append(out.QuestsCompleted, id)
	s.log.WithField("quest", id).WithField("title", title).WithField("reward", reward).Info("quest completed")
}

// Quests returns the whole catalog.
func (s *Service) Quests(ctx context.Context) ([]storage.Quest, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneQuestList(s.doc.Quests), nil
}

// ActiveQuests returns the quests currently tracking progress.
func (s *Service) ActiveQuests(ctx context.Context) ([]storage.Quest, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneQuestList(s.doc.ActiveQuests), nil
}

func (s *Service) CreateQuest(ctx context.Context, in QuestInput) (*storage.Quest, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, invalid("title", "title is required")
	}
	typ := strings.TrimSpace(in.Type)
	if typ == "" {
		return nil, invalid("type", "type is required")
	}
	if in.Target < 1 {
		return nil, invalid("target", "target must be at least 1")
	}
	if in.Reward < 0 {
		return nil, invalid("reward", "reward cannot be negative")
	}
	if in.CooldownHours != nil && *in.CooldownHours < 0 {
		return nil, invalid("cooldownHours", "cooldown cannot be negative")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	now := s.clock()
	q := storage.Quest{
		ID:            s.doc.NextQuestID,
		Title:         title,
		Description:   strings.TrimSpace(in.Description),
		Type:          typ,
		Target:        in.Target,
		Reward:        in.Reward,
		CooldownHours: in.CooldownHours,
		CreatedAt:     &now,
	}
	q = q.Clone()
	s.doc.NextQuestID++
	s.doc.Quests = append(s.doc.Quests, q)
	if err := s.commit(ctx); err != nil {
		return nil, err
	}
	s.log.WithField("quest", q.ID).WithField("type", q.Type).Info("quest created")
	return &q, nil
}

// ActivateQuest starts tracking quest id from zero progress. Activating a
// quest that is already active changes nothing.
func (s *Service) ActivateQuest(ctx context.Context, id int64) (*storage.Quest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	j := s.questIndex(id)
	if j < 0 {
		return nil, NotFoundError{Kind: "quest", ID: id}
	}
	if s.activeIndex(id) >= 0 {
		q := s.doc.Quests[j].Clone()
		return &q, nil
	}

	q := &s.doc.Quests[j]
	q.Progress = 0
	q.IsActive = true
	s.doc.ActiveQuests = append(s.doc.ActiveQuests, q.Clone())
	if err := s.commit(ctx); err != nil {
		return nil, err
	}
	s.log.WithField("quest", id).Info("quest activated")
	out := q.Clone()
	return &out, nil
}

// DeactivateQuest stops tracking quest id and discards its progress. It
// reports whether the quest was active.
func (s *Service) DeactivateQuest(ctx context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return false, err
	}

	if !s.removeActive(id) {
		return false, nil
	}
	if j := s.questIndex(id); j >= 0 {
		s.doc.Quests[j].IsActive = false
		s.doc.Quests[j].Progress = 0
	}
	if err := s.commit(ctx); err != nil {
		return false, err
	}
	s.log.WithField("quest", id).Info("quest deactivated")
	return true, nil
}

func cloneQuestList(in []storage.Quest) []storage.Quest {
	out := make([]storage.Quest, len(in))
	for i, q := range in {
		out[i] = q.Clone()
	}
	return out
}
