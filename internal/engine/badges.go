package engine

import (
	"context"
	"strings"

	"taskquest/internal/storage"
)

const (
	BadgeEarlyBird = "early_bird"
	BadgeNightOwl  = "night_owl"

	earlyBirdBefore = 9
	nightOwlFrom    = 22
)

// Badge is a catalog entry with the profile's earned status.
type Badge struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Earned      bool   `json:"earned"`
}

var badgeCatalog = []Badge{
	{ID: BadgeEarlyBird, Name: "Early Bird", Description: "Complete a task before 9 AM", Icon: "🐦"},
	{ID: BadgeNightOwl, Name: "Night Owl", Description: "Complete a task after 10 PM", Icon: "🦉"},
}

// checkTimeBasedBadges awards the hour-of-day badges for a freshly completed task.
func (s *Service) checkTimeBasedBadges(out *Outcome, t *storage.Task) {
	if t.CompletedAt == nil {
		return
	}
	p := &s.doc.Profile
	hour := t.CompletedAt.In(s.loc).Hour()

	if hour < earlyBirdBefore && !p.HasBadge(BadgeEarlyBird) {
		p.Badges = append(p.Badges, BadgeEarlyBird)
		p.Stats.EarlyBirdTasks++
		out.BadgesEarned = append(out.BadgesEarned, BadgeEarlyBird)
		s.log.WithField("badge", BadgeEarlyBird).WithField("task", t.ID).Info("badge earned")
	}
	if hour >= nightOwlFrom && !p.HasBadge(BadgeNightOwl) {
		p.Badges = append(p.Badges, BadgeNightOwl)
		p.Stats.NightOwlTasks++
		out.BadgesEarned = append(out.BadgesEarned, BadgeNightOwl)
		s.log.WithField("badge", BadgeNightOwl).WithField("task", t.ID).Info("badge earned")
	}
}

// Badges returns the catalog with earned flags, followed by any held
// badge the catalog does not know about.
func (s *Service) Badges(ctx context.Context) ([]Badge, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	p := &s.doc.Profile
	out := make([]Badge, 0, len(badgeCatalog))
	known := map[string]bool{}
	for _, b := range badgeCatalog {
		b.Earned = p.HasBadge(b.ID)
		out = append(out, b)
		known[b.ID] = true
	}
	for _, id := range p.Badges {
		if known[id] {
			continue
		}
		out = append(out, Badge{ID: id, Name: id, Icon: "🏅", Earned: true})
	}
	return out, nil
}

// AdminAddBadge grants badge id. Granting a held badge is a no-op; added
// reports whether the profile changed.
func (s *Service) AdminAddBadge(ctx context.Context, id string) (added bool, err error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return false, invalid("badge", "badge id is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return false, err
	}

	p := &s.doc.Profile
	if p.HasBadge(id) {
		return false, nil
	}
	p.Badges = append(p.Badges, id)
	if err := s.commit(ctx); err != nil {
		return false, err
	}
	s.log.WithField("badge", id).Info("badge granted")
	return true, nil
}
