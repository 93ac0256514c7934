package engine

import (
	"context"

	"taskquest/internal/storage"
)

type ProfileResult struct {
	Profile storage.Profile `json:"profile"`
	Outcome
}

func (s *Service) Profile(ctx context.Context) (storage.Profile, error) {
	if err := ctx.Err(); err != nil {
		return storage.Profile{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc.Profile.Clone(), nil
}

// AdminAddPoints grants amount points through the normal pipeline, so
// level and skill thresholds apply.
func (s *Service) AdminAddPoints(ctx context.Context, amount int) (*ProfileResult, error) {
	if amount < 0 {
		return nil, invalid("amount", "points cannot be negative")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out := s.newOutcome()
	s.addPoints(out, amount)
	res := &ProfileResult{Profile: s.doc.Profile.Clone(), Outcome: *out}
	if err := s.commit(ctx); err != nil {
		return nil, err
	}
	s.log.WithField("amount", amount).Info("points granted")
	return res, nil
}

// ResetProfile replaces the profile with a level 1 default. Tasks, quests
// and config are untouched.
func (s *Service) ResetProfile(ctx context.Context) (storage.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return storage.Profile{}, err
	}

	s.doc.Profile = storage.DefaultProfile()
	if err := s.commit(ctx); err != nil {
		return storage.Profile{}, err
	}
	s.log.Info("profile reset")
	return s.doc.Profile.Clone(), nil
}
