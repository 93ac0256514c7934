package engine

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"taskquest/internal/storage"
)

// ConfigPatch lists game tunables to change; nil fields are left alone.
type ConfigPatch struct {
	QuestCooldown          *int     `json:"questCooldown,omitempty"`
	PointsPerCreate        *int     `json:"pointsPerCreate,omitempty"`
	PointsPerComplete      *int     `json:"pointsPerComplete,omitempty"`
	PointsPerModify        *int     `json:"pointsPerModify,omitempty"`
	HighPriorityMultiplier *float64 `json:"highPriorityMultiplier,omitempty"`
	LongTaskMultiplier     *float64 `json:"longTaskMultiplier,omitempty"`
	LongTaskThreshold      *int     `json:"longTaskThreshold,omitempty"`
	LevelThresholds        []int    `json:"levelThresholds,omitempty"`
	SkillPointsRequired    *int     `json:"skillPointsRequired,omitempty"`
}

// Set parses raw as a JSON value for the tunable named key, e.g.
// Set("pointsPerCreate", "15") or Set("levelThresholds", "[0,50,150]").
func (p *ConfigPatch) Set(key, raw string) error {
	key = strings.TrimSpace(key)
	body := fmt.Sprintf("{%q: %s}", key, strings.TrimSpace(raw))

	dec := json.NewDecoder(bytes.NewReader([]byte(body)))
	dec.DisallowUnknownFields()
	if err := dec.Decode(p); err != nil {
		if strings.Contains(err.Error(), "unknown field") {
			return invalid(key, "unknown config key")
		}
		return invalid(key, "bad value %q", raw)
	}
	return nil
}

func (p ConfigPatch) apply(c *storage.Config) {
	if p.QuestCooldown != nil {
		c.QuestCooldown = *p.QuestCooldown
	}
	if p.PointsPerCreate != nil {
		c.PointsPerCreate = *p.PointsPerCreate
	}
	if p.PointsPerComplete != nil {
		c.PointsPerComplete = *p.PointsPerComplete
	}
	if p.PointsPerModify != nil {
		c.PointsPerModify = *p.PointsPerModify
	}
	if p.HighPriorityMultiplier != nil {
		c.HighPriorityMultiplier = *p.HighPriorityMultiplier
	}
	if p.LongTaskMultiplier != nil {
		c.LongTaskMultiplier = *p.LongTaskMultiplier
	}
	if p.LongTaskThreshold != nil {
		c.LongTaskThreshold = *p.LongTaskThreshold
	}
	if p.LevelThresholds != nil {
		c.LevelThresholds = append([]int{}, p.LevelThresholds...)
	}
	if p.SkillPointsRequired != nil {
		c.SkillPointsRequired = *p.SkillPointsRequired
	}
}

// ValidateConfig rejects tunables the engine cannot work with.
func ValidateConfig(c storage.Config) error {
	for _, f := range []struct {
		name string
		v    int
	}{
		{"questCooldown", c.QuestCooldown},
		{"pointsPerCreate", c.PointsPerCreate},
		{"pointsPerComplete", c.PointsPerComplete},
		{"pointsPerModify", c.PointsPerModify},
		{"longTaskThreshold", c.LongTaskThreshold},
	} {
		if f.v < 0 {
			return invalid(f.name, "cannot be negative")
		}
	}
	if c.HighPriorityMultiplier < 0 {
		return invalid("highPriorityMultiplier", "cannot be negative")
	}
	if c.LongTaskMultiplier < 0 {
		return invalid("longTaskMultiplier", "cannot be negative")
	}
	if c.SkillPointsRequired < 1 {
		return invalid("skillPointsRequired", "must be at least 1")
	}
	th := c.LevelThresholds
	if len(th) == 0 || th[0] != 0 {
		return invalid("levelThresholds", "must start at 0")
	}
	for i := 1; i < len(th); i++ {
		if th[i] <= th[i-1] {
			return invalid("levelThresholds", "must be strictly increasing")
		}
	}
	return nil
}

func (s *Service) Config(ctx context.Context) (storage.Config, error) {
	if err := ctx.Err(); err != nil {
		return storage.Config{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc.Config.Clone(), nil
}

// UpdateConfig merges patch into the tunables. The level is rechecked
// against the new thresholds; it can rise but never drop.
func (s *Service) UpdateConfig(ctx context.Context, patch ConfigPatch) (storage.Config, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return storage.Config{}, err
	}

	next := s.doc.Config.Clone()
	patch.apply(&next)
	if err := ValidateConfig(next); err != nil {
		return storage.Config{}, err
	}
	s.doc.Config = next
	s.checkLevelUp(s.newOutcome())
	if err := s.commit(ctx); err != nil {
		return storage.Config{}, err
	}
	s.log.Info("config updated")
	return next.Clone(), nil
}

func (s *Service) ResetConfig(ctx context.Context) (storage.Config, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return storage.Config{}, err
	}

	s.doc.Config = storage.DefaultConfig()
	if err := s.commit(ctx); err != nil {
		return storage.Config{}, err
	}
	s.log.Info("config reset")
	return s.doc.Config.Clone(), nil
}
