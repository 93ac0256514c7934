package engine

import (
	"context"
	"sort"

	"taskquest/internal/storage"
)

// A third of every award, rounded down, goes to the growth skill.
const skillShareDivisor = 3

func growthSkill() string { return storage.SkillEfficiency }

func (s *Service) addSkillPoints(out *Outcome, amount int) {
	skills := s.doc.Profile.Skills
	if skills == nil {
		skills = storage.DefaultProfile().Skills
		s.doc.Profile.Skills = skills
	}

	name := growthSkill()
	sk := skills[name]
	sk.Points += amount / skillShareDivisor
	skills[name] = sk

	required := s.doc.Config.SkillPointsRequired
	if required < 1 {
		return
	}
	names := make([]string, 0, len(skills))
	for n := range skills {
		names = append(names, n)
	}
	sort.Strings(names)
	for _, n := range names {
		sk := skills[n]
		if sk.Points < required {
			continue
		}
		// Overflow past the requirement is dropped.
		sk.Level++
		sk.Points = 0
		skills[n] = sk
		out.SkillLevelUps = append(out.SkillLevelUps, n)
		s.log.WithField("skill", n).WithField("level", sk.Level).Info("skill level up")
	}
}

// Skills returns a copy of the skill map.
func (s *Service) Skills(ctx context.Context) (map[string]storage.Skill, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc.Profile.Clone().Skills, nil
}
