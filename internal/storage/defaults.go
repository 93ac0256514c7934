package storage

import "time"

const (
	SkillEfficiency    = "efficiency"
	SkillConcentration = "concentration"
	SkillCreativity    = "creativity"
)

func DefaultConfig() Config {
	return Config{
		QuestCooldown:          24,
		PointsPerCreate:        10,
		PointsPerComplete:      20,
		PointsPerModify:        5,
		HighPriorityMultiplier: 2,
		LongTaskMultiplier:     1.5,
		LongTaskThreshold:      120,
		LevelThresholds:        []int{0, 100, 300, 600, 1000, 1500, 2200, 3000, 4000, 5500},
		SkillPointsRequired:    50,
	}
}

func DefaultProfile() Profile {
	return Profile{
		Level:  1,
		Badges: []string{},
		Skills: map[string]Skill{
			SkillEfficiency:    {},
			SkillConcentration: {},
			SkillCreativity:    {},
		},
	}
}

// NewDocument returns an empty document with default profile and config.
func NewDocument() *Document {
	return &Document{
		Tasks:        []Task{},
		Profile:      DefaultProfile(),
		Quests:       []Quest{},
		ActiveQuests: []Quest{},
		Config:       DefaultConfig(),
		NextTaskID:   1,
		NextQuestID:  1,
	}
}

// Seed fills a fresh document with the first-run sample tasks and quest
// catalog. The first sample task is already completed; awarding its points
// is left to the caller.
func Seed(doc *Document, now time.Time) {
	completedAt := now
	doc.Tasks = []Task{
		{
			ID:            1,
			Title:         "Discover TaskQuest",
			Description:   "Learn how to use this gamified task tracker",
			Priority:      PriorityMedium,
			EstimatedTime: 30,
			Completed:     true,
			CompletedAt:   &completedAt,
			CreatedAt:     now,
			UpdatedAt:     now,
		},
		{
			ID:            2,
			Title:         "Create my first real task",
			Description:   "Use the add command to track something of your own",
			Priority:      PriorityHigh,
			EstimatedTime: 15,
			CreatedAt:     now,
			UpdatedAt:     now,
		},
	}
	doc.NextTaskID = 3

	created := now
	day, twoDays := 24, 48
	doc.Quests = []Quest{
		{
			ID:          1,
			Title:       "First step",
			Description: "Create your first task",
			Type:        "create_tasks",
			Target:      1,
			Reward:      50,
			IsActive:    true,
			CreatedAt:   &created,
		},
		{
			ID:            2,
			Title:         "Morning productivity",
			Description:   "Finish 3 tasks before noon",
			Type:          "morning_tasks",
			Target:        3,
			Reward:        100,
			CooldownHours: &day,
		},
		{
			ID:            3,
			Title:         "Efficiency master",
			Description:   "Finish 5 tasks in a single day",
			Type:          "daily_completion",
			Target:        5,
			Reward:        150,
			CooldownHours: &twoDays,
		},
	}
	doc.ActiveQuests = []Quest{doc.Quests[0]}
	doc.NextQuestID = 4
}

// Clone returns a deep copy of the document.
func (d *Document) Clone() *Document {
	out := *d
	out.Tasks = make([]Task, len(d.Tasks))
	for i, t := range d.Tasks {
		out.Tasks[i] = t.Clone()
	}
	out.Profile = d.Profile.Clone()
	out.Quests = cloneQuests(d.Quests)
	out.ActiveQuests = cloneQuests(d.ActiveQuests)
	out.Config = d.Config.Clone()
	return &out
}

func (t Task) Clone() Task {
	if t.CompletedAt != nil {
		v := *t.CompletedAt
		t.CompletedAt = &v
	}
	return t
}

func (p Profile) Clone() Profile {
	if p.LastActiveDate != nil {
		v := *p.LastActiveDate
		p.LastActiveDate = &v
	}
	p.Badges = append([]string{}, p.Badges...)
	skills := make(map[string]Skill, len(p.Skills))
	for k, v := range p.Skills {
		skills[k] = v
	}
	p.Skills = skills
	return p
}

func (q Quest) Clone() Quest {
	if q.CooldownHours != nil {
		v := *q.CooldownHours
		q.CooldownHours = &v
	}
	if q.CreatedAt != nil {
		v := *q.CreatedAt
		q.CreatedAt = &v
	}
	return q
}

func (c Config) Clone() Config {
	c.LevelThresholds = append([]int{}, c.LevelThresholds...)
	return c
}

func cloneQuests(in []Quest) []Quest {
	out := make([]Quest, len(in))
	for i, q := range in {
		out[i] = q.Clone()
	}
	return out
}
