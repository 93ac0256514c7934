package storage

import "time"

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	default:
		return false
	}
}

type Task struct {
	ID            int64      `json:"id" yaml:"id"`
	Title         string     `json:"title" yaml:"title"`
	Description   string     `json:"description" yaml:"description"`
	Priority      Priority   `json:"priority" yaml:"priority"`
	EstimatedTime int        `json:"estimatedTime" yaml:"estimatedTime"`
	Completed     bool       `json:"completed" yaml:"completed"`
	CompletedAt   *time.Time `json:"completedAt,omitempty" yaml:"completedAt,omitempty"`
	CreatedAt     time.Time  `json:"created_at" yaml:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at" yaml:"updated_at"`
}

type Skill struct {
	Level  int `json:"level" yaml:"level"`
	Points int `json:"points" yaml:"points"`
}

type Stats struct {
	TasksCreated   int `json:"tasksCreated" yaml:"tasksCreated"`
	TasksCompleted int `json:"tasksCompleted" yaml:"tasksCompleted"`
	TasksModified  int `json:"tasksModified" yaml:"tasksModified"`
	TotalTimeSpent int `json:"totalTimeSpent" yaml:"totalTimeSpent"`
	EarlyBirdTasks int `json:"earlyBirdTasks" yaml:"earlyBirdTasks"`
	NightOwlTasks  int `json:"nightOwlTasks" yaml:"nightOwlTasks"`
}

// Profile is the singleton progression state.
type Profile struct {
	TotalPoints        int              `json:"totalPoints" yaml:"totalPoints"`
	Level              int              `json:"level" yaml:"level"`
	CurrentLevelPoints int              `json:"currentLevelPoints" yaml:"currentLevelPoints"`
	Streak             int              `json:"streak" yaml:"streak"`
	LastActiveDate     *string          `json:"lastActiveDate" yaml:"lastActiveDate"`
	Badges             []string         `json:"badges" yaml:"badges"`
	Skills             map[string]Skill `json:"skills" yaml:"skills"`
	Stats              Stats            `json:"stats" yaml:"stats"`
}

func (p *Profile) HasBadge(id string) bool {
	for _, b := range p.Badges {
		if b == id {
			return true
		}
	}
	return false
}

type Quest struct {
	ID            int64      `json:"id" yaml:"id"`
	Title         string     `json:"title" yaml:"title"`
	Description   string     `json:"description" yaml:"description"`
	Type          string     `json:"type" yaml:"type"`
	Target        int        `json:"target" yaml:"target"`
	Reward        int        `json:"reward" yaml:"reward"`
	IsActive      bool       `json:"isActive" yaml:"isActive"`
	Progress      int        `json:"progress" yaml:"progress"`
	CooldownHours *int       `json:"cooldownHours,omitempty" yaml:"cooldownHours,omitempty"` // stored, never enforced
	CreatedAt     *time.Time `json:"createdAt,omitempty" yaml:"createdAt,omitempty"`
}

// Config holds the game tunables persisted with the document.
type Config struct {
	QuestCooldown          int     `json:"questCooldown" yaml:"questCooldown"`
	PointsPerCreate        int     `json:"pointsPerCreate" yaml:"pointsPerCreate"`
	PointsPerComplete      int     `json:"pointsPerComplete" yaml:"pointsPerComplete"`
	PointsPerModify        int     `json:"pointsPerModify" yaml:"pointsPerModify"`
	HighPriorityMultiplier float64 `json:"highPriorityMultiplier" yaml:"highPriorityMultiplier"`
	LongTaskMultiplier     float64 `json:"longTaskMultiplier" yaml:"longTaskMultiplier"`
	LongTaskThreshold      int     `json:"longTaskThreshold" yaml:"longTaskThreshold"`
	LevelThresholds        []int   `json:"levelThresholds" yaml:"levelThresholds"`
	SkillPointsRequired    int     `json:"skillPointsRequired" yaml:"skillPointsRequired"`
}

// Document is everything that gets persisted, written as one file.
type Document struct {
	Tasks        []Task  `json:"tasks" yaml:"tasks"`
	Profile      Profile `json:"profile" yaml:"profile"`
	Quests       []Quest `json:"quests" yaml:"quests"`
	ActiveQuests []Quest `json:"activeQuests" yaml:"activeQuests"`
	Config       Config  `json:"config" yaml:"config"`
	NextTaskID   int64   `json:"nextTaskId" yaml:"nextTaskId"`
	NextQuestID  int64   `json:"nextQuestId" yaml:"nextQuestId"`
}

type Export struct {
	ExportDate time.Time `json:"exportDate" yaml:"exportDate"`
	Data       *Document `json:"data" yaml:"data"`
}
