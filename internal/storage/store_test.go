package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), "data", DataFileName), nil)
}

func TestLoadMissingFile(t *testing.T) {
	s := newTestStore(t)

	doc, status, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, LoadCreated, status)
	assert.Empty(t, doc.Tasks)
	assert.Equal(t, 1, doc.Profile.Level)
	assert.Equal(t, int64(1), doc.NextTaskID)
	assert.Equal(t, DefaultConfig(), doc.Config)
}

func TestLoadCorruptFallsBack(t *testing.T) {
	cases := map[string]string{
		"garbage":        "{not json",
		"tasks missing":  `{"profile": {"totalPoints": 10}}`,
		"tasks object":   `{"tasks": {"1": {}}}`,
		"tasks null":     `{"tasks": null}`,
		"truncated":      `{"tasks": [{"id": 1, "title": "half`,
		"task mistyped":  `{"tasks": [{"id": "one", "title": "a"}]}`,
		"top-level list": `[]`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			s := newTestStore(t)
			require.NoError(t, os.MkdirAll(filepath.Dir(s.Path()), 0o755))
			require.NoError(t, os.WriteFile(s.Path(), []byte(body), 0o644))

			doc, status, err := s.Load(context.Background())
			require.NoError(t, err)
			assert.Equal(t, LoadRecovered, status)
			assert.Empty(t, doc.Tasks)
			assert.Equal(t, 0, doc.Profile.TotalPoints)
		})
	}
}

func TestDecodeDefaultsMissingFields(t *testing.T) {
	doc, err := Decode([]byte(`{"tasks": [], "profile": {"totalPoints": 40, "badges": null}, "config": {"pointsPerCreate": 7}}`))
	require.NoError(t, err)

	assert.Equal(t, 40, doc.Profile.TotalPoints)
	assert.Equal(t, 1, doc.Profile.Level)
	assert.NotNil(t, doc.Profile.Badges)
	assert.Contains(t, doc.Profile.Skills, SkillEfficiency)
	assert.Equal(t, 7, doc.Config.PointsPerCreate)
	assert.Equal(t, 20, doc.Config.PointsPerComplete)
	assert.Equal(t, DefaultConfig().LevelThresholds, doc.Config.LevelThresholds)
	assert.NotNil(t, doc.Quests)
	assert.NotNil(t, doc.ActiveQuests)
}

func TestLoadMistypedSectionKeepsTasks(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(s.Path()), 0o755))
	body := `{
		"tasks": [{"id": 7, "title": "keep me", "priority": "low", "estimatedTime": 30}],
		"profile": {"totalPoints": 500, "level": "3", "streak": 4},
		"config": {"pointsPerCreate": "lots", "pointsPerModify": 8},
		"quests": [{"id": 1, "title": "q", "target": "many"}],
		"nextTaskId": "three"
	}`
	require.NoError(t, os.WriteFile(s.Path(), []byte(body), 0o644))

	doc, status, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, LoadExisting, status)
	require.Len(t, doc.Tasks, 1)
	assert.Equal(t, "keep me", doc.Tasks[0].Title)

	assert.Equal(t, 500, doc.Profile.TotalPoints)
	assert.Equal(t, 4, doc.Profile.Streak)
	assert.Equal(t, 1, doc.Profile.Level)

	assert.Equal(t, 10, doc.Config.PointsPerCreate)
	assert.Equal(t, 8, doc.Config.PointsPerModify)

	assert.Empty(t, doc.Quests)
	assert.Equal(t, int64(8), doc.NextTaskID)
}

func TestDecodeKeepsCountersAheadOfIDs(t *testing.T) {
	doc, err := Decode([]byte(`{
		"tasks": [{"id": 4, "title": "a"}, {"id": 9, "title": "b"}],
		"quests": [{"id": 2, "title": "q", "type": "completion", "target": 1}],
		"activeQuests": [{"id": 5, "title": "q5", "type": "completion", "target": 1}],
		"nextTaskId": 3
	}`))
	require.NoError(t, err)
	assert.Equal(t, int64(10), doc.NextTaskID)
	assert.Equal(t, int64(6), doc.NextQuestID)
}

func TestDecodeAcceptsMillisecondTimestamps(t *testing.T) {
	doc, err := Decode([]byte(`{"tasks": [{"id": 1, "title": "a", "completed": true,
		"completedAt": "2024-03-01T07:15:00.000Z", "created_at": "2024-03-01T06:00:00.000Z",
		"updated_at": "2024-03-01T07:15:00.000Z"}]}`))
	require.NoError(t, err)
	require.Len(t, doc.Tasks, 1)
	require.NotNil(t, doc.Tasks[0].CompletedAt)
	assert.Equal(t, 7, doc.Tasks[0].CompletedAt.UTC().Hour())
}

func TestSaveLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	doc := NewDocument()
	Seed(doc, time.Date(2025, 5, 4, 10, 30, 0, 0, time.UTC))
	doc.Profile.Badges = append(doc.Profile.Badges, "early_bird")
	require.NoError(t, s.Save(ctx, doc))

	loaded, status, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, LoadExisting, status)

	want, err := Encode(doc)
	require.NoError(t, err)
	got, err := Encode(loaded)
	require.NoError(t, err)
	assert.Equal(t, string(want), string(got))

	require.NoError(t, s.Save(ctx, loaded))
	again, _, err := s.Load(ctx)
	require.NoError(t, err)
	gotAgain, err := Encode(again)
	require.NoError(t, err)
	assert.Equal(t, string(want), string(gotAgain))
}

func TestSaveReplacesWholeFile(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	doc := NewDocument()
	Seed(doc, time.Now())
	require.NoError(t, s.Save(ctx, doc))

	doc.Tasks = doc.Tasks[:1]
	require.NoError(t, s.Save(ctx, doc))

	_, err := os.Stat(s.Path() + ".tmp")
	assert.True(t, errors.Is(err, os.ErrNotExist))

	loaded, _, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, loaded.Tasks, 1)
}

func TestSaveFailureIsStorageError(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	s := NewStore(filepath.Join(blocker, DataFileName), nil)
	err := s.Save(context.Background(), NewDocument())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrStorage))

	var se *StorageError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, "mkdir", se.Op)
}

func TestCloneIsDeep(t *testing.T) {
	doc := NewDocument()
	Seed(doc, time.Now())
	cp := doc.Clone()

	cp.Tasks[0].Title = "changed"
	cp.Profile.Badges = append(cp.Profile.Badges, "night_owl")
	cp.Profile.Skills[SkillEfficiency] = Skill{Level: 3}
	cp.Config.LevelThresholds[1] = 1
	cp.ActiveQuests[0].Progress = 1

	assert.NotEqual(t, "changed", doc.Tasks[0].Title)
	assert.Empty(t, doc.Profile.Badges)
	assert.Equal(t, 0, doc.Profile.Skills[SkillEfficiency].Level)
	assert.Equal(t, 100, doc.Config.LevelThresholds[1])
	assert.Equal(t, 0, doc.ActiveQuests[0].Progress)
}
