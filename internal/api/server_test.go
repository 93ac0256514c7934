package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskquest/internal/engine"
	"taskquest/internal/storage"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *apiError       `json:"error"`
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	ctx := context.Background()

	path := filepath.Join(t.TempDir(), "data.json")
	store := storage.NewStore(path, nil)
	require.NoError(t, store.Save(ctx, storage.NewDocument()))

	now := time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)
	svc, err := engine.Open(ctx, store, engine.WithClock(func() time.Time { return now }), engine.WithLocation(time.UTC))
	require.NoError(t, err)

	ts := httptest.NewServer(NewServer(Options{}, svc, discardLogger()).Router())
	t.Cleanup(ts.Close)
	return ts
}

func discardLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func call(t *testing.T, ts *httptest.Server, method, path string, body any) (int, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, ts.URL+path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := ts.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return resp.StatusCode, env
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t)
	status, env := call(t, ts, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.True(t, env.Success)
}

func TestTaskLifecycle(t *testing.T) {
	ts := newTestServer(t)

	status, env := call(t, ts, http.MethodPost, "/api/v1/tasks", map[string]any{
		"title": "Write tests", "priority": "high", "estimatedTime": 120,
	})
	require.Equal(t, http.StatusCreated, status)
	require.True(t, env.Success)

	var created engine.CreateResult
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.Equal(t, "Write tests", created.Task.Title)
	assert.Equal(t, 10, created.PointsAwarded)

	status, env = call(t, ts, http.MethodPost, "/api/v1/tasks/1/toggle", nil)
	require.Equal(t, http.StatusOK, status)
	var toggled engine.ToggleResult
	require.NoError(t, json.Unmarshal(env.Data, &toggled))
	assert.True(t, toggled.Updated)
	assert.True(t, toggled.Completed)
	assert.Equal(t, 60, toggled.PointsAwarded)

	status, env = call(t, ts, http.MethodGet, "/api/v1/stats", nil)
	require.Equal(t, http.StatusOK, status)
	var st engine.Stats
	require.NoError(t, json.Unmarshal(env.Data, &st))
	assert.Equal(t, engine.Stats{Total: 1, Completed: 1}, st)

	status, env = call(t, ts, http.MethodGet, "/api/v1/profile", nil)
	require.Equal(t, http.StatusOK, status)
	var p storage.Profile
	require.NoError(t, json.Unmarshal(env.Data, &p))
	assert.Equal(t, 70, p.TotalPoints)

	status, env = call(t, ts, http.MethodDelete, "/api/v1/tasks/1", nil)
	require.Equal(t, http.StatusOK, status)
	var del engine.DeleteResult
	require.NoError(t, json.Unmarshal(env.Data, &del))
	assert.True(t, del.Deleted)
}

func TestErrorMapping(t *testing.T) {
	ts := newTestServer(t)

	status, env := call(t, ts, http.MethodPut, "/api/v1/tasks/99", map[string]any{"title": "x"})
	assert.Equal(t, http.StatusNotFound, status)
	require.NotNil(t, env.Error)
	assert.False(t, env.Success)
	assert.Equal(t, "not_found", env.Error.Code)

	status, env = call(t, ts, http.MethodPost, "/api/v1/tasks", map[string]any{"title": "   "})
	assert.Equal(t, http.StatusBadRequest, status)
	require.NotNil(t, env.Error)
	assert.Equal(t, "validation_error", env.Error.Code)

	status, env = call(t, ts, http.MethodPost, "/api/v1/quests/7/activate", nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "not_found", env.Error.Code)

	status, env = call(t, ts, http.MethodPost, "/api/v1/tasks/abc/toggle", nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "validation_error", env.Error.Code)

	status, env = call(t, ts, http.MethodPost, "/api/v1/admin/points", map[string]any{"amount": -1})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "validation_error", env.Error.Code)

	status, env = call(t, ts, http.MethodPost, "/api/v1/tasks", map[string]any{"title": "x", "bogus": true})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "invalid_request", env.Error.Code)
}

func TestQuestRoutes(t *testing.T) {
	ts := newTestServer(t)

	status, env := call(t, ts, http.MethodPost, "/api/v1/quests", map[string]any{
		"title": "Two tasks", "type": "create_tasks", "target": 2, "reward": 30,
	})
	require.Equal(t, http.StatusCreated, status)
	var q storage.Quest
	require.NoError(t, json.Unmarshal(env.Data, &q))
	assert.False(t, q.IsActive)

	status, _ = call(t, ts, http.MethodPost, "/api/v1/quests/1/activate", nil)
	require.Equal(t, http.StatusOK, status)

	_, env = call(t, ts, http.MethodGet, "/api/v1/quests/active", nil)
	var active []storage.Quest
	require.NoError(t, json.Unmarshal(env.Data, &active))
	require.Len(t, active, 1)

	_, env = call(t, ts, http.MethodPost, "/api/v1/quests/1/deactivate", nil)
	var out map[string]bool
	require.NoError(t, json.Unmarshal(env.Data, &out))
	assert.True(t, out["deactivated"])
}

func TestConfigAndAdminRoutes(t *testing.T) {
	ts := newTestServer(t)

	status, env := call(t, ts, http.MethodPut, "/api/v1/config", map[string]any{"pointsPerCreate": 25})
	require.Equal(t, http.StatusOK, status)
	var cfg storage.Config
	require.NoError(t, json.Unmarshal(env.Data, &cfg))
	assert.Equal(t, 25, cfg.PointsPerCreate)

	status, env = call(t, ts, http.MethodPut, "/api/v1/config", map[string]any{"skillPointsRequired": 0})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "validation_error", env.Error.Code)

	_, env = call(t, ts, http.MethodPost, "/api/v1/config/reset", nil)
	require.NoError(t, json.Unmarshal(env.Data, &cfg))
	assert.Equal(t, 10, cfg.PointsPerCreate)

	status, env = call(t, ts, http.MethodPost, "/api/v1/admin/points", map[string]any{"amount": 120})
	require.Equal(t, http.StatusOK, status)
	var res engine.ProfileResult
	require.NoError(t, json.Unmarshal(env.Data, &res))
	assert.True(t, res.LevelUp)
	assert.Equal(t, 2, res.Profile.Level)

	_, env = call(t, ts, http.MethodGet, "/api/v1/profile/level", nil)
	var lp engine.LevelProgress
	require.NoError(t, json.Unmarshal(env.Data, &lp))
	assert.Equal(t, 2, lp.Level)
	assert.Equal(t, 180, lp.PointsNeeded)
	assert.Equal(t, 20, lp.ProgressToNext)
	assert.Equal(t, 10, lp.ProgressPercent)

	status, _ = call(t, ts, http.MethodPost, "/api/v1/admin/badges", map[string]any{"badge": "beta"})
	require.Equal(t, http.StatusOK, status)
	_, env = call(t, ts, http.MethodGet, "/api/v1/profile/badges", nil)
	var badges []engine.Badge
	require.NoError(t, json.Unmarshal(env.Data, &badges))
	assert.Len(t, badges, 3)

	_, env = call(t, ts, http.MethodGet, "/api/v1/export", nil)
	var exp storage.Export
	require.NoError(t, json.Unmarshal(env.Data, &exp))
	require.NotNil(t, exp.Data)
	assert.Equal(t, 120, exp.Data.Profile.TotalPoints)
}
