package root

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskquest/internal/storage"
)

func newCLI(t *testing.T) func(args ...string) (string, error) {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	data := filepath.Join(home, "data.json")

	return func(args ...string) (string, error) {
		cmd := newRootCmd()
		var out bytes.Buffer
		cmd.SetOut(&out)
		cmd.SetErr(&out)
		cmd.SetArgs(append([]string{"--data", data, "--log-level", "error"}, args...))
		err := cmd.Execute()
		return out.String(), err
	}
}

func mustRun(t *testing.T, run func(...string) (string, error), args ...string) string {
	t.Helper()
	out, err := run(args...)
	require.NoError(t, err, "tq %s", strings.Join(args, " "))
	return out
}

func TestAddDoAndList(t *testing.T) {
	run := newCLI(t)

	out := mustRun(t, run, "add", "Write", "docs", "-p", "high", "-t", "120")
	assert.Contains(t, out, "#3 Write docs")
	assert.Contains(t, out, "+60 pts")
	assert.Contains(t, out, "Quest complete: #1")

	out = mustRun(t, run, "do", "3")
	assert.Contains(t, out, "Completed")
	assert.Contains(t, out, "+60 pts")

	out = mustRun(t, run, "list", "--done")
	assert.Contains(t, out, "Write docs")
	assert.NotContains(t, out, "Create my first real task")

	out = mustRun(t, run, "stats")
	assert.Contains(t, out, "Total: 3")

	out = mustRun(t, run, "do", "3")
	assert.Contains(t, out, "Reopened")

	out = mustRun(t, run, "rm", "3")
	assert.Contains(t, out, "Deleted")
	out = mustRun(t, run, "rm", "3")
	assert.Contains(t, out, "No task #3")
}

func TestEditAndValidationErrors(t *testing.T) {
	run := newCLI(t)

	out := mustRun(t, run, "edit", "2", "--title", "Renamed", "-t", "45")
	assert.Contains(t, out, "#2 Renamed")
	assert.Contains(t, out, "(45m)")
	assert.Contains(t, out, "+5 pts")

	_, err := run("edit", "99", "--title", "x")
	assert.ErrorContains(t, err, "task 99 not found")

	_, err = run("add", "x", "-t", "1000")
	assert.ErrorContains(t, err, "estimatedTime")

	_, err = run("do", "abc")
	assert.ErrorContains(t, err, "id must be an integer")
}

func TestQuestCommands(t *testing.T) {
	run := newCLI(t)

	out := mustRun(t, run, "quest", "new", "Marathon", "--target", "5", "--reward", "200")
	assert.Contains(t, out, "#4 Marathon")

	out = mustRun(t, run, "quest", "activate", "4")
	assert.Contains(t, out, "Activated")

	out = mustRun(t, run, "quest", "active")
	assert.Contains(t, out, "Marathon")

	out = mustRun(t, run, "quest", "deactivate", "4")
	assert.Contains(t, out, "Deactivated")

	_, err := run("quest", "activate", "77")
	assert.ErrorContains(t, err, "quest 77 not found")
}

func TestConfigAndAdmin(t *testing.T) {
	run := newCLI(t)

	out := mustRun(t, run, "config", "set", "pointsPerCreate", "15")
	assert.Contains(t, out, "pointsPerCreate: 15")

	_, err := run("config", "set", "bogus", "1")
	assert.ErrorContains(t, err, "unknown config key")

	out = mustRun(t, run, "config", "reset")
	assert.Contains(t, out, "pointsPerCreate: 10")

	out = mustRun(t, run, "admin", "add-points", "100")
	assert.Contains(t, out, "LEVEL UP")
	assert.Contains(t, out, "Total: 120")

	out = mustRun(t, run, "admin", "add-badge", "tester")
	assert.Contains(t, out, "Granted tester")

	out = mustRun(t, run, "status")
	assert.Contains(t, out, "Level: 2")
	assert.Contains(t, out, "tester")

	_, err = run("admin", "reset-profile")
	assert.Error(t, err)
	mustRun(t, run, "admin", "reset-profile", "--yes")
	out = mustRun(t, run, "status")
	assert.Contains(t, out, "Level: 1")

	out = mustRun(t, run, "config", "init")
	assert.Contains(t, out, "config.yaml")
}

func TestExportFormats(t *testing.T) {
	run := newCLI(t)

	out := mustRun(t, run, "export")
	var exp storage.Export
	require.NoError(t, json.Unmarshal([]byte(out), &exp))
	require.NotNil(t, exp.Data)
	assert.Len(t, exp.Data.Tasks, 2)

	out = mustRun(t, run, "export", "--format", "yaml")
	assert.Contains(t, out, "exportDate:")
	assert.Contains(t, out, "Discover TaskQuest")

	_, err := run("export", "--format", "sqlite")
	assert.Error(t, err)

	archive := filepath.Join(t.TempDir(), "archive.db")
	mustRun(t, run, "export", "--format", "sqlite", "-o", archive)
	mustRun(t, run, "export", "--format", "sqlite", "-o", archive)
	out = mustRun(t, run, "archive", "ls", archive)
	assert.Equal(t, 2, strings.Count(out, "2 tasks, 3 quests"))

	out = mustRun(t, run, "path")
	assert.Contains(t, out, "data.json")
}
