package tui

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"taskquest/internal/engine"
	"taskquest/internal/storage"
)

func newTestModel(t *testing.T) boardModel {
	t.Helper()
	ctx := context.Background()
	now := time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)
	path := filepath.Join(t.TempDir(), "data.json")
	svc, err := engine.Open(ctx, storage.NewStore(path, nil), engine.WithClock(func() time.Time { return now }), engine.WithLocation(time.UTC))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	return newBoardModel(ctx, svc)
}

func load(t *testing.T, m boardModel) boardModel {
	t.Helper()
	msg := m.loadCmd()()
	next, _ := m.Update(msg)
	return next.(boardModel)
}

func TestBoardLoadsSampleData(t *testing.T) {
	m := load(t, newTestModel(t))
	if m.err != nil {
		t.Fatalf("load: %v", m.err)
	}
	if len(m.tasks) != 2 || len(m.quests) != 1 {
		t.Fatalf("tasks=%d quests=%d", len(m.tasks), len(m.quests))
	}
	view := m.View()
	for _, want := range []string{"TaskQuest | Level 1", "First step", "Discover TaskQuest"} {
		if !strings.Contains(view, want) {
			t.Fatalf("view missing %q:\n%s", want, view)
		}
	}
}

func TestBoardToggleSelected(t *testing.T) {
	m := load(t, newTestModel(t))

	// Sample tasks share a timestamp, so the newest id is listed first.
	if m.current().ID != 2 {
		t.Fatalf("first row=%d, want 2", m.current().ID)
	}
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("c")})
	m = next.(boardModel)
	if cmd == nil {
		t.Fatalf("expected toggle command")
	}
	msg, ok := cmd().(toggledMsg)
	if !ok || msg.err != nil {
		t.Fatalf("toggle msg=%+v", msg)
	}
	if !msg.res.Completed || msg.res.PointsAwarded != 40 {
		t.Fatalf("toggle result=%+v", msg.res)
	}

	next, _ = m.Update(msg)
	m = next.(boardModel)
	if !strings.HasPrefix(m.lastLog, "Completed 2: +40 pts") {
		t.Fatalf("lastLog=%q", m.lastLog)
	}
}

func TestBoardSelectionBounds(t *testing.T) {
	m := load(t, newTestModel(t))
	for i := 0; i < 5; i++ {
		next, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
		m = next.(boardModel)
	}
	if m.selected != 1 {
		t.Fatalf("selected=%d, want 1", m.selected)
	}
	for i := 0; i < 5; i++ {
		next, _ := m.Update(tea.KeyMsg{Type: tea.KeyUp})
		m = next.(boardModel)
	}
	if m.selected != 0 {
		t.Fatalf("selected=%d, want 0", m.selected)
	}
}
