package tui

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"taskquest/internal/engine"
	"taskquest/internal/storage"
	"taskquest/internal/ui"
)

type boardModel struct {
	ctx context.Context
	svc *engine.Service

	width  int
	height int

	profile  *storage.Profile
	level    engine.LevelProgress
	tasks    []storage.Task
	quests   []storage.Quest
	badges   []engine.Badge
	selected int

	lastLog string
	loading bool
	err     error
}

type snapshot struct {
	profile storage.Profile
	level   engine.LevelProgress
	tasks   []storage.Task
	quests  []storage.Quest
	badges  []engine.Badge
}

type loadedMsg struct {
	snap *snapshot
	err  error
}

type toggledMsg struct {
	res *engine.ToggleResult
	err error
}

type deletedMsg struct {
	id  int64
	res *engine.DeleteResult
	err error
}

func newBoardModel(ctx context.Context, svc *engine.Service) boardModel {
	return boardModel{
		ctx:     ctx,
		svc:     svc,
		loading: true,
		lastLog: "Loaded.",
	}
}

func (m boardModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m boardModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		var snap snapshot
		var err error
		if snap.profile, err = m.svc.Profile(m.ctx); err != nil {
			return loadedMsg{err: err}
		}
		if snap.level, err = m.svc.LevelProgress(m.ctx); err != nil {
			return loadedMsg{err: err}
		}
		if snap.tasks, err = m.svc.ListTasks(m.ctx); err != nil {
			return loadedMsg{err: err}
		}
		if snap.quests, err = m.svc.ActiveQuests(m.ctx); err != nil {
			return loadedMsg{err: err}
		}
		if snap.badges, err = m.svc.Badges(m.ctx); err != nil {
			return loadedMsg{err: err}
		}
		return loadedMsg{snap: &snap}
	}
}

func (m boardModel) toggleCmd(id int64) tea.Cmd {
	return func() tea.Msg {
		res, err := m.svc.ToggleTaskComplete(m.ctx, id)
		return toggledMsg{res: res, err: err}
	}
}

func (m boardModel) deleteCmd(id int64) tea.Cmd {
	return func() tea.Msg {
		res, err := m.svc.DeleteTask(m.ctx, id)
		return deletedMsg{id: id, res: res, err: err}
	}
}

func (m boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case loadedMsg:
		m.loading = false
		m.err = msg.err
		if msg.err != nil {
			m.lastLog = "Load failed: " + msg.err.Error()
			return m, nil
		}
		m.profile = &msg.snap.profile
		m.level = msg.snap.level
		m.tasks = msg.snap.tasks
		m.quests = msg.snap.quests
		m.badges = msg.snap.badges
		m.clampSelection()
		m.lastLog = fmt.Sprintf("Refreshed at %s.", time.Now().Format("15:04:05"))
		return m, nil
	case toggledMsg:
		if msg.err != nil {
			m.lastLog = "Toggle failed: " + msg.err.Error()
			return m, nil
		}
		m.lastLog = describeToggle(msg.res)
		return m, m.loadCmd()
	case deletedMsg:
		if msg.err != nil {
			m.lastLog = "Delete failed: " + msg.err.Error()
			return m, nil
		}
		if msg.res.Deleted {
			m.lastLog = fmt.Sprintf("Deleted %d.", msg.id)
		} else {
			m.lastLog = fmt.Sprintf("Task %d was already gone.", msg.id)
		}
		return m, m.loadCmd()
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "r":
			m.loading = true
			m.lastLog = "Refreshing…"
			return m, m.loadCmd()
		case "up", "k":
			if m.selected > 0 {
				m.selected--
			}
			return m, nil
		case "down", "j":
			if m.selected < len(m.tasks)-1 {
				m.selected++
			}
			return m, nil
		case "c", " ", "enter":
			t := m.current()
			if t == nil {
				return m, nil
			}
			m.lastLog = fmt.Sprintf("Toggling %d…", t.ID)
			return m, m.toggleCmd(t.ID)
		case "x", "delete":
			t := m.current()
			if t == nil {
				return m, nil
			}
			m.lastLog = fmt.Sprintf("Deleting %d…", t.ID)
			return m, m.deleteCmd(t.ID)
		}
	}
	return m, nil
}

func (m *boardModel) clampSelection() {
	if m.selected >= len(m.tasks) {
		m.selected = len(m.tasks) - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
}

func (m boardModel) current() *storage.Task {
	if m.selected < 0 || m.selected >= len(m.tasks) {
		return nil
	}
	return &m.tasks[m.selected]
}

func describeToggle(res *engine.ToggleResult) string {
	if !res.Completed {
		return fmt.Sprintf("Reopened %d (points kept).", res.ID)
	}
	parts := []string{fmt.Sprintf("Completed %d: +%d pts", res.ID, res.PointsAwarded)}
	if res.LevelUp {
		parts = append(parts, fmt.Sprintf("level %d → %d", res.LevelBefore, res.LevelAfter))
	}
	for _, b := range res.BadgesEarned {
		parts = append(parts, "badge "+b)
	}
	if n := len(res.QuestsCompleted); n > 0 {
		parts = append(parts, fmt.Sprintf("%d quest(s) done", n))
	}
	return strings.Join(parts, ", ")
}

func (m boardModel) View() string {
	if m.err != nil {
		return ui.Panel.Render(ui.Bad.Render(ui.IconError+" "+m.err.Error())+"\n\nPress q to quit.") + "\n"
	}

	header := m.renderHeader()
	sidebar := m.renderSidebar()
	main := m.renderMain()
	footer := m.renderFooter()

	leftW := 30
	if m.width > 0 {
		leftW = min(leftW, m.width/2)
		leftW = max(leftW, 18)
	}

	linesLeft := strings.Split(sidebar, "\n")
	linesRight := strings.Split(main, "\n")
	rows := max(len(linesLeft), len(linesRight))

	var body strings.Builder
	for i := 0; i < rows; i++ {
		l, r := "", ""
		if i < len(linesLeft) {
			l = linesLeft[i]
		}
		if i < len(linesRight) {
			r = linesRight[i]
		}
		body.WriteString(padRight(l, leftW))
		body.WriteString("  ")
		body.WriteString(r)
		body.WriteString("\n")
	}

	return header + "\n" + body.String() + footer
}

func (m boardModel) renderHeader() string {
	if m.profile == nil {
		return "TaskQuest — loading…"
	}
	lp := m.level
	bar := ui.Bar(lp.ProgressToNext, lp.NextThreshold-lp.CurrentThreshold, 30)
	return ui.Title.Render(fmt.Sprintf("TaskQuest | Level %d", lp.Level)) +
		fmt.Sprintf(" | %d pts %s %d%%", lp.CurrentPoints, bar, lp.ProgressPercent)
}

func (m boardModel) renderSidebar() string {
	if m.profile == nil {
		return ui.PanelTitle.Render("Profile") + "\n\nLoading…"
	}
	p := m.profile
	lines := []string{ui.PanelTitle.Render("Profile")}
	lines = append(lines, fmt.Sprintf("- streak: %d day(s)", p.Streak))
	lines = append(lines, fmt.Sprintf("- done: %d / created: %d", p.Stats.TasksCompleted, p.Stats.TasksCreated))
	lines = append(lines, "")

	lines = append(lines, ui.PanelTitle.Render("Skills"))
	names := make([]string, 0, len(p.Skills))
	for name := range p.Skills {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		lines = append(lines, renderSkill(name, p.Skills[name]))
	}
	lines = append(lines, "")

	lines = append(lines, ui.PanelTitle.Render("Badges"))
	earned := 0
	for _, b := range m.badges {
		if b.Earned {
			lines = append(lines, "- "+b.Icon+" "+b.Name)
			earned++
		}
	}
	if earned == 0 {
		lines = append(lines, ui.Muted.Render("(none yet)"))
	}
	lines = append(lines, "")

	lines = append(lines, ui.PanelTitle.Render("Keys"))
	lines = append(lines, "- ↑/↓ or j/k: move")
	lines = append(lines, "- c/space: toggle done")
	lines = append(lines, "- x: delete")
	lines = append(lines, "- r: refresh")
	lines = append(lines, "- q: quit")
	return strings.Join(lines, "\n")
}

func (m boardModel) renderMain() string {
	if m.loading {
		return "Loading…"
	}
	var out []string
	out = append(out, ui.PanelTitle.Render(ui.IconQuest+" Active Quests"))
	if len(m.quests) == 0 {
		out = append(out, ui.Muted.Render("(none)"))
	}
	for _, q := range m.quests {
		out = append(out, fmt.Sprintf("- %s %s %d/%d (+%d)", q.Title, ui.Bar(q.Progress, q.Target, 10), q.Progress, q.Target, q.Reward))
	}
	out = append(out, "")
	out = append(out, ui.PanelTitle.Render("Tasks"))

	if len(m.tasks) == 0 {
		out = append(out, ui.Muted.Render("(empty)"))
		return strings.Join(out, "\n")
	}
	for i, t := range m.tasks {
		mark := "[ ]"
		if t.Completed {
			mark = "[x]"
		}
		row := fmt.Sprintf("%s %d %s (%s, %dm)", mark, t.ID, t.Title, t.Priority, t.EstimatedTime)
		if i == m.selected {
			out = append(out, "> "+ui.SelectedRow.Render(row))
			continue
		}
		out = append(out, "  "+row)
	}
	return strings.Join(out, "\n")
}

func (m boardModel) renderFooter() string {
	return "\n" + ui.Muted.Render(ui.IconInfo+" "+m.lastLog)
}

func renderSkill(name string, s storage.Skill) string {
	return fmt.Sprintf("- %s L%d %d pts", name, s.Level, s.Points)
}

// padRight pads s to width display cells. Plain text wider than width is
// cut; styled text is left as is.
func padRight(s string, width int) string {
	if width <= 0 {
		return s
	}
	w := lipgloss.Width(s)
	if w >= width {
		if r := []rune(s); len(r) == w {
			return string(r[:width])
		}
		return s
	}
	return s + strings.Repeat(" ", width-w)
}
