package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/google/uuid"
)

// ArchiveEntry is one export recorded in a SQLite archive.
type ArchiveEntry struct {
	ExportID   string
	ExportedAt time.Time
	TaskCount  int
	QuestCount int
}

// WriteArchive appends exp to the SQLite archive at path and returns the id
// assigned to this export. Every table row written is keyed by that id, so
// one archive file can hold any number of snapshots.
func WriteArchive(ctx context.Context, path string, exp *Export) (string, error) {
	if exp == nil || exp.Data == nil {
		return "", errors.New("write archive: empty export")
	}
	raw, err := Encode(exp.Data)
	if err != nil {
		return "", err
	}

	db, err := OpenArchive(ctx, path)
	if err != nil {
		return "", &StorageError{Op: "open archive", Path: path, Err: err}
	}
	defer db.Close()

	id := uuid.NewString()
	doc := exp.Data
	err = withTx(ctx, db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO exports (export_id, exported_at, task_count, quest_count, next_task_id, next_quest_id, document)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, id, formatTime(exp.ExportDate), len(doc.Tasks), len(doc.Quests), doc.NextTaskID, doc.NextQuestID, string(raw)); err != nil {
			return fmt.Errorf("export insert: %w", err)
		}
		if err := insertArchivedTasks(ctx, tx, id, doc.Tasks); err != nil {
			return err
		}
		if err := insertArchivedProfile(ctx, tx, id, doc.Profile); err != nil {
			return err
		}
		if err := insertArchivedQuests(ctx, tx, id, doc.Quests, doc.ActiveQuests); err != nil {
			return err
		}
		return insertArchivedConfig(ctx, tx, id, doc.Config)
	})
	if err != nil {
		return "", &StorageError{Op: "write archive", Path: path, Err: err}
	}
	return id, nil
}

// ListArchive returns the exports recorded in the archive at path, oldest first.
func ListArchive(ctx context.Context, path string) ([]ArchiveEntry, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, &StorageError{Op: "stat archive", Path: path, Err: err}
	}
	db, err := OpenArchive(ctx, path)
	if err != nil {
		return nil, &StorageError{Op: "open archive", Path: path, Err: err}
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, `
		SELECT export_id, exported_at, task_count, quest_count
		FROM exports
		ORDER BY exported_at ASC, export_id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("export list: %w", err)
	}
	defer rows.Close()

	var out []ArchiveEntry
	for rows.Next() {
		var (
			e  ArchiveEntry
			at string
		)
		if err := rows.Scan(&e.ExportID, &at, &e.TaskCount, &e.QuestCount); err != nil {
			return nil, fmt.Errorf("export scan: %w", err)
		}
		e.ExportedAt, err = time.Parse(archiveTimeLayout, at)
		if err != nil {
			return nil, fmt.Errorf("export time: %w", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("export rows: %w", err)
	}
	return out, nil
}

func insertArchivedTasks(ctx context.Context, tx *sql.Tx, exportID string, tasks []Task) error {
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO tasks (
			export_id, id, title, description, priority, estimated_time,
			completed, completed_at, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("task prepare: %w", err)
	}
	defer stmt.Close()

	for _, t := range tasks {
		var completedAt *string
		if t.CompletedAt != nil {
			s := formatTime(*t.CompletedAt)
			completedAt = &s
		}
		if _, err := stmt.ExecContext(ctx,
			exportID, t.ID, t.Title, t.Description, string(t.Priority), t.EstimatedTime,
			boolToInt(t.Completed), completedAt, formatTime(t.CreatedAt), formatTime(t.UpdatedAt),
		); err != nil {
			return fmt.Errorf("task insert %d: %w", t.ID, err)
		}
	}
	return nil
}

func insertArchivedProfile(ctx context.Context, tx *sql.Tx, exportID string, p Profile) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO profile (
			export_id, total_points, level, current_level_points, streak, last_active_date,
			tasks_created, tasks_completed, tasks_modified, total_time_spent,
			early_bird_tasks, night_owl_tasks
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, exportID, p.TotalPoints, p.Level, p.CurrentLevelPoints, p.Streak, p.LastActiveDate,
		p.Stats.TasksCreated, p.Stats.TasksCompleted, p.Stats.TasksModified, p.Stats.TotalTimeSpent,
		p.Stats.EarlyBirdTasks, p.Stats.NightOwlTasks)
	if err != nil {
		return fmt.Errorf("profile insert: %w", err)
	}

	for _, b := range p.Badges {
		if _, err := tx.ExecContext(ctx, `INSERT OR IGNORE INTO badges (export_id, badge) VALUES (?, ?)`, exportID, b); err != nil {
			return fmt.Errorf("badge insert: %w", err)
		}
	}

	names := make([]string, 0, len(p.Skills))
	for name := range p.Skills {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		s := p.Skills[name]
		if _, err := tx.ExecContext(ctx, `INSERT INTO skills (export_id, name, level, points) VALUES (?, ?, ?, ?)`, exportID, name, s.Level, s.Points); err != nil {
			return fmt.Errorf("skill insert: %w", err)
		}
	}
	return nil
}

func insertArchivedQuests(ctx context.Context, tx *sql.Tx, exportID string, catalog, active []Quest) error {
	inActive := make(map[int64]bool, len(active))
	for _, q := range active {
		inActive[q.ID] = true
	}
	for _, q := range catalog {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO quests (
				export_id, id, title, description, type, target, reward,
				is_active, in_active_set, progress, cooldown_hours
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, exportID, q.ID, q.Title, q.Description, q.Type, q.Target, q.Reward,
			boolToInt(q.IsActive), boolToInt(inActive[q.ID]), q.Progress, q.CooldownHours); err != nil {
			return fmt.Errorf("quest insert %d: %w", q.ID, err)
		}
	}
	return nil
}

func insertArchivedConfig(ctx context.Context, tx *sql.Tx, exportID string, c Config) error {
	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return fmt.Errorf("split config: %w", err)
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if _, err := tx.ExecContext(ctx, `INSERT INTO config (export_id, key, value) VALUES (?, ?, ?)`, exportID, k, string(fields[k])); err != nil {
			return fmt.Errorf("config insert %s: %w", k, err)
		}
	}
	return nil
}

// archiveTimeLayout is fixed width so that text order is time order.
const archiveTimeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func formatTime(t time.Time) string {
	return t.UTC().Format(archiveTimeLayout)
}

func boolToInt(v bool) int {
	if v {
		return 1
	}
	return 0
}
