package storage

import (
	"context"
	"database/sql"
	"fmt"
)

func migrateArchive(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS exports (
			export_id TEXT PRIMARY KEY,
			exported_at DATETIME NOT NULL,
			task_count INTEGER NOT NULL,
			quest_count INTEGER NOT NULL,
			next_task_id INTEGER NOT NULL,
			next_quest_id INTEGER NOT NULL,
			document TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS tasks (
			export_id TEXT NOT NULL,
			id INTEGER NOT NULL,
			title TEXT NOT NULL,
			description TEXT,
			priority TEXT NOT NULL,
			estimated_time INTEGER NOT NULL,
			completed INTEGER DEFAULT 0,
			completed_at DATETIME,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL,
			PRIMARY KEY (export_id, id),
			FOREIGN KEY(export_id) REFERENCES exports(export_id)
		);`,
		`CREATE TABLE IF NOT EXISTS profile (
			export_id TEXT PRIMARY KEY,
			total_points INTEGER NOT NULL,
			level INTEGER NOT NULL,
			current_level_points INTEGER NOT NULL,
			streak INTEGER NOT NULL,
			last_active_date TEXT,
			tasks_created INTEGER DEFAULT 0,
			tasks_completed INTEGER DEFAULT 0,
			tasks_modified INTEGER DEFAULT 0,
			total_time_spent INTEGER DEFAULT 0,
			early_bird_tasks INTEGER DEFAULT 0,
			night_owl_tasks INTEGER DEFAULT 0,
			FOREIGN KEY(export_id) REFERENCES exports(export_id)
		);`,
		`CREATE TABLE IF NOT EXISTS badges (
			export_id TEXT NOT NULL,
			badge TEXT NOT NULL,
			PRIMARY KEY (export_id, badge),
			FOREIGN KEY(export_id) REFERENCES exports(export_id)
		);`,
		`CREATE TABLE IF NOT EXISTS skills (
			export_id TEXT NOT NULL,
			name TEXT NOT NULL,
			level INTEGER NOT NULL,
			points INTEGER NOT NULL,
			PRIMARY KEY (export_id, name),
			FOREIGN KEY(export_id) REFERENCES exports(export_id)
		);`,
		`CREATE TABLE IF NOT EXISTS quests (
			export_id TEXT NOT NULL,
			id INTEGER NOT NULL,
			title TEXT NOT NULL,
			description TEXT,
			type TEXT NOT NULL,
			target INTEGER NOT NULL,
			reward INTEGER NOT NULL,
			is_active INTEGER DEFAULT 0,
			in_active_set INTEGER DEFAULT 0,
			progress INTEGER DEFAULT 0,
			cooldown_hours INTEGER,
			PRIMARY KEY (export_id, id),
			FOREIGN KEY(export_id) REFERENCES exports(export_id)
		);`,
		`CREATE TABLE IF NOT EXISTS config (
			export_id TEXT NOT NULL,
			key TEXT NOT NULL,
			value TEXT NOT NULL,
			PRIMARY KEY (export_id, key),
			FOREIGN KEY(export_id) REFERENCES exports(export_id)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_exports_exported_at ON exports(exported_at);`,
	}

	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate archive: %w", err)
		}
	}
	return nil
}
