// Package sqlite opens the embedded database used in local mode, when no
// PostgreSQL server is configured.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// Open opens (creating if needed) the SQLite database at path and applies
// the schema.
func Open(ctx context.Context, path string) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	// SQLite handles one writer at a time.
	db.SetMaxOpenConns(1)

	if err := ensureSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

func ensureSchema(ctx context.Context, db *sql.DB) error {
	schema := []string{
		`CREATE TABLE IF NOT EXISTS time_blocks (
			id TEXT PRIMARY KEY,
			user_id TEXT,
			team_id TEXT,
			task_id TEXT,
			title TEXT NOT NULL,
			start_time TIMESTAMP NOT NULL,
			end_time TIMESTAMP NOT NULL,
			status TEXT NOT NULL,
			is_break INTEGER NOT NULL DEFAULT 0,
			source TEXT NOT NULL,
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_time_blocks_user_start ON time_blocks(user_id, start_time)`,
		`CREATE TABLE IF NOT EXISTS break_policies (
			id TEXT PRIMARY KEY,
			user_id TEXT,
			team_id TEXT,
			focus_minutes INTEGER NOT NULL,
			break_minutes INTEGER NOT NULL,
			long_break_minutes INTEGER NOT NULL,
			cycle_count INTEGER NOT NULL,
			active INTEGER NOT NULL DEFAULT 1,
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS availability_templates (
			id TEXT PRIMARY KEY,
			user_id TEXT,
			team_id TEXT,
			day_of_week INTEGER NOT NULL,
			start_time TEXT NOT NULL,
			end_time TEXT NOT NULL,
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS calendar_events (
			id TEXT PRIMARY KEY,
			user_id TEXT,
			team_id TEXT,
			title TEXT NOT NULL,
			start_time TIMESTAMP NOT NULL,
			end_time TIMESTAMP NOT NULL,
			is_busy INTEGER NOT NULL DEFAULT 1,
			source TEXT NOT NULL DEFAULT 'manual',
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS daily_reviews (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			review_date TIMESTAMP NOT NULL,
			tasks_planned INTEGER NOT NULL DEFAULT 0,
			tasks_completed INTEGER NOT NULL DEFAULT 0,
			completion_rate REAL NOT NULL DEFAULT 0,
			focus_minutes INTEGER NOT NULL DEFAULT 0,
			break_minutes INTEGER NOT NULL DEFAULT 0,
			productivity_score REAL NOT NULL DEFAULT 0,
			current_streak INTEGER NOT NULL DEFAULT 0,
			summary TEXT NOT NULL DEFAULT '',
			mood TEXT NOT NULL DEFAULT '',
			highlights TEXT NOT NULL DEFAULT '[]',
			lessons TEXT NOT NULL DEFAULT '[]',
			tomorrow_top TEXT NOT NULL DEFAULT '[]',
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL,
			UNIQUE(user_id, review_date)
		)`,
		`CREATE TABLE IF NOT EXISTS productivity_insights (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			insight_type TEXT NOT NULL,
			data TEXT NOT NULL DEFAULT '{}',
			confidence_score REAL NOT NULL DEFAULT 0,
			sample_size INTEGER NOT NULL DEFAULT 0,
			valid_from TIMESTAMP NOT NULL,
			valid_until TIMESTAMP NOT NULL,
			active INTEGER NOT NULL DEFAULT 1,
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL,
			UNIQUE(user_id, insight_type)
		)`,
		`CREATE TABLE IF NOT EXISTS tasks (
			id TEXT PRIMARY KEY,
			owner_id TEXT NOT NULL,
			title TEXT NOT NULL,
			priority TEXT NOT NULL DEFAULT 'medium',
			due_date TIMESTAMP,
			is_hard_due INTEGER NOT NULL DEFAULT 0,
			estimated_minutes INTEGER NOT NULL DEFAULT 0,
			estimated_hours REAL NOT NULL DEFAULT 0,
			is_completed INTEGER NOT NULL DEFAULT 0,
			completed_at TIMESTAMP,
			snoozed_until TIMESTAMP,
			backlog_date TIMESTAMP,
			start_at TIMESTAMP,
			work_goal_id TEXT,
			project_id TEXT,
			dependency_ids TEXT NOT NULL DEFAULT '[]',
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_tasks_owner ON tasks(owner_id, is_completed)`,
		`CREATE TABLE IF NOT EXISTS projects (
			id TEXT PRIMARY KEY,
			created_by TEXT NOT NULL,
			name TEXT NOT NULL,
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS work_goals (
			id TEXT PRIMARY KEY,
			user_id TEXT,
			team_id TEXT,
			name TEXT NOT NULL,
			project_id TEXT,
			tags TEXT NOT NULL DEFAULT '[]',
			progress_percentage REAL NOT NULL DEFAULT 0,
			total_tasks INTEGER NOT NULL DEFAULT 0,
			completed_tasks INTEGER NOT NULL DEFAULT 0,
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL
		)`,
	}

	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}
