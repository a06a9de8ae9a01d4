package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// migrations is the ordered list of schema statements. Statements must stay
// idempotent because the migration system re-runs all of them.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS colleagues (
		id         TEXT PRIMARY KEY,
		name       TEXT NOT NULL,
		position   TEXT NOT NULL DEFAULT '',
		department TEXT NOT NULL DEFAULT '',
		team       TEXT NOT NULL DEFAULT '',
		initials   TEXT NOT NULL DEFAULT ''
	)`,

	`CREATE TABLE IF NOT EXISTS projects (
		id         TEXT PRIMARY KEY,
		title      TEXT NOT NULL,
		client     TEXT NOT NULL DEFAULT '',
		status     TEXT NOT NULL DEFAULT 'active'
		           CHECK(status IN ('active','paused','closed')),
		created_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS tasks (
		id           TEXT PRIMARY KEY,
		title        TEXT NOT NULL,
		description  TEXT NOT NULL DEFAULT '',
		status       TEXT NOT NULL DEFAULT 'todo'
		             CHECK(status IN ('todo','doing','done')),
		priority     TEXT NOT NULL DEFAULT '3',
		due_at       TEXT,
		completed_at TEXT,
		creator_id   TEXT NOT NULL,
		assignee_ids TEXT NOT NULL DEFAULT '[]',
		project_id   TEXT REFERENCES projects(id) ON DELETE SET NULL,
		steps        TEXT NOT NULL DEFAULT '[]',
		deliverables TEXT NOT NULL DEFAULT '[]',
		files        TEXT NOT NULL DEFAULT '[]',
		created_at   TEXT NOT NULL,
		updated_at   TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_tasks_project ON tasks(project_id)`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_due ON tasks(due_at)`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_status ON tasks(status)`,
}

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}
