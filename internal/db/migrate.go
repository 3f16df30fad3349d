package db

import (
	"database/sql"
	"fmt"
)

// migrations are idempotent and run in order on every open.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS hint_dismissals (
		hint_key     TEXT PRIMARY KEY,
		dismissed_at TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS creation_history (
		id          TEXT PRIMARY KEY,
		entity      TEXT NOT NULL CHECK(entity IN ('program','project','time entry')),
		remote_id   TEXT NOT NULL,
		name        TEXT NOT NULL,
		category    TEXT NOT NULL,
		path        TEXT NOT NULL,
		source      TEXT NOT NULL DEFAULT '',
		confidence  INTEGER,
		created_at  TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_creation_history_created_at
		ON creation_history(created_at DESC)`,
}

// Migrate applies all schema migrations.
func Migrate(conn *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := conn.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}
