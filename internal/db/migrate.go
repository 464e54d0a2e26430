package db

import (
	"database/sql"
	"fmt"
)

// migrations are applied in order; every statement must be idempotent.
// The local database only stores client preferences (persisted filter
// state, last-used view settings); work items themselves are never
// written to disk.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS prefs (
		key        TEXT PRIMARY KEY,
		value      TEXT NOT NULL,
		updated_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ','now'))
	)`,
}

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}
