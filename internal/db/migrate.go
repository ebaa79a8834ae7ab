package db

import (
	"database/sql"
	"fmt"
)

// Migrate runs all schema migrations. Statements are idempotent and use
// only DDL shared by SQLite and Postgres.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS kv_records (
		record_key   TEXT PRIMARY KEY,
		record_value TEXT NOT NULL,
		updated_at   TEXT NOT NULL
	)`,
}
