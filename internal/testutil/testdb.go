package testutil

import (
	"database/sql"
	"testing"

	"github.com/alexanderramin/estimate/internal/db"
	"github.com/alexanderramin/estimate/internal/kv"
)

// NewTestDB creates an in-memory SQLite database with all migrations applied.
// The database is closed when the test completes.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := db.OpenSQLite(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		database.Close()
	})
	return database
}

// NewTestStore returns a kv.Store backed by a fresh in-memory SQLite database.
func NewTestStore(t *testing.T) kv.Store {
	t.Helper()
	return kv.NewSQLStore(NewTestDB(t), kv.DialectSQLite)
}
