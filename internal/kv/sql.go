package kv

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// Dialect selects the SQL placeholder style.
type Dialect string

const (
	DialectSQLite   Dialect = "sqlite"
	DialectPostgres Dialect = "postgres"
)

// bindName maps a dialect to the driver name sqlx uses to choose bind vars.
func (d Dialect) bindName() string {
	if d == DialectPostgres {
		return "postgres"
	}
	return "sqlite3"
}

// SQLStore implements Store on the kv_records table created by db.Migrate.
type SQLStore struct {
	db  *sqlx.DB
	now func() time.Time
}

// NewSQLStore wraps an open, migrated database.
func NewSQLStore(db *sql.DB, dialect Dialect) *SQLStore {
	return &SQLStore{
		db:  sqlx.NewDb(db, dialect.bindName()),
		now: time.Now,
	}
}

func (s *SQLStore) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	query := s.db.Rebind(`SELECT record_value FROM kv_records WHERE record_key = ?`)
	if err := s.db.GetContext(ctx, &value, query, key); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("reading %q: %w", key, err)
	}
	return value, true, nil
}

func (s *SQLStore) Set(ctx context.Context, key, value string) error {
	query := s.db.Rebind(`INSERT INTO kv_records (record_key, record_value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT (record_key) DO UPDATE SET record_value = excluded.record_value, updated_at = excluded.updated_at`)
	_, err := s.db.ExecContext(ctx, query, key, value, s.now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("writing %q: %w", key, err)
	}
	return nil
}

// Close closes the underlying database.
func (s *SQLStore) Close() error {
	return s.db.Close()
}
