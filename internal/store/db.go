package store

import (
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

type DB struct {
	*sqlx.DB
}

func NewSQLiteDB(dsn string) (*DB, error) {
	// The pragmas ride in the DSN so the driver applies them to every
	// pooled connection. Running them with Exec would configure only the
	// one connection that happened to execute the statement; the rest of
	// the pool would keep busy_timeout 0 and surface SQLITE_BUSY under
	// write contention instead of waiting.
	db, err := sqlx.Open("sqlite",
		dsn+"?_pragma=busy_timeout(30000)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("failed to open db: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping db: %w", err)
	}

	// Apply schema
	if _, err := db.Exec(Schema); err != nil {
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return &DB{db}, nil
}

func (db *DB) Close() error {
	return db.DB.Close()
}

// IsUniqueViolation reports whether err is a SQLite unique-constraint
// failure. Racing writers surface these on releases(platform, game_id) and
// external_ids(source, external_id); callers treat them as expected outcomes,
// not errors.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "constraint failed (1555)") ||
		strings.Contains(msg, "constraint failed (2067)")
}
