package store

import (
	"database/sql"
	"time"
)

// The cache table backs the metadata and retro provider decorators. Rows
// are reaped lazily: an expired entry is deleted the first time a read
// lands on it.

// GetCache returns the payload stored under key, or nil when the key is
// absent or its entry has expired.
func (db *DB) GetCache(key string) ([]byte, error) {
	var row struct {
		Data      []byte       `db:"data"`
		ExpiresAt sql.NullTime `db:"expires_at"`
	}

	err := db.Get(&row, `SELECT data, expires_at FROM cache WHERE key = ?`, key)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if row.ExpiresAt.Valid && !time.Now().Before(row.ExpiresAt.Time) {
		_, _ = db.Exec(`DELETE FROM cache WHERE key = ?`, key)
		return nil, nil
	}
	return row.Data, nil
}

// SetCache stores a payload under key, replacing any previous entry. A zero
// ttl stores the entry without expiry; any other ttl is added to the current
// time, so a negative ttl yields an entry that is already expired.
func (db *DB) SetCache(key string, data []byte, ttl time.Duration) error {
	var expiresAt *time.Time
	if ttl != 0 {
		t := time.Now().Add(ttl)
		expiresAt = &t
	}

	_, err := db.Exec(`INSERT INTO cache (key, data, expires_at) VALUES (?, ?, ?)
		ON CONFLICT (key) DO UPDATE SET data = excluded.data, expires_at = excluded.expires_at`,
		key, data, expiresAt)
	return err
}

// ClearCache drops every cache entry, expired or not.
func (db *DB) ClearCache() error {
	_, err := db.Exec(`DELETE FROM cache`)
	return err
}
