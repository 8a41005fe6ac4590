package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/cesargomez89/gameshelf/internal/domain"
)

// SyncStateRepo stores small key/value state for sync runs, such as the
// last successful cursor per (user, source).
type SyncStateRepo struct {
	db *DB
}

func NewSyncStateRepo(db *DB) *SyncStateRepo {
	return &SyncStateRepo{db: db}
}

// CursorKey builds the sync-state key for a (user, source) pair.
func CursorKey(userID string, source domain.Source) string {
	return fmt.Sprintf("cursor:%s:%s", source, userID)
}

func (r *SyncStateRepo) Get(key string) (string, error) {
	var value string
	err := r.db.Get(&value, "SELECT value FROM sync_state WHERE key = ?", key)
	if err == sql.ErrNoRows {
		return "", nil
	}
	return value, err
}

func (r *SyncStateRepo) Set(key, value string) error {
	_, err := r.db.Exec(`
		INSERT INTO sync_state (key, value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, key, value, time.Now())
	return err
}

func (r *SyncStateRepo) Delete(key string) error {
	_, err := r.db.Exec("DELETE FROM sync_state WHERE key = ?", key)
	return err
}
