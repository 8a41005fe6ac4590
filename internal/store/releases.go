package store

import (
	"database/sql"
	"time"

	"github.com/cesargomez89/gameshelf/internal/domain"
)

// CreateRelease inserts a release. A unique violation on (platform, game_id)
// propagates to the caller, which re-queries for the racing writer's row
// (check with IsUniqueViolation).
func (db *DB) CreateRelease(release *domain.Release) error {
	now := time.Now()
	release.CreatedAt = now
	release.UpdatedAt = now

	query := `INSERT INTO releases (
		id, game_id, platform, display_title, cover_url, platform_label, created_at, updated_at
	) VALUES (
		:id, :game_id, :platform, :display_title, :cover_url, :platform_label, :created_at, :updated_at
	)`

	_, err := db.NamedExec(query, release)
	return err
}

func (db *DB) GetReleaseByID(id string) (*domain.Release, error) {
	var release domain.Release
	err := db.Get(&release, `SELECT * FROM releases WHERE id = ?`, id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &release, nil
}

func (db *DB) GetReleaseByGameAndPlatform(gameID string, platform domain.Platform) (*domain.Release, error) {
	var release domain.Release
	err := db.Get(&release,
		`SELECT * FROM releases WHERE game_id = ? AND platform = ?`,
		gameID, platform)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &release, nil
}

func (db *DB) ReleasesByGame(gameID string) ([]domain.Release, error) {
	var releases []domain.Release
	err := db.Select(&releases,
		`SELECT * FROM releases WHERE game_id = ? ORDER BY platform ASC`, gameID)
	return releases, err
}

func (db *DB) UpdateReleaseCover(id, coverURL string) error {
	_, err := db.Exec(
		`UPDATE releases SET cover_url = ?, updated_at = ? WHERE id = ? AND cover_url = ''`,
		coverURL, time.Now(), id)
	return err
}

func (db *DB) DeleteRelease(id string) error {
	_, err := db.Exec(`DELETE FROM releases WHERE id = ?`, id)
	return err
}

func (db *DB) CountReleasesByGameAndPlatform(gameID string, platform domain.Platform) (int, error) {
	var count int
	err := db.Get(&count,
		`SELECT COUNT(*) FROM releases WHERE game_id = ? AND platform = ?`,
		gameID, platform)
	return count, err
}
