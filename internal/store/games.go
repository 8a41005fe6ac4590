package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/cesargomez89/gameshelf/internal/domain"
)

func (db *DB) CreateGame(game *domain.Game) error {
	now := time.Now()
	game.CreatedAt = now
	game.UpdatedAt = now

	query := `INSERT INTO games (
		id, title, comparison_key, summary, genres, developer, publisher,
		first_release_year, cover_url, created_at, updated_at
	) VALUES (
		:id, :title, :comparison_key, :summary, :genres, :developer, :publisher,
		:first_release_year, :cover_url, :created_at, :updated_at
	)`

	if _, err := db.NamedExec(query, game); err != nil {
		return fmt.Errorf("failed to create game: %w", err)
	}
	return nil
}

func (db *DB) GetGameByID(id string) (*domain.Game, error) {
	var game domain.Game
	err := db.Get(&game, `SELECT * FROM games WHERE id = ?`, id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &game, nil
}

// GamesByComparisonKey returns games whose comparison key equals key, in
// creation order, bounded by limit.
func (db *DB) GamesByComparisonKey(key string, limit int) ([]domain.Game, error) {
	var games []domain.Game
	err := db.Select(&games,
		`SELECT * FROM games WHERE comparison_key = ? ORDER BY created_at ASC LIMIT ?`,
		key, limit)
	return games, err
}

// SearchGameCandidates returns a bounded window of games whose comparison
// key contains token. Callers fuzzy-score the result; this is never a full
// scan.
func (db *DB) SearchGameCandidates(token string, limit int) ([]domain.Game, error) {
	var games []domain.Game
	err := db.Select(&games,
		`SELECT * FROM games WHERE comparison_key LIKE ? ORDER BY created_at ASC LIMIT ?`,
		"%"+token+"%", limit)
	return games, err
}

func (db *DB) ListGames(limit int) ([]domain.Game, error) {
	var games []domain.Game
	err := db.Select(&games, `SELECT * FROM games ORDER BY title ASC LIMIT ?`, limit)
	return games, err
}

func (db *DB) UpdateGameTitle(id, title, comparisonKey string) error {
	result, err := db.Exec(
		`UPDATE games SET title = ?, comparison_key = ?, updated_at = ? WHERE id = ?`,
		title, comparisonKey, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to update game title: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("game %s not found", id)
	}
	return nil
}

// UpdateGameMetadata fills metadata fields opportunistically. Empty incoming
// values never overwrite existing ones.
func (db *DB) UpdateGameMetadata(game *domain.Game) error {
	game.UpdatedAt = time.Now()

	query := `UPDATE games SET
		summary = CASE WHEN :summary != '' THEN :summary ELSE summary END,
		genres = CASE WHEN :genres != '[]' THEN :genres ELSE genres END,
		developer = CASE WHEN :developer != '' THEN :developer ELSE developer END,
		publisher = CASE WHEN :publisher != '' THEN :publisher ELSE publisher END,
		first_release_year = CASE WHEN :first_release_year != 0 THEN :first_release_year ELSE first_release_year END,
		cover_url = CASE WHEN :cover_url != '' THEN :cover_url ELSE cover_url END,
		updated_at = :updated_at
	WHERE id = :id`

	if _, err := db.NamedExec(query, game); err != nil {
		return fmt.Errorf("failed to update game metadata: %w", err)
	}
	return nil
}

func (db *DB) CountGames() (int, error) {
	var count int
	err := db.Get(&count, `SELECT COUNT(*) FROM games`)
	return count, err
}
