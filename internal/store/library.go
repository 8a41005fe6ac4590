package store

import (
	"fmt"
	"time"

	"github.com/cesargomez89/gameshelf/internal/domain"
)

// LibraryEntry is one row of a user's library view: an ownership entry
// joined with its release and game.
type LibraryEntry struct {
	OwnedGameID  string          `json:"owned_game_id" db:"owned_game_id"`
	UserID       string          `json:"user_id" db:"user_id"`
	ReleaseID    string          `json:"release_id" db:"release_id"`
	GameID       string          `json:"game_id" db:"game_id"`
	Title        string          `json:"title" db:"title"`
	DisplayTitle string          `json:"display_title" db:"display_title"`
	Platform     domain.Platform `json:"platform" db:"platform"`
	Source       domain.Source   `json:"source" db:"source"`
	CoverURL     string          `json:"cover_url" db:"cover_url"`
	Earned       int             `json:"earned" db:"earned"`
	Total        int             `json:"total" db:"total"`
}

// UpsertOwnedGame records ownership of a release for a user. Re-syncs hit
// the (user_id, release_id) constraint and keep the original row.
func (db *DB) UpsertOwnedGame(o *domain.OwnedGame) error {
	if o.AddedAt.IsZero() {
		o.AddedAt = time.Now()
	}

	query := `INSERT INTO owned_games (id, user_id, release_id, source, added_at)
		VALUES (:id, :user_id, :release_id, :source, :added_at)
		ON CONFLICT (user_id, release_id) DO NOTHING`

	if _, err := db.NamedExec(query, o); err != nil {
		return fmt.Errorf("failed to upsert owned game: %w", err)
	}
	return nil
}

// UpsertProgress writes a per-user progress cache row, replacing any
// previous counts for the same (user, release).
func (db *DB) UpsertProgress(p *domain.ProgressEntry) error {
	p.UpdatedAt = time.Now()

	query := `INSERT INTO progress_entries (user_id, release_id, source, earned, total, updated_at)
		VALUES (:user_id, :release_id, :source, :earned, :total, :updated_at)
		ON CONFLICT (user_id, release_id) DO UPDATE SET
			source = excluded.source,
			earned = excluded.earned,
			total = excluded.total,
			updated_at = excluded.updated_at`

	if _, err := db.NamedExec(query, p); err != nil {
		return fmt.Errorf("failed to upsert progress: %w", err)
	}
	return nil
}

func (db *DB) ListLibrary(userID string) ([]LibraryEntry, error) {
	query := `SELECT
			o.id AS owned_game_id,
			o.user_id AS user_id,
			o.release_id AS release_id,
			g.id AS game_id,
			g.title AS title,
			r.display_title AS display_title,
			r.platform AS platform,
			o.source AS source,
			CASE WHEN r.cover_url != '' THEN r.cover_url ELSE g.cover_url END AS cover_url,
			COALESCE(p.earned, 0) AS earned,
			COALESCE(p.total, 0) AS total
		FROM owned_games o
		JOIN releases r ON r.id = o.release_id
		JOIN games g ON g.id = r.game_id
		LEFT JOIN progress_entries p ON p.user_id = o.user_id AND p.release_id = o.release_id
		WHERE o.user_id = ?
		ORDER BY g.title ASC, r.platform ASC`

	var entries []LibraryEntry
	err := db.Select(&entries, query, userID)
	return entries, err
}

// ReassignOwnedGames points the loser's ownership rows at the winner. Rows
// that would collide with an existing (user, winner) row are dropped in the
// sweep: the user already owns the winner. Safe to rerun.
func (db *DB) ReassignOwnedGames(winnerID, loserID string) error {
	if _, err := db.Exec(
		`UPDATE OR IGNORE owned_games SET release_id = ? WHERE release_id = ?`,
		winnerID, loserID); err != nil {
		return fmt.Errorf("failed to reassign owned games: %w", err)
	}
	if _, err := db.Exec(`DELETE FROM owned_games WHERE release_id = ?`, loserID); err != nil {
		return fmt.Errorf("failed to sweep owned games: %w", err)
	}
	return nil
}

// ReassignProgress is the progress-cache counterpart of ReassignOwnedGames.
func (db *DB) ReassignProgress(winnerID, loserID string) error {
	if _, err := db.Exec(
		`UPDATE OR IGNORE progress_entries SET release_id = ? WHERE release_id = ?`,
		winnerID, loserID); err != nil {
		return fmt.Errorf("failed to reassign progress: %w", err)
	}
	if _, err := db.Exec(`DELETE FROM progress_entries WHERE release_id = ?`, loserID); err != nil {
		return fmt.Errorf("failed to sweep progress: %w", err)
	}
	return nil
}

// RefreshReleaseStats recomputes the aggregate row for a release.
func (db *DB) RefreshReleaseStats(releaseID string) error {
	_, err := db.Exec(`INSERT INTO release_stats (release_id, owner_count, last_synced_at)
		VALUES (?, (SELECT COUNT(*) FROM owned_games WHERE release_id = ?), ?)
		ON CONFLICT (release_id) DO UPDATE SET
			owner_count = excluded.owner_count,
			last_synced_at = excluded.last_synced_at`,
		releaseID, releaseID, time.Now())
	return err
}

func (db *DB) DeleteReleaseStats(releaseID string) error {
	_, err := db.Exec(`DELETE FROM release_stats WHERE release_id = ?`, releaseID)
	return err
}

func (db *DB) CountOwnedByRelease(releaseID string) (int, error) {
	var count int
	err := db.Get(&count, `SELECT COUNT(*) FROM owned_games WHERE release_id = ?`, releaseID)
	return count, err
}

func (db *DB) CountProgressByRelease(releaseID string) (int, error) {
	var count int
	err := db.Get(&count, `SELECT COUNT(*) FROM progress_entries WHERE release_id = ?`, releaseID)
	return count, err
}
