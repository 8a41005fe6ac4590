package store

import (
	"database/sql"
	"fmt"

	"github.com/cesargomez89/gameshelf/internal/domain"
)

// UpsertExternalID records a (source, external_id) -> release link. On
// conflict the existing row wins: a second writer racing on the same
// external id converges onto the first writer's mapping instead of erroring.
func (db *DB) UpsertExternalID(m *domain.ExternalIDMapping) error {
	query := `INSERT INTO external_ids (release_id, source, external_id)
		VALUES (?, ?, ?)
		ON CONFLICT (source, external_id) DO NOTHING`

	if _, err := db.Exec(query, m.ReleaseID, m.Source, m.ExternalID); err != nil {
		return fmt.Errorf("failed to upsert external id: %w", err)
	}
	return nil
}

func (db *DB) GetExternalID(source domain.Source, externalID string) (*domain.ExternalIDMapping, error) {
	var m domain.ExternalIDMapping
	err := db.Get(&m,
		`SELECT release_id, source, external_id FROM external_ids WHERE source = ? AND external_id = ?`,
		source, externalID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// DeleteMapping removes a stale mapping row. Only the resolver's
// dangling-mapping recovery calls this; mappings otherwise live as long as
// their release.
func (db *DB) DeleteMapping(source domain.Source, externalID string) error {
	_, err := db.Exec(`DELETE FROM external_ids WHERE source = ? AND external_id = ?`,
		source, externalID)
	return err
}

func (db *DB) MappingsByRelease(releaseID string) ([]domain.ExternalIDMapping, error) {
	var mappings []domain.ExternalIDMapping
	err := db.Select(&mappings,
		`SELECT release_id, source, external_id FROM external_ids WHERE release_id = ? ORDER BY source, external_id`,
		releaseID)
	return mappings, err
}

// RepointMappings moves every mapping on loser onto winner. The primary key
// is (source, external_id) and release_id carries no unique constraint, so
// the update cannot conflict and re-running it is a no-op.
func (db *DB) RepointMappings(winnerID, loserID string) error {
	_, err := db.Exec(`UPDATE external_ids SET release_id = ? WHERE release_id = ?`,
		winnerID, loserID)
	if err != nil {
		return fmt.Errorf("failed to repoint mappings: %w", err)
	}
	return nil
}
