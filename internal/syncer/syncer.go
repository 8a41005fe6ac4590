// Package syncer runs batch library syncs: it pulls a user's records from a
// platform source and feeds each one through identity resolution. A bad
// record never aborts the batch; per-record outcomes are tallied onto the
// sync job row.
package syncer

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/cesargomez89/gameshelf/internal/domain"
	"github.com/cesargomez89/gameshelf/internal/logger"
	"github.com/cesargomez89/gameshelf/internal/resolver"
	"github.com/cesargomez89/gameshelf/internal/store"
)

// RecordSource fetches one user's ownership/progress records from an
// external platform.
type RecordSource interface {
	FetchRecords(ctx context.Context, userID string) ([]domain.ExternalRecord, error)
}

// RecordSourceFunc adapts a function to the RecordSource interface.
type RecordSourceFunc func(ctx context.Context, userID string) ([]domain.ExternalRecord, error)

func (f RecordSourceFunc) FetchRecords(ctx context.Context, userID string) ([]domain.ExternalRecord, error) {
	return f(ctx, userID)
}

type Syncer struct {
	db       *store.DB
	resolver *resolver.Resolver
	state    *store.SyncStateRepo
	log      *logger.Logger
}

func New(db *store.DB, res *resolver.Resolver, log *logger.Logger) *Syncer {
	if log == nil {
		log = logger.Default()
	}
	return &Syncer{
		db:       db,
		resolver: res,
		state:    store.NewSyncStateRepo(db),
		log:      log.WithComponent("syncer"),
	}
}

// Run executes one sync job against a source. Fetch failures fail the whole
// job; per-record resolution failures only increment counters. Counters are
// persisted incrementally so an interrupted job still shows progress.
func (s *Syncer) Run(ctx context.Context, job *domain.SyncJob, src RecordSource) error {
	log := s.log.WithSync(job.ID, string(job.Source))

	records, err := src.FetchRecords(ctx, job.UserID)
	if err != nil {
		return fmt.Errorf("fetch records for %s: %w", job.Source, err)
	}
	log.Info("fetched records", "count", len(records))

	touched := make(map[string]struct{})

	for _, rec := range records {
		if err := ctx.Err(); err != nil {
			return err
		}

		job.Processed++
		releaseID, created, err := s.processRecord(ctx, job.UserID, rec)
		switch {
		case errors.Is(err, resolver.ErrNoUsableTitle), errors.Is(err, resolver.ErrNoConfidentMatch):
			job.Skipped++
			log.Debug("record skipped", "external_id", rec.ExternalID, "title", rec.Title, "reason", err)
		case err != nil:
			job.Failed++
			log.Warn("record failed", "external_id", rec.ExternalID, "title", rec.Title, "error", err)
		case created:
			job.Imported++
			touched[releaseID] = struct{}{}
		default:
			job.MappedExisting++
			touched[releaseID] = struct{}{}
		}

		if job.Processed%50 == 0 {
			if err := s.db.UpdateSyncJobCounts(job); err != nil {
				log.Warn("counter checkpoint failed", "error", err)
			}
		}
	}

	for releaseID := range touched {
		if err := s.db.RefreshReleaseStats(releaseID); err != nil {
			log.Warn("stats refresh failed", "release_id", releaseID, "error", err)
		}
	}

	cursor := strconv.FormatInt(time.Now().Unix(), 10)
	if err := s.state.Set(store.CursorKey(job.UserID, job.Source), cursor); err != nil {
		log.Warn("cursor update failed", "error", err)
	}

	log.Info("sync finished",
		"processed", job.Processed, "imported", job.Imported,
		"mapped_existing", job.MappedExisting, "skipped", job.Skipped,
		"failed", job.Failed)
	return s.db.UpdateSyncJobCounts(job)
}

// processRecord resolves one record to a release, then records ownership
// and progress for the user.
func (s *Syncer) processRecord(ctx context.Context, userID string, rec domain.ExternalRecord) (string, bool, error) {
	in := resolver.Input{
		Source:        rec.Source,
		ExternalID:    rec.ExternalID,
		Title:         rec.Title,
		Platform:      rec.Platform,
		PlatformLabel: rec.PlatformLabel,
		CoverURL:      rec.CoverURL,
	}

	var res *resolver.Result
	var err error
	if systemID, ok := retroSystemID(rec); ok {
		res, err = s.resolver.ResolveRetro(ctx, in, systemID)
	} else {
		res, err = s.resolver.ResolveOrCreate(ctx, in)
	}
	if err != nil {
		return "", false, err
	}

	owned := &domain.OwnedGame{
		ID:        uuid.NewString(),
		UserID:    userID,
		ReleaseID: res.ReleaseID,
		Source:    rec.Source,
	}
	if err := s.db.UpsertOwnedGame(owned); err != nil {
		return "", false, err
	}

	if rec.HasProgress {
		progress := &domain.ProgressEntry{
			UserID:    userID,
			ReleaseID: res.ReleaseID,
			Source:    rec.Source,
			Earned:    rec.Earned,
			Total:     rec.Total,
		}
		if err := s.db.UpsertProgress(progress); err != nil {
			return "", false, err
		}
	}

	return res.ReleaseID, res.Created, nil
}

// retroSystemID reports the catalog system a retro record should be matched
// against. Records without one go through the plain resolution path.
func retroSystemID(rec domain.ExternalRecord) (int, bool) {
	if rec.Source != domain.SourceRetro || rec.SystemID == 0 {
		return 0, false
	}
	return rec.SystemID, true
}
