// Package worker drains queued sync jobs in the background.
package worker

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/cesargomez89/gameshelf/internal/constants"
	"github.com/cesargomez89/gameshelf/internal/domain"
	"github.com/cesargomez89/gameshelf/internal/logger"
	"github.com/cesargomez89/gameshelf/internal/store"
	"github.com/cesargomez89/gameshelf/internal/syncer"
)

type Worker struct {
	db            *store.DB
	syncer        *syncer.Syncer
	sources       map[domain.Source]syncer.RecordSource
	MaxConcurrent int
	PollInterval  time.Duration
	log           *logger.Logger
	wg            sync.WaitGroup
	ctx           context.Context
	cancel        context.CancelFunc
}

func New(db *store.DB, s *syncer.Syncer, sources map[domain.Source]syncer.RecordSource, log *logger.Logger) *Worker {
	if log == nil {
		log = logger.Default()
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Worker{
		db:            db,
		syncer:        s,
		sources:       sources,
		MaxConcurrent: constants.WorkerMaxConcurrent,
		PollInterval:  constants.WorkerPollInterval,
		log:           log.WithComponent("worker"),
		ctx:           ctx,
		cancel:        cancel,
	}
}

func (w *Worker) Start() {
	w.log.Info("starting worker")

	// Jobs left running by an unclean shutdown go back to the queue.
	if err := w.db.ResetStuckJobs(); err != nil {
		w.log.Warn("failed to reset stuck jobs", "error", err)
	}

	w.wg.Add(1)
	go w.processJobs()
}

func (w *Worker) Stop() {
	w.log.Info("stopping worker")
	w.cancel()
	w.wg.Wait()
}

func (w *Worker) processJobs() {
	defer w.wg.Done()
	ticker := time.NewTicker(w.PollInterval)
	defer ticker.Stop()

	sem := make(chan struct{}, w.MaxConcurrent)

	for {
		select {
		case <-w.ctx.Done():
			return
		case <-ticker.C:
			jobs, err := w.db.ListQueuedSyncJobs()
			if err != nil {
				w.log.Warn("failed to list queued jobs", "error", err)
				continue
			}

			for _, job := range jobs {
				select {
				case sem <- struct{}{}:
				case <-w.ctx.Done():
					return
				}

				// Claim before launching so the next poll skips it.
				if err := w.db.UpdateSyncJobStatus(job.ID, domain.JobStatusRunning); err != nil {
					w.log.Warn("failed to claim job", "job_id", job.ID, "error", err)
					<-sem
					continue
				}

				w.wg.Add(1)
				go func(job domain.SyncJob) {
					defer w.wg.Done()
					defer func() { <-sem }()
					w.runJob(w.ctx, &job)
				}(job)
			}
		}
	}
}

func (w *Worker) runJob(ctx context.Context, job *domain.SyncJob) {
	log := w.log.WithSync(job.ID, string(job.Source))

	defer func() {
		if r := recover(); r != nil {
			log.Error("panic in sync job", "panic", r)
			if err := w.db.MarkSyncJobFailed(job.ID, fmt.Sprintf("panic: %v", r)); err != nil {
				log.Error("failed to mark job failed", "error", err)
			}
		}
	}()

	src, ok := w.sources[job.Source]
	if !ok {
		log.Warn("no record source registered")
		if err := w.db.MarkSyncJobFailed(job.ID, fmt.Sprintf("no record source for %s", job.Source)); err != nil {
			log.Error("failed to mark job failed", "error", err)
		}
		return
	}

	job.Status = domain.JobStatusRunning
	if err := w.syncer.Run(ctx, job, src); err != nil {
		log.Warn("sync job failed", "error", err)
		if err := w.db.MarkSyncJobFailed(job.ID, err.Error()); err != nil {
			log.Error("failed to mark job failed", "error", err)
		}
		return
	}

	job.Status = domain.JobStatusCompleted
	if err := w.db.UpdateSyncJobCounts(job); err != nil {
		log.Error("failed to complete job", "error", err)
	}
}
