package scheduler

import (
	"context"
	"log/slog"
	"time"

	"youtube_ingest/internal/domain"
)

// Syncer defines the interface for sync operations.
type Syncer interface {
	SyncAll(ctx context.Context, dryRun bool) (*domain.SyncReport, error)
}

type Scheduler struct {
	syncer     Syncer
	interval   time.Duration
	runTimeout time.Duration
	logger     *slog.Logger
}

func NewScheduler(syncer Syncer, interval, runTimeout time.Duration, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		syncer:     syncer,
		interval:   interval,
		runTimeout: runTimeout,
		logger:     logger.With("component", "scheduler"),
	}
}

func (s *Scheduler) Start(ctx context.Context) error {
	s.logger.Info("scheduler started", "interval", s.interval, "run_timeout", s.runTimeout)

	s.runSync(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("scheduler stopped")
			return ctx.Err()
		case <-ticker.C:
			s.runSync(ctx)
		}
	}
}

func (s *Scheduler) runSync(ctx context.Context) {
	syncCtx := ctx
	if s.runTimeout > 0 {
		var cancel context.CancelFunc
		syncCtx, cancel = context.WithTimeout(ctx, s.runTimeout)
		defer cancel()
	}

	report, err := s.syncer.SyncAll(syncCtx, false)
	if err != nil {
		s.logger.Error("sync failed", "error", err)
		return
	}

	s.logger.Info("scheduled sync finished",
		"sources", report.SourcesProcessed,
		"successful", report.Successful,
		"failed", report.Failed,
		"new_videos", len(report.NewVideoIDs()),
	)
}
