package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"youtube_ingest/internal/config"
	"youtube_ingest/internal/domain"
)

const syncTranscriptTag = "sync"

// SyncService lists every due source, a few at a time, and then ingests transcripts for the
// videos that turned up new.
type SyncService struct {
	sources     SourceStore
	lists       ListIngester
	transcripts TranscriptQueue
	stage       stageLog
	config      config.SyncConfig
	now         func() time.Time
	logger      *slog.Logger
}

func NewSyncService(
	sources SourceStore,
	lists ListIngester,
	transcripts TranscriptQueue,
	logs IngestionLogStore,
	logger *slog.Logger,
	cfg config.SyncConfig,
	resourcePool string,
) *SyncService {
	logger = logger.With("component", "sync")

	return &SyncService{
		sources:     sources,
		lists:       lists,
		transcripts: transcripts,
		stage:       stageLog{store: logs, pool: optional(resourcePool), logger: logger},
		config:      cfg,
		now:         time.Now,
		logger:      logger,
	}
}

// SyncAll syncs every active source that is due. With dryRun set nothing is scraped; each due
// source is reported with the reason it was picked.
func (s *SyncService) SyncAll(ctx context.Context, dryRun bool) (*domain.SyncReport, error) {
	started := time.Now()
	now := s.now()

	due, err := s.sources.DueForSync(ctx, now)
	if err != nil {
		return nil, fmt.Errorf("load due sources: %w", err)
	}

	s.logger.Info("starting sync", "due_sources", len(due), "dry_run", dryRun)

	report := &domain.SyncReport{
		SourcesProcessed: len(due),
		Results:          []domain.SourceSyncResult{},
	}

	if dryRun {
		for _, src := range due {
			report.Add(domain.SourceSyncResult{
				SourceID:   src.ID,
				SourceName: src.SourceName,
				SourceURL:  src.SourceURL,
				Status:     domain.SyncDryRun,
				Reason:     src.EligibilityReason(now),
			})
		}
		report.Duration = time.Since(started)
		return report, nil
	}

	results := make([]domain.SourceSyncResult, len(due))

	var g errgroup.Group
	g.SetLimit(max(s.config.MaxConcurrent, 1))

	for i := range due {
		src := &due[i]
		g.Go(func() error {
			results[i] = s.syncWithTimeout(ctx, src)
			return nil
		})
	}
	_ = g.Wait()

	for _, res := range results {
		report.Add(res)
	}

	if s.config.TranscriptsEnabled() && s.transcripts != nil {
		if ids := report.NewVideoIDs(); len(ids) > 0 {
			run, err := s.transcripts.ProcessQueue(ctx, ids, syncTranscriptTag)
			if err != nil {
				s.logger.Error("transcript ingestion failed", "error", err)
				report.Errors = append(report.Errors, fmt.Sprintf("transcripts: %v", err))
			} else {
				report.Transcripts = run
			}
		}
	}

	report.Duration = time.Since(started)

	s.logger.Info("sync completed",
		"sources", report.SourcesProcessed,
		"successful", report.Successful,
		"failed", report.Failed,
		"skipped", report.Skipped,
		"new_videos", len(report.NewVideoIDs()),
		"duration", report.Duration,
	)

	return report, nil
}

// SyncSource syncs one source by id whether or not it is due.
func (s *SyncService) SyncSource(ctx context.Context, id int64) domain.SourceSyncResult {
	src, err := s.sources.GetByID(ctx, id)
	if err != nil {
		return domain.SourceSyncResult{SourceID: id, Status: domain.SyncFailed, Error: err.Error()}
	}
	if !src.IsActive {
		return domain.SourceSyncResult{
			SourceID:   src.ID,
			SourceName: src.SourceName,
			SourceURL:  src.SourceURL,
			Status:     domain.SyncSkipped,
			Reason:     "Source is inactive",
		}
	}
	return s.syncWithTimeout(ctx, src)
}

// syncWithTimeout gives up on a source once the per-source timeout passes, even if the listing
// has not returned yet.
func (s *SyncService) syncWithTimeout(ctx context.Context, src *domain.Source) domain.SourceSyncResult {
	if s.config.Timeout <= 0 {
		return s.syncOne(ctx, src)
	}

	tctx, cancel := context.WithTimeout(ctx, s.config.Timeout)
	defer cancel()

	done := make(chan domain.SourceSyncResult, 1)
	go func() {
		done <- s.syncOne(tctx, src)
	}()

	select {
	case res := <-done:
		return res
	case <-tctx.Done():
		msg := fmt.Sprintf("sync timeout after %.0fs", s.config.Timeout.Seconds())
		if !errors.Is(tctx.Err(), context.DeadlineExceeded) || ctx.Err() != nil {
			msg = fmt.Sprintf("sync cancelled: %v", ctx.Err())
		}
		s.logger.Warn("source sync aborted", "source_id", src.ID, "reason", msg)
		return domain.SourceSyncResult{
			SourceID:   src.ID,
			SourceName: src.SourceName,
			SourceURL:  src.SourceURL,
			Status:     domain.SyncFailed,
			Error:      msg,
		}
	}
}

func (s *SyncService) syncOne(ctx context.Context, src *domain.Source) domain.SourceSyncResult {
	res := domain.SourceSyncResult{
		SourceID:   src.ID,
		SourceName: src.SourceName,
		SourceURL:  src.SourceURL,
	}
	logger := s.logger.With("source_id", src.ID, "source_url", src.SourceURL)

	logID, _ := s.stage.open(ctx, domain.StageSync, string(src.SourceType), src.SourceURL)

	list, err := s.lists.IngestSource(ctx, src, domain.ListOptions{
		SourceID:   src.ID,
		MaxResults: s.config.MaxResults,
	})
	if err != nil {
		logger.Warn("source sync failed", "error", err)
		s.stage.close(ctx, logID, domain.LogCompletion{Status: domain.LogFailed, ErrorMessage: err.Error()})
		res.Status = domain.SyncFailed
		res.Error = err.Error()
		return res
	}

	if err := s.sources.MarkSynced(ctx, src.ID, s.now()); err != nil {
		logger.Warn("failed to record sync time", "error", err)
	}

	s.stage.close(ctx, logID, domain.LogCompletion{
		Status:           domain.LogCompleted,
		RecordsProcessed: list.VideosProcessed,
		RunID:            list.RunID,
		DatasetID:        list.DatasetID,
	})

	logger.Info("source synced", "stored", list.VideosProcessed, "new", len(list.NewVideoIDs))

	res.Status = domain.SyncSuccess
	res.List = list
	return res
}
