package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"
	"unicode/utf8"

	"youtube_ingest/internal/config"
	"youtube_ingest/internal/domain"
	"youtube_ingest/internal/processor"
	"youtube_ingest/internal/youtubeurl"
)

const batchSourceType = "batch"

// TranscriptService drives videos through fetch, process, validate, store and publish.
type TranscriptService struct {
	videos    VideoStore
	fetcher   TranscriptFetcher
	publisher Publisher
	stage     stageLog
	gate      processor.QualityGate
	topic     string
	config    config.TranscriptConfig
	now       func() time.Time
	logger    *slog.Logger
}

func NewTranscriptService(
	videos VideoStore,
	logs IngestionLogStore,
	fetcher TranscriptFetcher,
	publisher Publisher,
	logger *slog.Logger,
	cfg config.TranscriptConfig,
	topic string,
	resourcePool string,
) *TranscriptService {
	logger = logger.With("component", "transcripts")

	return &TranscriptService{
		videos:    videos,
		fetcher:   fetcher,
		publisher: publisher,
		stage:     stageLog{store: logs, pool: optional(resourcePool), logger: logger},
		gate: processor.QualityGate{
			MinLength: cfg.MinTextLength(),
			Threshold: cfg.Threshold(),
			Languages: cfg.Languages(),
		},
		topic:  topic,
		config: cfg,
		now:    time.Now,
		logger: logger,
	}
}

// IngestVideo runs one video to a terminal outcome. Failures are reported in the outcome, never
// returned.
func (s *TranscriptService) IngestVideo(ctx context.Context, videoID string) domain.VideoOutcome {
	out := domain.VideoOutcome{VideoID: videoID}

	state, err := s.videos.TranscriptState(ctx, videoID)
	if err != nil {
		return s.failed(out, fmt.Errorf("check transcript state: %w", err))
	}
	if state == domain.TranscriptPresent {
		out.Status = domain.OutcomeAlreadyProcessed
		return out
	}

	raw, err := s.fetcher.FetchTranscript(ctx, youtubeurl.WatchURL(videoID))
	if err != nil && !errors.Is(err, domain.ErrJobUnsuccessful) {
		return s.failed(out, fmt.Errorf("fetch transcript: %w", err))
	}
	if err != nil || len(raw) == 0 {
		return s.unavailable(ctx, out)
	}

	t := processor.ProcessTranscript(processor.DecodeTranscript(raw))
	out.Language = t.Language
	out.SegmentCount = t.SegmentCount
	out.TextLength = utf8.RuneCountInString(t.Text)
	out.QualityScore = t.QualityScore

	if s.config.ValidationEnabled() {
		if err := s.gate.Check(t); err != nil {
			s.logger.Info("transcript rejected", "video_id", videoID, "reason", err)
			out.Status = domain.OutcomeQualityRejected
			out.Error = err.Error()
			return out
		}
	} else if t.Text == "" {
		// An empty text would read back as "unavailable".
		return s.unavailable(ctx, out)
	}

	video, err := s.videos.StoreTranscript(ctx, videoID, domain.TranscriptUpdate{
		Segments:   t.Segments,
		Text:       t.Text,
		Language:   t.Language,
		IngestedAt: s.now(),
	})
	if err != nil {
		return s.failed(out, fmt.Errorf("store transcript: %w", err))
	}

	out.Status = domain.OutcomeSuccess

	if s.publisher != nil {
		published := s.publisher.Publish(ctx, s.topic, domain.NewVideoRecord(video, s.now()), videoID)
		if !published {
			s.logger.Warn("failed to publish video record", "video_id", videoID, "topic", s.topic)
		}
		out.Published = &published
	}

	s.logger.Debug("transcript stored",
		"video_id", videoID,
		"language", t.Language,
		"segments", t.SegmentCount,
		"quality", t.QualityScore,
	)

	return out
}

func (s *TranscriptService) unavailable(ctx context.Context, out domain.VideoOutcome) domain.VideoOutcome {
	if err := s.videos.MarkTranscriptUnavailable(ctx, out.VideoID); err != nil {
		return s.failed(out, fmt.Errorf("mark transcript unavailable: %w", err))
	}
	out.Status = domain.OutcomeUnavailable
	return out
}

func (s *TranscriptService) failed(out domain.VideoOutcome, err error) domain.VideoOutcome {
	s.logger.Warn("transcript ingestion failed", "video_id", out.VideoID, "error", err)
	out.Status = domain.OutcomeError
	out.Error = err.Error()
	return out
}

// ProcessQueue ingests transcripts for videoIDs. Duplicates are dropped. The error is non-nil only
// when the run could not start at all; per-video failures are in the returned stats.
func (s *TranscriptService) ProcessQueue(ctx context.Context, videoIDs []string, tag string) (*domain.TranscriptRun, error) {
	started := time.Now()
	ids := uniqueIDs(videoIDs)
	stats := domain.TranscriptStats{Total: len(ids)}

	identifier := tag
	if identifier == "" {
		identifier = fmt.Sprintf("batch_%d_videos", len(ids))
	}

	s.logger.Info("starting transcript ingestion", "videos", len(ids), "source", identifier)

	logID, ok := s.stage.open(ctx, domain.StageTranscriptIngestion, batchSourceType, identifier)
	if !ok {
		stats.LogWriteFailures++
	}

	done, err := s.videos.WithTranscript(ctx, ids)
	if err != nil {
		s.stage.close(ctx, logID, domain.LogCompletion{Status: domain.LogFailed, ErrorMessage: err.Error()})
		return nil, fmt.Errorf("check existing transcripts: %w", err)
	}

	pending := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := done[id]; ok {
			stats.Record(domain.VideoOutcome{VideoID: id, Status: domain.OutcomeAlreadyProcessed}, s.config.MaxRecordedErrors)
			continue
		}
		pending = append(pending, id)
	}

	batchSize := s.config.BatchSize
	if batchSize <= 0 {
		batchSize = len(pending)
	}
	for start := 0; start < len(pending); start += batchSize {
		end := min(start+batchSize, len(pending))
		s.runBatch(ctx, pending[start:end], &stats)
		s.logger.Debug("transcript batch finished", "processed", end, "pending", len(pending))
	}

	if !s.stage.close(ctx, logID, domain.LogCompletion{
		Status:           domain.LogCompleted,
		RecordsProcessed: stats.Successful,
	}) {
		stats.LogWriteFailures++
	}

	run := &domain.TranscriptRun{
		Stats:       stats,
		Duration:    time.Since(started),
		SuccessRate: domain.SuccessRate(stats.Successful, stats.Total),
		LogID:       logID,
	}

	s.logger.Info("transcript ingestion completed",
		"total", stats.Total,
		"successful", stats.Successful,
		"unavailable", stats.Unavailable,
		"quality_rejected", stats.QualityRejected,
		"already_processed", stats.AlreadyProcessed,
		"failed", stats.Failed,
		"success_rate", run.SuccessRate,
		"duration", run.Duration,
	)

	return run, nil
}

// runBatch drains ids through a fixed pool of workers.
func (s *TranscriptService) runBatch(ctx context.Context, ids []string, stats *domain.TranscriptStats) {
	jobs := make(chan string, len(ids))
	for _, id := range ids {
		jobs <- id
	}
	close(jobs)

	workers := min(max(s.config.Concurrency, 1), len(ids))

	var wg sync.WaitGroup
	var mu sync.Mutex

	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for id := range jobs {
				out := s.ingestSafely(ctx, id)
				mu.Lock()
				stats.Record(out, s.config.MaxRecordedErrors)
				mu.Unlock()
			}
		}()
	}

	wg.Wait()
}

func (s *TranscriptService) ingestSafely(ctx context.Context, videoID string) (out domain.VideoOutcome) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("panic during transcript ingestion", "video_id", videoID, "panic", r)
			out = domain.VideoOutcome{
				VideoID: videoID,
				Status:  domain.OutcomeError,
				Error:   fmt.Sprintf("panic: %v", r),
			}
		}
	}()
	return s.IngestVideo(ctx, videoID)
}

// ProcessPending ingests up to limit videos that were never checked. sourceID 0 means any source.
func (s *TranscriptService) ProcessPending(ctx context.Context, limit int, sourceID int64) (*domain.TranscriptRun, error) {
	ids, err := s.PendingVideoIDs(ctx, limit, sourceID)
	if err != nil {
		return nil, err
	}

	tag := "pending"
	if sourceID > 0 {
		tag = fmt.Sprintf("source_%d", sourceID)
	}
	return s.ProcessQueue(ctx, ids, tag)
}

func (s *TranscriptService) PendingVideoIDs(ctx context.Context, limit int, sourceID int64) ([]string, error) {
	if limit <= 0 {
		limit = s.config.BatchSize
	}
	ids, err := s.videos.PendingTranscripts(ctx, limit, sourceID)
	if err != nil {
		return nil, fmt.Errorf("load pending transcripts: %w", err)
	}
	return ids, nil
}

func (s *TranscriptService) Statistics(ctx context.Context, sourceID int64) (*domain.TranscriptStatistics, error) {
	stats, err := s.videos.TranscriptStatistics(ctx, sourceID)
	if err != nil {
		return nil, fmt.Errorf("transcript statistics: %w", err)
	}
	return stats, nil
}

func uniqueIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
