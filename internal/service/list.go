package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"youtube_ingest/internal/domain"
	"youtube_ingest/internal/processor"
	"youtube_ingest/internal/youtubeurl"
)

// ListService stores the videos of a channel or playlist listing. Transcript columns are never
// touched here.
type ListService struct {
	videos     VideoStore
	channels   ChannelStore
	logs       IngestionLogStore
	scraper    ListScraper
	stage      stageLog
	pool       *string
	maxResults int
	now        func() time.Time
	logger     *slog.Logger
}

func NewListService(
	videos VideoStore,
	channels ChannelStore,
	logs IngestionLogStore,
	scraper ListScraper,
	logger *slog.Logger,
	maxResults int,
	resourcePool string,
) *ListService {
	logger = logger.With("component", "lists")
	pool := optional(resourcePool)

	return &ListService{
		videos:     videos,
		channels:   channels,
		logs:       logs,
		scraper:    scraper,
		stage:      stageLog{store: logs, pool: pool, logger: logger},
		pool:       pool,
		maxResults: maxResults,
		now:        time.Now,
		logger:     logger,
	}
}

func (s *ListService) IngestSource(ctx context.Context, src *domain.Source, opts domain.ListOptions) (*domain.ListResult, error) {
	if opts.SourceID == 0 {
		opts.SourceID = src.ID
	}
	return s.ingest(ctx, src.SourceType, src.SourceURL, opts)
}

// IngestURL ingests a channel or playlist that is not registered as a source.
func (s *ListService) IngestURL(ctx context.Context, rawURL string, opts domain.ListOptions) (*domain.ListResult, error) {
	parsed, ok := youtubeurl.Parse(rawURL)
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidSource, rawURL)
	}
	return s.ingest(ctx, parsed.Kind, parsed.Canonical, opts)
}

func (s *ListService) ingest(ctx context.Context, sourceType domain.SourceType, sourceURL string, opts domain.ListOptions) (*domain.ListResult, error) {
	started := time.Now()
	logger := s.logger.With("source_url", sourceURL)

	if opts.MaxResults <= 0 {
		opts.MaxResults = s.maxResults
	}

	logger.Info("starting list ingestion", "max_results", opts.MaxResults)
	logID, _ := s.stage.open(ctx, domain.StageListIngestion, string(sourceType), sourceURL)

	job, err := s.scraper.ScrapeList(ctx, sourceURL, opts.MaxResults)
	if err != nil {
		s.stage.close(ctx, logID, domain.LogCompletion{Status: domain.LogFailed, ErrorMessage: err.Error()})
		return nil, fmt.Errorf("scrape %s: %w", sourceURL, err)
	}

	res := &domain.ListResult{
		SourceURL:     sourceURL,
		RunID:         job.RunID,
		DatasetID:     job.DatasetID,
		TotalRawItems: len(job.Items),
		NewVideoIDs:   []string{},
	}

	videos := s.collect(ctx, job, sourceURL, opts, res)
	if opts.Limit > 0 && len(videos) > opts.Limit {
		videos = videos[:opts.Limit]
	}
	res.UniqueVideos = len(videos)

	ids := make([]string, len(videos))
	for i, v := range videos {
		ids[i] = v.VideoID
	}

	existing, err := s.videos.ExistingIDs(ctx, ids)
	if err != nil {
		s.stage.close(ctx, logID, domain.LogCompletion{
			Status:       domain.LogFailed,
			ErrorMessage: err.Error(),
			RunID:        job.RunID,
			DatasetID:    job.DatasetID,
		})
		return nil, fmt.Errorf("check existing videos: %w", err)
	}

	for _, v := range videos {
		if _, err := s.videos.Upsert(ctx, v); err != nil {
			logger.Warn("failed to store video", "video_id", v.VideoID, "error", err)
			res.VideosFailed++
			continue
		}
		res.VideosProcessed++
		if _, seen := existing[v.VideoID]; !seen {
			res.NewVideoIDs = append(res.NewVideoIDs, v.VideoID)
		}
	}

	s.stage.close(ctx, logID, domain.LogCompletion{
		Status:           domain.LogCompleted,
		RecordsProcessed: res.VideosProcessed,
		RunID:            job.RunID,
		DatasetID:        job.DatasetID,
	})

	res.Duration = time.Since(started)

	logger.Info("list ingestion completed",
		"raw_items", res.TotalRawItems,
		"unique_videos", res.UniqueVideos,
		"stored", res.VideosProcessed,
		"failed", res.VideosFailed,
		"new", len(res.NewVideoIDs),
		"duration", res.Duration,
	)

	return res, nil
}

// collect decodes dataset items into videos, de-duplicated by ID, and refreshes the channel row
// from the first item that names one.
func (s *ListService) collect(ctx context.Context, job *domain.JobResult, sourceURL string, opts domain.ListOptions, res *domain.ListResult) []*domain.Video {
	now := s.now()
	seen := make(map[string]struct{}, len(job.Items))
	videos := make([]*domain.Video, 0, len(job.Items))
	channelSeen := false

	for i, item := range job.Items {
		raw, err := processor.DecodeRawVideo(item)
		if err != nil {
			s.logger.Debug("skipping undecodable item", "index", i, "error", err)
			continue
		}

		if !channelSeen {
			if ch, ok := processor.ParseChannel(raw); ok {
				channelSeen = true
				ch.ResourcePool = s.pool
				if err := s.channels.Upsert(ctx, ch); err != nil {
					s.logger.Warn("failed to store channel", "channel_id", ch.ChannelID, "error", err)
				} else {
					res.ChannelUpdated = true
				}
			}
		}

		v, ok := processor.ParseVideo(raw, now)
		if !ok {
			continue
		}
		if _, dup := seen[v.VideoID]; dup {
			continue
		}
		seen[v.VideoID] = struct{}{}

		if v.FromURL == "" {
			v.FromURL = sourceURL
		}
		if opts.SourceID > 0 {
			id := opts.SourceID
			v.SourceListID = &id
		}
		v.ResourcePool = s.pool

		videos = append(videos, v)
	}

	return videos
}

// PruneFailedLogs deletes failed ingestion log rows older than maxAge.
func (s *ListService) PruneFailedLogs(ctx context.Context, maxAge time.Duration) (int64, error) {
	n, err := s.logs.PruneFailed(ctx, s.now().Add(-maxAge))
	if err != nil {
		return 0, err
	}
	s.logger.Info("pruned failed ingestion logs", "deleted", n, "max_age", maxAge)
	return n, nil
}
