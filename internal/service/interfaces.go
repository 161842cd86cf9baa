package service

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"
	"encoding/json"
	"time"

	"youtube_ingest/internal/domain"
)

type VideoStore interface {
	Upsert(ctx context.Context, video *domain.Video) (bool, error)
	ExistingIDs(ctx context.Context, ids []string) (map[string]struct{}, error)
	WithTranscript(ctx context.Context, ids []string) (map[string]struct{}, error)
	TranscriptState(ctx context.Context, videoID string) (domain.TranscriptState, error)
	MarkTranscriptUnavailable(ctx context.Context, videoID string) error
	StoreTranscript(ctx context.Context, videoID string, upd domain.TranscriptUpdate) (*domain.Video, error)
	PendingTranscripts(ctx context.Context, limit int, sourceID int64) ([]string, error)
	TranscriptStatistics(ctx context.Context, sourceID int64) (*domain.TranscriptStatistics, error)
}

type ChannelStore interface {
	Upsert(ctx context.Context, channel *domain.Channel) error
}

type SourceStore interface {
	Create(ctx context.Context, src *domain.Source) (*domain.Source, error)
	GetByID(ctx context.Context, id int64) (*domain.Source, error)
	GetByURL(ctx context.Context, sourceURL string) (*domain.Source, error)
	List(ctx context.Context, activeOnly bool) ([]domain.Source, error)
	DueForSync(ctx context.Context, now time.Time) ([]domain.Source, error)
	Update(ctx context.Context, id int64, upd domain.SourceUpdate) (*domain.Source, error)
	Deactivate(ctx context.Context, id int64) error
	MarkSynced(ctx context.Context, id int64, at time.Time) error
}

type IngestionLogStore interface {
	Start(ctx context.Context, entry *domain.IngestionLog) (int64, error)
	Finish(ctx context.Context, id int64, c domain.LogCompletion) error
	PruneFailed(ctx context.Context, olderThan time.Time) (int64, error)
}

type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// ListScraper runs the remote channel/playlist listing job.
type ListScraper interface {
	ScrapeList(ctx context.Context, sourceURL string, maxResults int) (*domain.JobResult, error)
}

// TranscriptFetcher returns the raw transcript item for a video, or nil when the job produced none.
type TranscriptFetcher interface {
	FetchTranscript(ctx context.Context, videoURL string) (json.RawMessage, error)
}

// ListIngester stores one channel or playlist listing.
type ListIngester interface {
	IngestSource(ctx context.Context, src *domain.Source, opts domain.ListOptions) (*domain.ListResult, error)
}

// TranscriptQueue runs transcript ingestion for a set of videos.
type TranscriptQueue interface {
	ProcessQueue(ctx context.Context, videoIDs []string, tag string) (*domain.TranscriptRun, error)
}

type Publisher interface {
	Publish(ctx context.Context, topic string, payload any, key string) bool
	Close() error
}
