package domain

import "time"

// ListOptions tunes one list ingestion. Zero values fall back to configured defaults.
type ListOptions struct {
	// SourceID links the videos to a registered source. 0 leaves them unlinked.
	SourceID   int64
	MaxResults int
	// Limit caps how many unique videos are stored from the listing.
	Limit int
}

// ListResult is the outcome of ingesting one channel or playlist listing.
type ListResult struct {
	SourceURL       string        `json:"source_url"`
	RunID           string        `json:"run_id,omitempty"`
	DatasetID       string        `json:"dataset_id,omitempty"`
	TotalRawItems   int           `json:"total_raw_items"`
	UniqueVideos    int           `json:"unique_videos"`
	VideosProcessed int           `json:"videos_processed"`
	VideosFailed    int           `json:"videos_failed"`
	NewVideoIDs     []string      `json:"new_video_ids"`
	ChannelUpdated  bool          `json:"channel_updated"`
	Duration        time.Duration `json:"duration"`
}

type SyncStatus string

const (
	SyncSuccess SyncStatus = "success"
	SyncFailed  SyncStatus = "failed"
	SyncSkipped SyncStatus = "skipped"
	SyncDryRun  SyncStatus = "dry_run"
)

type SourceSyncResult struct {
	SourceID   int64       `json:"source_id"`
	SourceName string      `json:"source_name,omitempty"`
	SourceURL  string      `json:"source_url,omitempty"`
	Status     SyncStatus  `json:"status"`
	Reason     string      `json:"reason,omitempty"`
	Error      string      `json:"error,omitempty"`
	List       *ListResult `json:"list,omitempty"`
}

type SyncReport struct {
	SourcesProcessed int                `json:"sources_processed"`
	Successful       int                `json:"successful"`
	Failed           int                `json:"failed"`
	Skipped          int                `json:"skipped"`
	Errors           []string           `json:"errors,omitempty"`
	Results          []SourceSyncResult `json:"source_results"`
	Transcripts      *TranscriptRun     `json:"transcripts,omitempty"`
	Duration         time.Duration      `json:"duration"`
}

// Add folds a per-source result into the report counters.
func (r *SyncReport) Add(res SourceSyncResult) {
	r.Results = append(r.Results, res)
	switch res.Status {
	case SyncSuccess:
		r.Successful++
	case SyncFailed:
		r.Failed++
		r.Errors = append(r.Errors, res.Error)
	case SyncSkipped:
		r.Skipped++
	}
}

// NewVideoIDs gathers new video IDs across all successful sources.
func (r *SyncReport) NewVideoIDs() []string {
	var ids []string
	for _, res := range r.Results {
		if res.List != nil {
			ids = append(ids, res.List.NewVideoIDs...)
		}
	}
	return ids
}
