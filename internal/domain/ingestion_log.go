package domain

import "time"

type LogStatus string

const (
	LogStarted   LogStatus = "started"
	LogCompleted LogStatus = "completed"
	LogFailed    LogStatus = "failed"
)

const (
	StageListIngestion       = "list_ingestion"
	StageTranscriptIngestion = "transcript_ingestion"
	StageSync                = "sync"
)

// IngestionLog records one invocation of a pipeline stage. Rows are observability only.
type IngestionLog struct {
	ID               int64      `db:"id" json:"id"`
	StageName        string     `db:"stage_name" json:"stage_name"`
	Status           LogStatus  `db:"status" json:"status"`
	SourceType       string     `db:"source_type" json:"source_type"`
	SourceIdentifier string     `db:"source_identifier" json:"source_identifier"`
	ErrorMessage     *string    `db:"error_message" json:"error_message,omitempty"`
	RecordsProcessed int        `db:"records_processed" json:"records_processed"`
	StartedAt        time.Time  `db:"started_at" json:"started_at"`
	CompletedAt      *time.Time `db:"completed_at" json:"completed_at,omitempty"`
	ApifyRunID       *string    `db:"apify_run_id" json:"apify_run_id,omitempty"`
	ApifyDatasetID   *string    `db:"apify_dataset_id" json:"apify_dataset_id,omitempty"`
	ResourcePool     *string    `db:"resource_pool" json:"resource_pool,omitempty"`
}

// LogCompletion transitions a started log row. Empty strings leave the column untouched.
type LogCompletion struct {
	Status           LogStatus
	RecordsProcessed int
	ErrorMessage     string
	RunID            string
	DatasetID        string
}
