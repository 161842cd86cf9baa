package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"youtube_ingest/internal/domain"
)

type IngestionLogStore struct {
	db *sqlx.DB
}

func NewIngestionLogStore(db *sqlx.DB) *IngestionLogStore {
	return &IngestionLogStore{db: db}
}

// Start inserts a log row in the started state and returns its id.
func (s *IngestionLogStore) Start(ctx context.Context, entry *domain.IngestionLog) (int64, error) {
	query := `
		INSERT INTO ctrl_ingestion_log (stage_name, status, source_type, source_identifier, resource_pool)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`

	var id int64
	err := sqlx.GetContext(ctx, GetExecutor(ctx, s.db), &id, query,
		entry.StageName,
		domain.LogStarted,
		entry.SourceType,
		entry.SourceIdentifier,
		entry.ResourcePool,
	)
	if err != nil {
		return 0, fmt.Errorf("insert ingestion log: %w", err)
	}
	return id, nil
}

// Finish moves a log row to its final state. completed_at is stamped for terminal statuses only.
func (s *IngestionLogStore) Finish(ctx context.Context, id int64, c domain.LogCompletion) error {
	query := `
		UPDATE ctrl_ingestion_log SET
			status = $2,
			records_processed = $3,
			error_message = COALESCE(NULLIF($4, ''), error_message),
			apify_run_id = COALESCE(NULLIF($5, ''), apify_run_id),
			apify_dataset_id = COALESCE(NULLIF($6, ''), apify_dataset_id),
			completed_at = CASE WHEN $2 IN ('completed', 'failed') THEN NOW() ELSE completed_at END
		WHERE id = $1`

	_, err := GetExecutor(ctx, s.db).ExecContext(ctx, query,
		id, c.Status, c.RecordsProcessed, c.ErrorMessage, c.RunID, c.DatasetID)
	if err != nil {
		return fmt.Errorf("update ingestion log %d: %w", id, err)
	}
	return nil
}

// PruneFailed deletes failed log rows started before olderThan.
func (s *IngestionLogStore) PruneFailed(ctx context.Context, olderThan time.Time) (int64, error) {
	res, err := GetExecutor(ctx, s.db).ExecContext(ctx,
		`DELETE FROM ctrl_ingestion_log WHERE status = 'failed' AND started_at < $1`, olderThan)
	if err != nil {
		return 0, fmt.Errorf("prune ingestion logs: %w", err)
	}
	return res.RowsAffected()
}

func (s *IngestionLogStore) Recent(ctx context.Context, limit int) ([]domain.IngestionLog, error) {
	var logs []domain.IngestionLog
	err := sqlx.SelectContext(ctx, GetExecutor(ctx, s.db), &logs, `
		SELECT id, stage_name, status, source_type, source_identifier, error_message,
			records_processed, started_at, completed_at, apify_run_id, apify_dataset_id, resource_pool
		FROM ctrl_ingestion_log
		ORDER BY started_at DESC, id DESC
		LIMIT $1`, limit)
	return logs, err
}
