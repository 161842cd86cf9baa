package service

import (
	"context"
	"log/slog"

	"youtube_ingest/internal/domain"
)

// stageLog writes ingestion log rows. Both calls report failure instead of returning it so the
// caller can count it and carry on.
type stageLog struct {
	store  IngestionLogStore
	pool   *string
	logger *slog.Logger
}

// open returns 0 when no row could be written; close ignores id 0. close detaches from ctx
// cancellation so a run that timed out or was cancelled still records how it ended.
func (l stageLog) open(ctx context.Context, stage, sourceType, identifier string) (int64, bool) {
	if l.store == nil {
		return 0, true
	}

	id, err := l.store.Start(ctx, &domain.IngestionLog{
		StageName:        stage,
		SourceType:       sourceType,
		SourceIdentifier: identifier,
		ResourcePool:     l.pool,
	})
	if err != nil {
		l.logger.Warn("failed to open ingestion log", "stage", stage, "source", identifier, "error", err)
		return 0, false
	}
	return id, true
}

func (l stageLog) close(ctx context.Context, id int64, c domain.LogCompletion) bool {
	if l.store == nil || id == 0 {
		return true
	}

	if err := l.store.Finish(context.WithoutCancel(ctx), id, c); err != nil {
		l.logger.Warn("failed to close ingestion log", "log_id", id, "status", c.Status, "error", err)
		return false
	}
	return true
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
