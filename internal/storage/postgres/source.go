package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"youtube_ingest/internal/domain"
)

const sourceColumns = `id, source_type, source_url, source_name, is_active, sync_frequency_hours,
	last_sync_at, resource_pool, created_at, updated_at`

type SourceStore struct {
	db *sqlx.DB
}

func NewSourceStore(db *sqlx.DB) *SourceStore {
	return &SourceStore{db: db}
}

func (s *SourceStore) Create(ctx context.Context, src *domain.Source) (*domain.Source, error) {
	query := `
		INSERT INTO ctrl_youtube_lists (
			source_type, source_url, source_name, is_active, sync_frequency_hours, resource_pool
		) VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + sourceColumns

	var created domain.Source
	err := sqlx.GetContext(ctx, GetExecutor(ctx, s.db), &created, query,
		src.SourceType,
		src.SourceURL,
		src.SourceName,
		src.IsActive,
		src.SyncFrequencyHours,
		src.ResourcePool,
	)
	if err != nil {
		return nil, fmt.Errorf("insert source: %w", err)
	}
	return &created, nil
}

func (s *SourceStore) GetByID(ctx context.Context, id int64) (*domain.Source, error) {
	return s.getOne(ctx, `SELECT `+sourceColumns+` FROM ctrl_youtube_lists WHERE id = $1`, id)
}

func (s *SourceStore) GetByURL(ctx context.Context, sourceURL string) (*domain.Source, error) {
	return s.getOne(ctx, `SELECT `+sourceColumns+` FROM ctrl_youtube_lists WHERE source_url = $1`, sourceURL)
}

func (s *SourceStore) getOne(ctx context.Context, query string, arg any) (*domain.Source, error) {
	var src domain.Source
	err := sqlx.GetContext(ctx, GetExecutor(ctx, s.db), &src, query, arg)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrSourceNotFound
	}
	if err != nil {
		return nil, err
	}
	return &src, nil
}

func (s *SourceStore) List(ctx context.Context, activeOnly bool) ([]domain.Source, error) {
	query := `SELECT ` + sourceColumns + ` FROM ctrl_youtube_lists`
	if activeOnly {
		query += ` WHERE is_active`
	}
	query += ` ORDER BY id`

	var sources []domain.Source
	err := sqlx.SelectContext(ctx, GetExecutor(ctx, s.db), &sources, query)
	return sources, err
}

// DueForSync returns active sources that were never synced or whose interval has elapsed at now,
// never-synced ones first.
func (s *SourceStore) DueForSync(ctx context.Context, now time.Time) ([]domain.Source, error) {
	query := `
		SELECT ` + sourceColumns + `
		FROM ctrl_youtube_lists
		WHERE is_active
		  AND (last_sync_at IS NULL
		       OR last_sync_at + make_interval(hours => sync_frequency_hours) <= $1)
		ORDER BY last_sync_at ASC NULLS FIRST, id`

	var sources []domain.Source
	err := sqlx.SelectContext(ctx, GetExecutor(ctx, s.db), &sources, query, now)
	return sources, err
}

func (s *SourceStore) Update(ctx context.Context, id int64, upd domain.SourceUpdate) (*domain.Source, error) {
	query := `
		UPDATE ctrl_youtube_lists SET
			source_name = COALESCE($2, source_name),
			sync_frequency_hours = COALESCE($3, sync_frequency_hours),
			is_active = COALESCE($4, is_active),
			updated_at = NOW()
		WHERE id = $1
		RETURNING ` + sourceColumns

	var src domain.Source
	err := sqlx.GetContext(ctx, GetExecutor(ctx, s.db), &src, query, id, upd.Name, upd.SyncFrequencyHours, upd.IsActive)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrSourceNotFound
	}
	if err != nil {
		return nil, err
	}
	return &src, nil
}

// Deactivate soft-deletes a source. Its videos stay in place.
func (s *SourceStore) Deactivate(ctx context.Context, id int64) error {
	return s.execOne(ctx,
		`UPDATE ctrl_youtube_lists SET is_active = FALSE, updated_at = NOW() WHERE id = $1`,
		id,
	)
}

func (s *SourceStore) MarkSynced(ctx context.Context, id int64, at time.Time) error {
	return s.execOne(ctx,
		`UPDATE ctrl_youtube_lists SET last_sync_at = $2, updated_at = NOW() WHERE id = $1`,
		id, at,
	)
}

func (s *SourceStore) execOne(ctx context.Context, query string, args ...any) error {
	res, err := GetExecutor(ctx, s.db).ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrSourceNotFound
	}
	return nil
}
