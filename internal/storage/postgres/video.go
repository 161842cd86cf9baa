package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"youtube_ingest/internal/domain"
)

const videoColumns = `id, video_id, url, title, description, channel_id, channel_name, channel_url,
	duration, duration_seconds, view_count, like_count, comment_count, published_date_raw,
	published_date, thumbnail_url, category, is_live_content, is_monetized, comments_turned_off,
	location, playlist_id, playlist_name, tags, description_links, subtitles, transcript,
	transcript_text, transcript_language, transcript_ingested_at, source_list_id, from_yt_url,
	resource_pool, metadata_updated_at, created_at`

type VideoStore struct {
	db *sqlx.DB
}

func NewVideoStore(db *sqlx.DB) *VideoStore {
	return &VideoStore{db: db}
}

// Upsert writes video metadata keyed by video_id and reports whether the row is new. The
// transcript columns are never part of the update, so a metadata refresh keeps them.
func (s *VideoStore) Upsert(ctx context.Context, v *domain.Video) (bool, error) {
	query := `
		INSERT INTO dataset_youtube_video (
			video_id, url, title, description, channel_id, channel_name, channel_url,
			duration, duration_seconds, view_count, like_count, comment_count,
			published_date_raw, published_date, thumbnail_url, category, is_live_content,
			is_monetized, comments_turned_off, location, playlist_id, playlist_name, tags,
			description_links, subtitles, source_list_id, from_yt_url, resource_pool
		) VALUES (
			:video_id, :url, :title, :description, :channel_id, :channel_name, :channel_url,
			:duration, :duration_seconds, :view_count, :like_count, :comment_count,
			:published_date_raw, :published_date, :thumbnail_url, :category, :is_live_content,
			:is_monetized, :comments_turned_off, :location, :playlist_id, :playlist_name, :tags,
			:description_links, :subtitles, :source_list_id, :from_yt_url, :resource_pool
		)
		ON CONFLICT (video_id) DO UPDATE SET
			url = EXCLUDED.url,
			title = EXCLUDED.title,
			description = EXCLUDED.description,
			channel_id = EXCLUDED.channel_id,
			channel_name = EXCLUDED.channel_name,
			channel_url = EXCLUDED.channel_url,
			duration = EXCLUDED.duration,
			duration_seconds = EXCLUDED.duration_seconds,
			view_count = EXCLUDED.view_count,
			like_count = EXCLUDED.like_count,
			comment_count = EXCLUDED.comment_count,
			published_date_raw = EXCLUDED.published_date_raw,
			published_date = EXCLUDED.published_date,
			thumbnail_url = EXCLUDED.thumbnail_url,
			category = EXCLUDED.category,
			is_live_content = EXCLUDED.is_live_content,
			is_monetized = EXCLUDED.is_monetized,
			comments_turned_off = EXCLUDED.comments_turned_off,
			location = EXCLUDED.location,
			playlist_id = EXCLUDED.playlist_id,
			playlist_name = EXCLUDED.playlist_name,
			tags = EXCLUDED.tags,
			description_links = EXCLUDED.description_links,
			subtitles = EXCLUDED.subtitles,
			source_list_id = COALESCE(EXCLUDED.source_list_id, dataset_youtube_video.source_list_id),
			from_yt_url = EXCLUDED.from_yt_url,
			resource_pool = COALESCE(EXCLUDED.resource_pool, dataset_youtube_video.resource_pool),
			metadata_updated_at = NOW()
		RETURNING (xmax = 0) AS inserted`

	if v.Tags == nil {
		v.Tags = pq.StringArray{}
	}

	rows, err := sqlx.NamedQueryContext(ctx, GetExecutor(ctx, s.db), query, v)
	if err != nil {
		return false, fmt.Errorf("upsert video %s: %w", v.VideoID, err)
	}
	defer rows.Close()

	var inserted bool
	if rows.Next() {
		if err := rows.Scan(&inserted); err != nil {
			return false, fmt.Errorf("scan upsert result: %w", err)
		}
	}
	return inserted, rows.Err()
}

func (s *VideoStore) Get(ctx context.Context, videoID string) (*domain.Video, error) {
	var v domain.Video
	err := sqlx.GetContext(ctx, GetExecutor(ctx, s.db), &v,
		`SELECT `+videoColumns+` FROM dataset_youtube_video WHERE video_id = $1`, videoID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrVideoNotFound
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// ExistingIDs returns which of ids already have a row.
func (s *VideoStore) ExistingIDs(ctx context.Context, ids []string) (map[string]struct{}, error) {
	return s.idSet(ctx, `SELECT video_id FROM dataset_youtube_video WHERE video_id = ANY($1)`, ids)
}

// WithTranscript returns which of ids have a non-empty transcript stored.
func (s *VideoStore) WithTranscript(ctx context.Context, ids []string) (map[string]struct{}, error) {
	return s.idSet(ctx, `
		SELECT video_id FROM dataset_youtube_video
		WHERE video_id = ANY($1) AND transcript_text IS NOT NULL AND transcript_text <> ''`, ids)
}

func (s *VideoStore) idSet(ctx context.Context, query string, ids []string) (map[string]struct{}, error) {
	result := make(map[string]struct{})
	if len(ids) == 0 {
		return result, nil
	}

	var found []string
	if err := sqlx.SelectContext(ctx, GetExecutor(ctx, s.db), &found, query, pq.Array(ids)); err != nil {
		return nil, err
	}
	for _, id := range found {
		result[id] = struct{}{}
	}
	return result, nil
}

// TranscriptState reports none for unknown videos as well as never-checked ones.
func (s *VideoStore) TranscriptState(ctx context.Context, videoID string) (domain.TranscriptState, error) {
	var text *string
	err := sqlx.GetContext(ctx, GetExecutor(ctx, s.db), &text,
		`SELECT transcript_text FROM dataset_youtube_video WHERE video_id = $1`, videoID)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.TranscriptNone, nil
	}
	if err != nil {
		return domain.TranscriptNone, err
	}
	return domain.TranscriptStateOf(text), nil
}

// MarkTranscriptUnavailable records that a transcript was looked for and not found.
func (s *VideoStore) MarkTranscriptUnavailable(ctx context.Context, videoID string) error {
	res, err := GetExecutor(ctx, s.db).ExecContext(ctx, `
		UPDATE dataset_youtube_video
		SET transcript_text = '', transcript_ingested_at = NOW()
		WHERE video_id = $1`, videoID)
	if err != nil {
		return fmt.Errorf("mark transcript unavailable: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrVideoNotFound
	}
	return nil
}

// StoreTranscript writes the transcript columns and returns the full row.
func (s *VideoStore) StoreTranscript(ctx context.Context, videoID string, upd domain.TranscriptUpdate) (*domain.Video, error) {
	query := `
		UPDATE dataset_youtube_video SET
			transcript = $2,
			transcript_text = $3,
			transcript_language = $4,
			transcript_ingested_at = $5
		WHERE video_id = $1
		RETURNING ` + videoColumns

	var v domain.Video
	err := sqlx.GetContext(ctx, GetExecutor(ctx, s.db), &v, query,
		videoID, upd.Segments, upd.Text, upd.Language, upd.IngestedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrVideoNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("store transcript: %w", err)
	}
	return &v, nil
}

// PendingTranscripts lists videos never checked for a transcript, oldest first. sourceID 0 means
// any source.
func (s *VideoStore) PendingTranscripts(ctx context.Context, limit int, sourceID int64) ([]string, error) {
	query := `
		SELECT video_id FROM dataset_youtube_video
		WHERE transcript_text IS NULL
		  AND ($2::bigint = 0 OR source_list_id = $2::bigint)
		ORDER BY created_at, id
		LIMIT $1`

	var ids []string
	err := sqlx.SelectContext(ctx, GetExecutor(ctx, s.db), &ids, query, limit, sourceID)
	return ids, err
}

// TranscriptStatistics summarizes transcript coverage. sourceID 0 means all sources.
func (s *VideoStore) TranscriptStatistics(ctx context.Context, sourceID int64) (*domain.TranscriptStatistics, error) {
	exec := GetExecutor(ctx, s.db)

	var stats domain.TranscriptStatistics
	err := sqlx.GetContext(ctx, exec, &stats, `
		SELECT
			COUNT(*) AS total_videos,
			COUNT(*) FILTER (WHERE transcript_text <> '') AS with_transcript,
			COUNT(*) FILTER (WHERE transcript_text = '') AS unavailable,
			COUNT(*) FILTER (WHERE transcript_text IS NULL) AS unprocessed,
			COUNT(*) FILTER (WHERE transcript_ingested_at >= date_trunc('day', NOW())) AS ingested_today,
			COALESCE(AVG(LENGTH(transcript_text)) FILTER (WHERE transcript_text <> ''), 0)::float8 AS average_length
		FROM dataset_youtube_video
		WHERE ($1::bigint = 0 OR source_list_id = $1::bigint)`, sourceID)
	if err != nil {
		return nil, fmt.Errorf("transcript counts: %w", err)
	}

	rows, err := exec.QueryxContext(ctx, `
		SELECT transcript_language, COUNT(*)
		FROM dataset_youtube_video
		WHERE transcript_text <> '' AND transcript_language IS NOT NULL
		  AND ($1::bigint = 0 OR source_list_id = $1::bigint)
		GROUP BY transcript_language`, sourceID)
	if err != nil {
		return nil, fmt.Errorf("language distribution: %w", err)
	}
	defer rows.Close()

	stats.LanguageDistribution = make(map[string]int64)
	for rows.Next() {
		var lang string
		var count int64
		if err := rows.Scan(&lang, &count); err != nil {
			return nil, err
		}
		stats.LanguageDistribution[lang] = count
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	stats.ComputeRates()
	return &stats, nil
}
