package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"youtube_ingest/internal/domain"
)

type ChannelStore struct {
	db *sqlx.DB
}

func NewChannelStore(db *sqlx.DB) *ChannelStore {
	return &ChannelStore{db: db}
}

// Upsert refreshes channel metadata keyed by channel_id.
func (s *ChannelStore) Upsert(ctx context.Context, ch *domain.Channel) error {
	query := `
		INSERT INTO dataset_youtube_channel (
			channel_id, name, url, description, location, joined_date,
			subscriber_count_raw, subscriber_count, total_views_raw, total_views,
			total_videos, is_monetized, description_links, resource_pool
		) VALUES (
			:channel_id, :name, :url, :description, :location, :joined_date,
			:subscriber_count_raw, :subscriber_count, :total_views_raw, :total_views,
			:total_videos, :is_monetized, :description_links, :resource_pool
		)
		ON CONFLICT (channel_id) DO UPDATE SET
			name = EXCLUDED.name,
			url = EXCLUDED.url,
			description = EXCLUDED.description,
			location = EXCLUDED.location,
			joined_date = EXCLUDED.joined_date,
			subscriber_count_raw = EXCLUDED.subscriber_count_raw,
			subscriber_count = EXCLUDED.subscriber_count,
			total_views_raw = EXCLUDED.total_views_raw,
			total_views = EXCLUDED.total_views,
			total_videos = EXCLUDED.total_videos,
			is_monetized = EXCLUDED.is_monetized,
			description_links = EXCLUDED.description_links,
			resource_pool = COALESCE(EXCLUDED.resource_pool, dataset_youtube_channel.resource_pool),
			updated_at = NOW()`

	if _, err := sqlx.NamedExecContext(ctx, GetExecutor(ctx, s.db), query, ch); err != nil {
		return fmt.Errorf("upsert channel %s: %w", ch.ChannelID, err)
	}
	return nil
}

func (s *ChannelStore) Get(ctx context.Context, channelID string) (*domain.Channel, error) {
	var ch domain.Channel
	err := sqlx.GetContext(ctx, GetExecutor(ctx, s.db), &ch, `
		SELECT id, channel_id, name, url, description, location, joined_date,
			subscriber_count_raw, subscriber_count, total_views_raw, total_views,
			total_videos, is_monetized, description_links, resource_pool, created_at, updated_at
		FROM dataset_youtube_channel WHERE channel_id = $1`, channelID)
	if err != nil {
		return nil, err
	}
	return &ch, nil
}
