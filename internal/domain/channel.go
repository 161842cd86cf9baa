package domain

import "time"

type Channel struct {
	ID                 int64     `db:"id"`
	ChannelID          string    `db:"channel_id"`
	Name               string    `db:"name"`
	URL                string    `db:"url"`
	Description        string    `db:"description"`
	Location           string    `db:"location"`
	JoinedDate         string    `db:"joined_date"`
	SubscriberCountRaw string    `db:"subscriber_count_raw"`
	SubscriberCount    int64     `db:"subscriber_count"`
	TotalViewsRaw      string    `db:"total_views_raw"`
	TotalViews         int64     `db:"total_views"`
	TotalVideos        int64     `db:"total_videos"`
	IsMonetized        bool      `db:"is_monetized"`
	DescriptionLinks   Links     `db:"description_links"`
	ResourcePool       *string   `db:"resource_pool"`
	CreatedAt          time.Time `db:"created_at"`
	UpdatedAt          time.Time `db:"updated_at"`
}
