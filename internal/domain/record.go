package domain

import "time"

const RecordTypeVideoComplete = "youtube_video_complete"

// VideoRecord is the denormalized event emitted once a video has its transcript stored.
type VideoRecord struct {
	RecordType           string              `json:"record_type"`
	VideoID              string              `json:"video_id"`
	URL                  string              `json:"url"`
	Title                string              `json:"title"`
	Description          string              `json:"description"`
	ChannelID            string              `json:"channel_id"`
	ChannelName          string              `json:"channel_name"`
	ChannelURL           string              `json:"channel_url"`
	Duration             string              `json:"duration"`
	DurationSeconds      int                 `json:"duration_seconds"`
	ViewCount            int64               `json:"view_count"`
	LikeCount            int64               `json:"like_count"`
	CommentCount         int64               `json:"comment_count"`
	PublishedDateRaw     string              `json:"published_date_raw"`
	PublishedDate        *string             `json:"published_date"`
	ThumbnailURL         string              `json:"thumbnail_url"`
	Category             string              `json:"category"`
	IsLiveContent        bool                `json:"is_live_content"`
	IsMonetized          bool                `json:"is_monetized"`
	CommentsTurnedOff    bool                `json:"comments_turned_off"`
	Location             string              `json:"location"`
	PlaylistID           string              `json:"playlist_id"`
	PlaylistName         string              `json:"playlist_name"`
	Tags                 []string            `json:"tags"`
	DescriptionLinks     []Link              `json:"description_links"`
	Subtitles            JSONB               `json:"subtitles"`
	Transcript           []TranscriptSegment `json:"transcript"`
	TranscriptText       string              `json:"transcript_text"`
	TranscriptLanguage   string              `json:"transcript_language"`
	TranscriptIngestedAt *time.Time          `json:"transcript_ingested_at"`
	SourceListID         *int64              `json:"source_list_id"`
	FromURL              string              `json:"from_yt_url"`
	ResourcePool         *string             `json:"resource_pool"`
	HasTranscript        bool                `json:"has_transcript"`
	ProcessingStage      string              `json:"processing_stage"`
	PipelineCompletedAt  time.Time           `json:"pipeline_completed_at"`
}

func NewVideoRecord(v *Video, completedAt time.Time) VideoRecord {
	rec := VideoRecord{
		RecordType:           RecordTypeVideoComplete,
		VideoID:              v.VideoID,
		URL:                  v.URL,
		Title:                v.Title,
		Description:          v.Description,
		ChannelID:            v.ChannelID,
		ChannelName:          v.ChannelName,
		ChannelURL:           v.ChannelURL,
		Duration:             v.Duration,
		DurationSeconds:      v.DurationSeconds,
		ViewCount:            v.ViewCount,
		LikeCount:            v.LikeCount,
		CommentCount:         v.CommentCount,
		PublishedDateRaw:     v.PublishedDateRaw,
		ThumbnailURL:         v.ThumbnailURL,
		Category:             v.Category,
		IsLiveContent:        v.IsLiveContent,
		IsMonetized:          v.IsMonetized,
		CommentsTurnedOff:    v.CommentsTurnedOff,
		Location:             v.Location,
		PlaylistID:           v.PlaylistID,
		PlaylistName:         v.PlaylistName,
		Tags:                 v.Tags,
		DescriptionLinks:     v.DescriptionLinks,
		Subtitles:            v.Subtitles,
		Transcript:           v.Transcript,
		TranscriptIngestedAt: v.TranscriptIngestedAt,
		SourceListID:         v.SourceListID,
		FromURL:              v.FromURL,
		ResourcePool:         v.ResourcePool,
		HasTranscript:        v.TranscriptState() == TranscriptPresent,
		ProcessingStage:      "complete",
		PipelineCompletedAt:  completedAt.UTC(),
	}
	if v.PublishedDate != nil {
		d := v.PublishedDate.Format("2006-01-02")
		rec.PublishedDate = &d
	}
	if v.TranscriptText != nil {
		rec.TranscriptText = *v.TranscriptText
	}
	if v.TranscriptLanguage != nil {
		rec.TranscriptLanguage = *v.TranscriptLanguage
	}
	return rec
}
