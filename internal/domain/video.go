package domain

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/lib/pq"
)

type Video struct {
	ID                   int64          `db:"id"`
	VideoID              string         `db:"video_id"`
	URL                  string         `db:"url"`
	Title                string         `db:"title"`
	Description          string         `db:"description"`
	ChannelID            string         `db:"channel_id"`
	ChannelName          string         `db:"channel_name"`
	ChannelURL           string         `db:"channel_url"`
	Duration             string         `db:"duration"`
	DurationSeconds      int            `db:"duration_seconds"`
	ViewCount            int64          `db:"view_count"`
	LikeCount            int64          `db:"like_count"`
	CommentCount         int64          `db:"comment_count"`
	PublishedDateRaw     string         `db:"published_date_raw"`
	PublishedDate        *time.Time     `db:"published_date"`
	ThumbnailURL         string         `db:"thumbnail_url"`
	Category             string         `db:"category"`
	IsLiveContent        bool           `db:"is_live_content"`
	IsMonetized          bool           `db:"is_monetized"`
	CommentsTurnedOff    bool           `db:"comments_turned_off"`
	Location             string         `db:"location"`
	PlaylistID           string         `db:"playlist_id"`
	PlaylistName         string         `db:"playlist_name"`
	Tags                 pq.StringArray `db:"tags"`
	DescriptionLinks     Links          `db:"description_links"`
	Subtitles            JSONB          `db:"subtitles"`
	Transcript           Segments       `db:"transcript"`
	TranscriptText       *string        `db:"transcript_text"`
	TranscriptLanguage   *string        `db:"transcript_language"`
	TranscriptIngestedAt *time.Time     `db:"transcript_ingested_at"`
	SourceListID         *int64         `db:"source_list_id"`
	FromURL              string         `db:"from_yt_url"`
	ResourcePool         *string        `db:"resource_pool"`
	MetadataUpdatedAt    time.Time      `db:"metadata_updated_at"`
	CreatedAt            time.Time      `db:"created_at"`
}

// TranscriptState distinguishes a transcript that was never checked (NULL) from one that was
// checked and found unavailable ("") and one that is present.
type TranscriptState int

const (
	TranscriptNone TranscriptState = iota
	TranscriptEmpty
	TranscriptPresent
)

func (s TranscriptState) String() string {
	switch s {
	case TranscriptEmpty:
		return "empty"
	case TranscriptPresent:
		return "present"
	default:
		return "none"
	}
}

func TranscriptStateOf(text *string) TranscriptState {
	switch {
	case text == nil:
		return TranscriptNone
	case *text == "":
		return TranscriptEmpty
	default:
		return TranscriptPresent
	}
}

func (v *Video) TranscriptState() TranscriptState {
	return TranscriptStateOf(v.TranscriptText)
}

type TranscriptSegment struct {
	Start    float64 `json:"start"`
	Duration float64 `json:"duration"`
	Text     string  `json:"text"`
}

// Segments is stored as a jsonb array.
type Segments []TranscriptSegment

func (s Segments) Value() (driver.Value, error) {
	if s == nil {
		return nil, nil
	}
	return json.Marshal([]TranscriptSegment(s))
}

func (s *Segments) Scan(src any) error {
	*s = nil
	return scanJSON(src, (*[]TranscriptSegment)(s))
}

// Link is a URL found in free text together with the text around it.
type Link struct {
	URL     string `json:"url"`
	Context string `json:"context"`
}

type Links []Link

func (l Links) Value() (driver.Value, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]Link(l))
}

func (l *Links) Scan(src any) error {
	*l = nil
	return scanJSON(src, (*[]Link)(l))
}

// TranscriptUpdate is what gets written when a transcript passes processing.
type TranscriptUpdate struct {
	Segments   Segments
	Text       string
	Language   string
	IngestedAt time.Time
}
