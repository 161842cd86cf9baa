// Package processor turns raw scraper records into rows: video and channel metadata, transcripts,
// and the transcript quality gate. Everything here is pure.
package processor

import (
	"bytes"
	"encoding/json"
	"regexp"
	"strings"
	"time"

	"youtube_ingest/internal/domain"
)

var videoIDPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:youtube\.com/watch\?(?:[^#]*&)?v=|youtu\.be/|youtube\.com/embed/|youtube\.com/shorts/)([a-zA-Z0-9_-]{11})`),
	regexp.MustCompile(`youtube\.com/v/([a-zA-Z0-9_-]{11})`),
	regexp.MustCompile(`^([a-zA-Z0-9_-]{11})$`),
}

// ExtractVideoID returns the 11 character video ID from a watch, short, embed or bare ID string.
func ExtractVideoID(s string) (string, bool) {
	s = strings.TrimSpace(s)
	for _, re := range videoIDPatterns {
		if m := re.FindStringSubmatch(s); m != nil {
			return m[1], true
		}
	}
	return "", false
}

// FlexString accepts a JSON string, number or boolean. The scraper reports counters and dates in
// whichever form the page rendered them.
type FlexString string

func (f *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*f = ""
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexString(s)
	default:
		*f = FlexString(data)
	}
	return nil
}

func (f FlexString) String() string { return string(f) }

// RawVideo is one item of the channel/playlist scraper dataset. Channel level fields repeat on
// every item.
type RawVideo struct {
	ID                string          `json:"id"`
	URL               string          `json:"url"`
	Title             string          `json:"title"`
	Text              string          `json:"text"`
	ChannelID         string          `json:"channelId"`
	ChannelName       string          `json:"channelName"`
	ChannelURL        string          `json:"channelUrl"`
	PlaylistID        string          `json:"playlistId"`
	PlaylistName      string          `json:"playlistName"`
	Duration          FlexString      `json:"duration"`
	ViewCount         FlexString      `json:"viewCount"`
	Likes             FlexString      `json:"likes"`
	CommentsCount     FlexString      `json:"commentsCount"`
	Date              FlexString      `json:"date"`
	ThumbnailURL      string          `json:"thumbnailUrl"`
	Category          string          `json:"category"`
	Hashtags          []string        `json:"hashtags"`
	IsLiveContent     bool            `json:"isLiveContent"`
	IsMonetized       bool            `json:"isMonetized"`
	CommentsTurnedOff bool            `json:"commentsTurnedOff"`
	Location          string          `json:"location"`
	DescriptionLinks  json.RawMessage `json:"descriptionLinks"`
	Subtitles         json.RawMessage `json:"subtitles"`
	SourceURL         string          `json:"sourceUrl"`

	NumberOfSubscribers     FlexString      `json:"numberOfSubscribers"`
	ChannelTotalViews       FlexString      `json:"channelTotalViews"`
	ChannelTotalVideos      FlexString      `json:"channelTotalVideos"`
	ChannelDescription      string          `json:"channelDescription"`
	ChannelDescriptionLinks json.RawMessage `json:"channelDescriptionLinks"`
	ChannelJoinedDate       string          `json:"channelJoinedDate"`
	ChannelLocation         string          `json:"channelLocation"`
}

// DecodeRawVideo decodes one dataset item.
func DecodeRawVideo(item json.RawMessage) (RawVideo, error) {
	var raw RawVideo
	err := json.Unmarshal(item, &raw)
	return raw, err
}

// VideoID resolves the ID from the URL, falling back to the id field.
func (r RawVideo) VideoID() (string, bool) {
	if id, ok := ExtractVideoID(r.URL); ok {
		return id, true
	}
	return ExtractVideoID(r.ID)
}

// ParseVideo maps a raw item to a video row. It returns false when no video ID can be found.
// Transcript columns are left empty; they are owned by the transcript pipeline.
func ParseVideo(raw RawVideo, now time.Time) (*domain.Video, bool) {
	id, ok := raw.VideoID()
	if !ok {
		return nil, false
	}

	duration, seconds := ParseDuration(raw.Duration.String())
	dateRaw, published := ParseDate(strings.TrimSpace(raw.Date.String()), now)
	description := strings.TrimSpace(raw.Text)

	url := strings.TrimSpace(raw.URL)
	if url == "" {
		url = "https://www.youtube.com/watch?v=" + id
	}

	tags := mergeTags(raw.Hashtags, ExtractTags(description))

	links := decodeLinks(raw.DescriptionLinks)
	if links == nil {
		links = ExtractLinks(description)
	}

	v := &domain.Video{
		VideoID:           id,
		URL:               url,
		Title:             strings.TrimSpace(raw.Title),
		Description:       description,
		ChannelID:         raw.ChannelID,
		ChannelName:       strings.TrimSpace(raw.ChannelName),
		ChannelURL:        raw.ChannelURL,
		Duration:          duration,
		DurationSeconds:   seconds,
		ViewCount:         ParseCount(raw.ViewCount.String()),
		LikeCount:         ParseCount(raw.Likes.String()),
		CommentCount:      ParseCount(raw.CommentsCount.String()),
		PublishedDateRaw:  dateRaw,
		PublishedDate:     published,
		ThumbnailURL:      raw.ThumbnailURL,
		Category:          raw.Category,
		IsLiveContent:     raw.IsLiveContent,
		IsMonetized:       raw.IsMonetized,
		CommentsTurnedOff: raw.CommentsTurnedOff,
		Location:          raw.Location,
		PlaylistID:        raw.PlaylistID,
		PlaylistName:      raw.PlaylistName,
		Tags:              tags,
		DescriptionLinks:  links,
		FromURL:           raw.SourceURL,
	}
	if sub := bytes.TrimSpace(raw.Subtitles); len(sub) > 0 && !bytes.Equal(sub, []byte("null")) {
		v.Subtitles = domain.JSONB(sub)
	}

	return v, true
}

// ParseChannel maps the channel fields repeated on a raw item. It returns false when the item
// carries no channel ID.
func ParseChannel(raw RawVideo) (*domain.Channel, bool) {
	if raw.ChannelID == "" {
		return nil, false
	}

	description := strings.TrimSpace(raw.ChannelDescription)
	links := decodeLinks(raw.ChannelDescriptionLinks)
	if links == nil {
		links = ExtractLinks(description)
	}

	return &domain.Channel{
		ChannelID:          raw.ChannelID,
		Name:               strings.TrimSpace(raw.ChannelName),
		URL:                raw.ChannelURL,
		Description:        description,
		Location:           raw.ChannelLocation,
		JoinedDate:         raw.ChannelJoinedDate,
		SubscriberCountRaw: raw.NumberOfSubscribers.String(),
		SubscriberCount:    ParseCount(raw.NumberOfSubscribers.String()),
		TotalViewsRaw:      raw.ChannelTotalViews.String(),
		TotalViews:         ParseCount(raw.ChannelTotalViews.String()),
		TotalVideos:        ParseCount(raw.ChannelTotalVideos.String()),
		IsMonetized:        raw.IsMonetized,
		DescriptionLinks:   links,
	}, true
}

// decodeLinks reads the scraper's [{url, text}] link lists. Anything else yields nil.
func decodeLinks(data json.RawMessage) domain.Links {
	if len(data) == 0 {
		return nil
	}

	var items []struct {
		URL  string `json:"url"`
		Text string `json:"text"`
	}
	if err := json.Unmarshal(data, &items); err != nil || len(items) == 0 {
		return nil
	}

	links := make(domain.Links, 0, len(items))
	for _, it := range items {
		if it.URL == "" {
			continue
		}
		links = append(links, domain.Link{URL: it.URL, Context: it.Text})
	}
	return links
}

func mergeTags(lists ...[]string) []string {
	var tags []string
	seen := make(map[string]struct{})
	for _, list := range lists {
		for _, t := range list {
			t = strings.TrimPrefix(strings.TrimSpace(t), "#")
			if t == "" {
				continue
			}
			if _, ok := seen[t]; ok {
				continue
			}
			seen[t] = struct{}{}
			tags = append(tags, t)
		}
	}
	return tags
}
