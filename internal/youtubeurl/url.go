// Package youtubeurl classifies YouTube channel and playlist URLs and rewrites them into a
// canonical form.
package youtubeurl

import (
	"regexp"
	"strings"

	"youtube_ingest/internal/domain"
)

const baseURL = "https://www.youtube.com"

// Form is the path style a channel reference was written in.
type Form string

const (
	FormChannelID Form = "channel"
	FormCustom    Form = "c"
	FormUser      Form = "user"
	FormHandle    Form = "@"
	FormPlaylist  Form = "playlist"
)

const hostPrefix = `(?i)^(?:https?://)?(?:www\.|m\.)?youtube\.com/`

var (
	channelPathRe = regexp.MustCompile(hostPrefix + `(channel|c|user)/([a-zA-Z0-9_-]+)`)
	handleRe      = regexp.MustCompile(hostPrefix + `@([a-zA-Z0-9_.-]+)`)
	playlistRe    = regexp.MustCompile(hostPrefix + `playlist\?(?:[^#]*&)?list=([a-zA-Z0-9_-]+)`)
	watchListRe   = regexp.MustCompile(hostPrefix + `watch\?(?:[^#]*&)?list=([a-zA-Z0-9_-]+)`)
)

// Parsed is a recognized channel or playlist reference.
type Parsed struct {
	Kind      domain.SourceType
	Form      Form
	ID        string
	Canonical string
}

// Parse returns false when raw is neither a channel nor a playlist URL.
func Parse(raw string) (Parsed, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Parsed{}, false
	}

	if m := channelPathRe.FindStringSubmatch(raw); m != nil {
		return channel(Form(strings.ToLower(m[1])), m[2]), true
	}
	if m := handleRe.FindStringSubmatch(raw); m != nil {
		return channel(FormHandle, m[1]), true
	}

	for _, re := range []*regexp.Regexp{playlistRe, watchListRe} {
		if m := re.FindStringSubmatch(raw); m != nil {
			return Parsed{
				Kind:      domain.SourceTypePlaylist,
				Form:      FormPlaylist,
				ID:        m[1],
				Canonical: baseURL + "/playlist?list=" + m[1],
			}, true
		}
	}

	return Parsed{}, false
}

func channel(form Form, id string) Parsed {
	p := Parsed{Kind: domain.SourceTypeChannel, ID: id}

	switch {
	case strings.HasPrefix(id, "UC"):
		p.Form = FormChannelID
		p.Canonical = baseURL + "/channel/" + id
	case form == FormCustom || form == FormUser:
		p.Form = form
		p.Canonical = baseURL + "/" + string(form) + "/" + id
	default:
		p.Form = FormHandle
		p.Canonical = baseURL + "/@" + id
	}

	return p
}

// Normalize returns the canonical URL, or false when raw is not recognized.
func Normalize(raw string) (string, bool) {
	p, ok := Parse(raw)
	if !ok {
		return "", false
	}
	return p.Canonical, true
}

// DisplayName derives a human readable name for a source with no explicit name.
func DisplayName(p Parsed) string {
	switch {
	case p.Kind == domain.SourceTypePlaylist:
		return "Playlist " + abbreviate(p.ID)
	case p.Form == FormHandle:
		return "@" + p.ID
	case p.Form == FormChannelID:
		return "Channel " + abbreviate(p.ID)
	default:
		return p.ID
	}
}

func abbreviate(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8] + "..."
}

// WatchURL builds the watch page URL for a video ID.
func WatchURL(videoID string) string {
	return baseURL + "/watch?v=" + videoID
}
