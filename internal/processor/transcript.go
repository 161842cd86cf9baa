package processor

import (
	"bytes"
	"encoding/json"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"youtube_ingest/internal/domain"
)

// Keys the transcript scraper has used for the segment list, in lookup order.
var segmentKeys = []string{"transcript", "transcriptSegments", "captions", "data"}

var (
	bracketRe = regexp.MustCompile(`\[.*?\]`)
	parenRe   = regexp.MustCompile(`\(.*?\)`)
	speakerRe = regexp.MustCompile(`^[A-Z\s]+:`)
)

var stopwords = []struct {
	lang  string
	words []string
}{
	{"en", []string{"the", "and", "is", "in", "to", "of", "a", "that", "it", "with"}},
	{"es", []string{"el", "la", "de", "que", "y", "en", "un", "es", "se", "no"}},
	{"fr", []string{"le", "de", "et", "à", "un", "il", "être", "en", "avoir"}},
}

const (
	LanguageUnknown       = "unknown"
	minStopwordsForDetect = 2
)

type RawSegment struct {
	Start    float64
	Duration float64
	Text     string
}

// RawTranscript is a transcript payload reduced to the fields the pipeline understands.
type RawTranscript struct {
	Segments []RawSegment
	Language string
}

// DecodeTranscript normalizes the payload shapes the transcript scraper produces. Shapes it does
// not recognize decode to an empty transcript.
func DecodeTranscript(payload json.RawMessage) RawTranscript {
	payload = bytes.TrimSpace(payload)

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(payload, &fields); err != nil {
		var list []json.RawMessage
		if err := json.Unmarshal(payload, &list); err == nil {
			return RawTranscript{Segments: decodeSegments(list)}
		}
		return RawTranscript{}
	}

	var raw RawTranscript
	for _, key := range segmentKeys {
		var list []json.RawMessage
		if err := json.Unmarshal(fields[key], &list); err != nil || len(list) == 0 {
			continue
		}
		raw.Segments = decodeSegments(list)
		break
	}

	for _, key := range []string{"language", "lang"} {
		var lang string
		if err := json.Unmarshal(fields[key], &lang); err == nil && strings.TrimSpace(lang) != "" {
			raw.Language = lang
			break
		}
	}

	return raw
}

func decodeSegments(items []json.RawMessage) []RawSegment {
	segments := make([]RawSegment, 0, len(items))
	for _, item := range items {
		var text string
		if err := json.Unmarshal(item, &text); err == nil {
			segments = append(segments, RawSegment{Text: text})
			continue
		}

		var obj map[string]json.RawMessage
		if err := json.Unmarshal(item, &obj); err != nil {
			continue
		}

		seg := RawSegment{
			Start:    parseTimestamp(firstPresent(obj, "start", "startTime")),
			Duration: parseTimestamp(firstPresent(obj, "dur", "duration")),
		}
		_ = json.Unmarshal(obj["text"], &seg.Text)
		segments = append(segments, seg)
	}
	return segments
}

func firstPresent(obj map[string]json.RawMessage, keys ...string) json.RawMessage {
	for _, k := range keys {
		if v, ok := obj[k]; ok {
			return v
		}
	}
	return nil
}

// parseTimestamp reads seconds given as a number, a numeric string, "MM:SS" or "HH:MM:SS".
func parseTimestamp(raw json.RawMessage) float64 {
	if len(raw) == 0 {
		return 0
	}

	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		return n
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return 0
	}
	s = strings.TrimSpace(s)

	if !strings.Contains(s, ":") {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0
		}
		return v
	}

	parts := strings.Split(s, ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0
	}
	var total float64
	for _, p := range parts {
		v, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return 0
		}
		total = total*60 + v
	}
	return total
}

// Transcript is a cleaned, scored transcript ready to store.
type Transcript struct {
	Segments      domain.Segments
	Text          string
	Language      string
	QualityScore  float64
	SegmentCount  int
	TotalDuration float64
	WordCount     int
}

func ProcessTranscript(raw RawTranscript) *Transcript {
	t := &Transcript{}
	parts := make([]string, 0, len(raw.Segments))

	for _, seg := range raw.Segments {
		text := CleanText(seg.Text)
		if text == "" {
			continue
		}
		t.Segments = append(t.Segments, domain.TranscriptSegment{
			Start:    seg.Start,
			Duration: seg.Duration,
			Text:     text,
		})
		t.TotalDuration += seg.Duration
		parts = append(parts, text)
	}

	t.Text = strings.TrimSpace(strings.Join(parts, " "))
	t.SegmentCount = len(t.Segments)
	t.WordCount = len(strings.Fields(t.Text))
	t.Language = DetectLanguage(raw.Language, t.Text)
	t.QualityScore = QualityScore(t.Segments, t.Text)

	return t
}

// CleanText drops bracketed annotations, parenthetical asides and a leading upper case speaker
// label, and collapses whitespace.
func CleanText(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	s = bracketRe.ReplaceAllString(s, "")
	s = parenRe.ReplaceAllString(s, "")
	s = speakerRe.ReplaceAllString(s, "")
	return strings.Join(strings.Fields(s), " ")
}

// DetectLanguage prefers an explicit code from the payload and otherwise guesses from stopwords.
func DetectLanguage(explicit, text string) string {
	if explicit = strings.ToLower(strings.TrimSpace(explicit)); explicit != "" {
		if r := []rune(explicit); len(r) > 2 {
			return string(r[:2])
		}
		return explicit
	}

	if text == "" {
		return LanguageUnknown
	}

	words := make(map[string]struct{})
	for _, w := range strings.FieldsFunc(strings.ToLower(text), func(r rune) bool { return !unicode.IsLetter(r) }) {
		words[w] = struct{}{}
	}

	best, bestCount := LanguageUnknown, 0
	for _, sw := range stopwords {
		count := 0
		for _, w := range sw.words {
			if _, ok := words[w]; ok {
				count++
			}
		}
		if count > bestCount {
			best, bestCount = sw.lang, count
		}
	}

	if bestCount < minStopwordsForDetect {
		return LanguageUnknown
	}
	return best
}
