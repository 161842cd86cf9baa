package processor

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"youtube_ingest/internal/domain"
)

var (
	durationNoiseRe = regexp.MustCompile(`[^\d:]`)
	relativeDateRe  = regexp.MustCompile(`(\d+)\s*(year|month|week|day|hour|minute)s?\s*ago`)
	isoDateRe       = regexp.MustCompile(`(\d{4})-(\d{1,2})-(\d{1,2})`)
	slashDateRe     = regexp.MustCompile(`(\d{1,2})/(\d{1,2})/(\d{4})`)
	dashDateRe      = regexp.MustCompile(`(\d{1,2})-(\d{1,2})-(\d{4})`)
	hashtagRe       = regexp.MustCompile(`#([\p{L}\p{N}_]+)`)
	linkRe          = regexp.MustCompile("https?://[^\\s<>\"{}|\\\\^`\\[\\]]+")
)

const linkContextChars = 50

// ParseCount turns "1,234", "1.2M" or "15k" into an integer. Anything it can't read is zero.
func ParseCount(s string) int64 {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "", "none", "n/a", "null":
		return 0
	}

	s = strings.NewReplacer(",", "", " ", "").Replace(s)
	if s == "" {
		return 0
	}

	multiplier := 1.0
	switch s[len(s)-1] {
	case 'k', 'K':
		multiplier = 1e3
	case 'm', 'M':
		multiplier = 1e6
	case 'b', 'B':
		multiplier = 1e9
	}
	if multiplier != 1 {
		s = s[:len(s)-1]
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}

	// Nudge past float representation error so 1.2M lands on 1200000.
	return int64(v*multiplier + 1e-6)
}

// ParseDuration normalizes "MM:SS" or "HH:MM:SS" to a zero padded form and returns the length in
// seconds. Unreadable input comes back unchanged with zero seconds.
func ParseDuration(s string) (string, int) {
	if s == "" {
		return "", 0
	}

	parts := strings.Split(durationNoiseRe.ReplaceAllString(s, ""), ":")
	nums := make([]int, len(parts))
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return s, 0
		}
		nums[i] = n
	}

	switch len(nums) {
	case 2:
		return fmt.Sprintf("%02d:%02d", nums[0], nums[1]), nums[0]*60 + nums[1]
	case 3:
		return fmt.Sprintf("%02d:%02d:%02d", nums[0], nums[1], nums[2]), nums[0]*3600 + nums[1]*60 + nums[2]
	default:
		return s, 0
	}
}

// ParseDate reads "3 days ago" style relative dates and a few absolute layouts. The raw string is
// always returned so it can be stored next to the parsed value.
func ParseDate(raw string, now time.Time) (string, *time.Time) {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" {
		return raw, nil
	}

	if m := relativeDateRe.FindStringSubmatch(s); m != nil {
		n, err := strconv.Atoi(m[1])
		if err != nil {
			return raw, nil
		}
		d := relativeDate(now, n, m[2])
		return raw, &d
	}

	if m := isoDateRe.FindStringSubmatch(s); m != nil {
		if d, ok := calendarDate(m[1], m[2], m[3]); ok {
			return raw, &d
		}
	}
	for _, re := range []*regexp.Regexp{slashDateRe, dashDateRe} {
		if m := re.FindStringSubmatch(s); m != nil {
			if d, ok := calendarDate(m[3], m[1], m[2]); ok {
				return raw, &d
			}
		}
	}

	return raw, nil
}

func relativeDate(now time.Time, n int, unit string) time.Time {
	now = now.UTC()
	y, mo, d := now.Date()

	var t time.Time
	switch unit {
	case "year":
		t = time.Date(y-n, mo, d, 0, 0, 0, 0, time.UTC)
		if t.Month() != mo {
			t = time.Date(y-n, mo, 28, 0, 0, 0, 0, time.UTC)
		}
		return t
	case "month":
		months := int(mo) - 1 - n
		year := y + months/12
		months %= 12
		if months < 0 {
			months += 12
			year--
		}
		return time.Date(year, time.Month(months+1), min(d, 28), 0, 0, 0, 0, time.UTC)
	case "week":
		t = now.AddDate(0, 0, -7*n)
	case "day":
		t = now.AddDate(0, 0, -n)
	case "hour":
		t = now.Add(-time.Duration(n) * time.Hour)
	default:
		t = now.Add(-time.Duration(n) * time.Minute)
	}
	return truncateDay(t)
}

func calendarDate(year, month, day string) (time.Time, bool) {
	y, err1 := strconv.Atoi(year)
	m, err2 := strconv.Atoi(month)
	d, err3 := strconv.Atoi(day)
	if err1 != nil || err2 != nil || err3 != nil {
		return time.Time{}, false
	}

	t := time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
	if t.Year() != y || int(t.Month()) != m || t.Day() != d {
		return time.Time{}, false
	}
	return t, true
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ExtractTags returns the distinct hashtags in text, in order of first appearance.
func ExtractTags(text string) []string {
	var tags []string
	seen := make(map[string]struct{})
	for _, m := range hashtagRe.FindAllStringSubmatch(text, -1) {
		if _, ok := seen[m[1]]; ok {
			continue
		}
		seen[m[1]] = struct{}{}
		tags = append(tags, m[1])
	}
	return tags
}

// ExtractLinks finds URLs in text, each with up to 50 characters of surrounding text.
func ExtractLinks(text string) []domain.Link {
	var links []domain.Link
	for _, loc := range linkRe.FindAllStringIndex(text, -1) {
		start := runeBoundary(text, max(0, loc[0]-linkContextChars))
		end := runeBoundary(text, min(len(text), loc[1]+linkContextChars))
		links = append(links, domain.Link{
			URL:     text[loc[0]:loc[1]],
			Context: strings.TrimSpace(text[start:end]),
		})
	}
	return links
}

func runeBoundary(s string, i int) int {
	for i > 0 && i < len(s) && !utf8.RuneStart(s[i]) {
		i--
	}
	return i
}
