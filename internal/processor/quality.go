package processor

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"
	"unicode/utf8"

	"youtube_ingest/internal/domain"
)

var (
	ErrTooShort           = errors.New("transcript too short")
	ErrLowQuality         = errors.New("transcript quality below threshold")
	ErrLanguageNotAllowed = errors.New("transcript language not allowed")
	ErrNoSegments         = errors.New("transcript has no segments")
)

// QualityScore weighs timing coverage (0.3), length up to 100 words (0.4) and sentence shape (0.3).
func QualityScore(segments domain.Segments, text string) float64 {
	var score float64

	if len(segments) > 0 {
		timed := 0
		for _, s := range segments {
			if s.Start > 0 {
				timed++
			}
		}
		score += 0.3 * float64(timed) / float64(len(segments))
	}

	if text != "" {
		words := len(strings.Fields(text))
		score += 0.4 * math.Min(float64(words)/100, 1)

		sentences := 0
		for _, s := range strings.Split(text, ".") {
			if strings.TrimSpace(s) != "" {
				sentences++
			}
		}
		avg := float64(words) / float64(max(sentences, 1))
		if avg >= 5 && avg <= 25 {
			score += 0.3
		} else {
			score += 0.15
		}
	}

	if math.IsNaN(score) || math.IsInf(score, 0) {
		return 0
	}
	return math.Min(score, 1)
}

// QualityGate decides whether a processed transcript is good enough to store.
type QualityGate struct {
	MinLength int
	Threshold float64
	// Languages is the allow-list. Empty allows everything; "unknown" admits undetected languages.
	Languages []string
}

// Check returns the first rule the transcript breaks, or nil.
func (g QualityGate) Check(t *Transcript) error {
	if n := utf8.RuneCountInString(t.Text); n < g.MinLength {
		return fmt.Errorf("%w: %d < %d chars", ErrTooShort, n, g.MinLength)
	}
	if t.QualityScore < g.Threshold {
		return fmt.Errorf("%w: %.2f < %.2f", ErrLowQuality, t.QualityScore, g.Threshold)
	}
	if !g.languageAllowed(t.Language) {
		return fmt.Errorf("%w: %s", ErrLanguageNotAllowed, t.Language)
	}
	if t.SegmentCount == 0 {
		return ErrNoSegments
	}
	return nil
}

func (g QualityGate) Accepts(t *Transcript) bool {
	return g.Check(t) == nil
}

func (g QualityGate) languageAllowed(lang string) bool {
	if len(g.Languages) == 0 {
		return true
	}
	return slices.Contains(g.Languages, lang) || slices.Contains(g.Languages, LanguageUnknown)
}
