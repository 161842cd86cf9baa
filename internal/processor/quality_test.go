package processor

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"youtube_ingest/internal/domain"
)

func TestQualityScore(t *testing.T) {
	segs := domain.Segments{{Start: 0, Text: "a"}, {Start: 1.5, Text: "b"}}
	text := "one two three four five six. seven eight nine ten"
	// half timed (0.15) + 10 words (0.04) + 5 words per sentence (0.3)
	assert.InDelta(t, 0.49, QualityScore(segs, text), 1e-9)

	// run-on text: one sentence of 120 words
	long := strings.Repeat("word ", 120)
	assert.InDelta(t, 0.3+0.4+0.15, QualityScore(domain.Segments{{Start: 1}}, long), 1e-9)

	assert.Zero(t, QualityScore(nil, ""))
}

func TestQualityScore_CappedAtOne(t *testing.T) {
	var segs domain.Segments
	var sb strings.Builder
	for i := 1; i <= 20; i++ {
		segs = append(segs, domain.TranscriptSegment{Start: float64(i), Text: "x"})
		sb.WriteString("the quick brown fox jumps over the lazy dog. ")
	}
	assert.LessOrEqual(t, QualityScore(segs, sb.String()), 1.0)
	assert.InDelta(t, 1.0, QualityScore(segs, sb.String()), 1e-9)
}

func passing() *Transcript {
	return &Transcript{
		Segments:     domain.Segments{{Start: 1, Text: "x"}},
		Text:         strings.Repeat("a", 60),
		Language:     "en",
		QualityScore: 0.9,
		SegmentCount: 1,
	}
}

func TestQualityGate(t *testing.T) {
	gate := QualityGate{MinLength: 50, Threshold: 0.7, Languages: []string{"en"}}

	assert.True(t, gate.Accepts(passing()))

	short := passing()
	short.Text = strings.Repeat("a", 40)
	short.QualityScore = 1
	assert.ErrorIs(t, gate.Check(short), ErrTooShort)

	low := passing()
	low.QualityScore = 0.69
	assert.ErrorIs(t, gate.Check(low), ErrLowQuality)

	german := passing()
	german.Language = "de"
	assert.ErrorIs(t, gate.Check(german), ErrLanguageNotAllowed)

	noSegments := passing()
	noSegments.Segments = nil
	noSegments.SegmentCount = 0
	assert.ErrorIs(t, gate.Check(noSegments), ErrNoSegments)
}

func TestQualityGate_LanguageAllowList(t *testing.T) {
	tr := passing()
	tr.Language = "de"

	assert.True(t, QualityGate{Languages: []string{"en", "unknown"}}.Accepts(tr))
	assert.True(t, QualityGate{}.Accepts(tr))
	assert.False(t, QualityGate{Languages: []string{"en", "es"}}.Accepts(tr))
}

func TestQualityGate_ZeroSegmentsAlwaysRejected(t *testing.T) {
	tr := &Transcript{Text: "", Language: "unknown"}
	assert.False(t, QualityGate{}.Accepts(tr))
	assert.ErrorIs(t, QualityGate{}.Check(tr), ErrNoSegments)
}
