package domain

import (
	"math"
	"time"
)

// OutcomeStatus is the terminal state of one video in a transcript run.
type OutcomeStatus string

const (
	OutcomeSuccess          OutcomeStatus = "success"
	OutcomeUnavailable      OutcomeStatus = "unavailable"
	OutcomeQualityRejected  OutcomeStatus = "quality_rejected"
	OutcomeAlreadyProcessed OutcomeStatus = "already_processed"
	OutcomeError            OutcomeStatus = "error"
)

type VideoOutcome struct {
	VideoID      string        `json:"video_id"`
	Status       OutcomeStatus `json:"status"`
	Error        string        `json:"error,omitempty"`
	Language     string        `json:"language,omitempty"`
	SegmentCount int           `json:"segment_count,omitempty"`
	TextLength   int           `json:"text_length,omitempty"`
	QualityScore float64       `json:"quality_score,omitempty"`
	// Published is nil when no publish was attempted.
	Published *bool `json:"published,omitempty"`
}

type VideoError struct {
	VideoID string `json:"video_id"`
	Message string `json:"message"`
}

type TranscriptStats struct {
	Total            int          `json:"total_videos"`
	Successful       int          `json:"successful"`
	Failed           int          `json:"failed"`
	Unavailable      int          `json:"unavailable"`
	QualityRejected  int          `json:"quality_rejected"`
	AlreadyProcessed int          `json:"already_processed"`
	Published        int          `json:"published"`
	PublishFailed    int          `json:"publish_failed"`
	LogWriteFailures int          `json:"log_write_failures"`
	Errors           []VideoError `json:"errors,omitempty"`
}

// Record folds one outcome into the totals. The error list is capped at maxErrors entries.
func (s *TranscriptStats) Record(o VideoOutcome, maxErrors int) {
	switch o.Status {
	case OutcomeSuccess:
		s.Successful++
	case OutcomeUnavailable:
		s.Unavailable++
	case OutcomeQualityRejected:
		s.QualityRejected++
	case OutcomeAlreadyProcessed:
		s.AlreadyProcessed++
	default:
		s.Failed++
		if len(s.Errors) < maxErrors {
			s.Errors = append(s.Errors, VideoError{VideoID: o.VideoID, Message: o.Error})
		}
	}

	if o.Published != nil {
		if *o.Published {
			s.Published++
		} else {
			s.PublishFailed++
		}
	}
}

type TranscriptRun struct {
	Stats       TranscriptStats `json:"stats"`
	Duration    time.Duration   `json:"duration"`
	SuccessRate float64         `json:"success_rate"`
	LogID       int64           `json:"log_id,omitempty"`
}

// SuccessRate is successful/total as a percentage rounded to two decimals.
func SuccessRate(successful, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(successful)/float64(total)*10000) / 100
}

// TranscriptStatistics summarizes transcript coverage across stored videos.
type TranscriptStatistics struct {
	TotalVideos          int64            `json:"total_videos" db:"total_videos"`
	WithTranscript       int64            `json:"with_transcript" db:"with_transcript"`
	Unavailable          int64            `json:"unavailable" db:"unavailable"`
	Unprocessed          int64            `json:"unprocessed" db:"unprocessed"`
	IngestedToday        int64            `json:"ingested_today" db:"ingested_today"`
	AverageLength        float64          `json:"average_length" db:"average_length"`
	CoverageRate         float64          `json:"coverage_rate" db:"-"`
	AvailabilityRate     float64          `json:"availability_rate" db:"-"`
	LanguageDistribution map[string]int64 `json:"language_distribution" db:"-"`
}

// ComputeRates fills the derived percentages from the raw counts.
func (t *TranscriptStatistics) ComputeRates() {
	t.CoverageRate = SuccessRate(int(t.WithTranscript), int(t.TotalVideos))
	t.AvailabilityRate = SuccessRate(int(t.WithTranscript), int(t.WithTranscript+t.Unavailable))
}
