package apify

import "time"

type RunStatus string

const (
	StatusReady     RunStatus = "READY"
	StatusRunning   RunStatus = "RUNNING"
	StatusSucceeded RunStatus = "SUCCEEDED"
	StatusFailed    RunStatus = "FAILED"
	StatusAborting  RunStatus = "ABORTING"
	StatusAborted   RunStatus = "ABORTED"
	StatusTimingOut RunStatus = "TIMING-OUT"
	StatusTimedOut  RunStatus = "TIMED-OUT"
)

func (s RunStatus) IsTerminal() bool {
	switch s {
	case StatusSucceeded, StatusFailed, StatusAborted, StatusTimedOut:
		return true
	}
	return false
}

// Run is the subset of the actor run object the client reads.
type Run struct {
	ID               string     `json:"id"`
	ActID            string     `json:"actId"`
	Status           RunStatus  `json:"status"`
	DefaultDatasetID string     `json:"defaultDatasetId"`
	StartedAt        *time.Time `json:"startedAt"`
	FinishedAt       *time.Time `json:"finishedAt"`
}

type runEnvelope struct {
	Data Run `json:"data"`
}

type StartURL struct {
	URL string `json:"url"`
}

type ProxyConfiguration struct {
	UseApifyProxy    bool     `json:"useApifyProxy"`
	ApifyProxyGroups []string `json:"apifyProxyGroups,omitempty"`
}

// ListInput configures the channel/playlist scraper actor.
type ListInput struct {
	StartURLs                []StartURL          `json:"startUrls"`
	MaxResults               int                 `json:"maxResults"`
	ResultsPerPage           int                 `json:"resultsPerPage"`
	HandleRequestTimeoutSecs int                 `json:"handleRequestTimeoutSecs"`
	ProxyConfiguration       *ProxyConfiguration `json:"proxyConfiguration,omitempty"`
}

// TranscriptInput configures the transcript actor.
type TranscriptInput struct {
	VideoURL string `json:"videoUrl"`
}
