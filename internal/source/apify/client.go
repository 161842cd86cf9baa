// Package apify runs scraper actors on the Apify platform: submit a run, poll it to a terminal
// state and read its default dataset.
package apify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"youtube_ingest/internal/domain"
)

const (
	DefaultBaseURL           = "https://api.apify.com/v2"
	DefaultListActorID       = "streamers~youtube-scraper"
	DefaultTranscriptActorID = "pintostudio~youtube-transcript-scraper"
	DefaultPollInterval      = 10 * time.Second
	DefaultBaseDelay         = time.Second

	datasetItemLimit = 10000
	maxErrorBody     = 4096
)

type Config struct {
	BaseURL           string
	Token             string
	ListActorID       string
	TranscriptActorID string
	Timeout           time.Duration
	PollInterval      time.Duration
	MaxAttempts       int
	// TranscriptAttempts overrides MaxAttempts for transcript runs when positive.
	TranscriptAttempts int
	BaseDelay          time.Duration
	RequestsPerSecond  float64

	MaxResults         int
	ResultsPerPage     int
	RequestTimeoutSecs int
	ProxyEnabled       bool
	ProxyGroup         string
}

// StatusError is returned for any non-2xx response. Body holds the start of the response body.
type StatusError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: unexpected status %d: %s", e.Method, e.Path, e.StatusCode, e.Body)
}

type Client struct {
	httpClient         *http.Client
	baseURL            string
	token              string
	listActorID        string
	transcriptActorID  string
	pollInterval       time.Duration
	maxAttempts        int
	transcriptAttempts int
	baseDelay          time.Duration
	limiter            *rate.Limiter
	cfg                Config
	logger             *slog.Logger
}

func New(cfg Config, logger *slog.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.ListActorID == "" {
		cfg.ListActorID = DefaultListActorID
	}
	if cfg.TranscriptActorID == "" {
		cfg.TranscriptActorID = DefaultTranscriptActorID
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = DefaultPollInterval
	}
	if cfg.BaseDelay <= 0 {
		cfg.BaseDelay = DefaultBaseDelay
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 1
	}
	if cfg.TranscriptAttempts <= 0 {
		cfg.TranscriptAttempts = cfg.MaxAttempts
	}

	limit := rate.Inf
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL:            strings.TrimRight(cfg.BaseURL, "/"),
		token:              cfg.Token,
		listActorID:        cfg.ListActorID,
		transcriptActorID:  cfg.TranscriptActorID,
		pollInterval:       cfg.PollInterval,
		maxAttempts:        cfg.MaxAttempts,
		transcriptAttempts: cfg.TranscriptAttempts,
		baseDelay:          cfg.BaseDelay,
		limiter:            rate.NewLimiter(limit, 1),
		cfg:                cfg,
		logger:             logger.With("component", "apify"),
	}
}

// ScrapeList runs the channel/playlist scraper for sourceURL. maxResults <= 0 uses the configured
// default.
func (c *Client) ScrapeList(ctx context.Context, sourceURL string, maxResults int) (*domain.JobResult, error) {
	if maxResults <= 0 {
		maxResults = c.cfg.MaxResults
	}

	input := ListInput{
		StartURLs:                []StartURL{{URL: sourceURL}},
		MaxResults:               maxResults,
		ResultsPerPage:           c.cfg.ResultsPerPage,
		HandleRequestTimeoutSecs: c.cfg.RequestTimeoutSecs,
	}
	if c.cfg.ProxyEnabled {
		input.ProxyConfiguration = &ProxyConfiguration{UseApifyProxy: true}
		if c.cfg.ProxyGroup != "" {
			input.ProxyConfiguration.ApifyProxyGroups = []string{c.cfg.ProxyGroup}
		}
	}

	return c.RunActor(ctx, c.listActorID, input, c.maxAttempts)
}

// FetchTranscript runs the transcript actor for one video and returns the first dataset item, or
// nil when the run produced nothing.
func (c *Client) FetchTranscript(ctx context.Context, videoURL string) (json.RawMessage, error) {
	res, err := c.RunActor(ctx, c.transcriptActorID, TranscriptInput{VideoURL: videoURL}, c.transcriptAttempts)
	if err != nil {
		return nil, err
	}
	if len(res.Items) == 0 {
		return nil, nil
	}
	return res.Items[0], nil
}

// RunActor submits a run, waits for it and reads its dataset, retrying the whole sequence with
// exponential backoff. A run that ends in any state other than SUCCEEDED counts as a failed
// attempt; once attempts are exhausted the error wraps domain.ErrJobUnsuccessful.
func (c *Client) RunActor(ctx context.Context, actorID string, input any, attempts int) (*domain.JobResult, error) {
	if attempts <= 0 {
		attempts = 1
	}

	var res *domain.JobResult
	var err error

	for attempt := 0; attempt < attempts; attempt++ {
		res, err = c.runOnce(ctx, actorID, input)
		if err == nil {
			return res, nil
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		if attempt == attempts-1 {
			break
		}

		backoff := c.calculateBackoff(attempt)
		c.logger.Warn("actor run failed, retrying",
			"actor", actorID,
			"attempt", attempt+1,
			"backoff", backoff,
			"error", err,
		)

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
	}

	return nil, fmt.Errorf("actor %s after %d attempts: %w", actorID, attempts, err)
}

func (c *Client) runOnce(ctx context.Context, actorID string, input any) (*domain.JobResult, error) {
	runID, err := c.Submit(ctx, actorID, input)
	if err != nil {
		return nil, fmt.Errorf("submit run: %w", err)
	}

	run, err := c.WaitForRun(ctx, runID)
	if err != nil {
		return nil, fmt.Errorf("wait for run %s: %w", runID, err)
	}
	if run.Status != StatusSucceeded {
		return nil, fmt.Errorf("run %s finished with status %s: %w", runID, run.Status, domain.ErrJobUnsuccessful)
	}

	items, err := c.FetchItems(ctx, run.DefaultDatasetID)
	if err != nil {
		return nil, fmt.Errorf("fetch dataset %s: %w", run.DefaultDatasetID, err)
	}

	c.logger.Debug("actor run finished",
		"actor", actorID,
		"run_id", runID,
		"dataset_id", run.DefaultDatasetID,
		"items", len(items),
	)

	return &domain.JobResult{
		RunID:     runID,
		DatasetID: run.DefaultDatasetID,
		Status:    string(run.Status),
		Items:     items,
	}, nil
}

// Submit starts an actor run and returns its ID.
func (c *Client) Submit(ctx context.Context, actorID string, input any) (string, error) {
	var env runEnvelope
	path := "/acts/" + url.PathEscape(actorID) + "/runs"
	if err := c.doRequest(ctx, http.MethodPost, path, nil, input, &env); err != nil {
		return "", err
	}
	if env.Data.ID == "" {
		return "", errors.New("run id missing from response")
	}
	return env.Data.ID, nil
}

func (c *Client) GetRun(ctx context.Context, runID string) (*Run, error) {
	var env runEnvelope
	if err := c.doRequest(ctx, http.MethodGet, "/actor-runs/"+url.PathEscape(runID), nil, nil, &env); err != nil {
		return nil, err
	}
	return &env.Data, nil
}

// WaitForRun polls until the run reaches a terminal state. It has no deadline of its own.
func (c *Client) WaitForRun(ctx context.Context, runID string) (*Run, error) {
	for {
		run, err := c.GetRun(ctx, runID)
		if err != nil {
			return nil, err
		}
		if run.Status.IsTerminal() {
			return run, nil
		}

		c.logger.Debug("waiting for run", "run_id", runID, "status", run.Status)

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(c.pollInterval):
		}
	}
}

func (c *Client) FetchItems(ctx context.Context, datasetID string) ([]json.RawMessage, error) {
	query := url.Values{}
	query.Set("format", "json")
	query.Set("limit", fmt.Sprint(datasetItemLimit))

	var items []json.RawMessage
	if err := c.doRequest(ctx, http.MethodGet, "/datasets/"+url.PathEscape(datasetID)+"/items", query, nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *Client) doRequest(ctx context.Context, method, path string, query url.Values, body, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit: %w", err)
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "YoutubeIngest/1.0")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if len(data) > maxErrorBody {
			data = data[:maxErrorBody]
		}
		return &StatusError{Method: method, Path: path, StatusCode: resp.StatusCode, Body: string(data)}
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// calculateBackoff returns BaseDelay * 2^attempt, attempt counted from zero.
func (c *Client) calculateBackoff(attempt int) time.Duration {
	return c.baseDelay << attempt
}
