package domain

import "encoding/json"

// JobResult is a finished remote scrape run and the items of its default dataset.
type JobResult struct {
	RunID     string
	DatasetID string
	Status    string
	Items     []json.RawMessage
}
