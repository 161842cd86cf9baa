package domain

import "errors"

var (
	// ErrJobUnsuccessful is returned when a remote scrape job ends in a state other than SUCCEEDED.
	ErrJobUnsuccessful = errors.New("remote job did not succeed")

	ErrSourceNotFound = errors.New("source not found")
	ErrSourceExists   = errors.New("source already registered")
	ErrInvalidSource  = errors.New("invalid youtube source url")
	ErrVideoNotFound  = errors.New("video not found")
)
