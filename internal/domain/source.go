package domain

import (
	"fmt"
	"time"
)

type SourceType string

const (
	SourceTypeChannel  SourceType = "channel"
	SourceTypePlaylist SourceType = "playlist"
)

// Source is a monitored channel or playlist.
type Source struct {
	ID                 int64      `db:"id" json:"id"`
	SourceType         SourceType `db:"source_type" json:"source_type"`
	SourceURL          string     `db:"source_url" json:"source_url"`
	SourceName         string     `db:"source_name" json:"source_name"`
	IsActive           bool       `db:"is_active" json:"is_active"`
	SyncFrequencyHours int        `db:"sync_frequency_hours" json:"sync_frequency_hours"`
	LastSyncAt         *time.Time `db:"last_sync_at" json:"last_sync_at,omitempty"`
	ResourcePool       *string    `db:"resource_pool" json:"resource_pool,omitempty"`
	CreatedAt          time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt          time.Time  `db:"updated_at" json:"updated_at"`
}

// NextSyncAt returns the zero time for sources that were never synced.
func (s *Source) NextSyncAt() time.Time {
	if s.LastSyncAt == nil {
		return time.Time{}
	}
	return s.LastSyncAt.Add(time.Duration(s.SyncFrequencyHours) * time.Hour)
}

func (s *Source) IsDue(now time.Time) bool {
	if !s.IsActive {
		return false
	}
	return s.LastSyncAt == nil || !s.NextSyncAt().After(now)
}

func (s *Source) EligibilityReason(now time.Time) string {
	if s.LastSyncAt == nil {
		return "Never synced before"
	}
	if overdue := now.Sub(s.NextSyncAt()); overdue > 0 {
		return fmt.Sprintf("Overdue by %.1f hours", overdue.Hours())
	}
	return "Due for sync"
}

// SourceUpdate carries optional changes; nil fields are left untouched.
type SourceUpdate struct {
	Name               *string
	SyncFrequencyHours *int
	IsActive           *bool
}

func (u SourceUpdate) IsEmpty() bool {
	return u.Name == nil && u.SyncFrequencyHours == nil && u.IsActive == nil
}
