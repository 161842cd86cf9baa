package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"youtube_ingest/internal/domain"
	"youtube_ingest/internal/youtubeurl"
)

const (
	minSyncHours = 1
	maxSyncHours = 168
)

// SourceService manages the registry of monitored channels and playlists.
type SourceService struct {
	sources      SourceStore
	txManager    TransactionManager
	defaultHours int
	logger       *slog.Logger
}

func NewSourceService(sources SourceStore, txManager TransactionManager, logger *slog.Logger, defaultHours int) *SourceService {
	return &SourceService{
		sources:      sources,
		txManager:    txManager,
		defaultHours: defaultHours,
		logger:       logger.With("component", "sources"),
	}
}

// Register adds a source under its canonical URL. syncHours 0 uses the default; an empty name is
// derived from the URL.
func (s *SourceService) Register(ctx context.Context, rawURL, name string, syncHours int, resourcePool string) (*domain.Source, error) {
	parsed, ok := youtubeurl.Parse(rawURL)
	if !ok {
		return nil, fmt.Errorf("%w: %q is not a channel or playlist url", domain.ErrInvalidSource, rawURL)
	}

	if syncHours == 0 {
		syncHours = s.defaultHours
	}
	if err := validateSyncHours(syncHours); err != nil {
		return nil, err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		name = youtubeurl.DisplayName(parsed)
	}

	var created *domain.Source
	err := s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		_, err := s.sources.GetByURL(txCtx, parsed.Canonical)
		if err == nil {
			return fmt.Errorf("%w: %s", domain.ErrSourceExists, parsed.Canonical)
		}
		if !errors.Is(err, domain.ErrSourceNotFound) {
			return fmt.Errorf("lookup source: %w", err)
		}

		created, err = s.sources.Create(txCtx, &domain.Source{
			SourceType:         parsed.Kind,
			SourceURL:          parsed.Canonical,
			SourceName:         name,
			IsActive:           true,
			SyncFrequencyHours: syncHours,
			ResourcePool:       optional(resourcePool),
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("source registered",
		"source_id", created.ID,
		"type", created.SourceType,
		"url", created.SourceURL,
		"sync_hours", created.SyncFrequencyHours,
	)

	return created, nil
}

func (s *SourceService) List(ctx context.Context, activeOnly bool) ([]domain.Source, error) {
	return s.sources.List(ctx, activeOnly)
}

func (s *SourceService) Update(ctx context.Context, id int64, upd domain.SourceUpdate) (*domain.Source, error) {
	if upd.IsEmpty() {
		return nil, fmt.Errorf("%w: nothing to update", domain.ErrInvalidSource)
	}
	if upd.SyncFrequencyHours != nil {
		if err := validateSyncHours(*upd.SyncFrequencyHours); err != nil {
			return nil, err
		}
	}
	if upd.Name != nil {
		name := strings.TrimSpace(*upd.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: name must not be empty", domain.ErrInvalidSource)
		}
		upd.Name = &name
	}

	src, err := s.sources.Update(ctx, id, upd)
	if err != nil {
		return nil, err
	}

	s.logger.Info("source updated", "source_id", id)
	return src, nil
}

// Deactivate stops syncing a source. Its videos are kept.
func (s *SourceService) Deactivate(ctx context.Context, id int64) error {
	if err := s.sources.Deactivate(ctx, id); err != nil {
		return err
	}
	s.logger.Info("source deactivated", "source_id", id)
	return nil
}

func validateSyncHours(h int) error {
	if h < minSyncHours || h > maxSyncHours {
		return fmt.Errorf("%w: sync frequency must be between %d and %d hours, got %d",
			domain.ErrInvalidSource, minSyncHours, maxSyncHours, h)
	}
	return nil
}
