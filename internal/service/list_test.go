package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"youtube_ingest/internal/domain"
	"youtube_ingest/internal/service/mocks"
)

const channelURL = "https://www.youtube.com/@gopher"

type ListServiceTestSuite struct {
	suite.Suite
	ctrl *gomock.Controller

	videos   *mocks.MockVideoStore
	channels *mocks.MockChannelStore
	logs     *mocks.MockIngestionLogStore
	scraper  *mocks.MockListScraper

	service *ListService
	now     time.Time
}

func (s *ListServiceTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())

	s.videos = mocks.NewMockVideoStore(s.ctrl)
	s.channels = mocks.NewMockChannelStore(s.ctrl)
	s.logs = mocks.NewMockIngestionLogStore(s.ctrl)
	s.scraper = mocks.NewMockListScraper(s.ctrl)

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	s.now = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	s.service = NewListService(s.videos, s.channels, s.logs, s.scraper, logger, 100, "pool-a")
	s.service.now = func() time.Time { return s.now }
}

func (s *ListServiceTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestListServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ListServiceTestSuite))
}

func item(id, title string) json.RawMessage {
	return json.RawMessage(fmt.Sprintf(`{
		"id": %q,
		"url": "https://www.youtube.com/watch?v=%s",
		"title": %q,
		"channelId": "UCgopher00000000000000",
		"channelName": "Gopher",
		"channelUrl": "https://www.youtube.com/@gopher",
		"numberOfSubscribers": "1.2K",
		"viewCount": 1500,
		"date": "2 days ago",
		"text": "Learn #golang today"
	}`, id, id, title))
}

func job(items ...json.RawMessage) *domain.JobResult {
	return &domain.JobResult{RunID: "run-1", DatasetID: "ds-1", Status: "SUCCEEDED", Items: items}
}

func (s *ListServiceTestSuite) TestIngestSource_NewAndExisting() {
	ctx := context.Background()
	src := &domain.Source{ID: 5, SourceType: domain.SourceTypeChannel, SourceURL: channelURL}

	s.logs.EXPECT().Start(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, entry *domain.IngestionLog) (int64, error) {
			s.Equal(domain.StageListIngestion, entry.StageName)
			s.Equal("channel", entry.SourceType)
			s.Equal(channelURL, entry.SourceIdentifier)
			s.Require().NotNil(entry.ResourcePool)
			s.Equal("pool-a", *entry.ResourcePool)
			return 11, nil
		},
	)
	s.scraper.EXPECT().ScrapeList(ctx, channelURL, 100).Return(job(
		item("aaaaaaaaaaa", "First"),
		item("bbbbbbbbbbb", "Second"),
		item("aaaaaaaaaaa", "First again"),
		json.RawMessage(`{"title": "no id here"}`),
	), nil)
	s.channels.EXPECT().Upsert(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, ch *domain.Channel) error {
			s.Equal("UCgopher00000000000000", ch.ChannelID)
			s.Equal(int64(1200), ch.SubscriberCount)
			return nil
		},
	)
	s.videos.EXPECT().ExistingIDs(ctx, []string{"aaaaaaaaaaa", "bbbbbbbbbbb"}).Return(map[string]struct{}{"aaaaaaaaaaa": {}}, nil)
	s.videos.EXPECT().Upsert(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, v *domain.Video) (bool, error) {
			s.Require().NotNil(v.SourceListID)
			s.Equal(int64(5), *v.SourceListID)
			s.Equal(channelURL, v.FromURL)
			s.Nil(v.TranscriptText)
			s.Require().NotNil(v.ResourcePool)
			s.Equal("pool-a", *v.ResourcePool)
			return v.VideoID == "bbbbbbbbbbb", nil
		},
	).Times(2)
	s.logs.EXPECT().Finish(gomock.Any(), int64(11), domain.LogCompletion{
		Status:           domain.LogCompleted,
		RecordsProcessed: 2,
		RunID:            "run-1",
		DatasetID:        "ds-1",
	}).Return(nil)

	res, err := s.service.IngestSource(ctx, src, domain.ListOptions{})

	s.Require().NoError(err)
	s.Equal(4, res.TotalRawItems)
	s.Equal(2, res.UniqueVideos)
	s.Equal(2, res.VideosProcessed)
	s.Equal([]string{"bbbbbbbbbbb"}, res.NewVideoIDs)
	s.True(res.ChannelUpdated)
	s.Equal("run-1", res.RunID)
}

func (s *ListServiceTestSuite) TestIngestURL_Invalid() {
	res, err := s.service.IngestURL(context.Background(), "https://example.com/nope", domain.ListOptions{})
	s.ErrorIs(err, domain.ErrInvalidSource)
	s.Nil(res)
}

func (s *ListServiceTestSuite) TestIngestURL_CanonicalizesAndLimits() {
	ctx := context.Background()

	s.logs.EXPECT().Start(ctx, gomock.Any()).Return(int64(1), nil)
	s.scraper.EXPECT().ScrapeList(ctx, "https://www.youtube.com/playlist?list=PL123", 10).Return(job(
		item("aaaaaaaaaaa", "One"),
		item("bbbbbbbbbbb", "Two"),
		item("ccccccccccc", "Three"),
	), nil)
	s.channels.EXPECT().Upsert(ctx, gomock.Any()).Return(nil)
	s.videos.EXPECT().ExistingIDs(ctx, []string{"aaaaaaaaaaa", "bbbbbbbbbbb"}).Return(map[string]struct{}{}, nil)
	s.videos.EXPECT().Upsert(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, v *domain.Video) (bool, error) {
			s.Nil(v.SourceListID)
			return true, nil
		},
	).Times(2)
	s.logs.EXPECT().Finish(gomock.Any(), int64(1), gomock.Any()).Return(nil)

	res, err := s.service.IngestURL(ctx, "youtube.com/playlist?list=PL123", domain.ListOptions{MaxResults: 10, Limit: 2})

	s.Require().NoError(err)
	s.Equal("https://www.youtube.com/playlist?list=PL123", res.SourceURL)
	s.Equal([]string{"aaaaaaaaaaa", "bbbbbbbbbbb"}, res.NewVideoIDs)
}

func (s *ListServiceTestSuite) TestIngest_ScrapeFailureMarksLogFailed() {
	ctx := context.Background()
	src := &domain.Source{ID: 1, SourceType: domain.SourceTypeChannel, SourceURL: channelURL}

	s.logs.EXPECT().Start(ctx, gomock.Any()).Return(int64(4), nil)
	s.scraper.EXPECT().ScrapeList(ctx, channelURL, 100).Return(nil, domain.ErrJobUnsuccessful)
	s.logs.EXPECT().Finish(gomock.Any(), int64(4), gomock.Any()).DoAndReturn(
		func(_ context.Context, _ int64, c domain.LogCompletion) error {
			s.Equal(domain.LogFailed, c.Status)
			s.Contains(c.ErrorMessage, "remote job did not succeed")
			return nil
		},
	)

	res, err := s.service.IngestSource(ctx, src, domain.ListOptions{})
	s.ErrorIs(err, domain.ErrJobUnsuccessful)
	s.Nil(res)
}

func (s *ListServiceTestSuite) TestIngest_CancelledRunStillClosesLog() {
	ctx, cancel := context.WithCancel(context.Background())
	src := &domain.Source{ID: 1, SourceType: domain.SourceTypeChannel, SourceURL: channelURL}

	s.logs.EXPECT().Start(ctx, gomock.Any()).Return(int64(6), nil)
	s.scraper.EXPECT().ScrapeList(ctx, channelURL, 100).DoAndReturn(
		func(ctx context.Context, _ string, _ int) (*domain.JobResult, error) {
			cancel()
			return nil, ctx.Err()
		},
	)
	s.logs.EXPECT().Finish(gomock.Any(), int64(6), gomock.Any()).DoAndReturn(
		func(ctx context.Context, _ int64, c domain.LogCompletion) error {
			s.NoError(ctx.Err())
			s.Equal(domain.LogFailed, c.Status)
			return nil
		},
	)

	_, err := s.service.IngestSource(ctx, src, domain.ListOptions{})
	s.ErrorIs(err, context.Canceled)
}

func (s *ListServiceTestSuite) TestIngest_PerVideoFailureContinues() {
	ctx := context.Background()
	src := &domain.Source{ID: 1, SourceType: domain.SourceTypeChannel, SourceURL: channelURL}

	s.logs.EXPECT().Start(ctx, gomock.Any()).Return(int64(0), errors.New("no log table"))
	s.scraper.EXPECT().ScrapeList(ctx, channelURL, 100).Return(job(
		item("aaaaaaaaaaa", "One"),
		item("bbbbbbbbbbb", "Two"),
	), nil)
	s.channels.EXPECT().Upsert(ctx, gomock.Any()).Return(errors.New("channel write failed"))
	s.videos.EXPECT().ExistingIDs(ctx, gomock.Any()).Return(map[string]struct{}{}, nil)
	s.videos.EXPECT().Upsert(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, v *domain.Video) (bool, error) {
			if v.VideoID == "aaaaaaaaaaa" {
				return false, errors.New("constraint violation")
			}
			return true, nil
		},
	).Times(2)

	res, err := s.service.IngestSource(ctx, src, domain.ListOptions{})

	s.Require().NoError(err)
	s.Equal(1, res.VideosProcessed)
	s.Equal(1, res.VideosFailed)
	s.False(res.ChannelUpdated)
	s.Equal([]string{"bbbbbbbbbbb"}, res.NewVideoIDs)
}

func (s *ListServiceTestSuite) TestIngest_ExistingLookupFailure() {
	ctx := context.Background()
	src := &domain.Source{ID: 1, SourceType: domain.SourceTypeChannel, SourceURL: channelURL}

	s.logs.EXPECT().Start(ctx, gomock.Any()).Return(int64(2), nil)
	s.scraper.EXPECT().ScrapeList(ctx, channelURL, 100).Return(job(item("aaaaaaaaaaa", "One")), nil)
	s.channels.EXPECT().Upsert(ctx, gomock.Any()).Return(nil)
	s.videos.EXPECT().ExistingIDs(ctx, gomock.Any()).Return(nil, errors.New("connection reset"))
	s.logs.EXPECT().Finish(gomock.Any(), int64(2), gomock.Any()).Return(nil)

	_, err := s.service.IngestSource(ctx, src, domain.ListOptions{})
	s.ErrorContains(err, "connection reset")
}

func (s *ListServiceTestSuite) TestIngest_EmptyListing() {
	ctx := context.Background()
	src := &domain.Source{ID: 1, SourceType: domain.SourceTypePlaylist, SourceURL: "https://www.youtube.com/playlist?list=PLx"}

	s.logs.EXPECT().Start(ctx, gomock.Any()).Return(int64(3), nil)
	s.scraper.EXPECT().ScrapeList(ctx, src.SourceURL, 100).Return(job(), nil)
	s.videos.EXPECT().ExistingIDs(ctx, []string{}).Return(map[string]struct{}{}, nil)
	s.logs.EXPECT().Finish(gomock.Any(), int64(3), gomock.Any()).Return(nil)

	res, err := s.service.IngestSource(ctx, src, domain.ListOptions{})

	s.Require().NoError(err)
	s.Equal(0, res.UniqueVideos)
	s.NotNil(res.NewVideoIDs)
	s.Empty(res.NewVideoIDs)
}

func (s *ListServiceTestSuite) TestPruneFailedLogs() {
	ctx := context.Background()

	s.logs.EXPECT().PruneFailed(ctx, s.now.Add(-24*time.Hour)).Return(int64(3), nil)

	n, err := s.service.PruneFailedLogs(ctx, 24*time.Hour)
	s.Require().NoError(err)
	s.Equal(int64(3), n)
}
