package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"youtube_ingest/internal/config"
	"youtube_ingest/internal/domain"
	"youtube_ingest/internal/service/mocks"
	"youtube_ingest/internal/source/apify"
	"youtube_ingest/internal/youtubeurl"
	"youtube_ingest/testdata/utils"
)

const validTranscript = `{"language": "en", "transcript": [
	{"start": 1, "duration": 4, "text": "Welcome back to the channel and thanks for watching today."},
	{"start": 5, "duration": 4, "text": "In this video we look at how the scheduler works."},
	{"start": 9, "duration": 4, "text": "It is simpler than it looks and worth a closer look."},
	{"start": 13, "duration": 4, "text": "Let me know in the comments what you want to see next."}
]}`

const rawTopic = "raw.youtube.records"

type TranscriptServiceTestSuite struct {
	suite.Suite
	ctrl *gomock.Controller

	videos    *mocks.MockVideoStore
	logs      *mocks.MockIngestionLogStore
	fetcher   *mocks.MockTranscriptFetcher
	publisher *mocks.MockPublisher

	service *TranscriptService
	cfg     config.TranscriptConfig
	logger  *slog.Logger
	now     time.Time
}

func (s *TranscriptServiceTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())

	s.videos = mocks.NewMockVideoStore(s.ctrl)
	s.logs = mocks.NewMockIngestionLogStore(s.ctrl)
	s.fetcher = mocks.NewMockTranscriptFetcher(s.ctrl)
	s.publisher = mocks.NewMockPublisher(s.ctrl)

	s.cfg = config.TranscriptConfig{
		BatchSize:         20,
		Concurrency:       3,
		LanguageFilter:    "en",
		MaxRecordedErrors: 10,
	}
	s.logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	s.now = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	s.service = s.newService(s.cfg)
}

func (s *TranscriptServiceTestSuite) newService(cfg config.TranscriptConfig) *TranscriptService {
	svc := NewTranscriptService(s.videos, s.logs, s.fetcher, s.publisher, s.logger, cfg, rawTopic, "")
	svc.now = func() time.Time { return s.now }
	return svc
}

func (s *TranscriptServiceTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestTranscriptServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TranscriptServiceTestSuite))
}

func (s *TranscriptServiceTestSuite) expectLog(id int64) {
	s.logs.EXPECT().Start(gomock.Any(), gomock.Any()).Return(id, nil)
	s.logs.EXPECT().Finish(gomock.Any(), id, gomock.Any()).Return(nil)
}

func storedVideo(id string) *domain.Video {
	text := "stored"
	return &domain.Video{VideoID: id, URL: youtubeurl.WatchURL(id), TranscriptText: &text}
}

func (s *TranscriptServiceTestSuite) expectSuccess(id string) {
	s.videos.EXPECT().TranscriptState(gomock.Any(), id).Return(domain.TranscriptNone, nil)
	s.fetcher.EXPECT().FetchTranscript(gomock.Any(), youtubeurl.WatchURL(id)).Return(json.RawMessage(validTranscript), nil)
	s.videos.EXPECT().StoreTranscript(gomock.Any(), id, gomock.Any()).Return(storedVideo(id), nil)
	s.publisher.EXPECT().Publish(gomock.Any(), rawTopic, gomock.Any(), id).Return(true)
}

func (s *TranscriptServiceTestSuite) TestIngestVideo_Success() {
	ctx := context.Background()
	id := "dQw4w9WgXcQ"

	s.videos.EXPECT().TranscriptState(ctx, id).Return(domain.TranscriptNone, nil)
	s.fetcher.EXPECT().FetchTranscript(ctx, "https://www.youtube.com/watch?v=dQw4w9WgXcQ").Return(json.RawMessage(validTranscript), nil)
	s.videos.EXPECT().StoreTranscript(ctx, id, gomock.Any()).DoAndReturn(
		func(_ context.Context, _ string, upd domain.TranscriptUpdate) (*domain.Video, error) {
			s.Len(upd.Segments, 4)
			s.Equal("en", upd.Language)
			s.Equal(s.now, upd.IngestedAt)
			s.Contains(upd.Text, "Welcome back to the channel")
			return storedVideo(id), nil
		},
	)
	s.publisher.EXPECT().Publish(ctx, rawTopic, gomock.Any(), id).DoAndReturn(
		func(_ context.Context, _ string, payload any, _ string) bool {
			rec, ok := payload.(domain.VideoRecord)
			s.Require().True(ok)
			s.Equal(domain.RecordTypeVideoComplete, rec.RecordType)
			s.Equal(id, rec.VideoID)
			s.True(rec.HasTranscript)
			return true
		},
	)

	out := s.service.IngestVideo(ctx, id)

	s.Equal(domain.OutcomeSuccess, out.Status)
	s.Equal("en", out.Language)
	s.Equal(4, out.SegmentCount)
	s.GreaterOrEqual(out.QualityScore, 0.7)
	s.Require().NotNil(out.Published)
	s.True(*out.Published)
}

func (s *TranscriptServiceTestSuite) TestIngestVideo_AlreadyProcessedSkipsFetch() {
	ctx := context.Background()

	s.videos.EXPECT().TranscriptState(ctx, "aaaaaaaaaaa").Return(domain.TranscriptPresent, nil)

	out := s.service.IngestVideo(ctx, "aaaaaaaaaaa")
	s.Equal(domain.OutcomeAlreadyProcessed, out.Status)
}

func (s *TranscriptServiceTestSuite) TestIngestVideo_EmptyResultMarksUnavailable() {
	ctx := context.Background()

	s.videos.EXPECT().TranscriptState(ctx, "aaaaaaaaaaa").Return(domain.TranscriptNone, nil)
	s.fetcher.EXPECT().FetchTranscript(ctx, gomock.Any()).Return(nil, nil)
	s.videos.EXPECT().MarkTranscriptUnavailable(ctx, "aaaaaaaaaaa").Return(nil)

	out := s.service.IngestVideo(ctx, "aaaaaaaaaaa")
	s.Equal(domain.OutcomeUnavailable, out.Status)
	s.Nil(out.Published)
}

func (s *TranscriptServiceTestSuite) TestIngestVideo_UnsuccessfulJobMarksUnavailable() {
	ctx := context.Background()

	s.videos.EXPECT().TranscriptState(ctx, "aaaaaaaaaaa").Return(domain.TranscriptNone, nil)
	s.fetcher.EXPECT().FetchTranscript(ctx, gomock.Any()).Return(nil, fmt.Errorf("actor x after 3 attempts: %w", domain.ErrJobUnsuccessful))
	s.videos.EXPECT().MarkTranscriptUnavailable(ctx, "aaaaaaaaaaa").Return(nil)

	out := s.service.IngestVideo(ctx, "aaaaaaaaaaa")
	s.Equal(domain.OutcomeUnavailable, out.Status)
}

func (s *TranscriptServiceTestSuite) TestIngestVideo_TransportErrorIsError() {
	ctx := context.Background()

	s.videos.EXPECT().TranscriptState(ctx, "aaaaaaaaaaa").Return(domain.TranscriptNone, nil)
	s.fetcher.EXPECT().FetchTranscript(ctx, gomock.Any()).Return(nil, &apify.StatusError{StatusCode: 500, Body: "boom"})

	out := s.service.IngestVideo(ctx, "aaaaaaaaaaa")
	s.Equal(domain.OutcomeError, out.Status)
	s.Contains(out.Error, "boom")
}

func (s *TranscriptServiceTestSuite) TestIngestVideo_QualityRejectedLeavesRowUntouched() {
	ctx := context.Background()
	short := `{"transcript": [{"start": 1, "duration": 2, "text": "Too short to keep."}]}`

	s.videos.EXPECT().TranscriptState(ctx, "aaaaaaaaaaa").Return(domain.TranscriptNone, nil)
	s.fetcher.EXPECT().FetchTranscript(ctx, gomock.Any()).Return(json.RawMessage(short), nil)

	out := s.service.IngestVideo(ctx, "aaaaaaaaaaa")
	s.Equal(domain.OutcomeQualityRejected, out.Status)
	s.Contains(out.Error, "too short")
}

func (s *TranscriptServiceTestSuite) TestIngestVideo_ValidationDisabledStoresLowQuality() {
	ctx := context.Background()
	disabled := false
	cfg := s.cfg
	cfg.EnableValidation = &disabled
	svc := s.newService(cfg)
	short := `{"transcript": [{"start": 1, "duration": 2, "text": "Too short to keep."}]}`

	s.videos.EXPECT().TranscriptState(ctx, "aaaaaaaaaaa").Return(domain.TranscriptNone, nil)
	s.fetcher.EXPECT().FetchTranscript(ctx, gomock.Any()).Return(json.RawMessage(short), nil)
	s.videos.EXPECT().StoreTranscript(ctx, "aaaaaaaaaaa", gomock.Any()).Return(storedVideo("aaaaaaaaaaa"), nil)
	s.publisher.EXPECT().Publish(ctx, rawTopic, gomock.Any(), "aaaaaaaaaaa").Return(true)

	out := svc.IngestVideo(ctx, "aaaaaaaaaaa")
	s.Equal(domain.OutcomeSuccess, out.Status)
}

func (s *TranscriptServiceTestSuite) TestIngestVideo_ZeroGateAcceptsShortTranscript() {
	ctx := context.Background()
	cfg := s.cfg
	cfg.MinLength = utils.Ptr(0)
	cfg.QualityThreshold = utils.Ptr(0.0)
	cfg.LanguageFilter = ""
	svc := s.newService(cfg)
	short := `{"transcript": [{"start": 1, "duration": 2, "text": "Too short to keep."}]}`

	s.videos.EXPECT().TranscriptState(ctx, "aaaaaaaaaaa").Return(domain.TranscriptNone, nil)
	s.fetcher.EXPECT().FetchTranscript(ctx, gomock.Any()).Return(json.RawMessage(short), nil)
	s.videos.EXPECT().StoreTranscript(ctx, "aaaaaaaaaaa", gomock.Any()).Return(storedVideo("aaaaaaaaaaa"), nil)
	s.publisher.EXPECT().Publish(ctx, rawTopic, gomock.Any(), "aaaaaaaaaaa").Return(true)

	out := svc.IngestVideo(ctx, "aaaaaaaaaaa")
	s.Equal(domain.OutcomeSuccess, out.Status)
}

func (s *TranscriptServiceTestSuite) TestIngestVideo_PublishFailureKeepsSuccess() {
	ctx := context.Background()

	s.videos.EXPECT().TranscriptState(ctx, "aaaaaaaaaaa").Return(domain.TranscriptNone, nil)
	s.fetcher.EXPECT().FetchTranscript(ctx, gomock.Any()).Return(json.RawMessage(validTranscript), nil)
	s.videos.EXPECT().StoreTranscript(ctx, "aaaaaaaaaaa", gomock.Any()).Return(storedVideo("aaaaaaaaaaa"), nil)
	s.publisher.EXPECT().Publish(ctx, rawTopic, gomock.Any(), "aaaaaaaaaaa").Return(false)

	out := s.service.IngestVideo(ctx, "aaaaaaaaaaa")
	s.Equal(domain.OutcomeSuccess, out.Status)
	s.Require().NotNil(out.Published)
	s.False(*out.Published)
}

func (s *TranscriptServiceTestSuite) TestIngestVideo_StoreFailureIsError() {
	ctx := context.Background()

	s.videos.EXPECT().TranscriptState(ctx, "aaaaaaaaaaa").Return(domain.TranscriptNone, nil)
	s.fetcher.EXPECT().FetchTranscript(ctx, gomock.Any()).Return(json.RawMessage(validTranscript), nil)
	s.videos.EXPECT().StoreTranscript(ctx, "aaaaaaaaaaa", gomock.Any()).Return(nil, domain.ErrVideoNotFound)

	out := s.service.IngestVideo(ctx, "aaaaaaaaaaa")
	s.Equal(domain.OutcomeError, out.Status)
	s.Contains(out.Error, domain.ErrVideoNotFound.Error())
}

func (s *TranscriptServiceTestSuite) TestProcessQueue_MixedBatch() {
	ctx := context.Background()
	ids := []string{"aaaaaaaaaaa", "bbbbbbbbbbb", "ccccccccccc", "ddddddddddd", "eeeeeeeeeee"}

	s.expectLog(7)
	s.videos.EXPECT().WithTranscript(ctx, ids).Return(map[string]struct{}{
		"bbbbbbbbbbb": {},
		"ddddddddddd": {},
	}, nil)
	for _, id := range []string{"aaaaaaaaaaa", "ccccccccccc", "eeeeeeeeeee"} {
		s.expectSuccess(id)
	}

	run, err := s.service.ProcessQueue(ctx, ids, "")

	s.Require().NoError(err)
	s.Equal(5, run.Stats.Total)
	s.Equal(3, run.Stats.Successful)
	s.Equal(2, run.Stats.AlreadyProcessed)
	s.Equal(0, run.Stats.Failed)
	s.Equal(3, run.Stats.Published)
	s.Equal(60.0, run.SuccessRate)
	s.Equal(int64(7), run.LogID)
}

func (s *TranscriptServiceTestSuite) TestProcessQueue_SecondRunSkipsRemoteCalls() {
	ctx := context.Background()
	ids := []string{"aaaaaaaaaaa", "bbbbbbbbbbb"}

	s.expectLog(1)
	s.videos.EXPECT().WithTranscript(ctx, ids).Return(map[string]struct{}{}, nil)
	for _, id := range ids {
		s.expectSuccess(id)
	}

	first, err := s.service.ProcessQueue(ctx, ids, "")
	s.Require().NoError(err)
	s.Equal(2, first.Stats.Successful)

	s.expectLog(2)
	s.videos.EXPECT().WithTranscript(ctx, ids).Return(map[string]struct{}{
		"aaaaaaaaaaa": {},
		"bbbbbbbbbbb": {},
	}, nil)
	s.fetcher.EXPECT().FetchTranscript(gomock.Any(), gomock.Any()).Times(0)

	second, err := s.service.ProcessQueue(ctx, ids, "")
	s.Require().NoError(err)
	s.Equal(2, second.Stats.AlreadyProcessed)
	s.Equal(0, second.Stats.Successful)
	s.Equal(0.0, second.SuccessRate)
}

func (s *TranscriptServiceTestSuite) TestProcessQueue_UnavailableIsReprocessed() {
	ctx := context.Background()
	ids := []string{"aaaaaaaaaaa"}

	for i := range 2 {
		s.expectLog(int64(i + 1))
		// an empty transcript_text is not "has transcript"
		s.videos.EXPECT().WithTranscript(ctx, ids).Return(map[string]struct{}{}, nil)
		state := domain.TranscriptNone
		if i == 1 {
			state = domain.TranscriptEmpty
		}
		s.videos.EXPECT().TranscriptState(gomock.Any(), "aaaaaaaaaaa").Return(state, nil)
		s.fetcher.EXPECT().FetchTranscript(gomock.Any(), gomock.Any()).Return(nil, nil)
		s.videos.EXPECT().MarkTranscriptUnavailable(gomock.Any(), "aaaaaaaaaaa").Return(nil)

		run, err := s.service.ProcessQueue(ctx, ids, "")
		s.Require().NoError(err)
		s.Equal(1, run.Stats.Unavailable)
		s.Equal(0, run.Stats.AlreadyProcessed)
	}
}

func (s *TranscriptServiceTestSuite) TestProcessQueue_ConcurrencyBound() {
	ctx := context.Background()
	cfg := s.cfg
	cfg.Concurrency = 2
	cfg.BatchSize = 4
	svc := s.newService(cfg)

	ids := make([]string, 10)
	for i := range ids {
		ids[i] = fmt.Sprintf("video%06d", i)
	}

	var inFlight, peak int32

	s.expectLog(1)
	s.videos.EXPECT().WithTranscript(ctx, ids).Return(map[string]struct{}{}, nil)
	s.videos.EXPECT().TranscriptState(gomock.Any(), gomock.Any()).Return(domain.TranscriptNone, nil).Times(10)
	s.fetcher.EXPECT().FetchTranscript(gomock.Any(), gomock.Any()).DoAndReturn(
		func(context.Context, string) (json.RawMessage, error) {
			n := atomic.AddInt32(&inFlight, 1)
			for {
				p := atomic.LoadInt32(&peak)
				if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
					break
				}
			}
			time.Sleep(20 * time.Millisecond)
			atomic.AddInt32(&inFlight, -1)
			return nil, nil
		},
	).Times(10)
	s.videos.EXPECT().MarkTranscriptUnavailable(gomock.Any(), gomock.Any()).Return(nil).Times(10)

	run, err := svc.ProcessQueue(ctx, ids, "")

	s.Require().NoError(err)
	s.Equal(10, run.Stats.Unavailable)
	s.LessOrEqual(atomic.LoadInt32(&peak), int32(2))
	s.Equal(int32(2), atomic.LoadInt32(&peak))
}

func (s *TranscriptServiceTestSuite) TestProcessQueue_PanicIsContained() {
	ctx := context.Background()
	ids := []string{"aaaaaaaaaaa", "bbbbbbbbbbb"}

	s.expectLog(1)
	s.videos.EXPECT().WithTranscript(ctx, ids).Return(map[string]struct{}{}, nil)
	s.videos.EXPECT().TranscriptState(gomock.Any(), "aaaaaaaaaaa").DoAndReturn(
		func(context.Context, string) (domain.TranscriptState, error) {
			panic("driver exploded")
		},
	)
	s.expectSuccess("bbbbbbbbbbb")

	run, err := s.service.ProcessQueue(ctx, ids, "")

	s.Require().NoError(err)
	s.Equal(1, run.Stats.Failed)
	s.Equal(1, run.Stats.Successful)
	s.Require().Len(run.Stats.Errors, 1)
	s.Equal("aaaaaaaaaaa", run.Stats.Errors[0].VideoID)
	s.Contains(run.Stats.Errors[0].Message, "driver exploded")
}

func (s *TranscriptServiceTestSuite) TestProcessQueue_DeduplicatesInput() {
	ctx := context.Background()

	s.expectLog(1)
	s.videos.EXPECT().WithTranscript(ctx, []string{"aaaaaaaaaaa"}).Return(map[string]struct{}{"aaaaaaaaaaa": {}}, nil)

	run, err := s.service.ProcessQueue(ctx, []string{"aaaaaaaaaaa", "aaaaaaaaaaa"}, "")
	s.Require().NoError(err)
	s.Equal(1, run.Stats.Total)
	s.Equal(0.0, run.SuccessRate)
}

func (s *TranscriptServiceTestSuite) TestProcessQueue_LogEntry() {
	ctx := context.Background()

	s.logs.EXPECT().Start(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, entry *domain.IngestionLog) (int64, error) {
			s.Equal(domain.StageTranscriptIngestion, entry.StageName)
			s.Equal("batch", entry.SourceType)
			s.Equal("batch_1_videos", entry.SourceIdentifier)
			return 3, nil
		},
	)
	s.videos.EXPECT().WithTranscript(ctx, gomock.Any()).Return(map[string]struct{}{}, nil)
	s.expectSuccess("aaaaaaaaaaa")
	s.logs.EXPECT().Finish(gomock.Any(), int64(3), domain.LogCompletion{
		Status:           domain.LogCompleted,
		RecordsProcessed: 1,
	}).Return(nil)

	run, err := s.service.ProcessQueue(ctx, []string{"aaaaaaaaaaa"}, "")
	s.Require().NoError(err)
	s.Equal(100.0, run.SuccessRate)
}

func (s *TranscriptServiceTestSuite) TestProcessQueue_LogFailuresAreSwallowed() {
	ctx := context.Background()

	s.logs.EXPECT().Start(ctx, gomock.Any()).Return(int64(0), errors.New("log table locked"))
	s.videos.EXPECT().WithTranscript(ctx, gomock.Any()).Return(map[string]struct{}{}, nil)
	s.expectSuccess("aaaaaaaaaaa")

	run, err := s.service.ProcessQueue(ctx, []string{"aaaaaaaaaaa"}, "manual")
	s.Require().NoError(err)
	s.Equal(1, run.Stats.Successful)
	s.Equal(1, run.Stats.LogWriteFailures)
}

func (s *TranscriptServiceTestSuite) TestProcessQueue_PersistenceUnreachableIsFatal() {
	ctx := context.Background()

	s.logs.EXPECT().Start(ctx, gomock.Any()).Return(int64(9), nil)
	s.videos.EXPECT().WithTranscript(ctx, gomock.Any()).Return(nil, errors.New("connection refused"))
	s.logs.EXPECT().Finish(gomock.Any(), int64(9), gomock.Any()).DoAndReturn(
		func(_ context.Context, _ int64, c domain.LogCompletion) error {
			s.Equal(domain.LogFailed, c.Status)
			return nil
		},
	)

	run, err := s.service.ProcessQueue(ctx, []string{"aaaaaaaaaaa"}, "")
	s.Error(err)
	s.Nil(run)
}

func (s *TranscriptServiceTestSuite) TestProcessQueue_ErrorListIsCapped() {
	ctx := context.Background()
	cfg := s.cfg
	cfg.MaxRecordedErrors = 2
	svc := s.newService(cfg)

	ids := []string{"aaaaaaaaaaa", "bbbbbbbbbbb", "ccccccccccc"}
	s.expectLog(1)
	s.videos.EXPECT().WithTranscript(ctx, ids).Return(map[string]struct{}{}, nil)
	s.videos.EXPECT().TranscriptState(gomock.Any(), gomock.Any()).Return(domain.TranscriptNone, errors.New("timeout")).Times(3)

	run, err := svc.ProcessQueue(ctx, ids, "")
	s.Require().NoError(err)
	s.Equal(3, run.Stats.Failed)
	s.Len(run.Stats.Errors, 2)
}

func (s *TranscriptServiceTestSuite) TestProcessPending() {
	ctx := context.Background()

	s.videos.EXPECT().PendingTranscripts(ctx, 20, int64(4)).Return([]string{"aaaaaaaaaaa"}, nil)
	s.logs.EXPECT().Start(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, entry *domain.IngestionLog) (int64, error) {
			s.Equal("source_4", entry.SourceIdentifier)
			return 1, nil
		},
	)
	s.logs.EXPECT().Finish(gomock.Any(), int64(1), gomock.Any()).Return(nil)
	s.videos.EXPECT().WithTranscript(ctx, []string{"aaaaaaaaaaa"}).Return(map[string]struct{}{}, nil)
	s.expectSuccess("aaaaaaaaaaa")

	run, err := s.service.ProcessPending(ctx, 0, 4)
	s.Require().NoError(err)
	s.Equal(1, run.Stats.Successful)
}
