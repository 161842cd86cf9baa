package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"youtube_ingest/internal/config"
	"youtube_ingest/internal/domain"
	"youtube_ingest/internal/publisher"
	"youtube_ingest/internal/scheduler"
	"youtube_ingest/internal/service"
	"youtube_ingest/internal/source/apify"
	"youtube_ingest/internal/storage/postgres"
)

const usage = `usage: ingester [-config path] <command> [flags]

commands:
  run            sync due sources on the configured interval until stopped
  sync           sync due sources once (-dry-run, -source id)
  add-source     register a channel or playlist (-url, -name, -hours, -pool)
  list-sources   list registered sources (-all)
  update-source  change a source (-id, -name, -hours, -active)
  remove-source  deactivate a source (-id)
  ingest         ingest a channel or playlist listing (-url, -max-results, -limit)
  transcripts    ingest transcripts (-ids, or -pending with -limit and -source)
  pipeline       ingest a listing then the transcripts of its new videos (-url, -max-results, -limit)
  stats          transcript coverage statistics (-source, -logs)
  cleanup        delete old failed ingestion logs (-max-age)
`

type app struct {
	cfg         *config.Config
	db          *sqlx.DB
	publisher   *publisher.RabbitMQ
	sources     *service.SourceService
	lists       *service.ListService
	transcripts *service.TranscriptService
	sync        *service.SyncService
	logs        *postgres.IngestionLogStore
	logger      *slog.Logger
}

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}
	command, args := flag.Arg(0), flag.Args()[1:]

	logger := setupLogger("info")

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger = setupLogger(cfg.LogLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	a, err := newApp(cfg, logger, needsPublisher(command))
	if err != nil {
		logger.Error("failed to initialize", "error", err)
		os.Exit(1)
	}
	defer a.close()

	if err := a.dispatch(ctx, command, args); err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		logger.Error("command failed", "command", command, "error", err)
		os.Exit(1)
	}
}

func needsPublisher(command string) bool {
	switch command {
	case "run", "sync", "transcripts", "pipeline":
		return true
	}
	return false
}

func newApp(cfg *config.Config, logger *slog.Logger, withPublisher bool) (*app, error) {
	db, err := sqlx.Connect("postgres", cfg.Database.DSN())
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	logger.Debug("connected to database")

	a := &app{cfg: cfg, db: db, logger: logger}

	// Records are still stored when the broker is down; publishing is reported per video.
	var sink service.Publisher
	if withPublisher {
		rabbitMQ, err := publisher.NewRabbitMQ(publisher.Config{
			URL:        cfg.RabbitMQ.URL,
			Exchange:   cfg.RabbitMQ.Exchange,
			QueueName:  cfg.RabbitMQ.QueueName,
			BindingKey: cfg.RabbitMQ.RawRecordsTopic,
		}, logger)
		if err != nil {
			logger.Warn("rabbitmq unavailable, video records will not be published", "error", err)
		} else {
			a.publisher = rabbitMQ
			sink = rabbitMQ
		}
	}

	videoStore := postgres.NewVideoStore(db)
	channelStore := postgres.NewChannelStore(db)
	sourceStore := postgres.NewSourceStore(db)
	logStore := postgres.NewIngestionLogStore(db)
	txManager := postgres.NewTransactionManager(db)

	client := apify.New(apify.Config{
		BaseURL:            cfg.Apify.BaseURL,
		Token:              cfg.Apify.Token,
		ListActorID:        cfg.Apify.ListActorID,
		TranscriptActorID:  cfg.Apify.TranscriptActorID,
		Timeout:            cfg.Apify.Timeout,
		PollInterval:       cfg.Apify.PollInterval,
		MaxAttempts:        cfg.Apify.Retry.MaxAttempts,
		TranscriptAttempts: cfg.Transcript.RetryAttempts,
		BaseDelay:          cfg.Apify.Retry.InitialBackoff,
		RequestsPerSecond:  cfg.Apify.RequestsPerSecond,
		MaxResults:         cfg.Apify.MaxResults,
		ResultsPerPage:     cfg.Apify.ResultsPerPage,
		RequestTimeoutSecs: cfg.Apify.RequestTimeoutSecs,
		ProxyEnabled:       *cfg.Apify.ProxyEnabled,
		ProxyGroup:         cfg.Apify.ProxyGroup,
	}, logger)

	a.logs = logStore
	a.sources = service.NewSourceService(sourceStore, txManager, logger, cfg.Sync.DefaultSyncHours)
	a.lists = service.NewListService(
		videoStore,
		channelStore,
		logStore,
		client,
		logger,
		cfg.Apify.MaxResults,
		cfg.ResourcePool,
	)
	a.transcripts = service.NewTranscriptService(
		videoStore,
		logStore,
		client,
		sink,
		logger,
		cfg.Transcript,
		cfg.RabbitMQ.RawRecordsTopic,
		cfg.ResourcePool,
	)
	a.sync = service.NewSyncService(
		sourceStore,
		a.lists,
		a.transcripts,
		logStore,
		logger,
		cfg.Sync,
		cfg.ResourcePool,
	)

	return a, nil
}

func (a *app) close() {
	if a.publisher != nil {
		a.publisher.Close()
	}
	a.db.Close()
}

func (a *app) dispatch(ctx context.Context, command string, args []string) error {
	switch command {
	case "run":
		return a.run(ctx)
	case "sync":
		return a.syncOnce(ctx, args)
	case "add-source":
		return a.addSource(ctx, args)
	case "list-sources":
		return a.listSources(ctx, args)
	case "update-source":
		return a.updateSource(ctx, args)
	case "remove-source":
		return a.removeSource(ctx, args)
	case "ingest":
		return a.ingest(ctx, args, false)
	case "pipeline":
		return a.ingest(ctx, args, true)
	case "transcripts":
		return a.ingestTranscripts(ctx, args)
	case "stats":
		return a.stats(ctx, args)
	case "cleanup":
		return a.cleanup(ctx, args)
	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", command)
	}
}

func (a *app) run(ctx context.Context) error {
	sched := scheduler.NewScheduler(a.sync, a.cfg.Sync.Interval, a.cfg.Sync.RunTimeout, a.logger)

	a.logger.Info("starting youtube ingester",
		"interval", a.cfg.Sync.Interval,
		"max_concurrent", a.cfg.Sync.MaxConcurrent,
		"process_transcripts", a.cfg.Sync.TranscriptsEnabled(),
	)

	if err := sched.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("scheduler: %w", err)
	}
	return nil
}

func (a *app) syncOnce(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("sync", flag.ExitOnError)
	dryRun := fs.Bool("dry-run", false, "report due sources without syncing")
	sourceID := fs.Int64("source", 0, "sync this source only, whether or not it is due")
	fs.Parse(args)

	if *sourceID > 0 {
		res := a.sync.SyncSource(ctx, *sourceID)
		return printJSON(res)
	}

	report, err := a.sync.SyncAll(ctx, *dryRun)
	if err != nil {
		return err
	}
	return printJSON(report)
}

func (a *app) addSource(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("add-source", flag.ExitOnError)
	rawURL := fs.String("url", "", "channel or playlist url")
	name := fs.String("name", "", "display name, derived from the url when empty")
	hours := fs.Int("hours", 0, "sync frequency in hours (1-168)")
	pool := fs.String("pool", a.cfg.ResourcePool, "resource pool tag")
	fs.Parse(args)

	if *rawURL == "" {
		return errors.New("-url is required")
	}

	src, err := a.sources.Register(ctx, *rawURL, *name, *hours, *pool)
	if err != nil {
		return err
	}
	return printJSON(src)
}

func (a *app) listSources(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("list-sources", flag.ExitOnError)
	all := fs.Bool("all", false, "include inactive sources")
	fs.Parse(args)

	sources, err := a.sources.List(ctx, !*all)
	if err != nil {
		return err
	}
	return printJSON(sources)
}

func (a *app) updateSource(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("update-source", flag.ExitOnError)
	id := fs.Int64("id", 0, "source id")
	name := fs.String("name", "", "new display name")
	hours := fs.Int("hours", 0, "new sync frequency in hours")
	active := fs.String("active", "", "true or false")
	fs.Parse(args)

	if *id == 0 {
		return errors.New("-id is required")
	}

	var upd domain.SourceUpdate
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "name":
			upd.Name = name
		case "hours":
			upd.SyncFrequencyHours = hours
		}
	})
	if *active != "" {
		v, err := strconv.ParseBool(*active)
		if err != nil {
			return fmt.Errorf("-active: %w", err)
		}
		upd.IsActive = &v
	}

	src, err := a.sources.Update(ctx, *id, upd)
	if err != nil {
		return err
	}
	return printJSON(src)
}

func (a *app) removeSource(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("remove-source", flag.ExitOnError)
	id := fs.Int64("id", 0, "source id")
	fs.Parse(args)

	if *id == 0 {
		return errors.New("-id is required")
	}
	return a.sources.Deactivate(ctx, *id)
}

func (a *app) ingest(ctx context.Context, args []string, withTranscripts bool) error {
	fs := flag.NewFlagSet("ingest", flag.ExitOnError)
	rawURL := fs.String("url", "", "channel or playlist url")
	maxResults := fs.Int("max-results", 0, "maximum videos requested from the scraper")
	limit := fs.Int("limit", 0, "maximum unique videos stored")
	fs.Parse(args)

	if *rawURL == "" {
		return errors.New("-url is required")
	}

	list, err := a.lists.IngestURL(ctx, *rawURL, domain.ListOptions{MaxResults: *maxResults, Limit: *limit})
	if err != nil {
		return err
	}
	if !withTranscripts {
		return printJSON(list)
	}

	run, err := a.transcripts.ProcessQueue(ctx, list.NewVideoIDs, "pipeline")
	if err != nil {
		return err
	}
	return printJSON(struct {
		List        *domain.ListResult    `json:"list"`
		Transcripts *domain.TranscriptRun `json:"transcripts"`
	}{list, run})
}

func (a *app) ingestTranscripts(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("transcripts", flag.ExitOnError)
	ids := fs.String("ids", "", "comma separated video ids")
	pending := fs.Bool("pending", false, "ingest videos that were never checked")
	limit := fs.Int("limit", 0, "maximum pending videos, defaults to the batch size")
	sourceID := fs.Int64("source", 0, "only pending videos of this source")
	fs.Parse(args)

	var (
		run *domain.TranscriptRun
		err error
	)
	switch {
	case *ids != "":
		run, err = a.transcripts.ProcessQueue(ctx, strings.Split(*ids, ","), "manual")
	case *pending:
		run, err = a.transcripts.ProcessPending(ctx, *limit, *sourceID)
	default:
		return errors.New("either -ids or -pending is required")
	}
	if err != nil {
		return err
	}
	return printJSON(run)
}

func (a *app) stats(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("stats", flag.ExitOnError)
	sourceID := fs.Int64("source", 0, "restrict to one source")
	recent := fs.Int("logs", 0, "also show this many recent ingestion log rows")
	fs.Parse(args)

	stats, err := a.transcripts.Statistics(ctx, *sourceID)
	if err != nil {
		return err
	}
	if *recent <= 0 {
		return printJSON(stats)
	}

	logs, err := a.logs.Recent(ctx, *recent)
	if err != nil {
		return fmt.Errorf("recent logs: %w", err)
	}
	return printJSON(struct {
		Transcripts *domain.TranscriptStatistics `json:"transcripts"`
		Logs        []domain.IngestionLog        `json:"recent_logs"`
	}{stats, logs})
}

func (a *app) cleanup(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("cleanup", flag.ExitOnError)
	maxAge := fs.Duration("max-age", a.cfg.Sync.FailedLogRetention, "delete failed logs older than this")
	fs.Parse(args)

	if *maxAge <= 0 {
		*maxAge = 24 * time.Hour
	}

	n, err := a.lists.PruneFailedLogs(ctx, *maxAge)
	if err != nil {
		return err
	}
	return printJSON(map[string]int64{"deleted": n})
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func setupLogger(level string) *slog.Logger {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: logLevel}
	// stdout carries command output
	handler := slog.NewJSONHandler(os.Stderr, opts)
	return slog.New(handler)
}
