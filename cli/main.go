package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"vodsync/config"
	"vodsync/drive"
	"vodsync/media"
	"vodsync/pipeline"
	"vodsync/retry"
	"vodsync/sheets"
	"vodsync/sponsorblock"
	"vodsync/storage"
	"vodsync/youtube"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "run":
		cmdRun(args)
	case "index":
		cmdIndex(args)
	case "sync":
		cmdSync(args)
	case "download":
		cmdStage(args, "download")
	case "encode":
		cmdEncode(args)
	case "upload":
		cmdStage(args, "upload")
	case "thumbnails":
		cmdStage(args, "thumbnails")
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown command %q\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `vodsync - creator catalog sync and archival pipeline

Usage:
  vodsync run               Full pass: reconcile index, sync every creator,
                            download, transcode, upload, mirror thumbnails
  vodsync index             Reconcile the creator index only
  vodsync sync <key>        Sync one creator's catalog (no downloads)
  vodsync download <key>    Download the creator's indexed items
  vodsync encode            Transcode every download lacking an encoded copy
  vodsync upload <key>      Upload the creator's encoded items
  vodsync thumbnails <key>  Mirror the creator's missing thumbnails
  vodsync help              Show this help message

Configuration is read from VODSYNC_* environment variables; a .env file in
the working directory is loaded when present.
`)
}

// setup loads configuration and builds the pipeline with all its
// collaborators wired.
func setup(ctx context.Context) (*pipeline.Pipeline, *config.Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, nil, fmt.Errorf("load .env: %w", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}

	logger, err := newLogger(cfg.App)
	if err != nil {
		return nil, nil, err
	}

	source, err := youtube.NewClient(ctx, cfg.Google.APIKey)
	if err != nil {
		return nil, nil, fmt.Errorf("create youtube client: %w", err)
	}
	retryCfg := retry.DefaultConfig()
	retryCfg.MaxRetries = cfg.Retry.MaxRetries
	retryCfg.InitialBackoff = cfg.Retry.InitialBackoff
	retryCfg.MaxBackoff = cfg.Retry.MaxBackoff
	retryCfg.Multiplier = cfg.Retry.BackoffMultiplier
	source.RetryConfig = &retryCfg

	store, err := sheets.NewStore(ctx, cfg.Google.CredentialsFile, cfg.Google.SpreadsheetID)
	if err != nil {
		return nil, nil, fmt.Errorf("create ledger store: %w", err)
	}

	remote, err := drive.NewStore(ctx, cfg.Google.CredentialsFile)
	if err != nil {
		return nil, nil, fmt.Errorf("create remote store: %w", err)
	}

	downloader := media.NewDownloader()
	downloader.Path = cfg.Media.YtdlpPath
	downloader.CookieFile = cfg.Media.CookieFile
	downloader.Timeout = cfg.Media.DownloadTimeout

	transcoder := media.NewTranscoder()
	transcoder.FFmpegPath = cfg.Media.FFmpegPath
	transcoder.FFprobePath = cfg.Media.FFprobePath

	p := pipeline.New(pipeline.Config{
		Store:        store,
		Source:       source,
		Annotator:    sponsorblock.NewClientWithTimeout(cfg.Annotations.SegmentTimeout),
		Remote:       remote,
		Fetcher:      downloader,
		Encoder:      transcoder,
		DownloadDir:  cfg.Media.DownloadDir,
		EncodeDir:    cfg.Media.EncodeDir,
		ThumbnailDir: cfg.Media.ThumbnailDir,
		Logger:       logger,
	})
	return p, cfg, nil
}

func newLogger(app config.AppConfig) (zerolog.Logger, error) {
	level, err := zerolog.ParseLevel(app.LogLevel)
	if err != nil {
		return zerolog.Logger{}, fmt.Errorf("parse log level %q: %w", app.LogLevel, err)
	}

	var logger zerolog.Logger
	if app.LogPretty {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr})
	} else {
		logger = zerolog.New(os.Stderr)
	}
	return logger.Level(level).With().Timestamp().Logger(), nil
}

// signalContext returns a context canceled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func cmdRun(args []string) {
	ctx, cancel := signalContext()
	defer cancel()

	p, _, err := setup(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := p.Run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func cmdIndex(args []string) {
	ctx, cancel := signalContext()
	defer cancel()

	p, _, err := setup(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	keys, index, err := p.ReconcileIndex(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	for _, key := range keys {
		state := "unresolved"
		if index[key].Resolved() {
			state = index[key].ChannelID
		}
		fmt.Printf("%s\t%s\n", key, state)
	}
}

func cmdSync(args []string) {
	if len(args) == 0 {
		fmt.Fprintf(os.Stderr, "Error: missing creator key\n")
		os.Exit(1)
	}
	key := args[0]

	ctx, cancel := signalContext()
	defer cancel()

	p, _, err := setup(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	_, index, err := p.ReconcileIndex(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	creator, ok := index[key]
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: no creator %q in the index\n", key)
		os.Exit(1)
	}
	if !creator.Resolved() {
		fmt.Fprintf(os.Stderr, "Error: creator %q is unresolved\n", key)
		os.Exit(1)
	}

	rows, err := p.SyncCreator(ctx, creator)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("%s: %d items\n", key, len(rows))
}

func cmdEncode(args []string) {
	ctx, cancel := signalContext()
	defer cancel()

	p, _, err := setup(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := p.EncodeAll(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// cmdStage runs one materialization stage for a single creator, working from
// the persisted ledger without a source fetch.
func cmdStage(args []string, stage string) {
	if len(args) == 0 {
		fmt.Fprintf(os.Stderr, "Error: missing creator key\n")
		os.Exit(1)
	}
	key := args[0]

	ctx, cancel := signalContext()
	defer cancel()

	p, _, err := setup(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	creator, rows, err := loadCreator(ctx, p, key)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	switch stage {
	case "download":
		p.DownloadPending(ctx, rows)
	case "upload":
		p.UploadPending(ctx, creator, rows)
		if err := p.RefreshStatuses(ctx, creator, rows); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "thumbnails":
		p.MirrorThumbnails(ctx, creator, rows)
	}
}

func loadCreator(ctx context.Context, p *pipeline.Pipeline, key string) (*storage.Creator, []*storage.Item, error) {
	_, index, err := p.ReconcileIndex(ctx)
	if err != nil {
		return nil, nil, err
	}
	creator, ok := index[key]
	if !ok {
		return nil, nil, fmt.Errorf("no creator %q in the index", key)
	}
	if !creator.Resolved() {
		return nil, nil, fmt.Errorf("creator %q is unresolved", key)
	}
	rows, err := p.LoadRows(ctx, creator)
	if err != nil {
		return nil, nil, err
	}
	return creator, rows, nil
}
