// Package vodsync synchronizes creator video catalogs into a spreadsheet
// ledger and archives the videos to remote storage.
//
// Overview
//
// A run works from a single spreadsheet: the "Index" section lists tracked
// creators by a stable key, and each creator gets a section carrying one row
// per video. vodsync reconciles the index (resolving handles to channel
// identities once), brings each creator's section up to date with the
// channel's uploads feed, and takes every indexed video through download,
// transcode and upload to the creator's storage folder.
//
// The whole pipeline is idempotent: statuses only move forward, downloads
// and uploads skip work that already happened, and an interrupted run is
// resumed by running again.
//
// Quick Start
//
// Wire the pipeline from configuration and run it:
//
//	cfg, err := config.Load()
//	if err != nil {
//		log.Fatal(err)
//	}
//	store, err := sheets.NewStore(ctx, cfg.Google.CredentialsFile, cfg.Google.SpreadsheetID)
//	if err != nil {
//		log.Fatal(err)
//	}
//	p := pipeline.New(pipeline.Config{Store: store /* ... */})
//	if err := p.Run(ctx); err != nil {
//		log.Fatal(err)
//	}
//
// Configuration
//
// Settings come from VODSYNC_* environment variables (a .env file is loaded
// when present). The required ones:
//
//   - VODSYNC_YOUTUBE_API_KEY: YouTube Data API key
//   - VODSYNC_SPREADSHEET_ID: ledger spreadsheet
//   - VODSYNC_CREDENTIALS_FILE: service account credentials for the ledger
//     and remote storage (default credentials.json)
//
// See the config package for the full list, including tool paths, work
// directories and retry tuning.
//
// Error Handling
//
// All operations return errors that support the standard patterns:
//
//	if errors.Is(err, youtube.ErrChannelNotFound) {
//		fmt.Println("channel not found")
//	}
//
//	var storErr *storage.StoreError
//	if errors.As(err, &storErr) {
//		fmt.Printf("ledger %s on %s failed: %v\n", storErr.Op, storErr.Section, storErr.Err)
//	}
//
// Sub-packages
//
//   - pipeline: run orchestration and per-creator stages
//   - catalog: internal ID assignment, status merging, row building
//   - storage: ledger models and store interfaces
//   - sheets: spreadsheet-backed ledger store
//   - drive: remote file storage
//   - youtube: source platform client
//   - sponsorblock: skip-segment annotations
//   - media: yt-dlp and ffmpeg wrappers
//   - retry: exponential backoff
//   - config: environment configuration
//
// Dependencies
//
// vodsync shells out to yt-dlp, ffmpeg and ffprobe; they must be installed
// and on PATH or pointed at via VODSYNC_YTDLP_PATH, VODSYNC_FFMPEG_PATH and
// VODSYNC_FFPROBE_PATH.
package vodsync
