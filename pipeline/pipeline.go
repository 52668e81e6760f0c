// Package pipeline orchestrates a catalog run: reconciling the creator
// index, syncing each creator's item table, and materializing items through
// download, transcode and upload.
//
// Every stage is idempotent, so an interrupted run is resumed by running
// again. Creators are processed independently; one creator's failure is
// logged and never aborts the others.
package pipeline

import (
	"context"
	"net/http"

	"github.com/rs/zerolog"

	"vodsync/sponsorblock"
	"vodsync/storage"
	"vodsync/youtube"
)

// SourceClient is the source-platform surface the pipeline consumes.
// *youtube.Client implements it.
type SourceClient interface {
	ChannelIDByHandle(ctx context.Context, handle string) (string, error)
	ChannelProfile(ctx context.Context, channelID string) (*youtube.ChannelProfile, error)
	PlaylistVideoIDs(ctx context.Context, playlistID string) ([]string, error)
	VideoDetails(ctx context.Context, videoIDs []string) (map[string]*youtube.VideoDetail, error)
}

// Annotator provides best-effort skip-segment annotations.
// *sponsorblock.Client implements it.
type Annotator interface {
	FetchAll(ctx context.Context, videoIDs []string) map[string]sponsorblock.Result
}

// RemoteStore is the remote file storage surface. *drive.Store implements it.
type RemoteStore interface {
	MP4Stems(ctx context.Context, folderID string) (map[string]bool, error)
	ThumbnailStems(ctx context.Context, folderID string) (map[string]bool, error)
	Upload(ctx context.Context, folderID, name, localPath, mimeType string) (string, error)
}

// Fetcher downloads one source item to a local path. *media.Downloader
// implements it.
type Fetcher interface {
	Fetch(ctx context.Context, videoID, destPath string) error
}

// Encoder normalizes a downloaded file to the target codecs.
// *media.Transcoder implements it.
type Encoder interface {
	Transcode(ctx context.Context, inputPath, outputPath string) error
}

// Config wires the pipeline's collaborators and work directories.
type Config struct {
	Store     storage.LedgerStore
	Source    SourceClient
	Annotator Annotator
	Remote    RemoteStore
	Fetcher   Fetcher
	Encoder   Encoder

	// DownloadDir receives raw downloads, EncodeDir the normalized copies,
	// ThumbnailDir the mirrored thumbnails.
	DownloadDir  string
	EncodeDir    string
	ThumbnailDir string

	// HTTPClient fetches thumbnail images. Defaults to http.DefaultClient.
	HTTPClient *http.Client

	Logger zerolog.Logger
}

// Pipeline runs the catalog workflow. Create one with New.
type Pipeline struct {
	store     storage.LedgerStore
	source    SourceClient
	annotator Annotator
	remote    RemoteStore
	fetcher   Fetcher
	encoder   Encoder

	downloadDir  string
	encodeDir    string
	thumbnailDir string

	httpClient *http.Client
	log        zerolog.Logger
}

// New creates a pipeline from the given configuration.
func New(cfg Config) *Pipeline {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Pipeline{
		store:        cfg.Store,
		source:       cfg.Source,
		annotator:    cfg.Annotator,
		remote:       cfg.Remote,
		fetcher:      cfg.Fetcher,
		encoder:      cfg.Encoder,
		downloadDir:  cfg.DownloadDir,
		encodeDir:    cfg.EncodeDir,
		thumbnailDir: cfg.ThumbnailDir,
		httpClient:   httpClient,
		log:          cfg.Logger,
	}
}
