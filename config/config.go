// Package config manages application configuration, loaded from environment
// variables with the VODSYNC_ prefix.
package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix is the envconfig namespace shared by all settings.
const EnvPrefix = "vodsync"

// Config holds all application configuration for a catalog run.
type Config struct {
	Google      GoogleConfig
	Media       MediaConfig
	Annotations AnnotationConfig
	Retry       RetryConfig
	App         AppConfig
}

// GoogleConfig covers the YouTube Data API, the ledger spreadsheet and the
// remote storage credentials.
type GoogleConfig struct {
	APIKey          string `envconfig:"VODSYNC_YOUTUBE_API_KEY" required:"true"`
	SpreadsheetID   string `envconfig:"VODSYNC_SPREADSHEET_ID" required:"true"`
	CredentialsFile string `envconfig:"VODSYNC_CREDENTIALS_FILE" default:"credentials.json"`
}

// MediaConfig covers the external tools and work directories of the
// materialization stages.
type MediaConfig struct {
	YtdlpPath   string `envconfig:"VODSYNC_YTDLP_PATH" default:"yt-dlp"`
	FFmpegPath  string `envconfig:"VODSYNC_FFMPEG_PATH" default:"ffmpeg"`
	FFprobePath string `envconfig:"VODSYNC_FFPROBE_PATH" default:"ffprobe"`
	CookieFile  string `envconfig:"VODSYNC_COOKIE_FILE"`

	DownloadDir  string `envconfig:"VODSYNC_DOWNLOAD_DIR" default:"downloads"`
	EncodeDir    string `envconfig:"VODSYNC_ENCODE_DIR" default:"encoded"`
	ThumbnailDir string `envconfig:"VODSYNC_THUMBNAIL_DIR" default:"thumbnails"`

	// DownloadTimeout bounds one yt-dlp invocation. Zero means no limit.
	DownloadTimeout time.Duration `envconfig:"VODSYNC_DOWNLOAD_TIMEOUT" default:"30m"`
}

// AnnotationConfig tunes the skip-segment annotation lookups.
type AnnotationConfig struct {
	SegmentTimeout time.Duration `envconfig:"VODSYNC_SEGMENT_TIMEOUT" default:"10s"`
}

// RetryConfig tunes the backoff applied to source API calls.
type RetryConfig struct {
	MaxRetries        int           `envconfig:"VODSYNC_MAX_RETRIES" default:"5"`
	InitialBackoff    time.Duration `envconfig:"VODSYNC_INITIAL_BACKOFF" default:"1s"`
	MaxBackoff        time.Duration `envconfig:"VODSYNC_MAX_BACKOFF" default:"30s"`
	BackoffMultiplier float64       `envconfig:"VODSYNC_BACKOFF_MULTIPLIER" default:"2.0"`
}

// AppConfig covers logging and run behavior.
type AppConfig struct {
	LogLevel  string `envconfig:"VODSYNC_LOG_LEVEL" default:"info"`
	LogPretty bool   `envconfig:"VODSYNC_LOG_PRETTY" default:"false"`
}

// Load reads configuration from the environment and validates it.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the cross-field constraints envconfig tags cannot express.
func (c *Config) Validate() error {
	if c.Retry.MaxRetries < 0 {
		return fmt.Errorf("max retries must be non-negative, got %d", c.Retry.MaxRetries)
	}
	if c.Retry.BackoffMultiplier <= 1 {
		return fmt.Errorf("backoff multiplier must be greater than 1, got %v", c.Retry.BackoffMultiplier)
	}
	if c.Retry.InitialBackoff <= 0 {
		return fmt.Errorf("initial backoff must be positive, got %v", c.Retry.InitialBackoff)
	}
	if c.Retry.MaxBackoff < c.Retry.InitialBackoff {
		return fmt.Errorf("max backoff %v is less than initial backoff %v", c.Retry.MaxBackoff, c.Retry.InitialBackoff)
	}
	if c.Media.DownloadTimeout < 0 {
		return fmt.Errorf("download timeout must be non-negative, got %v", c.Media.DownloadTimeout)
	}
	if c.Annotations.SegmentTimeout <= 0 {
		return fmt.Errorf("segment timeout must be positive, got %v", c.Annotations.SegmentTimeout)
	}
	return nil
}
