// Package media wraps the local tools that materialize and transform content:
// yt-dlp for retrieval and ffmpeg/ffprobe for canonical re-encoding. Both
// wrappers are idempotent: work whose output already exists is skipped, which
// makes retrying a failed item on the next run safe.
package media

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"
)

// downloadFormat selects best mp4 video plus m4a audio, with fallbacks, so
// the merged result is always an mp4 container.
const downloadFormat = "bestvideo[ext=mp4]+bestaudio[ext=m4a]/best[ext=mp4]/best"

// Downloader materializes source items into local mp4 files using yt-dlp.
type Downloader struct {
	// Path is the yt-dlp executable. Defaults to "yt-dlp" from PATH.
	Path string
	// CookieFile is an optional cookies file passed to yt-dlp.
	CookieFile string
	// Timeout bounds a single download. Zero means no bound beyond ctx.
	Timeout time.Duration
}

// NewDownloader creates a Downloader with default settings.
func NewDownloader() *Downloader {
	return &Downloader{Path: "yt-dlp"}
}

// Fetch retrieves the item's best video+audio merged into a single mp4 at
// exactly destPath. If destPath already exists the download is skipped.
func (d *Downloader) Fetch(ctx context.Context, videoID, destPath string) error {
	if _, err := os.Stat(destPath); err == nil {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(destPath), 0755); err != nil {
		return fmt.Errorf("create download directory: %w", err)
	}

	if d.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.Timeout)
		defer cancel()
	}

	path := d.Path
	if path == "" {
		path = "yt-dlp"
	}

	cmd := exec.CommandContext(ctx, path, downloadArgs(videoID, destPath, d.CookieFile)...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := stderr.String(); msg != "" {
			return fmt.Errorf("download %s: %w: %s", videoID, err, msg)
		}
		return fmt.Errorf("download %s: %w", videoID, err)
	}

	return nil
}

// downloadArgs builds the yt-dlp argument list for one item.
func downloadArgs(videoID, destPath, cookieFile string) []string {
	args := []string{
		"--quiet",
		"--no-warnings",
		"-f", downloadFormat,
		"--merge-output-format", "mp4",
		"-o", destPath,
	}
	if cookieFile != "" {
		args = append(args, "--cookies", cookieFile)
	}
	return append(args, "https://www.youtube.com/watch?v="+videoID)
}
