package media

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Target codec pair. Inputs already in this pair get a lossless container
// copy instead of a re-encode.
const (
	targetVideoCodec = "h264"
	targetAudioCodec = "aac"
)

// Transcoder re-encodes materialized files into the canonical codec pair
// using ffmpeg, probing codecs with ffprobe first.
type Transcoder struct {
	// FFmpegPath is the ffmpeg executable. Defaults to "ffmpeg" from PATH.
	FFmpegPath string
	// FFprobePath is the ffprobe executable. Defaults to "ffprobe" from PATH.
	FFprobePath string
}

// NewTranscoder creates a Transcoder with default tool paths.
func NewTranscoder() *Transcoder {
	return &Transcoder{FFmpegPath: "ffmpeg", FFprobePath: "ffprobe"}
}

// Transcode produces outputPath from inputPath. If the input is already
// h264+aac (or h264 with no audio stream) the streams are copied without
// re-encoding. If outputPath already exists the work is skipped.
func (t *Transcoder) Transcode(ctx context.Context, inputPath, outputPath string) error {
	if _, err := os.Stat(outputPath); err == nil {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	videoCodec, err := t.probeCodec(ctx, inputPath, "v")
	if err != nil {
		return fmt.Errorf("probe video codec: %w", err)
	}
	audioCodec, err := t.probeCodec(ctx, inputPath, "a")
	if err != nil {
		return fmt.Errorf("probe audio codec: %w", err)
	}

	var args []string
	if copyCompatible(videoCodec, audioCodec) {
		args = copyArgs(inputPath, outputPath)
	} else {
		args = encodeArgs(inputPath, outputPath)
	}

	ffmpeg := t.FFmpegPath
	if ffmpeg == "" {
		ffmpeg = "ffmpeg"
	}

	cmd := exec.CommandContext(ctx, ffmpeg, args...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		// Leave no partial output behind; the next run retries cleanly.
		os.Remove(outputPath)
		if msg := stderr.String(); msg != "" {
			return fmt.Errorf("transcode %s: %w: %s", inputPath, err, msg)
		}
		return fmt.Errorf("transcode %s: %w", inputPath, err)
	}

	return nil
}

// probeCodec reads the codec name of the first stream of the given type
// ("v" or "a"). A file without that stream type probes as empty.
func (t *Transcoder) probeCodec(ctx context.Context, inputPath, streamType string) (string, error) {
	ffprobe := t.FFprobePath
	if ffprobe == "" {
		ffprobe = "ffprobe"
	}

	cmd := exec.CommandContext(ctx, ffprobe,
		"-v", "error",
		"-select_streams", streamType+":0",
		"-show_entries", "stream=codec_name",
		"-of", "default=nw=1:nk=1",
		inputPath,
	)

	var stdout bytes.Buffer
	cmd.Stdout = &stdout

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("ffprobe: %w", err)
	}

	return strings.TrimSpace(stdout.String()), nil
}

// copyCompatible reports whether the probed codec pair already matches the
// target, making a container copy sufficient.
func copyCompatible(videoCodec, audioCodec string) bool {
	return videoCodec == targetVideoCodec &&
		(audioCodec == targetAudioCodec || audioCodec == "")
}

func copyArgs(inputPath, outputPath string) []string {
	return []string{
		"-y",
		"-i", inputPath,
		"-c", "copy",
		outputPath,
	}
}

func encodeArgs(inputPath, outputPath string) []string {
	return []string{
		"-y",
		"-i", inputPath,
		"-c:v", "libx264",
		"-preset", "fast",
		"-crf", "23",
		"-c:a", "aac",
		"-b:a", "128k",
		outputPath,
	}
}
