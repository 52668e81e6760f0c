package pipeline

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"vodsync/storage"
)

const (
	mimeMP4  = "video/mp4"
	mimeJPEG = "image/jpeg"

	thumbnailSuffix = "_TN.jpg"
)

// DownloadPending downloads every indexed item to the download directory.
// Failures are logged per item and do not stop the batch; the item stays
// indexed and is retried on the next run.
func (p *Pipeline) DownloadPending(ctx context.Context, rows []*storage.Item) {
	for _, item := range rows {
		if item.Status != storage.StatusIndexed {
			continue
		}
		dest := filepath.Join(p.downloadDir, item.InternalID+".mp4")
		if err := p.fetcher.Fetch(ctx, item.YouTubeID, dest); err != nil {
			p.log.Error().Err(err).
				Str("internal_id", item.InternalID).
				Str("video_id", item.YouTubeID).
				Msg("download failed")
			continue
		}
	}
}

// EncodeAll normalizes every file in the download directory, regardless of
// which creator it belongs to. Encoding is the one global stage; the
// transcoder's skip-if-exists rule keeps reruns cheap.
func (p *Pipeline) EncodeAll(ctx context.Context) error {
	entries, err := os.ReadDir(p.downloadDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read download dir: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".mp4" {
			continue
		}
		input := filepath.Join(p.downloadDir, entry.Name())
		output := filepath.Join(p.encodeDir, entry.Name())
		if err := p.encoder.Transcode(ctx, input, output); err != nil {
			p.log.Error().Err(err).
				Str("file", entry.Name()).
				Msg("transcode failed")
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
	return nil
}

// UploadPending uploads every encoded indexed item to the creator's remote
// video folder. An item without an encoded file is skipped.
func (p *Pipeline) UploadPending(ctx context.Context, creator *storage.Creator, rows []*storage.Item) {
	for _, item := range rows {
		if item.Status != storage.StatusIndexed {
			continue
		}
		name := item.InternalID + ".mp4"
		local := filepath.Join(p.encodeDir, name)
		id, err := p.remote.Upload(ctx, creator.VideoFolderID, name, local, mimeMP4)
		if err != nil {
			p.log.Error().Err(err).
				Str("internal_id", item.InternalID).
				Msg("upload failed")
			continue
		}
		if id != "" {
			p.log.Info().
				Str("internal_id", item.InternalID).
				Str("file_id", id).
				Msg("video uploaded")
		}
	}
}

// MirrorThumbnails downloads and uploads the thumbnail of every item whose
// thumbnail is not yet present in the creator's remote thumbnail folder.
// Thumbnails are mirrored regardless of item status so an uploaded video is
// never left without its cover image.
func (p *Pipeline) MirrorThumbnails(ctx context.Context, creator *storage.Creator, rows []*storage.Item) {
	existing, err := p.remote.ThumbnailStems(ctx, creator.ThumbnailFolderID)
	if err != nil {
		p.log.Error().Err(err).
			Str("creator", creator.Key).
			Msg("list remote thumbnails failed")
		return
	}

	for _, item := range rows {
		if item.Thumbnail == "" || existing[item.InternalID] {
			continue
		}
		name := item.InternalID + thumbnailSuffix
		local := filepath.Join(p.thumbnailDir, name)
		if err := p.fetchImage(ctx, item.Thumbnail, local); err != nil {
			p.log.Error().Err(err).
				Str("internal_id", item.InternalID).
				Msg("thumbnail download failed")
			continue
		}
		if _, err := p.remote.Upload(ctx, creator.ThumbnailFolderID, name, local, mimeJPEG); err != nil {
			p.log.Error().Err(err).
				Str("internal_id", item.InternalID).
				Msg("thumbnail upload failed")
			continue
		}
	}
}

// fetchImage downloads url to destPath. Existing files are kept, so a rerun
// never refetches an image it already has.
func (p *Pipeline) fetchImage(ctx context.Context, url, destPath string) error {
	if _, err := os.Stat(destPath); err == nil {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(destPath), 0755); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := p.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("fetch image: status %d", resp.StatusCode)
	}

	f, err := os.Create(destPath)
	if err != nil {
		return err
	}
	if _, err := io.Copy(f, resp.Body); err != nil {
		f.Close()
		os.Remove(destPath)
		return err
	}
	return f.Close()
}

// RefreshStatuses re-runs uploaded detection against the creator's remote
// folder and rewrites the section when any item flipped. Called after the
// upload stage so a finished run records its own uploads instead of leaving
// them for the next one.
func (p *Pipeline) RefreshStatuses(ctx context.Context, creator *storage.Creator, rows []*storage.Item) error {
	stems, err := p.remote.MP4Stems(ctx, creator.VideoFolderID)
	if err != nil {
		return fmt.Errorf("list remote videos: %w", err)
	}

	changed := 0
	for _, item := range rows {
		if item.Status == storage.StatusIndexed && stems[item.InternalID] {
			item.Status = storage.StatusUploaded
			changed++
		}
	}
	if changed == 0 {
		return nil
	}

	if err := p.store.SaveItems(ctx, creator.Key, rows); err != nil {
		return fmt.Errorf("save items: %w", err)
	}
	p.log.Info().
		Str("creator", creator.Key).
		Int("uploaded", changed).
		Msg("statuses refreshed")
	return nil
}
