// Package drive implements the remote file store on Google Drive.
package drive

import (
	"context"
	"fmt"
	"os"
	"strings"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

// MIME types that count toward presence checks. Foreign items in a folder are
// excluded by filtering on these.
const (
	mimeMP4  = "video/mp4"
	mimeJPEG = "image/jpeg"
)

// thumbnailSuffix is the naming convention for mirrored thumbnails.
const thumbnailSuffix = "_TN.jpg"

// File is one remote file entry.
type File struct {
	ID       string
	Name     string
	MimeType string
	Size     int64
}

// Store is the drive/v3 remote file store.
type Store struct {
	svc *drive.Service
}

// NewStore creates a remote file store authenticated from a service account
// credentials file.
func NewStore(ctx context.Context, credentialsFile string) (*Store, error) {
	svc, err := drive.NewService(ctx,
		option.WithCredentialsFile(credentialsFile),
		option.WithScopes(drive.DriveScope),
	)
	if err != nil {
		return nil, fmt.Errorf("create drive service: %w", err)
	}
	return &Store{svc: svc}, nil
}

// ListFolder lists every non-trashed file in a folder, following pagination
// to exhaustion. Shared drives are included.
func (s *Store) ListFolder(ctx context.Context, folderID string) ([]File, error) {
	var files []File

	pageToken := ""
	for {
		call := s.svc.Files.List().
			Q(fmt.Sprintf("'%s' in parents and trashed=false", folderID)).
			PageSize(100).
			Fields("nextPageToken, files(id, name, mimeType, size)").
			SupportsAllDrives(true).
			IncludeItemsFromAllDrives(true).
			Context(ctx)
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}

		resp, err := call.Do()
		if err != nil {
			return nil, fmt.Errorf("list folder %s: %w", folderID, err)
		}

		for _, f := range resp.Files {
			files = append(files, File{ID: f.Id, Name: f.Name, MimeType: f.MimeType, Size: f.Size})
		}

		pageToken = resp.NextPageToken
		if pageToken == "" {
			break
		}
	}

	return files, nil
}

// MP4Stems returns the filename stems of the folder's mp4 files, keyed for
// uploaded-detection lookups. Only video/mp4 entries count.
func (s *Store) MP4Stems(ctx context.Context, folderID string) (map[string]bool, error) {
	files, err := s.ListFolder(ctx, folderID)
	if err != nil {
		return nil, err
	}
	return mp4Stems(files), nil
}

// ThumbnailStems returns the internal IDs whose thumbnails already exist in
// the folder. Only image/jpeg entries with the thumbnail suffix count.
func (s *Store) ThumbnailStems(ctx context.Context, folderID string) (map[string]bool, error) {
	files, err := s.ListFolder(ctx, folderID)
	if err != nil {
		return nil, err
	}
	return thumbnailStems(files), nil
}

// Upload creates a file in the folder from a local path and returns the
// created file's ID. A missing local file returns ("", nil): the item simply
// is not ready to publish yet.
func (s *Store) Upload(ctx context.Context, folderID, name, localPath, mimeType string) (string, error) {
	f, err := os.Open(localPath)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("open %s: %w", localPath, err)
	}
	defer f.Close()

	meta := &drive.File{
		Name:    name,
		Parents: []string{folderID},
	}

	created, err := s.svc.Files.Create(meta).
		Media(f, googleapi.ContentType(mimeType)).
		SupportsAllDrives(true).
		Fields("id").
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", name, err)
	}

	return created.Id, nil
}

func mp4Stems(files []File) map[string]bool {
	stems := make(map[string]bool)
	for _, f := range files {
		if f.MimeType != mimeMP4 {
			continue
		}
		stems[strings.TrimSuffix(f.Name, ".mp4")] = true
	}
	return stems
}

func thumbnailStems(files []File) map[string]bool {
	stems := make(map[string]bool)
	for _, f := range files {
		if f.MimeType != mimeJPEG {
			continue
		}
		stems[strings.TrimSuffix(f.Name, thumbnailSuffix)] = true
	}
	return stems
}
