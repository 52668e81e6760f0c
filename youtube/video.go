package youtube

import (
	"context"
	"strconv"
	"strings"

	"google.golang.org/api/youtube/v3"

	"vodsync/retry"
)

// detailChunkSize is the Data API maximum for a single videos.list call.
const detailChunkSize = 50

// VideoDetail carries the raw metadata fetched for one video. Duration is the
// API's compact form; decoding happens in the catalog core. Counter fields are
// "0" when the source omits them.
type VideoDetail struct {
	ID          string
	Title       string
	PublishedAt string
	// Duration is the compact ISO-8601 duration string (e.g. "PT1H2M3S").
	Duration    string
	Description string
	Thumbnail   string
	Tags        []string
	Views       string
	Likes       string
	Comments    string
}

// PlaylistVideoIDs fetches the complete, newest-first list of video IDs in a
// playlist, following continuation tokens until the feed is exhausted. The
// full list is fetched every run; internal ID stability depends on it.
func (c *Client) PlaylistVideoIDs(ctx context.Context, playlistID string) ([]string, error) {
	var ids []string

	pageToken := ""
	for {
		err := retry.Do(ctx, c.retryConfig(), apiErrorClassifier, func(ctx context.Context) error {
			call := c.svc.PlaylistItems.List([]string{"contentDetails"}).
				PlaylistId(playlistID).
				MaxResults(detailChunkSize).
				PageToken(pageToken).
				Context(ctx)

			resp, err := call.Do()
			if err != nil {
				if ctx.Err() != nil {
					return ErrNetworkTimeout
				}
				return err
			}

			for _, item := range resp.Items {
				if item.ContentDetails != nil {
					ids = append(ids, item.ContentDetails.VideoId)
				}
			}
			pageToken = resp.NextPageToken
			return nil
		})

		if err != nil {
			return nil, &APIError{Op: "playlist", ID: playlistID, Err: err}
		}

		if pageToken == "" {
			break
		}
	}

	return ids, nil
}

// VideoDetails fetches metadata for the given video IDs in chunks of 50,
// returning results keyed by video ID. IDs the source no longer knows are
// simply absent from the result.
func (c *Client) VideoDetails(ctx context.Context, videoIDs []string) (map[string]*VideoDetail, error) {
	details := make(map[string]*VideoDetail, len(videoIDs))

	for _, chunk := range chunkIDs(videoIDs, detailChunkSize) {
		err := retry.Do(ctx, c.retryConfig(), apiErrorClassifier, func(ctx context.Context) error {
			call := c.svc.Videos.List([]string{"snippet", "contentDetails", "statistics"}).
				Id(chunk...).
				MaxResults(detailChunkSize).
				Context(ctx)

			resp, err := call.Do()
			if err != nil {
				if ctx.Err() != nil {
					return ErrNetworkTimeout
				}
				return err
			}

			for _, v := range resp.Items {
				details[v.Id] = buildDetail(v)
			}
			return nil
		})

		if err != nil {
			return nil, &APIError{Op: "videos", ID: strings.Join(chunk, ","), Err: err}
		}
	}

	return details, nil
}

// buildDetail maps an API video resource onto a VideoDetail.
func buildDetail(v *youtube.Video) *VideoDetail {
	d := &VideoDetail{
		ID:       v.Id,
		Views:    "0",
		Likes:    "0",
		Comments: "0",
	}

	if v.Snippet != nil {
		d.Title = v.Snippet.Title
		d.PublishedAt = v.Snippet.PublishedAt
		d.Description = v.Snippet.Description
		d.Thumbnail = videoThumbnailURL(v.Snippet.Thumbnails)
		d.Tags = v.Snippet.Tags
	}
	if v.ContentDetails != nil {
		d.Duration = v.ContentDetails.Duration
	}
	if v.Statistics != nil {
		d.Views = strconv.FormatUint(v.Statistics.ViewCount, 10)
		d.Likes = strconv.FormatUint(v.Statistics.LikeCount, 10)
		d.Comments = strconv.FormatUint(v.Statistics.CommentCount, 10)
	}

	return d
}

// videoThumbnailURL picks the highest-quality thumbnail available.
func videoThumbnailURL(thumbs *youtube.ThumbnailDetails) string {
	if thumbs == nil {
		return ""
	}
	for _, t := range []*youtube.Thumbnail{thumbs.Maxres, thumbs.Standard, thumbs.High} {
		if t != nil && t.Url != "" {
			return t.Url
		}
	}
	return ""
}

// FormatTags serializes a tag list for the ledger's Tags column.
func FormatTags(tags []string) string {
	if len(tags) == 0 {
		return "[]"
	}
	return "['" + strings.Join(tags, "', '") + "']"
}

// chunkIDs splits ids into slices of at most size elements.
func chunkIDs(ids []string, size int) [][]string {
	var chunks [][]string
	for start := 0; start < len(ids); start += size {
		end := start + size
		if end > len(ids) {
			end = len(ids)
		}
		chunks = append(chunks, ids[start:end])
	}
	return chunks
}
