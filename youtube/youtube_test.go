package youtube

import (
	"reflect"
	"testing"

	yt "google.golang.org/api/youtube/v3"
)

func TestVideoThumbnailURL(t *testing.T) {
	tests := []struct {
		name   string
		thumbs *yt.ThumbnailDetails
		want   string
	}{
		{"nil details", nil, ""},
		{
			"maxres preferred",
			&yt.ThumbnailDetails{
				Maxres:   &yt.Thumbnail{Url: "maxres"},
				Standard: &yt.Thumbnail{Url: "standard"},
				High:     &yt.Thumbnail{Url: "high"},
			},
			"maxres",
		},
		{
			"standard when no maxres",
			&yt.ThumbnailDetails{
				Standard: &yt.Thumbnail{Url: "standard"},
				High:     &yt.Thumbnail{Url: "high"},
			},
			"standard",
		},
		{
			"high as last resort",
			&yt.ThumbnailDetails{High: &yt.Thumbnail{Url: "high"}},
			"high",
		},
		{
			"default quality not used",
			&yt.ThumbnailDetails{Default: &yt.Thumbnail{Url: "default"}},
			"",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := videoThumbnailURL(tt.thumbs); got != tt.want {
				t.Errorf("videoThumbnailURL() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestChannelIconURL(t *testing.T) {
	thumbs := &yt.ThumbnailDetails{
		Default: &yt.Thumbnail{Url: "default"},
		Medium:  &yt.Thumbnail{Url: "medium"},
	}
	if got := channelIconURL(thumbs); got != "medium" {
		t.Errorf("channelIconURL() = %q, want medium", got)
	}
	if got := channelIconURL(nil); got != "" {
		t.Errorf("channelIconURL(nil) = %q, want empty", got)
	}
}

func TestChannelBannerURL(t *testing.T) {
	img := &yt.ImageSettings{BannerExternalUrl: "https://example.com/banner"}
	want := "https://example.com/banner" + bannerRenderSuffix
	if got := channelBannerURL(img, "UC123"); got != want {
		t.Errorf("channelBannerURL() = %q, want %q", got, want)
	}

	// No branding image: fall back to the CDN path for the channel.
	got := channelBannerURL(nil, "UC123")
	want = "https://yt3.googleusercontent.com/banner-vfl/UC123" + bannerRenderSuffix
	if got != want {
		t.Errorf("channelBannerURL(nil) = %q, want %q", got, want)
	}
}

func TestBuildDetailDefaultsCounters(t *testing.T) {
	d := buildDetail(&yt.Video{Id: "vid"})
	if d.Views != "0" || d.Likes != "0" || d.Comments != "0" {
		t.Errorf("counters = %s/%s/%s, want 0/0/0", d.Views, d.Likes, d.Comments)
	}
}

func TestBuildDetail(t *testing.T) {
	v := &yt.Video{
		Id: "vid",
		Snippet: &yt.VideoSnippet{
			Title:       "Title",
			PublishedAt: "2024-01-01T00:00:00Z",
			Description: "desc",
			Tags:        []string{"a", "b"},
			Thumbnails:  &yt.ThumbnailDetails{Maxres: &yt.Thumbnail{Url: "thumb"}},
		},
		ContentDetails: &yt.VideoContentDetails{Duration: "PT1M"},
		Statistics:     &yt.VideoStatistics{ViewCount: 100, LikeCount: 5},
	}

	d := buildDetail(v)
	if d.Title != "Title" || d.Duration != "PT1M" || d.Thumbnail != "thumb" {
		t.Errorf("buildDetail() = %+v", d)
	}
	if d.Views != "100" || d.Likes != "5" || d.Comments != "0" {
		t.Errorf("counters = %s/%s/%s, want 100/5/0", d.Views, d.Likes, d.Comments)
	}
}

func TestFormatTags(t *testing.T) {
	if got := FormatTags(nil); got != "[]" {
		t.Errorf("FormatTags(nil) = %q, want []", got)
	}
	if got := FormatTags([]string{"one"}); got != "['one']" {
		t.Errorf("FormatTags() = %q, want ['one']", got)
	}
	if got := FormatTags([]string{"a", "b"}); got != "['a', 'b']" {
		t.Errorf("FormatTags() = %q, want ['a', 'b']", got)
	}
}

func TestChunkIDs(t *testing.T) {
	ids := []string{"a", "b", "c", "d", "e"}
	chunks := chunkIDs(ids, 2)
	want := [][]string{{"a", "b"}, {"c", "d"}, {"e"}}
	if !reflect.DeepEqual(chunks, want) {
		t.Errorf("chunkIDs() = %v, want %v", chunks, want)
	}

	if chunks := chunkIDs(nil, 50); chunks != nil {
		t.Errorf("chunkIDs(nil) = %v, want nil", chunks)
	}
}
