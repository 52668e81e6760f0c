package youtube

import (
	"context"
	"strings"

	"google.golang.org/api/youtube/v3"

	"vodsync/retry"
)

// bannerRenderSuffix requests the full-width banner crop from the image CDN.
const bannerRenderSuffix = "=w2560-fcrop64=1,00000000ffffffff-k-c0xffffffff-no-nd-rj"

// ChannelProfile holds the write-once profile fields captured when a creator
// is first resolved.
type ChannelProfile struct {
	ID          string
	Title       string
	Created     string
	Description string
	Country     string
	Keywords    string
	Icon        string
	Banner      string
	// UploadsID is the channel's uploads playlist.
	UploadsID string
}

// ChannelIDByHandle resolves a channel handle to its channel ID.
// A handle the source does not know yields ErrChannelNotFound.
func (c *Client) ChannelIDByHandle(ctx context.Context, handle string) (string, error) {
	handle = strings.TrimPrefix(handle, "@")

	var channelID string
	err := retry.Do(ctx, c.retryConfig(), apiErrorClassifier, func(ctx context.Context) error {
		call := c.svc.Channels.List([]string{"id"}).
			ForHandle(handle).
			Context(ctx)

		resp, err := call.Do()
		if err != nil {
			if ctx.Err() != nil {
				return ErrNetworkTimeout
			}
			return err
		}

		if len(resp.Items) == 0 {
			return ErrChannelNotFound
		}

		channelID = resp.Items[0].Id
		return nil
	})

	if err != nil {
		return "", &APIError{Op: "resolve", ID: handle, Err: err}
	}

	return channelID, nil
}

// ChannelProfile fetches the full profile and branding for a channel ID,
// including the uploads playlist identifier.
func (c *Client) ChannelProfile(ctx context.Context, channelID string) (*ChannelProfile, error) {
	var profile *ChannelProfile
	err := retry.Do(ctx, c.retryConfig(), apiErrorClassifier, func(ctx context.Context) error {
		call := c.svc.Channels.List([]string{"snippet", "brandingSettings", "contentDetails"}).
			Id(channelID).
			Context(ctx)

		resp, err := call.Do()
		if err != nil {
			if ctx.Err() != nil {
				return ErrNetworkTimeout
			}
			return err
		}

		if len(resp.Items) == 0 {
			return ErrChannelNotFound
		}

		profile = buildProfile(resp.Items[0], channelID)
		return nil
	})

	if err != nil {
		return nil, &APIError{Op: "profile", ID: channelID, Err: err}
	}

	return profile, nil
}

// buildProfile maps an API channel resource onto the profile fields.
func buildProfile(ch *youtube.Channel, channelID string) *ChannelProfile {
	p := &ChannelProfile{ID: channelID}

	if ch.Snippet != nil {
		p.Created = ch.Snippet.PublishedAt
		p.Icon = channelIconURL(ch.Snippet.Thumbnails)
	}

	if ch.BrandingSettings != nil {
		if bc := ch.BrandingSettings.Channel; bc != nil {
			p.Title = bc.Title
			p.Description = bc.Description
			p.Keywords = bc.Keywords
			p.Country = bc.Country
		}
		p.Banner = channelBannerURL(ch.BrandingSettings.Image, channelID)
	} else {
		p.Banner = channelBannerURL(nil, channelID)
	}

	if ch.ContentDetails != nil && ch.ContentDetails.RelatedPlaylists != nil {
		p.UploadsID = ch.ContentDetails.RelatedPlaylists.Uploads
	}

	return p
}

// channelIconURL picks the best available icon, high quality first.
func channelIconURL(thumbs *youtube.ThumbnailDetails) string {
	if thumbs == nil {
		return ""
	}
	for _, t := range []*youtube.Thumbnail{thumbs.High, thumbs.Medium, thumbs.Default} {
		if t != nil && t.Url != "" {
			return t.Url
		}
	}
	return ""
}

// channelBannerURL resolves the banner image URL, falling back to the CDN
// path derived from the channel ID when branding carries none. The render
// suffix is always appended.
func channelBannerURL(img *youtube.ImageSettings, channelID string) string {
	banner := ""
	if img != nil {
		switch {
		case img.BannerExternalUrl != "":
			banner = img.BannerExternalUrl
		case img.BannerImageUrl != "":
			banner = img.BannerImageUrl
		}
	}
	if banner == "" {
		banner = "https://yt3.googleusercontent.com/banner-vfl/" + channelID
	}
	return banner + bannerRenderSuffix
}
