// Package youtube provides the metadata source client for catalog
// synchronization, built on YouTube Data API v3.
package youtube

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"

	"vodsync/retry"
)

// Sentinel errors for metadata source operations.
var (
	ErrChannelNotFound = errors.New("youtube: channel not found")
	ErrRateLimited     = errors.New("youtube: rate limited")
	ErrNetworkTimeout  = errors.New("youtube: network timeout")
)

// APIError wraps Data API errors with context about what failed.
// Use errors.As() to extract it:
//
//	var apiErr *youtube.APIError
//	if errors.As(err, &apiErr) {
//		fmt.Printf("%s %s failed: %v\n", apiErr.Op, apiErr.ID, apiErr.Err)
//	}
type APIError struct {
	// Op is the failed operation ("resolve", "profile", "playlist", "videos").
	Op string
	// ID is the handle, channel ID or playlist ID that was being fetched.
	ID string
	// Err is the underlying error.
	Err error
}

// Error returns a string representation of the API error.
func (e *APIError) Error() string {
	return "youtube: " + e.Op + " " + e.ID + ": " + e.Err.Error()
}

// Unwrap returns the underlying error for use with errors.Is() and errors.As().
func (e *APIError) Unwrap() error { return e.Err }

// Client is the metadata source client. It wraps the Data API v3 service and
// retries transient failures with exponential backoff.
type Client struct {
	svc *youtube.Service

	// RetryConfig overrides the default retry behavior when non-nil.
	RetryConfig *retry.Config
}

// NewClient creates a Data API v3 client authenticated by API key.
func NewClient(ctx context.Context, apiKey string) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("api key required")
	}

	svc, err := youtube.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create youtube service: %w", err)
	}

	cfg := retry.DefaultConfig()
	return &Client{svc: svc, RetryConfig: &cfg}, nil
}

func (c *Client) retryConfig() retry.Config {
	if c.RetryConfig != nil {
		return *c.RetryConfig
	}
	return retry.DefaultConfig()
}

// apiErrorClassifier determines if a Data API error is retryable.
func apiErrorClassifier(err error) bool {
	if err == nil {
		return false
	}

	// Not-found is permanent.
	if errors.Is(err, ErrChannelNotFound) {
		return false
	}

	// Rate limit errors are retryable.
	if strings.Contains(err.Error(), "quotaExceeded") {
		return true
	}
	if strings.Contains(err.Error(), "rateLimitExceeded") {
		return true
	}

	if errors.Is(err, context.Canceled) {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	// Default to retryable for unknown errors.
	return true
}
