// Package sponsorblock fetches community skip-segment annotations and formats
// them for the ledger. Annotation lookups are best-effort enrichment: any
// failure degrades to an empty result and is never surfaced to the caller.
package sponsorblock

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"vodsync/catalog"
)

const (
	defaultBaseURL = "https://sponsor.ajay.app"
	// defaultTimeout bounds each annotation request. There is no other
	// cancellation path; a hung call ends here.
	defaultTimeout = 10 * time.Second
	// defaultRPS keeps the concurrent fan-out polite to the public API.
	defaultRPS = 10
)

// Segment is one annotated skip range, in fractional seconds.
type Segment struct {
	Start float64
	End   float64
}

// Result is the aggregation outcome for a single video. Available
// distinguishes "no segments" from "annotation source unreachable" so callers
// never confuse an outage with an empty annotation set.
type Result struct {
	Lines     []string
	Available bool
}

// Joined renders the result for the ledger's Ad Timestamps column.
func (r Result) Joined() string {
	return strings.Join(r.Lines, ", ")
}

// Client queries the SponsorBlock API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	limiter    *rate.Limiter
	timeout    time.Duration
}

// NewClient creates a client for the public SponsorBlock API.
func NewClient() *Client {
	return &Client{
		httpClient: &http.Client{},
		baseURL:    defaultBaseURL,
		limiter:    rate.NewLimiter(rate.Limit(defaultRPS), defaultRPS),
		timeout:    defaultTimeout,
	}
}

// NewClientWithTimeout creates a client with a custom per-request timeout.
func NewClientWithTimeout(timeout time.Duration) *Client {
	c := NewClient()
	if timeout > 0 {
		c.timeout = timeout
	}
	return c
}

// NewClientWithBaseURL creates a client against a custom endpoint.
// Used by tests to point at a local server.
func NewClientWithBaseURL(baseURL string, timeout time.Duration) *Client {
	c := NewClientWithTimeout(timeout)
	c.baseURL = baseURL
	return c
}

// skipSegmentsResponse mirrors the API's per-video segment list.
type skipSegmentsResponse []struct {
	Segment [2]float64 `json:"segment"`
}

// FetchSegments fetches the skip segments for one video. A 404 from the API
// means the video has no annotations and is returned as an empty list.
func (c *Client) FetchSegments(ctx context.Context, videoID string) ([]Segment, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	endpoint := c.baseURL + "/api/skipSegments?videoID=" + url.QueryEscape(videoID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch segments: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch segments: unexpected status %d", resp.StatusCode)
	}

	var decoded skipSegmentsResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode segments: %w", err)
	}

	segments := make([]Segment, 0, len(decoded))
	for _, s := range decoded {
		segments = append(segments, Segment{Start: s.Segment[0], End: s.Segment[1]})
	}
	return segments, nil
}

// FetchAll fetches annotations for every video ID concurrently and returns
// once all requests have settled. A failed request yields an unavailable
// Result for that ID only; the other IDs are unaffected.
func (c *Client) FetchAll(ctx context.Context, videoIDs []string) map[string]Result {
	results := make(map[string]Result, len(videoIDs))

	var mu sync.Mutex
	var wg sync.WaitGroup
	for _, videoID := range videoIDs {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()

			segments, err := c.FetchSegments(ctx, id)
			result := Result{}
			if err == nil {
				result.Available = true
				result.Lines = FormatSegments(segments)
			}

			mu.Lock()
			results[id] = result
			mu.Unlock()
		}(videoID)
	}
	wg.Wait()

	return results
}

// FormatSegments renders segments as "H:MM:SS - H:MM:SS" lines, rounding to
// the nearest second.
func FormatSegments(segments []Segment) []string {
	if len(segments) == 0 {
		return nil
	}
	lines := make([]string, 0, len(segments))
	for _, s := range segments {
		lines = append(lines, catalog.FormatClock(s.Start)+" - "+catalog.FormatClock(s.End))
	}
	return lines
}
