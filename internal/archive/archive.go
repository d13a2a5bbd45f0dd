// Package archive looks up and creates Wayback Machine snapshots of review
// pages. Snapshot URLs end up in the DPRReviewArchiveURL field of the output
// record, so reviews stay reachable after the source page goes away.
package archive

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	defaultAvailabilityURL = "https://archive.org/wayback/available"
	defaultSaveURL         = "https://web.archive.org/save"
)

type availabilityResponse struct {
	ArchivedSnapshots struct {
		Closest struct {
			Available bool   `json:"available"`
			URL       string `json:"url"`
			Timestamp string `json:"timestamp"`
		} `json:"closest"`
	} `json:"archived_snapshots"`
}

// Client talks to the Wayback Machine. Save requests are spaced out by
// minDelay; the service throttles aggressive snapshotters.
type Client struct {
	http            *resty.Client
	availabilityURL string
	saveURL         string
	minDelay        time.Duration
	lastSave        time.Time
	mu              sync.Mutex
	logger          *slog.Logger
}

type Option func(*Client)

// WithEndpoints overrides the service URLs, used in tests.
func WithEndpoints(availabilityURL, saveURL string) Option {
	return func(c *Client) {
		c.availabilityURL = availabilityURL
		c.saveURL = saveURL
	}
}

func WithMinDelay(d time.Duration) Option {
	return func(c *Client) {
		c.minDelay = d
	}
}

func NewClient(timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		http: resty.New().
			SetTimeout(timeout).
			SetRetryCount(2).
			SetRetryWaitTime(2 * time.Second),
		availabilityURL: defaultAvailabilityURL,
		saveURL:         defaultSaveURL,
		minDelay:        5 * time.Second,
		logger:          slog.Default().With("component", "archive"),
	}

	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Snapshot returns the closest existing snapshot URL for a page, or "" when
// none exists.
func (c *Client) Snapshot(ctx context.Context, pageURL string) (string, error) {
	var result availabilityResponse

	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("url", pageURL).
		SetResult(&result).
		Get(c.availabilityURL)
	if err != nil {
		return "", fmt.Errorf("availability lookup failed: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("availability lookup returned status %d", resp.StatusCode())
	}

	closest := result.ArchivedSnapshots.Closest
	if !closest.Available || closest.URL == "" {
		return "", nil
	}

	c.logger.Debug("found existing snapshot", "url", closest.URL, "timestamp", closest.Timestamp)
	return closest.URL, nil
}

// Save requests a fresh snapshot of a page and returns the snapshot URL. Calls
// are serialized and paced by the client's minimum delay.
func (c *Client) Save(ctx context.Context, pageURL string) (string, error) {
	c.mu.Lock()
	if elapsed := time.Since(c.lastSave); elapsed < c.minDelay {
		wait := c.minDelay - elapsed
		c.mu.Unlock()
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(wait):
		}
		c.mu.Lock()
	}
	c.lastSave = time.Now()
	c.mu.Unlock()

	resp, err := c.http.R().
		SetContext(ctx).
		Get(c.saveURL + "/" + pageURL)
	if err != nil {
		return "", fmt.Errorf("save request failed: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("save request returned status %d", resp.StatusCode())
	}

	if loc := resp.Header().Get("Content-Location"); loc != "" {
		return "https://web.archive.org" + loc, nil
	}

	// The service redirects to the snapshot when it skips re-capturing.
	final := resp.RawResponse.Request.URL.String()
	if final != "" && final != c.saveURL+"/"+pageURL {
		return final, nil
	}

	return "", fmt.Errorf("save response carried no snapshot location")
}

// Archive returns a snapshot URL for a page, reusing an existing snapshot
// when one is already on file and saving a new one otherwise.
func (c *Client) Archive(ctx context.Context, pageURL string) (string, error) {
	snapshot, err := c.Snapshot(ctx, pageURL)
	if err != nil {
		c.logger.Warn("availability lookup failed, attempting save", "url", pageURL, "error", err)
	}
	if snapshot != "" {
		return snapshot, nil
	}

	snapshot, err = c.Save(ctx, pageURL)
	if err != nil {
		return "", fmt.Errorf("failed to archive %s: %w", pageURL, err)
	}

	c.logger.Info("archived page", "url", pageURL, "snapshot", snapshot)
	return snapshot, nil
}
