// Package scraper drives the crawl: it fetches rendered pages through the
// browser, feeds them to the parser, and persists the results.
package scraper

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/lenscatalog/dpreview-scraper/internal/browser"
	"github.com/lenscatalog/dpreview-scraper/internal/ratelimit"
)

var (
	ErrPageNotFound = errors.New("page not found")
	ErrBlocked      = errors.New("blocked by anti-bot challenge")
)

// Fetcher returns the rendered HTML of a URL.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// BrowserFetcher fetches pages through a real browser, pacing requests with
// an adaptive rate limiter.
type BrowserFetcher struct {
	browser    *browser.Browser
	limiter    *ratelimit.AdaptiveRateLimiter
	maxRetries int
	logger     *slog.Logger
}

func NewBrowserFetcher(b *browser.Browser, limiter *ratelimit.AdaptiveRateLimiter, maxRetries int) *BrowserFetcher {
	if maxRetries < 1 {
		maxRetries = 1
	}
	return &BrowserFetcher{
		browser:    b,
		limiter:    limiter,
		maxRetries: maxRetries,
		logger:     slog.Default().With("component", "fetcher"),
	}
}

func (f *BrowserFetcher) Fetch(ctx context.Context, url string) (string, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return "", err
	}

	page, err := f.browser.NewPage()
	if err != nil {
		f.limiter.RecordError()
		return "", fmt.Errorf("failed to create page: %w", err)
	}
	defer page.Close()

	if err := f.browser.NavigateWithRetry(page, url, f.maxRetries); err != nil {
		f.limiter.RecordError()
		return "", fmt.Errorf("failed to load %s: %w", url, err)
	}

	html, err := f.browser.Content(page)
	if err != nil {
		f.limiter.RecordError()
		return "", err
	}

	f.limiter.RecordSuccess()
	f.logger.Debug("fetched page", "url", url, "bytes", len(html))
	return html, nil
}

// absoluteURL resolves a possibly root-relative site path against the base.
func absoluteURL(baseURL, path string) string {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	return strings.TrimSuffix(baseURL, "/") + path
}
