package scraper

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	"github.com/lenscatalog/dpreview-scraper/internal/models"
	"github.com/lenscatalog/dpreview-scraper/internal/parser"
)

var yearPattern = regexp.MustCompile(`\b(19|20)\d{2}\b`)

// SearchScraper walks paginated camera listing pages and collects product
// stubs for the crawl queue.
type SearchScraper struct {
	fetcher Fetcher
	parser  *parser.DPReviewParser
	baseURL string
	logger  *slog.Logger

	// SinceYear drops results announced before the given year. Zero keeps
	// everything, including results with no parseable date.
	SinceYear int
}

func NewSearchScraper(fetcher Fetcher, baseURL string) *SearchScraper {
	return &SearchScraper{
		fetcher: fetcher,
		parser:  parser.NewDPReviewParser(),
		baseURL: baseURL,
		logger:  slog.Default().With("component", "search_scraper"),
	}
}

// CrawlListing fetches every page of a listing URL and returns the combined
// results. Pagination follows the page= query parameter.
func (s *SearchScraper) CrawlListing(ctx context.Context, listingURL string) ([]models.SearchResult, error) {
	s.logger.Info("starting listing crawl", "url", listingURL)

	var all []models.SearchResult
	pageNum := 1

	for {
		select {
		case <-ctx.Done():
			return all, ctx.Err()
		default:
		}

		pageURL := listingPageURL(absoluteURL(s.baseURL, listingURL), pageNum)
		html, err := s.fetcher.Fetch(ctx, pageURL)
		if err != nil {
			return all, fmt.Errorf("failed to fetch listing page %d: %w", pageNum, err)
		}

		results, err := s.parser.ParseSearchResults(html)
		if err != nil {
			return all, fmt.Errorf("failed to parse listing page %d: %w", pageNum, err)
		}
		if len(results) == 0 {
			s.logger.Info("empty listing page, stopping", "page", pageNum)
			break
		}

		all = append(all, results...)
		s.logger.Info("processed listing page", "page", pageNum, "count", len(results), "total", len(all))

		pagination := s.parser.ExtractPagination(html)
		if !pagination.HasNext && pageNum >= pagination.TotalPages {
			break
		}
		pageNum++
	}

	if s.SinceYear > 0 {
		all = filterSinceYear(all, s.SinceYear)
		s.logger.Info("applied year filter", "since", s.SinceYear, "remaining", len(all))
	}

	s.logger.Info("listing crawl completed", "total", len(all))
	return all, nil
}

// listingPageURL appends or replaces the page query parameter.
func listingPageURL(listingURL string, page int) string {
	if page <= 1 {
		return listingURL
	}
	sep := "?"
	if strings.Contains(listingURL, "?") {
		sep = "&"
	}
	return fmt.Sprintf("%s%spage=%d", listingURL, sep, page)
}

// filterSinceYear keeps results whose announcement year is at or after the
// cutoff. Results without a parseable year stay in.
func filterSinceYear(results []models.SearchResult, sinceYear int) []models.SearchResult {
	filtered := make([]models.SearchResult, 0, len(results))
	for _, r := range results {
		m := yearPattern.FindString(r.Announced)
		if m == "" {
			filtered = append(filtered, r)
			continue
		}
		year, err := strconv.Atoi(m)
		if err != nil || year >= sinceYear {
			filtered = append(filtered, r)
		}
	}
	return filtered
}
