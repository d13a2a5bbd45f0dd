package scraper

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/lenscatalog/dpreview-scraper/internal/archive"
	"github.com/lenscatalog/dpreview-scraper/internal/database"
	"github.com/lenscatalog/dpreview-scraper/internal/models"
	"github.com/lenscatalog/dpreview-scraper/internal/parser"
	"github.com/lenscatalog/dpreview-scraper/internal/queue"
	"github.com/lenscatalog/dpreview-scraper/internal/storage"
)

// ProductScraper turns one crawl task into a persisted camera record. Per
// product it fetches the overview page, the specifications page, and, when
// the product has been reviewed, the review page and its specifications.
type ProductScraper struct {
	fetcher  Fetcher
	parser   *parser.DPReviewParser
	writer   *storage.YAMLWriter
	progress *storage.ProgressTracker
	db       *database.DB    // optional
	archiver *archive.Client // optional
	baseURL  string
	logger   *slog.Logger
}

func NewProductScraper(fetcher Fetcher, writer *storage.YAMLWriter, progress *storage.ProgressTracker, baseURL string) *ProductScraper {
	return &ProductScraper{
		fetcher:  fetcher,
		parser:   parser.NewDPReviewParser(),
		writer:   writer,
		progress: progress,
		baseURL:  baseURL,
		logger:   slog.Default().With("component", "product_scraper"),
	}
}

// WithDatabase mirrors completed records into Postgres.
func (ps *ProductScraper) WithDatabase(db *database.DB) *ProductScraper {
	ps.db = db
	return ps
}

// WithArchiver snapshots review pages in the Wayback Machine.
func (ps *ProductScraper) WithArchiver(client *archive.Client) *ProductScraper {
	ps.archiver = client
	return ps
}

// ScrapeProduct processes one task end to end: fetch, parse, persist. The
// progress tracker and database are updated on both success and failure.
func (ps *ProductScraper) ScrapeProduct(ctx context.Context, task *queue.Task) (*models.Camera, error) {
	ps.logger.Info("scraping product", "product", task.ProductCode, "url", task.URL)

	camera, err := ps.scrape(ctx, task)
	if err != nil {
		ps.markFailed(ctx, task.ProductCode, err)
		return nil, err
	}

	if err := ps.writer.Write(camera); err != nil {
		ps.markFailed(ctx, task.ProductCode, err)
		return nil, fmt.Errorf("failed to write record: %w", err)
	}

	if err := ps.progress.UpdateStatus(task.ProductCode, storage.StatusCompleted, ""); err != nil {
		ps.logger.Warn("failed to update progress", "product", task.ProductCode, "error", err)
	}

	if ps.db != nil {
		if err := ps.db.SaveCameraRecord(ctx, camera); err != nil {
			ps.logger.Warn("failed to mirror record to database", "product", task.ProductCode, "error", err)
		}
	}

	ps.logger.Info("product completed", "product", task.ProductCode, "score", camera.ReviewScore)
	return camera, nil
}

func (ps *ProductScraper) scrape(ctx context.Context, task *queue.Task) (*models.Camera, error) {
	overviewURL := absoluteURL(ps.baseURL, task.URL)

	overviewHTML, err := ps.fetcher.Fetch(ctx, overviewURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch overview: %w", err)
	}

	specsHTML, err := ps.fetcher.Fetch(ctx, overviewURL+"/specifications")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch specifications: %w", err)
	}

	// Review pages are optional; most products never get a full review.
	reviewHTML := ""
	reviewSpecsHTML := ""
	reviewURL := ps.findReviewLink(overviewHTML)
	if reviewURL != "" {
		reviewURL = absoluteURL(ps.baseURL, reviewURL)

		if reviewHTML, err = ps.fetcher.Fetch(ctx, reviewURL); err != nil {
			ps.logger.Warn("failed to fetch review page, continuing without it",
				"product", task.ProductCode, "url", reviewURL, "error", err)
			reviewHTML = ""
		} else if specsLink := ps.findReviewSpecsLink(reviewHTML); specsLink != "" {
			specsURL := absoluteURL(ps.baseURL, specsLink)
			if reviewSpecsHTML, err = ps.fetcher.Fetch(ctx, specsURL); err != nil {
				ps.logger.Warn("failed to fetch review specifications, continuing without it",
					"product", task.ProductCode, "url", specsURL, "error", err)
				reviewSpecsHTML = ""
			}
		}
	}

	var stub *storage.ProgressEntry
	if entry, ok := ps.progress.Get(task.ProductCode); ok {
		stub = entry
	}

	var shortSpecs []string
	if stub != nil {
		shortSpecs = stub.ShortSpecs
	}

	camera, err := ps.parser.ParseProductPage(
		overviewHTML, specsHTML, reviewHTML, reviewSpecsHTML,
		task.ProductCode, overviewURL, shortSpecs)
	if err != nil {
		return nil, fmt.Errorf("failed to parse product pages: %w", err)
	}

	// A product page can carry less than its listing row did; backfill from
	// the discovery stub rather than emitting empty fields.
	if stub != nil {
		if camera.Name == "" {
			camera.Name = stub.Name
		}
		if camera.ImageURL == "" && stub.ImageURL != "" {
			camera.ImageURL = parser.StripSiteDomain(parser.StripThumbnailSize(stub.ImageURL))
		}
		if camera.Specs.Announced == "" {
			camera.Specs.Announced = stub.Announced
		}
	}

	if ps.archiver != nil && reviewURL != "" {
		snapshot, err := ps.archiver.Archive(ctx, reviewURL)
		if err != nil {
			ps.logger.Warn("failed to archive review page", "product", task.ProductCode, "error", err)
		} else {
			camera.DPRReviewArchiveURL = snapshot
		}
	}

	return camera, nil
}

// findReviewLink locates the full-review link on an overview page.
func (ps *ProductScraper) findReviewLink(overviewHTML string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(overviewHTML))
	if err != nil {
		return ""
	}

	selectors := []string{
		`a.actionButtonLink[href*="/reviews/"]`,
		`div.reviewPreview a[href*="/reviews/"]`,
		`a[href*="/reviews/"]:contains("Read review")`,
	}

	for _, selector := range selectors {
		if href, ok := doc.Find(selector).First().Attr("href"); ok && href != "" {
			return href
		}
	}
	return ""
}

// findReviewSpecsLink locates the specifications page of a multi-page review
// from the review's own navigation.
func (ps *ProductScraper) findReviewSpecsLink(reviewHTML string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(reviewHTML))
	if err != nil {
		return ""
	}

	link := ""
	doc.Find("a[href]").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		text := strings.TrimSpace(strings.ToLower(sel.Text()))
		if text != "specifications" && text != "specs" {
			return true
		}
		if href, ok := sel.Attr("href"); ok && href != "" {
			link = href
			return false
		}
		return true
	})
	return link
}

func (ps *ProductScraper) markFailed(ctx context.Context, productCode string, cause error) {
	if err := ps.progress.UpdateStatus(productCode, storage.StatusFailed, cause.Error()); err != nil {
		ps.logger.Warn("failed to update progress", "product", productCode, "error", err)
	}
	if ps.db != nil {
		if err := ps.db.UpdateCameraStatus(ctx, productCode, database.StatusFailed, cause.Error()); err != nil {
			ps.logger.Warn("failed to update database status", "product", productCode, "error", err)
		}
	}
}
