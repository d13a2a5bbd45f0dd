package scraper

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lenscatalog/dpreview-scraper/internal/queue"
	"github.com/lenscatalog/dpreview-scraper/internal/storage"
)

// stubFetcher serves canned HTML keyed by exact URL.
type stubFetcher struct {
	pages   map[string]string
	fetched []string
}

func (f *stubFetcher) Fetch(_ context.Context, url string) (string, error) {
	f.fetched = append(f.fetched, url)
	html, ok := f.pages[url]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrPageNotFound, url)
	}
	return html, nil
}

func listingPage(rows string, next bool) string {
	nextLink := ""
	if next {
		nextLink = `<link rel="next" href="?page=2">`
	}
	return fmt.Sprintf(`<head>%s</head><table>%s</table>`, nextLink, rows)
}

func productRow(code, name, announced string) string {
	return fmt.Sprintf(`<tr class="product" id="product_%s">
		<td class="info">
			<div class="name"><a href="/products/x/%s">%s</a></div>
			<div class="announcementDate">%s</div>
		</td>
	</tr>`, code, code, name, announced)
}

func TestCrawlListingFollowsPagination(t *testing.T) {
	fetcher := &stubFetcher{pages: map[string]string{
		"https://www.dpreview.com/products/cameras/all": listingPage(
			productRow("cam_one", "Cam One", "Announced Jan 5, 2026"), true),
		"https://www.dpreview.com/products/cameras/all?page=2": listingPage(
			productRow("cam_two", "Cam Two", "Announced Mar 2, 2024"), false),
	}}

	scraper := NewSearchScraper(fetcher, "https://www.dpreview.com")

	results, err := scraper.CrawlListing(context.Background(), "/products/cameras/all")
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "cam_one", results[0].ProductCode)
	assert.Equal(t, "cam_two", results[1].ProductCode)
	assert.Len(t, fetcher.fetched, 2)
}

func TestCrawlListingYearFilter(t *testing.T) {
	fetcher := &stubFetcher{pages: map[string]string{
		"https://www.dpreview.com/products/cameras/all": listingPage(
			productRow("old_cam", "Old Cam", "Announced Mar 2, 2019")+
				productRow("new_cam", "New Cam", "Announced Jan 5, 2026")+
				productRow("undated_cam", "Undated Cam", ""), false),
	}}

	scraper := NewSearchScraper(fetcher, "https://www.dpreview.com")
	scraper.SinceYear = 2020

	results, err := scraper.CrawlListing(context.Background(), "/products/cameras/all")
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "new_cam", results[0].ProductCode)
	assert.Equal(t, "undated_cam", results[1].ProductCode)
}

func TestCrawlListingFetchError(t *testing.T) {
	fetcher := &stubFetcher{pages: map[string]string{}}
	scraper := NewSearchScraper(fetcher, "https://www.dpreview.com")

	_, err := scraper.CrawlListing(context.Background(), "/products/cameras/all")
	assert.ErrorIs(t, err, ErrPageNotFound)
}

func newTestProductScraper(t *testing.T, fetcher Fetcher) (*ProductScraper, *storage.ProgressTracker) {
	t.Helper()

	dir := t.TempDir()
	writer, err := storage.NewYAMLWriter(filepath.Join(dir, "output"))
	require.NoError(t, err)

	progress, err := storage.NewProgressTracker(filepath.Join(dir, "progress.json"))
	require.NoError(t, err)

	return NewProductScraper(fetcher, writer, progress, "https://www.dpreview.com"), progress
}

const testOverview = `
<h1>Cam One Overview</h1>
<a class="actionButtonLink" href="/reviews/cam-one">Read review</a>`

const testSpecs = `
<table class="specsTable compact"><tbody>
	<tr><th class="label">Body type</th><td class="value">SLR-style mirrorless</td></tr>
</tbody></table>`

const testReview = `
<div class="navigation"><a href="/reviews/cam-one/7">Specifications</a></div>
<span class="overallScore" data-score="89">89%</span>`

const testReviewSpecs = `
<table class="contentTable">
	<tr><th>ISO</th><td>ISO 100 - 51200</td></tr>
</table>`

func TestScrapeProduct(t *testing.T) {
	fetcher := &stubFetcher{pages: map[string]string{
		"https://www.dpreview.com/products/x/cam_one":                testOverview,
		"https://www.dpreview.com/products/x/cam_one/specifications": testSpecs,
		"https://www.dpreview.com/reviews/cam-one":                   testReview,
		"https://www.dpreview.com/reviews/cam-one/7":                 testReviewSpecs,
	}}

	scraper, progress := newTestProductScraper(t, fetcher)
	require.NoError(t, progress.Add(&storage.ProgressEntry{ProductCode: "cam_one"}))

	task := queue.NewTask("cam_one", "/products/x/cam_one", 0)
	camera, err := scraper.ScrapeProduct(context.Background(), task)
	require.NoError(t, err)

	assert.Equal(t, "Cam One", camera.Name)
	assert.Equal(t, "SLR-style mirrorless", camera.Specs.BodyType)
	assert.Equal(t, "ISO 100 - 51200", camera.Specs.ISO)
	assert.Equal(t, 89, camera.ReviewScore)

	entry, _ := progress.Get("cam_one")
	assert.Equal(t, storage.StatusCompleted, entry.Status)

	// All four page variants were fetched.
	assert.Len(t, fetcher.fetched, 4)
}

func TestScrapeProductWithoutReview(t *testing.T) {
	fetcher := &stubFetcher{pages: map[string]string{
		"https://www.dpreview.com/products/x/cam_two":                `<h1>Cam Two Overview</h1>`,
		"https://www.dpreview.com/products/x/cam_two/specifications": testSpecs,
	}}

	scraper, progress := newTestProductScraper(t, fetcher)
	require.NoError(t, progress.Add(&storage.ProgressEntry{ProductCode: "cam_two"}))

	task := queue.NewTask("cam_two", "/products/x/cam_two", 0)
	camera, err := scraper.ScrapeProduct(context.Background(), task)
	require.NoError(t, err)

	assert.Zero(t, camera.ReviewScore)
	assert.True(t, camera.ReviewData.ReviewSummary.IsEmpty())
	assert.Len(t, fetcher.fetched, 2)
}

func TestScrapeProductBackfillsFromListing(t *testing.T) {
	fetcher := &stubFetcher{pages: map[string]string{
		"https://www.dpreview.com/products/x/cam_three":                `<div>no heading here</div>`,
		"https://www.dpreview.com/products/x/cam_three/specifications": testSpecs,
	}}

	scraper, progress := newTestProductScraper(t, fetcher)
	require.NoError(t, progress.Add(&storage.ProgressEntry{
		ProductCode: "cam_three",
		Name:        "Cam Three",
		ImageURL:    "https://1.img-dpreview.com/files/p/TS160x120~products/cam_three/shots/front.png",
		Announced:   "Jan 5, 2024",
		ShortSpecs:  []string{"24 megapixels", "Full frame sensor"},
	}))

	task := queue.NewTask("cam_three", "/products/x/cam_three", 0)
	camera, err := scraper.ScrapeProduct(context.Background(), task)
	require.NoError(t, err)

	assert.Equal(t, "Cam Three", camera.Name)
	assert.Equal(t, "/files/p/products/cam_three/shots/front.png", camera.ImageURL)
	assert.Equal(t, []string{"24 megapixels", "Full frame sensor"}, camera.ShortSpecs)
}

func TestScrapeProductMarksFailure(t *testing.T) {
	fetcher := &stubFetcher{pages: map[string]string{}}

	scraper, progress := newTestProductScraper(t, fetcher)
	require.NoError(t, progress.Add(&storage.ProgressEntry{ProductCode: "cam_gone"}))

	task := queue.NewTask("cam_gone", "/products/x/cam_gone", 0)
	_, err := scraper.ScrapeProduct(context.Background(), task)
	require.Error(t, err)

	entry, _ := progress.Get("cam_gone")
	assert.Equal(t, storage.StatusFailed, entry.Status)
	assert.NotEmpty(t, entry.Error)
}

func TestAbsoluteURL(t *testing.T) {
	assert.Equal(t, "https://www.dpreview.com/products/x",
		absoluteURL("https://www.dpreview.com", "/products/x"))
	assert.Equal(t, "https://www.dpreview.com/products/x",
		absoluteURL("https://www.dpreview.com/", "/products/x"))
	assert.Equal(t, "https://other.example/page",
		absoluteURL("https://www.dpreview.com", "https://other.example/page"))
}
