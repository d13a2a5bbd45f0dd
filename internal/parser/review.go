package parser

import (
	"encoding/json"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/lenscatalog/dpreview-scraper/internal/models"
)

var (
	asinPattern  = regexp.MustCompile(`/dp/([A-Z0-9]{10})`)
	digitPattern = regexp.MustCompile(`(\d+)`)

	// blogPatterns reject editorial content that sometimes occupies the
	// product-description layout slot. Tuned to the site's historical markup.
	blogPatterns = []*regexp.Regexp{
		regexp.MustCompile(`\bthis month\b`),
		regexp.MustCompile(`\bchallenge\b`),
		regexp.MustCompile(`\bshare your\b`),
		regexp.MustCompile(`\bphoto adventures\b`),
	}
)

// overviewSummarySelectors locate the product description on overview pages,
// tried in order.
var overviewSummarySelectors = []string{
	"div.productOverviewPage div.section p",
	"div#descriptionTab div.productBody",
	"div#description div.productBody",
	"div.descriptionTab div.productBody",
	"div.productDescription div.productBody",
	"div.productDescription",
	"div.product-description",
	"div.productBody",
	"div#productBody",
	"div.leftColumn div.description p",
	"div.mainContent p.intro",
	"div.pressRelease",
	"div.announcement",
}

// reviewSummarySelectors locate the intro paragraph on review pages.
var reviewSummarySelectors = []string{
	"div.mainContent div.article-intro",
	"div.content div.article-intro",
	"article div.article-intro",
	"div.reviewIntro",
	"div.review-intro",
	"div.mainContent div.articleBody p:first-of-type",
	"div.content div.articleBody p:first-of-type",
	"article div.articleBody p:first-of-type",
	"div.productDescription",
	"div.product-description",
}

var scoreSelectors = []string{
	"span.overallScore",
	"span.score",
	"div.score",
	"[data-score]",
}

func isBlogContent(text string) bool {
	lower := strings.ToLower(text)
	for _, pattern := range blogPatterns {
		if pattern.MatchString(lower) {
			return true
		}
	}
	return false
}

// extractOverviewSummary finds the executive summary in an overview page's
// description area, skipping short texts and blog-like content.
func (p *DPReviewParser) extractOverviewSummary(doc *goquery.Document) string {
	for _, selector := range overviewSummarySelectors {
		elem := doc.Find(selector).First()
		if elem.Length() == 0 {
			continue
		}
		text := NormalizeWhitespace(elem.Text())
		if len(text) <= 100 {
			continue
		}
		if isBlogContent(text) {
			p.logger.Debug("skipping blog-like content", "selector", selector)
			continue
		}
		p.logger.Debug("found executive summary on overview page", "selector", selector)
		return text
	}

	p.logger.Warn("no executive summary found with any selector")
	return ""
}

// parseReviewPage extracts the intro summary, pros/cons/conclusion, and the
// numeric score from a review page.
func (p *DPReviewParser) parseReviewPage(doc *goquery.Document) (string, models.ReviewSummary, int) {
	executiveSummary := ""
	reviewScore := 0

	for _, selector := range reviewSummarySelectors {
		elem := doc.Find(selector).First()
		if elem.Length() == 0 {
			continue
		}
		text := NormalizeWhitespace(elem.Text())
		if len(text) <= 50 {
			continue
		}
		if isBlogContent(text) {
			p.logger.Debug("skipping blog-like content", "selector", selector)
			continue
		}
		executiveSummary = text
		p.logger.Debug("found executive summary on review page", "selector", selector)
		break
	}

	for _, selector := range scoreSelectors {
		elem := doc.Find(selector).First()
		if elem.Length() == 0 {
			continue
		}
		scoreValue, ok := elem.Attr("data-score")
		if !ok || scoreValue == "" {
			scoreValue = strings.TrimSpace(elem.Text())
		}
		if m := digitPattern.FindStringSubmatch(scoreValue); m != nil {
			if score, err := strconv.Atoi(m[1]); err == nil {
				reviewScore = score
				p.logger.Debug("found review score", "score", score, "selector", selector)
				break
			}
		}
	}

	summary := models.ReviewSummary{
		GoodFor:      strings.TrimSpace(doc.Find("tr.suitability.goodFor div.text").First().Text()),
		NotSoGoodFor: strings.TrimSpace(doc.Find("tr.suitability.notGoodFor div.text").First().Text()),
		Conclusion:   strings.TrimSpace(doc.Find("tr.summary div.summary").First().Text()),
	}

	return executiveSummary, summary, reviewScore
}

// ExtractReviewData pulls review content from the overview page and, when
// available, the review page. The overview's product description is the
// primary executive summary source; the review intro is the fallback. The
// score comes from the review page, falling back to JSON-LD metadata on the
// overview. Without a review page the summary stays all-empty.
func (p *DPReviewParser) ExtractReviewData(overview, review *goquery.Document) (models.ReviewData, int) {
	data := models.NewReviewData()
	reviewScore := 0

	overview.Find("div.productShotThumbnail").Each(func(_ int, thumb *goquery.Selection) {
		style, _ := thumb.Attr("style")
		if url := ExtractURLFromStyle(style); url != "" {
			data.ProductPhotos = append(data.ProductPhotos, url)
		}
	})

	data.ASIN = p.extractASINs(overview)

	if summary := p.extractOverviewSummary(overview); summary != "" {
		data.ExecutiveSummary = summary
	}

	if review != nil {
		reviewSummary, summaryBlock, score := p.parseReviewPage(review)
		data.ReviewSummary = summaryBlock
		reviewScore = score

		if data.ExecutiveSummary == "" && reviewSummary != "" {
			data.ExecutiveSummary = reviewSummary
			p.logger.Debug("using review page intro as executive summary fallback")
		}
	}

	if reviewScore == 0 {
		reviewScore = p.scoreFromJSONLD(overview)
	}

	return data, reviewScore
}

// extractASINs collects marketplace product IDs: direct data attributes on
// affiliate links first, then IDs regex-matched out of marketplace URLs. The
// result is deduplicated and sorted; order is not significant.
func (p *DPReviewParser) extractASINs(doc *goquery.Document) []string {
	seen := map[string]bool{}

	doc.Find("a.amazonAffiliate[data-product-id]").Each(func(_ int, link *goquery.Selection) {
		if asin, ok := link.Attr("data-product-id"); ok && asin != "" {
			seen[asin] = true
		}
	})

	if len(seen) == 0 {
		doc.Find("a[href*='amazon.com']").Each(func(_ int, link *goquery.Selection) {
			href, _ := link.Attr("href")
			if m := asinPattern.FindStringSubmatch(href); m != nil {
				seen[m[1]] = true
			}
		})
	}

	asins := make([]string, 0, len(seen))
	for asin := range seen {
		asins = append(asins, asin)
	}
	sort.Strings(asins)
	return asins
}

// scoreFromJSONLD reads review.reviewRating.ratingValue out of the overview
// page's embedded JSON-LD metadata. Returns 0 on any shape mismatch.
func (p *DPReviewParser) scoreFromJSONLD(doc *goquery.Document) int {
	raw := doc.Find(`script[type="application/ld+json"]`).First().Text()
	if raw == "" {
		return 0
	}

	var payload map[string]interface{}
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		p.logger.Debug("failed to parse JSON-LD", "error", err)
		return 0
	}

	review, ok := payload["review"].(map[string]interface{})
	if !ok {
		return 0
	}
	rating, ok := review["reviewRating"].(map[string]interface{})
	if !ok {
		return 0
	}

	switch v := rating["ratingValue"].(type) {
	case float64:
		return int(v)
	case string:
		if score, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return score
		}
	}
	return 0
}
