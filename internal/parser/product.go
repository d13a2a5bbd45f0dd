// Package parser extracts camera data from rendered DPReview HTML documents.
//
// The entry point is ParseProductPage, which combines up to four page
// variants (overview, specs, review, review specs) into one Camera record.
// Every extraction routine degrades to a default value instead of failing:
// the worst outcome of a malformed page is a sparsely populated record.
package parser

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/lenscatalog/dpreview-scraper/internal/models"
)

type DPReviewParser struct {
	logger *slog.Logger
}

func NewDPReviewParser() *DPReviewParser {
	return &DPReviewParser{
		logger: slog.Default().With("component", "parser"),
	}
}

func parseDocument(html string) (*goquery.Document, error) {
	return goquery.NewDocumentFromReader(strings.NewReader(html))
}

// ParseProductPage builds a complete Camera record from the supplied page
// HTML. Overview and specs are expected; review and review-specs are
// optional and empty strings mean "not available". When a review specs page
// is present its table is the primary specs source, merged over the regular
// specs page. Output URLs are stored root-relative for known site hosts.
func (p *DPReviewParser) ParseProductPage(overviewHTML, specsHTML, reviewHTML, reviewSpecsHTML, productCode, url string, shortSpecs []string) (*models.Camera, error) {
	overview, err := parseDocument(overviewHTML)
	if err != nil {
		return nil, fmt.Errorf("failed to parse overview page: %w", err)
	}
	specsDoc, err := parseDocument(specsHTML)
	if err != nil {
		return nil, fmt.Errorf("failed to parse specs page: %w", err)
	}

	var review, reviewSpecs *goquery.Document
	if reviewHTML != "" {
		if review, err = parseDocument(reviewHTML); err != nil {
			p.logger.Warn("failed to parse review page, continuing without it", "product", productCode, "error", err)
			review = nil
		}
	}
	if reviewSpecsHTML != "" {
		if reviewSpecs, err = parseDocument(reviewSpecsHTML); err != nil {
			p.logger.Warn("failed to parse review specs page, continuing without it", "product", productCode, "error", err)
			reviewSpecs = nil
		}
	}

	name := p.ExtractName(overview)
	imageURL := p.ExtractImageURL(overview)
	award := p.ExtractAward(overview)
	if shortSpecs == nil {
		shortSpecs = p.ExtractShortSpecs(overview)
	}

	var specs *models.CameraSpecs
	if reviewSpecs != nil {
		p.logger.Debug("using review specs page as primary source", "product", productCode)
		specs = models.Merge(p.ExtractReviewSpecs(reviewSpecs), p.ExtractFullSpecs(specsDoc))
	} else {
		specs = p.ExtractFullSpecs(specsDoc)
	}

	if announced := p.ExtractAnnounced(overview); announced != "" && specs.Announced == "" {
		specs.Announced = announced
	}

	reviewData, reviewScore := p.ExtractReviewData(overview, review)

	if specs.ReviewPreview == "" && reviewScore > 0 {
		specs.ReviewPreview = p.ExtractReviewPreview(overview, reviewScore, award)
	}

	for i, photo := range reviewData.ProductPhotos {
		reviewData.ProductPhotos[i] = StripSiteDomain(photo)
	}

	camera := &models.Camera{
		ProductCode: productCode,
		Name:        name,
		URL:         StripSiteDomain(url),
		ImageURL:    StripSiteDomain(imageURL),
		Award:       award,
		ShortSpecs:  shortSpecs,
		ReviewScore: reviewScore,
		ReviewData:  reviewData,
		Specs:       specs,
	}

	p.logger.Debug("parsed product page", "product", productCode)
	return camera, nil
}
