package parser

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

const overviewSuffix = " Overview"

var bulletPointPattern = regexp.MustCompile(`(?s)\s*[•·].*`)

// mainImageSelectors are tried in order; the first usable URL wins. Gallery
// shots (paths containing /shots/) are never accepted as the main image.
var mainImageSelectors = []string{
	"div#productImage",
	"div.productImage",
	"div.mainProductImage",
	"div.productImageMain",
}

// reviewPreviewSelectors locate the review teaser block on an overview page.
var reviewPreviewSelectors = []string{
	"div.reviewPreview",
	"div.review-preview",
	"td.review",
	"div.productReview",
	"div.reviewInfo",
}

// ExtractName returns the product name from an overview page: the page
// heading with its trailing " Overview" suffix removed, falling back to the
// last breadcrumb entry.
func (p *DPReviewParser) ExtractName(doc *goquery.Document) string {
	h1 := doc.Find("h1").First()
	if h1.Length() > 0 {
		title := strings.TrimSpace(h1.Text())
		return strings.TrimSuffix(title, overviewSuffix)
	}

	breadcrumb := doc.Find("div.breadcrumbs a.item:last-child").First()
	if breadcrumb.Length() > 0 {
		return strings.TrimSpace(breadcrumb.Text())
	}

	return ""
}

// ExtractImageURL returns the main product image URL from an overview page,
// preferring a CSS background-image over an <img> source. When no primary
// container yields a usable URL it falls back to the first gallery thumbnail,
// which is lower confidence and logged as such.
func (p *DPReviewParser) ExtractImageURL(doc *goquery.Document) string {
	for _, selector := range mainImageSelectors {
		elem := doc.Find(selector).First()
		if elem.Length() == 0 {
			continue
		}

		if style, ok := elem.Attr("style"); ok {
			if url := ExtractURLFromStyle(style); url != "" {
				if !strings.Contains(url, "/shots/") {
					p.logger.Debug("found main product image", "selector", selector, "url", url)
					return url
				}
				p.logger.Debug("skipping gallery photo", "selector", selector, "url", url)
			}
		}

		img := elem.Find("img").First()
		if img.Length() > 0 {
			if src, ok := img.Attr("src"); ok && src != "" && !strings.Contains(src, "/shots/") {
				url := StripThumbnailSize(src)
				p.logger.Debug("found main product image from img tag", "selector", selector, "url", url)
				return url
			}
		}
	}

	thumbnail := doc.Find("div.productShotThumbnail").First()
	if thumbnail.Length() > 0 {
		style, _ := thumbnail.Attr("style")
		if url := ExtractURLFromStyle(style); url != "" {
			p.logger.Warn("using fallback thumbnail for main image", "url", url)
			return url
		}
	}

	p.logger.Warn("no product image found")
	return ""
}

// ExtractShortSpecs reads the quick specs table of an overview page and
// returns the value cell of each complete row. Labels are discarded: the
// output schema keeps short specs as a flat list of strings.
func (p *DPReviewParser) ExtractShortSpecs(doc *goquery.Document) []string {
	specs := []string{}

	table := doc.Find("div.rightColumn.quickSpecs table").First()
	if table.Length() == 0 {
		return specs
	}

	table.Find("tr").Each(func(_ int, row *goquery.Selection) {
		label := row.Find("th.label").First()
		value := row.Find("td.value").First()
		if label.Length() > 0 && value.Length() > 0 {
			specs = append(specs, strings.TrimSpace(value.Text()))
		}
	})

	return specs
}

// ExtractAward returns the review award level (gold, silver, bronze,
// recommended) for the page's own product, or "". Detection is tiered so an
// award badge for an unrelated product elsewhere on the page is not picked
// up: the product badge wins over review preview sections, which win over
// generic main-content markers.
func (p *DPReviewParser) ExtractAward(doc *goquery.Document) string {
	badge := doc.Find("div.productBadgeAndScore").First()
	if badge.Length() > 0 {
		if award := awardFromClasses(badge); award != "" {
			p.logger.Debug("found award in product badge", "award", award)
			return award
		}
		if award := awardFromClasses(badge.Find("span.award").First()); award != "" {
			p.logger.Debug("found award in product badge", "award", award)
			return award
		}
		if strings.Contains(strings.ToLower(badge.Text()), "recommended") {
			return "recommended"
		}
	}

	for _, selector := range reviewPreviewSelectors {
		section := doc.Find(selector).First()
		if section.Length() == 0 {
			continue
		}

		if award := awardFromClasses(section.Find("span.award").First()); award != "" {
			p.logger.Debug("found award in review section", "selector", selector, "award", award)
			return award
		}

		text := strings.ToLower(strings.TrimSpace(section.Text()))
		for _, level := range []string{"gold", "silver", "bronze"} {
			if strings.Contains(text, level+" award") {
				return level
			}
		}
		if strings.Contains(text, "recommended") {
			return "recommended"
		}
	}

	mainContentSelectors := []string{
		"div.mainContent [data-award]",
		"div.leftColumn [data-award]",
		"div.mainContent .badge",
		"div.leftColumn .badge",
	}

	for _, selector := range mainContentSelectors {
		elem := doc.Find(selector).First()
		if elem.Length() == 0 {
			continue
		}

		if attr, ok := elem.Attr("data-award"); ok {
			attr = strings.ToLower(attr)
			switch attr {
			case "gold", "silver", "bronze", "recommended":
				return attr
			}
		}

		text := strings.ToLower(strings.TrimSpace(elem.Text()))
		for _, level := range []string{"gold", "silver", "bronze", "recommended"} {
			if strings.Contains(text, level) {
				return level
			}
		}
	}

	p.logger.Debug("no award found for this product")
	return ""
}

func awardFromClasses(sel *goquery.Selection) string {
	if sel.Length() == 0 {
		return ""
	}
	class, _ := sel.Attr("class")
	for _, cls := range strings.Fields(class) {
		switch cls {
		case "gold", "silver", "bronze":
			return cls
		}
	}
	return ""
}

// ExtractAnnounced returns the raw announcement date text from an overview
// page: the text node immediately following the "Announced" label, cut off at
// the first bullet point.
func (p *DPReviewParser) ExtractAnnounced(doc *goquery.Document) string {
	var announced string

	doc.Find("span.greyLabel").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		if strings.TrimSpace(sel.Text()) != "Announced" {
			return true
		}
		node := sel.Get(0)
		if node.NextSibling == nil || node.NextSibling.Type != html.TextNode {
			return true
		}
		text := strings.TrimSpace(node.NextSibling.Data)
		text = bulletPointPattern.ReplaceAllString(text, "")
		if text = strings.TrimSpace(text); text != "" {
			announced = text
			return false
		}
		return true
	})

	return announced
}

// ExtractReviewPreview returns the review teaser text from an overview page.
// Only meaningful when a positive review score is already known; a preview
// section is accepted when its text plausibly relates to the review. When no
// section matches, a minimal preview is synthesized from the score and award.
func (p *DPReviewParser) ExtractReviewPreview(doc *goquery.Document, reviewScore int, award string) string {
	if reviewScore <= 0 {
		return ""
	}

	for _, selector := range reviewPreviewSelectors {
		elem := doc.Find(selector).First()
		if elem.Length() == 0 {
			continue
		}
		text := elem.Text()
		lower := strings.ToLower(text)
		if strings.Contains(text, fmt.Sprintf("%d", reviewScore)) ||
			strings.Contains(lower, "review") ||
			strings.Contains(lower, strings.ToLower(award)) {
			p.logger.Debug("found review preview", "selector", selector)
			return strings.TrimSpace(text)
		}
	}

	awardText := ""
	if award != "" {
		awardText = titleCase(award) + " Award"
	}

	parts := []string{
		fmt.Sprintf("%d%%%s", reviewScore, awardText),
		"Read review ...",
	}

	date := doc.Find("div.reviewDate, span.reviewDate, div.review span.date").First()
	if date.Length() > 0 {
		if text := strings.TrimSpace(date.Text()); text != "" {
			parts = append(parts, text)
		}
	}

	return strings.Join(parts, "\n")
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
