package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/lenscatalog/dpreview-scraper/internal/models"
)

const productIDPrefix = "product_"

// ParseSearchResults parses a listing page into product stubs. Rows that
// cannot yield at least a product code, name, and URL are skipped.
func (p *DPReviewParser) ParseSearchResults(html string) ([]models.SearchResult, error) {
	doc, err := parseDocument(html)
	if err != nil {
		return nil, fmt.Errorf("failed to parse search results page: %w", err)
	}

	results := []models.SearchResult{}

	rows := doc.Find("tr.product")
	if rows.Length() == 0 {
		p.logger.Warn("no product rows found in search results")
		return results, nil
	}

	rows.Each(func(_ int, row *goquery.Selection) {
		link := row.Find("td.info div.name a").First()
		if link.Length() == 0 {
			return
		}
		url, _ := link.Attr("href")
		if url == "" {
			return
		}
		name := strings.TrimSpace(link.Text())

		code := ""
		if id, ok := row.Attr("id"); ok && strings.HasPrefix(id, productIDPrefix) {
			code = strings.TrimPrefix(id, productIDPrefix)
		} else {
			// Fall back to the last path segment of the product link.
			parts := strings.Split(strings.Trim(url, "/"), "/")
			if len(parts) < 3 {
				p.logger.Warn("skipping search row without derivable product code", "url", url)
				return
			}
			code = parts[len(parts)-1]
		}
		if code == "" || name == "" {
			p.logger.Warn("skipping incomplete search row", "code", code, "url", url)
			return
		}

		result := models.SearchResult{
			ProductCode: code,
			Name:        name,
			URL:         url,
		}

		if img := row.Find("td.product div.productImage a img").First(); img.Length() > 0 {
			result.ImageURL, _ = img.Attr("src")
		}
		if date := row.Find("td.info div.announcementDate").First(); date.Length() > 0 {
			result.Announced = strings.TrimSpace(date.Text())
		}

		results = append(results, result)
		p.logger.Debug("parsed search result", "product", code)
	})

	p.logger.Info("parsed search results", "count", len(results))
	return results, nil
}

// ExtractPagination reads listing-page pagination state from the rel="next"
// link hint and the pager control. Pages without pagination markers report a
// single page with no next.
func (p *DPReviewParser) ExtractPagination(html string) models.Pagination {
	info := models.Pagination{CurrentPage: 1, TotalPages: 1}

	doc, err := parseDocument(html)
	if err != nil {
		p.logger.Warn("failed to parse pagination", "error", err)
		return info
	}

	if next := doc.Find(`link[rel="next"]`).First(); next.Length() > 0 {
		info.HasNext = true
		href, _ := next.Attr("href")
		if idx := strings.Index(href, "page="); idx >= 0 {
			param := href[idx+len("page="):]
			if amp := strings.Index(param, "&"); amp >= 0 {
				param = param[:amp]
			}
			if nextPage, err := strconv.Atoi(param); err == nil {
				info.CurrentPage = nextPage - 1
			}
		}
	}

	pager := doc.Find("table.pager, table.pages").First()
	if pager.Length() == 0 {
		return info
	}

	if current := pager.Find(`.active, .current, [aria-current="page"]`).First(); current.Length() > 0 {
		if page, err := strconv.Atoi(strings.TrimSpace(current.Text())); err == nil {
			info.CurrentPage = page
		}
	}

	maxPage := 0
	pager.Find("a").Each(func(_ int, link *goquery.Selection) {
		if page, err := strconv.Atoi(strings.TrimSpace(link.Text())); err == nil && page > maxPage {
			maxPage = page
		}
	})
	if maxPage > 0 {
		info.TotalPages = maxPage
	}
	if info.CurrentPage > info.TotalPages {
		info.TotalPages = info.CurrentPage
	}

	return info
}
