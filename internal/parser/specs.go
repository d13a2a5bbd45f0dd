package parser

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/lenscatalog/dpreview-scraper/internal/models"
)

var announcedPrefixPattern = regexp.MustCompile(`^Announced\s+`)

// parseListValue turns a value cell holding a list-typed field into its list
// elements. Nested <ul>/<ol> items win; otherwise the normalized cell text is
// split on the first separator (newline, semicolon, comma) that yields more
// than one part. A non-splittable non-empty text becomes a one-element list.
func parseListValue(sel *goquery.Selection) []string {
	items := []string{}

	list := sel.Find("ul, ol").First()
	if list.Length() > 0 {
		list.Find("li").Each(func(_ int, li *goquery.Selection) {
			if text := NormalizeWhitespace(li.Text()); text != "" {
				items = append(items, text)
			}
		})
		return items
	}

	text := NormalizeWhitespace(sel.Text())
	for _, sep := range []string{"\n", ";", ","} {
		if !strings.Contains(text, sep) {
			continue
		}
		parts := []string{}
		for _, p := range strings.Split(text, sep) {
			if p = NormalizeWhitespace(p); p != "" {
				parts = append(parts, p)
			}
		}
		if len(parts) > 1 {
			return parts
		}
	}

	if text != "" {
		items = append(items, text)
	}
	return items
}

// parseSpecRow reads one table row and stores its value into specs. Rows with
// a missing cell, an empty value, or an unmapped label are skipped.
func (p *DPReviewParser) parseSpecRow(row *goquery.Selection, labelSel, valueSel string, specs *models.CameraSpecs) {
	labelElem := row.Find(labelSel).First()
	valueElem := row.Find(valueSel).First()
	if labelElem.Length() == 0 || valueElem.Length() == 0 {
		return
	}

	label := strings.ReplaceAll(strings.TrimSpace(labelElem.Text()), ":", "")
	value := NormalizeWhitespace(valueElem.Text())
	if value == "" {
		return
	}

	field, ok := NormalizeSpecLabel(label)
	if !ok {
		p.logger.Debug("unmapped spec label", "label", label, "value", truncate(value, 50))
		return
	}

	if IsListSpecField(field) {
		specs.SetListField(field, parseListValue(valueElem))
		return
	}

	if field == "Announced" {
		// The site sometimes repeats the label inside the value cell.
		value = announcedPrefixPattern.ReplaceAllString(value, "")
	}

	specs.SetField(field, value)
}

// ExtractFullSpecs walks the compact specifications table of a dedicated
// specs page (th.label / td.value rows grouped in tbody sections).
func (p *DPReviewParser) ExtractFullSpecs(doc *goquery.Document) *models.CameraSpecs {
	specs := models.NewCameraSpecs()

	table := doc.Find("table.specsTable.compact").First()
	if table.Length() == 0 {
		p.logger.Warn("no specifications table found")
		return specs
	}

	table.Find("tbody").Each(func(_ int, tbody *goquery.Selection) {
		tbody.Find("tr").Each(func(_ int, row *goquery.Selection) {
			p.parseSpecRow(row, "th.label", "td.value", specs)
		})
	})

	return specs
}

// ExtractReviewSpecs walks the content tables of a review's specifications
// page (plain th/td rows). Review specs pages carry more complete data than
// the regular specs page.
func (p *DPReviewParser) ExtractReviewSpecs(doc *goquery.Document) *models.CameraSpecs {
	specs := models.NewCameraSpecs()

	tables := doc.Find("table.contentTable")
	if tables.Length() == 0 {
		p.logger.Warn("no contentTable found on review specs page")
		return specs
	}

	tables.Each(func(_ int, table *goquery.Selection) {
		table.Find("tr").Each(func(_ int, row *goquery.Selection) {
			p.parseSpecRow(row, "th", "td", specs)
		})
	})

	return specs
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
