package parser

import (
	"regexp"
	"strings"
)

var (
	urlFromStylePattern    = regexp.MustCompile(`url\(["']?([^"'()]+)["']?\)`)
	thumbnailSizePattern   = regexp.MustCompile(`TS\d+x\d+~`)
	multipleSpacesPattern  = regexp.MustCompile(`\s+`)
	spaceBeforeInchPattern = regexp.MustCompile(`\s+(″|")`)
	spaceBeforeParenClose  = regexp.MustCompile(`\s+\)`)
)

// siteHosts are the hostnames stripped from output URLs, leaving a
// root-relative path. Any other host passes through unchanged.
var siteHosts = []string{
	"www.dpreview.com",
	"m.dpreview.com",
	"1.img-dpreview.com",
	"2.img-dpreview.com",
	"3.img-dpreview.com",
	"4.img-dpreview.com",
}

// NormalizeWhitespace collapses whitespace runs to single spaces, removes a
// space before an inch mark or closing parenthesis, and trims the result.
// Idempotent.
func NormalizeWhitespace(text string) string {
	text = multipleSpacesPattern.ReplaceAllString(text, " ")
	text = spaceBeforeInchPattern.ReplaceAllString(text, "$1")
	text = spaceBeforeParenClose.ReplaceAllString(text, ")")
	return strings.TrimSpace(text)
}

// ExtractURLFromStyle pulls the first url(...) token out of a CSS declaration
// and strips the thumbnail size marker (TS<w>x<h>~) from it. Returns "" when
// the style carries no url(...) token.
func ExtractURLFromStyle(style string) string {
	m := urlFromStylePattern.FindStringSubmatch(style)
	if m == nil {
		return ""
	}
	return thumbnailSizePattern.ReplaceAllString(m[1], "")
}

// StripThumbnailSize removes the thumbnail size marker from an image URL.
func StripThumbnailSize(url string) string {
	return thumbnailSizePattern.ReplaceAllString(url, "")
}

// StripSiteDomain removes the https://<host> prefix for known site hosts so
// stored URLs are root-relative. Unknown hosts are returned as-is.
func StripSiteDomain(url string) string {
	for _, host := range siteHosts {
		prefix := "https://" + host
		if strings.HasPrefix(url, prefix) {
			return strings.TrimPrefix(url, prefix)
		}
	}
	return url
}
