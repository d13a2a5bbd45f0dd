package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeWhitespace(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "Collapses internal runs",
			input:    "22.3 x 14.9 mm",
			expected: "22.3 x 14.9 mm",
		},
		{
			name:     "Tabs and newlines collapse to spaces",
			input:    "ISO\t100\n- 51200",
			expected: "ISO 100 - 51200",
		},
		{
			name:     "Space before inch mark removed",
			input:    `3.2 ″ fully articulated`,
			expected: `3.2″ fully articulated`,
		},
		{
			name:     "Space before straight quote removed",
			input:    `3 " LCD`,
			expected: `3" LCD`,
		},
		{
			name:     "Space before closing paren removed",
			input:    "1/8000 sec (electronic )",
			expected: "1/8000 sec (electronic)",
		},
		{
			name:     "Leading and trailing whitespace trimmed",
			input:    "  745 g  ",
			expected: "745 g",
		},
		{
			name:     "Empty input",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := NormalizeWhitespace(tt.input)
			assert.Equal(t, tt.expected, result)

			// Running it again must not change anything.
			assert.Equal(t, result, NormalizeWhitespace(result))
		})
	}
}

func TestExtractURLFromStyle(t *testing.T) {
	tests := []struct {
		name     string
		style    string
		expected string
	}{
		{
			name:     "Double quoted url",
			style:    `background-image: url("https://1.img-dpreview.com/files/p/products/sony_a7v/shots/front.jpg")`,
			expected: "https://1.img-dpreview.com/files/p/products/sony_a7v/shots/front.jpg",
		},
		{
			name:     "Single quoted url",
			style:    `background-image: url('/files/p/products/sony_a7v/main.png')`,
			expected: "/files/p/products/sony_a7v/main.png",
		},
		{
			name:     "Unquoted url",
			style:    `background-image:url(/files/main.png);width:100px`,
			expected: "/files/main.png",
		},
		{
			name:     "Thumbnail size marker stripped",
			style:    `background-image: url("https://2.img-dpreview.com/files/p/TS120x90~products/x/main.jpg")`,
			expected: "https://2.img-dpreview.com/files/p/products/x/main.jpg",
		},
		{
			name:     "No url token",
			style:    "width: 100px; height: 80px",
			expected: "",
		},
		{
			name:     "Empty style",
			style:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExtractURLFromStyle(tt.style))
		})
	}
}

func TestStripThumbnailSize(t *testing.T) {
	assert.Equal(t,
		"/files/p/products/canon_eos_r5ii/main.jpg",
		StripThumbnailSize("/files/p/TS560x420~products/canon_eos_r5ii/main.jpg"))

	assert.Equal(t,
		"/files/p/products/canon_eos_r5ii/main.jpg",
		StripThumbnailSize("/files/p/products/canon_eos_r5ii/main.jpg"))
}

func TestStripSiteDomain(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		expected string
	}{
		{
			name:     "Main site host stripped",
			url:      "https://www.dpreview.com/products/sony/slrs/sony_a7v",
			expected: "/products/sony/slrs/sony_a7v",
		},
		{
			name:     "Mobile host stripped",
			url:      "https://m.dpreview.com/products/sony/slrs/sony_a7v",
			expected: "/products/sony/slrs/sony_a7v",
		},
		{
			name:     "Image CDN host stripped",
			url:      "https://3.img-dpreview.com/files/p/products/x/main.jpg",
			expected: "/files/p/products/x/main.jpg",
		},
		{
			name:     "Foreign host untouched",
			url:      "https://example.com/files/p/products/x/main.jpg",
			expected: "https://example.com/files/p/products/x/main.jpg",
		},
		{
			name:     "Already relative path untouched",
			url:      "/products/sony/slrs/sony_a7v",
			expected: "/products/sony/slrs/sony_a7v",
		},
		{
			name:     "Empty string",
			url:      "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, StripSiteDomain(tt.url))
		})
	}
}
