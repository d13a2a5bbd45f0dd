package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestReviewSummaryIsEmpty(t *testing.T) {
	assert.True(t, ReviewSummary{}.IsEmpty())
	assert.False(t, ReviewSummary{GoodFor: "x"}.IsEmpty())
	assert.False(t, ReviewSummary{NotSoGoodFor: "x"}.IsEmpty())
	assert.False(t, ReviewSummary{Conclusion: "x"}.IsEmpty())
}

func TestReviewDataMarshalYAMLNullSummary(t *testing.T) {
	data := NewReviewData()
	data.ExecutiveSummary = "A camera."

	out, err := yaml.Marshal(data)
	require.NoError(t, err)

	text := string(out)
	assert.Contains(t, text, "ReviewSummary: null")
	assert.Contains(t, text, "ProductPhotos: []")
	assert.Contains(t, text, "ASIN: []")
}

func TestReviewDataMarshalYAMLFullSummary(t *testing.T) {
	data := NewReviewData()
	data.ReviewSummary = ReviewSummary{
		GoodFor:      "Enthusiasts.",
		NotSoGoodFor: "Sports shooters.",
		Conclusion:   "A fine camera.",
	}

	out, err := yaml.Marshal(data)
	require.NoError(t, err)

	text := string(out)
	assert.NotContains(t, text, "ReviewSummary: null")
	assert.Contains(t, text, "GoodFor: Enthusiasts.")
	assert.Contains(t, text, "NotSoGoodFor: Sports shooters.")
	assert.Contains(t, text, "Conclusion: A fine camera.")
}

func TestReviewDataMarshalYAMLNilSlices(t *testing.T) {
	// A zero-value ReviewData must still serialize slices as [], not null.
	out, err := yaml.Marshal(ReviewData{})
	require.NoError(t, err)

	text := string(out)
	assert.Contains(t, text, "ProductPhotos: []")
	assert.Contains(t, text, "ASIN: []")
}

func TestNewCamera(t *testing.T) {
	camera := NewCamera("sony_a7v", "/products/sony/slrs/sony_a7v")

	assert.Equal(t, "sony_a7v", camera.ProductCode)
	assert.Equal(t, "/products/sony/slrs/sony_a7v", camera.URL)
	require.NotNil(t, camera.Specs)
	assert.NotNil(t, camera.ShortSpecs)
	assert.NotNil(t, camera.ReviewData.ProductPhotos)
	assert.True(t, camera.ReviewData.ReviewSummary.IsEmpty())
}
