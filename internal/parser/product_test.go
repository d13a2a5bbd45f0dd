package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const overviewFixture = `
<h1>Sony a7 V Overview</h1>
<div id="productImage" style="background-image: url('https://1.img-dpreview.com/files/p/products/sony_a7v/main.jpg')"></div>
<div class="rightColumn quickSpecs">
	<table>
		<tr><th class="label">Megapixels</th><td class="value">33 megapixels</td></tr>
		<tr><th class="label">Screen size</th><td class="value">3&#8243;</td></tr>
	</table>
</div>
<div><span class="greyLabel">Announced</span> Feb 26, 2026 &#8226; body only</div>
<div class="productBadgeAndScore"><span class="award gold"></span>91%</div>
<div class="productDescription"><div class="productBody">` + longDescription + `</div></div>
<div class="productShotThumbnail" style="background-image: url('https://2.img-dpreview.com/files/p/products/sony_a7v/shots/front.jpg')"></div>
<a href="https://www.amazon.com/dp/B0CAMERA01">Buy at Amazon</a>`

const specsFixture = `
<table class="specsTable compact"><tbody>
	<tr><th class="label">Body type</th><td class="value">SLR-style mirrorless</td></tr>
	<tr><th class="label">Max resolution</th><td class="value">7008 x 4672</td></tr>
	<tr><th class="label">ISO</th><td class="value">ISO 100 - 51200</td></tr>
	<tr><th class="label">File format</th><td class="value">JPEG, HEIF, Raw</td></tr>
</tbody></table>`

const reviewFixture = `
<div class="mainContent"><div class="article-intro">The a7 V arrives four years after its predecessor and makes a strong case as the default choice for enthusiasts stepping up to full frame.</div></div>
<span class="overallScore" data-score="91">91%</span>
<table>
	<tr class="suitability goodFor"><td><div class="text">Enthusiast photographers.</div></td></tr>
	<tr class="suitability notGoodFor"><td><div class="text">Dedicated sports shooters.</div></td></tr>
	<tr class="summary"><td><div class="summary">A highly capable all-rounder.</div></td></tr>
</table>`

const reviewSpecsFixture = `
<table class="contentTable">
	<tr><th>Body type</th><td>Rangefinder-style mirrorless</td></tr>
	<tr><th>Boosted ISO (maximum)</th><td>204800</td></tr>
</table>`

func TestParseProductPage(t *testing.T) {
	parser := NewDPReviewParser()

	camera, err := parser.ParseProductPage(
		overviewFixture, specsFixture, reviewFixture, reviewSpecsFixture,
		"sony_a7v", "https://www.dpreview.com/products/sony/slrs/sony_a7v", nil)
	require.NoError(t, err)
	require.NotNil(t, camera)

	assert.Equal(t, "sony_a7v", camera.ProductCode)
	assert.Equal(t, "Sony a7 V", camera.Name)
	assert.Equal(t, "/products/sony/slrs/sony_a7v", camera.URL)
	assert.Equal(t, "/files/p/products/sony_a7v/main.jpg", camera.ImageURL)
	assert.Equal(t, "gold", camera.Award)
	assert.Equal(t, []string{"33 megapixels", "3″"}, camera.ShortSpecs)
	assert.Equal(t, 91, camera.ReviewScore)

	// Review specs win over the regular specs page; fields only the regular
	// page carries still come through.
	assert.Equal(t, "Rangefinder-style mirrorless", camera.Specs.BodyType)
	assert.Equal(t, "204800", camera.Specs.BoostedISOMaximum)
	assert.Equal(t, "7008 x 4672", camera.Specs.MaxResolution)
	assert.Equal(t, []string{"JPEG", "HEIF", "Raw"}, camera.Specs.FileFormat)

	// Announced comes from the overview since neither specs table has it.
	assert.Equal(t, "Feb 26, 2026", camera.Specs.Announced)

	assert.Equal(t, longDescription, camera.ReviewData.ExecutiveSummary)
	assert.Equal(t, "Enthusiast photographers.", camera.ReviewData.ReviewSummary.GoodFor)
	assert.Equal(t, []string{"/files/p/products/sony_a7v/shots/front.jpg"}, camera.ReviewData.ProductPhotos)
	assert.Equal(t, []string{"B0CAMERA01"}, camera.ReviewData.ASIN)
}

func TestParseProductPageWithoutReview(t *testing.T) {
	parser := NewDPReviewParser()

	camera, err := parser.ParseProductPage(
		overviewFixture, specsFixture, "", "",
		"sony_a7v", "https://www.dpreview.com/products/sony/slrs/sony_a7v", nil)
	require.NoError(t, err)

	assert.Equal(t, "SLR-style mirrorless", camera.Specs.BodyType)
	assert.True(t, camera.ReviewData.ReviewSummary.IsEmpty())
	assert.Zero(t, camera.ReviewScore)
	assert.Empty(t, camera.Specs.ReviewPreview)
}

func TestParseProductPageShortSpecsOverride(t *testing.T) {
	parser := NewDPReviewParser()

	provided := []string{"33 megapixels", "Full frame sensor"}
	camera, err := parser.ParseProductPage(
		overviewFixture, specsFixture, "", "",
		"sony_a7v", "/products/sony/slrs/sony_a7v", provided)
	require.NoError(t, err)

	assert.Equal(t, provided, camera.ShortSpecs)
}

func TestParseProductPageSynthesizesReviewPreview(t *testing.T) {
	parser := NewDPReviewParser()

	// Overview without a usable preview block but with a JSON-LD score.
	overview := `
	<h1>Canon EOS R5 Mark II Overview</h1>
	<script type="application/ld+json">{"review":{"reviewRating":{"ratingValue":90}}}</script>`

	camera, err := parser.ParseProductPage(
		overview, specsFixture, "", "",
		"canon_eosr5ii", "/products/canon/slrs/canon_eosr5ii", nil)
	require.NoError(t, err)

	assert.Equal(t, 90, camera.ReviewScore)
	assert.Equal(t, "90%\nRead review ...", camera.Specs.ReviewPreview)
}

func TestParseProductPageSparseDocuments(t *testing.T) {
	parser := NewDPReviewParser()

	camera, err := parser.ParseProductPage(
		"<div></div>", "<div></div>", "", "",
		"mystery_cam", "/products/mystery_cam", nil)
	require.NoError(t, err)
	require.NotNil(t, camera)

	assert.Equal(t, "mystery_cam", camera.ProductCode)
	assert.Empty(t, camera.Name)
	assert.Empty(t, camera.Specs.BodyType)
	assert.Empty(t, camera.ShortSpecs)
}
