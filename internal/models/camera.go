package models

// SearchResult is a lightweight product stub parsed from a listing page.
type SearchResult struct {
	ProductCode string   `yaml:"product_code" json:"product_code"`
	Name        string   `yaml:"name" json:"name"`
	URL         string   `yaml:"url" json:"url"`
	ImageURL    string   `yaml:"image_url" json:"image_url"`
	Announced   string   `yaml:"announced,omitempty" json:"announced,omitempty"`
	ShortSpecs  []string `yaml:"short_specs,omitempty" json:"short_specs,omitempty"`
}

// Pagination describes listing-page pagination state.
type Pagination struct {
	CurrentPage int
	TotalPages  int
	HasNext     bool
}

// Camera is the complete output record for one product. Field declaration
// order matches the serialization contract and must not be reordered.
type Camera struct {
	DPRReviewArchiveURL string       `yaml:"DPRReviewArchiveURL" json:"DPRReviewArchiveURL"`
	ProductCode         string       `yaml:"ProductCode" json:"ProductCode"`
	Award               string       `yaml:"Award" json:"Award"`
	ImageURL            string       `yaml:"ImageURL" json:"ImageURL"`
	Name                string       `yaml:"Name" json:"Name"`
	ShortSpecs          []string     `yaml:"ShortSpecs" json:"ShortSpecs"`
	ReviewScore         int          `yaml:"ReviewScore" json:"ReviewScore"`
	URL                 string       `yaml:"URL" json:"URL"`
	ReviewData          ReviewData   `yaml:"ReviewData" json:"ReviewData"`
	Specs               *CameraSpecs `yaml:"Specs" json:"Specs"`
}

// NewCamera returns a Camera with every field at its default value: empty
// strings, empty slices, and a fully initialized specs record.
func NewCamera(productCode, url string) *Camera {
	return &Camera{
		ProductCode: productCode,
		URL:         url,
		ShortSpecs:  []string{},
		ReviewData:  NewReviewData(),
		Specs:       NewCameraSpecs(),
	}
}
