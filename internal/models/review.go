package models

// ReviewSummary holds the pros/cons/conclusion block of a review. An all-empty
// summary means "no review summary available" and serializes as null.
type ReviewSummary struct {
	GoodFor      string `yaml:"GoodFor" json:"GoodFor"`
	NotSoGoodFor string `yaml:"NotSoGoodFor" json:"NotSoGoodFor"`
	Conclusion   string `yaml:"Conclusion" json:"Conclusion"`
}

// IsEmpty reports whether all three summary fields are empty.
func (r ReviewSummary) IsEmpty() bool {
	return r.GoodFor == "" && r.NotSoGoodFor == "" && r.Conclusion == ""
}

// ReviewData aggregates review-derived content for one product.
type ReviewData struct {
	ExecutiveSummary string        `json:"ExecutiveSummary"`
	ProductPhotos    []string      `json:"ProductPhotos"`
	ReviewSummary    ReviewSummary `json:"ReviewSummary"`
	ASIN             []string      `json:"ASIN"`
}

// NewReviewData returns a ReviewData with initialized slices.
func NewReviewData() ReviewData {
	return ReviewData{
		ProductPhotos: []string{},
		ASIN:          []string{},
	}
}

type reviewDataYAML struct {
	ExecutiveSummary string         `yaml:"ExecutiveSummary"`
	ProductPhotos    []string       `yaml:"ProductPhotos"`
	ReviewSummary    *ReviewSummary `yaml:"ReviewSummary"`
	ASIN             []string       `yaml:"ASIN"`
}

// MarshalYAML emits ReviewSummary as null when all of its fields are empty,
// and as the full three-field object otherwise.
func (r ReviewData) MarshalYAML() (interface{}, error) {
	out := reviewDataYAML{
		ExecutiveSummary: r.ExecutiveSummary,
		ProductPhotos:    r.ProductPhotos,
		ASIN:             r.ASIN,
	}
	if out.ProductPhotos == nil {
		out.ProductPhotos = []string{}
	}
	if out.ASIN == nil {
		out.ASIN = []string{}
	}
	if !r.ReviewSummary.IsEmpty() {
		summary := r.ReviewSummary
		out.ReviewSummary = &summary
	}
	return out, nil
}
