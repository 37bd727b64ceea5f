// Package ranking computes relevance scores for candidate products and orders
// them into the final result list.
package ranking

// ScoringConfig holds the weight table and thresholds for the relevance
// scorer. Keeping the weights in a struct (rather than embedded in a query
// string) makes them unit-testable and tunable from the config file.
type ScoringConfig struct {
	// Full-query signal weights
	ExactNameScore              float64 `yaml:"exact_name_score"`              // default: 1000
	ExactSKUScore               float64 `yaml:"exact_sku_score"`               // default: 900
	NamePrefixScore             float64 `yaml:"name_prefix_score"`             // default: 800
	NameSimilarityWeight        float64 `yaml:"name_similarity_weight"`        // default: 700
	SKUSimilarityWeight         float64 `yaml:"sku_similarity_weight"`         // default: 600
	NameContainsScore           float64 `yaml:"name_contains_score"`           // default: 400
	CategoryContainsScore       float64 `yaml:"category_contains_score"`       // default: 200
	DescriptionSimilarityWeight float64 `yaml:"description_similarity_weight"` // default: 100

	// Per-token signal weights, applied only to multi-word queries
	TokenSimilarityWeight float64 `yaml:"token_similarity_weight"` // default: 300
	TokenContainsScore    float64 `yaml:"token_contains_score"`    // default: 250

	// Candidate-selection thresholds (similarity must exceed these)
	NameSimilarityThreshold        float64 `yaml:"name_similarity_threshold"`        // default: 0.20
	SKUSimilarityThreshold         float64 `yaml:"sku_similarity_threshold"`         // default: 0.20
	DescriptionSimilarityThreshold float64 `yaml:"description_similarity_threshold"` // default: 0.15

	// ResultCap is the hard upper bound on returned results.
	ResultCap int `yaml:"result_cap"` // default: 50
}

// DefaultScoringConfig returns the default scoring configuration.
func DefaultScoringConfig() *ScoringConfig {
	return &ScoringConfig{
		ExactNameScore:              1000,
		ExactSKUScore:               900,
		NamePrefixScore:             800,
		NameSimilarityWeight:        700,
		SKUSimilarityWeight:         600,
		NameContainsScore:           400,
		CategoryContainsScore:       200,
		DescriptionSimilarityWeight: 100,

		TokenSimilarityWeight: 300,
		TokenContainsScore:    250,

		NameSimilarityThreshold:        0.20,
		SKUSimilarityThreshold:         0.20,
		DescriptionSimilarityThreshold: 0.15,

		ResultCap: 50,
	}
}

// ApplyDefaults fills in zero values with defaults.
func (c *ScoringConfig) ApplyDefaults() {
	defaults := DefaultScoringConfig()

	if c.ExactNameScore == 0 {
		c.ExactNameScore = defaults.ExactNameScore
	}
	if c.ExactSKUScore == 0 {
		c.ExactSKUScore = defaults.ExactSKUScore
	}
	if c.NamePrefixScore == 0 {
		c.NamePrefixScore = defaults.NamePrefixScore
	}
	if c.NameSimilarityWeight == 0 {
		c.NameSimilarityWeight = defaults.NameSimilarityWeight
	}
	if c.SKUSimilarityWeight == 0 {
		c.SKUSimilarityWeight = defaults.SKUSimilarityWeight
	}
	if c.NameContainsScore == 0 {
		c.NameContainsScore = defaults.NameContainsScore
	}
	if c.CategoryContainsScore == 0 {
		c.CategoryContainsScore = defaults.CategoryContainsScore
	}
	if c.DescriptionSimilarityWeight == 0 {
		c.DescriptionSimilarityWeight = defaults.DescriptionSimilarityWeight
	}
	if c.TokenSimilarityWeight == 0 {
		c.TokenSimilarityWeight = defaults.TokenSimilarityWeight
	}
	if c.TokenContainsScore == 0 {
		c.TokenContainsScore = defaults.TokenContainsScore
	}
	if c.NameSimilarityThreshold == 0 {
		c.NameSimilarityThreshold = defaults.NameSimilarityThreshold
	}
	if c.SKUSimilarityThreshold == 0 {
		c.SKUSimilarityThreshold = defaults.SKUSimilarityThreshold
	}
	if c.DescriptionSimilarityThreshold == 0 {
		c.DescriptionSimilarityThreshold = defaults.DescriptionSimilarityThreshold
	}
	if c.ResultCap == 0 {
		c.ResultCap = defaults.ResultCap
	}
}
