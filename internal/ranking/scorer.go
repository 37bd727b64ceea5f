package ranking

import (
	"strings"

	"github.com/shelfscout/shelfscout/internal/similarity"
)

// Fields are the searchable fields of a candidate product.
type Fields struct {
	Name        string
	SKU         string
	Category    string
	Description string
}

// Scorer computes a relevance score for a candidate product. It is a pure
// function of its inputs: the same (query, tokens, fields) always produces
// the same score, and concurrent use needs no synchronization.
type Scorer struct {
	config *ScoringConfig
}

// NewScorer creates a Scorer with the given configuration.
func NewScorer(config *ScoringConfig) *Scorer {
	if config == nil {
		config = DefaultScoringConfig()
	}
	config.ApplyDefaults()
	return &Scorer{config: config}
}

// Score computes the relevance of one candidate as a weighted sum of match
// signals against the normalized query and, for multi-word queries, each
// token. Signals are summed rather than short-circuited: a candidate earns
// credit from every signal it satisfies, so an exact name match also collects
// the prefix, substring, and similarity contributions.
func (s *Scorer) Score(query string, tokens []string, f Fields) float64 {
	c := s.config
	name := strings.ToLower(f.Name)
	sku := strings.ToLower(f.SKU)
	category := strings.ToLower(f.Category)

	score := 0.0

	if name == query {
		score += c.ExactNameScore
	}
	if sku == query {
		score += c.ExactSKUScore
	}
	if strings.HasPrefix(name, query) {
		score += c.NamePrefixScore
	}
	score += similarity.Similarity(name, query) * c.NameSimilarityWeight
	score += similarity.Similarity(sku, query) * c.SKUSimilarityWeight
	if strings.Contains(name, query) {
		score += c.NameContainsScore
	}
	if strings.Contains(category, query) {
		score += c.CategoryContainsScore
	}
	score += similarity.Similarity(f.Description, query) * c.DescriptionSimilarityWeight

	// Per-token credit accumulates across every token, so a product matching
	// more of the query's words outranks one matching fewer.
	if len(tokens) > 1 {
		for _, t := range tokens {
			score += similarity.Similarity(name, t) * c.TokenSimilarityWeight
			if strings.Contains(name, t) {
				score += c.TokenContainsScore
			}
		}
	}

	return score
}
