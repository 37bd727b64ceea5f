package ranking

import (
	"sort"
	"strings"

	"github.com/shelfscout/shelfscout/internal/models"
)

// ScoredProduct pairs a candidate product with its computed relevance score.
type ScoredProduct struct {
	Product *models.Product
	Score   float64
}

// Rank orders candidates by descending score, breaking ties by name ascending
// (case-insensitive), and truncates to at most limit entries. The returned
// slice aliases the input. Callers may rely on the limit as a hard bound on
// response size.
func Rank(candidates []ScoredProduct, limit int) []ScoredProduct {
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].Score != candidates[j].Score {
			return candidates[i].Score > candidates[j].Score
		}
		return strings.ToLower(candidates[i].Product.Name) < strings.ToLower(candidates[j].Product.Name)
	})
	if limit > 0 && len(candidates) > limit {
		return candidates[:limit]
	}
	return candidates
}
