package search

import (
	"github.com/shelfscout/shelfscout/internal/ranking"
	"github.com/shelfscout/shelfscout/internal/storage"
)

// buildCandidateFilter assembles the recall filter for a normalized query:
// a product is a candidate when any condition holds. This deliberately casts
// a wide net; precision comes from scoring, not selection.
//
// Multi-word queries add per-token conditions on the name with OR semantics,
// so a two-word query can admit a product matching only one word. The final
// ranking still favors products matching more words via the per-token score
// contributions.
func buildCandidateFilter(query string, tokens []string, cfg *ranking.ScoringConfig) storage.Filter {
	f := storage.Filter{
		Any: []storage.Condition{
			storage.Equals(storage.FieldName, query),
			storage.Equals(storage.FieldSKU, query),
			storage.Prefix(storage.FieldName, query),
			storage.Contains(storage.FieldName, query),
			storage.Contains(storage.FieldSKU, query),
			storage.Contains(storage.FieldCategory, query),
			storage.SimilarTo(storage.FieldName, query, cfg.NameSimilarityThreshold),
			storage.SimilarTo(storage.FieldSKU, query, cfg.SKUSimilarityThreshold),
			storage.SimilarTo(storage.FieldDescription, query, cfg.DescriptionSimilarityThreshold),
		},
	}

	if len(tokens) > 1 {
		for _, t := range tokens {
			f.Any = append(f.Any,
				storage.SimilarTo(storage.FieldName, t, cfg.NameSimilarityThreshold),
				storage.Contains(storage.FieldName, t),
			)
		}
	}

	return f
}
