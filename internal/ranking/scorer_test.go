package ranking

import (
	"strings"
	"testing"
)

func TestScorer_Score(t *testing.T) {
	config := DefaultScoringConfig()
	scorer := NewScorer(config)

	tests := []struct {
		name    string
		query   string
		fields  Fields
		wantMin float64
		wantMax float64
	}{
		{
			name:  "exact name match stacks with prefix, contains, and similarity",
			query: "red apples",
			fields: Fields{
				Name: "Red Apples",
				SKU:  "APPL001",
			},
			// exact + prefix + contains + full name similarity, plus token credit
			wantMin: config.ExactNameScore + config.NamePrefixScore + config.NameContainsScore + config.NameSimilarityWeight,
			wantMax: 5000,
		},
		{
			name:  "exact sku match",
			query: "appl001",
			fields: Fields{
				Name: "Red Apples",
				SKU:  "APPL001",
			},
			wantMin: config.ExactSKUScore + config.SKUSimilarityWeight,
			wantMax: config.ExactSKUScore + config.SKUSimilarityWeight + 300,
		},
		{
			name:  "fuzzy-only match scores from similarity alone",
			query: "aple",
			fields: Fields{
				Name: "apple",
			},
			wantMin: 400,
			wantMax: 475,
		},
		{
			name:  "category substring",
			query: "produce",
			fields: Fields{
				Name:     "Red Apples",
				SKU:      "APPL001",
				Category: "Produce",
			},
			wantMin: config.CategoryContainsScore,
			wantMax: config.CategoryContainsScore + 300,
		},
		{
			name:  "no overlap scores zero",
			query: "xyz",
			fields: Fields{
				Name:     "Whole Milk",
				SKU:      "MILK010",
				Category: "Dairy",
			},
			wantMin: 0,
			wantMax: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens := strings.Fields(tt.query)
			got := scorer.Score(tt.query, tokens, tt.fields)
			if got < tt.wantMin || got > tt.wantMax {
				t.Errorf("Score(%q) = %v, want between %v and %v", tt.query, got, tt.wantMin, tt.wantMax)
			}
		})
	}
}

func TestScorer_Deterministic(t *testing.T) {
	scorer := NewScorer(nil)
	fields := Fields{Name: "Organic Honey", SKU: "HNY042", Category: "Pantry", Description: "raw wildflower honey"}
	tokens := []string{"organic", "honey"}

	first := scorer.Score("organic honey", tokens, fields)
	for i := 0; i < 10; i++ {
		if got := scorer.Score("organic honey", tokens, fields); got != first {
			t.Fatalf("Score changed between calls: %v != %v", got, first)
		}
	}
}

// TestScorer_ExactDominatesFuzzy checks that a full exact name match always
// outscores what pure similarity could ever contribute.
func TestScorer_ExactDominatesFuzzy(t *testing.T) {
	config := DefaultScoringConfig()
	if config.ExactNameScore <= config.NameSimilarityWeight {
		t.Fatalf("exact name weight %v must exceed max similarity contribution %v",
			config.ExactNameScore, config.NameSimilarityWeight)
	}

	scorer := NewScorer(config)
	exact := scorer.Score("organic honey", []string{"organic", "honey"}, Fields{Name: "Organic Honey"})
	typo := scorer.Score("organic honey", []string{"organic", "honey"}, Fields{Name: "Orgnic Honny"})
	if exact <= typo {
		t.Errorf("exact match %v should outscore typo match %v", exact, typo)
	}
}

// TestScorer_MoreTokensScoreHigher checks that a product matching more of the
// query's words outranks one matching fewer.
func TestScorer_MoreTokensScoreHigher(t *testing.T) {
	scorer := NewScorer(nil)
	query := "red apples"
	tokens := []string{"red", "apples"}

	both := scorer.Score(query, tokens, Fields{Name: "Red Apples Bag"})
	one := scorer.Score(query, tokens, Fields{Name: "Green Apples Bag"})
	if both <= one {
		t.Errorf("product matching both tokens scored %v, expected more than %v", both, one)
	}
}

// Single-word queries must not receive per-token credit on top of the
// full-query signals.
func TestScorer_SingleTokenNoTokenCredit(t *testing.T) {
	config := DefaultScoringConfig()
	scorer := NewScorer(config)

	got := scorer.Score("milk", []string{"milk"}, Fields{Name: "milk"})
	want := config.ExactNameScore + config.NamePrefixScore + config.NameContainsScore + config.NameSimilarityWeight
	if got != want {
		t.Errorf("Score = %v, want %v (no token contributions for single-word query)", got, want)
	}
}
