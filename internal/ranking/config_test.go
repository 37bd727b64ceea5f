package ranking

import "testing"

func TestDefaultScoringConfig(t *testing.T) {
	c := DefaultScoringConfig()

	if c.ExactNameScore != 1000 {
		t.Errorf("ExactNameScore = %v, want 1000", c.ExactNameScore)
	}
	if c.ResultCap != 50 {
		t.Errorf("ResultCap = %v, want 50", c.ResultCap)
	}
	if c.NameSimilarityThreshold != 0.20 {
		t.Errorf("NameSimilarityThreshold = %v, want 0.20", c.NameSimilarityThreshold)
	}
	if c.DescriptionSimilarityThreshold != 0.15 {
		t.Errorf("DescriptionSimilarityThreshold = %v, want 0.15", c.DescriptionSimilarityThreshold)
	}
}

func TestScoringConfig_ApplyDefaults(t *testing.T) {
	c := &ScoringConfig{ExactNameScore: 2000, ResultCap: 10}
	c.ApplyDefaults()

	if c.ExactNameScore != 2000 {
		t.Errorf("ExactNameScore overwritten: %v", c.ExactNameScore)
	}
	if c.ResultCap != 10 {
		t.Errorf("ResultCap overwritten: %v", c.ResultCap)
	}
	if c.ExactSKUScore != 900 {
		t.Errorf("ExactSKUScore = %v, want default 900", c.ExactSKUScore)
	}
	if c.TokenContainsScore != 250 {
		t.Errorf("TokenContainsScore = %v, want default 250", c.TokenContainsScore)
	}
	if c.SKUSimilarityThreshold != 0.20 {
		t.Errorf("SKUSimilarityThreshold = %v, want default 0.20", c.SKUSimilarityThreshold)
	}
}
