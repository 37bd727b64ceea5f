// Package similarity implements trigram-based string similarity for
// typo-tolerant product matching.
package similarity

import "strings"

// Similarity returns the Jaccard similarity of the trigram sets of a and b,
// in [0, 1]. Comparison is case-insensitive. Identical strings score 1.0 and
// strings sharing no trigrams score 0.0; the score grows with trigram overlap.
func Similarity(a, b string) float64 {
	a = strings.ToLower(strings.TrimSpace(a))
	b = strings.ToLower(strings.TrimSpace(b))
	if a == b {
		return 1.0
	}

	ta := Trigrams(a)
	tb := Trigrams(b)
	if len(ta) == 0 || len(tb) == 0 {
		return 0
	}

	intersection := 0
	for t := range ta {
		if _, ok := tb[t]; ok {
			intersection++
		}
	}
	union := len(ta) + len(tb) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

// Trigrams returns the set of 3-character substrings of s. The string is
// padded with spaces so that prefixes and suffixes produce distinct trigrams;
// all-whitespace trigrams are skipped.
func Trigrams(s string) map[string]struct{} {
	if s == "" {
		return nil
	}

	tris := make(map[string]struct{})
	runes := []rune("  " + s + "  ")
	for i := 0; i <= len(runes)-3; i++ {
		tri := string(runes[i : i+3])
		if strings.TrimSpace(tri) != "" {
			tris[tri] = struct{}{}
		}
	}
	return tris
}
