package models

import "strings"

// SearchQuery represents a product search request scoped to one store.
type SearchQuery struct {
	Query   string `json:"query"`
	StoreID int64  `json:"storeId"`

	// NormalizedText and Tokens are derived by Normalize and never serialized.
	NormalizedText string   `json:"-"`
	Tokens         []string `json:"-"`
}

// Normalize lowercases and trims the raw query and splits it into non-empty
// whitespace-delimited tokens. An empty NormalizedText after normalization is
// not an error; it is a vacuous query that matches nothing.
func (q *SearchQuery) Normalize() {
	q.NormalizedText = strings.ToLower(strings.TrimSpace(q.Query))
	q.Tokens = strings.Fields(q.NormalizedText)
}

// IsVacuous reports whether the query normalizes to nothing searchable.
// Normalize must have been called first.
func (q *SearchQuery) IsVacuous() bool {
	return q.NormalizedText == ""
}
