package storage

import (
	"strings"

	"github.com/shelfscout/shelfscout/internal/models"
	"github.com/shelfscout/shelfscout/internal/similarity"
)

// Field identifies a searchable product field in a candidate filter.
type Field int

const (
	// FieldName is the product name.
	FieldName Field = iota
	// FieldSKU is the product sku.
	FieldSKU
	// FieldCategory is the product category.
	FieldCategory
	// FieldDescription is the product description.
	FieldDescription
)

// Op is the comparison applied by a filter condition.
type Op int

const (
	// OpEquals matches when the field equals the value.
	OpEquals Op = iota
	// OpPrefix matches when the field starts with the value.
	OpPrefix
	// OpContains matches when the field contains the value as a substring.
	OpContains
	// OpSimilarTo matches when the trigram similarity between the field and
	// the value exceeds the condition's threshold.
	OpSimilarTo
)

// Condition compares one product field against a value. Fields are matched
// case-insensitively; values must already be lowercased by the caller.
type Condition struct {
	Field     Field
	Op        Op
	Value     string
	Threshold float64
}

// Filter selects products matching any of its conditions (a disjunction).
// A filter with no conditions matches nothing. The tree form keeps candidate
// selection independent of any storage engine's parameter-binding mechanics;
// each backend renders or evaluates it in its own terms.
type Filter struct {
	Any []Condition
}

// Equals builds an equality condition.
func Equals(field Field, value string) Condition {
	return Condition{Field: field, Op: OpEquals, Value: value}
}

// Prefix builds a starts-with condition.
func Prefix(field Field, value string) Condition {
	return Condition{Field: field, Op: OpPrefix, Value: value}
}

// Contains builds a substring condition.
func Contains(field Field, value string) Condition {
	return Condition{Field: field, Op: OpContains, Value: value}
}

// SimilarTo builds a trigram-similarity condition with the given threshold.
func SimilarTo(field Field, value string, threshold float64) Condition {
	return Condition{Field: field, Op: OpSimilarTo, Value: value, Threshold: threshold}
}

// Matches reports whether the product satisfies any condition of the filter.
// This is the reference semantics; SQL renderings must agree with it.
func (f Filter) Matches(p *models.Product) bool {
	for _, c := range f.Any {
		if c.matches(p) {
			return true
		}
	}
	return false
}

func (c Condition) matches(p *models.Product) bool {
	value := strings.ToLower(fieldValue(c.Field, p))
	switch c.Op {
	case OpEquals:
		return value == c.Value
	case OpPrefix:
		return strings.HasPrefix(value, c.Value)
	case OpContains:
		return strings.Contains(value, c.Value)
	case OpSimilarTo:
		return similarity.Similarity(value, c.Value) > c.Threshold
	default:
		return false
	}
}

func fieldValue(f Field, p *models.Product) string {
	switch f {
	case FieldName:
		return p.Name
	case FieldSKU:
		return p.SKU
	case FieldCategory:
		return p.Category
	case FieldDescription:
		return p.Description
	default:
		return ""
	}
}
