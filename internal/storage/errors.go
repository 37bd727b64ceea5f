package storage

import "errors"

var (
	// ErrStoreNotFound signals that a store id does not resolve to a chain.
	ErrStoreNotFound = errors.New("store not found")
	// ErrChainNotFound signals a missing chain.
	ErrChainNotFound = errors.New("chain not found")
	// ErrProductNotFound signals a missing product.
	ErrProductNotFound = errors.New("product not found")
	// ErrDuplicateSKU signals a (chain, sku) uniqueness violation.
	ErrDuplicateSKU = errors.New("sku already exists in chain")
	// ErrSimilarityUnavailable signals that the trigram similarity function is
	// not installed on the database connection. This is a deployment defect,
	// not a transient fault, and is surfaced distinctly from internal errors.
	ErrSimilarityUnavailable = errors.New("trigram similarity function unavailable")
)
