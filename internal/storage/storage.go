// Package storage defines the persistence interface for chains, stores,
// products, and per-store inventory facts.
package storage

import (
	"context"

	"github.com/shelfscout/shelfscout/internal/models"
)

// Storage defines catalog and inventory persistence operations. The search
// engine only uses the read side (ResolveStoreChain, ListProducts,
// GetInventory); the write side exists to load fixtures and seed data.
type Storage interface {
	// ResolveStoreChain returns the id of the chain owning the store, or
	// ErrStoreNotFound if the store does not exist.
	ResolveStoreChain(ctx context.Context, storeID int64) (int64, error)

	// ListProducts returns the chain's products matching the filter.
	ListProducts(ctx context.Context, chainID int64, filter Filter) ([]*models.Product, error)

	// GetInventory returns the store's inventory facts for the given product
	// ids. Products without a fact are simply absent from the result.
	GetInventory(ctx context.Context, storeID int64, productIDs []string) ([]*models.StoreInventoryFact, error)

	// Seeding operations
	CreateChain(ctx context.Context, chain *models.Chain) error
	CreateStore(ctx context.Context, store *models.Store) error
	CreateProduct(ctx context.Context, product *models.Product) error
	UpsertInventory(ctx context.Context, fact *models.StoreInventoryFact) error

	// Stats
	CountChains(ctx context.Context) (int64, error)
	CountStores(ctx context.Context) (int64, error)
	CountProducts(ctx context.Context) (int64, error)

	Close() error
}
