package storage

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/shelfscout/shelfscout/internal/models"
)

// MemoryStorage is an in-memory Storage implementation. Suitable for tests
// and small fixtures; candidate filtering evaluates the filter tree directly
// against the catalog instead of rendering it to SQL.
type MemoryStorage struct {
	mu          sync.RWMutex
	chains      map[int64]*models.Chain
	stores      map[int64]*models.Store
	products    map[string]*models.Product
	inventory   map[int64]map[string]*models.StoreInventoryFact
	nextChainID int64
	nextStoreID int64
}

// NewMemoryStorage creates an empty in-memory storage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		chains:      make(map[int64]*models.Chain),
		stores:      make(map[int64]*models.Store),
		products:    make(map[string]*models.Product),
		inventory:   make(map[int64]map[string]*models.StoreInventoryFact),
		nextChainID: 1,
		nextStoreID: 1,
	}
}

// ResolveStoreChain returns the chain owning the store.
func (m *MemoryStorage) ResolveStoreChain(ctx context.Context, storeID int64) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	store, ok := m.stores[storeID]
	if !ok {
		return 0, fmt.Errorf("%w: %d", ErrStoreNotFound, storeID)
	}
	return store.ChainID, nil
}

// ListProducts returns the chain's products matching the filter, in stable
// (id-sorted) order.
func (m *MemoryStorage) ListProducts(ctx context.Context, chainID int64, filter Filter) ([]*models.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var products []*models.Product
	for _, p := range m.products {
		if p.ChainID != chainID {
			continue
		}
		if filter.Matches(p) {
			copied := *p
			products = append(products, &copied)
		}
	}
	sort.Slice(products, func(i, j int) bool { return products[i].ID < products[j].ID })
	return products, nil
}

// GetInventory returns the store's inventory facts for the given product ids.
func (m *MemoryStorage) GetInventory(ctx context.Context, storeID int64, productIDs []string) ([]*models.StoreInventoryFact, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	byStore := m.inventory[storeID]
	facts := make([]*models.StoreInventoryFact, 0, len(productIDs))
	for _, id := range productIDs {
		if fact, ok := byStore[id]; ok {
			copied := *fact
			facts = append(facts, &copied)
		}
	}
	return facts, nil
}

// CreateChain inserts a chain, assigning an id when zero.
func (m *MemoryStorage) CreateChain(ctx context.Context, chain *models.Chain) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if chain.ID == 0 {
		chain.ID = m.nextChainID
	}
	if chain.ID >= m.nextChainID {
		m.nextChainID = chain.ID + 1
	}
	copied := *chain
	m.chains[chain.ID] = &copied
	return nil
}

// CreateStore inserts a store, assigning an id when zero.
func (m *MemoryStorage) CreateStore(ctx context.Context, store *models.Store) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.chains[store.ChainID]; !ok {
		return fmt.Errorf("%w: %d", ErrChainNotFound, store.ChainID)
	}
	if store.ID == 0 {
		store.ID = m.nextStoreID
	}
	if store.ID >= m.nextStoreID {
		m.nextStoreID = store.ID + 1
	}
	copied := *store
	m.stores[store.ID] = &copied
	return nil
}

// CreateProduct inserts a product, enforcing (chain, sku) uniqueness.
func (m *MemoryStorage) CreateProduct(ctx context.Context, product *models.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if product.ID == "" {
		product.ID = uuid.NewString()
	}
	for _, existing := range m.products {
		if existing.ChainID == product.ChainID && existing.SKU == product.SKU {
			return fmt.Errorf("%w: %s", ErrDuplicateSKU, product.SKU)
		}
	}
	copied := *product
	m.products[product.ID] = &copied
	return nil
}

// UpsertInventory inserts or replaces the fact for its (store, product) pair.
func (m *MemoryStorage) UpsertInventory(ctx context.Context, fact *models.StoreInventoryFact) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.products[fact.ProductID]; !ok {
		return fmt.Errorf("%w: %s", ErrProductNotFound, fact.ProductID)
	}
	if m.inventory[fact.StoreID] == nil {
		m.inventory[fact.StoreID] = make(map[string]*models.StoreInventoryFact)
	}
	copied := *fact
	m.inventory[fact.StoreID][fact.ProductID] = &copied
	return nil
}

// CountChains returns the number of chains.
func (m *MemoryStorage) CountChains(ctx context.Context) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return int64(len(m.chains)), nil
}

// CountStores returns the number of stores.
func (m *MemoryStorage) CountStores(ctx context.Context) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return int64(len(m.stores)), nil
}

// CountProducts returns the number of products across all chains.
func (m *MemoryStorage) CountProducts(ctx context.Context) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return int64(len(m.products)), nil
}

// Close is a no-op.
func (m *MemoryStorage) Close() error {
	return nil
}
