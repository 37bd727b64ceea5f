package search

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/shelfscout/shelfscout/internal/models"
	"github.com/shelfscout/shelfscout/internal/storage"
)

// countingStorage wraps a Storage and counts read calls, so tests can assert
// that vacuous queries never reach the backend.
type countingStorage struct {
	storage.Storage
	resolveCalls int
	listCalls    int
	invCalls     int
}

func (c *countingStorage) ResolveStoreChain(ctx context.Context, storeID int64) (int64, error) {
	c.resolveCalls++
	return c.Storage.ResolveStoreChain(ctx, storeID)
}

func (c *countingStorage) ListProducts(ctx context.Context, chainID int64, filter storage.Filter) ([]*models.Product, error) {
	c.listCalls++
	return c.Storage.ListProducts(ctx, chainID, filter)
}

func (c *countingStorage) GetInventory(ctx context.Context, storeID int64, productIDs []string) ([]*models.StoreInventoryFact, error) {
	c.invCalls++
	return c.Storage.GetInventory(ctx, storeID, productIDs)
}

// seedCatalog builds two chains with one store each. Chain 1 (store 1) has a
// small grocery catalog; chain 2 (store 2) is empty.
func seedCatalog(t *testing.T) *storage.MemoryStorage {
	t.Helper()
	ctx := context.Background()
	m := storage.NewMemoryStorage()

	for _, chain := range []*models.Chain{
		{ID: 1, Name: "Fresh Mart"},
		{ID: 2, Name: "Corner Grocer"},
	} {
		if err := m.CreateChain(ctx, chain); err != nil {
			t.Fatalf("CreateChain: %v", err)
		}
	}
	for _, store := range []*models.Store{
		{ID: 1, ChainID: 1, Name: "Downtown"},
		{ID: 2, ChainID: 2, Name: "Riverside"},
	} {
		if err := m.CreateStore(ctx, store); err != nil {
			t.Fatalf("CreateStore: %v", err)
		}
	}

	for _, p := range []*models.Product{
		{ID: "apples", ChainID: 1, SKU: "APPL001", Name: "Red Apples", Category: "Produce",
			BasePrice: decimal.RequireFromString("2.99"), Description: "Crisp red apples"},
		{ID: "milk", ChainID: 1, SKU: "MILK010", Name: "Whole Milk", Category: "Dairy",
			BasePrice: decimal.RequireFromString("1.49")},
		{ID: "juice", ChainID: 1, SKU: "JUIC020", Name: "Apple Juice", Category: "Beverages",
			BasePrice: decimal.RequireFromString("3.79")},
	} {
		if err := m.CreateProduct(ctx, p); err != nil {
			t.Fatalf("CreateProduct(%s): %v", p.ID, err)
		}
	}

	if err := m.UpsertInventory(ctx, &models.StoreInventoryFact{
		StoreID: 1, ProductID: "apples", Aisle: "1", ShelfPosition: "A",
		StockQuantity: 5, IsAvailable: true,
	}); err != nil {
		t.Fatalf("UpsertInventory: %v", err)
	}
	return m
}

func newTestEngine(st storage.Storage) *Engine {
	return NewEngine(st, nil, nil)
}

// Scenario: "apple" on store 1 finds Red Apples with its low-stock shelf fact.
func TestEngine_SearchMergesInventory(t *testing.T) {
	engine := newTestEngine(seedCatalog(t))

	results, err := engine.Search(context.Background(), &models.SearchQuery{Query: "apple", StoreID: 1})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) == 0 {
		t.Fatal("no results for \"apple\"")
	}

	var apples *models.LocatedProduct
	for i := range results {
		if results[i].ID == "apples" {
			apples = &results[i]
		}
	}
	if apples == nil {
		t.Fatal("Red Apples not in results")
	}
	if apples.StockStatus != models.StockStatusLow {
		t.Errorf("StockStatus = %q, want %q", apples.StockStatus, models.StockStatusLow)
	}
	if apples.Aisle != "1" || apples.Shelf != "A" || apples.StockLevel != 5 {
		t.Errorf("location = aisle %q shelf %q level %d, want 1/A/5", apples.Aisle, apples.Shelf, apples.StockLevel)
	}
	if apples.Price != 2.99 {
		t.Errorf("Price = %v, want 2.99", apples.Price)
	}
}

// Scenario: an exact (case-mismatched) sku query still finds the product and
// ranks it first.
func TestEngine_SearchBySKU(t *testing.T) {
	engine := newTestEngine(seedCatalog(t))

	results, err := engine.Search(context.Background(), &models.SearchQuery{Query: "APPL001", StoreID: 1})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) == 0 || results[0].ID != "apples" {
		t.Fatalf("sku query results = %v, want Red Apples first", results)
	}
}

// Scenario: no trigram overlap with any catalog entry yields an empty list.
func TestEngine_SearchNoMatch(t *testing.T) {
	engine := newTestEngine(seedCatalog(t))

	results, err := engine.Search(context.Background(), &models.SearchQuery{Query: "xq-zv-unrelated", StoreID: 1})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("results = %v, want empty", results)
	}
}

// Scenario: a product in chain 1 is never visible from a chain 2 store.
func TestEngine_TenantIsolation(t *testing.T) {
	engine := newTestEngine(seedCatalog(t))

	results, err := engine.Search(context.Background(), &models.SearchQuery{Query: "apple", StoreID: 2})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("chain 2 store sees chain 1 catalog: %v", results)
	}
}

// Scenario: a ranked product without an inventory fact still appears, shown
// as out-of-stock with an unknown location.
func TestEngine_MissingInventoryFactDefaults(t *testing.T) {
	engine := newTestEngine(seedCatalog(t))

	results, err := engine.Search(context.Background(), &models.SearchQuery{Query: "whole milk", StoreID: 1})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}

	var milk *models.LocatedProduct
	for i := range results {
		if results[i].ID == "milk" {
			milk = &results[i]
		}
	}
	if milk == nil {
		t.Fatal("Whole Milk not in results")
	}
	if milk.StockStatus != models.StockStatusOut {
		t.Errorf("StockStatus = %q, want %q", milk.StockStatus, models.StockStatusOut)
	}
	if milk.Aisle != "" || milk.Shelf != "" || milk.StockLevel != 0 {
		t.Errorf("defaults = aisle %q shelf %q level %d, want empty/empty/0", milk.Aisle, milk.Shelf, milk.StockLevel)
	}
}

func TestEngine_VacuousQuerySkipsStorage(t *testing.T) {
	counting := &countingStorage{Storage: seedCatalog(t)}
	engine := newTestEngine(counting)

	for _, query := range []string{"", "   ", "\t \n"} {
		results, err := engine.Search(context.Background(), &models.SearchQuery{Query: query, StoreID: 1})
		if err != nil {
			t.Fatalf("Search(%q): %v", query, err)
		}
		if results == nil || len(results) != 0 {
			t.Errorf("Search(%q) = %v, want empty non-nil list", query, results)
		}
	}
	if counting.resolveCalls != 0 || counting.listCalls != 0 || counting.invCalls != 0 {
		t.Errorf("vacuous queries reached storage: resolve=%d list=%d inventory=%d",
			counting.resolveCalls, counting.listCalls, counting.invCalls)
	}
}

func TestEngine_UnknownStore(t *testing.T) {
	engine := newTestEngine(seedCatalog(t))

	_, err := engine.Search(context.Background(), &models.SearchQuery{Query: "apple", StoreID: 404})
	if !errors.Is(err, storage.ErrStoreNotFound) {
		t.Errorf("err = %v, want ErrStoreNotFound", err)
	}
}

func TestEngine_ResultCap(t *testing.T) {
	ctx := context.Background()
	m := storage.NewMemoryStorage()
	if err := m.CreateChain(ctx, &models.Chain{ID: 1, Name: "Mega Mart"}); err != nil {
		t.Fatalf("CreateChain: %v", err)
	}
	if err := m.CreateStore(ctx, &models.Store{ID: 1, ChainID: 1, Name: "Flagship"}); err != nil {
		t.Fatalf("CreateStore: %v", err)
	}
	for i := 0; i < 80; i++ {
		p := &models.Product{
			ChainID:  1,
			SKU:      fmt.Sprintf("SODA%03d", i),
			Name:     fmt.Sprintf("Soda Flavor %03d", i),
			Category: "Beverages",
		}
		if err := m.CreateProduct(ctx, p); err != nil {
			t.Fatalf("CreateProduct: %v", err)
		}
	}

	engine := newTestEngine(m)
	results, err := engine.Search(ctx, &models.SearchQuery{Query: "soda", StoreID: 1})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 50 {
		t.Errorf("len(results) = %d, want the hard cap of 50", len(results))
	}
}
