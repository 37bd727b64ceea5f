// Package fixture loads seed data (chains, stores, products, inventory) from
// a YAML file into storage.
package fixture

import (
	"context"
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/shelfscout/shelfscout/internal/models"
	"github.com/shelfscout/shelfscout/internal/storage"
)

// Fixture is the top-level seed file structure.
type Fixture struct {
	Chains    []ChainFixture     `yaml:"chains"`
	Inventory []InventoryFixture `yaml:"inventory"`
}

// ChainFixture is one chain with its stores and catalog.
type ChainFixture struct {
	Name     string           `yaml:"name"`
	Stores   []StoreFixture   `yaml:"stores"`
	Products []ProductFixture `yaml:"products"`
}

// StoreFixture is one store of a chain.
type StoreFixture struct {
	Name string `yaml:"name"`
}

// ProductFixture is one catalog entry.
type ProductFixture struct {
	SKU         string `yaml:"sku"`
	Name        string `yaml:"name"`
	Category    string `yaml:"category"`
	Price       string `yaml:"price"`
	Description string `yaml:"description"`
	Image       string `yaml:"image"`
}

// InventoryFixture places one product in one store. Store and product are
// referenced by name and sku, which must be unique across the fixture.
type InventoryFixture struct {
	Store     string `yaml:"store"`
	SKU       string `yaml:"sku"`
	Aisle     string `yaml:"aisle"`
	Shelf     string `yaml:"shelf"`
	Quantity  int    `yaml:"quantity"`
	Available *bool  `yaml:"available"`
}

// Load reads and parses a fixture file.
func Load(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixture: %w", err)
	}
	var f Fixture
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse fixture: %w", err)
	}
	return &f, nil
}

// Apply writes the fixture into storage and returns the number of products
// created. Store names and skus must be unambiguous across the whole fixture
// so inventory entries can reference them.
func (f *Fixture) Apply(ctx context.Context, st storage.Storage) (int, error) {
	storeIDs := make(map[string]int64)
	productIDs := make(map[string]string)
	created := 0

	for i := range f.Chains {
		cf := &f.Chains[i]
		chain := &models.Chain{Name: cf.Name}
		if err := st.CreateChain(ctx, chain); err != nil {
			return created, fmt.Errorf("chain %q: %w", cf.Name, err)
		}

		for _, sf := range cf.Stores {
			if _, dup := storeIDs[sf.Name]; dup {
				return created, fmt.Errorf("duplicate store name %q in fixture", sf.Name)
			}
			store := &models.Store{ChainID: chain.ID, Name: sf.Name}
			if err := st.CreateStore(ctx, store); err != nil {
				return created, fmt.Errorf("store %q: %w", sf.Name, err)
			}
			storeIDs[sf.Name] = store.ID
		}

		for _, pf := range cf.Products {
			price := decimal.Zero
			if pf.Price != "" {
				parsed, err := decimal.NewFromString(pf.Price)
				if err != nil {
					return created, fmt.Errorf("product %q: invalid price %q: %w", pf.SKU, pf.Price, err)
				}
				price = parsed
			}
			product := &models.Product{
				ChainID:     chain.ID,
				SKU:         pf.SKU,
				Name:        pf.Name,
				Category:    pf.Category,
				BasePrice:   price,
				Description: pf.Description,
				ImageURL:    pf.Image,
			}
			if err := st.CreateProduct(ctx, product); err != nil {
				return created, fmt.Errorf("product %q: %w", pf.SKU, err)
			}
			if _, dup := productIDs[pf.SKU]; dup {
				return created, fmt.Errorf("duplicate sku %q in fixture", pf.SKU)
			}
			productIDs[pf.SKU] = product.ID
			created++
		}
	}

	for _, inv := range f.Inventory {
		storeID, ok := storeIDs[inv.Store]
		if !ok {
			return created, fmt.Errorf("inventory references unknown store %q", inv.Store)
		}
		productID, ok := productIDs[inv.SKU]
		if !ok {
			return created, fmt.Errorf("inventory references unknown sku %q", inv.SKU)
		}
		available := true
		if inv.Available != nil {
			available = *inv.Available
		}
		fact := &models.StoreInventoryFact{
			StoreID:       storeID,
			ProductID:     productID,
			Aisle:         inv.Aisle,
			ShelfPosition: inv.Shelf,
			StockQuantity: inv.Quantity,
			IsAvailable:   available,
		}
		if err := st.UpsertInventory(ctx, fact); err != nil {
			return created, fmt.Errorf("inventory %q/%q: %w", inv.Store, inv.SKU, err)
		}
	}

	return created, nil
}
