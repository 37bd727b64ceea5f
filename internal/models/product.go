// Package models defines core data structures for chains, stores, products, and inventory.
package models

import "github.com/shopspring/decimal"

// Chain is a tenant. A chain owns a catalog of products and one or more stores;
// products are never visible across chain boundaries.
type Chain struct {
	ID   int64  `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}

// Store is a physical location belonging to exactly one chain. Stores layer
// their own inventory facts over the chain's shared catalog.
type Store struct {
	ID      int64  `json:"id" db:"id"`
	ChainID int64  `json:"chain_id" db:"chain_id"`
	Name    string `json:"name" db:"name"`
}

// Product is a catalog entry. (ChainID, SKU) is unique.
type Product struct {
	ID          string          `json:"id" db:"id"`
	ChainID     int64           `json:"chain_id" db:"chain_id"`
	SKU         string          `json:"sku" db:"sku"`
	Name        string          `json:"name" db:"name"`
	Category    string          `json:"category,omitempty" db:"category"`
	BasePrice   decimal.Decimal `json:"base_price" db:"base_price"`
	Description string          `json:"description,omitempty" db:"description"`
	ImageURL    string          `json:"image_url,omitempty" db:"image_url"`
}

// StoreInventoryFact overrides a product's physical location and stock for one
// store. At most one fact exists per (store, product); absence means the
// location is unknown and the product is treated as available with zero stock.
type StoreInventoryFact struct {
	StoreID       int64  `json:"store_id" db:"store_id"`
	ProductID     string `json:"product_id" db:"product_id"`
	Aisle         string `json:"aisle,omitempty" db:"aisle"`
	ShelfPosition string `json:"shelf_position,omitempty" db:"shelf_position"`
	StockQuantity int    `json:"stock_quantity" db:"stock_quantity"`
	IsAvailable   bool   `json:"is_available" db:"is_available"`
}
