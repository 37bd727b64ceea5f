package models

// StockStatus is the derived tri-state stock indicator shown at the kiosk.
type StockStatus string

const (
	// StockStatusIn means the product is available with plenty of stock.
	StockStatusIn StockStatus = "in-stock"
	// StockStatusLow means the product is available but running out.
	StockStatusLow StockStatus = "low-stock"
	// StockStatusOut means the product is unavailable or has no stock.
	StockStatusOut StockStatus = "out-of-stock"
)

// LowStockThreshold is the quantity below which an available product is
// reported as low-stock.
const LowStockThreshold = 10

// DeriveStockStatus maps an availability flag and a stock quantity to exactly
// one StockStatus. The mapping is total: every input pair produces a status.
func DeriveStockStatus(isAvailable bool, stockQuantity int) StockStatus {
	switch {
	case !isAvailable || stockQuantity <= 0:
		return StockStatusOut
	case stockQuantity < LowStockThreshold:
		return StockStatusLow
	default:
		return StockStatusIn
	}
}

// LocatedProduct is a single search hit: a ranked catalog entry merged with
// the queried store's inventory facts.
type LocatedProduct struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Category    string      `json:"category"`
	Price       float64     `json:"price"`
	Aisle       string      `json:"aisle"`
	Shelf       string      `json:"shelf"`
	StockLevel  int         `json:"stockLevel"`
	StockStatus StockStatus `json:"stockStatus"`
	Image       string      `json:"image"`
	Description string      `json:"description"`
}
