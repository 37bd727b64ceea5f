package search

import (
	"github.com/shelfscout/shelfscout/internal/models"
	"github.com/shelfscout/shelfscout/internal/ranking"
)

// overlayInventory merges per-store inventory facts onto ranked candidates.
// A product without a fact is treated as available with zero stock and an
// unknown location.
func overlayInventory(ranked []ranking.ScoredProduct, facts []*models.StoreInventoryFact) []models.LocatedProduct {
	byProduct := make(map[string]*models.StoreInventoryFact, len(facts))
	for _, f := range facts {
		byProduct[f.ProductID] = f
	}

	results := make([]models.LocatedProduct, 0, len(ranked))
	for _, c := range ranked {
		aisle, shelf := "", ""
		quantity := 0
		available := true
		if fact, ok := byProduct[c.Product.ID]; ok {
			aisle = fact.Aisle
			shelf = fact.ShelfPosition
			quantity = fact.StockQuantity
			available = fact.IsAvailable
		}
		results = append(results, models.LocatedProduct{
			ID:          c.Product.ID,
			Name:        c.Product.Name,
			Category:    c.Product.Category,
			Price:       c.Product.BasePrice.InexactFloat64(),
			Aisle:       aisle,
			Shelf:       shelf,
			StockLevel:  quantity,
			StockStatus: models.DeriveStockStatus(available, quantity),
			Image:       c.Product.ImageURL,
			Description: c.Product.Description,
		})
	}
	return results
}
