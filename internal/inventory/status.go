// Package inventory derives stock status from quantities and answers the
// read-side questions asked about the inventory list.
package inventory

import "github.com/joao-fontenele/msme-business-hub/internal/domain"

// LowStockThreshold is the highest quantity still reported as low stock.
const LowStockThreshold = 10

// Classify maps a quantity to its stock status.
func Classify(quantity int) domain.StockStatus {
	switch {
	case quantity <= 0:
		return domain.StockStatusOutOfStock
	case quantity <= LowStockThreshold:
		return domain.StockStatusLowStock
	default:
		return domain.StockStatusInStock
	}
}

// RecomputeAll rewrites the status of every item from its quantity and
// returns how many statuses changed.
func RecomputeAll(items []domain.InventoryItem) int {
	changed := 0
	for i := range items {
		status := Classify(items[i].Quantity)
		if items[i].Status != status {
			items[i].Status = status
			changed++
		}
	}
	return changed
}
