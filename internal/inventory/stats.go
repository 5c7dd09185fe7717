package inventory

import (
	"strings"

	"github.com/joao-fontenele/msme-business-hub/internal/domain"
)

type Stats struct {
	Total      int `json:"total"`
	InStock    int `json:"in_stock"`
	LowStock   int `json:"low_stock"`
	OutOfStock int `json:"out_of_stock"`
}

func Summarize(items []domain.InventoryItem) Stats {
	stats := Stats{Total: len(items)}
	for _, item := range items {
		switch item.Status {
		case domain.StockStatusInStock:
			stats.InStock++
		case domain.StockStatusLowStock:
			stats.LowStock++
		case domain.StockStatusOutOfStock:
			stats.OutOfStock++
		}
	}
	return stats
}

// Search returns the items whose name or SKU contains term, ignoring case.
// An empty term matches everything.
func Search(items []domain.InventoryItem, term string) []domain.InventoryItem {
	term = strings.ToLower(strings.TrimSpace(term))
	result := make([]domain.InventoryItem, 0, len(items))
	for _, item := range items {
		if term == "" ||
			strings.Contains(strings.ToLower(item.Name), term) ||
			strings.Contains(strings.ToLower(item.SKU), term) {
			result = append(result, item)
		}
	}
	return result
}

// NeedsRestock returns the low and out of stock items.
func NeedsRestock(items []domain.InventoryItem) []domain.InventoryItem {
	var result []domain.InventoryItem
	for _, item := range items {
		if item.Status != domain.StockStatusInStock {
			result = append(result, item)
		}
	}
	return result
}

// DefaultItems is the inventory a fresh store starts with.
func DefaultItems() []domain.InventoryItem {
	items := []domain.InventoryItem{
		{ID: 1, Name: "Notebook", SKU: "NB001", Quantity: 50, Price: 50},
		{ID: 2, Name: "Pens", SKU: "PEN001", Quantity: 0, Price: 20},
		{ID: 3, Name: "Paper", SKU: "PAP001", Quantity: 12, Price: 30},
		{ID: 4, Name: "Stapler", SKU: "STP001", Quantity: 25, Price: 150},
		{ID: 5, Name: "Calculator", SKU: "CAL001", Quantity: 8, Price: 500},
	}
	RecomputeAll(items)
	return items
}
