package billing

import (
	"errors"
	"fmt"
	"strings"

	"github.com/joao-fontenele/msme-business-hub/internal/domain"
)

var ErrUnknownProduct = errors.New("unknown product")

var catalogue = []domain.CatalogProduct{
	{ID: 1, Name: "Notebook", Price: 50, Category: "Stationery"},
	{ID: 2, Name: "Pen", Price: 20, Category: "Stationery"},
	{ID: 3, Name: "Paper", Price: 30, Category: "Stationery"},
	{ID: 4, Name: "Stapler", Price: 150, Category: "Office Supplies"},
	{ID: 5, Name: "Calculator", Price: 500, Category: "Electronics"},
	{ID: 6, Name: "Desk Organizer", Price: 250, Category: "Office Supplies"},
}

// SearchProducts returns catalogue products whose name contains term.
func SearchProducts(term string) []domain.CatalogProduct {
	term = strings.ToLower(strings.TrimSpace(term))
	result := make([]domain.CatalogProduct, 0, len(catalogue))
	for _, p := range catalogue {
		if term == "" || strings.Contains(strings.ToLower(p.Name), term) {
			result = append(result, p)
		}
	}
	return result
}

// LookupProducts resolves catalogue ids to bill line items, keeping the
// order of ids.
func LookupProducts(ids []int) ([]domain.LineItem, error) {
	items := make([]domain.LineItem, 0, len(ids))
	for _, id := range ids {
		p, ok := findProduct(id)
		if !ok {
			return nil, fmt.Errorf("product %d: %w", id, ErrUnknownProduct)
		}
		items = append(items, domain.LineItem{Name: p.Name, Price: p.Price})
	}
	return items, nil
}

func findProduct(id int) (domain.CatalogProduct, bool) {
	for _, p := range catalogue {
		if p.ID == id {
			return p, true
		}
	}
	return domain.CatalogProduct{}, false
}

// Prices extracts the prices of line items in order.
func Prices(items []domain.LineItem) []float64 {
	prices := make([]float64, len(items))
	for i, item := range items {
		prices[i] = item.Price
	}
	return prices
}
