package records

import (
	"strings"

	"github.com/joao-fontenele/msme-business-hub/internal/domain"
	"github.com/joao-fontenele/msme-business-hub/internal/inventory"
)

type ProductInput struct {
	Name     string
	SKU      string
	Quantity int
	Price    float64
}

// NewInventoryItem validates a product form and returns the item with its
// stock status already derived.
func (f *Factory) NewInventoryItem(id int64, in ProductInput) (domain.InventoryItem, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return domain.InventoryItem{}, invalid("name", "product name is required")
	}
	sku := strings.ToUpper(strings.TrimSpace(in.SKU))
	if sku == "" {
		return domain.InventoryItem{}, invalid("sku", "sku is required")
	}
	if in.Quantity < 0 {
		return domain.InventoryItem{}, invalid("quantity", "quantity must not be negative")
	}
	if in.Price < 0 {
		return domain.InventoryItem{}, invalid("price", "price must not be negative")
	}

	return domain.InventoryItem{
		ID:       id,
		Name:     name,
		SKU:      sku,
		Quantity: in.Quantity,
		Price:    in.Price,
		Status:   inventory.Classify(in.Quantity),
	}, nil
}
