package records

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joao-fontenele/msme-business-hub/internal/domain"
)

func TestNewInventoryItem(t *testing.T) {
	f := newTestFactory()

	item, err := f.NewInventoryItem(6, ProductInput{Name: " Glue ", SKU: "glu001", Quantity: 10, Price: 15})
	require.NoError(t, err)
	assert.Equal(t, domain.InventoryItem{
		ID:       6,
		Name:     "Glue",
		SKU:      "GLU001",
		Quantity: 10,
		Price:    15,
		Status:   domain.StockStatusLowStock,
	}, item)

	_, err = f.NewInventoryItem(6, ProductInput{SKU: "X"})
	assertValidation(t, err, "name")

	_, err = f.NewInventoryItem(6, ProductInput{Name: "X"})
	assertValidation(t, err, "sku")

	_, err = f.NewInventoryItem(6, ProductInput{Name: "X", SKU: "X", Quantity: -1})
	assertValidation(t, err, "quantity")

	_, err = f.NewInventoryItem(6, ProductInput{Name: "X", SKU: "X", Price: -0.5})
	assertValidation(t, err, "price")
}
