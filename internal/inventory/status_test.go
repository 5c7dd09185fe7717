package inventory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joao-fontenele/msme-business-hub/internal/domain"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		quantity int
		want     domain.StockStatus
	}{
		{0, domain.StockStatusOutOfStock},
		{1, domain.StockStatusLowStock},
		{5, domain.StockStatusLowStock},
		{10, domain.StockStatusLowStock},
		{11, domain.StockStatusInStock},
		{1000, domain.StockStatusInStock},
		{-3, domain.StockStatusOutOfStock},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Classify(tt.quantity), "quantity %d", tt.quantity)
	}
}

func TestClassifyBoundariesOverRange(t *testing.T) {
	for q := 0; q <= 200; q++ {
		got := Classify(q)
		switch {
		case q == 0:
			require.Equal(t, domain.StockStatusOutOfStock, got, "quantity %d", q)
		case q <= 10:
			require.Equal(t, domain.StockStatusLowStock, got, "quantity %d", q)
		default:
			require.Equal(t, domain.StockStatusInStock, got, "quantity %d", q)
		}
	}
}

func TestRecomputeAll(t *testing.T) {
	t.Run("fixes stale statuses", func(t *testing.T) {
		items := []domain.InventoryItem{
			{ID: 1, Quantity: 0, Status: domain.StockStatusInStock},
			{ID: 2, Quantity: 12, Status: domain.StockStatusLowStock},
			{ID: 3, Quantity: 8, Status: domain.StockStatusLowStock},
		}

		changed := RecomputeAll(items)

		assert.Equal(t, 2, changed)
		assert.Equal(t, domain.StockStatusOutOfStock, items[0].Status)
		assert.Equal(t, domain.StockStatusInStock, items[1].Status)
		assert.Equal(t, domain.StockStatusLowStock, items[2].Status)
	})

	t.Run("is idempotent", func(t *testing.T) {
		items := DefaultItems()
		before := append([]domain.InventoryItem(nil), items...)

		assert.Equal(t, 0, RecomputeAll(items))
		assert.Equal(t, 0, RecomputeAll(items))
		assert.Equal(t, before, items)
	})

	t.Run("empty slice", func(t *testing.T) {
		assert.Equal(t, 0, RecomputeAll(nil))
	})
}

func TestStatusLabel(t *testing.T) {
	assert.Equal(t, "Low Stock", domain.StockStatusLowStock.Label())
	assert.Equal(t, "Out of Stock", domain.StockStatusOutOfStock.Label())
}
