package domain

type StockStatus string

const (
	StockStatusInStock    StockStatus = "in-stock"
	StockStatusLowStock   StockStatus = "low-stock"
	StockStatusOutOfStock StockStatus = "out-of-stock"
)

// Label is the human readable form shown next to an item.
func (s StockStatus) Label() string {
	switch s {
	case StockStatusInStock:
		return "In Stock"
	case StockStatusLowStock:
		return "Low Stock"
	case StockStatusOutOfStock:
		return "Out of Stock"
	}
	return string(s)
}

type InventoryItem struct {
	ID       int64       `json:"id"`
	Name     string      `json:"name"`
	SKU      string      `json:"sku"`
	Quantity int         `json:"quantity"`
	Price    float64     `json:"price"`
	Status   StockStatus `json:"status"`
}
