package domain

import "time"

type Customer struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address,omitempty"`
}

type LineItem struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

type Bill struct {
	ID       string     `json:"id"`
	Customer Customer   `json:"customer"`
	Products []LineItem `json:"products"`
	Subtotal float64    `json:"subtotal"`
	GST      float64    `json:"gst"`
	Total    float64    `json:"total"`
	Date     time.Time  `json:"date"`
}

// CatalogProduct is an entry of the fixed product list offered when billing.
type CatalogProduct struct {
	ID       int     `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Category string  `json:"category"`
}
