// Package billing computes bill totals and renders invoices.
package billing

import (
	"errors"
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

// GSTRate is the flat goods and services tax applied to every bill.
var GSTRate = decimal.RequireFromString("0.18")

var (
	ErrNoSelection  = errors.New("no products selected")
	ErrInvalidPrice  = errors.New("price must be a non-negative number")
	ErrTotalTooLarge = errors.New("bill total is too large")
)

type Totals struct {
	Subtotal float64 `json:"subtotal"`
	GST      float64 `json:"gst"`
	Total    float64 `json:"total"`
}

// ComputeTotals sums the selected prices and applies GST. An empty
// selection is reported as ErrNoSelection rather than a zero bill.
func ComputeTotals(prices []float64) (Totals, error) {
	if len(prices) == 0 {
		return Totals{}, ErrNoSelection
	}

	subtotal := decimal.Zero
	for i, price := range prices {
		if price < 0 || math.IsNaN(price) || math.IsInf(price, 0) {
			return Totals{}, fmt.Errorf("price at position %d: %w", i, ErrInvalidPrice)
		}
		subtotal = subtotal.Add(decimal.NewFromFloat(price))
	}

	gst := subtotal.Mul(GSTRate)
	total := subtotal.Add(gst)

	totals := Totals{
		Subtotal: subtotal.InexactFloat64(),
		GST:      gst.InexactFloat64(),
		Total:    total.InexactFloat64(),
	}
	if math.IsInf(totals.Total, 0) {
		return Totals{}, ErrTotalTooLarge
	}
	return totals, nil
}
