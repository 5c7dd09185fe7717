package hub

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/joao-fontenele/msme-business-hub/internal/domain"
	"github.com/joao-fontenele/msme-business-hub/internal/inventory"
)

// WasteEarningPerPickup is the flat amount credited per scheduled pickup.
const WasteEarningPerPickup = 250

type Dashboard struct {
	Revenue           float64         `json:"revenue"`
	Bills             int             `json:"bills"`
	Transactions      int             `json:"transactions"`
	VerifiedPayments  int             `json:"verified_payments"`
	SuccessRate       float64         `json:"success_rate"`
	SuccessRateMethod string          `json:"success_rate_method"`
	Pickups           int             `json:"pickups"`
	WasteEarnings     float64         `json:"waste_earnings"`
	Inventory         inventory.Stats `json:"inventory"`
}

// successRateMethod labels how SuccessRate is derived; it is a placeholder
// until real payment outcomes are available.
const successRateMethod = "placeholder: verified / total transactions x 100"

func (h *Hub) Dashboard() Dashboard {
	h.mu.Lock()
	defer h.mu.Unlock()

	revenue := decimal.Zero
	for _, b := range h.state.Bills {
		// NewFromFloat panics on non-finite input.
		if math.IsNaN(b.Total) || math.IsInf(b.Total, 0) {
			continue
		}
		revenue = revenue.Add(decimal.NewFromFloat(b.Total))
	}

	verified := 0
	for _, t := range h.state.Transactions {
		if t.Status == domain.TransactionStatusVerified {
			verified++
		}
	}

	var rate float64
	if n := len(h.state.Transactions); n > 0 {
		rate = decimal.NewFromInt(int64(verified)).
			Mul(decimal.NewFromInt(100)).
			Div(decimal.NewFromInt(int64(n))).
			Round(1).
			InexactFloat64()
	}

	return Dashboard{
		Revenue:           revenue.InexactFloat64(),
		Bills:             len(h.state.Bills),
		Transactions:      len(h.state.Transactions),
		VerifiedPayments:  verified,
		SuccessRate:       rate,
		SuccessRateMethod: successRateMethod,
		Pickups:           len(h.state.Pickups),
		WasteEarnings:     float64(len(h.state.Pickups) * WasteEarningPerPickup),
		Inventory:         inventory.Summarize(h.state.Inventory),
	}
}
