package hub

import (
	"context"
	"errors"
	"fmt"

	"github.com/joao-fontenele/msme-business-hub/internal/billing"
	"github.com/joao-fontenele/msme-business-hub/internal/domain"
	"github.com/joao-fontenele/msme-business-hub/internal/records"
)

// BillRequest selects products from the catalogue by id and may add free
// form line items after them.
type BillRequest struct {
	Customer   domain.Customer
	ProductIDs []int
	Items      []domain.LineItem
}

func (h *Hub) Products(term string) []domain.CatalogProduct {
	return billing.SearchProducts(term)
}

func (h *Hub) GenerateBill(ctx context.Context, req BillRequest) (domain.Bill, error) {
	selected, err := billing.LookupProducts(req.ProductIDs)
	if errors.Is(err, billing.ErrUnknownProduct) {
		return domain.Bill{}, &records.ValidationError{Field: "productIds", Reason: err.Error()}
	}
	if err != nil {
		return domain.Bill{}, err
	}

	bill, err := h.factory.NewBill(records.BillInput{
		Customer: req.Customer,
		Products: append(selected, req.Items...),
	})
	if err != nil {
		return domain.Bill{}, err
	}

	h.mu.Lock()
	h.state.Bills = append(h.state.Bills, bill)
	err = h.persistLocked(ctx)
	h.mu.Unlock()
	if err != nil {
		return bill, err
	}

	h.metrics.billGenerated(ctx, bill.Total)
	h.logger.Info("bill generated", "bill_id", bill.ID, "items", len(bill.Products), "total", bill.Total)
	h.publish(ctx, domain.EventBillGenerated, bill.ID, bill)
	return bill, nil
}

// Bills returns every bill, oldest first.
func (h *Hub) Bills() []domain.Bill {
	h.mu.Lock()
	defer h.mu.Unlock()
	return cloneBills(h.state.Bills)
}

// RecentBills returns the last n bills, newest first.
func (h *Hub) RecentBills(n int) []domain.Bill {
	h.mu.Lock()
	defer h.mu.Unlock()
	return cloneBills(Recent(h.state.Bills, n))
}

func (h *Hub) Bill(id string) (domain.Bill, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, b := range h.state.Bills {
		if b.ID == id {
			b.Products = clone(b.Products)
			return b, nil
		}
	}
	return domain.Bill{}, fmt.Errorf("bill %s: %w", id, ErrNotFound)
}
