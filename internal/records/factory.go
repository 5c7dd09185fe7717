// Package records builds validated transactions, pickups and bills from raw
// user input. Nothing here stores records; the caller appends and persists.
package records

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/joao-fontenele/msme-business-hub/internal/billing"
	"github.com/joao-fontenele/msme-business-hub/internal/domain"
)

const (
	PickupPrefix = "PICKUP"
	BillPrefix   = "BILL"
)

// datetimeLocal is the layout submitted by HTML datetime-local inputs.
const datetimeLocal = "2006-01-02T15:04"

type TransactionInput struct {
	ID     string
	Amount string
}

type PickupInput struct {
	WasteType    string
	Quantity     string
	DateTime     string
	Instructions string
}

type BillInput struct {
	Customer domain.Customer
	Products []domain.LineItem
}

type Factory struct {
	now func() time.Time
	ids *IDGenerator
	loc *time.Location
}

// NewFactory returns a factory reading the current time from now. Datetimes
// without an offset are interpreted in loc; a nil loc means time.Local.
func NewFactory(now func() time.Time, loc *time.Location) *Factory {
	if now == nil {
		now = time.Now
	}
	if loc == nil {
		loc = time.Local
	}
	return &Factory{now: now, ids: NewIDGenerator(now), loc: loc}
}

// ParseTransaction validates a verification request and returns the trimmed
// id and parsed amount.
func (f *Factory) ParseTransaction(in TransactionInput) (string, float64, error) {
	id := strings.TrimSpace(in.ID)
	if id == "" {
		return "", 0, invalid("id", "transaction id is required")
	}

	raw := strings.TrimSpace(in.Amount)
	if raw == "" {
		return "", 0, invalid("amount", "amount is required")
	}
	amount, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return "", 0, invalid("amount", "amount must be a number")
	}
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return "", 0, invalid("amount", "amount must be a finite number")
	}
	if amount < 0 {
		return "", 0, invalid("amount", "amount must not be negative")
	}

	return id, amount, nil
}

// NewTransaction records the gateway outcome for an already validated request.
func (f *Factory) NewTransaction(id string, amount float64, status domain.TransactionStatus) domain.Transaction {
	return domain.Transaction{
		ID:        id,
		Amount:    amount,
		Status:    status,
		Timestamp: f.now().UTC(),
	}
}

func (f *Factory) NewPickup(in PickupInput) (domain.Pickup, error) {
	wasteType := domain.WasteType(strings.ToLower(strings.TrimSpace(in.WasteType)))
	if wasteType == "" {
		return domain.Pickup{}, invalid("wasteType", "waste type is required")
	}
	if !wasteType.Valid() {
		return domain.Pickup{}, invalid("wasteType", "unknown waste type "+strconv.Quote(string(wasteType)))
	}

	quantity, err := strconv.Atoi(strings.TrimSpace(in.Quantity))
	if err != nil {
		return domain.Pickup{}, invalid("quantity", "quantity must be a whole number of kg")
	}
	if quantity <= 0 {
		return domain.Pickup{}, invalid("quantity", "quantity must be positive")
	}

	scheduled, err := f.parseDateTime(in.DateTime)
	if err != nil {
		return domain.Pickup{}, err
	}

	now := f.now()
	return domain.Pickup{
		ID:           f.ids.Next(PickupPrefix),
		WasteType:    wasteType,
		Quantity:     quantity,
		DateTime:     scheduled,
		Instructions: strings.TrimSpace(in.Instructions),
		Status:       domain.PickupStatusScheduled,
		CreatedAt:    now.UTC(),
	}, nil
}

func (f *Factory) NewBill(in BillInput) (domain.Bill, error) {
	customer := domain.Customer{
		Name:    strings.TrimSpace(in.Customer.Name),
		Phone:   strings.TrimSpace(in.Customer.Phone),
		Address: strings.TrimSpace(in.Customer.Address),
	}
	if customer.Name == "" {
		return domain.Bill{}, invalid("customer.name", "customer name is required")
	}
	if customer.Phone == "" {
		return domain.Bill{}, invalid("customer.phone", "customer phone is required")
	}

	for i, item := range in.Products {
		if strings.TrimSpace(item.Name) == "" {
			return domain.Bill{}, invalid("products["+strconv.Itoa(i)+"].name", "product name is required")
		}
	}

	totals, err := billing.ComputeTotals(billing.Prices(in.Products))
	switch {
	case errors.Is(err, billing.ErrNoSelection):
		return domain.Bill{}, invalid("products", "select at least one product")
	case errors.Is(err, billing.ErrInvalidPrice), errors.Is(err, billing.ErrTotalTooLarge):
		return domain.Bill{}, invalid("products", err.Error())
	case err != nil:
		return domain.Bill{}, err
	}

	products := make([]domain.LineItem, len(in.Products))
	copy(products, in.Products)

	return domain.Bill{
		ID:       f.ids.Next(BillPrefix),
		Customer: customer,
		Products: products,
		Subtotal: totals.Subtotal,
		GST:      totals.GST,
		Total:    totals.Total,
		Date:     f.now().UTC(),
	}, nil
}

func (f *Factory) parseDateTime(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, invalid("dateTime", "pickup date and time are required")
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation(datetimeLocal, raw, f.loc); err == nil {
		return t, nil
	}
	return time.Time{}, invalid("dateTime", "unrecognised date and time "+strconv.Quote(raw))
}
