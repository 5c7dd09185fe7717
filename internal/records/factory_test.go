package records

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joao-fontenele/msme-business-hub/internal/domain"
)

var fixedNow = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

func newTestFactory() *Factory {
	return NewFactory(func() time.Time { return fixedNow }, time.UTC)
}

func assertValidation(t *testing.T, err error, field string) {
	t.Helper()
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, field, verr.Field)
}

func TestParseTransaction(t *testing.T) {
	f := newTestFactory()

	id, amount, err := f.ParseTransaction(TransactionInput{ID: " TXN123 ", Amount: "1500.50"})
	require.NoError(t, err)
	assert.Equal(t, "TXN123", id)
	assert.Equal(t, 1500.50, amount)

	_, _, err = f.ParseTransaction(TransactionInput{ID: "", Amount: "10"})
	assertValidation(t, err, "id")

	_, _, err = f.ParseTransaction(TransactionInput{ID: "T", Amount: ""})
	assertValidation(t, err, "amount")

	_, _, err = f.ParseTransaction(TransactionInput{ID: "T", Amount: "ten"})
	assertValidation(t, err, "amount")

	_, _, err = f.ParseTransaction(TransactionInput{ID: "T", Amount: "-1"})
	assertValidation(t, err, "amount")

	for _, raw := range []string{"NaN", "nan", "Inf", "+Inf", "-Inf", "Infinity", "1e400"} {
		_, _, err = f.ParseTransaction(TransactionInput{ID: "T", Amount: raw})
		assertValidation(t, err, "amount")
	}

	_, amount, err = f.ParseTransaction(TransactionInput{ID: "T", Amount: "0"})
	require.NoError(t, err)
	assert.Zero(t, amount)
}

func TestNewTransaction(t *testing.T) {
	txn := newTestFactory().NewTransaction("TXN1", 99, domain.TransactionStatusFailed)
	assert.Equal(t, domain.Transaction{
		ID:        "TXN1",
		Amount:    99,
		Status:    domain.TransactionStatusFailed,
		Timestamp: fixedNow,
	}, txn)
}

func TestNewPickup(t *testing.T) {
	f := newTestFactory()

	p, err := f.NewPickup(PickupInput{
		WasteType:    "Plastic",
		Quantity:     "25",
		DateTime:     "2024-03-05T14:30",
		Instructions: " gate 2 ",
	})
	require.NoError(t, err)

	assert.Equal(t, "PICKUP_1709283600000", p.ID)
	assert.Equal(t, domain.WasteTypePlastic, p.WasteType)
	assert.Equal(t, 25, p.Quantity)
	assert.Equal(t, time.Date(2024, 3, 5, 14, 30, 0, 0, time.UTC), p.DateTime)
	assert.Equal(t, "gate 2", p.Instructions)
	assert.Equal(t, domain.PickupStatusScheduled, p.Status)
	assert.Equal(t, fixedNow, p.CreatedAt)

	rfc, err := f.NewPickup(PickupInput{WasteType: "glass", Quantity: "1", DateTime: "2024-03-05T14:30:00+05:30"})
	require.NoError(t, err)
	assert.True(t, rfc.DateTime.Equal(time.Date(2024, 3, 5, 9, 0, 0, 0, time.UTC)))
	assert.Empty(t, rfc.Instructions)
}

func TestNewPickupValidation(t *testing.T) {
	f := newTestFactory()
	valid := PickupInput{WasteType: "metal", Quantity: "3", DateTime: "2024-03-05T14:30"}

	tests := []struct {
		name   string
		mutate func(*PickupInput)
		field  string
	}{
		{"missing waste type", func(in *PickupInput) { in.WasteType = "" }, "wasteType"},
		{"unknown waste type", func(in *PickupInput) { in.WasteType = "organic" }, "wasteType"},
		{"zero quantity", func(in *PickupInput) { in.Quantity = "0" }, "quantity"},
		{"negative quantity", func(in *PickupInput) { in.Quantity = "-4" }, "quantity"},
		{"fractional quantity", func(in *PickupInput) { in.Quantity = "2.5" }, "quantity"},
		{"missing datetime", func(in *PickupInput) { in.DateTime = "" }, "dateTime"},
		{"bad datetime", func(in *PickupInput) { in.DateTime = "tomorrow" }, "dateTime"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := valid
			tt.mutate(&in)
			_, err := f.NewPickup(in)
			assertValidation(t, err, tt.field)
		})
	}
}

func TestNewBill(t *testing.T) {
	f := newTestFactory()

	bill, err := f.NewBill(BillInput{
		Customer: domain.Customer{Name: "Asha", Phone: "98765"},
		Products: []domain.LineItem{{Name: "Notebook", Price: 50}, {Name: "Pen", Price: 20}, {Name: "Paper", Price: 30}},
	})
	require.NoError(t, err)

	assert.Equal(t, "BILL_1709283600000", bill.ID)
	assert.Equal(t, 100.0, bill.Subtotal)
	assert.Equal(t, 18.0, bill.GST)
	assert.Equal(t, 118.0, bill.Total)
	assert.Equal(t, fixedNow, bill.Date)
	assert.Len(t, bill.Products, 3)
}

func TestNewBillValidation(t *testing.T) {
	f := newTestFactory()
	items := []domain.LineItem{{Name: "Pen", Price: 20}}

	_, err := f.NewBill(BillInput{Customer: domain.Customer{Phone: "1"}, Products: items})
	assertValidation(t, err, "customer.name")

	_, err = f.NewBill(BillInput{Customer: domain.Customer{Name: "A", Phone: "  "}, Products: items})
	assertValidation(t, err, "customer.phone")

	_, err = f.NewBill(BillInput{Customer: domain.Customer{Name: "A", Phone: "1"}})
	assertValidation(t, err, "products")

	_, err = f.NewBill(BillInput{Customer: domain.Customer{Name: "A", Phone: "1"}, Products: []domain.LineItem{{Name: "X", Price: -5}}})
	assertValidation(t, err, "products")

	_, err = f.NewBill(BillInput{Customer: domain.Customer{Name: "A", Phone: "1"}, Products: []domain.LineItem{{Price: 5}}})
	assertValidation(t, err, "products[0].name")

	_, err = f.NewBill(BillInput{Customer: domain.Customer{Name: "A", Phone: "1"}, Products: []domain.LineItem{{Name: "X", Price: 1e308}, {Name: "Y", Price: 1e308}}})
	assertValidation(t, err, "products")
}

func TestIDsAreUniqueWithinAMillisecond(t *testing.T) {
	g := NewIDGenerator(func() time.Time { return fixedNow })

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := g.Next(BillPrefix)
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
	assert.True(t, seen["BILL_1709283600099"])
}
