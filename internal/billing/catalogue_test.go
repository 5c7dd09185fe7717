package billing

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joao-fontenele/msme-business-hub/internal/domain"
)

func TestSearchProducts(t *testing.T) {
	assert.Len(t, SearchProducts(""), 6)

	got := SearchProducts("desk")
	require.Len(t, got, 1)
	assert.Equal(t, "Desk Organizer", got[0].Name)

	assert.Empty(t, SearchProducts("laptop"))
}

func TestLookupProducts(t *testing.T) {
	items, err := LookupProducts([]int{5, 1})
	require.NoError(t, err)
	assert.Equal(t, []domain.LineItem{
		{Name: "Calculator", Price: 500},
		{Name: "Notebook", Price: 50},
	}, items)

	_, err = LookupProducts([]int{1, 99})
	assert.ErrorIs(t, err, ErrUnknownProduct)
}

func TestRenderInvoice(t *testing.T) {
	bill := domain.Bill{
		ID:       "BILL_1700000000000",
		Customer: domain.Customer{Name: "Rajesh Kumar", Phone: "9876543210", Address: "Pune"},
		Products: []domain.LineItem{{Name: "Notebook", Price: 50}, {Name: "Pen", Price: 20}},
		Subtotal: 70,
		GST:      12.6,
		Total:    82.6,
		Date:     time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC),
	}

	var buf bytes.Buffer
	err := RenderInvoice(&buf, bill, Business{Name: "Ayman Traders", Phone: "020-1234"})
	require.NoError(t, err)

	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")), "output is not a pdf")
	assert.Equal(t, "BILL_1700000000000|82.60", PaymentPayload(bill))
}
