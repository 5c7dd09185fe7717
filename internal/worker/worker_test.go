package worker

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joao-fontenele/msme-business-hub/internal/domain"
	"github.com/joao-fontenele/msme-business-hub/internal/messaging"
	"github.com/joao-fontenele/msme-business-hub/internal/inventory"
	"github.com/joao-fontenele/msme-business-hub/internal/notify"
)

type fakeNotifier struct {
	mu   sync.Mutex
	sent []notify.Notification
	err  error
}

func (f *fakeNotifier) Send(_ context.Context, n notify.Notification) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, n)
	return nil
}

func (f *fakeNotifier) Sent() []notify.Notification {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]notify.Notification(nil), f.sent...)
}

var owner = Owner{Email: "owner@shop.in", Phone: "9000000000"}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func encodeEvent(t *testing.T, eventType domain.EventType, payload any) []byte {
	t.Helper()
	raw, err := json.Marshal(payload)
	require.NoError(t, err)
	data, err := json.Marshal(domain.Event{ID: "evt", Type: eventType, Timestamp: time.Now().UTC(), Payload: raw})
	require.NoError(t, err)
	return data
}

func TestEventHandler(t *testing.T) {
	ctx := context.Background()

	t.Run("bill receipt goes to the customer by sms", func(t *testing.T) {
		n := &fakeNotifier{}
		h := NewEventHandler(n, owner, discardLogger())

		bill := domain.Bill{ID: "BILL_1", Customer: domain.Customer{Name: "Asha", Phone: "9876543210"}, Products: []domain.LineItem{{Name: "Pen", Price: 20}}, Total: 23.6}
		require.NoError(t, h.Handle(ctx, encodeEvent(t, domain.EventBillGenerated, bill)))

		sent := n.Sent()
		require.Len(t, sent, 1)
		assert.Equal(t, notify.ChannelSMS, sent[0].Channel)
		assert.Equal(t, "9876543210", sent[0].To)
		assert.Contains(t, sent[0].Body, "23.60")
	})

	t.Run("pickup confirmation goes to the owner", func(t *testing.T) {
		n := &fakeNotifier{}
		h := NewEventHandler(n, owner, discardLogger())

		pickup := domain.Pickup{ID: "PICKUP_1", WasteType: domain.WasteTypePaper, Quantity: 8, DateTime: time.Date(2024, 7, 1, 10, 0, 0, 0, time.UTC), Instructions: "back gate"}
		require.NoError(t, h.Handle(ctx, encodeEvent(t, domain.EventPickupScheduled, pickup)))

		sent := n.Sent()
		require.Len(t, sent, 1)
		assert.Equal(t, owner.Email, sent[0].To)
		assert.Contains(t, sent[0].Body, "Paper & Cardboard")
		assert.Contains(t, sent[0].Body, "back gate")
	})

	t.Run("failed payment alerts the owner", func(t *testing.T) {
		n := &fakeNotifier{}
		h := NewEventHandler(n, owner, discardLogger())

		txn := domain.Transaction{ID: "TXN9", Amount: 500, Status: domain.TransactionStatusFailed}
		require.NoError(t, h.Handle(ctx, encodeEvent(t, domain.EventPaymentFailed, txn)))

		sent := n.Sent()
		require.Len(t, sent, 1)
		assert.Contains(t, sent[0].Subject, "TXN9")
	})

	t.Run("other events are ignored", func(t *testing.T) {
		n := &fakeNotifier{}
		h := NewEventHandler(n, owner, discardLogger())

		require.NoError(t, h.Handle(ctx, encodeEvent(t, domain.EventPaymentVerified, domain.Transaction{ID: "T"})))
		require.NoError(t, h.Handle(ctx, encodeEvent(t, domain.EventInventoryChanged, domain.InventoryChangedEvent{Action: "added"})))
		assert.Empty(t, n.Sent())
	})

	t.Run("malformed payload is a permanent error", func(t *testing.T) {
		h := NewEventHandler(&fakeNotifier{}, owner, discardLogger())
		err := h.Handle(ctx, []byte("{"))
		require.Error(t, err)
		assert.True(t, messaging.IsPermanent(err))
	})

	t.Run("delivery failures are returned", func(t *testing.T) {
		n := &fakeNotifier{err: errors.New("notify down")}
		h := NewEventHandler(n, owner, discardLogger())

		err := h.Handle(ctx, encodeEvent(t, domain.EventPaymentFailed, domain.Transaction{ID: "T"}))
		assert.ErrorContains(t, err, "notify down")
		assert.False(t, messaging.IsPermanent(err), "delivery is retried on redelivery")
	})
}

func TestHandledEvents(t *testing.T) {
	assert.ElementsMatch(t, []string{"bill.generated", "pickup.scheduled", "payment.failed"}, HandledEvents())
}

func TestStockSweeper(t *testing.T) {
	hubServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/inventory" {
			t.Errorf("expected /inventory, got %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(inventory.DefaultItems())
	}))
	defer hubServer.Close()

	n := &fakeNotifier{}
	sweeper := NewStockSweeper(NewHubClient(hubServer.URL, hubServer.Client()), n, owner, discardLogger())

	require.NoError(t, sweeper.Run(context.Background()))

	sent := n.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, "2 item(s) need restocking", sent[0].Subject)
	assert.Contains(t, sent[0].Body, "Pens (PEN001): 0 left, Out of Stock")
	assert.Contains(t, sent[0].Body, "Calculator (CAL001): 8 left, Low Stock")
}

func TestStockSweeperHealthyStock(t *testing.T) {
	hubServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode([]domain.InventoryItem{{ID: 1, Name: "A", SKU: "A", Quantity: 50, Status: domain.StockStatusInStock}})
	}))
	defer hubServer.Close()

	n := &fakeNotifier{}
	sweeper := NewStockSweeper(NewHubClient(hubServer.URL, hubServer.Client()), n, owner, discardLogger())

	require.NoError(t, sweeper.Run(context.Background()))
	assert.Empty(t, n.Sent())
}

func TestStockSweeperHubUnavailable(t *testing.T) {
	hubServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer hubServer.Close()

	sweeper := NewStockSweeper(NewHubClient(hubServer.URL, hubServer.Client()), &fakeNotifier{}, owner, discardLogger())
	assert.ErrorContains(t, sweeper.Run(context.Background()), "500")
}

func TestStartSweepsRunsImmediatelyAndStops(t *testing.T) {
	hubServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(inventory.DefaultItems())
	}))
	defer hubServer.Close()

	n := &fakeNotifier{}
	sweeper := NewStockSweeper(NewHubClient(hubServer.URL, hubServer.Client()), n, owner, discardLogger())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- StartSweeps(ctx, time.Hour, sweeper, discardLogger()) }()

	require.Eventually(t, func() bool { return len(n.Sent()) == 1 }, 5*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("scheduler did not stop")
	}
}
