package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/joao-fontenele/msme-business-hub/internal/domain"
	"github.com/joao-fontenele/msme-business-hub/internal/messaging"
	"github.com/joao-fontenele/msme-business-hub/internal/notify"
)

// Notifier delivers a single notification.
type Notifier interface {
	Send(ctx context.Context, n notify.Notification) error
}

// Owner is who receives operational alerts.
type Owner struct {
	Email string
	Phone string
}

// EventHandler turns hub events into customer and owner notifications.
type EventHandler struct {
	notifier Notifier
	owner    Owner
	logger   *slog.Logger
}

func NewEventHandler(notifier Notifier, owner Owner, logger *slog.Logger) *EventHandler {
	return &EventHandler{
		notifier: notifier,
		owner:    owner,
		logger:   logger,
	}
}

// HandledEvents lists the event types Handle acts on.
func HandledEvents() []string {
	return []string{
		string(domain.EventBillGenerated),
		string(domain.EventPickupScheduled),
		string(domain.EventPaymentFailed),
	}
}

func (h *EventHandler) Handle(ctx context.Context, payload []byte) error {
	var event domain.Event
	if err := json.Unmarshal(payload, &event); err != nil {
		return messaging.Permanent(fmt.Errorf("unmarshal event: %w", err))
	}

	switch event.Type {
	case domain.EventBillGenerated:
		return h.handleBill(ctx, event)
	case domain.EventPickupScheduled:
		return h.handlePickup(ctx, event)
	case domain.EventPaymentFailed:
		return h.handlePaymentFailed(ctx, event)
	default:
		h.logger.Debug("ignoring event", "event_id", event.ID, "event_type", event.Type)
		return nil
	}
}

func (h *EventHandler) handleBill(ctx context.Context, event domain.Event) error {
	var bill domain.Bill
	if err := json.Unmarshal(event.Payload, &bill); err != nil {
		return messaging.Permanent(fmt.Errorf("unmarshal bill: %w", err))
	}

	h.logger.Info("sending bill receipt", "bill_id", bill.ID, "customer", bill.Customer.Name)

	err := h.notifier.Send(ctx, notify.Notification{
		Channel: notify.ChannelSMS,
		To:      bill.Customer.Phone,
		Body: fmt.Sprintf("Dear %s, thank you for your purchase. Bill %s: %d item(s), total Rs. %.2f incl. GST.",
			bill.Customer.Name, bill.ID, len(bill.Products), bill.Total),
	})
	if err != nil {
		h.logger.Error("failed to send bill receipt", "error", err, "bill_id", bill.ID)
		return fmt.Errorf("send bill receipt: %w", err)
	}
	return nil
}

func (h *EventHandler) handlePickup(ctx context.Context, event domain.Event) error {
	var pickup domain.Pickup
	if err := json.Unmarshal(event.Payload, &pickup); err != nil {
		return messaging.Permanent(fmt.Errorf("unmarshal pickup: %w", err))
	}

	h.logger.Info("confirming pickup", "pickup_id", pickup.ID, "waste_type", pickup.WasteType)

	body := fmt.Sprintf("Pickup %s of %d kg %s is scheduled for %s.",
		pickup.ID, pickup.Quantity, pickup.WasteType.Label(), pickup.DateTime.Format("02 Jan 2006 15:04"))
	if pickup.Instructions != "" {
		body += " Instructions: " + pickup.Instructions
	}

	err := h.notifier.Send(ctx, notify.Notification{
		Channel: notify.ChannelEmail,
		To:      h.owner.Email,
		Subject: "Waste pickup scheduled: " + pickup.ID,
		Body:    body,
	})
	if err != nil {
		h.logger.Error("failed to send pickup confirmation", "error", err, "pickup_id", pickup.ID)
		return fmt.Errorf("send pickup confirmation: %w", err)
	}
	return nil
}

func (h *EventHandler) handlePaymentFailed(ctx context.Context, event domain.Event) error {
	var txn domain.Transaction
	if err := json.Unmarshal(event.Payload, &txn); err != nil {
		return messaging.Permanent(fmt.Errorf("unmarshal transaction: %w", err))
	}

	h.logger.Warn("payment verification failed", "transaction_id", txn.ID, "amount", txn.Amount)

	err := h.notifier.Send(ctx, notify.Notification{
		Channel: notify.ChannelEmail,
		To:      h.owner.Email,
		Subject: "Payment verification failed: " + txn.ID,
		Body:    fmt.Sprintf("Transaction %s for Rs. %.2f could not be verified at %s.", txn.ID, txn.Amount, txn.Timestamp.Format("02 Jan 2006 15:04")),
	})
	if err != nil {
		h.logger.Error("failed to send payment alert", "error", err, "transaction_id", txn.ID)
		return fmt.Errorf("send payment alert: %w", err)
	}
	return nil
}
