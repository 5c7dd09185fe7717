package domain

import (
	"encoding/json"
	"time"
)

type EventType string

const (
	EventBillGenerated    EventType = "bill.generated"
	EventPickupScheduled  EventType = "pickup.scheduled"
	EventPaymentVerified  EventType = "payment.verified"
	EventPaymentFailed    EventType = "payment.failed"
	EventInventoryChanged EventType = "inventory.changed"
)

// Event is the envelope published for every record the hub creates.
type Event struct {
	ID        string          `json:"id"`
	Type      EventType       `json:"type"`
	Timestamp time.Time       `json:"timestamp"`
	Payload   json.RawMessage `json:"payload"`
}

type InventoryChangedEvent struct {
	Action string        `json:"action"`
	Item   InventoryItem `json:"item"`
}
