package hub

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "github.com/joao-fontenele/msme-business-hub/internal/hub"

type Metrics struct {
	bills           metric.Int64Counter
	revenue         metric.Float64Counter
	payments        metric.Int64Counter
	pickups         metric.Int64Counter
	pickupWeight    metric.Int64Counter
	chatMessages    metric.Int64Counter
	inventoryOps    metric.Int64Counter
	persistFailures metric.Int64Counter
}

// NewMetrics registers the hub instruments on meter, or on the global meter
// provider when meter is nil.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	if meter == nil {
		meter = otel.Meter(meterName)
	}

	var (
		m   Metrics
		err error
	)
	if m.bills, err = meter.Int64Counter("msme.bills.generated",
		metric.WithDescription("Bills generated")); err != nil {
		return nil, err
	}
	if m.revenue, err = meter.Float64Counter("msme.bills.revenue",
		metric.WithDescription("Sum of bill totals including GST"),
		metric.WithUnit("INR")); err != nil {
		return nil, err
	}
	if m.payments, err = meter.Int64Counter("msme.payments.verifications",
		metric.WithDescription("Payment verifications by outcome")); err != nil {
		return nil, err
	}
	if m.pickups, err = meter.Int64Counter("msme.pickups.scheduled",
		metric.WithDescription("Waste pickups scheduled")); err != nil {
		return nil, err
	}
	if m.pickupWeight, err = meter.Int64Counter("msme.pickups.weight",
		metric.WithDescription("Waste scheduled for pickup"),
		metric.WithUnit("kg")); err != nil {
		return nil, err
	}
	if m.chatMessages, err = meter.Int64Counter("msme.chat.messages",
		metric.WithDescription("Chat messages answered by topic")); err != nil {
		return nil, err
	}
	if m.inventoryOps, err = meter.Int64Counter("msme.inventory.changes",
		metric.WithDescription("Inventory mutations by action")); err != nil {
		return nil, err
	}
	if m.persistFailures, err = meter.Int64Counter("msme.store.persist_failures",
		metric.WithDescription("Failed state writes")); err != nil {
		return nil, err
	}

	return &m, nil
}

func (m *Metrics) billGenerated(ctx context.Context, total float64) {
	m.bills.Add(ctx, 1)
	m.revenue.Add(ctx, total)
}

func (m *Metrics) paymentVerified(ctx context.Context, status string) {
	m.payments.Add(ctx, 1, metric.WithAttributes(attribute.String("status", status)))
}

func (m *Metrics) pickupScheduled(ctx context.Context, wasteType string, kg int) {
	attrs := metric.WithAttributes(attribute.String("waste_type", wasteType))
	m.pickups.Add(ctx, 1, attrs)
	m.pickupWeight.Add(ctx, int64(kg), attrs)
}

func (m *Metrics) chatAnswered(ctx context.Context, topic string) {
	if topic == "" {
		topic = "other"
	}
	m.chatMessages.Add(ctx, 1, metric.WithAttributes(attribute.String("topic", topic)))
}

func (m *Metrics) inventoryChanged(ctx context.Context, action string) {
	m.inventoryOps.Add(ctx, 1, metric.WithAttributes(attribute.String("action", action)))
}

func (m *Metrics) persistFailed(ctx context.Context) {
	m.persistFailures.Add(ctx, 1)
}
