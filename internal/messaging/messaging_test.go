package messaging

import (
	"context"
	"errors"
	"fmt"
	"encoding/json"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"

	"github.com/joao-fontenele/msme-business-hub/internal/domain"
)

func TestMessageCarrier(t *testing.T) {
	msg := kafka.Message{}
	c := NewMessageCarrier(&msg)

	c.Set("a", "1")
	c.Set("b", "2")
	c.Set("a", "3")

	assert.Equal(t, "3", c.Get("a"))
	assert.Equal(t, "", c.Get("missing"))
	assert.Equal(t, []string{"a", "b"}, c.Keys())
	assert.Len(t, msg.Headers, 2)
}

func TestTraceContextRoundTrip(t *testing.T) {
	tp := sdktrace.NewTracerProvider()
	defer func() { _ = tp.Shutdown(context.Background()) }()

	ctx, span := tp.Tracer("test").Start(context.Background(), "publish")
	defer span.End()

	msg := kafka.Message{}
	prop := propagation.TraceContext{}
	prop.Inject(ctx, NewMessageCarrier(&msg))

	extracted := prop.Extract(context.Background(), NewMessageCarrier(&msg))
	got := trace.SpanContextFromContext(extracted)

	assert.Equal(t, span.SpanContext().TraceID(), got.TraceID())
	assert.True(t, got.IsRemote())
}

func TestNewMessageSetsEventTypeHeader(t *testing.T) {
	event := domain.Event{
		ID:        "evt-1",
		Type:      domain.EventBillGenerated,
		Timestamp: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Payload:   json.RawMessage(`{"id":"BILL_1"}`),
	}

	msg, err := newMessage("BILL_1", event)
	require.NoError(t, err)

	assert.Equal(t, []byte("BILL_1"), msg.Key)
	assert.Equal(t, "bill.generated", NewMessageCarrier(&msg).Get(EventTypeHeader))

	var decoded domain.Event
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, event.Type, decoded.Type)
	assert.JSONEq(t, `{"id":"BILL_1"}`, string(decoded.Payload))

	plain, err := newMessage("k", map[string]string{"x": "y"})
	require.NoError(t, err)
	assert.Empty(t, plain.Headers)
}

func TestPermanent(t *testing.T) {
	base := errors.New("bad json")

	assert.Nil(t, Permanent(nil))
	assert.False(t, IsPermanent(base))

	err := fmt.Errorf("handle: %w", Permanent(base))
	assert.True(t, IsPermanent(err))
	assert.ErrorIs(t, err, base)
	assert.Equal(t, "handle: bad json", err.Error())
}

func TestConsumerEventTypeFilter(t *testing.T) {
	c := NewConsumer([]string{"localhost:9092"}, "msme.events", "test", WithEventTypes("bill.generated"))
	defer func() { _ = c.Close() }()

	assert.True(t, c.wants("bill.generated"))
	assert.False(t, c.wants("inventory.changed"))
	assert.True(t, c.wants(""), "messages without the header are handled")

	all := NewConsumer([]string{"localhost:9092"}, "msme.events", "test")
	defer func() { _ = all.Close() }()
	assert.True(t, all.wants("inventory.changed"))
}

func TestProcessMessageSkipsFilteredTypes(t *testing.T) {
	c := NewConsumer([]string{"localhost:9092"}, "msme.events", "test", WithEventTypes("bill.generated"))
	defer func() { _ = c.Close() }()

	called := 0
	handler := func(context.Context, []byte) error {
		called++
		return nil
	}

	skipped := kafka.Message{Headers: []kafka.Header{{Key: EventTypeHeader, Value: []byte("inventory.changed")}}}
	require.NoError(t, c.processMessage(context.Background(), skipped, handler))
	assert.Zero(t, called)

	wanted := kafka.Message{Headers: []kafka.Header{{Key: EventTypeHeader, Value: []byte("bill.generated")}}}
	require.NoError(t, c.processMessage(context.Background(), wanted, handler))
	assert.Equal(t, 1, called)
}
