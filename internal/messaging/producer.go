package messaging

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/joao-fontenele/msme-business-hub/internal/domain"
)

var producerTracer = otel.Tracer("messaging/producer")

type Producer struct {
	writer *kafka.Writer
	topic  string
}

func NewProducer(brokers []string, topic string) *Producer {
	return &Producer{
		topic: topic,
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			Topic:                  topic,
			Balancer:               &kafka.Hash{},
			AllowAutoTopicCreation: true,
			BatchTimeout:           100 * time.Millisecond,
		},
	}
}

// Publish writes event as JSON keyed by key. Hub events also carry their
// type in the event-type header.
func (p *Producer) Publish(ctx context.Context, key string, event any) error {
	msg, err := newMessage(key, event)
	if err != nil {
		return err
	}

	ctx, span := producerTracer.Start(ctx, "send "+p.topic,
		trace.WithSpanKind(trace.SpanKindProducer),
		trace.WithAttributes(
			semconv.MessagingSystemKafka,
			semconv.MessagingOperationName("send"),
			semconv.MessagingOperationTypePublish,
			semconv.MessagingDestinationName(p.topic),
			semconv.MessagingKafkaMessageKey(key),
		),
	)
	defer span.End()

	carrier := NewMessageCarrier(&msg)
	if eventType := carrier.Get(EventTypeHeader); eventType != "" {
		span.SetAttributes(attribute.String("msme.event_type", eventType))
	}
	otel.GetTextMapPropagator().Inject(ctx, carrier)

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	return nil
}

func newMessage(key string, event any) (kafka.Message, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return kafka.Message{}, err
	}

	msg := kafka.Message{
		Key:   []byte(key),
		Value: data,
	}
	if e, ok := event.(domain.Event); ok {
		NewMessageCarrier(&msg).Set(EventTypeHeader, string(e.Type))
	}
	return msg, nil
}

func (p *Producer) Close() error {
	return p.writer.Close()
}
