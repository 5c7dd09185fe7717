package messaging

import (
	"context"
	"errors"
	"log/slog"
	"strconv"

	"github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
)

var consumerTracer = otel.Tracer("messaging/consumer")

// Handler processes one message payload.
type Handler func(ctx context.Context, payload []byte) error

// permanentError marks a message that will never succeed on redelivery.
type permanentError struct {
	err error
}

func (e *permanentError) Error() string { return e.err.Error() }
func (e *permanentError) Unwrap() error { return e.err }

// Permanent wraps err so the consumer commits the message instead of
// stopping. Use it for payloads that cannot be decoded.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return &permanentError{err: err}
}

// IsPermanent reports whether err was wrapped with Permanent.
func IsPermanent(err error) bool {
	var pe *permanentError
	return errors.As(err, &pe)
}

type consumerConfig struct {
	reader     kafka.ReaderConfig
	eventTypes map[string]bool
	logger     *slog.Logger
}

type ConsumerOption func(*consumerConfig)

func WithStartOffset(offset int64) ConsumerOption {
	return func(cfg *consumerConfig) {
		cfg.reader.StartOffset = offset
	}
}

// WithEventTypes limits the handler to messages whose event-type header is
// one of types. Messages without the header are always handled.
func WithEventTypes(types ...string) ConsumerOption {
	return func(cfg *consumerConfig) {
		cfg.eventTypes = make(map[string]bool, len(types))
		for _, t := range types {
			cfg.eventTypes[t] = true
		}
	}
}

func WithLogger(logger *slog.Logger) ConsumerOption {
	return func(cfg *consumerConfig) {
		cfg.logger = logger
	}
}

// Consumer reads a topic as part of a consumer group, committing each
// message only after its handler succeeds or fails permanently.
type Consumer struct {
	reader     *kafka.Reader
	topic      string
	groupID    string
	eventTypes map[string]bool
	logger     *slog.Logger
}

func NewConsumer(brokers []string, topic, groupID string, opts ...ConsumerOption) *Consumer {
	cfg := consumerConfig{
		reader: kafka.ReaderConfig{
			Brokers: brokers,
			Topic:   topic,
			GroupID: groupID,
		},
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(&cfg)
	}

	return &Consumer{
		reader:     kafka.NewReader(cfg.reader),
		topic:      topic,
		groupID:    groupID,
		eventTypes: cfg.eventTypes,
		logger:     cfg.logger,
	}
}

// Consume runs until ctx is done or a handler fails with a retryable error.
func (c *Consumer) Consume(ctx context.Context, handler Handler) error {
	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			return err
		}

		if err := c.processMessage(ctx, msg, handler); err != nil {
			if !IsPermanent(err) {
				return err
			}
			c.logger.Warn("dropping message",
				"topic", c.topic, "partition", msg.Partition, "offset", msg.Offset, "error", err)
		}

		if err := c.reader.CommitMessages(ctx, msg); err != nil {
			return err
		}
	}
}

// wants reports whether eventType passes the WithEventTypes filter.
func (c *Consumer) wants(eventType string) bool {
	return c.eventTypes == nil || eventType == "" || c.eventTypes[eventType]
}

func (c *Consumer) processMessage(ctx context.Context, msg kafka.Message, handler Handler) error {
	carrier := NewMessageCarrier(&msg)
	eventType := carrier.Get(EventTypeHeader)
	if !c.wants(eventType) {
		return nil
	}

	parentCtx := otel.GetTextMapPropagator().Extract(ctx, carrier)

	spanCtx, span := consumerTracer.Start(parentCtx, "process "+c.topic,
		trace.WithSpanKind(trace.SpanKindConsumer),
		trace.WithAttributes(
			semconv.MessagingSystemKafka,
			semconv.MessagingOperationName("process"),
			semconv.MessagingOperationTypeDeliver,
			semconv.MessagingDestinationName(c.topic),
			semconv.MessagingKafkaConsumerGroup(c.groupID),
			semconv.MessagingKafkaMessageOffset(int(msg.Offset)),
			semconv.MessagingDestinationPartitionID(strconv.Itoa(msg.Partition)),
			semconv.MessagingKafkaMessageKey(string(msg.Key)),
			attribute.String("msme.event_type", eventType),
		),
	)
	defer span.End()

	if err := handler(spanCtx, msg.Value); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		span.SetAttributes(attribute.Bool("msme.message_dropped", IsPermanent(err)))
		return err
	}

	return nil
}

func (c *Consumer) Close() error {
	return c.reader.Close()
}
