package messaging

import "github.com/segmentio/kafka-go"

// EventTypeHeader mirrors the envelope type so consumers can route without
// decoding the payload.
const EventTypeHeader = "event-type"

// MessageCarrier adapts kafka headers to the otel TextMapCarrier interface.
// The same carrier writes the EventTypeHeader in newMessage and reads it back
// for Consumer's WithEventTypes filter, so trace context and routing share
// one header set.
type MessageCarrier struct {
	msg *kafka.Message
}

func NewMessageCarrier(msg *kafka.Message) *MessageCarrier {
	return &MessageCarrier{msg: msg}
}

func (c *MessageCarrier) Get(key string) string {
	for _, h := range c.msg.Headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}

// Set replaces an existing header or appends a new one.
func (c *MessageCarrier) Set(key, value string) {
	for i, h := range c.msg.Headers {
		if h.Key == key {
			c.msg.Headers[i].Value = []byte(value)
			return
		}
	}
	c.msg.Headers = append(c.msg.Headers, kafka.Header{Key: key, Value: []byte(value)})
}

func (c *MessageCarrier) Keys() []string {
	keys := make([]string, 0, len(c.msg.Headers))
	for _, h := range c.msg.Headers {
		keys = append(keys, h.Key)
	}
	return keys
}
