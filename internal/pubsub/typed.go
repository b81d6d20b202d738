package pubsub

import (
	"context"
	"encoding/json"
	"fmt"
)

// Event[T] pairs a topic name with a payload type so publish and subscribe
// sites agree on the wire shape at compile time. Payloads travel as JSON.
type Event[T any] struct {
	topicName string
}

// NewEvent creates a typed event for the given topic name. Events are usually
// defined once at package level.
func NewEvent[T any](name string) Event[T] {
	return Event[T]{topicName: name}
}

// Topic returns the topic name.
func (e Event[T]) Topic() string {
	return e.topicName
}

// Publish sends a typed event. The compiler ensures payload matches T.
func Publish[T any](ctx context.Context, p Publisher, event Event[T], payload T) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal %s payload: %w", event.Topic(), err)
	}

	return p.Publish(ctx, Message{
		Topic:   event.Topic(),
		Payload: data,
	})
}

// Subscribe registers a typed handler for the event's topic. Messages whose
// payload does not decode into T are rejected back to the bus.
func Subscribe[T any](ctx context.Context, s Subscriber, event Event[T], handler func(ctx context.Context, payload T) error) error {
	return s.Subscribe(ctx, event.Topic(), func(ctx context.Context, msg Message) error {
		var payload T
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			return fmt.Errorf("unmarshal %s payload: %w", event.Topic(), err)
		}
		return handler(ctx, payload)
	})
}
