package pubsub

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// TracingPublisher decorates a Publisher with an OpenTelemetry span per
// publish, giving visibility into message flows on the bus.
type TracingPublisher struct {
	inner  Publisher
	tracer trace.Tracer
}

// NewTracingPublisher wraps a publisher with tracing. With no SDK installed
// the global tracer provider is a no-op, so the wrapper is always safe.
func NewTracingPublisher(inner Publisher) *TracingPublisher {
	return &TracingPublisher{
		inner:  inner,
		tracer: otel.Tracer("pubsub"),
	}
}

// Publish implements the Publisher interface.
func (p *TracingPublisher) Publish(ctx context.Context, msg Message) error {
	spanCtx, span := p.tracer.Start(ctx, "pubsub.publish."+msg.Topic,
		trace.WithAttributes(
			attribute.String("messaging.system", "watermill"),
			attribute.String("messaging.operation", "publish"),
			attribute.String("messaging.destination", msg.Topic),
			attribute.Int("messaging.message_payload_size_bytes", len(msg.Payload)),
		),
	)
	defer span.End()

	err := p.inner.Publish(spanCtx, msg)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}

// Close closes the underlying publisher.
func (p *TracingPublisher) Close() error {
	return p.inner.Close()
}
