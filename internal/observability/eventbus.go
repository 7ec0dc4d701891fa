package observability

import (
	"context"

	"go.uber.org/zap"
)

// EventBus publishes pipeline events to the structured log. It satisfies
// domain.EventPublisher without introducing an import cycle.
type EventBus struct{}

// NewEventBus creates a new event bus.
func NewEventBus() *EventBus {
	return &EventBus{}
}

// Publish emits an event with the given type and data.
func (e *EventBus) Publish(ctx context.Context, eventType string, data map[string]interface{}) {
	fields := make([]zap.Field, 0, len(data)+1)
	fields = append(fields, zap.String("event", eventType))
	for k, v := range data {
		fields = append(fields, zap.Any(k, v))
	}
	FromContext(ctx).Info("pipeline event", fields...)
}
