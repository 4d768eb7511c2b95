package eventbus

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/taskflow/taskflow/internal/shared/domain"
)

// Envelope is the wire format for published domain events.
type Envelope struct {
	EventID       uuid.UUID       `json:"eventId"`
	AggregateID   uuid.UUID       `json:"aggregateId"`
	AggregateType string          `json:"aggregateType"`
	OccurredAt    time.Time       `json:"occurredAt"`
	Payload       json.RawMessage `json:"payload"`
}

// PublishDomainEvents publishes each event on its routing key.
// Publishing is best-effort: failures are logged and never fail the
// operation that raised the events.
func PublishDomainEvents(ctx context.Context, pub Publisher, logger *slog.Logger, events []domain.DomainEvent) {
	if logger == nil {
		logger = slog.Default()
	}

	for _, event := range events {
		payload, err := json.Marshal(event)
		if err != nil {
			logger.Error("failed to marshal event", "routing_key", event.RoutingKey(), "error", err)
			continue
		}

		body, err := json.Marshal(Envelope{
			EventID:       event.EventID(),
			AggregateID:   event.AggregateID(),
			AggregateType: event.AggregateType(),
			OccurredAt:    event.OccurredAt(),
			Payload:       payload,
		})
		if err != nil {
			logger.Error("failed to marshal envelope", "routing_key", event.RoutingKey(), "error", err)
			continue
		}

		if err := pub.Publish(ctx, event.RoutingKey(), body); err != nil {
			logger.Error("failed to publish event", "routing_key", event.RoutingKey(), "error", err)
		}
	}
}
