// Package eventbus publishes domain events to a message broker.
package eventbus

import "context"

// Publisher defines the interface for publishing events to a message broker.
type Publisher interface {
	// Publish sends a message to the event bus.
	Publish(ctx context.Context, routingKey string, payload []byte) error

	// Close closes the publisher connection.
	Close() error
}

// NoopPublisher discards every message. It is used when no broker is
// configured so callers never have to nil-check the publisher.
type NoopPublisher struct{}

func (NoopPublisher) Publish(ctx context.Context, routingKey string, payload []byte) error {
	return nil
}

func (NoopPublisher) Close() error { return nil }
