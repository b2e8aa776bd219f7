// Package pubsub fans typed events out to Bubble Tea listeners.
package pubsub

import (
	"context"
	"time"
)

// EventType labels what happened to the payload.
type EventType string

const (
	// AcceptedEvent is published when a submission added a recipe.
	AcceptedEvent EventType = "accepted"
	// RejectedEvent is published when a submission was turned away.
	RejectedEvent EventType = "rejected"
	// ChangedEvent is published by watchers when a watched file changed.
	ChangedEvent EventType = "changed"
	// LoggedEvent carries a formatted log line.
	LoggedEvent EventType = "logged"
)

// Event wraps a payload with its type and publish time.
type Event[T any] struct {
	Type      EventType
	Payload   T
	Timestamp time.Time
}

// Subscriber hands out event channels scoped to a context.
type Subscriber[T any] interface {
	Subscribe(ctx context.Context) <-chan Event[T]
}

// Publisher fans a payload out to all current subscribers.
type Publisher[T any] interface {
	Publish(eventType EventType, payload T)
}
