package service

import (
	"context"
	"time"
)

// Audit event types published to the event bus. Account linking is the one
// the security review cares about: a Google identity silently merging into
// a password account must leave a trace.
const (
	EventUserRegistered = "user.registered"
	EventAccountLinked  = "account.linked"
	EventRecipeCreated  = "recipe.created"
)

// AuthEvent is an audit record of an identity-changing operation.
type AuthEvent struct {
	Type       string    `json:"type"`
	UserID     string    `json:"user_id"`
	Email      string    `json:"email"`
	Provider   string    `json:"provider,omitempty"` // "password" or "google"
	OccurredAt time.Time `json:"occurred_at"`
	RequestID  string    `json:"request_id,omitempty"` // for distributed tracing
}

// EventPublisher defines the interface for publishing audit events to a
// message queue. Publishing is best-effort: a failed publish is logged but
// never fails the user-facing operation.
type EventPublisher interface {
	// PublishAuthEvent publishes an audit event for async processing.
	PublishAuthEvent(ctx context.Context, event *AuthEvent) error

	// Close releases any resources held by the publisher.
	Close() error
}
