package service

import (
	"context"
)

// BroadcastEvent represents a news broadcast fanned out to many recipients.
// The per-recipient notification documents are written by the notification
// service; the event stream exists for downstream consumers (digests,
// analytics, the desktop shell's "what's new" panel).
type BroadcastEvent struct {
	RequestID    string   `json:"request_id,omitempty"` // For distributed tracing
	BroadcastID  string   `json:"broadcast_id"`
	FromUID      string   `json:"from_uid"`
	Text         string   `json:"text"`
	RecipientIDs []string `json:"recipient_ids"`
}

// EventPublisher defines the interface for publishing events to a message queue
type EventPublisher interface {
	// PublishBroadcastEvent publishes a broadcast event for async processing
	PublishBroadcastEvent(ctx context.Context, event *BroadcastEvent) error

	// Close releases any resources held by the publisher
	Close() error
}
