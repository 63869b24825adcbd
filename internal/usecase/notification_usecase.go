package usecase

import (
	"context"

	"focuspit/internal/domain/entity"
)

// SendNotificationInput carries the fields of one outgoing notification.
type SendNotificationInput struct {
	ToUID string                  `json:"to_uid" validate:"required"`
	Type  entity.NotificationType `json:"type" validate:"required"`
	Data  entity.NotificationData `json:"data"`
}

// NotificationUsecase defines the interface for notification use cases
type NotificationUsecase interface {
	// Send validates and persists one notification. Unknown types and
	// missing payload fields fail with a validation error; nothing is
	// dropped silently.
	Send(ctx context.Context, input SendNotificationInput) (*entity.Notification, error)

	// List retrieves the caller's notifications, newest-first. A
	// non-positive limit means no limit.
	List(ctx context.Context, uid string, limit int) ([]*entity.Notification, error)

	// UnreadCount returns the caller's number of unread notifications.
	UnreadCount(ctx context.Context, uid string) (int, error)

	// MarkAsRead marks one of the caller's notifications read. Marking an
	// already-read notification is a no-op.
	MarkAsRead(ctx context.Context, uid, notificationID string) error

	// MarkAllAsRead marks every unread notification of the caller read.
	// Per-document failures are collected; the rest still get marked.
	MarkAllAsRead(ctx context.Context, uid string) error

	// AcceptInvite accepts a pending group invite: the notification moves
	// to accepted and the membership to active, atomically.
	AcceptInvite(ctx context.Context, uid, notificationID string) error

	// RejectInvite rejects a pending group invite. The pending membership
	// record stays; only the notification is resolved.
	RejectInvite(ctx context.Context, uid, notificationID string) error

	// Broadcast sends a news notification to every user and publishes a
	// broadcast event. Caller must be an application admin.
	Broadcast(ctx context.Context, actorUID, text string) error
}
