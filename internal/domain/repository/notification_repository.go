package repository

import (
	"context"
	"errors"

	"focuspit/internal/domain/entity"
)

// Domain-specific errors for notification persistence.
var (
	// ErrNotificationNotFound is returned when a notification is not found.
	ErrNotificationNotFound = errors.New("notification not found")
	// ErrInviteAlreadyResolved is returned when an invite notification has
	// already left the pending state. The pending -> accepted/rejected
	// transition happens exactly once.
	ErrInviteAlreadyResolved = errors.New("invite already accepted or rejected")
)

// NotificationRepository defines the interface for the flat notification
// collection. Documents are append/update-only; nothing in normal flow
// deletes them. The read flag is monotonic: implementations expose MarkRead
// but no way to clear it.
type NotificationRepository interface {
	// Create persists a new notification. CreatedAt is assigned by the
	// store on write and copied back into the entity.
	Create(ctx context.Context, n *entity.Notification) error

	// FindByID retrieves a notification by its unique id.
	FindByID(ctx context.Context, id string) (*entity.Notification, error)

	// FindByRecipient retrieves notifications addressed to a user,
	// newest-first. A non-positive limit means no limit.
	FindByRecipient(ctx context.Context, toUID string, limit int) ([]*entity.Notification, error)

	// MarkRead sets read=true on a notification. Marking an already-read
	// notification is a no-op, not an error.
	MarkRead(ctx context.Context, id string) error

	// ResolveInvite marks an invite notification read and moves it from
	// pending to the given terminal status. Returns ErrInviteAlreadyResolved
	// if the notification is no longer pending.
	ResolveInvite(ctx context.Context, id string, status entity.NotificationStatus) error

	// WatchByRecipient subscribes to the user's notifications, newest-first.
	// The channel closes when ctx is cancelled.
	WatchByRecipient(ctx context.Context, toUID string) (<-chan Snapshot[*entity.Notification], error)
}
