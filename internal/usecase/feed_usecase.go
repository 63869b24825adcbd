package usecase

import (
	"context"

	"focuspit/internal/domain/entity"
)

// FeedUpdate is one delivery on a live notification feed: the full current
// list plus the derived unread count.
type FeedUpdate struct {
	Notifications []*entity.Notification `json:"notifications"`
	UnreadCount   int                    `json:"unread_count"`
}

// FeedUsecase defines the interface for the live notification feed. The feed
// wraps the store's watch channel and owns the OS-level side effects: alerts
// for newly arrived notifications and badge state derived from the unread
// count. The first snapshot of a subscription is catch-up, not news, and
// never fires alerts.
type FeedUsecase interface {
	// Subscribe opens a live feed of the caller's notifications. The
	// channel closes when ctx is cancelled.
	Subscribe(ctx context.Context, uid string) (<-chan FeedUpdate, error)
}
