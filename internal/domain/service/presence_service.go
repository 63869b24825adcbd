package service

import (
	"context"
	"time"
)

// PresenceService tracks per-user online status on a low-latency key-value
// channel, separate from the document store. Clients heartbeat SetOnline with
// a TTL; a user whose key expires is offline.
type PresenceService interface {
	// SetOnline marks the user online for the duration of ttl.
	SetOnline(ctx context.Context, uid string, ttl time.Duration) error

	// SetOffline removes the user's online marker immediately.
	SetOffline(ctx context.Context, uid string) error

	// IsOnline reports whether the user currently has an online marker.
	IsOnline(ctx context.Context, uid string) (bool, error)

	// OnlineStatus reports online status for a batch of users.
	OnlineStatus(ctx context.Context, uids []string) (map[string]bool, error)

	// Close releases the underlying connection.
	Close() error
}
