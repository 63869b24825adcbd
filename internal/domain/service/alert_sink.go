package service

import (
	"context"
)

// AlertPermission is the tri-state permission for OS-level alerts. It starts
// undetermined and is resolved lazily on first need, never at startup.
type AlertPermission int

const (
	// AlertPermissionUndetermined means the sink has not been asked yet.
	AlertPermissionUndetermined AlertPermission = iota
	// AlertPermissionGranted means alerts may be delivered.
	AlertPermissionGranted
	// AlertPermissionDenied means alerts must be dropped silently.
	AlertPermissionDenied
)

// AlertSink is the one-way channel from the core to whatever renders OS-level
// alerts and badges: the desktop shell when present, push delivery otherwise.
// Absent both, a no-op sink is wired so callers never branch on nil.
type AlertSink interface {
	// RequestPermission resolves the tri-state alert permission. Called
	// lazily the first time an alert is about to fire; the result is
	// cached by the caller.
	RequestPermission(ctx context.Context) (AlertPermission, error)

	// SendNotification delivers one OS-level alert to the recipient.
	SendNotification(ctx context.Context, toUID, title, body string, data map[string]string) error

	// UpdateOverlayBadge toggles the taskbar overlay badge.
	UpdateOverlayBadge(ctx context.Context, hasUnread bool) error

	// UpdateAppIcon sets the unread count rendered on the app icon.
	UpdateAppIcon(ctx context.Context, count int) error
}
