package entity

import (
	"fmt"
	"time"
)

// NotificationType is the closed enum of notification kinds. Rendering is an
// exhaustive switch in Summary; adding a kind without extending the switch is
// caught by the default branch in tests.
type NotificationType string

const (
	NotificationTypeGroupInvite  NotificationType = "group_invite"
	NotificationTypeAdminGranted NotificationType = "admin_granted"
	NotificationTypeAdminRevoked NotificationType = "admin_revoked"
	NotificationTypeGroupRemoved NotificationType = "group_removed"
	NotificationTypeComment      NotificationType = "comment"
	NotificationTypeReminder     NotificationType = "reminder"
	NotificationTypeTodoMention  NotificationType = "todo_mention"
	NotificationTypeNews         NotificationType = "news"
)

// Valid reports whether t is one of the known notification kinds.
func (t NotificationType) Valid() bool {
	switch t {
	case NotificationTypeGroupInvite, NotificationTypeAdminGranted,
		NotificationTypeAdminRevoked, NotificationTypeGroupRemoved,
		NotificationTypeComment, NotificationTypeReminder,
		NotificationTypeTodoMention, NotificationTypeNews:
		return true
	}

	return false
}

// NotificationStatus tracks the invite lifecycle. It is meaningful only for
// group_invite notifications; every other kind stays pending forever.
type NotificationStatus string

const (
	NotificationStatusPending  NotificationStatus = "pending"
	NotificationStatusAccepted NotificationStatus = "accepted"
	NotificationStatusRejected NotificationStatus = "rejected"
)

// NotificationData carries the typed payload of a notification. Which fields
// are set depends on the notification type.
type NotificationData struct {
	FromUID   string `json:"from_uid" firestore:"fromUid"`               // UID of the user whose action produced the notification.
	FromName  string `json:"from_name" firestore:"fromName"`             // Display name of that user, denormalized for rendering.
	GroupID   string `json:"group_id,omitempty" firestore:"groupId"`     // Target group for invite/role/removal kinds.
	GroupName string `json:"group_name,omitempty" firestore:"groupName"` // Denormalized group name.
	Text      string `json:"text,omitempty" firestore:"text"`            // Free text for comment/reminder/mention/news kinds.
}

// Notification is one message addressed to one recipient. A broadcast writes
// one document per recipient (fan-out). Documents are never deleted by normal
// flow; the read flag transitions false to true exactly once and never back.
type Notification struct {
	ID        string             `json:"id" firestore:"id"`                // The unique identifier for the notification document.
	ToUID     string             `json:"to_uid" firestore:"toUid"`         // The recipient's user id.
	Type      NotificationType   `json:"type" firestore:"type"`            // The notification kind.
	Read      bool               `json:"read" firestore:"read"`            // Monotonic one-way read flag.
	Status    NotificationStatus `json:"status" firestore:"status"`        // Invite lifecycle; pending for non-invite kinds.
	Data      NotificationData   `json:"data" firestore:"data"`            // Typed payload.
	CreatedAt time.Time          `json:"created_at" firestore:"createdAt"` // Server-assigned creation timestamp.
}

// IsPendingInvite reports whether the notification is a group invite that has
// not been accepted or rejected yet.
func (n *Notification) IsPendingInvite() bool {
	return n.Type == NotificationTypeGroupInvite && n.Status == NotificationStatusPending
}

// Summary renders the OS-level alert title and body for the notification.
// The switch is exhaustive over NotificationType.
func (n *Notification) Summary() (title, body string) {
	switch n.Type {
	case NotificationTypeGroupInvite:
		return "Group invitation", fmt.Sprintf("%s invited you to join %s", n.Data.FromName, n.Data.GroupName)
	case NotificationTypeAdminGranted:
		return "Role changed", fmt.Sprintf("%s made you an admin of %s", n.Data.FromName, n.Data.GroupName)
	case NotificationTypeAdminRevoked:
		return "Role changed", fmt.Sprintf("%s revoked your admin role in %s", n.Data.FromName, n.Data.GroupName)
	case NotificationTypeGroupRemoved:
		return "Removed from group", fmt.Sprintf("%s removed you from %s", n.Data.FromName, n.Data.GroupName)
	case NotificationTypeComment:
		return fmt.Sprintf("%s commented", n.Data.FromName), n.Data.Text
	case NotificationTypeReminder:
		return "Reminder", n.Data.Text
	case NotificationTypeTodoMention:
		return fmt.Sprintf("%s mentioned you", n.Data.FromName), n.Data.Text
	case NotificationTypeNews:
		return "Focuspit news", n.Data.Text
	default:
		return "Notification", string(n.Type)
	}
}
