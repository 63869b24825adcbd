package entity

import (
	"time"
)

// GroupStatus represents the lifecycle state of a group.
type GroupStatus string

const (
	// GroupStatusActive marks a group that shows up on member dashboards.
	GroupStatusActive GroupStatus = "active"
	// GroupStatusArchived marks a group that is hidden but not deleted.
	GroupStatusArchived GroupStatus = "archived"
)

// Group represents a shared dashboard that members collaborate in.
// The slug doubles as the document id, so group URLs are stable and readable.
type Group struct {
	ID        string      `json:"id" firestore:"id"`                // Document id; equal to the slug.
	Slug      string      `json:"slug" firestore:"slug"`            // Unique, URL-safe identifier derived from the group name.
	Name      string      `json:"name" firestore:"name"`            // Display name of the group.
	PhotoURL  string      `json:"photo_url" firestore:"photoUrl"`   // Group photo URL, served from blob storage.
	Status    GroupStatus `json:"status" firestore:"status"`        // Lifecycle status; only active groups are listed.
	Order     int         `json:"order" firestore:"order"`          // User-settable display order on the dashboard.
	OwnerUID  string      `json:"owner_uid" firestore:"ownerUid"`   // UID of the user who created the group.
	CreatedAt time.Time   `json:"created_at" firestore:"createdAt"` // Timestamp of when the group was created.
}
