// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"
)

// User is the core entity in the system, representing a unique "person" or "account".
// The UID comes from the authentication provider and is stable for the lifetime
// of the account; the slug is allocated once at creation and never reassigned.
type User struct {
	UID       string    `json:"uid" firestore:"uid"`              // Stable identity assigned by the auth provider.
	Email     string    `json:"email" firestore:"email"`          // The user's primary contact email, often used as a login identifier.
	Name      string    `json:"name" firestore:"name"`            // The user's display name.
	Slug      string    `json:"slug" firestore:"slug"`            // Unique, URL-safe identifier derived from the display name.
	PhotoURL  string    `json:"photo_url" firestore:"photoUrl"`   // Avatar URL, served from blob storage.
	Admin     bool      `json:"admin" firestore:"admin"`          // Application-level admin flag (news broadcasts).
	Stamps    []string  `json:"stamps" firestore:"stamps"`        // Unlocked achievement stamps.
	CreatedAt time.Time `json:"created_at" firestore:"createdAt"` // Timestamp of when this user account was created.
}
