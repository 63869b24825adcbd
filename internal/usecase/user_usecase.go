// Package usecase defines the application-layer interfaces. Handlers depend
// on these interfaces; the implementations live in usecase/impl.
package usecase

import (
	"context"
	"time"

	"focuspit/internal/domain/entity"
	"focuspit/internal/domain/service"
)

// UpdateProfileInput carries the user-editable profile fields. Nil fields are
// left unchanged. The slug is immutable after allocation and deliberately
// absent.
type UpdateProfileInput struct {
	Name     *string `json:"name" validate:"omitempty,min=1,max=100"`
	PhotoURL *string `json:"photo_url" validate:"omitempty,url"`
}

// UserUsecase defines the interface for account management use cases
type UserUsecase interface {
	// EnsureUser returns the user document for a verified identity,
	// creating it with a freshly allocated slug on first sign-in.
	EnsureUser(ctx context.Context, identity *service.Identity) (*entity.User, error)

	// GetUser retrieves a user by uid.
	GetUser(ctx context.Context, uid string) (*entity.User, error)

	// UpdateProfile updates the user's editable profile fields.
	UpdateProfile(ctx context.Context, uid string, input UpdateProfileInput) (*entity.User, error)

	// GrantStamp unlocks an achievement stamp for the user. Granting a
	// stamp the user already has is a no-op.
	GrantStamp(ctx context.Context, uid, stamp string) error

	// Heartbeat refreshes the user's online marker.
	Heartbeat(ctx context.Context, uid string) error

	// GoOffline clears the user's online marker immediately.
	GoOffline(ctx context.Context, uid string) error
}

// DefaultPresenceTTL is the online marker lifetime when none is configured.
const DefaultPresenceTTL = 90 * time.Second
