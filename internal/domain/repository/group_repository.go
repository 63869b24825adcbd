package repository

import (
	"context"
	"errors"

	"focuspit/internal/domain/entity"
)

// Domain-specific errors for group persistence.
var (
	// ErrGroupNotFound is returned when a group is not found.
	ErrGroupNotFound = errors.New("group not found")
	// ErrGroupAlreadyExists is returned when creating a group whose id is taken.
	ErrGroupAlreadyExists = errors.New("group already exists")
)

// GroupRepository defines the interface for group document operations.
type GroupRepository interface {
	// Create persists a new group. The group id is the slug, so creation
	// fails with ErrGroupAlreadyExists when the id is already in use.
	Create(ctx context.Context, group *entity.Group) error

	// FindByID retrieves a group by its id/slug.
	FindByID(ctx context.Context, id string) (*entity.Group, error)

	// Exists reports whether a group id/slug is already taken.
	Exists(ctx context.Context, id string) (bool, error)

	// Update overwrites the mutable fields of an existing group.
	Update(ctx context.Context, group *entity.Group) error

	// SetOrder updates the user-settable display order of a group.
	SetOrder(ctx context.Context, id string, order int) error

	// Delete removes the group document. Cascading member and widget
	// deletion is the caller's responsibility.
	Delete(ctx context.Context, id string) error

	// WatchActiveByMember subscribes to the active groups the user has
	// access to, ordered by display order. The channel closes when ctx is
	// cancelled.
	WatchActiveByMember(ctx context.Context, uid string) (<-chan Snapshot[*entity.Group], error)
}
