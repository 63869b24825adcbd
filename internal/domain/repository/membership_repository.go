package repository

import (
	"context"
	"errors"

	"focuspit/internal/domain/entity"
)

// ErrMembershipNotFound is returned when no record exists for a (group, uid) pair.
var ErrMembershipNotFound = errors.New("membership not found")

// MembershipRepository defines the interface for per-group member records.
// Records are keyed by entity.MembershipID(groupID, uid), which makes invites
// idempotent under retry: two concurrent invites upsert the same document.
type MembershipRepository interface {
	// Upsert creates or overwrites the record for (m.GroupID, m.UID).
	Upsert(ctx context.Context, m *entity.Membership) error

	// Find retrieves the record for a (group, uid) pair.
	Find(ctx context.Context, groupID, uid string) (*entity.Membership, error)

	// FindByGroup retrieves all member records of a group.
	FindByGroup(ctx context.Context, groupID string) ([]*entity.Membership, error)

	// FindByUser retrieves all member records of a user across groups.
	FindByUser(ctx context.Context, uid string) ([]*entity.Membership, error)

	// SetStatus updates the lifecycle status of an existing record.
	SetStatus(ctx context.Context, groupID, uid string, status entity.MembershipStatus) error

	// SetAdmin updates the admin flag of an existing record.
	SetAdmin(ctx context.Context, groupID, uid string, admin bool) error

	// Delete removes the record for a (group, uid) pair.
	Delete(ctx context.Context, groupID, uid string) error

	// DeleteByGroup removes every member record of a group (cascade path).
	DeleteByGroup(ctx context.Context, groupID string) error
}
