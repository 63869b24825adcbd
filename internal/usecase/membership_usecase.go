package usecase

import (
	"context"

	"focuspit/internal/domain/entity"
)

// MemberInfo is one group member joined with profile and presence data for
// the member list panel.
type MemberInfo struct {
	Membership *entity.Membership `json:"membership"`
	User       *entity.User       `json:"user,omitempty"`
	Online     bool               `json:"online"`
}

// MembershipUsecase defines the interface for group membership use cases.
// Every mutation re-checks the actor's standing server-side; client-side
// checks are rendering hints only.
type MembershipUsecase interface {
	// InviteByUID invites a user to the group. Creates a pending
	// membership and a group_invite notification. Re-inviting the same
	// user upserts the same membership record.
	InviteByUID(ctx context.Context, actorUID, groupID, inviteeUID string) error

	// InviteByEmail resolves the invitee by email, then invites them.
	InviteByEmail(ctx context.Context, actorUID, groupID, email string) error

	// ListMembers retrieves the group's members with profile and presence
	// data. Caller must have access to the group.
	ListMembers(ctx context.Context, actorUID, groupID string) ([]*MemberInfo, error)

	// RemoveMember removes a member from the group and notifies them.
	// Caller must be an admin; the owner cannot be removed.
	RemoveMember(ctx context.Context, actorUID, groupID, uid string) error

	// LeaveGroup removes the caller's own membership. The owner cannot
	// leave their group.
	LeaveGroup(ctx context.Context, uid, groupID string) error

	// SetAdmin grants or revokes a member's admin flag and notifies them.
	// Caller must be an admin, cannot change their own flag, and cannot
	// touch the owner.
	SetAdmin(ctx context.Context, actorUID, groupID, uid string, admin bool) error

	// GenerateInviteQR renders a QR code encoding an invite link for the
	// group. Caller must be an admin.
	GenerateInviteQR(ctx context.Context, actorUID, groupID string) ([]byte, error)
}
