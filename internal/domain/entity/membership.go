package entity

import (
	"time"
)

// MembershipStatus represents the state of a (group, user) pair.
type MembershipStatus string

const (
	// MembershipStatusPending is set by an invite and grants no access.
	MembershipStatusPending MembershipStatus = "pending"
	// MembershipStatusActive grants dashboard access.
	MembershipStatusActive MembershipStatus = "active"
)

// Membership records one user's standing inside one group. The document id is
// deterministically derived from (group id, uid) so that repeated invites for
// the same pair upsert a single record instead of racing to create two.
type Membership struct {
	GroupID   string           `json:"group_id" firestore:"groupId"`     // The group this record belongs to.
	UID       string           `json:"uid" firestore:"uid"`              // The member's user id.
	Owner     bool             `json:"owner" firestore:"owner"`          // True for the group creator; an owner always has access.
	Admin     bool             `json:"admin" firestore:"admin"`          // True if the member may invite, remove, and change roles.
	Status    MembershipStatus `json:"status" firestore:"status"`        // pending until the invite is accepted.
	InvitedBy string           `json:"invited_by" firestore:"invitedBy"` // UID of the member who sent the invite.
	CreatedAt time.Time        `json:"created_at" firestore:"createdAt"` // Timestamp of when the record was created.
	UpdatedAt time.Time        `json:"updated_at" firestore:"updatedAt"` // Timestamp of the last status or role change.
}

// MembershipID returns the deterministic document id for a (group, user) pair.
func MembershipID(groupID, uid string) string {
	return groupID + "_" + uid
}

// HasAccess reports whether the membership grants dashboard access.
// A pending membership grants none.
func (m *Membership) HasAccess() bool {
	return m.Owner || m.Status == MembershipStatusActive
}

// CanManageMembers reports whether the member may invite, remove, or change
// admin flags of other members. Checked server-side on every mutation.
func (m *Membership) CanManageMembers() bool {
	return m.HasAccess() && (m.Owner || m.Admin)
}
