package impl

import (
	"context"
	"testing"

	"focuspit/internal/domain/entity"
	domainerrors "focuspit/internal/domain/errors"
	"focuspit/internal/domain/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInviteByUID(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.seedUser("alice", "Alice")
	f.seedUser("bob", "Bob")
	f.seedGroup("team-atlas", "Team Atlas", "alice")

	require.NoError(t, f.membershipSvc.InviteByUID(ctx, "alice", "team-atlas", "bob"))

	m, err := f.memberships.Find(ctx, "team-atlas", "bob")
	require.NoError(t, err)
	assert.Equal(t, entity.MembershipStatusPending, m.Status)
	assert.Equal(t, "alice", m.InvitedBy)
	assert.False(t, m.HasAccess())

	list, err := f.notifications.FindByRecipient(ctx, "bob", 0)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, entity.NotificationTypeGroupInvite, list[0].Type)
	assert.Equal(t, "Team Atlas", list[0].Data.GroupName)
	assert.Equal(t, "Alice", list[0].Data.FromName)
}

func TestInviteByUID_RepeatUpsertsOneRecord(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.seedUser("alice", "Alice")
	f.seedUser("bob", "Bob")
	f.seedGroup("team-atlas", "Team Atlas", "alice")

	require.NoError(t, f.membershipSvc.InviteByUID(ctx, "alice", "team-atlas", "bob"))
	require.NoError(t, f.membershipSvc.InviteByUID(ctx, "alice", "team-atlas", "bob"))

	members, err := f.memberships.FindByGroup(ctx, "team-atlas")
	require.NoError(t, err)
	assert.Len(t, members, 2) // owner + bob, not three
}

func TestInviteByUID_ActiveMemberUntouched(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.seedUser("alice", "Alice")
	f.seedUser("bob", "Bob")
	f.seedGroup("team-atlas", "Team Atlas", "alice")
	f.seedMember("team-atlas", "bob", false, entity.MembershipStatusActive)

	require.NoError(t, f.membershipSvc.InviteByUID(ctx, "alice", "team-atlas", "bob"))

	m, err := f.memberships.Find(ctx, "team-atlas", "bob")
	require.NoError(t, err)
	assert.Equal(t, entity.MembershipStatusActive, m.Status)

	// no invite notification either
	list, err := f.notifications.FindByRecipient(ctx, "bob", 0)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestInviteByUID_RequiresManager(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.seedUser("alice", "Alice")
	f.seedUser("bob", "Bob")
	f.seedUser("carol", "Carol")
	f.seedGroup("team-atlas", "Team Atlas", "alice")
	f.seedMember("team-atlas", "bob", false, entity.MembershipStatusActive)

	// plain member
	err := f.membershipSvc.InviteByUID(ctx, "bob", "team-atlas", "carol")
	assert.ErrorIs(t, err, domainerrors.ErrNotGroupAdmin)

	// outsider
	err = f.membershipSvc.InviteByUID(ctx, "carol", "team-atlas", "bob")
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)

	// pending invitee cannot invite
	f.seedMember("team-atlas", "carol", true, entity.MembershipStatusPending)
	err = f.membershipSvc.InviteByUID(ctx, "carol", "team-atlas", "bob")
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)
}

func TestInviteByUID_UnknownInvitee(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.seedUser("alice", "Alice")
	f.seedGroup("team-atlas", "Team Atlas", "alice")

	err := f.membershipSvc.InviteByUID(ctx, "alice", "team-atlas", "ghost")
	assert.ErrorIs(t, err, domainerrors.ErrUserNotFound)
}

func TestInviteByEmail(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.seedUser("alice", "Alice")
	f.seedUser("bob", "Bob")
	f.seedGroup("team-atlas", "Team Atlas", "alice")

	require.NoError(t, f.membershipSvc.InviteByEmail(ctx, "alice", "team-atlas", "bob@example.com"))

	_, err := f.memberships.Find(ctx, "team-atlas", "bob")
	require.NoError(t, err)
}

func TestInviteByEmail_IdentityFallback(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.seedUser("alice", "Alice")
	f.seedGroup("team-atlas", "Team Atlas", "alice")

	// carol has an auth account and a user doc, but under another email
	f.seedUser("carol", "Carol")
	f.identity.byEmail["carol@corp.example.com"] = &service.Identity{
		UID:   "carol",
		Email: "carol@corp.example.com",
	}

	require.NoError(t, f.membershipSvc.InviteByEmail(ctx, "alice", "team-atlas", "carol@corp.example.com"))

	_, err := f.memberships.Find(ctx, "team-atlas", "carol")
	require.NoError(t, err)
}

func TestInviteByEmail_Unknown(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.seedUser("alice", "Alice")
	f.seedGroup("team-atlas", "Team Atlas", "alice")

	err := f.membershipSvc.InviteByEmail(ctx, "alice", "team-atlas", "nobody@example.com")
	assert.ErrorIs(t, err, domainerrors.ErrUserNotFound)
}

func TestListMembers(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.seedUser("alice", "Alice")
	f.seedUser("bob", "Bob")
	f.seedGroup("team-atlas", "Team Atlas", "alice")
	f.seedMember("team-atlas", "bob", false, entity.MembershipStatusActive)

	require.NoError(t, f.presence.SetOnline(ctx, "bob", 0))

	members, err := f.membershipSvc.ListMembers(ctx, "alice", "team-atlas")
	require.NoError(t, err)
	require.Len(t, members, 2)

	byUID := make(map[string]bool, len(members))
	for _, m := range members {
		byUID[m.Membership.UID] = m.Online
	}
	assert.False(t, byUID["alice"])
	assert.True(t, byUID["bob"])
}

func TestListMembers_RequiresAccess(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.seedUser("alice", "Alice")
	f.seedGroup("team-atlas", "Team Atlas", "alice")

	_, err := f.membershipSvc.ListMembers(ctx, "mallory", "team-atlas")
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)
}

func TestRemoveMember(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.seedUser("alice", "Alice")
	f.seedUser("bob", "Bob")
	f.seedGroup("team-atlas", "Team Atlas", "alice")
	f.seedMember("team-atlas", "bob", false, entity.MembershipStatusActive)

	require.NoError(t, f.membershipSvc.RemoveMember(ctx, "alice", "team-atlas", "bob"))

	_, err := f.memberships.Find(ctx, "team-atlas", "bob")
	assert.Error(t, err)

	list, err := f.notifications.FindByRecipient(ctx, "bob", 0)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, entity.NotificationTypeGroupRemoved, list[0].Type)
}

func TestRemoveMember_PendingInviteeGetsNoNotice(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.seedUser("alice", "Alice")
	f.seedUser("bob", "Bob")
	f.seedGroup("team-atlas", "Team Atlas", "alice")
	f.seedMember("team-atlas", "bob", false, entity.MembershipStatusPending)

	require.NoError(t, f.membershipSvc.RemoveMember(ctx, "alice", "team-atlas", "bob"))

	list, err := f.notifications.FindByRecipient(ctx, "bob", 0)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestRemoveMember_OwnerImmutable(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.seedUser("alice", "Alice")
	f.seedUser("bob", "Bob")
	f.seedGroup("team-atlas", "Team Atlas", "alice")
	f.seedMember("team-atlas", "bob", true, entity.MembershipStatusActive)

	err := f.membershipSvc.RemoveMember(ctx, "bob", "team-atlas", "alice")
	assert.ErrorIs(t, err, domainerrors.ErrOwnerImmutable)
}

func TestLeaveGroup(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.seedUser("alice", "Alice")
	f.seedGroup("team-atlas", "Team Atlas", "alice")
	f.seedMember("team-atlas", "bob", false, entity.MembershipStatusActive)

	require.NoError(t, f.membershipSvc.LeaveGroup(ctx, "bob", "team-atlas"))

	_, err := f.memberships.Find(ctx, "team-atlas", "bob")
	assert.Error(t, err)

	// the owner cannot walk away from their own group
	err = f.membershipSvc.LeaveGroup(ctx, "alice", "team-atlas")
	assert.ErrorIs(t, err, domainerrors.ErrOwnerImmutable)
}

func TestSetAdmin(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.seedUser("alice", "Alice")
	f.seedUser("bob", "Bob")
	f.seedGroup("team-atlas", "Team Atlas", "alice")
	f.seedMember("team-atlas", "bob", false, entity.MembershipStatusActive)

	require.NoError(t, f.membershipSvc.SetAdmin(ctx, "alice", "team-atlas", "bob", true))

	m, err := f.memberships.Find(ctx, "team-atlas", "bob")
	require.NoError(t, err)
	assert.True(t, m.Admin)

	require.NoError(t, f.membershipSvc.SetAdmin(ctx, "alice", "team-atlas", "bob", false))

	list, err := f.notifications.FindByRecipient(ctx, "bob", 0)
	require.NoError(t, err)
	require.Len(t, list, 2)
	// newest-first
	assert.Equal(t, entity.NotificationTypeAdminRevoked, list[0].Type)
	assert.Equal(t, entity.NotificationTypeAdminGranted, list[1].Type)
}

func TestSetAdmin_NoOpSkipsNotification(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.seedUser("alice", "Alice")
	f.seedUser("bob", "Bob")
	f.seedGroup("team-atlas", "Team Atlas", "alice")
	f.seedMember("team-atlas", "bob", false, entity.MembershipStatusActive)

	require.NoError(t, f.membershipSvc.SetAdmin(ctx, "alice", "team-atlas", "bob", false))

	list, err := f.notifications.FindByRecipient(ctx, "bob", 0)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestSetAdmin_Guards(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.seedUser("alice", "Alice")
	f.seedUser("bob", "Bob")
	f.seedGroup("team-atlas", "Team Atlas", "alice")
	f.seedMember("team-atlas", "bob", true, entity.MembershipStatusActive)

	err := f.membershipSvc.SetAdmin(ctx, "alice", "team-atlas", "alice", false)
	assert.ErrorIs(t, err, domainerrors.ErrSelfAdminChange)

	err = f.membershipSvc.SetAdmin(ctx, "bob", "team-atlas", "alice", false)
	assert.ErrorIs(t, err, domainerrors.ErrOwnerImmutable)
}

func TestGenerateInviteQR(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.seedUser("alice", "Alice")
	f.seedUser("bob", "Bob")
	f.seedGroup("team-atlas", "Team Atlas", "alice")
	f.seedMember("team-atlas", "bob", false, entity.MembershipStatusActive)

	png, err := f.membershipSvc.GenerateInviteQR(ctx, "alice", "team-atlas")
	require.NoError(t, err)
	assert.Equal(t, []byte("qr:team-atlas"), png)

	_, err = f.membershipSvc.GenerateInviteQR(ctx, "bob", "team-atlas")
	assert.ErrorIs(t, err, domainerrors.ErrNotGroupAdmin)
}
