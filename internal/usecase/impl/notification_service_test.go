package impl

import (
	"context"
	"testing"

	"focuspit/internal/domain/entity"
	domainerrors "focuspit/internal/domain/errors"
	"focuspit/internal/errors"
	"focuspit/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSend_Persists(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	n, err := f.notificationSvc.Send(ctx, usecase.SendNotificationInput{
		ToUID: "bob",
		Type:  entity.NotificationTypeComment,
		Data: entity.NotificationData{
			FromUID:  "alice",
			FromName: "Alice",
			Text:     "nice work",
		},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, n.ID)
	assert.False(t, n.Read)
	assert.Equal(t, entity.NotificationStatusPending, n.Status)
	assert.False(t, n.CreatedAt.IsZero())

	list, err := f.notificationSvc.List(ctx, "bob", 0)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, n.ID, list[0].ID)
}

func TestSend_Validation(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	tests := []struct {
		name  string
		input usecase.SendNotificationInput
	}{
		{
			name: "unknown type",
			input: usecase.SendNotificationInput{
				ToUID: "bob",
				Type:  "carrier_pigeon",
				Data:  entity.NotificationData{FromUID: "alice"},
			},
		},
		{
			name: "missing recipient",
			input: usecase.SendNotificationInput{
				Type: entity.NotificationTypeComment,
				Data: entity.NotificationData{FromUID: "alice", Text: "hi"},
			},
		},
		{
			name: "missing sender",
			input: usecase.SendNotificationInput{
				ToUID: "bob",
				Type:  entity.NotificationTypeComment,
				Data:  entity.NotificationData{Text: "hi"},
			},
		},
		{
			name: "group kind without group",
			input: usecase.SendNotificationInput{
				ToUID: "bob",
				Type:  entity.NotificationTypeGroupInvite,
				Data:  entity.NotificationData{FromUID: "alice"},
			},
		},
		{
			name: "text kind without text",
			input: usecase.SendNotificationInput{
				ToUID: "bob",
				Type:  entity.NotificationTypeReminder,
				Data:  entity.NotificationData{FromUID: "alice"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.notificationSvc.Send(ctx, tt.input)
			assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
		})
	}

	list, err := f.notificationSvc.List(ctx, "bob", 0)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestMarkAsRead(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	n, err := f.notificationSvc.Send(ctx, usecase.SendNotificationInput{
		ToUID: "bob",
		Type:  entity.NotificationTypeReminder,
		Data:  entity.NotificationData{FromUID: "alice", Text: "standup"},
	})
	require.NoError(t, err)

	require.NoError(t, f.notificationSvc.MarkAsRead(ctx, "bob", n.ID))

	got, err := f.notifications.FindByID(ctx, n.ID)
	require.NoError(t, err)
	assert.True(t, got.Read)

	// marking again is a no-op
	require.NoError(t, f.notificationSvc.MarkAsRead(ctx, "bob", n.ID))
}

func TestMarkAsRead_NotRecipient(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	n, err := f.notificationSvc.Send(ctx, usecase.SendNotificationInput{
		ToUID: "bob",
		Type:  entity.NotificationTypeReminder,
		Data:  entity.NotificationData{FromUID: "alice", Text: "standup"},
	})
	require.NoError(t, err)

	err = f.notificationSvc.MarkAsRead(ctx, "mallory", n.ID)
	assert.ErrorIs(t, err, domainerrors.ErrNotRecipient)

	got, err := f.notifications.FindByID(ctx, n.ID)
	require.NoError(t, err)
	assert.False(t, got.Read)
}

func TestMarkAllAsRead(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := f.notificationSvc.Send(ctx, usecase.SendNotificationInput{
			ToUID: "bob",
			Type:  entity.NotificationTypeReminder,
			Data:  entity.NotificationData{FromUID: "alice", Text: "tick"},
		})
		require.NoError(t, err)
	}

	require.NoError(t, f.notificationSvc.MarkAllAsRead(ctx, "bob"))

	count, err := f.notificationSvc.UnreadCount(ctx, "bob")
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestMarkAllAsRead_PartialFailure(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := f.notificationSvc.Send(ctx, usecase.SendNotificationInput{
			ToUID: "bob",
			Type:  entity.NotificationTypeReminder,
			Data:  entity.NotificationData{FromUID: "alice", Text: "tick"},
		})
		require.NoError(t, err)
	}

	injected := errors.New("store unavailable")
	f.store.FailNext("notification.markRead", injected)

	err := f.notificationSvc.MarkAllAsRead(ctx, "bob")
	require.Error(t, err)
	assert.ErrorIs(t, err, injected)

	// the sweep continued past the failed document
	count, countErr := f.notificationSvc.UnreadCount(ctx, "bob")
	require.NoError(t, countErr)
	assert.Equal(t, 1, count)
}

// inviteFixture seeds a group with an owner and a pending invite for bob.
func inviteFixture(t *testing.T) (*fixture, *entity.Notification) {
	t.Helper()
	f := newFixture()
	ctx := context.Background()

	f.seedUser("alice", "Alice")
	f.seedUser("bob", "Bob")
	f.seedGroup("team-atlas", "Team Atlas", "alice")

	require.NoError(t, f.membershipSvc.InviteByUID(ctx, "alice", "team-atlas", "bob"))

	list, err := f.notificationSvc.List(ctx, "bob", 0)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.True(t, list[0].IsPendingInvite())

	return f, list[0]
}

func TestAcceptInvite(t *testing.T) {
	f, invite := inviteFixture(t)
	ctx := context.Background()

	require.NoError(t, f.notificationSvc.AcceptInvite(ctx, "bob", invite.ID))

	m, err := f.memberships.Find(ctx, "team-atlas", "bob")
	require.NoError(t, err)
	assert.Equal(t, entity.MembershipStatusActive, m.Status)
	assert.True(t, m.HasAccess())

	n, err := f.notifications.FindByID(ctx, invite.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.NotificationStatusAccepted, n.Status)
	assert.True(t, n.Read)
}

func TestAcceptInvite_RollsBackOnMembershipFailure(t *testing.T) {
	f, invite := inviteFixture(t)
	ctx := context.Background()

	f.store.FailNext("membership.setStatus", errors.New("store unavailable"))

	err := f.notificationSvc.AcceptInvite(ctx, "bob", invite.ID)
	require.Error(t, err)

	// neither document changed
	n, findErr := f.notifications.FindByID(ctx, invite.ID)
	require.NoError(t, findErr)
	assert.Equal(t, entity.NotificationStatusPending, n.Status)
	assert.False(t, n.Read)

	m, findErr := f.memberships.Find(ctx, "team-atlas", "bob")
	require.NoError(t, findErr)
	assert.Equal(t, entity.MembershipStatusPending, m.Status)
}

func TestAcceptInvite_ResolvedOnlyOnce(t *testing.T) {
	f, invite := inviteFixture(t)
	ctx := context.Background()

	require.NoError(t, f.notificationSvc.AcceptInvite(ctx, "bob", invite.ID))

	err := f.notificationSvc.AcceptInvite(ctx, "bob", invite.ID)
	assert.ErrorIs(t, err, domainerrors.ErrInviteResolved)

	err = f.notificationSvc.RejectInvite(ctx, "bob", invite.ID)
	assert.ErrorIs(t, err, domainerrors.ErrInviteResolved)
}

func TestAcceptInvite_WrongRecipient(t *testing.T) {
	f, invite := inviteFixture(t)

	err := f.notificationSvc.AcceptInvite(context.Background(), "mallory", invite.ID)
	assert.ErrorIs(t, err, domainerrors.ErrNotRecipient)
}

func TestAcceptInvite_NotAnInvite(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	n, err := f.notificationSvc.Send(ctx, usecase.SendNotificationInput{
		ToUID: "bob",
		Type:  entity.NotificationTypeComment,
		Data:  entity.NotificationData{FromUID: "alice", Text: "hi"},
	})
	require.NoError(t, err)

	err = f.notificationSvc.AcceptInvite(ctx, "bob", n.ID)
	assert.ErrorIs(t, err, domainerrors.ErrNotInvite)
}

func TestRejectInvite_KeepsPendingMembership(t *testing.T) {
	f, invite := inviteFixture(t)
	ctx := context.Background()

	require.NoError(t, f.notificationSvc.RejectInvite(ctx, "bob", invite.ID))

	n, err := f.notifications.FindByID(ctx, invite.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.NotificationStatusRejected, n.Status)
	assert.True(t, n.Read)

	// the membership record survives the rejection, still pending
	m, err := f.memberships.Find(ctx, "team-atlas", "bob")
	require.NoError(t, err)
	assert.Equal(t, entity.MembershipStatusPending, m.Status)
	assert.False(t, m.HasAccess())
}

func TestBroadcast(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	admin := f.seedUser("root", "Root")
	admin.Admin = true
	require.NoError(t, f.users.Update(ctx, admin))
	f.seedUser("alice", "Alice")
	f.seedUser("bob", "Bob")

	require.NoError(t, f.notificationSvc.Broadcast(ctx, "root", "v2 is live"))

	for _, uid := range []string{"root", "alice", "bob"} {
		list, err := f.notificationSvc.List(ctx, uid, 0)
		require.NoError(t, err)
		require.Len(t, list, 1, "recipient %s", uid)
		assert.Equal(t, entity.NotificationTypeNews, list[0].Type)
		assert.Equal(t, "v2 is live", list[0].Data.Text)
	}

	require.Len(t, f.publisher.events, 1)
	event := f.publisher.events[0]
	assert.Equal(t, "root", event.FromUID)
	assert.Len(t, event.RecipientIDs, 3)
	assert.NotEmpty(t, event.BroadcastID)
}

func TestBroadcast_RequiresAdmin(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.seedUser("alice", "Alice")

	err := f.notificationSvc.Broadcast(ctx, "alice", "fake news")
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)
	assert.Empty(t, f.publisher.events)
}
