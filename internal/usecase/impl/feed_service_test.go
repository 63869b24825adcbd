package impl

import (
	"context"
	"testing"
	"time"

	"focuspit/internal/domain/entity"
	"focuspit/internal/domain/service"
	"focuspit/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recvUpdate(t *testing.T, feed <-chan usecase.FeedUpdate) usecase.FeedUpdate {
	t.Helper()
	select {
	case update, ok := <-feed:
		require.True(t, ok, "feed closed unexpectedly")

		return update
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for feed update")

		return usecase.FeedUpdate{}
	}
}

func sendTo(t *testing.T, f *fixture, uid, text string) *entity.Notification {
	t.Helper()
	n, err := f.notificationSvc.Send(context.Background(), usecase.SendNotificationInput{
		ToUID: uid,
		Type:  entity.NotificationTypeReminder,
		Data:  entity.NotificationData{FromUID: "alice", Text: text},
	})
	require.NoError(t, err)

	return n
}

func TestFeed_FirstSnapshotIsCatchUp(t *testing.T) {
	f := newFixture()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// two notifications exist before the subscription opens
	sendTo(t, f, "bob", "one")
	sendTo(t, f, "bob", "two")

	feed, err := f.feedSvc.Subscribe(ctx, "bob")
	require.NoError(t, err)

	update := recvUpdate(t, feed)
	assert.Len(t, update.Notifications, 2)
	assert.Equal(t, 2, update.UnreadCount)

	// catch-up raises no OS alerts
	assert.Empty(t, f.sink.sentCalls())
	assert.Zero(t, f.sink.requests())
}

func TestFeed_EmptyFirstSnapshot(t *testing.T) {
	f := newFixture()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	feed, err := f.feedSvc.Subscribe(ctx, "bob")
	require.NoError(t, err)

	// even with nothing stored, the subscriber learns it is caught up
	update := recvUpdate(t, feed)
	assert.Empty(t, update.Notifications)
	assert.Zero(t, update.UnreadCount)
}

func TestFeed_AlertsAfterFirstSnapshot(t *testing.T) {
	f := newFixture()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	feed, err := f.feedSvc.Subscribe(ctx, "bob")
	require.NoError(t, err)
	recvUpdate(t, feed)

	sendTo(t, f, "bob", "fresh news")

	update := recvUpdate(t, feed)
	assert.Equal(t, 1, update.UnreadCount)

	calls := f.sink.sentCalls()
	require.Len(t, calls, 1)
	assert.Equal(t, "bob", calls[0].ToUID)
	assert.Equal(t, "Reminder", calls[0].Title)
	assert.Equal(t, "fresh news", calls[0].Body)
	assert.NotEmpty(t, calls[0].Data["notification_id"])
}

func TestFeed_PermissionDeniedSuppressesAlerts(t *testing.T) {
	f := newFixture()
	f.sink.permission = service.AlertPermissionDenied
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	feed, err := f.feedSvc.Subscribe(ctx, "bob")
	require.NoError(t, err)
	recvUpdate(t, feed)

	sendTo(t, f, "bob", "quiet")
	recvUpdate(t, feed)

	assert.Empty(t, f.sink.sentCalls())
	// permission was asked once and the denial cached
	assert.Equal(t, 1, f.sink.requests())

	sendTo(t, f, "bob", "still quiet")
	recvUpdate(t, feed)
	assert.Equal(t, 1, f.sink.requests())
}

func TestFeed_ReadFlagUpdatesBadges(t *testing.T) {
	f := newFixture()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	n := sendTo(t, f, "bob", "ping")

	feed, err := f.feedSvc.Subscribe(ctx, "bob")
	require.NoError(t, err)

	update := recvUpdate(t, feed)
	assert.Equal(t, 1, update.UnreadCount)

	require.NoError(t, f.notificationSvc.MarkAsRead(ctx, "bob", n.ID))

	update = recvUpdate(t, feed)
	assert.Equal(t, 0, update.UnreadCount)
	require.Len(t, update.Notifications, 1)
	assert.True(t, update.Notifications[0].Read)

	// badge went on for the catch-up unread, then off after the read
	f.sink.mu.Lock()
	overlay := append([]bool(nil), f.sink.overlay...)
	icons := append([]int(nil), f.sink.iconCounts...)
	f.sink.mu.Unlock()
	assert.Equal(t, []bool{true, false}, overlay)
	assert.Equal(t, []int{1, 0}, icons)

	// a read transition is a modification, never an alert
	assert.Empty(t, f.sink.sentCalls())
}

func TestFeed_ClosesOnCancel(t *testing.T) {
	f := newFixture()
	ctx, cancel := context.WithCancel(context.Background())

	feed, err := f.feedSvc.Subscribe(ctx, "bob")
	require.NoError(t, err)
	recvUpdate(t, feed)

	cancel()

	select {
	case _, ok := <-feed:
		assert.False(t, ok)
	case <-time.After(2 * time.Second):
		t.Fatal("feed did not close after cancellation")
	}
}
