package memory

import (
	"context"
	"testing"
	"time"

	"focuspit/internal/domain/entity"
	"focuspit/internal/domain/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recvSnapshot(t *testing.T, ch <-chan repository.Snapshot[*entity.Notification]) repository.Snapshot[*entity.Notification] {
	t.Helper()

	select {
	case snap, ok := <-ch:
		require.True(t, ok, "watch channel closed unexpectedly")

		return snap
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for snapshot")

		return repository.Snapshot[*entity.Notification]{}
	}
}

func reminderTo(toUID, text string) *entity.Notification {
	return &entity.Notification{
		ToUID:  toUID,
		Type:   entity.NotificationTypeReminder,
		Status: entity.NotificationStatusPending,
		Data:   entity.NotificationData{FromUID: "sender", Text: text},
	}
}

func TestWatchByRecipient_FirstSnapshotIsDeliveredEvenWhenEmpty(t *testing.T) {
	store := NewStore()
	repo := NewNotificationRepository(store)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := repo.WatchByRecipient(ctx, "alice")
	require.NoError(t, err)

	snap := recvSnapshot(t, ch)
	assert.Empty(t, snap.Docs)
	assert.Empty(t, snap.Changes)
}

func TestWatchByRecipient_FirstSnapshotReportsAllDocsAsAdded(t *testing.T) {
	store := NewStore()
	repo := NewNotificationRepository(store)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, reminderTo("alice", "one")))
	require.NoError(t, repo.Create(ctx, reminderTo("alice", "two")))
	require.NoError(t, repo.Create(ctx, reminderTo("bob", "not hers")))

	watchCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	ch, err := repo.WatchByRecipient(watchCtx, "alice")
	require.NoError(t, err)

	snap := recvSnapshot(t, ch)
	require.Len(t, snap.Docs, 2)
	require.Len(t, snap.Changes, 2)
	for _, change := range snap.Changes {
		assert.Equal(t, repository.ChangeAdded, change.Kind)
		assert.Equal(t, "alice", change.Doc.ToUID)
	}
}

func TestWatchByRecipient_ClassifiesChanges(t *testing.T) {
	store := NewStore()
	repo := NewNotificationRepository(store)
	ctx := context.Background()

	watchCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	ch, err := repo.WatchByRecipient(watchCtx, "alice")
	require.NoError(t, err)
	recvSnapshot(t, ch) // drain the catch-up snapshot

	n := reminderTo("alice", "ping")
	require.NoError(t, repo.Create(ctx, n))

	snap := recvSnapshot(t, ch)
	require.Len(t, snap.Changes, 1)
	assert.Equal(t, repository.ChangeAdded, snap.Changes[0].Kind)

	require.NoError(t, repo.MarkRead(ctx, n.ID))

	snap = recvSnapshot(t, ch)
	require.Len(t, snap.Changes, 1)
	assert.Equal(t, repository.ChangeModified, snap.Changes[0].Kind)
	assert.True(t, snap.Changes[0].Doc.Read)
}

func TestWatchByRecipient_ClosesOnCancel(t *testing.T) {
	store := NewStore()
	repo := NewNotificationRepository(store)

	ctx, cancel := context.WithCancel(context.Background())

	ch, err := repo.WatchByRecipient(ctx, "alice")
	require.NoError(t, err)
	recvSnapshot(t, ch)

	cancel()

	select {
	case _, ok := <-ch:
		assert.False(t, ok, "channel should be closed after cancel")
	case <-time.After(2 * time.Second):
		t.Fatal("watch channel not closed after context cancel")
	}
}

func TestMarkRead_IsMonotonic(t *testing.T) {
	store := NewStore()
	repo := NewNotificationRepository(store)
	ctx := context.Background()

	n := reminderTo("alice", "once")
	require.NoError(t, repo.Create(ctx, n))

	require.NoError(t, repo.MarkRead(ctx, n.ID))
	// A second mark is a no-op, never a clear.
	require.NoError(t, repo.MarkRead(ctx, n.ID))

	got, err := repo.FindByID(ctx, n.ID)
	require.NoError(t, err)
	assert.True(t, got.Read)
}
