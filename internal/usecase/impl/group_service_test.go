package impl

import (
	"context"
	"testing"

	"focuspit/internal/domain/entity"
	domainerrors "focuspit/internal/domain/errors"
	"focuspit/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateGroup(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.seedUser("alice", "Alice")

	g, err := f.groupSvc.CreateGroup(ctx, "alice", usecase.CreateGroupInput{Name: "Team Atlas"})
	require.NoError(t, err)
	assert.Equal(t, "team-atlas", g.ID)
	assert.Equal(t, g.ID, g.Slug)
	assert.Equal(t, entity.GroupStatusActive, g.Status)
	assert.Equal(t, "alice", g.OwnerUID)

	m, err := f.memberships.Find(ctx, g.ID, "alice")
	require.NoError(t, err)
	assert.True(t, m.Owner)
	assert.True(t, m.Admin)
	assert.Equal(t, entity.MembershipStatusActive, m.Status)
}

func TestCreateGroup_SlugCollision(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.seedUser("alice", "Alice")

	first, err := f.groupSvc.CreateGroup(ctx, "alice", usecase.CreateGroupInput{Name: "Team Atlas"})
	require.NoError(t, err)
	second, err := f.groupSvc.CreateGroup(ctx, "alice", usecase.CreateGroupInput{Name: "Team Atlas"})
	require.NoError(t, err)

	assert.Equal(t, "team-atlas", first.ID)
	assert.Equal(t, "team-atlas-1", second.ID)
}

func TestGetGroup_RequiresAccess(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.seedUser("alice", "Alice")
	f.seedGroup("team-atlas", "Team Atlas", "alice")

	g, err := f.groupSvc.GetGroup(ctx, "alice", "team-atlas")
	require.NoError(t, err)
	assert.Equal(t, "Team Atlas", g.Name)

	_, err = f.groupSvc.GetGroup(ctx, "mallory", "team-atlas")
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)

	// pending invitees see nothing yet
	f.seedMember("team-atlas", "bob", false, entity.MembershipStatusPending)
	_, err = f.groupSvc.GetGroup(ctx, "bob", "team-atlas")
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)
}

func TestListGroups_OrderAndFiltering(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.seedUser("alice", "Alice")
	f.seedGroup("zeta", "Zeta", "alice")
	f.seedGroup("alpha", "Alpha", "alice")
	f.seedGroup("attic", "Attic", "alice")

	require.NoError(t, f.groups.SetOrder(ctx, "zeta", 1))
	require.NoError(t, f.groups.SetOrder(ctx, "alpha", 2))

	// archived groups disappear from the dashboard
	require.NoError(t, f.groupSvc.ArchiveGroup(ctx, "alice", "attic"))

	groups, err := f.groupSvc.ListGroups(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, groups, 2)
	assert.Equal(t, "zeta", groups[0].ID)
	assert.Equal(t, "alpha", groups[1].ID)
}

func TestSetGroupOrder_RequiresAccess(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.seedUser("alice", "Alice")
	f.seedGroup("team-atlas", "Team Atlas", "alice")

	require.NoError(t, f.groupSvc.SetGroupOrder(ctx, "alice", "team-atlas", 5))

	err := f.groupSvc.SetGroupOrder(ctx, "mallory", "team-atlas", 1)
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)
}

func TestUpdateGroup(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.seedUser("alice", "Alice")
	f.seedGroup("team-atlas", "Team Atlas", "alice")
	f.seedMember("team-atlas", "bob", false, entity.MembershipStatusActive)

	name := "Team Atlas v2"
	g, err := f.groupSvc.UpdateGroup(ctx, "alice", "team-atlas", usecase.UpdateGroupInput{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, name, g.Name)
	assert.Equal(t, "team-atlas", g.Slug) // slug never changes

	_, err = f.groupSvc.UpdateGroup(ctx, "bob", "team-atlas", usecase.UpdateGroupInput{Name: &name})
	assert.ErrorIs(t, err, domainerrors.ErrNotGroupAdmin)
}

func TestArchiveGroup_OwnerOnly(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.seedUser("alice", "Alice")
	f.seedGroup("team-atlas", "Team Atlas", "alice")
	f.seedMember("team-atlas", "bob", true, entity.MembershipStatusActive)

	err := f.groupSvc.ArchiveGroup(ctx, "bob", "team-atlas")
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)

	require.NoError(t, f.groupSvc.ArchiveGroup(ctx, "alice", "team-atlas"))

	g, err := f.groups.FindByID(ctx, "team-atlas")
	require.NoError(t, err)
	assert.Equal(t, entity.GroupStatusArchived, g.Status)
}

func TestDeleteGroup_Cascade(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.seedUser("alice", "Alice")
	f.seedUser("bob", "Bob")
	f.seedGroup("team-atlas", "Team Atlas", "alice")
	f.seedMember("team-atlas", "bob", false, entity.MembershipStatusActive)
	f.seedMember("team-atlas", "carol", false, entity.MembershipStatusPending)

	_, err := f.groupSvc.AddWidget(ctx, "alice", "team-atlas", usecase.AddWidgetInput{Key: "todo"})
	require.NoError(t, err)

	require.NoError(t, f.groupSvc.DeleteGroup(ctx, "alice", "team-atlas"))

	_, err = f.groups.FindByID(ctx, "team-atlas")
	assert.Error(t, err)

	members, err := f.memberships.FindByGroup(ctx, "team-atlas")
	require.NoError(t, err)
	assert.Empty(t, members)

	widgets, err := f.widgets.FindByGroup(ctx, "team-atlas")
	require.NoError(t, err)
	assert.Empty(t, widgets)

	// bob had access and gets notified; carol was pending and does not
	bobList, err := f.notifications.FindByRecipient(ctx, "bob", 0)
	require.NoError(t, err)
	require.Len(t, bobList, 1)
	assert.Equal(t, entity.NotificationTypeGroupRemoved, bobList[0].Type)

	carolList, err := f.notifications.FindByRecipient(ctx, "carol", 0)
	require.NoError(t, err)
	assert.Empty(t, carolList)

	// the owner does not notify themselves
	aliceList, err := f.notifications.FindByRecipient(ctx, "alice", 0)
	require.NoError(t, err)
	assert.Empty(t, aliceList)
}

func TestDeleteGroup_OwnerOnly(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.seedUser("alice", "Alice")
	f.seedUser("bob", "Bob")
	f.seedGroup("team-atlas", "Team Atlas", "alice")
	f.seedMember("team-atlas", "bob", true, entity.MembershipStatusActive)

	err := f.groupSvc.DeleteGroup(ctx, "bob", "team-atlas")
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)
}

func TestWidgetLifecycle(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.seedUser("alice", "Alice")
	f.seedGroup("team-atlas", "Team Atlas", "alice")

	w, err := f.groupSvc.AddWidget(ctx, "alice", "team-atlas", usecase.AddWidgetInput{
		Key:      "todo",
		Layout:   entity.WidgetLayout{X: 0, Y: 0, W: 2, H: 2},
		Settings: map[string]any{"title": "Sprint"},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, w.ID)
	assert.Equal(t, "alice", w.CreatedBy)

	require.NoError(t, f.groupSvc.UpdateWidget(ctx, "alice", "team-atlas", w.ID,
		entity.WidgetLayout{X: 1, Y: 1, W: 3, H: 2}, map[string]any{"title": "Sprint 2"}))

	widgets, err := f.groupSvc.ListWidgets(ctx, "alice", "team-atlas")
	require.NoError(t, err)
	require.Len(t, widgets, 1)
	assert.Equal(t, 3, widgets[0].Layout.W)
	assert.Equal(t, "Sprint 2", widgets[0].Settings["title"])

	require.NoError(t, f.groupSvc.RemoveWidget(ctx, "alice", "team-atlas", w.ID))

	widgets, err = f.groupSvc.ListWidgets(ctx, "alice", "team-atlas")
	require.NoError(t, err)
	assert.Empty(t, widgets)
}

func TestWidget_RequiresAccess(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.seedUser("alice", "Alice")
	f.seedGroup("team-atlas", "Team Atlas", "alice")

	_, err := f.groupSvc.AddWidget(ctx, "mallory", "team-atlas", usecase.AddWidgetInput{Key: "todo"})
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)

	_, err = f.groupSvc.ListWidgets(ctx, "mallory", "team-atlas")
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)
}
