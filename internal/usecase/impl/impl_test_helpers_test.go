package impl

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"focuspit/config"
	"focuspit/internal/domain/entity"
	"focuspit/internal/domain/repository"
	"focuspit/internal/domain/service"
	"focuspit/internal/infra/persistence/memory"
	"focuspit/internal/usecase"
)

// stubPresence is an in-memory PresenceService for tests.
type stubPresence struct {
	mu     sync.Mutex
	online map[string]bool
}

func newStubPresence() *stubPresence {
	return &stubPresence{online: make(map[string]bool)}
}

func (p *stubPresence) SetOnline(_ context.Context, uid string, _ time.Duration) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.online[uid] = true

	return nil
}

func (p *stubPresence) SetOffline(_ context.Context, uid string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.online, uid)

	return nil
}

func (p *stubPresence) IsOnline(_ context.Context, uid string) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.online[uid], nil
}

func (p *stubPresence) OnlineStatus(_ context.Context, uids []string) (map[string]bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	status := make(map[string]bool, len(uids))
	for _, uid := range uids {
		status[uid] = p.online[uid]
	}

	return status, nil
}

func (p *stubPresence) Close() error { return nil }

// stubIdentity resolves identities from a fixed email map.
type stubIdentity struct {
	byEmail map[string]*service.Identity
}

func (s *stubIdentity) VerifyToken(_ context.Context, _ string) (*service.Identity, error) {
	return nil, repository.ErrUserNotFound
}

func (s *stubIdentity) LookupByEmail(_ context.Context, email string) (*service.Identity, error) {
	identity, ok := s.byEmail[email]
	if !ok {
		return nil, repository.ErrUserNotFound
	}

	return identity, nil
}

// stubQRCode returns a fixed payload.
type stubQRCode struct{}

func (s *stubQRCode) GenerateInviteQR(groupID string) ([]byte, error) {
	return []byte("qr:" + groupID), nil
}

func (s *stubQRCode) ParseInviteQR(qrData string) (string, error) {
	return qrData, nil
}

// alertCall records one SendNotification delivery.
type alertCall struct {
	ToUID string
	Title string
	Body  string
	Data  map[string]string
}

// stubSink records alert traffic and serves a fixed permission.
type stubSink struct {
	mu                 sync.Mutex
	permission         service.AlertPermission
	permissionRequests int
	sent               []alertCall
	overlay            []bool
	iconCounts         []int
}

func newStubSink(permission service.AlertPermission) *stubSink {
	return &stubSink{permission: permission}
}

func (s *stubSink) RequestPermission(_ context.Context) (service.AlertPermission, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.permissionRequests++

	return s.permission, nil
}

func (s *stubSink) SendNotification(_ context.Context, toUID, title, body string, data map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, alertCall{ToUID: toUID, Title: title, Body: body, Data: data})

	return nil
}

func (s *stubSink) UpdateOverlayBadge(_ context.Context, hasUnread bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.overlay = append(s.overlay, hasUnread)

	return nil
}

func (s *stubSink) UpdateAppIcon(_ context.Context, count int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.iconCounts = append(s.iconCounts, count)

	return nil
}

func (s *stubSink) sentCalls() []alertCall {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]alertCall(nil), s.sent...)
}

func (s *stubSink) requests() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.permissionRequests
}

// stubPublisher records broadcast events.
type stubPublisher struct {
	mu     sync.Mutex
	events []*service.BroadcastEvent
}

func (p *stubPublisher) PublishBroadcastEvent(_ context.Context, event *service.BroadcastEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)

	return nil
}

func (p *stubPublisher) Close() error { return nil }

// fixture wires every service onto one in-memory store.
type fixture struct {
	store         *memory.Store
	users         repository.UserRepository
	groups        repository.GroupRepository
	memberships   repository.MembershipRepository
	notifications repository.NotificationRepository
	widgets       repository.WidgetRepository

	presence  *stubPresence
	identity  *stubIdentity
	sink      *stubSink
	publisher *stubPublisher

	userSvc         usecase.UserUsecase
	groupSvc        usecase.GroupUsecase
	membershipSvc   usecase.MembershipUsecase
	notificationSvc usecase.NotificationUsecase
	feedSvc         usecase.FeedUsecase
}

func newFixture() *fixture {
	store := memory.NewStore()
	f := &fixture{
		store:         store,
		users:         memory.NewUserRepository(store),
		groups:        memory.NewGroupRepository(store),
		memberships:   memory.NewMembershipRepository(store),
		notifications: memory.NewNotificationRepository(store),
		widgets:       memory.NewWidgetRepository(store),
		presence:      newStubPresence(),
		identity:      &stubIdentity{byEmail: make(map[string]*service.Identity)},
		sink:          newStubSink(service.AlertPermissionGranted),
		publisher:     &stubPublisher{},
	}

	cfg := &config.Config{}
	logger := slog.Default()

	f.userSvc = NewUserService(cfg, f.users, f.presence)
	f.groupSvc = NewGroupService(cfg, f.groups, f.memberships, f.widgets, f.notifications, f.users)
	f.membershipSvc = NewMembershipService(f.memberships, f.groups, f.users, f.notifications, f.identity, f.presence, &stubQRCode{})
	f.notificationSvc = NewNotificationService(f.notifications, f.memberships, f.users, memory.NewTransactionManager(store), f.publisher, logger)
	f.feedSvc = NewFeedService(f.notifications, f.sink, logger)

	return f
}

// seedUser creates a user document directly.
func (f *fixture) seedUser(uid, name string) *entity.User {
	u := &entity.User{UID: uid, Email: uid + "@example.com", Name: name, Slug: uid}
	if err := f.users.Create(context.Background(), u); err != nil {
		panic(err)
	}

	return u
}

// seedGroup creates a group with an active owner membership.
func (f *fixture) seedGroup(id, name, ownerUID string) *entity.Group {
	ctx := context.Background()
	g := &entity.Group{ID: id, Slug: id, Name: name, Status: entity.GroupStatusActive, OwnerUID: ownerUID}
	if err := f.groups.Create(ctx, g); err != nil {
		panic(err)
	}
	m := &entity.Membership{
		GroupID:   id,
		UID:       ownerUID,
		Owner:     true,
		Admin:     true,
		Status:    entity.MembershipStatusActive,
		InvitedBy: ownerUID,
	}
	if err := f.memberships.Upsert(ctx, m); err != nil {
		panic(err)
	}

	return g
}

// seedMember adds a member record to a group.
func (f *fixture) seedMember(groupID, uid string, admin bool, status entity.MembershipStatus) {
	m := &entity.Membership{
		GroupID: groupID,
		UID:     uid,
		Admin:   admin,
		Status:  status,
	}
	if err := f.memberships.Upsert(context.Background(), m); err != nil {
		panic(err)
	}
}
