package impl

import (
	"context"
	"sort"

	"focuspit/internal/domain/entity"
	domainerrors "focuspit/internal/domain/errors"
	"focuspit/internal/domain/repository"
	"focuspit/internal/domain/service"
	"focuspit/internal/errors"
	"focuspit/internal/usecase"
)

type membershipService struct {
	membershipRepo   repository.MembershipRepository
	groupRepo        repository.GroupRepository
	userRepo         repository.UserRepository
	notificationRepo repository.NotificationRepository
	identity         service.IdentityService
	presence         service.PresenceService
	qrcode           service.QRCodeService
}

// NewMembershipService creates a new membership service instance
func NewMembershipService(
	membershipRepo repository.MembershipRepository,
	groupRepo repository.GroupRepository,
	userRepo repository.UserRepository,
	notificationRepo repository.NotificationRepository,
	identity service.IdentityService,
	presence service.PresenceService,
	qrcode service.QRCodeService,
) usecase.MembershipUsecase {
	return &membershipService{
		membershipRepo:   membershipRepo,
		groupRepo:        groupRepo,
		userRepo:         userRepo,
		notificationRepo: notificationRepo,
		identity:         identity,
		presence:         presence,
		qrcode:           qrcode,
	}
}

// InviteByUID creates a pending membership for the invitee and a group_invite
// notification. The membership record is keyed by (group, uid), so repeated
// or concurrent invites converge on one record; a member who already has
// access is left untouched.
func (s *membershipService) InviteByUID(ctx context.Context, actorUID, groupID, inviteeUID string) error {
	actor, group, err := s.managerAndGroup(ctx, actorUID, groupID)
	if err != nil {
		return err
	}

	invitee, err := s.userRepo.FindByUID(ctx, inviteeUID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return domainerrors.ErrUserNotFound
		}

		return err
	}

	existing, err := s.membershipRepo.Find(ctx, groupID, invitee.UID)
	if err != nil && !errors.Is(err, repository.ErrMembershipNotFound) {
		return err
	}
	if existing != nil && existing.HasAccess() {
		return nil
	}

	m := &entity.Membership{
		GroupID:   groupID,
		UID:       invitee.UID,
		Status:    entity.MembershipStatusPending,
		InvitedBy: actorUID,
	}
	if err := s.membershipRepo.Upsert(ctx, m); err != nil {
		return err
	}

	n := groupNotification(entity.NotificationTypeGroupInvite, invitee.UID, actor, group)

	return s.notificationRepo.Create(ctx, n)
}

func (s *membershipService) InviteByEmail(ctx context.Context, actorUID, groupID, email string) error {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err == nil {
		return s.InviteByUID(ctx, actorUID, groupID, user.UID)
	}
	if !errors.Is(err, repository.ErrUserNotFound) {
		return err
	}

	// No local document yet; the auth provider may still know the account.
	identity, err := s.identity.LookupByEmail(ctx, email)
	if err != nil {
		return domainerrors.ErrUserNotFound
	}

	return s.InviteByUID(ctx, actorUID, groupID, identity.UID)
}

func (s *membershipService) ListMembers(ctx context.Context, actorUID, groupID string) ([]*usecase.MemberInfo, error) {
	if _, err := requireAccess(ctx, s.membershipRepo, groupID, actorUID); err != nil {
		return nil, err
	}

	memberships, err := s.membershipRepo.FindByGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(memberships, func(i, j int) bool {
		return memberships[i].CreatedAt.Before(memberships[j].CreatedAt)
	})

	uids := make([]string, len(memberships))
	for i, m := range memberships {
		uids[i] = m.UID
	}

	online, err := s.presence.OnlineStatus(ctx, uids)
	if err != nil {
		return nil, err
	}

	members := make([]*usecase.MemberInfo, 0, len(memberships))
	for _, m := range memberships {
		info := &usecase.MemberInfo{
			Membership: m,
			Online:     online[m.UID],
		}
		user, err := s.userRepo.FindByUID(ctx, m.UID)
		if err == nil {
			info.User = user
		} else if !errors.Is(err, repository.ErrUserNotFound) {
			return nil, err
		}
		members = append(members, info)
	}

	return members, nil
}

func (s *membershipService) RemoveMember(ctx context.Context, actorUID, groupID, uid string) error {
	actor, group, err := s.managerAndGroup(ctx, actorUID, groupID)
	if err != nil {
		return err
	}

	target, err := s.membershipRepo.Find(ctx, groupID, uid)
	if err != nil {
		if errors.Is(err, repository.ErrMembershipNotFound) {
			return domainerrors.ErrMembershipNotFound
		}

		return err
	}
	if target.Owner {
		return domainerrors.ErrOwnerImmutable
	}

	if err := s.membershipRepo.Delete(ctx, groupID, uid); err != nil {
		return err
	}

	// A pending invitee never saw the group; no removal notice for them.
	if target.Status != entity.MembershipStatusActive {
		return nil
	}

	n := groupNotification(entity.NotificationTypeGroupRemoved, uid, actor, group)

	return s.notificationRepo.Create(ctx, n)
}

func (s *membershipService) LeaveGroup(ctx context.Context, uid, groupID string) error {
	m, err := s.membershipRepo.Find(ctx, groupID, uid)
	if err != nil {
		if errors.Is(err, repository.ErrMembershipNotFound) {
			return domainerrors.ErrMembershipNotFound
		}

		return err
	}
	if m.Owner {
		return domainerrors.ErrOwnerImmutable
	}

	return s.membershipRepo.Delete(ctx, groupID, uid)
}

func (s *membershipService) SetAdmin(ctx context.Context, actorUID, groupID, uid string, admin bool) error {
	actor, group, err := s.managerAndGroup(ctx, actorUID, groupID)
	if err != nil {
		return err
	}

	if actorUID == uid {
		return domainerrors.ErrSelfAdminChange
	}

	target, err := s.membershipRepo.Find(ctx, groupID, uid)
	if err != nil {
		if errors.Is(err, repository.ErrMembershipNotFound) {
			return domainerrors.ErrMembershipNotFound
		}

		return err
	}
	if target.Owner {
		return domainerrors.ErrOwnerImmutable
	}
	if target.Admin == admin {
		return nil
	}

	if err := s.membershipRepo.SetAdmin(ctx, groupID, uid, admin); err != nil {
		return err
	}

	kind := entity.NotificationTypeAdminGranted
	if !admin {
		kind = entity.NotificationTypeAdminRevoked
	}
	n := groupNotification(kind, uid, actor, group)

	return s.notificationRepo.Create(ctx, n)
}

func (s *membershipService) GenerateInviteQR(ctx context.Context, actorUID, groupID string) ([]byte, error) {
	if _, _, err := s.managerAndGroup(ctx, actorUID, groupID); err != nil {
		return nil, err
	}

	return s.qrcode.GenerateInviteQR(groupID)
}

// managerAndGroup checks the actor's manage rights and loads the actor and
// group documents used to denormalize notification payloads.
func (s *membershipService) managerAndGroup(ctx context.Context, actorUID, groupID string) (*entity.User, *entity.Group, error) {
	if _, err := requireManager(ctx, s.membershipRepo, groupID, actorUID); err != nil {
		return nil, nil, err
	}

	actor, err := s.userRepo.FindByUID(ctx, actorUID)
	if err != nil {
		return nil, nil, err
	}

	group, err := s.groupRepo.FindByID(ctx, groupID)
	if err != nil {
		if errors.Is(err, repository.ErrGroupNotFound) {
			return nil, nil, domainerrors.ErrGroupNotFound
		}

		return nil, nil, err
	}

	return actor, group, nil
}
