package impl

import (
	"context"
	"sort"

	"focuspit/config"
	"focuspit/internal/domain/entity"
	domainerrors "focuspit/internal/domain/errors"
	"focuspit/internal/domain/repository"
	"focuspit/internal/errors"
	"focuspit/internal/slug"
	"focuspit/internal/usecase"
)

type groupService struct {
	groupRepo        repository.GroupRepository
	membershipRepo   repository.MembershipRepository
	widgetRepo       repository.WidgetRepository
	notificationRepo repository.NotificationRepository
	userRepo         repository.UserRepository
	slugAlloc        *slug.Allocator
}

// NewGroupService creates a new group service instance
func NewGroupService(
	cfg *config.Config,
	groupRepo repository.GroupRepository,
	membershipRepo repository.MembershipRepository,
	widgetRepo repository.WidgetRepository,
	notificationRepo repository.NotificationRepository,
	userRepo repository.UserRepository,
) usecase.GroupUsecase {
	maxAttempts := 0
	if cfg.Slug != nil {
		maxAttempts = cfg.Slug.MaxAttempts
	}

	return &groupService{
		groupRepo:        groupRepo,
		membershipRepo:   membershipRepo,
		widgetRepo:       widgetRepo,
		notificationRepo: notificationRepo,
		userRepo:         userRepo,
		slugAlloc:        slug.NewAllocator(maxAttempts),
	}
}

// CreateGroup allocates a slug from the group name and creates the group
// with that slug as its document id. The create-if-absent write makes the id
// the uniqueness authority, so a lost race surfaces as a conflict instead of
// a duplicate.
func (s *groupService) CreateGroup(ctx context.Context, ownerUID string, input usecase.CreateGroupInput) (*entity.Group, error) {
	groupSlug, err := s.slugAlloc.Allocate(ctx, input.Name, s.groupRepo.Exists)
	if err != nil {
		if errors.Is(err, slug.ErrExhausted) {
			return nil, domainerrors.ErrSlugExhausted
		}

		return nil, err
	}

	group := &entity.Group{
		ID:       groupSlug,
		Slug:     groupSlug,
		Name:     input.Name,
		PhotoURL: input.PhotoURL,
		Status:   entity.GroupStatusActive,
		OwnerUID: ownerUID,
	}
	if err := s.groupRepo.Create(ctx, group); err != nil {
		if errors.Is(err, repository.ErrGroupAlreadyExists) {
			return nil, domainerrors.ErrConflict
		}

		return nil, err
	}

	owner := &entity.Membership{
		GroupID:   group.ID,
		UID:       ownerUID,
		Owner:     true,
		Admin:     true,
		Status:    entity.MembershipStatusActive,
		InvitedBy: ownerUID,
	}
	if err := s.membershipRepo.Upsert(ctx, owner); err != nil {
		return nil, err
	}

	return group, nil
}

func (s *groupService) GetGroup(ctx context.Context, uid, groupID string) (*entity.Group, error) {
	if _, err := requireAccess(ctx, s.membershipRepo, groupID, uid); err != nil {
		return nil, err
	}

	group, err := s.groupRepo.FindByID(ctx, groupID)
	if err != nil {
		if errors.Is(err, repository.ErrGroupNotFound) {
			return nil, domainerrors.ErrGroupNotFound
		}

		return nil, err
	}

	return group, nil
}

func (s *groupService) ListGroups(ctx context.Context, uid string) ([]*entity.Group, error) {
	memberships, err := s.membershipRepo.FindByUser(ctx, uid)
	if err != nil {
		return nil, err
	}

	groups := make([]*entity.Group, 0, len(memberships))
	for _, m := range memberships {
		if !m.HasAccess() {
			continue
		}

		group, err := s.groupRepo.FindByID(ctx, m.GroupID)
		if err != nil {
			if errors.Is(err, repository.ErrGroupNotFound) {
				continue // membership outlived its group
			}

			return nil, err
		}
		if group.Status != entity.GroupStatusActive {
			continue
		}
		groups = append(groups, group)
	}

	sort.SliceStable(groups, func(i, j int) bool {
		if groups[i].Order != groups[j].Order {
			return groups[i].Order < groups[j].Order
		}

		return groups[i].CreatedAt.Before(groups[j].CreatedAt)
	})

	return groups, nil
}

func (s *groupService) WatchGroups(ctx context.Context, uid string) (<-chan repository.Snapshot[*entity.Group], error) {
	return s.groupRepo.WatchActiveByMember(ctx, uid)
}

func (s *groupService) UpdateGroup(ctx context.Context, uid, groupID string, input usecase.UpdateGroupInput) (*entity.Group, error) {
	if _, err := requireManager(ctx, s.membershipRepo, groupID, uid); err != nil {
		return nil, err
	}

	group, err := s.groupRepo.FindByID(ctx, groupID)
	if err != nil {
		if errors.Is(err, repository.ErrGroupNotFound) {
			return nil, domainerrors.ErrGroupNotFound
		}

		return nil, err
	}

	if input.Name != nil {
		group.Name = *input.Name
	}
	if input.PhotoURL != nil {
		group.PhotoURL = *input.PhotoURL
	}

	if err := s.groupRepo.Update(ctx, group); err != nil {
		return nil, err
	}

	return group, nil
}

func (s *groupService) SetGroupOrder(ctx context.Context, uid, groupID string, order int) error {
	if _, err := requireAccess(ctx, s.membershipRepo, groupID, uid); err != nil {
		return err
	}

	return s.groupRepo.SetOrder(ctx, groupID, order)
}

func (s *groupService) ArchiveGroup(ctx context.Context, uid, groupID string) error {
	group, err := s.requireOwner(ctx, uid, groupID)
	if err != nil {
		return err
	}

	group.Status = entity.GroupStatusArchived

	return s.groupRepo.Update(ctx, group)
}

// DeleteGroup removes the group with its widgets and memberships, then sends
// a group_removed notification to every other member who had access.
// Notification failures do not undo the delete; they are collected and
// reported.
func (s *groupService) DeleteGroup(ctx context.Context, uid, groupID string) error {
	group, err := s.requireOwner(ctx, uid, groupID)
	if err != nil {
		return err
	}

	members, err := s.membershipRepo.FindByGroup(ctx, groupID)
	if err != nil {
		return err
	}

	actor, err := s.userRepo.FindByUID(ctx, uid)
	if err != nil {
		return err
	}

	if err := s.widgetRepo.DeleteByGroup(ctx, groupID); err != nil {
		return err
	}
	if err := s.membershipRepo.DeleteByGroup(ctx, groupID); err != nil {
		return err
	}
	if err := s.groupRepo.Delete(ctx, groupID); err != nil {
		return err
	}

	var notifyErrs []error
	for _, m := range members {
		if m.UID == uid || !m.HasAccess() {
			continue
		}
		n := groupNotification(entity.NotificationTypeGroupRemoved, m.UID, actor, group)
		if err := s.notificationRepo.Create(ctx, n); err != nil {
			notifyErrs = append(notifyErrs, errors.Wrapf(err, "notify member %s", m.UID))
		}
	}

	return errors.Join(notifyErrs...)
}

func (s *groupService) requireOwner(ctx context.Context, uid, groupID string) (*entity.Group, error) {
	m, err := requireAccess(ctx, s.membershipRepo, groupID, uid)
	if err != nil {
		return nil, err
	}
	if !m.Owner {
		return nil, domainerrors.ErrForbidden
	}

	group, err := s.groupRepo.FindByID(ctx, groupID)
	if err != nil {
		if errors.Is(err, repository.ErrGroupNotFound) {
			return nil, domainerrors.ErrGroupNotFound
		}

		return nil, err
	}

	return group, nil
}

func (s *groupService) AddWidget(ctx context.Context, uid, groupID string, input usecase.AddWidgetInput) (*entity.WidgetInstance, error) {
	if _, err := requireAccess(ctx, s.membershipRepo, groupID, uid); err != nil {
		return nil, err
	}

	w := &entity.WidgetInstance{
		GroupID:   groupID,
		Key:       input.Key,
		Layout:    input.Layout,
		Settings:  input.Settings,
		CreatedBy: uid,
	}
	if err := s.widgetRepo.Create(ctx, w); err != nil {
		return nil, err
	}

	return w, nil
}

func (s *groupService) ListWidgets(ctx context.Context, uid, groupID string) ([]*entity.WidgetInstance, error) {
	if _, err := requireAccess(ctx, s.membershipRepo, groupID, uid); err != nil {
		return nil, err
	}

	return s.widgetRepo.FindByGroup(ctx, groupID)
}

func (s *groupService) UpdateWidget(ctx context.Context, uid, groupID, widgetID string, layout entity.WidgetLayout, settings map[string]any) error {
	if _, err := requireAccess(ctx, s.membershipRepo, groupID, uid); err != nil {
		return err
	}

	w := &entity.WidgetInstance{
		ID:       widgetID,
		GroupID:  groupID,
		Layout:   layout,
		Settings: settings,
	}
	if err := s.widgetRepo.Update(ctx, w); err != nil {
		if errors.Is(err, repository.ErrWidgetNotFound) {
			return domainerrors.ErrNotFound
		}

		return err
	}

	return nil
}

func (s *groupService) RemoveWidget(ctx context.Context, uid, groupID, widgetID string) error {
	if _, err := requireAccess(ctx, s.membershipRepo, groupID, uid); err != nil {
		return err
	}

	return s.widgetRepo.Delete(ctx, groupID, widgetID)
}
