package impl

import (
	"context"

	"focuspit/internal/domain/entity"
	domainerrors "focuspit/internal/domain/errors"
	"focuspit/internal/domain/repository"
	"focuspit/internal/errors"
)

// requireAccess loads the caller's membership and verifies dashboard access.
// A missing record and a pending one are both forbidden; the caller learns
// nothing about whether the group exists.
func requireAccess(ctx context.Context, repo repository.MembershipRepository, groupID, uid string) (*entity.Membership, error) {
	m, err := repo.Find(ctx, groupID, uid)
	if err != nil {
		if errors.Is(err, repository.ErrMembershipNotFound) {
			return nil, domainerrors.ErrForbidden
		}

		return nil, err
	}
	if !m.HasAccess() {
		return nil, domainerrors.ErrForbidden
	}

	return m, nil
}

// requireManager verifies the caller may invite, remove, and change roles.
func requireManager(ctx context.Context, repo repository.MembershipRepository, groupID, uid string) (*entity.Membership, error) {
	m, err := requireAccess(ctx, repo, groupID, uid)
	if err != nil {
		return nil, err
	}
	if !m.CanManageMembers() {
		return nil, domainerrors.ErrNotGroupAdmin
	}

	return m, nil
}

// groupNotification builds a notification about groupID addressed to toUID,
// with actor and group names denormalized for rendering.
func groupNotification(kind entity.NotificationType, toUID string, actor *entity.User, group *entity.Group) *entity.Notification {
	return &entity.Notification{
		ToUID:  toUID,
		Type:   kind,
		Status: entity.NotificationStatusPending,
		Data: entity.NotificationData{
			FromUID:   actor.UID,
			FromName:  actor.Name,
			GroupID:   group.ID,
			GroupName: group.Name,
		},
	}
}
