package impl

import (
	"context"
	"fmt"
	"log/slog"

	deliverycontext "focuspit/internal/delivery/context"
	"focuspit/internal/domain/entity"
	domainerrors "focuspit/internal/domain/errors"
	"focuspit/internal/domain/repository"
	"focuspit/internal/domain/service"
	"focuspit/internal/errors"
	"focuspit/internal/usecase"

	"github.com/google/uuid"
)

type notificationService struct {
	notificationRepo repository.NotificationRepository
	membershipRepo   repository.MembershipRepository
	userRepo         repository.UserRepository
	txManager        repository.TransactionManager
	publisher        service.EventPublisher
	logger           *slog.Logger
}

// NewNotificationService creates a new notification service instance
func NewNotificationService(
	notificationRepo repository.NotificationRepository,
	membershipRepo repository.MembershipRepository,
	userRepo repository.UserRepository,
	txManager repository.TransactionManager,
	publisher service.EventPublisher,
	logger *slog.Logger,
) usecase.NotificationUsecase {
	return &notificationService{
		notificationRepo: notificationRepo,
		membershipRepo:   membershipRepo,
		userRepo:         userRepo,
		txManager:        txManager,
		publisher:        publisher,
		logger:           logger,
	}
}

// Send validates and persists one notification. Validation failures are
// returned to the caller; a malformed notification is never silently dropped.
func (s *notificationService) Send(ctx context.Context, input usecase.SendNotificationInput) (*entity.Notification, error) {
	if err := validateNotification(input); err != nil {
		return nil, err
	}

	n := &entity.Notification{
		ToUID:  input.ToUID,
		Type:   input.Type,
		Status: entity.NotificationStatusPending,
		Data:   input.Data,
	}
	if err := s.notificationRepo.Create(ctx, n); err != nil {
		return nil, err
	}

	return n, nil
}

// validateNotification checks the per-type payload requirements.
func validateNotification(input usecase.SendNotificationInput) error {
	if input.ToUID == "" {
		return domainerrors.ErrValidationFailed.WithDetails("to_uid is required")
	}
	if !input.Type.Valid() {
		return domainerrors.ErrValidationFailed.WithDetails(fmt.Sprintf("unknown notification type: %s", input.Type))
	}
	if input.Data.FromUID == "" {
		return domainerrors.ErrValidationFailed.WithDetails("data.from_uid is required")
	}

	switch input.Type {
	case entity.NotificationTypeGroupInvite, entity.NotificationTypeAdminGranted,
		entity.NotificationTypeAdminRevoked, entity.NotificationTypeGroupRemoved:
		if input.Data.GroupID == "" {
			return domainerrors.ErrValidationFailed.WithDetails("data.group_id is required for group notifications")
		}
	case entity.NotificationTypeComment, entity.NotificationTypeReminder,
		entity.NotificationTypeTodoMention, entity.NotificationTypeNews:
		if input.Data.Text == "" {
			return domainerrors.ErrValidationFailed.WithDetails("data.text is required for text notifications")
		}
	}

	return nil
}

func (s *notificationService) List(ctx context.Context, uid string, limit int) ([]*entity.Notification, error) {
	return s.notificationRepo.FindByRecipient(ctx, uid, limit)
}

func (s *notificationService) UnreadCount(ctx context.Context, uid string) (int, error) {
	notifications, err := s.notificationRepo.FindByRecipient(ctx, uid, 0)
	if err != nil {
		return 0, err
	}

	count := 0
	for _, n := range notifications {
		if !n.Read {
			count++
		}
	}

	return count, nil
}

func (s *notificationService) MarkAsRead(ctx context.Context, uid, notificationID string) error {
	if _, err := s.ownedNotification(ctx, uid, notificationID); err != nil {
		return err
	}

	return s.notificationRepo.MarkRead(ctx, notificationID)
}

// MarkAllAsRead marks every unread notification of the caller read. A failed
// document does not stop the sweep; failures are joined and returned after
// the rest have been marked.
func (s *notificationService) MarkAllAsRead(ctx context.Context, uid string) error {
	notifications, err := s.notificationRepo.FindByRecipient(ctx, uid, 0)
	if err != nil {
		return err
	}

	var markErrs []error
	for _, n := range notifications {
		if n.Read {
			continue
		}
		if err := s.notificationRepo.MarkRead(ctx, n.ID); err != nil {
			markErrs = append(markErrs, errors.Wrapf(err, "mark %s", n.ID))
		}
	}

	return errors.Join(markErrs...)
}

// AcceptInvite moves the invite to accepted and the membership to active in
// one transaction. Either both documents change or neither does; there is no
// accepted-invite-without-membership state.
func (s *notificationService) AcceptInvite(ctx context.Context, uid, notificationID string) error {
	n, err := s.pendingInvite(ctx, uid, notificationID)
	if err != nil {
		return err
	}

	err = s.txManager.Execute(ctx, func(txRepoFactory repository.RepositoryFactory) error {
		if err := txRepoFactory.NewNotificationRepository().ResolveInvite(ctx, notificationID, entity.NotificationStatusAccepted); err != nil {
			return err
		}

		return txRepoFactory.NewMembershipRepository().SetStatus(ctx, n.Data.GroupID, uid, entity.MembershipStatusActive)
	})
	if err != nil {
		if errors.Is(err, repository.ErrInviteAlreadyResolved) {
			return domainerrors.ErrInviteResolved
		}
		if errors.Is(err, repository.ErrMembershipNotFound) {
			return domainerrors.ErrMembershipNotFound
		}

		return domainerrors.ErrTransactionFailed.WrapMessage(err.Error())
	}

	return nil
}

// RejectInvite resolves the invite notification without touching the pending
// membership record; a rejected invitee still shows as invited in member
// lists and can be re-invited or accepted later through a fresh invite.
func (s *notificationService) RejectInvite(ctx context.Context, uid, notificationID string) error {
	if _, err := s.pendingInvite(ctx, uid, notificationID); err != nil {
		return err
	}

	if err := s.notificationRepo.ResolveInvite(ctx, notificationID, entity.NotificationStatusRejected); err != nil {
		if errors.Is(err, repository.ErrInviteAlreadyResolved) {
			return domainerrors.ErrInviteResolved
		}

		return err
	}

	return nil
}

// Broadcast writes one news notification per user (fan-out on write) and
// publishes a broadcast event for downstream consumers. Per-recipient write
// failures are joined; the publish step is skipped only when nobody got the
// notification.
func (s *notificationService) Broadcast(ctx context.Context, actorUID, text string) error {
	actor, err := s.userRepo.FindByUID(ctx, actorUID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return domainerrors.ErrUserNotFound
		}

		return err
	}
	if !actor.Admin {
		return domainerrors.ErrForbidden
	}
	if text == "" {
		return domainerrors.ErrValidationFailed.WithDetails("text is required")
	}

	users, err := s.userRepo.FindAll(ctx)
	if err != nil {
		return err
	}

	var writeErrs []error
	recipients := make([]string, 0, len(users))
	for _, u := range users {
		n := &entity.Notification{
			ToUID:  u.UID,
			Type:   entity.NotificationTypeNews,
			Status: entity.NotificationStatusPending,
			Data: entity.NotificationData{
				FromUID:  actor.UID,
				FromName: actor.Name,
				Text:     text,
			},
		}
		if err := s.notificationRepo.Create(ctx, n); err != nil {
			writeErrs = append(writeErrs, errors.Wrapf(err, "notify %s", u.UID))

			continue
		}
		recipients = append(recipients, u.UID)
	}

	if len(recipients) > 0 {
		event := &service.BroadcastEvent{
			RequestID:    deliverycontext.GetRequestIDFromContext(ctx),
			BroadcastID:  uuid.New().String(),
			FromUID:      actor.UID,
			Text:         text,
			RecipientIDs: recipients,
		}
		if err := s.publisher.PublishBroadcastEvent(ctx, event); err != nil {
			// The notifications are already written; the event stream is
			// advisory.
			s.logger.Error("failed to publish broadcast event",
				slog.String("broadcast_id", event.BroadcastID),
				slog.Any("error", err),
			)
		}
	}

	return errors.Join(writeErrs...)
}

// ownedNotification loads a notification and verifies the caller is its
// recipient.
func (s *notificationService) ownedNotification(ctx context.Context, uid, notificationID string) (*entity.Notification, error) {
	n, err := s.notificationRepo.FindByID(ctx, notificationID)
	if err != nil {
		if errors.Is(err, repository.ErrNotificationNotFound) {
			return nil, domainerrors.ErrNotificationNotFound
		}

		return nil, err
	}
	if n.ToUID != uid {
		return nil, domainerrors.ErrNotRecipient
	}

	return n, nil
}

// pendingInvite loads a notification and verifies it is the caller's pending
// group invite.
func (s *notificationService) pendingInvite(ctx context.Context, uid, notificationID string) (*entity.Notification, error) {
	n, err := s.ownedNotification(ctx, uid, notificationID)
	if err != nil {
		return nil, err
	}
	if n.Type != entity.NotificationTypeGroupInvite {
		return nil, domainerrors.ErrNotInvite
	}
	if n.Status != entity.NotificationStatusPending {
		return nil, domainerrors.ErrInviteResolved
	}

	return n, nil
}
