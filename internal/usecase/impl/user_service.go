// Package impl contains the implementations of the usecase interfaces.
package impl

import (
	"context"
	"slices"
	"strings"
	"time"

	"focuspit/config"
	"focuspit/internal/domain/entity"
	domainerrors "focuspit/internal/domain/errors"
	"focuspit/internal/domain/repository"
	"focuspit/internal/domain/service"
	"focuspit/internal/errors"
	"focuspit/internal/slug"
	"focuspit/internal/usecase"
)

type userService struct {
	userRepo    repository.UserRepository
	presence    service.PresenceService
	slugAlloc   *slug.Allocator
	presenceTTL time.Duration
}

// NewUserService creates a new user service instance
func NewUserService(
	cfg *config.Config,
	userRepo repository.UserRepository,
	presence service.PresenceService,
) usecase.UserUsecase {
	maxAttempts := 0
	if cfg.Slug != nil {
		maxAttempts = cfg.Slug.MaxAttempts
	}

	presenceTTL := usecase.DefaultPresenceTTL
	if cfg.Redis != nil && cfg.Redis.PresenceTTL > 0 {
		presenceTTL = cfg.Redis.PresenceTTL
	}

	return &userService{
		userRepo:    userRepo,
		presence:    presence,
		slugAlloc:   slug.NewAllocator(maxAttempts),
		presenceTTL: presenceTTL,
	}
}

// EnsureUser returns the user document for a verified identity, creating it
// on first sign-in. The slug is allocated exactly once here and never
// reassigned, even if the display name changes later.
func (s *userService) EnsureUser(ctx context.Context, identity *service.Identity) (*entity.User, error) {
	user, err := s.userRepo.FindByUID(ctx, identity.UID)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, err
	}

	baseName := identity.Name
	if baseName == "" {
		baseName, _, _ = strings.Cut(identity.Email, "@")
	}

	userSlug, err := s.slugAlloc.Allocate(ctx, baseName, s.userRepo.SlugExists)
	if err != nil {
		if errors.Is(err, slug.ErrExhausted) {
			return nil, domainerrors.ErrSlugExhausted
		}

		return nil, err
	}

	user = &entity.User{
		UID:      identity.UID,
		Email:    identity.Email,
		Name:     identity.Name,
		Slug:     userSlug,
		PhotoURL: identity.PhotoURL,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, domainerrors.ErrUserCreationFailed.WrapMessage(err.Error())
	}

	return user, nil
}

func (s *userService) GetUser(ctx context.Context, uid string) (*entity.User, error) {
	user, err := s.userRepo.FindByUID(ctx, uid)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrUserNotFound
		}

		return nil, err
	}

	return user, nil
}

func (s *userService) UpdateProfile(ctx context.Context, uid string, input usecase.UpdateProfileInput) (*entity.User, error) {
	user, err := s.GetUser(ctx, uid)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		user.Name = *input.Name
	}
	if input.PhotoURL != nil {
		user.PhotoURL = *input.PhotoURL
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *userService) GrantStamp(ctx context.Context, uid, stamp string) error {
	user, err := s.GetUser(ctx, uid)
	if err != nil {
		return err
	}

	if slices.Contains(user.Stamps, stamp) {
		return nil
	}

	user.Stamps = append(user.Stamps, stamp)

	return s.userRepo.Update(ctx, user)
}

func (s *userService) Heartbeat(ctx context.Context, uid string) error {
	return s.presence.SetOnline(ctx, uid, s.presenceTTL)
}

func (s *userService) GoOffline(ctx context.Context, uid string) error {
	return s.presence.SetOffline(ctx, uid)
}
