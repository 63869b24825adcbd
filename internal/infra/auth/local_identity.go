package auth

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	domainerrors "focuspit/internal/domain/errors"
	"focuspit/internal/domain/service"
)

// localIdentityService is a development-only IdentityService. It accepts any
// token of the form "uid:<id>[:<email>]" and asserts it verbatim, so the full
// flow can run against the in-memory store without a Firebase project.
type localIdentityService struct {
	logger *slog.Logger
}

// NewLocalIdentityService creates the development identity service.
func NewLocalIdentityService(logger *slog.Logger) service.IdentityService {
	logger.Warn("using local identity service, tokens are NOT verified")

	return &localIdentityService{logger: logger}
}

func (s *localIdentityService) VerifyToken(_ context.Context, idToken string) (*service.Identity, error) {
	parts := strings.Split(idToken, ":")
	if len(parts) < 2 || parts[0] != "uid" || parts[1] == "" {
		return nil, domainerrors.ErrTokenInvalid
	}

	identity := &service.Identity{
		UID:           parts[1],
		Email:         fmt.Sprintf("%s@local.test", parts[1]),
		Name:          parts[1],
		EmailVerified: true,
	}
	if len(parts) > 2 && parts[2] != "" {
		identity.Email = parts[2]
	}

	return identity, nil
}

func (s *localIdentityService) LookupByEmail(_ context.Context, email string) (*service.Identity, error) {
	local, _, ok := strings.Cut(email, "@")
	if !ok || local == "" {
		return nil, domainerrors.ErrUserNotFound
	}

	return &service.Identity{
		UID:           local,
		Email:         email,
		Name:          local,
		EmailVerified: true,
	}, nil
}
