package auth

import (
	"context"
	"log/slog"

	domainerrors "focuspit/internal/domain/errors"
	"focuspit/internal/domain/service"
	"focuspit/internal/errors"

	firebase "firebase.google.com/go/v4"
	firebaseauth "firebase.google.com/go/v4/auth"
)

// firebaseIdentityService verifies client-minted ID tokens against Firebase
// Auth and resolves user records by email for invites.
type firebaseIdentityService struct {
	client *firebaseauth.Client
	logger *slog.Logger
}

// NewFirebaseIdentityService creates an IdentityService backed by Firebase Auth.
func NewFirebaseIdentityService(ctx context.Context, app *firebase.App, logger *slog.Logger) (service.IdentityService, error) {
	client, err := app.Auth(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get auth client")
	}

	return &firebaseIdentityService{client: client, logger: logger}, nil
}

func (s *firebaseIdentityService) VerifyToken(ctx context.Context, idToken string) (*service.Identity, error) {
	token, err := s.client.VerifyIDToken(ctx, idToken)
	if err != nil {
		s.logger.Debug("token verification failed", slog.String("error", err.Error()))

		return nil, domainerrors.ErrTokenInvalid
	}

	identity := &service.Identity{UID: token.UID}
	if v, ok := token.Claims["email"].(string); ok {
		identity.Email = v
	}
	if v, ok := token.Claims["name"].(string); ok {
		identity.Name = v
	}
	if v, ok := token.Claims["picture"].(string); ok {
		identity.PhotoURL = v
	}
	if v, ok := token.Claims["email_verified"].(bool); ok {
		identity.EmailVerified = v
	}

	return identity, nil
}

func (s *firebaseIdentityService) LookupByEmail(ctx context.Context, email string) (*service.Identity, error) {
	record, err := s.client.GetUserByEmail(ctx, email)
	if err != nil {
		if firebaseauth.IsUserNotFound(err) {
			return nil, domainerrors.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to look up user by email")
	}

	return &service.Identity{
		UID:           record.UID,
		Email:         record.Email,
		Name:          record.DisplayName,
		PhotoURL:      record.PhotoURL,
		EmailVerified: record.EmailVerified,
	}, nil
}
