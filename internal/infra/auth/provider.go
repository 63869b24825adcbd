package auth

import (
	"context"
	"log/slog"

	"focuspit/internal/domain/service"

	firebase "firebase.google.com/go/v4"
	"go.uber.org/fx"
)

// IdentityParams holds dependencies for IdentityService, injected by Fx
type IdentityParams struct {
	fx.In

	Ctx    context.Context
	Logger *slog.Logger
	App    *firebase.App `optional:"true"`
}

// NewIdentityService selects the identity backend. With a Firebase app wired
// in, tokens are verified against Firebase Auth; without one the local
// development verifier is used.
func NewIdentityService(params IdentityParams) (service.IdentityService, error) {
	if params.App == nil {
		return NewLocalIdentityService(params.Logger), nil
	}

	return NewFirebaseIdentityService(params.Ctx, params.App, params.Logger)
}
