package service

import (
	"context"
)

// Identity is the profile the authentication provider vouches for. The UID is
// an opaque, stable identifier; everything else is display data.
type Identity struct {
	UID           string // Provider-assigned stable user id.
	Email         string // User's email address.
	Name          string // User's display name.
	PhotoURL      string // URL to the user's profile picture.
	EmailVerified bool   // Whether the provider verified the email.
}

// IdentityService defines the interface for the hosted authentication
// provider. Sign-in itself happens on the client; the core only verifies the
// resulting token and looks identities up.
type IdentityService interface {
	// VerifyToken verifies a client-supplied ID token and returns the
	// identity it asserts.
	VerifyToken(ctx context.Context, idToken string) (*Identity, error)

	// LookupByEmail resolves an identity by email, used when inviting a
	// user who is addressed by email rather than uid.
	LookupByEmail(ctx context.Context, email string) (*Identity, error)
}
