package middleware

import (
	"net/http"
	"strings"

	"focuspit/internal/domain/service"

	"github.com/labstack/echo/v4"
)

// Context keys set by Authenticate for downstream handlers.
const (
	ContextKeyUID      = "uid"
	ContextKeyIdentity = "identity"
)

// AuthMiddleware validates the ID token issued by the identity provider.
// Sign-in happens on the client; the server only ever sees the token.
type AuthMiddleware struct {
	identitySvc service.IdentityService
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(identitySvc service.IdentityService) *AuthMiddleware {
	return &AuthMiddleware{identitySvc: identitySvc}
}

// Authenticate is the core middleware function that verifies the Bearer ID
// token and puts the asserted identity on the request context.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Authorization header is missing"})
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid token format, must be Bearer token"})
		}

		identity, err := m.identitySvc.VerifyToken(c.Request().Context(), tokenString)
		if err != nil {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid or expired token"})
		}

		c.Set(ContextKeyUID, identity.UID)
		c.Set(ContextKeyIdentity, identity)

		return next(c)
	}
}
