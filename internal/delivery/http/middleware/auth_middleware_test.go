package middleware

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"focuspit/internal/domain/service"
	"focuspit/internal/infra/auth"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestContext(t *testing.T, authorization string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/groups", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	rec := httptest.NewRecorder()

	return e.NewContext(req, rec), rec
}

func silentLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestAuthenticate_SetsIdentity(t *testing.T) {
	m := NewAuthMiddleware(auth.NewLocalIdentityService(silentLogger()))

	c, _ := newTestContext(t, "Bearer uid:alice:alice@example.com")

	var gotUID string
	var gotIdentity *service.Identity
	next := func(c echo.Context) error {
		gotUID, _ = c.Get(ContextKeyUID).(string)
		gotIdentity, _ = c.Get(ContextKeyIdentity).(*service.Identity)

		return nil
	}

	require.NoError(t, m.Authenticate(next)(c))
	assert.Equal(t, "alice", gotUID)
	require.NotNil(t, gotIdentity)
	assert.Equal(t, "alice@example.com", gotIdentity.Email)
}

func TestAuthenticate_RejectsBadTokens(t *testing.T) {
	m := NewAuthMiddleware(auth.NewLocalIdentityService(silentLogger()))

	tests := []struct {
		name          string
		authorization string
	}{
		{name: "missing header", authorization: ""},
		{name: "not a bearer token", authorization: "Basic dXNlcjpwYXNz"},
		{name: "unverifiable token", authorization: "Bearer garbage"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, rec := newTestContext(t, tt.authorization)

			called := false
			next := func(c echo.Context) error {
				called = true

				return nil
			}

			require.NoError(t, m.Authenticate(next)(c))
			assert.False(t, called)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}
