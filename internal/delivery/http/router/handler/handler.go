// Package handler contains the HTTP handlers for the API surface.
package handler

import (
	"net/http"

	"focuspit/internal/delivery/http/middleware"
	"focuspit/internal/delivery/http/response"
	domainerrors "focuspit/internal/domain/errors"
	"focuspit/internal/domain/service"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// requestUID extracts the authenticated user's uid from the context. The
// auth middleware guarantees it on protected routes.
func requestUID(c echo.Context) (string, error) {
	uid, ok := c.Get(middleware.ContextKeyUID).(string)
	if !ok || uid == "" {
		return "", response.Unauthorized(c, "INVALID_TOKEN", "User ID missing from token")
	}

	return uid, nil
}

// requestIdentity extracts the verified identity from the context.
func requestIdentity(c echo.Context) (*service.Identity, error) {
	identity, ok := c.Get(middleware.ContextKeyIdentity).(*service.Identity)
	if !ok || identity == nil {
		return nil, response.Unauthorized(c, "INVALID_TOKEN", "Identity missing from token")
	}

	return identity, nil
}

// handleAppError maps domain errors to API responses. Anything that is not
// an AppError bubbles up to the central error handler.
func handleAppError(c echo.Context, err error) error {
	var appErr domainerrors.AppError
	if errors.As(err, &appErr) {
		return response.Error(c, appErr.HTTPCode(), appErr.ErrorCode(), appErr.Message(), appErr.Details())
	}

	return errors.WithStack(err)
}

// HealthCheck is a simple handler to check if the service is up.
func HealthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
