package handler

import (
	"log/slog"
	"net/http"

	"focuspit/internal/delivery/http/response"
	"focuspit/internal/usecase"

	"github.com/labstack/echo/v4"
)

// UserHandler holds dependencies for account-related handlers
type UserHandler struct {
	uc     usecase.UserUsecase
	logger *slog.Logger
}

// NewUserHandler is the constructor for UserHandler
func NewUserHandler(uc usecase.UserUsecase, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		uc:     uc,
		logger: logger,
	}
}

// Session syncs the signed-in identity with the user store. On first sign-in
// the user document is created with a freshly allocated slug; afterwards the
// call just returns the document.
func (h *UserHandler) Session(c echo.Context) error {
	identity, err := requestIdentity(c)
	if err != nil {
		return err
	}

	user, err := h.uc.EnsureUser(c.Request().Context(), identity)
	if err != nil {
		return handleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, user, "Signed in")
}

// GetUser retrieves a user's public profile by uid
func (h *UserHandler) GetUser(c echo.Context) error {
	if _, err := requestUID(c); err != nil {
		return err
	}

	user, err := h.uc.GetUser(c.Request().Context(), c.Param("uid"))
	if err != nil {
		return handleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, user, "")
}

// UpdateProfile updates the caller's editable profile fields
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	uid, err := requestUID(c)
	if err != nil {
		return err
	}

	var req usecase.UpdateProfileInput
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid profile input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.uc.UpdateProfile(c.Request().Context(), uid, req)
	if err != nil {
		return handleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, user, "Profile updated")
}

// GrantStamp unlocks an achievement stamp for the caller
func (h *UserHandler) GrantStamp(c echo.Context) error {
	uid, err := requestUID(c)
	if err != nil {
		return err
	}

	stamp := c.Param("stamp")
	if stamp == "" {
		return response.BadRequest(c, "VALIDATION_ERROR", "stamp is required")
	}

	if err := h.uc.GrantStamp(c.Request().Context(), uid, stamp); err != nil {
		return handleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, nil, "Stamp granted")
}

// Heartbeat refreshes the caller's online marker
func (h *UserHandler) Heartbeat(c echo.Context) error {
	uid, err := requestUID(c)
	if err != nil {
		return err
	}

	if err := h.uc.Heartbeat(c.Request().Context(), uid); err != nil {
		return handleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, nil, "")
}

// GoOffline clears the caller's online marker immediately
func (h *UserHandler) GoOffline(c echo.Context) error {
	uid, err := requestUID(c)
	if err != nil {
		return err
	}

	if err := h.uc.GoOffline(c.Request().Context(), uid); err != nil {
		return handleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, nil, "")
}
