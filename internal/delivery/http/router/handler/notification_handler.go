package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"focuspit/internal/delivery/http/response"
	"focuspit/internal/usecase"

	"github.com/labstack/echo/v4"
)

// NotificationHandler holds dependencies for notification-related handlers
type NotificationHandler struct {
	uc     usecase.NotificationUsecase
	logger *slog.Logger
}

// NewNotificationHandler is the constructor for NotificationHandler
func NewNotificationHandler(uc usecase.NotificationUsecase, logger *slog.Logger) *NotificationHandler {
	return &NotificationHandler{
		uc:     uc,
		logger: logger,
	}
}

// Send validates and persists one notification addressed by the caller
func (h *NotificationHandler) Send(c echo.Context) error {
	uid, err := requestUID(c)
	if err != nil {
		return err
	}

	var req usecase.SendNotificationInput
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid notification input")
	}

	// The sender is always the authenticated caller, whatever the body says.
	req.Data.FromUID = uid

	notification, err := h.uc.Send(c.Request().Context(), req)
	if err != nil {
		return handleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, notification, "Notification sent")
}

// List retrieves the caller's notifications, newest-first
func (h *NotificationHandler) List(c echo.Context) error {
	uid, err := requestUID(c)
	if err != nil {
		return err
	}

	limit := 0 // no limit
	if limitStr := c.QueryParam("limit"); limitStr != "" {
		if parsedLimit, err := strconv.Atoi(limitStr); err == nil && parsedLimit > 0 {
			limit = parsedLimit
		}
	}

	notifications, err := h.uc.List(c.Request().Context(), uid, limit)
	if err != nil {
		return handleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, notifications, "")
}

// UnreadCount returns the caller's number of unread notifications
func (h *NotificationHandler) UnreadCount(c echo.Context) error {
	uid, err := requestUID(c)
	if err != nil {
		return err
	}

	count, err := h.uc.UnreadCount(c.Request().Context(), uid)
	if err != nil {
		return handleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, map[string]int{"unread_count": count}, "")
}

// MarkAsRead marks one of the caller's notifications read
func (h *NotificationHandler) MarkAsRead(c echo.Context) error {
	uid, err := requestUID(c)
	if err != nil {
		return err
	}

	if err := h.uc.MarkAsRead(c.Request().Context(), uid, c.Param("id")); err != nil {
		return handleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, nil, "Notification marked as read")
}

// MarkAllAsRead marks every unread notification of the caller read
func (h *NotificationHandler) MarkAllAsRead(c echo.Context) error {
	uid, err := requestUID(c)
	if err != nil {
		return err
	}

	if err := h.uc.MarkAllAsRead(c.Request().Context(), uid); err != nil {
		return handleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, nil, "All notifications marked as read")
}

// AcceptInvite accepts a pending group invite
func (h *NotificationHandler) AcceptInvite(c echo.Context) error {
	uid, err := requestUID(c)
	if err != nil {
		return err
	}

	if err := h.uc.AcceptInvite(c.Request().Context(), uid, c.Param("id")); err != nil {
		return handleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, nil, "Invitation accepted")
}

// RejectInvite rejects a pending group invite
func (h *NotificationHandler) RejectInvite(c echo.Context) error {
	uid, err := requestUID(c)
	if err != nil {
		return err
	}

	if err := h.uc.RejectInvite(c.Request().Context(), uid, c.Param("id")); err != nil {
		return handleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, nil, "Invitation rejected")
}

// BroadcastRequest represents the request body for a news broadcast
type BroadcastRequest struct {
	Text string `json:"text" validate:"required,min=1"`
}

// Broadcast sends a news notification to every user
func (h *NotificationHandler) Broadcast(c echo.Context) error {
	uid, err := requestUID(c)
	if err != nil {
		return err
	}

	var req BroadcastRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid broadcast input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.uc.Broadcast(c.Request().Context(), uid, req.Text); err != nil {
		return handleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, nil, "Broadcast sent")
}
