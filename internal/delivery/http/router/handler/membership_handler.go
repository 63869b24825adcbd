package handler

import (
	"log/slog"
	"net/http"

	"focuspit/internal/delivery/http/response"
	"focuspit/internal/usecase"

	"github.com/labstack/echo/v4"
)

// MembershipHandler holds dependencies for membership-related handlers
type MembershipHandler struct {
	uc     usecase.MembershipUsecase
	logger *slog.Logger
}

// NewMembershipHandler is the constructor for MembershipHandler
func NewMembershipHandler(uc usecase.MembershipUsecase, logger *slog.Logger) *MembershipHandler {
	return &MembershipHandler{
		uc:     uc,
		logger: logger,
	}
}

// InviteMemberRequest represents the request body for inviting a member.
// Exactly one of uid or email addresses the invitee.
type InviteMemberRequest struct {
	UID   string `json:"uid,omitempty"`
	Email string `json:"email,omitempty" validate:"omitempty,email"`
}

// InviteMember invites a user to the group by uid or email
func (h *MembershipHandler) InviteMember(c echo.Context) error {
	actorUID, err := requestUID(c)
	if err != nil {
		return err
	}

	var req InviteMemberRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid invite input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	if (req.UID == "") == (req.Email == "") {
		return response.BadRequest(c, "VALIDATION_ERROR", "Exactly one of uid or email must be provided")
	}

	groupID := c.Param("groupID")
	if req.UID != "" {
		err = h.uc.InviteByUID(c.Request().Context(), actorUID, groupID, req.UID)
	} else {
		err = h.uc.InviteByEmail(c.Request().Context(), actorUID, groupID, req.Email)
	}
	if err != nil {
		return handleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, nil, "Invitation sent")
}

// ListMembers retrieves the group's members with profile and presence data
func (h *MembershipHandler) ListMembers(c echo.Context) error {
	actorUID, err := requestUID(c)
	if err != nil {
		return err
	}

	members, err := h.uc.ListMembers(c.Request().Context(), actorUID, c.Param("groupID"))
	if err != nil {
		return handleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, members, "")
}

// RemoveMember removes a member from the group
func (h *MembershipHandler) RemoveMember(c echo.Context) error {
	actorUID, err := requestUID(c)
	if err != nil {
		return err
	}

	if err := h.uc.RemoveMember(c.Request().Context(), actorUID, c.Param("groupID"), c.Param("uid")); err != nil {
		return handleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, nil, "Member removed")
}

// LeaveGroup removes the caller's own membership
func (h *MembershipHandler) LeaveGroup(c echo.Context) error {
	uid, err := requestUID(c)
	if err != nil {
		return err
	}

	if err := h.uc.LeaveGroup(c.Request().Context(), uid, c.Param("groupID")); err != nil {
		return handleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, nil, "Left group")
}

// SetAdminRequest represents the request body for changing the admin flag
type SetAdminRequest struct {
	Admin bool `json:"admin"`
}

// SetAdmin grants or revokes a member's admin flag
func (h *MembershipHandler) SetAdmin(c echo.Context) error {
	actorUID, err := requestUID(c)
	if err != nil {
		return err
	}

	var req SetAdminRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid admin input")
	}

	err = h.uc.SetAdmin(c.Request().Context(), actorUID, c.Param("groupID"), c.Param("uid"), req.Admin)
	if err != nil {
		return handleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, nil, "Admin flag updated")
}

// InviteQR renders a QR code encoding an invite link for the group
func (h *MembershipHandler) InviteQR(c echo.Context) error {
	actorUID, err := requestUID(c)
	if err != nil {
		return err
	}

	png, err := h.uc.GenerateInviteQR(c.Request().Context(), actorUID, c.Param("groupID"))
	if err != nil {
		return handleAppError(c, err)
	}

	return c.Blob(http.StatusOK, "image/png", png)
}
