package handler

import (
	"log/slog"
	"net/http"

	"focuspit/internal/delivery/http/response"
	"focuspit/internal/domain/entity"
	"focuspit/internal/usecase"

	"github.com/labstack/echo/v4"
)

// GroupHandler holds dependencies for group and dashboard handlers
type GroupHandler struct {
	uc     usecase.GroupUsecase
	logger *slog.Logger
}

// NewGroupHandler is the constructor for GroupHandler
func NewGroupHandler(uc usecase.GroupUsecase, logger *slog.Logger) *GroupHandler {
	return &GroupHandler{
		uc:     uc,
		logger: logger,
	}
}

// CreateGroup creates a group owned by the caller
func (h *GroupHandler) CreateGroup(c echo.Context) error {
	uid, err := requestUID(c)
	if err != nil {
		return err
	}

	var req usecase.CreateGroupInput
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid group input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	group, err := h.uc.CreateGroup(c.Request().Context(), uid, req)
	if err != nil {
		return handleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, group, "Group created")
}

// ListGroups retrieves the caller's active groups in display order
func (h *GroupHandler) ListGroups(c echo.Context) error {
	uid, err := requestUID(c)
	if err != nil {
		return err
	}

	groups, err := h.uc.ListGroups(c.Request().Context(), uid)
	if err != nil {
		return handleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, groups, "")
}

// WatchGroups streams the caller's group list as server-sent events. Each
// store snapshot becomes one event carrying the full current list.
func (h *GroupHandler) WatchGroups(c echo.Context) error {
	uid, err := requestUID(c)
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	snapshots, err := h.uc.WatchGroups(ctx, uid)
	if err != nil {
		return handleAppError(c, err)
	}

	flusher, err := startSSE(c)
	if err != nil {
		return err
	}

	for snapshot := range snapshots {
		if err := writeSSE(c, flusher, "groups", snapshot.Docs); err != nil {
			h.logger.Debug("Group watch stream closed", slog.String("uid", uid), slog.Any("error", err))

			return nil
		}
	}

	return nil
}

// GetGroup retrieves a group the caller has access to
func (h *GroupHandler) GetGroup(c echo.Context) error {
	uid, err := requestUID(c)
	if err != nil {
		return err
	}

	group, err := h.uc.GetGroup(c.Request().Context(), uid, c.Param("groupID"))
	if err != nil {
		return handleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, group, "")
}

// UpdateGroup updates the group's editable fields
func (h *GroupHandler) UpdateGroup(c echo.Context) error {
	uid, err := requestUID(c)
	if err != nil {
		return err
	}

	var req usecase.UpdateGroupInput
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid group input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	group, err := h.uc.UpdateGroup(c.Request().Context(), uid, c.Param("groupID"), req)
	if err != nil {
		return handleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, group, "Group updated")
}

// SetGroupOrderRequest represents the request body for reordering a group
type SetGroupOrderRequest struct {
	Order int `json:"order" validate:"gte=0"`
}

// SetGroupOrder sets the group's position on the caller's dashboard
func (h *GroupHandler) SetGroupOrder(c echo.Context) error {
	uid, err := requestUID(c)
	if err != nil {
		return err
	}

	var req SetGroupOrderRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid order input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.uc.SetGroupOrder(c.Request().Context(), uid, c.Param("groupID"), req.Order); err != nil {
		return handleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, nil, "Group order updated")
}

// ArchiveGroup hides the group from dashboards without deleting it
func (h *GroupHandler) ArchiveGroup(c echo.Context) error {
	uid, err := requestUID(c)
	if err != nil {
		return err
	}

	if err := h.uc.ArchiveGroup(c.Request().Context(), uid, c.Param("groupID")); err != nil {
		return handleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, nil, "Group archived")
}

// DeleteGroup deletes the group with its memberships and widgets
func (h *GroupHandler) DeleteGroup(c echo.Context) error {
	uid, err := requestUID(c)
	if err != nil {
		return err
	}

	if err := h.uc.DeleteGroup(c.Request().Context(), uid, c.Param("groupID")); err != nil {
		return handleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, nil, "Group deleted")
}

// AddWidget places a widget on the group's dashboard
func (h *GroupHandler) AddWidget(c echo.Context) error {
	uid, err := requestUID(c)
	if err != nil {
		return err
	}

	var req usecase.AddWidgetInput
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid widget input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	widget, err := h.uc.AddWidget(c.Request().Context(), uid, c.Param("groupID"), req)
	if err != nil {
		return handleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, widget, "Widget added")
}

// ListWidgets retrieves the widgets on the group's dashboard
func (h *GroupHandler) ListWidgets(c echo.Context) error {
	uid, err := requestUID(c)
	if err != nil {
		return err
	}

	widgets, err := h.uc.ListWidgets(c.Request().Context(), uid, c.Param("groupID"))
	if err != nil {
		return handleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, widgets, "")
}

// UpdateWidgetRequest represents the request body for updating a widget
type UpdateWidgetRequest struct {
	Layout   entity.WidgetLayout `json:"layout"`
	Settings map[string]any      `json:"settings"`
}

// UpdateWidget overwrites a widget's layout and settings
func (h *GroupHandler) UpdateWidget(c echo.Context) error {
	uid, err := requestUID(c)
	if err != nil {
		return err
	}

	var req UpdateWidgetRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid widget input")
	}

	err = h.uc.UpdateWidget(c.Request().Context(), uid, c.Param("groupID"), c.Param("widgetID"), req.Layout, req.Settings)
	if err != nil {
		return handleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, nil, "Widget updated")
}

// RemoveWidget removes a widget from the group's dashboard
func (h *GroupHandler) RemoveWidget(c echo.Context) error {
	uid, err := requestUID(c)
	if err != nil {
		return err
	}

	if err := h.uc.RemoveWidget(c.Request().Context(), uid, c.Param("groupID"), c.Param("widgetID")); err != nil {
		return handleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, nil, "Widget removed")
}
