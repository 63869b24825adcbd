package usecase

import (
	"context"

	"focuspit/internal/domain/entity"
	"focuspit/internal/domain/repository"
)

// CreateGroupInput carries the fields of a new group.
type CreateGroupInput struct {
	Name     string `json:"name" validate:"required,min=1,max=100"`
	PhotoURL string `json:"photo_url" validate:"omitempty,url"`
}

// UpdateGroupInput carries the editable group fields. Nil fields are left
// unchanged. The slug doubles as the document id and cannot change.
type UpdateGroupInput struct {
	Name     *string `json:"name" validate:"omitempty,min=1,max=100"`
	PhotoURL *string `json:"photo_url" validate:"omitempty,url"`
}

// AddWidgetInput carries the fields of a new widget instance.
type AddWidgetInput struct {
	Key      string              `json:"key" validate:"required,min=1,max=50"`
	Layout   entity.WidgetLayout `json:"layout"`
	Settings map[string]any      `json:"settings"`
}

// GroupUsecase defines the interface for group and dashboard management use cases
type GroupUsecase interface {
	// CreateGroup creates a group owned by ownerUID. The group slug is
	// allocated from the name and doubles as its id; the owner gets an
	// active membership in the same call.
	CreateGroup(ctx context.Context, ownerUID string, input CreateGroupInput) (*entity.Group, error)

	// GetGroup retrieves a group the caller has access to.
	GetGroup(ctx context.Context, uid, groupID string) (*entity.Group, error)

	// ListGroups retrieves the active groups the caller has access to,
	// ordered by display order.
	ListGroups(ctx context.Context, uid string) ([]*entity.Group, error)

	// WatchGroups subscribes to the caller's active group list. The channel
	// closes when ctx is cancelled.
	WatchGroups(ctx context.Context, uid string) (<-chan repository.Snapshot[*entity.Group], error)

	// UpdateGroup updates the group's editable fields. Caller must be an
	// admin of the group.
	UpdateGroup(ctx context.Context, uid, groupID string, input UpdateGroupInput) (*entity.Group, error)

	// SetGroupOrder sets the display order of a group on the caller's
	// dashboard. Caller must have access.
	SetGroupOrder(ctx context.Context, uid, groupID string, order int) error

	// ArchiveGroup hides the group from dashboards without deleting it.
	// Caller must be the owner.
	ArchiveGroup(ctx context.Context, uid, groupID string) error

	// DeleteGroup deletes the group with its memberships and widgets, and
	// notifies every other active member of the removal. Caller must be
	// the owner.
	DeleteGroup(ctx context.Context, uid, groupID string) error

	// AddWidget places a widget on the group's dashboard. Caller must have
	// access.
	AddWidget(ctx context.Context, uid, groupID string, input AddWidgetInput) (*entity.WidgetInstance, error)

	// ListWidgets retrieves the widgets on the group's dashboard. Caller
	// must have access.
	ListWidgets(ctx context.Context, uid, groupID string) ([]*entity.WidgetInstance, error)

	// UpdateWidget overwrites a widget's layout and settings. Caller must
	// have access.
	UpdateWidget(ctx context.Context, uid, groupID, widgetID string, layout entity.WidgetLayout, settings map[string]any) error

	// RemoveWidget removes a widget from the dashboard. Caller must have
	// access.
	RemoveWidget(ctx context.Context, uid, groupID, widgetID string) error
}
