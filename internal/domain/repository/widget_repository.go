package repository

import (
	"context"
	"errors"

	"focuspit/internal/domain/entity"
)

// ErrWidgetNotFound is returned when a widget instance is not found.
var ErrWidgetNotFound = errors.New("widget not found")

// WidgetRepository defines the interface for per-group widget documents.
// The core stores and cascades these records; widget behavior is out of scope.
type WidgetRepository interface {
	// Create persists a new widget instance.
	Create(ctx context.Context, w *entity.WidgetInstance) error

	// FindByGroup retrieves all widget instances of a group.
	FindByGroup(ctx context.Context, groupID string) ([]*entity.WidgetInstance, error)

	// Update overwrites the layout and settings of an existing widget.
	Update(ctx context.Context, w *entity.WidgetInstance) error

	// Delete removes a widget instance.
	Delete(ctx context.Context, groupID, id string) error

	// DeleteByGroup removes every widget instance of a group (cascade path).
	DeleteByGroup(ctx context.Context, groupID string) error
}
