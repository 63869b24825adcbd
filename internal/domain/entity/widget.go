package entity

import (
	"time"
)

// WidgetLayout is the grid placement of a widget on the dashboard.
type WidgetLayout struct {
	X int `json:"x" firestore:"x"`
	Y int `json:"y" firestore:"y"`
	W int `json:"w" firestore:"w"`
	H int `json:"h" firestore:"h"`
}

// WidgetInstance is one widget placed on a group's dashboard. The core only
// stores and cascades these records; widget business logic lives elsewhere.
type WidgetInstance struct {
	ID        string         `json:"id" firestore:"id"`                // The unique identifier for the widget document.
	GroupID   string         `json:"group_id" firestore:"groupId"`     // The group whose dashboard this widget is on.
	Key       string         `json:"key" firestore:"key"`              // Widget type identifier (todo, calendar, chat, ...).
	Layout    WidgetLayout   `json:"layout" firestore:"layout"`        // Grid coordinates.
	Settings  map[string]any `json:"settings" firestore:"settings"`    // Opaque per-widget configuration.
	CreatedBy string         `json:"created_by" firestore:"createdBy"` // UID of the member who added the widget.
	CreatedAt time.Time      `json:"created_at" firestore:"createdAt"` // Timestamp of when the widget was added.
}
