package point

import "time"

// EventType categorizes point notifications on the bus.
type EventType string

const (
	// Data mutation notifications from the store.
	EventPointsAdd       EventType = "points.add"
	EventPointsUpdate    EventType = "points.update"
	EventPointsRemove    EventType = "points.remove"
	EventPointsRemoveAll EventType = "points.remove_all"

	// Pointer interactions forwarded by a view's overlay.
	EventPointsClick       EventType = "points.click"
	EventPointsDblClick    EventType = "points.dblclick"
	EventPointsMouseEnter  EventType = "points.mouseenter"
	EventPointsMouseLeave  EventType = "points.mouseleave"
	EventPointsContextMenu EventType = "points.contextmenu"

	// Drag lifecycle, emitted by the dragging view and consumed by
	// peer views to keep their markers positioned.
	EventPointsDragStart EventType = "points.dragstart"
	EventPointsDragMove  EventType = "points.dragmove"
	EventPointsDragEnd   EventType = "points.dragend"
)

// PointerKind identifies a raw pointer interaction.
type PointerKind string

const (
	PointerClick       PointerKind = "click"
	PointerDblClick    PointerKind = "dblclick"
	PointerMouseEnter  PointerKind = "mouseenter"
	PointerMouseLeave  PointerKind = "mouseleave"
	PointerContextMenu PointerKind = "contextmenu"
	PointerDragStart   PointerKind = "dragstart"
	PointerDragMove    PointerKind = "dragmove"
	PointerDragEnd     PointerKind = "dragend"
)

// PointerEvent describes the raw pointer interaction attached to a
// forwarded notification.
type PointerEvent struct {
	// Kind is the interaction type.
	Kind PointerKind `json:"kind"`

	// X and Y are surface-relative pixel coordinates.
	X float64 `json:"x"`
	Y float64 `json:"y"`

	// AltButton is true for secondary-button interactions.
	AltButton bool `json:"alt_button,omitempty"`
}

// Event is a point notification carried on the bus.
type Event struct {
	// Type categorizes the event.
	Type EventType

	// Source names the view or store that produced the event. Views use it
	// to skip their own drag notifications during cross-view sync.
	Source string

	// Point is the subject for single-point events (update, interactions).
	Point *Point

	// Points is the subject set for bulk events (add, remove).
	Points []*Point

	// Pointer is the raw pointer event for forwarded interactions.
	Pointer *PointerEvent

	// Timestamp is when the event was published.
	Timestamp time.Time
}
