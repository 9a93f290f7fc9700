package overlay

import (
	"github.com/rs/zerolog"

	"github.com/fh2207/waveview/internal/events"
	"github.com/fh2207/waveview/internal/logging"
	"github.com/fh2207/waveview/internal/point"
	"github.com/fh2207/waveview/internal/waveview"
)

// Pos is a pixel position on the render surface.
type Pos struct {
	X float64
	Y float64
}

// DragSession is the transient state of one in-progress marker drag. It is
// valid only between DragStart and the matching DragEnd.
type DragSession struct {
	// Point is the point being retimed.
	Point *point.Point

	// Marker is the point's live marker.
	Marker Marker

	// AnchorY is the marker's vertical position at drag start. Motion is
	// strictly horizontal; the constraint freezes Y to this value.
	AnchorY float64
}

// ConstrainDrag bounds a prospective marker position for the session:
// X is clamped to [0, viewWidth] and Y is pinned to the session anchor, so
// any vertical pointer delta is discarded. Pure function; takes the session
// explicitly so it is testable without a live drag.
func ConstrainDrag(session *DragSession, viewWidth float64, pos Pos) Pos {
	x := pos.X
	if x < 0 {
		x = 0
	}
	if x > viewWidth {
		x = viewWidth
	}
	return Pos{X: x, Y: session.AnchorY}
}

// DragController manages the edit gesture lifecycle for one marker at a
// time: Idle -> Dragging -> Idle. At most one session is active; a second
// DragStart while dragging is rejected.
type DragController struct {
	layer   *Layer
	view    waveview.Viewport
	bus     *events.Bus
	session *DragSession
	log     zerolog.Logger
}

// NewDragController creates a drag controller for the layer's markers.
func NewDragController(layer *Layer, view waveview.Viewport, bus *events.Bus) *DragController {
	return &DragController{
		layer: layer,
		view:  view,
		bus:   bus,
		log:   logging.Component("drag").With().Str("view", layer.Name()).Logger(),
	}
}

// Dragging reports whether a drag session is active.
func (c *DragController) Dragging() bool { return c.session != nil }

// Session returns the active drag session, or nil.
func (c *DragController) Session() *DragSession { return c.session }

// DragStart begins a drag session on the point's marker and emits
// points.dragstart. It returns false without starting a session when the
// point has no live marker, when editing is disabled for the point, or when
// another session is already active.
func (c *DragController) DragStart(p *point.Point, raw *point.PointerEvent) bool {
	if c.session != nil {
		c.log.Warn().Str("point_id", p.ID).Msg("drag start rejected: session already active")
		return false
	}
	if !c.layer.EditingEnabled() || !p.Editable {
		return false
	}
	m := c.layer.Marker(p.ID)
	if m == nil {
		return false
	}

	c.session = &DragSession{Point: p, Marker: m, AnchorY: m.Y()}
	c.emit(point.EventPointsDragStart, p, raw)
	return true
}

// Drag applies a constrained move of the active marker to the prospective
// position, writes the resulting time back onto the point through its single
// mutation path, refreshes the marker label, and emits points.dragmove.
// No-op while idle.
func (c *DragController) Drag(pos Pos, raw *point.PointerEvent) {
	s := c.session
	if s == nil {
		return
	}

	bounded := ConstrainDrag(s, c.view.Width(), pos)
	s.Marker.SetX(bounded.X)

	// The marker body sits left of the time it represents: its right edge
	// is the pixel of the annotated time.
	s.Point.SetTime(c.view.PixelOffsetToTime(s.Marker.X() + s.Marker.Width()))
	s.Marker.Update()

	c.emit(point.EventPointsDragMove, s.Point, raw)
}

// DragEnd emits points.dragend and returns the controller to Idle.
// No-op while idle.
func (c *DragController) DragEnd(raw *point.PointerEvent) {
	s := c.session
	if s == nil {
		return
	}
	c.session = nil
	c.emit(point.EventPointsDragEnd, s.Point, raw)
}

func (c *DragController) emit(t point.EventType, p *point.Point, raw *point.PointerEvent) {
	c.bus.Publish(&point.Event{
		Type:    t,
		Source:  c.layer.Name(),
		Point:   p,
		Pointer: raw,
	})
}
