package overlay

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/fh2207/waveview/internal/events"
	"github.com/fh2207/waveview/internal/logging"
	"github.com/fh2207/waveview/internal/point"
	"github.com/fh2207/waveview/internal/waveview"
)

// Layer owns the mapping from point ID to marker for one view. The registry
// is the single source of truth for what is currently drawn: at most one
// live marker exists per point ID, and after a sync pass the key set equals
// the set of point IDs visible in the window.
type Layer struct {
	name    string
	store   PointSource
	view    waveview.Viewport
	factory MarkerFactory
	bus     *events.Bus
	style   Style

	surface  Surface
	markers  map[string]Marker
	editable bool

	log zerolog.Logger
}

// NewLayer creates a points layer for the named view. The name doubles as
// the event source identity, so a view never reacts to its own drag
// notifications.
func NewLayer(name string, store PointSource, view waveview.Viewport, factory MarkerFactory, bus *events.Bus, style Style) *Layer {
	return &Layer{
		name:    name,
		store:   store,
		view:    view,
		factory: factory,
		bus:     bus,
		style:   style.resolve(),
		markers: make(map[string]Marker),
		log:     logging.Component("overlay").With().Str("view", name).Logger(),
	}
}

// Name returns the view name the layer emits events under.
func (l *Layer) Name() string { return l.name }

// EditingEnabled reports the global edit flag. A created marker is draggable
// only when this is set and the point itself is editable.
func (l *Layer) EditingEnabled() bool { return l.editable }

// Marker returns the live marker for a point ID, or nil.
func (l *Layer) Marker(id string) Marker { return l.markers[id] }

// MarkerCount returns the number of live markers.
func (l *Layer) MarkerCount() int { return len(l.markers) }

// Attach binds the layer to a render surface, subscribes to store and
// cross-view drag notifications, and performs an initial sync pass.
func (l *Layer) Attach(surface Surface) error {
	if l.surface != nil {
		return fmt.Errorf("layer %q is already attached", l.name)
	}
	l.surface = surface

	if err := l.subscribe(); err != nil {
		l.surface = nil
		return err
	}

	l.SyncWindow(l.view.StartTime(), l.view.EndTime())
	return nil
}

// Destroy unsubscribes everything and releases all markers. The layer can
// be attached again afterwards.
func (l *Layer) Destroy() {
	l.unsubscribe()
	l.RemoveAll()
	l.surface = nil
}

func (l *Layer) subscribe() error {
	dataFilter := events.Filter{
		Types: []point.EventType{
			point.EventPointsAdd,
			point.EventPointsUpdate,
			point.EventPointsRemove,
			point.EventPointsRemoveAll,
		},
	}
	if err := l.bus.Subscribe(l.name+".points.data", dataFilter, l.onData); err != nil {
		return fmt.Errorf("failed to subscribe to point data events: %w", err)
	}

	// Drag notifications from other views reposition our marker for the
	// dragged point; our own are excluded by source.
	dragFilter := events.Filter{
		Types: []point.EventType{
			point.EventPointsDragStart,
			point.EventPointsDragMove,
			point.EventPointsDragEnd,
		},
		ExcludeSource: l.name,
	}
	if err := l.bus.Subscribe(l.name+".points.drag", dragFilter, l.onPeerDrag); err != nil {
		_ = l.bus.Unsubscribe(l.name + ".points.data")
		return fmt.Errorf("failed to subscribe to point drag events: %w", err)
	}

	return nil
}

func (l *Layer) unsubscribe() {
	_ = l.bus.Unsubscribe(l.name + ".points.data")
	_ = l.bus.Unsubscribe(l.name + ".points.drag")
}

func (l *Layer) onData(ev *point.Event) {
	switch ev.Type {
	case point.EventPointsAdd:
		l.ReconcileMany(ev.Points)
	case point.EventPointsUpdate:
		l.ReconcileOne(ev.Point)
	case point.EventPointsRemove:
		l.RemoveMany(ev.Points)
	case point.EventPointsRemoveAll:
		l.RemoveAll()
	}
	l.draw()
}

func (l *Layer) onPeerDrag(ev *point.Event) {
	if ev.Point == nil {
		return
	}
	l.ReconcileOne(ev.Point)
	l.draw()
}

// ReconcileOne brings the marker for a single changed point up to date:
// any existing marker is dropped so stale visual state is never reused,
// a fresh one is created if the point is visible, and a full-window pass
// keeps peer markers consistent.
func (l *Layer) ReconcileOne(p *point.Point) {
	if p == nil {
		return
	}
	l.removeMarker(p.ID)

	startTime, endTime := l.view.StartTime(), l.view.EndTime()
	if p.Visible(startTime, endTime) {
		l.createMarker(p)
	}
	l.SyncWindow(startTime, endTime)
}

// ReconcileMany creates markers for the visible subset of points that have
// none yet. Additive: existing markers are untouched.
func (l *Layer) ReconcileMany(points []*point.Point) {
	startTime, endTime := l.view.StartTime(), l.view.EndTime()
	for _, p := range points {
		if !p.Visible(startTime, endTime) {
			continue
		}
		if _, exists := l.markers[p.ID]; exists {
			continue
		}
		m := l.createMarker(p)
		m.SetX(l.view.TimeToPixels(p.Time) - l.view.FrameOffset())
	}
}

// RemoveMany deletes each point's marker if present. Points without a
// marker were never visible; skipping them is not an error.
func (l *Layer) RemoveMany(points []*point.Point) {
	for _, p := range points {
		l.removeMarker(p.ID)
	}
}

// RemoveAll destroys every marker and clears the registry in one step.
func (l *Layer) RemoveAll() {
	for id := range l.markers {
		l.removeMarker(id)
	}
}

// SyncWindow reconciles the registry against the window [startTime, endTime)
// in two phases: ensure every visible point has a positioned marker, then
// purge markers whose point left the window. The order guarantees a point is
// never dropped and recreated within one pass, and that the final registry
// state equals the visible set exactly. The pass completes atomically before
// control returns; with unchanged input it is a no-op.
func (l *Layer) SyncWindow(startTime, endTime float64) {
	for _, p := range l.store.Find(startTime, endTime) {
		m, ok := l.markers[p.ID]
		if !ok {
			m = l.createMarker(p)
		}
		m.SetX(l.view.TimeToPixels(p.Time) - l.view.FrameOffset())
	}

	for id, m := range l.markers {
		if !m.Point().Visible(startTime, endTime) {
			l.removeMarker(id)
		}
	}
}

// EnableEditing sets the global edit flag. The flag gates drag sessions and
// the draggable capability of markers created from now on; it always
// overrides a point-level allowance, never the reverse.
func (l *Layer) EnableEditing(enabled bool) {
	l.editable = enabled
}

// SetVisible shows or hides the overlay.
func (l *Layer) SetVisible(visible bool) {
	if l.surface != nil {
		l.surface.SetVisible(visible)
	}
}

// Redraw re-synchronizes against the current window and requests a redraw.
func (l *Layer) Redraw() {
	l.SyncWindow(l.view.StartTime(), l.view.EndTime())
	l.draw()
}

// Fit refits every marker to a changed viewport height.
func (l *Layer) Fit(height float64) {
	for _, m := range l.markers {
		m.Fit(height)
	}
	l.draw()
}

func (l *Layer) createMarker(p *point.Point) Marker {
	if m, exists := l.markers[p.ID]; exists {
		return m
	}

	color := p.Color
	if color == "" {
		color = l.style.Color
	}

	m := l.factory.Build(CreateMarkerOptions{
		Point:      p,
		Draggable:  l.editable && p.Editable,
		Color:      color,
		FontFamily: l.style.FontFamily,
		FontSize:   l.style.FontSize,
		FontStyle:  l.style.FontStyle,
		Height:     l.view.Height(),
	})

	l.markers[p.ID] = m
	if l.surface != nil {
		l.surface.Add(m)
	}
	l.log.Debug().Str("point_id", p.ID).Float64("time", p.Time).Msg("marker created")
	return m
}

func (l *Layer) removeMarker(id string) {
	m, ok := l.markers[id]
	if !ok {
		return
	}
	if l.surface != nil {
		l.surface.Remove(m)
	}
	m.Destroy()
	delete(l.markers, id)
	l.log.Debug().Str("point_id", id).Msg("marker removed")
}

func (l *Layer) draw() {
	if l.surface != nil {
		l.surface.Draw()
	}
}
