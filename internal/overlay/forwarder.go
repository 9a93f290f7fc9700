package overlay

import (
	"github.com/fh2207/waveview/internal/events"
	"github.com/fh2207/waveview/internal/point"
)

// Forwarder re-emits raw pointer interactions on markers as point-scoped
// application events. Stateless: every interaction produces exactly one
// notification, synchronously, under its fixed topic.
type Forwarder struct {
	source string
	bus    *events.Bus
}

// NewForwarder creates a forwarder emitting under the given source name.
func NewForwarder(source string, bus *events.Bus) *Forwarder {
	return &Forwarder{source: source, bus: bus}
}

// interactionTopics maps raw pointer kinds to their bus topics.
var interactionTopics = map[point.PointerKind]point.EventType{
	point.PointerClick:       point.EventPointsClick,
	point.PointerDblClick:    point.EventPointsDblClick,
	point.PointerMouseEnter:  point.EventPointsMouseEnter,
	point.PointerMouseLeave:  point.EventPointsMouseLeave,
	point.PointerContextMenu: point.EventPointsContextMenu,
}

// Forward publishes the interaction for the point. Returns false for
// pointer kinds that have no interaction topic (drag events belong to the
// DragController).
func (f *Forwarder) Forward(p *point.Point, raw *point.PointerEvent) bool {
	if raw == nil {
		return false
	}
	topic, ok := interactionTopics[raw.Kind]
	if !ok {
		return false
	}

	f.bus.Publish(&point.Event{
		Type:    topic,
		Source:  f.source,
		Point:   p,
		Pointer: raw,
	})
	return true
}
