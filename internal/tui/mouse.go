package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/fh2207/waveview/internal/overlay"
	"github.com/fh2207/waveview/internal/point"
)

// doubleClickWindow is how close two clicks on the same point must be to
// count as a double-click.
const doubleClickWindow = 400 * time.Millisecond

type clickMemory struct {
	pointID string
	at      time.Time
}

// handleMouse translates terminal mouse input into marker interactions:
// press/motion/release become drag gestures on editable markers, releases
// without motion become clicks, and bare motion drives hover transitions.
func (m *model) handleMouse(msg tea.MouseMsg) {
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.scrollBy(-m.windowSpan() / 20)
		return
	case tea.MouseButtonWheelDown:
		m.scrollBy(m.windowSpan() / 20)
		return
	}

	switch msg.Action {
	case tea.MouseActionPress:
		m.handleMousePress(msg)
	case tea.MouseActionMotion:
		m.handleMouseMotion(msg)
	case tea.MouseActionRelease:
		m.handleMouseRelease(msg)
	}
}

func (m *model) handleMousePress(msg tea.MouseMsg) {
	mk := m.surface.markerAt(msg.X)
	if mk == nil {
		return
	}

	switch msg.Button {
	case tea.MouseButtonLeft:
		// Click or drag; decided by whether motion follows.
		m.pressed = mk
	case tea.MouseButtonRight:
		m.forward.Forward(mk.Point(), pointerEvent(point.PointerContextMenu, msg))
	}
}

func (m *model) handleMouseMotion(msg tea.MouseMsg) {
	if m.pressed != nil && msg.Button == tea.MouseButtonLeft {
		if !m.dragging {
			m.dragging = m.drag.DragStart(m.pressed.Point(), pointerEvent(point.PointerDragStart, msg))
		}
		if m.dragging {
			m.drag.Drag(
				overlay.Pos{X: float64(msg.X), Y: float64(msg.Y)},
				pointerEvent(point.PointerDragMove, msg),
			)
		}
		return
	}

	// Bare motion: hover tracking.
	mk := m.surface.markerAt(msg.X)
	if mk == m.hovered {
		return
	}
	if m.hovered != nil {
		m.forward.Forward(m.hovered.Point(), pointerEvent(point.PointerMouseLeave, msg))
	}
	if mk != nil {
		m.forward.Forward(mk.Point(), pointerEvent(point.PointerMouseEnter, msg))
	}
	m.hovered = mk
}

func (m *model) handleMouseRelease(msg tea.MouseMsg) {
	if m.dragging {
		m.drag.DragEnd(pointerEvent(point.PointerDragEnd, msg))
		m.dragging = false
		m.pressed = nil
		m.sync()
		return
	}

	if m.pressed == nil {
		return
	}
	mk := m.pressed
	m.pressed = nil

	// A release elsewhere is not a click on the pressed marker.
	if m.surface.markerAt(msg.X) != mk {
		return
	}

	now := time.Now()
	if m.lastClick.pointID == mk.Point().ID && now.Sub(m.lastClick.at) <= doubleClickWindow {
		m.forward.Forward(mk.Point(), pointerEvent(point.PointerDblClick, msg))
		m.lastClick = clickMemory{}
		return
	}

	m.forward.Forward(mk.Point(), pointerEvent(point.PointerClick, msg))
	m.lastClick = clickMemory{pointID: mk.Point().ID, at: now}
}

func pointerEvent(kind point.PointerKind, msg tea.MouseMsg) *point.PointerEvent {
	return &point.PointerEvent{
		Kind:      kind,
		X:         float64(msg.X),
		Y:         float64(msg.Y),
		AltButton: msg.Button == tea.MouseButtonRight,
	}
}
