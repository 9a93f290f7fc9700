// Package tui is the terminal host for the waveform view: it renders the
// waveform and point overlay with bubbletea/lipgloss and translates terminal
// mouse input into marker interactions.
package tui

import (
	"math"

	"github.com/fh2207/waveview/internal/overlay"
	"github.com/fh2207/waveview/internal/point"
)

// textMarker is the terminal marker variant: a one-column pin across the
// waveform at the annotated time, with the point label drawn to its left.
// The pin is the whole drag handle, so the marker width is zero and
// X()+Width() is exactly the pin column. It implements overlay.Marker.
type textMarker struct {
	point     *point.Point
	x         float64
	height    float64
	color     string
	draggable bool
	label     string
	destroyed bool
}

func newTextMarker(opts overlay.CreateMarkerOptions) *textMarker {
	m := &textMarker{
		point:     opts.Point,
		height:    opts.Height,
		color:     opts.Color,
		draggable: opts.Draggable,
	}
	m.label = opts.Point.Label()
	return m
}

func (m *textMarker) Point() *point.Point { return m.point }

func (m *textMarker) X() float64 { return m.x }

func (m *textMarker) SetX(x float64) { m.x = x }

// Y returns the marker's absolute vertical position. Terminal markers all
// anchor at the overlay row.
func (m *textMarker) Y() float64 { return markerRow }

// Width is the drag-handle width. The pin has no body of its own, so the
// annotated time sits exactly at X().
func (m *textMarker) Width() float64 { return 0 }

func (m *textMarker) Update() {
	m.label = m.point.Label()
}

func (m *textMarker) Fit(height float64) {
	m.height = height
}

func (m *textMarker) Destroy() {
	m.destroyed = true
}

// pinColumn returns the terminal column of the annotated time.
func (m *textMarker) pinColumn() int {
	return int(math.Round(m.x + m.Width()))
}

// labelStart returns the column the label begins at, left of the pin.
func (m *textMarker) labelStart() int {
	return m.pinColumn() - len(m.label)
}

// markerRow is the row markers render their labels on, below the title bar.
const markerRow = 1

// cellSurface is the render target the overlay attaches markers to. The
// model reads its state each View call; Draw only flags dirtiness.
type cellSurface struct {
	markers []overlay.Marker
	visible bool
	dirty   bool
}

func newCellSurface() *cellSurface {
	return &cellSurface{visible: true}
}

func (s *cellSurface) Add(m overlay.Marker) {
	s.markers = append(s.markers, m)
	s.dirty = true
}

func (s *cellSurface) Remove(m overlay.Marker) {
	for i, cur := range s.markers {
		if cur == m {
			s.markers = append(s.markers[:i], s.markers[i+1:]...)
			break
		}
	}
	s.dirty = true
}

func (s *cellSurface) SetVisible(visible bool) {
	s.visible = visible
	s.dirty = true
}

func (s *cellSurface) Draw() {
	s.dirty = true
}

// markerAt hit-tests a terminal column against marker pins and labels.
// Pins win over neighboring labels.
func (s *cellSurface) markerAt(col int) overlay.Marker {
	for _, m := range s.markers {
		if tm, ok := m.(*textMarker); ok && tm.pinColumn() == col {
			return m
		}
	}
	for _, m := range s.markers {
		if tm, ok := m.(*textMarker); ok {
			if col >= tm.labelStart() && col <= tm.pinColumn() {
				return m
			}
		}
	}
	return nil
}

// factory builds terminal markers. It implements overlay.MarkerFactory.
type factory struct{}

func (factory) Build(opts overlay.CreateMarkerOptions) overlay.Marker {
	return newTextMarker(opts)
}
