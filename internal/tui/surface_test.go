package tui

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fh2207/waveview/internal/overlay"
	"github.com/fh2207/waveview/internal/point"
)

func buildMarker(t *testing.T, tm float64, label string, x float64) *textMarker {
	t.Helper()
	p := point.New(tm, true)
	p.LabelText = label
	m := factory{}.Build(overlay.CreateMarkerOptions{Point: p, Color: "#ff9800", Height: 20})
	m.SetX(x)
	return m.(*textMarker)
}

func TestMarkerAtHitsPinAndLabel(t *testing.T) {
	s := newCellSurface()
	m := buildMarker(t, 2, "abc", 20)
	s.Add(m)

	require.Equal(t, 20, m.pinColumn())
	require.Equal(t, 17, m.labelStart())

	require.Same(t, overlay.Marker(m), s.markerAt(20))
	require.Same(t, overlay.Marker(m), s.markerAt(17))
	require.Same(t, overlay.Marker(m), s.markerAt(19))
	require.Nil(t, s.markerAt(16))
	require.Nil(t, s.markerAt(21))
}

func TestMarkerAtPinWinsOverLabel(t *testing.T) {
	s := newCellSurface()
	// b's pin lands inside a's label span.
	a := buildMarker(t, 3, "long label", 30)
	b := buildMarker(t, 2.5, "b", 25)
	s.Add(a)
	s.Add(b)

	require.Same(t, overlay.Marker(b), s.markerAt(25))
	require.Same(t, overlay.Marker(a), s.markerAt(30))
	require.Same(t, overlay.Marker(a), s.markerAt(26))
}

func TestSurfaceRemove(t *testing.T) {
	s := newCellSurface()
	a := buildMarker(t, 1, "a", 10)
	b := buildMarker(t, 2, "b", 20)
	s.Add(a)
	s.Add(b)

	s.Remove(a)
	require.Nil(t, s.markerAt(10))
	require.Same(t, overlay.Marker(b), s.markerAt(20))
	require.Len(t, s.markers, 1)

	// Removing an unknown marker is harmless.
	s.Remove(a)
	require.Len(t, s.markers, 1)
}

func TestTextMarkerUpdateRefreshesLabel(t *testing.T) {
	p := point.New(2, true)
	m := newTextMarker(overlay.CreateMarkerOptions{Point: p})
	require.Equal(t, "00:02.000", m.label)

	p.SetTime(65.5)
	m.Update()
	require.Equal(t, "01:05.500", m.label)

	p.LabelText = "bridge"
	m.Update()
	require.Equal(t, "bridge", m.label)
}

func TestTextMarkerPinTracksRoundedX(t *testing.T) {
	m := buildMarker(t, 1, "a", 0)
	require.Equal(t, 0.0, m.Width())

	m.SetX(10.4)
	require.Equal(t, 10, m.pinColumn())
	m.SetX(10.6)
	require.Equal(t, 11, m.pinColumn())
}
