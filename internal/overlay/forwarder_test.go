package overlay

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fh2207/waveview/internal/events"
	"github.com/fh2207/waveview/internal/point"
)

func TestForwardEmitsOneEventPerInteraction(t *testing.T) {
	tests := []struct {
		kind point.PointerKind
		want point.EventType
	}{
		{kind: point.PointerClick, want: point.EventPointsClick},
		{kind: point.PointerDblClick, want: point.EventPointsDblClick},
		{kind: point.PointerMouseEnter, want: point.EventPointsMouseEnter},
		{kind: point.PointerMouseLeave, want: point.EventPointsMouseLeave},
		{kind: point.PointerContextMenu, want: point.EventPointsContextMenu},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			bus := events.NewBus()
			var got []*point.Event
			require.NoError(t, bus.Subscribe("probe", events.Filter{}, func(e *point.Event) {
				got = append(got, e)
			}))

			fwd := NewForwarder("zoomview", bus)
			p := point.New(3, true)
			raw := &point.PointerEvent{Kind: tt.kind, X: 12, Y: 2, AltButton: tt.kind == point.PointerContextMenu}

			require.True(t, fwd.Forward(p, raw))
			require.Len(t, got, 1)
			require.Equal(t, tt.want, got[0].Type)
			require.Equal(t, "zoomview", got[0].Source)
			require.Same(t, p, got[0].Point)
			require.Same(t, raw, got[0].Pointer)
		})
	}
}

func TestForwardIgnoresNonInteractionKinds(t *testing.T) {
	bus := events.NewBus()
	published := 0
	require.NoError(t, bus.Subscribe("probe", events.Filter{}, func(*point.Event) { published++ }))

	fwd := NewForwarder("zoomview", bus)
	p := point.New(1, true)

	require.False(t, fwd.Forward(p, nil))
	require.False(t, fwd.Forward(p, &point.PointerEvent{Kind: point.PointerDragStart}))
	require.False(t, fwd.Forward(p, &point.PointerEvent{Kind: point.PointerDragMove}))
	require.False(t, fwd.Forward(p, &point.PointerEvent{Kind: point.PointerDragEnd}))
	require.Equal(t, 0, published)
}
