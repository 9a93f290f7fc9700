package waveview

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPeaksReduction(t *testing.T) {
	// 1 second at 8 samples/sec: alternating extremes in the first half,
	// flat in the second.
	samples := []float64{0.5, -0.5, 1, -1, 0.2, 0.2, 0.2, 0.2}
	w := NewWaveform(samples, 8)

	peaks := w.Peaks(0, 1, 2)
	require.Len(t, peaks, 2)
	require.Equal(t, Peak{Min: -1, Max: 1}, peaks[0])
	require.Equal(t, Peak{Min: 0.2, Max: 0.2}, peaks[1])
}

func TestPeaksBeyondSamplesAreZero(t *testing.T) {
	w := NewWaveform([]float64{1, 1, 1, 1}, 4)

	peaks := w.Peaks(0, 2, 4)
	require.Len(t, peaks, 4)
	require.Equal(t, Peak{Min: 1, Max: 1}, peaks[0])
	require.Equal(t, Peak{}, peaks[2])
	require.Equal(t, Peak{}, peaks[3])
}

func TestPeaksDegenerateWindows(t *testing.T) {
	w := NewWaveform([]float64{1, -1}, 2)

	require.Nil(t, w.Peaks(0, 1, 0))
	require.Equal(t, make([]Peak, 3), w.Peaks(1, 1, 3))

	empty := NewWaveform(nil, 2)
	require.Equal(t, make([]Peak, 3), empty.Peaks(0, 1, 3))
}

func TestSyntheticIsDeterministic(t *testing.T) {
	a := Synthetic(2, 8000, 42)
	b := Synthetic(2, 8000, 42)

	require.InDelta(t, 2.0, a.Duration(), 1e-9)
	require.Equal(t, a.Peaks(0, 2, 16), b.Peaks(0, 2, 16))

	for _, p := range a.Peaks(0, 2, 16) {
		require.GreaterOrEqual(t, p.Max, p.Min)
		require.LessOrEqual(t, p.Max, 1.0)
		require.GreaterOrEqual(t, p.Min, -1.0)
	}
}
