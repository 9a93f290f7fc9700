package point

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVisible(t *testing.T) {
	tests := []struct {
		name  string
		time  float64
		start float64
		end   float64
		want  bool
	}{
		{name: "inside window", time: 3, start: 0, end: 6, want: true},
		{name: "at window start is visible", time: 0, start: 0, end: 6, want: true},
		{name: "at window end is not visible", time: 6, start: 0, end: 6, want: false},
		{name: "before window", time: -1, start: 0, end: 6, want: false},
		{name: "after window", time: 7, start: 0, end: 6, want: false},
		{name: "empty window", time: 2, start: 2, end: 2, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &Point{ID: "p1", Time: tt.time}
			require.Equal(t, tt.want, p.Visible(tt.start, tt.end))
		})
	}
}

func TestSetTimeClampsNegative(t *testing.T) {
	p := New(5, true)
	p.SetTime(-3)
	require.Equal(t, 0.0, p.Time)

	p.SetTime(12.5)
	require.Equal(t, 12.5, p.Time)
}

func TestNewGeneratesUniqueIDs(t *testing.T) {
	a := New(1, false)
	b := New(1, false)
	require.NotEmpty(t, a.ID)
	require.NotEqual(t, a.ID, b.ID)
}

func TestLabelFallsBackToTime(t *testing.T) {
	p := &Point{ID: "p1", Time: 65.25}
	require.Equal(t, "01:05.250", p.Label())

	p.LabelText = "chorus"
	require.Equal(t, "chorus", p.Label())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		point   Point
		wantErr bool
	}{
		{name: "valid", point: Point{ID: "p1", Time: 1}},
		{name: "missing ID", point: Point{Time: 1}, wantErr: true},
		{name: "blank ID", point: Point{ID: "  ", Time: 1}, wantErr: true},
		{name: "negative time", point: Point{ID: "p1", Time: -1}, wantErr: true},
		{name: "zero time ok", point: Point{ID: "p1", Time: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.point.Validate()
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestFormatTime(t *testing.T) {
	require.Equal(t, "00:00.000", FormatTime(0))
	require.Equal(t, "00:09.500", FormatTime(9.5))
	require.Equal(t, "02:03.000", FormatTime(123))
	require.Equal(t, "00:00.000", FormatTime(-5))
}
