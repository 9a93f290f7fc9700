// Package point defines the point annotation data model.
package point

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Point is a single time-stamped annotation. The collection owning a point
// lives in the store; views hold only derived visual state keyed by ID.
type Point struct {
	// ID is the unique, stable identifier for the point.
	ID string `json:"id"`

	// Time is the annotation time in seconds.
	Time float64 `json:"time"`

	// Editable marks whether the point may be retimed by the user.
	Editable bool `json:"editable"`

	// Color overrides the view's default marker color when set.
	Color string `json:"color,omitempty"`

	// LabelText is an optional display label.
	LabelText string `json:"label_text,omitempty"`
}

// New creates a point with a generated ID.
func New(time float64, editable bool) *Point {
	return &Point{
		ID:       uuid.New().String(),
		Time:     time,
		Editable: editable,
	}
}

// SetTime is the single mutation path for a point's time.
// Negative times are clamped to zero.
func (p *Point) SetTime(t float64) {
	if t < 0 {
		t = 0
	}
	p.Time = t
}

// Visible reports whether the point falls inside the half-open window
// [startTime, endTime). Every layer that needs window membership calls this
// predicate so edge behavior at window boundaries stays consistent.
func (p *Point) Visible(startTime, endTime float64) bool {
	return p.Time >= startTime && p.Time < endTime
}

// Label returns the display label, falling back to the formatted time.
func (p *Point) Label() string {
	if p.LabelText != "" {
		return p.LabelText
	}
	return FormatTime(p.Time)
}

// Validate checks the point's required fields.
func (p *Point) Validate() error {
	if strings.TrimSpace(p.ID) == "" {
		return fmt.Errorf("point ID is required")
	}
	if p.Time < 0 {
		return fmt.Errorf("point time must be non-negative, got %f", p.Time)
	}
	return nil
}

// FormatTime renders a time in seconds as mm:ss.mmm.
func FormatTime(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	mins := int(seconds) / 60
	secs := seconds - float64(mins*60)
	return fmt.Sprintf("%02d:%06.3f", mins, secs)
}
