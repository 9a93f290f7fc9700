// Package overlay keeps a view's point markers synchronized with the point
// store and the visible time window, and manages marker edit gestures.
package overlay

import "github.com/fh2207/waveview/internal/point"

// Default marker styling, used when the host leaves options unset.
const (
	DefaultFontFamily = "sans-serif"
	DefaultFontSize   = 10
	DefaultFontStyle  = "normal"
)

// Marker is the visual handle for one point. Implementations are supplied
// by the host's MarkerFactory; the overlay only positions, refreshes, and
// destroys them.
type Marker interface {
	// Point returns the backing point.
	Point() *point.Point

	// X returns the marker's horizontal position in frame pixels. The
	// marker's visual body sits to the left of the time it represents, so
	// X()+Width() is the pixel of the annotated time.
	X() float64

	// SetX moves the marker horizontally.
	SetX(x float64)

	// Y returns the marker's absolute vertical position.
	Y() float64

	// Width returns the marker's pixel width.
	Width() float64

	// Update refreshes the marker's derived visual state (time label,
	// color) from its point.
	Update()

	// Fit resizes the marker to a changed viewport height.
	Fit(height float64)

	// Destroy releases the marker's rendering resources. The registry
	// forgets a marker only after Destroy returns.
	Destroy()
}

// CreateMarkerOptions carries the resolved style and capabilities for a new
// marker.
type CreateMarkerOptions struct {
	Point      *point.Point
	Draggable  bool
	Color      string
	FontFamily string
	FontSize   int
	FontStyle  string
	Height     float64
}

// MarkerFactory builds the host's marker variant for a point.
type MarkerFactory interface {
	Build(opts CreateMarkerOptions) Marker
}

// MarkerFactoryFunc adapts a function to the MarkerFactory interface.
type MarkerFactoryFunc func(opts CreateMarkerOptions) Marker

// Build calls f.
func (f MarkerFactoryFunc) Build(opts CreateMarkerOptions) Marker { return f(opts) }

// Surface is the render target markers attach to. The drawing engine behind
// it is the host's concern.
type Surface interface {
	// Add attaches a marker to the surface.
	Add(m Marker)

	// Remove detaches a marker from the surface.
	Remove(m Marker)

	// SetVisible shows or hides the whole overlay.
	SetVisible(visible bool)

	// Draw requests a redraw of the surface.
	Draw()
}

// PointSource is the store query boundary the sync engine depends on.
type PointSource interface {
	// Find returns all points visible in [startTime, endTime). Order is
	// unspecified; the result may be empty.
	Find(startTime, endTime float64) []*point.Point
}

// Style holds the view-level marker styling defaults.
type Style struct {
	// Color is the marker color used when a point has none of its own.
	Color string

	// FontFamily, FontSize and FontStyle configure marker labels. Zero
	// values fall back to the package defaults.
	FontFamily string
	FontSize   int
	FontStyle  string
}

// resolve fills unset font fields with the package defaults.
func (s Style) resolve() Style {
	if s.FontFamily == "" {
		s.FontFamily = DefaultFontFamily
	}
	if s.FontSize <= 0 {
		s.FontSize = DefaultFontSize
	}
	if s.FontStyle == "" {
		s.FontStyle = DefaultFontStyle
	}
	return s
}
