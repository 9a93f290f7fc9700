// Package waveview provides the scrolling waveform viewport and its
// time/pixel projection.
package waveview

// Viewport is the projection boundary consumed by overlay layers. It exposes
// the visible time window and time/pixel conversion for the current frame.
type Viewport interface {
	// StartTime returns the start of the visible window in seconds.
	StartTime() float64

	// EndTime returns the end of the visible window in seconds.
	EndTime() float64

	// TimeToPixels converts an absolute time to an absolute pixel position.
	TimeToPixels(t float64) float64

	// PixelsToTime converts an absolute pixel position back to a time.
	PixelsToTime(px float64) float64

	// PixelOffsetToTime converts a frame-relative pixel offset to a time.
	PixelOffsetToTime(offset float64) float64

	// FrameOffset returns the absolute pixel position of the frame start.
	FrameOffset() float64

	// Width returns the frame width in pixels.
	Width() float64

	// Height returns the frame height in pixels.
	Height() float64
}

// Frame is a concrete scrolling viewport over a waveform. Position state is
// kept in pixels; the time window is derived from the zoom scale.
type Frame struct {
	secondsPerPixel float64
	offset          float64
	width           float64
	height          float64
}

// NewFrame creates a frame with the given zoom scale and size.
func NewFrame(secondsPerPixel, width, height float64) *Frame {
	if secondsPerPixel <= 0 {
		secondsPerPixel = DefaultSecondsPerPixel
	}
	return &Frame{
		secondsPerPixel: secondsPerPixel,
		width:           width,
		height:          height,
	}
}

// DefaultSecondsPerPixel is the zoom scale used when none is configured.
const DefaultSecondsPerPixel = 0.1

// StartTime returns the start of the visible window.
func (f *Frame) StartTime() float64 { return f.PixelsToTime(f.offset) }

// EndTime returns the end of the visible window.
func (f *Frame) EndTime() float64 { return f.PixelsToTime(f.offset + f.width) }

// TimeToPixels converts an absolute time to an absolute pixel position.
func (f *Frame) TimeToPixels(t float64) float64 { return t / f.secondsPerPixel }

// PixelsToTime converts an absolute pixel position back to a time.
func (f *Frame) PixelsToTime(px float64) float64 { return px * f.secondsPerPixel }

// PixelOffsetToTime converts a frame-relative pixel offset to a time.
func (f *Frame) PixelOffsetToTime(offset float64) float64 {
	return f.PixelsToTime(f.offset + offset)
}

// FrameOffset returns the absolute pixel position of the frame start.
func (f *Frame) FrameOffset() float64 { return f.offset }

// Width returns the frame width in pixels.
func (f *Frame) Width() float64 { return f.width }

// Height returns the frame height in pixels.
func (f *Frame) Height() float64 { return f.height }

// SecondsPerPixel returns the current zoom scale.
func (f *Frame) SecondsPerPixel() float64 { return f.secondsPerPixel }

// Scroll moves the window by dt seconds. The window never scrolls before
// time zero.
func (f *Frame) Scroll(dt float64) {
	f.offset += f.TimeToPixels(dt)
	if f.offset < 0 {
		f.offset = 0
	}
}

// SeekTo positions the window start at time t.
func (f *Frame) SeekTo(t float64) {
	if t < 0 {
		t = 0
	}
	f.offset = f.TimeToPixels(t)
}

// SetSize resizes the frame, keeping the window start fixed.
func (f *Frame) SetSize(width, height float64) {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	f.width = width
	f.height = height
}

// SetZoom changes the zoom scale, keeping the window start time fixed so
// the visible content does not jump.
func (f *Frame) SetZoom(secondsPerPixel float64) {
	if secondsPerPixel <= 0 {
		return
	}
	start := f.StartTime()
	f.secondsPerPixel = secondsPerPixel
	f.offset = f.TimeToPixels(start)
}
