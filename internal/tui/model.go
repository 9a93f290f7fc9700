package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/fh2207/waveview/internal/events"
	"github.com/fh2207/waveview/internal/overlay"
	"github.com/fh2207/waveview/internal/point"
	"github.com/fh2207/waveview/internal/store"
	"github.com/fh2207/waveview/internal/waveview"
)

const (
	// viewName identifies this view as an event source on the bus.
	viewName = "zoomview"

	minWindowWidth  = 40
	minWindowHeight = 8

	// chromeRows is the non-waveform screen area: title, marker row,
	// status line and key hints.
	chromeRows = 4
)

// Config controls the waveform TUI.
type Config struct {
	SecondsPerPixel float64
	WaveColor       string
	Duration        float64

	PointColor     string
	FontFamily     string
	FontSize       int
	FontStyle      string
	EditingEnabled bool
}

// Run starts the waveform TUI against the given point store and bus.
func Run(st *store.Store, bus *events.Bus, cfg Config) error {
	m, err := newModel(st, bus, cfg)
	if err != nil {
		return err
	}
	defer m.layer.Destroy()

	program := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion())
	_, err = program.Run()
	return err
}

type model struct {
	cfg   Config
	bus   *events.Bus
	store *store.Store

	frame   *waveview.Frame
	wave    *waveview.Waveform
	surface *cellSurface
	layer   *overlay.Layer
	drag    *overlay.DragController
	forward *overlay.Forwarder

	width  int
	height int
	ready  bool

	// pointer gesture state, see mouse.go
	pressed    overlay.Marker
	dragging   bool
	hovered    overlay.Marker
	lastClick  clickMemory
	showPoints bool

	status string
}

func newModel(st *store.Store, bus *events.Bus, cfg Config) (*model, error) {
	if cfg.SecondsPerPixel <= 0 {
		cfg.SecondsPerPixel = waveview.DefaultSecondsPerPixel
	}
	if cfg.Duration <= 0 {
		cfg.Duration = 60
	}

	frame := waveview.NewFrame(cfg.SecondsPerPixel, 0, 0)
	wave := waveview.Synthetic(cfg.Duration, 8000, 1)

	layer := overlay.NewLayer(viewName, st, frame, factory{}, bus, overlay.Style{
		Color:      cfg.PointColor,
		FontFamily: cfg.FontFamily,
		FontSize:   cfg.FontSize,
		FontStyle:  cfg.FontStyle,
	})
	layer.EnableEditing(cfg.EditingEnabled)

	surface := newCellSurface()
	if err := layer.Attach(surface); err != nil {
		return nil, fmt.Errorf("failed to attach points layer: %w", err)
	}

	return &model{
		cfg:        cfg,
		bus:        bus,
		store:      st,
		frame:      frame,
		wave:       wave,
		surface:    surface,
		layer:      layer,
		drag:       overlay.NewDragController(layer, frame, bus),
		forward:    overlay.NewForwarder(viewName, bus),
		showPoints: true,
	}, nil
}

func (m *model) Init() tea.Cmd {
	return nil
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = typed.Width
		m.height = typed.Height
		m.ready = m.width >= minWindowWidth && m.height >= minWindowHeight
		waveRows := m.height - chromeRows
		if waveRows < 1 {
			waveRows = 1
		}
		m.frame.SetSize(float64(m.width), float64(waveRows))
		m.layer.Fit(float64(waveRows))
		m.sync()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(typed)

	case tea.MouseMsg:
		m.handleMouse(typed)
		return m, nil
	}
	return m, nil
}

func (m *model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "left", "h":
		m.scrollBy(-m.windowSpan() / 10)
	case "right", "l":
		m.scrollBy(m.windowSpan() / 10)
	case "pgup":
		m.scrollBy(-m.windowSpan())
	case "pgdown":
		m.scrollBy(m.windowSpan())
	case "home":
		m.frame.SeekTo(0)
		m.sync()

	case "+", "=":
		m.frame.SetZoom(m.frame.SecondsPerPixel() / 1.5)
		m.sync()
	case "-":
		m.frame.SetZoom(m.frame.SecondsPerPixel() * 1.5)
		m.sync()

	case "e":
		enabled := !m.layer.EditingEnabled()
		m.layer.EnableEditing(enabled)
		if enabled {
			m.status = "editing enabled"
		} else {
			m.status = "editing disabled"
		}

	case "v":
		m.showPoints = !m.showPoints
		m.layer.SetVisible(m.showPoints)

	case "a":
		center := (m.frame.StartTime() + m.frame.EndTime()) / 2
		p := point.New(center, true)
		if err := m.store.Add(p); err != nil {
			m.status = fmt.Sprintf("add failed: %v", err)
		} else {
			m.status = fmt.Sprintf("added point at %s", point.FormatTime(center))
		}

	case "d":
		if m.hovered != nil {
			id := m.hovered.Point().ID
			m.store.Remove(id)
			m.hovered = nil
			m.status = "point removed"
		}

	case "X":
		m.store.RemoveAll()
		m.status = "all points removed"

	case "r":
		m.layer.Redraw()
	}
	return m, nil
}

// sync re-synchronizes the overlay with the current visible window.
func (m *model) sync() {
	m.layer.SyncWindow(m.frame.StartTime(), m.frame.EndTime())
}

func (m *model) scrollBy(dt float64) {
	m.frame.Scroll(dt)
	m.sync()
}

func (m *model) windowSpan() float64 {
	return m.frame.EndTime() - m.frame.StartTime()
}
