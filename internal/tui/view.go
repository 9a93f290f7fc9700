package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/fh2207/waveview/internal/point"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	mutedStyle = lipgloss.NewStyle().Faint(true)
)

// waveRamp maps a column magnitude to a partial block glyph.
var waveRamp = []rune(" ▁▂▃▄▅▆▇█")

func (m *model) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}
	if !m.ready {
		return mutedStyle.Render(fmt.Sprintf("window too small (min %dx%d)", minWindowWidth, minWindowHeight))
	}
	m.surface.dirty = false

	waveRows := m.height - chromeRows
	if waveRows < 1 {
		waveRows = 1
	}

	var b strings.Builder
	b.WriteString(m.renderTitle())
	b.WriteString("\n")
	b.WriteString(m.renderMarkerRow())
	b.WriteString("\n")

	waveStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.cfg.WaveColor))
	pinStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.cfg.PointColor)).Bold(true)

	peaks := m.wave.Peaks(m.frame.StartTime(), m.frame.EndTime(), m.width)
	pins := m.pinColumns()

	// Column magnitudes in [0,1], drawn bottom-up across waveRows.
	mags := make([]float64, len(peaks))
	for i, p := range peaks {
		mags[i] = math.Max(math.Abs(p.Min), math.Abs(p.Max))
	}

	for row := 0; row < waveRows; row++ {
		// remaining amplitude for this row, in row units from the bottom
		level := float64(waveRows - 1 - row)
		var line strings.Builder
		for col := 0; col < m.width; col++ {
			bar := mags[col] * float64(waveRows)
			var glyph rune
			switch {
			case bar >= level+1:
				glyph = waveRamp[len(waveRamp)-1]
			case bar > level:
				frac := bar - level
				glyph = waveRamp[int(frac*float64(len(waveRamp)-1))]
			default:
				glyph = ' '
			}

			if _, isPin := pins[col]; isPin {
				line.WriteString(pinStyle.Render("│"))
				continue
			}
			if glyph == ' ' {
				line.WriteRune(' ')
				continue
			}
			line.WriteString(waveStyle.Render(string(glyph)))
		}
		b.WriteString(line.String())
		b.WriteString("\n")
	}

	b.WriteString(m.renderStatus())
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render("q quit  e edit  v points  a add  d delete  X clear  ←/→ scroll  +/- zoom"))
	return b.String()
}

func (m *model) renderTitle() string {
	editing := "off"
	if m.layer.EditingEnabled() {
		editing = "on"
	}
	head := fmt.Sprintf(" waveview  %s - %s  %.0fms/col  points:%d  editing:%s",
		point.FormatTime(m.frame.StartTime()),
		point.FormatTime(m.frame.EndTime()),
		m.frame.SecondsPerPixel()*1000,
		m.layer.MarkerCount(),
		editing,
	)
	return titleStyle.Render(pad(head, m.width))
}

// renderMarkerRow lays marker labels out left of their pins, later (by
// creation order) markers overwriting earlier ones where they collide.
func (m *model) renderMarkerRow() string {
	row := make([]rune, m.width)
	for i := range row {
		row[i] = ' '
	}
	colored := make([]string, m.width)

	if m.surface.visible {
		for _, mk := range m.surface.markers {
			tm, ok := mk.(*textMarker)
			if !ok {
				continue
			}
			style := lipgloss.NewStyle().Foreground(lipgloss.Color(tm.color))
			start := tm.labelStart()
			for i, r := range tm.label {
				col := start + i
				if col < 0 || col >= m.width {
					continue
				}
				row[col] = r
				colored[col] = style.Render(string(r))
			}
			pin := tm.pinColumn()
			if pin >= 0 && pin < m.width {
				row[pin] = '▼'
				colored[pin] = style.Bold(true).Render("▼")
			}
		}
	}

	var line strings.Builder
	for col := 0; col < m.width; col++ {
		if colored[col] != "" {
			line.WriteString(colored[col])
			continue
		}
		line.WriteRune(row[col])
	}
	return line.String()
}

func (m *model) renderStatus() string {
	status := m.status
	if m.hovered != nil {
		p := m.hovered.Point()
		status = fmt.Sprintf("point %s  t=%s  editable:%v", shortID(p.ID), point.FormatTime(p.Time), p.Editable)
	}
	if m.dragging {
		if s := m.drag.Session(); s != nil {
			status = fmt.Sprintf("dragging %s -> %s", shortID(s.Point.ID), point.FormatTime(s.Point.Time))
		}
	}
	return mutedStyle.Render(pad(" "+status, m.width))
}

// pinColumns returns the set of visible marker pin columns.
func (m *model) pinColumns() map[int]struct{} {
	pins := make(map[int]struct{})
	if !m.surface.visible {
		return pins
	}
	for _, mk := range m.surface.markers {
		if tm, ok := mk.(*textMarker); ok {
			col := tm.pinColumn()
			if col >= 0 && col < m.width {
				pins[col] = struct{}{}
			}
		}
	}
	return pins
}

func pad(s string, width int) string {
	if len(s) >= width {
		return s[:width]
	}
	return s + strings.Repeat(" ", width-len(s))
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
