// Package config provides configuration loading for waveview.
package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Config is the root configuration.
type Config struct {
	// Logging configures structured log output.
	Logging LoggingConfig `mapstructure:"logging"`

	// Database configures the point database.
	Database DatabaseConfig `mapstructure:"database"`

	// View configures the waveform viewport.
	View ViewConfig `mapstructure:"view"`

	// Points configures marker styling and editing.
	Points PointsConfig `mapstructure:"points"`
}

// LoggingConfig holds log output settings.
type LoggingConfig struct {
	Level        string `mapstructure:"level"`
	Format       string `mapstructure:"format"`
	File         string `mapstructure:"file"`
	EnableCaller bool   `mapstructure:"enable_caller"`
}

// DatabaseConfig holds point database settings.
type DatabaseConfig struct {
	// Path is the SQLite file holding the point set.
	Path string `mapstructure:"path"`
}

// ViewConfig holds viewport settings.
type ViewConfig struct {
	// SecondsPerPixel is the zoom scale of the waveform view.
	SecondsPerPixel float64 `mapstructure:"seconds_per_pixel"`

	// WaveColor is the waveform body color.
	WaveColor string `mapstructure:"wave_color"`

	// Duration is the demo waveform length in seconds, used when no
	// audio source is configured.
	Duration float64 `mapstructure:"duration"`
}

// PointsConfig holds marker styling and editing settings.
type PointsConfig struct {
	// Color is the default marker color; a point's own color overrides it.
	Color string `mapstructure:"color"`

	// FontFamily, FontSize and FontStyle configure marker labels.
	FontFamily string `mapstructure:"font_family"`
	FontSize   int    `mapstructure:"font_size"`
	FontStyle  string `mapstructure:"font_style"`

	// EditingEnabled is the global edit lock; when false no marker is
	// draggable regardless of the point's own editable flag.
	EditingEnabled bool `mapstructure:"editing_enabled"`
}

// DefaultConfig returns the configuration defaults.
func DefaultConfig() *Config {
	home, _ := os.UserHomeDir()
	return &Config{
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Database: DatabaseConfig{
			Path: filepath.Join(home, ".config", "waveview", "points.db"),
		},
		View: ViewConfig{
			SecondsPerPixel: 0.1,
			WaveColor:       "#4a90d9",
			Duration:        60,
		},
		Points: PointsConfig{
			Color:          "#ff9800",
			FontFamily:     "sans-serif",
			FontSize:       10,
			FontStyle:      "normal",
			EditingEnabled: true,
		},
	}
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	switch c.Logging.Level {
	case "", "trace", "debug", "info", "warn", "warning", "error", "fatal":
	default:
		return fmt.Errorf("invalid logging level: %q", c.Logging.Level)
	}

	switch c.Logging.Format {
	case "", "console", "json":
	default:
		return fmt.Errorf("invalid logging format: %q", c.Logging.Format)
	}

	if c.View.SecondsPerPixel <= 0 {
		return fmt.Errorf("view.seconds_per_pixel must be positive, got %f", c.View.SecondsPerPixel)
	}
	if c.View.Duration <= 0 {
		return fmt.Errorf("view.duration must be positive, got %f", c.View.Duration)
	}
	if c.Points.FontSize <= 0 {
		return fmt.Errorf("points.font_size must be positive, got %d", c.Points.FontSize)
	}

	return nil
}
