package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/1broseidon/aetherwave/internal/layout"
	"github.com/1broseidon/aetherwave/internal/library"
	"github.com/1broseidon/aetherwave/internal/platform"
)

// BackendKind selects where display topology comes from.
type BackendKind string

const (
	BackendAuto   BackendKind = "auto"   // X11 when DISPLAY is set, else static.
	BackendX11    BackendKind = "x11"    // RandR monitors and EWMH window state.
	BackendStatic BackendKind = "static" // The displays list below.
)

// ImagesConfig controls which files are presented.
type ImagesConfig struct {
	Directory  string   `yaml:"directory"`
	Extensions []string `yaml:"extensions"`
}

// LayoutSection is the user-facing layout configuration.
type LayoutSection struct {
	Mode                string  `yaml:"mode"`
	PreserveAspectRatio bool    `yaml:"preserve_aspect_ratio"`
	Framing             bool    `yaml:"framing"`
	PaddingPercent      float64 `yaml:"padding_percent"` // fraction of the window, 0-0.5
}

// WindowConfig is the presentation window geometry used when no live window
// is available.
type WindowConfig struct {
	X      int `yaml:"x"`
	Y      int `yaml:"y"`
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// DisplayConfig declares one display for the static backend.
type DisplayConfig struct {
	Name        string  `yaml:"name"`
	X           int     `yaml:"x"`
	Y           int     `yaml:"y"`
	Width       int     `yaml:"width"`
	Height      int     `yaml:"height"`
	DPI         float64 `yaml:"dpi"`
	RefreshRate int     `yaml:"refresh_rate"`
	Primary     bool    `yaml:"primary"`
}

// LoggingConfig holds log output settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warning, error
}

// Config represents the application configuration.
type Config struct {
	Backend  BackendKind     `yaml:"backend"`
	Images   ImagesConfig    `yaml:"images"`
	Layout   LayoutSection   `yaml:"layout"`
	Window   WindowConfig    `yaml:"window"`
	Displays []DisplayConfig `yaml:"displays"`
	Logging  LoggingConfig   `yaml:"logging"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	defaults := layout.DefaultConfig()
	return &Config{
		Backend: BackendAuto,
		Images: ImagesConfig{
			Directory:  "",
			Extensions: append([]string(nil), library.DefaultExtensions...),
		},
		Layout: LayoutSection{
			Mode:                defaults.Mode.String(),
			PreserveAspectRatio: defaults.PreserveAspectRatio,
			Framing:             defaults.Framing,
			PaddingPercent:      defaults.PaddingPercent,
		},
		Window: WindowConfig{
			Width:  defaults.WindowWidth,
			Height: defaults.WindowHeight,
		},
		Displays: []DisplayConfig{{
			Name:        "default",
			Width:       1920,
			Height:      1080,
			DPI:         96,
			RefreshRate: 60,
			Primary:     true,
		}},
		Logging: LoggingConfig{Level: "info"},
	}
}

// FramePadding makes a Config usable as a layout.Theme.
func (c *Config) FramePadding() (float64, bool) {
	return c.Layout.PaddingPercent, c.Layout.Framing
}

// LayoutMode returns the parsed layout mode. Validate guarantees it parses.
func (c *Config) LayoutMode() layout.Mode {
	m, err := layout.ParseMode(c.Layout.Mode)
	if err != nil {
		return layout.SingleFullscreen
	}
	return m
}

// EngineConfig converts the layout and window sections into an engine
// configuration.
func (c *Config) EngineConfig() layout.Config {
	cfg := layout.DefaultConfig()
	cfg.SetMode(c.LayoutMode())
	cfg.SetWindow(c.Window.Width, c.Window.Height)
	cfg.PreserveAspectRatio = c.Layout.PreserveAspectRatio
	cfg.Framing = c.Layout.Framing
	cfg.PaddingPercent = c.Layout.PaddingPercent
	return cfg
}

// WindowBounds returns the configured window geometry.
func (c *Config) WindowBounds() platform.Rect {
	return platform.Rect{X: c.Window.X, Y: c.Window.Y, Width: c.Window.Width, Height: c.Window.Height}
}

// StaticBackend builds the static platform backend from the displays list
// and the configured window.
func (c *Config) StaticBackend() *platform.StaticBackend {
	displays := make([]platform.StaticDisplay, len(c.Displays))
	for i, d := range c.Displays {
		displays[i] = platform.StaticDisplay{
			Name:        d.Name,
			Bounds:      platform.Rect{X: d.X, Y: d.Y, Width: d.Width, Height: d.Height},
			DPI:         d.DPI,
			RefreshRate: d.RefreshRate,
			Primary:     d.Primary,
		}
	}
	return platform.NewStaticBackend(displays, c.WindowBounds())
}

// SlogLevel maps logging.level onto a slog level.
func (c *Config) SlogLevel() slog.Level {
	switch c.Logging.Level {
	case "debug":
		return slog.LevelDebug
	case "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Marshal renders the effective configuration as YAML.
func (c *Config) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	return data, nil
}

// Save writes the configuration to path, creating parent directories.
//
// Note: this marshals the effective config and will not preserve comments or
// include structure from the original YAML.
func (c *Config) Save(path string) error {
	if err := c.Validate(); err != nil {
		return err
	}
	data, err := c.Marshal()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// Validate performs strict validation of the effective configuration.
func (c *Config) Validate() error {
	switch c.Backend {
	case BackendAuto, BackendX11, BackendStatic:
	default:
		return &ValidationError{Path: "backend", Err: fmt.Errorf("backend must be one of: auto, x11, static")}
	}

	for i, ext := range c.Images.Extensions {
		if strings.TrimSpace(ext) == "" {
			return &ValidationError{Path: "images.extensions", Err: fmt.Errorf("extension %d is empty", i)}
		}
	}

	if _, err := layout.ParseMode(c.Layout.Mode); err != nil {
		return &ValidationError{Path: "layout.mode", Err: err}
	}
	if c.Layout.PaddingPercent < 0 || c.Layout.PaddingPercent > 0.5 {
		return &ValidationError{Path: "layout.padding_percent", Err: fmt.Errorf("padding_percent must be between 0 and 0.5")}
	}

	if c.Window.Width < 0 || c.Window.Height < 0 {
		return &ValidationError{Path: "window", Err: fmt.Errorf("window width and height must be >= 0")}
	}

	if c.Backend == BackendStatic && len(c.Displays) == 0 {
		return &ValidationError{Path: "displays", Err: fmt.Errorf("static backend needs at least one display")}
	}
	primaries := 0
	for i, d := range c.Displays {
		path := fmt.Sprintf("displays.%d", i)
		if d.Width <= 0 || d.Height <= 0 {
			return &ValidationError{Path: path, Err: fmt.Errorf("display width and height must be > 0")}
		}
		if d.DPI < 0 {
			return &ValidationError{Path: path + ".dpi", Err: fmt.Errorf("dpi must be >= 0")}
		}
		if d.RefreshRate < 0 {
			return &ValidationError{Path: path + ".refresh_rate", Err: fmt.Errorf("refresh_rate must be >= 0")}
		}
		if d.Primary {
			primaries++
		}
	}
	if primaries > 1 {
		return &ValidationError{Path: "displays", Err: fmt.Errorf("at most one display may be primary, got %d", primaries)}
	}

	switch c.Logging.Level {
	case "debug", "info", "warning", "error":
	default:
		return &ValidationError{Path: "logging.level", Err: fmt.Errorf("level must be one of: debug, info, warning, error")}
	}

	return nil
}
