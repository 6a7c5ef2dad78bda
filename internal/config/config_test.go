package config

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/1broseidon/aetherwave/internal/layout"
)

func writeConfig(t *testing.T, dir, name, data string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return path
}

func TestDefaultConfig_Valid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected defaults to validate, got %v", err)
	}
	if cfg.LayoutMode() != layout.SingleFullscreen {
		t.Fatalf("expected single mode by default, got %s", cfg.LayoutMode())
	}
	if cfg.Window.Width != 1920 || cfg.Window.Height != 1080 {
		t.Fatalf("expected 1920x1080 window, got %dx%d", cfg.Window.Width, cfg.Window.Height)
	}
}

func TestLoadFromPath_MissingFileUsesDefaults(t *testing.T) {
	res, err := LoadFromPath(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if res.Config.Backend != BackendAuto {
		t.Fatalf("expected backend auto, got %q", res.Config.Backend)
	}
	if len(res.Files) != 0 {
		t.Fatalf("expected no files loaded, got %v", res.Files)
	}
}

func TestLoadFromPath_EmptyFileUsesDefaults(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "config.yaml", "# empty\n")
	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if res.Config.Layout.PaddingPercent != 0.05 {
		t.Fatalf("expected default padding 0.05, got %v", res.Config.Layout.PaddingPercent)
	}
}

func TestLoadFromPath_LayoutAndDisplays(t *testing.T) {
	data := strings.Join([]string{
		"backend: static",
		"layout:",
		"  mode: Adaptive",
		"  framing: false",
		"window:",
		"  x: 2000",
		"  width: 1280",
		"  height: 720",
		"displays:",
		"  - name: left",
		"    width: 1920",
		"    height: 1080",
		"    primary: true",
		"  - x: 1920",
		"    width: 2560",
		"    height: 1440",
		"    dpi: 192",
		"    refresh_rate: 144",
		"logging:",
		"  level: debug",
		"",
	}, "\n")
	path := writeConfig(t, t.TempDir(), "config.yaml", data)

	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	cfg := res.Config

	engine := cfg.EngineConfig()
	if engine.Mode != layout.AdaptiveAuto || engine.MaxImages != 4 {
		t.Fatalf("expected adaptive with cap 4, got %s cap %d", engine.Mode, engine.MaxImages)
	}
	if engine.Framing {
		t.Fatalf("expected framing disabled")
	}
	if engine.WindowWidth != 1280 || engine.WindowHeight != 720 {
		t.Fatalf("expected 1280x720, got %dx%d", engine.WindowWidth, engine.WindowHeight)
	}
	if !engine.PreserveAspectRatio {
		t.Fatalf("expected untouched preserve_aspect_ratio default")
	}

	if len(cfg.Displays) != 2 || cfg.Displays[1].Name != "Display1" {
		t.Fatalf("expected two displays with generated name, got %+v", cfg.Displays)
	}
	backend := cfg.StaticBackend()
	count, _ := backend.DisplayCount()
	if count != 2 {
		t.Fatalf("expected static backend with 2 displays, got %d", count)
	}
	if id, err := backend.ActiveWindow(); err != nil {
		t.Fatalf("expected configured window, got %v", err)
	} else if r, _ := backend.WindowBounds(id); r.X != 2000 {
		t.Fatalf("expected window x=2000, got %+v", r)
	}

	if cfg.SlogLevel() != slog.LevelDebug {
		t.Fatalf("expected debug level, got %v", cfg.SlogLevel())
	}
}

func TestConfig_FramePaddingTheme(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Layout.Framing = false
	cfg.Layout.PaddingPercent = 0.1

	var theme layout.Theme = cfg
	percent, enabled := theme.FramePadding()
	if percent != 0.1 || enabled {
		t.Fatalf("expected (0.1, false), got (%v, %v)", percent, enabled)
	}
}

func TestLoadFromPath_StrictUnknownKeyErrors(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "config.yaml", "layout:\n  gap: 1\n")

	_, err := LoadFromPath(path)
	if err == nil {
		t.Fatalf("expected error for unknown key")
	}
	if !strings.Contains(err.Error(), "gap") && !strings.Contains(err.Error(), "field") {
		t.Fatalf("expected unknown field error, got %v", err)
	}
	if !strings.Contains(err.Error(), path) {
		t.Fatalf("expected error to include file path, got %v", err)
	}
}

func TestLoadFromPath_ValidationErrorHasSource(t *testing.T) {
	data := strings.Join([]string{
		"displays:",
		"  - width: 1920",
		"    height: 1080",
		"    dpi: -1",
		"",
	}, "\n")
	path := writeConfig(t, t.TempDir(), "config.yaml", data)

	_, err := LoadFromPath(path)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if verr.Path != "displays.0.dpi" {
		t.Fatalf("expected path displays.0.dpi, got %q", verr.Path)
	}
	if verr.Source.Kind != SourceFile || verr.Source.Line != 4 {
		t.Fatalf("expected source at line 4, got %+v", verr.Source)
	}
	if !strings.Contains(err.Error(), ":4:") {
		t.Fatalf("expected file:line prefix, got %v", err)
	}
}

func TestValidate_Rejects(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
		path   string
	}{
		{"backend", func(c *Config) { c.Backend = "wayland" }, "backend"},
		{"mode", func(c *Config) { c.Layout.Mode = "mosaic" }, "layout.mode"},
		{"padding", func(c *Config) { c.Layout.PaddingPercent = 0.6 }, "layout.padding_percent"},
		{"window", func(c *Config) { c.Window.Width = -1 }, "window"},
		{"static without displays", func(c *Config) { c.Backend = BackendStatic; c.Displays = nil }, "displays"},
		{"two primaries", func(c *Config) {
			c.Displays = append(c.Displays, DisplayConfig{Width: 10, Height: 10, Primary: true})
		}, "displays"},
		{"log level", func(c *Config) { c.Logging.Level = "trace" }, "logging.level"},
		{"extension", func(c *Config) { c.Images.Extensions = []string{" "} }, "images.extensions"},
	}
	for _, tc := range cases {
		cfg := DefaultConfig()
		tc.mutate(cfg)
		err := cfg.Validate()
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("%s: expected ValidationError, got %v", tc.name, err)
		}
		if verr.Path != tc.path {
			t.Fatalf("%s: expected path %q, got %q", tc.name, tc.path, verr.Path)
		}
	}
}

func TestLoadFromPath_IncludeDirectoryOrderAndMainOverrides(t *testing.T) {
	dir := t.TempDir()

	// config.d loaded first, in sorted order.
	configD := filepath.Join(dir, "config.d")
	if err := os.MkdirAll(configD, 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	writeConfig(t, configD, "10-base.yaml", "layout:\n  mode: dual\n  padding_percent: 0.1\n")
	writeConfig(t, configD, "20-override.yaml", "layout:\n  mode: gallery\n")

	// Main file overrides includes.
	main := strings.Join([]string{
		"include:",
		"  - config.d",
		"layout:",
		"  mode: adaptive",
		"",
	}, "\n")
	path := writeConfig(t, dir, "config.yaml", main)

	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if res.Config.Layout.Mode != "adaptive" {
		t.Fatalf("expected mode adaptive, got %q", res.Config.Layout.Mode)
	}
	if res.Config.Layout.PaddingPercent != 0.1 {
		t.Fatalf("expected included padding 0.1 to survive, got %v", res.Config.Layout.PaddingPercent)
	}
	if len(res.Files) != 3 {
		t.Fatalf("expected 3 loaded files, got %v", res.Files)
	}
}

func TestLoadFromPath_IncludeMissingPathHasContext(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "config.yaml", "include:\n  - missing.yaml\n")

	_, err := LoadFromPath(path)
	if err == nil {
		t.Fatalf("expected error")
	}
	if !strings.Contains(err.Error(), "include") || !strings.Contains(err.Error(), "missing.yaml") {
		t.Fatalf("expected include error, got %v", err)
	}
}

func TestLoadFromPath_IncludeCycleDetection(t *testing.T) {
	dir := t.TempDir()
	a := writeConfig(t, dir, "a.yaml", "include: b.yaml\n")
	writeConfig(t, dir, "b.yaml", "include: a.yaml\n")

	_, err := LoadFromPath(a)
	if err == nil {
		t.Fatalf("expected cycle error")
	}
	if !strings.Contains(err.Error(), "include cycle") {
		t.Fatalf("expected cycle error, got %v", err)
	}
}

func TestExplain_FileAndDefaultSources(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "config.yaml", "layout:\n  mode: dual\n")
	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	val, src, err := Explain(res, "layout.mode")
	if err != nil {
		t.Fatalf("explain: %v", err)
	}
	if val != "dual" || src.Kind != SourceFile || src.Line != 2 {
		t.Fatalf("expected dual from file line 2, got %#v from %+v", val, src)
	}

	val, src, err = Explain(res, "displays.0.dpi")
	if err != nil {
		t.Fatalf("explain: %v", err)
	}
	if val != 96.0 || src.Kind != SourceDefault {
		t.Fatalf("expected default dpi 96, got %#v from %+v", val, src)
	}

	if _, _, err := Explain(res, "layout.nope"); err == nil {
		t.Fatalf("expected unknown path error")
	}
}

func TestSave_RoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := DefaultConfig()
	cfg.Layout.Mode = "gallery"
	if err := cfg.Save(path); err != nil {
		t.Fatalf("save: %v", err)
	}

	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if res.Config.LayoutMode() != layout.GalleryMosaic {
		t.Fatalf("expected gallery after reload, got %s", res.Config.LayoutMode())
	}
}
