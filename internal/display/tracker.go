// Package display tracks the physical display topology and which display
// currently hosts the presentation window.
package display

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/1broseidon/aetherwave/internal/platform"
)

const (
	// BaselineDPI is the density at which DPIScale is 1.0.
	BaselineDPI        = 96.0
	defaultRefreshRate = 60
)

// Source is the subset of platform.Backend the tracker queries.
type Source interface {
	DisplayCount() (int, error)
	DisplayBounds(index int) (platform.Rect, error)
	DisplayDPI(index int) (platform.DPI, error)
	DisplayRefreshRate(index int) (int, error)
	DisplayName(index int) string
	PrimaryDisplay() (int, error)
}

// Descriptor is a read-only snapshot of one attached display.
type Descriptor struct {
	// Index is the position within the current topology, not the source index.
	Index       int
	Name        string
	Bounds      platform.Rect
	DPIScale    float64
	HDPI        float64
	VDPI        float64
	RefreshRate int
	Primary     bool
}

// Tracker owns the display list and the current display index.
// It is not safe for concurrent use.
type Tracker struct {
	source   Source
	logger   *slog.Logger
	displays []Descriptor
	current  int
}

// NewTracker returns a tracker with an empty topology. Call Scan to populate it.
func NewTracker(source Source, logger *slog.Logger) *Tracker {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Tracker{source: source, logger: logger}
}

// Scan rebuilds the topology from the source. Displays whose bounds cannot be
// queried are skipped; DPI and refresh failures fall back to defaults. Scan
// never fails: a broken source yields an empty topology.
func (t *Tracker) Scan() []Descriptor {
	t.displays = nil

	count, err := t.source.DisplayCount()
	if err != nil {
		t.logger.Warn("display enumeration failed", "err", err)
		return nil
	}

	primary, err := t.source.PrimaryDisplay()
	if err != nil {
		primary = -1
	}

	displays := make([]Descriptor, 0, count)
	for i := 0; i < count; i++ {
		bounds, err := t.source.DisplayBounds(i)
		if err != nil {
			t.logger.Debug("skipping display", "display", i, "err", err)
			continue
		}

		d := Descriptor{
			Index:       len(displays),
			Name:        t.source.DisplayName(i),
			Bounds:      bounds,
			DPIScale:    1.0,
			HDPI:        BaselineDPI,
			VDPI:        BaselineDPI,
			RefreshRate: defaultRefreshRate,
			Primary:     i == primary,
		}

		if dpi, err := t.source.DisplayDPI(i); err == nil && dpi.Diagonal > 0 {
			d.HDPI = dpi.Horizontal
			d.VDPI = dpi.Vertical
			d.DPIScale = dpi.Diagonal / BaselineDPI
		} else {
			t.logger.Warn("could not detect DPI, using defaults", "display", i, "err", err)
		}

		if hz, err := t.source.DisplayRefreshRate(i); err == nil {
			d.RefreshRate = hz
		}

		t.logger.Debug("display detected",
			"display", d.Index,
			"name", d.Name,
			"bounds", fmt.Sprintf("%dx%d+%d+%d", bounds.Width, bounds.Height, bounds.X, bounds.Y),
			"refresh", d.RefreshRate,
			"dpi_scale", d.DPIScale,
		)
		displays = append(displays, d)
	}

	t.displays = displays
	return t.Displays()
}

// Displays returns a copy of the current topology.
func (t *Tracker) Displays() []Descriptor {
	return append([]Descriptor(nil), t.displays...)
}

// CurrentIndex returns the index of the display hosting the window.
func (t *Tracker) CurrentIndex() int {
	return t.current
}

// Current returns the current display, or false when the index is outside
// the topology (for example after a display was unplugged).
func (t *Tracker) Current() (Descriptor, bool) {
	if t.current < 0 || t.current >= len(t.displays) {
		return Descriptor{}, false
	}
	return t.displays[t.current], true
}

// DPIScale returns the current display's scale, or 1.0 if unknown.
func (t *Tracker) DPIScale() float64 {
	if d, ok := t.Current(); ok {
		return d.DPIScale
	}
	return 1.0
}

// Locate makes the display containing the window centre current. When no
// display contains the centre the previous index is kept. changed reports
// whether the index moved.
func (t *Tracker) Locate(window platform.Rect) (index int, changed bool) {
	cx, cy := window.Center()

	for _, d := range t.displays {
		if !d.Bounds.Contains(cx, cy) {
			continue
		}
		if d.Index == t.current {
			return t.current, false
		}
		t.logger.Info("window moved to display",
			"from", t.current,
			"to", d.Index,
			"name", d.Name,
			"dpi_scale", d.DPIScale,
		)
		t.current = d.Index
		return t.current, true
	}

	t.logger.Debug("window centre outside every display", "x", cx, "y", cy, "kept", t.current)
	return t.current, false
}

// Optimal returns the display sharing the largest area with window, ties
// going to the lower index. It returns -1 for an empty topology or a window
// that overlaps no display.
func (t *Tracker) Optimal(window platform.Rect) int {
	best, bestArea := -1, 0
	for _, d := range t.displays {
		if area := d.Bounds.Intersect(window).Area(); area > bestArea {
			best, bestArea = d.Index, area
		}
	}
	return best
}

// IsOnOptimal reports whether the current display is the optimal one.
func (t *Tracker) IsOnOptimal(window platform.Rect) bool {
	return t.Optimal(window) == t.current
}

// Describe renders the topology for diagnostics.
func (t *Tracker) Describe() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Displays: %d (current %d)\n", len(t.displays), t.current)
	for _, d := range t.displays {
		fmt.Fprintf(&sb, "  Display %d %q: %dx%d at (%d,%d) @ %dHz DPI: %.1f (scale: %.2f)",
			d.Index, d.Name, d.Bounds.Width, d.Bounds.Height, d.Bounds.X, d.Bounds.Y,
			d.RefreshRate, d.HDPI, d.DPIScale)
		if d.Primary {
			sb.WriteString(" primary")
		}
		if d.Index == t.current {
			sb.WriteString(" (current)")
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
