// Package window turns raw window events into layout invalidations.
package window

import (
	"io"
	"log/slog"

	"github.com/1broseidon/aetherwave/internal/display"
	"github.com/1broseidon/aetherwave/internal/platform"
)

// EventKind identifies a raw window event.
type EventKind int

const (
	EventResize EventKind = iota
	EventMove
	EventMaximize
	EventRestore
	EventDisplayChange
)

func (k EventKind) String() string {
	switch k {
	case EventResize:
		return "resize"
	case EventMove:
		return "move"
	case EventMaximize:
		return "maximize"
	case EventRestore:
		return "restore"
	case EventDisplayChange:
		return "display-change"
	default:
		return "unknown"
	}
}

// Event is a raw window event as delivered by the windowing system.
// Resize, maximize and restore read Width and Height; move reads X and Y.
type Event struct {
	Kind   EventKind
	X      int
	Y      int
	Width  int
	Height int
}

// Layout is the part of the layout engine the monitor drives.
type Layout interface {
	UpdateWindowDimensions(width, height int)
	Invalidate()
}

// Topology is the part of the display tracker the monitor drives.
type Topology interface {
	Scan() []display.Descriptor
	Locate(window platform.Rect) (index int, changed bool)
}

// Monitor tracks window geometry and is the only component that forces
// layout invalidation outside observation diffing. It is not safe for
// concurrent use.
type Monitor struct {
	layout   Layout
	topology Topology
	logger   *slog.Logger
	bounds   platform.Rect
}

// NewMonitor starts tracking a window at initial. The initial display is
// located and the layout receives the initial dimensions.
func NewMonitor(layout Layout, topology Topology, initial platform.Rect, logger *slog.Logger) *Monitor {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	m := &Monitor{
		layout:   layout,
		topology: topology,
		logger:   logger,
		bounds:   initial,
	}
	m.topology.Locate(initial)
	m.layout.UpdateWindowDimensions(initial.Width, initial.Height)
	return m
}

// Bounds returns the last known window geometry.
func (m *Monitor) Bounds() platform.Rect {
	return m.bounds
}

// UpdateWindowDimensions forwards a size to the layout without event
// semantics.
func (m *Monitor) UpdateWindowDimensions(width, height int) {
	m.bounds.Width = width
	m.bounds.Height = height
	m.layout.UpdateWindowDimensions(width, height)
}

// HandleResize records a new window size. It reports whether the size
// changed, in which case the layout is invalidated.
func (m *Monitor) HandleResize(width, height int) bool {
	if width == m.bounds.Width && height == m.bounds.Height {
		return false
	}

	m.logger.Info("window resized",
		"from_width", m.bounds.Width,
		"from_height", m.bounds.Height,
		"width", width,
		"height", height,
	)

	m.UpdateWindowDimensions(width, height)
	m.layout.Invalidate()
	// The centre moved with the size.
	m.topology.Locate(m.bounds)
	return true
}

// HandleMove records a new window position and re-detects the display. It
// reports whether the window crossed onto another display, which
// invalidates the layout even at an unchanged pixel size.
func (m *Monitor) HandleMove(x, y int) bool {
	m.bounds.X = x
	m.bounds.Y = y

	index, changed := m.topology.Locate(m.bounds)
	if !changed {
		return false
	}

	m.logger.Info("window moved between displays", "display", index)
	m.layout.Invalidate()
	return true
}

// HandleMaximize is a resize to the maximized size.
func (m *Monitor) HandleMaximize(width, height int) bool {
	return m.HandleResize(width, height)
}

// HandleRestore is a resize to the restored size.
func (m *Monitor) HandleRestore(width, height int) bool {
	return m.HandleResize(width, height)
}

// HandleDisplayChange rescans the topology after a hot-plug and always
// invalidates the layout.
func (m *Monitor) HandleDisplayChange() {
	displays := m.topology.Scan()
	index, _ := m.topology.Locate(m.bounds)
	m.logger.Info("display topology changed", "displays", len(displays), "current", index)
	m.layout.Invalidate()
}

// HandleEvent dispatches ev and reports whether the layout was invalidated.
func (m *Monitor) HandleEvent(ev Event) bool {
	switch ev.Kind {
	case EventResize:
		return m.HandleResize(ev.Width, ev.Height)
	case EventMove:
		return m.HandleMove(ev.X, ev.Y)
	case EventMaximize:
		return m.HandleMaximize(ev.Width, ev.Height)
	case EventRestore:
		return m.HandleRestore(ev.Width, ev.Height)
	case EventDisplayChange:
		m.HandleDisplayChange()
		return true
	default:
		m.logger.Debug("ignoring window event", "kind", ev.Kind)
		return false
	}
}

// HandleConfigure processes a combined geometry update, as X11 delivers, as
// a resize followed by a move. It reports whether the layout was
// invalidated.
func (m *Monitor) HandleConfigure(bounds platform.Rect) bool {
	resized := m.HandleResize(bounds.Width, bounds.Height)
	moved := m.HandleMove(bounds.X, bounds.Y)
	return resized || moved
}
