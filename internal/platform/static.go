package platform

import (
	"errors"
	"fmt"
)

// ErrNoWindow is returned when a backend has no window to report.
var ErrNoWindow = errors.New("no window available")

// StaticDisplay is a display declared up front rather than probed.
type StaticDisplay struct {
	Name        string
	Bounds      Rect
	DPI         float64 // 0 means unknown
	RefreshRate int     // 0 means unknown
	Primary     bool
}

// StaticBackend serves a fixed topology and a single window. It backs
// headless runs and tests.
type StaticBackend struct {
	Displays []StaticDisplay
	Window   Rect
}

var _ Backend = (*StaticBackend)(nil)

// NewStaticBackend returns a backend over a copy of displays.
func NewStaticBackend(displays []StaticDisplay, window Rect) *StaticBackend {
	return &StaticBackend{
		Displays: append([]StaticDisplay(nil), displays...),
		Window:   window,
	}
}

func (b *StaticBackend) display(index int) (StaticDisplay, error) {
	if index < 0 || index >= len(b.Displays) {
		return StaticDisplay{}, fmt.Errorf("display %d out of range (have %d)", index, len(b.Displays))
	}
	return b.Displays[index], nil
}

func (b *StaticBackend) DisplayCount() (int, error) {
	return len(b.Displays), nil
}

func (b *StaticBackend) DisplayBounds(index int) (Rect, error) {
	d, err := b.display(index)
	if err != nil {
		return Rect{}, err
	}
	if d.Bounds.Empty() {
		return Rect{}, fmt.Errorf("display %d has empty bounds", index)
	}
	return d.Bounds, nil
}

func (b *StaticBackend) DisplayDPI(index int) (DPI, error) {
	d, err := b.display(index)
	if err != nil {
		return DPI{}, err
	}
	if d.DPI <= 0 {
		return DPI{}, fmt.Errorf("display %d: dpi not declared", index)
	}
	return DPI{Diagonal: d.DPI, Horizontal: d.DPI, Vertical: d.DPI}, nil
}

func (b *StaticBackend) DisplayRefreshRate(index int) (int, error) {
	d, err := b.display(index)
	if err != nil {
		return 0, err
	}
	if d.RefreshRate <= 0 {
		return 0, fmt.Errorf("display %d: refresh rate not declared", index)
	}
	return d.RefreshRate, nil
}

func (b *StaticBackend) DisplayName(index int) string {
	d, err := b.display(index)
	if err != nil || d.Name == "" {
		return fmt.Sprintf("Display%d", index)
	}
	return d.Name
}

func (b *StaticBackend) PrimaryDisplay() (int, error) {
	for i, d := range b.Displays {
		if d.Primary {
			return i, nil
		}
	}
	return -1, errors.New("no primary display declared")
}

func (b *StaticBackend) ActiveWindow() (WindowID, error) {
	if b.Window.Empty() {
		return 0, ErrNoWindow
	}
	return 1, nil
}

func (b *StaticBackend) WindowBounds(id WindowID) (Rect, error) {
	if id != 1 || b.Window.Empty() {
		return Rect{}, ErrNoWindow
	}
	return b.Window, nil
}
