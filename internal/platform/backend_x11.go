package platform

import (
	"errors"
	"fmt"

	"github.com/1broseidon/aetherwave/internal/x11"
	"github.com/BurntSushi/xgb/xproto"
)

// LinuxBackend wraps an existing X11 connection behind the platform Backend interface.
// DisplayCount takes a fresh RandR snapshot; the per-index queries read from it.
type LinuxBackend struct {
	conn     *x11.Connection
	monitors []x11.Monitor
}

var _ Backend = (*LinuxBackend)(nil)

// NewLinuxBackend creates a Linux platform backend from an existing X11 connection.
func NewLinuxBackend(conn *x11.Connection) *LinuxBackend {
	return &LinuxBackend{conn: conn}
}

// NewLinuxBackendFromDisplay creates a new Linux backend by opening a fresh X11 connection.
func NewLinuxBackendFromDisplay() (*LinuxBackend, error) {
	conn, err := x11.NewConnection()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to X11: %w", err)
	}
	return &LinuxBackend{conn: conn}, nil
}

// Connection returns the underlying X11 connection.
func (b *LinuxBackend) Connection() *x11.Connection {
	if b == nil {
		return nil
	}
	return b.conn
}

// Disconnect closes the underlying X11 connection.
func (b *LinuxBackend) Disconnect() {
	if b != nil && b.conn != nil {
		b.conn.Close()
	}
}

func (b *LinuxBackend) DisplayCount() (int, error) {
	conn, err := b.connection()
	if err != nil {
		return 0, err
	}

	monitors, err := conn.GetMonitors()
	if err != nil {
		b.monitors = nil
		return 0, err
	}
	b.monitors = monitors
	return len(monitors), nil
}

func (b *LinuxBackend) monitor(index int) (x11.Monitor, error) {
	if index < 0 || index >= len(b.monitors) {
		return x11.Monitor{}, fmt.Errorf("display %d out of range (have %d)", index, len(b.monitors))
	}
	return b.monitors[index], nil
}

func (b *LinuxBackend) DisplayBounds(index int) (Rect, error) {
	m, err := b.monitor(index)
	if err != nil {
		return Rect{}, err
	}
	if m.Err != nil {
		return Rect{}, m.Err
	}
	return Rect{X: m.X, Y: m.Y, Width: m.Width, Height: m.Height}, nil
}

func (b *LinuxBackend) DisplayDPI(index int) (DPI, error) {
	m, err := b.monitor(index)
	if err != nil {
		return DPI{}, err
	}
	diag, h, v, ok := m.DPI()
	if !ok {
		return DPI{}, fmt.Errorf("display %d (%s) reports no physical size", index, m.Name)
	}
	return DPI{Diagonal: diag, Horizontal: h, Vertical: v}, nil
}

func (b *LinuxBackend) DisplayRefreshRate(index int) (int, error) {
	m, err := b.monitor(index)
	if err != nil {
		return 0, err
	}
	if m.RefreshRate <= 0 {
		return 0, fmt.Errorf("display %d (%s) has no mode timings", index, m.Name)
	}
	return m.RefreshRate, nil
}

func (b *LinuxBackend) DisplayName(index int) string {
	m, err := b.monitor(index)
	if err != nil {
		return fmt.Sprintf("Monitor%d", index)
	}
	return m.Name
}

func (b *LinuxBackend) PrimaryDisplay() (int, error) {
	for i, m := range b.monitors {
		if m.Primary {
			return i, nil
		}
	}
	return -1, errors.New("no primary output")
}

// ActiveWindow returns the currently active/focused window ID.
func (b *LinuxBackend) ActiveWindow() (WindowID, error) {
	conn, err := b.connection()
	if err != nil {
		return 0, err
	}

	wid, err := conn.GetActiveWindow()
	if err != nil {
		return 0, err
	}
	if wid == 0 {
		return 0, ErrNoWindow
	}
	return WindowID(wid), nil
}

// WindowBounds returns a window's root-relative geometry.
func (b *LinuxBackend) WindowBounds(id WindowID) (Rect, error) {
	conn, err := b.connection()
	if err != nil {
		return Rect{}, err
	}

	geom, err := conn.WindowGeometry(xproto.Window(id))
	if err != nil {
		return Rect{}, err
	}
	return Rect{X: geom.X, Y: geom.Y, Width: geom.Width, Height: geom.Height}, nil
}

func (b *LinuxBackend) connection() (*x11.Connection, error) {
	if b == nil || b.conn == nil {
		return nil, fmt.Errorf("x11 backend connection is nil")
	}
	return b.conn, nil
}
