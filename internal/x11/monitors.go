package x11

import (
	"fmt"
	"math"

	"github.com/BurntSushi/xgb/randr"
)

const mmPerInch = 25.4

// Monitor represents a physical display driven by an active CRTC.
type Monitor struct {
	ID       int
	Name     string
	X        int
	Y        int
	Width    int
	Height   int
	MmWidth  int
	MmHeight int
	// RefreshRate is the current mode's vertical refresh in Hz, 0 if unknown.
	RefreshRate int
	Primary     bool
	// Err is set when the CRTC could not be queried. Geometry is then zero.
	Err error
}

// DPI returns the diagonal, horizontal and vertical density derived from the
// output's physical size. ok is false when the output reports no size.
func (m Monitor) DPI() (diagonal, horizontal, vertical float64, ok bool) {
	if m.MmWidth <= 0 || m.MmHeight <= 0 || m.Width <= 0 || m.Height <= 0 {
		return 0, 0, 0, false
	}
	horizontal = float64(m.Width) / (float64(m.MmWidth) / mmPerInch)
	vertical = float64(m.Height) / (float64(m.MmHeight) / mmPerInch)
	px := math.Hypot(float64(m.Width), float64(m.Height))
	mm := math.Hypot(float64(m.MmWidth), float64(m.MmHeight))
	diagonal = px / (mm / mmPerInch)
	return diagonal, horizontal, vertical, true
}

// GetMonitors retrieves all active monitors using XRandR. CRTCs whose info
// cannot be fetched are returned with Err set so callers can decide to skip
// them; disabled CRTCs are left out entirely.
func (c *Connection) GetMonitors() ([]Monitor, error) {
	conn := c.XUtil.Conn()

	resources, err := randr.GetScreenResources(conn, c.Root).Reply()
	if err != nil {
		return nil, fmt.Errorf("failed to get screen resources: %w", err)
	}

	modes := make(map[uint32]randr.ModeInfo, len(resources.Modes))
	for _, mode := range resources.Modes {
		modes[mode.Id] = mode
	}

	var primary randr.Output
	if reply, err := randr.GetOutputPrimary(conn, c.Root).Reply(); err == nil {
		primary = reply.Output
	}

	var monitors []Monitor

	for i, crtc := range resources.Crtcs {
		crtcInfo, err := randr.GetCrtcInfo(conn, crtc, resources.ConfigTimestamp).Reply()
		if err != nil {
			monitors = append(monitors, Monitor{
				ID:   i,
				Name: fmt.Sprintf("Monitor%d", i),
				Err:  fmt.Errorf("crtc %d: %w", i, err),
			})
			continue
		}

		// Skip disabled CRTCs
		if crtcInfo.Width == 0 || crtcInfo.Height == 0 || len(crtcInfo.Outputs) == 0 {
			continue
		}

		mon := Monitor{
			ID:      i,
			Name:    fmt.Sprintf("Monitor%d", i),
			X:       int(crtcInfo.X),
			Y:       int(crtcInfo.Y),
			Width:   int(crtcInfo.Width),
			Height:  int(crtcInfo.Height),
			Primary: primary != 0 && crtcInfo.Outputs[0] == primary,
		}

		outputInfo, err := randr.GetOutputInfo(conn, crtcInfo.Outputs[0], resources.ConfigTimestamp).Reply()
		if err == nil {
			mon.Name = string(outputInfo.Name)
			mon.MmWidth = int(outputInfo.MmWidth)
			mon.MmHeight = int(outputInfo.MmHeight)
		}

		if mode, ok := modes[uint32(crtcInfo.Mode)]; ok {
			mon.RefreshRate = refreshRate(mode)
		}

		monitors = append(monitors, mon)
	}

	return monitors, nil
}

// refreshRate computes the vertical refresh from mode timings.
func refreshRate(mode randr.ModeInfo) int {
	if mode.Htotal == 0 || mode.Vtotal == 0 {
		return 0
	}
	total := float64(mode.Htotal) * float64(mode.Vtotal)
	return int(math.Round(float64(mode.DotClock) / total))
}
