package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/xevent"
	"github.com/BurntSushi/xgbutil/xprop"
	"github.com/BurntSushi/xgbutil/xwindow"
)

// WindowChange describes a structure or state change of a watched window.
type WindowChange struct {
	Geometry  Geometry
	Maximized bool
}

// WatchWindow subscribes to structure and property notifications on
// windowID. fn is called from the event loop with the window's current
// root-relative geometry whenever it is configured or its _NET_WM_STATE
// changes.
func (c *Connection) WatchWindow(windowID xproto.Window, fn func(WindowChange)) error {
	win := xwindow.New(c.XUtil, windowID)
	if err := win.Listen(xproto.EventMaskStructureNotify, xproto.EventMaskPropertyChange); err != nil {
		return fmt.Errorf("failed to listen on window %d: %w", windowID, err)
	}

	emit := func() {
		geom, err := c.WindowGeometry(windowID)
		if err != nil {
			return
		}
		fn(WindowChange{Geometry: geom, Maximized: c.IsMaximized(windowID)})
	}

	xevent.ConfigureNotifyFun(func(_ *xgbutil.XUtil, _ xevent.ConfigureNotifyEvent) {
		emit()
	}).Connect(c.XUtil, windowID)

	xevent.PropertyNotifyFun(func(xu *xgbutil.XUtil, ev xevent.PropertyNotifyEvent) {
		name, err := xprop.AtomName(xu, ev.Atom)
		if err != nil || name != "_NET_WM_STATE" {
			return
		}
		emit()
	}).Connect(c.XUtil, windowID)

	return nil
}
