package platform

// WindowID is a platform-neutral window identifier. It never owns the
// underlying window.
type WindowID uint32

// Rect describes a rectangular region in screen coordinates.
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Center returns the rectangle centre using integer division.
func (r Rect) Center() (int, int) {
	return r.X + r.Width/2, r.Y + r.Height/2
}

// Contains reports whether the point lies inside r. Bounds are half-open.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// Intersect returns the overlapping region of r and o, or a zero Rect.
func (r Rect) Intersect(o Rect) Rect {
	x1 := max(r.X, o.X)
	y1 := max(r.Y, o.Y)
	x2 := min(r.X+r.Width, o.X+o.Width)
	y2 := min(r.Y+r.Height, o.Y+o.Height)
	if x2 <= x1 || y2 <= y1 {
		return Rect{}
	}
	return Rect{X: x1, Y: y1, Width: x2 - x1, Height: y2 - y1}
}

// Area returns Width*Height, or 0 for an empty rectangle.
func (r Rect) Area() int {
	if r.Width <= 0 || r.Height <= 0 {
		return 0
	}
	return r.Width * r.Height
}

// Empty reports whether the rectangle has no drawable area.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// DPI holds the diagonal, horizontal and vertical pixel density of a display.
type DPI struct {
	Diagonal   float64
	Horizontal float64
	Vertical   float64
}

// Backend abstracts the windowing system queries the layout core consumes.
// Every display query is per index so that a single failing display can be
// skipped without losing the rest of the topology.
type Backend interface {
	DisplayCount() (int, error)
	DisplayBounds(index int) (Rect, error)
	DisplayDPI(index int) (DPI, error)
	DisplayRefreshRate(index int) (int, error)
	DisplayName(index int) string
	PrimaryDisplay() (int, error)
	ActiveWindow() (WindowID, error)
	WindowBounds(id WindowID) (Rect, error)
}
