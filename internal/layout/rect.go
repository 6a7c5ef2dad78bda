package layout

import (
	"math"

	"github.com/1broseidon/aetherwave/internal/platform"
)

// CenterInBounds fits an iw x ih image into box. With preserve set the image
// is scaled uniformly and centred; otherwise box is returned as is. On
// displays denser than the baseline the origin is snapped to the device
// pixel grid before the final rounding. Degenerate input yields a zero Rect.
func CenterInBounds(iw, ih int, box platform.Rect, dpiScale float64, preserve bool) platform.Rect {
	if iw <= 0 || ih <= 0 || box.Empty() {
		return platform.Rect{}
	}
	if !preserve {
		return box
	}

	scale := math.Min(float64(box.Width)/float64(iw), float64(box.Height)/float64(ih))
	w := float64(iw) * scale
	h := float64(ih) * scale

	x := float64(box.X) + (float64(box.Width)-w)/2
	y := float64(box.Y) + (float64(box.Height)-h)/2

	if dpiScale > 1.0 {
		x = snap(x, dpiScale)
		y = snap(y, dpiScale)
	}

	return platform.Rect{
		X:      int(math.Round(x)),
		Y:      int(math.Round(y)),
		Width:  int(math.Round(w)),
		Height: int(math.Round(h)),
	}
}

func snap(v, scale float64) float64 {
	return math.Round(v*scale) / scale
}

// AddPadding shrinks r by a fraction of the window size on every side.
// Width and height never go below zero.
func AddPadding(r platform.Rect, windowWidth, windowHeight int, percent float64) platform.Rect {
	px := int(float64(windowWidth) * percent)
	py := int(float64(windowHeight) * percent)

	return platform.Rect{
		X:      r.X + px,
		Y:      r.Y + py,
		Width:  max(r.Width-2*px, 0),
		Height: max(r.Height-2*py, 0),
	}
}

// Complementary reports whether two placed images read well together:
// differing orientation, or aspect ratios within 0.5 of each other.
func Complementary(a, b Slot) bool {
	if a.Orientation != b.Orientation {
		return true
	}
	return math.Abs(a.AspectRatio-b.AspectRatio) < 0.5
}

// GridDimensions returns the mosaic grid for n images. Portrait windows get
// the transposed grid.
func GridDimensions(n int, windowAspect float64) (cols, rows int) {
	switch {
	case n <= 2:
		cols, rows = n, 1
	case n <= 4:
		cols, rows = 2, 2
	case n <= 6:
		cols, rows = 3, 2
	default:
		cols, rows = 3, 3
	}

	if windowAspect < 1.0 {
		cols, rows = rows, cols
	}
	return cols, rows
}
