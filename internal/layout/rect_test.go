package layout

import (
	"math"
	"testing"

	"github.com/1broseidon/aetherwave/internal/content"
	"github.com/1broseidon/aetherwave/internal/platform"
)

func TestCenterInBounds_PreservesAspectAndStaysInside(t *testing.T) {
	cases := []struct {
		iw, ih int
		box    platform.Rect
	}{
		{1920, 1080, platform.Rect{X: 0, Y: 0, Width: 800, Height: 800}},
		{1080, 1920, platform.Rect{X: 100, Y: 50, Width: 1920, Height: 1080}},
		{4000, 3000, platform.Rect{X: 0, Y: 0, Width: 640, Height: 480}},
		{600, 400, platform.Rect{X: 960, Y: 0, Width: 960, Height: 1080}},
		{500, 1500, platform.Rect{X: 10, Y: 20, Width: 300, Height: 200}},
	}

	for _, tc := range cases {
		r := CenterInBounds(tc.iw, tc.ih, tc.box, 1.0, true)

		want := float64(tc.iw) / float64(tc.ih)
		got := float64(r.Width) / float64(r.Height)
		if math.Abs(got-want)/want > 0.02 {
			t.Fatalf("%dx%d in %+v: expected ratio %.4f, got %.4f (%+v)", tc.iw, tc.ih, tc.box, want, got, r)
		}

		if r.X < tc.box.X || r.Y < tc.box.Y ||
			r.X+r.Width > tc.box.X+tc.box.Width || r.Y+r.Height > tc.box.Y+tc.box.Height {
			t.Fatalf("%dx%d: rect %+v escapes box %+v", tc.iw, tc.ih, r, tc.box)
		}
	}
}

func TestCenterInBounds_Centres(t *testing.T) {
	r := CenterInBounds(1600, 900, platform.Rect{Width: 1000, Height: 1000}, 1.0, true)
	// scale 0.625: 1000x562.5 -> y = 218.75
	want := platform.Rect{X: 0, Y: 219, Width: 1000, Height: 563}
	if r != want {
		t.Fatalf("expected %+v, got %+v", want, r)
	}
}

func TestCenterInBounds_StretchReturnsBox(t *testing.T) {
	box := platform.Rect{X: 5, Y: 6, Width: 300, Height: 100}
	if r := CenterInBounds(10, 1000, box, 2.0, false); r != box {
		t.Fatalf("expected box %+v, got %+v", box, r)
	}
}

func TestCenterInBounds_DegenerateInput(t *testing.T) {
	box := platform.Rect{Width: 100, Height: 100}
	if r := CenterInBounds(0, 100, box, 1.0, true); r != (platform.Rect{}) {
		t.Fatalf("expected zero rect for zero-width image, got %+v", r)
	}
	if r := CenterInBounds(100, 100, platform.Rect{}, 1.0, true); r != (platform.Rect{}) {
		t.Fatalf("expected zero rect for empty box, got %+v", r)
	}
}

func TestCenterInBounds_DPISnapping(t *testing.T) {
	// 1000x300 into 1000x100: scaled width 333.33, x = 333.33.
	box := platform.Rect{Width: 1000, Height: 100}

	plain := CenterInBounds(1000, 300, box, 1.0, true)
	if plain.X != 333 {
		t.Fatalf("expected unsnapped x=333, got %d", plain.X)
	}

	// At scale 2 the origin lands on the half-pixel grid first: 333.5 -> 334.
	snapped := CenterInBounds(1000, 300, box, 2.0, true)
	if snapped.X != 334 {
		t.Fatalf("expected snapped x=334, got %d", snapped.X)
	}
	if snapped.Width != plain.Width || snapped.Height != plain.Height {
		t.Fatalf("expected snapping to leave size alone, got %+v vs %+v", snapped, plain)
	}

	if got := snap(333.333, 2.0); got != 333.5 {
		t.Fatalf("expected 333.5, got %v", got)
	}
}

func TestAddPadding(t *testing.T) {
	r := AddPadding(platform.Rect{X: 0, Y: 0, Width: 1920, Height: 1080}, 1920, 1080, 0.05)
	want := platform.Rect{X: 96, Y: 54, Width: 1728, Height: 972}
	if r != want {
		t.Fatalf("expected %+v, got %+v", want, r)
	}

	tiny := AddPadding(platform.Rect{Width: 10, Height: 10}, 1920, 1080, 0.05)
	if tiny.Width != 0 || tiny.Height != 0 {
		t.Fatalf("expected clamped size, got %+v", tiny)
	}
}

func TestComplementary(t *testing.T) {
	portrait := Slot{Orientation: content.Portrait, AspectRatio: 0.56}
	wide := Slot{Orientation: content.Landscape, AspectRatio: 2.4}
	standard := Slot{Orientation: content.Landscape, AspectRatio: 1.33}
	hd := Slot{Orientation: content.Landscape, AspectRatio: 1.78}

	if !Complementary(portrait, wide) {
		t.Fatalf("expected differing orientations to be complementary")
	}
	if !Complementary(standard, hd) {
		t.Fatalf("expected close aspect ratios to be complementary")
	}
	if Complementary(standard, wide) {
		t.Fatalf("expected 1.33 and 2.4 not to be complementary")
	}
}

func TestGridDimensions(t *testing.T) {
	cases := []struct {
		n          int
		aspect     float64
		cols, rows int
	}{
		{1, 1.78, 1, 1},
		{2, 1.78, 2, 1},
		{3, 1.78, 2, 2},
		{4, 1.78, 2, 2},
		{5, 1.78, 3, 2},
		{5, 0.56, 2, 3},
		{6, 1.78, 3, 2},
		{7, 1.78, 3, 3},
		{2, 0.56, 1, 2},
	}
	for _, tc := range cases {
		cols, rows := GridDimensions(tc.n, tc.aspect)
		if cols != tc.cols || rows != tc.rows {
			t.Fatalf("GridDimensions(%d, %v): expected %dx%d, got %dx%d", tc.n, tc.aspect, tc.cols, tc.rows, cols, rows)
		}
	}
}
