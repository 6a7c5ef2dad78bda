package layout

import (
	"testing"

	"github.com/1broseidon/aetherwave/internal/content"
	"github.com/1broseidon/aetherwave/internal/platform"
)

var (
	landscape = content.Image{Width: 1920, Height: 1080}
	portrait  = content.Image{Width: 1080, Height: 1920}
	square    = content.Image{Width: 1000, Height: 1000}
)

func params(width, height int, images []content.Image) Params {
	cfg := DefaultConfig()
	cfg.SetWindow(width, height)
	cfg.Framing = false
	return ParamsFromConfig(cfg, 1.0, content.Aggregate(images))
}

func TestSelectMode_DecisionTable(t *testing.T) {
	cases := []struct {
		name   string
		stats  content.Statistics
		aspect float64
		want   Mode
	}{
		{"empty", content.Statistics{}, 1.78, SingleFullscreen},
		{"one image", content.Statistics{Landscape: 1}, 1.78, SingleFullscreen},
		{"pair on wide window", content.Statistics{Landscape: 2}, 2.0, DualSplit},
		{"mixed pair on square window", content.Statistics{Portrait: 1, Landscape: 1, Mixed: true}, 1.0, DualSplit},
		{"uniform pair on square window", content.Statistics{Landscape: 2}, 1.0, SingleFullscreen},
		{"five uniform", content.Statistics{Landscape: 5}, 1.78, GalleryMosaic},
		{"five mixed", content.Statistics{Portrait: 2, Landscape: 3, Mixed: true}, 1.78, GalleryMosaic},
		{"mixed with squares", content.Statistics{Portrait: 1, Landscape: 1, Square: 2, Mixed: true}, 1.0, DualSplit},
	}
	for _, tc := range cases {
		if got := SelectMode(tc.stats, tc.aspect); got != tc.want {
			t.Fatalf("%s: expected %s, got %s", tc.name, tc.want, got)
		}
	}
}

func TestCompute_SingleFullscreenFramed(t *testing.T) {
	cfg := DefaultConfig()
	images := []content.Image{landscape}
	slots := Compute(SingleFullscreen, images, ParamsFromConfig(cfg, 1.0, content.Aggregate(images)))

	if len(slots) != 1 {
		t.Fatalf("expected 1 slot, got %d", len(slots))
	}
	want := platform.Rect{X: 96, Y: 54, Width: 1728, Height: 972}
	if slots[0].Rect != want {
		t.Fatalf("expected %+v, got %+v", want, slots[0].Rect)
	}
	if slots[0].ScaleFactor != 0.9 {
		t.Fatalf("expected scale 0.9, got %v", slots[0].ScaleFactor)
	}
	if !slots[0].Complementary || slots[0].Orientation != content.Landscape {
		t.Fatalf("unexpected slot metadata: %+v", slots[0])
	}
}

func TestCompute_SingleFullscreenOnlyPlacesFirst(t *testing.T) {
	images := []content.Image{landscape, portrait}
	slots := Compute(SingleFullscreen, images, params(1920, 1080, images))
	if len(slots) != 2 {
		t.Fatalf("expected 2 slots, got %d", len(slots))
	}
	if slots[1] != (Slot{}) {
		t.Fatalf("expected unplaced slot to be zero, got %+v", slots[1])
	}
}

func TestCompute_DualSplitSideBySide(t *testing.T) {
	images := []content.Image{portrait, landscape}
	slots := Compute(DualSplit, images, params(1920, 1080, images))

	want0 := platform.Rect{X: 176, Y: 0, Width: 608, Height: 1080}
	want1 := platform.Rect{X: 960, Y: 270, Width: 960, Height: 540}
	if slots[0].Rect != want0 {
		t.Fatalf("slot 0: expected %+v, got %+v", want0, slots[0].Rect)
	}
	if slots[1].Rect != want1 {
		t.Fatalf("slot 1: expected %+v, got %+v", want1, slots[1].Rect)
	}
	if !slots[1].Complementary {
		t.Fatalf("expected portrait+landscape pair to be complementary")
	}
}

func TestCompute_DualSplitStacksOnNarrowUniformWindow(t *testing.T) {
	wide := content.Image{Width: 1600, Height: 900}
	images := []content.Image{wide, wide}
	slots := Compute(DualSplit, images, params(1000, 1000, images))

	want0 := platform.Rect{X: 56, Y: 0, Width: 889, Height: 500}
	want1 := platform.Rect{X: 56, Y: 500, Width: 889, Height: 500}
	if slots[0].Rect != want0 || slots[1].Rect != want1 {
		t.Fatalf("expected stacked %+v / %+v, got %+v / %+v", want0, want1, slots[0].Rect, slots[1].Rect)
	}
}

func TestCompute_DualSplitMixedOverridesNarrowWindow(t *testing.T) {
	images := []content.Image{portrait, landscape}
	slots := Compute(DualSplit, images, params(1000, 1000, images))

	if slots[0].Rect.X+slots[0].Rect.Width > 500 {
		t.Fatalf("expected slot 0 in the left half, got %+v", slots[0].Rect)
	}
	if slots[1].Rect.X < 500 {
		t.Fatalf("expected slot 1 in the right half, got %+v", slots[1].Rect)
	}
}

func TestCompute_DualSplitFallsBackToSingle(t *testing.T) {
	images := []content.Image{landscape}
	slots := Compute(DualSplit, images, params(1920, 1080, images))
	want := platform.Rect{X: 0, Y: 0, Width: 1920, Height: 1080}
	if len(slots) != 1 || slots[0].Rect != want {
		t.Fatalf("expected single fullscreen %+v, got %+v", want, slots)
	}
}

func TestCompute_GalleryMosaicLandscapeWindow(t *testing.T) {
	images := []content.Image{square, square, square, square, square}
	slots := Compute(GalleryMosaic, images, params(1920, 1080, images))

	// 3x2 grid of 640x540 cells; slot 4 is column 1, row 1.
	want := platform.Rect{X: 690, Y: 540, Width: 540, Height: 540}
	if slots[4].Rect != want {
		t.Fatalf("expected %+v, got %+v", want, slots[4].Rect)
	}
}

func TestCompute_GalleryMosaicPortraitWindow(t *testing.T) {
	images := []content.Image{square, square, square, square, square}
	slots := Compute(GalleryMosaic, images, params(1080, 1920, images))

	// 2x3 grid of 540x640 cells; slot 4 is column 0, row 2.
	want := platform.Rect{X: 0, Y: 1330, Width: 540, Height: 540}
	if slots[4].Rect != want {
		t.Fatalf("expected %+v, got %+v", want, slots[4].Rect)
	}
}

func TestCompute_GalleryMosaicDoublePadding(t *testing.T) {
	images := []content.Image{square, square, square, square, square}
	p := params(1920, 1080, images)
	p.Framing = true
	slots := Compute(GalleryMosaic, images, p)

	// Cell rect {50,0,540,540}, padded by 192x108.
	want := platform.Rect{X: 242, Y: 108, Width: 156, Height: 324}
	if slots[0].Rect != want {
		t.Fatalf("expected %+v, got %+v", want, slots[0].Rect)
	}
}

func TestCompute_AdaptiveResolvesWithoutState(t *testing.T) {
	images := []content.Image{portrait, landscape}
	adaptive := Compute(AdaptiveAuto, images, params(1000, 1000, images))
	dual := Compute(DualSplit, images, params(1000, 1000, images))
	for i := range dual {
		if adaptive[i] != dual[i] {
			t.Fatalf("slot %d: expected adaptive to match dual split, got %+v vs %+v", i, adaptive[i], dual[i])
		}
	}
}

func TestCompute_ZeroWindowYieldsZeroRects(t *testing.T) {
	images := []content.Image{landscape, portrait}
	for _, m := range []Mode{SingleFullscreen, DualSplit, GalleryMosaic} {
		for i, s := range Compute(m, images, params(0, 0, images)) {
			if s.Rect != (platform.Rect{}) {
				t.Fatalf("%s slot %d: expected zero rect, got %+v", m, i, s.Rect)
			}
		}
	}
}

func TestCompute_EmptyImages(t *testing.T) {
	if slots := Compute(GalleryMosaic, nil, params(1920, 1080, nil)); slots != nil {
		t.Fatalf("expected nil slots, got %+v", slots)
	}
}
