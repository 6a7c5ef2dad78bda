package layout

import (
	"github.com/1broseidon/aetherwave/internal/content"
	"github.com/1broseidon/aetherwave/internal/platform"
)

// Slot is the computed placement of one image.
type Slot struct {
	SourceWidth  int
	SourceHeight int
	AspectRatio  float64
	Orientation  content.Orientation
	Rect         platform.Rect
	// ScaleFactor is Rect.Width over SourceWidth.
	ScaleFactor   float64
	Complementary bool
}

// Params carries every input Compute reads besides the mode and images.
type Params struct {
	WindowWidth         int
	WindowHeight        int
	WindowAspectRatio   float64
	PreserveAspectRatio bool
	Framing             bool
	PaddingPercent      float64
	DPIScale            float64
	Stats               content.Statistics
}

// ParamsFromConfig fills the window and framing fields from cfg.
func ParamsFromConfig(cfg Config, dpiScale float64, stats content.Statistics) Params {
	return Params{
		WindowWidth:         cfg.WindowWidth,
		WindowHeight:        cfg.WindowHeight,
		WindowAspectRatio:   cfg.WindowAspectRatio,
		PreserveAspectRatio: cfg.PreserveAspectRatio,
		Framing:             cfg.Framing,
		PaddingPercent:      cfg.PaddingPercent,
		DPIScale:            dpiScale,
		Stats:               stats,
	}
}

// Compute places images according to mode and returns one slot per image.
// Images the mode does not show get a zero Slot. AdaptiveAuto is resolved
// through SelectMode; Compute itself never mutates shared state.
func Compute(mode Mode, images []content.Image, p Params) []Slot {
	if len(images) == 0 {
		return nil
	}
	if mode == AdaptiveAuto {
		mode = SelectMode(p.Stats, p.WindowAspectRatio)
	}

	slots := make([]Slot, len(images))
	switch mode {
	case DualSplit:
		p.dualSplit(images, slots)
	case GalleryMosaic:
		p.galleryMosaic(images, slots)
	default:
		p.singleFullscreen(images, slots)
	}
	return slots
}

func (p Params) window() platform.Rect {
	return platform.Rect{Width: p.WindowWidth, Height: p.WindowHeight}
}

// place fits img into box and applies framing at the given padding.
func (p Params) place(img content.Image, box platform.Rect, padding float64) Slot {
	s := Slot{
		SourceWidth:  img.Width,
		SourceHeight: img.Height,
		AspectRatio:  img.AspectRatio(),
		Orientation:  img.Orientation(),
	}

	s.Rect = CenterInBounds(img.Width, img.Height, box, p.DPIScale, p.PreserveAspectRatio)
	if p.Framing && !s.Rect.Empty() {
		s.Rect = AddPadding(s.Rect, p.WindowWidth, p.WindowHeight, padding)
	}
	if img.Width > 0 {
		s.ScaleFactor = float64(s.Rect.Width) / float64(img.Width)
	}
	return s
}

func (p Params) singleFullscreen(images []content.Image, slots []Slot) {
	slots[0] = p.place(images[0], p.window(), p.PaddingPercent)
	slots[0].Complementary = true
}

func (p Params) dualSplit(images []content.Image, slots []Slot) {
	if len(images) < 2 {
		p.singleFullscreen(images, slots)
		return
	}

	// Mixed content always goes side by side, whatever the window shape.
	vertical := p.WindowAspectRatio > 1.4 || p.Stats.Mixed

	for i := 0; i < 2; i++ {
		var half platform.Rect
		if vertical {
			half = platform.Rect{
				X:      i * p.WindowWidth / 2,
				Width:  p.WindowWidth / 2,
				Height: p.WindowHeight,
			}
		} else {
			half = platform.Rect{
				Y:      i * p.WindowHeight / 2,
				Width:  p.WindowWidth,
				Height: p.WindowHeight / 2,
			}
		}
		slots[i] = p.place(images[i], half, p.PaddingPercent)
	}

	slots[0].Complementary = true
	slots[1].Complementary = Complementary(slots[0], slots[1])
}

func (p Params) galleryMosaic(images []content.Image, slots []Slot) {
	cols, rows := GridDimensions(len(images), p.WindowAspectRatio)
	cellW := p.WindowWidth / cols
	cellH := p.WindowHeight / rows

	for i, img := range images {
		col := i % cols
		row := i / cols
		if row >= rows {
			break
		}
		cell := platform.Rect{
			X:      col * cellW,
			Y:      row * cellH,
			Width:  cellW,
			Height: cellH,
		}
		// Grid cells use double padding.
		slots[i] = p.place(img, cell, p.PaddingPercent*2)
		slots[i].Complementary = true
	}
}
