package layout

import (
	"slices"

	"github.com/1broseidon/aetherwave/internal/content"
	"github.com/mitchellh/hashstructure/v2"
)

// Size is a source image's pixel size as recorded in an Observation.
type Size struct {
	Width  int
	Height int
}

// Observation captures every input that can change the computed layout.
// Two observations compare equal only when every field matches, image sizes
// in order.
type Observation struct {
	WindowWidth  int
	WindowHeight int
	ImageCount   int
	Mode         Mode
	DisplayIndex int
	Sizes        []Size
}

func observe(cfg Config, displayIndex int, images []content.Image) Observation {
	sizes := make([]Size, len(images))
	for i, img := range images {
		sizes[i] = Size{Width: img.Width, Height: img.Height}
	}
	return Observation{
		WindowWidth:  cfg.WindowWidth,
		WindowHeight: cfg.WindowHeight,
		ImageCount:   len(images),
		Mode:         cfg.Mode,
		DisplayIndex: displayIndex,
		Sizes:        sizes,
	}
}

// Equal reports whether o and other describe the same inputs.
func (o Observation) Equal(other Observation) bool {
	return o.WindowWidth == other.WindowWidth &&
		o.WindowHeight == other.WindowHeight &&
		o.ImageCount == other.ImageCount &&
		o.Mode == other.Mode &&
		o.DisplayIndex == other.DisplayIndex &&
		slices.Equal(o.Sizes, other.Sizes)
}

// Fingerprint is a structural hash for logs and dumps. Cache validity is
// decided by Equal, never by the fingerprint.
func (o Observation) Fingerprint() uint64 {
	h, err := hashstructure.Hash(o, hashstructure.FormatV2, nil)
	if err != nil {
		return 0
	}
	return h
}
