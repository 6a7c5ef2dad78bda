// Package layout computes where each source image is placed inside the
// presentation window and caches the result between frames.
package layout

import "fmt"

// Mode selects how many images are shown and how the window is partitioned.
type Mode int

const (
	SingleFullscreen Mode = iota
	DualSplit
	GalleryMosaic
	AdaptiveAuto
)

var modeNames = map[Mode]string{
	SingleFullscreen: "single",
	DualSplit:        "dual",
	GalleryMosaic:    "gallery",
	AdaptiveAuto:     "adaptive",
}

func (m Mode) String() string {
	if name, ok := modeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ParseMode accepts the names produced by Mode.String.
func ParseMode(s string) (Mode, error) {
	for m, name := range modeNames {
		if name == s {
			return m, nil
		}
	}
	return SingleFullscreen, fmt.Errorf("unknown layout mode %q (want single, dual, gallery or adaptive)", s)
}

// MaxImages is the number of slots a mode shows at most.
func (m Mode) MaxImages() int {
	switch m {
	case DualSplit:
		return 2
	case GalleryMosaic:
		return 6
	case AdaptiveAuto:
		return 4
	default:
		return 1
	}
}
