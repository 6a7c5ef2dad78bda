package layout

import "github.com/1broseidon/aetherwave/internal/content"

// SelectMode picks a concrete mode for the content mix and window shape.
// Rules are evaluated in order and the first match wins.
func SelectMode(stats content.Statistics, windowAspect float64) Mode {
	total := stats.Total()

	switch {
	case total <= 1:
		return SingleFullscreen
	case total == 2 && windowAspect > 1.5:
		return DualSplit
	case stats.Mixed && stats.Portrait+stats.Landscape <= 4:
		return DualSplit
	case total > 2:
		return GalleryMosaic
	default:
		return SingleFullscreen
	}
}
