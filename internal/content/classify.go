// Package content classifies source images by orientation and aggregates
// statistics over the active image set.
package content

// Orientation of a source image derived from its pixel aspect ratio.
type Orientation int

const (
	Square Orientation = iota
	Portrait
	Landscape
)

func (o Orientation) String() string {
	switch o {
	case Portrait:
		return "portrait"
	case Landscape:
		return "landscape"
	default:
		return "square"
	}
}

// Orientation thresholds. Ratios equal to either threshold are Square.
const (
	PortraitThreshold  = 0.85
	LandscapeThreshold = 1.15
)

// Image is a source image as seen by the layout core: only its pixel size.
type Image struct {
	Width  int
	Height int
}

// Degenerate reports whether either side is non-positive.
func (img Image) Degenerate() bool {
	return img.Width <= 0 || img.Height <= 0
}

// AspectRatio returns width/height, or 0 for a degenerate image.
func (img Image) AspectRatio() float64 {
	if img.Degenerate() {
		return 0
	}
	return float64(img.Width) / float64(img.Height)
}

// Orientation classifies the image. Degenerate images report Square.
func (img Image) Orientation() Orientation {
	if img.Degenerate() {
		return Square
	}
	return Classify(img.AspectRatio())
}

// Classify maps an aspect ratio to an orientation.
func Classify(ratio float64) Orientation {
	switch {
	case ratio < PortraitThreshold:
		return Portrait
	case ratio > LandscapeThreshold:
		return Landscape
	default:
		return Square
	}
}

// Statistics summarises the orientation mix of an image set.
type Statistics struct {
	Portrait        int
	Landscape       int
	Square          int
	MeanAspectRatio float64
	Mixed           bool
}

// Total returns the number of counted images.
func (s Statistics) Total() int {
	return s.Portrait + s.Landscape + s.Square
}

// Aggregate classifies every non-degenerate image in images. An empty or
// fully degenerate set yields the zero Statistics.
func Aggregate(images []Image) Statistics {
	var stats Statistics
	var sum float64

	for _, img := range images {
		if img.Degenerate() {
			continue
		}
		ratio := img.AspectRatio()
		sum += ratio

		switch Classify(ratio) {
		case Portrait:
			stats.Portrait++
		case Landscape:
			stats.Landscape++
		default:
			stats.Square++
		}
	}

	if total := stats.Total(); total > 0 {
		stats.MeanAspectRatio = sum / float64(total)
		stats.Mixed = stats.Portrait > 0 && stats.Landscape > 0
	}
	return stats
}
