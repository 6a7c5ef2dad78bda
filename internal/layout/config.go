package layout

// Config is the mutable layout configuration. Mode and MaxImages change
// together through SetMode; the window fields through SetWindow.
type Config struct {
	Mode                Mode
	WindowWidth         int
	WindowHeight        int
	WindowAspectRatio   float64
	MaxImages           int
	PreserveAspectRatio bool
	Framing             bool
	// PaddingPercent is a fraction of the window size, 0.05 is five percent.
	PaddingPercent float64
}

// DefaultConfig mirrors a 1080p window showing a single framed image.
func DefaultConfig() Config {
	cfg := Config{
		PreserveAspectRatio: true,
		Framing:             true,
		PaddingPercent:      0.05,
	}
	cfg.SetMode(SingleFullscreen)
	cfg.SetWindow(1920, 1080)
	return cfg
}

// SetMode switches mode and resets the image cap to the mode's maximum.
func (c *Config) SetMode(m Mode) {
	c.Mode = m
	c.MaxImages = m.MaxImages()
}

// SetWindow records new window dimensions. A zero height gives aspect 0.
func (c *Config) SetWindow(width, height int) {
	c.WindowWidth = width
	c.WindowHeight = height
	c.WindowAspectRatio = 0
	if height > 0 {
		c.WindowAspectRatio = float64(width) / float64(height)
	}
}
