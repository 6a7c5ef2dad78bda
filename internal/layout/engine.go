package layout

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/1broseidon/aetherwave/internal/content"
	"github.com/1broseidon/aetherwave/internal/platform"
)

// Topology reports the display the window is on. *display.Tracker
// satisfies it.
type Topology interface {
	CurrentIndex() int
	DPIScale() float64
}

// Theme supplies framing. When present it overrides Config.Framing and
// Config.PaddingPercent.
type Theme interface {
	FramePadding() (percent float64, enabled bool)
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the engine's logger. A nil logger discards output.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithTheme applies framing from theme.
func WithTheme(theme Theme) Option {
	return func(e *Engine) {
		e.theme = theme
	}
}

// Engine owns the layout configuration and the last computed slots. It
// recomputes only when the observed inputs change.
// It is not safe for concurrent use.
type Engine struct {
	cfg      Config
	topology Topology
	theme    Theme
	logger   *slog.Logger

	slots    []Slot
	stats    content.Statistics
	resolved Mode

	// last is nil until the first computation and after Invalidate.
	last       *Observation
	generation uint64
}

// NewEngine returns an engine over cfg. topology may be nil, in which case
// display index 0 at scale 1.0 is assumed.
func NewEngine(cfg Config, topology Topology, opts ...Option) *Engine {
	e := &Engine{
		cfg:      cfg,
		topology: topology,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		resolved: cfg.Mode,
	}
	if e.cfg.MaxImages <= 0 {
		e.cfg.MaxImages = cfg.Mode.MaxImages()
	}
	for _, opt := range opts {
		opt(e)
	}
	e.applyTheme()
	return e
}

func (e *Engine) applyTheme() {
	if e.theme == nil {
		return
	}
	e.cfg.PaddingPercent, e.cfg.Framing = e.theme.FramePadding()
}

// SetTheme replaces the theme and forces the next computation.
func (e *Engine) SetTheme(theme Theme) {
	e.theme = theme
	e.applyTheme()
	e.Invalidate()
}

func (e *Engine) displayIndex() int {
	if e.topology == nil {
		return 0
	}
	return e.topology.CurrentIndex()
}

func (e *Engine) dpiScale() float64 {
	if e.topology == nil {
		return 1.0
	}
	return e.topology.DPIScale()
}

// CalculateLayout recomputes the slots for images unless nothing observable
// changed since the previous call. It reports whether it recomputed.
func (e *Engine) CalculateLayout(images []content.Image) bool {
	obs := observe(e.cfg, e.displayIndex(), images)
	if e.last != nil && e.last.Equal(obs) {
		return false
	}

	if e.last != nil {
		e.logger.Debug("layout state changed",
			"window", fmt.Sprintf("%dx%d -> %dx%d", e.last.WindowWidth, e.last.WindowHeight, obs.WindowWidth, obs.WindowHeight),
			"images", fmt.Sprintf("%d -> %d", e.last.ImageCount, obs.ImageCount),
			"display", fmt.Sprintf("%d -> %d", e.last.DisplayIndex, obs.DisplayIndex),
		)
	}

	e.last = &obs
	e.generation++

	if len(images) == 0 {
		e.slots = nil
		e.stats = content.Statistics{}
		e.resolved = e.cfg.Mode
		return true
	}

	n := min(len(images), e.cfg.MaxImages)
	shown := images[:n]

	e.stats = content.Aggregate(shown)
	e.resolved = e.cfg.Mode
	if e.resolved == AdaptiveAuto {
		e.resolved = SelectMode(e.stats, e.cfg.WindowAspectRatio)
	}

	e.slots = Compute(e.resolved, shown, ParamsFromConfig(e.cfg, e.dpiScale(), e.stats))

	e.logger.Debug("layout calculated",
		"generation", e.generation,
		"mode", e.cfg.Mode,
		"resolved", e.resolved,
		"slots", len(e.slots),
		"window", fmt.Sprintf("%dx%d", e.cfg.WindowWidth, e.cfg.WindowHeight),
		"fingerprint", obs.Fingerprint(),
	)
	return true
}

// Invalidate forces the next CalculateLayout to recompute.
func (e *Engine) Invalidate() {
	e.last = nil
}

// Generation counts recomputations since the engine was created.
func (e *Engine) Generation() uint64 {
	return e.generation
}

// Observation returns the stored observation, or false before the first
// computation and after Invalidate.
func (e *Engine) Observation() (Observation, bool) {
	if e.last == nil {
		return Observation{}, false
	}
	return *e.last, true
}

// ImageRect returns the placement of slot i, or a zero Rect when i is out of
// range.
func (e *Engine) ImageRect(i int) platform.Rect {
	if i < 0 || i >= len(e.slots) {
		e.logger.Debug("image rect out of range", "index", i, "slots", len(e.slots))
		return platform.Rect{}
	}
	return e.slots[i].Rect
}

// Slots returns a copy of the computed slots.
func (e *Engine) Slots() []Slot {
	return append([]Slot(nil), e.slots...)
}

// CurrentMode returns the configured mode. For AdaptiveAuto this stays
// AdaptiveAuto; see ResolvedMode.
func (e *Engine) CurrentMode() Mode {
	return e.cfg.Mode
}

// ResolvedMode returns the concrete mode used by the last computation.
func (e *Engine) ResolvedMode() Mode {
	return e.resolved
}

// Statistics returns the content statistics of the last computation.
func (e *Engine) Statistics() content.Statistics {
	return e.stats
}

// Config returns a copy of the current configuration.
func (e *Engine) Config() Config {
	return e.cfg
}

// ShouldUseFraming reports whether rectangles are framed.
func (e *Engine) ShouldUseFraming() bool {
	return e.cfg.Framing
}

// SetMode changes the layout mode and its image cap.
func (e *Engine) SetMode(m Mode) {
	if e.cfg.Mode == m {
		return
	}
	e.cfg.SetMode(m)
	e.logger.Info("layout mode changed", "mode", m, "max_images", e.cfg.MaxImages)
}

// UpdateWindowDimensions records a new window size.
func (e *Engine) UpdateWindowDimensions(width, height int) {
	e.cfg.SetWindow(width, height)
	e.logger.Debug("window dimensions updated",
		"width", width,
		"height", height,
		"aspect", e.cfg.WindowAspectRatio,
	)
}

// Dump renders the current layout state for a diagnostics overlay. If the
// topology can describe itself its description is appended.
func (e *Engine) Dump() string {
	var sb strings.Builder
	sb.WriteString("Layout Engine Status:\n")
	fmt.Fprintf(&sb, "  Mode: %s (resolved %s)\n", e.cfg.Mode, e.resolved)
	fmt.Fprintf(&sb, "  Window: %dx%d (aspect: %.3f)\n", e.cfg.WindowWidth, e.cfg.WindowHeight, e.cfg.WindowAspectRatio)
	fmt.Fprintf(&sb, "  Display: %d (scale: %.2f)\n", e.displayIndex(), e.dpiScale())
	fmt.Fprintf(&sb, "  Content: %d portrait, %d landscape, %d square\n", e.stats.Portrait, e.stats.Landscape, e.stats.Square)

	fingerprint := "none"
	if e.last != nil {
		fingerprint = fmt.Sprintf("%016x", e.last.Fingerprint())
	}
	fmt.Fprintf(&sb, "  Generation: %d (state %s)\n", e.generation, fingerprint)
	fmt.Fprintf(&sb, "  Images: %d layouts calculated\n", len(e.slots))

	for i, s := range e.slots {
		fmt.Fprintf(&sb, "  Image %d: %dx%d -> %dx%d at (%d,%d) scale %.3f %s",
			i, s.SourceWidth, s.SourceHeight, s.Rect.Width, s.Rect.Height, s.Rect.X, s.Rect.Y,
			s.ScaleFactor, s.Orientation)
		if s.Complementary {
			sb.WriteString(" complementary")
		}
		sb.WriteString("\n")
	}

	if d, ok := e.topology.(interface{ Describe() string }); ok {
		sb.WriteString(d.Describe())
	}
	return sb.String()
}
