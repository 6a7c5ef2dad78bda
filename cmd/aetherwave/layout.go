package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"golang.org/x/term"

	"github.com/1broseidon/aetherwave/internal/config"
	"github.com/1broseidon/aetherwave/internal/content"
	"github.com/1broseidon/aetherwave/internal/display"
	"github.com/1broseidon/aetherwave/internal/layout"
	"github.com/1broseidon/aetherwave/internal/library"
	"github.com/1broseidon/aetherwave/internal/platform"
	"github.com/1broseidon/aetherwave/internal/preview"
	"github.com/1broseidon/aetherwave/internal/window"
)

// errUsage marks errors that should exit with status 2.
var errUsage = errors.New("usage error")

type commonFlags struct {
	path    *string
	dir     *string
	mode    *string
	verbose *bool
}

func addCommonFlags(fs *flag.FlagSet) commonFlags {
	return commonFlags{
		path:    fs.String("path", "", pathUsage),
		dir:     fs.String("dir", "", "Image directory (default: images.directory from config)"),
		mode:    fs.String("mode", "", "Layout mode: single, dual, gallery or adaptive"),
		verbose: fs.Bool("verbose", false, "Enable debug logging"),
	}
}

// presentation is everything a layout run needs, wired from config.
type presentation struct {
	cfg      *config.Config
	logger   *slog.Logger
	sess     *session
	tracker  *display.Tracker
	engine   *layout.Engine
	monitor  *window.Monitor
	windowID platform.WindowID
	entries  []library.Entry
	images   []content.Image
}

func (p *presentation) Close() {
	if p.sess != nil {
		p.sess.Close()
	}
}

func exitCode(err error) int {
	if errors.Is(err, errUsage) {
		return 2
	}
	return 1
}

// openPresentation loads config and scans displays and images. No layout
// is computed yet. adjust, when non-nil, rewrites the window geometry before
// the monitor is created.
func openPresentation(flags commonFlags, adjust func(platform.Rect, *display.Tracker) platform.Rect) (*presentation, error) {
	res, err := loadConfig(*flags.path)
	if err != nil {
		return nil, err
	}
	cfg := res.Config

	if *flags.mode != "" {
		if _, err := layout.ParseMode(*flags.mode); err != nil {
			return nil, fmt.Errorf("%w: %v", errUsage, err)
		}
		cfg.Layout.Mode = *flags.mode
	}
	dir := cfg.Images.Directory
	if *flags.dir != "" {
		dir = *flags.dir
	}
	if dir == "" {
		return nil, fmt.Errorf("%w: no image directory (set images.directory or pass --dir)", errUsage)
	}

	logger := newLogger(cfg.SlogLevel(), *flags.verbose)

	entries, err := library.NewScanner(cfg.Images.Extensions, logger).Scan(dir)
	if err != nil {
		return nil, err
	}

	sess, err := openBackend(cfg, logger)
	if err != nil {
		return nil, err
	}

	p := &presentation{
		cfg:     cfg,
		logger:  logger,
		sess:    sess,
		entries: entries,
		images:  library.Images(entries),
	}

	p.tracker = display.NewTracker(sess.backend, logger)
	if len(p.tracker.Scan()) == 0 {
		logger.Warn("no displays detected, assuming baseline DPI")
	}

	bounds := cfg.WindowBounds()
	if id, err := sess.backend.ActiveWindow(); err == nil {
		if live, err := sess.backend.WindowBounds(id); err == nil {
			p.windowID = id
			bounds = live
		} else {
			logger.Debug("active window geometry unavailable", "error", err)
		}
	}
	if adjust != nil {
		bounds = adjust(bounds, p.tracker)
	}

	p.engine = layout.NewEngine(cfg.EngineConfig(), p.tracker,
		layout.WithLogger(logger),
		layout.WithTheme(cfg),
	)
	p.monitor = window.NewMonitor(p.engine, p.tracker, bounds, logger)

	logger.Debug("presentation ready",
		"images", len(p.images),
		"window", fmt.Sprintf("%dx%d+%d+%d", bounds.Width, bounds.Height, bounds.X, bounds.Y),
		"optimal_display", p.tracker.IsOnOptimal(bounds),
	)
	return p, nil
}

type slotJSON struct {
	Index         int     `json:"index"`
	Path          string  `json:"path"`
	SourceWidth   int     `json:"source_width"`
	SourceHeight  int     `json:"source_height"`
	Orientation   string  `json:"orientation"`
	X             int     `json:"x"`
	Y             int     `json:"y"`
	Width         int     `json:"width"`
	Height        int     `json:"height"`
	ScaleFactor   float64 `json:"scale_factor"`
	Complementary bool    `json:"complementary"`
}

type layoutJSON struct {
	Mode         string     `json:"mode"`
	ResolvedMode string     `json:"resolved_mode"`
	WindowWidth  int        `json:"window_width"`
	WindowHeight int        `json:"window_height"`
	Display      int        `json:"display"`
	DPIScale     float64    `json:"dpi_scale"`
	Slots        []slotJSON `json:"slots"`
}

func runLayout(args []string) int {
	fs := flag.NewFlagSet("layout", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	flags := addCommonFlags(fs)
	width := fs.Int("width", 0, "Override window width")
	height := fs.Int("height", 0, "Override window height")
	displayIndex := fs.Int("display", -1, "Centre the window on this display index")
	showPreview := fs.Bool("preview", false, "Draw an ASCII preview of the layout")
	asJSON := fs.Bool("json", false, "Output JSON")
	dump := fs.Bool("dump", false, "Print engine and display diagnostics")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: aetherwave layout [--dir DIR] [--mode MODE] [--width W --height H] [--display N] [--preview] [--json] [--dump]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Compute where each image in DIR is drawn inside the presentation window.")
		fmt.Fprintln(os.Stderr, "")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "layout takes no arguments")
		fs.Usage()
		return 2
	}
	if *width < 0 || *height < 0 {
		fmt.Fprintln(os.Stderr, "--width and --height must be >= 0")
		return 2
	}

	p, err := openPresentation(flags, func(bounds platform.Rect, tracker *display.Tracker) platform.Rect {
		if *width > 0 {
			bounds.Width = *width
		}
		if *height > 0 {
			bounds.Height = *height
		}
		if *displayIndex >= 0 {
			displays := tracker.Displays()
			if *displayIndex < len(displays) {
				d := displays[*displayIndex].Bounds
				bounds.X = d.X + (d.Width-bounds.Width)/2
				bounds.Y = d.Y + (d.Height-bounds.Height)/2
			}
		}
		return bounds
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitCode(err)
	}
	defer p.Close()

	if *displayIndex >= len(p.tracker.Displays()) {
		fmt.Fprintf(os.Stderr, "display %d not found (have %d)\n", *displayIndex, len(p.tracker.Displays()))
		return 2
	}

	p.engine.CalculateLayout(p.images)
	slots := p.engine.Slots()
	cfg := p.engine.Config()

	if *asJSON {
		out := layoutJSON{
			Mode:         p.engine.CurrentMode().String(),
			ResolvedMode: p.engine.ResolvedMode().String(),
			WindowWidth:  cfg.WindowWidth,
			WindowHeight: cfg.WindowHeight,
			Display:      p.tracker.CurrentIndex(),
			DPIScale:     p.tracker.DPIScale(),
			Slots:        make([]slotJSON, 0, len(slots)),
		}
		for i, s := range slots {
			out.Slots = append(out.Slots, slotJSON{
				Index:         i,
				Path:          p.entries[i].Path,
				SourceWidth:   s.SourceWidth,
				SourceHeight:  s.SourceHeight,
				Orientation:   s.Orientation.String(),
				X:             s.Rect.X,
				Y:             s.Rect.Y,
				Width:         s.Rect.Width,
				Height:        s.Rect.Height,
				ScaleFactor:   s.ScaleFactor,
				Complementary: s.Complementary,
			})
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(out); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		return 0
	}

	fmt.Printf("mode: %s (resolved %s)  window: %dx%d  display: %d  dpi scale: %.2f\n",
		p.engine.CurrentMode(), p.engine.ResolvedMode(),
		cfg.WindowWidth, cfg.WindowHeight, p.tracker.CurrentIndex(), p.tracker.DPIScale())

	rows := make([][]string, 0, len(slots))
	rects := make([]platform.Rect, 0, len(slots))
	for i, s := range slots {
		rects = append(rects, s.Rect)
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			filepath.Base(p.entries[i].Path),
			fmt.Sprintf("%dx%d", s.SourceWidth, s.SourceHeight),
			s.Orientation.String(),
			fmt.Sprintf("%dx%d+%d+%d", s.Rect.Width, s.Rect.Height, s.Rect.X, s.Rect.Y),
			fmt.Sprintf("%.3f", s.ScaleFactor),
		})
	}
	if len(rows) > 0 {
		headers := []string{"#", "Image", "Source", "Orientation", "Rect", "Scale"}
		fmt.Println(renderTable(headers, rows, -2))
	}
	fmt.Println(preview.Summary(rects))

	if *showPreview {
		w, h := previewSize(cfg.WindowWidth, cfg.WindowHeight)
		for _, line := range preview.Render(rects, cfg.WindowWidth, cfg.WindowHeight, w, h) {
			fmt.Println(line)
		}
	}
	if *dump {
		fmt.Print(p.engine.Dump())
	}
	return 0
}

// previewSize fits the window's aspect ratio into the terminal, treating a
// character cell as twice as tall as it is wide.
func previewSize(windowW, windowH int) (int, int) {
	width := 80
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		width = w
	}
	width = min(width, 120)
	if windowW <= 0 || windowH <= 0 {
		return width, width / 4
	}
	height := width * windowH / windowW / 2
	return width, max(height, 5)
}
