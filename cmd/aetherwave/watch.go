package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"slices"
	"syscall"
	"time"

	"github.com/BurntSushi/xgb/xproto"

	"github.com/1broseidon/aetherwave/internal/display"
	"github.com/1broseidon/aetherwave/internal/platform"
	"github.com/1broseidon/aetherwave/internal/window"
	"github.com/1broseidon/aetherwave/internal/x11"
)

func runWatch(args []string) int {
	fs := flag.NewFlagSet("watch", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	flags := addCommonFlags(fs)
	windowFlag := fs.Uint("window", 0, "X11 window id to track (default: active window)")
	rescan := fs.Duration("rescan", 2*time.Second, "Display topology poll interval")
	dump := fs.Bool("dump", false, "Print engine diagnostics after each recomputation")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: aetherwave watch [--dir DIR] [--mode MODE] [--window ID] [--rescan D] [--dump]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Follow the presentation window on X11 and recompute the layout once per")
		fmt.Fprintln(os.Stderr, "display refresh whenever the window or display topology changes.")
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
		fmt.Fprintln(os.Stderr, "watch takes no arguments")
		fs.Usage()
		return 2
	}
	if *rescan <= 0 {
		fmt.Fprintln(os.Stderr, "--rescan must be positive")
		return 2
	}

	p, err := openPresentation(flags, nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitCode(err)
	}
	defer p.Close()

	if p.sess.x11 == nil {
		fmt.Fprintln(os.Stderr, "watch requires the X11 backend (set backend: x11 or export DISPLAY)")
		return 1
	}
	conn := p.sess.x11.Connection()

	id := p.windowID
	if *windowFlag != 0 {
		id = platform.WindowID(*windowFlag)
		bounds, err := p.sess.backend.WindowBounds(id)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		p.monitor.HandleConfigure(bounds)
	}
	if id == 0 {
		fmt.Fprintln(os.Stderr, "no window to watch")
		return 1
	}

	maximized := conn.IsMaximized(xproto.Window(id))
	err = conn.WatchWindow(xproto.Window(id), func(change x11.WindowChange) {
		g := change.Geometry
		if change.Maximized != maximized {
			maximized = change.Maximized
			kind := window.EventRestore
			if maximized {
				kind = window.EventMaximize
			}
			p.monitor.HandleEvent(window.Event{Kind: kind, Width: g.Width, Height: g.Height})
		}
		p.monitor.HandleConfigure(platform.Rect{X: g.X, Y: g.Y, Width: g.Width, Height: g.Height})
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	p.logger.Info("watching window", "window", id, "images", len(p.images), "mode", p.engine.CurrentMode())
	out := io.Discard
	if *dump {
		out = os.Stdout
	}
	watchLoop(ctx, conn, p, *rescan, out)
	return 0
}

// watchLoop alternates X event handling with frame ticks on one goroutine.
// Window events are always applied before the next CalculateLayout.
func watchLoop(ctx context.Context, conn *x11.Connection, p *presentation, rescanEvery time.Duration, dumpTo io.Writer) {
	before, after, quit := conn.MainPing()

	frame := time.NewTicker(frameInterval(p.tracker))
	defer frame.Stop()
	rescan := time.NewTicker(rescanEvery)
	defer rescan.Stop()

	probe := display.NewTracker(p.sess.backend, slog.New(slog.NewTextHandler(io.Discard, nil)))
	known := p.tracker.Displays()

	for {
		select {
		case <-ctx.Done():
			conn.Quit()
			return
		case <-quit:
			return
		case <-before:
			<-after
		case <-rescan.C:
			current := probe.Scan()
			if slices.Equal(current, known) {
				continue
			}
			p.monitor.HandleDisplayChange()
			known = p.tracker.Displays()
			frame.Reset(frameInterval(p.tracker))
		case <-frame.C:
			if !p.engine.CalculateLayout(p.images) {
				continue
			}
			p.logger.Info("layout recomputed",
				"generation", p.engine.Generation(),
				"mode", p.engine.ResolvedMode(),
				"display", p.tracker.CurrentIndex(),
			)
			for i, s := range p.engine.Slots() {
				p.logger.Debug("slot", "index", i, "rect", fmt.Sprintf("%dx%d+%d+%d", s.Rect.Width, s.Rect.Height, s.Rect.X, s.Rect.Y))
			}
			fmt.Fprint(dumpTo, p.engine.Dump())
		}
	}
}

// frameInterval is one refresh period of the current display.
func frameInterval(tracker *display.Tracker) time.Duration {
	rate := 60
	if d, ok := tracker.Current(); ok && d.RefreshRate > 0 {
		rate = d.RefreshRate
	}
	return time.Second / time.Duration(rate)
}
