package window

import (
	"testing"

	"github.com/1broseidon/aetherwave/internal/content"
	"github.com/1broseidon/aetherwave/internal/display"
	"github.com/1broseidon/aetherwave/internal/layout"
	"github.com/1broseidon/aetherwave/internal/platform"
)

type recordingLayout struct {
	width, height int
	invalidations int
}

func (r *recordingLayout) UpdateWindowDimensions(w, h int) { r.width, r.height = w, h }
func (r *recordingLayout) Invalidate()                     { r.invalidations++ }

func dualHead() *platform.StaticBackend {
	return platform.NewStaticBackend([]platform.StaticDisplay{
		{Name: "left", Bounds: platform.Rect{X: 0, Y: 0, Width: 1920, Height: 1080}, DPI: 96, Primary: true},
		{Name: "right", Bounds: platform.Rect{X: 1920, Y: 0, Width: 1920, Height: 1080}, DPI: 192},
	}, platform.Rect{})
}

func newMonitor(t *testing.T, initial platform.Rect) (*Monitor, *recordingLayout, *display.Tracker) {
	t.Helper()
	tracker := display.NewTracker(dualHead(), nil)
	tracker.Scan()
	rec := &recordingLayout{}
	return NewMonitor(rec, tracker, initial, nil), rec, tracker
}

func TestNewMonitor_PushesInitialState(t *testing.T) {
	_, rec, tracker := newMonitor(t, platform.Rect{X: 2000, Y: 100, Width: 800, Height: 600})
	if rec.width != 800 || rec.height != 600 {
		t.Fatalf("expected initial 800x600, got %dx%d", rec.width, rec.height)
	}
	if tracker.CurrentIndex() != 1 {
		t.Fatalf("expected initial display 1, got %d", tracker.CurrentIndex())
	}
}

func TestHandleResize_InvalidatesOnlyOnChange(t *testing.T) {
	m, rec, _ := newMonitor(t, platform.Rect{Width: 800, Height: 600})

	if m.HandleResize(800, 600) {
		t.Fatalf("expected identical size to be ignored")
	}
	if rec.invalidations != 0 {
		t.Fatalf("expected no invalidation, got %d", rec.invalidations)
	}

	if !m.HandleResize(1024, 768) {
		t.Fatalf("expected resize to be handled")
	}
	if rec.invalidations != 1 || rec.width != 1024 || rec.height != 768 {
		t.Fatalf("expected one invalidation at 1024x768, got %d at %dx%d", rec.invalidations, rec.width, rec.height)
	}
}

func TestHandleMove_InvalidatesOnDisplayCrossing(t *testing.T) {
	m, rec, tracker := newMonitor(t, platform.Rect{X: 100, Y: 100, Width: 800, Height: 600})

	if m.HandleMove(200, 100) {
		t.Fatalf("expected move within display 0 to be ignored")
	}
	if !m.HandleMove(2000, 100) {
		t.Fatalf("expected crossing to display 1 to be reported")
	}
	if rec.invalidations != 1 || tracker.CurrentIndex() != 1 {
		t.Fatalf("expected one invalidation on display 1, got %d on %d", rec.invalidations, tracker.CurrentIndex())
	}
	if m.Bounds().X != 2000 {
		t.Fatalf("expected tracked x=2000, got %d", m.Bounds().X)
	}
}

func TestHandleEvent_MaximizeIsResize(t *testing.T) {
	m, rec, _ := newMonitor(t, platform.Rect{Width: 800, Height: 600})
	if !m.HandleEvent(Event{Kind: EventMaximize, Width: 1920, Height: 1080}) {
		t.Fatalf("expected maximize to invalidate")
	}
	if !m.HandleEvent(Event{Kind: EventRestore, Width: 800, Height: 600}) {
		t.Fatalf("expected restore to invalidate")
	}
	if rec.invalidations != 2 {
		t.Fatalf("expected 2 invalidations, got %d", rec.invalidations)
	}
}

func TestHandleDisplayChange_Rescans(t *testing.T) {
	backend := dualHead()
	tracker := display.NewTracker(backend, nil)
	tracker.Scan()
	rec := &recordingLayout{}
	m := NewMonitor(rec, tracker, platform.Rect{X: 100, Y: 100, Width: 800, Height: 600}, nil)

	backend.Displays = backend.Displays[1:]
	m.HandleDisplayChange()

	if got := len(tracker.Displays()); got != 1 {
		t.Fatalf("expected 1 display after rescan, got %d", got)
	}
	if rec.invalidations != 1 {
		t.Fatalf("expected invalidation after rescan, got %d", rec.invalidations)
	}
}

func TestMonitor_DisplaySwapRecomputesLayout(t *testing.T) {
	tracker := display.NewTracker(dualHead(), nil)
	tracker.Scan()

	cfg := layout.DefaultConfig()
	engine := layout.NewEngine(cfg, tracker)
	m := NewMonitor(engine, tracker, platform.Rect{X: 100, Y: 100, Width: 1000, Height: 300}, nil)

	images := []content.Image{{Width: 1000, Height: 300}}
	engine.CalculateLayout(images)
	if engine.CalculateLayout(images) {
		t.Fatalf("expected steady state to be cached")
	}

	// Same pixel size, denser display.
	m.HandleConfigure(platform.Rect{X: 2000, Y: 100, Width: 1000, Height: 300})
	if !engine.CalculateLayout(images) {
		t.Fatalf("expected display swap to force recomputation")
	}
	if engine.Generation() != 2 {
		t.Fatalf("expected generation 2, got %d", engine.Generation())
	}
}
