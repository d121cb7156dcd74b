// Package app wires the field renderer, the scroll demo page and telemetry
// into one session that a window or headless host drives frame by frame.
package app

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/pthm-cable/staticfield/anim"
	"github.com/pthm-cable/staticfield/config"
	"github.com/pthm-cable/staticfield/engine"
	"github.com/pthm-cable/staticfield/field"
	"github.com/pthm-cable/staticfield/scroll"
	"github.com/pthm-cable/staticfield/surface"
	"github.com/pthm-cable/staticfield/telemetry"
)

// App holds the complete session state.
type App struct {
	cfg  *config.Config
	opts Options
	log  *slog.Logger

	sched    *engine.ManualScheduler
	bus      *engine.ResizeBus
	renderer *engine.Renderer
	demo     *Demo

	collector     *telemetry.Collector
	perfCollector *telemetry.PerfCollector
	outputManager *telemetry.OutputManager
	lastWindow    telemetry.WindowStats

	seed    int64
	started time.Time
	now     time.Time

	width, height int
	dpr           float64
}

// New creates an app from cfg. The output directory, when set, is created
// and receives a copy of the configuration.
func New(cfg *config.Config, opts Options) (*App, error) {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}

	seed := cfg.Field.Seed
	if opts.Seed != 0 {
		seed = opts.Seed
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	outputDir := opts.OutputDir
	if outputDir == "" {
		outputDir = cfg.Telemetry.CSVPath
	}
	om, err := telemetry.NewOutputManager(outputDir)
	if err != nil {
		return nil, fmt.Errorf("create output: %w", err)
	}
	if err := om.WriteConfig(cfg); err != nil {
		om.Close()
		return nil, fmt.Errorf("write config: %w", err)
	}

	dpr := cfg.Screen.DevicePixelRatio
	if dpr <= 0 {
		dpr = 1
	}

	a := &App{
		cfg:           cfg,
		opts:          opts,
		log:           log,
		sched:         engine.NewManualScheduler(),
		bus:           engine.NewResizeBus(),
		collector:     telemetry.NewCollector(cfg.Derived.StatsWindow),
		perfCollector: telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow),
		outputManager: om,
		seed:          seed,
		width:         cfg.Screen.Width,
		height:        cfg.Screen.Height,
		dpr:           dpr,
	}

	newSurface := opts.NewSurface
	if newSurface == nil {
		scale := cfg.Screen.PixelScale
		newSurface = func(w, h int, dpr float64) (surface.Surface, error) {
			return surface.NewImageSurface(w, h, dpr, scale), nil
		}
	}

	a.renderer = engine.New(engine.Options{
		Width:            a.width,
		Height:           a.height,
		DevicePixelRatio: dpr,
		Variant:          cfg.Field.Variant,
		Backend:          cfg.Field.Backend,
		Seed:             seed,
		Settings:         field.NewSettings(cfg.Derived.Field),
		NewSurface:       newSurface,
		Scheduler:        a.sched,
		Resize:           a.bus,
		Logger:           log,
		OnFrame:          a.onFrame,
	})

	a.demo = NewDemo(cfg.Scroll, a.viewport(), a.sched, log)
	return a, nil
}

// Start starts the render loop.
func (a *App) Start(now time.Time) error {
	a.started, a.now = now, now
	if err := a.renderer.Start(); err != nil {
		return err
	}
	a.log.Info("app started",
		"seed", a.seed,
		"variant", a.cfg.Field.Variant,
		"headless", a.opts.Headless,
	)
	return nil
}

// Step runs every frame callback due at now and returns how many ran.
func (a *App) Step(now time.Time) int {
	a.now = now
	return a.sched.Step(now)
}

// StepHeadless advances a virtual clock by one frame budget and steps.
func (a *App) StepHeadless() int {
	budget := a.cfg.Derived.FrameBudget
	if budget <= 0 {
		budget = time.Second / 60
	}
	if a.opts.AutoScroll != 0 {
		a.demo.Wheel(a.opts.AutoScroll)
	}
	return a.Step(a.now.Add(budget))
}

// Resize propagates a new window size to the renderer and the demo page.
func (a *App) Resize(width, height int, dpr float64) {
	if width == a.width && height == a.height && dpr == a.dpr {
		return
	}
	a.width, a.height, a.dpr = width, height, dpr
	a.bus.Emit(width, height, dpr)
	a.demo.Resize(a.viewport())
}

// Wheel feeds a wheel delta to the demo page. It reports whether the page
// scrolled or the lock consumed the input.
func (a *App) Wheel(delta float64) bool {
	return a.demo.Wheel(delta)
}

func (a *App) viewport() scroll.Viewport {
	return scroll.Viewport{Width: float64(a.width), Height: float64(a.height)}
}

// onFrame runs after every rendered frame.
func (a *App) onFrame(fs engine.FrameStats) {
	a.perfCollector.Record(fs, a.now)
	if ws, ok := a.collector.Record(fs); ok {
		a.flushTelemetry(ws)
	}
}

// Config returns the configuration the app was built from.
func (a *App) Config() *config.Config { return a.cfg }

// Renderer returns the field renderer.
func (a *App) Renderer() *engine.Renderer { return a.renderer }

// Demo returns the scroll demo page.
func (a *App) Demo() *Demo { return a.demo }

// Seed returns the noise seed in use.
func (a *App) Seed() int64 { return a.seed }

// Frame returns the number of rendered frames.
func (a *App) Frame() uint64 { return a.renderer.Stats().Frame }

// Perf returns rolling performance statistics.
func (a *App) Perf() telemetry.PerfStats { return a.perfCollector.Stats() }

// LastWindow returns the most recently closed stats window.
func (a *App) LastWindow() telemetry.WindowStats { return a.lastWindow }

// ViewBox returns the zoom animation's view box at the current time.
func (a *App) ViewBox() anim.ViewBox {
	return a.cfg.Derived.Zoom.At(a.now.Sub(a.started))
}

// Close flushes the open stats window, stops the renderer and closes output.
func (a *App) Close() error {
	if a.collector.Pending() > 0 {
		a.flushTelemetry(a.collector.Flush())
	}
	a.demo.Close()
	a.renderer.Dispose()
	return a.outputManager.Close()
}
