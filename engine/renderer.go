// Package engine runs the noise field render loop: it owns the surface,
// the animation clock and the particle grid, and keeps them consistent
// across resizes and settings changes.
package engine

import (
	"errors"
	"fmt"
	"image"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/pthm-cable/staticfield/anim"
	"github.com/pthm-cable/staticfield/field"
	"github.com/pthm-cable/staticfield/noise"
	"github.com/pthm-cable/staticfield/particles"
	"github.com/pthm-cable/staticfield/surface"
)

var (
	// ErrSurfaceUnavailable is returned by Start when no surface could be acquired.
	ErrSurfaceUnavailable = errors.New("engine: render surface unavailable")
	// ErrDisposed is returned by Start after Dispose.
	ErrDisposed = errors.New("engine: renderer disposed")
	// ErrAlreadyRunning is returned by a second Start.
	ErrAlreadyRunning = errors.New("engine: renderer already running")
)

// State is the renderer lifecycle phase.
type State int

const (
	StateUninitialized State = iota
	StateRunning
	StateDisposed
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateRunning:
		return "running"
	case StateDisposed:
		return "disposed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// SurfaceFactory allocates a surface at a logical size.
type SurfaceFactory func(width, height int, dpr float64) (surface.Surface, error)

// FrameStats describes one rendered frame.
type FrameStats struct {
	Frame     uint64
	Time      float64       // animation seconds
	Duration  time.Duration // wall time spent rendering
	Shade     time.Duration // part of Duration spent evaluating the field
	Present   time.Duration // part of Duration spent presenting
	Width     int           // logical
	Height    int
	Particles int
	Visible   int
}

// Options configures a Renderer.
type Options struct {
	Width            int
	Height           int
	DevicePixelRatio float64

	Variant string // field variant name, "" for the point cloud
	Backend string // noise backend for pixel variants, "" for the built-in simplex
	Seed    int64  // 0 picks a time-based seed

	Settings *field.Settings // nil uses field.DefaultConfig

	NewSurface SurfaceFactory
	Scheduler  Scheduler
	Resize     ResizeSource // optional

	Workers int // pixel workers, 0 for GOMAXPROCS

	Logger  *slog.Logger
	OnFrame func(FrameStats) // optional, called on the render goroutine
}

// Renderer drives the field render loop.
type Renderer struct {
	mu sync.Mutex

	opts     Options
	log      *slog.Logger
	settings *field.Settings

	state       State
	surf        surface.Surface
	variant     field.Variant
	grid        *particles.Grid
	clock       *anim.Clock
	handle      FrameHandle
	unsubscribe func()

	cfg     field.Config
	version uint64

	width  int
	height int
	dpr    float64

	last FrameStats
}

// New creates an uninitialized renderer.
func New(opts Options) *Renderer {
	if opts.Settings == nil {
		opts.Settings = field.NewSettings(field.DefaultConfig())
	}
	if opts.DevicePixelRatio <= 0 {
		opts.DevicePixelRatio = 1
	}
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	return &Renderer{
		opts:     opts,
		log:      log.With("component", "renderer"),
		settings: opts.Settings,
		width:    opts.Width,
		height:   opts.Height,
		dpr:      opts.DevicePixelRatio,
	}
}

// Settings returns the live settings the render loop reads.
func (r *Renderer) Settings() *field.Settings { return r.settings }

// State returns the lifecycle phase.
func (r *Renderer) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Start acquires the surface, builds the field and schedules the first
// frame. On failure the renderer stays uninitialized and nothing is
// scheduled.
func (r *Renderer) Start() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	switch r.state {
	case StateRunning:
		return ErrAlreadyRunning
	case StateDisposed:
		return ErrDisposed
	}
	if r.opts.NewSurface == nil || r.opts.Scheduler == nil {
		return fmt.Errorf("start renderer: %w: missing surface factory or scheduler", ErrSurfaceUnavailable)
	}

	seed := r.opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	kernel := noise.NewKernel(seed)
	var sampler noise.Sampler3D
	if r.opts.Backend != "" && r.opts.Backend != noise.BackendSimplex {
		s, err := noise.NewSampler(r.opts.Backend, seed)
		if err != nil {
			return fmt.Errorf("start renderer: %w", err)
		}
		sampler = s
	}
	variant, err := field.NewVariant(r.opts.Variant, kernel, sampler)
	if err != nil {
		return fmt.Errorf("start renderer: %w", err)
	}

	surf, err := r.opts.NewSurface(r.width, r.height, r.dpr)
	if err != nil {
		return fmt.Errorf("start renderer: %w: %w", ErrSurfaceUnavailable, err)
	}
	if surf == nil {
		return fmt.Errorf("start renderer: %w", ErrSurfaceUnavailable)
	}

	r.surf = surf
	r.variant = variant
	r.cfg, r.version = r.settings.Snapshot()

	if _, ok := variant.(field.ParticleVariant); ok {
		r.grid = particles.NewGrid()
		r.grid.Rebuild(r.width, r.height, r.cfg.Step)
	}
	if r.opts.Resize != nil {
		r.unsubscribe = r.opts.Resize.OnResize(r.handleResize)
	}

	r.state = StateRunning
	r.handle = r.opts.Scheduler.RequestFrame(r.frame)

	r.log.Info("renderer started",
		"variant", variant.Name(),
		"width", r.width,
		"height", r.height,
		"dpr", r.dpr,
	)
	return nil
}

// Resize applies a new viewport size before the next frame. Hosts without
// a ResizeSource call it directly.
func (r *Renderer) Resize(width, height int, dpr float64) {
	r.handleResize(width, height, dpr)
}

func (r *Renderer) handleResize(width, height int, dpr float64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if dpr <= 0 {
		dpr = 1
	}
	r.width, r.height, r.dpr = width, height, dpr
	if r.state != StateRunning {
		return
	}

	if err := r.surf.Resize(width, height, dpr); err != nil {
		r.log.Warn("surface resize failed", "width", width, "height", height, "error", err)
		return
	}
	if r.grid != nil {
		r.grid.Rebuild(width, height, r.cfg.Step)
	}
}

// frame renders one frame and requests the next.
func (r *Renderer) frame(now time.Time) {
	stats, ok := r.render(now)
	if !ok {
		return
	}
	if r.opts.OnFrame != nil {
		r.opts.OnFrame(stats)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state != StateRunning {
		return
	}
	r.handle = r.opts.Scheduler.RequestFrame(r.frame)
}

func (r *Renderer) render(now time.Time) (FrameStats, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state != StateRunning {
		return FrameStats{}, false
	}
	r.handle = 0
	start := time.Now()

	t := r.ensureClock(now).Advance(now)
	if v := r.settings.Version(); v != r.version {
		r.cfg, r.version = r.settings.Snapshot()
		if r.grid != nil {
			r.grid.Rebuild(r.width, r.height, r.cfg.Step)
		}
	}

	back := r.surf.Backbuffer()
	b := back.Bounds()
	f := field.NewFrame(r.cfg, t, b.Dx(), b.Dy())

	stats := FrameStats{Frame: r.clock.Frames(), Time: t, Width: r.width, Height: r.height}
	shadeStart := time.Now()
	switch v := r.variant.(type) {
	case field.PixelVariant:
		shadePixels(back, v, f, r.opts.Workers)
	case field.ParticleVariant:
		stats.Particles, stats.Visible = r.drawParticles(back, v, f)
	}
	presentStart := time.Now()
	stats.Shade = presentStart.Sub(shadeStart)

	if err := r.surf.Present(); err != nil {
		r.log.Error("present failed", "frame", stats.Frame, "error", err)
		return FrameStats{}, false
	}

	stats.Present = time.Since(presentStart)
	stats.Duration = time.Since(start)
	r.last = stats
	return stats, true
}

func (r *Renderer) ensureClock(now time.Time) *anim.Clock {
	if r.clock == nil {
		r.clock = anim.NewClock(now)
	}
	return r.clock
}

// drawParticles clears to the background and draws every visible particle
// as a square dot. Particle positions are logical; the backbuffer may be
// scaled relative to them.
func (r *Renderer) drawParticles(back *image.RGBA, v field.ParticleVariant, f *field.Frame) (int, int) {
	surface.Fill(back, f.Palette.Background)

	visible := r.grid.Update(func(x, y float64) (float64, bool) {
		return v.Alpha(x, y, f)
	})

	sx := float64(back.Bounds().Dx()) / math.Max(1, float64(r.width))
	sy := float64(back.Bounds().Dy()) / math.Max(1, float64(r.height))
	size := v.DotSize()
	r.grid.Each(func(x, y, alpha float64) {
		rect := image.Rect(
			int(x*sx), int(y*sy),
			int(math.Ceil((x+size)*sx)), int(math.Ceil((y+size)*sy)),
		)
		surface.BlendRect(back, rect, f.Palette.Foreground, alpha)
	})
	return r.grid.Count(), visible
}

// Particle returns the particle nearest to logical point (x, y). It reports
// false for pixel variants or before Start.
func (r *Renderer) Particle(x, y float64) (particles.Particle, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.grid == nil || r.state != StateRunning {
		return particles.Particle{}, false
	}
	return r.grid.Nearest(x, y)
}

// Capture copies the last rendered backbuffer. It returns nil before Start.
func (r *Renderer) Capture() *image.RGBA {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state != StateRunning {
		return nil
	}
	src := r.surf.Backbuffer()
	dst := image.NewRGBA(src.Bounds())
	copy(dst.Pix, src.Pix)
	return dst
}

// Variant returns the active variant name, or "" before Start.
func (r *Renderer) Variant() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.variant == nil {
		return ""
	}
	return r.variant.Name()
}

// Stats returns the most recent frame's statistics.
func (r *Renderer) Stats() FrameStats {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.last
}

// Dispose stops the loop: it cancels the pending frame, closes the surface
// and unsubscribes from resizes, in that order. It is safe to call more
// than once and never fails; surface close errors are logged.
func (r *Renderer) Dispose() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state == StateDisposed {
		return
	}
	wasRunning := r.state == StateRunning
	r.state = StateDisposed
	if !wasRunning {
		return
	}

	if r.handle != 0 {
		r.opts.Scheduler.CancelFrame(r.handle)
		r.handle = 0
	}
	if err := r.surf.Close(); err != nil {
		r.log.Warn("surface close failed", "error", err)
	}
	if r.unsubscribe != nil {
		r.unsubscribe()
		r.unsubscribe = nil
	}
	r.log.Info("renderer disposed", "frames", r.last.Frame)
}
