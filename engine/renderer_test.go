package engine

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/pthm-cable/staticfield/field"
	"github.com/pthm-cable/staticfield/noise"
	"github.com/pthm-cable/staticfield/surface"
)

var quietLog = slog.New(slog.NewTextHandler(io.Discard, nil))

// eventLog records teardown calls across collaborators.
type eventLog struct {
	events []string
}

func (l *eventLog) add(e string) { l.events = append(l.events, e) }

type loggingScheduler struct {
	*ManualScheduler
	log *eventLog
}

func (s *loggingScheduler) CancelFrame(h FrameHandle) {
	s.log.add("cancel")
	s.ManualScheduler.CancelFrame(h)
}

type loggingSurface struct {
	*surface.ImageSurface
	log *eventLog
}

func (s *loggingSurface) Close() error {
	s.log.add("close")
	return s.ImageSurface.Close()
}

type loggingResize struct {
	*ResizeBus
	log *eventLog
}

func (r *loggingResize) OnResize(fn func(int, int, float64)) func() {
	unsub := r.ResizeBus.OnResize(fn)
	return func() {
		r.log.add("unsubscribe")
		unsub()
	}
}

type harness struct {
	sched *ManualScheduler
	bus   *ResizeBus
	surf  *surface.ImageSurface
	r     *Renderer
	now   time.Time
}

func newHarness(t *testing.T, variant string, w, h int) *harness {
	t.Helper()
	hs := &harness{
		sched: NewManualScheduler(),
		bus:   NewResizeBus(),
		now:   time.Unix(1000, 0),
	}
	hs.r = New(Options{
		Width:     w,
		Height:    h,
		Variant:   variant,
		Seed:      42,
		Scheduler: hs.sched,
		Resize:    hs.bus,
		Logger:    quietLog,
		NewSurface: func(w, h int, dpr float64) (surface.Surface, error) {
			hs.surf = surface.NewImageSurface(w, h, dpr, 1)
			return hs.surf, nil
		},
	})
	return hs
}

func (hs *harness) step() int {
	hs.now = hs.now.Add(16 * time.Millisecond)
	return hs.sched.Step(hs.now)
}

func TestStartRendersFrames(t *testing.T) {
	hs := newHarness(t, field.VariantPointCloud, 32, 24)
	if err := hs.r.Start(); err != nil {
		t.Fatalf("unexpected start error: %v", err)
	}
	if hs.r.State() != StateRunning {
		t.Fatalf("expected running, got %v", hs.r.State())
	}
	if hs.sched.Pending() != 1 {
		t.Fatalf("expected 1 pending frame, got %d", hs.sched.Pending())
	}

	for i := 0; i < 3; i++ {
		if ran := hs.step(); ran != 1 {
			t.Fatalf("step %d: expected 1 frame, ran %d", i, ran)
		}
	}
	if hs.surf.Presents() != 3 {
		t.Errorf("expected 3 presents, got %d", hs.surf.Presents())
	}
	if got := hs.r.Stats().Frame; got != 3 {
		t.Errorf("expected frame 3, got %d", got)
	}
	if hs.sched.Pending() != 1 {
		t.Errorf("expected the next frame to be scheduled, got %d pending", hs.sched.Pending())
	}
}

func TestStartSurfaceFailure(t *testing.T) {
	sched := NewManualScheduler()
	cause := errors.New("no gpu")
	r := New(Options{
		Width:     10,
		Height:    10,
		Scheduler: sched,
		Logger:    quietLog,
		NewSurface: func(int, int, float64) (surface.Surface, error) {
			return nil, cause
		},
	})

	err := r.Start()
	if !errors.Is(err, ErrSurfaceUnavailable) {
		t.Fatalf("expected ErrSurfaceUnavailable, got %v", err)
	}
	if !errors.Is(err, cause) {
		t.Errorf("expected cause to be wrapped, got %v", err)
	}
	if r.State() != StateUninitialized {
		t.Errorf("expected uninitialized after failure, got %v", r.State())
	}
	if sched.Pending() != 0 {
		t.Errorf("expected no scheduled frame, got %d", sched.Pending())
	}

	// Dispose of a never-started renderer is a no-op
	r.Dispose()
	if r.State() != StateDisposed {
		t.Errorf("expected disposed, got %v", r.State())
	}
}

func TestStartUnknownVariant(t *testing.T) {
	hs := newHarness(t, "plasma", 10, 10)
	err := hs.r.Start()
	if err == nil {
		t.Fatal("expected error for unknown variant")
	}
	if errors.Is(err, ErrSurfaceUnavailable) {
		t.Error("expected a variant error, not a surface error")
	}
	if hs.surf != nil {
		t.Error("expected no surface to be allocated")
	}
	if hs.sched.Pending() != 0 {
		t.Errorf("expected no scheduled frame, got %d", hs.sched.Pending())
	}
}

func TestStartStateErrors(t *testing.T) {
	hs := newHarness(t, field.VariantStaticNoise, 8, 8)
	if err := hs.r.Start(); err != nil {
		t.Fatalf("unexpected start error: %v", err)
	}
	if err := hs.r.Start(); !errors.Is(err, ErrAlreadyRunning) {
		t.Errorf("expected ErrAlreadyRunning, got %v", err)
	}
	hs.r.Dispose()
	if err := hs.r.Start(); !errors.Is(err, ErrDisposed) {
		t.Errorf("expected ErrDisposed, got %v", err)
	}
}

func TestDisposeOrderAndIdempotence(t *testing.T) {
	log := &eventLog{}
	sched := &loggingScheduler{ManualScheduler: NewManualScheduler(), log: log}
	resize := &loggingResize{ResizeBus: NewResizeBus(), log: log}
	var surf *loggingSurface

	r := New(Options{
		Width:     16,
		Height:    16,
		Seed:      1,
		Scheduler: sched,
		Resize:    resize,
		Logger:    quietLog,
		NewSurface: func(w, h int, dpr float64) (surface.Surface, error) {
			surf = &loggingSurface{ImageSurface: surface.NewImageSurface(w, h, dpr, 1), log: log}
			return surf, nil
		},
	})
	if err := r.Start(); err != nil {
		t.Fatalf("unexpected start error: %v", err)
	}

	r.Dispose()
	r.Dispose()

	want := []string{"cancel", "close", "unsubscribe"}
	if len(log.events) != len(want) {
		t.Fatalf("expected events %v, got %v", want, log.events)
	}
	for i := range want {
		if log.events[i] != want[i] {
			t.Errorf("event %d: expected %q, got %q", i, want[i], log.events[i])
		}
	}
	if sched.Pending() != 0 {
		t.Errorf("expected no pending frames, got %d", sched.Pending())
	}
	if resize.Subscribers() != 0 {
		t.Errorf("expected no resize subscribers, got %d", resize.Subscribers())
	}
	if !surf.Closed() {
		t.Error("expected surface to be closed")
	}
}

func TestDisposeFromFrameCallback(t *testing.T) {
	hs := newHarness(t, field.VariantStaticNoise, 8, 8)
	hs.r.opts.OnFrame = func(FrameStats) { hs.r.Dispose() }

	if err := hs.r.Start(); err != nil {
		t.Fatalf("unexpected start error: %v", err)
	}
	hs.step()
	if hs.sched.Pending() != 0 {
		t.Errorf("expected no frame after dispose, got %d pending", hs.sched.Pending())
	}
	if hs.step() != 0 {
		t.Error("expected no further frames")
	}
}

func TestResizeAppliesBeforeNextFrame(t *testing.T) {
	hs := newHarness(t, field.VariantParticleCloud, 60, 60)
	if err := hs.r.Start(); err != nil {
		t.Fatalf("unexpected start error: %v", err)
	}
	hs.step()
	if got := hs.r.Stats().Particles; got != 100 {
		t.Fatalf("expected 100 particles, got %d", got)
	}

	hs.bus.Emit(30, 12, 2)
	st := hs.surf.State()
	if st.WidthPx != 30 || st.HeightPx != 12 || st.DevicePixelRatio != 2 {
		t.Errorf("expected surface resized synchronously, got %+v", st)
	}
	if b := hs.surf.Backbuffer().Bounds(); b.Dx() != 60 || b.Dy() != 24 {
		t.Errorf("expected 60x24 backbuffer, got %v", b)
	}

	hs.step()
	stats := hs.r.Stats()
	if stats.Particles != 10 {
		t.Errorf("expected 10 particles after resize, got %d", stats.Particles)
	}
	if stats.Width != 30 || stats.Height != 12 {
		t.Errorf("expected 30x12 frame, got %dx%d", stats.Width, stats.Height)
	}
}

func TestSettingsTakenAtFrameStart(t *testing.T) {
	hs := newHarness(t, field.VariantStaticNoise, 8, 8)
	settings := hs.r.Settings()
	settings.SetThreshold(0) // every pixel foreground

	if err := hs.r.Start(); err != nil {
		t.Fatalf("unexpected start error: %v", err)
	}
	hs.step()
	want := color.RGBA{R: 0x1e, G: 0x90, B: 0xff, A: 255}
	if got := hs.surf.Snapshot().RGBAAt(3, 3); got != want {
		t.Fatalf("expected default foreground %v, got %v", want, got)
	}

	if err := settings.SetForegroundHex("#ff0000"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	hs.step()
	red := color.RGBA{R: 255, A: 255}
	if got := hs.surf.Snapshot().RGBAAt(3, 3); got != red {
		t.Errorf("expected updated foreground %v, got %v", red, got)
	}
}

func TestParallelMatchesSerial(t *testing.T) {
	pc := field.NewPointCloud(noise.NewKernel(9))
	f := field.NewFrame(field.DefaultConfig(), 3.5, 96, 80)

	serial := image.NewRGBA(image.Rect(0, 0, 96, 80))
	parallel := image.NewRGBA(image.Rect(0, 0, 96, 80))
	shadePixels(serial, pc, f, 1)
	shadePixels(parallel, pc, f, 7)

	if !bytes.Equal(serial.Pix, parallel.Pix) {
		t.Error("expected parallel and serial evaluation to produce identical pixels")
	}
}

func TestManualSchedulerCancel(t *testing.T) {
	s := NewManualScheduler()
	var ran []int
	h1 := s.RequestFrame(func(time.Time) { ran = append(ran, 1) })
	s.RequestFrame(func(time.Time) { ran = append(ran, 2) })
	s.CancelFrame(h1)

	if n := s.Step(time.Now()); n != 1 {
		t.Fatalf("expected 1 frame, ran %d", n)
	}
	if len(ran) != 1 || ran[0] != 2 {
		t.Errorf("expected only frame 2 to run, got %v", ran)
	}
}

func TestResizeBusUnsubscribe(t *testing.T) {
	bus := NewResizeBus()
	var calls int
	unsub := bus.OnResize(func(int, int, float64) { calls++ })
	bus.Emit(1, 1, 1)
	unsub()
	unsub()
	bus.Emit(2, 2, 1)

	if calls != 1 {
		t.Errorf("expected 1 call, got %d", calls)
	}
	if bus.Subscribers() != 0 {
		t.Errorf("expected 0 subscribers, got %d", bus.Subscribers())
	}
}

func TestParticleLookup(t *testing.T) {
	hs := newHarness(t, field.VariantParticleCloud, 60, 60)
	if _, ok := hs.r.Particle(0, 0); ok {
		t.Error("expected no particle before start")
	}
	if err := hs.r.Start(); err != nil {
		t.Fatalf("unexpected start error: %v", err)
	}
	hs.step()

	p, ok := hs.r.Particle(31, 29)
	if !ok {
		t.Fatal("expected a particle")
	}
	if p.Cell.Col != 5 || p.Cell.Row != 5 {
		t.Errorf("expected cell 5,5, got %+v", p.Cell)
	}
	if hs.r.Variant() != field.VariantParticleCloud {
		t.Errorf("expected particles variant, got %q", hs.r.Variant())
	}

	pixel := newHarness(t, field.VariantDotGrid, 10, 10)
	if err := pixel.r.Start(); err != nil {
		t.Fatalf("unexpected start error: %v", err)
	}
	if _, ok := pixel.r.Particle(0, 0); ok {
		t.Error("expected no particles for a pixel variant")
	}
}

func TestCapture(t *testing.T) {
	hs := newHarness(t, field.VariantStaticNoise, 8, 8)
	if hs.r.Capture() != nil {
		t.Error("expected nil capture before start")
	}
	hs.r.Settings().SetThreshold(0)
	if err := hs.r.Start(); err != nil {
		t.Fatalf("unexpected start error: %v", err)
	}
	hs.step()

	img := hs.r.Capture()
	if img == nil || img.Bounds().Dx() != 8 {
		t.Fatalf("expected 8px capture, got %v", img)
	}
	img.Pix[0] = 0
	if hs.surf.Backbuffer().Pix[0] == 0 {
		t.Error("expected capture to be a copy")
	}
}
