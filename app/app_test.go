package app

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pthm-cable/staticfield/config"
	"github.com/pthm-cable/staticfield/engine"
	"github.com/pthm-cable/staticfield/field"
	"github.com/pthm-cable/staticfield/scroll"
	"github.com/pthm-cable/staticfield/telemetry"
)

var quietLog = slog.New(slog.NewTextHandler(io.Discard, nil))

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("loading config: %v", err)
	}
	cfg.Screen.Width = 64
	cfg.Screen.Height = 48
	cfg.Field.Seed = 3
	return cfg
}

func TestHeadlessRun(t *testing.T) {
	dir := t.TempDir()
	a, err := New(testConfig(t), Options{
		Headless:    true,
		OutputDir:   dir,
		SnapshotDir: filepath.Join(dir, "snapshots"),
		Logger:      quietLog,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.Seed() != 3 {
		t.Errorf("expected seed from config, got %d", a.Seed())
	}
	if err := a.Start(time.Unix(0, 0)); err != nil {
		t.Fatalf("unexpected start error: %v", err)
	}

	for i := 0; i < 30; i++ {
		if ran := a.StepHeadless(); ran == 0 {
			t.Fatalf("frame %d: expected the renderer to run", i)
		}
	}
	if a.Frame() != 30 {
		t.Errorf("expected 30 frames, got %d", a.Frame())
	}
	if a.Perf().AvgFrameDuration <= 0 {
		t.Error("expected perf samples")
	}

	path, err := a.SaveSnapshot()
	if err != nil {
		t.Fatalf("saving snapshot: %v", err)
	}
	snap, err := telemetry.LoadSnapshot(path)
	if err != nil {
		t.Fatalf("loading snapshot: %v", err)
	}
	if snap.Frame != 30 || snap.Seed != 3 || snap.Variant != field.VariantPointCloud {
		t.Errorf("unexpected snapshot: %+v", snap)
	}

	if err := a.Close(); err != nil {
		t.Fatalf("unexpected close error: %v", err)
	}
	if a.Renderer().State() != engine.StateDisposed {
		t.Errorf("expected renderer disposed, got %v", a.Renderer().State())
	}
	if a.LastWindow().Frames != 30 {
		t.Errorf("expected the open window flushed on close, got %d frames", a.LastWindow().Frames)
	}

	data, err := os.ReadFile(filepath.Join(dir, "telemetry.csv"))
	if err != nil {
		t.Fatalf("reading telemetry.csv: %v", err)
	}
	if lines := strings.Split(strings.TrimSpace(string(data)), "\n"); len(lines) != 2 {
		t.Errorf("expected header and one row, got %d lines", len(lines))
	}
	if _, err := os.Stat(filepath.Join(dir, "config.yaml")); err != nil {
		t.Errorf("expected config copy: %v", err)
	}
}

func TestSeedOverride(t *testing.T) {
	a, err := New(testConfig(t), Options{Seed: 99, Logger: quietLog})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.Seed() != 99 {
		t.Errorf("expected seed 99, got %d", a.Seed())
	}
	if _, err := a.SaveSnapshot(); err == nil {
		t.Error("expected error without a snapshot directory")
	}
}

func TestResizePropagates(t *testing.T) {
	cfg := testConfig(t)
	cfg.Field.Variant = field.VariantParticleCloud
	a, err := New(cfg, Options{Headless: true, Logger: quietLog})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := a.Start(time.Unix(0, 0)); err != nil {
		t.Fatalf("unexpected start error: %v", err)
	}
	defer a.Close()

	a.Resize(120, 60, 1)
	a.StepHeadless()
	stats := a.Renderer().Stats()
	if stats.Width != 120 || stats.Height != 60 {
		t.Errorf("expected 120x60 frame, got %dx%d", stats.Width, stats.Height)
	}
	if stats.Particles != 20*10 {
		t.Errorf("expected 200 particles, got %d", stats.Particles)
	}
	if v := a.Demo().Page().Viewport(); v.Width != 120 || v.Height != 60 {
		t.Errorf("expected demo page resized, got %+v", v)
	}
}

func TestZoomViewBox(t *testing.T) {
	a, err := New(testConfig(t), Options{Logger: quietLog})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	start := time.Unix(0, 0)
	if err := a.Start(start); err != nil {
		t.Fatalf("unexpected start error: %v", err)
	}
	defer a.Close()

	if vb := a.ViewBox(); vb.W != 300 {
		t.Errorf("expected zoomed view box at start, got %+v", vb)
	}
	a.Step(start.Add(6 * time.Second))
	if vb := a.ViewBox(); vb.W != 1000 {
		t.Errorf("expected full view box at half period, got %+v", vb)
	}
}

func TestDemoPage(t *testing.T) {
	cfg := testConfig(t)
	sched := engine.NewManualScheduler()
	d := NewDemo(cfg.Scroll, scroll.Viewport{Width: 800, Height: 800}, sched, quietLog)

	cards := d.Cards()
	if len(cards) != 3 || cards[0].Name != CardEntrance {
		t.Fatalf("unexpected cards: %+v", cards)
	}
	if cards[0].Progress != 0 {
		t.Errorf("expected entrance card hidden, got %v", cards[0].Progress)
	}

	d.Wheel(360)
	if d.Cards()[0].Progress != 0 {
		t.Error("expected card update deferred to the next frame")
	}
	sched.Step(time.Now())
	entrance := d.Cards()[0]
	if entrance.Progress != 0.5 {
		t.Errorf("expected 0.5, got %v", entrance.Progress)
	}
	if s := entrance.Translation.String(); s != "translateX(-75.00%)" {
		t.Errorf("expected half slide, got %q", s)
	}

	d.Wheel(2100)
	if d.Lock().Phase != scroll.Locked {
		t.Fatalf("expected lock engaged, got %v", d.Lock().Phase)
	}
	if d.Wheel(2500) {
		t.Error("expected wheel consumed by the lock")
	}
	if p := d.Lock().Progress; p != 0.5 {
		t.Errorf("expected lock progress 0.5, got %v", p)
	}
	d.Wheel(2500)
	if d.Lock().Phase != scroll.Completed {
		t.Errorf("expected lock completed, got %v", d.Lock().Phase)
	}

	d.Resize(scroll.Viewport{Width: 400, Height: 400})
	if r := d.Cards()[0].Rect; r.Height != 100 {
		t.Errorf("expected card relaid out, got %+v", r)
	}

	d.Close()
	if s, r, w := d.Page().Subscribers(); s != 0 || r != 0 || w != 0 {
		t.Errorf("expected no subscribers after close, got %d/%d/%d", s, r, w)
	}
}
