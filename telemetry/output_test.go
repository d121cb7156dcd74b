package telemetry

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pthm-cable/staticfield/config"
	"github.com/pthm-cable/staticfield/field"
)

func TestOutputManagerDisabled(t *testing.T) {
	om, err := NewOutputManager("")
	if err != nil || om != nil {
		t.Fatalf("expected nil manager for empty dir, got %v, %v", om, err)
	}
	// Methods are nil-safe
	if err := om.WriteTelemetry(WindowStats{}); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := om.Close(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestOutputManagerWritesCSV(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "run")
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i := uint64(1); i <= 3; i++ {
		if err := om.WriteTelemetry(WindowStats{WindowEndFrame: i * 60, Frames: 60}); err != nil {
			t.Fatalf("writing telemetry: %v", err)
		}
		if err := om.WritePerf(PerfStats{}, i*60); err != nil {
			t.Fatalf("writing perf: %v", err)
		}
	}

	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("loading config: %v", err)
	}
	if err := om.WriteConfig(cfg); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	if err := om.Close(); err != nil {
		t.Fatalf("closing: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "telemetry.csv"))
	if err != nil {
		t.Fatalf("reading telemetry.csv: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected header plus 3 rows, got %d lines", len(lines))
	}
	if !strings.HasPrefix(lines[0], "window_end,") {
		t.Errorf("expected csv header, got %q", lines[0])
	}
	if strings.Count(string(data), "window_end") != 1 {
		t.Error("expected header written once")
	}

	if _, err := os.Stat(filepath.Join(dir, "perf.csv")); err != nil {
		t.Errorf("expected perf.csv: %v", err)
	}
	if _, err := config.Load(filepath.Join(dir, "config.yaml")); err != nil {
		t.Errorf("expected loadable config.yaml: %v", err)
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	cfg := field.DefaultConfig()
	cfg.CalmMode = field.CalmOff

	img := image.NewRGBA(image.Rect(0, 0, 4, 3))
	img.SetRGBA(1, 2, color.RGBA{R: 0x1e, G: 0x90, B: 0xff, A: 255})

	snap := &Snapshot{
		Seed:     7,
		Variant:  field.VariantDotGrid,
		Frame:    120,
		AnimTime: 2,
		Width:    4,
		Height:   3,
		Field:    NewFieldState(cfg),
	}
	dir := t.TempDir()
	path, err := SaveSnapshot(snap, img, dir)
	if err != nil {
		t.Fatalf("saving snapshot: %v", err)
	}
	if filepath.Base(path) != "snapshot_120_dotgrid.json" {
		t.Errorf("unexpected snapshot name %q", filepath.Base(path))
	}

	back, err := LoadSnapshot(path)
	if err != nil {
		t.Fatalf("loading snapshot: %v", err)
	}
	if back.Seed != 7 || back.Frame != 120 || back.Variant != field.VariantDotGrid {
		t.Errorf("unexpected snapshot: %+v", back)
	}
	got, err := back.Field.Config()
	if err != nil {
		t.Fatalf("decoding field state: %v", err)
	}
	if got.CalmMode != field.CalmOff || got.Foreground.Hex() != cfg.Foreground.Hex() {
		t.Errorf("unexpected field config: %+v", got)
	}

	decoded, err := LoadSnapshotImage(path, back)
	if err != nil {
		t.Fatalf("loading image: %v", err)
	}
	r, g, b, _ := decoded.At(1, 2).RGBA()
	if r>>8 != 0x1e || g>>8 != 0x90 || b>>8 != 0xff {
		t.Errorf("unexpected pixel %x %x %x", r>>8, g>>8, b>>8)
	}
}

func TestLoadSnapshotVersionMismatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "old.json")
	if err := os.WriteFile(path, []byte(`{"version": 99}`), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadSnapshot(path); err == nil {
		t.Error("expected version error")
	}
}
