package ui

import (
	"testing"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/staticfield/field"
	"github.com/pthm-cable/staticfield/scroll"
	"github.com/pthm-cable/staticfield/telemetry"
)

func TestDefaultOverlays(t *testing.T) {
	reg := NewOverlayRegistry()

	if !reg.IsEnabled(OverlayHUD) || !reg.IsEnabled(OverlayScroll) {
		t.Error("expected HUD and scroll demo enabled by default")
	}
	if reg.IsEnabled(OverlayPerf) {
		t.Error("expected perf overlay disabled by default")
	}

	want := []string{"info", "field", "scroll", "debug"}
	got := reg.Categories()
	if len(got) != len(want) {
		t.Fatalf("expected categories %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("category %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestToggleExclusive(t *testing.T) {
	reg := NewOverlayRegistry()

	if !reg.Toggle(OverlaySettings) {
		t.Fatal("expected settings enabled")
	}
	if !reg.Toggle(OverlayInspector) {
		t.Fatal("expected inspector enabled")
	}
	if reg.IsEnabled(OverlaySettings) {
		t.Error("expected inspector to disable settings")
	}

	reg.SetEnabled(OverlaySettings, true)
	if reg.IsEnabled(OverlayInspector) {
		t.Error("expected settings to disable inspector")
	}

	if reg.Toggle("missing") {
		t.Error("expected unknown overlay toggle to be a no-op")
	}
}

func TestHandleKeyPress(t *testing.T) {
	reg := NewOverlayRegistry()

	id, on, ok := reg.HandleKeyPress(rl.KeyP)
	if !ok || id != OverlayPerf || !on {
		t.Errorf("expected perf toggled on, got %q %v %v", id, on, ok)
	}
	id, on, ok = reg.HandleKeyPress(rl.KeyH)
	if !ok || id != OverlayHUD || on {
		t.Errorf("expected HUD toggled off, got %q %v %v", id, on, ok)
	}
	if _, _, ok := reg.HandleKeyPress(rl.KeyF12); ok {
		t.Error("expected unbound key to be ignored")
	}

	enabled := reg.EnabledOverlays()
	if len(enabled) != 2 || enabled[0] != OverlayPerf || enabled[1] != OverlayScroll {
		t.Errorf("expected [perf scroll] in registration order, got %v", enabled)
	}
}

func TestCardOffset(t *testing.T) {
	testCases := []struct {
		name   string
		tr     scroll.Translation
		dx, dy float64
	}{
		{"percent", scroll.SlideX(0.5, scroll.DefaultStartOffsetPct), -150, 0},
		{"pixels", scroll.ViewportSlide(0, 1000, scroll.DefaultViewportReach), -1000, 0},
		{"vertical", scroll.RevealTransform(0.5, true), 0, -20},
	}

	for _, tc := range testCases {
		dx, dy := CardOffset(tc.tr, 200)
		if dx != tc.dx || dy != tc.dy {
			t.Errorf("%s: expected (%v, %v), got (%v, %v)", tc.name, tc.dx, tc.dy, dx, dy)
		}
	}
}

func TestFieldSlidersRoundTrip(t *testing.T) {
	cfg := field.DefaultConfig()
	for _, s := range FieldSliders {
		v := float64(s.Min+s.Max) / 2
		s.Set(&cfg, v)
		got := s.Get(&cfg)
		if s.Label == "Step" {
			v = float64(int(v + 0.5))
		}
		if got != v {
			t.Errorf("%s: expected %v, got %v", s.Label, v, got)
		}
	}
}

func TestSortedPhases(t *testing.T) {
	stats := telemetry.PerfStats{PhaseAvg: map[string]time.Duration{
		"present": 1 * time.Millisecond,
		"shade":   3 * time.Millisecond,
		"other":   1 * time.Millisecond,
	}}
	got := SortedPhases(stats)
	want := []string{"shade", "other", "present"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("expected %v, got %v", want, got)
			break
		}
	}
}

func TestFieldText(t *testing.T) {
	fd := FieldDescriptor{Getter: func(any) float64 { return 1.5 }}
	if s := FieldText(fd, nil); s != "1.50" {
		t.Errorf("expected default format, got %q", s)
	}
	fd.Format = "%.0f"
	if s := FieldText(fd, nil); s != "2" {
		t.Errorf("expected custom format, got %q", s)
	}
	if s := FieldText(FieldDescriptor{}, nil); s != "" {
		t.Errorf("expected empty text, got %q", s)
	}
}
