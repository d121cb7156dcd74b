package telemetry

import (
	"math"
	"testing"
	"time"

	"github.com/pthm-cable/staticfield/engine"
)

func TestPercentile(t *testing.T) {
	tests := []struct {
		name   string
		sorted []float64
		p      float64
		want   float64
	}{
		{"empty slice", []float64{}, 0.5, 0},
		{"single element", []float64{5.0}, 0.5, 5.0},
		{"p0", []float64{1, 2, 3, 4, 5}, 0.0, 1.0},
		{"p100", []float64{1, 2, 3, 4, 5}, 1.0, 5.0},
		{"p50 odd", []float64{1, 2, 3, 4, 5}, 0.5, 3.0},
		{"p50 even", []float64{1, 2, 3, 4}, 0.5, 2.5},
		{"p10", []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 0.1, 1.9},
		{"p90", []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 0.9, 9.1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Percentile(tt.sorted, tt.p)
			if math.Abs(got-tt.want) > 0.001 {
				t.Errorf("Percentile(%v, %v) = %v, want %v", tt.sorted, tt.p, got, tt.want)
			}
		})
	}
}

func TestSummarize(t *testing.T) {
	values := []float64{1.0, 0.9, 0.8, 0.7, 0.6, 0.5, 0.4, 0.3, 0.2, 0.1}
	d := Summarize(values)

	if math.Abs(d.Mean-0.55) > 0.001 {
		t.Errorf("mean = %v, want 0.55", d.Mean)
	}
	// Population std of 0.1..1.0
	if math.Abs(d.Std-0.2872) > 0.001 {
		t.Errorf("std = %v, want ~0.287", d.Std)
	}
	if math.Abs(d.P10-0.19) > 0.01 {
		t.Errorf("p10 = %v, want ~0.19", d.P10)
	}
	if math.Abs(d.P90-0.91) > 0.01 {
		t.Errorf("p90 = %v, want ~0.91", d.P90)
	}
	if d.Max != 1.0 {
		t.Errorf("max = %v, want 1.0", d.Max)
	}

	// Input order is preserved
	if values[0] != 1.0 {
		t.Error("Summarize should not sort its input in place")
	}
}

func TestSummarizeEmpty(t *testing.T) {
	if d := Summarize(nil); d != (Distribution{}) {
		t.Errorf("empty slice should return zero distribution, got %+v", d)
	}
}

func frameAt(n uint64, t float64, d time.Duration) engine.FrameStats {
	return engine.FrameStats{
		Frame:     n,
		Time:      t,
		Duration:  d,
		Width:     320,
		Height:    200,
		Particles: 100,
		Visible:   int(n % 10),
	}
}

func TestCollectorWindows(t *testing.T) {
	c := NewCollector(time.Second)

	var closed []WindowStats
	// 60fps for 2.5 seconds of animation time
	for i := uint64(1); i <= 150; i++ {
		if ws, ok := c.Record(frameAt(i, float64(i-1)/60, 2*time.Millisecond)); ok {
			closed = append(closed, ws)
		}
	}

	if len(closed) != 2 {
		t.Fatalf("expected 2 closed windows, got %d", len(closed))
	}
	first := closed[0]
	if first.WindowStartFrame != 1 || first.WindowEndFrame != 61 {
		t.Errorf("expected first window 1..61, got %d..%d", first.WindowStartFrame, first.WindowEndFrame)
	}
	if math.Abs(first.FPS-60) > 0.5 {
		t.Errorf("expected ~60fps, got %v", first.FPS)
	}
	if math.Abs(first.FrameMeanMS-2) > 1e-9 || first.FrameStdMS != 0 {
		t.Errorf("expected constant 2ms frames, got mean=%v std=%v", first.FrameMeanMS, first.FrameStdMS)
	}
	if first.Width != 320 || first.Height != 200 || first.Particles != 100 {
		t.Errorf("unexpected size/particles: %+v", first)
	}
	if first.VisibleMean <= 0 {
		t.Error("expected visible particle stats")
	}

	if c.Pending() == 0 {
		t.Fatal("expected frames in the open window")
	}
	rest := c.Flush()
	if rest.WindowEndFrame != 150 {
		t.Errorf("expected flushed window to end at 150, got %d", rest.WindowEndFrame)
	}
	if c.Pending() != 0 {
		t.Errorf("expected empty window after flush, got %d", c.Pending())
	}
	if ws := c.Flush(); ws.Frames != 0 {
		t.Errorf("expected zero stats for empty flush, got %+v", ws)
	}
}

func TestCollectorPixelVariant(t *testing.T) {
	c := NewCollector(time.Second)
	fs := frameAt(1, 0, time.Millisecond)
	fs.Particles, fs.Visible = 0, 0
	c.Record(fs)

	ws := c.Flush()
	if ws.VisibleMean != 0 || ws.Particles != 0 {
		t.Errorf("expected no particle stats, got %+v", ws)
	}
	if ws.FPS != 0 {
		t.Errorf("expected no fps for a single frame, got %v", ws.FPS)
	}
}
