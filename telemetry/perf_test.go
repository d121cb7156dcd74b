package telemetry

import (
	"math"
	"testing"
	"time"

	"github.com/pthm-cable/staticfield/engine"
)

func TestPerfCollector_BasicTiming(t *testing.T) {
	pc := NewPerfCollector(10)
	now := time.Unix(0, 0)

	for i := 0; i < 5; i++ {
		now = now.Add(16 * time.Millisecond)
		pc.Record(engine.FrameStats{
			Duration: 4 * time.Millisecond,
			Shade:    3 * time.Millisecond,
			Present:  500 * time.Microsecond,
		}, now)
	}

	stats := pc.Stats()
	if stats.AvgFrameDuration != 4*time.Millisecond {
		t.Errorf("expected 4ms average frame, got %v", stats.AvgFrameDuration)
	}
	if math.Abs(stats.PhasePct[PhaseShade]-75) > 0.001 {
		t.Errorf("expected shade at 75%%, got %v", stats.PhasePct[PhaseShade])
	}
	if math.Abs(stats.PhasePct[PhaseOther]-12.5) > 0.001 {
		t.Errorf("expected other at 12.5%%, got %v", stats.PhasePct[PhaseOther])
	}
	if math.Abs(stats.RenderFPS-250) > 0.001 {
		t.Errorf("expected render fps 250, got %v", stats.RenderFPS)
	}
	if stats.FrameInterval != 16*time.Millisecond {
		t.Errorf("expected 16ms frame interval, got %v", stats.FrameInterval)
	}
}

func TestPerfCollector_RollingWindow(t *testing.T) {
	pc := NewPerfCollector(5)
	now := time.Unix(0, 0)

	// Slow frames fall out of the window
	for i := 0; i < 5; i++ {
		pc.Record(engine.FrameStats{Duration: 100 * time.Millisecond}, now)
	}
	for i := 0; i < 5; i++ {
		pc.Record(engine.FrameStats{Duration: time.Millisecond}, now)
	}

	stats := pc.Stats()
	if stats.MaxFrameDuration != time.Millisecond {
		t.Errorf("expected old samples to be evicted, max=%v", stats.MaxFrameDuration)
	}
	if stats.MinFrameDuration != time.Millisecond {
		t.Errorf("expected min 1ms, got %v", stats.MinFrameDuration)
	}
}

func TestPerfCollector_Empty(t *testing.T) {
	pc := NewPerfCollector(0)
	stats := pc.Stats()

	if stats.AvgFrameDuration != 0 || stats.FPS != 0 {
		t.Errorf("expected zero stats, got %+v", stats)
	}
	if stats.PhaseAvg == nil || stats.PhasePct == nil {
		t.Error("expected initialized phase maps")
	}
}

func TestPerfStatsToCSV(t *testing.T) {
	stats := PerfStats{
		AvgFrameDuration: 2 * time.Millisecond,
		PhasePct:         map[string]float64{PhaseShade: 80, PhasePresent: 15, PhaseOther: 5},
		RenderFPS:        500,
	}
	row := stats.ToCSV(42)
	if row.WindowEnd != 42 || row.AvgFrameUS != 2000 {
		t.Errorf("unexpected row: %+v", row)
	}
	if row.ShadePct != 80 || row.PresentPct != 15 || row.OtherPct != 5 {
		t.Errorf("unexpected phase percentages: %+v", row)
	}
}
