package telemetry

import (
	"log/slog"
	"time"

	"github.com/pthm-cable/staticfield/engine"
)

// Phase names for a rendered frame.
const (
	PhaseShade   = "shade"
	PhasePresent = "present"
	PhaseOther   = "other" // clock, settings snapshot, grid rebuilds
)

var phases = []string{PhaseShade, PhasePresent, PhaseOther}

// PerfSample holds timing data for a single frame.
type PerfSample struct {
	FrameDuration time.Duration
	Phases        map[string]time.Duration
}

// PerfCollector tracks frame timing over a rolling window.
type PerfCollector struct {
	windowSize  int
	samples     []PerfSample
	writeIndex  int
	sampleCount int

	// Wall-clock interval between frames
	lastFrameTime time.Time
	frameInterval time.Duration
}

// NewPerfCollector creates a new performance collector.
// windowSize: number of frames to average over (e.g., 60 for 1 second at 60fps).
func NewPerfCollector(windowSize int) *PerfCollector {
	if windowSize < 1 {
		windowSize = 60
	}
	return &PerfCollector{
		windowSize: windowSize,
		samples:    make([]PerfSample, windowSize),
	}
}

// Record adds a rendered frame observed at now.
func (p *PerfCollector) Record(fs engine.FrameStats, now time.Time) {
	other := fs.Duration - fs.Shade - fs.Present
	if other < 0 {
		other = 0
	}
	p.samples[p.writeIndex] = PerfSample{
		FrameDuration: fs.Duration,
		Phases: map[string]time.Duration{
			PhaseShade:   fs.Shade,
			PhasePresent: fs.Present,
			PhaseOther:   other,
		},
	}
	p.writeIndex = (p.writeIndex + 1) % p.windowSize
	if p.sampleCount < p.windowSize {
		p.sampleCount++
	}

	if !p.lastFrameTime.IsZero() && now.After(p.lastFrameTime) {
		p.frameInterval = now.Sub(p.lastFrameTime)
	}
	p.lastFrameTime = now
}

// PerfStats holds aggregated performance statistics.
type PerfStats struct {
	// Render timing
	AvgFrameDuration time.Duration
	MinFrameDuration time.Duration
	MaxFrameDuration time.Duration

	// Phase breakdown (average durations)
	PhaseAvg map[string]time.Duration

	// Phase percentages of total frame time
	PhasePct map[string]float64

	// Frames per second the renderer could sustain
	RenderFPS float64

	// Observed frame pacing
	FrameInterval time.Duration
	FPS           float64
}

// Stats computes aggregated statistics over the current window.
func (p *PerfCollector) Stats() PerfStats {
	var fps float64
	if p.frameInterval > 0 {
		fps = float64(time.Second) / float64(p.frameInterval)
	}

	if p.sampleCount == 0 {
		return PerfStats{
			PhaseAvg:      make(map[string]time.Duration),
			PhasePct:      make(map[string]float64),
			FrameInterval: p.frameInterval,
			FPS:           fps,
		}
	}

	var total time.Duration
	var minDur, maxDur time.Duration
	phaseSum := make(map[string]time.Duration)

	for i := 0; i < p.sampleCount; i++ {
		s := p.samples[i]
		total += s.FrameDuration

		if i == 0 || s.FrameDuration < minDur {
			minDur = s.FrameDuration
		}
		if s.FrameDuration > maxDur {
			maxDur = s.FrameDuration
		}

		for phase, dur := range s.Phases {
			phaseSum[phase] += dur
		}
	}

	avg := total / time.Duration(p.sampleCount)

	phaseAvg := make(map[string]time.Duration)
	phasePct := make(map[string]float64)
	for phase, sum := range phaseSum {
		phaseAvg[phase] = sum / time.Duration(p.sampleCount)
		if avg > 0 {
			phasePct[phase] = float64(phaseAvg[phase]) / float64(avg) * 100
		}
	}

	var renderFPS float64
	if avg > 0 {
		renderFPS = float64(time.Second) / float64(avg)
	}

	return PerfStats{
		AvgFrameDuration: avg,
		MinFrameDuration: minDur,
		MaxFrameDuration: maxDur,
		PhaseAvg:         phaseAvg,
		PhasePct:         phasePct,
		RenderFPS:        renderFPS,
		FrameInterval:    p.frameInterval,
		FPS:              fps,
	}
}

// LogStats logs performance statistics.
func (s PerfStats) LogStats() {
	attrs := []any{
		"avg_frame_us", s.AvgFrameDuration.Microseconds(),
		"min_frame_us", s.MinFrameDuration.Microseconds(),
		"max_frame_us", s.MaxFrameDuration.Microseconds(),
		"render_fps", int(s.RenderFPS),
	}

	if s.FPS > 0 {
		attrs = append(attrs, "fps", int(s.FPS))
	}

	for _, phase := range phases {
		if pct, ok := s.PhasePct[phase]; ok && pct > 0.1 {
			attrs = append(attrs, phase+"_pct", int(pct*10)/10.0)
		}
	}

	slog.Info("perf", attrs...)
}

// LogValue implements slog.LogValuer for structured logging.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int64("avg_frame_us", s.AvgFrameDuration.Microseconds()),
		slog.Int64("min_frame_us", s.MinFrameDuration.Microseconds()),
		slog.Int64("max_frame_us", s.MaxFrameDuration.Microseconds()),
		slog.Float64("render_fps", s.RenderFPS),
	}

	if s.FPS > 0 {
		attrs = append(attrs, slog.Float64("fps", s.FPS))
	}

	for _, phase := range phases {
		if pct, ok := s.PhasePct[phase]; ok {
			attrs = append(attrs, slog.Float64(phase+"_pct", pct))
		}
	}

	return slog.GroupValue(attrs...)
}

// PerfStatsCSV is a flat struct for CSV export of performance stats.
type PerfStatsCSV struct {
	WindowEnd  uint64  `csv:"window_end"`
	AvgFrameUS int64   `csv:"avg_frame_us"`
	MinFrameUS int64   `csv:"min_frame_us"`
	MaxFrameUS int64   `csv:"max_frame_us"`
	RenderFPS  float64 `csv:"render_fps"`
	FPS        float64 `csv:"fps"`
	ShadePct   float64 `csv:"shade_pct"`
	PresentPct float64 `csv:"present_pct"`
	OtherPct   float64 `csv:"other_pct"`
}

// ToCSV converts PerfStats to a flat CSV-friendly struct.
func (s PerfStats) ToCSV(windowEnd uint64) PerfStatsCSV {
	return PerfStatsCSV{
		WindowEnd:  windowEnd,
		AvgFrameUS: s.AvgFrameDuration.Microseconds(),
		MinFrameUS: s.MinFrameDuration.Microseconds(),
		MaxFrameUS: s.MaxFrameDuration.Microseconds(),
		RenderFPS:  s.RenderFPS,
		FPS:        s.FPS,
		ShadePct:   s.PhasePct[PhaseShade],
		PresentPct: s.PhasePct[PhasePresent],
		OtherPct:   s.PhasePct[PhaseOther],
	}
}
