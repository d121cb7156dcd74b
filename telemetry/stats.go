package telemetry

import (
	"log/slog"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a window of frames.
type WindowStats struct {
	WindowStartFrame uint64  `csv:"-"`
	WindowEndFrame   uint64  `csv:"window_end"`
	AnimTimeSec      float64 `csv:"anim_time"`
	Frames           int     `csv:"frames"`

	// Surface size at window end
	Width  int `csv:"width"`
	Height int `csv:"height"`

	// Render time distribution in milliseconds
	FrameMeanMS float64 `csv:"frame_mean_ms"`
	FrameStdMS  float64 `csv:"frame_std_ms"`
	FrameP50MS  float64 `csv:"frame_p50_ms"`
	FrameP95MS  float64 `csv:"frame_p95_ms"`
	FrameMaxMS  float64 `csv:"frame_max_ms"`

	// Animation frame rate over the window
	FPS float64 `csv:"fps"`

	// Particle variants only
	Particles   int     `csv:"particles"`
	VisibleMean float64 `csv:"visible_mean"`
	VisibleP10  float64 `csv:"visible_p10"`
	VisibleP90  float64 `csv:"visible_p90"`
}

// Percentile calculates the p-th percentile of a sorted slice.
// p should be in [0, 1]. Returns 0 if slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}

	// Linear interpolation
	idx := p * float64(n-1)
	lo := int(idx)
	hi := lo + 1
	if hi >= n {
		return sorted[n-1]
	}

	frac := idx - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// Distribution summarizes a sample.
type Distribution struct {
	Mean, Std          float64
	P10, P50, P90, P95 float64
	Max                float64
}

// Summarize computes mean, population standard deviation and percentiles.
func Summarize(values []float64) Distribution {
	n := len(values)
	if n == 0 {
		return Distribution{}
	}

	mean, variance := stat.PopMeanVariance(values, nil)

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	return Distribution{
		Mean: mean,
		Std:  math.Sqrt(variance),
		P10:  Percentile(sorted, 0.10),
		P50:  Percentile(sorted, 0.50),
		P90:  Percentile(sorted, 0.90),
		P95:  Percentile(sorted, 0.95),
		Max:  sorted[n-1],
	}
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Uint64("window_start", s.WindowStartFrame),
		slog.Uint64("window_end", s.WindowEndFrame),
		slog.Float64("anim_time", s.AnimTimeSec),
		slog.Int("frames", s.Frames),
		slog.Int("width", s.Width),
		slog.Int("height", s.Height),
		slog.Float64("frame_mean_ms", s.FrameMeanMS),
		slog.Float64("frame_std_ms", s.FrameStdMS),
		slog.Float64("frame_p50_ms", s.FrameP50MS),
		slog.Float64("frame_p95_ms", s.FrameP95MS),
		slog.Float64("frame_max_ms", s.FrameMaxMS),
		slog.Float64("fps", s.FPS),
		slog.Int("particles", s.Particles),
		slog.Float64("visible_mean", s.VisibleMean),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEndFrame,
		"anim_time", s.AnimTimeSec,
		"frames", s.Frames,
		"fps", s.FPS,
		"frame_mean_ms", s.FrameMeanMS,
		"frame_p95_ms", s.FrameP95MS,
		"particles", s.Particles,
		"visible_mean", s.VisibleMean,
	)
}
