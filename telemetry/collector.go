package telemetry

import (
	"time"

	"github.com/pthm-cable/staticfield/engine"
)

// Collector accumulates frames within animation-time windows and produces
// WindowStats.
type Collector struct {
	windowDuration float64 // seconds of animation time

	// Current window tracking
	windowStartFrame uint64
	windowStartTime  float64
	started          bool

	durations []float64
	visible   []float64
	last      engine.FrameStats
}

// NewCollector creates a new stats collector.
// window: how long each stats window lasts in animation time.
func NewCollector(window time.Duration) *Collector {
	if window <= 0 {
		window = 5 * time.Second
	}
	return &Collector{windowDuration: window.Seconds()}
}

// Record adds a frame. When the frame closes a window, the window's stats
// are returned with ok set.
func (c *Collector) Record(fs engine.FrameStats) (WindowStats, bool) {
	if !c.started {
		c.windowStartFrame = fs.Frame
		c.windowStartTime = fs.Time
		c.started = true
	}

	c.durations = append(c.durations, float64(fs.Duration)/float64(time.Millisecond))
	c.visible = append(c.visible, float64(fs.Visible))
	c.last = fs

	if fs.Time-c.windowStartTime < c.windowDuration {
		return WindowStats{}, false
	}
	return c.Flush(), true
}

// Pending returns how many frames are in the open window.
func (c *Collector) Pending() int { return len(c.durations) }

// Flush closes the current window, even if it is not yet full, and
// returns its stats. Flushing an empty window returns zero stats.
func (c *Collector) Flush() WindowStats {
	if len(c.durations) == 0 {
		return WindowStats{}
	}

	frameDist := Summarize(c.durations)
	visDist := Summarize(c.visible)

	ws := WindowStats{
		WindowStartFrame: c.windowStartFrame,
		WindowEndFrame:   c.last.Frame,
		AnimTimeSec:      c.last.Time,
		Frames:           len(c.durations),
		Width:            c.last.Width,
		Height:           c.last.Height,
		FrameMeanMS:      frameDist.Mean,
		FrameStdMS:       frameDist.Std,
		FrameP50MS:       frameDist.P50,
		FrameP95MS:       frameDist.P95,
		FrameMaxMS:       frameDist.Max,
		Particles:        c.last.Particles,
	}
	if c.last.Particles > 0 {
		ws.VisibleMean = visDist.Mean
		ws.VisibleP10 = visDist.P10
		ws.VisibleP90 = visDist.P90
	}
	if span := c.last.Time - c.windowStartTime; span > 0 && ws.Frames > 1 {
		ws.FPS = float64(ws.Frames-1) / span
	}

	c.durations = c.durations[:0]
	c.visible = c.visible[:0]
	c.started = false
	return ws
}
