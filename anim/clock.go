// Package anim provides the animation clock and time-driven easing helpers.
package anim

import "time"

// Clock measures elapsed animation time from its first frame. It is advanced
// exactly once per rendered frame with the frame's timestamp, so every
// element evaluated during one frame sees the same time.
type Clock struct {
	start   time.Time
	last    time.Time
	elapsed time.Duration
	frames  uint64
}

// NewClock creates a clock that starts at start.
func NewClock(start time.Time) *Clock {
	return &Clock{start: start, last: start}
}

// Advance moves the clock to now and returns elapsed seconds since start.
// Timestamps earlier than the last one are ignored so time never runs backwards.
func (c *Clock) Advance(now time.Time) float64 {
	if now.After(c.last) {
		c.last = now
		c.elapsed = now.Sub(c.start)
	}
	c.frames++
	return c.Seconds()
}

// Seconds returns elapsed seconds as of the last Advance.
func (c *Clock) Seconds() float64 {
	return c.elapsed.Seconds()
}

// Elapsed returns elapsed time as of the last Advance.
func (c *Clock) Elapsed() time.Duration {
	return c.elapsed
}

// Frames returns how many times Advance has been called.
func (c *Clock) Frames() uint64 {
	return c.frames
}
