package anim

import (
	"math"
	"testing"
	"time"
)

func TestClockAdvance(t *testing.T) {
	start := time.Unix(1000, 0)
	c := NewClock(start)

	if got := c.Advance(start.Add(1500 * time.Millisecond)); math.Abs(got-1.5) > 1e-9 {
		t.Errorf("expected 1.5s, got %f", got)
	}

	// Earlier timestamps do not rewind
	if got := c.Advance(start.Add(500 * time.Millisecond)); math.Abs(got-1.5) > 1e-9 {
		t.Errorf("expected clock to hold at 1.5s, got %f", got)
	}

	if c.Frames() != 2 {
		t.Errorf("expected 2 frames, got %d", c.Frames())
	}
}

func TestPingPong(t *testing.T) {
	testCases := []struct{ phase, want float64 }{
		{0, 0},
		{0.25, 0.5},
		{0.5, 1},
		{0.75, 0.5},
		{1.25, 0.5},
	}
	for _, tc := range testCases {
		if got := PingPong(tc.phase); math.Abs(got-tc.want) > 1e-9 {
			t.Errorf("PingPong(%v): expected %v, got %v", tc.phase, tc.want, got)
		}
	}
}

func TestZoomCycle(t *testing.T) {
	z := ZoomCycle{
		Full:   ViewBox{0, 0, 252.66472, 167.70576},
		Zoom:   ViewBox{68, 13, 1, 1},
		Period: 6 * time.Second,
	}

	// Start and end of the period are fully zoomed
	if got := z.At(0); !near(got, z.Zoom) {
		t.Errorf("expected zoom box at t=0, got %+v", got)
	}
	// Half period is the full view
	if got := z.At(3 * time.Second); !near(got, z.Full) {
		t.Errorf("expected full view at half period, got %+v", got)
	}

	if (ZoomCycle{Full: z.Full}).At(time.Second) != z.Full {
		t.Error("expected zero period to return the full view")
	}
}

func near(a, b ViewBox) bool {
	const eps = 1e-9
	return math.Abs(a.X-b.X) < eps && math.Abs(a.Y-b.Y) < eps &&
		math.Abs(a.W-b.W) < eps && math.Abs(a.H-b.H) < eps
}
