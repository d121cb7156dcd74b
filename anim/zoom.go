package anim

import (
	"math"
	"time"
)

// Lerp linearly interpolates between a and b.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// PingPong maps phase in [0,1) to a triangle wave 0 -> 1 -> 0.
func PingPong(phase float64) float64 {
	phase -= math.Floor(phase)
	if phase < 0.5 {
		return phase * 2
	}
	return (1 - phase) * 2
}

// CosineEase eases t in [0,1] with a cosine in-out curve.
func CosineEase(t float64) float64 {
	return 0.5 - 0.5*math.Cos(math.Pi*t)
}

// ViewBox is an SVG-style viewport rectangle.
type ViewBox struct {
	X, Y, W, H float64
}

// LerpViewBox interpolates each component of a view box.
func LerpViewBox(a, b ViewBox, t float64) ViewBox {
	return ViewBox{
		X: Lerp(a.X, b.X, t),
		Y: Lerp(a.Y, b.Y, t),
		W: Lerp(a.W, b.W, t),
		H: Lerp(a.H, b.H, t),
	}
}

// ZoomCycle animates a view box between a full view and a zoomed region.
// One period runs zoomed -> full -> zoomed.
type ZoomCycle struct {
	Full   ViewBox
	Zoom   ViewBox
	Period time.Duration
}

// At returns the view box at elapsed time.
func (z ZoomCycle) At(elapsed time.Duration) ViewBox {
	if z.Period <= 0 {
		return z.Full
	}
	phase := float64(elapsed%z.Period) / float64(z.Period)
	eased := CosineEase(PingPong(phase))
	return LerpViewBox(z.Full, z.Zoom, 1-eased)
}
