package scroll

import "math"

// Policy maps element geometry to progress in [0,1].
type Policy interface {
	Progress(r Rect, viewportHeight float64) float64
}

// Policy defaults.
const (
	DefaultTriggerFactor = 1.0
	DefaultEnterDistance = 400.0
	DefaultMaxDistance   = 300.0
	DefaultRevealStart   = 0.7
	DefaultRevealEnd     = 0.3
)

// EntranceSlide ramps progress from 0 to 1 as the element's top travels
// EnterDistance pixels past a trigger line at TriggerFactor of the
// viewport height.
type EntranceSlide struct {
	TriggerFactor float64
	EnterDistance float64
}

// NewEntranceSlide returns the policy with stock parameters.
func NewEntranceSlide() EntranceSlide {
	return EntranceSlide{TriggerFactor: DefaultTriggerFactor, EnterDistance: DefaultEnterDistance}
}

// Progress implements Policy.
func (p EntranceSlide) Progress(r Rect, viewportHeight float64) float64 {
	delta := viewportHeight*p.TriggerFactor - r.Top
	if p.EnterDistance <= 0 {
		return step(delta)
	}
	return clamp01(delta / p.EnterDistance)
}

// CenterDistance peaks when the element centre meets the viewport centre
// and falls off linearly over MaxDistance pixels.
//
// Once the element has passed the centre going up, progress stays at 1
// unless Symmetric is set, in which case it eases back out.
type CenterDistance struct {
	MaxDistance float64
	Symmetric   bool
}

// NewCenterDistance returns the one-sided policy with stock parameters.
func NewCenterDistance() CenterDistance {
	return CenterDistance{MaxDistance: DefaultMaxDistance}
}

// Progress implements Policy.
func (p CenterDistance) Progress(r Rect, viewportHeight float64) float64 {
	signed := r.Center() - viewportHeight/2
	if signed < 0 && !p.Symmetric {
		return 1
	}
	if p.MaxDistance <= 0 {
		if signed == 0 {
			return 1
		}
		return 0
	}
	return clamp01(1 - math.Abs(signed)/p.MaxDistance)
}

// RevealWindow ramps progress as the element's top moves from Start to End,
// both given as fractions of the viewport height.
type RevealWindow struct {
	Start float64
	End   float64
}

// NewRevealWindow returns the policy with stock parameters.
func NewRevealWindow() RevealWindow {
	return RevealWindow{Start: DefaultRevealStart, End: DefaultRevealEnd}
}

// Progress implements Policy.
func (p RevealWindow) Progress(r Rect, viewportHeight float64) float64 {
	start := viewportHeight * p.Start
	dist := start - viewportHeight*p.End
	if dist == 0 {
		return step(start - r.Top)
	}
	return clamp01((start - r.Top) / dist)
}

func step(v float64) float64 {
	if v >= 0 {
		return 1
	}
	return 0
}
