package scroll

import "strconv"

// MobileBreakpoint is the viewport width below which layouts switch to
// the mobile transform.
const MobileBreakpoint = 768

// DefaultStartOffsetPct is where a sliding graphic starts, in percent of
// its own width.
const DefaultStartOffsetPct = -150

// DefaultViewportReach is the fraction of the viewport a viewport slide
// travels.
const DefaultViewportReach = 0.85

// Unit is a CSS-style length unit.
type Unit string

const (
	Percent Unit = "%"
	Pixels  Unit = "px"
)

// Axis is the translation direction.
type Axis byte

const (
	AxisX Axis = 'X'
	AxisY Axis = 'Y'
)

// Translation is a single-axis translation derived from progress.
type Translation struct {
	Axis  Axis
	Value float64
	Unit  Unit
}

// String renders the translation as a CSS transform.
func (t Translation) String() string {
	return "translate" + string(t.Axis) + "(" + formatLength(t.Value) + string(t.Unit) + ")"
}

func formatLength(v float64) string {
	if v == 0 {
		v = 0 // fold -0
	}
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// IsMobile reports whether a viewport width uses the mobile layout.
func IsMobile(width float64) bool {
	return width < MobileBreakpoint
}

// SlideX returns the horizontal offset in percent for a graphic that slides
// from startOffsetPct to 0 as progress goes 0 to 1.
func SlideX(progress, startOffsetPct float64) Translation {
	return Translation{Axis: AxisX, Value: (1 - clamp01(progress)) * startOffsetPct, Unit: Percent}
}

// ViewportSlide returns the horizontal offset in pixels for a fixed graphic
// entering from fully off the left edge to reach of the viewport width.
func ViewportSlide(progress, viewportWidth, reach float64) Translation {
	p := clamp01(progress)
	return Translation{Axis: AxisX, Value: -viewportWidth + p*viewportWidth*reach, Unit: Pixels}
}

// RevealTransform returns the reveal section transform: a horizontal slide
// from -100% on desktop, a short drop from -40px on mobile.
func RevealTransform(progress float64, mobile bool) Translation {
	p := clamp01(progress)
	if mobile {
		return Translation{Axis: AxisY, Value: (1 - p) * -40, Unit: Pixels}
	}
	return Translation{Axis: AxisX, Value: (p - 1) * 100, Unit: Percent}
}
