// Package scroll converts page scroll geometry and wheel input into
// normalized progress for scroll-driven element transforms.
package scroll

// Rect is an element's bounding box in viewport pixels.
type Rect struct {
	Top    float64
	Height float64
}

// Bottom returns the bottom edge.
func (r Rect) Bottom() float64 { return r.Top + r.Height }

// Center returns the vertical centre.
func (r Rect) Center() float64 { return r.Top + r.Height/2 }

// Intersects reports whether any part of r overlaps a viewport of the
// given height.
func (r Rect) Intersects(viewportHeight float64) bool {
	return r.Top < viewportHeight && r.Bottom() > 0
}

// Viewport is the visible area of the page.
type Viewport struct {
	Width  float64
	Height float64
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
