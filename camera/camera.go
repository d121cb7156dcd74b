// Package camera maps between the rendered field and the window when the
// view is zoomed into part of the field.
package camera

import "github.com/pthm-cable/staticfield/anim"

// Camera controls the viewport into the field.
// The visible region is kept inside the field bounds.
type Camera struct {
	// Position is the camera center in field coordinates
	X, Y float64

	// Zoom level (1.0 = 1:1, 2.0 = 2x magnification)
	Zoom float64

	// Viewport dimensions (screen size)
	ViewportW, ViewportH float64

	// Field dimensions in logical pixels
	WorldW, WorldH float64

	// Zoom constraints
	MinZoom, MaxZoom float64
}

// New creates a camera centered on the field with 1:1 zoom.
func New(viewportW, viewportH, worldW, worldH float64) *Camera {
	c := &Camera{
		X:         worldW / 2,
		Y:         worldH / 2,
		Zoom:      1.0,
		ViewportW: viewportW,
		ViewportH: viewportH,
		WorldW:    worldW,
		WorldH:    worldH,
		MaxZoom:   8.0,
	}
	c.MinZoom = minZoom(viewportW, viewportH, worldW, worldH)
	c.Zoom = max(c.Zoom, c.MinZoom)
	return c
}

// minZoom is the smallest zoom at which the viewport still fits in the field.
func minZoom(viewportW, viewportH, worldW, worldH float64) float64 {
	if worldW <= 0 || worldH <= 0 {
		return 1
	}
	return max(viewportW/worldW, viewportH/worldH)
}

// WorldToScreen converts field coordinates to screen coordinates.
func (c *Camera) WorldToScreen(wx, wy float64) (sx, sy float64) {
	sx = c.ViewportW/2 + (wx-c.X)*c.Zoom
	sy = c.ViewportH/2 + (wy-c.Y)*c.Zoom
	return sx, sy
}

// ScreenToWorld converts screen coordinates to field coordinates.
func (c *Camera) ScreenToWorld(sx, sy float64) (wx, wy float64) {
	wx = c.X + (sx-c.ViewportW/2)/c.Zoom
	wy = c.Y + (sy-c.ViewportH/2)/c.Zoom
	return wx, wy
}

// IsVisible returns true if a square of the given half-size at (wx, wy)
// could be visible on screen.
func (c *Camera) IsVisible(wx, wy, radius float64) bool {
	halfW := c.ViewportW/(2*c.Zoom) + radius
	halfH := c.ViewportH/(2*c.Zoom) + radius
	return absf(wx-c.X) <= halfW && absf(wy-c.Y) <= halfH
}

// Resize updates viewport and field dimensions and recalculates zoom constraints.
func (c *Camera) Resize(viewportW, viewportH, worldW, worldH float64) {
	if viewportW == c.ViewportW && viewportH == c.ViewportH && worldW == c.WorldW && worldH == c.WorldH {
		return
	}
	// Keep the same relative center
	if c.WorldW > 0 && c.WorldH > 0 {
		c.X = c.X / c.WorldW * worldW
		c.Y = c.Y / c.WorldH * worldH
	}
	c.ViewportW, c.ViewportH = viewportW, viewportH
	c.WorldW, c.WorldH = worldW, worldH
	c.MinZoom = minZoom(viewportW, viewportH, worldW, worldH)
	if c.Zoom < c.MinZoom {
		c.Zoom = c.MinZoom
	}
	c.clampCenter()
}

// Pan moves the camera by the given delta in screen pixels.
func (c *Camera) Pan(dx, dy float64) {
	c.X += dx / c.Zoom
	c.Y += dy / c.Zoom
	c.clampCenter()
}

// SetZoom sets the zoom level, clamped to min/max.
func (c *Camera) SetZoom(zoom float64) {
	c.Zoom = clamp(zoom, c.MinZoom, c.MaxZoom)
	c.clampCenter()
}

// ZoomBy multiplies the current zoom by the given factor.
func (c *Camera) ZoomBy(factor float64) {
	c.SetZoom(c.Zoom * factor)
}

// Reset returns the camera to the default position and zoom.
func (c *Camera) Reset() {
	c.X = c.WorldW / 2
	c.Y = c.WorldH / 2
	c.Zoom = max(1.0, c.MinZoom)
}

// SetViewBox points the camera at view box vb, expressed in the coordinate
// space of full, which spans the whole field.
func (c *Camera) SetViewBox(vb, full anim.ViewBox) {
	if vb.W <= 0 || vb.H <= 0 || full.W <= 0 || full.H <= 0 {
		return
	}
	c.X = (vb.X + vb.W/2 - full.X) / full.W * c.WorldW
	c.Y = (vb.Y + vb.H/2 - full.Y) / full.H * c.WorldH
	// Fit the box's width; the viewport aspect decides the visible height
	fit := c.ViewportW / (vb.W / full.W * c.WorldW)
	c.Zoom = clamp(fit, c.MinZoom, c.MaxZoom)
	c.clampCenter()
}

// VisibleWorldBounds returns the field-coordinate bounds of the visible area.
// Returns (minX, minY, maxX, maxY) in field coordinates.
func (c *Camera) VisibleWorldBounds() (minX, minY, maxX, maxY float64) {
	halfW := c.ViewportW / (2 * c.Zoom)
	halfH := c.ViewportH / (2 * c.Zoom)

	minX = c.X - halfW
	maxX = c.X + halfW
	minY = c.Y - halfH
	maxY = c.Y + halfH
	return
}

// clampCenter keeps the visible area inside the field.
func (c *Camera) clampCenter() {
	halfW := c.ViewportW / (2 * c.Zoom)
	halfH := c.ViewportH / (2 * c.Zoom)
	c.X = clampAxis(c.X, halfW, c.WorldW)
	c.Y = clampAxis(c.Y, halfH, c.WorldH)
}

func clampAxis(center, half, size float64) float64 {
	if 2*half >= size {
		return size / 2
	}
	return clamp(center, half, size-half)
}

// absf returns the absolute value of a float64.
func absf(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

// clamp restricts a value to a range.
func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
