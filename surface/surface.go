// Package surface defines the render target the field renderer draws into.
package surface

import (
	"errors"
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"
)

// ErrClosed is returned by operations on a closed surface.
var ErrClosed = errors.New("surface: closed")

// State is the geometry of a surface.
type State struct {
	WidthPx          int     // logical width
	HeightPx         int     // logical height
	DevicePixelRatio float64 // device pixels per logical pixel
}

// Surface is a drawable target with a CPU-side backbuffer.
//
// Rendering writes into Backbuffer, then Present hands the frame to the
// display. Surfaces are used from the render goroutine only.
type Surface interface {
	// State returns the current logical size and pixel ratio.
	State() State

	// Resize reallocates the backbuffer for a new logical size.
	Resize(width, height int, dpr float64) error

	// Backbuffer returns the image to render into. Its bounds are the
	// render resolution and change only on Resize.
	Backbuffer() *image.RGBA

	// Present displays the backbuffer contents.
	Present() error

	// Close releases all resources. Close is idempotent.
	Close() error
}

// RenderSize returns the backbuffer dimensions for a logical size, pixel
// ratio and pixel scale. A pixel scale above 1 renders fewer, larger pixels.
func RenderSize(width, height int, dpr, pixelScale float64) (int, int) {
	if dpr <= 0 {
		dpr = 1
	}
	if pixelScale < 1 {
		pixelScale = 1
	}
	w := int(math.Ceil(float64(width) * dpr / pixelScale))
	h := int(math.Ceil(float64(height) * dpr / pixelScale))
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return w, h
}

// Fill paints the whole image with c.
func Fill(img *image.RGBA, c color.RGBA) {
	draw.Draw(img, img.Bounds(), &image.Uniform{C: c}, image.Point{}, draw.Src)
}

// BlendRect draws c over r with the given opacity.
func BlendRect(img *image.RGBA, r image.Rectangle, c color.RGBA, alpha float64) {
	r = r.Intersect(img.Bounds())
	if r.Empty() || alpha <= 0 {
		return
	}
	if alpha > 1 {
		alpha = 1
	}
	mask := &image.Uniform{C: color.Alpha{A: uint8(alpha*255 + 0.5)}}
	draw.DrawMask(img, r, &image.Uniform{C: c}, image.Point{}, mask, image.Point{}, draw.Over)
}

// Upscale copies src onto dst stretched to dst's bounds with nearest
// neighbour sampling, keeping pixel edges hard.
func Upscale(dst draw.Image, src image.Image) {
	if dst.Bounds().Size() == src.Bounds().Size() {
		draw.Draw(dst, dst.Bounds(), src, src.Bounds().Min, draw.Src)
		return
	}
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
}
