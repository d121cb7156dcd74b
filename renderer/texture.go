// Package renderer hosts the field on a raylib window: a texture-backed
// render surface and the window's resize and wheel events.
package renderer

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"sync"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/staticfield/engine"
	"github.com/pthm-cable/staticfield/surface"
)

var (
	// ErrNoWindow is returned when a texture is requested before the window exists.
	ErrNoWindow = errors.New("renderer: window not initialized")
	// ErrTexture is returned when the GPU texture cannot be allocated.
	ErrTexture = errors.New("renderer: texture allocation failed")
)

// TextureSurface renders the field on the CPU into a back buffer, uploads it
// to a texture on Present and draws it over the window. Point filtering
// keeps pixel-scaled renders crisp.
//
// Present must be called between rl.BeginDrawing and rl.EndDrawing.
type TextureSurface struct {
	mu sync.Mutex

	state      surface.State
	pixelScale float64

	back   *image.RGBA
	pixels []color.RGBA
	tex    rl.Texture2D
	texW   int
	texH   int

	// Visible part of the texture as fractions of its size
	srcX, srcY, srcW, srcH float64

	presents    int
	initialized bool
	closed      bool
}

// NewTextureSurface creates a texture surface at a logical size.
func NewTextureSurface(width, height int, dpr, pixelScale float64) (*TextureSurface, error) {
	if !rl.IsWindowReady() {
		return nil, ErrNoWindow
	}
	s := &TextureSurface{pixelScale: pixelScale, srcW: 1, srcH: 1}
	if err := s.Resize(width, height, dpr); err != nil {
		return nil, err
	}
	return s, nil
}

// Factory returns a surface factory for the engine.
func Factory(pixelScale float64) engine.SurfaceFactory {
	return func(w, h int, dpr float64) (surface.Surface, error) {
		return NewTextureSurface(w, h, dpr, pixelScale)
	}
}

// State implements surface.Surface.
func (s *TextureSurface) State() surface.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Resize implements surface.Surface. The texture is reallocated at the new
// back-buffer size.
func (s *TextureSurface) Resize(width, height int, dpr float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return surface.ErrClosed
	}

	w, h := surface.RenderSize(width, height, dpr, s.pixelScale)
	s.state = surface.State{WidthPx: width, HeightPx: height, DevicePixelRatio: dpr}
	if s.initialized && w == s.texW && h == s.texH {
		return nil
	}
	s.unload()

	img := rl.GenImageColor(w, h, rl.Black)
	s.tex = rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)
	if s.tex.ID == 0 {
		return fmt.Errorf("load %dx%d texture: %w", w, h, ErrTexture)
	}
	rl.SetTextureFilter(s.tex, rl.FilterPoint)

	s.texW, s.texH = w, h
	s.back = image.NewRGBA(image.Rect(0, 0, w, h))
	s.pixels = make([]color.RGBA, w*h)
	s.initialized = true
	return nil
}

// Backbuffer implements surface.Surface.
func (s *TextureSurface) Backbuffer() *image.RGBA {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.back
}

// SetSource selects the part of the texture drawn on Present, as fractions
// of the texture size. The full texture is (0, 0, 1, 1).
func (s *TextureSurface) SetSource(x, y, w, h float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.srcX, s.srcY, s.srcW, s.srcH = x, y, w, h
}

// Present implements surface.Surface.
func (s *TextureSurface) Present() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return surface.ErrClosed
	}

	pix := s.back.Pix
	for i := range s.pixels {
		o := i * 4
		s.pixels[i] = color.RGBA{R: pix[o], G: pix[o+1], B: pix[o+2], A: pix[o+3]}
	}
	rl.UpdateTexture(s.tex, s.pixels)

	srcRect := rl.Rectangle{
		X:      float32(s.srcX * float64(s.texW)),
		Y:      float32(s.srcY * float64(s.texH)),
		Width:  float32(s.srcW * float64(s.texW)),
		Height: float32(s.srcH * float64(s.texH)),
	}
	dstRect := rl.Rectangle{X: 0, Y: 0, Width: float32(s.state.WidthPx), Height: float32(s.state.HeightPx)}
	rl.DrawTexturePro(s.tex, srcRect, dstRect, rl.Vector2{}, 0, rl.White)

	s.presents++
	return nil
}

// Presents returns how many frames have been presented.
func (s *TextureSurface) Presents() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.presents
}

// Close implements surface.Surface. It frees the texture and is idempotent.
func (s *TextureSurface) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.unload()
	s.closed = true
	return nil
}

func (s *TextureSurface) unload() {
	if s.initialized {
		rl.UnloadTexture(s.tex)
		s.initialized = false
	}
}
