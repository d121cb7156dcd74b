package surface

import (
	"image"
	"sync"
)

// ImageSurface is a CPU surface. Present copies the backbuffer into a front
// image at device resolution, upscaling when a pixel scale is set.
// It backs headless runs and tests.
type ImageSurface struct {
	mu sync.Mutex

	state      State
	pixelScale float64

	back  *image.RGBA
	front *image.RGBA

	presents int
	closed   bool
}

// NewImageSurface creates an image surface at the given logical size.
func NewImageSurface(width, height int, dpr, pixelScale float64) *ImageSurface {
	s := &ImageSurface{pixelScale: pixelScale}
	s.allocate(width, height, dpr)
	return s
}

func (s *ImageSurface) allocate(width, height int, dpr float64) {
	if dpr <= 0 {
		dpr = 1
	}
	s.state = State{WidthPx: width, HeightPx: height, DevicePixelRatio: dpr}

	bw, bh := RenderSize(width, height, dpr, s.pixelScale)
	s.back = image.NewRGBA(image.Rect(0, 0, bw, bh))

	fw, fh := RenderSize(width, height, dpr, 1)
	s.front = image.NewRGBA(image.Rect(0, 0, fw, fh))
}

// State implements Surface.
func (s *ImageSurface) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Resize implements Surface.
func (s *ImageSurface) Resize(width, height int, dpr float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	s.allocate(width, height, dpr)
	return nil
}

// Backbuffer implements Surface.
func (s *ImageSurface) Backbuffer() *image.RGBA {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.back
}

// Present implements Surface.
func (s *ImageSurface) Present() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	Upscale(s.front, s.back)
	s.presents++
	return nil
}

// Snapshot returns a copy of the last presented frame.
func (s *ImageSurface) Snapshot() *image.RGBA {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := image.NewRGBA(s.front.Bounds())
	copy(out.Pix, s.front.Pix)
	return out
}

// Presents returns how many frames have been presented.
func (s *ImageSurface) Presents() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.presents
}

// Closed reports whether Close has been called.
func (s *ImageSurface) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// Close implements Surface.
func (s *ImageSurface) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	s.back = image.NewRGBA(image.Rectangle{})
	s.front = image.NewRGBA(image.Rectangle{})
	return nil
}
