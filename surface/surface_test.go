package surface

import (
	"errors"
	"image"
	"image/color"
	"testing"
)

func TestRenderSize(t *testing.T) {
	testCases := []struct {
		w, h         int
		dpr, scale   float64
		wantW, wantH int
	}{
		{800, 600, 1, 1, 800, 600},
		{800, 600, 2, 1, 1600, 1200},
		{800, 600, 2, 4, 400, 300},
		{801, 601, 1, 2, 401, 301},
		{0, 0, 1, 1, 1, 1},
		{100, 50, 0, 0, 100, 50},
	}

	for _, tc := range testCases {
		w, h := RenderSize(tc.w, tc.h, tc.dpr, tc.scale)
		if w != tc.wantW || h != tc.wantH {
			t.Errorf("RenderSize(%d,%d,%v,%v): expected %dx%d, got %dx%d",
				tc.w, tc.h, tc.dpr, tc.scale, tc.wantW, tc.wantH, w, h)
		}
	}
}

func TestImageSurfaceResize(t *testing.T) {
	s := NewImageSurface(320, 200, 2, 1)
	if b := s.Backbuffer().Bounds(); b.Dx() != 640 || b.Dy() != 400 {
		t.Errorf("expected 640x400 backbuffer, got %v", b)
	}

	if err := s.Resize(100, 80, 1); err != nil {
		t.Fatalf("unexpected resize error: %v", err)
	}
	st := s.State()
	if st.WidthPx != 100 || st.HeightPx != 80 || st.DevicePixelRatio != 1 {
		t.Errorf("unexpected state after resize: %+v", st)
	}
	if b := s.Backbuffer().Bounds(); b.Dx() != 100 || b.Dy() != 80 {
		t.Errorf("expected 100x80 backbuffer, got %v", b)
	}
}

func TestPresentUpscales(t *testing.T) {
	s := NewImageSurface(8, 8, 1, 4)
	back := s.Backbuffer()
	if b := back.Bounds(); b.Dx() != 2 || b.Dy() != 2 {
		t.Fatalf("expected 2x2 backbuffer, got %v", b)
	}

	red := color.RGBA{R: 255, A: 255}
	blue := color.RGBA{B: 255, A: 255}
	Fill(back, blue)
	back.SetRGBA(0, 0, red)

	if err := s.Present(); err != nil {
		t.Fatalf("unexpected present error: %v", err)
	}
	snap := s.Snapshot()
	if snap.Bounds().Dx() != 8 {
		t.Fatalf("expected 8px wide snapshot, got %v", snap.Bounds())
	}
	if got := snap.RGBAAt(3, 3); got != red {
		t.Errorf("expected red in upscaled top-left block, got %v", got)
	}
	if got := snap.RGBAAt(4, 4); got != blue {
		t.Errorf("expected blue outside top-left block, got %v", got)
	}
	if s.Presents() != 1 {
		t.Errorf("expected 1 present, got %d", s.Presents())
	}
}

func TestCloseIdempotent(t *testing.T) {
	s := NewImageSurface(10, 10, 1, 1)
	if err := s.Close(); err != nil {
		t.Fatalf("unexpected close error: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("expected second close to succeed, got %v", err)
	}
	if !s.Closed() {
		t.Error("expected surface to report closed")
	}
	if err := s.Present(); !errors.Is(err, ErrClosed) {
		t.Errorf("expected ErrClosed from present, got %v", err)
	}
	if err := s.Resize(5, 5, 1); !errors.Is(err, ErrClosed) {
		t.Errorf("expected ErrClosed from resize, got %v", err)
	}
}

func TestBlendRect(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	Fill(img, color.RGBA{A: 255})

	BlendRect(img, image.Rect(1, 1, 3, 3), color.RGBA{R: 200, G: 200, B: 200, A: 255}, 0.5)

	if got := img.RGBAAt(0, 0); got.R != 0 {
		t.Errorf("expected untouched pixel outside rect, got %v", got)
	}
	got := img.RGBAAt(1, 1)
	if got.R < 95 || got.R > 105 {
		t.Errorf("expected half-blended red near 100, got %v", got)
	}

	// Out of bounds and zero alpha are no-ops
	BlendRect(img, image.Rect(10, 10, 12, 12), color.RGBA{R: 255, A: 255}, 1)
	BlendRect(img, image.Rect(0, 0, 1, 1), color.RGBA{R: 255, A: 255}, 0)
	if got := img.RGBAAt(0, 0); got.R != 0 {
		t.Errorf("expected no-op blends, got %v", got)
	}
}
