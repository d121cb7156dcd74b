package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/staticfield/config"
)

// WheelPixels is the scroll distance of one mouse wheel notch.
const WheelPixels = 100.0

// Window owns the raylib window and turns its per-frame polling into
// resize and wheel events.
type Window struct {
	width, height int
	dpr           float64
	open          bool
}

// OpenWindow creates the window described by cfg.
func OpenWindow(cfg config.ScreenConfig) *Window {
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagWindowHighdpi)
	rl.InitWindow(int32(cfg.Width), int32(cfg.Height), cfg.Title)
	if cfg.TargetFPS > 0 {
		rl.SetTargetFPS(int32(cfg.TargetFPS))
	}

	w := &Window{open: true}
	w.width, w.height, w.dpr = w.measure()
	return w
}

func (w *Window) measure() (int, int, float64) {
	dpr := float64(rl.GetWindowScaleDPI().X)
	if dpr <= 0 {
		dpr = 1
	}
	return rl.GetScreenWidth(), rl.GetScreenHeight(), dpr
}

// Size returns the logical window size and device pixel ratio.
func (w *Window) Size() (width, height int, dpr float64) {
	return w.width, w.height, w.dpr
}

// PollResize reports a new size when the window changed since the last call.
func (w *Window) PollResize() (width, height int, dpr float64, changed bool) {
	if !rl.IsWindowResized() {
		return w.width, w.height, w.dpr, false
	}
	width, height, dpr = w.measure()
	if width == w.width && height == w.height && dpr == w.dpr {
		return width, height, dpr, false
	}
	w.width, w.height, w.dpr = width, height, dpr
	return width, height, dpr, true
}

// Wheel returns this frame's wheel movement in page pixels, positive when
// scrolling down.
func (w *Window) Wheel() float64 {
	return -float64(rl.GetMouseWheelMove()) * WheelPixels
}

// ShouldClose reports whether the user asked to close the window.
func (w *Window) ShouldClose() bool {
	return rl.WindowShouldClose()
}

// Close closes the window. It is safe to call more than once.
func (w *Window) Close() {
	if !w.open {
		return
	}
	rl.CloseWindow()
	w.open = false
}
