package viewer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/staticfield/ui"
)

// handleInput processes window, keyboard and mouse input.
func (v *Viewer) handleInput() {
	// Window resize propagation
	v.handleResize()

	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}

	v.handleOverlayKeys()

	if rl.IsKeyPressed(rl.KeyO) {
		v.controls.Toggle()
	}

	// Snapshot
	if rl.IsKeyPressed(rl.KeyF2) {
		path, err := v.app.SaveSnapshot()
		if err != nil {
			v.log.Warn("snapshot failed", "error", err)
			v.notify("snapshot failed: %v", err)
		} else {
			v.notify("saved %s", path)
		}
	}

	// Wheel drives the scroll demo
	if delta := v.win.Wheel(); delta != 0 {
		v.app.Wheel(delta)
	}

	v.handleCameraInput()

	if v.overlays.IsEnabled(ui.OverlayInspector) {
		mouse := rl.GetMousePosition()
		v.inspector.HandleInput(mouse.X, mouse.Y, v.cam)
	}
}

// handleOverlayKeys checks for overlay toggle key presses.
func (v *Viewer) handleOverlayKeys() {
	for _, desc := range v.overlays.All() {
		if desc.Key == 0 || !rl.IsKeyPressed(desc.Key) {
			continue
		}
		if on := v.overlays.Toggle(desc.ID); !on && desc.ID == ui.OverlayZoom {
			v.cam.Reset()
		}
	}
}

// handleResize checks for window resize and propagates new dimensions.
func (v *Viewer) handleResize() {
	w, h, dpr, changed := v.win.PollResize()
	if !changed {
		return
	}
	v.app.Resize(w, h, dpr)

	fw, fh := float64(w), float64(h)
	v.cam.Resize(fw, fh, fw, fh)
	v.perfPanel.SetPosition(int32(w)-280, 110)
	v.inspector.Resize(int32(w), int32(h))
}

// handleCameraInput processes camera pan/zoom controls. The zoom cycle
// owns the camera while it is enabled.
func (v *Viewer) handleCameraInput() {
	if v.overlays.IsEnabled(ui.OverlayZoom) {
		return
	}

	// Pan speed scales inversely with zoom for natural feel
	panSpeed := 8.0 / v.cam.Zoom

	if rl.IsKeyDown(rl.KeyRight) {
		v.cam.Pan(panSpeed, 0)
	}
	if rl.IsKeyDown(rl.KeyLeft) {
		v.cam.Pan(-panSpeed, 0)
	}
	if rl.IsKeyDown(rl.KeyDown) {
		v.cam.Pan(0, panSpeed)
	}
	if rl.IsKeyDown(rl.KeyUp) {
		v.cam.Pan(0, -panSpeed)
	}

	// Keyboard zoom with +/- (= and - keys)
	if rl.IsKeyPressed(rl.KeyEqual) || rl.IsKeyPressed(rl.KeyKpAdd) {
		v.cam.ZoomBy(1.25)
	}
	if rl.IsKeyPressed(rl.KeyMinus) || rl.IsKeyPressed(rl.KeyKpSubtract) {
		v.cam.ZoomBy(0.8)
	}

	if rl.IsKeyPressed(rl.KeyHome) {
		v.cam.Reset()
	}
}
