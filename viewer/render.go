package viewer

import (
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/staticfield/ui"
)

const messageTTL = 3 * time.Second

const controlsLegend = "WHEEL: Scroll | H: HUD | P: Perf | C: Settings | Z: Zoom | S: Scroll demo | I: Inspect | G: Grid | O: Overlays | F2: Snapshot"

// drawUI draws every enabled overlay over the presented field.
func (v *Viewer) drawUI() {
	w, h, dpr := v.win.Size()

	for _, id := range v.overlays.EnabledOverlays() {
		switch id {
		case ui.OverlayGrid:
			v.drawGrid()
		case ui.OverlayScroll:
			demo := v.app.Demo()
			v.scroll.Draw(demo.Cards(), demo.Lock(), int32(w), int32(h), demo.Page().ScrollY())
		case ui.OverlayInspector:
			v.inspector.Refresh()
			v.inspector.DrawSelectionHighlight(v.cam, float64(v.step()))
			v.inspector.Draw()
		}
	}

	// Panels draw after the in-field overlays so they stay on top
	if v.overlays.IsEnabled(ui.OverlayHUD) {
		stats := v.app.Renderer().Stats()
		v.hud.Draw(ui.HUDData{
			Title:        "Static Field",
			Variant:      v.app.Renderer().Variant(),
			Frame:        stats.Frame,
			AnimTime:     stats.Time,
			FPS:          rl.GetFPS(),
			Particles:    stats.Particles,
			Visible:      stats.Visible,
			Width:        w,
			Height:       h,
			DPR:          dpr,
			Seed:         v.app.Seed(),
			Zooming:      v.overlays.IsEnabled(ui.OverlayZoom),
			ScreenHeight: int32(h),
		})
	}
	if v.overlays.IsEnabled(ui.OverlayPerf) {
		v.perfPanel.Draw(v.app.Perf())
	}
	if v.overlays.IsEnabled(ui.OverlaySettings) {
		v.settings.Draw()
	} else {
		v.controls.Draw(v.overlays)
	}

	if v.message != "" && time.Since(v.messageAt) < messageTTL {
		rl.DrawText(v.message, 10, int32(h)-45, 14, rl.Yellow)
	}
	v.hud.DrawControls(int32(h), controlsLegend)
}

func (v *Viewer) step() int {
	cfg, _ := v.app.Renderer().Settings().Snapshot()
	return cfg.Step
}

// drawGrid outlines the particle lattice in the visible region.
func (v *Viewer) drawGrid() {
	step := float64(v.step())
	if step <= 0 || step*v.cam.Zoom < 4 {
		return
	}
	color := rl.Color{R: 255, G: 255, B: 255, A: 30}
	minX, minY, maxX, maxY := v.cam.VisibleWorldBounds()

	for x := float64(int(minX/step)) * step; x <= maxX; x += step {
		sx, sy0 := v.cam.WorldToScreen(x, minY)
		_, sy1 := v.cam.WorldToScreen(x, maxY)
		rl.DrawLine(int32(sx), int32(sy0), int32(sx), int32(sy1), color)
	}
	for y := float64(int(minY/step)) * step; y <= maxY; y += step {
		sx0, sy := v.cam.WorldToScreen(minX, y)
		sx1, _ := v.cam.WorldToScreen(maxX, y)
		rl.DrawLine(int32(sx0), int32(sy), int32(sx1), int32(sy), color)
	}
}
