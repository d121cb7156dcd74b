// Package viewer hosts an app session in a raylib window: it feeds window
// resizes and wheel input to the app, presents the field texture through
// the camera and draws the overlays on top.
package viewer

import (
	"fmt"
	"log/slog"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/staticfield/app"
	"github.com/pthm-cable/staticfield/camera"
	"github.com/pthm-cable/staticfield/config"
	"github.com/pthm-cable/staticfield/inspector"
	"github.com/pthm-cable/staticfield/renderer"
	"github.com/pthm-cable/staticfield/surface"
	"github.com/pthm-cable/staticfield/ui"
)

// Viewer is a windowed session.
type Viewer struct {
	app *app.App
	cfg *config.Config
	log *slog.Logger

	win  *renderer.Window
	surf *renderer.TextureSurface
	cam  *camera.Camera

	overlays  *ui.OverlayRegistry
	hud       *ui.HUD
	perfPanel *ui.PerfPanel
	settings  *ui.SettingsPanel
	controls  *ui.ControlsPanel
	scroll    *ui.ScrollPanel
	inspector *inspector.Inspector

	maxFrames uint64
	message   string
	messageAt time.Time
}

// Run opens a window and runs the session until the window closes or
// maxFrames frames have rendered (0 for no limit).
func Run(cfg *config.Config, opts app.Options, maxFrames uint64) error {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	v := &Viewer{cfg: cfg, log: log, maxFrames: maxFrames}

	v.win = renderer.OpenWindow(cfg.Screen)
	defer v.win.Close()

	scale := cfg.Screen.PixelScale
	opts.NewSurface = func(w, h int, dpr float64) (surface.Surface, error) {
		s, err := renderer.NewTextureSurface(w, h, dpr, scale)
		if err != nil {
			return nil, err
		}
		v.surf = s
		return s, nil
	}

	a, err := app.New(cfg, opts)
	if err != nil {
		return err
	}
	v.app = a
	defer func() {
		if err := a.Close(); err != nil {
			log.Warn("closing app", "error", err)
		}
	}()

	w, h, dpr := v.win.Size()
	a.Resize(w, h, dpr)
	if err := a.Start(time.Now()); err != nil {
		return fmt.Errorf("start app: %w", err)
	}

	v.cam = camera.New(float64(w), float64(h), float64(w), float64(h))
	v.overlays = ui.NewOverlayRegistry()
	v.hud = ui.NewHUD()
	v.perfPanel = ui.NewPerfPanel(int32(w)-280, 110)
	v.settings = ui.NewSettingsPanel(a.Renderer().Settings(), 10, 110, 300)
	v.controls = ui.NewControlsPanel(10, 110, 220)
	v.scroll = ui.NewScrollPanel()
	v.inspector = inspector.NewInspector(a.Renderer(), int32(w), int32(h))

	v.loop()
	return nil
}

func (v *Viewer) loop() {
	for !v.win.ShouldClose() {
		v.handleInput()
		v.updateView()

		rl.BeginDrawing()
		rl.ClearBackground(rl.Black)
		v.app.Step(time.Now())
		v.drawUI()
		rl.EndDrawing()

		if v.maxFrames > 0 && v.app.Frame() >= v.maxFrames {
			v.log.Info("frame limit reached", "frames", v.app.Frame())
			return
		}
	}
}

// updateView points the texture source at the camera's visible region.
func (v *Viewer) updateView() {
	if v.overlays.IsEnabled(ui.OverlayZoom) {
		v.cam.SetViewBox(v.app.ViewBox(), v.cfg.Derived.Zoom.Full)
	}
	if v.surf == nil {
		return
	}
	x, y, w, h := SourceRect(v.cam)
	v.surf.SetSource(x, y, w, h)
}

// SourceRect returns the camera's visible region as fractions of the field.
func SourceRect(cam *camera.Camera) (x, y, w, h float64) {
	if cam.WorldW <= 0 || cam.WorldH <= 0 {
		return 0, 0, 1, 1
	}
	minX, minY, maxX, maxY := cam.VisibleWorldBounds()
	return minX / cam.WorldW, minY / cam.WorldH, (maxX - minX) / cam.WorldW, (maxY - minY) / cam.WorldH
}

// notify shows a short status message above the control legend.
func (v *Viewer) notify(format string, args ...any) {
	v.message = fmt.Sprintf(format, args...)
	v.messageAt = time.Now()
}
