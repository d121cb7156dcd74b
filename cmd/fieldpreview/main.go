// Field preview tool - interactive field tuning with sliders.
//
// Usage: go run ./cmd/fieldpreview [-config path]
package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"os"
	"time"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/staticfield/config"
	"github.com/pthm-cable/staticfield/engine"
	"github.com/pthm-cable/staticfield/field"
	"github.com/pthm-cable/staticfield/noise"
	"github.com/pthm-cable/staticfield/surface"
	"github.com/pthm-cable/staticfield/ui"
)

const (
	windowWidth  = 1000
	windowHeight = 720
	previewSize  = 512
	renderSize   = 256
	panelWidth   = windowWidth - previewSize - 30
)

var (
	variants = []string{field.VariantPointCloud, field.VariantStaticNoise, field.VariantDotGrid, field.VariantParticleCloud}
	backends = []string{noise.BackendSimplex, noise.BackendOpenSimplex, noise.BackendPerlin}
)

// preview owns one renderer over an in-memory surface.
type preview struct {
	cfg      *config.Config
	settings *field.Settings
	sched    *engine.ManualScheduler
	surf     *surface.ImageSurface
	r        *engine.Renderer
	log      *slog.Logger
}

func newPreview(cfg *config.Config, log *slog.Logger) *preview {
	return &preview{
		cfg:      cfg,
		settings: field.NewSettings(cfg.Derived.Field),
		log:      log,
	}
}

// restart rebuilds the renderer, keeping the live settings.
func (p *preview) restart() error {
	if p.r != nil {
		p.r.Dispose()
	}
	p.sched = engine.NewManualScheduler()
	p.r = engine.New(engine.Options{
		Width:    renderSize,
		Height:   renderSize,
		Variant:  p.cfg.Field.Variant,
		Backend:  p.cfg.Field.Backend,
		Seed:     p.cfg.Field.Seed,
		Settings: p.settings,
		NewSurface: func(w, h int, dpr float64) (surface.Surface, error) {
			p.surf = surface.NewImageSurface(w, h, dpr, 1)
			return p.surf, nil
		},
		Scheduler: p.sched,
		Logger:    p.log,
	})
	return p.r.Start()
}

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if cfg.Field.Seed == 0 {
		cfg.Field.Seed = 12345
	}

	rl.InitWindow(windowWidth, windowHeight, "Field Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(30)

	img := rl.GenImageColor(renderSize, renderSize, rl.Black)
	texture := rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)
	defer rl.UnloadTexture(texture)

	p := newPreview(cfg, log)
	if err := p.restart(); err != nil {
		log.Error("failed to start preview", "error", err)
		os.Exit(1)
	}
	defer p.r.Dispose()

	// Virtual clock so pausing freezes the field
	clock := time.Unix(0, 0)
	animating := true
	pixels := make([]color.RGBA, renderSize*renderSize)
	status := ""

	for !rl.WindowShouldClose() {
		if animating {
			clock = clock.Add(time.Duration(rl.GetFrameTime() * float32(time.Second)))
		}
		p.sched.Step(clock)
		if snap := p.surf.Snapshot(); snap != nil {
			updateTexture(texture, snap, pixels)
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)

		rl.DrawTexturePro(
			texture,
			rl.Rectangle{X: 0, Y: 0, Width: renderSize, Height: renderSize},
			rl.Rectangle{X: 10, Y: 10, Width: previewSize, Height: previewSize},
			rl.Vector2{X: 0, Y: 0},
			0,
			rl.White,
		)
		rl.DrawRectangleLines(10, 10, previewSize, previewSize, rl.DarkGray)

		stats := p.r.Stats()
		statsY := int32(previewSize + 25)
		rl.DrawText(fmt.Sprintf("Frame: %d  t=%.1fs  Shade: %s", stats.Frame, stats.Time, stats.Shade.Round(time.Microsecond)), 15, statsY, 16, rl.DarkGray)
		if stats.Particles > 0 {
			rl.DrawText(fmt.Sprintf("Particles: %d visible / %d", stats.Visible, stats.Particles), 15, statsY+20, 16, rl.DarkGray)
		}
		rl.DrawText(fmt.Sprintf("Seed: %d  Variant: %s  Backend: %s", cfg.Field.Seed, cfg.Field.Variant, cfg.Field.Backend), 15, statsY+40, 16, rl.DarkGray)

		// Control panel
		panelX := float32(previewSize + 20)
		panelY := float32(10)

		rl.DrawText("Field Parameters", int32(panelX), int32(panelY), 20, rl.DarkGray)
		panelY += 35

		restart := false
		panelY = drawChoices(panelX, panelY, "Variant", variants, &cfg.Field.Variant, &restart)
		panelY = drawChoices(panelX, panelY, "Backend", backends, &cfg.Field.Backend, &restart)

		live, _ := p.settings.Snapshot()
		next := live
		changed := false
		for _, s := range ui.FieldSliders {
			rl.DrawText(s.Label, int32(panelX), int32(panelY), 14, rl.Gray)
			panelY += 18
			cur := float32(s.Get(&live))
			v := gui.SliderBar(
				rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
				"", "",
				cur, s.Min, s.Max,
			)
			rl.DrawText(fmt.Sprintf(s.Format, s.Get(&live)), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
			if v != cur {
				s.Set(&next, float64(v))
				changed = true
			}
			panelY += 28
		}
		if changed {
			p.settings.Update(func(c *field.Config) { *c = next })
		}
		panelY += 10

		// Buttons
		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, toggleText(animating, "Pause", "Animate")) {
			animating = !animating
		}
		if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, "Random Seed") {
			cfg.Field.Seed = int64(rl.GetRandomValue(1, 99999))
			restart = true
		}
		panelY += 40
		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, "Reset All") {
			p.settings.Update(func(c *field.Config) { *c = cfg.Derived.Field })
			clock = time.Unix(0, 0)
			restart = true
		}

		if restart {
			if err := p.restart(); err != nil {
				status = err.Error()
			} else {
				status = ""
			}
		}
		if status != "" {
			rl.DrawText(status, 15, windowHeight-50, 14, rl.Red)
		}

		rl.DrawText("Press C to copy YAML to clipboard", int32(panelX), int32(windowHeight-30), 12, rl.LightGray)
		if rl.IsKeyPressed(rl.KeyC) {
			out := cfg.Clone()
			out.Field.SetFieldValues(live)
			if text, err := out.FieldYAML(); err == nil {
				rl.SetClipboardText(text)
				status = "copied field yaml"
			}
		}

		rl.EndDrawing()
	}
}

// drawChoices draws a row of buttons, one per option, marking the current one.
func drawChoices(x, y float32, label string, options []string, current *string, changed *bool) float32 {
	rl.DrawText(label, int32(x), int32(y), 14, rl.Gray)
	y += 18
	w := float32(panelWidth-20) / float32(len(options))
	for i, opt := range options {
		text := opt
		if opt == *current {
			text = "[" + opt + "]"
		}
		if gui.Button(rl.Rectangle{X: x + float32(i)*w, Y: y, Width: w - 6, Height: 24}, text) && opt != *current {
			*current = opt
			*changed = true
		}
	}
	return y + 34
}

func toggleText(cond bool, ifTrue, ifFalse string) string {
	if cond {
		return ifTrue
	}
	return ifFalse
}

// updateTexture copies a rendered frame into the GPU texture.
func updateTexture(texture rl.Texture2D, img *image.RGBA, pixels []color.RGBA) {
	b := img.Bounds()
	if b.Dx()*b.Dy() != len(pixels) {
		return
	}
	for i := range pixels {
		o := i * 4
		pixels[i] = color.RGBA{R: img.Pix[o], G: img.Pix[o+1], B: img.Pix[o+2], A: 255}
	}
	rl.UpdateTexture(texture, pixels)
}
