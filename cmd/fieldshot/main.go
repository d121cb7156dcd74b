// Field shot tool - renders the field through the texture path to a PNG file
// for inspection.
//
// Usage: go run ./cmd/fieldshot -variant dotgrid -frames 30 -out shot.png
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/staticfield/config"
	"github.com/pthm-cable/staticfield/engine"
	"github.com/pthm-cable/staticfield/field"
	"github.com/pthm-cable/staticfield/renderer"
	"github.com/pthm-cable/staticfield/telemetry"
)

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	variant := flag.String("variant", "", "Field variant (empty = config value)")
	outPath := flag.String("out", "field.png", "Output PNG path")
	cpuPath := flag.String("cpu", "", "Also write the CPU back buffer to this PNG")
	width := flag.Int("width", 512, "Render width")
	height := flag.Int("height", 512, "Render height")
	frames := flag.Int("frames", 30, "Frames to render before capturing")
	seed := flag.Int64("seed", 12345, "Noise seed")
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stderr, nil))
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if *variant != "" {
		cfg.Field.Variant = *variant
		if err := cfg.Recompute(); err != nil {
			log.Error("invalid variant", "error", err)
			os.Exit(1)
		}
	}

	// Initialize raylib with hidden window
	rl.SetConfigFlags(rl.FlagWindowHidden)
	rl.InitWindow(int32(*width), int32(*height), "Field Shot")
	defer rl.CloseWindow()

	sched := engine.NewManualScheduler()
	r := engine.New(engine.Options{
		Width:      *width,
		Height:     *height,
		Variant:    cfg.Field.Variant,
		Backend:    cfg.Field.Backend,
		Seed:       *seed,
		Settings:   field.NewSettings(cfg.Derived.Field),
		NewSurface: renderer.Factory(cfg.Screen.PixelScale),
		Scheduler:  sched,
		Logger:     log,
	})
	if err := r.Start(); err != nil {
		log.Error("failed to start renderer", "error", err)
		os.Exit(1)
	}
	defer r.Dispose()

	target := rl.LoadRenderTexture(int32(*width), int32(*height))
	defer rl.UnloadRenderTexture(target)

	// Step a virtual clock; every Present draws into the render texture
	now := time.Unix(0, 0)
	for i := 0; i < *frames; i++ {
		now = now.Add(cfg.Derived.FrameBudget)
		rl.BeginTextureMode(target)
		rl.ClearBackground(rl.Black)
		sched.Step(now)
		rl.EndTextureMode()
	}

	// Get image from texture and flip it (OpenGL convention)
	img := rl.LoadImageFromTexture(target.Texture)
	rl.ImageFlipVertical(img)
	success := rl.ExportImage(*img, *outPath)
	rl.UnloadImage(img)
	if !success {
		fmt.Fprintf(os.Stderr, "Failed to export image\n")
		os.Exit(1)
	}

	if *cpuPath != "" {
		if err := telemetry.WritePNG(*cpuPath, r.Capture()); err != nil {
			log.Error("failed to write cpu capture", "error", err)
			os.Exit(1)
		}
	}

	stats := r.Stats()
	fmt.Printf("Field rendered to: %s (%dx%d, %s, frame %d, t=%.2fs)\n",
		*outPath, *width, *height, r.Variant(), stats.Frame, stats.Time)
}
