package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/pthm-cable/staticfield/app"
	"github.com/pthm-cable/staticfield/config"
	"github.com/pthm-cable/staticfield/viewer"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Render off screen without a window")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	statsWindow := flag.Float64("stats-window", 0, "Stats window size in seconds (0 = use config)")
	snapshotDir := flag.String("snapshot-dir", "", "Directory for snapshot files")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	seed := flag.Int64("seed", 0, "Noise seed (0 = config or time-based)")
	variant := flag.String("variant", "", "Field variant override: pointcloud, static, dotgrid, particles")
	maxFrames := flag.Uint64("max-frames", 0, "Stop after N frames (0 = unlimited)")
	autoScroll := flag.Float64("auto-scroll", 0, "Headless wheel delta per frame for the scroll demo")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	if *variant != "" {
		cfg.Field.Variant = *variant
	}
	// Use config stats window if not overridden by CLI
	if *statsWindow > 0 {
		cfg.Telemetry.StatsWindow = *statsWindow
	}
	if err := cfg.Recompute(); err != nil {
		slog.Error("invalid flags", "error", err)
		os.Exit(1)
	}

	opts := app.Options{
		Seed:        *seed,
		LogStats:    *logStats,
		OutputDir:   *outputDir,
		SnapshotDir: *snapshotDir,
		Headless:    *headless,
		AutoScroll:  *autoScroll,
		Logger:      logger,
	}

	if *headless {
		if err := runHeadless(cfg, opts, *maxFrames); err != nil {
			slog.Error("headless run failed", "error", err)
			os.Exit(1)
		}
		return
	}

	if err := viewer.Run(cfg, opts, *maxFrames); err != nil {
		slog.Error("viewer failed", "error", err)
		os.Exit(1)
	}
}

// runHeadless renders on a virtual clock until maxFrames or an interrupt.
func runHeadless(cfg *config.Config, opts app.Options, maxFrames uint64) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	a, err := app.New(cfg, opts)
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.Start(time.Now()); err != nil {
		return err
	}

	slog.Info("starting headless render",
		"seed", a.Seed(),
		"variant", cfg.Field.Variant,
		"max_frames", maxFrames,
		"auto_scroll", opts.AutoScroll,
	)

	for ctx.Err() == nil {
		a.StepHeadless()

		if maxFrames > 0 && a.Frame() >= maxFrames {
			slog.Info("max frames reached", "frame", a.Frame())
			break
		}
	}

	if opts.SnapshotDir != "" {
		if _, err := a.SaveSnapshot(); err != nil {
			return err
		}
	}
	return nil
}
