package app

import (
	"log/slog"

	"github.com/pthm-cable/staticfield/engine"
)

// Options configures an App.
type Options struct {
	Seed        int64  // overrides field.seed when non-zero
	LogStats    bool   // log window and perf stats via slog
	OutputDir   string // CSV output and config snapshot, empty to use telemetry.csv_path
	SnapshotDir string // empty disables SaveSnapshot
	Headless    bool

	// AutoScroll feeds a wheel delta every headless frame so the scroll
	// demo runs without input. 0 disables it.
	AutoScroll float64

	// NewSurface allocates the render surface. nil uses an in-memory
	// surface at the configured pixel scale.
	NewSurface engine.SurfaceFactory

	Logger *slog.Logger
}
