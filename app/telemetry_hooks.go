package app

import (
	"fmt"

	"github.com/pthm-cable/staticfield/telemetry"
)

// flushTelemetry logs and writes a closed stats window with the current perf stats.
func (a *App) flushTelemetry(stats telemetry.WindowStats) {
	a.lastWindow = stats
	perfStats := a.perfCollector.Stats()

	// Log stats if enabled (console output)
	if a.opts.LogStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	// Write to CSV if output manager is enabled
	if a.outputManager != nil {
		if err := a.outputManager.WriteTelemetry(stats); err != nil {
			a.log.Error("failed to write telemetry", "error", err)
		}
		if err := a.outputManager.WritePerf(perfStats, stats.WindowEndFrame); err != nil {
			a.log.Error("failed to write perf", "error", err)
		}
	}
}

// SaveSnapshot writes the last rendered frame and its parameters to the
// snapshot directory. Returns the path of the snapshot file.
func (a *App) SaveSnapshot() (string, error) {
	if a.opts.SnapshotDir == "" {
		return "", fmt.Errorf("save snapshot: no snapshot directory")
	}
	img := a.renderer.Capture()
	if img == nil {
		return "", fmt.Errorf("save snapshot: renderer not running")
	}

	cfg, _ := a.renderer.Settings().Snapshot()
	fs := a.renderer.Stats()
	snap := &telemetry.Snapshot{
		Seed:             a.seed,
		Variant:          a.renderer.Variant(),
		Backend:          a.cfg.Field.Backend,
		Frame:            fs.Frame,
		AnimTime:         fs.Time,
		Width:            a.width,
		Height:           a.height,
		DevicePixelRatio: a.dpr,
		Field:            telemetry.NewFieldState(cfg),
	}

	path, err := telemetry.SaveSnapshot(snap, img, a.opts.SnapshotDir)
	if err != nil {
		return "", err
	}
	a.log.Info("snapshot saved", "path", path, "frame", fs.Frame)
	return path, nil
}
