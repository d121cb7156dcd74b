package ui

import (
	"fmt"
	"sort"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/staticfield/telemetry"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Title        string
	Variant      string
	Frame        uint64
	AnimTime     float64
	FPS          int32
	Particles    int
	Visible      int
	Width        int
	Height       int
	DPR          float64
	Seed         int64
	Zooming      bool
	ScreenHeight int32
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{
		renderer: NewRenderer(),
	}
}

// Draw renders the HUD.
func (h *HUD) Draw(data HUDData) {
	rl.DrawText(data.Title, 10, 10, 20, rl.White)

	rl.DrawText(
		fmt.Sprintf("Variant: %s | Seed: %d", data.Variant, data.Seed),
		10, 35, 16, rl.LightGray,
	)

	rl.DrawText(
		fmt.Sprintf("Frame: %d | t=%.1fs | FPS: %d | %dx%d @%.1fx", data.Frame, data.AnimTime, data.FPS, data.Width, data.Height, data.DPR),
		10, 55, 16, rl.LightGray,
	)

	y := int32(75)
	if data.Particles > 0 {
		rl.DrawText(fmt.Sprintf("Particles: %d visible / %d", data.Visible, data.Particles), 10, y, 16, rl.LightGray)
		y += 20
	}
	if data.Zooming {
		rl.DrawText("ZOOM", 10, y, 16, rl.Yellow)
	}
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}

// PerfPanel renders the frame timing panel.
type PerfPanel struct {
	renderer *Renderer
	x, y     int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y int32) *PerfPanel {
	return &PerfPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
	}
}

// SetPosition updates the panel position.
func (p *PerfPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Draw renders the performance panel.
func (p *PerfPanel) Draw(stats telemetry.PerfStats) {
	x := p.x
	y := p.y

	rl.DrawText("Frame Performance", x, y, 16, rl.White)
	y += 20

	rl.DrawText(fmt.Sprintf("Avg: %s (%.0f fps capacity)", stats.AvgFrameDuration.Round(time.Microsecond), stats.RenderFPS), x, y, 14, rl.Yellow)
	y += 16
	rl.DrawText(fmt.Sprintf("Min/Max: %s / %s", stats.MinFrameDuration.Round(time.Microsecond), stats.MaxFrameDuration.Round(time.Microsecond)), x, y, 12, rl.LightGray)
	y += 14
	rl.DrawText(fmt.Sprintf("Interval: %s (%.1f fps)", stats.FrameInterval.Round(time.Microsecond), stats.FPS), x, y, 12, rl.LightGray)
	y += 16

	for _, name := range SortedPhases(stats) {
		pct := stats.PhasePct[name]

		color := rl.LightGray
		if pct > 60 {
			color = rl.Red
		} else if pct > 30 {
			color = rl.Orange
		}

		rl.DrawText(
			fmt.Sprintf("%-10s %8s %5.1f%%", name, stats.PhaseAvg[name].Round(time.Microsecond), pct),
			x, y, 12, color,
		)
		y += 14
	}
}

// SortedPhases returns phase names ordered by average duration, longest first.
func SortedPhases(stats telemetry.PerfStats) []string {
	names := make([]string, 0, len(stats.PhaseAvg))
	for name := range stats.PhaseAvg {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		a, b := stats.PhaseAvg[names[i]], stats.PhaseAvg[names[j]]
		if a != b {
			return a > b
		}
		return names[i] < names[j]
	})
	return names
}
