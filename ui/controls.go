package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/staticfield/field"
)

// ControlsPanel renders the left-side controls panel with overlay toggles.
type ControlsPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
	visible  bool
}

// NewControlsPanel creates a new controls panel.
func NewControlsPanel(x, y, width int32) *ControlsPanel {
	return &ControlsPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
		visible:  false,
	}
}

// SetVisible shows or hides the panel.
func (c *ControlsPanel) SetVisible(visible bool) {
	c.visible = visible
}

// IsVisible returns whether the panel is shown.
func (c *ControlsPanel) IsVisible() bool {
	return c.visible
}

// Toggle switches panel visibility.
func (c *ControlsPanel) Toggle() bool {
	c.visible = !c.visible
	return c.visible
}

// Draw renders the controls panel.
func (c *ControlsPanel) Draw(overlays *OverlayRegistry) int32 {
	if !c.visible {
		return c.y
	}

	r := c.renderer
	padding := r.Theme.Padding
	lineHeight := r.Theme.LineHeight

	// Calculate panel height based on content
	categories := overlays.Categories()
	totalItems := 0
	for _, cat := range categories {
		totalItems += len(overlays.ByCategory(cat)) + 1 // +1 for category header
	}
	panelHeight := int32(totalItems)*lineHeight + padding*3 + lineHeight // Extra for title

	// Draw panel background
	r.DrawPanel(c.x, c.y, c.width, panelHeight)

	y := c.y + padding

	// Title
	rl.DrawText("Overlays", c.x+padding, y, 16, rl.White)
	y += lineHeight + 4

	// Draw overlays by category
	for _, category := range categories {
		// Category header
		catLabel := categoryLabel(category)
		rl.DrawText(catLabel, c.x+padding, y, r.Theme.HeaderFontSize, r.Theme.SectionHeader)
		y += lineHeight

		// Overlays in this category
		for _, desc := range overlays.ByCategory(category) {
			enabled := overlays.IsEnabled(desc.ID)
			c.drawToggle(c.x+padding, y, desc, enabled, c.width-padding*2)
			y += lineHeight
		}

		y += 4 // Gap between categories
	}

	return y
}

// drawToggle draws a single overlay toggle line.
func (c *ControlsPanel) drawToggle(x, y int32, desc OverlayDescriptor, enabled bool, width int32) {
	r := c.renderer

	// Status indicator
	statusColor := rl.Color{R: 80, G: 80, B: 80, A: 255}
	if enabled {
		statusColor = rl.Color{R: 100, G: 200, B: 100, A: 255}
	}
	rl.DrawRectangle(x, y+2, 8, 8, statusColor)

	// Name
	nameColor := r.Theme.LabelColor
	if enabled {
		nameColor = rl.White
	}
	rl.DrawText(desc.Name, x+14, y, r.Theme.FontSize, nameColor)

	// Key binding (right aligned)
	if desc.KeyLabel != "" {
		keyText := fmt.Sprintf("[%s]", desc.KeyLabel)
		keyWidth := rl.MeasureText(keyText, r.Theme.FontSize)
		rl.DrawText(keyText, x+width-keyWidth, y, r.Theme.FontSize, rl.Color{R: 150, G: 150, B: 150, A: 255})
	}
}

// categoryLabel returns a display label for a category.
func categoryLabel(cat string) string {
	switch cat {
	case "info":
		return "Info"
	case "field":
		return "Field"
	case "scroll":
		return "Scroll"
	case "debug":
		return "Debug"
	default:
		return cat
	}
}

// Slider describes one editable field setting.
type Slider struct {
	Label    string
	Min, Max float32
	Format   string
	Get      func(c *field.Config) float64
	Set      func(c *field.Config, v float64)
}

// FieldSliders are the settings exposed by the settings panel.
var FieldSliders = []Slider{
	{"Peak max", 0, 1, "%.2f",
		func(c *field.Config) float64 { return c.PeakMax },
		func(c *field.Config, v float64) { c.PeakMax = v }},
	{"Peak min", 0, 1, "%.2f",
		func(c *field.Config) float64 { return c.PeakMin },
		func(c *field.Config, v float64) { c.PeakMin = v }},
	{"Trough max", 0, 0.5, "%.3f",
		func(c *field.Config) float64 { return c.TroughMax },
		func(c *field.Config, v float64) { c.TroughMax = v }},
	{"Field speed", 0, 1, "%.2f",
		func(c *field.Config) float64 { return c.FieldSpeed },
		func(c *field.Config, v float64) { c.FieldSpeed = v }},
	{"Noise scale", 0.5, 8, "%.2f",
		func(c *field.Config) float64 { return c.NoiseScale },
		func(c *field.Config, v float64) { c.NoiseScale = v }},
	{"Threshold", 0, 1, "%.2f",
		func(c *field.Config) float64 { return c.Threshold },
		func(c *field.Config, v float64) { c.Threshold = v }},
	{"Density", 40, 600, "%.0f",
		func(c *field.Config) float64 { return c.Density },
		func(c *field.Config, v float64) { c.Density = v }},
	{"Radius", 0.05, 0.5, "%.2f",
		func(c *field.Config) float64 { return c.Radius },
		func(c *field.Config, v float64) { c.Radius = v }},
	{"Step", 2, 24, "%.0f",
		func(c *field.Config) float64 { return float64(c.Step) },
		func(c *field.Config, v float64) { c.Step = int(v + 0.5) }},
}

var calmModes = []field.CalmMode{field.CalmGraduated, field.CalmLiteral, field.CalmOff}

// SettingsPanel edits field settings with raygui sliders. Changes go through
// field.Settings so the render loop picks them up on its next frame.
type SettingsPanel struct {
	renderer *Renderer
	settings *field.Settings
	x, y     int32
	width    int32
}

// NewSettingsPanel creates a settings panel bound to s.
func NewSettingsPanel(s *field.Settings, x, y, width int32) *SettingsPanel {
	return &SettingsPanel{
		renderer: NewRenderer(),
		settings: s,
		x:        x,
		y:        y,
		width:    width,
	}
}

// SetPosition updates the panel position.
func (p *SettingsPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Draw renders the sliders and applies any change. It reports whether the
// settings were updated.
func (p *SettingsPanel) Draw() bool {
	r := p.renderer
	padding := r.Theme.Padding
	cfg, _ := p.settings.Snapshot()

	rowHeight := int32(22)
	panelHeight := int32(len(FieldSliders)+2)*rowHeight + padding*3 + r.Theme.LineHeight
	r.DrawPanel(p.x, p.y, p.width, panelHeight)

	y := p.y + padding
	rl.DrawText("Field Settings", p.x+padding, y, 16, rl.White)
	y += r.Theme.LineHeight + 4

	sliderX := float32(p.x + padding + r.Theme.LabelWidth)
	sliderW := float32(p.width - padding*2 - r.Theme.LabelWidth - 50)

	next := cfg
	changed := false
	for _, s := range FieldSliders {
		rl.DrawText(s.Label, p.x+padding, y+4, r.Theme.FontSize, r.Theme.LabelColor)
		cur := float32(s.Get(&cfg))
		v := gui.SliderBar(rl.Rectangle{X: sliderX, Y: float32(y), Width: sliderW, Height: 16}, "", "", cur, s.Min, s.Max)
		if v != cur {
			s.Set(&next, float64(v))
			changed = true
		}
		rl.DrawText(fmt.Sprintf(s.Format, s.Get(&next)), int32(sliderX+sliderW)+6, y+4, r.Theme.FontSize, r.Theme.ValueColor)
		y += rowHeight
	}

	rl.DrawText("Calm", p.x+padding, y+4, r.Theme.FontSize, r.Theme.LabelColor)
	bw := sliderW / float32(len(calmModes))
	for i, m := range calmModes {
		label := string(m)
		if cfg.CalmMode == m {
			label = "[" + label + "]"
		}
		if gui.Button(rl.Rectangle{X: sliderX + float32(i)*bw, Y: float32(y), Width: bw - 4, Height: 18}, label) && cfg.CalmMode != m {
			next.CalmMode = m
			changed = true
		}
	}
	y += rowHeight

	r.DrawColorSwatch(p.x+padding, y, "Colours", ToColor(cfg.Foreground))
	if gui.Button(rl.Rectangle{X: sliderX + 20, Y: float32(y), Width: sliderW - 20, Height: 18}, "Swap colours") {
		next.Foreground, next.Background = cfg.Background, cfg.Foreground
		changed = true
	}

	if changed {
		p.settings.Update(func(c *field.Config) { *c = next })
	}
	return changed
}
