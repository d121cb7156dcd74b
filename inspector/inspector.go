package inspector

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/staticfield/camera"
	"github.com/pthm-cable/staticfield/particles"
)

// Panel dimensions
const (
	PanelWidth   = 260
	PanelPadding = 10
	HeaderHeight = 30
)

// Panel colors
var (
	ColorPanelBg     = rl.Color{R: 10, G: 14, B: 20, A: 235}
	ColorPanelHeader = rl.Color{R: 25, G: 35, B: 50, A: 255}
	ColorPanelBorder = rl.Color{R: 40, G: 70, B: 110, A: 255}
	ColorHeaderText  = rl.Color{R: 255, G: 255, B: 255, A: 255}
	ColorCloseBtn    = rl.Color{R: 180, G: 80, B: 80, A: 255}
	ColorSection     = rl.Color{R: 30, G: 40, B: 55, A: 255}
	ColorSectionText = rl.Color{R: 200, G: 200, B: 220, A: 255}
)

// ParticleSource looks up the particle nearest a logical point.
type ParticleSource interface {
	Particle(x, y float64) (particles.Particle, bool)
}

// Inspector tracks a selected particle and renders its components.
type Inspector struct {
	src         ParticleSource
	selected    particles.Particle
	hasSelected bool

	// Hover point in field coordinates, shown when nothing is selected
	hoverX, hoverY float64

	panelX       int32
	panelY       int32
	screenWidth  int32
	screenHeight int32
}

// NewInspector creates a new inspector instance.
func NewInspector(src ParticleSource, screenWidth, screenHeight int32) *Inspector {
	ins := &Inspector{src: src}
	ins.Resize(screenWidth, screenHeight)
	return ins
}

// Resize moves the panel for a new screen size.
func (ins *Inspector) Resize(screenWidth, screenHeight int32) {
	ins.screenWidth = screenWidth
	ins.screenHeight = screenHeight
	ins.panelX = screenWidth - PanelWidth - 10
	ins.panelY = 10
}

// HandleInput processes hover and click selection. Mouse coordinates are
// screen pixels; cam maps them into the field.
func (ins *Inspector) HandleInput(mouseX, mouseY float32, cam *camera.Camera) {
	wx, wy := cam.ScreenToWorld(float64(mouseX), float64(mouseY))
	ins.hoverX, ins.hoverY = wx, wy

	// Right click or Escape to deselect
	if rl.IsMouseButtonPressed(rl.MouseButtonRight) || rl.IsKeyPressed(rl.KeyEscape) {
		ins.Deselect()
		return
	}

	if !rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		return
	}

	if ins.hasSelected {
		if ins.overClose(mouseX, mouseY) {
			ins.Deselect()
			return
		}
		// Clicks inside the panel do not reselect
		if ins.overPanel(mouseX, mouseY) {
			return
		}
	}

	ins.Select(wx, wy)
}

// Select picks the particle nearest to field point (x, y). It reports
// whether a particle was found.
func (ins *Inspector) Select(x, y float64) bool {
	p, ok := ins.src.Particle(x, y)
	if !ok {
		return false
	}
	ins.selected = p
	ins.hasSelected = true
	return true
}

// Refresh re-reads the selected particle so the panel shows this frame's
// shading. The selection is dropped when the grid no longer has particles.
func (ins *Inspector) Refresh() {
	if !ins.hasSelected {
		return
	}
	p, ok := ins.src.Particle(ins.selected.Position.X, ins.selected.Position.Y)
	if !ok {
		ins.Deselect()
		return
	}
	ins.selected = p
}

// Deselect clears the current selection.
func (ins *Inspector) Deselect() {
	ins.hasSelected = false
	ins.selected = particles.Particle{}
}

// Selected returns the currently selected particle.
func (ins *Inspector) Selected() (particles.Particle, bool) {
	return ins.selected, ins.hasSelected
}

func (ins *Inspector) overClose(mx, my float32) bool {
	closeX := ins.panelX + PanelWidth - 25
	closeY := ins.panelY + 5
	return int32(mx) >= closeX && int32(mx) <= closeX+20 &&
		int32(my) >= closeY && int32(my) <= closeY+20
}

func (ins *Inspector) overPanel(mx, my float32) bool {
	return int32(mx) >= ins.panelX && int32(mx) <= ins.panelX+PanelWidth &&
		int32(my) >= ins.panelY && int32(my) <= ins.panelY+ins.panelHeight()
}

// sections returns the component sections of the selected particle.
func (ins *Inspector) sections() []section {
	return []section{
		{"POSITION", ExtractFields(ins.selected.Position)},
		{"CELL", ExtractFields(ins.selected.Cell)},
		{"DOT", ExtractFields(ins.selected.Dot)},
	}
}

type section struct {
	title  string
	fields []Field
}

// Draw renders the inspector panel.
func (ins *Inspector) Draw() {
	panelHeight := ins.panelHeight()

	rl.DrawRectangle(ins.panelX, ins.panelY, PanelWidth, panelHeight, ColorPanelBg)
	rl.DrawRectangleLinesEx(
		rl.Rectangle{X: float32(ins.panelX), Y: float32(ins.panelY), Width: PanelWidth, Height: float32(panelHeight)},
		1,
		ColorPanelBorder,
	)

	// Header
	rl.DrawRectangle(ins.panelX, ins.panelY, PanelWidth, HeaderHeight, ColorPanelHeader)
	rl.DrawText("INSPECTOR", ins.panelX+PanelPadding, ins.panelY+7, 16, ColorHeaderText)

	y := ins.panelY + HeaderHeight + PanelPadding
	x := ins.panelX + PanelPadding

	if !ins.hasSelected {
		rl.DrawText(fmt.Sprintf("Cursor: (%.0f, %.0f)", ins.hoverX, ins.hoverY), x, y, 14, ColorText)
		y += 20
		rl.DrawText("(click a particle)", x, y, 12, ColorLabelDim)
		return
	}

	// Close button
	closeX := ins.panelX + PanelWidth - 25
	closeY := ins.panelY + 5
	rl.DrawRectangle(closeX, closeY, 20, 20, ColorCloseBtn)
	rl.DrawText("X", closeX+6, closeY+3, 14, rl.White)

	rl.DrawText(fmt.Sprintf("Entity: %d", ins.selected.Entity.ID()), x, y, 14, ColorHeaderText)
	y += 22

	for _, s := range ins.sections() {
		rl.DrawLine(x, y, ins.panelX+PanelWidth-PanelPadding, y, ColorPanelBorder)
		y += 8
		ins.drawSectionHeader(x, y, s.title)
		y += 20
		for _, f := range s.fields {
			y += DrawField(x, y, f)
		}
		y += 4
	}
}

// drawSectionHeader renders a section title.
func (ins *Inspector) drawSectionHeader(x, y int32, title string) {
	rl.DrawRectangle(x-2, y-2, PanelWidth-2*PanelPadding+4, 18, ColorSection)
	rl.DrawText(title, x+2, y, 14, ColorSectionText)
}

// panelHeight computes the dynamic panel height.
func (ins *Inspector) panelHeight() int32 {
	height := int32(HeaderHeight + PanelPadding)
	if !ins.hasSelected {
		return height + 40 + PanelPadding
	}
	height += 22 // entity line
	for _, s := range ins.sections() {
		height += 8 + 20 + 4 // separator, header, gap
		for _, f := range s.fields {
			height += FieldHeight(f)
		}
	}
	return height + PanelPadding
}

// DrawSelectionHighlight outlines the selected particle's cell.
func (ins *Inspector) DrawSelectionHighlight(cam *camera.Camera, step float64) {
	if !ins.hasSelected {
		return
	}
	p := ins.selected.Position
	x0, y0 := cam.WorldToScreen(p.X-step/2, p.Y-step/2)
	x1, y1 := cam.WorldToScreen(p.X+step/2, p.Y+step/2)
	rl.DrawRectangleLinesEx(
		rl.Rectangle{X: float32(x0), Y: float32(y0), Width: float32(x1 - x0), Height: float32(y1 - y0)},
		2,
		rl.Yellow,
	)
}
