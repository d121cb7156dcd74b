// Package particles holds the particle grid used by grid field variants.
package particles

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/staticfield/components"
)

// Grid is a regular lattice of particles stored in an ECS world.
// One particle sits at every multiple of Step inside the viewport.
type Grid struct {
	world *ecs.World

	mapper *ecs.Map3[components.Position, components.Cell, components.Dot]
	filter *ecs.Filter3[components.Position, components.Cell, components.Dot]

	width  int
	height int
	step   int
	count  int
}

// NewGrid creates an empty grid.
func NewGrid() *Grid {
	world := ecs.NewWorld()
	return &Grid{
		world:  world,
		mapper: ecs.NewMap3[components.Position, components.Cell, components.Dot](world),
		filter: ecs.NewFilter3[components.Position, components.Cell, components.Dot](world),
	}
}

// Dims returns the columns and rows a viewport holds at the given step.
func Dims(width, height, step int) (cols, rows int) {
	if width <= 0 || height <= 0 || step <= 0 {
		return 0, 0
	}
	cols = (width + step - 1) / step
	rows = (height + step - 1) / step
	return cols, rows
}

// Rebuild regenerates the lattice for a viewport. A rebuild with unchanged
// geometry is a no-op.
func (g *Grid) Rebuild(width, height, step int) {
	if step <= 0 {
		step = 1
	}
	if width == g.width && height == g.height && step == g.step {
		return
	}
	g.clear()

	g.width, g.height, g.step = width, height, step
	cols, rows := Dims(width, height, step)
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			pos := components.Position{X: float64(col * step), Y: float64(row * step)}
			cell := components.Cell{Col: col, Row: row}
			dot := components.Dot{}
			g.mapper.NewEntity(&pos, &cell, &dot)
		}
	}
	g.count = cols * rows
}

// clear removes every particle. Entities are collected before removal
// since the world is locked while a query is open.
func (g *Grid) clear() {
	if g.count == 0 {
		return
	}
	toRemove := make([]ecs.Entity, 0, g.count)
	query := g.filter.Query()
	for query.Next() {
		toRemove = append(toRemove, query.Entity())
	}
	for _, e := range toRemove {
		g.mapper.Remove(e)
	}
	g.count = 0
}

// Count returns the number of particles.
func (g *Grid) Count() int { return g.count }

// Step returns the lattice spacing in logical pixels.
func (g *Grid) Step() int { return g.step }

// Update shades every particle with fn and returns how many are visible.
func (g *Grid) Update(fn func(x, y float64) (float64, bool)) int {
	visible := 0
	query := g.filter.Query()
	for query.Next() {
		pos, _, dot := query.Get()
		dot.Alpha, dot.Visible = fn(pos.X, pos.Y)
		if dot.Visible {
			visible++
		}
	}
	return visible
}

// Each calls fn for every visible particle.
func (g *Grid) Each(fn func(x, y, alpha float64)) {
	query := g.filter.Query()
	for query.Next() {
		pos, _, dot := query.Get()
		if dot.Visible {
			fn(pos.X, pos.Y, dot.Alpha)
		}
	}
}

// Particle is a copy of one particle's components.
type Particle struct {
	Entity   ecs.Entity
	Position components.Position
	Cell     components.Cell
	Dot      components.Dot
}

// Nearest returns the particle whose lattice point is closest to (x, y).
// Points outside the lattice snap to its edge.
func (g *Grid) Nearest(x, y float64) (Particle, bool) {
	if g.count == 0 {
		return Particle{}, false
	}
	cols, rows := Dims(g.width, g.height, g.step)
	col := clampIndex(int(x/float64(g.step)+0.5), cols)
	row := clampIndex(int(y/float64(g.step)+0.5), rows)

	query := g.filter.Query()
	for query.Next() {
		pos, cell, dot := query.Get()
		if cell.Col == col && cell.Row == row {
			p := Particle{Entity: query.Entity(), Position: *pos, Cell: *cell, Dot: *dot}
			query.Close()
			return p, true
		}
	}
	return Particle{}, false
}

func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
