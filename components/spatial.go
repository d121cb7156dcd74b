// Package components defines ECS components for particle fields.
package components

// Position is a particle's logical pixel position.
type Position struct {
	X float64 `inspect:"label,fmt:%.0f"`
	Y float64 `inspect:"label,fmt:%.0f"`
}

// Cell is a particle's grid coordinate.
type Cell struct {
	Col, Row int
}

// Dot is a particle's shading state for the current frame.
type Dot struct {
	Alpha   float64 `inspect:"bar,max:1"`
	Visible bool    `inspect:"bool"`
}
