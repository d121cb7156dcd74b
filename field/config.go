// Package field maps raw noise samples to per-element colour decisions.
package field

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

// CalmMode selects how the vertical calm band is computed.
type CalmMode string

const (
	// CalmGraduated fades probability toward the trough across the top of the
	// visible surface (uv.y 0.6 -> 0.9).
	CalmGraduated CalmMode = "graduated"
	// CalmLiteral uses the uv.y 1.2 -> 1.8 band, which never reaches on-screen pixels.
	CalmLiteral CalmMode = "literal"
	// CalmOff disables the calm band.
	CalmOff CalmMode = "off"
)

// Config is the per-frame field configuration. The render loop reads one
// snapshot of it per frame.
//
// Values are not validated: probabilities are expected in [0,1] and scales
// to be positive. Blend weights are clamped during mapping regardless.
type Config struct {
	Foreground colorful.Color
	Background colorful.Color

	PeakMax   float64 // probability at field peaks
	PeakMin   float64 // probability at the shoulder of blobs
	TroughMax float64 // probability in troughs

	FieldSpeed float64 // how fast the field morphs
	NoiseScale float64 // spatial frequency (smaller = bigger blobs)
	CalmMode   CalmMode

	// Static noise
	Threshold float64 // hash value above which a pixel is foreground
	Speed     float64

	// Dot grid
	Density float64 // cells across the surface
	Radius  float64 // dot radius in cell units

	// Particle grid
	Step int // particle spacing in logical pixels
}

// DefaultConfig returns the stock field configuration.
func DefaultConfig() Config {
	return Config{
		Foreground: MustParseHex("#1e90ff"),
		Background: MustParseHex("#000000"),
		PeakMax:    0.8,
		PeakMin:    0.4,
		TroughMax:  0.02,
		FieldSpeed: 0.15,
		NoiseScale: 2.5,
		CalmMode:   CalmGraduated,
		Threshold:  0.5,
		Speed:      1.0,
		Density:    260,
		Radius:     0.28,
		Step:       6,
	}
}

// ParseHex parses a "#rrggbb" or "#rgb" colour.
func ParseHex(s string) (colorful.Color, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return colorful.Color{}, fmt.Errorf("parsing colour %q: %w", s, err)
	}
	return c, nil
}

// MustParseHex is like ParseHex but panics on error.
func MustParseHex(s string) colorful.Color {
	c, err := ParseHex(s)
	if err != nil {
		panic(err)
	}
	return c
}
