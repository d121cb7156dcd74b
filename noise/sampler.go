package noise

import (
	"fmt"

	"github.com/aquilax/go-perlin"
	"github.com/ojrac/opensimplex-go"
)

// Backend names accepted by NewSampler.
const (
	BackendSimplex     = "simplex"
	BackendOpenSimplex = "opensimplex"
	BackendPerlin      = "perlin"
)

// Sampler3D is a 3D noise source returning values in [-1,1].
type Sampler3D interface {
	Eval3(x, y, z float64) float64
}

// OpenSimplex adapts opensimplex-go to Sampler3D.
type OpenSimplex struct {
	noise opensimplex.Noise
}

// NewOpenSimplex creates an OpenSimplex sampler from seed.
func NewOpenSimplex(seed int64) *OpenSimplex {
	return &OpenSimplex{noise: opensimplex.New(seed)}
}

// Eval3 returns OpenSimplex noise clamped to [-1,1].
func (o *OpenSimplex) Eval3(x, y, z float64) float64 {
	return clamp(-1, 1, o.noise.Eval3(x, y, z))
}

// ClassicPerlin adapts go-perlin to Sampler3D.
type ClassicPerlin struct {
	p *perlin.Perlin
}

// Parameters for go-perlin: alpha is the amplitude falloff per octave,
// beta the frequency multiplier, octaves the number of summed layers.
const (
	perlinAlpha   = 2.0
	perlinBeta    = 2.0
	perlinOctaves = 3
)

// NewClassicPerlin creates a ClassicPerlin sampler from seed.
func NewClassicPerlin(seed int64) *ClassicPerlin {
	return &ClassicPerlin{p: perlin.NewPerlin(perlinAlpha, perlinBeta, perlinOctaves, seed)}
}

// Eval3 returns go-perlin noise rescaled and clamped to [-1,1].
func (c *ClassicPerlin) Eval3(x, y, z float64) float64 {
	// go-perlin output sits near [-0.5,0.5] for these parameters
	return clamp(-1, 1, c.p.Noise3D(x, y, z)*2)
}

// NewSampler returns the named 3D noise backend seeded with seed.
// An empty name selects the built-in simplex kernel.
func NewSampler(backend string, seed int64) (Sampler3D, error) {
	switch backend {
	case "", BackendSimplex:
		return NewKernel(seed), nil
	case BackendOpenSimplex:
		return NewOpenSimplex(seed), nil
	case BackendPerlin:
		return NewClassicPerlin(seed), nil
	default:
		return nil, fmt.Errorf("unknown noise backend %q", backend)
	}
}
