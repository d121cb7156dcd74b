package field

import (
	"fmt"
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/pthm-cable/staticfield/noise"
)

// Variant names.
const (
	VariantPointCloud    = "pointcloud"
	VariantStaticNoise   = "static"
	VariantDotGrid       = "dotgrid"
	VariantParticleCloud = "particles"
)

// Palette holds the frame's colours resolved to 8-bit sRGB.
type Palette struct {
	fg, bg     colorful.Color
	Foreground color.RGBA
	Background color.RGBA
}

// NewPalette resolves the configured colours.
func NewPalette(cfg *Config) Palette {
	return Palette{
		fg:         cfg.Foreground,
		bg:         cfg.Background,
		Foreground: toRGBA(cfg.Foreground),
		Background: toRGBA(cfg.Background),
	}
}

// Blend returns the background mixed toward the foreground by t.
func (p *Palette) Blend(t float64) color.RGBA {
	t = Clamp01(t)
	switch t {
	case 0:
		return p.Background
	case 1:
		return p.Foreground
	}
	return toRGBA(p.bg.BlendRgb(p.fg, t))
}

func toRGBA(c colorful.Color) color.RGBA {
	r, g, b := c.Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

// Frame carries everything a variant needs to shade one frame.
// Width and Height are in render pixels.
type Frame struct {
	Time    float64
	Width   int
	Height  int
	Config  Config
	Palette Palette
}

// NewFrame builds a frame from a configuration snapshot.
func NewFrame(cfg Config, t float64, width, height int) *Frame {
	return &Frame{
		Time:    t,
		Width:   width,
		Height:  height,
		Config:  cfg,
		Palette: NewPalette(&cfg),
	}
}

// UV returns normalized coordinates of the centre of pixel (x, y), with
// uv.y = 0 at the bottom row and 1 at the top.
func (f *Frame) UV(x, y int) (u, v float64) {
	u = (float64(x) + 0.5) / float64(f.Width)
	v = (float64(f.Height-1-y) + 0.5) / float64(f.Height)
	return u, v
}

// Variant is a field renderer flavour. Concrete variants implement either
// PixelVariant or ParticleVariant.
type Variant interface {
	Name() string
}

// PixelVariant shades every render pixel independently. Shade must be safe
// to call concurrently for different pixels of the same frame.
type PixelVariant interface {
	Variant
	Shade(x, y int, f *Frame) color.RGBA
}

// ParticleVariant evaluates a grid of particles positioned in logical pixels.
type ParticleVariant interface {
	Variant
	// Alpha returns the particle opacity and whether it should be drawn.
	Alpha(px, py float64, f *Frame) (float64, bool)
	// DotSize is the drawn dot edge length in logical pixels.
	DotSize() float64
}

// PointCloud is the two-octave probabilistic dot field.
type PointCloud struct {
	sampler noise.Sampler3D
}

// NewPointCloud creates a point cloud over sampler.
func NewPointCloud(sampler noise.Sampler3D) *PointCloud {
	return &PointCloud{sampler: sampler}
}

// Name implements PixelVariant.
func (p *PointCloud) Name() string { return VariantPointCloud }

// Probability returns the on-probability at pixel (x, y).
func (p *PointCloud) Probability(x, y int, f *Frame) float64 {
	u, v := f.UV(x, y)
	cfg := &f.Config
	t := f.Time * cfg.FieldSpeed

	f1 := p.sampler.Eval3(u*cfg.NoiseScale, v*cfg.NoiseScale, t)
	f2 := p.sampler.Eval3(u*cfg.NoiseScale*2, v*cfg.NoiseScale*2, t*1.7)

	return Probability(f1, f2, v, cfg)
}

// Shade implements PixelVariant.
func (p *PointCloud) Shade(x, y int, f *Frame) color.RGBA {
	prob := p.Probability(x, y, f)
	// gl_FragCoord convention: bottom-left origin, pixel centres at +0.5
	r := noise.Hash21(float64(x)+0.5, float64(f.Height-1-y)+0.5)
	if Decide(prob, r) {
		return f.Palette.Foreground
	}
	return f.Palette.Background
}

// StaticNoise is per-pixel television static thresholded into two colours.
type StaticNoise struct{}

// NewStaticNoise creates a static noise variant.
func NewStaticNoise() *StaticNoise { return &StaticNoise{} }

// Name implements PixelVariant.
func (s *StaticNoise) Name() string { return VariantStaticNoise }

// Shade implements PixelVariant.
func (s *StaticNoise) Shade(x, y int, f *Frame) color.RGBA {
	u, v := f.UV(x, y)
	k := f.Time*f.Config.Speed + 1
	// Scale into pixel-sized cells so the hash keeps per-pixel resolution
	n := noise.Hash21(u*k*float64(f.Width), v*k*float64(f.Height))
	if n >= f.Config.Threshold {
		return f.Palette.Foreground
	}
	return f.Palette.Background
}

// Dot grid noise parameters.
const (
	dotGridFieldScale = 1.3
	dotGridTimeScale  = 0.25
	dotGridBlobEdge0  = 0.45
	dotGridBlobEdge1  = 0.6
	dotGridSoftness   = 0.01
)

// DotGrid draws round dots on a virtual grid; noise sampled at each cell
// centre decides whether the cell's dot is visible.
type DotGrid struct {
	sampler noise.Sampler3D
}

// NewDotGrid creates a dot grid over sampler.
func NewDotGrid(sampler noise.Sampler3D) *DotGrid {
	return &DotGrid{sampler: sampler}
}

// Name implements PixelVariant.
func (d *DotGrid) Name() string { return VariantDotGrid }

// Alpha returns the dot coverage at pixel (x, y).
func (d *DotGrid) Alpha(x, y int, f *Frame) float64 {
	u, v := f.UV(x, y)
	density := f.Config.Density

	gx := u * density
	gy := v * density
	cellX := math.Floor(gx)
	cellY := math.Floor(gy)

	dx := gx - cellX - 0.5
	dy := gy - cellY - 0.5
	dist := math.Sqrt(dx*dx + dy*dy)

	n := d.sampler.Eval3(cellX/density*dotGridFieldScale, cellY/density*dotGridFieldScale, f.Time*dotGridTimeScale)
	n = (n + 1) * 0.5

	blob := Smoothstep(dotGridBlobEdge0, dotGridBlobEdge1, n)
	shape := 1 - Smoothstep(f.Config.Radius, f.Config.Radius+dotGridSoftness, dist)
	return blob * shape
}

// Shade implements PixelVariant.
func (d *DotGrid) Shade(x, y int, f *Frame) color.RGBA {
	return f.Palette.Blend(d.Alpha(x, y, f))
}

// Particle cloud parameters.
const (
	particleFieldScale = 0.002
	particleDrift      = 0.4
	particleSpeed      = 0.1 // field time per second per unit of FieldSpeed
	particleFloor      = 0.4
	particleGain       = 2.0
	particleMinAlpha   = 0.01
	particleMaxAlpha   = 0.5
	particleDotSize    = 2.0
)

// ParticleCloud fades a dense particle grid in and out with 2D Perlin noise.
type ParticleCloud struct {
	kernel *noise.Kernel
}

// NewParticleCloud creates a particle cloud over kernel.
func NewParticleCloud(kernel *noise.Kernel) *ParticleCloud {
	return &ParticleCloud{kernel: kernel}
}

// Name implements ParticleVariant.
func (p *ParticleCloud) Name() string { return VariantParticleCloud }

// DotSize implements ParticleVariant.
func (p *ParticleCloud) DotSize() float64 { return particleDotSize }

// Alpha implements ParticleVariant.
func (p *ParticleCloud) Alpha(px, py float64, f *Frame) (float64, bool) {
	t := f.Time * f.Config.FieldSpeed * particleSpeed
	n := p.kernel.Perlin2D(px*particleFieldScale, py*particleFieldScale+t*particleDrift)
	alpha := math.Max(0, n-particleFloor) * particleGain
	if alpha <= particleMinAlpha {
		return 0, false
	}
	return math.Min(alpha, particleMaxAlpha), true
}

// NewVariant builds the named variant. Grid variants use kernel directly;
// pixel variants sample sampler, falling back to kernel when it is nil.
func NewVariant(name string, kernel *noise.Kernel, sampler noise.Sampler3D) (Variant, error) {
	if sampler == nil {
		sampler = kernel
	}
	switch name {
	case "", VariantPointCloud:
		return NewPointCloud(sampler), nil
	case VariantStaticNoise:
		return NewStaticNoise(), nil
	case VariantDotGrid:
		return NewDotGrid(sampler), nil
	case VariantParticleCloud:
		return NewParticleCloud(kernel), nil
	default:
		return nil, fmt.Errorf("unknown field variant %q", name)
	}
}
