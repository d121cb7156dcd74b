// Package noise provides gradient noise kernels and a pixel hash for procedural fields.
package noise

import (
	"math"
	"math/rand"
	"time"
)

// TableSize is the length of a permutation table (256 values, duplicated).
const TableSize = 512

// Kernel evaluates Perlin-style 2D and simplex-style 3D gradient noise
// from a private permutation table. A Kernel is immutable after construction
// and safe for concurrent use.
type Kernel struct {
	perm [TableSize]uint8
}

// NewKernel creates a kernel whose permutation table is shuffled from seed.
// The same seed always produces the same table.
func NewKernel(seed int64) *Kernel {
	k := &Kernel{}
	rng := rand.New(rand.NewSource(seed))

	var perm [256]uint8
	for i := range perm {
		perm[i] = uint8(i)
	}

	// Fisher-Yates
	for i := len(perm) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		perm[i], perm[j] = perm[j], perm[i]
	}

	for i := 0; i < 256; i++ {
		k.perm[i] = perm[i]
		k.perm[i+256] = perm[i]
	}

	return k
}

// NewRandomKernel creates a kernel with a time-based seed.
// Output differs between runs; thread a seed through NewKernel for reproducible fields.
func NewRandomKernel() *Kernel {
	return NewKernel(time.Now().UnixNano())
}

// Table returns a copy of the permutation table.
func (k *Kernel) Table() [TableSize]uint8 {
	return k.perm
}

// Perlin2D returns classic 2D gradient noise normalized to [0,1].
func (k *Kernel) Perlin2D(x, y float64) float64 {
	fx := math.Floor(x)
	fy := math.Floor(y)
	X := int(fx) & 255
	Y := int(fy) & 255

	xf := x - fx
	yf := y - fy

	topRight := k.perm[int(k.perm[X+1])+Y+1]
	topLeft := k.perm[int(k.perm[X])+Y+1]
	bottomRight := k.perm[int(k.perm[X+1])+Y]
	bottomLeft := k.perm[int(k.perm[X])+Y]

	u := fade(xf)
	v := fade(yf)

	x1 := grad2D(bottomLeft, xf, yf)
	x2 := grad2D(bottomRight, xf-1, yf)
	y1 := lerp(u, x1, x2)

	x3 := grad2D(topLeft, xf, yf-1)
	x4 := grad2D(topRight, xf-1, yf-1)
	y2 := lerp(u, x3, x4)

	return clamp(0, 1, (lerp(v, y1, y2)+1)/2)
}

// Skew and unskew factors for the 3D simplex lattice.
const (
	skew3   = 1.0 / 3.0
	unskew3 = 1.0 / 6.0
)

// grad3 holds the 12 cube-edge gradient directions.
var grad3 = [12][3]float64{
	{1, 1, 0}, {-1, 1, 0}, {1, -1, 0}, {-1, -1, 0},
	{1, 0, 1}, {-1, 0, 1}, {1, 0, -1}, {-1, 0, -1},
	{0, 1, 1}, {0, -1, 1}, {0, 1, -1}, {0, -1, -1},
}

// Simplex3D returns 3D simplex noise in [-1,1].
func (k *Kernel) Simplex3D(x, y, z float64) float64 {
	// Skew input space to find the containing simplex cell
	s := (x + y + z) * skew3
	i := math.Floor(x + s)
	j := math.Floor(y + s)
	l := math.Floor(z + s)

	t := (i + j + l) * unskew3
	x0 := x - (i - t)
	y0 := y - (j - t)
	z0 := z - (l - t)

	// Order the corners by magnitude of the residual
	var i1, j1, k1, i2, j2, k2 int
	if x0 >= y0 {
		switch {
		case y0 >= z0:
			i1, j1, k1, i2, j2, k2 = 1, 0, 0, 1, 1, 0
		case x0 >= z0:
			i1, j1, k1, i2, j2, k2 = 1, 0, 0, 1, 0, 1
		default:
			i1, j1, k1, i2, j2, k2 = 0, 0, 1, 1, 0, 1
		}
	} else {
		switch {
		case y0 < z0:
			i1, j1, k1, i2, j2, k2 = 0, 0, 1, 0, 1, 1
		case x0 < z0:
			i1, j1, k1, i2, j2, k2 = 0, 1, 0, 0, 1, 1
		default:
			i1, j1, k1, i2, j2, k2 = 0, 1, 0, 1, 1, 0
		}
	}

	x1 := x0 - float64(i1) + unskew3
	y1 := y0 - float64(j1) + unskew3
	z1 := z0 - float64(k1) + unskew3
	x2 := x0 - float64(i2) + 2*unskew3
	y2 := y0 - float64(j2) + 2*unskew3
	z2 := z0 - float64(k2) + 2*unskew3
	x3 := x0 - 1 + 3*unskew3
	y3 := y0 - 1 + 3*unskew3
	z3 := z0 - 1 + 3*unskew3

	ii := int(i) & 255
	jj := int(j) & 255
	kk := int(l) & 255

	g0 := k.gradIndex(ii, jj, kk)
	g1 := k.gradIndex(ii+i1, jj+j1, kk+k1)
	g2 := k.gradIndex(ii+i2, jj+j2, kk+k2)
	g3 := k.gradIndex(ii+1, jj+1, kk+1)

	n := corner(g0, x0, y0, z0) +
		corner(g1, x1, y1, z1) +
		corner(g2, x2, y2, z2) +
		corner(g3, x3, y3, z3)

	return clamp(-1, 1, 32*n)
}

// Eval3 implements Sampler3D using Simplex3D.
func (k *Kernel) Eval3(x, y, z float64) float64 {
	return k.Simplex3D(x, y, z)
}

func (k *Kernel) gradIndex(i, j, l int) int {
	return int(k.perm[i+int(k.perm[j+int(k.perm[l])])]) % 12
}

// corner computes one simplex corner contribution with (0.6 - r²)⁴ falloff.
func corner(g int, x, y, z float64) float64 {
	t := 0.6 - x*x - y*y - z*z
	if t < 0 {
		return 0
	}
	t *= t
	gv := &grad3[g]
	return t * t * (gv[0]*x + gv[1]*y + gv[2]*z)
}

func fade(t float64) float64 {
	return t * t * t * (t*(t*6-15) + 10)
}

func lerp(t, a, b float64) float64 {
	return a + t*(b-a)
}

func grad2D(hash uint8, x, y float64) float64 {
	switch hash & 3 {
	case 0:
		return x + y
	case 1:
		return -x + y
	case 2:
		return x - y
	default:
		return -x - y
	}
}

func clamp(lo, hi, v float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
