package noise

import (
	"math"
	"math/rand"
	"testing"
)

func TestPermutationTableInvariant(t *testing.T) {
	k := NewKernel(42)
	table := k.Table()

	var counts [256]int
	for i := 0; i < 256; i++ {
		if table[i] != table[i+256] {
			t.Fatalf("expected table[%d] == table[%d], got %d and %d", i, i+256, table[i], table[i+256])
		}
		counts[table[i]]++
	}
	for v, c := range counts {
		if c != 1 {
			t.Errorf("expected value %d once in first half, got %d", v, c)
		}
	}
}

func TestSameSeedSameTable(t *testing.T) {
	a := NewKernel(7).Table()
	b := NewKernel(7).Table()
	if a != b {
		t.Error("expected identical tables for identical seeds")
	}
	c := NewKernel(8).Table()
	if a == c {
		t.Error("expected different tables for different seeds")
	}
}

func TestDeterminism(t *testing.T) {
	k := NewKernel(1234)
	rng := rand.New(rand.NewSource(1))

	for i := 0; i < 1000; i++ {
		x := rng.Float64()*200 - 100
		y := rng.Float64()*200 - 100
		z := rng.Float64()*200 - 100

		if a, b := k.Perlin2D(x, y), k.Perlin2D(x, y); math.Float64bits(a) != math.Float64bits(b) {
			t.Fatalf("Perlin2D not reproducible at (%f,%f): %v vs %v", x, y, a, b)
		}
		if a, b := k.Simplex3D(x, y, z), k.Simplex3D(x, y, z); math.Float64bits(a) != math.Float64bits(b) {
			t.Fatalf("Simplex3D not reproducible at (%f,%f,%f): %v vs %v", x, y, z, a, b)
		}
	}
}

func TestRanges(t *testing.T) {
	k := NewKernel(99)
	rng := rand.New(rand.NewSource(2))

	for i := 0; i < 10000; i++ {
		x := rng.Float64()*2000 - 1000
		y := rng.Float64()*2000 - 1000
		z := rng.Float64()*2000 - 1000

		if v := k.Perlin2D(x, y); v < 0 || v > 1 {
			t.Fatalf("Perlin2D(%f,%f) = %f, expected [0,1]", x, y, v)
		}
		if v := k.Simplex3D(x, y, z); v < -1 || v > 1 {
			t.Fatalf("Simplex3D(%f,%f,%f) = %f, expected [-1,1]", x, y, z, v)
		}
	}
}

func TestPerlinLatticePointsAreMidpoint(t *testing.T) {
	k := NewKernel(5)
	// Gradient noise is zero at integer lattice points, i.e. 0.5 after normalization
	for _, p := range [][2]float64{{0, 0}, {3, 7}, {-12, 40}} {
		if v := k.Perlin2D(p[0], p[1]); math.Abs(v-0.5) > 1e-12 {
			t.Errorf("expected 0.5 at lattice point %v, got %f", p, v)
		}
	}
}

func TestSimplexVaries(t *testing.T) {
	k := NewKernel(11)
	minV, maxV := 1.0, -1.0
	for i := 0; i < 2000; i++ {
		v := k.Simplex3D(float64(i)*0.37, float64(i)*0.11, 0.5)
		minV = math.Min(minV, v)
		maxV = math.Max(maxV, v)
	}
	if maxV-minV < 0.5 {
		t.Errorf("expected simplex noise to span a wide range, got [%f,%f]", minV, maxV)
	}
}

func TestHash21(t *testing.T) {
	// Same pixel hashes identically
	if Hash21(10.2, 20.7) != Hash21(10.9, 20.1) {
		t.Error("expected points in the same pixel to share a hash")
	}

	var sum float64
	n := 0
	for y := 0; y < 100; y++ {
		for x := 0; x < 100; x++ {
			v := Hash21(float64(x), float64(y))
			if v < 0 || v >= 1 {
				t.Fatalf("Hash21(%d,%d) = %f, expected [0,1)", x, y, v)
			}
			sum += v
			n++
		}
	}
	mean := sum / float64(n)
	if math.Abs(mean-0.5) > 0.05 {
		t.Errorf("expected mean near 0.5, got %f", mean)
	}
}

func TestNewSampler(t *testing.T) {
	for _, name := range []string{"", BackendSimplex, BackendOpenSimplex, BackendPerlin} {
		s, err := NewSampler(name, 3)
		if err != nil {
			t.Fatalf("NewSampler(%q) returned error: %v", name, err)
		}
		for i := 0; i < 500; i++ {
			f := float64(i) * 0.173
			if v := s.Eval3(f, -f, f*0.5); v < -1 || v > 1 {
				t.Fatalf("backend %q returned %f outside [-1,1]", name, v)
			}
		}
	}

	if _, err := NewSampler("worley", 1); err == nil {
		t.Error("expected error for unknown backend")
	}
}
