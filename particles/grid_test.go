package particles

import "testing"

func TestDims(t *testing.T) {
	testCases := []struct {
		w, h, step int
		cols, rows int
	}{
		{800, 600, 6, 134, 100},
		{6, 6, 6, 1, 1},
		{7, 6, 6, 2, 1},
		{0, 100, 6, 0, 0},
		{100, 100, 0, 0, 0},
	}

	for _, tc := range testCases {
		cols, rows := Dims(tc.w, tc.h, tc.step)
		if cols != tc.cols || rows != tc.rows {
			t.Errorf("Dims(%d,%d,%d): expected %dx%d, got %dx%d", tc.w, tc.h, tc.step, tc.cols, tc.rows, cols, rows)
		}
	}
}

func TestRebuildCount(t *testing.T) {
	g := NewGrid()
	g.Rebuild(800, 600, 6)
	if g.Count() != 134*100 {
		t.Errorf("expected %d particles, got %d", 134*100, g.Count())
	}

	// Resize replaces the lattice rather than growing it
	g.Rebuild(60, 30, 6)
	if g.Count() != 50 {
		t.Errorf("expected 50 particles after resize, got %d", g.Count())
	}

	var seen int
	g.Update(func(x, y float64) (float64, bool) {
		seen++
		if x >= 60 || y >= 30 {
			t.Errorf("particle at (%v,%v) outside viewport", x, y)
		}
		return 0, false
	})
	if seen != 50 {
		t.Errorf("expected to visit 50 particles, visited %d", seen)
	}
}

func TestUpdateAndEach(t *testing.T) {
	g := NewGrid()
	g.Rebuild(12, 12, 6)

	visible := g.Update(func(x, y float64) (float64, bool) {
		if x == 0 {
			return 0.25, true
		}
		return 0, false
	})
	if visible != 2 {
		t.Fatalf("expected 2 visible particles, got %d", visible)
	}

	var n int
	g.Each(func(x, y, alpha float64) {
		n++
		if x != 0 || alpha != 0.25 {
			t.Errorf("unexpected visible particle at (%v,%v) alpha %v", x, y, alpha)
		}
	})
	if n != 2 {
		t.Errorf("expected Each to visit 2 particles, got %d", n)
	}
}

func TestNearest(t *testing.T) {
	g := NewGrid()
	if _, ok := g.Nearest(0, 0); ok {
		t.Error("expected no particle in an empty grid")
	}

	g.Rebuild(60, 60, 6)
	testCases := []struct {
		x, y     float64
		col, row int
	}{
		{0, 0, 0, 0},
		{13, 2, 2, 0},
		{14, 17, 2, 3},
		{-50, 30, 0, 5},
		{1000, 1000, 9, 9},
	}

	for _, tc := range testCases {
		p, ok := g.Nearest(tc.x, tc.y)
		if !ok {
			t.Fatalf("(%v,%v): expected a particle", tc.x, tc.y)
		}
		if p.Cell.Col != tc.col || p.Cell.Row != tc.row {
			t.Errorf("(%v,%v): expected cell %d,%d, got %d,%d", tc.x, tc.y, tc.col, tc.row, p.Cell.Col, p.Cell.Row)
		}
		if p.Position.X != float64(tc.col*6) || p.Position.Y != float64(tc.row*6) {
			t.Errorf("(%v,%v): unexpected position %+v", tc.x, tc.y, p.Position)
		}
	}

	// The grid stays usable after an early-exit lookup
	g.Rebuild(12, 12, 6)
	if g.Count() != 4 {
		t.Errorf("expected 4 particles after rebuild, got %d", g.Count())
	}
}
