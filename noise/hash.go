package noise

import "math"

// Hash21 maps a 2D position to a uniform value in [0,1).
// The position is floored first so every point inside one pixel hashes
// identically. The function is stateless and uses no trig.
func Hash21(x, y float64) float64 {
	x = math.Floor(x)
	y = math.Floor(y)

	p3x := fract(x * 0.1031)
	p3y := fract(y * 0.1031)
	p3z := fract(x * 0.1031)

	d := p3x*(p3y+33.33) + p3y*(p3z+33.33) + p3z*(p3x+33.33)
	p3x += d
	p3y += d
	p3z += d

	return fract((p3x + p3y) * p3z)
}

func fract(x float64) float64 {
	return x - math.Floor(x)
}
