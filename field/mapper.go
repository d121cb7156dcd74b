package field

// Blend constants for the two-octave point cloud field.
const (
	SecondaryWeight = 0.35 // mix weight of the higher-frequency sample

	ShoulderEdge0 = 0.0
	ShoulderEdge1 = 0.7
	PeakEdge0     = 0.35
	PeakEdge1     = 0.7
)

// Calm band edges in normalized vertical coordinates (0 = bottom, 1 = top).
const (
	literalCalmEdge0   = 1.2
	literalCalmEdge1   = 1.8
	graduatedCalmEdge0 = 0.6
	graduatedCalmEdge1 = 0.9
)

// Clamp01 clamps v to [0,1].
func Clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Mix linearly interpolates between a and b. The weight is clamped to [0,1].
func Mix(a, b, t float64) float64 {
	t = Clamp01(t)
	return a + (b-a)*t
}

// Smoothstep is the cubic Hermite ease of x between edge0 and edge1.
// When edge0 >= edge1 it degrades to a step at edge0.
func Smoothstep(edge0, edge1, x float64) float64 {
	if edge0 >= edge1 {
		if x < edge0 {
			return 0
		}
		return 1
	}
	t := Clamp01((x - edge0) / (edge1 - edge0))
	return t * t * (3 - 2*t)
}

// CalmWeight returns the calm band weight at normalized height uvY.
func CalmWeight(mode CalmMode, uvY float64) float64 {
	switch mode {
	case CalmOff:
		return 0
	case CalmLiteral:
		return Smoothstep(literalCalmEdge0, literalCalmEdge1, uvY)
	default:
		return Smoothstep(graduatedCalmEdge0, graduatedCalmEdge1, uvY)
	}
}

// Probability maps a primary sample f1 and a secondary sample f2 (both
// nominally in [-1,1]) to an on-probability in [0,1].
//
// Starting from TroughMax, the result blends toward PeakMin across the
// shoulder of the field and toward PeakMax at its core, then back toward
// TroughMax inside the calm band.
func Probability(f1, f2, uvY float64, cfg *Config) float64 {
	field := Clamp01((Mix(f1, f2, SecondaryWeight) + 1) * 0.5)

	mid := Smoothstep(ShoulderEdge0, ShoulderEdge1, field)
	high := Smoothstep(PeakEdge0, PeakEdge1, field)

	prob := Mix(cfg.TroughMax, cfg.PeakMin, mid)
	prob = Mix(prob, cfg.PeakMax, high)
	prob = Mix(prob, cfg.TroughMax, CalmWeight(cfg.CalmMode, uvY))

	return Clamp01(prob)
}

// Decide reports whether an element with uniform random value r is foreground.
func Decide(prob, r float64) bool {
	return r < prob
}
