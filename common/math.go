package common

import "math"

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// Sign returns -1, 0 or 1.
func Sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Approach moves v toward target by at most step without overshooting.
func Approach(v, target, step float64) float64 {
	if v < target {
		return math.Min(v+step, target)
	}
	if v > target {
		return math.Max(v-step, target)
	}
	return v
}
