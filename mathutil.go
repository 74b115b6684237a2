package svgmorph

import "golang.org/x/exp/constraints"

// lerp returns the value at t between a and b. t is not clamped so
// overshooting easings extrapolate.
func lerp[T constraints.Float](a, b, t T) T {
	return a + (b-a)*t
}

// clamp limits v to [lo, hi].
func clamp[T constraints.Ordered](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
