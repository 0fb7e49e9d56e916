package common

import "math"

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// Clamp bounds v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func Distance(ax, ay, bx, by float64) float64 {
	return math.Hypot(bx-ax, by-ay)
}

// MoveTowards steps (x, y) toward (tx, ty) by at most maxDelta and never
// overshoots the destination.
func MoveTowards(x, y, tx, ty, maxDelta float64) (float64, float64) {
	dx := tx - x
	dy := ty - y
	dist := math.Hypot(dx, dy)
	if dist <= maxDelta || dist == 0 {
		return tx, ty
	}
	return x + dx/dist*maxDelta, y + dy/dist*maxDelta
}
