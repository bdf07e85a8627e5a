package mathutil

import "math"

// ViewDir is the orthographic frontal viewing direction used by the
// dictionary geometry.
var ViewDir = Vec3{0, 0, 1}

// Luma weights for reducing linear RGB to a single gray value.
const (
	LumaR = 0.3
	LumaG = 0.59
	LumaB = 0.11
)

// Gray reduces an RGB triple with the fixed luma weights.
func Gray(c [3]float64) float64 {
	return LumaR*c[0] + LumaG*c[1] + LumaB*c[2]
}

// Clamp restricts x to [lo, hi].
func Clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// SafeAcos is math.Acos with its argument clipped to [-1, 1].
func SafeAcos(x float64) float64 {
	return math.Acos(Clamp(x, -1, 1))
}

// Rad2Deg converts radians to degrees.
func Rad2Deg(r float64) float64 {
	return r * 180 / math.Pi
}

// Deg2Rad converts degrees to radians.
func Deg2Rad(d float64) float64 {
	return d * math.Pi / 180
}

// AngleBetweenDeg returns the angle between two unit vectors in degrees.
func AngleBetweenDeg(a, b Vec3) float64 {
	return Rad2Deg(SafeAcos(a.Dot(b)))
}
