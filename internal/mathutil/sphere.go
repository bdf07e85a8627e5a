package mathutil

import "math"

// FibonacciHemisphere returns n roughly evenly spaced unit vectors with z > 0
// (the hemisphere facing the camera), ordered by decreasing z.
func FibonacciHemisphere(n int) []Vec3 {
	if n <= 0 {
		return nil
	}
	golden := math.Pi * (3 - math.Sqrt(5))
	out := make([]Vec3, n)
	for i := 0; i < n; i++ {
		// z in (0, 1], sample centers avoid the horizon
		z := 1 - (float64(i)+0.5)/float64(n)
		r := math.Sqrt(1 - z*z)
		phi := golden * float64(i)
		out[i] = Vec3{r * math.Cos(phi), r * math.Sin(phi), z}
	}
	return out
}

// GridHemisphere samples the unit disk on a regular res×res grid over
// [-1, 1]² and lifts every point inside it (with z >= minZ) to the sphere.
// Output is row-major with y increasing.
func GridHemisphere(res int, minZ float64) []Vec3 {
	if res < 2 {
		return nil
	}
	var out []Vec3
	step := 2 / float64(res-1)
	for j := 0; j < res; j++ {
		y := -1 + float64(j)*step
		for i := 0; i < res; i++ {
			x := -1 + float64(i)*step
			rr := x*x + y*y
			if rr > 1 {
				continue
			}
			z := math.Sqrt(1 - rr)
			if z < minZ {
				continue
			}
			out = append(out, Vec3{x, y, z})
		}
	}
	return out
}
