package estimate

import (
	"fmt"

	"ps-normals/internal/mathutil"
)

// AngularErrors returns the per-pixel angle between est and gt in degrees,
// zero outside the mask.
func AngularErrors(est *NormalMap, gt []mathutil.Vec3, mask []bool) ([]float64, error) {
	if len(gt) != len(est.N) || len(mask) != len(est.N) {
		return nil, fmt.Errorf("%w: %d estimated, %d ground truth, %d mask pixels", ErrShape, len(est.N), len(gt), len(mask))
	}
	out := make([]float64, len(est.N))
	for p, on := range mask {
		if on {
			out[p] = mathutil.AngleBetweenDeg(est.N[p], gt[p])
		}
	}
	return out, nil
}

// MeanAngularError averages errs over the foreground. An empty mask yields 0.
func MeanAngularError(errs []float64, mask []bool) float64 {
	sum, n := 0.0, 0
	for p, on := range mask {
		if on {
			sum += errs[p]
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}
