package merl

import "math"

// snap absorbs float64 rounding in angle→index maps so that an index's
// own sample angle maps back to that index.
const snap = 1e-9

func thetaHFromIndex(i int) float64 {
	x := float64(i) / SamplingThetaH
	return x * x * math.Pi / 2
}

// thetaHIndex is non-linear: resolution is concentrated near the
// specular peak at theta_h = 0.
func thetaHIndex(thetaH float64) int {
	if thetaH < 0 {
		return 0
	}
	th := SamplingThetaH * math.Sqrt(thetaH/(math.Pi/2))
	return clampIndex(th, SamplingThetaH)
}

func thetaDFromIndex(i int) float64 {
	return float64(i) / SamplingThetaD * math.Pi / 2
}

func thetaDIndex(thetaD float64) int {
	return clampIndex(SamplingThetaD*thetaD/(math.Pi/2), SamplingThetaD)
}

func phiDFromIndex(i int) float64 {
	return float64(i) / SamplingPhiD * math.Pi
}

// wrapPhiD folds phi_d into [0, π) using the table's reciprocity symmetry.
func wrapPhiD(phiD float64) float64 {
	for phiD < 0 {
		phiD += math.Pi
	}
	return phiD
}

func phiDIndex(phiD float64) int {
	phiD = wrapPhiD(phiD)
	return clampIndex(SamplingPhiD*phiD/math.Pi, SamplingPhiD)
}

func clampIndex(v float64, n int) int {
	if math.IsNaN(v) {
		return 0
	}
	f := math.Floor(v + snap)
	if f < 0 {
		return 0
	}
	if f > float64(n-1) {
		return n - 1
	}
	return int(f)
}
