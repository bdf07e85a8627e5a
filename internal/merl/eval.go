package merl

import "math"

// EvalRaw looks up the scaled RGB reflectance at the nearest sample.
func (t *Table) EvalRaw(thetaH, thetaD, phiD float64) [Channels]float64 {
	return t.at(thetaHIndex(thetaH), thetaDIndex(thetaD), phiDIndex(phiD))
}

// EvalInterp returns the scaled RGB reflectance trilinearly interpolated
// over the 2×2×2 sample cell around (thetaH, thetaD, phiD). Results are
// clamped at zero.
func (t *Table) EvalInterp(thetaH, thetaD, phiD float64) [Channels]float64 {
	phiD = wrapPhiD(phiD)

	ith := min(thetaHIndex(thetaH), SamplingThetaH-2)
	itd := min(thetaDIndex(thetaD), SamplingThetaD-2)
	ipd := phiDIndex(phiD)

	idxTH := [2]int{ith, ith + 1}
	idxTD := [2]int{itd, itd + 1}
	idxPD := [2]int{ipd, ipd + 1}

	wTH := axisWeights(thetaHFromIndex(idxTH[0]), thetaHFromIndex(idxTH[1]), thetaH)
	wTD := axisWeights(thetaDFromIndex(idxTD[0]), thetaDFromIndex(idxTD[1]), thetaD)
	wPD := axisWeights(phiDFromIndex(idxPD[0]), phiDFromIndex(idxPD[1]), phiD)

	// phi_d is circular: the neighbor past the last sample is sample 0
	if idxPD[1] >= SamplingPhiD {
		idxPD[1] = 0
	}

	var out [Channels]float64
	for a := 0; a < 2; a++ {
		for b := 0; b < 2; b++ {
			for c := 0; c < 2; c++ {
				w := wTH[a] * wTD[b] * wPD[c]
				if w == 0 {
					continue
				}
				v := t.at(idxTH[a], idxTD[b], idxPD[c])
				for ch := range out {
					out[ch] += v[ch] * w
				}
			}
		}
	}
	for ch := range out {
		if out[ch] < 0 || math.IsNaN(out[ch]) {
			out[ch] = 0
		}
	}
	return out
}

// axisWeights weights the two samples at angles a0 and a1 by their
// distance to x, normalized to sum to 1.
func axisWeights(a0, a1, x float64) [2]float64 {
	d0, d1 := math.Abs(a0-x), math.Abs(a1-x)
	s := d0 + d1
	if s == 0 {
		return [2]float64{1, 0}
	}
	return [2]float64{1 - d0/s, 1 - d1/s}
}
