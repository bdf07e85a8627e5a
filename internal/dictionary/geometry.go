package dictionary

import "ps-normals/internal/mathutil"

// lightGeometry holds the candidate-independent half/difference frame
// of one light under frontal orthographic viewing.
type lightGeometry struct {
	l      mathutil.Vec3
	h      mathutil.Vec3 // half vector
	q      mathutil.Vec3 // difference vector
	thetaD float64
}

func newLightGeometry(lights []mathutil.Vec3) []lightGeometry {
	out := make([]lightGeometry, len(lights))
	for j, l := range lights {
		h := l.Add(mathutil.ViewDir).SafeNormalize()
		out[j] = lightGeometry{
			l:      l,
			h:      h,
			q:      l.Sub(h).SafeNormalize(),
			thetaD: mathutil.SafeAcos(l.Dot(h)),
		}
	}
	return out
}

// angles returns (theta_h, theta_d, phi_d) of light g for normal n.
func (g lightGeometry) angles(n mathutil.Vec3) (thetaH, thetaD, phiD float64) {
	p := g.h.Sub(n).SafeNormalize()
	return mathutil.SafeAcos(g.h.Dot(n)), g.thetaD, mathutil.SafeAcos(p.Dot(g.q))
}
