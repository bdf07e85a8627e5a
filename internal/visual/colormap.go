// Package visual renders normal maps and angular-error maps as images.
package visual

import (
	"image"
	"image/color"
	"math"

	"ps-normals/internal/mathutil"
)

var white = color.NRGBA{255, 255, 255, 255}

// NormalImage maps normals to colors (n+1)/2·255; background pixels are white.
func NormalImage(w, h int, normals []mathutil.Vec3, mask []bool) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for p, n := range normals {
		x, y := p%w, p/w
		if !mask[p] {
			img.SetNRGBA(x, y, white)
			continue
		}
		img.SetNRGBA(x, y, color.NRGBA{
			R: to8((n[0] + 1) / 2),
			G: to8((n[1] + 1) / 2),
			B: to8((n[2] + 1) / 2),
			A: 255,
		})
	}
	return img
}

// ErrorImage renders values through the jet colormap over [vmin, vmax];
// background pixels are white.
func ErrorImage(w, h int, values []float64, mask []bool, vmin, vmax float64) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	span := vmax - vmin
	if span <= 0 {
		span = 1
	}
	for p, v := range values {
		x, y := p%w, p/w
		if !mask[p] {
			img.SetNRGBA(x, y, white)
			continue
		}
		img.SetNRGBA(x, y, Jet((v-vmin)/span))
	}
	return img
}

// Jet maps t in [0, 1] (clamped) to matplotlib's jet colormap.
func Jet(t float64) color.NRGBA {
	if math.IsNaN(t) {
		t = 0
	}
	t = mathutil.Clamp(t, 0, 1)
	r := mathutil.Clamp(1.5-math.Abs(4*t-3), 0, 1)
	g := mathutil.Clamp(1.5-math.Abs(4*t-2), 0, 1)
	b := mathutil.Clamp(1.5-math.Abs(4*t-1), 0, 1)
	return color.NRGBA{R: to8(r), G: to8(g), B: to8(b), A: 255}
}

func to8(v float64) uint8 {
	return uint8(mathutil.Clamp(v, 0, 1)*255 + 0.5)
}
