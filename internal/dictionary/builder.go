// Package dictionary synthesizes the expected-appearance tensor of every
// candidate normal under the known lights for a list of materials.
package dictionary

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/mat"

	"ps-normals/internal/batch"
	"ps-normals/internal/mathutil"
)

// ErrShape is returned for empty or inconsistent inputs.
var ErrShape = errors.New("dictionary: shape mismatch")

// Tensor is the dictionary D. Slices[i] is the lights×materials matrix
// of candidate normal i.
type Tensor struct {
	Materials []string
	Slices    []*mat.Dense
}

// Candidates returns the number of candidate normals.
func (t *Tensor) Candidates() int { return len(t.Slices) }

// Lights returns the number of lights.
func (t *Tensor) Lights() int {
	if len(t.Slices) == 0 {
		return 0
	}
	r, _ := t.Slices[0].Dims()
	return r
}

// At returns D[candidate, light, material].
func (t *Tensor) At(candidate, light, material int) float64 {
	return t.Slices[candidate].At(light, material)
}

// Builder fills a Tensor for fixed candidate normals and lights.
type Builder struct {
	Normals []mathutil.Vec3
	Lights  []mathutil.Vec3
	Workers int
	Logger  logrus.FieldLogger
}

// Build evaluates every material from src for every (candidate, light)
// pair. Tables are loaded one at a time; candidates of a material are
// filled in parallel.
func (b *Builder) Build(ctx context.Context, materials []string, src Source) (*Tensor, error) {
	if len(b.Normals) == 0 || len(b.Lights) == 0 || len(materials) == 0 {
		return nil, fmt.Errorf("%w: %d normals, %d lights, %d materials",
			ErrShape, len(b.Normals), len(b.Lights), len(materials))
	}

	geom := newLightGeometry(b.Lights)
	t := &Tensor{
		Materials: append([]string(nil), materials...),
		Slices:    make([]*mat.Dense, len(b.Normals)),
	}
	for i := range t.Slices {
		t.Slices[i] = mat.NewDense(len(b.Lights), len(materials), nil)
	}

	for k, name := range materials {
		ev, err := src.Table(name)
		if err != nil {
			return nil, fmt.Errorf("dictionary: material %q: %w", name, err)
		}
		if b.Logger != nil {
			b.Logger.WithFields(logrus.Fields{
				"material": name,
				"index":    k,
				"total":    len(materials),
			}).Info("synthesizing material")
		}

		cfg := batch.Config{Workers: b.Workers, Label: "dictionary " + name, Logger: b.Logger}
		err = batch.Run(ctx, cfg, len(b.Normals), func(_ context.Context, i int) error {
			fillColumn(t.Slices[i], k, b.Normals[i], geom, ev)
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	normalize(t)
	return t, nil
}

// fillColumn writes the shaded gray appearance of normal n under every
// light into column k of d. Self-shadowed lights stay zero.
func fillColumn(d *mat.Dense, k int, n mathutil.Vec3, geom []lightGeometry, ev Evaluator) {
	for j, g := range geom {
		nl := g.l.Dot(n)
		if nl <= 0 {
			continue
		}
		thetaH, thetaD, phiD := g.angles(n)
		rho := ev.EvalInterp(thetaH, thetaD, phiD)
		for c := range rho {
			if rho[c] < 0 {
				rho[c] = 0
			}
			rho[c] *= nl
		}
		d.Set(j, k, mathutil.Gray(rho))
	}
}

// normalize divides every material column of every slice by its maximum
// over lights. Columns that are zero under all lights are left as is.
func normalize(t *Tensor) {
	for _, d := range t.Slices {
		rows, cols := d.Dims()
		for k := 0; k < cols; k++ {
			peak := 0.0
			for j := 0; j < rows; j++ {
				peak = max(peak, d.At(j, k))
			}
			if peak == 0 {
				continue
			}
			for j := 0; j < rows; j++ {
				d.Set(j, k, d.At(j, k)/peak)
			}
		}
	}
}
