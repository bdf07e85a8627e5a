// Package estimate assigns every foreground pixel the candidate normal
// whose projector leaves the smallest residual.
package estimate

import (
	"context"
	"errors"
	"fmt"
	"math"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/mat"

	"ps-normals/internal/artifact"
	"ps-normals/internal/batch"
)

// ErrShape is returned when projectors, candidates and measurements
// disagree in size.
var ErrShape = errors.New("estimate: shape mismatch")

// Bank is the ordered projector bank Z.
type Bank struct {
	lights int
	data   [][]float64 // row-major lights×lights per candidate
}

// NewBank validates that every projector is square and of equal size.
func NewBank(zs []*mat.Dense) (*Bank, error) {
	if len(zs) == 0 {
		return nil, fmt.Errorf("%w: empty projector bank", ErrShape)
	}
	r0, _ := zs[0].Dims()
	b := &Bank{lights: r0, data: make([][]float64, len(zs))}
	for i, z := range zs {
		r, c := z.Dims()
		if r != c || r != r0 {
			return nil, fmt.Errorf("%w: projector %d is %dx%d, want %dx%d", ErrShape, i, r, c, r0, r0)
		}
		flat := make([]float64, r*c)
		for row := 0; row < r; row++ {
			mat.Row(flat[row*c:(row+1)*c], row, z)
		}
		b.data[i] = flat
	}
	return b, nil
}

// LoadBank reads the projectors of dir in manifest order.
func LoadBank(ctx context.Context, dir string, workers int, logger logrus.FieldLogger) (*Bank, error) {
	names, err := artifact.ReadManifest(dir)
	if err != nil {
		return nil, err
	}
	zs := make([]*mat.Dense, len(names))
	cfg := batch.Config{Workers: workers, Label: "load projectors", Logger: logger}
	err = batch.Run(ctx, cfg, len(names), func(_ context.Context, i int) error {
		z, err := artifact.ReadMatrix(filepath.Join(dir, names[i]))
		if err != nil {
			return err
		}
		zs[i] = z
		return nil
	})
	if err != nil {
		return nil, err
	}
	return NewBank(zs)
}

// Len returns the number of candidates.
func (b *Bank) Len() int { return len(b.data) }

// Lights returns the measurement length the projectors expect.
func (b *Bank) Lights() int { return b.lights }

// Search returns the candidate index minimizing ‖Z_i·m‖ and that residual.
// The first index wins ties.
func (b *Bank) Search(m []float64) (int, float64) {
	best, bestSq := 0, math.Inf(1)
	n := b.lights
	for i, z := range b.data {
		sq := 0.0
		for r := 0; r < n; r++ {
			row := z[r*n : (r+1)*n]
			s := 0.0
			for c, v := range row {
				s += v * m[c]
			}
			sq += s * s
			if sq >= bestSq {
				break
			}
		}
		if sq < bestSq {
			best, bestSq = i, sq
		}
	}
	return best, math.Sqrt(bestSq)
}
