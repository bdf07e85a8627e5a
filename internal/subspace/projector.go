// Package subspace compresses each candidate's appearance matrix into the
// projector onto the orthogonal complement of its dominant modes.
package subspace

import (
	"errors"
	"fmt"
	"sort"

	"gonum.org/v1/gonum/mat"
)

// ErrShape is returned for empty matrices and ranks outside [1, lights).
var ErrShape = errors.New("subspace: shape mismatch")

// Projector returns Z = I − U·Uᵀ where U holds the eigenvectors of the
// Gram matrix D·Dᵀ belonging to its rank largest eigenvalues. D is
// lights×materials, Z is lights×lights.
func Projector(d mat.Matrix, rank int) (*mat.Dense, error) {
	lights, materials := d.Dims()
	if lights == 0 || materials == 0 {
		return nil, fmt.Errorf("%w: empty %dx%d matrix", ErrShape, lights, materials)
	}
	if rank < 1 || rank >= lights {
		return nil, fmt.Errorf("%w: rank %d outside [1, %d)", ErrShape, rank, lights)
	}

	var gram mat.SymDense
	gram.SymOuterK(1, d)

	var eig mat.EigenSym
	if ok := eig.Factorize(&gram, true); !ok {
		return nil, errors.New("subspace: eigendecomposition did not converge")
	}
	vals := eig.Values(nil)
	var vecs mat.Dense
	eig.VectorsTo(&vecs)

	// gonum returns ascending eigenvalues; keep the rank largest
	order := make([]int, len(vals))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return vals[order[a]] > vals[order[b]]
	})

	u := mat.NewDense(lights, rank, nil)
	for c := 0; c < rank; c++ {
		for r := 0; r < lights; r++ {
			u.Set(r, c, vecs.At(r, order[c]))
		}
	}

	var uut mat.Dense
	uut.Mul(u, u.T())

	z := mat.NewDense(lights, lights, nil)
	for r := 0; r < lights; r++ {
		for c := 0; c < lights; c++ {
			v := -uut.At(r, c)
			if r == c {
				v += 1
			}
			z.Set(r, c, v)
		}
	}
	return z, nil
}

// Residual returns ‖Z·m‖.
func Residual(z mat.Matrix, m []float64) float64 {
	var out mat.VecDense
	out.MulVec(z, mat.NewVecDense(len(m), m))
	return mat.Norm(&out, 2)
}
