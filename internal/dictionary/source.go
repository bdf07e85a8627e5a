package dictionary

import (
	"path/filepath"

	"ps-normals/internal/merl"
)

// Evaluator looks up interpolated RGB reflectance at half/difference angles.
// *merl.Table implements it.
type Evaluator interface {
	EvalInterp(thetaH, thetaD, phiD float64) [3]float64
}

// Source resolves a material name to its reflectance table.
type Source interface {
	Table(name string) (Evaluator, error)
}

// DirSource loads <Dir>/<name>.binary MERL tables on demand.
type DirSource struct {
	Dir string
}

func (s DirSource) Table(name string) (Evaluator, error) {
	t, err := merl.Load(filepath.Join(s.Dir, name+".binary"))
	if err != nil {
		return nil, err
	}
	return t, nil
}
