package estimate

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"ps-normals/internal/batch"
	"ps-normals/internal/dataset"
	"ps-normals/internal/mathutil"
)

// NormalMap is a Width×Height field of normals, row-major.
type NormalMap struct {
	Width  int
	Height int
	N      []mathutil.Vec3
}

// Input bundles what Estimate needs. Normals must be in the same order as
// the bank's manifest.
type Input struct {
	Bank    *Bank
	Normals []mathutil.Vec3
	Object  *dataset.Object
	Workers int
	Logger  logrus.FieldLogger
}

// Result is the estimate for one object.
type Result struct {
	Normals *NormalMap
	// Index holds the chosen candidate per pixel, -1 outside the mask.
	Index    []int
	Residual []float64
}

// Estimate searches the bank for every foreground pixel. Pixels outside
// the mask keep the zero normal regardless of their measurements.
func Estimate(ctx context.Context, in Input) (*Result, error) {
	obj := in.Object
	if len(in.Normals) != in.Bank.Len() {
		return nil, fmt.Errorf("%w: %d candidate normals, %d projectors", ErrShape, len(in.Normals), in.Bank.Len())
	}
	if len(obj.Images) != in.Bank.Lights() {
		return nil, fmt.Errorf("%w: %d images, projectors expect %d lights", ErrShape, len(obj.Images), in.Bank.Lights())
	}

	fg := obj.Foreground()
	if in.Logger != nil {
		in.Logger.WithFields(logrus.Fields{
			"object":     obj.Name,
			"pixels":     len(fg),
			"candidates": in.Bank.Len(),
		}).Info("searching normals")
	}

	picked := make([]int, len(fg))
	residual := make([]float64, len(fg))
	cfg := batch.Config{Workers: in.Workers, Label: "search " + obj.Name, Logger: in.Logger}
	err := batch.Run(ctx, cfg, len(fg), func(_ context.Context, k int) error {
		m := obj.Measurement(fg[k], nil)
		picked[k], residual[k] = in.Bank.Search(m)
		return nil
	})
	if err != nil {
		return nil, err
	}

	npix := obj.Width * obj.Height
	res := &Result{
		Normals:  &NormalMap{Width: obj.Width, Height: obj.Height, N: make([]mathutil.Vec3, npix)},
		Index:    make([]int, npix),
		Residual: make([]float64, npix),
	}
	for p := range res.Index {
		res.Index[p] = -1
	}
	for k, p := range fg {
		res.Index[p] = picked[k]
		res.Residual[p] = residual[k]
		res.Normals.N[p] = in.Normals[picked[k]]
	}
	return res, nil
}
