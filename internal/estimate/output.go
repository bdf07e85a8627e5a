package estimate

import (
	"path/filepath"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/mat"

	"ps-normals/internal/artifact"
	"ps-normals/internal/dataset"
	"ps-normals/internal/textio"
	"ps-normals/internal/visual"
)

// OutputOptions controls what WriteOutputs renders.
type OutputOptions struct {
	ImageFormat string  // "png" or "webp"
	ErrorMapMax float64 // upper end of the error colormap in degrees
	Upscale     int
}

// Score is written as result.json when ground truth is available.
type Score struct {
	MAngE float64 `json:"MAngE"`
}

// WriteOutputs stores the estimate of obj under dir and, when the object
// carries ground truth, its angular error map and score. The returned
// score is nil without ground truth.
func WriteOutputs(dir string, obj *dataset.Object, res *Result, opts OutputOptions, logger logrus.FieldLogger) (*Score, error) {
	if err := textio.MakeDirs(dir); err != nil {
		return nil, err
	}
	img := func(name string) string {
		return filepath.Join(dir, name+"."+opts.ImageFormat)
	}

	if err := artifact.WriteMatrix(filepath.Join(dir, "N_est"+artifact.Ext), normalsDense(res.Normals)); err != nil {
		return nil, err
	}
	est := visual.NormalImage(obj.Width, obj.Height, res.Normals.N, obj.Mask)
	if err := visual.Save(img("N_est"), visual.Upscale(est, opts.Upscale)); err != nil {
		return nil, err
	}

	if obj.Normals == nil {
		if logger != nil {
			logger.WithField("object", obj.Name).Info("no ground truth, skipping evaluation")
		}
		return nil, nil
	}

	errs, err := AngularErrors(res.Normals, obj.Normals, obj.Mask)
	if err != nil {
		return nil, err
	}
	score := &Score{MAngE: MeanAngularError(errs, obj.Mask)}

	errMap := mat.NewDense(obj.Height, obj.Width, errs)
	if err := artifact.WriteMatrix(filepath.Join(dir, "ange_map"+artifact.Ext), errMap); err != nil {
		return nil, err
	}
	gt := visual.NormalImage(obj.Width, obj.Height, obj.Normals, obj.Mask)
	if err := visual.Save(img("N_gt"), visual.Upscale(gt, opts.Upscale)); err != nil {
		return nil, err
	}
	emap := visual.ErrorImage(obj.Width, obj.Height, errs, obj.Mask, 0, opts.ErrorMapMax)
	if err := visual.Save(img("ange_map"), visual.Upscale(emap, opts.Upscale)); err != nil {
		return nil, err
	}
	if err := textio.DumpJSON(filepath.Join(dir, "result.json"), score); err != nil {
		return nil, err
	}

	if logger != nil {
		logger.WithFields(logrus.Fields{
			"object": obj.Name,
			"MAngE":  score.MAngE,
		}).Info("evaluated")
	}
	return score, nil
}

// normalsDense packs a normal map as an (H·W)×3 matrix.
func normalsDense(m *NormalMap) *mat.Dense {
	d := mat.NewDense(len(m.N), 3, nil)
	for p, n := range m.N {
		d.SetRow(p, n[:])
	}
	return d
}
