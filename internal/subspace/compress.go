package subspace

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"ps-normals/internal/artifact"
	"ps-normals/internal/batch"
	"ps-normals/internal/textio"
)

// Options configures CompressDir.
type Options struct {
	DictionaryDir string
	OutputDir     string
	Rank          int
	Workers       int
	Logger        logrus.FieldLogger
}

// CompressDir computes one projector per dictionary slice listed in the
// dictionary manifest and writes it under the same file name. The
// manifest is copied only after every projector has been written.
func CompressDir(ctx context.Context, opts Options) error {
	names, err := artifact.ReadManifest(opts.DictionaryDir)
	if err != nil {
		return err
	}
	if err := textio.MakeDirs(opts.OutputDir); err != nil {
		return err
	}

	if opts.Logger != nil {
		opts.Logger.WithFields(logrus.Fields{
			"candidates": len(names),
			"rank":       opts.Rank,
			"workers":    opts.Workers,
		}).Info("computing projectors")
	}

	lights := make([]int, len(names))
	cfg := batch.Config{Workers: opts.Workers, Label: "projector", Logger: opts.Logger}
	err = batch.Run(ctx, cfg, len(names), func(_ context.Context, i int) error {
		d, err := artifact.ReadMatrix(filepath.Join(opts.DictionaryDir, names[i]))
		if err != nil {
			return err
		}
		z, err := Projector(d, opts.Rank)
		if err != nil {
			return fmt.Errorf("%s: %w", names[i], err)
		}
		lights[i], _ = z.Dims()
		return artifact.WriteMatrix(filepath.Join(opts.OutputDir, names[i]), z)
	})
	if err != nil {
		return err
	}

	for i, l := range lights {
		if l != lights[0] {
			return fmt.Errorf("%w: %s has %d lights, %s has %d", ErrShape, names[i], l, names[0], lights[0])
		}
	}

	if err := artifact.CopyManifest(opts.DictionaryDir, opts.OutputDir); err != nil {
		return err
	}

	meta := artifact.Meta{Kind: "projector", Candidates: len(names), Lights: lights[0], Rank: opts.Rank}
	if dm, ok, err := artifact.ReadMeta(opts.DictionaryDir); err != nil {
		return err
	} else if ok {
		meta.Materials = dm.Materials
	}
	return artifact.WriteMeta(opts.OutputDir, meta)
}
