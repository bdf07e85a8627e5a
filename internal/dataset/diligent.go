package dataset

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"ps-normals/internal/mathutil"
	"ps-normals/internal/textio"
)

// DiLiGenT reads the per-object directory layout of the DiLiGenT benchmark:
//
//	filenames.txt          image file names, one per light
//	light_directions.txt   L×3 unit vectors
//	light_intensities.txt  L×3 (or L×1) intensities
//	mask.png               foreground mask
//	normal.txt             optional H·W×3 ground truth, row-major
type DiLiGenT struct {
	Dir       string
	filenames []string
}

// OpenDiLiGenT checks the file list of dir.
func OpenDiLiGenT(dir string) (Source, error) {
	names, err := textio.ReadLines(filepath.Join(dir, "filenames.txt"))
	if err != nil {
		return nil, fmt.Errorf("dataset: diligent %s: %w", dir, err)
	}
	return &DiLiGenT{Dir: dir, filenames: names}, nil
}

func (d *DiLiGenT) Name() string {
	return filepath.Base(d.Dir)
}

func (d *DiLiGenT) Images() ([]*RGBImage, error) {
	imgs := make([]*RGBImage, len(d.filenames))
	for i, name := range d.filenames {
		img, err := LoadImage(filepath.Join(d.Dir, name))
		if err != nil {
			return nil, err
		}
		imgs[i] = img
	}
	return imgs, nil
}

func (d *DiLiGenT) Mask() (*Mask, error) {
	return LoadMask(filepath.Join(d.Dir, "mask.png"))
}

func (d *DiLiGenT) LightDirections() ([]mathutil.Vec3, error) {
	return textio.ReadVec3s(filepath.Join(d.Dir, "light_directions.txt"))
}

func (d *DiLiGenT) LightIntensities() ([][3]float64, error) {
	path := filepath.Join(d.Dir, "light_intensities.txt")
	rows, err := textio.ReadMatrix(path)
	if err != nil {
		return nil, err
	}
	out := make([][3]float64, len(rows))
	for i, r := range rows {
		switch len(r) {
		case 1:
			out[i] = [3]float64{r[0], r[0], r[0]}
		case 3:
			out[i] = [3]float64{r[0], r[1], r[2]}
		default:
			return nil, fmt.Errorf("%w: %s: %d columns, want 1 or 3", ErrShape, path, len(r))
		}
	}
	return out, nil
}

func (d *DiLiGenT) GroundTruthNormals() ([]mathutil.Vec3, error) {
	path := filepath.Join(d.Dir, "normal.txt")
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	return textio.ReadVec3s(path)
}
