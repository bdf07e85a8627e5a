package dictionary

import (
	"fmt"
	"path/filepath"

	"ps-normals/internal/artifact"
	"ps-normals/internal/textio"
)

// Save writes one matrix file per candidate, the ordered manifest and
// meta.json into dir.
func Save(dir string, t *Tensor) error {
	if err := textio.MakeDirs(dir); err != nil {
		return err
	}
	names := make([]string, len(t.Slices))
	for i, d := range t.Slices {
		names[i] = artifact.Name(i)
		if err := artifact.WriteMatrix(filepath.Join(dir, names[i]), d); err != nil {
			return fmt.Errorf("dictionary: save: %w", err)
		}
	}
	if err := artifact.WriteManifest(dir, names); err != nil {
		return fmt.Errorf("dictionary: save: %w", err)
	}
	return artifact.WriteMeta(dir, artifact.Meta{
		Kind:       "dictionary",
		Candidates: t.Candidates(),
		Lights:     t.Lights(),
		Materials:  t.Materials,
	})
}

// Load reads a dictionary directory back in manifest order.
func Load(dir string) (*Tensor, error) {
	names, err := artifact.ReadManifest(dir)
	if err != nil {
		return nil, err
	}
	t := &Tensor{}
	if meta, ok, err := artifact.ReadMeta(dir); err != nil {
		return nil, err
	} else if ok {
		t.Materials = meta.Materials
	}
	for _, name := range names {
		d, err := artifact.ReadMatrix(filepath.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("dictionary: load: %w", err)
		}
		if len(t.Slices) > 0 {
			r0, c0 := t.Slices[0].Dims()
			if r, c := d.Dims(); r != r0 || c != c0 {
				return nil, fmt.Errorf("%w: %s is %dx%d, want %dx%d", ErrShape, name, r, c, r0, c0)
			}
		}
		t.Slices = append(t.Slices, d)
	}
	return t, nil
}
