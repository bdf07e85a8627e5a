// Package artifact persists per-candidate matrices and the manifest that
// fixes their order.
package artifact

import (
	"bufio"
	"fmt"
	"os"

	"gonum.org/v1/gonum/mat"
)

const (
	// ManifestName lists the per-candidate files in canonical order.
	ManifestName = "filename.txt"

	// Ext is the extension of a persisted matrix.
	Ext = ".bin"
)

// Name returns the file name of candidate i.
func Name(i int) string {
	return fmt.Sprintf("%06d%s", i, Ext)
}

// WriteMatrix stores m in gonum's binary matrix encoding.
func WriteMatrix(path string, m *mat.Dense) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("artifact: create %s: %w", path, err)
	}
	w := bufio.NewWriter(f)
	if _, err := m.MarshalBinaryTo(w); err != nil {
		f.Close()
		return fmt.Errorf("artifact: encode %s: %w", path, err)
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("artifact: write %s: %w", path, err)
	}
	return f.Close()
}

// ReadMatrix loads a matrix written by WriteMatrix.
func ReadMatrix(path string) (*mat.Dense, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("artifact: open %s: %w", path, err)
	}
	defer f.Close()

	var m mat.Dense
	if _, err := m.UnmarshalBinaryFrom(bufio.NewReader(f)); err != nil {
		return nil, fmt.Errorf("artifact: decode %s: %w", path, err)
	}
	return &m, nil
}
