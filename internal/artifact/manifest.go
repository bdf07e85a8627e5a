package artifact

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"ps-normals/internal/textio"
)

// MetaName is the run metadata file written next to the manifest.
const MetaName = "meta.json"

// Meta describes a directory of per-candidate matrices.
type Meta struct {
	Kind       string   `json:"kind"` // "dictionary" or "projector"
	Candidates int      `json:"candidates"`
	Lights     int      `json:"lights"`
	Materials  []string `json:"materials,omitempty"`
	Rank       int      `json:"rank,omitempty"`
}

// WriteManifest writes the ordered file names to dir/filename.txt.
func WriteManifest(dir string, names []string) error {
	return textio.WriteLines(filepath.Join(dir, ManifestName), names)
}

// ReadManifest returns the canonical file order of dir. Consumers must
// iterate this list rather than the directory listing.
func ReadManifest(dir string) ([]string, error) {
	names, err := textio.ReadLines(filepath.Join(dir, ManifestName))
	if err != nil {
		return nil, fmt.Errorf("artifact: manifest: %w", err)
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("artifact: manifest %s is empty", filepath.Join(dir, ManifestName))
	}
	return names, nil
}

// CopyManifest copies the manifest of src into dst.
func CopyManifest(src, dst string) error {
	data, err := os.ReadFile(filepath.Join(src, ManifestName))
	if err != nil {
		return fmt.Errorf("artifact: read manifest: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dst, ManifestName), data, 0644); err != nil {
		return fmt.Errorf("artifact: write manifest: %w", err)
	}
	return nil
}

// WriteMeta writes meta.json to dir.
func WriteMeta(dir string, m Meta) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, MetaName), data, 0644)
}

// ReadMeta reads meta.json from dir. A missing file yields ok == false.
func ReadMeta(dir string) (m Meta, ok bool, err error) {
	data, err := os.ReadFile(filepath.Join(dir, MetaName))
	if errors.Is(err, fs.ErrNotExist) {
		return Meta{}, false, nil
	}
	if err != nil {
		return Meta{}, false, fmt.Errorf("artifact: read meta: %w", err)
	}
	if err := json.Unmarshal(data, &m); err != nil {
		return Meta{}, false, fmt.Errorf("artifact: parse meta: %w", err)
	}
	return m, true, nil
}
