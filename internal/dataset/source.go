// Package dataset loads photometric stereo captures into calibrated
// per-light measurement stacks.
package dataset

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"ps-normals/internal/mathutil"
)

// ErrShape is returned when the parts of a capture disagree in size.
var ErrShape = errors.New("dataset: shape mismatch")

// Mask is a boolean foreground mask, row-major.
type Mask struct {
	Width  int
	Height int
	On     []bool
}

// Count returns the number of foreground pixels.
func (m *Mask) Count() int {
	n := 0
	for _, on := range m.On {
		if on {
			n++
		}
	}
	return n
}

// Source is one capture of one object in some on-disk layout.
type Source interface {
	Name() string
	Images() ([]*RGBImage, error)
	Mask() (*Mask, error)
	LightDirections() ([]mathutil.Vec3, error)
	// LightIntensities returns per-light RGB intensities.
	LightIntensities() ([][3]float64, error)
	// GroundTruthNormals returns nil, nil when the capture has none.
	GroundTruthNormals() ([]mathutil.Vec3, error)
}

// Opener opens the capture stored in dir.
type Opener func(dir string) (Source, error)

var openers = map[string]Opener{
	"diligent": OpenDiLiGenT,
}

// Open returns the Source for a named layout ("diligent").
func Open(layout, dir string) (Source, error) {
	open, ok := openers[strings.ToLower(layout)]
	if !ok {
		return nil, fmt.Errorf("dataset: unknown layout %q (known: %s)", layout, strings.Join(Layouts(), ", "))
	}
	return open(dir)
}

// Layouts lists the registered layout names.
func Layouts() []string {
	names := make([]string, 0, len(openers))
	for k := range openers {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
