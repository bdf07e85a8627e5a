package dataset

import "ps-normals/internal/mathutil"

// InMemory is a Source backed by values already in memory, used for
// synthetic captures.
type InMemory struct {
	ObjectName  string
	Imgs        []*RGBImage
	M           *Mask
	Dirs        []mathutil.Vec3
	Intensity   [][3]float64 // nil means unit intensity
	GroundTruth []mathutil.Vec3
}

func (s *InMemory) Name() string                                 { return s.ObjectName }
func (s *InMemory) Images() ([]*RGBImage, error)                 { return s.Imgs, nil }
func (s *InMemory) Mask() (*Mask, error)                         { return s.M, nil }
func (s *InMemory) LightDirections() ([]mathutil.Vec3, error)    { return s.Dirs, nil }
func (s *InMemory) GroundTruthNormals() ([]mathutil.Vec3, error) { return s.GroundTruth, nil }

func (s *InMemory) LightIntensities() ([][3]float64, error) {
	if s.Intensity != nil {
		return s.Intensity, nil
	}
	out := make([][3]float64, len(s.Dirs))
	for i := range out {
		out[i] = [3]float64{1, 1, 1}
	}
	return out, nil
}

// GrayImage builds an RGBImage with identical channels from gray values.
func GrayImage(w, h int, gray []float64) *RGBImage {
	img := &RGBImage{Width: w, Height: h, Pix: make([]float64, 3*w*h)}
	for p, v := range gray {
		img.Pix[3*p], img.Pix[3*p+1], img.Pix[3*p+2] = v, v, v
	}
	return img
}
