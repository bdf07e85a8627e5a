package dataset

import (
	"fmt"

	"ps-normals/internal/mathutil"
)

// Options control calibration when loading an Object.
type Options struct {
	Gray            bool // average RGB into one channel
	DivideIntensity bool // divide every image by its light's intensity
}

// DefaultOptions matches the estimator's expectations.
var DefaultOptions = Options{Gray: true, DivideIntensity: true}

// Object is a calibrated capture ready for normal estimation.
type Object struct {
	Name        string
	Width       int
	Height      int
	Lights      []mathutil.Vec3
	Intensities [][3]float64
	// Images[l] holds Width*Height values (gray) or Width*Height*3
	// interleaved values (color) for light l.
	Images   [][]float64
	Channels int
	Mask     []bool
	Normals  []mathutil.Vec3 // ground truth, nil when unavailable
}

// Load reads every part of src and calibrates the image stack.
func Load(src Source, opts Options) (*Object, error) {
	lights, err := src.LightDirections()
	if err != nil {
		return nil, err
	}
	ints, err := src.LightIntensities()
	if err != nil {
		return nil, err
	}
	mask, err := src.Mask()
	if err != nil {
		return nil, err
	}
	imgs, err := src.Images()
	if err != nil {
		return nil, err
	}
	gt, err := src.GroundTruthNormals()
	if err != nil {
		return nil, err
	}

	if len(imgs) != len(lights) || len(ints) != len(lights) {
		return nil, fmt.Errorf("%w: %s: %d images, %d lights, %d intensities",
			ErrShape, src.Name(), len(imgs), len(lights), len(ints))
	}
	npix := mask.Width * mask.Height
	for i, img := range imgs {
		if img.Width != mask.Width || img.Height != mask.Height {
			return nil, fmt.Errorf("%w: %s: image %d is %dx%d, mask is %dx%d",
				ErrShape, src.Name(), i, img.Width, img.Height, mask.Width, mask.Height)
		}
	}
	if gt != nil && len(gt) != npix {
		return nil, fmt.Errorf("%w: %s: %d ground truth normals for %d pixels", ErrShape, src.Name(), len(gt), npix)
	}

	obj := &Object{
		Name:        src.Name(),
		Width:       mask.Width,
		Height:      mask.Height,
		Lights:      lights,
		Intensities: ints,
		Images:      make([][]float64, len(imgs)),
		Channels:    3,
		Mask:        mask.On,
		Normals:     gt,
	}
	if opts.Gray {
		obj.Channels = 1
	}

	for l, img := range imgs {
		scale := [3]float64{1, 1, 1}
		if opts.DivideIntensity {
			for c := range scale {
				if ints[l][c] != 0 {
					scale[c] = 1 / ints[l][c]
				}
			}
		}
		out := make([]float64, npix*obj.Channels)
		for p := 0; p < npix; p++ {
			rgb := img.At(p)
			for c := range rgb {
				rgb[c] *= scale[c]
			}
			if opts.Gray {
				out[p] = (rgb[0] + rgb[1] + rgb[2]) / 3
			} else {
				copy(out[3*p:3*p+3], rgb[:])
			}
		}
		obj.Images[l] = out
	}
	return obj, nil
}

// Foreground returns the row-major indices of the masked pixels.
func (o *Object) Foreground() []int {
	var idx []int
	for p, on := range o.Mask {
		if on {
			idx = append(idx, p)
		}
	}
	return idx
}

// Measurement copies the per-light gray values of pixel p into dst
// (allocated when nil). Color objects are reduced on the fly.
func (o *Object) Measurement(p int, dst []float64) []float64 {
	if dst == nil {
		dst = make([]float64, len(o.Images))
	}
	for l, img := range o.Images {
		if o.Channels == 1 {
			dst[l] = img[p]
		} else {
			dst[l] = (img[3*p] + img[3*p+1] + img[3*p+2]) / 3
		}
	}
	return dst
}
