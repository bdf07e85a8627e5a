package dataset

import (
	"bufio"
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg"
	_ "image/png"
	"os"

	_ "github.com/ftrvxmtrx/tga"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
)

// RGBImage is a float RGB image with interleaved channels in [0, 1].
type RGBImage struct {
	Width  int
	Height int
	Pix    []float64 // len = Width*Height*3
}

// At returns the RGB triple of pixel p (row-major index).
func (m *RGBImage) At(p int) [3]float64 {
	return [3]float64{m.Pix[3*p], m.Pix[3*p+1], m.Pix[3*p+2]}
}

// LoadImage decodes any registered format (PNG 8/16-bit, JPEG, TIFF, BMP,
// TGA) and scales channel values to [0, 1].
func LoadImage(path string) (*RGBImage, error) {
	img, err := decodeFile(path)
	if err != nil {
		return nil, err
	}
	return toRGB(img), nil
}

// LoadMask decodes an image and marks every pixel with non-zero gray
// level as foreground.
func LoadMask(path string) (*Mask, error) {
	img, err := decodeFile(path)
	if err != nil {
		return nil, err
	}
	b := img.Bounds()
	m := &Mask{Width: b.Dx(), Height: b.Dy(), On: make([]bool, b.Dx()*b.Dy())}
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			g := color.Gray16Model.Convert(img.At(x, y)).(color.Gray16)
			m.On[(y-b.Min.Y)*m.Width+(x-b.Min.X)] = g.Y > 0
		}
	}
	return m, nil
}

func decodeFile(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("dataset: open %s: %w", path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(bufio.NewReader(f))
	if err != nil {
		return nil, fmt.Errorf("dataset: decode %s: %w", path, err)
	}
	return img, nil
}

// toRGB converts any image to float RGB, dropping alpha.
func toRGB(src image.Image) *RGBImage {
	b := src.Bounds()
	dst := &RGBImage{Width: b.Dx(), Height: b.Dy(), Pix: make([]float64, b.Dx()*b.Dy()*3)}
	const maxV = 0xffff
	switch s := src.(type) {
	case *image.RGBA64:
		// 16-bit PNG fast path
		for y := 0; y < dst.Height; y++ {
			for x := 0; x < dst.Width; x++ {
				c := s.RGBA64At(b.Min.X+x, b.Min.Y+y)
				i := 3 * (y*dst.Width + x)
				dst.Pix[i] = float64(c.R) / maxV
				dst.Pix[i+1] = float64(c.G) / maxV
				dst.Pix[i+2] = float64(c.B) / maxV
			}
		}
	default:
		for y := 0; y < dst.Height; y++ {
			for x := 0; x < dst.Width; x++ {
				c := color.NRGBA64Model.Convert(src.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA64)
				i := 3 * (y*dst.Width + x)
				dst.Pix[i] = float64(c.R) / maxV
				dst.Pix[i+1] = float64(c.G) / maxV
				dst.Pix[i+2] = float64(c.B) / maxV
			}
		}
	}
	return dst
}
