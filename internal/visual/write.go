package visual

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/HugoSmits86/nativewebp"
	"golang.org/x/image/draw"
)

// Formats lists the supported output extensions.
var Formats = []string{"png", "webp"}

// Upscale enlarges img by an integer factor with nearest-neighbor
// sampling so individual pixels stay visible.
func Upscale(img image.Image, factor int) image.Image {
	if factor <= 1 {
		return img
	}
	b := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx()*factor, b.Dy()*factor))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

// Save encodes img by the extension of path (.png or .webp).
func Save(path string, img image.Image) error {
	var encode func(io.Writer, image.Image) error
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".png":
		encode = png.Encode
	case ".webp":
		encode = func(w io.Writer, m image.Image) error {
			return nativewebp.Encode(w, m, nil)
		}
	default:
		return fmt.Errorf("visual: unsupported image format %q", ext)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("visual: mkdir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("visual: create %s: %w", path, err)
	}
	if err := encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("visual: encode %s: %w", path, err)
	}
	return f.Close()
}
