package visual

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ps-normals/internal/mathutil"
)

func TestNormalImage(t *testing.T) {
	normals := []mathutil.Vec3{{0, 0, 1}, {1, 0, 0}, {0, 0, 0}, {-1, 0, 0}}
	mask := []bool{true, true, false, true}
	img := NormalImage(2, 2, normals, mask)

	assert.Equal(t, color.NRGBA{128, 128, 255, 255}, img.NRGBAAt(0, 0))
	assert.Equal(t, color.NRGBA{255, 128, 128, 255}, img.NRGBAAt(1, 0))
	assert.Equal(t, white, img.NRGBAAt(0, 1))
	assert.Equal(t, color.NRGBA{0, 128, 128, 255}, img.NRGBAAt(1, 1))
}

func TestJetEndpoints(t *testing.T) {
	assert.Equal(t, color.NRGBA{0, 0, 128, 255}, Jet(0))
	assert.Equal(t, color.NRGBA{128, 0, 0, 255}, Jet(1))
	assert.Equal(t, Jet(1), Jet(7))
	assert.Equal(t, Jet(0), Jet(-1))
	mid := Jet(0.5)
	assert.Equal(t, uint8(255), mid.G)
}

func TestErrorImageMasksBackground(t *testing.T) {
	img := ErrorImage(2, 1, []float64{20, 90}, []bool{true, false}, 0, 20)
	assert.Equal(t, Jet(1), img.NRGBAAt(0, 0))
	assert.Equal(t, white, img.NRGBAAt(1, 0))
}

func TestUpscale(t *testing.T) {
	src := NormalImage(2, 1, []mathutil.Vec3{{1, 0, 0}, {-1, 0, 0}}, []bool{true, true})
	up := Upscale(src, 3)
	assert.Equal(t, image.Rect(0, 0, 6, 3), up.Bounds())
	assert.Equal(t, src.At(0, 0), up.At(2, 2))
	assert.Equal(t, src.At(1, 0), up.At(3, 0))
	assert.Same(t, src, Upscale(src, 1).(*image.NRGBA))
}

func TestSave(t *testing.T) {
	dir := t.TempDir()
	img := NormalImage(2, 2, make([]mathutil.Vec3, 4), []bool{true, true, true, false})

	pngPath := filepath.Join(dir, "sub", "N_est.png")
	require.NoError(t, Save(pngPath, img))
	f, err := os.Open(pngPath)
	require.NoError(t, err)
	defer f.Close()
	decoded, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, img.Bounds(), decoded.Bounds())

	webpPath := filepath.Join(dir, "N_est.webp")
	require.NoError(t, Save(webpPath, img))
	info, err := os.Stat(webpPath)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))

	assert.Error(t, Save(filepath.Join(dir, "N_est.gif"), img))
}
