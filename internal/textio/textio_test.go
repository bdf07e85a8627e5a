package textio

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ps-normals/internal/mathutil"
)

func TestLinesRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "names.txt")
	require.NoError(t, WriteLines(path, []string{"alum-bronze", "blue-acrylic", "gold-paint"}))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "alum-bronze\nblue-acrylic\ngold-paint", string(raw))

	lines, err := ReadLines(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"alum-bronze", "blue-acrylic", "gold-paint"}, lines)
}

func TestReadLinesTrimsAndSkipsBlank(t *testing.T) {
	path := filepath.Join(t.TempDir(), "objs.txt")
	require.NoError(t, os.WriteFile(path, []byte("ballPNG  \r\n\n catPNG\n\n"), 0644))
	lines, err := ReadLines(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"ballPNG", "catPNG"}, lines)
}

func TestReadMatrix(t *testing.T) {
	path := filepath.Join(t.TempDir(), "m.txt")
	require.NoError(t, os.WriteFile(path, []byte("# header\n1 2 3\n\n4.5\t-6e-1 7 # trailing\n"), 0644))
	m, err := ReadMatrix(path)
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{1, 2, 3}, {4.5, -0.6, 7}}, m)
}

func TestReadMatrixRaggedRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "m.txt")
	require.NoError(t, os.WriteFile(path, []byte("1 2 3\n4 5\n"), 0644))
	_, err := ReadMatrix(path)
	assert.Error(t, err)
}

func TestReadMatrixBadNumber(t *testing.T) {
	path := filepath.Join(t.TempDir(), "m.txt")
	require.NoError(t, os.WriteFile(path, []byte("1 x 3\n"), 0644))
	_, err := ReadMatrix(path)
	assert.Error(t, err)
}

func TestVec3sRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "normals.txt")
	in := []mathutil.Vec3{{0, 0, 1}, {0.6, 0, 0.8}, {-0.1, 0.2, 0.97467943448}}
	require.NoError(t, WriteVec3s(path, in))
	out, err := ReadVec3s(path)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestReadVec3sWrongColumns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "l.txt")
	require.NoError(t, os.WriteFile(path, []byte("1 2\n3 4\n"), 0644))
	_, err := ReadVec3s(path)
	assert.Error(t, err)
}

func TestJSONRoundTrip(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")
	require.NoError(t, MakeDirs(dir))
	path := filepath.Join(dir, "result.json")
	require.NoError(t, DumpJSON(path, map[string]float64{"MAngE": 4.25}))

	var got map[string]float64
	require.NoError(t, LoadJSON(path, &got))
	assert.Equal(t, 4.25, got["MAngE"])
}
