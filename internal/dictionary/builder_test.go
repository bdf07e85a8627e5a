package dictionary

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ps-normals/internal/artifact"
	"ps-normals/internal/mathutil"
)

// lambertian is a degenerate table returning cos(theta_h) on every channel.
type lambertian struct{ scale float64 }

func (l lambertian) EvalInterp(thetaH, _, _ float64) [3]float64 {
	v := math.Cos(thetaH) * l.scale
	return [3]float64{v, v, v}
}

type fakeSource map[string]Evaluator

func (s fakeSource) Table(name string) (Evaluator, error) {
	ev, ok := s[name]
	if !ok {
		return nil, errors.New("no such material")
	}
	return ev, nil
}

func testLights() []mathutil.Vec3 {
	return []mathutil.Vec3{
		mathutil.Vec3{1, 0, 2}.Normalize(),
		mathutil.Vec3{-1, 0.5, 2}.Normalize(),
	}
}

func testNormals() []mathutil.Vec3 {
	return []mathutil.Vec3{
		{0, 0, 1},
		mathutil.Vec3{1, 0, 1}.Normalize(),
		mathutil.Vec3{0, 1, 1}.Normalize(),
		mathutil.Vec3{-1, -1, 1}.Normalize(),
	}
}

func TestBuildLambertian(t *testing.T) {
	logger, _ := test.NewNullLogger()
	b := &Builder{Normals: testNormals(), Lights: testLights(), Workers: 3, Logger: logger}
	d, err := b.Build(context.Background(), []string{"lambert"}, fakeSource{"lambert": lambertian{scale: 0.7}})
	require.NoError(t, err)
	require.Equal(t, 4, d.Candidates())
	require.Equal(t, 2, d.Lights())

	want := [][2]float64{
		{1.0, 0.9703320776322062},
		{1.0, 0.20069428148866306},
		{0.7384226034654036, 1.0},
		{0.28205233646259836, 1.0},
	}
	for i, row := range want {
		peak := math.Max(d.At(i, 0, 0), d.At(i, 1, 0))
		assert.Equal(t, 1.0, peak, "candidate %d", i)
		for j := range row {
			assert.InDelta(t, row[j], d.At(i, j, 0), 1e-9, "candidate %d light %d", i, j)
		}
	}
}

func TestBuildSkipsSelfShadowedLights(t *testing.T) {
	lights := []mathutil.Vec3{
		mathutil.Vec3{1, 0, 1}.Normalize(),
		mathutil.Vec3{-1, 0, 1}.Normalize(),
	}
	normals := []mathutil.Vec3{
		mathutil.Vec3{1, 0, 0.2}.Normalize(),
		{0, 0, -1},
	}
	b := &Builder{Normals: normals, Lights: lights, Workers: 1}
	d, err := b.Build(context.Background(), []string{"m"}, fakeSource{"m": lambertian{scale: 1}})
	require.NoError(t, err)

	assert.Equal(t, 1.0, d.At(0, 0, 0))
	assert.Equal(t, 0.0, d.At(0, 1, 0))

	// facing away from every light: the column stays zero, not NaN
	assert.Equal(t, 0.0, d.At(1, 0, 0))
	assert.Equal(t, 0.0, d.At(1, 1, 0))
}

func TestBuildNormalizesEachMaterialColumn(t *testing.T) {
	b := &Builder{Normals: testNormals(), Lights: testLights(), Workers: 2}
	src := fakeSource{"dim": lambertian{scale: 0.01}, "bright": lambertian{scale: 50}}
	d, err := b.Build(context.Background(), []string{"dim", "bright"}, src)
	require.NoError(t, err)
	assert.Equal(t, []string{"dim", "bright"}, d.Materials)

	for i := 0; i < d.Candidates(); i++ {
		for k := 0; k < 2; k++ {
			assert.Equal(t, 1.0, math.Max(d.At(i, 0, k), d.At(i, 1, k)))
		}
		assert.InDelta(t, d.At(i, 0, 0), d.At(i, 0, 1), 1e-12)
	}
}

func TestBuildIsIndependentOfWorkerCount(t *testing.T) {
	normals := mathutil.FibonacciHemisphere(200)
	lights := mathutil.FibonacciHemisphere(12)
	src := fakeSource{"m": lambertian{scale: 1}}

	one, err := (&Builder{Normals: normals, Lights: lights, Workers: 1}).Build(context.Background(), []string{"m"}, src)
	require.NoError(t, err)
	many, err := (&Builder{Normals: normals, Lights: lights, Workers: 8}).Build(context.Background(), []string{"m"}, src)
	require.NoError(t, err)
	for i := range one.Slices {
		assert.Equal(t, one.Slices[i].RawMatrix().Data, many.Slices[i].RawMatrix().Data)
	}
}

func TestBuildErrors(t *testing.T) {
	b := &Builder{Normals: testNormals(), Lights: testLights()}
	_, err := b.Build(context.Background(), nil, fakeSource{})
	assert.ErrorIs(t, err, ErrShape)

	_, err = b.Build(context.Background(), []string{"missing"}, fakeSource{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"missing"`)
}

func TestDegenerateGeometryStaysFinite(t *testing.T) {
	// light opposite to the view: l + v is the zero vector
	geom := newLightGeometry([]mathutil.Vec3{{0, 0, -1}, {0, 0, 1}})
	for _, g := range geom {
		for _, n := range testNormals() {
			th, td, pd := g.angles(n)
			for _, a := range []float64{th, td, pd} {
				assert.False(t, math.IsNaN(a))
			}
		}
	}
}

func TestSaveLoad(t *testing.T) {
	b := &Builder{Normals: testNormals(), Lights: testLights(), Workers: 2}
	d, err := b.Build(context.Background(), []string{"lambert"}, fakeSource{"lambert": lambertian{scale: 1}})
	require.NoError(t, err)

	dir := t.TempDir()
	require.NoError(t, Save(dir, d))

	names, err := artifact.ReadManifest(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"000000.bin", "000001.bin", "000002.bin", "000003.bin"}, names)

	meta, ok, err := artifact.ReadMeta(dir)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, artifact.Meta{Kind: "dictionary", Candidates: 4, Lights: 2, Materials: []string{"lambert"}}, meta)

	loaded, err := Load(dir)
	require.NoError(t, err)
	require.Equal(t, d.Candidates(), loaded.Candidates())
	for i := range d.Slices {
		assert.Equal(t, d.Slices[i].RawMatrix().Data, loaded.Slices[i].RawMatrix().Data)
	}
	assert.Equal(t, []string{"lambert"}, loaded.Materials)
}
