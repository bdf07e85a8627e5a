package merl

import (
	"bytes"
	"encoding/binary"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestTable fills every channel with f(ith, itd, ipd).
func newTestTable(t *testing.T, f func(ith, itd, ipd int) float64) *Table {
	t.Helper()
	samples := make([]float64, Channels*Size)
	for ith := 0; ith < SamplingThetaH; ith++ {
		for itd := 0; itd < SamplingThetaD; itd++ {
			for ipd := 0; ipd < SamplingPhiD; ipd++ {
				ind := ipd + SamplingPhiD*(itd+ith*SamplingThetaD)
				v := f(ith, itd, ipd)
				for c := 0; c < Channels; c++ {
					samples[ind+c*Size] = v
				}
			}
		}
	}
	tbl, err := NewTable(samples)
	require.NoError(t, err)
	return tbl
}

func TestDecodeRejectsBadHeader(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, [3]int32{90, 90, 90}))
	_, err := Decode(&buf)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrFormat)
}

func TestDecodeRejectsTruncatedPayload(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, [3]int32{90, 90, 180}))
	buf.Write(make([]byte, 1024))
	_, err := Decode(&buf)
	assert.ErrorIs(t, err, ErrFormat)
}

func TestNewTableRejectsWrongLength(t *testing.T) {
	_, err := NewTable(make([]float64, 10))
	assert.ErrorIs(t, err, ErrFormat)
}

func TestLoadRoundTrip(t *testing.T) {
	tbl := newTestTable(t, func(ith, itd, ipd int) float64 {
		return float64(ith*10000 + itd*100 + ipd%100)
	})
	path := filepath.Join(t.TempDir(), "test.binary")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, tbl.Encode(f))
	require.NoError(t, f.Close())

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, tbl.brdf, loaded.brdf)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.binary"))
	assert.Error(t, err)
}

func TestEvalRawAppliesChannelScale(t *testing.T) {
	tbl := newTestTable(t, func(ith, itd, ipd int) float64 {
		return float64(ith*10000 + itd*100 + ipd%100)
	})
	got := tbl.EvalRaw(thetaHFromIndex(12), thetaDFromIndex(34), phiDFromIndex(56))
	want := float64(12*10000 + 34*100 + 56)
	for c := 0; c < Channels; c++ {
		assert.InDelta(t, want*Scale[c], got[c], 1e-9)
	}
}

func TestIndexRoundTrip(t *testing.T) {
	for i := 0; i < SamplingThetaH; i++ {
		assert.Equal(t, i, thetaHIndex(thetaHFromIndex(i)), "theta_h %d", i)
	}
	for i := 0; i < SamplingThetaD; i++ {
		assert.Equal(t, i, thetaDIndex(thetaDFromIndex(i)), "theta_d %d", i)
	}
	for i := 0; i < SamplingPhiD; i++ {
		assert.Equal(t, i, phiDIndex(phiDFromIndex(i)), "phi_d %d", i)
	}
}

func TestIndexMonotonicAndClamped(t *testing.T) {
	prevH, prevD, prevP := 0, 0, 0
	for k := 0; k <= 2000; k++ {
		a := float64(k) / 2000 * math.Pi
		h, d, p := thetaHIndex(a), thetaDIndex(a), phiDIndex(a)
		assert.GreaterOrEqual(t, h, prevH)
		assert.GreaterOrEqual(t, d, prevD)
		assert.GreaterOrEqual(t, p, prevP)
		prevH, prevD, prevP = h, d, p
	}
	assert.Equal(t, SamplingThetaH-1, prevH)
	assert.Equal(t, SamplingThetaD-1, prevD)
	assert.Equal(t, SamplingPhiD-1, prevP)

	assert.Equal(t, 0, thetaHIndex(-0.5))
	assert.Equal(t, 0, thetaDIndex(-0.5))
	assert.Equal(t, phiDIndex(math.Pi-0.25), phiDIndex(-0.25))
	assert.Equal(t, phiDIndex(0.25), phiDIndex(0.25-3*math.Pi))
}

func TestEvalInterpFiniteNonNegative(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	tbl := newTestTable(t, func(ith, itd, ipd int) float64 {
		// MERL marks missing samples with negative values
		if (ith+itd+ipd)%17 == 0 {
			return -1
		}
		return rng.Float64() * 100
	})
	for k := 0; k < 5000; k++ {
		th := rng.Float64()*2 - 0.25
		td := rng.Float64()*2 - 0.25
		pd := rng.Float64()*4*math.Pi - 2*math.Pi
		got := tbl.EvalInterp(th, td, pd)
		require.Len(t, got, 3)
		for _, v := range got {
			assert.False(t, math.IsNaN(v) || math.IsInf(v, 0))
			assert.GreaterOrEqual(t, v, 0.0)
		}
	}
}

func TestEvalInterpExactSample(t *testing.T) {
	tbl := newTestTable(t, func(ith, itd, ipd int) float64 {
		return float64(ith + itd + ipd)
	})
	got := tbl.EvalInterp(thetaHFromIndex(30), thetaDFromIndex(40), phiDFromIndex(50))
	for c := 0; c < Channels; c++ {
		assert.InDelta(t, 120*Scale[c], got[c], 1e-9)
	}
}

func TestEvalInterpLinearAlongThetaD(t *testing.T) {
	tbl := newTestTable(t, func(ith, itd, ipd int) float64 {
		return float64(itd)
	})
	mid := (thetaDFromIndex(10) + thetaDFromIndex(11)) / 2
	got := tbl.EvalInterp(thetaHFromIndex(5), mid, phiDFromIndex(5))
	assert.InDelta(t, 10.5*Scale[0], got[0], 1e-9)
}

func TestEvalInterpAzimuthWrapsAround(t *testing.T) {
	tbl := newTestTable(t, func(ith, itd, ipd int) float64 {
		switch ipd {
		case 0:
			return 1
		case SamplingPhiD - 1:
			return 2
		default:
			return 100
		}
	})
	th, td := thetaHFromIndex(10), thetaDFromIndex(20)

	below := tbl.EvalInterp(th, td, -0.001)
	above := tbl.EvalInterp(th, td, math.Pi-0.001)
	for c := 0; c < Channels; c++ {
		assert.InDelta(t, above[c], below[c], 1e-12)
		assert.GreaterOrEqual(t, below[c], 1*Scale[c]-1e-12)
		assert.LessOrEqual(t, below[c], 2*Scale[c]+1e-12)
	}
}
