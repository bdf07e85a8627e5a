package merl

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
)

// Sampling resolution of a MERL table along (theta_h, theta_d, phi_d).
const (
	SamplingThetaH = 90
	SamplingThetaD = 90
	SamplingPhiD   = 180

	// Size is the number of samples per channel.
	Size = SamplingThetaH * SamplingThetaD * SamplingPhiD

	// Channels is the number of color channels stored channel-major.
	Channels = 3
)

// Scale holds the per-channel calibration factors applied to raw samples.
var Scale = [Channels]float64{1.0 / 1500, 1.15 / 1500, 1.66 / 1500}

// ErrFormat is returned when a table header does not describe a
// 90×90×180 table or the payload is truncated.
var ErrFormat = errors.New("merl: dimensions do not match")

// Table is a decoded, immutable MERL reflectance table.
type Table struct {
	brdf []float64 // channel-major, len = Channels*Size
}

// Load reads and decodes a MERL .binary file.
func Load(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("merl: open %s: %w", path, err)
	}
	defer f.Close()

	t, err := Decode(bufio.NewReaderSize(f, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("merl: decode %s: %w", path, err)
	}
	return t, nil
}

// Decode reads a table from r: three little-endian int32 axis counts
// followed by Channels*Size little-endian float64 samples.
func Decode(r io.Reader) (*Table, error) {
	var dims [3]int32
	if err := binary.Read(r, binary.LittleEndian, &dims); err != nil {
		return nil, fmt.Errorf("%w: header: %v", ErrFormat, err)
	}
	if int64(dims[0])*int64(dims[1])*int64(dims[2]) != Size {
		return nil, fmt.Errorf("%w: header %dx%dx%d, want %d samples",
			ErrFormat, dims[0], dims[1], dims[2], Size)
	}

	raw := make([]byte, 8*Channels*Size)
	if _, err := io.ReadFull(r, raw); err != nil {
		return nil, fmt.Errorf("%w: payload: %v", ErrFormat, err)
	}

	brdf := make([]float64, Channels*Size)
	for i := range brdf {
		brdf[i] = math.Float64frombits(binary.LittleEndian.Uint64(raw[i*8:]))
	}
	return &Table{brdf: brdf}, nil
}

// NewTable wraps already decoded channel-major samples. The slice is
// retained, not copied.
func NewTable(samples []float64) (*Table, error) {
	if len(samples) != Channels*Size {
		return nil, fmt.Errorf("%w: got %d samples, want %d", ErrFormat, len(samples), Channels*Size)
	}
	return &Table{brdf: samples}, nil
}

// Encode writes t in the on-disk format accepted by Decode.
func (t *Table) Encode(w io.Writer) error {
	dims := [3]int32{SamplingThetaH, SamplingThetaD, SamplingPhiD}
	if err := binary.Write(w, binary.LittleEndian, dims); err != nil {
		return err
	}
	buf := make([]byte, 8*len(t.brdf))
	for i, v := range t.brdf {
		binary.LittleEndian.PutUint64(buf[i*8:], math.Float64bits(v))
	}
	_, err := w.Write(buf)
	return err
}

// ChannelRange returns the minimum and maximum raw (unscaled) sample of
// channel c, ignoring negative sentinels.
func (t *Table) ChannelRange(c int) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, v := range t.brdf[c*Size : (c+1)*Size] {
		if v < 0 {
			continue
		}
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	return lo, hi
}

func (t *Table) at(ith, itd, ipd int) [Channels]float64 {
	ind := ipd + SamplingPhiD*(itd+ith*SamplingThetaD)
	var out [Channels]float64
	for c := 0; c < Channels; c++ {
		out[c] = t.brdf[ind+c*Size] * Scale[c]
	}
	return out
}
