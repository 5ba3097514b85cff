package image

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSample_InRange(t *testing.T) {
	m := New(3, 2)
	m.Store(1, 1, Vec4{1, 2, 3, 4})

	assert.Equal(t, Vec4{1, 2, 3, 4}, m.Sample(1, 1))
	assert.Equal(t, Vec4{}, m.Sample(0, 0))
}

func TestSample_ClampToEdge(t *testing.T) {
	m := New(3, 2)
	for y := 0; y < 2; y++ {
		for x := 0; x < 3; x++ {
			m.Store(x, y, Vec4{float32(10*y + x), 0, 0, 0})
		}
	}

	// Out-of-range coordinates return the nearest edge texel, never zero.
	assert.Equal(t, m.At(0, 0), m.Sample(-1, 0))
	assert.Equal(t, m.At(0, 0), m.Sample(-5, -5))
	assert.Equal(t, m.At(2, 0), m.Sample(7, -1))
	assert.Equal(t, m.At(0, 1), m.Sample(0, 2))
	assert.Equal(t, m.At(2, 1), m.Sample(100, 100))
}

func TestStore_OutOfRangePanics(t *testing.T) {
	m := New(2, 2)

	// Store requires an explicit in-range coordinate; it never clamps.
	assert.Panics(t, func() { m.Store(2, 0, Vec4{}) })
	assert.Panics(t, func() { m.Store(0, -1, Vec4{}) })
}

func TestFromSlice_LengthChecked(t *testing.T) {
	_, err := FromSlice(make([]float32, 7), 2, 1)
	require.Error(t, err)

	m, err := FromSlice(make([]float32, 8), 2, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, m.Width())
	assert.Equal(t, 1, m.Height())
}

func TestBufferRoundTrip(t *testing.T) {
	rows, cols := 5, 8
	buf := make([]float32, rows*cols*Vecs)
	for i := range buf {
		buf[i] = float32(i)*0.5 - 20
	}

	m, err := FromBuffer(buf, rows, cols)
	require.NoError(t, err)
	assert.Equal(t, cols, m.Width())
	assert.Equal(t, rows, m.Height())

	// Texel (x, y) holds the packed channel group of logical pixel (y, x).
	assert.Equal(t, Vec4{buf[0], buf[1], buf[2], buf[3]}, m.At(0, 0))
	i := (1*cols + 2) * Vecs
	assert.Equal(t, Vec4{buf[i], buf[i+1], buf[i+2], buf[i+3]}, m.At(2, 1))

	assert.Equal(t, buf, ToBuffer(m))
}

func TestFromBuffer_RejectsMismatch(t *testing.T) {
	_, err := FromBuffer(make([]float32, 16), 2, 3)
	assert.Error(t, err)
}

func TestRoundup(t *testing.T) {
	assert.Equal(t, 0, Roundup(0))
	assert.Equal(t, 4, Roundup(1))
	assert.Equal(t, 4, Roundup(4))
	assert.Equal(t, 8, Roundup(5))
}

func TestVec4Ops(t *testing.T) {
	v := Vec4{1, 2, 3, 4}
	w := Vec4{5, 6, 7, 8}

	assert.Equal(t, Vec4{6, 8, 10, 12}, v.Add(w))
	assert.Equal(t, Vec4{5, 12, 21, 32}, v.Mul(w))
	assert.InDelta(t, 70.0, float64(v.Dot(w)), 1e-6)
	assert.Equal(t, Vec4{2, 4, 6, 8}, v.Scale(2))

	acc := Vec4{1, 1, 1, 1}
	assert.Equal(t, Vec4{6, 13, 22, 33}, acc.MulAdd(v, w))
}

func TestClone_Independent(t *testing.T) {
	m := New(2, 2)
	m.Store(0, 0, Vec4{1, 1, 1, 1})

	c := m.Clone()
	c.Store(0, 0, Vec4{2, 2, 2, 2})

	assert.Equal(t, Vec4{1, 1, 1, 1}, m.At(0, 0))
	assert.Equal(t, Vec4{2, 2, 2, 2}, c.At(0, 0))
}
