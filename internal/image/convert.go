package image

import "fmt"

// Roundup rounds n up to the next multiple of the channel packing factor.
// Host buffers are allocated at this granularity so they can be reinterpreted
// as whole texels.
func Roundup(n int) int {
	return (n + Vecs - 1) / Vecs * Vecs
}

// FromBuffer packs a flat row-major (rows, cols, 4) host buffer into an image
// of width cols and height rows. Buffers shorter than a whole number of
// texels are zero-padded into the final texel.
func FromBuffer(buf []float32, rows, cols int) (*Image, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("image: invalid buffer shape (%d, %d, %d)", rows, cols, Vecs)
	}
	n := rows * cols * Vecs
	if Roundup(len(buf)) != n {
		return nil, fmt.Errorf("image: buffer length %d does not fit (%d, %d, %d)", len(buf), rows, cols, Vecs)
	}
	m := New(cols, rows)
	copy(m.data, buf)
	return m, nil
}

// ToBuffer unpacks the image back into a flat row-major (rows, cols, 4)
// buffer. The returned slice is a copy.
func ToBuffer(m *Image) []float32 {
	buf := make([]float32, len(m.data))
	copy(buf, m.data)
	return buf
}
