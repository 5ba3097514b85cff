package image

import "fmt"

// Texture is the abstract packed-tensor accessor the convolution algorithm
// runs against. Sample performs a nearest-neighbor, clamp-to-edge read:
// coordinates outside [0, Width) x [0, Height) return the nearest valid edge
// texel, never zero. Store writes one texel and requires an explicit in-range
// coordinate; it does not clamp.
//
// Keeping the algorithm behind this one interface lets a target implement it
// either as a flat buffer with manual stride arithmetic or as a native
// texture/image object.
type Texture interface {
	Sample(x, y int) Vec4
	Store(x, y int, v Vec4)
	Width() int
	Height() int
}

// Image is a flat-buffer Texture: width*height packed texels backed by a
// single row-major []float32 with four floats per texel.
type Image struct {
	width  int
	height int
	data   []float32
}

// New creates a zero-filled packed image of width x height texels.
func New(width, height int) *Image {
	if width <= 0 || height <= 0 {
		panic(fmt.Sprintf("image: invalid dimensions %dx%d", width, height))
	}
	return &Image{
		width:  width,
		height: height,
		data:   make([]float32, width*height*Vecs),
	}
}

// FromSlice creates a packed image of width x height texels backed by data.
// The slice is used directly, not copied; it must hold exactly
// width*height*4 floats in row-major texel order.
func FromSlice(data []float32, width, height int) (*Image, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("image: invalid dimensions %dx%d", width, height)
	}
	if len(data) != width*height*Vecs {
		return nil, fmt.Errorf("image: data length %d != %d*%d*%d", len(data), width, height, Vecs)
	}
	return &Image{width: width, height: height, data: data}, nil
}

// Width returns the image width in texels.
func (m *Image) Width() int { return m.width }

// Height returns the image height in texels.
func (m *Image) Height() int { return m.height }

// Data returns the backing slice: width*height*4 floats, row-major.
func (m *Image) Data() []float32 { return m.data }

// Sample reads the texel at (x, y) with clamp-to-edge addressing.
func (m *Image) Sample(x, y int) Vec4 {
	if x < 0 {
		x = 0
	} else if x >= m.width {
		x = m.width - 1
	}
	if y < 0 {
		y = 0
	} else if y >= m.height {
		y = m.height - 1
	}
	i := (y*m.width + x) * Vecs
	return Vec4{m.data[i], m.data[i+1], m.data[i+2], m.data[i+3]}
}

// At reads the texel at (x, y) without clamping. The coordinate must be in
// range.
func (m *Image) At(x, y int) Vec4 {
	i := (y*m.width + x) * Vecs
	return Vec4{m.data[i], m.data[i+1], m.data[i+2], m.data[i+3]}
}

// Store writes the texel at (x, y). The coordinate must be in range; unlike
// Sample, Store does not clamp.
func (m *Image) Store(x, y int, v Vec4) {
	if x < 0 || x >= m.width || y < 0 || y >= m.height {
		panic(fmt.Sprintf("image: store out of range: (%d,%d) in %dx%d", x, y, m.width, m.height))
	}
	i := (y*m.width + x) * Vecs
	m.data[i] = v[0]
	m.data[i+1] = v[1]
	m.data[i+2] = v[2]
	m.data[i+3] = v[3]
}

// Fill sets every channel of every texel to s.
func (m *Image) Fill(s float32) {
	for i := range m.data {
		m.data[i] = s
	}
}

// Clone returns a deep copy of the image.
func (m *Image) Clone() *Image {
	data := make([]float32, len(m.data))
	copy(data, m.data)
	return &Image{width: m.width, height: m.height, data: data}
}
