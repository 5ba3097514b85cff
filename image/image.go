// Copyright 2026 the tinygrad-go authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package image provides the public API for the packed 2D images the
// convolution kernels operate on.
//
// Every texel packs four float32 channel values. Reads use nearest-neighbor,
// clamp-to-edge sampling; writes require an explicit in-range coordinate.
//
// Example:
//
//	in := image.New(width*totalInputChannels, rows)
//	copy(in.Data(), hostBuffer)
//	v := in.Sample(-1, 0) // clamps to the left edge texel
package image

import (
	internalimage "github.com/terribond568545/tinygrad/internal/image"
)

// Vecs is the channel packing factor: four scalars per texel.
const Vecs = internalimage.Vecs

// Vec4 is one packed texel: four float32 channel values.
type Vec4 = internalimage.Vec4

// Image is a flat-buffer packed image.
type Image = internalimage.Image

// Texture is the abstract packed-tensor accessor: one clamp-to-edge read
// operation and one bounds-checked write operation.
type Texture = internalimage.Texture

// New creates a zero-filled packed image of width x height texels.
func New(width, height int) *Image {
	return internalimage.New(width, height)
}

// FromSlice creates a packed image backed directly by data, which must hold
// width*height*4 floats.
func FromSlice(data []float32, width, height int) (*Image, error) {
	return internalimage.FromSlice(data, width, height)
}

// FromBuffer packs a flat row-major (rows, cols, 4) host buffer into an
// image of width cols and height rows.
func FromBuffer(buf []float32, rows, cols int) (*Image, error) {
	return internalimage.FromBuffer(buf, rows, cols)
}

// ToBuffer unpacks an image back into a flat row-major (rows, cols, 4)
// buffer.
func ToBuffer(m *Image) []float32 {
	return internalimage.ToBuffer(m)
}

// Roundup rounds n up to the next multiple of the channel packing factor.
func Roundup(n int) int {
	return internalimage.Roundup(n)
}
