// Copyright 2026 the tinygrad-go authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package conv provides the public API for the grouped and depthwise
// convolution kernels over packed 4-channel images.
//
// A convolution is described by an immutable Params value; hosts validate it,
// pick a backend, and launch:
//
//	backend := cpu.New()
//	out, err := backend.Conv(input, weights, conv.Params{
//	    InputChannelsPerGroup: 1, TotalInputChannels: 4,
//	    OutputChannelsPerGroup: 1, TotalOutputChannels: 4,
//	    OutputColumns: 32, OutputRows: 32, InputRows: 32,
//	    FilterX: 3, FilterY: 3, PadX: 1, PadY: 1,
//	    StrideX: 1, StrideY: 1, DilationX: 1, DilationY: 1,
//	    Depthwise: true, Batch: 1,
//	})
package conv

import (
	internalconv "github.com/terribond568545/tinygrad/internal/conv"
	"github.com/terribond568545/tinygrad/internal/image"
)

// TileWidth is the number of consecutive output columns each work unit
// computes.
const TileWidth = internalconv.TileWidth

// Params describes one convolution; see Validate for the configuration
// invariants hosts must enforce before dispatch.
type Params = internalconv.Params

// Program is a convolution compiled for one Params value, with its
// depthwise/dense and batched/flat code paths fixed at build time.
type Program = internalconv.Program

// Unit identifies one work unit of the dispatch grid.
type Unit = internalconv.Unit

// Epilogue is the post-accumulation extension point, applied to a tile's
// accumulators before the write stage.
type Epilogue = internalconv.Epilogue

// Backend launches convolutions against one compute target.
type Backend = internalconv.Backend

// Build compiles p into a Program. The epilogue may be nil.
func Build(p Params, epilogue Epilogue) *Program {
	return internalconv.Build(p, epilogue)
}

// Bias returns an epilogue adding bias[channel] to every tile lane.
func Bias(bias []image.Vec4) Epilogue {
	return internalconv.Bias(bias)
}

// ReLU returns an epilogue clamping accumulated values at zero.
func ReLU() Epilogue {
	return internalconv.ReLU()
}

// Chain composes epilogues left to right.
func Chain(epilogues ...Epilogue) Epilogue {
	return internalconv.Chain(epilogues...)
}
