// Package conv implements grouped and depthwise 2D convolution over packed
// 4-channel images.
//
// A convolution is described by an immutable Params value and compiled into a
// Program, which fixes the depthwise/dense and batched/flat code paths once
// per build. Each work unit of a Program computes a tile of four consecutive
// output columns for one packed output channel and one output row; units are
// fully independent and write disjoint texels, so a dispatcher may run any
// number of them concurrently without synchronization.
//
// Padding is implicit: input coordinates are computed as position*stride -
// padding and may fall outside the image, where clamp-to-edge sampling
// replicates the border texel. This is edge replication, not zero padding,
// and it is part of the numeric contract.
package conv
