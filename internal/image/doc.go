// Package image provides the packed 2D image representation used by the
// convolution kernels.
//
// Every texel holds four packed float32 channel values, matching the RGBA
// float image layout of image-sampling hardware. Reads use nearest-neighbor
// clamp-to-edge addressing; writes require an explicit in-range coordinate.
package image
