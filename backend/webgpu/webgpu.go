//go:build windows

// Copyright 2026 the tinygrad-go authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package webgpu provides the WebGPU backend for the convolution kernels.
//
// The kernel runs as a WGSL compute shader; the depthwise and batched
// variants are baked into the shader text at build time. Numerics match the
// CPU backend texel for texel.
//
// Example:
//
//	gpu, err := webgpu.New()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer gpu.Release()
//	out, err := gpu.Conv(input, weights, params)
package webgpu

import (
	"github.com/terribond568545/tinygrad/conv"
	internalwebgpu "github.com/terribond568545/tinygrad/internal/backend/webgpu"
)

// Backend runs convolution programs on a WebGPU device.
type Backend = internalwebgpu.Backend

// Compile-time check that Backend implements conv.Backend.
var _ conv.Backend = (*Backend)(nil)

// New creates a new WebGPU backend. Call Release when done to free GPU
// resources.
//
// Returns an error if WebGPU initialization fails (e.g., no compatible GPU).
func New() (*Backend, error) {
	return internalwebgpu.New()
}

// IsAvailable checks if WebGPU is available on the current system, for
// graceful fallback to the CPU backend:
//
//	if webgpu.IsAvailable() {
//	    backend, _ = webgpu.New()
//	} else {
//	    backend = cpu.New()
//	}
func IsAvailable() bool {
	return internalwebgpu.IsAvailable()
}
