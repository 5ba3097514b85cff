// Copyright 2026 the tinygrad-go authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package cpu provides the CPU backend for the convolution kernels.
//
// The CPU backend implements the packed-image kernel over flat float32
// buffers and spreads the dispatch grid across a goroutine pool.
package cpu

import (
	"github.com/terribond568545/tinygrad/conv"
	internalcpu "github.com/terribond568545/tinygrad/internal/backend/cpu"
	"github.com/terribond568545/tinygrad/internal/parallel"
)

// Backend runs convolution programs on the CPU.
type Backend = internalcpu.Backend

// Config controls the worker pool used to dispatch work units.
type Config = parallel.Config

// Compile-time check that Backend implements conv.Backend.
var _ conv.Backend = (*Backend)(nil)

// New creates a CPU backend with the default worker configuration.
func New() *Backend {
	return internalcpu.New()
}

// NewWithConfig creates a CPU backend with an explicit worker configuration.
// Disable parallelism for a deterministic sequential sweep.
func NewWithConfig(cfg Config) *Backend {
	return internalcpu.NewWithConfig(cfg)
}

// DefaultConfig returns the worker configuration New uses.
func DefaultConfig() Config {
	return parallel.DefaultConfig()
}
