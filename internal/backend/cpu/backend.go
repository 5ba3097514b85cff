// Package cpu implements the flat-buffer CPU target for the convolution
// kernels, dispatching work units across a goroutine pool.
package cpu

import (
	"github.com/terribond568545/tinygrad/internal/conv"
	"github.com/terribond568545/tinygrad/internal/image"
	"github.com/terribond568545/tinygrad/internal/parallel"
)

// Backend runs convolution programs on the CPU. Each work unit of the
// dispatch grid writes a disjoint set of output texels, so units are spread
// over worker goroutines without locking.
type Backend struct {
	cfg parallel.Config
}

// New creates a CPU backend with the default worker configuration.
func New() *Backend {
	return &Backend{cfg: parallel.DefaultConfig()}
}

// NewWithConfig creates a CPU backend with an explicit worker configuration.
// Disabling parallelism yields a deterministic sequential sweep, useful for
// debugging.
func NewWithConfig(cfg parallel.Config) *Backend {
	return &Backend{cfg: cfg}
}

// Name returns the backend name.
func (cpu *Backend) Name() string {
	return "CPU"
}

// Conv convolves input with weights under p. It validates p, builds the
// program for p's variant, allocates the output image, and runs the full
// dispatch grid.
func (cpu *Backend) Conv(input, weights *image.Image, p conv.Params) (*image.Image, error) {
	return cpu.ConvEpilogue(input, weights, p, nil)
}

// ConvEpilogue is Conv with a post-accumulation transform applied to every
// tile before its store.
func (cpu *Backend) ConvEpilogue(input, weights *image.Image, p conv.Params, epilogue conv.Epilogue) (*image.Image, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	output := image.New(p.OutputColumns*p.TotalOutputChannels, p.Batch*p.OutputRows)
	cpu.Dispatch(conv.Build(p, epilogue), input, weights, output)
	return output, nil
}

// Dispatch runs every work unit of the program's grid against the given
// textures. The output is written in place, which lets callers pre-fill it
// and observe exactly which texels the kernel touches.
func (cpu *Backend) Dispatch(program *conv.Program, input, weights, output image.Texture) {
	gridX, gridY, gridZ := program.Params().Grid()
	parallel.For3D(gridX, gridY, gridZ, func(x, y, z int) {
		program.Run(input, weights, output, conv.Unit{Channel: x, Tile: y, Row: z})
	}, cpu.cfg)
}
