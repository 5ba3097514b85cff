package conv

import "fmt"

// TileWidth is the number of consecutive output columns each work unit
// computes.
const TileWidth = 4

// Params describes one convolution. All channel counts are in packed texels
// (four scalar channels each). The value is immutable per invocation; the
// kernel carries no state between invocations.
//
// Weights encode output-channel identity along the image y axis (one row per
// packed output channel, or per single channel in depthwise mode) and the
// tap enumeration along x.
type Params struct {
	// Channel geometry, in packed texels.
	InputChannelsPerGroup  int // input texels read per group (1 in depthwise mode)
	TotalInputChannels     int // packed width multiplier of the input image
	OutputChannelsPerGroup int // output texels produced per group
	TotalOutputChannels    int // packed width multiplier of the output image

	// Spatial geometry.
	OutputColumns int
	OutputRows    int // rows per image, not counting batch stacking
	InputRows     int // rows per input image, used for batch offsets

	FilterX, FilterY     int
	PadX, PadY           int
	StrideX, StrideY     int
	DilationX, DilationY int

	// Mode flags. Depthwise selects the single-weight elementwise path.
	// Batch is the number of images stacked vertically in the input tensor;
	// values above 1 select the batched row mapping.
	Depthwise bool
	Batch     int
}

// Batched reports whether the batched row mapping is in effect.
func (p Params) Batched() bool { return p.Batch > 1 }

// Grid returns the dispatch grid: one work unit per (packed output channel,
// output column tile, output row) triple. With batching the row dimension
// covers all stacked images.
func (p Params) Grid() (x, y, z int) {
	return p.TotalOutputChannels, (p.OutputColumns + TileWidth - 1) / TileWidth, p.Batch * p.OutputRows
}

// Validate checks the configuration invariants the kernel itself assumes but
// never enforces. Violations that slip past here do not crash the kernel;
// they silently produce wrong numbers (cross-group channel leakage,
// misaligned weight reads). Hosts must call this before dispatch.
func (p Params) Validate() error {
	switch {
	case p.InputChannelsPerGroup <= 0 || p.TotalInputChannels <= 0:
		return fmt.Errorf("conv: invalid input channels per_group=%d total=%d",
			p.InputChannelsPerGroup, p.TotalInputChannels)
	case p.OutputChannelsPerGroup <= 0 || p.TotalOutputChannels <= 0:
		return fmt.Errorf("conv: invalid output channels per_group=%d total=%d",
			p.OutputChannelsPerGroup, p.TotalOutputChannels)
	case p.TotalInputChannels%p.InputChannelsPerGroup != 0:
		return fmt.Errorf("conv: total input channels %d not a multiple of group size %d",
			p.TotalInputChannels, p.InputChannelsPerGroup)
	case p.TotalOutputChannels%p.OutputChannelsPerGroup != 0:
		return fmt.Errorf("conv: total output channels %d not a multiple of group size %d",
			p.TotalOutputChannels, p.OutputChannelsPerGroup)
	case p.OutputColumns <= 0 || p.OutputRows <= 0 || p.InputRows <= 0:
		return fmt.Errorf("conv: invalid extents columns=%d rows=%d input_rows=%d",
			p.OutputColumns, p.OutputRows, p.InputRows)
	case p.FilterX <= 0 || p.FilterY <= 0:
		return fmt.Errorf("conv: invalid filter size %dx%d", p.FilterX, p.FilterY)
	case p.StrideX <= 0 || p.StrideY <= 0:
		return fmt.Errorf("conv: invalid stride %dx%d", p.StrideX, p.StrideY)
	case p.DilationX <= 0 || p.DilationY <= 0:
		return fmt.Errorf("conv: invalid dilation %dx%d", p.DilationX, p.DilationY)
	case p.PadX < 0 || p.PadY < 0:
		return fmt.Errorf("conv: invalid padding %dx%d", p.PadX, p.PadY)
	case p.Batch <= 0:
		return fmt.Errorf("conv: invalid batch count %d", p.Batch)
	case p.Depthwise && p.InputChannelsPerGroup != 1:
		return fmt.Errorf("conv: depthwise mode requires one input channel per group, got %d",
			p.InputChannelsPerGroup)
	}
	// Batched inputs stack images vertically, and row padding is not applied
	// across the stacking seams. Downstream numerics depend on this, so the
	// combination is rejected rather than corrected.
	if p.Batched() && p.PadY != 0 {
		return fmt.Errorf("conv: batched conv doesn't work with y-padding (batch=%d pad_y=%d)",
			p.Batch, p.PadY)
	}
	return nil
}
