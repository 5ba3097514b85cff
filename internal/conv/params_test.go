package conv

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validParams() Params {
	return Params{
		InputChannelsPerGroup:  2,
		TotalInputChannels:     4,
		OutputChannelsPerGroup: 2,
		TotalOutputChannels:    4,
		OutputColumns:          8,
		OutputRows:             6,
		InputRows:              6,
		FilterX:                3, FilterY: 3,
		PadX: 1, PadY: 1,
		StrideX: 1, StrideY: 1,
		DilationX: 1, DilationY: 1,
		Batch: 1,
	}
}

func TestValidate_OK(t *testing.T) {
	require.NoError(t, validParams().Validate())
}

func TestValidate_Invariants(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Params)
	}{
		{"input channels not divisible", func(p *Params) { p.TotalInputChannels = 3 }},
		{"output channels not divisible", func(p *Params) { p.TotalOutputChannels = 3 }},
		{"zero input group", func(p *Params) { p.InputChannelsPerGroup = 0 }},
		{"zero output group", func(p *Params) { p.OutputChannelsPerGroup = 0 }},
		{"zero columns", func(p *Params) { p.OutputColumns = 0 }},
		{"zero rows", func(p *Params) { p.OutputRows = 0 }},
		{"zero input rows", func(p *Params) { p.InputRows = 0 }},
		{"zero filter", func(p *Params) { p.FilterX = 0 }},
		{"zero stride", func(p *Params) { p.StrideY = 0 }},
		{"zero dilation", func(p *Params) { p.DilationX = 0 }},
		{"negative padding", func(p *Params) { p.PadX = -1 }},
		{"zero batch", func(p *Params) { p.Batch = 0 }},
		{"depthwise with wide group", func(p *Params) { p.Depthwise = true }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validParams()
			tt.mutate(&p)
			assert.Error(t, p.Validate())
		})
	}
}

// Row padding is not applied across batch stacking seams, so the combination
// is rejected at the host rather than silently corrected.
func TestValidate_BatchedRejectsRowPadding(t *testing.T) {
	p := validParams()
	p.Batch = 2
	p.PadY = 1
	err := p.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "y-padding")

	p.PadY = 0
	assert.NoError(t, p.Validate())
}

func TestGrid(t *testing.T) {
	p := validParams()
	x, y, z := p.Grid()
	assert.Equal(t, 4, x)
	assert.Equal(t, 2, y) // ceil(8/4)
	assert.Equal(t, 6, z)

	// A ragged column count still dispatches whole tiles.
	p.OutputColumns = 9
	_, y, _ = p.Grid()
	assert.Equal(t, 3, y)

	// Batching multiplies the row dimension.
	p.PadY = 0
	p.Batch = 3
	_, _, z = p.Grid()
	assert.Equal(t, 18, z)
}

func TestBatched(t *testing.T) {
	p := validParams()
	assert.False(t, p.Batched())
	p.Batch = 2
	assert.True(t, p.Batched())
}
