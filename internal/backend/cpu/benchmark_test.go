package cpu

import (
	"testing"

	"github.com/terribond568545/tinygrad/internal/conv"
	"github.com/terribond568545/tinygrad/internal/image"
	"github.com/terribond568545/tinygrad/internal/parallel"
)

func benchParams(depthwise bool) conv.Params {
	icg := 4
	if depthwise {
		icg = 1
	}
	return conv.Params{
		InputChannelsPerGroup:  icg,
		TotalInputChannels:     8,
		OutputChannelsPerGroup: 8,
		TotalOutputChannels:    8,
		OutputColumns:          64,
		OutputRows:             64,
		InputRows:              66,
		FilterX:                3, FilterY: 3,
		PadX: 1, PadY: 1,
		StrideX: 1, StrideY: 1,
		DilationX: 1, DilationY: 1,
		Depthwise: depthwise,
		Batch:     1,
	}
}

func BenchmarkConv(b *testing.B) {
	for _, depthwise := range []bool{false, true} {
		p := benchParams(depthwise)
		input := image.New(66*p.TotalInputChannels, p.InputRows)
		var weights *image.Image
		if depthwise {
			weights = image.New(p.FilterX*p.FilterY, p.TotalOutputChannels)
		} else {
			weights = image.New(p.FilterX*p.FilterY*p.InputChannelsPerGroup*image.Vecs, p.TotalOutputChannels)
		}

		name := "dense"
		if depthwise {
			name = "depthwise"
		}

		b.Run(name+"/parallel", func(b *testing.B) {
			backend := New()
			for i := 0; i < b.N; i++ {
				if _, err := backend.Conv(input, weights, p); err != nil {
					b.Fatal(err)
				}
			}
		})

		b.Run(name+"/sequential", func(b *testing.B) {
			backend := NewWithConfig(parallel.Config{Enabled: false})
			for i := 0; i < b.N; i++ {
				if _, err := backend.Conv(input, weights, p); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
