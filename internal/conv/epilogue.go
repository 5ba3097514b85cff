package conv

import "github.com/terribond568545/tinygrad/internal/image"

// Epilogue is the post-accumulation extension point: a transform applied to
// the four accumulator texels of a work unit after the tap loops complete and
// before the write stage. The packed output channel index is passed so
// per-channel transforms like bias addition can select their operand.
type Epilogue func(channel int, acc *[TileWidth]image.Vec4)

// Bias returns an epilogue adding bias[channel] to every tile lane. The slice
// holds one texel per packed output channel.
func Bias(bias []image.Vec4) Epilogue {
	return func(channel int, acc *[TileWidth]image.Vec4) {
		b := bias[channel]
		for i := range acc {
			acc[i] = acc[i].Add(b)
		}
	}
}

// ReLU returns an epilogue clamping every accumulated channel value at zero.
func ReLU() Epilogue {
	return func(_ int, acc *[TileWidth]image.Vec4) {
		for i := range acc {
			for c := range acc[i] {
				if acc[i][c] < 0 {
					acc[i][c] = 0
				}
			}
		}
	}
}

// Chain composes epilogues left to right.
func Chain(epilogues ...Epilogue) Epilogue {
	return func(channel int, acc *[TileWidth]image.Vec4) {
		for _, e := range epilogues {
			e(channel, acc)
		}
	}
}
