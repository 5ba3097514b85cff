package conv

import "github.com/terribond568545/tinygrad/internal/image"

// Unit identifies one work unit of the dispatch grid.
type Unit struct {
	Channel int // packed output channel index
	Tile    int // output column tile index
	Row     int // output row index; spans all stacked images when batched
}

// Program is a convolution compiled for one Params value. Build selects the
// depthwise/dense accumulation path and the batched/flat row mapping once, so
// Run's inner loops carry no variant branches.
//
// A Program is stateless across Run calls and safe for concurrent use.
type Program struct {
	params   Params
	epilogue Epilogue
	run      func(pr *Program, input, weights, output image.Texture, u Unit)
	inputY   func(p *Params, row int) int
}

// Build compiles p into a Program. The epilogue may be nil for a plain store.
// Build assumes p has been validated by the host; it performs no checks of
// its own.
func Build(p Params, epilogue Epilogue) *Program {
	pr := &Program{params: p, epilogue: epilogue}
	if p.Depthwise {
		pr.run = runDepthwise
	} else {
		pr.run = runDense
	}
	if p.Batched() {
		pr.inputY = inputYBatched
	} else {
		pr.inputY = inputYFlat
	}
	return pr
}

// Params returns the configuration the program was built for.
func (pr *Program) Params() Params { return pr.params }

// Run executes one work unit: it accumulates a tile of four consecutive
// output columns for u's channel and row, applies the epilogue, and stores
// the in-range lanes.
func (pr *Program) Run(input, weights, output image.Texture, u Unit) {
	pr.run(pr, input, weights, output, u)
}

func inputYFlat(p *Params, row int) int {
	return row*p.StrideY - p.PadY
}

// inputYBatched splits the grid row into an image row and a batch index and
// offsets the input origin by whole stacked images. Row padding is not
// applied across the stacking seams; Params.Validate rejects the combination.
func inputYBatched(p *Params, row int) int {
	rowWithinImage := row % p.OutputRows
	batchIndex := row / p.OutputRows
	return rowWithinImage*p.StrideY - p.PadY + batchIndex*p.InputRows
}

// runDense accumulates with full channel mixing: four weight texels per tap,
// one per scalar channel of the packed output channel, combined by dot
// product.
func runDense(pr *Program, input, weights, output image.Texture, u Unit) {
	p := &pr.params
	group := u.Channel / p.OutputChannelsPerGroup
	startInputChannel := group * p.InputChannelsPerGroup
	tileStart := u.Tile * TileWidth
	startX := (tileStart*p.StrideX-p.PadX)*p.TotalInputChannels + startInputChannel
	tapStep := p.StrideX * p.TotalInputChannels
	columnStep := p.DilationX * p.TotalInputChannels

	var acc [TileWidth]image.Vec4
	inputY := pr.inputY(p, u.Row)
	weightX := 0 // monotonic weight cursor, one row per packed output channel

	for filterY := 0; filterY < p.FilterY; filterY++ {
		for channel := 0; channel < p.InputChannelsPerGroup; channel++ {
			for filterX := 0; filterX < p.FilterX; filterX++ {
				x := startX + channel + filterX*columnStep
				var in [TileWidth]image.Vec4
				for i := range in {
					in[i] = input.Sample(x, inputY)
					x += tapStep
				}
				var wt [image.Vecs]image.Vec4
				for c := range wt {
					wt[c] = weights.Sample(weightX, u.Channel)
					weightX++
				}
				for i := range in {
					acc[i][0] += in[i].Dot(wt[0])
					acc[i][1] += in[i].Dot(wt[1])
					acc[i][2] += in[i].Dot(wt[2])
					acc[i][3] += in[i].Dot(wt[3])
				}
			}
		}
		inputY += p.DilationY
	}
	pr.store(output, u, tileStart, &acc)
}

// runDepthwise accumulates without channel mixing: one weight texel per tap,
// multiplied elementwise. Each packed output channel reads exactly its
// corresponding packed input channel.
func runDepthwise(pr *Program, input, weights, output image.Texture, u Unit) {
	p := &pr.params
	group := u.Channel / p.OutputChannelsPerGroup
	startInputChannel := group * p.InputChannelsPerGroup
	tileStart := u.Tile * TileWidth
	startX := (tileStart*p.StrideX-p.PadX)*p.TotalInputChannels + startInputChannel
	tapStep := p.StrideX * p.TotalInputChannels
	columnStep := p.DilationX * p.TotalInputChannels

	var acc [TileWidth]image.Vec4
	inputY := pr.inputY(p, u.Row)
	weightX := 0

	for filterY := 0; filterY < p.FilterY; filterY++ {
		for filterX := 0; filterX < p.FilterX; filterX++ {
			x := startX + filterX*columnStep
			var in [TileWidth]image.Vec4
			for i := range in {
				in[i] = input.Sample(x, inputY)
				x += tapStep
			}
			wt := weights.Sample(weightX, u.Channel)
			weightX++
			for i := range in {
				acc[i] = acc[i].MulAdd(in[i], wt)
			}
		}
		inputY += p.DilationY
	}
	pr.store(output, u, tileStart, &acc)
}

// store applies the epilogue and writes the tile. A lane is written only when
// its absolute column is below OutputColumns; out-of-range lanes are skipped
// entirely, never clamped. This is the kernel's only bounds check.
func (pr *Program) store(output image.Texture, u Unit, tileStart int, acc *[TileWidth]image.Vec4) {
	if pr.epilogue != nil {
		pr.epilogue(u.Channel, acc)
	}
	p := &pr.params
	for i := 0; i < TileWidth; i++ {
		column := tileStart + i
		if column < p.OutputColumns {
			output.Store(column*p.TotalOutputChannels+u.Channel, u.Row, acc[i])
		}
	}
}
