//go:build windows

package webgpu

// WGSL compute shader for the packed-image convolution kernel. The shader
// text is assembled per variant: the depthwise/dense accumulation path and
// the batched/flat row mapping are fixed in the source so the compiled inner
// loops carry no variant branches, the same way a compile-time define would.

// convWorkgroupDim is the per-axis workgroup size for the 3D dispatch grid.
const convWorkgroupDim = 4

const convShaderHeader = `
struct Params {
    inputChannelsPerGroup: i32,
    totalInputChannels: i32,
    outputChannelsPerGroup: i32,
    totalOutputChannels: i32,
    outputColumns: i32,
    outputRows: i32,
    inputRows: i32,
    filterX: i32,
    filterY: i32,
    padX: i32,
    padY: i32,
    strideX: i32,
    strideY: i32,
    dilationX: i32,
    dilationY: i32,
    batch: i32,
    inputWidth: i32,
    inputHeight: i32,
    weightsWidth: i32,
    weightsHeight: i32,
    outputWidth: i32,
}

@group(0) @binding(0) var<storage, read> inputImage: array<vec4<f32>>;
@group(0) @binding(1) var<storage, read> weightsImage: array<vec4<f32>>;
@group(0) @binding(2) var<storage, read_write> outputImage: array<vec4<f32>>;
@group(0) @binding(3) var<uniform> params: Params;

// Nearest-neighbor, clamp-to-edge read. Out-of-range coordinates return the
// nearest edge texel, never zero; implicit padding relies on this.
fn sampleInput(x: i32, y: i32) -> vec4<f32> {
    let cx = clamp(x, 0, params.inputWidth - 1);
    let cy = clamp(y, 0, params.inputHeight - 1);
    return inputImage[cy * params.inputWidth + cx];
}

fn sampleWeights(x: i32, y: i32) -> vec4<f32> {
    let cx = clamp(x, 0, params.weightsWidth - 1);
    let cy = clamp(y, 0, params.weightsHeight - 1);
    return weightsImage[cy * params.weightsWidth + cx];
}

@compute @workgroup_size(4, 4, 4)
fn main(@builtin(global_invocation_id) gid: vec3<u32>) {
    let channel = i32(gid.x);
    let tile = i32(gid.y);
    let row = i32(gid.z);
    if (channel >= params.totalOutputChannels || tile * 4 >= params.outputColumns || row >= params.batch * params.outputRows) {
        return;
    }
`

const convShaderRowFlat = `
    var inputY = row * params.strideY - params.padY;
`

// Batched inputs stack images vertically; row padding is not applied across
// the stacking seams.
const convShaderRowBatched = `
    let batchIndex = row / params.outputRows;
    let rowWithinImage = row % params.outputRows;
    var inputY = rowWithinImage * params.strideY - params.padY + batchIndex * params.inputRows;
`

const convShaderSetup = `
    let group = channel / params.outputChannelsPerGroup;
    let startInputChannel = group * params.inputChannelsPerGroup;
    let tileStart = tile * 4;
    let startX = (tileStart * params.strideX - params.padX) * params.totalInputChannels + startInputChannel;
    let tapStep = params.strideX * params.totalInputChannels;
    let columnStep = params.dilationX * params.totalInputChannels;

    var acc: array<vec4<f32>, 4>;
    var weightX = 0;
`

const convShaderLoopDense = `
    for (var filterY = 0; filterY < params.filterY; filterY = filterY + 1) {
        for (var c = 0; c < params.inputChannelsPerGroup; c = c + 1) {
            for (var filterX = 0; filterX < params.filterX; filterX = filterX + 1) {
                var x = startX + c + filterX * columnStep;
                var in0: array<vec4<f32>, 4>;
                for (var i = 0; i < 4; i = i + 1) {
                    in0[i] = sampleInput(x, inputY);
                    x = x + tapStep;
                }
                let w0 = sampleWeights(weightX, channel);
                let w1 = sampleWeights(weightX + 1, channel);
                let w2 = sampleWeights(weightX + 2, channel);
                let w3 = sampleWeights(weightX + 3, channel);
                weightX = weightX + 4;
                for (var i = 0; i < 4; i = i + 1) {
                    acc[i] = acc[i] + vec4<f32>(dot(in0[i], w0), dot(in0[i], w1), dot(in0[i], w2), dot(in0[i], w3));
                }
            }
        }
        inputY = inputY + params.dilationY;
    }
`

const convShaderLoopDepthwise = `
    for (var filterY = 0; filterY < params.filterY; filterY = filterY + 1) {
        for (var filterX = 0; filterX < params.filterX; filterX = filterX + 1) {
            var x = startX + filterX * columnStep;
            let wt = sampleWeights(weightX, channel);
            weightX = weightX + 1;
            for (var i = 0; i < 4; i = i + 1) {
                acc[i] = acc[i] + sampleInput(x, inputY) * wt;
                x = x + tapStep;
            }
        }
        inputY = inputY + params.dilationY;
    }
`

const convShaderStore = `
    for (var i = 0; i < 4; i = i + 1) {
        let column = tileStart + i;
        if (column < params.outputColumns) {
            outputImage[row * params.outputWidth + column * params.totalOutputChannels + channel] = acc[i];
        }
    }
}
`

// convShaderName returns the cache key for a variant.
func convShaderName(depthwise, batched bool) string {
	name := "conv"
	if depthwise {
		name += "_depthwise"
	}
	if batched {
		name += "_batched"
	}
	return name
}

// convShaderSource assembles the WGSL source for a variant.
func convShaderSource(depthwise, batched bool) string {
	src := convShaderHeader
	if batched {
		src += convShaderRowBatched
	} else {
		src += convShaderRowFlat
	}
	src += convShaderSetup
	if depthwise {
		src += convShaderLoopDepthwise
	} else {
		src += convShaderLoopDense
	}
	return src + convShaderStore
}
