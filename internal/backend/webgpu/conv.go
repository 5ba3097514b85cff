//go:build windows

package webgpu

import (
	"encoding/binary"
	"fmt"
	"unsafe"

	"github.com/go-webgpu/webgpu/wgpu"

	"github.com/terribond568545/tinygrad/internal/conv"
	"github.com/terribond568545/tinygrad/internal/image"
)

// Conv convolves input with weights under p on the GPU. It validates p,
// selects the shader variant for p's mode flags, dispatches the full grid,
// and reads the output image back.
func (b *Backend) Conv(input, weights *image.Image, p conv.Params) (*image.Image, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return b.runConv(input, weights, p)
}

func (b *Backend) runConv(input, weights *image.Image, p conv.Params) (*image.Image, error) {
	name := convShaderName(p.Depthwise, p.Batched())
	shader := b.compileShader(name, convShaderSource(p.Depthwise, p.Batched()))
	pipeline := b.getOrCreatePipeline(name, shader)

	outputWidth := p.OutputColumns * p.TotalOutputChannels
	outputHeight := p.Batch * p.OutputRows

	// Create GPU buffers.
	bufferInput := b.createBuffer(floatBytes(input.Data()), wgpu.BufferUsageStorage|wgpu.BufferUsageCopySrc)
	defer bufferInput.Release()

	bufferWeights := b.createBuffer(floatBytes(weights.Data()), wgpu.BufferUsageStorage|wgpu.BufferUsageCopySrc)
	defer bufferWeights.Release()

	//nolint:gosec // G115: Safe conversion, image extents are non-negative
	resultSize := uint64(outputWidth * outputHeight * image.Vecs * 4)
	bufferOutput := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Usage: wgpu.BufferUsageStorage | wgpu.BufferUsageCopySrc | wgpu.BufferUsageCopyDst,
		Size:  resultSize,
	})
	defer bufferOutput.Release()

	bufferParams := b.createUniformBuffer(encodeConvParams(p, input, weights, outputWidth))
	defer bufferParams.Release()

	// Bind and dispatch one invocation per work unit of the 3D grid.
	bindGroupLayout := pipeline.GetBindGroupLayout(0)
	//nolint:gosec // G115: Safe conversions, buffer sizes are non-negative
	bindGroup := b.device.CreateBindGroupSimple(bindGroupLayout, []wgpu.BindGroupEntry{
		wgpu.BufferBindingEntry(0, bufferInput, 0, uint64(len(input.Data())*4)),
		wgpu.BufferBindingEntry(1, bufferWeights, 0, uint64(len(weights.Data())*4)),
		wgpu.BufferBindingEntry(2, bufferOutput, 0, resultSize),
		wgpu.BufferBindingEntry(3, bufferParams, 0, convParamsSize),
	})
	defer bindGroup.Release()

	encoder := b.device.CreateCommandEncoder(nil)
	computePass := encoder.BeginComputePass(nil)

	computePass.SetPipeline(pipeline)
	computePass.SetBindGroup(0, bindGroup, nil)

	gridX, gridY, gridZ := p.Grid()
	//nolint:gosec // G115: Safe conversions, workgroup counts are non-negative
	computePass.DispatchWorkgroups(
		uint32((gridX+convWorkgroupDim-1)/convWorkgroupDim),
		uint32((gridY+convWorkgroupDim-1)/convWorkgroupDim),
		uint32((gridZ+convWorkgroupDim-1)/convWorkgroupDim),
	)
	computePass.End()

	cmdBuffer := encoder.Finish(nil)
	b.queue.Submit(cmdBuffer)

	resultData, err := b.readBuffer(bufferOutput, resultSize)
	if err != nil {
		return nil, err
	}

	result := image.New(outputWidth, outputHeight)
	copy(result.Data(), bytesFloats(resultData))
	return result, nil
}

// convParamsSize is the byte size of the shader's uniform Params block:
// 21 i32 fields padded to a 16-byte boundary.
const convParamsSize = 96

// encodeConvParams packs the uniform Params block in shader field order.
func encodeConvParams(p conv.Params, input, weights *image.Image, outputWidth int) []byte {
	fields := []int{
		p.InputChannelsPerGroup,
		p.TotalInputChannels,
		p.OutputChannelsPerGroup,
		p.TotalOutputChannels,
		p.OutputColumns,
		p.OutputRows,
		p.InputRows,
		p.FilterX,
		p.FilterY,
		p.PadX,
		p.PadY,
		p.StrideX,
		p.StrideY,
		p.DilationX,
		p.DilationY,
		p.Batch,
		input.Width(),
		input.Height(),
		weights.Width(),
		weights.Height(),
		outputWidth,
	}
	buf := make([]byte, convParamsSize)
	for i, v := range fields {
		//nolint:gosec // G115: Safe conversion, all parameters fit in int32
		binary.LittleEndian.PutUint32(buf[i*4:], uint32(int32(v)))
	}
	return buf
}

// createBuffer creates a GPU buffer and uploads initial data.
func (b *Backend) createBuffer(data []byte, usage wgpu.BufferUsage) *wgpu.Buffer {
	size := uint64(len(data))

	buffer := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Usage:            usage,
		Size:             size,
		MappedAtCreation: wgpu.True,
	})

	mappedPtr := buffer.GetMappedRange(0, size)
	//nolint:gosec // unsafe.Slice for zero-copy conversion from unsafe.Pointer
	mappedSlice := unsafe.Slice((*byte)(mappedPtr), size)
	copy(mappedSlice, data)
	buffer.Unmap()

	return buffer
}

// createUniformBuffer creates a uniform buffer with proper alignment.
// Uniform buffers require 16-byte alignment for struct fields.
func (b *Backend) createUniformBuffer(data []byte) *wgpu.Buffer {
	size := uint64(len(data))
	alignedSize := (size + 15) &^ 15 // Round up to 16-byte boundary

	buffer := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Usage:            wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
		Size:             alignedSize,
		MappedAtCreation: wgpu.True,
	})

	mappedPtr := buffer.GetMappedRange(0, alignedSize)
	//nolint:gosec // unsafe.Slice for zero-copy conversion from unsafe.Pointer
	mappedSlice := unsafe.Slice((*byte)(mappedPtr), alignedSize)
	copy(mappedSlice, data)
	buffer.Unmap()

	return buffer
}

// readBuffer reads data back from a GPU buffer to CPU memory.
// Uses a staging buffer since storage buffers can't be mapped directly.
func (b *Backend) readBuffer(srcBuffer *wgpu.Buffer, size uint64) ([]byte, error) {
	stagingBuffer := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Usage: wgpu.BufferUsageMapRead | wgpu.BufferUsageCopyDst,
		Size:  size,
	})
	defer stagingBuffer.Release()

	encoder := b.device.CreateCommandEncoder(nil)
	encoder.CopyBufferToBuffer(srcBuffer, 0, stagingBuffer, 0, size)
	cmdBuffer := encoder.Finish(nil)
	b.queue.Submit(cmdBuffer)

	err := stagingBuffer.MapAsync(b.device, wgpu.MapModeRead, 0, size)
	if err != nil {
		return nil, fmt.Errorf("failed to map staging buffer: %w", err)
	}

	mappedPtr := stagingBuffer.GetMappedRange(0, size)
	//nolint:gosec // unsafe.Slice for zero-copy conversion from unsafe.Pointer
	mappedSlice := unsafe.Slice((*byte)(mappedPtr), size)
	result := make([]byte, size)
	copy(result, mappedSlice)

	stagingBuffer.Unmap()

	return result, nil
}

// floatBytes reinterprets a float32 slice as bytes without copying.
func floatBytes(data []float32) []byte {
	if len(data) == 0 {
		return nil
	}
	//nolint:gosec // unsafe.Slice for zero-copy reinterpretation
	return unsafe.Slice((*byte)(unsafe.Pointer(&data[0])), len(data)*4)
}

// bytesFloats reinterprets a byte slice as float32s without copying.
func bytesFloats(data []byte) []float32 {
	if len(data) == 0 {
		return nil
	}
	//nolint:gosec // unsafe.Slice for zero-copy reinterpretation
	return unsafe.Slice((*float32)(unsafe.Pointer(&data[0])), len(data)/4)
}
