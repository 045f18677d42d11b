package webgpu

import (
	"encoding/binary"
	"fmt"
	"unsafe"

	"github.com/go-webgpu/webgpu/wgpu"
	"github.com/rs/zerolog/log"

	"github.com/born-ml/ufunc/internal/array"
	"github.com/born-ml/ufunc/internal/metrics"
	"github.com/born-ml/ufunc/internal/parallel"
	"github.com/born-ml/ufunc/internal/ufunc"
)

// Execute runs k on the GPU: inputs are staged to device storage buffers
// (broadcast-expanded and widened on the host where needed), the cached
// pipeline for the kernel signature is dispatched over the flat output
// index space, and the result is read back into out.
func (b *Backend) Execute(k *ufunc.Kernel, inputs []*array.Raw, out *array.Raw, plan *array.Plan) error {
	numElements := plan.NumElements()
	if numElements == 0 {
		return nil
	}

	p, err := b.getOrCompile(k)
	if err != nil {
		return err
	}

	// Stage inputs to device.
	sig := k.Signature()
	buffers := make([]*wgpu.Buffer, 0, len(inputs)+2)
	defer func() {
		for _, buf := range buffers {
			buf.Release()
		}
	}()

	entries := make([]wgpu.BindGroupEntry, 0, len(inputs)+2)
	for i, in := range inputs {
		staged := stageInput(in, sig.Params[i], plan, i)
		buf := b.createBuffer(staged, wgpu.BufferUsageStorage|wgpu.BufferUsageCopySrc)
		buffers = append(buffers, buf)
		//nolint:gosec // G115: buffer sizes are non-negative
		entries = append(entries, wgpu.BufferBindingEntry(uint32(i), buf, 0, uint64(len(staged))))
	}

	//nolint:gosec // G115: ByteSize() returns a non-negative int
	resultSize := uint64(out.ByteSize())
	bufferResult := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Usage: wgpu.BufferUsageStorage | wgpu.BufferUsageCopySrc | wgpu.BufferUsageCopyDst,
		Size:  resultSize,
	})
	buffers = append(buffers, bufferResult)
	//nolint:gosec // G115: arity is small
	entries = append(entries, wgpu.BufferBindingEntry(uint32(len(inputs)), bufferResult, 0, resultSize))

	params := make([]byte, 16) // uniform buffers want 16-byte alignment
	//nolint:gosec // G115: NumElements() returns a non-negative int
	binary.LittleEndian.PutUint32(params[0:4], uint32(numElements))
	bufferParams := b.createUniformBuffer(params)
	buffers = append(buffers, bufferParams)
	//nolint:gosec // G115: arity is small
	entries = append(entries, wgpu.BufferBindingEntry(uint32(len(inputs)+1), bufferParams, 0, 16))

	bindGroupLayout := p.compute.GetBindGroupLayout(0)
	bindGroup := b.device.CreateBindGroupSimple(bindGroupLayout, entries)
	defer bindGroup.Release()

	// Launch one thread per output coordinate.
	encoder := b.device.CreateCommandEncoder(nil)
	computePass := encoder.BeginComputePass(nil)
	computePass.SetPipeline(p.compute)
	computePass.SetBindGroup(0, bindGroup, nil)
	//nolint:gosec // G115: workgroup count is non-negative
	workgroups := uint32((numElements + workgroupSize - 1) / workgroupSize)
	computePass.DispatchWorkgroups(workgroups, 1, 1)
	computePass.End()

	cmdBuffer := encoder.Finish(nil)
	b.queue.Submit(cmdBuffer)

	// Retrieve the output back to host memory.
	resultData, err := b.readBuffer(bufferResult, resultSize)
	if err != nil {
		return fmt.Errorf("%s: %w", k.Name(), err)
	}
	copy(out.Bytes(), resultData)

	return nil
}

// getOrCompile returns the cached pipeline for k's signature, compiling
// it on first use. Concurrent first dispatches of the same signature are
// coalesced into a single build.
func (b *Backend) getOrCompile(k *ufunc.Kernel) (*pipeline, error) {
	key := k.CacheKey()

	b.mu.RLock()
	p, exists := b.pipelines[key]
	b.mu.RUnlock()
	if exists {
		metrics.CompileCacheHits.Inc()
		return p, nil
	}

	v, err, _ := b.group.Do(key, func() (any, error) {
		// Another dispatch may have won the race before this call joined.
		b.mu.RLock()
		p, exists := b.pipelines[key]
		b.mu.RUnlock()
		if exists {
			return p, nil
		}
		metrics.CompileCacheMisses.Inc()

		code, err := buildShader(k)
		if err != nil {
			return nil, err
		}

		shader := b.device.CreateShaderModuleWGSL(code)
		compute := b.device.CreateComputePipelineSimple(nil, shader, "main")
		p = &pipeline{shader: shader, compute: compute}

		b.mu.Lock()
		b.pipelines[key] = p
		b.mu.Unlock()

		log.Debug().Str("kernel", k.Name()).Str("signature", k.Signature().String()).
			Msg("compiled accelerator pipeline")
		return p, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*pipeline), nil
}

// stageInput prepares input j's bytes for the device: a contiguous buffer
// with one element per output coordinate, in the kernel's declared
// parameter type. Inputs that already match the output shape and the
// parameter type are staged as-is; anything else is gathered through the
// broadcast plan and widened element by element.
func stageInput(in *array.Raw, param array.DataType, plan *array.Plan, j int) []byte {
	if in.DType() == param && in.Shape().Equal(plan.OutShape()) {
		return in.Bytes()
	}

	tmp, err := array.NewRaw(plan.OutShape(), param, array.CPU)
	if err != nil {
		panic(err) // plan shape was already validated
	}
	parallel.For(plan.NumElements(), func(i int) {
		tmp.SetItem(i, in.Item(plan.Index(i, j), param))
	}, parallel.DefaultConfig())
	return tmp.Bytes()
}

// createBuffer creates a GPU storage buffer and uploads initial data.
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
	alignedSize := (size + 15) &^ 15

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
