package webgpu

import (
	"fmt"
	"strings"

	"github.com/born-ml/ufunc/internal/array"
	"github.com/born-ml/ufunc/internal/ufunc"
)

// workgroupSize is the number of threads per workgroup.
const workgroupSize = 256

// wgslType maps an element type to its WGSL scalar type. WGSL has no
// 16/64-bit numeric storage types, so the accelerator accepts Int32 and
// Float32 only.
func wgslType(dt array.DataType) (string, error) {
	switch dt {
	case array.Int32:
		return "i32", nil
	case array.Float32:
		return "f32", nil
	default:
		return "", fmt.Errorf("webgpu: element type %s is not supported on the accelerator (only int32 and float32)", dt)
	}
}

// buildShader generates an elementwise compute shader for a kernel. The
// kernel's device expression sees its scalar parameters as x0..xN-1;
// every thread computes one output element.
//
// Example output for add(float32, float32) -> float32 with expression
// "x0 + x1":
//
//	@group(0) @binding(0) var<storage, read> in0: array<f32>;
//	@group(0) @binding(1) var<storage, read> in1: array<f32>;
//	@group(0) @binding(2) var<storage, read_write> result: array<f32>;
//	...
//	result[idx] = x0 + x1;
func buildShader(k *ufunc.Kernel) (string, error) {
	expr := k.WGSL()
	if expr == "" {
		return "", fmt.Errorf("webgpu: kernel %q has no device expression; attach one with WithWGSL", k.Name())
	}

	sig := k.Signature()
	retType, err := wgslType(sig.Return)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	for i, p := range sig.Params {
		t, err := wgslType(p)
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&b, "@group(0) @binding(%d) var<storage, read> in%d: array<%s>;\n", i, i, t)
	}
	n := sig.Arity()
	fmt.Fprintf(&b, "@group(0) @binding(%d) var<storage, read_write> result: array<%s>;\n", n, retType)
	fmt.Fprintf(&b, `
struct Params {
    size: u32,
}
@group(0) @binding(%d) var<uniform> params: Params;

@compute @workgroup_size(%d)
fn main(@builtin(global_invocation_id) global_id: vec3<u32>) {
    let idx = global_id.x;
    if (idx >= params.size) {
        return;
    }
`, n+1, workgroupSize)
	for i, p := range sig.Params {
		t, _ := wgslType(p)
		fmt.Fprintf(&b, "    let x%d: %s = in%d[idx];\n", i, t, i)
	}
	fmt.Fprintf(&b, "    result[idx] = %s;\n}\n", expr)

	return b.String(), nil
}
