package cpu

import (
	"fmt"

	"github.com/arsalan1374/MemTorch/internal/tensor"
)

// Unfold3D extracts sliding 3D patches from a single input element.
//
// Input shape: [C, D0, D1, D2]
// Output shape: [positions, C*K0*K1*K2], positions iterating the valid
// placements in row-major (d0, d1, d2) order.
//
// Padding is not applied here; pad with Pad3D first. Each output row is
// the flattened read vector one crossbar operation consumes.
func (cpu *CPUBackend) Unfold3D(input *tensor.RawTensor, kernelSize, stride [3]int) *tensor.RawTensor {
	shape := input.Shape()
	if len(shape) != 4 {
		panic(fmt.Sprintf("unfold3d: input must be 4D [C,D0,D1,D2], got %dD", len(shape)))
	}

	c := shape[0]
	in := [3]int{shape[1], shape[2], shape[3]}

	var out [3]int
	for i := 0; i < 3; i++ {
		if kernelSize[i] < 1 {
			panic(fmt.Sprintf("unfold3d: kernel size must be >= 1, got %d (dim %d)", kernelSize[i], i))
		}
		if stride[i] < 1 {
			panic(fmt.Sprintf("unfold3d: stride must be >= 1, got %d (dim %d)", stride[i], i))
		}
		if kernelSize[i] > in[i] {
			panic(fmt.Sprintf("unfold3d: kernel size %d exceeds input size %d (dim %d)", kernelSize[i], in[i], i))
		}
		out[i] = (in[i]-kernelSize[i])/stride[i] + 1
	}

	positions := out[0] * out[1] * out[2]
	colWidth := c * kernelSize[0] * kernelSize[1] * kernelSize[2]

	result, err := tensor.NewRaw(tensor.Shape{positions, colWidth}, input.DType(), cpu.device)
	if err != nil {
		panic(fmt.Sprintf("unfold3d: %v", err))
	}

	// A single unpadded element is the batch-1 im2col case.
	switch input.DType() {
	case tensor.Float32:
		im2col3d(result.AsFloat32(), input.AsFloat32(), 1, c, in, kernelSize, out, stride, [3]int{})
	case tensor.Float64:
		im2col3d(result.AsFloat64(), input.AsFloat64(), 1, c, in, kernelSize, out, stride, [3]int{})
	default:
		panic(fmt.Sprintf("unfold3d: unsupported dtype %s", input.DType()))
	}

	return result
}
