package cpu

import (
	"fmt"

	"github.com/arsalan1374/MemTorch/internal/tensor"
)

// Pad3D zero-pads the three spatial axes of a single input element.
//
// Input shape: [C, D0, D1, D2]
// Output shape: [C, D0+2*p0, D1+2*p1, D2+2*p2]
func (cpu *CPUBackend) Pad3D(input *tensor.RawTensor, padding [3]int) *tensor.RawTensor {
	shape := input.Shape()
	if len(shape) != 4 {
		panic(fmt.Sprintf("pad3d: input must be 4D [C,D0,D1,D2], got %dD", len(shape)))
	}
	for i, p := range padding {
		if p < 0 {
			panic(fmt.Sprintf("pad3d: padding must be >= 0, got %d (dim %d)", p, i))
		}
	}

	c := shape[0]
	in := [3]int{shape[1], shape[2], shape[3]}
	out := [3]int{in[0] + 2*padding[0], in[1] + 2*padding[1], in[2] + 2*padding[2]}

	result, err := tensor.NewRaw(tensor.Shape{c, out[0], out[1], out[2]}, input.DType(), cpu.device)
	if err != nil {
		panic(fmt.Sprintf("pad3d: %v", err))
	}

	switch input.DType() {
	case tensor.Float32:
		pad3dKernel(result.AsFloat32(), input.AsFloat32(), c, in, out, padding)
	case tensor.Float64:
		pad3dKernel(result.AsFloat64(), input.AsFloat64(), c, in, out, padding)
	default:
		panic(fmt.Sprintf("pad3d: unsupported dtype %s", input.DType()))
	}

	return result
}

// pad3dKernel copies the interior rows; the result buffer starts zeroed.
func pad3dKernel[T tensor.DType](dst, src []T, c int, in, out, padding [3]int) {
	for ch := 0; ch < c; ch++ {
		for d0 := 0; d0 < in[0]; d0++ {
			for d1 := 0; d1 < in[1]; d1++ {
				srcOff := ((ch*in[0]+d0)*in[1] + d1) * in[2]
				dstOff := ((ch*out[0]+d0+padding[0])*out[1]+d1+padding[1])*out[2] + padding[2]
				copy(dst[dstOff:dstOff+in[2]], src[srcOff:srcOff+in[2]])
			}
		}
	}
}
