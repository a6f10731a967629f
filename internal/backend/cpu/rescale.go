package cpu

import (
	"fmt"

	"github.com/arsalan1374/MemTorch/internal/tensor"
)

// Rescale linearly maps elements from [oldMin, oldMax] onto
// [newMin, newMax]. This is the read-voltage encoding: activations are
// rescaled onto the signal range the crossbar drives on its bitlines.
//
// A degenerate source range (oldMax == oldMin) maps everything to the
// midpoint of the target range.
func (cpu *CPUBackend) Rescale(x *tensor.RawTensor, oldMin, oldMax, newMin, newMax float64) *tensor.RawTensor {
	result := newResult(x.Shape(), x, "rescale")

	switch x.DType() {
	case tensor.Float32:
		rescaleKernel(result.AsFloat32(), x.AsFloat32(), oldMin, oldMax, newMin, newMax)
	case tensor.Float64:
		rescaleKernel(result.AsFloat64(), x.AsFloat64(), oldMin, oldMax, newMin, newMax)
	default:
		panic(fmt.Sprintf("rescale: unsupported dtype %s", x.DType()))
	}

	return result
}

func rescaleKernel[T tensor.DType](dst, src []T, oldMin, oldMax, newMin, newMax float64) {
	if oldMax == oldMin {
		mid := T((newMin + newMax) / 2)
		for i := range src {
			dst[i] = mid
		}
		return
	}

	scale := (newMax - newMin) / (oldMax - oldMin)
	for i := range src {
		dst[i] = T((float64(src[i])-oldMin)*scale + newMin)
	}
}
