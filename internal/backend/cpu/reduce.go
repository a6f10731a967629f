package cpu

import (
	"fmt"

	"github.com/arsalan1374/MemTorch/internal/tensor"
)

// Sum computes the total sum of all elements in the tensor (scalar result).
func (cpu *CPUBackend) Sum(x *tensor.RawTensor) *tensor.RawTensor {
	result, err := tensor.NewRaw(tensor.Shape{}, x.DType(), cpu.device)
	if err != nil {
		panic(fmt.Sprintf("sum: %v", err))
	}

	switch x.DType() {
	case tensor.Float32:
		result.AsFloat32()[0] = sumKernel(x.AsFloat32())
	case tensor.Float64:
		result.AsFloat64()[0] = sumKernel(x.AsFloat64())
	default:
		panic(fmt.Sprintf("sum: unsupported dtype %s", x.DType()))
	}

	return result
}

func sumKernel[T tensor.DType](src []T) T {
	var sum T
	for _, v := range src {
		sum += v
	}
	return sum
}

// MinMax returns the smallest and largest element of the tensor.
// The voltage encoding step reads both bounds in one pass.
func (cpu *CPUBackend) MinMax(x *tensor.RawTensor) (float64, float64) {
	switch x.DType() {
	case tensor.Float32:
		lo, hi := minMaxKernel(x.AsFloat32())
		return float64(lo), float64(hi)
	case tensor.Float64:
		return minMaxKernel(x.AsFloat64())
	default:
		panic(fmt.Sprintf("minmax: unsupported dtype %s", x.DType()))
	}
}

func minMaxKernel[T tensor.DType](src []T) (T, T) {
	lo, hi := src[0], src[0]
	for _, v := range src[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi
}
