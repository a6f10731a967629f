package cpu

import (
	"fmt"

	"github.com/arsalan1374/MemTorch/internal/tensor"
)

// Scalar operations: element-wise arithmetic against a single value.

// AddScalar adds a scalar value to each element of the tensor.
func (cpu *CPUBackend) AddScalar(x *tensor.RawTensor, scalar any) *tensor.RawTensor {
	return cpu.scalarOp(x, scalar, addOp, "addScalar")
}

// SubScalar subtracts a scalar value from each element of the tensor.
func (cpu *CPUBackend) SubScalar(x *tensor.RawTensor, scalar any) *tensor.RawTensor {
	return cpu.scalarOp(x, scalar, subOp, "subScalar")
}

// MulScalar multiplies each element of the tensor by a scalar value.
func (cpu *CPUBackend) MulScalar(x *tensor.RawTensor, scalar any) *tensor.RawTensor {
	return cpu.scalarOp(x, scalar, mulOp, "mulScalar")
}

// DivScalar divides each element of the tensor by a scalar value.
func (cpu *CPUBackend) DivScalar(x *tensor.RawTensor, scalar any) *tensor.RawTensor {
	return cpu.scalarOp(x, scalar, divOp, "divScalar")
}

func (cpu *CPUBackend) scalarOp(x *tensor.RawTensor, scalar any, op binOp, name string) *tensor.RawTensor {
	result := newResult(x.Shape(), x, name)

	switch x.DType() {
	case tensor.Float32:
		scalarKernel(result.AsFloat32(), x.AsFloat32(), toScalar[float32](scalar, name), op)
	case tensor.Float64:
		scalarKernel(result.AsFloat64(), x.AsFloat64(), toScalar[float64](scalar, name), op)
	default:
		panic(fmt.Sprintf("%s: unsupported dtype %v", name, x.DType()))
	}

	return result
}

func scalarKernel[T tensor.DType](dst, src []T, s T, op binOp) {
	switch op {
	case addOp:
		for i := range src {
			dst[i] = src[i] + s
		}
	case subOp:
		for i := range src {
			dst[i] = src[i] - s
		}
	case mulOp:
		for i := range src {
			dst[i] = src[i] * s
		}
	case divOp:
		for i := range src {
			dst[i] = src[i] / s
		}
	}
}

// toScalar coerces the scalar argument to the tensor's element type.
func toScalar[T tensor.DType](scalar any, op string) T {
	switch v := scalar.(type) {
	case float32:
		return T(v)
	case float64:
		return T(v)
	case int:
		return T(v)
	default:
		panic(fmt.Sprintf("%s: unsupported scalar type %T", op, scalar))
	}
}
