package cpu

import (
	"github.com/arsalan1374/MemTorch/internal/tensor"
)

// binOp selects the arithmetic op for the shared element-wise kernels.
type binOp int

const (
	addOp binOp = iota
	subOp
	mulOp
	divOp
)

// binopInplace performs a op= b.
// Requires: a.Shape().Equal(b.Shape()) && a.IsUnique().
func binopInplace(a, b *tensor.RawTensor, op binOp) {
	switch a.DType() {
	case tensor.Float32:
		inplaceKernel(a.AsFloat32(), b.AsFloat32(), op)
	case tensor.Float64:
		inplaceKernel(a.AsFloat64(), b.AsFloat64(), op)
	default:
		panic("binop: unsupported dtype")
	}
}

// binopVectorized performs result = a op b over equal shapes.
func binopVectorized(result, a, b *tensor.RawTensor, op binOp) {
	switch a.DType() {
	case tensor.Float32:
		vectorizedKernel(result.AsFloat32(), a.AsFloat32(), b.AsFloat32(), op)
	case tensor.Float64:
		vectorizedKernel(result.AsFloat64(), a.AsFloat64(), b.AsFloat64(), op)
	default:
		panic("binop: unsupported dtype")
	}
}

// binopBroadcast performs result = a op b with NumPy-style broadcasting.
func binopBroadcast(result, a, b *tensor.RawTensor, outShape tensor.Shape, op binOp) {
	switch a.DType() {
	case tensor.Float32:
		broadcastKernel(result.AsFloat32(), a.AsFloat32(), b.AsFloat32(), a.Shape(), b.Shape(), outShape, op)
	case tensor.Float64:
		broadcastKernel(result.AsFloat64(), a.AsFloat64(), b.AsFloat64(), a.Shape(), b.Shape(), outShape, op)
	default:
		panic("binop: unsupported dtype")
	}
}

// inplaceKernel keeps the op switch outside the loop; this is the hot
// path for same-shape arithmetic.
func inplaceKernel[T tensor.DType](a, b []T, op binOp) {
	switch op {
	case addOp:
		for i := range a {
			a[i] += b[i]
		}
	case subOp:
		for i := range a {
			a[i] -= b[i]
		}
	case mulOp:
		for i := range a {
			a[i] *= b[i]
		}
	case divOp:
		for i := range a {
			a[i] /= b[i]
		}
	}
}

func vectorizedKernel[T tensor.DType](dst, a, b []T, op binOp) {
	switch op {
	case addOp:
		for i := range a {
			dst[i] = a[i] + b[i]
		}
	case subOp:
		for i := range a {
			dst[i] = a[i] - b[i]
		}
	case mulOp:
		for i := range a {
			dst[i] = a[i] * b[i]
		}
	case divOp:
		for i := range a {
			dst[i] = a[i] / b[i]
		}
	}
}

// broadcastKernel is the slow path: per-element index translation
// through broadcast-adjusted strides.
func broadcastKernel[T tensor.DType](dst, a, b []T, aShape, bShape, outShape tensor.Shape, op binOp) {
	outStrides := outShape.ComputeStrides()
	aStrides := broadcastStrides(aShape, outShape)
	bStrides := broadcastStrides(bShape, outShape)

	n := outShape.NumElements()
	for i := 0; i < n; i++ {
		av := a[sourceIndex(i, outStrides, aStrides)]
		bv := b[sourceIndex(i, outStrides, bStrides)]
		switch op {
		case addOp:
			dst[i] = av + bv
		case subOp:
			dst[i] = av - bv
		case mulOp:
			dst[i] = av * bv
		case divOp:
			dst[i] = av / bv
		}
	}
}

// broadcastStrides computes strides for broadcasting inShape to outShape.
// Dimensions of size 1 (and left-padded dimensions) get stride 0 so every
// output coordinate along them reads the same input element.
func broadcastStrides(inShape, outShape tensor.Shape) []int {
	outDim := len(outShape)
	strides := make([]int, outDim)

	inDim := len(inShape)
	offset := outDim - inDim
	origStrides := inShape.ComputeStrides()

	for i := 0; i < outDim; i++ {
		inIdx := i - offset
		switch {
		case inIdx < 0 || inIdx >= inDim:
			strides[i] = 0
		case inShape[inIdx] == 1:
			strides[i] = 0
		default:
			strides[i] = origStrides[inIdx]
		}
	}

	return strides
}

// sourceIndex maps a flat output index to the flat input index through
// broadcast-adjusted strides.
func sourceIndex(outIdx int, outStrides, inStrides []int) int {
	flatIdx := 0
	for i := range outStrides {
		coord := outIdx / outStrides[i]
		outIdx %= outStrides[i]
		flatIdx += coord * inStrides[i]
	}
	return flatIdx
}

// transposeData permutes src into result according to axes.
func transposeData(result, src *tensor.RawTensor, axes []int) {
	switch src.DType() {
	case tensor.Float32:
		transposeKernel(result.AsFloat32(), src.AsFloat32(), src.Shape(), axes)
	case tensor.Float64:
		transposeKernel(result.AsFloat64(), src.AsFloat64(), src.Shape(), axes)
	default:
		panic("transpose: unsupported dtype")
	}
}

func transposeKernel[T tensor.DType](dst, src []T, shape tensor.Shape, axes []int) {
	ndim := len(shape)
	srcStrides := shape.ComputeStrides()

	dstShape := make(tensor.Shape, ndim)
	for i, ax := range axes {
		dstShape[i] = shape[ax]
	}
	dstStrides := dstShape.ComputeStrides()

	coords := make([]int, ndim)
	n := shape.NumElements()
	for i := 0; i < n; i++ {
		idx := i
		for dim := 0; dim < ndim; dim++ {
			coords[dim] = idx / srcStrides[dim]
			idx %= srcStrides[dim]
		}

		dstIdx := 0
		for dstDim, srcDim := range axes {
			dstIdx += coords[srcDim] * dstStrides[dstDim]
		}

		dst[dstIdx] = src[i]
	}
}
