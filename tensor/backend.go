// Copyright 2025 MemTorch Go Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import "github.com/arsalan1374/MemTorch/internal/tensor"

// Backend defines the interface that all compute backends must implement.
// Backends handle the actual computation for tensor operations.
//
// Implementations:
//   - backend/cpu: Pure Go, multi-core via the parallel package
//
// Example:
//
//	import (
//	    "github.com/arsalan1374/MemTorch/tensor"
//	    "github.com/arsalan1374/MemTorch/backend/cpu"
//	)
//
//	backend := cpu.New()
//	x := tensor.Zeros[float32](tensor.Shape{2, 3}, backend)
//	y := tensor.Ones[float32](tensor.Shape{2, 3}, backend)
//	z := x.Add(y)  // Uses backend.Add under the hood
type Backend interface {
	// Element-wise binary operations (with broadcasting).
	Add(a, b *RawTensor) *RawTensor // Element-wise addition.
	Sub(a, b *RawTensor) *RawTensor // Element-wise subtraction.
	Mul(a, b *RawTensor) *RawTensor // Element-wise multiplication.
	Div(a, b *RawTensor) *RawTensor // Element-wise division.

	// Scalar operations (element-wise with scalar).
	AddScalar(x *RawTensor, scalar any) *RawTensor // Add scalar.
	SubScalar(x *RawTensor, scalar any) *RawTensor // Subtract scalar.
	MulScalar(x *RawTensor, scalar any) *RawTensor // Multiply by scalar.
	DivScalar(x *RawTensor, scalar any) *RawTensor // Divide by scalar.

	// Matrix operations.
	MatMul(a, b *RawTensor) *RawTensor // Matrix multiplication.

	// Convolutional operations.
	Conv3D(input, kernel *RawTensor, stride, padding [3]int) *RawTensor // Dense 3D convolution.
	Pad3D(input *RawTensor, padding [3]int) *RawTensor                  // Zero-pad the three spatial axes.
	Unfold3D(input *RawTensor, kernelSize, stride [3]int) *RawTensor    // Extract im2col patch matrix.

	// Shape operations.
	Reshape(t *RawTensor, newShape Shape) *RawTensor // Reshape tensor.
	Transpose(t *RawTensor, axes ...int) *RawTensor  // Transpose dimensions.

	// Reduction and range operations.
	Sum(x *RawTensor) *RawTensor                                             // Total sum (scalar result).
	MinMax(x *RawTensor) (float64, float64)                                  // Smallest and largest element.
	Rescale(x *RawTensor, oldMin, oldMax, newMin, newMax float64) *RawTensor // Affine remap between value ranges.

	// Metadata.
	Name() string   // Backend name (e.g., "CPU").
	Device() Device // Device type.
}

// Compile-time check that internal Backend implements public Backend.
var _ Backend = tensor.Backend(nil)
