// Copyright 2025 MemTorch Go Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides type-safe tensor operations for the MemTorch Go framework.
//
// # Overview
//
// Tensors are the fundamental data structure in MemTorch Go. This package provides:
//   - Generic type-safe tensors (Tensor[T, B])
//   - NumPy-style broadcasting
//   - Zero-copy operations where possible
//   - The dense convolution and im2col kernels the memristive simulation runs on
//
// # Basic Usage
//
//	import (
//	    "github.com/arsalan1374/MemTorch/tensor"
//	    "github.com/arsalan1374/MemTorch/backend/cpu"
//	)
//
//	func main() {
//	    backend := cpu.New()
//
//	    // Create tensors
//	    x := tensor.Zeros[float32](tensor.Shape{2, 3}, backend)
//	    y := tensor.Ones[float32](tensor.Shape{2, 3}, backend)
//
//	    // Tensor operations
//	    z := x.Add(y)
//	    result := x.MatMul(y.Transpose())
//	}
//
// # Supported Data Types
//
// The tensor package supports the following data types via the DType constraint:
//   - float32 (layer weights and activations)
//   - float64 (crossbar conductances and readout currents)
//
// # Device Support
//
// The simulation core is CPU-bound and bit-accuracy sensitive, so CPU is the
// only device. Tensor metadata still carries an explicit Device so serialized
// snapshots record placement.
//
// # Broadcasting
//
// Tensor operations follow NumPy broadcasting rules:
//
//	a := tensor.Zeros[float32](tensor.Shape{3, 1}, backend)     // (3, 1)
//	b := tensor.Ones[float32](tensor.Shape{3, 4}, backend)      // (3, 4)
//	c := a.Add(b)                                                // (3, 4)
//
// # Memory Management
//
// Tensors use zero-copy operations where possible. The underlying data is
// reference-counted and automatically freed when no longer needed.
package tensor
