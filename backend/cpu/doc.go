// Copyright 2025 MemTorch Go Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package cpu provides a pure Go CPU backend for tensor operations.
//
// # Overview
//
// This package implements a CPU backend with:
//   - Pure Go implementation (no CGO)
//   - Im2col algorithm for efficient convolutions
//   - Float32 and Float64 support
//   - Batch processing
//   - NumPy-compatible broadcasting
//
// # Basic Usage
//
//	import (
//	    "github.com/arsalan1374/MemTorch/backend/cpu"
//	    "github.com/arsalan1374/MemTorch/memristor"
//	    "github.com/arsalan1374/MemTorch/mn"
//	    "github.com/arsalan1374/MemTorch/nn"
//	    "github.com/arsalan1374/MemTorch/tensor"
//	)
//
//	func main() {
//	    // Create CPU backend
//	    backend := cpu.New()
//
//	    // Use with tensors
//	    x := tensor.Zeros[float32](tensor.Shape{2, 3}, backend)
//	    y := tensor.Ones[float32](tensor.Shape{2, 3}, backend)
//	    z := x.Add(y)
//
//	    // Use with simulated layers
//	    dense := nn.NewConv3D(2, 4, [3]int{3, 3, 3}, [3]int{1, 1, 1}, [3]int{0, 0, 0}, true, backend)
//	    model := memristor.NewLinearIonDrift(memristor.DefaultROn, memristor.DefaultROff)
//	    layer := mn.NewConv3D(dense, model, mn.DefaultConfig())
//	}
//
// # Performance
//
// The CPU backend is optimized for inference simulation on CPUs:
//   - Efficient matrix multiplication
//   - Im2col-based convolutions
//
// Crossbar read-out loops run multi-core; that parallelism lives in the
// parallel package and is configured per layer, not per backend.
//
// # Thread Safety
//
// The CPU backend is safe for concurrent use. Each tensor operation
// is isolated and does not share mutable state.
package cpu
