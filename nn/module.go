// Copyright 2025 MemTorch Go Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import (
	internalnn "github.com/arsalan1374/MemTorch/internal/nn"
	"github.com/arsalan1374/MemTorch/tensor"
)

// Module is the base interface for all neural network components.
//
// Every module must implement:
//   - Forward: Compute output from input
//   - Parameters: Return all parameters
//
// Modules in this framework hold frozen inference weights; the simulated
// layers in package mn satisfy the same interface, so simulation is a
// drop-in replacement for the dense layer it patches:
//
//	dense := nn.NewConv3D(2, 4, [3]int{3, 3, 3}, [3]int{1, 1, 1}, [3]int{0, 0, 0}, true, backend)
//	var layer nn.Module[*cpu.Backend] = mn.NewConv3D(dense, model, mn.DefaultConfig())
//
// Type parameter B must satisfy the tensor.Backend interface.
type Module[B tensor.Backend] interface {
	// Forward computes the output of the module given an input tensor.
	//
	// The input tensor should have the appropriate shape for this module.
	// For example, Conv3D expects [batch, in_channels, d0, d1, d2].
	//
	// Returns the output tensor with shape determined by the module type.
	Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B]

	// Parameters returns all parameters of this module.
	//
	// This includes weights, biases, and any nested module parameters.
	// The slice is the canonical way to reach parameters for snapshots
	// and inspection.
	Parameters() []*Parameter[B]
}

// Note: Internal implementations of Module automatically satisfy this interface
// because they have the same method signatures.

// Compile-time check that the internal interface matches.
var _ Module[tensor.Backend] = internalnn.Module[tensor.Backend](nil)
