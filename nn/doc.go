// Copyright 2025 MemTorch Go Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides the dense neural network layers the memristive
// simulation patches.
//
// # Overview
//
// This package contains:
//   - Layers: Conv3D
//   - Utilities: Module interface, Parameter
//   - Initialization: Xavier, Zeros, Ones, Randn
//
// The package stays deliberately small. Dense layers here are the patch
// sources for package mn, which deep-copies their weights and reruns
// their arithmetic on simulated crossbar arrays.
//
// # Basic Usage
//
//	import (
//	    "github.com/arsalan1374/MemTorch/nn"
//	    "github.com/arsalan1374/MemTorch/backend/cpu"
//	)
//
//	func main() {
//	    backend := cpu.New()
//
//	    // Build a dense 3D convolution
//	    conv := nn.NewConv3D(2, 4, [3]int{3, 3, 3}, [3]int{1, 1, 1}, [3]int{0, 0, 0}, true, backend)
//
//	    // Forward pass
//	    output := conv.Forward(input)
//	}
//
// # Layers
//
// Conv3D: dense 3D convolutional layer with im2col algorithm
//
//	conv := nn.NewConv3D(inChannels, outChannels, kernelSize, stride, padding, useBias, backend)
//
// # Parameters
//
// Parameters are frozen inference weights. Freezing pins the underlying
// buffer so in-place tensor arithmetic cannot reuse it:
//
//	weight := nn.NewParameter("conv3d.weight", weightTensor)
//	weight.Freeze()
package nn
