// Copyright 2025 MemTorch Go Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import (
	"github.com/arsalan1374/MemTorch/internal/nn"
	"github.com/arsalan1374/MemTorch/tensor"
)

// Layers

// Conv3D represents a dense 3D convolutional layer.
//
// This is the layer the memristive simulation patches: mn.NewConv3D takes
// a built Conv3D, deep-copies its weights and programs them onto simulated
// crossbar arrays.
type Conv3D[B tensor.Backend] = nn.Conv3D[B]

// NewConv3D creates a new 3D convolutional layer with Xavier-initialized
// weights and zero bias. Kernel size, stride and padding are three
// independent integers, one per spatial axis.
//
// Example:
//
//	backend := cpu.New()
//	conv := nn.NewConv3D(2, 4, [3]int{3, 3, 3}, [3]int{1, 1, 1}, [3]int{0, 0, 0}, true, backend)
func NewConv3D[B tensor.Backend](
	inChannels, outChannels int,
	kernelSize, stride, padding [3]int,
	useBias bool,
	backend B,
) *Conv3D[B] {
	return nn.NewConv3D(inChannels, outChannels, kernelSize, stride, padding, useBias, backend)
}

// Weight initialization

// Xavier creates a tensor initialized with Xavier/Glorot uniform values
// for the given fan-in and fan-out.
func Xavier[B tensor.Backend](fanIn, fanOut int, shape tensor.Shape, backend B) *tensor.Tensor[float32, B] {
	return nn.Xavier(fanIn, fanOut, shape, backend)
}

// Zeros creates a zero-initialized float32 tensor.
func Zeros[B tensor.Backend](shape tensor.Shape, backend B) *tensor.Tensor[float32, B] {
	return nn.Zeros(shape, backend)
}

// Ones creates a one-initialized float32 tensor.
func Ones[B tensor.Backend](shape tensor.Shape, backend B) *tensor.Tensor[float32, B] {
	return nn.Ones(shape, backend)
}

// Randn creates a float32 tensor drawn from the standard normal distribution.
func Randn[B tensor.Backend](shape tensor.Shape, backend B) *tensor.Tensor[float32, B] {
	return nn.Randn(shape, backend)
}
