// Copyright 2025 MemTorch Go Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import (
	"github.com/arsalan1374/MemTorch/internal/nn"
	"github.com/arsalan1374/MemTorch/tensor"
)

// Parameter represents a named weight tensor of a neural network layer.
//
// Parameters in this framework are inference weights. A frozen parameter
// pins its buffer so that in-place tensor arithmetic elsewhere cannot
// reuse it; the simulated layers freeze their copies at patch time.
//
// Example:
//
//	// Create a weight parameter
//	weight := nn.NewParameter("weight", weightTensor)
//
//	// Access the tensor
//	w := weight.Tensor()
//
//	// Pin the buffer
//	weight.Freeze()
//
// Methods:
//
//	Name() string
//	    Returns the parameter name (e.g., "conv3d.weight", "conv3d.bias").
//
//	Tensor() *tensor.Tensor[float32, B]
//	    Returns the parameter tensor.
//
//	Freeze()
//	    Pins the underlying buffer against in-place reuse.
//
//	Frozen() bool
//	    Reports whether the parameter has been frozen.
//
// Note: Parameter is implemented as a type alias because it is used as a return type
// in the Module interface. Go's type system requires exact type matches for interface
// implementations, so we cannot use an interface here.
type Parameter[B tensor.Backend] = nn.Parameter[B]

// NewParameter creates a new parameter with the given name and tensor.
func NewParameter[B tensor.Backend](name string, t *tensor.Tensor[float32, B]) *Parameter[B] {
	return nn.NewParameter(name, t)
}
