// Package nn implements the dense neural network modules that the
// memristive simulation patches.
//
// The package stays deliberately small: Parameter (frozen inference
// weights), the Module interface, weight initialization, and the dense
// Conv3D layer that serves as the patch source for internal/mn.
//
// Design inspired by PyTorch's nn.Module but adapted for Go generics.
package nn

import (
	"github.com/arsalan1374/MemTorch/internal/tensor"
)

// Module is the base interface for all neural network components.
//
// Type parameter B must satisfy the tensor.Backend interface.
type Module[B tensor.Backend] interface {
	// Forward computes the output of the module given an input tensor.
	Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B]

	// Parameters returns all parameters of this module. Modules in this
	// framework hold frozen inference weights; the slice is still the
	// canonical way to reach them for snapshots and inspection.
	Parameters() []*Parameter[B]
}
