package nn

import (
	"github.com/arsalan1374/MemTorch/internal/tensor"
)

// Parameter is a named tensor owned by a module.
//
// This framework runs frozen-weight inference: parameters carry no
// gradients. A layer that hands its weights to the analog simulation
// freezes them first, which also pins the underlying buffer so no
// element-wise operation can reuse it as scratch space.
//
// Example:
//
//	weight := nn.NewParameter("conv3d.weight", weightTensor)
//	weight.Freeze()
type Parameter[B tensor.Backend] struct {
	name   string
	tensor *tensor.Tensor[float32, B]
	frozen bool
}

// NewParameter creates a parameter around an initialized tensor.
func NewParameter[B tensor.Backend](name string, t *tensor.Tensor[float32, B]) *Parameter[B] {
	return &Parameter[B]{
		name:   name,
		tensor: t,
	}
}

// Name returns the parameter name.
func (p *Parameter[B]) Name() string {
	return p.name
}

// Tensor returns the parameter tensor.
func (p *Parameter[B]) Tensor() *tensor.Tensor[float32, B] {
	return p.tensor
}

// Freeze permanently marks the parameter read-only and pins its buffer
// against the in-place fast path of operand-reusing backends. Freezing
// twice is a no-op.
func (p *Parameter[B]) Freeze() {
	if p.frozen {
		return
	}
	p.frozen = true
	p.tensor.Raw().ForceNonUnique()
}

// Frozen reports whether the parameter has been frozen.
func (p *Parameter[B]) Frozen() bool {
	return p.frozen
}
