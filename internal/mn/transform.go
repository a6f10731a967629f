package mn

import "fmt"

// Kind tags an output transform.
type Kind int

const (
	// Identity leaves simulated outputs untouched.
	Identity Kind = iota
	// Affine maps each output x to Scale*x + Shift.
	Affine
)

func (k Kind) String() string {
	switch k {
	case Identity:
		return "identity"
	case Affine:
		return "affine"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// OutputTransform is the calibration state of a simulated layer: plain
// data with exported fields, inspectable and serializable. The zero
// value is the identity. Tune replaces the whole value; nothing else
// writes it.
type OutputTransform struct {
	Kind  Kind
	Scale float64
	Shift float64
}

// Apply maps one simulated output through the transform.
func (t OutputTransform) Apply(x float64) float64 {
	if t.Kind == Affine {
		return t.Scale*x + t.Shift
	}
	return x
}

func (t OutputTransform) String() string {
	if t.Kind == Affine {
		return fmt.Sprintf("affine(scale=%.6g, shift=%.6g)", t.Scale, t.Shift)
	}
	return t.Kind.String()
}
