package tensor

// Backend defines the interface that all compute backends must implement.
// Backends handle the actual computation for tensor operations.
//
// The simulation pipeline is CPU-bound and bit-accuracy sensitive, so the
// reference implementation lives in internal/backend/cpu; MockBackend in
// this package provides naive implementations for cross-checking.
type Backend interface {
	// Element-wise binary operations (with broadcasting)
	Add(a, b *RawTensor) *RawTensor
	Sub(a, b *RawTensor) *RawTensor
	Mul(a, b *RawTensor) *RawTensor
	Div(a, b *RawTensor) *RawTensor

	// Scalar operations (element-wise with scalar)
	AddScalar(x *RawTensor, scalar any) *RawTensor
	SubScalar(x *RawTensor, scalar any) *RawTensor
	MulScalar(x *RawTensor, scalar any) *RawTensor
	DivScalar(x *RawTensor, scalar any) *RawTensor

	// Matrix operations
	MatMul(a, b *RawTensor) *RawTensor

	// Convolution support.
	// Conv3D computes a dense 3-D convolution of [N, C, D0, D1, D2] input
	// against an [F, C, K0, K1, K2] kernel with per-axis stride and zero
	// padding. Pad3D zero-pads the three spatial axes of a single
	// [C, D0, D1, D2] element. Unfold3D extracts sliding kernel patches
	// from a padded element into an im2col matrix
	// [positions, C*K0*K1*K2].
	Conv3D(input, kernel *RawTensor, stride, padding [3]int) *RawTensor
	Pad3D(input *RawTensor, padding [3]int) *RawTensor
	Unfold3D(input *RawTensor, kernelSize, stride [3]int) *RawTensor

	// Shape operations
	Reshape(t *RawTensor, newShape Shape) *RawTensor
	Transpose(t *RawTensor, axes ...int) *RawTensor

	// Reductions and range operations.
	// MinMax returns the smallest and largest element. Rescale maps
	// values affinely from [oldMin, oldMax] to [newMin, newMax]; the
	// voltage encoding step of the simulated forward pass is built on it.
	Sum(x *RawTensor) *RawTensor
	MinMax(x *RawTensor) (float64, float64)
	Rescale(x *RawTensor, oldMin, oldMax, newMin, newMax float64) *RawTensor

	// Metadata
	Name() string
	Device() Device
}
