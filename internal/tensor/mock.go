package tensor

import "fmt"

// Verify that MockBackend implements Backend.
var _ Backend = (*MockBackend)(nil)

// MockBackend is a simple backend for testing.
// It implements all operations naively for correctness verification; the
// CPU backend tests cross-check their im2col convolution against the
// direct convolution here.
type MockBackend struct{}

// NewMockBackend creates a new MockBackend.
func NewMockBackend() *MockBackend {
	return &MockBackend{}
}

// Name returns the backend name.
func (m *MockBackend) Name() string {
	return "mock"
}

// Device returns the device type.
func (m *MockBackend) Device() Device {
	return CPU
}

// Add performs element-wise addition with broadcasting.
func (m *MockBackend) Add(a, b *RawTensor) *RawTensor {
	return m.elementWise(a, b, func(x, y float64) float64 { return x + y })
}

// Sub performs element-wise subtraction with broadcasting.
func (m *MockBackend) Sub(a, b *RawTensor) *RawTensor {
	return m.elementWise(a, b, func(x, y float64) float64 { return x - y })
}

// Mul performs element-wise multiplication with broadcasting.
func (m *MockBackend) Mul(a, b *RawTensor) *RawTensor {
	return m.elementWise(a, b, func(x, y float64) float64 { return x * y })
}

// Div performs element-wise division with broadcasting.
func (m *MockBackend) Div(a, b *RawTensor) *RawTensor {
	return m.elementWise(a, b, func(x, y float64) float64 { return x / y })
}

// AddScalar adds a scalar to each element.
func (m *MockBackend) AddScalar(x *RawTensor, scalar any) *RawTensor {
	s := toFloat64Scalar(scalar)
	return m.unary(x, func(v float64) float64 { return v + s })
}

// SubScalar subtracts a scalar from each element.
func (m *MockBackend) SubScalar(x *RawTensor, scalar any) *RawTensor {
	s := toFloat64Scalar(scalar)
	return m.unary(x, func(v float64) float64 { return v - s })
}

// MulScalar multiplies each element by a scalar.
func (m *MockBackend) MulScalar(x *RawTensor, scalar any) *RawTensor {
	s := toFloat64Scalar(scalar)
	return m.unary(x, func(v float64) float64 { return v * s })
}

// DivScalar divides each element by a scalar.
func (m *MockBackend) DivScalar(x *RawTensor, scalar any) *RawTensor {
	s := toFloat64Scalar(scalar)
	return m.unary(x, func(v float64) float64 { return v / s })
}

// elementWise performs element-wise operations with broadcasting.
func (m *MockBackend) elementWise(a, b *RawTensor, op func(float64, float64) float64) *RawTensor {
	outShape, _, err := BroadcastShapes(a.Shape(), b.Shape())
	if err != nil {
		panic(err)
	}

	result, err := NewRaw(outShape, a.DType(), m.Device())
	if err != nil {
		panic(err)
	}

	numElements := outShape.NumElements()

	aData := m.toFloat64Slice(a)
	bData := m.toFloat64Slice(b)
	resultData := make([]float64, numElements)

	for i := 0; i < numElements; i++ {
		aIdx := m.broadcastIndex(i, outShape, a.Shape())
		bIdx := m.broadcastIndex(i, outShape, b.Shape())

		resultData[i] = op(aData[aIdx], bData[bIdx])
	}

	m.fromFloat64Slice(resultData, result)
	return result
}

// unary applies op to every element.
func (m *MockBackend) unary(x *RawTensor, op func(float64) float64) *RawTensor {
	result, err := NewRaw(x.Shape(), x.DType(), m.Device())
	if err != nil {
		panic(err)
	}

	data := m.toFloat64Slice(x)
	out := make([]float64, len(data))
	for i, v := range data {
		out[i] = op(v)
	}
	m.fromFloat64Slice(out, result)
	return result
}

// MatMul performs matrix multiplication.
func (m *MockBackend) MatMul(a, b *RawTensor) *RawTensor {
	aShape := a.Shape()
	bShape := b.Shape()

	if len(aShape) != 2 || len(bShape) != 2 {
		panic("MatMul only supports 2D tensors in mock backend")
	}

	if aShape[1] != bShape[0] {
		panic(fmt.Sprintf("incompatible shapes for MatMul: %v @ %v", aShape, bShape))
	}

	M, K := aShape[0], aShape[1]
	N := bShape[1]

	result, err := NewRaw(Shape{M, N}, a.DType(), m.Device())
	if err != nil {
		panic(err)
	}

	aData := m.toFloat64Slice(a)
	bData := m.toFloat64Slice(b)
	resultData := make([]float64, M*N)

	// Naive matrix multiplication
	for i := 0; i < M; i++ {
		for j := 0; j < N; j++ {
			sum := 0.0
			for k := 0; k < K; k++ {
				sum += aData[i*K+k] * bData[k*N+j]
			}
			resultData[i*N+j] = sum
		}
	}

	m.fromFloat64Slice(resultData, result)
	return result
}

// Conv3D performs 3D convolution by direct accumulation, without the
// im2col rearrangement the CPU backend uses.
func (m *MockBackend) Conv3D(input, kernel *RawTensor, stride, padding [3]int) *RawTensor {
	inputShape := input.Shape()
	kernelShape := kernel.Shape()

	if len(inputShape) != 5 || len(kernelShape) != 5 {
		panic("Conv3D requires 5D tensors [N,C,D0,D1,D2]")
	}

	N := inputShape[0]
	CIn := inputShape[1]
	D := [3]int{inputShape[2], inputShape[3], inputShape[4]}
	COut := kernelShape[0]
	K := [3]int{kernelShape[2], kernelShape[3], kernelShape[4]}

	if CIn != kernelShape[1] {
		panic(fmt.Sprintf("Conv3D: input channels %d != kernel channels %d", CIn, kernelShape[1]))
	}

	var out [3]int
	for i := 0; i < 3; i++ {
		out[i] = (D[i]+2*padding[i]-K[i])/stride[i] + 1
	}

	output, err := NewRaw(Shape{N, COut, out[0], out[1], out[2]}, input.DType(), m.Device())
	if err != nil {
		panic(err)
	}

	inputData := m.toFloat64Slice(input)
	kernelData := m.toFloat64Slice(kernel)
	outputData := make([]float64, output.NumElements())

	for n := 0; n < N; n++ {
		for f := 0; f < COut; f++ {
			for o0 := 0; o0 < out[0]; o0++ {
				for o1 := 0; o1 < out[1]; o1++ {
					for o2 := 0; o2 < out[2]; o2++ {
						sum := 0.0
						for c := 0; c < CIn; c++ {
							for k0 := 0; k0 < K[0]; k0++ {
								for k1 := 0; k1 < K[1]; k1++ {
									for k2 := 0; k2 < K[2]; k2++ {
										d0 := o0*stride[0] - padding[0] + k0
										d1 := o1*stride[1] - padding[1] + k1
										d2 := o2*stride[2] - padding[2] + k2

										// Zero padding outside bounds
										if d0 >= 0 && d0 < D[0] && d1 >= 0 && d1 < D[1] && d2 >= 0 && d2 < D[2] {
											inputIdx := ((n*CIn+c)*D[0]+d0)*D[1]*D[2] + d1*D[2] + d2
											kernelIdx := ((f*CIn+c)*K[0]+k0)*K[1]*K[2] + k1*K[2] + k2
											sum += inputData[inputIdx] * kernelData[kernelIdx]
										}
									}
								}
							}
						}
						outputIdx := ((n*COut+f)*out[0]+o0)*out[1]*out[2] + o1*out[2] + o2
						outputData[outputIdx] = sum
					}
				}
			}
		}
	}

	m.fromFloat64Slice(outputData, output)
	return output
}

// Pad3D zero-pads the three spatial axes of a [C, D0, D1, D2] tensor.
func (m *MockBackend) Pad3D(input *RawTensor, padding [3]int) *RawTensor {
	shape := input.Shape()
	if len(shape) != 4 {
		panic("Pad3D requires a 4D tensor [C,D0,D1,D2]")
	}

	C := shape[0]
	D := [3]int{shape[1], shape[2], shape[3]}
	P := [3]int{D[0] + 2*padding[0], D[1] + 2*padding[1], D[2] + 2*padding[2]}

	result, err := NewRaw(Shape{C, P[0], P[1], P[2]}, input.DType(), m.Device())
	if err != nil {
		panic(err)
	}

	in := m.toFloat64Slice(input)
	out := make([]float64, result.NumElements())

	for c := 0; c < C; c++ {
		for d0 := 0; d0 < D[0]; d0++ {
			for d1 := 0; d1 < D[1]; d1++ {
				for d2 := 0; d2 < D[2]; d2++ {
					src := ((c*D[0]+d0)*D[1]+d1)*D[2] + d2
					dst := ((c*P[0]+d0+padding[0])*P[1]+d1+padding[1])*P[2] + d2 + padding[2]
					out[dst] = in[src]
				}
			}
		}
	}

	m.fromFloat64Slice(out, result)
	return result
}

// Unfold3D extracts sliding kernel patches into an im2col matrix.
func (m *MockBackend) Unfold3D(input *RawTensor, kernelSize, stride [3]int) *RawTensor {
	shape := input.Shape()
	if len(shape) != 4 {
		panic("Unfold3D requires a 4D tensor [C,D0,D1,D2]")
	}

	C := shape[0]
	D := [3]int{shape[1], shape[2], shape[3]}
	var out [3]int
	for i := 0; i < 3; i++ {
		out[i] = (D[i]-kernelSize[i])/stride[i] + 1
		if out[i] <= 0 {
			panic(fmt.Sprintf("Unfold3D: kernel size %d exceeds input size %d on axis %d", kernelSize[i], D[i], i))
		}
	}

	positions := out[0] * out[1] * out[2]
	patch := C * kernelSize[0] * kernelSize[1] * kernelSize[2]

	result, err := NewRaw(Shape{positions, patch}, input.DType(), m.Device())
	if err != nil {
		panic(err)
	}

	in := m.toFloat64Slice(input)
	outData := make([]float64, positions*patch)

	row := 0
	for o0 := 0; o0 < out[0]; o0++ {
		for o1 := 0; o1 < out[1]; o1++ {
			for o2 := 0; o2 < out[2]; o2++ {
				col := 0
				for c := 0; c < C; c++ {
					for k0 := 0; k0 < kernelSize[0]; k0++ {
						for k1 := 0; k1 < kernelSize[1]; k1++ {
							for k2 := 0; k2 < kernelSize[2]; k2++ {
								d0 := o0*stride[0] + k0
								d1 := o1*stride[1] + k1
								d2 := o2*stride[2] + k2
								outData[row*patch+col] = in[((c*D[0]+d0)*D[1]+d1)*D[2]+d2]
								col++
							}
						}
					}
				}
				row++
			}
		}
	}

	m.fromFloat64Slice(outData, result)
	return result
}

// Reshape changes tensor shape.
func (m *MockBackend) Reshape(t *RawTensor, newShape Shape) *RawTensor {
	if err := newShape.Validate(); err != nil {
		panic(err)
	}

	if t.NumElements() != newShape.NumElements() {
		panic(fmt.Sprintf("cannot reshape tensor with %d elements to shape %v (%d elements)",
			t.NumElements(), newShape, newShape.NumElements()))
	}

	result, err := NewRaw(newShape, t.DType(), m.Device())
	if err != nil {
		panic(err)
	}

	copy(result.Data(), t.Data())
	return result
}

// Transpose transposes tensor dimensions.
func (m *MockBackend) Transpose(t *RawTensor, axes ...int) *RawTensor {
	shape := t.Shape()

	// Default: reverse all dimensions
	if len(axes) == 0 {
		axes = make([]int, len(shape))
		for i := range axes {
			axes[i] = len(shape) - 1 - i
		}
	}

	if len(axes) != len(shape) {
		panic(fmt.Sprintf("axes length %d doesn't match tensor dimensions %d", len(axes), len(shape)))
	}

	newShape := make(Shape, len(shape))
	for i, axis := range axes {
		if axis < 0 || axis >= len(shape) {
			panic(fmt.Sprintf("axis %d out of bounds for tensor with %d dimensions", axis, len(shape)))
		}
		newShape[i] = shape[axis]
	}

	result, err := NewRaw(newShape, t.DType(), m.Device())
	if err != nil {
		panic(err)
	}

	tData := m.toFloat64Slice(t)
	resultData := make([]float64, t.NumElements())

	oldStrides := shape.ComputeStrides()
	newStrides := newShape.ComputeStrides()

	for i := 0; i < t.NumElements(); i++ {
		indices := make([]int, len(shape))
		temp := i
		for j := 0; j < len(shape); j++ {
			indices[j] = temp / oldStrides[j]
			temp %= oldStrides[j]
		}

		newIdx := 0
		for j, axis := range axes {
			newIdx += indices[axis] * newStrides[j]
		}

		resultData[newIdx] = tData[i]
	}

	m.fromFloat64Slice(resultData, result)
	return result
}

// Sum computes the total sum, returning a scalar tensor.
func (m *MockBackend) Sum(x *RawTensor) *RawTensor {
	result, err := NewRaw(Shape{}, x.DType(), m.Device())
	if err != nil {
		panic(err)
	}

	sum := 0.0
	for _, v := range m.toFloat64Slice(x) {
		sum += v
	}
	m.fromFloat64Slice([]float64{sum}, result)
	return result
}

// MinMax returns the smallest and largest element.
func (m *MockBackend) MinMax(x *RawTensor) (float64, float64) {
	data := m.toFloat64Slice(x)
	lo, hi := data[0], data[0]
	for _, v := range data[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi
}

// Rescale maps values affinely from [oldMin, oldMax] to [newMin, newMax].
func (m *MockBackend) Rescale(x *RawTensor, oldMin, oldMax, newMin, newMax float64) *RawTensor {
	if oldMax == oldMin {
		mid := (newMin + newMax) / 2
		return m.unary(x, func(float64) float64 { return mid })
	}
	scale := (newMax - newMin) / (oldMax - oldMin)
	return m.unary(x, func(v float64) float64 { return (v-oldMin)*scale + newMin })
}

// Helper functions

func (m *MockBackend) toFloat64Slice(t *RawTensor) []float64 {
	switch t.DType() {
	case Float32:
		src := t.AsFloat32()
		dst := make([]float64, len(src))
		for i, v := range src {
			dst[i] = float64(v)
		}
		return dst
	case Float64:
		return t.AsFloat64()
	default:
		panic(fmt.Sprintf("unsupported dtype: %s", t.DType()))
	}
}

func (m *MockBackend) fromFloat64Slice(src []float64, t *RawTensor) {
	switch t.DType() {
	case Float32:
		dst := t.AsFloat32()
		for i, v := range src {
			dst[i] = float32(v)
		}
	case Float64:
		copy(t.AsFloat64(), src)
	}
}

func (m *MockBackend) broadcastIndex(flatIdx int, outShape, inShape Shape) int {
	// Convert flat index to multi-dimensional indices in output shape
	outStrides := outShape.ComputeStrides()
	indices := make([]int, len(outShape))

	temp := flatIdx
	for i := 0; i < len(outShape); i++ {
		indices[i] = temp / outStrides[i]
		temp %= outStrides[i]
	}

	// Map to input shape (accounting for broadcasting)
	inStrides := inShape.ComputeStrides()
	inIdx := 0

	offset := len(outShape) - len(inShape)
	for i := 0; i < len(inShape); i++ {
		outDimIdx := indices[offset+i]

		// If input dimension is 1, always use index 0 (broadcasting)
		if inShape[i] == 1 {
			outDimIdx = 0
		}

		inIdx += outDimIdx * inStrides[i]
	}

	return inIdx
}

func toFloat64Scalar(scalar any) float64 {
	switch v := scalar.(type) {
	case float32:
		return float64(v)
	case float64:
		return v
	case int:
		return float64(v)
	default:
		panic(fmt.Sprintf("unsupported scalar type %T", scalar))
	}
}
