package nn

import (
	"fmt"

	"github.com/arsalan1374/MemTorch/internal/tensor"
)

// Conv3D is a dense 3-D convolutional layer.
//
// Performs convolution: output = Conv3D(input, weight) + bias
//
// Input shape:  [batch, in_channels, d0, d1, d2]
// Weight shape: [out_channels, in_channels, k0, k1, k2]
// Bias shape:   [out_channels]
// Output shape: [batch, out_channels, o0, o1, o2]
//
// Where, per spatial axis i:
//
//	o_i = (d_i + 2*padding_i - k_i)/stride_i + 1
//
// Example:
//
//	// 2 channels -> 4 channels, 3x3x3 kernel, unit stride, no padding
//	conv := nn.NewConv3D(2, 4, [3]int{3, 3, 3}, [3]int{1, 1, 1}, [3]int{0, 0, 0}, true, backend)
//
//	input := tensor.Zeros[float32](tensor.Shape{8, 2, 16, 16, 16}, backend)
//	output := conv.Forward(input) // [8, 4, 14, 14, 14]
type Conv3D[B tensor.Backend] struct {
	inChannels  int
	outChannels int
	kernelSize  [3]int
	stride      [3]int
	padding     [3]int
	useBias     bool

	weight *Parameter[B] // [out_channels, in_channels, k0, k1, k2]
	bias   *Parameter[B] // [out_channels] or nil

	backend B
}

// NewConv3D creates a 3-D convolutional layer with Xavier-initialized
// weights and zero bias. Kernel size, stride and padding are three
// independent integers, one per spatial axis.
func NewConv3D[B tensor.Backend](
	inChannels, outChannels int,
	kernelSize, stride, padding [3]int,
	useBias bool,
	backend B,
) *Conv3D[B] {
	if inChannels <= 0 || outChannels <= 0 {
		panic(fmt.Sprintf("conv3d: invalid channels in=%d, out=%d", inChannels, outChannels))
	}
	for i := 0; i < 3; i++ {
		if kernelSize[i] <= 0 {
			panic(fmt.Sprintf("conv3d: invalid kernel size %d (dim %d)", kernelSize[i], i))
		}
		if stride[i] <= 0 {
			panic(fmt.Sprintf("conv3d: invalid stride %d (dim %d)", stride[i], i))
		}
		if padding[i] < 0 {
			panic(fmt.Sprintf("conv3d: invalid padding %d (dim %d)", padding[i], i))
		}
	}

	weightShape := tensor.Shape{outChannels, inChannels, kernelSize[0], kernelSize[1], kernelSize[2]}

	// fan_in = in_channels * kernel volume, fan_out = out_channels * kernel volume
	kernelVolume := kernelSize[0] * kernelSize[1] * kernelSize[2]
	weight := Xavier(inChannels*kernelVolume, outChannels*kernelVolume, weightShape, backend)
	weightParam := NewParameter("conv3d.weight", weight)

	var biasParam *Parameter[B]
	if useBias {
		biasParam = NewParameter("conv3d.bias", Zeros(tensor.Shape{outChannels}, backend))
	}

	return &Conv3D[B]{
		inChannels:  inChannels,
		outChannels: outChannels,
		kernelSize:  kernelSize,
		stride:      stride,
		padding:     padding,
		useBias:     useBias,
		weight:      weightParam,
		bias:        biasParam,
		backend:     backend,
	}
}

// Forward performs the forward pass.
//
// Input: [batch, in_channels, d0, d1, d2]
// Output: [batch, out_channels, o0, o1, o2].
func (c *Conv3D[B]) Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	inputShape := input.Shape()
	if len(inputShape) != 5 {
		panic(fmt.Sprintf("conv3d: expected 5D input [N,C,D0,D1,D2], got %dD", len(inputShape)))
	}
	if inputShape[1] != c.inChannels {
		panic(fmt.Sprintf("conv3d: input channels %d != expected %d", inputShape[1], c.inChannels))
	}

	outputRaw := c.backend.Conv3D(
		input.Raw(),
		c.weight.Tensor().Raw(),
		c.stride,
		c.padding,
	)
	output := tensor.New[float32, B](outputRaw, c.backend)

	if c.useBias {
		// Bias [out_channels] broadcasts as [1, out_channels, 1, 1, 1].
		biasReshaped := c.bias.Tensor().Reshape(1, c.outChannels, 1, 1, 1)
		output = output.Add(biasReshaped)
	}

	return output
}

// Parameters returns the layer parameters (weight, then bias if present).
func (c *Conv3D[B]) Parameters() []*Parameter[B] {
	if c.useBias {
		return []*Parameter[B]{c.weight, c.bias}
	}
	return []*Parameter[B]{c.weight}
}

// Weight returns the weight parameter.
func (c *Conv3D[B]) Weight() *Parameter[B] {
	return c.weight
}

// Bias returns the bias parameter, or nil when the layer has none.
func (c *Conv3D[B]) Bias() *Parameter[B] {
	return c.bias
}

// String returns a single-line descriptor of the layer.
func (c *Conv3D[B]) String() string {
	return fmt.Sprintf("Conv3D(in_channels=%d, out_channels=%d, kernel_size=(%d, %d, %d), stride=(%d, %d, %d), padding=(%d, %d, %d), bias=%v)",
		c.inChannels, c.outChannels,
		c.kernelSize[0], c.kernelSize[1], c.kernelSize[2],
		c.stride[0], c.stride[1], c.stride[2],
		c.padding[0], c.padding[1], c.padding[2],
		c.useBias)
}

// OutChannels returns the number of output channels.
func (c *Conv3D[B]) OutChannels() int {
	return c.outChannels
}

// InChannels returns the number of input channels.
func (c *Conv3D[B]) InChannels() int {
	return c.inChannels
}

// KernelSize returns the per-axis kernel extents.
func (c *Conv3D[B]) KernelSize() [3]int {
	return c.kernelSize
}

// Stride returns the per-axis strides.
func (c *Conv3D[B]) Stride() [3]int {
	return c.stride
}

// Padding returns the per-axis zero padding.
func (c *Conv3D[B]) Padding() [3]int {
	return c.padding
}

// UseBias reports whether the layer carries a bias term.
func (c *Conv3D[B]) UseBias() bool {
	return c.useBias
}

// Backend returns the compute backend the layer runs on.
func (c *Conv3D[B]) Backend() B {
	return c.backend
}

// ComputeOutputSize computes the output spatial extents for an input of
// the given spatial extents.
func (c *Conv3D[B]) ComputeOutputSize(input [3]int) [3]int {
	var out [3]int
	for i := 0; i < 3; i++ {
		out[i] = (input[i]+2*c.padding[i]-c.kernelSize[i])/c.stride[i] + 1
	}
	return out
}
