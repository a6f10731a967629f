package cpu

import (
	"fmt"

	"github.com/arsalan1374/MemTorch/internal/tensor"
)

// Conv3D performs 3D convolution using the im2col algorithm.
//
// Input shape: [batch, in_channels, depth, height, width]
// Kernel shape: [out_channels, in_channels, k_d, k_h, k_w]
// Output shape: [batch, out_channels, out_d, out_h, out_w]
// with out_i = (d_i + 2*padding[i] - k_i) / stride[i] + 1 per spatial axis.
//
// Algorithm:
//  1. Transform input patches into columns (im2col)
//  2. Multiply by the kernel flattened to [C_out, C_in * K_d * K_h * K_w]
//  3. Rearrange the product into [N, C_out, out_d, out_h, out_w]
//
// Im2col turns the convolution into one dense matmul, which is also the
// layout the crossbar simulation consumes: each column index is one
// wordline of the array.
//
// Reference: "High Performance Convolutional Neural Networks for Document
// Processing" (Chellapilla et al., 2006).
func (cpu *CPUBackend) Conv3D(input, kernel *tensor.RawTensor, stride, padding [3]int) *tensor.RawTensor {
	inputShape := input.Shape()
	kernelShape := kernel.Shape()

	if len(inputShape) != 5 {
		panic(fmt.Sprintf("conv3d: input must be 5D [N,C,D0,D1,D2], got %dD", len(inputShape)))
	}
	if len(kernelShape) != 5 {
		panic(fmt.Sprintf("conv3d: kernel must be 5D [C_out,C_in,K0,K1,K2], got %dD", len(kernelShape)))
	}

	n := inputShape[0]
	cIn := inputShape[1]
	in := [3]int{inputShape[2], inputShape[3], inputShape[4]}
	cOut := kernelShape[0]
	cInK := kernelShape[1]
	k := [3]int{kernelShape[2], kernelShape[3], kernelShape[4]}

	if cIn != cInK {
		panic(fmt.Sprintf("conv3d: input channels %d != kernel channels %d", cIn, cInK))
	}

	for i := 0; i < 3; i++ {
		if stride[i] < 1 {
			panic(fmt.Sprintf("conv3d: stride must be >= 1, got %d (dim %d)", stride[i], i))
		}
		if padding[i] < 0 {
			panic(fmt.Sprintf("conv3d: padding must be >= 0, got %d (dim %d)", padding[i], i))
		}
	}

	// Integer division truncates toward zero, so the undersized case has
	// to be caught before computing the output extent.
	var out [3]int
	for i := 0; i < 3; i++ {
		if in[i]+2*padding[i] < k[i] {
			panic(fmt.Sprintf("conv3d: input size %d + 2*padding %d smaller than kernel size %d (dim %d)",
				in[i], padding[i], k[i], i))
		}
		out[i] = (in[i]+2*padding[i]-k[i])/stride[i] + 1
	}

	output, err := tensor.NewRaw(tensor.Shape{n, cOut, out[0], out[1], out[2]}, input.DType(), cpu.device)
	if err != nil {
		panic(fmt.Sprintf("conv3d: failed to create output tensor: %v", err))
	}

	switch input.DType() {
	case tensor.Float32:
		conv3dKernel(output.AsFloat32(), input.AsFloat32(), kernel.AsFloat32(), n, cIn, in, cOut, k, out, stride, padding)
	case tensor.Float64:
		conv3dKernel(output.AsFloat64(), input.AsFloat64(), kernel.AsFloat64(), n, cIn, in, cOut, k, out, stride, padding)
	default:
		panic(fmt.Sprintf("conv3d: unsupported dtype %s", input.DType()))
	}

	return output
}

func conv3dKernel[T tensor.DType](output, input, kernel []T, n, cIn int, in [3]int, cOut int, k, out, stride, padding [3]int) {
	colWidth := cIn * k[0] * k[1] * k[2]
	positions := out[0] * out[1] * out[2]
	colHeight := n * positions

	colBuf := make([]T, colHeight*colWidth)
	im2col3d(colBuf, input, n, cIn, in, k, out, stride, padding)

	// Row-major kernel data is already the [C_out, colWidth] matrix.
	prod := make([]T, cOut*colHeight)
	for i := 0; i < cOut; i++ {
		for j := 0; j < colHeight; j++ {
			var sum T
			for w := 0; w < colWidth; w++ {
				sum += kernel[i*colWidth+w] * colBuf[j*colWidth+w]
			}
			prod[i*colHeight+j] = sum
		}
	}

	// Rearrange [C_out, N*positions] into [N, C_out, positions].
	for b := 0; b < n; b++ {
		for c := 0; c < cOut; c++ {
			copy(output[(b*cOut+c)*positions:(b*cOut+c+1)*positions],
				prod[c*colHeight+b*positions:c*colHeight+(b+1)*positions])
		}
	}
}

// im2col3d fills colBuf [N * positions, C * K0 * K1 * K2], one row per
// output position, reading zeros where a tap falls into the padding.
func im2col3d[T tensor.DType](colBuf, input []T, n, c int, in, k, out, stride, padding [3]int) {
	colWidth := c * k[0] * k[1] * k[2]
	colIdx := 0

	for b := 0; b < n; b++ {
		for o0 := 0; o0 < out[0]; o0++ {
			start0 := o0*stride[0] - padding[0]
			for o1 := 0; o1 < out[1]; o1++ {
				start1 := o1*stride[1] - padding[1]
				for o2 := 0; o2 < out[2]; o2++ {
					start2 := o2*stride[2] - padding[2]
					bufIdx := colIdx * colWidth

					for ch := 0; ch < c; ch++ {
						for k0 := 0; k0 < k[0]; k0++ {
							d0 := start0 + k0
							for k1 := 0; k1 < k[1]; k1++ {
								d1 := start1 + k1
								for k2 := 0; k2 < k[2]; k2++ {
									d2 := start2 + k2
									if d0 >= 0 && d0 < in[0] && d1 >= 0 && d1 < in[1] && d2 >= 0 && d2 < in[2] {
										colBuf[bufIdx] = input[(((b*c+ch)*in[0]+d0)*in[1]+d1)*in[2]+d2]
									} else {
										colBuf[bufIdx] = 0
									}
									bufIdx++
								}
							}
						}
					}

					colIdx++
				}
			}
		}
	}
}
