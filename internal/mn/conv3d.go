// Package mn implements memristive simulated layers: dense neural
// network modules patched to run their multiply-accumulate work on
// simulated resistive crossbar arrays.
//
// A simulated layer is built from a trained dense layer, a device model
// and a Config. Construction copies and freezes the dense parameters
// and programs them onto crossbars once; forward passes only read the
// programmed state. Layers start in legacy mode (exact dense
// arithmetic) so a freshly patched network can be verified before the
// simulation is switched on with SetLegacyMode(false).
package mn

import (
	"fmt"
	"log/slog"

	"github.com/arsalan1374/MemTorch/internal/crossbar"
	"github.com/arsalan1374/MemTorch/internal/memristor"
	"github.com/arsalan1374/MemTorch/internal/nn"
	"github.com/arsalan1374/MemTorch/internal/parallel"
	"github.com/arsalan1374/MemTorch/internal/tensor"
)

// Conv3D is a 3D convolution whose weights live on simulated crossbar
// arrays. It implements nn.Module.
type Conv3D[B tensor.Backend] struct {
	inChannels  int
	outChannels int
	kernelSize  [3]int
	stride      [3]int
	padding     [3]int
	useBias     bool

	weight  *nn.Parameter[B]
	bias    *nn.Parameter[B]
	backend B

	model memristor.Model
	mode  memristor.Mode
	cfg   Config
	adc   crossbar.ADC
	par   parallel.Config

	set      *crossbar.Set
	accessor crossbar.Accessor

	legacy    bool
	transform OutputTransform
}

// NewConv3D patches a dense convolution onto crossbar hardware. The
// source layer's geometry and parameter values are copied and frozen,
// and the weight matrix is programmed onto arrays exactly once, using
// the given device model and config. The source layer is not modified.
//
// The returned layer starts in legacy mode with an identity output
// transform. Configuration violations panic.
func NewConv3D[B tensor.Backend](source *nn.Conv3D[B], model memristor.Model, cfg Config) *Conv3D[B] {
	if source == nil {
		panic("mn: source layer must not be nil")
	}
	if model == nil {
		panic("mn: device model must not be nil")
	}
	adc, par := cfg.resolve()

	c := &Conv3D[B]{
		inChannels:  source.InChannels(),
		outChannels: source.OutChannels(),
		kernelSize:  source.KernelSize(),
		stride:      source.Stride(),
		padding:     source.Padding(),
		useBias:     source.UseBias(),
		backend:     source.Backend(),
		model:       model,
		mode:        model.Mode(),
		cfg:         cfg,
		adc:         adc,
		par:         par,
		legacy:      true,
	}
	c.weight = freezeCopy(source.Weight())
	if c.useBias {
		c.bias = freezeCopy(source.Bias())
	}

	// Program the arrays. Wordlines carry the unfolded patch (one row
	// per weight tap), bitlines the output channels, so the dense
	// [outCh, K] weight matrix goes in transposed.
	rows := c.inChannels * c.kernelSize[0] * c.kernelSize[1] * c.kernelSize[2]
	cols := c.outChannels
	w := c.weight.Tensor().Raw().AsFloat32()
	programmed := make([]float64, rows*cols)
	for o := 0; o < cols; o++ {
		for k := 0; k < rows; k++ {
			programmed[k*cols+o] = float64(w[o*rows+k])
		}
	}
	c.set, c.accessor = crossbar.Build(programmed, rows, cols, model, crossbar.Config{
		Scheme:         cfg.Scheme,
		TileShape:      cfg.TileShape,
		Transistor:     cfg.Transistor,
		Programming:    cfg.Programming,
		RetainFraction: cfg.RetainFraction,
		ADC:            adc,
		Parallel:       par,
	})

	if cfg.Verbose {
		slog.Info("patched layer",
			"layer", c.String(),
			"model", model.Name(),
			"mode", c.mode.String(),
			"scheme", c.set.Scheme.String(),
			"rows", c.set.Rows,
			"cols", c.set.Cols,
			"tiled", cfg.TileShape != ([2]int{}),
		)
	}
	return c
}

// freezeCopy deep-copies a parameter and freezes the copy. The
// simulated layer owns programmed values; they must not alias the
// source layer's buffers.
func freezeCopy[B tensor.Backend](p *nn.Parameter[B]) *nn.Parameter[B] {
	src := p.Tensor()
	raw, err := tensor.NewRaw(src.Shape(), src.DType(), src.Device())
	if err != nil {
		panic(fmt.Sprintf("mn: %v", err))
	}
	copy(raw.Data(), src.Raw().Data())
	cp := nn.NewParameter(p.Name(), tensor.New[float32](raw, src.Backend()))
	cp.Freeze()
	return cp
}

// Forward runs the layer. In legacy mode this is the exact dense
// convolution; otherwise every batch element is driven through the
// crossbar pipeline: pad, encode read voltages, unfold, simulate the
// array reads, fold currents back to weight units, then apply the
// output transform and bias.
func (c *Conv3D[B]) Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	shape := input.Shape()
	if len(shape) != 5 {
		panic(fmt.Sprintf("mn: input must be 5D [N,C,D0,D1,D2], got %dD", len(shape)))
	}
	if shape[1] != c.inChannels {
		panic(fmt.Sprintf("mn: input has %d channels, layer expects %d", shape[1], c.inChannels))
	}
	for i := 0; i < 3; i++ {
		if shape[2+i]+2*c.padding[i] < c.kernelSize[i] {
			panic(fmt.Sprintf("mn: input size %d + 2*padding %d smaller than kernel size %d (dim %d)",
				shape[2+i], c.padding[i], c.kernelSize[i], i))
		}
	}

	if c.legacy {
		return c.forwardLegacy(input)
	}

	result := c.simulate(input)
	data := result.Raw().AsFloat32()

	if c.transform.Kind != Identity {
		for i := range data {
			data[i] = float32(c.transform.Apply(float64(data[i])))
		}
	}

	// Bias reaches every batch element.
	if c.useBias {
		biasData := c.bias.Tensor().Raw().AsFloat32()
		n := result.Shape()[0]
		positions := result.NumElements() / (n * c.outChannels)
		for b := 0; b < n; b++ {
			for o := 0; o < c.outChannels; o++ {
				row := data[(b*c.outChannels+o)*positions : (b*c.outChannels+o+1)*positions]
				for i := range row {
					row[i] += biasData[o]
				}
			}
		}
	}
	return result
}

// forwardLegacy is the exact dense path, bit-identical to the source
// layer.
func (c *Conv3D[B]) forwardLegacy(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	out := c.backend.Conv3D(input.Raw(), c.weight.Tensor().Raw(), c.stride, c.padding)
	result := tensor.New[float32](out, c.backend)
	if c.useBias {
		biasShaped := c.bias.Tensor().Reshape(1, c.outChannels, 1, 1, 1)
		result = result.Add(biasShaped)
	}
	return result
}

// simulate drives every batch element through the crossbar pipeline and
// returns the output in weight units. The output transform and bias are
// deliberately not applied here; Tune fits its transform against this
// raw result.
func (c *Conv3D[B]) simulate(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	shape := input.Shape()
	n := shape[0]
	in := [3]int{shape[2], shape[3], shape[4]}
	out := c.ComputeOutputSize(in)
	positions := out[0] * out[1] * out[2]

	result := tensor.Zeros[float32](tensor.Shape{n, c.outChannels, out[0], out[1], out[2]}, c.backend)
	outData := result.Raw().AsFloat32()
	inData := input.Raw().AsFloat32()
	elemSize := c.inChannels * in[0] * in[1] * in[2]
	slotSize := c.outChannels * positions

	// The folded matrix serves every batch element; read it once.
	var cond crossbar.Conductances
	if c.mode == memristor.Ideal {
		cond = c.accessor.ReadConductances()
	}

	parallel.For(n, func(b int) {
		elem := c.batchElement(inData, b, elemSize, in)

		if c.padding != ([3]int{}) {
			elem = c.backend.Pad3D(elem, c.padding)
		}
		if v := c.cfg.MaxInputVoltage; v > 0 {
			lo, hi := c.backend.MinMax(elem)
			elem = c.backend.Rescale(elem, lo, hi, -v, v)
		}

		unfolded := c.backend.Unfold3D(elem, c.kernelSize, c.stride).AsFloat32()
		voltages := make([]float64, len(unfolded))
		for i, x := range unfolded {
			voltages[i] = float64(x)
		}

		var raw []float64
		switch {
		case c.mode == memristor.NonLinear:
			raw = c.accessor.Simulate(voltages, positions)
		case cond.Tiled():
			raw = crossbar.TileMatMul(voltages, positions, cond, c.adc, c.par)
		default:
			raw = crossbar.MatMul(voltages, positions, cond)
			c.adc.Apply(raw)
		}

		// Fold currents back to weight units and lay the
		// [positions, outCh] block down as [outCh, positions].
		slot := outData[b*slotSize : (b+1)*slotSize]
		for p := 0; p < positions; p++ {
			base := p * c.outChannels
			for o := 0; o < c.outChannels; o++ {
				slot[o*positions+p] = float32(raw[base+o] * c.set.Scale)
			}
		}
	}, c.par)

	return result
}

// batchElement copies batch slot b into a standalone [C, D0, D1, D2]
// tensor the single-element kernels consume.
func (c *Conv3D[B]) batchElement(inData []float32, b, elemSize int, in [3]int) *tensor.RawTensor {
	elem, err := tensor.NewRaw(tensor.Shape{c.inChannels, in[0], in[1], in[2]}, tensor.Float32, c.backend.Device())
	if err != nil {
		panic(fmt.Sprintf("mn: %v", err))
	}
	copy(elem.AsFloat32(), inData[b*elemSize:(b+1)*elemSize])
	return elem
}

// SetLegacyMode switches between the exact dense path (true) and the
// crossbar simulation (false).
func (c *Conv3D[B]) SetLegacyMode(enabled bool) {
	c.legacy = enabled
}

// LegacyMode reports whether the layer runs the exact dense path.
func (c *Conv3D[B]) LegacyMode() bool {
	return c.legacy
}

// Transform returns the current output transform.
func (c *Conv3D[B]) Transform() OutputTransform {
	return c.transform
}

// SetTransform replaces the output transform.
func (c *Conv3D[B]) SetTransform(t OutputTransform) {
	c.transform = t
}

// Crossbars returns the programmed crossbar set for inspection.
func (c *Conv3D[B]) Crossbars() *crossbar.Set {
	return c.set
}

// Model returns the device model the arrays were programmed with.
func (c *Conv3D[B]) Model() memristor.Model {
	return c.model
}

// Parameters returns the frozen weight and bias parameters.
func (c *Conv3D[B]) Parameters() []*nn.Parameter[B] {
	if c.useBias {
		return []*nn.Parameter[B]{c.weight, c.bias}
	}
	return []*nn.Parameter[B]{c.weight}
}

// String returns a PyTorch-style layer descriptor.
func (c *Conv3D[B]) String() string {
	return fmt.Sprintf("MemristiveConv3D(in_channels=%d, out_channels=%d, kernel_size=(%d, %d, %d), stride=(%d, %d, %d), padding=(%d, %d, %d), bias=%v)",
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

// KernelSize returns the kernel extents.
func (c *Conv3D[B]) KernelSize() [3]int {
	return c.kernelSize
}

// Stride returns the stride.
func (c *Conv3D[B]) Stride() [3]int {
	return c.stride
}

// Padding returns the padding.
func (c *Conv3D[B]) Padding() [3]int {
	return c.padding
}

// UseBias returns whether the layer carries a bias.
func (c *Conv3D[B]) UseBias() bool {
	return c.useBias
}

// ComputeOutputSize returns the spatial output extents for the given
// input extents.
func (c *Conv3D[B]) ComputeOutputSize(input [3]int) [3]int {
	var out [3]int
	for i := 0; i < 3; i++ {
		out[i] = (input[i]+2*c.padding[i]-c.kernelSize[i])/c.stride[i] + 1
	}
	return out
}
