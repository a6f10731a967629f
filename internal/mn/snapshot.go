package mn

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/arsalan1374/MemTorch/internal/crossbar"
	"github.com/arsalan1374/MemTorch/internal/memristor"
	"github.com/arsalan1374/MemTorch/internal/nn"
	"github.com/arsalan1374/MemTorch/internal/parallel"
	"github.com/arsalan1374/MemTorch/internal/quant"
	"github.com/arsalan1374/MemTorch/internal/serialization"
	"github.com/arsalan1374/MemTorch/internal/tensor"
)

// Save writes the layer to a snapshot file: frozen parameters, the
// programmed conductance matrices, geometry, config and calibration
// state. Device models and programming routines hold behavior, not
// data; they are recorded by name only and must be re-supplied on
// load.
func (c *Conv3D[B]) Save(path string) error {
	snap, err := c.snapshot()
	if err != nil {
		return err
	}
	return serialization.Save(path, snap)
}

func (c *Conv3D[B]) snapshot() (*serialization.Snapshot, error) {
	tensors := map[string]*tensor.RawTensor{
		"weight": c.weight.Tensor().Raw(),
	}
	if c.useBias {
		tensors["bias"] = c.bias.Tensor().Raw()
	}
	for i, cb := range c.set.Crossbars {
		raw, err := tensor.NewRaw(tensor.Shape{c.set.Rows, c.set.Cols}, tensor.Float64, c.backend.Device())
		if err != nil {
			return nil, fmt.Errorf("mn: snapshot crossbar %d: %w", i, err)
		}
		copy(raw.AsFloat64(), cb.Dense())
		tensors[fmt.Sprintf("crossbar.%d", i)] = raw
	}

	meta := map[string]string{
		"model":             c.model.Name(),
		"in_channels":       strconv.Itoa(c.inChannels),
		"out_channels":      strconv.Itoa(c.outChannels),
		"kernel_size":       fmtTriple(c.kernelSize),
		"stride":            fmtTriple(c.stride),
		"padding":           fmtTriple(c.padding),
		"scheme":            c.set.Scheme.String(),
		"tile_shape":        fmt.Sprintf("%d,%d", c.cfg.TileShape[0], c.cfg.TileShape[1]),
		"max_input_voltage": fmtFloat(c.cfg.MaxInputVoltage),
		"adc_resolution":    strconv.Itoa(c.cfg.ADCResolution),
		"adc_overflow_rate": fmtFloat(c.cfg.ADCOverflowRate),
		"quant_method":      c.cfg.QuantMethod,
		"transistor":        strconv.FormatBool(c.cfg.Transistor),
		"retain_fraction":   fmtFloat(c.cfg.RetainFraction),
		"scale":             fmtFloat(c.set.Scale),
		"g_ref":             fmtFloat(c.set.GRef),
		"transform_kind":    c.transform.Kind.String(),
		"transform_scale":   fmtFloat(c.transform.Scale),
		"transform_shift":   fmtFloat(c.transform.Shift),
		"legacy":            strconv.FormatBool(c.legacy),
	}

	return &serialization.Snapshot{
		Layer:    c.String(),
		Tensors:  tensors,
		Metadata: meta,
	}, nil
}

// Load rebuilds a layer from a snapshot file. model must be the device
// model the saved layer was programmed with; Load checks its name
// against the snapshot and restores the arrays from the saved
// conductances without re-running weight mapping, retention or
// programming. Parallelism and verbosity are runtime concerns: the
// loaded layer runs with default parallelism and quiet logging.
func Load[B tensor.Backend](path string, model memristor.Model, backend B) (*Conv3D[B], error) {
	if model == nil {
		return nil, errors.New("mn: device model must not be nil")
	}
	snap, err := serialization.Open(path, backend.Device())
	if err != nil {
		return nil, err
	}
	return fromSnapshot(snap, model, backend)
}

func fromSnapshot[B tensor.Backend](snap *serialization.Snapshot, model memristor.Model, backend B) (*Conv3D[B], error) {
	r := &metaReader{m: snap.Metadata}

	modelName := r.str("model")
	inCh := r.num("in_channels")
	outCh := r.num("out_channels")
	kernel := r.triple("kernel_size")
	stride := r.triple("stride")
	padding := r.triple("padding")
	schemeName := r.str("scheme")
	cfg := Config{
		TileShape:       r.pair("tile_shape"),
		MaxInputVoltage: r.float("max_input_voltage"),
		ADCResolution:   r.num("adc_resolution"),
		ADCOverflowRate: r.float("adc_overflow_rate"),
		QuantMethod:     r.str("quant_method"),
		Transistor:      r.flag("transistor"),
		RetainFraction:  r.float("retain_fraction"),
		Parallel:        parallel.DefaultConfig(),
	}
	scale := r.float("scale")
	gRef := r.float("g_ref")
	kindName := r.str("transform_kind")
	tScale := r.float("transform_scale")
	tShift := r.float("transform_shift")
	legacy := r.flag("legacy")
	if r.err != nil {
		return nil, r.err
	}

	if modelName != model.Name() {
		return nil, fmt.Errorf("mn: snapshot was programmed with model %q, not %q", modelName, model.Name())
	}
	var scheme crossbar.Scheme
	switch schemeName {
	case crossbar.DoubleColumn.String():
		scheme = crossbar.DoubleColumn
	case crossbar.SingleColumn.String():
		scheme = crossbar.SingleColumn
	default:
		return nil, fmt.Errorf("mn: snapshot records unknown scheme %q", schemeName)
	}
	cfg.Scheme = scheme

	var transform OutputTransform
	switch kindName {
	case Identity.String():
	case Affine.String():
		transform = OutputTransform{Kind: Affine, Scale: tScale, Shift: tShift}
	default:
		return nil, fmt.Errorf("mn: snapshot records unknown transform kind %q", kindName)
	}

	if inCh < 1 || outCh < 1 {
		return nil, fmt.Errorf("mn: snapshot records invalid channels %dx%d", inCh, outCh)
	}
	for i := 0; i < 3; i++ {
		if kernel[i] < 1 || stride[i] < 1 || padding[i] < 0 {
			return nil, fmt.Errorf("mn: snapshot records invalid geometry (dim %d): kernel %d, stride %d, padding %d",
				i, kernel[i], stride[i], padding[i])
		}
	}
	if th, tw := cfg.TileShape[0], cfg.TileShape[1]; th < 0 || tw < 0 || (th == 0) != (tw == 0) {
		return nil, fmt.Errorf("mn: snapshot records invalid tile shape %v", cfg.TileShape)
	}
	if cfg.MaxInputVoltage < 0 {
		return nil, fmt.Errorf("mn: snapshot records negative max input voltage %v", cfg.MaxInputVoltage)
	}
	method, err := quant.ParseMethod(cfg.QuantMethod)
	if err != nil {
		return nil, fmt.Errorf("mn: snapshot %v", err)
	}
	if method != quant.None && (cfg.ADCResolution < 1 || cfg.ADCOverflowRate < 0 || cfg.ADCOverflowRate >= 1) {
		return nil, fmt.Errorf("mn: snapshot records invalid ADC config: %d bits, overflow rate %v",
			cfg.ADCResolution, cfg.ADCOverflowRate)
	}
	adc, par := cfg.resolve()

	weightRaw, ok := snap.Tensors["weight"]
	if !ok {
		return nil, errors.New("mn: snapshot has no weight tensor")
	}
	wantWeight := tensor.Shape{outCh, inCh, kernel[0], kernel[1], kernel[2]}
	if weightRaw.DType() != tensor.Float32 || !weightRaw.Shape().Equal(wantWeight) {
		return nil, fmt.Errorf("mn: weight tensor is %v %v, want float32 %v", weightRaw.DType(), weightRaw.Shape(), wantWeight)
	}
	biasRaw, useBias := snap.Tensors["bias"]
	if useBias {
		if biasRaw.DType() != tensor.Float32 || !biasRaw.Shape().Equal(tensor.Shape{outCh}) {
			return nil, fmt.Errorf("mn: bias tensor is %v %v, want float32 [%d]", biasRaw.DType(), biasRaw.Shape(), outCh)
		}
	}

	rows := inCh * kernel[0] * kernel[1] * kernel[2]
	cols := outCh
	count := 1
	if scheme == crossbar.DoubleColumn {
		count = 2
	}
	conds := make([][]float64, count)
	for i := range conds {
		name := fmt.Sprintf("crossbar.%d", i)
		raw, ok := snap.Tensors[name]
		if !ok {
			return nil, fmt.Errorf("mn: snapshot has no %s tensor", name)
		}
		if raw.DType() != tensor.Float64 || !raw.Shape().Equal(tensor.Shape{rows, cols}) {
			return nil, fmt.Errorf("mn: %s tensor is %v %v, want float64 [%d %d]", name, raw.DType(), raw.Shape(), rows, cols)
		}
		conds[i] = raw.AsFloat64()
	}

	c := &Conv3D[B]{
		inChannels:  inCh,
		outChannels: outCh,
		kernelSize:  kernel,
		stride:      stride,
		padding:     padding,
		useBias:     useBias,
		backend:     backend,
		model:       model,
		mode:        model.Mode(),
		cfg:         cfg,
		adc:         adc,
		par:         par,
		legacy:      legacy,
		transform:   transform,
	}
	c.weight = nn.NewParameter("conv3d.weight", tensor.New[float32](weightRaw, backend))
	c.weight.Freeze()
	if useBias {
		c.bias = nn.NewParameter("conv3d.bias", tensor.New[float32](biasRaw, backend))
		c.bias.Freeze()
	}
	c.set, c.accessor = crossbar.Restore(conds, rows, cols, scheme, scale, gRef, model, crossbar.Config{
		TileShape: cfg.TileShape,
		ADC:       adc,
		Parallel:  par,
	})
	return c, nil
}

// metaReader pulls typed values out of snapshot metadata, keeping the
// first failure.
type metaReader struct {
	m   map[string]string
	err error
}

func (r *metaReader) str(key string) string {
	if r.err != nil {
		return ""
	}
	v, ok := r.m[key]
	if !ok {
		r.err = fmt.Errorf("mn: snapshot missing metadata %q", key)
	}
	return v
}

func (r *metaReader) num(key string) int {
	v := r.str(key)
	if r.err != nil {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		r.err = fmt.Errorf("mn: snapshot metadata %q: %v", key, err)
	}
	return n
}

func (r *metaReader) float(key string) float64 {
	v := r.str(key)
	if r.err != nil {
		return 0
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		r.err = fmt.Errorf("mn: snapshot metadata %q: %v", key, err)
	}
	return f
}

func (r *metaReader) flag(key string) bool {
	v := r.str(key)
	if r.err != nil {
		return false
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		r.err = fmt.Errorf("mn: snapshot metadata %q: %v", key, err)
	}
	return b
}

func (r *metaReader) triple(key string) [3]int {
	v := r.str(key)
	if r.err != nil {
		return [3]int{}
	}
	parts := strings.Split(v, ",")
	if len(parts) != 3 {
		r.err = fmt.Errorf("mn: snapshot metadata %q: want 3 comma-separated values, got %q", key, v)
		return [3]int{}
	}
	var out [3]int
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			r.err = fmt.Errorf("mn: snapshot metadata %q: %v", key, err)
			return [3]int{}
		}
		out[i] = n
	}
	return out
}

func (r *metaReader) pair(key string) [2]int {
	v := r.str(key)
	if r.err != nil {
		return [2]int{}
	}
	parts := strings.Split(v, ",")
	if len(parts) != 2 {
		r.err = fmt.Errorf("mn: snapshot metadata %q: want 2 comma-separated values, got %q", key, v)
		return [2]int{}
	}
	var out [2]int
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			r.err = fmt.Errorf("mn: snapshot metadata %q: %v", key, err)
			return [2]int{}
		}
		out[i] = n
	}
	return out
}

func fmtTriple(v [3]int) string {
	return fmt.Sprintf("%d,%d,%d", v[0], v[1], v[2])
}

func fmtFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
