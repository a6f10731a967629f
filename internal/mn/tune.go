package mn

import (
	"fmt"
	"log/slog"

	"github.com/arsalan1374/MemTorch/internal/tensor"
)

// Calibration probe defaults.
const (
	defaultTuneBatch   = 4
	defaultTuneSpatial = 32
)

// degenerateVariance is the floor below which a simulated probe output
// is treated as constant and no slope can be fit.
const degenerateVariance = 1e-12

// TuneDefault calibrates the layer with the default probe size.
func (c *Conv3D[B]) TuneDefault() {
	c.Tune(defaultTuneBatch, defaultTuneSpatial)
}

// Tune calibrates the output transform against the exact dense layer.
// A uniform random probe of shape [batchSize, inCh, s, s, s] is run
// through both the dense convolution and the crossbar pipeline, and an
// ordinary least squares fit dense ~ scale*simulated + shift replaces
// the transform. The prior transform never participates: tuning
// overwrites, it does not compose.
//
// Tune must not run concurrently with Forward.
func (c *Conv3D[B]) Tune(batchSize, spatialSize int) {
	if batchSize < 1 {
		panic(fmt.Sprintf("mn: tune batch size must be >= 1, got %d", batchSize))
	}
	for i := 0; i < 3; i++ {
		if spatialSize+2*c.padding[i] < c.kernelSize[i] {
			panic(fmt.Sprintf("mn: tune spatial size %d + 2*padding %d smaller than kernel size %d (dim %d)",
				spatialSize, c.padding[i], c.kernelSize[i], i))
		}
	}

	probe := tensor.Rand[float32](tensor.Shape{batchSize, c.inChannels, spatialSize, spatialSize, spatialSize}, c.backend)
	c.tune(probe)
}

// tune fits the transform for a given probe. Bias and the prior
// transform are held out of both sides of the fit.
func (c *Conv3D[B]) tune(probe *tensor.Tensor[float32, B]) {
	ref := c.backend.Conv3D(probe.Raw(), c.weight.Tensor().Raw(), c.stride, c.padding)
	sim := c.simulate(probe)

	scale, shift, r2 := fitAffine(sim.Raw().AsFloat32(), ref.AsFloat32())
	c.transform = OutputTransform{Kind: Affine, Scale: scale, Shift: shift}

	if c.cfg.Verbose {
		slog.Info("tuned layer",
			"layer", c.String(),
			"scale", scale,
			"shift", shift,
			"r2", r2,
		)
	}
}

// fitAffine computes the least squares line ref ~ scale*sim + shift and
// its coefficient of determination. A degenerate simulated output (no
// variance to fit a slope against) falls back to a pure shift with unit
// scale.
func fitAffine(sim, ref []float32) (scale, shift, r2 float64) {
	nf := float64(len(sim))
	var sumS, sumR float64
	for i := range sim {
		sumS += float64(sim[i])
		sumR += float64(ref[i])
	}
	meanS := sumS / nf
	meanR := sumR / nf

	var cov, varS float64
	for i := range sim {
		ds := float64(sim[i]) - meanS
		cov += ds * (float64(ref[i]) - meanR)
		varS += ds * ds
	}
	if varS < degenerateVariance {
		return 1, meanR - meanS, 0
	}

	scale = cov / varS
	shift = meanR - scale*meanS

	var ssRes, ssTot float64
	for i := range sim {
		pred := scale*float64(sim[i]) + shift
		d := float64(ref[i]) - pred
		ssRes += d * d
		dt := float64(ref[i]) - meanR
		ssTot += dt * dt
	}
	if ssTot > 0 {
		r2 = 1 - ssRes/ssTot
	}
	return scale, shift, r2
}
