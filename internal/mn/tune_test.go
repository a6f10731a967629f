package mn

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arsalan1374/MemTorch/internal/backend/cpu"
	"github.com/arsalan1374/MemTorch/internal/memristor"
	"github.com/arsalan1374/MemTorch/internal/tensor"
)

func TestTune_IdealIsNearIdentity(t *testing.T) {
	b := cpu.New()
	src := denseLayer(b, 1, 2, [3]int{2, 2, 2}, [3]int{1, 1, 1}, [3]int{0, 0, 0}, false)
	sim := NewConv3D(src, idealModel(), DefaultConfig())

	sim.Tune(2, 8)

	tr := sim.Transform()
	require.Equal(t, Affine, tr.Kind)
	assert.InDelta(t, 1.0, tr.Scale, 1e-3, "an ideal array needs no correction")
	assert.InDelta(t, 0.0, tr.Shift, 1e-3)
}

func TestTune_HoldsBiasOut(t *testing.T) {
	b := cpu.New()
	src := denseLayer(b, 1, 2, [3]int{2, 2, 2}, [3]int{1, 1, 1}, [3]int{0, 0, 0}, true)
	sim := NewConv3D(src, idealModel(), DefaultConfig())

	sim.Tune(2, 8)

	tr := sim.Transform()
	assert.InDelta(t, 1.0, tr.Scale, 1e-3)
	assert.InDelta(t, 0.0, tr.Shift, 1e-3, "the bias must not leak into the fitted shift")
}

func TestTune_OverwritesPriorTransform(t *testing.T) {
	b := cpu.New()
	src := denseLayer(b, 1, 2, [3]int{2, 2, 2}, [3]int{1, 1, 1}, [3]int{0, 0, 0}, false)
	sim := NewConv3D(src, idealModel(), DefaultConfig())
	probe := patternedInput(b, tensor.Shape{2, 1, 6, 6, 6})

	sim.SetTransform(OutputTransform{Kind: Affine, Scale: 123, Shift: -42})
	sim.tune(probe)
	first := sim.Transform()

	sim.SetTransform(OutputTransform{})
	sim.tune(probe)
	second := sim.Transform()

	assert.Equal(t, first, second, "tuning overwrites the transform, it does not compose with it")
}

func TestTune_ImprovesNonLinearFit(t *testing.T) {
	b := cpu.New()
	src := denseLayer(b, 1, 2, [3]int{2, 2, 2}, [3]int{1, 1, 1}, [3]int{0, 0, 0}, false)
	model := memristor.NewStanfordPKU(memristor.DefaultROn, memristor.DefaultROff, 0.5)
	sim := NewConv3D(src, model, DefaultConfig())
	sim.SetLegacyMode(false)

	in := tensor.Rand[float32](tensor.Shape{2, 1, 8, 8, 8}, b)
	want := src.Forward(in).Raw().AsFloat32()

	before := meanAbsDiff(want, sim.Forward(in).Raw().AsFloat32())
	sim.Tune(2, 8)
	after := meanAbsDiff(want, sim.Forward(in).Raw().AsFloat32())

	assert.Less(t, after, before, "calibration must shrink the deviation from the dense layer")
}

func TestTuneDefault_SetsAffine(t *testing.T) {
	b := cpu.New()
	src := denseLayer(b, 1, 1, [3]int{2, 2, 2}, [3]int{1, 1, 1}, [3]int{0, 0, 0}, false)
	sim := NewConv3D(src, idealModel(), DefaultConfig())

	sim.TuneDefault()

	assert.Equal(t, Affine, sim.Transform().Kind)
}

func TestTune_Validation(t *testing.T) {
	b := cpu.New()
	src := denseLayer(b, 1, 1, [3]int{3, 3, 3}, [3]int{1, 1, 1}, [3]int{0, 0, 0}, false)
	sim := NewConv3D(src, idealModel(), DefaultConfig())

	assert.Panics(t, func() { sim.Tune(0, 8) })
	assert.Panics(t, func() { sim.Tune(2, 2) }, "a probe smaller than the kernel cannot convolve")
}

func TestFitAffine(t *testing.T) {
	sim := []float32{0, 1, 2, 3}
	ref := []float32{1, 3, 5, 7} // ref = 2*sim + 1

	scale, shift, r2 := fitAffine(sim, ref)
	assert.InDelta(t, 2.0, scale, 1e-12)
	assert.InDelta(t, 1.0, shift, 1e-12)
	assert.InDelta(t, 1.0, r2, 1e-12)
}

func TestFitAffine_DegenerateFallsBackToShift(t *testing.T) {
	sim := []float32{2, 2, 2, 2}
	ref := []float32{5, 5, 7, 7}

	scale, shift, r2 := fitAffine(sim, ref)
	assert.Equal(t, 1.0, scale)
	assert.InDelta(t, 4.0, shift, 1e-12)
	assert.Equal(t, 0.0, r2)
}
