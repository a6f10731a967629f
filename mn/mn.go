// Copyright 2025 MemTorch Go Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package mn provides the public API for memristive simulated layers
// in the MemTorch Go framework.
//
// A simulated layer is built from a trained dense layer, a device model
// and a Config. Construction copies and freezes the dense parameters
// and programs them onto crossbars once; forward passes only read the
// programmed state.
//
// Example:
//
//	backend := cpu.New()
//	dense := nn.NewConv3D(2, 4, [3]int{3, 3, 3}, [3]int{1, 1, 1}, [3]int{0, 0, 0}, true, backend)
//	model := memristor.NewLinearIonDrift(memristor.DefaultROn, memristor.DefaultROff)
//
//	layer := mn.NewConv3D(dense, model, mn.DefaultConfig())
//	layer.SetLegacyMode(false) // switch from dense verification to simulation
//	out := layer.Forward(input)
package mn

import (
	"github.com/arsalan1374/MemTorch/internal/mn"
	"github.com/arsalan1374/MemTorch/memristor"
	"github.com/arsalan1374/MemTorch/nn"
	"github.com/arsalan1374/MemTorch/tensor"
)

// Conv3D is a 3D convolution whose weights live on simulated crossbar
// arrays. It implements nn.Module.
//
// Key methods beyond Forward:
//
//	SetLegacyMode(enabled bool)
//	    Toggles exact dense arithmetic (true) vs crossbar simulation (false).
//	    Layers start in legacy mode.
//
//	Tune(batchSize, spatialSize int) / TuneDefault()
//	    Calibrates an affine output transform against the dense layer.
//
//	Save(path string) error
//	    Writes parameters, programmed conductances and config to a snapshot.
//
//	Crossbars() *crossbar.Set
//	    Exposes the programmed arrays for inspection.
type Conv3D[B tensor.Backend] = mn.Conv3D[B]

// Config controls how a dense layer is mapped onto crossbar hardware
// and how the simulated forward pass reads it back. DefaultConfig is
// the usual starting point; the zero value describes a resistor-only
// array and needs a Programming routine before it can build.
type Config = mn.Config

// DefaultConfig returns the ideal-simulation defaults: double-column
// mapping on 1T1R arrays, monolithic storage, no quantization,
// CPU-count parallelism.
func DefaultConfig() Config {
	return mn.DefaultConfig()
}

// Kind tags an output transform.
type Kind = mn.Kind

// Output transform kinds.
const (
	// Identity leaves simulated outputs untouched.
	Identity Kind = mn.Identity
	// Affine maps each output x to Scale*x + Shift.
	Affine Kind = mn.Affine
)

// OutputTransform is the calibration state of a simulated layer: plain
// data with exported fields, inspectable and serializable. The zero
// value is the identity. Tune replaces the whole value; nothing else
// writes it.
type OutputTransform = mn.OutputTransform

// NewConv3D patches a dense convolution onto crossbar hardware. The
// source layer's geometry and parameter values are copied and frozen,
// and the weight matrix is programmed onto arrays exactly once, using
// the given device model and config. The source layer is not modified.
//
// The returned layer starts in legacy mode with an identity output
// transform. Configuration violations panic.
//
// Example:
//
//	dense := nn.NewConv3D(2, 4, [3]int{3, 3, 3}, [3]int{1, 1, 1}, [3]int{0, 0, 0}, true, backend)
//	model := memristor.NewLinearIonDrift(memristor.DefaultROn, memristor.DefaultROff)
//	layer := mn.NewConv3D(dense, model, mn.DefaultConfig())
func NewConv3D[B tensor.Backend](source *nn.Conv3D[B], model memristor.Model, cfg Config) *Conv3D[B] {
	return mn.NewConv3D(source, model, cfg)
}

// Load rebuilds a layer from a snapshot file. model must be the device
// model the saved layer was programmed with; Load checks its name
// against the snapshot and restores the arrays from the saved
// conductances without re-running weight mapping, retention or
// programming. Parallelism and verbosity are runtime concerns: the
// loaded layer runs with default parallelism and quiet logging.
//
// Example:
//
//	layer, err := mn.Load("layer.mt", memristor.NewLinearIonDrift(100, 16000), backend)
func Load[B tensor.Backend](path string, model memristor.Model, backend B) (*Conv3D[B], error) {
	return mn.Load(path, model, backend)
}
