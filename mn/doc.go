// Copyright 2025 MemTorch Go Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package mn provides memristive simulated neural network layers.
//
// # Overview
//
// This package patches dense layers from package nn onto simulated
// resistive crossbar arrays:
//   - Conv3D: 3D convolution running its multiply-accumulate work on crossbars
//   - Config: weight mapping, tiling, voltage bounds, ADC and parallelism
//   - OutputTransform: affine calibration state written by Tune
//   - Save/Load: exact snapshot round-trips of programmed layers
//
// # Basic Usage
//
//	import (
//	    "github.com/arsalan1374/MemTorch/backend/cpu"
//	    "github.com/arsalan1374/MemTorch/memristor"
//	    "github.com/arsalan1374/MemTorch/mn"
//	    "github.com/arsalan1374/MemTorch/nn"
//	)
//
//	func main() {
//	    backend := cpu.New()
//
//	    // A trained dense layer is the patch source.
//	    dense := nn.NewConv3D(2, 4, [3]int{3, 3, 3}, [3]int{1, 1, 1}, [3]int{0, 0, 0}, true, backend)
//
//	    // Patch it onto ideal crossbar arrays.
//	    model := memristor.NewLinearIonDrift(memristor.DefaultROn, memristor.DefaultROff)
//	    layer := mn.NewConv3D(dense, model, mn.DefaultConfig())
//
//	    // Layers start in legacy mode: exact dense arithmetic for
//	    // verifying the patch. Switch the simulation on explicitly.
//	    layer.SetLegacyMode(false)
//	    out := layer.Forward(input)
//	}
//
// # Configuration
//
// Config controls the hardware mapping. The zero value describes a
// resistor-only array and needs a Programming routine; DefaultConfig
// selects 1T1R arrays with the ideal-simulation defaults.
//
//	cfg := mn.DefaultConfig()
//	cfg.Scheme = crossbar.SingleColumn  // reference-column mapping
//	cfg.TileShape = [2]int{128, 128}    // partition arrays into tiles
//	cfg.MaxInputVoltage = 0.3           // bound read voltages to [-0.3, +0.3]
//	cfg.QuantMethod = "linear"          // 8-bit ADC readout
//	cfg.ADCResolution = 8
//	cfg.ADCOverflowRate = 0.01
//
// # Calibration
//
// Non-ideal device models, ADC quantization and voltage bounds skew the
// simulated outputs. Tune fits an affine correction against the exact
// dense layer on a random probe:
//
//	layer.TuneDefault()
//	fmt.Println(layer.Transform()) // affine(scale=..., shift=...)
//
// # Snapshots
//
// Save writes the frozen parameters, the programmed conductance
// matrices and the layer config to a single file; Load rebuilds the
// layer without re-running the stochastic programming path, so the
// restored forward pass is bit-identical:
//
//	if err := layer.Save("layer.mt"); err != nil { ... }
//	restored, err := mn.Load("layer.mt", model, backend)
//	if errors.Is(err, mn.ErrChecksumMismatch) { ... } // corrupted file
package mn
