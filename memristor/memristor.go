// Copyright 2025 MemTorch Go Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package memristor provides the device models that back simulated
// crossbar cells.
//
// A model fixes the conductance range cells can be programmed into and
// the current a programmed cell draws under a read voltage. Ideal
// devices conduct ohmically and let the simulation run as an exact
// vector-matrix multiply; non-linear devices bend the I-V curve and
// force the slower per-cell read path.
//
// Example:
//
//	// Ideal ohmic device
//	ideal := memristor.NewLinearIonDrift(memristor.DefaultROn, memristor.DefaultROff)
//
//	// Sinh-shaped RRAM conduction
//	rram := memristor.NewStanfordPKU(memristor.DefaultROn, memristor.DefaultROff, memristor.DefaultV0)
package memristor

import (
	"github.com/arsalan1374/MemTorch/internal/memristor"
)

// Mode classifies how a device conducts during reads.
type Mode = memristor.Mode

// Conduction modes.
const (
	// Ideal devices conduct ohmically: I = G*V. Crossbar reads reduce
	// to an analytically exact vector-matrix multiply.
	Ideal Mode = memristor.Ideal
	// NonLinear devices deviate from Ohm's law, so reads must evaluate
	// the device equation cell by cell.
	NonLinear Mode = memristor.NonLinear
)

// Model describes a memristive device technology.
//
// Implementations declare their conduction mode up front rather than
// having callers probe I-V behavior.
type Model = memristor.Model

// Default device resistances, in ohms.
const (
	DefaultROn  = memristor.DefaultROn
	DefaultROff = memristor.DefaultROff
)

// DefaultV0 is the sinh knee voltage for the Stanford/PKU model, in
// volts. Reads well below it look ohmic; beyond it the current grows
// superlinearly.
const DefaultV0 = memristor.DefaultV0

// LinearIonDrift is the ideal ohmic device: current is exactly G*V
// across the full operating range.
type LinearIonDrift = memristor.LinearIonDrift

// NewLinearIonDrift creates an ideal device with the given on/off
// resistances in ohms. Requires 0 < rOn < rOff.
//
// Example:
//
//	model := memristor.NewLinearIonDrift(100, 16000)
func NewLinearIonDrift(rOn, rOff float64) *LinearIonDrift {
	return memristor.NewLinearIonDrift(rOn, rOff)
}

// StanfordPKU models sinh-shaped RRAM conduction:
//
//	I(g, v) = g * V0 * sinh(v / V0)
//
// The small-signal slope at v -> 0 equals g, so an ideal device is the
// V0 -> inf limit.
type StanfordPKU = memristor.StanfordPKU

// NewStanfordPKU creates a non-linear device with the given on/off
// resistances in ohms and sinh knee voltage v0 in volts.
// Requires 0 < rOn < rOff and v0 > 0.
//
// Example:
//
//	model := memristor.NewStanfordPKU(100, 16000, 0.25)
func NewStanfordPKU(rOn, rOff, v0 float64) *StanfordPKU {
	return memristor.NewStanfordPKU(rOn, rOff, v0)
}
