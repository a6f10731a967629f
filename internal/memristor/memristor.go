// Package memristor defines the device models that back crossbar cells.
//
// A model fixes the conductance range cells can be programmed into and
// the current a programmed cell draws under a read voltage. Ideal
// devices conduct ohmically; non-linear devices bend the I-V curve and
// force the simulation onto the slower per-cell read path.
package memristor

import (
	"fmt"
	"math"
)

// Mode classifies how a device conducts during reads.
type Mode int

const (
	// Ideal devices conduct ohmically: I = G*V. Crossbar reads reduce
	// to an analytically exact vector-matrix multiply.
	Ideal Mode = iota
	// NonLinear devices deviate from Ohm's law, so reads must evaluate
	// the device equation cell by cell.
	NonLinear
)

func (m Mode) String() string {
	switch m {
	case Ideal:
		return "ideal"
	case NonLinear:
		return "non-linear"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Model describes a memristive device technology.
//
// Implementations declare their conduction mode up front rather than
// having callers probe I-V behavior.
type Model interface {
	// Name identifies the device technology.
	Name() string
	// Mode reports whether reads are ohmic or require per-cell
	// evaluation.
	Mode() Mode
	// ConductanceBounds returns (gOff, gOn) in siemens, the
	// fully-off and fully-on conductances. gOff < gOn.
	ConductanceBounds() (gOff, gOn float64)
	// Current returns the read current in amperes for a cell
	// programmed to conductance g under read voltage v.
	Current(g, v float64) float64
}

// Default device resistances, in ohms.
const (
	DefaultROn  = 100.0
	DefaultROff = 16000.0
)

// LinearIonDrift is the ideal ohmic device: current is exactly G*V
// across the full operating range.
type LinearIonDrift struct {
	rOn  float64
	rOff float64
}

// NewLinearIonDrift creates an ideal device with the given on/off
// resistances in ohms. Requires 0 < rOn < rOff.
func NewLinearIonDrift(rOn, rOff float64) *LinearIonDrift {
	validateResistances("LinearIonDrift", rOn, rOff)
	return &LinearIonDrift{rOn: rOn, rOff: rOff}
}

func (m *LinearIonDrift) Name() string {
	return "LinearIonDrift"
}

func (m *LinearIonDrift) Mode() Mode {
	return Ideal
}

func (m *LinearIonDrift) ConductanceBounds() (float64, float64) {
	return 1 / m.rOff, 1 / m.rOn
}

func (m *LinearIonDrift) Current(g, v float64) float64 {
	return g * v
}

// DefaultV0 is the sinh knee voltage for the Stanford/PKU model, in
// volts. Reads well below it look ohmic; beyond it the current grows
// superlinearly.
const DefaultV0 = 0.25

// StanfordPKU models sinh-shaped RRAM conduction:
//
//	I(g, v) = g * V0 * sinh(v / V0)
//
// The small-signal slope at v -> 0 equals g, so an ideal device is the
// V0 -> inf limit.
type StanfordPKU struct {
	rOn  float64
	rOff float64
	v0   float64
}

// NewStanfordPKU creates a non-linear device with the given on/off
// resistances in ohms and sinh knee voltage v0 in volts.
// Requires 0 < rOn < rOff and v0 > 0.
func NewStanfordPKU(rOn, rOff, v0 float64) *StanfordPKU {
	validateResistances("StanfordPKU", rOn, rOff)
	if v0 <= 0 {
		panic(fmt.Sprintf("StanfordPKU: knee voltage must be > 0, got %v", v0))
	}
	return &StanfordPKU{rOn: rOn, rOff: rOff, v0: v0}
}

func (m *StanfordPKU) Name() string {
	return "StanfordPKU"
}

func (m *StanfordPKU) Mode() Mode {
	return NonLinear
}

func (m *StanfordPKU) ConductanceBounds() (float64, float64) {
	return 1 / m.rOff, 1 / m.rOn
}

func (m *StanfordPKU) Current(g, v float64) float64 {
	return g * m.v0 * math.Sinh(v/m.v0)
}

func validateResistances(name string, rOn, rOff float64) {
	if rOn <= 0 {
		panic(fmt.Sprintf("%s: on resistance must be > 0, got %v", name, rOn))
	}
	if rOff <= rOn {
		panic(fmt.Sprintf("%s: off resistance %v must exceed on resistance %v", name, rOff, rOn))
	}
}
