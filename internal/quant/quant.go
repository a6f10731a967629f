// Package quant implements the ADC quantization applied to raw crossbar
// read currents.
//
// All methods share a bit resolution; the range the levels cover is
// either derived from an overflow quantile (linear, log), the observed
// min/max (minmax, log_minmax), or fixed by a squashing function
// (tanh). Quantization is stable: feeding quantized data back through
// the same method reproduces it.
package quant

import (
	"fmt"
)

// Method selects the quantization grid.
type Method int

const (
	// None disables quantization; values pass through.
	None Method = iota
	// Linear snaps to a fixed-point grid scaled by the overflow
	// quantile of the data.
	Linear
	// Log applies the linear grid in log2 space, preserving sign.
	Log
	// LogMinMax applies the min/max grid in log2 space, preserving sign.
	LogMinMax
	// MinMax spreads 2^bits - 1 steps across the observed value range.
	MinMax
	// Tanh squashes through tanh, snaps to a mid-rise grid strictly
	// inside (-1, 1), and maps back through atanh.
	Tanh
)

func (m Method) String() string {
	switch m {
	case None:
		return ""
	case Linear:
		return "linear"
	case Log:
		return "log"
	case LogMinMax:
		return "log_minmax"
	case MinMax:
		return "minmax"
	case Tanh:
		return "tanh"
	default:
		return fmt.Sprintf("Method(%d)", int(m))
	}
}

// ParseMethod resolves a method name. The empty string means None.
func ParseMethod(s string) (Method, error) {
	switch s {
	case "":
		return None, nil
	case "linear":
		return Linear, nil
	case "log":
		return Log, nil
	case "log_minmax":
		return LogMinMax, nil
	case "minmax":
		return MinMax, nil
	case "tanh":
		return Tanh, nil
	default:
		return None, fmt.Errorf("quant: unknown method %q (want linear, log, log_minmax, minmax, or tanh)", s)
	}
}

// Apply quantizes x in place to the given bit resolution.
//
// overflowRate is the fraction of magnitudes allowed to exceed the
// representable range; only the quantile-scaled methods (linear, log)
// read it. Requires bits >= 1 and 0 <= overflowRate < 1.
func Apply(x []float64, bits int, overflowRate float64, method Method) {
	if method == None || len(x) == 0 {
		return
	}
	if bits < 1 {
		panic(fmt.Sprintf("quant: resolution must be >= 1 bit, got %d", bits))
	}
	if overflowRate < 0 || overflowRate >= 1 {
		panic(fmt.Sprintf("quant: overflow rate must be in [0, 1), got %v", overflowRate))
	}

	switch method {
	case Linear:
		linearQuantize(x, bits, overflowRate)
	case Log:
		logQuantize(x, bits, overflowRate, false)
	case LogMinMax:
		logQuantize(x, bits, 0, true)
	case MinMax:
		minMaxQuantize(x, bits)
	case Tanh:
		tanhQuantize(x, bits)
	default:
		panic(fmt.Sprintf("quant: unhandled method %v", method))
	}
}
