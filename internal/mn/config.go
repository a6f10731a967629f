package mn

import (
	"fmt"

	"github.com/arsalan1374/MemTorch/internal/crossbar"
	"github.com/arsalan1374/MemTorch/internal/parallel"
	"github.com/arsalan1374/MemTorch/internal/quant"
)

// Config controls how a dense layer is mapped onto crossbar hardware
// and how the simulated forward pass reads it back. DefaultConfig is
// the usual starting point; the zero value describes a resistor-only
// array and needs a Programming routine before it can build.
type Config struct {
	// Scheme selects the weight-to-conductance mapping.
	Scheme crossbar.Scheme

	// TileShape partitions each array into fixed-shape tiles; the zero
	// value keeps the array monolithic.
	TileShape [2]int

	// MaxInputVoltage bounds the read voltages driven onto wordlines.
	// When positive, each batch element is rescaled from its value
	// range onto [-V, +V] before it reaches the array; zero disables
	// the bound.
	MaxInputVoltage float64

	// ADCResolution, ADCOverflowRate and QuantMethod configure the
	// converter that digitizes read currents. QuantMethod is one of
	// "linear", "log", "log_minmax", "minmax" or "tanh"; empty disables
	// quantization and the other two fields are ignored.
	ADCResolution   int
	ADCOverflowRate float64
	QuantMethod     string

	// Transistor selects 1T1R arrays. Resistor-only arrays require a
	// Programming routine.
	Transistor  bool
	Programming crossbar.Programming

	// RetainFraction keeps only the largest-magnitude fraction of
	// weights before mapping; 0 disables retention.
	RetainFraction float64

	// Parallel configures the worker pool for batch and tile loops.
	// The zero value is promoted to parallel.DefaultConfig().
	Parallel parallel.Config

	// Verbose reports patch and tune summaries through slog.
	Verbose bool
}

// DefaultConfig returns the ideal-simulation defaults: double-column
// mapping on 1T1R arrays, monolithic storage, no quantization,
// CPU-count parallelism.
func DefaultConfig() Config {
	return Config{Transistor: true, Parallel: parallel.DefaultConfig()}
}

// resolve validates the config and returns its normalized pieces: the
// ADC with the quantization method parsed, and the worker pool config
// with the zero value promoted to defaults. Violations panic; a layer
// must not come up half-configured.
func (c Config) resolve() (crossbar.ADC, parallel.Config) {
	if c.MaxInputVoltage < 0 {
		panic(fmt.Sprintf("mn: max input voltage must be >= 0 (0 disables the bound), got %v", c.MaxInputVoltage))
	}

	method, err := quant.ParseMethod(c.QuantMethod)
	if err != nil {
		panic(fmt.Sprintf("mn: %v", err))
	}
	var adc crossbar.ADC
	if method != quant.None {
		if c.ADCResolution < 1 {
			panic(fmt.Sprintf("mn: ADC resolution must be >= 1 bit when a quantization method is set, got %d", c.ADCResolution))
		}
		if c.ADCOverflowRate < 0 || c.ADCOverflowRate >= 1 {
			panic(fmt.Sprintf("mn: ADC overflow rate must be in [0, 1), got %v", c.ADCOverflowRate))
		}
		adc = crossbar.ADC{
			Bits:         c.ADCResolution,
			OverflowRate: c.ADCOverflowRate,
			Method:       method,
		}
	}

	par := c.Parallel
	if par == (parallel.Config{}) {
		par = parallel.DefaultConfig()
	}

	return adc, par
}
