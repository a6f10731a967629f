// Copyright 2025 MemTorch Go Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package quant exposes the ADC quantization methods applied to raw
// crossbar read currents.
//
// Layers usually select a method by name through mn.Config.QuantMethod
// ("linear", "log", "log_minmax", "minmax" or "tanh"); this package is
// for code that inspects a built crossbar.ADC or quantizes data
// directly.
package quant

import (
	"github.com/arsalan1374/MemTorch/internal/quant"
)

// Method selects the quantization grid.
type Method = quant.Method

// Quantization methods.
const (
	// None disables quantization; values pass through.
	None Method = quant.None
	// Linear snaps to a fixed-point grid scaled by the overflow
	// quantile of the data.
	Linear Method = quant.Linear
	// Log applies the linear grid in log2 space, preserving sign.
	Log Method = quant.Log
	// LogMinMax applies the min/max grid in log2 space, preserving sign.
	LogMinMax Method = quant.LogMinMax
	// MinMax spreads 2^bits - 1 steps across the observed value range.
	MinMax Method = quant.MinMax
	// Tanh squashes through tanh, snaps to a mid-rise grid strictly
	// inside (-1, 1), and maps back through atanh.
	Tanh Method = quant.Tanh
)

// ParseMethod resolves a method name. The empty string means None.
func ParseMethod(s string) (Method, error) {
	return quant.ParseMethod(s)
}

// Apply quantizes x in place with the given bit resolution, overflow
// rate and method. None leaves x untouched.
func Apply(x []float64, bits int, overflowRate float64, method Method) {
	quant.Apply(x, bits, overflowRate, method)
}
