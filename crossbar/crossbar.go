// Copyright 2025 MemTorch Go Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package crossbar exposes the simulated resistive crossbar arrays the
// memristive layers are programmed onto.
//
// A Set holds either one crossbar (single-column scheme) or a
// positive/negative pair (double-column scheme), programmed once at
// construction and immutable afterwards. Reads go through an Accessor
// bound to the storage variant: monolithic arrays answer with one
// conductance matrix, tiled arrays with fixed-shape sub-tiles and a
// placement map.
//
// Layers build their crossbars through mn.NewConv3D; this package is
// for code that programs weight matrices directly or inspects a built
// Set.
//
// Example:
//
//	model := memristor.NewLinearIonDrift(memristor.DefaultROn, memristor.DefaultROff)
//	set, acc := crossbar.Build(weights, rows, cols, model, crossbar.Config{Transistor: true})
//	folded := acc.ReadConductances()
package crossbar

import (
	"github.com/arsalan1374/MemTorch/internal/crossbar"
	"github.com/arsalan1374/MemTorch/memristor"
	"github.com/arsalan1374/MemTorch/parallel"
)

// Scheme selects how signed weights are encoded on unsigned
// conductances.
type Scheme = crossbar.Scheme

// Weight-to-conductance mapping schemes.
const (
	// DoubleColumn splits each weight into positive and negative parts
	// on a crossbar pair; reads subtract the pair's currents.
	DoubleColumn Scheme = crossbar.DoubleColumn
	// SingleColumn offsets weights around the midpoint conductance and
	// subtracts a reference column current.
	SingleColumn Scheme = crossbar.SingleColumn
)

// Programming simulates the act of writing conductances into an array.
// It adjusts the programmed values in place; gOff and gOn are the
// device conductance bounds.
type Programming = crossbar.Programming

// Discretize returns a programming routine that snaps every
// conductance to the nearest of a fixed number of evenly spaced device
// states between the off and on conductance.
func Discretize(states int) Programming {
	return crossbar.Discretize(states)
}

// Config controls how Build programs a crossbar set.
type Config = crossbar.Config

// Crossbar is one programmed array: a conductance matrix in row-major
// order, stored whole or as zero-padded tiles.
type Crossbar = crossbar.Crossbar

// Set is the programmed realization of a weight matrix. Rows is the
// fan-in (wordlines driven by input voltages), Cols the output
// channels (bitlines). Scale converts folded conductances back to
// weight units.
type Set = crossbar.Set

// ADC describes the readout conversion applied to raw crossbar
// currents. A Method of quant.None leaves the readout analog.
type ADC = crossbar.ADC

// Conductances is the folded readout view of a Set: the differential
// pair (or reference offset) collapsed into one signed matrix, in
// weight order. Exactly one of Matrix or Tiles is populated.
type Conductances = crossbar.Conductances

// Accessor folds operations across the crossbars of a Set without
// exposing how they are stored. The two operations are fixed: read the
// folded conductance view, or push voltages through the device model.
type Accessor = crossbar.Accessor

// Build programs a crossbar set from a weight matrix and returns it
// together with the accessor bound to its storage variant. weights is
// row-major [rows, cols] with rows the fan-in and cols the output
// channels. Build runs once per layer; forward passes only read.
func Build(weights []float64, rows, cols int, model memristor.Model, cfg Config) (*Set, Accessor) {
	return crossbar.Build(weights, rows, cols, model, cfg)
}

// Restore rebuilds a programmed set from saved conductance matrices,
// one dense [rows, cols] matrix per crossbar, bypassing the weight
// mapping. scale and gRef must be the values recorded when the set was
// built. Retention and programming routines do not rerun; the saved
// conductances already reflect them.
func Restore(conductances [][]float64, rows, cols int, scheme Scheme, scale, gRef float64, model memristor.Model, cfg Config) (*Set, Accessor) {
	return crossbar.Restore(conductances, rows, cols, scheme, scale, gRef, model, cfg)
}

// MatMul multiplies a voltage matrix (row-major [n, Rows]) against a
// monolithic folded conductance matrix and returns the raw column
// currents [n, Cols]. Quantization and scaling are the caller's.
func MatMul(voltages []float64, n int, c Conductances) []float64 {
	return crossbar.MatMul(voltages, n, c)
}

// TileMatMul multiplies a voltage matrix (row-major [n, Rows]) against
// a tiled folded conductance view and returns the column currents
// [n, Cols] in weight order. Every tile readout (one voltage row
// against one tile) passes through the ADC before the partial products
// are accumulated digitally; scaling is the caller's.
func TileMatMul(voltages []float64, n int, c Conductances, adc ADC, par parallel.Config) []float64 {
	return crossbar.TileMatMul(voltages, n, c, adc, par)
}

// GenTiles splits a row-major matrix into fixed-shape tiles and a
// placement map. Edge tiles are zero-padded to the full tile shape;
// tileMap[r][c] indexes the tile covering row block r and column
// block c.
func GenTiles(m []float64, rows, cols int, shape [2]int) ([][]float64, [][]int) {
	return crossbar.GenTiles(m, rows, cols, shape)
}
