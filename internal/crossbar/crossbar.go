// Package crossbar maps frozen convolution weights onto simulated
// resistive crossbar arrays and performs the analog matrix multiplies
// against them.
//
// A Set holds either one crossbar (single-column scheme) or a
// positive/negative pair (double-column scheme), programmed once at
// construction and immutable afterwards. Reads go through an Accessor
// bound to the storage variant: monolithic arrays answer with one
// conductance matrix, tiled arrays with fixed-shape sub-tiles and a
// placement map.
package crossbar

import (
	"fmt"
	"math"
	"sort"

	"github.com/arsalan1374/MemTorch/internal/memristor"
	"github.com/arsalan1374/MemTorch/internal/parallel"
)

// Scheme selects how signed weights are encoded on unsigned
// conductances.
type Scheme int

const (
	// DoubleColumn splits each weight into positive and negative parts
	// on a crossbar pair; reads subtract the pair's currents.
	DoubleColumn Scheme = iota
	// SingleColumn offsets weights around the midpoint conductance and
	// subtracts a reference column current.
	SingleColumn
)

func (s Scheme) String() string {
	switch s {
	case DoubleColumn:
		return "double_column"
	case SingleColumn:
		return "single_column"
	default:
		return fmt.Sprintf("Scheme(%d)", int(s))
	}
}

// Programming simulates the act of writing conductances into an array.
// It adjusts the programmed values in place; gOff and gOn are the
// device conductance bounds.
type Programming func(g []float64, gOff, gOn float64)

// Discretize returns a programming routine that snaps every
// conductance to the nearest of a fixed number of evenly spaced device
// states between the off and on conductance.
func Discretize(states int) Programming {
	if states < 2 {
		panic(fmt.Sprintf("crossbar: discretization needs at least 2 states, got %d", states))
	}
	return func(g []float64, gOff, gOn float64) {
		step := (gOn - gOff) / float64(states-1)
		for i, v := range g {
			snapped := gOff + math.Round((v-gOff)/step)*step
			if snapped < gOff {
				snapped = gOff
			} else if snapped > gOn {
				snapped = gOn
			}
			g[i] = snapped
		}
	}
}

// Config controls how Build programs a crossbar set.
type Config struct {
	Scheme    Scheme
	TileShape [2]int // {0, 0} keeps the array monolithic

	// Transistor selects a 1T1R array. Resistor-only arrays (false)
	// cannot be written cell-addressed and require a Programming
	// routine to model the write disturbance.
	Transistor  bool
	Programming Programming

	// RetainFraction keeps only the largest-magnitude fraction of
	// weights before mapping; 0 disables retention.
	RetainFraction float64

	ADC      ADC
	Parallel parallel.Config
}

// Crossbar is one programmed array: a conductance matrix in row-major
// order, stored whole or as zero-padded tiles.
type Crossbar struct {
	Rows, Cols int

	// G holds the monolithic conductances; nil when tiled.
	G []float64

	// Tiles and TileMap hold the tiled storage: TileMap[r][c] indexes
	// the tile covering row block r and column block c.
	Tiles     [][]float64
	TileMap   [][]int
	TileShape [2]int
}

// Set is the programmed realization of a weight matrix. Rows is the
// fan-in (wordlines driven by input voltages), Cols the output
// channels (bitlines). Scale converts folded conductances back to
// weight units.
type Set struct {
	Scheme     Scheme
	Rows, Cols int
	Crossbars  []*Crossbar
	Scale      float64

	// GRef is the single-column reference conductance; zero for the
	// double-column scheme.
	GRef      float64
	GOff, GOn float64
}

// Build programs a crossbar set from a weight matrix and returns it
// together with the accessor bound to its storage variant. weights is
// row-major [rows, cols] with rows the fan-in and cols the output
// channels. Build runs once per layer; forward passes only read.
func Build(weights []float64, rows, cols int, model memristor.Model, cfg Config) (*Set, Accessor) {
	if model == nil {
		panic("crossbar: device model must not be nil")
	}
	if rows < 1 || cols < 1 {
		panic(fmt.Sprintf("crossbar: array extents must be positive, got %dx%d", rows, cols))
	}
	if len(weights) != rows*cols {
		panic(fmt.Sprintf("crossbar: weight matrix has %d values, want %d rows x %d cols", len(weights), rows, cols))
	}
	if cfg.Scheme != DoubleColumn && cfg.Scheme != SingleColumn {
		panic(fmt.Sprintf("crossbar: unknown scheme %d", int(cfg.Scheme)))
	}
	if cfg.RetainFraction < 0 || cfg.RetainFraction > 1 {
		panic(fmt.Sprintf("crossbar: retain fraction must be in (0, 1], got %v", cfg.RetainFraction))
	}
	if th, tw := cfg.TileShape[0], cfg.TileShape[1]; th < 0 || tw < 0 || (th == 0) != (tw == 0) {
		panic(fmt.Sprintf("crossbar: tile shape needs two positive extents or two zeros, got %v", cfg.TileShape))
	}
	if !cfg.Transistor && cfg.Programming == nil {
		panic("crossbar: resistor-only arrays need a programming routine")
	}

	w := append([]float64(nil), weights...)
	retainLargest(w, cfg.RetainFraction)

	gOff, gOn := model.ConductanceBounds()
	if gOff <= 0 || gOn <= gOff {
		panic(fmt.Sprintf("crossbar: device bounds must satisfy 0 < gOff < gOn, got %v and %v", gOff, gOn))
	}
	span := gOn - gOff
	absMax := maxAbs(w)
	norm := 0.0
	if absMax > 0 {
		norm = 1 / absMax
	}

	set := &Set{
		Scheme: cfg.Scheme,
		Rows:   rows,
		Cols:   cols,
		GOff:   gOff,
		GOn:    gOn,
	}
	switch cfg.Scheme {
	case DoubleColumn:
		pos := make([]float64, len(w))
		neg := make([]float64, len(w))
		for i, v := range w {
			pos[i] = gOff
			neg[i] = gOff
			if v > 0 {
				pos[i] += v * norm * span
			} else if v < 0 {
				neg[i] -= v * norm * span
			}
		}
		set.Scale = absMax / span
		set.Crossbars = []*Crossbar{
			{Rows: rows, Cols: cols, G: pos},
			{Rows: rows, Cols: cols, G: neg},
		}
	case SingleColumn:
		gRef := (gOn + gOff) / 2
		half := span / 2
		g := make([]float64, len(w))
		for i, v := range w {
			g[i] = gRef + v*norm*half
		}
		set.GRef = gRef
		set.Scale = 2 * absMax / span
		set.Crossbars = []*Crossbar{{Rows: rows, Cols: cols, G: g}}
	}

	if cfg.Programming != nil {
		for _, cb := range set.Crossbars {
			cfg.Programming(cb.G, gOff, gOn)
		}
	}

	return set, finalize(set, model, cfg.TileShape, cfg.ADC, cfg.Parallel)
}

// finalize applies the tile partitioning and binds the accessor to the
// set's storage variant.
func finalize(set *Set, model memristor.Model, tileShape [2]int, adc ADC, par parallel.Config) Accessor {
	if tileShape[0] > 0 {
		for _, cb := range set.Crossbars {
			cb.Tiles, cb.TileMap = GenTiles(cb.G, set.Rows, set.Cols, tileShape)
			cb.TileShape = tileShape
			cb.G = nil
		}
		return &tiledAccessor{set: set, model: model, adc: adc, par: par}
	}
	return &monolithicAccessor{set: set, model: model, adc: adc, par: par}
}

// Restore rebuilds a programmed set from saved conductance matrices,
// one dense [rows, cols] matrix per crossbar, bypassing the weight
// mapping. scale and gRef must be the values recorded when the set was
// built. Retention and programming routines do not rerun; the saved
// conductances already reflect them.
func Restore(conductances [][]float64, rows, cols int, scheme Scheme, scale, gRef float64, model memristor.Model, cfg Config) (*Set, Accessor) {
	if model == nil {
		panic("crossbar: device model must not be nil")
	}
	if rows < 1 || cols < 1 {
		panic(fmt.Sprintf("crossbar: array extents must be positive, got %dx%d", rows, cols))
	}
	var want int
	switch scheme {
	case DoubleColumn:
		want = 2
	case SingleColumn:
		want = 1
	default:
		panic(fmt.Sprintf("crossbar: unknown scheme %d", int(scheme)))
	}
	if len(conductances) != want {
		panic(fmt.Sprintf("crossbar: %s restore needs %d conductance matrices, got %d", scheme, want, len(conductances)))
	}
	if th, tw := cfg.TileShape[0], cfg.TileShape[1]; th < 0 || tw < 0 || (th == 0) != (tw == 0) {
		panic(fmt.Sprintf("crossbar: tile shape needs two positive extents or two zeros, got %v", cfg.TileShape))
	}
	gOff, gOn := model.ConductanceBounds()
	if gOff <= 0 || gOn <= gOff {
		panic(fmt.Sprintf("crossbar: device bounds must satisfy 0 < gOff < gOn, got %v and %v", gOff, gOn))
	}

	set := &Set{
		Scheme: scheme,
		Rows:   rows,
		Cols:   cols,
		Scale:  scale,
		GRef:   gRef,
		GOff:   gOff,
		GOn:    gOn,
	}
	set.Crossbars = make([]*Crossbar, len(conductances))
	for i, g := range conductances {
		if len(g) != rows*cols {
			panic(fmt.Sprintf("crossbar: conductance matrix %d has %d values, want %d rows x %d cols", i, len(g), rows, cols))
		}
		set.Crossbars[i] = &Crossbar{Rows: rows, Cols: cols, G: append([]float64(nil), g...)}
	}
	return set, finalize(set, model, cfg.TileShape, cfg.ADC, cfg.Parallel)
}

// retainLargest zeroes all but the largest-magnitude fraction of w.
// Ties at the cutoff magnitude are retained.
func retainLargest(w []float64, fraction float64) {
	if fraction <= 0 || fraction >= 1 {
		return
	}
	mags := make([]float64, len(w))
	for i, v := range w {
		mags[i] = math.Abs(v)
	}
	sort.Sort(sort.Reverse(sort.Float64Slice(mags)))
	keep := int(math.Ceil(fraction * float64(len(w))))
	if keep >= len(w) {
		return
	}
	cutoff := mags[keep-1]
	for i, v := range w {
		if math.Abs(v) < cutoff {
			w[i] = 0
		}
	}
}

func maxAbs(x []float64) float64 {
	m := 0.0
	for _, v := range x {
		if a := math.Abs(v); a > m {
			m = a
		}
	}
	return m
}
