package quant

import (
	"math"
	"sort"
)

// Magnitudes at or below this floor are treated as zero when sizing
// log-domain and quantile-derived grids.
const (
	minMagnitude = 1e-12
	logGuard     = 1e-20
)

// linearQuantize snaps x to signed multiples of 2^-sf, where
// sf = bits - 1 - intBits and intBits is the number of integer bits
// needed to cover the overflow quantile of the data.
func linearQuantize(x []float64, bits int, overflowRate float64) {
	sf := bits - 1 - integralBits(overflowQuantile(x, overflowRate))
	delta := math.Pow(2, float64(-sf))
	bound := math.Pow(2, float64(bits-1)) - 1
	for i, v := range x {
		r := math.Floor(v/delta + 0.5)
		if r > bound {
			r = bound
		} else if r < -bound {
			r = -bound
		}
		x[i] = r * delta
	}
}

// integralBits returns how many bits the integer part of a magnitude
// needs. Exact powers of two count as overflowing into the next bit so
// full-scale values survive the symmetric clamp.
func integralBits(v float64) int {
	if v < minMagnitude {
		v = minMagnitude
	}
	return int(math.Floor(math.Log2(v))) + 1
}

// overflowQuantile returns the magnitude that rate (a fraction in
// [0, 1)) of the values exceed.
func overflowQuantile(x []float64, rate float64) float64 {
	mags := make([]float64, len(x))
	for i, v := range x {
		mags[i] = math.Abs(v)
	}
	sort.Float64s(mags)
	idx := len(mags) - 1 - int(rate*float64(len(mags)))
	if idx < 0 {
		idx = 0
	}
	return mags[idx]
}

// minMaxQuantize spreads 2^bits - 1 uniform steps between the observed
// minimum and maximum. Both endpoints are representable, so the range
// survives requantization.
func minMaxQuantize(x []float64, bits int) {
	lo, hi := x[0], x[0]
	for _, v := range x[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	if hi == lo {
		return
	}
	steps := math.Pow(2, float64(bits)) - 1
	span := hi - lo
	for i, v := range x {
		x[i] = lo + math.Round((v-lo)/span*steps)/steps*span
	}
}

// logQuantize quantizes the magnitudes of x on a log2 grid and restores
// signs afterwards. Zeros stay zero. The grid inside the log domain is
// either quantile-scaled (linear) or min/max.
func logQuantize(x []float64, bits int, overflowRate float64, useMinMax bool) {
	logs := make([]float64, len(x))
	for i, v := range x {
		logs[i] = math.Log2(math.Abs(v) + logGuard)
	}
	if useMinMax {
		minMaxQuantize(logs, bits)
	} else {
		linearQuantize(logs, bits, overflowRate)
	}
	for i, v := range x {
		x[i] = sign(v) * math.Pow(2, logs[i])
	}
}

// tanhQuantize squashes values through tanh, snaps to a mid-rise grid
// of 2^bits levels strictly inside (-1, 1), and maps the level back
// through atanh. Keeping the levels off the endpoints avoids infinities
// and makes a second pass land on the same level.
func tanhQuantize(x []float64, bits int) {
	levels := math.Pow(2, float64(bits))
	for i, v := range x {
		u := (math.Tanh(v) + 1) / 2
		k := math.Floor(u * levels)
		if k > levels-1 {
			k = levels - 1
		} else if k < 0 {
			k = 0
		}
		x[i] = math.Atanh(2*(k+0.5)/levels - 1)
	}
}

func sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}
