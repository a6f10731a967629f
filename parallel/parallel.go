// Copyright 2025 MemTorch Go Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package parallel provides the worker pool configuration used by the
// simulation pipeline.
//
// Crossbar read-out loops, batch loops and tile loops take a Config
// that decides whether they fan out over goroutines. Layers accept a
// Config through mn.Config.Parallel.
//
// Example:
//
//	cfg := mn.DefaultConfig()
//	cfg.Parallel = parallel.CoarseConfig()  // one goroutine per batch element
package parallel

import (
	"github.com/arsalan1374/MemTorch/internal/parallel"
)

// Config controls parallel execution behavior.
type Config = parallel.Config

// DefaultConfig returns sensible defaults based on CPU count.
func DefaultConfig() Config {
	return parallel.DefaultConfig()
}

// CoarseConfig returns defaults for loops with few, heavy iterations,
// such as one crossbar simulation per batch element. Every iteration is
// eligible for its own goroutine regardless of count.
func CoarseConfig() Config {
	return parallel.CoarseConfig()
}

// For executes f(i) for i in [0, n) with optional parallelism.
// Falls back to sequential execution if parallelism is disabled or n is too small.
func For(n int, f func(i int), cfg Config) {
	parallel.For(n, f, cfg)
}

// ForGrid executes f(r, c) over an rows x cols grid.
// Used for per-tile work across a partitioned crossbar.
func ForGrid(rows, cols int, f func(r, c int), cfg Config) {
	parallel.ForGrid(rows, cols, f, cfg)
}
