// Copyright 2025 MemTorch Go Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package mn_test

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/arsalan1374/MemTorch/backend/cpu"
	"github.com/arsalan1374/MemTorch/crossbar"
	"github.com/arsalan1374/MemTorch/memristor"
	"github.com/arsalan1374/MemTorch/mn"
	"github.com/arsalan1374/MemTorch/nn"
	"github.com/arsalan1374/MemTorch/tensor"
)

// TestModuleInterface verifies the simulated layer satisfies nn.Module.
func TestModuleInterface(_ *testing.T) {
	var _ nn.Module[*cpu.Backend] = (*mn.Conv3D[*cpu.Backend])(nil)
}

// TestPublicPipeline runs patch, simulate, tune and snapshot through
// the public API only.
func TestPublicPipeline(t *testing.T) {
	backend := cpu.New()

	dense := nn.NewConv3D(2, 3, [3]int{3, 3, 3}, [3]int{1, 1, 1}, [3]int{1, 1, 1}, true, backend)
	model := memristor.NewLinearIonDrift(memristor.DefaultROn, memristor.DefaultROff)

	cfg := mn.DefaultConfig()
	cfg.Scheme = crossbar.SingleColumn
	layer := mn.NewConv3D(dense, model, cfg)

	if !layer.LegacyMode() {
		t.Fatal("LegacyMode() = false for a fresh layer, want true")
	}
	layer.SetLegacyMode(false)

	input := tensor.Rand[float32](tensor.Shape{2, 2, 6, 6, 6}, backend)
	out := layer.Forward(input)
	if !out.Shape().Equal(tensor.Shape{2, 3, 6, 6, 6}) {
		t.Fatalf("Forward() shape = %v, want [2 3 6 6 6]", out.Shape())
	}

	// Ideal arrays reproduce the dense result closely.
	ref := dense.Forward(input)
	for i, v := range out.Data() {
		d := float64(v - ref.Data()[i])
		if d < -1e-3 || d > 1e-3 {
			t.Fatalf("simulated output[%d] = %v, dense %v", i, v, ref.Data()[i])
		}
	}

	layer.TuneDefault()
	if layer.Transform().Kind != mn.Affine {
		t.Errorf("Transform().Kind = %v after TuneDefault, want Affine", layer.Transform().Kind)
	}

	// Snapshot round-trip through the public entry points.
	path := filepath.Join(t.TempDir(), "layer.mt")
	if err := layer.Save(path); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}
	restored, err := mn.Load(path, model, backend)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if restored.String() != layer.String() {
		t.Errorf("restored String() = %q, want %q", restored.String(), layer.String())
	}

	got := restored.Forward(input)
	want := layer.Forward(input)
	for i, v := range got.Data() {
		if v != want.Data()[i] {
			t.Fatalf("restored output[%d] = %v, want %v (must be exact)", i, v, want.Data()[i])
		}
	}
}

// TestLoadErrorSentinels verifies the re-exported sentinels match.
func TestLoadErrorSentinels(t *testing.T) {
	backend := cpu.New()
	model := memristor.NewLinearIonDrift(memristor.DefaultROn, memristor.DefaultROff)

	_, err := mn.Load(filepath.Join(t.TempDir(), "missing.mt"), model, backend)
	if err == nil {
		t.Fatal("Load() of a missing file succeeded")
	}
	if errors.Is(err, mn.ErrInvalidMagic) || errors.Is(err, mn.ErrChecksumMismatch) {
		t.Errorf("Load() of a missing file returned a format sentinel: %v", err)
	}
}
