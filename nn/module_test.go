// Copyright 2025 MemTorch Go Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn_test

import (
	"testing"

	"github.com/arsalan1374/MemTorch/internal/backend/cpu"
	"github.com/arsalan1374/MemTorch/nn"
	"github.com/arsalan1374/MemTorch/tensor"
)

// TestModuleInterface verifies that concrete types implement Module interface.
func TestModuleInterface(t *testing.T) {
	backend := cpu.New()

	tests := []struct {
		name   string
		module nn.Module[*cpu.CPUBackend]
		input  tensor.Shape
	}{
		{
			name:   "Conv3D",
			module: nn.NewConv3D(2, 4, [3]int{3, 3, 3}, [3]int{1, 1, 1}, [3]int{0, 0, 0}, true, backend),
			input:  tensor.Shape{1, 2, 5, 5, 5},
		},
		{
			name:   "Conv3D_NoBias",
			module: nn.NewConv3D(1, 2, [3]int{2, 2, 2}, [3]int{1, 1, 1}, [3]int{1, 1, 1}, false, backend),
			input:  tensor.Shape{2, 1, 4, 4, 4},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Verify Forward works
			input := tensor.Randn[float32](tt.input, backend)
			out := tt.module.Forward(input)
			if out == nil {
				t.Fatal("Forward() returned nil")
			}

			// Verify Parameters works
			params := tt.module.Parameters()
			if params == nil {
				t.Error("Parameters() returned nil, expected non-nil slice")
			}
			for _, p := range params {
				if p.Name() == "" {
					t.Error("parameter has empty name")
				}
				if p.Tensor() == nil {
					t.Errorf("parameter %q has nil tensor", p.Name())
				}
			}
		})
	}
}

// TestNewParameter verifies the public parameter constructor.
func TestNewParameter(t *testing.T) {
	backend := cpu.New()

	w := nn.Zeros(tensor.Shape{4, 2}, backend)
	p := nn.NewParameter("conv3d.weight", w)

	if p.Name() != "conv3d.weight" {
		t.Errorf("Name() = %q, want %q", p.Name(), "conv3d.weight")
	}
	if p.Tensor() != w {
		t.Error("Tensor() did not return the wrapped tensor")
	}
	if p.Frozen() {
		t.Error("Frozen() = true for a fresh parameter, want false")
	}

	p.Freeze()
	if !p.Frozen() {
		t.Error("Frozen() = false after Freeze(), want true")
	}
}

// TestXavierInit verifies initialization helpers produce bounded values.
func TestXavierInit(t *testing.T) {
	backend := cpu.New()

	w := nn.Xavier(27, 54, tensor.Shape{2, 1, 3, 3, 3}, backend)
	if !w.Shape().Equal(tensor.Shape{2, 1, 3, 3, 3}) {
		t.Fatalf("Xavier() shape = %v, want [2 1 3 3 3]", w.Shape())
	}

	// Xavier uniform bound for fanIn=27, fanOut=54 is sqrt(6/81) < 0.273.
	for i, v := range w.Data() {
		if v < -0.3 || v > 0.3 {
			t.Errorf("Xavier() data[%d] = %v, outside expected bound", i, v)
		}
	}
}
