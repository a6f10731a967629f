package serialization

import (
	"errors"
	"strings"
	"testing"
)

// TestValidateTensorOffsets_NoOverlap verifies that valid directories pass.
func TestValidateTensorOffsets_NoOverlap(t *testing.T) {
	tensors := []TensorMeta{
		{Name: "weight", Offset: 0, Size: 100},
		{Name: "bias", Offset: 100, Size: 200},
		{Name: "crossbar.0", Offset: 300, Size: 150},
	}
	dataSize := int64(500)

	err := ValidateTensorOffsets(tensors, dataSize)
	if err != nil {
		t.Errorf("Expected no error for valid tensors, got: %v", err)
	}
}

// TestValidateTensorOffsets_Overlap detects overlapping tensor regions.
func TestValidateTensorOffsets_Overlap(t *testing.T) {
	tests := []struct {
		name     string
		tensors  []TensorMeta
		dataSize int64
		wantErr  bool
	}{
		{
			name: "complete overlap",
			tensors: []TensorMeta{
				{Name: "weight", Offset: 0, Size: 100},
				{Name: "bias", Offset: 50, Size: 100},
			},
			dataSize: 200,
			wantErr:  true,
		},
		{
			name: "partial overlap at boundary",
			tensors: []TensorMeta{
				{Name: "weight", Offset: 0, Size: 100},
				{Name: "bias", Offset: 99, Size: 100},
			},
			dataSize: 200,
			wantErr:  true,
		},
		{
			name: "exact boundary (no overlap)",
			tensors: []TensorMeta{
				{Name: "weight", Offset: 0, Size: 100},
				{Name: "bias", Offset: 100, Size: 100},
			},
			dataSize: 200,
			wantErr:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTensorOffsets(tt.tensors, tt.dataSize)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateTensorOffsets() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				var validationErr *ValidationError
				if !errors.As(err, &validationErr) {
					t.Errorf("Expected ValidationError, got %T", err)
				}
				if validationErr != nil && validationErr.Type != "offset_overlap" {
					t.Errorf("Expected offset_overlap error, got %s", validationErr.Type)
				}
			}
		})
	}
}

// TestValidateTensorOffsets_OutOfBounds detects tensors extending beyond
// the data section.
func TestValidateTensorOffsets_OutOfBounds(t *testing.T) {
	tests := []struct {
		name     string
		tensors  []TensorMeta
		dataSize int64
		wantErr  bool
	}{
		{
			name: "tensor extends beyond data",
			tensors: []TensorMeta{
				{Name: "weight", Offset: 0, Size: 100},
				{Name: "bias", Offset: 100, Size: 200},
			},
			dataSize: 250,
			wantErr:  true,
		},
		{
			name: "large offset beyond data",
			tensors: []TensorMeta{
				{Name: "weight", Offset: 1000, Size: 100},
			},
			dataSize: 500,
			wantErr:  true,
		},
		{
			name: "tensor fits exactly",
			tensors: []TensorMeta{
				{Name: "weight", Offset: 0, Size: 500},
			},
			dataSize: 500,
			wantErr:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTensorOffsets(tt.tensors, tt.dataSize)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateTensorOffsets() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && tt.wantErr {
				var validationErr *ValidationError
				if !errors.As(err, &validationErr) {
					t.Errorf("Expected ValidationError, got %T", err)
				}
				if validationErr != nil && validationErr.Type != "out_of_bounds" {
					t.Errorf("Expected out_of_bounds error, got %s", validationErr.Type)
				}
			}
		})
	}
}

// TestValidateTensorOffsets_NegativeValues detects negative offsets or sizes.
func TestValidateTensorOffsets_NegativeValues(t *testing.T) {
	tests := []struct {
		name    string
		tensors []TensorMeta
	}{
		{
			name:    "negative offset",
			tensors: []TensorMeta{{Name: "weight", Offset: -100, Size: 100}},
		},
		{
			name:    "negative size",
			tensors: []TensorMeta{{Name: "weight", Offset: 0, Size: -100}},
		},
		{
			name:    "both negative",
			tensors: []TensorMeta{{Name: "weight", Offset: -100, Size: -100}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTensorOffsets(tt.tensors, 500)
			if err == nil {
				t.Fatalf("Expected error for negative values, got nil")
			}
			var validationErr *ValidationError
			if !errors.As(err, &validationErr) {
				t.Errorf("Expected ValidationError, got %T", err)
			}
			if validationErr != nil && validationErr.Type != "negative_offset" {
				t.Errorf("Expected negative_offset error, got %s", validationErr.Type)
			}
		})
	}
}

// TestValidateTensorOffsets_TooManyTensors caps the directory size.
func TestValidateTensorOffsets_TooManyTensors(t *testing.T) {
	tensors := make([]TensorMeta, MaxTensorCount+1)
	for i := range tensors {
		tensors[i] = TensorMeta{
			Name:   "tensor",
			Offset: int64(i * 100),
			Size:   100,
		}
	}
	dataSize := int64((MaxTensorCount + 1) * 100)

	err := ValidateTensorOffsets(tensors, dataSize)
	if err == nil {
		t.Fatalf("Expected error for too many tensors, got nil")
	}
	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Errorf("Expected ValidationError, got %T", err)
	}
	if validationErr != nil && validationErr.Type != "too_many_tensors" {
		t.Errorf("Expected too_many_tensors error, got %s", validationErr.Type)
	}
}

// TestValidateTensorName_PathTraversal rejects hostile names.
func TestValidateTensorName_PathTraversal(t *testing.T) {
	badNames := []string{
		"../../../etc/passwd",
		"..\\..\\windows\\system32",
		"tensor/../secret",
		"crossbar/0/g",
		"layer\\weight",
		"tensor\x00hidden",
		strings.Repeat("a", MaxTensorNameLen+1),
	}

	for _, name := range badNames {
		t.Run(name, func(t *testing.T) {
			err := ValidateTensorName(name)
			if err == nil {
				t.Fatalf("Expected error for malicious name %q, got nil", name)
			}
			var validationErr *ValidationError
			if !errors.As(err, &validationErr) {
				t.Errorf("Expected ValidationError, got %T", err)
			}
			if validationErr != nil && validationErr.Type != "invalid_name" && validationErr.Type != "name_too_long" {
				t.Errorf("Expected invalid_name or name_too_long error, got %s", validationErr.Type)
			}
		})
	}
}

// TestValidateTensorName_ValidNames ensures snapshot names are accepted.
func TestValidateTensorName_ValidNames(t *testing.T) {
	validNames := []string{
		"weight",
		"bias",
		"crossbar.0",
		"crossbar.1",
		"with_numbers_123",
		"UPPERCASE",
	}

	for _, name := range validNames {
		t.Run(name, func(t *testing.T) {
			if err := ValidateTensorName(name); err != nil {
				t.Errorf("Expected no error for valid name %q, got: %v", name, err)
			}
		})
	}
}

// TestValidateHeader checks the combined directory validation.
func TestValidateHeader(t *testing.T) {
	tests := []struct {
		name     string
		header   Header
		dataSize int64
		wantErr  bool
	}{
		{
			name: "valid header",
			header: Header{
				Tensors: []TensorMeta{
					{Name: "weight", Offset: 0, Size: 100},
					{Name: "bias", Offset: 100, Size: 100},
				},
			},
			dataSize: 200,
			wantErr:  false,
		},
		{
			name: "overlapping tensors",
			header: Header{
				Tensors: []TensorMeta{
					{Name: "weight", Offset: 0, Size: 100},
					{Name: "bias", Offset: 50, Size: 100},
				},
			},
			dataSize: 200,
			wantErr:  true,
		},
		{
			name: "invalid tensor name",
			header: Header{
				Tensors: []TensorMeta{
					{Name: "../malicious", Offset: 0, Size: 100},
				},
			},
			dataSize: 100,
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateHeader(&tt.header, tt.dataSize)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateHeader() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

// TestValidationError_ErrorMessages verifies error message formatting.
func TestValidationError_ErrorMessages(t *testing.T) {
	tests := []struct {
		name     string
		err      *ValidationError
		expected string
	}{
		{
			name: "single tensor error",
			err: &ValidationError{
				Type:    "out_of_bounds",
				Tensor:  "weight",
				Details: "offset 100 + size 200 > data_size 250",
			},
			expected: `out_of_bounds: tensor "weight": offset 100 + size 200 > data_size 250`,
		},
		{
			name: "two tensor error (overlap)",
			err: &ValidationError{
				Type:    "offset_overlap",
				Tensor:  "weight",
				Tensor2: "bias",
				Details: "regions [0-100] and [50-150] overlap",
			},
			expected: `offset_overlap: tensors "weight" and "bias": regions [0-100] and [50-150] overlap`,
		},
		{
			name: "general error (no tensor)",
			err: &ValidationError{
				Type:    "too_many_tensors",
				Details: "got 4097, max 4096",
			},
			expected: "too_many_tensors: got 4097, max 4096",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actual := tt.err.Error()
			if actual != tt.expected {
				t.Errorf("Error message mismatch\nExpected: %s\nGot:      %s", tt.expected, actual)
			}
		})
	}
}

// FuzzValidateTensorName ensures name validation never panics on random input.
func FuzzValidateTensorName(f *testing.F) {
	f.Add("weight")
	f.Add("../malicious")
	f.Add("path/to/tensor")
	f.Add(strings.Repeat("a", MaxTensorNameLen))
	f.Add("\x00null_byte")
	f.Add("..\\windows")

	f.Fuzz(func(_ *testing.T, name string) {
		_ = ValidateTensorName(name)
	})
}

// FuzzValidateTensorOffsets ensures offset validation never panics.
func FuzzValidateTensorOffsets(f *testing.F) {
	f.Add(int64(0), int64(100), int64(200))
	f.Add(int64(-100), int64(50), int64(1000))
	f.Add(int64(100), int64(-50), int64(1000))

	f.Fuzz(func(_ *testing.T, offset1, size1, dataSize int64) {
		tensors := []TensorMeta{
			{Name: "fuzz_tensor", Offset: offset1, Size: size1},
		}
		_ = ValidateTensorOffsets(tensors, dataSize)
	})
}
