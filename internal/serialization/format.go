package serialization

import (
	"time"

	"github.com/arsalan1374/MemTorch/internal/tensor"
)

// Format constants.
const (
	MagicBytes      = "MEMT"
	FormatVersion   = 1
	FixedHeaderSize = 64   // magic, version, flags, sizes, checksum
	HeaderAlignment = 64   // tensor data starts on a 64-byte boundary
	ChecksumSize    = 32   // SHA-256
	ChecksumOffset  = 0x20 // checksum position in the fixed header
)

// Data type string constants for the JSON header.
const (
	DTypeFloat32 = "float32"
	DTypeFloat64 = "float64"
)

// Header is the JSON header of a snapshot file.
type Header struct {
	FormatVersion int               `json:"format_version"`
	CreatedAt     time.Time         `json:"created_at"`
	Layer         string            `json:"layer"`    // layer descriptor string
	Tensors       []TensorMeta      `json:"tensors"`  // tensor directory
	Metadata      map[string]string `json:"metadata"` // layer config and calibration state
}

// TensorMeta describes one tensor in the data section.
type TensorMeta struct {
	Name   string `json:"name"`
	DType  string `json:"dtype"`
	Shape  []int  `json:"shape"`
	Offset int64  `json:"offset"` // bytes from the start of the data section
	Size   int64  `json:"size"`   // bytes
}

// Snapshot is the in-memory form of a snapshot file: named tensors plus
// string metadata. The layer packages decide what goes in; this package
// only moves it to and from disk intact.
type Snapshot struct {
	Layer    string
	Tensors  map[string]*tensor.RawTensor
	Metadata map[string]string
}

func dtypeToString(dt tensor.DataType) (string, bool) {
	switch dt {
	case tensor.Float32:
		return DTypeFloat32, true
	case tensor.Float64:
		return DTypeFloat64, true
	default:
		return "", false
	}
}

func stringToDtype(s string) (tensor.DataType, bool) {
	switch s {
	case DTypeFloat32:
		return tensor.Float32, true
	case DTypeFloat64:
		return tensor.Float64, true
	default:
		return 0, false
	}
}
