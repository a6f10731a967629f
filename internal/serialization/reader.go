package serialization

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/arsalan1374/MemTorch/internal/tensor"
)

// Read parses a snapshot. The whole data section is read and its
// checksum verified before any tensor is handed out; device says where
// the restored tensors are allocated.
func Read(r io.Reader, device tensor.Device) (*Snapshot, error) {
	fixed := make([]byte, FixedHeaderSize)
	if _, err := io.ReadFull(r, fixed); err != nil {
		return nil, fmt.Errorf("failed to read fixed header: %w", err)
	}
	if string(fixed[0:4]) != MagicBytes {
		return nil, ErrInvalidMagic
	}
	if version := binary.LittleEndian.Uint32(fixed[4:8]); version != FormatVersion {
		return nil, fmt.Errorf("%w: got %d, expected %d", ErrUnsupportedVersion, version, FormatVersion)
	}
	headerSize := binary.LittleEndian.Uint64(fixed[16:24])
	dataSize := binary.LittleEndian.Uint64(fixed[24:32])
	var stored [32]byte
	copy(stored[:], fixed[ChecksumOffset:ChecksumOffset+ChecksumSize])

	if headerSize > MaxHeaderSize {
		return nil, ErrHeaderTooLarge
	}

	headerJSON := make([]byte, headerSize)
	if _, err := io.ReadFull(r, headerJSON); err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	var header Header
	if err := json.Unmarshal(headerJSON, &header); err != nil {
		return nil, fmt.Errorf("failed to parse header JSON: %w", err)
	}

	pos := int64(FixedHeaderSize) + int64(headerSize)
	if padding := (HeaderAlignment - pos%HeaderAlignment) % HeaderAlignment; padding > 0 {
		if _, err := io.ReadFull(r, make([]byte, padding)); err != nil {
			return nil, fmt.Errorf("failed to read padding: %w", err)
		}
	}

	data := make([]byte, dataSize)
	if _, err := io.ReadFull(r, data); err != nil {
		return nil, fmt.Errorf("failed to read tensor data: %w", err)
	}
	if err := ValidateChecksum(ComputeChecksum(data), stored); err != nil {
		return nil, err
	}
	if err := ValidateHeader(&header, int64(dataSize)); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	snap := &Snapshot{
		Layer:    header.Layer,
		Tensors:  make(map[string]*tensor.RawTensor, len(header.Tensors)),
		Metadata: header.Metadata,
	}
	for _, meta := range header.Tensors {
		dtype, ok := stringToDtype(meta.DType)
		if !ok {
			return nil, fmt.Errorf("tensor %s: unsupported dtype %s", meta.Name, meta.DType)
		}
		shape := tensor.Shape(meta.Shape)
		if err := shape.Validate(); err != nil {
			return nil, fmt.Errorf("tensor %s: invalid shape: %w", meta.Name, err)
		}
		raw, err := tensor.NewRaw(shape, dtype, device)
		if err != nil {
			return nil, fmt.Errorf("tensor %s: %w", meta.Name, err)
		}
		if int64(raw.ByteSize()) != meta.Size {
			return nil, fmt.Errorf("tensor %s: shape %v disagrees with size %d", meta.Name, meta.Shape, meta.Size)
		}
		copy(raw.Data(), data[meta.Offset:meta.Offset+meta.Size])
		snap.Tensors[meta.Name] = raw
	}

	return snap, nil
}

// Open reads a snapshot from path.
func Open(path string, device tensor.Device) (*Snapshot, error) {
	//nolint:gosec // G304: snapshot path comes from the caller, which is expected for layer loading
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = f.Close() }()
	return Read(f, device)
}
