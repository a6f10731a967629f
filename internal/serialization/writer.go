package serialization

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"time"
)

// Write serializes a snapshot. Tensors are laid out in name order, so
// the layout and checksum do not depend on map iteration order.
func Write(w io.Writer, snap *Snapshot) error {
	names := make([]string, 0, len(snap.Tensors))
	for name := range snap.Tensors {
		names = append(names, name)
	}
	sort.Strings(names)

	header := Header{
		FormatVersion: FormatVersion,
		CreatedAt:     time.Now().UTC(),
		Layer:         snap.Layer,
		Tensors:       make([]TensorMeta, 0, len(names)),
		Metadata:      snap.Metadata,
	}
	if header.Metadata == nil {
		header.Metadata = make(map[string]string)
	}

	var offset int64
	var data []byte
	for _, name := range names {
		if err := ValidateTensorName(name); err != nil {
			return err
		}
		raw := snap.Tensors[name]
		dtype, ok := dtypeToString(raw.DType())
		if !ok {
			return fmt.Errorf("tensor %s: unsupported dtype %s", name, raw.DType())
		}
		size := int64(raw.ByteSize())
		header.Tensors = append(header.Tensors, TensorMeta{
			Name:   name,
			DType:  dtype,
			Shape:  []int(raw.Shape()),
			Offset: offset,
			Size:   size,
		})
		data = append(data, raw.Data()[:size]...)
		offset += size
	}

	checksum := ComputeChecksum(data)

	headerJSON, err := json.Marshal(header)
	if err != nil {
		return fmt.Errorf("failed to marshal header: %w", err)
	}
	if len(headerJSON) > MaxHeaderSize {
		return ErrHeaderTooLarge
	}

	fixed := make([]byte, FixedHeaderSize)
	copy(fixed[0:4], MagicBytes)
	binary.LittleEndian.PutUint32(fixed[4:8], uint32(FormatVersion))
	// 0x08-0x0F: flags and reserved, zero.
	binary.LittleEndian.PutUint64(fixed[16:24], uint64(len(headerJSON)))
	binary.LittleEndian.PutUint64(fixed[24:32], uint64(len(data)))
	copy(fixed[ChecksumOffset:ChecksumOffset+ChecksumSize], checksum[:])

	if _, err := w.Write(fixed); err != nil {
		return fmt.Errorf("failed to write fixed header: %w", err)
	}
	if _, err := w.Write(headerJSON); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	pos := int64(FixedHeaderSize) + int64(len(headerJSON))
	if padding := (HeaderAlignment - pos%HeaderAlignment) % HeaderAlignment; padding > 0 {
		if _, err := w.Write(make([]byte, padding)); err != nil {
			return fmt.Errorf("failed to write padding: %w", err)
		}
	}

	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write tensor data: %w", err)
	}
	return nil
}

// Save writes a snapshot to path.
func Save(path string, snap *Snapshot) error {
	//nolint:gosec // G304: snapshot path comes from the caller, which is expected for layer saving
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	if err := Write(f, snap); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
