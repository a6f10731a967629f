// Package serialization implements the binary snapshot format patched
// layers are saved in.
//
//	Format structure:
//	  [4 bytes:  Magic "MEMT"]
//	  [4 bytes:  Version (uint32 LE)]
//	  [8 bytes:  Flags + reserved]
//	  [8 bytes:  Header size (uint64 LE)]
//	  [8 bytes:  Data size (uint64 LE)]
//	  [32 bytes: SHA-256 checksum of the data section]
//	  [Header: JSON tensor directory + metadata]
//	  [Tensor data: raw bytes, 64-byte aligned]
//
// A snapshot holds named tensors (weights, bias, programmed
// conductances) and string metadata (layer geometry, simulation config,
// output transform). The checksum covers the data section; corruption
// and truncation surface as ErrChecksumMismatch before any tensor is
// handed out. The tensor directory is validated against overlap and
// out-of-bounds offsets, so a hostile file cannot read outside its own
// data section.
//
// Example usage:
//
//	snap := &serialization.Snapshot{
//	    Layer:    layer.String(),
//	    Tensors:  map[string]*tensor.RawTensor{"weight": w},
//	    Metadata: map[string]string{"scheme": "double-column"},
//	}
//	if err := serialization.Save("layer.mt", snap); err != nil {
//	    log.Fatal(err)
//	}
//
//	snap, err := serialization.Open("layer.mt", tensor.CPU)
//	if err != nil {
//	    log.Fatal(err)
//	}
package serialization
