// Copyright 2025 MemTorch Go Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package mn

import (
	"github.com/arsalan1374/MemTorch/internal/serialization"
)

// Snapshot file errors callers match with errors.Is.
var (
	// ErrInvalidMagic reports a file that is not a snapshot.
	ErrInvalidMagic = serialization.ErrInvalidMagic
	// ErrUnsupportedVersion reports a snapshot written by an
	// incompatible format version.
	ErrUnsupportedVersion = serialization.ErrUnsupportedVersion
	// ErrChecksumMismatch reports a snapshot whose data section does
	// not hash to the recorded checksum.
	ErrChecksumMismatch = serialization.ErrChecksumMismatch
)
