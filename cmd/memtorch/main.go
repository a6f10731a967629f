// Package main provides the MemTorch Go CLI.
package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/arsalan1374/MemTorch/internal/serialization"
	"github.com/arsalan1374/MemTorch/internal/tensor"
)

const version = "v0.1.0-dev"

func main() {
	if len(os.Args) < 2 {
		usage()
		return
	}

	switch os.Args[1] {
	case "version":
		fmt.Printf("MemTorch Go %s\n", version)
	case "info":
		if len(os.Args) < 3 {
			fmt.Fprintln(os.Stderr, "usage: memtorch info <snapshot>")
			os.Exit(2)
		}
		if err := info(os.Args[2]); err != nil {
			fmt.Fprintf(os.Stderr, "memtorch: %v\n", err)
			os.Exit(1)
		}
	default:
		fmt.Fprintf(os.Stderr, "memtorch: unknown command %q\n\n", os.Args[1])
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Println("MemTorch Go - Memristive DNN Simulation")
	fmt.Printf("Version: %s\n\n", version)
	fmt.Println("Commands:")
	fmt.Println("  version           Show version")
	fmt.Println("  info <snapshot>   Inspect a layer snapshot file")
}

// info prints the layer line, tensor directory and metadata of a
// snapshot. Opening verifies the data checksum, so a clean listing also
// means the file is intact.
func info(path string) error {
	snap, err := serialization.Open(path, tensor.CPU)
	if err != nil {
		return err
	}

	fmt.Printf("Layer: %s\n", snap.Layer)

	names := make([]string, 0, len(snap.Tensors))
	for name := range snap.Tensors {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Printf("\nTensors (%d):\n", len(names))
	for _, name := range names {
		raw := snap.Tensors[name]
		fmt.Printf("  %-16s %-8s %-16v %d bytes\n", name, raw.DType(), raw.Shape(), raw.ByteSize())
	}

	keys := make([]string, 0, len(snap.Metadata))
	for k := range snap.Metadata {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	fmt.Printf("\nMetadata (%d):\n", len(keys))
	for _, k := range keys {
		fmt.Printf("  %-18s %s\n", k, snap.Metadata[k])
	}

	return nil
}
