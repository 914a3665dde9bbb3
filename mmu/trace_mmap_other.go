//go:build !unix

package mmu

import (
	"io"
	"os"
)

// mapTraceFile reads the whole file into memory on platforms without mmap
// support, keeping the MmapTraceReader contract identical everywhere
func mapTraceFile(file *os.File) ([]byte, func() error, error) {
	data, err := io.ReadAll(file)
	if err != nil {
		return nil, nil, err
	}
	return data, func() error { return nil }, nil
}
