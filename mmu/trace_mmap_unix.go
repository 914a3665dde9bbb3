//go:build unix

package mmu

import (
	"os"

	"golang.org/x/sys/unix"
)

// mapTraceFile maps the file read-only and returns the mapped bytes plus an
// unmap function. Empty files yield a nil slice; mmap rejects zero lengths.
func mapTraceFile(file *os.File) ([]byte, func() error, error) {
	info, err := file.Stat()
	if err != nil {
		return nil, nil, err
	}

	size := info.Size()
	if size == 0 {
		return nil, func() error { return nil }, nil
	}

	data, err := unix.Mmap(int(file.Fd()), 0, int(size), unix.PROT_READ, unix.MAP_PRIVATE)
	if err != nil {
		return nil, nil, err
	}

	return data, func() error { return unix.Munmap(data) }, nil
}
