package mmu

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// MmapTraceReader iterates a memory-mapped reference trace without copying
// it through a read buffer. Large uncompressed traces dominate simulator
// startup time; mapping them avoids the double buffering of the streaming
// reader. On platforms without mmap support the file is read into memory
// instead (see trace_mmap_other.go).
//
// Compressed traces cannot be mapped; use OpenTrace for those.
type MmapTraceReader struct {
	file     *os.File
	data     []byte
	unmap    func() error
	offset   int
	pageSize uint64
	line     int
}

// OpenTraceMmap opens an uncompressed reference trace via mmap
func OpenTraceMmap(path string, pageSize uint32) (*MmapTraceReader, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".lz4", ".sz", ".snappy":
		return nil, NewSimError(ErrCodeTraceOpenFailed, "OpenTraceMmap",
			"compressed traces cannot be memory-mapped", nil)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, ErrTraceOpen("OpenTraceMmap", path, err)
	}

	data, unmap, err := mapTraceFile(file)
	if err != nil {
		file.Close()
		return nil, ErrTraceOpen("OpenTraceMmap", path, err)
	}

	size := uint64(pageSize)
	if size == 0 {
		size = DefaultPageSize
	}

	return &MmapTraceReader{
		file:     file,
		data:     data,
		unmap:    unmap,
		pageSize: size,
	}, nil
}

// Next returns the next access in the trace, or io.EOF when exhausted
func (mr *MmapTraceReader) Next() (Access, error) {
	for mr.offset < len(mr.data) {
		var lineBytes []byte
		if end := bytes.IndexByte(mr.data[mr.offset:], '\n'); end >= 0 {
			lineBytes = mr.data[mr.offset : mr.offset+end]
			mr.offset += end + 1
		} else {
			lineBytes = mr.data[mr.offset:]
			mr.offset = len(mr.data)
		}
		mr.line++

		text := strings.TrimSpace(string(lineBytes))
		if text == "" {
			continue
		}
		access, ok := parseAccess(text, mr.pageSize)
		if !ok {
			return Access{}, ErrTraceParse("Next", mr.line, text)
		}
		return access, nil
	}
	return Access{}, io.EOF
}

// Line returns the number of the last line read
func (mr *MmapTraceReader) Line() int {
	return mr.line
}

// Close unmaps the trace and closes the underlying file
func (mr *MmapTraceReader) Close() error {
	mr.data = nil
	if err := mr.unmap(); err != nil {
		mr.file.Close()
		return err
	}
	return mr.file.Close()
}
