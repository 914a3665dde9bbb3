package mmu

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/golang/snappy"
	"github.com/pierrec/lz4/v4"
)

// DefaultPageSize is the page size used to translate trace addresses into
// page numbers when no other size is configured
const DefaultPageSize = 4096

// Access is one memory reference from a trace
type Access struct {
	Page  PageID
	Write bool
}

// TraceReader streams accesses from a memory reference trace. Each line is a
// hexadecimal address followed by R or W:
//
//	0041f7a0 R
//	13f5e2c0 W
//
// The page number is the address divided by the page size. Blank lines are
// skipped. Compressed traces are decompressed transparently, chosen by file
// extension: .lz4 for lz4 frames, .sz or .snappy for snappy streams.
type TraceReader struct {
	file     *os.File
	scanner  *bufio.Scanner
	pageSize uint64
	line     int
}

// OpenTrace opens a reference trace for streaming
// pageSize of 0 falls back to DefaultPageSize
func OpenTrace(path string, pageSize uint32) (*TraceReader, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, ErrTraceOpen("OpenTrace", path, err)
	}

	var reader io.Reader = file
	switch strings.ToLower(filepath.Ext(path)) {
	case ".lz4":
		reader = lz4.NewReader(file)
	case ".sz", ".snappy":
		reader = snappy.NewReader(file)
	}

	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	size := uint64(pageSize)
	if size == 0 {
		size = DefaultPageSize
	}

	return &TraceReader{
		file:     file,
		scanner:  scanner,
		pageSize: size,
	}, nil
}

// Next returns the next access in the trace, or io.EOF when exhausted
func (tr *TraceReader) Next() (Access, error) {
	for tr.scanner.Scan() {
		tr.line++
		text := strings.TrimSpace(tr.scanner.Text())
		if text == "" {
			continue
		}
		access, ok := parseAccess(text, tr.pageSize)
		if !ok {
			return Access{}, ErrTraceParse("Next", tr.line, text)
		}
		return access, nil
	}
	if err := tr.scanner.Err(); err != nil {
		return Access{}, ErrTraceRead("Next", err)
	}
	return Access{}, io.EOF
}

// Line returns the number of the last line read
func (tr *TraceReader) Line() int {
	return tr.line
}

// Close closes the underlying file
func (tr *TraceReader) Close() error {
	return tr.file.Close()
}

// ReadAllTrace loads an entire trace into memory
func ReadAllTrace(path string, pageSize uint32) ([]Access, error) {
	reader, err := OpenTrace(path, pageSize)
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	var accesses []Access
	for {
		access, err := reader.Next()
		if err == io.EOF {
			return accesses, nil
		}
		if err != nil {
			return nil, err
		}
		accesses = append(accesses, access)
	}
}

// parseAccess parses one non-empty trace line
func parseAccess(text string, pageSize uint64) (Access, bool) {
	fields := strings.Fields(text)
	if len(fields) != 2 {
		return Access{}, false
	}

	addr, err := strconv.ParseUint(fields[0], 16, 64)
	if err != nil {
		return Access{}, false
	}

	var write bool
	switch fields[1] {
	case "R", "r":
		write = false
	case "W", "w":
		write = true
	default:
		return Access{}, false
	}

	return Access{Page: PageID(addr / pageSize), Write: write}, true
}
