package mmu

import (
	"fmt"
	"io"
)

// TraceEventKind classifies one per-access trace event
type TraceEventKind int

const (
	// TraceRead is a completed read access (hit or post-install)
	TraceRead TraceEventKind = iota
	// TraceWrite is a completed write access (hit or post-install)
	TraceWrite
	// TracePageFault is an access to a non-resident page
	TracePageFault
	// TraceDiskWrite is the write-back of a dirty victim
	TraceDiskWrite
	// TraceDiscard is the eviction of a clean victim
	TraceDiscard
)

// String returns the event kind name
func (k TraceEventKind) String() string {
	switch k {
	case TraceRead:
		return "read"
	case TraceWrite:
		return "write"
	case TracePageFault:
		return "page_fault"
	case TraceDiskWrite:
		return "disk_write"
	case TraceDiscard:
		return "discard"
	default:
		return "unknown"
	}
}

// TraceEvent is one per-access event emitted while debug is enabled
// For TraceDiskWrite and TraceDiscard the page is the evicted victim's,
// not the page being installed.
type TraceEvent struct {
	Kind TraceEventKind
	Page PageID
}

// TraceSink receives trace events. Sinks observe only; they must not
// influence engine statistics.
type TraceSink interface {
	Emit(event TraceEvent)
}

// LineSink renders events in the fixed line format consumed by golden-output
// comparison harnesses. Page numbers are right-justified in an 8-character
// field; spacing is part of the contract and must not change.
type LineSink struct {
	w io.Writer
}

// NewLineSink creates a sink writing formatted trace lines to w
func NewLineSink(w io.Writer) *LineSink {
	return &LineSink{w: w}
}

// Emit writes one formatted trace line
func (s *LineSink) Emit(event TraceEvent) {
	switch event.Kind {
	case TraceRead:
		fmt.Fprintf(s.w, "reading   %8d\n", event.Page)
	case TraceWrite:
		fmt.Fprintf(s.w, "writing   %8d\n", event.Page)
	case TracePageFault:
		fmt.Fprintf(s.w, "Page fault %8d\n", event.Page)
	case TraceDiskWrite:
		fmt.Fprintf(s.w, "Disk write %8d\n", event.Page)
	case TraceDiscard:
		fmt.Fprintf(s.w, "Discard    %8d\n", event.Page)
	}
}

// CollectSink accumulates events in memory so tests can assert on the exact
// event sequence without capturing process output
type CollectSink struct {
	Events []TraceEvent
}

// Emit appends the event
func (s *CollectSink) Emit(event TraceEvent) {
	s.Events = append(s.Events, event)
}

// Reset discards all collected events
func (s *CollectSink) Reset() {
	s.Events = s.Events[:0]
}
