package mmu

// PageID identifies a virtual page. Pages are opaque: any value is a valid
// identifier and no range checking is performed.
type PageID uint64

// MMU is the access contract shared by all page-replacement engines.
// An engine owns a fixed set of physical frames and tracks which pages are
// resident. Accesses to non-resident pages fault, load the page (counted as
// a disk read) and, when memory is full, evict a victim chosen by the
// engine's policy. Evicting a dirty frame is counted as a disk write.
//
// Engines are single-caller: no method is safe for concurrent use.
type MMU interface {
	// ReadMemory presents a read access for the given page
	ReadMemory(page PageID)

	// WriteMemory presents a write access and marks the page's frame dirty
	WriteMemory(page PageID)

	// GetTotalPageFaults returns the number of accesses to non-resident pages
	GetTotalPageFaults() uint64

	// GetTotalDiskReads returns the number of page loads (equals page faults)
	GetTotalDiskReads() uint64

	// GetTotalDiskWrites returns the number of dirty-frame write-backs
	GetTotalDiskWrites() uint64

	// GetFrameCount returns the fixed frame capacity
	GetFrameCount() int

	// SetDebug enables the per-access trace stream
	SetDebug()

	// ResetDebug disables the per-access trace stream
	ResetDebug()

	// SetTraceSink redirects the trace stream (stdout line format by default)
	SetTraceSink(sink TraceSink)

	// GetStats returns a snapshot of the engine counters
	GetStats() Stats
}

// NewMMU creates an engine for the given replacement policy
// Supported policies: "clock" (second chance), "lru" (exact), "rand"
func NewMMU(policy string, frames int) (MMU, error) {
	switch policy {
	case "clock":
		return NewClockMMU(frames)
	case "lru":
		return NewLruMMU(frames)
	case "rand":
		return NewRandMMU(frames)
	default:
		return nil, ErrUnknownPolicy("NewMMU", policy)
	}
}
