package mmu

import (
	"os"
)

// frameSlot is one physical frame. A frame either holds a page (occupied)
// or is free; emptiness is an explicit state, not a sentinel page value.
type frameSlot struct {
	page     PageID
	occupied bool
	dirty    bool
}

// frameTable is the bookkeeping shared by every engine: a fixed array of
// frames plus the reverse page->frame map for O(1) residency checks, and the
// fault/disk counters. install and evict are the only operations that touch
// the array and the map, so the two structures cannot diverge.
type frameTable struct {
	slots       []frameSlot
	pageToFrame map[PageID]int

	accesses   uint64
	hits       uint64
	pageFaults uint64
	diskReads  uint64
	diskWrites uint64
	evictions  uint64

	debug bool
	sink  TraceSink
}

// newFrameTable creates bookkeeping for the given capacity
// Capacity must be positive; every policy assumes at least one frame exists
func newFrameTable(op string, frames int) (frameTable, error) {
	if frames <= 0 {
		return frameTable{}, ErrInvalidCapacity(op, frames)
	}
	return frameTable{
		slots:       make([]frameSlot, frames),
		pageToFrame: make(map[PageID]int, frames),
		sink:        NewLineSink(os.Stdout),
	}, nil
}

// GetFrameCount returns the fixed frame capacity
func (t *frameTable) GetFrameCount() int {
	return len(t.slots)
}

// GetTotalPageFaults returns the number of accesses to non-resident pages
func (t *frameTable) GetTotalPageFaults() uint64 {
	return t.pageFaults
}

// GetTotalDiskReads returns the number of page loads
func (t *frameTable) GetTotalDiskReads() uint64 {
	return t.diskReads
}

// GetTotalDiskWrites returns the number of dirty-frame write-backs
func (t *frameTable) GetTotalDiskWrites() uint64 {
	return t.diskWrites
}

// SetDebug enables the per-access trace stream
func (t *frameTable) SetDebug() {
	t.debug = true
}

// ResetDebug disables the per-access trace stream
func (t *frameTable) ResetDebug() {
	t.debug = false
}

// SetTraceSink redirects the trace stream
func (t *frameTable) SetTraceSink(sink TraceSink) {
	t.sink = sink
}

// GetStats returns a snapshot of the counters
func (t *frameTable) GetStats() Stats {
	return Stats{
		Accesses:   t.accesses,
		Hits:       t.hits,
		PageFaults: t.pageFaults,
		DiskReads:  t.diskReads,
		DiskWrites: t.diskWrites,
		Evictions:  t.evictions,
	}
}

// lookup returns the frame holding the page, if the page is resident
func (t *frameTable) lookup(page PageID) (int, bool) {
	frame, ok := t.pageToFrame[page]
	return frame, ok
}

// findFree returns the lowest-index free frame, if any
func (t *frameTable) findFree() (int, bool) {
	for i := range t.slots {
		if !t.slots[i].occupied {
			return i, true
		}
	}
	return -1, false
}

// residentCount returns the number of occupied frames
func (t *frameTable) residentCount() int {
	return len(t.pageToFrame)
}

// recordFault accounts a page fault and the disk read that loads the page
func (t *frameTable) recordFault(page PageID) {
	t.pageFaults++
	t.diskReads++
	t.emit(TracePageFault, page)
}

// install places a page into a free (or just-evicted) frame
// Dirty is set when the faulting access was a write
func (t *frameTable) install(frame int, page PageID, isWrite bool) {
	t.slots[frame] = frameSlot{page: page, occupied: true, dirty: isWrite}
	t.pageToFrame[page] = frame
}

// evict clears an occupied frame, accounting a disk write if it was dirty,
// and removes its page from the reverse map
func (t *frameTable) evict(frame int) {
	slot := &t.slots[frame]
	if !slot.occupied {
		return
	}
	if slot.dirty {
		t.diskWrites++
		t.emit(TraceDiskWrite, slot.page)
	} else {
		t.emit(TraceDiscard, slot.page)
	}
	delete(t.pageToFrame, slot.page)
	slot.occupied = false
	slot.dirty = false
	t.evictions++
}

// emitAccess emits the reading/writing trace line for a completed access
func (t *frameTable) emitAccess(page PageID, isWrite bool) {
	if isWrite {
		t.emit(TraceWrite, page)
	} else {
		t.emit(TraceRead, page)
	}
}

func (t *frameTable) emit(kind TraceEventKind, page PageID) {
	if t.debug && t.sink != nil {
		t.sink.Emit(TraceEvent{Kind: kind, Page: page})
	}
}
