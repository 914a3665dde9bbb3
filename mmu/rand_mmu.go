package mmu

import (
	"math/rand"
	"time"
)

// RandMMU implements random replacement
// The victim on a full fault is chosen uniformly among occupied frames.
// No recency metadata is kept. The engine owns its generator instead of
// using the shared global source, so tests can seed it and replay exact
// victim sequences.
type RandMMU struct {
	frameTable
	rng *rand.Rand
}

// NewRandMMU creates a random-replacement engine seeded from the wall clock
func NewRandMMU(frames int) (*RandMMU, error) {
	return NewRandMMUWithSeed(frames, time.Now().UnixNano())
}

// NewRandMMUWithSeed creates a random-replacement engine with a fixed seed
// for reproducible victim selection
func NewRandMMUWithSeed(frames int, seed int64) (*RandMMU, error) {
	table, err := newFrameTable("NewRandMMU", frames)
	if err != nil {
		return nil, err
	}
	return &RandMMU{
		frameTable: table,
		rng:        rand.New(rand.NewSource(seed)),
	}, nil
}

// ReadMemory presents a read access for the given page
func (r *RandMMU) ReadMemory(page PageID) {
	r.access(page, false)
}

// WriteMemory presents a write access and marks the page's frame dirty
func (r *RandMMU) WriteMemory(page PageID) {
	r.access(page, true)
}

func (r *RandMMU) access(page PageID, isWrite bool) {
	r.accesses++

	// Fast path: resident hit
	if frame, ok := r.lookup(page); ok {
		r.hits++
		if isWrite {
			r.slots[frame].dirty = true
		}
		r.emitAccess(page, isWrite)
		return
	}

	r.recordFault(page)

	frame, ok := r.findFree()
	if !ok {
		frame = r.findVictim()
		r.evict(frame)
	}
	r.install(frame, page, isWrite)
	r.emitAccess(page, isWrite)
}

// findVictim picks a uniformly random occupied frame
// Only called when no free frame exists, so every frame is occupied; the
// occupancy check guards the invariant anyway. A single frame degenerates
// to frame 0.
func (r *RandMMU) findVictim() int {
	if len(r.slots) == 1 {
		return 0
	}
	frame := r.rng.Intn(len(r.slots))
	for !r.slots[frame].occupied {
		frame = r.rng.Intn(len(r.slots))
	}
	return frame
}
