package mmu

// ClockMMU implements the CLOCK (second chance) replacement policy
// CLOCK approximates LRU with a single reference bit per frame and a
// circular hand. Every hit and every install sets the frame's reference
// bit. When a fault finds no free frame, the hand sweeps:
//
// - free frame: skip it
// - ref bit set: clear the bit (second chance) and advance
// - ref bit clear: evict this frame
//
// A full pass clears every remaining reference bit, so a sweep inspects
// each frame at most twice and always terminates within 2 x capacity steps.
type ClockMMU struct {
	frameTable
	ref  []bool // Reference bit per frame; set on access, cleared by the hand
	hand int    // Sweep position; persists across faults
}

// NewClockMMU creates a CLOCK engine with the given frame capacity
func NewClockMMU(frames int) (*ClockMMU, error) {
	table, err := newFrameTable("NewClockMMU", frames)
	if err != nil {
		return nil, err
	}
	return &ClockMMU{
		frameTable: table,
		ref:        make([]bool, frames),
	}, nil
}

// ReadMemory presents a read access for the given page
func (c *ClockMMU) ReadMemory(page PageID) {
	c.access(page, false)
}

// WriteMemory presents a write access and marks the page's frame dirty
func (c *ClockMMU) WriteMemory(page PageID) {
	c.access(page, true)
}

func (c *ClockMMU) access(page PageID, isWrite bool) {
	c.accesses++

	// Fast path: resident hit
	if frame, ok := c.lookup(page); ok {
		c.hits++
		if isWrite {
			c.slots[frame].dirty = true
		}
		c.ref[frame] = true
		c.emitAccess(page, isWrite)
		return
	}

	c.recordFault(page)

	frame, ok := c.findFree()
	if !ok {
		frame = c.evictVictim()
	}
	c.install(frame, page, isWrite)
	c.ref[frame] = true // New page starts referenced
	c.emitAccess(page, isWrite)
}

// evictVictim sweeps the hand until it finds an occupied frame with a clear
// reference bit, evicts it and returns the freed frame index
// The hand advances once more after eviction so the freed slot is not the
// first frame inspected by the next sweep.
func (c *ClockMMU) evictVictim() int {
	for {
		if c.slots[c.hand].occupied {
			if c.ref[c.hand] {
				// Second chance
				c.ref[c.hand] = false
			} else {
				victim := c.hand
				c.evict(victim)
				c.ref[victim] = false
				c.advanceHand()
				return victim
			}
		}
		c.advanceHand()
	}
}

// advanceHand moves the hand circularly to the next frame
func (c *ClockMMU) advanceHand() {
	c.hand = (c.hand + 1) % len(c.slots)
}
