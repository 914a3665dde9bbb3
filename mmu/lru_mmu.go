package mmu

// LruMMU implements exact LRU replacement
// A single logical clock increments once per access and is stamped onto the
// accessed frame. The victim on a full fault is the occupied frame with the
// minimum stamp; ties break to the lowest frame index. Victim selection is
// a linear scan, O(capacity) per fault, which is fine for small frame
// counts and deliberately not optimized for large ones.
type LruMMU struct {
	frameTable
	stamp []uint64 // Last-access time per frame
	clock uint64   // Logical time; increments on every access
}

// NewLruMMU creates an exact-LRU engine with the given frame capacity
func NewLruMMU(frames int) (*LruMMU, error) {
	table, err := newFrameTable("NewLruMMU", frames)
	if err != nil {
		return nil, err
	}
	return &LruMMU{
		frameTable: table,
		stamp:      make([]uint64, frames),
	}, nil
}

// ReadMemory presents a read access for the given page
func (l *LruMMU) ReadMemory(page PageID) {
	l.access(page, false)
}

// WriteMemory presents a write access and marks the page's frame dirty
func (l *LruMMU) WriteMemory(page PageID) {
	l.access(page, true)
}

func (l *LruMMU) access(page PageID, isWrite bool) {
	l.accesses++
	l.clock++

	// Fast path: resident hit
	if frame, ok := l.lookup(page); ok {
		l.hits++
		if isWrite {
			l.slots[frame].dirty = true
		}
		l.stamp[frame] = l.clock
		l.emitAccess(page, isWrite)
		return
	}

	l.recordFault(page)

	frame, ok := l.findFree()
	if !ok {
		frame = l.findVictim()
		l.evict(frame)
		l.stamp[frame] = 0
	}
	l.install(frame, page, isWrite)
	l.stamp[frame] = l.clock
	l.emitAccess(page, isWrite)
}

// findVictim returns the occupied frame with the oldest stamp
// The ascending index scan makes ties deterministic: the first minimum wins
func (l *LruMMU) findVictim() int {
	victim := -1
	for i := range l.slots {
		if !l.slots[i].occupied {
			continue
		}
		if victim < 0 || l.stamp[i] < l.stamp[victim] {
			victim = i
		}
	}
	return victim
}
