package mmu

import (
	"log/slog"
)

// Stats is an immutable snapshot of one engine's counters
// All counters are monotonically non-decreasing over the engine's lifetime;
// DiskReads always equals PageFaults because every fault loads exactly one
// page.
type Stats struct {
	Accesses   uint64
	Hits       uint64
	PageFaults uint64
	DiskReads  uint64
	DiskWrites uint64
	Evictions  uint64
}

// HitRate returns the fraction of accesses served without a fault
func (s Stats) HitRate() float64 {
	if s.Accesses == 0 {
		return 0
	}
	return float64(s.Hits) / float64(s.Accesses)
}

// FaultRate returns the fraction of accesses that faulted
func (s Stats) FaultRate() float64 {
	if s.Accesses == 0 {
		return 0
	}
	return float64(s.PageFaults) / float64(s.Accesses)
}

// LogStats logs the snapshot in structured form
func (s Stats) LogStats(logger *slog.Logger) {
	logger.Info("simulation statistics",
		slog.Group("accesses",
			slog.Uint64("total", s.Accesses),
			slog.Uint64("hits", s.Hits),
			slog.Float64("hit_rate", s.HitRate()),
		),
		slog.Group("faults",
			slog.Uint64("page_faults", s.PageFaults),
			slog.Float64("fault_rate", s.FaultRate()),
			slog.Uint64("evictions", s.Evictions),
		),
		slog.Group("disk",
			slog.Uint64("reads", s.DiskReads),
			slog.Uint64("writes", s.DiskWrites),
		),
	)
}
