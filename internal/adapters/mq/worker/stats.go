package worker

import (
	"sync"
	"sync/atomic"

	"github.com/okian/delfos/internal/domain/scoring"
)

// Stats counts what workers did with the rows they consumed.
type Stats struct {
	processed   atomic.Int64
	contributed atomic.Int64

	mu      sync.Mutex
	skipped map[scoring.SkipReason]int64
}

// NewStats returns zeroed counters.
func NewStats() *Stats {
	return &Stats{skipped: make(map[scoring.SkipReason]int64)}
}

func (s *Stats) recordProcessed()    { s.processed.Add(1) }
func (s *Stats) recordContribution() { s.contributed.Add(1) }

func (s *Stats) recordSkip(reason scoring.SkipReason) {
	s.mu.Lock()
	s.skipped[reason]++
	s.mu.Unlock()
}

// Processed returns the number of rows consumed.
func (s *Stats) Processed() int64 { return s.processed.Load() }

// Contributed returns the number of rows that produced an observation.
func (s *Stats) Contributed() int64 { return s.contributed.Load() }

// Skipped returns a copy of the skip counts by reason.
func (s *Stats) Skipped() map[scoring.SkipReason]int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[scoring.SkipReason]int64, len(s.skipped))
	for k, v := range s.skipped {
		out[k] = v
	}
	return out
}
