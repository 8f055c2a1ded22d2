// Package repository holds the aggregation buckets for one pipeline run.
package repository

import (
	"context"
	"hash/fnv"
	"sort"
	"sync"

	"github.com/okian/delfos/internal/domain/aptitude"
	"github.com/okian/delfos/internal/domain/model"
	"github.com/okian/delfos/internal/domain/normalize"
	"github.com/okian/delfos/internal/domain/profession"
	"github.com/okian/delfos/pkg/metrics"
)

const defaultShardCount = 8

// Store accumulates (sum, count) buckets per profession and aptitude.
type Store interface {
	// Add records one observation for every listed profession.
	Add(ctx context.Context, professions []profession.ID, match model.ElementMatch) error

	// Snapshot returns the aggregated state. Call it only after every Add
	// has returned.
	Snapshot(ctx context.Context) Snapshot

	// Count returns the number of non-empty buckets.
	Count(ctx context.Context) int
}

// Snapshot is the drained aggregation state.
type Snapshot struct {
	Buckets  normalize.Buckets
	Elements map[profession.ID][]model.ElementMatch
}

type shard struct {
	mu       sync.Mutex
	buckets  map[profession.ID]map[aptitude.ID]*model.Bucket
	elements map[profession.ID][]model.ElementMatch
}

// MemoryStore implements Store in process memory. Buckets are created lazily
// on the first observation and never shared across professions.
type MemoryStore struct {
	shardCount int
	shards     []*shard

	mu     sync.RWMutex
	closed bool
}

// NewMemoryStore creates an empty store.
func NewMemoryStore(opts ...Option) *MemoryStore {
	s := &MemoryStore{shardCount: defaultShardCount}
	for _, opt := range opts {
		opt(s)
	}

	s.shards = make([]*shard, s.shardCount)
	for i := range s.shards {
		s.shards[i] = &shard{
			buckets:  make(map[profession.ID]map[aptitude.ID]*model.Bucket),
			elements: make(map[profession.ID][]model.ElementMatch),
		}
	}
	return s
}

func (s *MemoryStore) shardFor(id profession.ID) *shard {
	h := fnv.New32a()
	_, _ = h.Write([]byte(id))
	return s.shards[h.Sum32()%uint32(len(s.shards))]
}

// Add implements Store.
func (s *MemoryStore) Add(_ context.Context, professions []profession.ID, match model.ElementMatch) error {
	if !aptitude.Valid(match.Aptitude) {
		return ErrInvalidAptitude
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return ErrClosed
	}

	for _, p := range professions {
		sh := s.shardFor(p)
		sh.mu.Lock()
		byApt := sh.buckets[p]
		if byApt == nil {
			byApt = make(map[aptitude.ID]*model.Bucket)
			sh.buckets[p] = byApt
		}
		b := byApt[match.Aptitude]
		if b == nil {
			b = &model.Bucket{}
			byApt[match.Aptitude] = b
			metrics.RecordBucketCreated()
		}
		b.Sum += match.BaseScore
		b.Count++
		sh.elements[p] = append(sh.elements[p], match)
		sh.mu.Unlock()
	}
	metrics.RecordObservationAggregated(len(professions))
	return nil
}

// Snapshot implements Store. Element matches are returned in table/row order
// and bucket sums are recomputed in that order, so the result does not depend
// on the order in which concurrent Add calls landed.
func (s *MemoryStore) Snapshot(_ context.Context) Snapshot {
	snap := Snapshot{
		Buckets:  make(normalize.Buckets),
		Elements: make(map[profession.ID][]model.ElementMatch),
	}

	for _, sh := range s.shards {
		sh.mu.Lock()
		for p, matches := range sh.elements {
			sorted := make([]model.ElementMatch, len(matches))
			copy(sorted, matches)
			sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Before(sorted[j]) })
			snap.Elements[p] = sorted

			byApt := make(map[aptitude.ID]model.Bucket, len(sh.buckets[p]))
			for _, m := range sorted {
				b := byApt[m.Aptitude]
				b.Sum += m.BaseScore
				b.Count++
				byApt[m.Aptitude] = b
			}
			snap.Buckets[p] = byApt
		}
		sh.mu.Unlock()
	}
	return snap
}

// Count implements Store.
func (s *MemoryStore) Count(_ context.Context) int {
	n := 0
	for _, sh := range s.shards {
		sh.mu.Lock()
		for _, byApt := range sh.buckets {
			n += len(byApt)
		}
		sh.mu.Unlock()
	}
	return n
}

// bucket returns the running bucket for (p, a).
func (s *MemoryStore) bucket(p profession.ID, a aptitude.ID) (model.Bucket, bool) {
	sh := s.shardFor(p)
	sh.mu.Lock()
	defer sh.mu.Unlock()
	b, ok := sh.buckets[p][a]
	if !ok {
		return model.Bucket{}, false
	}
	return *b, true
}

// Close rejects further Add calls.
func (s *MemoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}
