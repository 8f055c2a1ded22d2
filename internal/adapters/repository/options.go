package repository

// Option applies a configuration option to the MemoryStore.
type Option func(*MemoryStore)

// WithShardCount sets the number of lock shards. Professions are spread over
// shards by hash.
func WithShardCount(n int) Option {
	return func(s *MemoryStore) {
		if n > 0 {
			s.shardCount = n
		}
	}
}
