package cache

import "time"

// entry wraps a cached value with the metadata needed for expiry and
// oldest-first eviction.
type entry[V any] struct {
	value     V
	createdAt time.Time
	ttl       time.Duration
	seq       uint64
}

// expired reports whether the entry's age exceeds its TTL.
func (e *entry[V]) expired(now time.Time) bool {
	return now.Sub(e.createdAt) > e.ttl
}

func (e *entry[V]) olderThan(other *entry[V]) bool {
	if !e.createdAt.Equal(other.createdAt) {
		return e.createdAt.Before(other.createdAt)
	}
	return e.seq < other.seq
}

// Stats is a point-in-time snapshot of cache activity.
type Stats struct {
	Hits    uint64 `json:"hits"`
	Misses  uint64 `json:"misses"`
	Expired uint64 `json:"expired"`
	Swept   uint64 `json:"swept"`
	Evicted uint64 `json:"evicted"`
	Size    int    `json:"size"`
	MaxSize int    `json:"max_size"`
}

// HitRate returns hits / (hits + misses), or 0 before the first lookup.
func (s Stats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total)
}
