package cache

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"go.uber.org/zap"
)

const (
	DefaultTTL             = 5 * time.Minute
	DefaultMaxSize         = 1000
	DefaultCleanupInterval = time.Minute
)

// Options controls TTL, capacity, and sweep behavior. Zero values fall back
// to the package defaults.
type Options struct {
	// DefaultTTL applies to Set and to SetWithTTL calls with ttl <= 0.
	DefaultTTL time.Duration

	// MaxSize bounds the number of stored entries.
	MaxSize int

	// CleanupInterval is the period of the background sweep.
	CleanupInterval time.Duration

	// Clock drives timestamps and the sweep ticker. Tests inject a mock.
	Clock clock.Clock

	// Logger receives sweep and lifecycle events at debug level.
	Logger *zap.Logger
}

func (o Options) withDefaults() Options {
	if o.DefaultTTL <= 0 {
		o.DefaultTTL = DefaultTTL
	}
	if o.MaxSize <= 0 {
		o.MaxSize = DefaultMaxSize
	}
	if o.CleanupInterval <= 0 {
		o.CleanupInterval = DefaultCleanupInterval
	}
	if o.Clock == nil {
		o.Clock = clock.New()
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	return o
}

// Cache is a concurrency-safe, memory-bounded, time-bounded key-value store.
//
// Stale entries are dropped lazily on read and actively by a background
// sweep, which also trims the store to MaxSize by removing the oldest
// entries first. A miss is a normal outcome; no operation returns an error.
//
// The cache owns its sweep goroutine. Call Close to stop it.
type Cache[V any] struct {
	mu    sync.Mutex
	items map[string]*entry[V]
	seq   uint64
	stats Stats

	defaultTTL time.Duration
	maxSize    int
	clock      clock.Clock
	logger     *zap.Logger

	cancel context.CancelFunc
	done   chan struct{}
	closed bool
}

// New constructs a cache and starts its sweep goroutine.
func New[V any](opts Options) *Cache[V] {
	opts = opts.withDefaults()

	ctx, cancel := context.WithCancel(context.Background())
	c := &Cache[V]{
		items:      make(map[string]*entry[V]),
		defaultTTL: opts.DefaultTTL,
		maxSize:    opts.MaxSize,
		clock:      opts.Clock,
		logger:     opts.Logger,
		cancel:     cancel,
		done:       make(chan struct{}),
	}

	// The ticker is created before the goroutine starts so that a mock clock
	// advanced right after New still fires it.
	ticker := c.clock.Ticker(opts.CleanupInterval)
	go c.sweepLoop(ctx, ticker)

	c.logger.Debug("cache started",
		zap.Duration("default_ttl", opts.DefaultTTL),
		zap.Int("max_size", opts.MaxSize),
		zap.Duration("cleanup_interval", opts.CleanupInterval),
	)
	return c
}

// Set stores value under key with the cache-wide default TTL.
func (c *Cache[V]) Set(key string, value V) {
	c.SetWithTTL(key, value, 0)
}

// SetWithTTL unconditionally overwrites key. ttl <= 0 means the default TTL.
// If the store exceeds MaxSize afterwards, an eviction pass runs.
func (c *Cache[V]) SetWithTTL(key string, value V, ttl time.Duration) {
	if ttl <= 0 {
		ttl = c.defaultTTL
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.clock.Now()
	c.seq++
	c.items[key] = &entry[V]{
		value:     value,
		createdAt: now,
		ttl:       ttl,
		seq:       c.seq,
	}

	if len(c.items) > c.maxSize {
		c.stats.Swept += uint64(c.removeExpiredLocked(now))
		c.evictOldestLocked()
	}
}

// Get returns the stored value and true, or the zero value and false when the
// key is absent or expired. Expired entries are removed on access.
//
// The value is returned as stored; reference types are shared with the cache.
func (c *Cache[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero V
	e, ok := c.items[key]
	if !ok {
		c.stats.Misses++
		return zero, false
	}
	if e.expired(c.clock.Now()) {
		delete(c.items, key)
		c.stats.Misses++
		c.stats.Expired++
		return zero, false
	}

	c.stats.Hits++
	return e.value, true
}

// Has reports whether Get would hit, with the same lazy-expiry side effect.
func (c *Cache[V]) Has(key string) bool {
	_, ok := c.Get(key)
	return ok
}

// Delete removes key and reports whether an entry was present.
func (c *Cache[V]) Delete(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.items[key]; !ok {
		return false
	}
	delete(c.items, key)
	return true
}

// Clear removes all entries.
func (c *Cache[V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = make(map[string]*entry[V])
}

// Size returns the number of stored entries, including expired entries the
// sweep has not reached yet.
func (c *Cache[V]) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// Keys returns the stored keys, oldest first.
func (c *Cache[V]) Keys() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	ordered := c.orderedLocked()
	keys := make([]string, len(ordered))
	for i, e := range ordered {
		keys[i] = e.key
	}
	return keys
}

// Stats returns a snapshot of the cache counters.
func (c *Cache[V]) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := c.stats
	s.Size = len(c.items)
	s.MaxSize = c.maxSize
	return s
}

// Close stops the sweep goroutine and empties the store.
//
// Close is safe to call multiple times. The cache remains usable afterwards
// but is no longer swept.
func (c *Cache[V]) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	c.items = make(map[string]*entry[V])
	c.mu.Unlock()

	c.cancel()
	<-c.done
	c.logger.Debug("cache closed")
}

// removeExpiredLocked deletes every entry older than its own TTL.
func (c *Cache[V]) removeExpiredLocked(now time.Time) int {
	removed := 0
	for key, e := range c.items {
		if e.expired(now) {
			delete(c.items, key)
			removed++
		}
	}
	return removed
}

// evictOldestLocked removes the oldest entries until the store fits MaxSize.
func (c *Cache[V]) evictOldestLocked() int {
	excess := len(c.items) - c.maxSize
	if excess <= 0 {
		return 0
	}

	ordered := c.orderedLocked()
	for _, e := range ordered[:excess] {
		delete(c.items, e.key)
	}
	c.stats.Evicted += uint64(excess)
	return excess
}

type keyedEntry[V any] struct {
	key string
	*entry[V]
}

// orderedLocked returns the entries sorted by timestamp, insertion order
// breaking ties.
func (c *Cache[V]) orderedLocked() []keyedEntry[V] {
	out := make([]keyedEntry[V], 0, len(c.items))
	for key, e := range c.items {
		out = append(out, keyedEntry[V]{key: key, entry: e})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].olderThan(out[j].entry)
	})
	return out
}
