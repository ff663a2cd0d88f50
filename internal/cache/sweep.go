package cache

import (
	"context"

	"github.com/benbjohnson/clock"
	"go.uber.org/zap"
)

// sweepLoop runs the active expiry pass on every tick until ctx is canceled.
func (c *Cache[V]) sweepLoop(ctx context.Context, ticker *clock.Ticker) {
	defer close(c.done)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.sweep()
		}
	}
}

// sweep removes expired entries, then trims the store to MaxSize.
func (c *Cache[V]) sweep() {
	c.mu.Lock()
	expired := c.removeExpiredLocked(c.clock.Now())
	c.stats.Swept += uint64(expired)
	evicted := c.evictOldestLocked()
	size := len(c.items)
	c.mu.Unlock()

	if expired > 0 || evicted > 0 {
		c.logger.Debug("cache sweep",
			zap.Int("expired", expired),
			zap.Int("evicted", evicted),
			zap.Int("size", size),
		)
	}
}
