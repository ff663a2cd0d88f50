// Package loadgen drives a synthetic read/write workload against a cache.
package loadgen

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sync/atomic"
	"time"

	"zoesolar/zoe/internal/cache"

	"golang.org/x/sync/errgroup"
)

// Config controls the workload shape.
type Config struct {
	Workers int
	Keys    int

	// SetRatio is the probability that an operation is a Set. The rest are
	// Gets.
	SetRatio float64

	// TTL is the mean entry lifetime. Each Set draws a TTL uniformly from
	// [TTL/2, 3*TTL/2]. Zero uses the cache default for every Set.
	TTL time.Duration

	// Pause is the wait between operations of one worker.
	Pause time.Duration

	// Seed makes runs reproducible. Zero picks a random seed.
	Seed uint64
}

// DefaultConfig returns a small mixed workload.
func DefaultConfig() Config {
	return Config{
		Workers:  4,
		Keys:     500,
		SetRatio: 0.3,
		TTL:      5 * time.Second,
		Pause:    2 * time.Millisecond,
	}
}

// Counters tracks operations issued by Run.
type Counters struct {
	Sets atomic.Uint64
	Gets atomic.Uint64
	Hits atomic.Uint64
}

// Key returns the cache key used for slot i.
func Key(i int) string {
	return fmt.Sprintf("key-%04d", i)
}

// Run issues operations against c until ctx is done. It returns nil when ctx
// is canceled or its deadline passes.
func Run(ctx context.Context, c *cache.Cache[string], cfg Config, counters *Counters) error {
	if cfg.Workers <= 0 {
		return errors.New("loadgen: workers must be positive")
	}
	if cfg.Keys <= 0 {
		return errors.New("loadgen: keys must be positive")
	}
	if counters == nil {
		counters = &Counters{}
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}

	g, gctx := errgroup.WithContext(ctx)
	for w := range cfg.Workers {
		rng := rand.New(rand.NewPCG(seed, uint64(w)))
		g.Go(func() error {
			return work(gctx, c, cfg, rng, counters)
		})
	}

	err := g.Wait()
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return nil
	}
	return err
}

func work(ctx context.Context, c *cache.Cache[string], cfg Config, rng *rand.Rand, counters *Counters) error {
	var ticker *time.Ticker
	if cfg.Pause > 0 {
		ticker = time.NewTicker(cfg.Pause)
		defer ticker.Stop()
	}

	for {
		if ticker != nil {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-ticker.C:
			}
		} else if err := ctx.Err(); err != nil {
			return err
		}

		key := Key(rng.IntN(cfg.Keys))
		if rng.Float64() < cfg.SetRatio {
			c.SetWithTTL(key, key, jitter(rng, cfg.TTL))
			counters.Sets.Add(1)
			continue
		}
		if _, ok := c.Get(key); ok {
			counters.Hits.Add(1)
		}
		counters.Gets.Add(1)
	}
}

func jitter(rng *rand.Rand, ttl time.Duration) time.Duration {
	if ttl <= 0 {
		return 0
	}
	return ttl/2 + time.Duration(rng.Int64N(int64(ttl)+1))
}
