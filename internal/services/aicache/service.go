// Package aicache provides the purpose-keyed cache used by zoe's AI features.
//
// A Service wraps one shared cache.Cache and namespaces keys by purpose
// (message:, roof:, comparison:) so chat replies, roof analyses, and
// product comparisons share a single capacity budget without colliding.
// Construct one Service at startup, pass it to consumers, and Close it at
// teardown.
package aicache

import (
	"context"
	"strings"
	"time"

	"zoesolar/zoe/internal/cache"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	MessageTTL    = 30 * time.Minute
	RoofTTL       = 24 * time.Hour
	ComparisonTTL = time.Hour
)

const (
	messagePrefix    = "message:"
	roofPrefix       = "roof:"
	comparisonPrefix = "comparison:"
)

// Service is the AI response cache.
type Service struct {
	cache  *cache.Cache[any]
	group  singleflight.Group
	logger *zap.Logger
}

// New returns a Service backed by a new cache built from opts.
func New(opts cache.Options) *Service {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Service{
		cache:  cache.New[any](opts),
		logger: opts.Logger,
	}
}

// MessageKey returns the cache key for a chat message.
func MessageKey(message string) string {
	return messagePrefix + cache.HashKey(message)
}

// RoofKey returns the cache key for a roof analysis of address.
func RoofKey(address string) string {
	return roofPrefix + cache.HashKey(address)
}

// ComparisonKey returns the cache key for a comparison of productIDs.
// Order matters: the same products in a different order are a different
// comparison.
func ComparisonKey(productIDs []string) string {
	return comparisonPrefix + cache.HashKey(strings.Join(productIDs, "|"))
}

// CacheMessageResponse stores the reply for message.
func (s *Service) CacheMessageResponse(message, response string) {
	s.cache.SetWithTTL(MessageKey(message), response, MessageTTL)
}

// CachedMessageResponse returns the cached reply for the exact message.
func (s *Service) CachedMessageResponse(message string) (string, bool) {
	return lookup[string](s, MessageKey(message))
}

// CacheRoofAnalysis stores an analysis for address.
func (s *Service) CacheRoofAnalysis(address string, analysis RoofAnalysis) {
	s.cache.SetWithTTL(RoofKey(address), analysis, RoofTTL)
}

// CachedRoofAnalysis returns the cached analysis for address.
func (s *Service) CachedRoofAnalysis(address string) (RoofAnalysis, bool) {
	return lookup[RoofAnalysis](s, RoofKey(address))
}

// CacheComparison stores a comparison of productIDs.
func (s *Service) CacheComparison(productIDs []string, comparison Comparison) {
	s.cache.SetWithTTL(ComparisonKey(productIDs), comparison, ComparisonTTL)
}

// CachedComparison returns the cached comparison of productIDs.
func (s *Service) CachedComparison(productIDs []string) (Comparison, bool) {
	return lookup[Comparison](s, ComparisonKey(productIDs))
}

// Invalidate removes key and reports whether it was present.
func (s *Service) Invalidate(key string) bool {
	return s.cache.Delete(key)
}

// Stats returns the underlying cache counters.
func (s *Service) Stats() cache.Stats {
	return s.cache.Stats()
}

// Keys returns the stored keys, oldest first.
func (s *Service) Keys() []string {
	return s.cache.Keys()
}

// Clear removes every cached value.
func (s *Service) Clear() {
	s.cache.Clear()
}

// Close stops the cache sweep and releases all entries.
func (s *Service) Close() {
	s.cache.Close()
}

// Remember returns the value cached under key, or computes, caches, and
// returns it. Concurrent callers for the same key share a single compute.
// The boolean reports whether the value came from the cache. Compute errors
// are returned to every waiting caller and nothing is cached.
//
// The shared compute is not canceled with any one caller's ctx. A caller
// whose ctx ends stops waiting and gets ctx.Err(), while the compute keeps
// running for the others and still fills the cache.
func Remember[T any](ctx context.Context, s *Service, key string, ttl time.Duration, compute func(context.Context) (T, error)) (T, bool, error) {
	var zero T
	if v, ok := lookup[T](s, key); ok {
		return v, true, nil
	}

	computeCtx := context.WithoutCancel(ctx)
	ch := s.group.DoChan(key, func() (any, error) {
		value, err := compute(computeCtx)
		if err != nil {
			return nil, err
		}
		s.cache.SetWithTTL(key, value, ttl)
		return value, nil
	})

	select {
	case <-ctx.Done():
		s.logger.Debug("caller gave up waiting", zap.String("key", key), zap.Error(ctx.Err()))
		return zero, false, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			s.logger.Debug("compute failed", zap.String("key", key), zap.Error(res.Err))
			return zero, false, res.Err
		}
		if res.Shared {
			s.logger.Debug("compute shared", zap.String("key", key))
		}
		value, _ := res.Val.(T)
		return value, false, nil
	}
}

// lookup reads key and asserts the stored value to T. A value of another
// type counts as a miss.
func lookup[T any](s *Service, key string) (T, bool) {
	var zero T
	v, ok := s.cache.Get(key)
	if !ok {
		return zero, false
	}
	value, ok := v.(T)
	if !ok {
		return zero, false
	}
	return value, true
}
