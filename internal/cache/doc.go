// Package cache implements the in-process TTL cache behind zoe's AI features.
//
// Entries carry their own TTL. Expiry is enforced twice: lazily when a key
// is read, and actively by a sweep goroutine that runs every
// CleanupInterval, removes expired entries, and then evicts the oldest
// entries until the store fits MaxSize.
package cache
