package cache

import (
	"hash/fnv"
	"strconv"
)

// HashKey shortens s into a stable cache key: 32-bit FNV-1a over the exact
// bytes of s, rendered in base 36. It is not a cryptographic hash.
func HashKey(s string) string {
	h := fnv.New32a()
	_, _ = h.Write([]byte(s))
	return strconv.FormatUint(uint64(h.Sum32()), 36)
}
