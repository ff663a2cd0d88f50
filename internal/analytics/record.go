package analytics

import "time"

const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
)

// KindChat marks interactions recorded by the chat service. Kind is free-form
// text; the repository filters and groups by whatever callers store.
const KindChat = "chat"

// Interaction is one recorded AI request and how it was served.
type Interaction struct {
	ID         int64     `json:"id"`
	Timestamp  time.Time `json:"timestamp"`
	Kind       string    `json:"kind"`
	CacheHit   bool      `json:"cache_hit"`
	DurationMs int64     `json:"duration_ms"`
	Outcome    string    `json:"outcome"`
	Detail     string    `json:"detail,omitempty"`
}

// KindSummary aggregates interactions of one kind.
type KindSummary struct {
	Kind          string  `json:"kind"`
	Count         int64   `json:"count"`
	CacheHits     int64   `json:"cache_hits"`
	Errors        int64   `json:"errors"`
	AvgDurationMs float64 `json:"avg_duration_ms"`
}

// HitRate returns the share of interactions served from the cache.
func (s KindSummary) HitRate() float64 {
	if s.Count == 0 {
		return 0
	}
	return float64(s.CacheHits) / float64(s.Count)
}
