package analytics

import "strings"

const maxDetailRunes = 120

// SummarizeDetail collapses whitespace in s and truncates it for storage.
// Full customer messages are never persisted.
func SummarizeDetail(s string) string {
	s = strings.Join(strings.Fields(s), " ")

	runes := []rune(s)
	if len(runes) <= maxDetailRunes {
		return s
	}
	return string(runes[:maxDetailRunes-1]) + "…"
}
