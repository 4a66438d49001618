package question

import "strings"

// technicalKeywords is the fixed keyword set for the technicality heuristic.
// Matching is case-insensitive substring, so truncated stems like "optimi"
// and "scalab" cover the word family.
var technicalKeywords = []string{
	"explain", "design", "architecture", "complexity", "algorithm",
	"trade-off", "pseudocode", "implement", "code", "diagnose", "optimi",
	"memory", "latency", "scalab", "throughput", "consistency",
	"availability", "sql", "index", "concurrency",
}

// Technical reports whether a generated question is specific enough to keep.
// A question counts as technical when it contains any keyword from the fixed
// set. Deliberately crude: it gates a retry, not correctness.
func Technical(q string) bool {
	lower := strings.ToLower(q)
	for _, k := range technicalKeywords {
		if strings.Contains(lower, k) {
			return true
		}
	}
	return false
}
