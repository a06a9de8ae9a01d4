package domain

import "strings"

// Priority vocabularies: the urgency rank "1" (most urgent), "2", "3" and
// the legacy labels high/medium/low. "2" and high are equivalent, "3" and
// medium are equivalent, low has no numeric counterpart.

// NormalizePriority maps a priority from either vocabulary into the numeric
// one where a counterpart exists. Unknown values pass through lowercased.
func NormalizePriority(p string) string {
	switch strings.ToLower(strings.TrimSpace(p)) {
	case "1", "urgent":
		return "1"
	case "2", "high":
		return "2"
	case "3", "medium":
		return "3"
	default:
		return strings.ToLower(strings.TrimSpace(p))
	}
}

// SamePriority compares two priority values after normalizing both sides.
func SamePriority(a, b string) bool {
	return NormalizePriority(a) == NormalizePriority(b)
}

// UrgencyScore returns a sort score for a priority (lower = more urgent):
// most-urgent 0, high 10, medium 20, everything else 100.
func UrgencyScore(p string) int {
	switch NormalizePriority(p) {
	case "1":
		return 0
	case "2":
		return 10
	case "3":
		return 20
	default:
		return 100
	}
}
