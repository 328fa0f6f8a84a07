// Package scoring derives a 0-100 lead score from the lead's status text.
package scoring

import "strings"

// Score values per status class. Hot outranks everything else.
const (
	ScoreHot       = 100
	ScoreInvestor  = 85
	ScoreContacted = 70
	ScoreNew       = 50
	ScoreCold      = 20
	ScoreUnknown   = 0
)

// Score maps a status string to a lead score.
//
// Matching is case-insensitive substring containment, checked in priority
// order with first match winning: a status containing both "hot" and "new"
// scores as hot. Statuses are stored as free text, so substring matching
// keeps legacy values like "re-contacted 2x" scorable. The function is
// total: any input yields exactly one of the six score values.
func Score(status string) int {
	s := strings.ToLower(status)
	switch {
	case strings.Contains(s, "hot"):
		return ScoreHot
	case strings.Contains(s, "investor"):
		return ScoreInvestor
	case strings.Contains(s, "contacted"):
		return ScoreContacted
	case strings.Contains(s, "new"):
		return ScoreNew
	case strings.Contains(s, "cold"):
		return ScoreCold
	default:
		return ScoreUnknown
	}
}

// IsHot reports whether a status text classifies the lead as hot.
func IsHot(status string) bool {
	return strings.Contains(strings.ToLower(status), "hot")
}

// IsConvertible reports whether a status counts toward conversion
// potential (hot or investor).
func IsConvertible(status string) bool {
	s := strings.ToLower(status)
	return strings.Contains(s, "hot") || strings.Contains(s, "investor")
}
