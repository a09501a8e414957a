package models

import (
	"strings"
)

// DedupKey builds the per-batch deduplication key for a match.
//
// IMPORTANT: this assumes team names arrive in the same language/format
// within one extraction batch, which holds because a batch always comes
// from a single upstream payload.
// Format: home-away-kickoff, lowercased.
func DedupKey(homeTeam, awayTeam, kickoff string) string {
	home := normalizeKeyPart(homeTeam)
	away := normalizeKeyPart(awayTeam)

	ko := strings.TrimSpace(kickoff)
	if ko == "" {
		ko = "unknown-time"
	}

	return home + "-" + away + "-" + ko
}

func normalizeKeyPart(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return ""
	}
	s = strings.Join(strings.Fields(s), " ")
	s = strings.ReplaceAll(s, "/", " ")
	s = strings.ReplaceAll(s, "\\", " ")
	s = strings.Join(strings.Fields(s), " ")
	return s
}
