package sportline

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/avolkov/betboard/internal/pkg/models"
)

// ParsedFields is the best-effort field extraction for one raw match
// representation, before normalization and validation.
type ParsedFields struct {
	ID            string
	CompetitionID string
	League        string

	HomeTeam string
	AwayTeam string

	Kickoff string // HH:MM
	Date    string // YYYY-MM-DD
	Status  models.MatchStatus

	HomeOdds *float64
	DrawOdds *float64
	AwayOdds *float64

	OverUnder      *models.OverUnder
	BothTeamsScore *models.BTTSOdds

	HomeScore *int
	AwayScore *int
	Minute    *int
}

// teamSeparators are the substrings that split a single field into two
// team names. Checked in order; the first field split cleanly in two wins.
var teamSeparators = []string{" v ", " vs ", " vs. ", " V ", " VS ", " - ", " — "}

// oddsTokenRegex matches decimal-odds tokens. A token must carry a
// decimal point: bare integers like "150" are ids or stakes, never odds,
// and are never divided down into odds.
var oddsTokenRegex = regexp.MustCompile(`\b\d{1,2}\.\d{1,3}\b`)

// scoreRegex matches a live score field like "2-1" or "2 - 1".
var scoreRegex = regexp.MustCompile(`^(\d{1,2})\s*-\s*(\d{1,2})$`)

// parseFieldsFromSlice applies the field-position heuristics to one raw
// record whose fields are already split (delimited records and cleaned
// HTML rows both land here).
func parseFieldsFromSlice(fields []string, now time.Time) (ParsedFields, bool) {
	var out ParsedFields

	// Team names: scan for the first field a known separator splits
	// cleanly into two name-like halves.
	for _, field := range fields {
		home, away, ok := splitTeams(field)
		if ok {
			out.HomeTeam = home
			out.AwayTeam = away
			break
		}
	}
	if out.HomeTeam == "" {
		return ParsedFields{}, false
	}

	// Identifier heuristics: the first all-digit field is the upstream
	// match id, the second the competition id.
	for _, field := range fields {
		f := strings.TrimSpace(field)
		if !isAllDigits(f) {
			continue
		}
		if out.ID == "" {
			out.ID = f
			continue
		}
		if out.CompetitionID == "" {
			out.CompetitionID = f
			break
		}
	}

	// Kickoff, date and live markers.
	out.Status = models.StatusUpcoming
	for _, field := range fields {
		info, ok := ParseKickoff(field, now)
		if !ok {
			continue
		}
		if info.Kickoff != "" && out.Kickoff == "" {
			out.Kickoff = info.Kickoff
		}
		if info.Date != "" && out.Date == "" {
			out.Date = info.Date
		}
		if info.Status == models.StatusLive {
			out.Status = models.StatusLive
		}
		if info.Minute != nil && out.Minute == nil {
			out.Minute = info.Minute
		}
	}

	// Live score, if present.
	for _, field := range fields {
		if m := scoreRegex.FindStringSubmatch(strings.TrimSpace(field)); m != nil {
			hs, _ := strconv.Atoi(m[1])
			as, _ := strconv.Atoi(m[2])
			out.HomeScore = &hs
			out.AwayScore = &as
			break
		}
	}

	// Odds: collect every in-range decimal token in encounter order and
	// assign the first three positionally to home/draw/away. Fewer than
	// three leaves the 1X2 fields unset; the record still proceeds.
	odds := scanOddsTokens(fields)
	if len(odds) >= 3 {
		out.HomeOdds = &odds[0]
		out.DrawOdds = &odds[1]
		out.AwayOdds = &odds[2]
	}

	return out, true
}

func splitTeams(field string) (home, away string, ok bool) {
	f := strings.TrimSpace(field)
	if f == "" {
		return "", "", false
	}

	for _, sep := range teamSeparators {
		if strings.Count(f, sep) != 1 {
			continue
		}
		parts := strings.SplitN(f, sep, 2)
		home := strings.TrimSpace(parts[0])
		away := strings.TrimSpace(parts[1])
		if isTeamName(home) && isTeamName(away) {
			return home, away, true
		}
	}
	return "", "", false
}

// isTeamName filters out score-like and empty halves. Real team names
// always carry at least one letter.
func isTeamName(s string) bool {
	if len(s) <= 1 {
		return false
	}
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r >= 0x80 {
			return true
		}
	}
	return false
}

func scanOddsTokens(fields []string) []float64 {
	var odds []float64
	for _, field := range fields {
		for _, token := range oddsTokenRegex.FindAllString(field, -1) {
			v, err := strconv.ParseFloat(token, 64)
			if err != nil {
				continue
			}
			if !models.OddsInRange(v) {
				continue
			}
			odds = append(odds, v)
		}
	}
	return odds
}
