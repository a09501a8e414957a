package sportline

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/avolkov/betboard/internal/pkg/models"
)

// bttsMarketLabel is the exact display name the upstream uses for the
// both-teams-to-score market, trailing space included.
const bttsMarketLabel = "Both Team To Score "

// totalLineMarker identifies the 2.5-goal totals market inside its
// display name ("Total Goals Over/Under 2.5" and variants).
const totalLineMarker = "2.5"

// parseMarkets maps a market list onto the BTTS and over/under pairs.
// Market entries match by display name; selections map by POSITION
// (first = yes/over, second = no/under) because label text varies.
func parseMarkets(markets []Market) (*models.BTTSOdds, *models.OverUnder) {
	var btts *models.BTTSOdds
	var overUnder *models.OverUnder

	for _, m := range markets {
		if len(m.SelectionList) < 2 {
			continue
		}
		first := parseOddsString(m.SelectionList[0].CompanyOdds)
		second := parseOddsString(m.SelectionList[1].CompanyOdds)
		if first == nil && second == nil {
			continue
		}

		switch {
		case btts == nil && m.MarketDisplayName == bttsMarketLabel:
			btts = &models.BTTSOdds{Yes: first, No: second}
		case overUnder == nil && strings.Contains(m.MarketDisplayName, totalLineMarker):
			overUnder = &models.OverUnder{Over: first, Under: second, Line: models.DefaultTotalLine}
		}
	}

	return btts, overUnder
}

// parseOddsString converts an upstream odds string to a validated value.
// The token must carry a decimal point; integer strings are not odds.
func parseOddsString(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" || !strings.Contains(s, ".") {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || !models.OddsInRange(v) {
		return nil
	}
	return &v
}

// ParseDetail extracts the enrichment odds for one match from a GetMatch
// response. Returns false when the match is absent from the payload or
// no usable market was found.
func ParseDetail(raw []byte, matchID string) (*models.MatchOddsDetail, bool) {
	var resp DetailResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, false
	}

	for _, comp := range resp.Competitions {
		for _, match := range comp.Matches {
			if matchID != "" && match.MatchID.String() != matchID {
				continue
			}
			btts, overUnder := parseMarkets(match.Markets)
			if btts == nil && overUnder == nil {
				continue
			}
			detail := &models.MatchOddsDetail{}
			if btts != nil {
				detail.BTTSYes = btts.Yes
				detail.BTTSNo = btts.No
			}
			if overUnder != nil {
				detail.Over25 = overUnder.Over
				detail.Under25 = overUnder.Under
			}
			return detail, true
		}
	}

	return nil, false
}

// decodeLooseMatch pulls fields out of one board-level match object whose
// field names drift between payload revisions.
func decodeLooseMatch(raw json.RawMessage, now time.Time) (ParsedFields, bool) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return ParsedFields{}, false
	}

	var out ParsedFields
	out.ID = firstString(obj, "matchId", "id", "eventId")
	out.CompetitionID = firstString(obj, "competitionId", "leagueId")
	out.League = firstString(obj, "competitionName", "leagueName", "league")
	out.HomeTeam = firstString(obj, "homeTeamName", "homeTeam", "home")
	out.AwayTeam = firstString(obj, "awayTeamName", "awayTeam", "away")

	// Some payloads carry a combined "TeamA v TeamB" name instead.
	if out.HomeTeam == "" || out.AwayTeam == "" {
		if name := firstString(obj, "matchName", "name"); name != "" {
			if home, away, ok := splitTeams(name); ok {
				out.HomeTeam = home
				out.AwayTeam = away
			}
		}
	}
	if out.HomeTeam == "" || out.AwayTeam == "" {
		return ParsedFields{}, false
	}

	out.Date = firstString(obj, "date", "matchDate")
	out.Status = models.StatusUpcoming
	if rawTime := firstString(obj, "kickoff", "startTime", "matchTime", "time"); rawTime != "" {
		if info, ok := ParseKickoff(rawTime, now); ok {
			out.Kickoff = info.Kickoff
			if out.Date == "" {
				out.Date = info.Date
			}
			if info.Status == models.StatusLive {
				out.Status = models.StatusLive
			}
			out.Minute = info.Minute
		}
	}
	status := strings.ToLower(firstString(obj, "status", "matchStatus"))
	switch {
	case strings.Contains(status, "live") || strings.Contains(status, "inplay"):
		out.Status = models.StatusLive
	case strings.Contains(status, "finish") || strings.Contains(status, "ended"):
		out.Status = models.StatusFinished
	}

	out.HomeOdds = firstOdds(obj, "homeOdds", "odds1", "home_odds")
	out.DrawOdds = firstOdds(obj, "drawOdds", "oddsX", "draw_odds")
	out.AwayOdds = firstOdds(obj, "awayOdds", "odds2", "away_odds")

	var markets struct {
		Markets []Market `json:"markets"`
	}
	if err := json.Unmarshal(raw, &markets); err == nil && len(markets.Markets) > 0 {
		out.BothTeamsScore, out.OverUnder = parseMarkets(markets.Markets)
	}

	return out, true
}

func firstString(obj map[string]json.RawMessage, keys ...string) string {
	for _, key := range keys {
		raw, ok := obj[key]
		if !ok {
			continue
		}
		var s string
		if err := json.Unmarshal(raw, &s); err == nil && strings.TrimSpace(s) != "" {
			return strings.TrimSpace(s)
		}
		var n json.Number
		if err := json.Unmarshal(raw, &n); err == nil && n.String() != "" {
			return n.String()
		}
	}
	return ""
}

// firstOdds reads an odds value that may arrive as a number or a string.
// String values go through the decimal-point rule; JSON numbers carry
// their own type information and are only range-checked.
func firstOdds(obj map[string]json.RawMessage, keys ...string) *float64 {
	for _, key := range keys {
		raw, ok := obj[key]
		if !ok {
			continue
		}
		var f float64
		if err := json.Unmarshal(raw, &f); err == nil {
			if models.OddsInRange(f) {
				return &f
			}
			continue
		}
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			if v := parseOddsString(s); v != nil {
				return v
			}
		}
	}
	return nil
}
