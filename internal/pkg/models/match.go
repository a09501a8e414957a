package models

// MatchStatus describes the lifecycle state of a match.
type MatchStatus string

const (
	StatusUpcoming MatchStatus = "upcoming"
	StatusLive     MatchStatus = "live"
	StatusFinished MatchStatus = "finished"
)

// Decimal odds outside this range are treated as not-odds and discarded.
const (
	MinOdds = 1.01
	MaxOdds = 50.0
)

// OverUnder holds total-goals market odds for a fixed line.
type OverUnder struct {
	Over  *float64 `json:"over,omitempty"`
	Under *float64 `json:"under,omitempty"`
	Line  float64  `json:"line"`
}

// DefaultTotalLine is the only goal line the upstream exposes on the board.
const DefaultTotalLine = 2.5

// BTTSOdds holds the both-teams-to-score market pair.
type BTTSOdds struct {
	Yes *float64 `json:"yes,omitempty"`
	No  *float64 `json:"no,omitempty"`
}

// MatchRecord is the canonical output unit of the extraction pipeline.
// Odds fields are pointers: nil means the market was not discoverable,
// never a faked value (unless Synthetic is set by explicit configuration).
type MatchRecord struct {
	ID            string      `json:"id"`
	HomeTeam      string      `json:"home_team"`
	AwayTeam      string      `json:"away_team"`
	League        string      `json:"league"`
	CompetitionID string      `json:"competition_id,omitempty"`
	Kickoff       string      `json:"kickoff"` // HH:MM
	Date          string      `json:"date"`    // YYYY-MM-DD
	Status        MatchStatus `json:"status"`

	HomeOdds *float64 `json:"home_odds,omitempty"`
	DrawOdds *float64 `json:"draw_odds,omitempty"`
	AwayOdds *float64 `json:"away_odds,omitempty"`

	OverUnder      *OverUnder `json:"over_under,omitempty"`
	BothTeamsScore *BTTSOdds  `json:"both_teams_score,omitempty"`

	HomeScore *int `json:"home_score,omitempty"`
	AwayScore *int `json:"away_score,omitempty"`
	Minute    *int `json:"minute,omitempty"`

	// Synthetic marks records whose missing 1X2 odds were filled with
	// generated placeholder values (allow_synthetic_odds config flag).
	Synthetic bool `json:"synthetic,omitempty"`
}

// MatchOddsDetail carries the finer-grained market odds returned by the
// single-match endpoint, used to enrich a board entry.
type MatchOddsDetail struct {
	BTTSYes *float64 `json:"btts_yes,omitempty"`
	BTTSNo  *float64 `json:"btts_no,omitempty"`
	Over25  *float64 `json:"over_25,omitempty"`
	Under25 *float64 `json:"under_25,omitempty"`
}

// OddsInRange reports whether v is a plausible decimal odds value.
func OddsInRange(v float64) bool {
	return v >= MinOdds && v <= MaxOdds
}
