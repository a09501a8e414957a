package sportline

import (
	"testing"
	"time"

	"github.com/avolkov/betboard/internal/pkg/models"
)

func TestParseMarketsBTTS(t *testing.T) {
	markets := []Market{
		{
			MarketDisplayName: "Both Team To Score ",
			SelectionList: []Selection{
				{SelectionDisplayName: "Yes", CompanyOdds: "1.70"},
				{SelectionDisplayName: "No", CompanyOdds: "2.10"},
			},
		},
	}
	btts, overUnder := parseMarkets(markets)
	if btts == nil {
		t.Fatal("btts not parsed")
	}
	if btts.Yes == nil || *btts.Yes != 1.70 {
		t.Errorf("yes: got %v", btts.Yes)
	}
	if btts.No == nil || *btts.No != 2.10 {
		t.Errorf("no: got %v", btts.No)
	}
	if overUnder != nil {
		t.Errorf("unexpected over/under: %+v", overUnder)
	}
}

func TestParseMarketsBTTSLabelIsExact(t *testing.T) {
	// The trailing space is part of the upstream label. A trimmed
	// variant is a different market.
	markets := []Market{
		{
			MarketDisplayName: "Both Team To Score",
			SelectionList: []Selection{
				{CompanyOdds: "1.70"},
				{CompanyOdds: "2.10"},
			},
		},
	}
	if btts, _ := parseMarkets(markets); btts != nil {
		t.Errorf("trimmed label matched: %+v", btts)
	}
}

func TestParseMarketsOverUnder(t *testing.T) {
	markets := []Market{
		{
			MarketDisplayName: "Total Goals Over/Under 2.5",
			SelectionList: []Selection{
				{SelectionDisplayName: "Over 2.5", CompanyOdds: "1.95"},
				{SelectionDisplayName: "Under 2.5", CompanyOdds: "1.85"},
			},
		},
	}
	_, overUnder := parseMarkets(markets)
	if overUnder == nil {
		t.Fatal("over/under not parsed")
	}
	if overUnder.Over == nil || *overUnder.Over != 1.95 {
		t.Errorf("over: got %v", overUnder.Over)
	}
	if overUnder.Under == nil || *overUnder.Under != 1.85 {
		t.Errorf("under: got %v", overUnder.Under)
	}
	if overUnder.Line != 2.5 {
		t.Errorf("line: got %v", overUnder.Line)
	}
}

func TestParseMarketsFirstMatchWins(t *testing.T) {
	markets := []Market{
		{
			MarketDisplayName: "Both Team To Score ",
			SelectionList:     []Selection{{CompanyOdds: "1.70"}, {CompanyOdds: "2.10"}},
		},
		{
			MarketDisplayName: "Both Team To Score ",
			SelectionList:     []Selection{{CompanyOdds: "1.10"}, {CompanyOdds: "9.00"}},
		},
	}
	btts, _ := parseMarkets(markets)
	if btts == nil || btts.Yes == nil || *btts.Yes != 1.70 {
		t.Errorf("first market must win: %+v", btts)
	}
}

func TestParseMarketsSkipsShortSelectionLists(t *testing.T) {
	markets := []Market{
		{
			MarketDisplayName: "Both Team To Score ",
			SelectionList:     []Selection{{CompanyOdds: "1.70"}},
		},
	}
	if btts, _ := parseMarkets(markets); btts != nil {
		t.Errorf("single-selection market must be skipped: %+v", btts)
	}
}

func TestParseOddsString(t *testing.T) {
	tests := []struct {
		in   string
		want *float64
	}{
		{"1.70", fptr(1.70)},
		{" 2.10 ", fptr(2.10)},
		{"150", nil},   // no decimal point
		{"0.50", nil},  // below range
		{"99.99", nil}, // above range
		{"", nil},
		{"abc", nil},
	}
	for _, tt := range tests {
		got := parseOddsString(tt.in)
		switch {
		case tt.want == nil && got != nil:
			t.Errorf("parseOddsString(%q) = %v, want nil", tt.in, *got)
		case tt.want != nil && (got == nil || *got != *tt.want):
			t.Errorf("parseOddsString(%q) = %v, want %v", tt.in, got, *tt.want)
		}
	}
}

func TestParseDetail(t *testing.T) {
	raw := []byte(`{
		"competitions": [{
			"competitionId": "50",
			"matches": [
				{"matchId": "99", "markets": []},
				{
					"matchId": "123",
					"markets": [
						{
							"marketDisplayName": "Both Team To Score ",
							"selectionList": [
								{"companyOdds": "1.70"},
								{"companyOdds": "2.10"}
							]
						},
						{
							"marketDisplayName": "Total Goals Over/Under 2.5",
							"selectionList": [
								{"companyOdds": "1.95"},
								{"companyOdds": "1.85"}
							]
						}
					]
				}
			]
		}]
	}`)

	detail, ok := ParseDetail(raw, "123")
	if !ok {
		t.Fatal("ParseDetail failed")
	}
	if detail.BTTSYes == nil || *detail.BTTSYes != 1.70 {
		t.Errorf("btts yes: got %v", detail.BTTSYes)
	}
	if detail.BTTSNo == nil || *detail.BTTSNo != 2.10 {
		t.Errorf("btts no: got %v", detail.BTTSNo)
	}
	if detail.Over25 == nil || *detail.Over25 != 1.95 {
		t.Errorf("over: got %v", detail.Over25)
	}
	if detail.Under25 == nil || *detail.Under25 != 1.85 {
		t.Errorf("under: got %v", detail.Under25)
	}

	if _, ok := ParseDetail(raw, "404"); ok {
		t.Error("unknown match id must not resolve")
	}
	if _, ok := ParseDetail([]byte("not json"), "123"); ok {
		t.Error("malformed payload must not resolve")
	}
}

func TestDecodeLooseMatch(t *testing.T) {
	now := time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC)

	raw := []byte(`{
		"matchId": "77",
		"competitionId": "1",
		"homeTeamName": "TeamA",
		"awayTeamName": "TeamB",
		"startTime": "26 Aug 20:30",
		"homeOdds": 2.10,
		"drawOdds": "3.40",
		"awayOdds": 3.20
	}`)
	f, ok := decodeLooseMatch(raw, now)
	if !ok {
		t.Fatal("decode failed")
	}
	if f.ID != "77" || f.CompetitionID != "1" {
		t.Errorf("ids: %q %q", f.ID, f.CompetitionID)
	}
	if f.HomeTeam != "TeamA" || f.AwayTeam != "TeamB" {
		t.Errorf("teams: %q %q", f.HomeTeam, f.AwayTeam)
	}
	if f.Kickoff != "20:30" || f.Date != "2026-08-26" {
		t.Errorf("time: %q %q", f.Kickoff, f.Date)
	}
	if f.HomeOdds == nil || *f.HomeOdds != 2.10 {
		t.Errorf("home odds: %v", f.HomeOdds)
	}
	if f.DrawOdds == nil || *f.DrawOdds != 3.40 {
		t.Errorf("draw odds: %v", f.DrawOdds)
	}
}

func TestDecodeLooseMatchCombinedName(t *testing.T) {
	raw := []byte(`{"id": 42, "name": "TeamA v TeamB", "status": "inplay"}`)
	f, ok := decodeLooseMatch(raw, time.Now())
	if !ok {
		t.Fatal("decode failed")
	}
	if f.ID != "42" {
		t.Errorf("numeric id: got %q", f.ID)
	}
	if f.HomeTeam != "TeamA" || f.AwayTeam != "TeamB" {
		t.Errorf("teams: %q %q", f.HomeTeam, f.AwayTeam)
	}
	if f.Status != models.StatusLive {
		t.Errorf("status: got %s", f.Status)
	}
}

func TestDecodeLooseMatchWithoutTeams(t *testing.T) {
	if _, ok := decodeLooseMatch([]byte(`{"matchId": "5"}`), time.Now()); ok {
		t.Error("teamless object must not decode")
	}
}

func fptr(v float64) *float64 { return &v }
