package sportline

import (
	"strings"
	"testing"

	"github.com/avolkov/betboard/internal/pkg/models"
)

func TestBuildBatch(t *testing.T) {
	b := NewMatchBuilder(false, 1)

	fields := []ParsedFields{
		{ID: "1", HomeTeam: "TeamA", AwayTeam: "TeamB", Kickoff: "20:30", CompetitionID: "1",
			HomeOdds: fptr(2.10), DrawOdds: fptr(3.40), AwayOdds: fptr(3.20)},
		// Duplicate of the first on home-away-kickoff, different odds.
		{ID: "2", HomeTeam: "teama", AwayTeam: "TEAMB", Kickoff: "20:30",
			HomeOdds: fptr(1.10)},
		// Self-match, rejected by validation.
		{ID: "3", HomeTeam: "TeamC", AwayTeam: "teamc", Kickoff: "21:00"},
		{ID: "4", HomeTeam: "TeamD", AwayTeam: "TeamE", Kickoff: "21:00"},
	}

	records, stats := b.BuildBatch(fields, BuildOptions{DefaultDate: "2026-08-26"})
	if len(records) != 2 {
		t.Fatalf("got %d records: %+v", len(records), records)
	}
	if stats.Parsed != 4 || stats.Rejected != 1 || stats.Deduped != 1 {
		t.Errorf("stats: %+v", stats)
	}

	first := records[0]
	if first.ID != "1" {
		t.Errorf("first occurrence must win dedup, got ID %q", first.ID)
	}
	if first.HomeOdds == nil || *first.HomeOdds != 2.10 {
		t.Errorf("first record odds: %v", first.HomeOdds)
	}
	if first.Date != "2026-08-26" {
		t.Errorf("default date: got %q", first.Date)
	}
	if first.Status != models.StatusUpcoming {
		t.Errorf("default status: got %s", first.Status)
	}
	if first.League != "English Premier League" {
		t.Errorf("league lookup: got %q", first.League)
	}
}

func TestBuildBatchLeaguePrecedence(t *testing.T) {
	b := NewMatchBuilder(false, 1)

	fields := []ParsedFields{
		{HomeTeam: "TeamA", AwayTeam: "TeamB", League: "Payload League", CompetitionID: "1"},
	}

	records, _ := b.BuildBatch(fields, BuildOptions{League: "Batch League"})
	if records[0].League != "Batch League" {
		t.Errorf("batch option must win: got %q", records[0].League)
	}

	records, _ = b.BuildBatch(fields, BuildOptions{})
	if records[0].League != "Payload League" {
		t.Errorf("payload league must beat lookup: got %q", records[0].League)
	}

	fields[0].League = ""
	records, _ = b.BuildBatch(fields, BuildOptions{})
	if records[0].League != "English Premier League" {
		t.Errorf("lookup fallback: got %q", records[0].League)
	}
}

func TestBuildBatchFallbackID(t *testing.T) {
	b := NewMatchBuilder(false, 1)

	fields := []ParsedFields{
		{HomeTeam: "TeamA", AwayTeam: "TeamB"},
		{HomeTeam: "TeamC", AwayTeam: "TeamD"},
	}
	records, _ := b.BuildBatch(fields, BuildOptions{})
	if records[0].ID != "sportline-0" || records[1].ID != "sportline-1" {
		t.Errorf("fallback ids: %q %q", records[0].ID, records[1].ID)
	}
	if !strings.HasPrefix(records[0].ID, "sportline-") {
		t.Errorf("id prefix: %q", records[0].ID)
	}
}

func TestBuildBatchSyntheticOdds(t *testing.T) {
	fields := []ParsedFields{{HomeTeam: "TeamA", AwayTeam: "TeamB"}}

	// Disabled: missing odds stay missing and the record is genuine.
	b := NewMatchBuilder(false, 1)
	records, _ := b.BuildBatch(fields, BuildOptions{})
	if records[0].HomeOdds != nil || records[0].Synthetic {
		t.Errorf("synthetic disabled: %+v", records[0])
	}

	// Enabled: all three 1X2 odds appear, in range, and the record is
	// marked so consumers can tell.
	b = NewMatchBuilder(true, 1)
	records, _ = b.BuildBatch(fields, BuildOptions{})
	r := records[0]
	if !r.Synthetic {
		t.Error("synthetic record not marked")
	}
	for name, v := range map[string]*float64{"home": r.HomeOdds, "draw": r.DrawOdds, "away": r.AwayOdds} {
		if v == nil {
			t.Fatalf("%s odds missing", name)
		}
		if !models.OddsInRange(*v) {
			t.Errorf("%s odds out of range: %v", name, *v)
		}
	}
}

func TestBuildBatchSyntheticLeavesGenuineAlone(t *testing.T) {
	b := NewMatchBuilder(true, 1)
	fields := []ParsedFields{
		{HomeTeam: "TeamA", AwayTeam: "TeamB",
			HomeOdds: fptr(2.10), DrawOdds: fptr(3.40), AwayOdds: fptr(3.20)},
	}
	records, _ := b.BuildBatch(fields, BuildOptions{})
	r := records[0]
	if r.Synthetic {
		t.Error("complete record must not be marked synthetic")
	}
	if *r.HomeOdds != 2.10 || *r.DrawOdds != 3.40 || *r.AwayOdds != 3.20 {
		t.Errorf("genuine odds changed: %+v", r)
	}
}

func TestBuildBatchCarriesLiveFields(t *testing.T) {
	b := NewMatchBuilder(false, 1)
	minute := 67
	home, away := 2, 1
	fields := []ParsedFields{
		{HomeTeam: "TeamA", AwayTeam: "TeamB", Status: models.StatusLive,
			Minute: &minute, HomeScore: &home, AwayScore: &away},
	}
	records, _ := b.BuildBatch(fields, BuildOptions{})
	r := records[0]
	if r.Status != models.StatusLive {
		t.Errorf("status: %s", r.Status)
	}
	if r.Minute == nil || *r.Minute != 67 {
		t.Errorf("minute: %v", r.Minute)
	}
	if r.HomeScore == nil || *r.HomeScore != 2 || r.AwayScore == nil || *r.AwayScore != 1 {
		t.Errorf("score: %v %v", r.HomeScore, r.AwayScore)
	}
}
