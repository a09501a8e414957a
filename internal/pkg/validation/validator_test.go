package validation

import (
	"errors"
	"testing"

	"github.com/avolkov/betboard/internal/pkg/models"
)

func odds(v float64) *float64 { return &v }

func validMatch() models.MatchRecord {
	return models.MatchRecord{
		ID:       "m1",
		HomeTeam: "Arsenal",
		AwayTeam: "Chelsea",
		Kickoff:  "20:30",
		Date:     "2026-08-26",
		Status:   models.StatusUpcoming,
		HomeOdds: odds(2.10),
		DrawOdds: odds(3.40),
		AwayOdds: odds(3.20),
	}
}

func TestValidateMatchOK(t *testing.T) {
	m := validMatch()
	if err := NewValidator().ValidateMatch(&m); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateMatchMissingOddsAllowed(t *testing.T) {
	m := validMatch()
	m.HomeOdds, m.DrawOdds, m.AwayOdds = nil, nil, nil
	if err := NewValidator().ValidateMatch(&m); err != nil {
		t.Fatalf("record without odds must pass validation, got: %v", err)
	}
}

func TestValidateMatchRejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*models.MatchRecord)
	}{
		{"nil odds range low", func(m *models.MatchRecord) { m.HomeOdds = odds(1.0) }},
		{"odds range high", func(m *models.MatchRecord) { m.AwayOdds = odds(80.0) }},
		{"self match", func(m *models.MatchRecord) { m.AwayTeam = "arsenal" }},
		{"short home team", func(m *models.MatchRecord) { m.HomeTeam = "A" }},
		{"empty away team", func(m *models.MatchRecord) { m.AwayTeam = "  " }},
		{"btts out of range", func(m *models.MatchRecord) {
			m.BothTeamsScore = &models.BTTSOdds{Yes: odds(0.5)}
		}},
		{"over under out of range", func(m *models.MatchRecord) {
			m.OverUnder = &models.OverUnder{Over: odds(51.0), Line: 2.5}
		}},
	}

	v := NewValidator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := validMatch()
			tt.mutate(&m)
			err := v.ValidateMatch(&m)
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !errors.Is(err, ErrValidationFailed) {
				t.Errorf("error does not wrap ErrValidationFailed: %v", err)
			}
		})
	}
}
