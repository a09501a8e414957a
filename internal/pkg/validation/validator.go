package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/avolkov/betboard/internal/pkg/models"
)

// ErrValidationFailed wraps every per-record rejection. Callers drop the
// record and keep the batch; the error never reaches the UI.
var ErrValidationFailed = errors.New("validation failed")

// Validator implements match record validation
type Validator struct{}

// NewValidator creates a new validator
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateMatch validates a canonical match record before it is yielded
// to callers. Missing odds are allowed; present odds must be plausible.
func (v *Validator) ValidateMatch(match *models.MatchRecord) error {
	if match == nil {
		return fmt.Errorf("%w: match cannot be nil", ErrValidationFailed)
	}

	if len(strings.TrimSpace(match.HomeTeam)) <= 1 {
		return fmt.Errorf("%w: home team too short: %q", ErrValidationFailed, match.HomeTeam)
	}

	if len(strings.TrimSpace(match.AwayTeam)) <= 1 {
		return fmt.Errorf("%w: away team too short: %q", ErrValidationFailed, match.AwayTeam)
	}

	if strings.EqualFold(strings.TrimSpace(match.HomeTeam), strings.TrimSpace(match.AwayTeam)) {
		return fmt.Errorf("%w: self-match %q vs %q", ErrValidationFailed, match.HomeTeam, match.AwayTeam)
	}

	for _, o := range []struct {
		name string
		val  *float64
	}{
		{"home_odds", match.HomeOdds},
		{"draw_odds", match.DrawOdds},
		{"away_odds", match.AwayOdds},
	} {
		if o.val != nil && !models.OddsInRange(*o.val) {
			return fmt.Errorf("%w: %s out of range: %f", ErrValidationFailed, o.name, *o.val)
		}
	}

	if match.OverUnder != nil {
		if err := v.validateOddsPair(match.OverUnder.Over, match.OverUnder.Under, "over_under"); err != nil {
			return err
		}
	}

	if match.BothTeamsScore != nil {
		if err := v.validateOddsPair(match.BothTeamsScore.Yes, match.BothTeamsScore.No, "both_teams_score"); err != nil {
			return err
		}
	}

	return nil
}

func (v *Validator) validateOddsPair(a, b *float64, market string) error {
	if a != nil && !models.OddsInRange(*a) {
		return fmt.Errorf("%w: %s odds out of range: %f", ErrValidationFailed, market, *a)
	}
	if b != nil && !models.OddsInRange(*b) {
		return fmt.Errorf("%w: %s odds out of range: %f", ErrValidationFailed, market, *b)
	}
	return nil
}
