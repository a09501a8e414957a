package sportline

import (
	"fmt"
	"log/slog"
	"math/rand"
	"strings"

	"github.com/avolkov/betboard/internal/pkg/models"
	"github.com/avolkov/betboard/internal/pkg/validation"
)

// MatchBuilder assembles parsed field sets into canonical match records,
// applying validation and per-batch deduplication.
type MatchBuilder struct {
	validator      *validation.Validator
	allowSynthetic bool
	rng            *rand.Rand
}

// BuildStats summarizes one normalization batch.
type BuildStats struct {
	Parsed   int
	Rejected int
	Deduped  int
}

// BuildOptions carry per-batch defaults into normalization.
type BuildOptions struct {
	// DefaultDate fills records whose payload carried no calendar date
	// (the board was requested for this date).
	DefaultDate string
	// League overrides the competition lookup, used when iterating one
	// competition's matches whose name came from competitionData.
	League string
}

func NewMatchBuilder(allowSynthetic bool, seed int64) *MatchBuilder {
	return &MatchBuilder{
		validator:      validation.NewValidator(),
		allowSynthetic: allowSynthetic,
		rng:            rand.New(rand.NewSource(seed)),
	}
}

// BuildBatch normalizes a batch of parsed fields. Records failing
// validation are dropped silently (logged at debug); duplicates on the
// home-away-kickoff key keep only their first occurrence.
func (b *MatchBuilder) BuildBatch(fields []ParsedFields, opts BuildOptions) ([]models.MatchRecord, BuildStats) {
	stats := BuildStats{Parsed: len(fields)}

	seen := make(map[string]bool, len(fields))
	records := make([]models.MatchRecord, 0, len(fields))

	for i, f := range fields {
		record := b.build(f, i, opts)

		if err := b.validator.ValidateMatch(&record); err != nil {
			stats.Rejected++
			slog.Debug("Record rejected", "error", err)
			continue
		}

		key := models.DedupKey(record.HomeTeam, record.AwayTeam, record.Kickoff)
		if seen[key] {
			stats.Deduped++
			continue
		}
		seen[key] = true

		records = append(records, record)
	}

	return records, stats
}

func (b *MatchBuilder) build(f ParsedFields, index int, opts BuildOptions) models.MatchRecord {
	record := models.MatchRecord{
		ID:             f.ID,
		HomeTeam:       strings.TrimSpace(f.HomeTeam),
		AwayTeam:       strings.TrimSpace(f.AwayTeam),
		CompetitionID:  f.CompetitionID,
		Kickoff:        f.Kickoff,
		Date:           f.Date,
		Status:         f.Status,
		HomeOdds:       f.HomeOdds,
		DrawOdds:       f.DrawOdds,
		AwayOdds:       f.AwayOdds,
		OverUnder:      f.OverUnder,
		BothTeamsScore: f.BothTeamsScore,
		HomeScore:      f.HomeScore,
		AwayScore:      f.AwayScore,
		Minute:         f.Minute,
	}

	if record.ID == "" {
		record.ID = fmt.Sprintf("sportline-%d", index)
	}
	if record.Date == "" {
		record.Date = opts.DefaultDate
	}
	if record.Status == "" {
		record.Status = models.StatusUpcoming
	}

	switch {
	case opts.League != "":
		record.League = opts.League
	case f.League != "":
		record.League = f.League
	default:
		record.League = models.LeagueName(f.CompetitionID)
	}

	if b.allowSynthetic {
		b.fillSyntheticOdds(&record)
	}

	return record
}

// fillSyntheticOdds generates plausible 1X2 odds for records missing
// them and marks the record so callers can tell generated data from
// genuine upstream data.
func (b *MatchBuilder) fillSyntheticOdds(record *models.MatchRecord) {
	if record.HomeOdds != nil && record.DrawOdds != nil && record.AwayOdds != nil {
		return
	}

	if record.HomeOdds == nil {
		record.HomeOdds = b.syntheticOdd(1.5, 4.5)
	}
	if record.DrawOdds == nil {
		record.DrawOdds = b.syntheticOdd(2.8, 4.2)
	}
	if record.AwayOdds == nil {
		record.AwayOdds = b.syntheticOdd(1.5, 5.5)
	}
	record.Synthetic = true
}

func (b *MatchBuilder) syntheticOdd(lo, hi float64) *float64 {
	v := lo + b.rng.Float64()*(hi-lo)
	v = float64(int(v*100)) / 100
	return &v
}
