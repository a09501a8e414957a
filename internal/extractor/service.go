package extractor

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/avolkov/betboard/internal/parser/parsers/sportline"
	"github.com/avolkov/betboard/internal/pkg/cache"
	"github.com/avolkov/betboard/internal/pkg/config"
	"github.com/avolkov/betboard/internal/pkg/interfaces"
	"github.com/avolkov/betboard/internal/pkg/models"
	"github.com/avolkov/betboard/internal/pkg/ratelimit"
)

const dateLayout = "2006-01-02"

// BoardResult is what the presentation layer receives: the records plus
// an explicit staleness indicator instead of silently substituted data.
type BoardResult struct {
	Matches   []models.MatchRecord `json:"matches"`
	Stale     bool                 `json:"stale"`
	FetchedAt time.Time            `json:"fetched_at"`
}

// Service drives the extraction flow: cache check, rate limit, fetch,
// parse, normalize, cache write. All failures degrade to stale or empty
// results; Service methods never return an error to the caller.
type Service struct {
	fetcher     interfaces.Fetcher
	boardCache  cache.Store
	detailCache cache.Store
	boardLimit  *ratelimit.Limiter
	detailLimit *ratelimit.Limiter
	builder     *sportline.MatchBuilder
	notifier    interfaces.Notifier
	maxPages    int

	metrics Metrics
	now     func() time.Time

	// At most one in-flight upstream fetch per cache key; concurrent
	// callers for the same key wait on the leader's result.
	mu           sync.Mutex
	boardFlight  map[string]*boardCall
	detailFlight map[string]*detailCall
}

type boardCall struct {
	done   chan struct{}
	result BoardResult
}

type detailCall struct {
	done   chan struct{}
	detail *models.MatchOddsDetail
	ok     bool
}

// Deps bundles the service's injectable collaborators.
type Deps struct {
	Fetcher     interfaces.Fetcher
	BoardCache  cache.Store
	DetailCache cache.Store
	Notifier    interfaces.Notifier
}

// NewService wires an extraction service from config and dependencies.
func NewService(cfg *config.Config, deps Deps) *Service {
	return &Service{
		fetcher:      deps.Fetcher,
		boardCache:   deps.BoardCache,
		detailCache:  deps.DetailCache,
		boardLimit:   ratelimit.New(cfg.RateLimit.BoardDelay),
		detailLimit:  ratelimit.New(cfg.RateLimit.DetailDelay),
		builder:      sportline.NewMatchBuilder(cfg.Extractor.AllowSyntheticOdds, time.Now().UnixNano()),
		notifier:     deps.Notifier,
		maxPages:     cfg.Extractor.MaxPages,
		now:          time.Now,
		boardFlight:  make(map[string]*boardCall),
		detailFlight: make(map[string]*detailCall),
	}
}

// Matches returns the match board for a date (today when empty). Cache
// hits within the TTL avoid the upstream entirely; fetch or parse
// failures fall back to the last-known-good batch ignoring the TTL, and
// an empty board is the terminal degradation.
func (s *Service) Matches(ctx context.Context, date string) BoardResult {
	if date == "" {
		date = s.now().Format(dateLayout)
	}
	key := "board:" + date

	if data, storedAt, ok := s.boardCache.Get(ctx, key); ok {
		if records, err := decodeRecords(data); err == nil {
			s.metrics.cacheHits.Add(1)
			return BoardResult{Matches: records, FetchedAt: storedAt}
		}
	}

	s.mu.Lock()
	if call, ok := s.boardFlight[key]; ok {
		s.mu.Unlock()
		select {
		case <-call.done:
			return call.result
		case <-ctx.Done():
			return BoardResult{Matches: []models.MatchRecord{}}
		}
	}
	call := &boardCall{done: make(chan struct{})}
	s.boardFlight[key] = call
	s.mu.Unlock()

	result := s.extractBoard(ctx, key, date)

	call.result = result
	close(call.done)
	s.mu.Lock()
	delete(s.boardFlight, key)
	s.mu.Unlock()

	return result
}

func (s *Service) extractBoard(ctx context.Context, key, date string) BoardResult {
	batchID := uuid.NewString()[:8]
	log := slog.With("batch", batchID, "date", date)

	fields, err := s.fetchBoardFields(ctx, date, log)
	if err != nil {
		log.Error("Board fetch failed", "error", err)
		return s.degradeBoard(ctx, key, date)
	}

	records, stats := s.builder.BuildBatch(fields, sportline.BuildOptions{DefaultDate: date})
	s.metrics.rejectedRecords.Add(int64(stats.Rejected))
	s.metrics.dedupedRecords.Add(int64(stats.Deduped))

	if len(records) == 0 {
		log.Warn("Board extraction yielded no records", "parsed", stats.Parsed, "rejected", stats.Rejected)
		return s.degradeBoard(ctx, key, date)
	}

	models.SortByDate(records)

	if data, err := json.Marshal(records); err == nil {
		if err := s.boardCache.Set(ctx, key, data); err != nil {
			log.Warn("Board cache write failed", "error", err)
		}
	}

	log.Info("Board extracted",
		"records", len(records), "rejected", stats.Rejected, "deduped", stats.Deduped)
	return BoardResult{Matches: records, FetchedAt: s.now()}
}

// fetchBoardFields walks the upstream pages for a date and returns every
// parsed field set. When the upstream answers with a competition list
// instead of matches, each competition is fetched sequentially, each
// paying the rate-limit delay.
func (s *Service) fetchBoardFields(ctx context.Context, date string, log *slog.Logger) ([]sportline.ParsedFields, error) {
	opts := sportline.ParseOptions{Now: s.now()}

	var all []sportline.ParsedFields
	for page := 1; page <= s.maxPages; page++ {
		if err := s.boardLimit.Acquire(ctx); err != nil {
			return nil, err
		}

		raw, err := s.fetcher.FetchBoard(ctx, date, "0", page)
		if err != nil {
			if page == 1 {
				return nil, err
			}
			log.Warn("Board page fetch failed, stopping pagination", "page", page, "error", err)
			break
		}
		s.metrics.upstreamFetches.Add(1)

		fields := sportline.ParseBoard(raw, opts)

		if page == 1 && len(fields) == 0 {
			if comps := sportline.ParseCompetitions(raw); len(comps) > 0 {
				return s.fetchCompetitionFields(ctx, date, comps, opts, log)
			}
		}
		if len(fields) == 0 {
			break
		}
		all = append(all, fields...)
	}

	return all, nil
}

func (s *Service) fetchCompetitionFields(ctx context.Context, date string, comps []sportline.Competition, opts sportline.ParseOptions, log *slog.Logger) ([]sportline.ParsedFields, error) {
	log.Info("Board answered with competition list", "competitions", len(comps))

	var all []sportline.ParsedFields
	for _, comp := range comps {
		if err := s.boardLimit.Acquire(ctx); err != nil {
			return all, err
		}

		raw, err := s.fetcher.FetchBoard(ctx, date, comp.ID, 1)
		if err != nil {
			log.Warn("Competition fetch failed", "competition", comp.ID, "error", err)
			continue
		}
		s.metrics.upstreamFetches.Add(1)

		fields := sportline.ParseBoard(raw, opts)
		for i := range fields {
			if fields[i].League == "" {
				fields[i].League = comp.Name
			}
			if fields[i].CompetitionID == "" {
				fields[i].CompetitionID = comp.ID
			}
		}
		all = append(all, fields...)
	}

	return all, nil
}

func (s *Service) degradeBoard(ctx context.Context, key, date string) BoardResult {
	if data, storedAt, ok := s.boardCache.GetStale(ctx, key); ok {
		if records, err := decodeRecords(data); err == nil {
			s.metrics.staleFallbacks.Add(1)
			s.notifyDegraded(ctx, "upstream unavailable, serving stale board for "+date)
			return BoardResult{Matches: records, Stale: true, FetchedAt: storedAt}
		}
	}

	s.metrics.emptyResults.Add(1)
	s.notifyDegraded(ctx, "upstream unavailable and no cached board for "+date)
	return BoardResult{Matches: []models.MatchRecord{}}
}

// MatchDetail fetches the enrichment odds for one board entry. Same
// degradation policy as the board, with the shorter detail TTL.
func (s *Service) MatchDetail(ctx context.Context, matchID, competitionID string) (*models.MatchOddsDetail, bool) {
	key := "detail:" + competitionID + ":" + matchID

	if data, _, ok := s.detailCache.Get(ctx, key); ok {
		if detail, err := decodeDetail(data); err == nil {
			s.metrics.cacheHits.Add(1)
			return detail, true
		}
	}

	s.mu.Lock()
	if call, ok := s.detailFlight[key]; ok {
		s.mu.Unlock()
		select {
		case <-call.done:
			return call.detail, call.ok
		case <-ctx.Done():
			return nil, false
		}
	}
	call := &detailCall{done: make(chan struct{})}
	s.detailFlight[key] = call
	s.mu.Unlock()

	detail, ok := s.extractDetail(ctx, key, matchID, competitionID)

	call.detail = detail
	call.ok = ok
	close(call.done)
	s.mu.Lock()
	delete(s.detailFlight, key)
	s.mu.Unlock()

	return detail, ok
}

func (s *Service) extractDetail(ctx context.Context, key, matchID, competitionID string) (*models.MatchOddsDetail, bool) {
	if err := s.detailLimit.Acquire(ctx); err != nil {
		return s.degradeDetail(ctx, key)
	}

	raw, err := s.fetcher.FetchMatchDetail(ctx, matchID, competitionID)
	if err != nil {
		slog.Error("Match detail fetch failed", "match", matchID, "error", err)
		return s.degradeDetail(ctx, key)
	}
	s.metrics.upstreamFetches.Add(1)

	detail, ok := sportline.ParseDetail(raw, matchID)
	if !ok {
		slog.Debug("Match detail payload had no usable markets", "match", matchID)
		return s.degradeDetail(ctx, key)
	}

	if data, err := json.Marshal(detail); err == nil {
		if err := s.detailCache.Set(ctx, key, data); err != nil {
			slog.Warn("Detail cache write failed", "error", err)
		}
	}

	return detail, true
}

func (s *Service) degradeDetail(ctx context.Context, key string) (*models.MatchOddsDetail, bool) {
	if data, _, ok := s.detailCache.GetStale(ctx, key); ok {
		if detail, err := decodeDetail(data); err == nil {
			s.metrics.staleFallbacks.Add(1)
			return detail, true
		}
	}
	return nil, false
}

// ClearCache drops every cached board and detail entry.
func (s *Service) ClearCache(ctx context.Context) {
	if err := s.boardCache.Clear(ctx); err != nil {
		slog.Warn("Board cache clear failed", "error", err)
	}
	if err := s.detailCache.Clear(ctx); err != nil {
		slog.Warn("Detail cache clear failed", "error", err)
	}
	slog.Info("Cache cleared")
}

// Snapshot returns the pipeline counters.
func (s *Service) Snapshot() MetricsSnapshot {
	return s.metrics.snapshot()
}

func (s *Service) notifyDegraded(ctx context.Context, reason string) {
	if s.notifier == nil {
		return
	}
	s.notifier.NotifyDegraded(ctx, reason)
}

func decodeRecords(data []byte) ([]models.MatchRecord, error) {
	var records []models.MatchRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func decodeDetail(data []byte) (*models.MatchOddsDetail, error) {
	var detail models.MatchOddsDetail
	if err := json.Unmarshal(data, &detail); err != nil {
		return nil, err
	}
	return &detail, nil
}
