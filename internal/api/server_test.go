package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/avolkov/betboard/internal/extractor"
	"github.com/avolkov/betboard/internal/pkg/cache"
	"github.com/avolkov/betboard/internal/pkg/config"
)

type stubFetcher struct {
	board  []byte
	detail []byte
}

func (f *stubFetcher) FetchBoard(_ context.Context, _, _ string, pageNo int) ([]byte, error) {
	if pageNo > 1 {
		return nil, nil
	}
	return f.board, nil
}

func (f *stubFetcher) FetchMatchDetail(context.Context, string, string) ([]byte, error) {
	return f.detail, nil
}

func newTestServer() *Server {
	fetcher := &stubFetcher{
		board: []byte("1;50;TeamA v TeamB;20:30;;;TeamA;2.10;Draw;3.40;TeamB;3.20"),
		detail: []byte(`{"competitions": [{"competitionId": "50", "matches": [{
			"matchId": "1",
			"markets": [{
				"marketDisplayName": "Both Team To Score ",
				"selectionList": [{"companyOdds": "1.70"}, {"companyOdds": "2.10"}]
			}]
		}]}]}`),
	}
	cfg := &config.Config{
		RateLimit: config.RateLimitConfig{
			BoardDelay:  time.Millisecond,
			DetailDelay: time.Millisecond,
		},
		Extractor: config.ExtractorConfig{MaxPages: 2},
	}
	service := extractor.NewService(cfg, extractor.Deps{
		Fetcher:     fetcher,
		BoardCache:  cache.NewMemoryStore(5 * time.Minute),
		DetailCache: cache.NewMemoryStore(10 * time.Minute),
	})
	return New(service, &config.ServerConfig{})
}

func doRequest(t *testing.T, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	newTestServer().Router().ServeHTTP(rec, req)
	return rec
}

func TestPing(t *testing.T) {
	rec := doRequest(t, http.MethodGet, "/ping")
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
	if rec.Body.String() != "pong\n" {
		t.Errorf("body %q", rec.Body.String())
	}
}

func TestMatchesEndpoint(t *testing.T) {
	rec := doRequest(t, http.MethodGet, "/matches?date=2026-08-26")
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}

	var result extractor.BoardResult
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(result.Matches) != 1 {
		t.Fatalf("got %d matches", len(result.Matches))
	}
	m := result.Matches[0]
	if m.HomeTeam != "TeamA" || m.AwayTeam != "TeamB" {
		t.Errorf("teams: %q %q", m.HomeTeam, m.AwayTeam)
	}
	if m.Date != "2026-08-26" {
		t.Errorf("date: %q", m.Date)
	}
	if result.Stale {
		t.Error("fresh board marked stale")
	}
}

func TestMatchesEndpointRejectsBadDate(t *testing.T) {
	rec := doRequest(t, http.MethodGet, "/matches?date=26-08-2026")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status %d", rec.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["error"] == "" {
		t.Error("error message missing")
	}
}

func TestMatchOddsEndpoint(t *testing.T) {
	rec := doRequest(t, http.MethodGet, "/match-odds?match_id=1&competition_id=50")
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}

	var detail struct {
		BTTSYes *float64 `json:"btts_yes"`
		BTTSNo  *float64 `json:"btts_no"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &detail); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if detail.BTTSYes == nil || *detail.BTTSYes != 1.70 {
		t.Errorf("btts yes: %v", detail.BTTSYes)
	}
}

func TestMatchOddsEndpointRequiresID(t *testing.T) {
	if rec := doRequest(t, http.MethodGet, "/match-odds"); rec.Code != http.StatusBadRequest {
		t.Fatalf("status %d", rec.Code)
	}
}

func TestMatchOddsEndpointUnknownMatch(t *testing.T) {
	if rec := doRequest(t, http.MethodGet, "/match-odds?match_id=404"); rec.Code != http.StatusNotFound {
		t.Fatalf("status %d", rec.Code)
	}
}

func TestCacheClearEndpoint(t *testing.T) {
	rec := doRequest(t, http.MethodPost, "/cache/clear")
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
}

func TestHealthAndMetrics(t *testing.T) {
	rec := doRequest(t, http.MethodGet, "/health")
	if rec.Code != http.StatusOK {
		t.Fatalf("health status %d", rec.Code)
	}
	var health map[string]json.RawMessage
	if err := json.Unmarshal(rec.Body.Bytes(), &health); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if _, ok := health["metrics"]; !ok {
		t.Error("health payload missing metrics")
	}

	rec = doRequest(t, http.MethodGet, "/metrics")
	if rec.Code != http.StatusOK {
		t.Fatalf("metrics status %d", rec.Code)
	}
	var snap extractor.MetricsSnapshot
	if err := json.Unmarshal(rec.Body.Bytes(), &snap); err != nil {
		t.Fatalf("decode: %v", err)
	}
}
