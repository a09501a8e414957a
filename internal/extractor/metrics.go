package extractor

import "sync/atomic"

// Metrics counts pipeline events since process start.
type Metrics struct {
	upstreamFetches atomic.Int64
	cacheHits       atomic.Int64
	staleFallbacks  atomic.Int64
	emptyResults    atomic.Int64
	rejectedRecords atomic.Int64
	dedupedRecords  atomic.Int64
}

// MetricsSnapshot is the JSON view served by the metrics endpoint.
type MetricsSnapshot struct {
	UpstreamFetches int64 `json:"upstream_fetches"`
	CacheHits       int64 `json:"cache_hits"`
	StaleFallbacks  int64 `json:"stale_fallbacks"`
	EmptyResults    int64 `json:"empty_results"`
	RejectedRecords int64 `json:"rejected_records"`
	DedupedRecords  int64 `json:"deduped_records"`
}

func (m *Metrics) snapshot() MetricsSnapshot {
	return MetricsSnapshot{
		UpstreamFetches: m.upstreamFetches.Load(),
		CacheHits:       m.cacheHits.Load(),
		StaleFallbacks:  m.staleFallbacks.Load(),
		EmptyResults:    m.emptyResults.Load(),
		RejectedRecords: m.rejectedRecords.Load(),
		DedupedRecords:  m.dedupedRecords.Load(),
	}
}
