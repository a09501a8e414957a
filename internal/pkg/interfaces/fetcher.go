package interfaces

import "context"

// Fetcher retrieves raw payloads from the upstream betting site.
// Implementations do no caching; that is the extraction service's job.
type Fetcher interface {
	// FetchBoard fetches one page of the match board for a date.
	// competitionID "0" means all competitions.
	FetchBoard(ctx context.Context, date, competitionID string, pageNo int) ([]byte, error)

	// FetchMatchDetail fetches the full market list for a single match.
	FetchMatchDetail(ctx context.Context, matchID, competitionID string) ([]byte, error)
}

// Notifier receives operational degradation signals (upstream down,
// stale fallback engaged).
type Notifier interface {
	NotifyDegraded(ctx context.Context, reason string)
}
