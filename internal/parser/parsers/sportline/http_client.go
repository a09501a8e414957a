package sportline

import (
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/avolkov/betboard/internal/pkg/config"
)

const sportID = "soccer"

// Client talks to the upstream site's undocumented JSON/HTML endpoints.
// The endpoint shapes were reverse-engineered and carry no contract;
// treat every response as hostile input.
type Client struct {
	client    *http.Client
	baseURL   string
	userAgent string
	headers   map[string]string
}

func NewClient(cfg *config.UpstreamConfig) *Client {
	return &Client{
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL:   cfg.BaseURL,
		userAgent: cfg.UserAgent,
		headers:   cfg.Headers,
	}
}

// FetchBoard fetches one page of the match board.
// GET {base}/GetSport?sportId=soccer&date=YYYY-MM-DD&competitionId=0&pageNo=N&periodCode=all
func (c *Client) FetchBoard(ctx context.Context, date, competitionID string, pageNo int) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/GetSport", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if competitionID == "" {
		competitionID = "0"
	}

	q := req.URL.Query()
	q.Set("sportId", sportID)
	q.Set("date", date)
	q.Set("competitionId", competitionID)
	q.Set("pageNo", fmt.Sprintf("%d", pageNo))
	q.Set("periodCode", "all")
	req.URL.RawQuery = q.Encode()

	return c.do(req)
}

// FetchMatchDetail fetches the market list for a single match.
// GET {base}/GetMatch?sportId=soccer&competitionId={id}&matchId={id}&periodCode=all
func (c *Client) FetchMatchDetail(ctx context.Context, matchID, competitionID string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/GetMatch", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	q := req.URL.Query()
	q.Set("sportId", sportID)
	q.Set("competitionId", competitionID)
	q.Set("matchId", matchID)
	q.Set("periodCode", "all")
	req.URL.RawQuery = q.Encode()

	return c.do(req)
}

func (c *Client) do(req *http.Request) ([]byte, error) {
	req.Header.Set("Accept", "application/json, text/plain, */*")
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("User-Agent", c.userAgent)
	for key, value := range c.headers {
		req.Header.Set(key, value)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &UpstreamHTTPError{
			Status:     resp.StatusCode,
			StatusText: http.StatusText(resp.StatusCode),
		}
	}

	var body []byte
	if resp.Header.Get("Content-Encoding") == "gzip" {
		gzReader, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, &UpstreamParseError{Reason: "bad gzip body", Err: err}
		}
		defer gzReader.Close()

		body, err = io.ReadAll(gzReader)
		if err != nil {
			return nil, &UpstreamParseError{Reason: "failed to read gzipped body", Err: err}
		}
	} else {
		body, err = io.ReadAll(resp.Body)
		if err != nil {
			return nil, &UpstreamParseError{Reason: "failed to read body", Err: err}
		}
	}

	if len(body) == 0 {
		return nil, &UpstreamParseError{Reason: "empty body"}
	}

	return body, nil
}
