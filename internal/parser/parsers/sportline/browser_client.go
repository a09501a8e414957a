package sportline

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/chromedp/chromedp"

	"github.com/avolkov/betboard/internal/pkg/config"
	"github.com/avolkov/betboard/internal/pkg/interfaces"
)

// BrowserClient renders the board page in headless Chrome and returns its
// HTML. Used when the plain endpoint serves a JS shell instead of data;
// the result goes through the HTML parse strategy. Match detail requests
// are delegated to the plain HTTP client.
type BrowserClient struct {
	boardURL string // %s is replaced with the requested date
	timeout  time.Duration
	fallback interfaces.Fetcher
}

func NewBrowserClient(cfg *config.BrowserConfig, fallback interfaces.Fetcher) *BrowserClient {
	return &BrowserClient{
		boardURL: cfg.BoardURL,
		timeout:  cfg.Timeout,
		fallback: fallback,
	}
}

// FetchBoard navigates to the board page and returns the rendered HTML.
// Pagination does not apply to the rendered page: pages beyond the first
// are reported empty so the extraction loop stops.
func (b *BrowserClient) FetchBoard(ctx context.Context, date, competitionID string, pageNo int) ([]byte, error) {
	if pageNo > 1 {
		return nil, nil
	}

	url := b.boardURL
	if strings.Contains(url, "%s") {
		url = fmt.Sprintf(b.boardURL, date)
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("no-sandbox", true),
	)

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	browserCtx, cancelTimeout := context.WithTimeout(browserCtx, b.timeout)
	defer cancelTimeout()

	var html string
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
		// Give the page's own polling a beat to fill the board
		chromedp.Sleep(2*time.Second),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	)
	if err != nil {
		return nil, fmt.Errorf("chromedp board fetch: %w", err)
	}

	if strings.TrimSpace(html) == "" {
		return nil, &UpstreamParseError{Reason: "rendered page is empty"}
	}

	return []byte(html), nil
}

// FetchMatchDetail goes through the plain HTTP client; the detail
// endpoint returns JSON directly and needs no rendering.
func (b *BrowserClient) FetchMatchDetail(ctx context.Context, matchID, competitionID string) ([]byte, error) {
	return b.fallback.FetchMatchDetail(ctx, matchID, competitionID)
}
