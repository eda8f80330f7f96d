package collector

import (
	"context"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"

	"BuildPulse/internal/model"
	"BuildPulse/internal/settings"
)

// maxFeedResponseBytes bounds how much of a feed body is read.
const maxFeedResponseBytes = 2 << 20

// HTTPFeedFetcher pulls raw feed text over HTTP and runs it through the
// tolerant item scanner.
type HTTPFeedFetcher struct {
	Client *http.Client
}

// NewHTTPFeedFetcher creates a feed fetcher with a bounded timeout.
func NewHTTPFeedFetcher() *HTTPFeedFetcher {
	return &HTTPFeedFetcher{
		Client: &http.Client{Timeout: 20 * time.Second},
	}
}

func (f *HTTPFeedFetcher) Name() string { return "http-feed" }

// FetchFeed fetches one source and returns its items, raw and unsorted.
// When proxyPrefix is set the request goes to the prefix followed by the
// URL-encoded target. Every failure path returns an empty list.
func (f *HTTPFeedFetcher) FetchFeed(ctx context.Context, src settings.FeedSource, proxyPrefix string) []model.FeedItem {
	target := src.URL
	if proxyPrefix != "" {
		target = proxyPrefix + url.QueryEscape(src.URL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		log.Printf("[WARN] feed %s: build request: %v", src.Name, err)
		return nil
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := f.Client.Do(req)
	if err != nil {
		log.Printf("[WARN] feed %s: fetch: %v", src.Name, err)
		return nil
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log.Printf("[WARN] feed %s: status %d", src.Name, resp.StatusCode)
		return nil
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxFeedResponseBytes))
	if err != nil {
		log.Printf("[WARN] feed %s: read body: %v", src.Name, err)
		return nil
	}

	items := scanItems(string(body))
	for i := range items {
		items[i].Source = src.Name
	}
	return items
}
