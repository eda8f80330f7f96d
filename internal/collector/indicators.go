package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"BuildPulse/internal/model"
)

// maxIndicatorResponseBytes bounds indicator endpoint bodies.
const maxIndicatorResponseBytes = 1 << 20

// HTTPIndicatorFetcher fetches indicator JSON from configured endpoint
// overrides, falling back to the fixtures on every failure.
type HTTPIndicatorFetcher struct {
	Client *http.Client
}

// NewHTTPIndicatorFetcher creates an indicator fetcher with a bounded timeout.
func NewHTTPIndicatorFetcher() *HTTPIndicatorFetcher {
	return &HTTPIndicatorFetcher{
		Client: &http.Client{Timeout: 15 * time.Second},
	}
}

func (f *HTTPIndicatorFetcher) Name() string { return "http-indicator" }

func (f *HTTPIndicatorFetcher) FetchPMI(ctx context.Context, endpoint string) model.PmiReading {
	if endpoint == "" {
		return FallbackPMI()
	}
	var out model.PmiReading
	if err := f.getJSON(ctx, endpoint, &out); err != nil {
		log.Printf("[WARN] pmi endpoint: %v, using fixture", err)
		return FallbackPMI()
	}
	return out
}

func (f *HTTPIndicatorFetcher) FetchOutput(ctx context.Context, endpoint string) []model.IndicatorPoint {
	if endpoint == "" {
		return FallbackOutput()
	}
	var out []model.IndicatorPoint
	if err := f.getJSON(ctx, endpoint, &out); err != nil {
		log.Printf("[WARN] output endpoint: %v, using fixture", err)
		return FallbackOutput()
	}
	return out
}

func (f *HTTPIndicatorFetcher) FetchInsolvencies(ctx context.Context, endpoint string) []model.InsolvencyRecord {
	if endpoint == "" {
		return FallbackInsolvencies()
	}
	var out []model.InsolvencyRecord
	if err := f.getJSON(ctx, endpoint, &out); err != nil {
		log.Printf("[WARN] insolvency endpoint: %v, using fixture", err)
		return FallbackInsolvencies()
	}
	return out
}

// getJSON fetches an endpoint and decodes its body into out. The response
// shape is accepted as-is; anything that does not decode is a failure.
func (f *HTTPIndicatorFetcher) getJSON(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.Client.Do(req)
	if err != nil {
		return fmt.Errorf("fetch: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxIndicatorResponseBytes)).Decode(out); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	return nil
}
