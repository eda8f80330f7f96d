package collector

import (
	"context"

	"BuildPulse/internal/model"
	"BuildPulse/internal/settings"
)

// FeedFetcher retrieves items from one configured feed source. It never
// returns an error: a failed fetch or parse degrades to an empty list for
// that source so a single bad feed cannot abort an aggregate poll.
type FeedFetcher interface {
	FetchFeed(ctx context.Context, src settings.FeedSource, proxyPrefix string) []model.FeedItem
	Name() string
}

// IndicatorFetcher retrieves the three indicator datasets. An empty
// endpoint means the built-in fixture is returned without any request;
// the same fixture is the recovery path for every failed call.
type IndicatorFetcher interface {
	FetchPMI(ctx context.Context, endpoint string) model.PmiReading
	FetchOutput(ctx context.Context, endpoint string) []model.IndicatorPoint
	FetchInsolvencies(ctx context.Context, endpoint string) []model.InsolvencyRecord
	Name() string
}
