package aggregator

import (
	"context"
	"sort"
	"sync"
	"time"

	"BuildPulse/internal/alert"
	"BuildPulse/internal/collector"
	"BuildPulse/internal/model"
	"BuildPulse/internal/settings"
)

// Aggregator runs one poll tick across all source adapters and assembles
// the consolidated snapshot.
type Aggregator struct {
	Feeds      collector.FeedFetcher
	Indicators collector.IndicatorFetcher
}

// New creates an Aggregator over the given adapters.
func New(feeds collector.FeedFetcher, indicators collector.IndicatorFetcher) *Aggregator {
	return &Aggregator{Feeds: feeds, Indicators: indicators}
}

// Tick fetches every source concurrently, waits for all of them, then
// merges, sorts, and derives alerts. Adapters recover internally, so the
// join is bounded; a slow or failing source never cancels the others.
func (a *Aggregator) Tick(ctx context.Context, cfg settings.Settings) *model.Snapshot {
	snap := &model.Snapshot{TakenAt: time.Now()}

	var wg sync.WaitGroup
	var mu sync.Mutex // guards the two feed slices during fan-in

	fanOut := func(sources []settings.FeedSource, dst *[]model.FeedItem) {
		for _, src := range sources {
			src := src
			wg.Add(1)
			go func() {
				defer wg.Done()
				items := a.Feeds.FetchFeed(ctx, src, cfg.ProxyPrefix)
				if len(items) == 0 {
					return
				}
				mu.Lock()
				*dst = append(*dst, items...)
				mu.Unlock()
			}()
		}
	}
	fanOut(cfg.NewsFeeds, &snap.News)
	fanOut(cfg.PlanningFeeds, &snap.Planning)

	// Indicator adapters each write a distinct snapshot field.
	wg.Add(3)
	go func() {
		defer wg.Done()
		snap.PMI = a.Indicators.FetchPMI(ctx, cfg.Endpoints.PMI)
	}()
	go func() {
		defer wg.Done()
		snap.Output = a.Indicators.FetchOutput(ctx, cfg.Endpoints.Output)
	}()
	go func() {
		defer wg.Done()
		snap.Insolvencies = a.Indicators.FetchInsolvencies(ctx, cfg.Endpoints.Insolvency)
	}()

	wg.Wait()

	sortNewestFirst(snap.News)
	sortNewestFirst(snap.Planning)
	sort.SliceStable(snap.Output, func(i, j int) bool {
		return snap.Output[i].Period < snap.Output[j].Period
	})

	snap.Alerts = alert.Evaluate(cfg, snap)
	return snap
}

// sortNewestFirst orders items by descending publish date. Items without a
// date are treated as earliest and land at the end.
func sortNewestFirst(items []model.FeedItem) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i].PublishedAt, items[j].PublishedAt
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return a.After(*b)
		}
	})
}
