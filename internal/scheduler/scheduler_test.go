package scheduler

import (
	"reflect"
	"testing"

	"BuildPulse/internal/aggregator"
	"BuildPulse/internal/collector"
	"BuildPulse/internal/model"
	"BuildPulse/internal/settings"
)

// offlineSettings strips the feed lists and endpoint overrides so ticks
// complete on fixtures alone, with no network.
func offlineSettings() settings.Settings {
	cfg := settings.Default()
	cfg.NewsFeeds = nil
	cfg.PlanningFeeds = nil
	return cfg
}

func newTestCoordinator(t *testing.T) (*Coordinator, settings.Store) {
	t.Helper()
	store := settings.NewMemoryStore()
	if err := store.Save(offlineSettings()); err != nil {
		t.Fatalf("seed store: %v", err)
	}
	agg := aggregator.New(collector.NewHTTPFeedFetcher(), collector.NewHTTPIndicatorFetcher())
	return New(agg, store), store
}

func TestRunNowPublishesSnapshot(t *testing.T) {
	c, _ := newTestCoordinator(t)
	c.mu.Lock()
	c.cfg = offlineSettings()
	c.mu.Unlock()

	snap := c.RunNow()
	if snap == nil {
		t.Fatal("expected a snapshot after a synchronous tick")
	}
	if !reflect.DeepEqual(snap.PMI, collector.FallbackPMI()) {
		t.Errorf("expected fixture PMI, got %+v", snap.PMI)
	}
	if snap.Generation != 1 {
		t.Errorf("first tick should carry generation 1, got %d", snap.Generation)
	}

	if next := c.RunNow(); next.Generation != 2 {
		t.Errorf("second tick should carry generation 2, got %d", next.Generation)
	}
}

func TestStaleSnapshotIsDiscarded(t *testing.T) {
	c, _ := newTestCoordinator(t)
	c.mu.Lock()
	c.cfg = offlineSettings()
	c.snapshot = &model.Snapshot{Generation: 5}
	c.lastGen = 0 // next tick publishes generation 1, older than what is live
	c.mu.Unlock()

	c.runTick()

	if got := c.Snapshot().Generation; got != 5 {
		t.Errorf("newer snapshot must win, got generation %d", got)
	}
}

func TestApplyDebouncesIdenticalSettings(t *testing.T) {
	c, _ := newTestCoordinator(t)
	if err := c.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	defer c.Stop()

	c.mu.Lock()
	before := c.entry
	c.mu.Unlock()

	if err := c.Apply(offlineSettings()); err != nil {
		t.Fatalf("apply identical settings: %v", err)
	}

	c.mu.Lock()
	after := c.entry
	c.mu.Unlock()
	if before != after {
		t.Error("a no-op save must not restart the polling timer")
	}
}

func TestApplyRestartsOnChange(t *testing.T) {
	c, store := newTestCoordinator(t)
	if err := c.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	defer c.Stop()

	c.mu.Lock()
	before := c.entry
	c.mu.Unlock()

	changed := offlineSettings()
	changed.PollingMinutes = 2
	if err := c.Apply(changed); err != nil {
		t.Fatalf("apply changed settings: %v", err)
	}

	c.mu.Lock()
	after := c.entry
	c.mu.Unlock()
	if before == after {
		t.Error("changed settings must replace the polling timer")
	}
	if got := store.Load(); got.PollingMinutes != 2 {
		t.Errorf("apply must persist the new settings, got %+v", got)
	}
	if got := c.Settings(); got.PollingMinutes != 2 {
		t.Errorf("apply must swap the active settings, got %+v", got)
	}
}

func TestApplyRejectsInvalidSettingsAndKeepsPrior(t *testing.T) {
	c, store := newTestCoordinator(t)
	if err := c.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	defer c.Stop()

	bad := offlineSettings()
	bad.PollingMinutes = 0
	if err := c.Apply(bad); err == nil {
		t.Fatal("expected invalid settings to be rejected")
	}
	if got := store.Load(); got.PollingMinutes != offlineSettings().PollingMinutes {
		t.Errorf("prior persisted settings must survive, got %+v", got)
	}
	if got := c.Settings(); got.PollingMinutes != offlineSettings().PollingMinutes {
		t.Errorf("prior active settings must survive, got %+v", got)
	}
}
