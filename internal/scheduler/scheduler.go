package scheduler

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"

	"BuildPulse/internal/aggregator"
	"BuildPulse/internal/model"
	"BuildPulse/internal/settings"

	"github.com/robfig/cron/v3"
)

// Coordinator owns the dashboard settings, the latest snapshot, and the
// polling timer. All mutation funnels through its methods; adapters only
// ever see the settings value captured at the start of a tick.
type Coordinator struct {
	cron  *cron.Cron
	agg   *aggregator.Aggregator
	store settings.Store

	mu       sync.Mutex
	cfg      settings.Settings
	cfgJSON  string // serialized form, for no-op save detection
	entry    cron.EntryID
	snapshot *model.Snapshot
	lastGen  uint64

	ctx    context.Context
	cancel context.CancelFunc
}

// New creates a Coordinator. Call Start to load settings and begin polling.
func New(agg *aggregator.Aggregator, store settings.Store) *Coordinator {
	ctx, cancel := context.WithCancel(context.Background())
	return &Coordinator{
		cron:   cron.New(),
		agg:    agg,
		store:  store,
		ctx:    ctx,
		cancel: cancel,
	}
}

// Start loads the persisted settings, runs one immediate tick in the
// background, and schedules the recurring poll.
func (c *Coordinator) Start() error {
	cfg := c.store.Load()

	c.mu.Lock()
	c.cfg = cfg
	c.cfgJSON = serialize(cfg)
	c.mu.Unlock()

	if err := c.schedule(cfg.PollingMinutes); err != nil {
		return err
	}
	c.cron.Start()
	go c.runTick()

	log.Printf("[INFO] coordinator started, polling every %dm", cfg.PollingMinutes)
	return nil
}

// Stop cancels the recurring poll. In-flight adapter calls are not
// interrupted; their snapshot simply goes unpublished once ctx is done.
func (c *Coordinator) Stop() {
	c.cron.Stop()
	c.cancel()
	log.Println("[INFO] coordinator stopped")
}

// Settings returns the currently active settings value.
func (c *Coordinator) Settings() settings.Settings {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cfg
}

// Snapshot returns the latest published snapshot, or nil before the first
// tick completes.
func (c *Coordinator) Snapshot() *model.Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshot
}

// Apply validates and persists new settings, then restarts the polling
// cycle with an immediate tick. A save whose serialized form matches the
// active settings is persisted but does not restart the timer.
func (c *Coordinator) Apply(cfg settings.Settings) error {
	cfg.Normalize()
	if err := c.store.Save(cfg); err != nil {
		return err
	}

	next := serialize(cfg)
	c.mu.Lock()
	if next == c.cfgJSON {
		c.mu.Unlock()
		return nil
	}
	c.cfg = cfg
	c.cfgJSON = next
	old := c.entry
	c.mu.Unlock()

	c.cron.Remove(old)
	if err := c.schedule(cfg.PollingMinutes); err != nil {
		return err
	}
	go c.runTick()
	log.Printf("[INFO] settings applied, polling every %dm", cfg.PollingMinutes)
	return nil
}

// RunNow executes one tick synchronously and returns the latest snapshot.
func (c *Coordinator) RunNow() *model.Snapshot {
	c.runTick()
	return c.Snapshot()
}

func (c *Coordinator) schedule(minutes int) error {
	id, err := c.cron.AddFunc(fmt.Sprintf("@every %dm", minutes), c.runTick)
	if err != nil {
		return fmt.Errorf("register poll entry: %w", err)
	}
	c.mu.Lock()
	c.entry = id
	c.mu.Unlock()
	return nil
}

// runTick executes one poll cycle. The settings value and generation are
// captured up front, so a save landing mid-tick cannot tear the tick, and
// a snapshot from a superseded tick is discarded on publish.
func (c *Coordinator) runTick() {
	c.mu.Lock()
	cfg := c.cfg
	c.lastGen++
	gen := c.lastGen
	c.mu.Unlock()

	snap := c.agg.Tick(c.ctx, cfg)
	snap.Generation = gen

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.snapshot != nil && c.snapshot.Generation > gen {
		log.Printf("[WARN] discarding stale snapshot from tick %d", gen)
		return
	}
	c.snapshot = snap
}

func serialize(cfg settings.Settings) string {
	raw, err := json.Marshal(cfg)
	if err != nil {
		return ""
	}
	return string(raw)
}
