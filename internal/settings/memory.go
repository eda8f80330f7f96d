package settings

import (
	"encoding/json"
	"fmt"
	"sync"
)

// MemoryStore holds settings in memory only. It is the fallback when the
// SQLite store cannot be opened, and the store of choice in tests.
type MemoryStore struct {
	mu    sync.Mutex
	value *Settings
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Load() Settings {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.value == nil {
		return Default()
	}
	return *m.value
}

func (m *MemoryStore) Save(cfg Settings) error {
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}
	// Round-trip through JSON so the stored value is detached from the
	// caller's slices, same as the SQLite store.
	raw, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("serialize settings: %w", err)
	}
	var stored Settings
	if err := json.Unmarshal(raw, &stored); err != nil {
		return fmt.Errorf("serialize settings: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.value = &stored
	return nil
}

func (m *MemoryStore) Close() error { return nil }
