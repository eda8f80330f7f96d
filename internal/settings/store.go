package settings

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// storageKey is the single well-known key the settings blob lives under.
const storageKey = "dashboard_settings"

// Store persists the settings blob. Load never fails: absent or corrupt
// data yields the built-in default. Save validates before touching the
// stored value, so a rejected save leaves the prior settings intact.
type Store interface {
	Load() Settings
	Save(cfg Settings) error
	Close() error
}

// SQLiteStore keeps the settings blob in a single key/value table.
type SQLiteStore struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteStore opens (or creates) the SQLite database and runs migrations.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] settings store opened: %s", dbPath)
	return s, nil
}

func (s *SQLiteStore) migrate() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS settings (
		key        TEXT PRIMARY KEY,
		value      TEXT NOT NULL,
		updated_at INTEGER NOT NULL
	)`)
	return err
}

// Load returns the persisted settings, or the built-in default when the
// row is absent, unreadable, or fails validation (e.g. an older schema).
func (s *SQLiteStore) Load() Settings {
	s.mu.Lock()
	defer s.mu.Unlock()

	var raw string
	err := s.db.QueryRow(`SELECT value FROM settings WHERE key = ?`, storageKey).Scan(&raw)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return Default()
	case err != nil:
		log.Printf("[WARN] read settings: %v, using defaults", err)
		return Default()
	}
	return decode([]byte(raw))
}

// Save validates and persists the settings. On any failure the previously
// stored value is left untouched and the error is returned to the caller.
func (s *SQLiteStore) Save(cfg Settings) error {
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}
	raw, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("serialize settings: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	_, err = s.db.Exec(`INSERT INTO settings (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		storageKey, string(raw), time.Now().Unix())
	if err != nil {
		return fmt.Errorf("write settings: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// decode parses a persisted blob, falling back to the default on any
// malformed or schema-drifted input.
func decode(raw []byte) Settings {
	var cfg Settings
	if err := json.Unmarshal(raw, &cfg); err != nil {
		log.Printf("[WARN] parse persisted settings: %v, using defaults", err)
		return Default()
	}
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		log.Printf("[WARN] persisted settings invalid: %v, using defaults", err)
		return Default()
	}
	return cfg
}
