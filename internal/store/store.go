// Package store persists per-session score history between runs. The
// discriminator itself never does I/O: callers export its history, the store
// writes it through the layered cache, and the next run imports it back.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/MikePfunk28/agentic-search-sub000/internal/cache"
	"github.com/MikePfunk28/agentic-search-sub000/internal/model"
)

// SnapshotStore saves and loads per-session quality-score history.
type SnapshotStore struct {
	cache cache.Cache
	ttl   time.Duration
}

// New creates a snapshot store from cache configuration. An empty Dir
// resolves to ~/.asearch/cache.
func New(cfg model.CacheConfig) (*SnapshotStore, error) {
	dir := cfg.Dir
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home dir: %w", err)
		}
		dir = filepath.Join(home, ".asearch", "cache")
	}
	return &SnapshotStore{
		cache: cache.NewLayeredCache(cfg.MemoryTTL, dir, cfg.DiskTTL),
		ttl:   cfg.DiskTTL,
	}, nil
}

// NewWithCache creates a snapshot store over an existing cache.
func NewWithCache(c cache.Cache, ttl time.Duration) *SnapshotStore {
	return &SnapshotStore{cache: c, ttl: ttl}
}

// Save persists a session's exported history.
func (s *SnapshotStore) Save(session string, scores []model.QualityScore) error {
	data, err := json.Marshal(scores)
	if err != nil {
		return fmt.Errorf("marshal history: %w", err)
	}
	return s.cache.Set(cache.SessionKey(session), data, s.ttl)
}

// Load returns a session's history, or nil when none exists.
func (s *SnapshotStore) Load(session string) ([]model.QualityScore, error) {
	data, found := s.cache.Get(cache.SessionKey(session))
	if !found {
		return nil, nil
	}
	var scores []model.QualityScore
	if err := json.Unmarshal(data, &scores); err != nil {
		return nil, fmt.Errorf("decode history snapshot: %w", err)
	}
	return scores, nil
}

// Delete drops a session's history.
func (s *SnapshotStore) Delete(session string) error {
	return s.cache.Delete(cache.SessionKey(session))
}
