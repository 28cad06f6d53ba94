// Package cache keeps the last upstream stats body for a short while so the
// stats header does not cost an upstream call on every page view.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/allegro/bigcache/v3"
)

const statsKey = "signature-database/v1/stats"

// Stats is safe for concurrent use. A nil *Stats is a disabled cache.
type Stats struct {
	cache *bigcache.BigCache
}

// NewStats returns nil when ttl is not positive.
func NewStats(ttl time.Duration) (*Stats, error) {
	if ttl <= 0 {
		return nil, nil
	}

	cfg := bigcache.DefaultConfig(ttl)
	cfg.Shards = 16
	cfg.MaxEntriesInWindow = 16
	cfg.MaxEntrySize = 1024
	cfg.HardMaxCacheSize = 1
	cfg.Verbose = false
	if ttl < cfg.CleanWindow {
		cfg.CleanWindow = ttl
	}

	c, err := bigcache.New(context.Background(), cfg)
	if err != nil {
		return nil, fmt.Errorf("create stats cache: %w", err)
	}
	return &Stats{cache: c}, nil
}

func (s *Stats) Get() ([]byte, bool) {
	if s == nil {
		return nil, false
	}
	body, err := s.cache.Get(statsKey)
	if err != nil {
		return nil, false
	}
	return body, true
}

func (s *Stats) Set(body []byte) error {
	if s == nil {
		return nil
	}
	return s.cache.Set(statsKey, body)
}

func (s *Stats) Invalidate() {
	if s == nil {
		return
	}
	_ = s.cache.Delete(statsKey)
}

func (s *Stats) Close() error {
	if s == nil {
		return nil
	}
	return s.cache.Close()
}
