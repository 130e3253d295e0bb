package cache

import (
	"time"

	"github.com/jellydator/ttlcache/v3"
)

// StatsCache keeps serialized statistics responses for a short TTL so
// repeated reads skip the database. Writes purge it, so a stale entry can
// outlive an import only within the TTL window.
type StatsCache struct {
	cache *ttlcache.Cache[string, []byte]
}

// NewStatsCache creates a cache whose entries expire after ttl
func NewStatsCache(ttl time.Duration) *StatsCache {
	c := ttlcache.New[string, []byte](
		ttlcache.WithTTL[string, []byte](ttl),
		ttlcache.WithDisableTouchOnHit[string, []byte](),
	)
	go c.Start()
	return &StatsCache{cache: c}
}

// Get returns the cached payload for key, or false when absent or expired
func (s *StatsCache) Get(key string) ([]byte, bool) {
	item := s.cache.Get(key)
	if item == nil {
		return nil, false
	}
	return item.Value(), true
}

// Set stores a payload under key with the default TTL
func (s *StatsCache) Set(key string, payload []byte) {
	s.cache.Set(key, payload, ttlcache.DefaultTTL)
}

// Purge drops every entry. Called after any write to the result store.
func (s *StatsCache) Purge() {
	s.cache.DeleteAll()
}

// Stop shuts down the background expiry loop
func (s *StatsCache) Stop() {
	s.cache.Stop()
}
