package analytics

import (
	"log/slog"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/luckyvista/feedbackpulse/internal/domain"
	"github.com/luckyvista/feedbackpulse/internal/metrics"
)

// SnapshotCache provides in-memory caching of dashboard snapshots with
// TTL-based expiration. It is an optimization only: snapshots are
// recomputed from raw records whenever an entry is absent or stale, so
// correctness never depends on the cache.
type SnapshotCache struct {
	mu      sync.RWMutex
	entries map[string]*snapshotEntry
	ttl     time.Duration
	clock   clockwork.Clock
}

type snapshotEntry struct {
	snapshot  *domain.TenantMetricsSnapshot
	expiresAt time.Time
}

// NewSnapshotCache creates a cache with the given TTL. A TTL of zero
// disables caching entirely (Get always misses).
func NewSnapshotCache(ttl time.Duration, clock clockwork.Clock) *SnapshotCache {
	return &SnapshotCache{
		entries: make(map[string]*snapshotEntry),
		ttl:     ttl,
		clock:   clock,
	}
}

// cacheKey identifies a snapshot by its effective tenant filter.
func cacheKey(filter domain.TenantFilter) string {
	if filter.All() {
		return "*"
	}
	return filter.Tenant
}

// Get retrieves a cached snapshot if present and not expired.
func (c *SnapshotCache) Get(filter domain.TenantFilter) (*domain.TenantMetricsSnapshot, bool) {
	if c.ttl <= 0 {
		return nil, false
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[cacheKey(filter)]
	if !ok || c.clock.Now().After(entry.expiresAt) {
		// Expired entries are left in place; eviction runs periodically.
		metrics.SnapshotCacheHits.WithLabelValues("miss").Inc()
		return nil, false
	}
	metrics.SnapshotCacheHits.WithLabelValues("hit").Inc()
	return entry.snapshot, true
}

// Set stores a snapshot with the configured TTL.
func (c *SnapshotCache) Set(filter domain.TenantFilter, snapshot *domain.TenantMetricsSnapshot) {
	if c.ttl <= 0 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[cacheKey(filter)] = &snapshotEntry{
		snapshot:  snapshot,
		expiresAt: c.clock.Now().Add(c.ttl),
	}
}

// Size returns the current number of entries, including expired ones.
func (c *SnapshotCache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// EvictExpired removes expired entries and returns the count evicted.
func (c *SnapshotCache) EvictExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.clock.Now()
	evicted := 0
	for key, entry := range c.entries {
		if now.After(entry.expiresAt) {
			delete(c.entries, key)
			evicted++
		}
	}
	return evicted
}

// StartEvictionTimer starts periodic eviction of expired entries.
// Returns a stop function.
func (c *SnapshotCache) StartEvictionTimer(interval time.Duration) func() {
	ticker := c.clock.NewTicker(interval)
	done := make(chan struct{})

	go func() {
		for {
			select {
			case <-ticker.Chan():
				if evicted := c.EvictExpired(); evicted > 0 {
					slog.Debug("Evicted expired snapshot cache entries", "count", evicted, "remaining", c.Size())
				}
			case <-done:
				ticker.Stop()
				return
			}
		}
	}()

	return func() { close(done) }
}
