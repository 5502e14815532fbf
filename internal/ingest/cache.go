package ingest

import (
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	cacheHitsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "woo_extract_cache_hits_total",
		Help: "Total number of content extract cache hits.",
	})
	cacheMissesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "woo_extract_cache_misses_total",
		Help: "Total number of content extract cache misses.",
	})
)

// ExtractCache is a cache-aside store for content extracts over an
// expirable LRU. Entries are tagged with the owning entity's identifier
// so that all extracts for an entity can be invalidated in one call,
// e.g. when its file is replaced by a new upload.
type ExtractCache struct {
	mu   sync.Mutex
	lru  *expirable.LRU[string, ContentExtract]
	tags map[string]map[string]struct{}
}

func NewExtractCache(maxSize int, ttl time.Duration) *ExtractCache {
	return &ExtractCache{
		lru:  expirable.NewLRU[string, ContentExtract](maxSize, nil, ttl),
		tags: make(map[string]map[string]struct{}),
	}
}

// Get returns the cached extract for key, or invokes compute and stores
// the result under key, tagged with entityID. A compute error is
// returned as-is and nothing is cached.
func (c *ExtractCache) Get(key, entityID string, compute func() (ContentExtract, error)) (ContentExtract, error) {
	if extract, ok := c.lru.Get(key); ok {
		cacheHitsTotal.Inc()
		return extract, nil
	}
	cacheMissesTotal.Inc()

	extract, err := compute()
	if err != nil {
		return ContentExtract{}, err
	}

	c.lru.Add(key, extract)
	c.tag(entityID, key)

	return extract, nil
}

// Delete removes a single entry, forcing the next Get to recompute.
func (c *ExtractCache) Delete(key string) {
	c.lru.Remove(key)
}

// InvalidateEntity removes every entry tagged with the given entity
// identifier.
func (c *ExtractCache) InvalidateEntity(entityID string) {
	c.mu.Lock()
	keys := c.tags[entityID]
	delete(c.tags, entityID)
	c.mu.Unlock()

	for key := range keys {
		c.lru.Remove(key)
	}
}

// tag records the entity->key association. Tag entries for keys that the
// LRU has since evicted are left in place; InvalidateEntity tolerates
// removing keys that are already gone.
func (c *ExtractCache) tag(entityID, key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	keys, ok := c.tags[entityID]
	if !ok {
		keys = make(map[string]struct{})
		c.tags[entityID] = keys
	}
	keys[key] = struct{}{}
}
