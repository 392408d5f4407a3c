package deps

import (
	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultCacheSize bounds the memoized result count. Evicted entries are
// simply recomputed on the next query, so the bound trades memory for work.
const DefaultCacheSize = 1024

// cacheEntry pairs a computed result with the task ids it read to compute it
// (the task's own resolvable dependencies). The entry stays valid only while
// none of those tasks changed; the engine enforces that by evicting entries
// through the reverse index on every mutation.
type cacheEntry struct {
	result    ValidationResult
	dependsOn []TaskID
}

// resultCache memoizes per-task validation results keyed by task id.
type resultCache struct {
	entries      *lru.Cache[TaskID, cacheEntry]
	hits, misses uint64
}

func newResultCache(size int) *resultCache {
	if size <= 0 {
		size = DefaultCacheSize
	}
	entries, err := lru.New[TaskID, cacheEntry](size)
	if err != nil {
		// lru.New only fails on a non-positive size, which is guarded above
		panic(err)
	}
	return &resultCache{entries: entries}
}

func (c *resultCache) get(id TaskID) (cacheEntry, bool) {
	entry, ok := c.entries.Get(id)
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return entry, ok
}

// peek looks up an entry without touching hit/miss counters or recency, used
// when diffing recomputed results against previous values.
func (c *resultCache) peek(id TaskID) (cacheEntry, bool) {
	return c.entries.Peek(id)
}

func (c *resultCache) put(id TaskID, entry cacheEntry) {
	c.entries.Add(id, entry)
}

func (c *resultCache) evict(id TaskID) {
	c.entries.Remove(id)
}

func (c *resultCache) purge() {
	c.entries.Purge()
}

func (c *resultCache) len() int {
	return c.entries.Len()
}
