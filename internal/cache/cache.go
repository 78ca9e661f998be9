// Package cache provides a TTL and size bounded in-memory cache for per-user
// post lists. Entries expire by TTL only: writes to the underlying store do
// not invalidate them, so readers see up to one TTL window of staleness.
package cache

import (
	"sync"
	"time"

	"github.com/postbox-app/postbox-be/internal/models"
)

type entry struct {
	posts     []models.Post
	expiresAt time.Time
}

// PostCache maps an owner id to a previously fetched post list. Safe for
// concurrent use. Two simultaneous misses for the same owner may both query
// the store and both write here; last write wins.
type PostCache struct {
	mu         sync.Mutex
	entries    map[int64]entry
	ttl        time.Duration
	maxEntries int
	now        func() time.Time
}

// NewPostCache creates a cache whose entries live for ttl and which holds at
// most maxEntries entries.
func NewPostCache(ttl time.Duration, maxEntries int) *PostCache {
	return &PostCache{
		entries:    make(map[int64]entry),
		ttl:        ttl,
		maxEntries: maxEntries,
		now:        time.Now,
	}
}

// Get returns the cached post list for an owner, or false on a miss.
// An expired entry counts as a miss and is dropped.
func (c *PostCache) Get(ownerID int64) ([]models.Post, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[ownerID]
	if !ok {
		return nil, false
	}
	if !c.now().Before(e.expiresAt) {
		delete(c.entries, ownerID)
		return nil, false
	}
	return e.posts, true
}

// Put stores a post list for an owner with absolute expiry now+TTL. At
// capacity, the entry closest to expiry is evicted first; with a fixed TTL
// that is also the least recently inserted one.
func (c *PostCache) Put(ownerID int64, posts []models.Post) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	if _, ok := c.entries[ownerID]; !ok && len(c.entries) >= c.maxEntries {
		c.evictOneLocked(now)
	}
	c.entries[ownerID] = entry{posts: posts, expiresAt: now.Add(c.ttl)}
}

// Purge drops every expired entry. Expiry is still enforced on read; this
// only bounds memory between reads.
func (c *PostCache) Purge() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	removed := 0
	for id, e := range c.entries {
		if !now.Before(e.expiresAt) {
			delete(c.entries, id)
			removed++
		}
	}
	return removed
}

// Len returns the current number of entries, expired or not.
func (c *PostCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// evictOneLocked removes an expired entry if one exists, otherwise the entry
// with the earliest expiry. Caller holds c.mu.
func (c *PostCache) evictOneLocked(now time.Time) {
	var victim int64
	var victimExpiry time.Time
	found := false
	for id, e := range c.entries {
		if !now.Before(e.expiresAt) {
			delete(c.entries, id)
			return
		}
		if !found || e.expiresAt.Before(victimExpiry) {
			victim, victimExpiry, found = id, e.expiresAt, true
		}
	}
	if found {
		delete(c.entries, victim)
	}
}
