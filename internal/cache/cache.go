// Package cache holds previously fetched backend list/detail responses.
// Entries are keyed by (owner identity, resource type, query), so one
// actor's responses are never replayed to another: the backend stays the
// only authorization enforcement point and a cache hit can only return
// data the same identity already fetched. The invalidation contract is
// explicit: a mutation on resource R drops every entry of R for every
// owner, forcing the next page render to refetch rather than patch in
// place; ending a session drops only that identity's entries.
package cache

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gofiber/storage"
	"github.com/rs/zerolog/log"
)

// Cache is a TTL bounded response cache over a storage backend.
// It tracks its own key indexes because the storage interface has no key
// enumeration: one per resource (for mutation invalidation across owners)
// and one per owner (for teardown).
type Cache struct {
	storage storage.Storage
	ttl     time.Duration

	mu         sync.Mutex
	byResource map[string]map[string]struct{}
	byOwner    map[string]map[string]struct{}
}

// New creates a cache writing through to the given storage with one TTL for
// every entry.
func New(st storage.Storage, ttl time.Duration) *Cache {
	return &Cache{
		storage:    st,
		ttl:        ttl,
		byResource: make(map[string]map[string]struct{}),
		byOwner:    make(map[string]map[string]struct{}),
	}
}

func cacheKey(owner, resource, query string) string {
	return owner + "/" + resource + "?" + query
}

// Get loads a cached entry into out and reports whether it was present.
// Decode failures count as a miss.
func (c *Cache) Get(owner, resource, query string, out any) bool {
	key := cacheKey(owner, resource, query)

	raw, err := c.storage.Get(key)
	if err != nil || len(raw) == 0 {
		return false
	}

	if err := json.Unmarshal(raw, out); err != nil {
		log.Debug().Err(err).Str("resource", resource).Msg("dropping undecodable cache entry")
		_ = c.storage.Delete(key)

		return false
	}

	return true
}

// Set stores a response under (owner, resource, query). Failures are logged
// and ignored; the cache is an optimization, never a source of truth.
func (c *Cache) Set(owner, resource, query string, value any) {
	raw, err := json.Marshal(value)
	if err != nil {
		log.Debug().Err(err).Str("resource", resource).Msg("failed to encode cache entry")
		return
	}

	key := cacheKey(owner, resource, query)

	if err := c.storage.Set(key, raw, c.ttl); err != nil {
		log.Debug().Err(err).Str("resource", resource).Msg("failed to store cache entry")
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.byResource[resource] == nil {
		c.byResource[resource] = make(map[string]struct{})
	}

	c.byResource[resource][key] = struct{}{}

	if c.byOwner[owner] == nil {
		c.byOwner[owner] = make(map[string]struct{})
	}

	c.byOwner[owner][key] = struct{}{}
}

// Invalidate drops every cached entry for the resource type, across all
// owners. Called after any mutation of that resource: everyone's next list
// render must see the change.
func (c *Cache) Invalidate(resource string) {
	c.mu.Lock()

	keys := c.byResource[resource]
	delete(c.byResource, resource)

	for owner, set := range c.byOwner {
		for key := range keys {
			delete(set, key)
		}

		if len(set) == 0 {
			delete(c.byOwner, owner)
		}
	}

	c.mu.Unlock()

	for key := range keys {
		_ = c.storage.Delete(key)
	}
}

// Clear drops every entry belonging to one identity. Called on session
// teardown so no data bleeds from the prior identity; other sessions keep
// their entries.
func (c *Cache) Clear(owner string) {
	c.mu.Lock()

	keys := c.byOwner[owner]
	delete(c.byOwner, owner)

	for resource, set := range c.byResource {
		for key := range keys {
			delete(set, key)
		}

		if len(set) == 0 {
			delete(c.byResource, resource)
		}
	}

	c.mu.Unlock()

	for key := range keys {
		_ = c.storage.Delete(key)
	}
}
