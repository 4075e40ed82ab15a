// Package cache provides an optional TTL cache for upstream suggest
// responses, keyed by the exact request URL. It only avoids repeat network
// calls; it never alters result content.
package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

type ResponseCache struct {
	store *gocache.Cache
}

// New creates a response cache whose entries expire after ttl.
func New(ttl time.Duration) *ResponseCache {
	return &ResponseCache{
		store: gocache.New(ttl, 2*ttl),
	}
}

// Get returns the cached response body for url, if present and unexpired.
func (c *ResponseCache) Get(url string) ([]byte, bool) {
	if c == nil {
		return nil, false
	}
	v, ok := c.store.Get(url)
	if !ok {
		return nil, false
	}
	return v.([]byte), true
}

// Set stores a response body under url with the default TTL.
func (c *ResponseCache) Set(url string, body []byte) {
	if c == nil {
		return
	}
	c.store.Set(url, body, gocache.DefaultExpiration)
}
