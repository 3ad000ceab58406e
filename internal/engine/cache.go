package engine

import (
	lru "github.com/hashicorp/golang-lru/v2"
)

// resultCache is a bounded LRU of recent resolutions keyed by query text.
// Replaces the ad hoc process-wide cache with an injected component.
type resultCache struct {
	lru *lru.Cache[string, Resolution]
}

// newResultCache creates a cache holding at most size resolutions.
// Returns nil (caching disabled) when size <= 0.
func newResultCache(size int) *resultCache {
	if size <= 0 {
		return nil
	}
	cache, err := lru.New[string, Resolution](size)
	if err != nil {
		return nil
	}
	return &resultCache{lru: cache}
}

func (c *resultCache) get(query string) (Resolution, bool) {
	if c == nil {
		return Resolution{}, false
	}
	return c.lru.Get(query)
}

func (c *resultCache) add(query string, res Resolution) {
	if c == nil {
		return
	}
	c.lru.Add(query, res)
}
