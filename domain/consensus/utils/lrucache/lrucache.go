// Package lrucache provides a small, bounded cache used by the consensus
// store layer to avoid re-reading hot entries from the database on every
// staging-area miss.
package lrucache

import (
	"github.com/hashicorp/golang-lru/simplelru"
	"github.com/kaspanet/kaspad/domain/consensus/model/externalapi"
)

// LRUCache is a key-bounded, least-recently-used cache keyed by block hash
type LRUCache struct {
	lru *simplelru.LRU
}

// New creates a new LRUCache with room for at most size entries. A size of
// 0 disables caching entirely: every Get is a miss and every Add is a no-op.
func New(size int) *LRUCache {
	if size <= 0 {
		return &LRUCache{}
	}
	lru, err := simplelru.NewLRU(size, nil)
	if err != nil {
		// Only returned for size <= 0, which is excluded above.
		panic(err)
	}
	return &LRUCache{lru: lru}
}

// Add inserts value under key, evicting the least recently used entry if the
// cache is at capacity
func (c *LRUCache) Add(key *externalapi.DomainHash, value interface{}) {
	if c.lru == nil {
		return
	}
	c.lru.Add(*key, value)
}

// Get returns the value stored under key, and whether it was found
func (c *LRUCache) Get(key *externalapi.DomainHash) (interface{}, bool) {
	if c.lru == nil {
		return nil, false
	}
	return c.lru.Get(*key)
}

// Remove evicts key from the cache, if present
func (c *LRUCache) Remove(key *externalapi.DomainHash) {
	if c.lru == nil {
		return
	}
	c.lru.Remove(*key)
}

// Has returns whether key is currently cached, without affecting recency
func (c *LRUCache) Has(key *externalapi.DomainHash) bool {
	if c.lru == nil {
		return false
	}
	return c.lru.Contains(*key)
}
