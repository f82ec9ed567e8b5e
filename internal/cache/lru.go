// VOYO - Collective Vibe Recommendation Engine
// Copyright 2026 VOYO Music
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/voyo-music/vibeengine

// Package cache provides the LRU cache backing each session's query
// cache. Sessions construct their own instance; there is no shared
// module-global cache, so unrelated sessions cannot couple through it.
package cache

import (
	"sync"
	"time"
)

// entry is a node in the doubly-linked recency list.
type entry struct {
	key       string
	value     any
	prev      *entry
	next      *entry
	expiresAt time.Time
}

// LRU implements a thread-safe least-recently-used cache with TTL.
// Uses a doubly-linked list for ordering and a map for lookups, giving
// O(1) Get, Set and eviction.
type LRU struct {
	mu sync.Mutex

	capacity int
	ttl      time.Duration

	items map[string]*entry

	// head.next is most recently used, tail.prev is least recently used
	head *entry
	tail *entry

	hits   int64
	misses int64
}

// NewLRU creates an LRU cache with the given capacity and TTL.
func NewLRU(capacity int, ttl time.Duration) *LRU {
	if capacity <= 0 {
		capacity = 256
	}
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}

	c := &LRU{
		capacity: capacity,
		ttl:      ttl,
		items:    make(map[string]*entry, capacity),
		head:     &entry{},
		tail:     &entry{},
	}
	c.head.next = c.tail
	c.tail.prev = c.head
	return c
}

// Get retrieves a value. Found entries move to the front.
func (c *LRU) Get(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.items[key]
	if !ok {
		c.misses++
		return nil, false
	}
	if time.Now().After(e.expiresAt) {
		c.remove(e)
		c.misses++
		return nil, false
	}

	c.moveToFront(e)
	c.hits++
	return e.value, true
}

// Set adds or updates a value, evicting the least recently used entry
// when at capacity.
func (c *LRU) Set(key string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.items[key]; ok {
		e.value = value
		e.expiresAt = time.Now().Add(c.ttl)
		c.moveToFront(e)
		return
	}

	if len(c.items) >= c.capacity {
		c.remove(c.tail.prev)
	}

	e := &entry{
		key:       key,
		value:     value,
		expiresAt: time.Now().Add(c.ttl),
	}
	c.items[key] = e
	c.insertFront(e)
}

// Delete removes a key if present.
func (c *LRU) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.items[key]; ok {
		c.remove(e)
	}
}

// Clear drops every entry.
func (c *LRU) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = make(map[string]*entry, c.capacity)
	c.head.next = c.tail
	c.tail.prev = c.head
}

// Len returns the number of live entries, counting expired ones until
// they are lazily evicted.
func (c *LRU) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// Stats returns cumulative hit and miss counts.
func (c *LRU) Stats() (hits, misses int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses
}

// remove unlinks an entry and deletes it from the map (lock held).
func (c *LRU) remove(e *entry) {
	e.prev.next = e.next
	e.next.prev = e.prev
	delete(c.items, e.key)
}

// insertFront links an entry directly after head (lock held).
func (c *LRU) insertFront(e *entry) {
	e.next = c.head.next
	e.prev = c.head
	c.head.next.prev = e
	c.head.next = e
}

// moveToFront relocates an existing entry to the front (lock held).
func (c *LRU) moveToFront(e *entry) {
	e.prev.next = e.next
	e.next.prev = e.prev
	c.insertFront(e)
}
