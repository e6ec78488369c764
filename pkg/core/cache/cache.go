// ============================================================================
// TaxWise NG - Progressive Income Tax Calculator
// ============================================================================
//
// Package:     cache
// Description: Bounded in-memory cache with TTL
// Author:      TaxWise NG Team
// Created:     2026-10-14
// License:     MIT
// ============================================================================

package cache

import (
	"sync"
	"time"
)

// entry is a cached item with expiration
type entry[V any] struct {
	value   V
	added   time.Time
	expires time.Time
}

func (e *entry[V]) expired(now time.Time) bool {
	if e.expires.IsZero() {
		return false // Never expires
	}
	return !now.Before(e.expires)
}

// Cache is a thread-safe in-memory cache with TTL support. Expired entries
// are dropped on access and swept when the cache is full; no background
// goroutine is started.
type Cache[V any] struct {
	mu       sync.Mutex
	items    map[string]*entry[V]
	maxItems int
	ttl      time.Duration
	now      func() time.Time

	// Metrics
	hits   int64
	misses int64
}

// Config holds cache configuration
type Config struct {
	MaxItems int
	TTL      time.Duration

	// Clock, time.Now when nil
	Now func() time.Time
}

// DefaultConfig returns default cache configuration
func DefaultConfig() Config {
	return Config{
		MaxItems: 1000,
		TTL:      30 * time.Minute,
	}
}

// Stats holds cache statistics
type Stats struct {
	Hits    int64   `json:"hits"`
	Misses  int64   `json:"misses"`
	Size    int     `json:"size"`
	HitRate float64 `json:"hit_rate"`
}

// New creates a new cache instance
func New[V any](cfg Config) *Cache[V] {
	if cfg.MaxItems <= 0 {
		cfg.MaxItems = 1000
	}
	if cfg.TTL < 0 {
		cfg.TTL = 0
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	return &Cache[V]{
		items:    make(map[string]*entry[V]),
		maxItems: cfg.MaxItems,
		ttl:      cfg.TTL,
		now:      cfg.Now,
	}
}

// Get retrieves a value from the cache
func (c *Cache[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.items[key]
	if ok && e.expired(c.now()) {
		delete(c.items, key)
		ok = false
	}
	if !ok {
		c.misses++
		var zero V
		return zero, false
	}
	c.hits++
	return e.value, true
}

// Set stores a value in the cache with the default TTL
func (c *Cache[V]) Set(key string, value V) {
	c.SetWithTTL(key, value, c.ttl)
}

// SetWithTTL stores a value with a custom TTL. A zero TTL never expires.
func (c *Cache[V]) SetWithTTL(key string, value V, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	if _, exists := c.items[key]; !exists && len(c.items) >= c.maxItems {
		c.evictLocked(now)
	}

	e := &entry[V]{value: value, added: now}
	if ttl > 0 {
		e.expires = now.Add(ttl)
	}
	c.items[key] = e
}

// Size returns the number of items in the cache
func (c *Cache[V]) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// Stats returns cache statistics
func (c *Cache[V]) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := Stats{Hits: c.hits, Misses: c.misses, Size: len(c.items)}
	if total := c.hits + c.misses; total > 0 {
		s.HitRate = float64(c.hits) / float64(total) * 100
	}
	return s
}

// evictLocked drops expired entries and, if none expired, the oldest one.
// Must be called with the lock held.
func (c *Cache[V]) evictLocked(now time.Time) {
	removed := false
	for key, e := range c.items {
		if e.expired(now) {
			delete(c.items, key)
			removed = true
		}
	}
	if removed {
		return
	}

	var oldestKey string
	var oldest time.Time
	for key, e := range c.items {
		if oldestKey == "" || e.added.Before(oldest) {
			oldestKey = key
			oldest = e.added
		}
	}
	if oldestKey != "" {
		delete(c.items, oldestKey)
	}
}
