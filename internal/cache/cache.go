// SPDX-License-Identifier: MIT

// Package cache provides a bounded in-memory cache with TTL expiry and
// least-recently-used eviction.
package cache

import (
	"container/list"
	"sync"
	"time"
)

// Stats holds cache performance counters for observability.
type Stats struct {
	Size    int           `json:"size"`
	Max     int           `json:"max"`
	TTL     time.Duration `json:"ttl"`
	Hits    int64         `json:"hits"`
	Misses  int64         `json:"misses"`
	Sets    int64         `json:"sets"`
	HitRate float64       `json:"hitRate"`
}

type entry[K comparable, V any] struct {
	key        K
	value      V
	insertedAt time.Time
}

// Cache is a thread-safe key/value store bounded by entry count and TTL.
// Get and Set both count as a recency touch; inserting past capacity
// evicts the least-recently-touched entry first. Expired entries are
// removed lazily on access and eagerly by Sweep.
type Cache[K comparable, V any] struct {
	mu      sync.Mutex
	max     int
	ttl     time.Duration
	order   *list.List // front = least recently used
	entries map[K]*list.Element

	hits   int64
	misses int64
	sets   int64

	now     func() time.Time
	janitor *janitor
}

// Option configures a Cache at construction time.
type Option[K comparable, V any] func(*Cache[K, V])

// WithClock overrides the time source, for tests.
func WithClock[K comparable, V any](now func() time.Time) Option[K, V] {
	return func(c *Cache[K, V]) { c.now = now }
}

// WithJanitor starts a background goroutine that sweeps expired entries
// on the given interval. The goroutine runs until Close is called.
func WithJanitor[K comparable, V any](interval time.Duration) Option[K, V] {
	return func(c *Cache[K, V]) {
		c.janitor = &janitor{interval: interval, stop: make(chan struct{})}
	}
}

// New creates a cache holding at most max entries, each valid for ttl
// after insertion. max must be positive.
func New[K comparable, V any](max int, ttl time.Duration, opts ...Option[K, V]) *Cache[K, V] {
	if max <= 0 {
		max = 1
	}
	c := &Cache[K, V]{
		max:     max,
		ttl:     ttl,
		order:   list.New(),
		entries: make(map[K]*list.Element),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.janitor != nil {
		go c.janitor.run(c)
	}
	return c
}

// Get returns the value for key if present and unexpired, marking the
// entry most recently used. An expired entry is removed as a side effect.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero V
	el, ok := c.entries[key]
	if !ok {
		c.misses++
		return zero, false
	}
	e := el.Value.(*entry[K, V])
	if c.expired(e) {
		c.remove(el)
		c.misses++
		return zero, false
	}
	c.order.MoveToBack(el)
	c.hits++
	return e.value, true
}

// Set inserts or replaces the value for key, marking it most recently
// used. If the insertion would exceed capacity, the least-recently-used
// entry is evicted first.
func (c *Cache[K, V]) Set(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.entries[key]; ok {
		c.remove(el)
	}
	for c.order.Len() >= c.max {
		c.remove(c.order.Front())
	}
	el := c.order.PushBack(&entry[K, V]{key: key, value: value, insertedAt: c.now()})
	c.entries[key] = el
	c.sets++
}

// Has reports whether key is present and unexpired without altering
// recency. An expired entry is removed as a side effect.
func (c *Cache[K, V]) Has(key K) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.entries[key]
	if !ok {
		return false
	}
	if c.expired(el.Value.(*entry[K, V])) {
		c.remove(el)
		return false
	}
	return true
}

// Peek returns the value for key regardless of expiry, without touching
// recency or counters. It backs the stale-while-error fallback path.
func (c *Cache[K, V]) Peek(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero V
	el, ok := c.entries[key]
	if !ok {
		return zero, false
	}
	return el.Value.(*entry[K, V]).value, true
}

// Delete removes key from the cache if present.
func (c *Cache[K, V]) Delete(key K) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.entries[key]; ok {
		c.remove(el)
	}
}

// Clear removes all entries and resets the hit/miss/set counters.
func (c *Cache[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.order.Init()
	c.entries = make(map[K]*list.Element)
	c.hits, c.misses, c.sets = 0, 0, 0
}

// Sweep removes all currently-expired entries regardless of recency and
// returns the number removed.
func (c *Cache[K, V]) Sweep() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for el := c.order.Front(); el != nil; {
		next := el.Next()
		if c.expired(el.Value.(*entry[K, V])) {
			c.remove(el)
			removed++
		}
		el = next
	}
	return removed
}

// Len returns the current number of entries, expired or not.
func (c *Cache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

// Stats returns a snapshot of the cache counters.
func (c *Cache[K, V]) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := Stats{
		Size:   c.order.Len(),
		Max:    c.max,
		TTL:    c.ttl,
		Hits:   c.hits,
		Misses: c.misses,
		Sets:   c.sets,
	}
	if total := c.hits + c.misses; total > 0 {
		s.HitRate = float64(c.hits) / float64(total)
	}
	return s
}

// Close stops the background janitor, if one was started. Calling
// Close more than once is a no-op.
func (c *Cache[K, V]) Close() {
	if c.janitor != nil {
		c.janitor.stopOnce.Do(func() { close(c.janitor.stop) })
	}
}

func (c *Cache[K, V]) expired(e *entry[K, V]) bool {
	return c.now().Sub(e.insertedAt) > c.ttl
}

// remove must be called with c.mu held.
func (c *Cache[K, V]) remove(el *list.Element) {
	c.order.Remove(el)
	delete(c.entries, el.Value.(*entry[K, V]).key)
}

// janitor performs periodic cleanup of expired entries.
type janitor struct {
	interval time.Duration
	stop     chan struct{}
	stopOnce sync.Once
}

type sweeper interface {
	Sweep() int
}

func (j *janitor) run(c sweeper) {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.Sweep()
		case <-j.stop:
			return
		}
	}
}
