// SPDX-License-Identifier: MIT

package cache

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// fakeClock is a manually advanced time source.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = f.now.Add(d)
}

func TestCache_GetSet(t *testing.T) {
	c := New[string, string](10, 5*time.Minute)

	c.Set("key1", "value1")

	val, ok := c.Get("key1")
	require.True(t, ok, "expected to find key1")
	assert.Equal(t, "value1", val)

	_, ok = c.Get("nonexistent")
	assert.False(t, ok, "expected not to find nonexistent key")
}

func TestCache_TTLBoundary(t *testing.T) {
	clock := newFakeClock()
	c := New(10, time.Minute, WithClock[string, string](clock.Now))

	c.Set("key", "value")

	// Just inside the TTL.
	clock.Advance(time.Minute - time.Second)
	_, ok := c.Get("key")
	require.True(t, ok, "entry should be alive before TTL elapses")

	// Just past the TTL.
	clock.Advance(2 * time.Second)
	_, ok = c.Get("key")
	assert.False(t, ok, "entry should be expired after TTL elapses")
	assert.Equal(t, 0, c.Len(), "expired entry must be removed on access")
}

func TestCache_CapacityEviction(t *testing.T) {
	const max = 5
	c := New[string, int](max, time.Hour)

	// Insert max + k distinct keys.
	const k = 3
	for i := 0; i < max+k; i++ {
		c.Set(fmt.Sprintf("key%d", i), i)
	}

	assert.Equal(t, max, c.Len())

	// The k oldest keys must be gone, the rest present.
	for i := 0; i < k; i++ {
		assert.False(t, c.Has(fmt.Sprintf("key%d", i)), "key%d should have been evicted", i)
	}
	for i := k; i < max+k; i++ {
		assert.True(t, c.Has(fmt.Sprintf("key%d", i)), "key%d should remain", i)
	}
}

func TestCache_LRUTouchOnGet(t *testing.T) {
	c := New[string, string](2, time.Hour)

	c.Set("A", "a")
	c.Set("B", "b")

	// Touch A so B becomes the least recently used.
	_, ok := c.Get("A")
	require.True(t, ok)

	c.Set("C", "c")

	assert.True(t, c.Has("A"), "A was touched and must survive")
	assert.False(t, c.Has("B"), "B was least recently used and must be evicted")
	assert.True(t, c.Has("C"))
}

func TestCache_SetExistingKeyResetsPosition(t *testing.T) {
	c := New[string, string](2, time.Hour)

	c.Set("A", "a1")
	c.Set("B", "b")
	c.Set("A", "a2") // refresh A, B is now oldest
	c.Set("C", "c")

	val, ok := c.Get("A")
	require.True(t, ok)
	assert.Equal(t, "a2", val)
	assert.False(t, c.Has("B"))
}

func TestCache_HasDoesNotTouchRecency(t *testing.T) {
	c := New[string, string](2, time.Hour)

	c.Set("A", "a")
	c.Set("B", "b")

	// Has must not promote A.
	require.True(t, c.Has("A"))

	c.Set("C", "c")

	assert.False(t, c.Has("A"), "A stayed least recently used and must be evicted")
	assert.True(t, c.Has("B"))
}

func TestCache_Sweep(t *testing.T) {
	clock := newFakeClock()
	c := New(10, time.Minute, WithClock[string, string](clock.Now))

	c.Set("old1", "v")
	c.Set("old2", "v")
	clock.Advance(30 * time.Second)
	c.Set("fresh", "v")
	clock.Advance(45 * time.Second) // old* expired, fresh alive

	removed := c.Sweep()

	assert.Equal(t, 2, removed)
	assert.Equal(t, 1, c.Len())
	assert.True(t, c.Has("fresh"))
}

func TestCache_PeekReturnsExpired(t *testing.T) {
	clock := newFakeClock()
	c := New(1, time.Minute, WithClock[string, string](clock.Now))

	c.Set("key", "stale")
	clock.Advance(time.Hour)

	_, ok := c.Get("key")
	require.False(t, ok)

	// Get removed it; re-insert and expire again to exercise Peek.
	c.Set("key", "stale")
	clock.Advance(time.Hour)

	val, ok := c.Peek("key")
	require.True(t, ok, "Peek must see expired entries")
	assert.Equal(t, "stale", val)
}

func TestCache_ClearResetsCounters(t *testing.T) {
	c := New[string, string](10, time.Hour)

	c.Set("key", "value")
	c.Get("key")
	c.Get("missing")

	stats := c.Stats()
	require.Equal(t, int64(1), stats.Hits)
	require.Equal(t, int64(1), stats.Misses)
	require.Equal(t, int64(1), stats.Sets)

	c.Clear()

	stats = c.Stats()
	assert.Equal(t, 0, stats.Size)
	assert.Zero(t, stats.Hits)
	assert.Zero(t, stats.Misses)
	assert.Zero(t, stats.Sets)
}

func TestCache_Stats(t *testing.T) {
	c := New[string, string](7, time.Hour)

	c.Set("a", "1")
	c.Set("b", "2")
	c.Get("a")
	c.Get("a")
	c.Get("a")
	c.Get("missing")

	stats := c.Stats()
	assert.Equal(t, 2, stats.Size)
	assert.Equal(t, 7, stats.Max)
	assert.Equal(t, time.Hour, stats.TTL)
	assert.Equal(t, int64(3), stats.Hits)
	assert.Equal(t, int64(1), stats.Misses)
	assert.Equal(t, int64(2), stats.Sets)
	assert.InDelta(t, 0.75, stats.HitRate, 0.001)
}

func TestCache_Delete(t *testing.T) {
	c := New[string, string](10, time.Hour)

	c.Set("key", "value")
	c.Delete("key")

	assert.False(t, c.Has("key"))
	c.Delete("key") // deleting a missing key is a no-op
}

func TestCache_Janitor(t *testing.T) {
	c := New(10, 30*time.Millisecond, WithJanitor[string, string](20*time.Millisecond))
	defer c.Close()

	c.Set("shortlived", "v")

	assert.Eventually(t, func() bool {
		return c.Len() == 0
	}, time.Second, 10*time.Millisecond, "janitor should sweep the expired entry")
}

func TestCache_CloseIdempotent(t *testing.T) {
	c := New(10, time.Minute, WithJanitor[string, string](10*time.Millisecond))

	c.Close()
	c.Close() // second Close must not block

	// A cache without a janitor tolerates Close too.
	New[string, string](10, time.Minute).Close()
}

func TestCache_ConcurrentAccess(t *testing.T) {
	c := New[string, int](16, time.Minute)

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				key := fmt.Sprintf("key%d", i%32)
				c.Set(key, i)
				c.Get(key)
				c.Has(key)
				if i%50 == 0 {
					c.Sweep()
				}
			}
		}(g)
	}
	wg.Wait()

	assert.LessOrEqual(t, c.Len(), 16)
}
