package cache

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

// clock is a manually advanced time source
type clock struct {
	mu  sync.Mutex
	now time.Time
}

func newClock() *clock {
	return &clock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func TestCache_GetSet(t *testing.T) {
	c := New[string](DefaultConfig())

	if _, ok := c.Get("missing"); ok {
		t.Error("Get(missing) should miss")
	}

	c.Set("a", "alpha")
	got, ok := c.Get("a")
	if !ok || got != "alpha" {
		t.Errorf("Get(a) = %q, %v", got, ok)
	}

	if c.Size() != 1 {
		t.Errorf("Size() = %d, want 1", c.Size())
	}

	stats := c.Stats()
	if stats.Hits != 1 || stats.Misses != 1 {
		t.Errorf("Stats() = %+v", stats)
	}
}

func TestCache_TTL(t *testing.T) {
	clk := newClock()
	c := New[int](Config{MaxItems: 10, TTL: time.Minute, Now: clk.Now})

	c.Set("short", 1)
	c.SetWithTTL("forever", 2, 0)

	clk.Advance(59 * time.Second)
	if _, ok := c.Get("short"); !ok {
		t.Error("entry expired early")
	}

	clk.Advance(time.Second)
	if _, ok := c.Get("short"); ok {
		t.Error("entry should expire at its TTL")
	}
	if _, ok := c.Get("forever"); !ok {
		t.Error("zero TTL entry should not expire")
	}
	if c.Size() != 1 {
		t.Errorf("Size() = %d, want 1", c.Size())
	}
}

func TestCache_Eviction(t *testing.T) {
	tests := []struct {
		name    string
		expire  bool
		evicted string
	}{
		{"oldest entry", false, "k0"},
		{"expired entries first", true, "k1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clk := newClock()
			c := New[int](Config{MaxItems: 3, Now: clk.Now})

			for i := 0; i < 3; i++ {
				ttl := time.Duration(0)
				if tt.expire && i == 1 {
					ttl = time.Second
				}
				c.SetWithTTL(fmt.Sprintf("k%d", i), i, ttl)
				clk.Advance(2 * time.Second)
			}

			c.Set("k3", 3)
			if c.Size() != 3 {
				t.Errorf("Size() = %d, want 3", c.Size())
			}
			if _, ok := c.Get(tt.evicted); ok {
				t.Errorf("%s should have been evicted", tt.evicted)
			}
			if _, ok := c.Get("k3"); !ok {
				t.Error("new entry missing")
			}
		})
	}
}

func TestCache_OverwriteDoesNotEvict(t *testing.T) {
	c := New[int](Config{MaxItems: 2})
	c.Set("a", 1)
	c.Set("b", 2)
	c.Set("a", 10)

	if v, _ := c.Get("a"); v != 10 {
		t.Errorf("Get(a) = %d, want 10", v)
	}
	if _, ok := c.Get("b"); !ok {
		t.Error("overwrite should not evict b")
	}
}

func TestCache_Concurrent(t *testing.T) {
	c := New[int](Config{MaxItems: 50})
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				key := fmt.Sprintf("k%d", (n*200+j)%80)
				c.Set(key, j)
				c.Get(key)
			}
		}(i)
	}
	wg.Wait()

	if c.Size() > 50 {
		t.Errorf("Size() = %d exceeds MaxItems", c.Size())
	}
}
