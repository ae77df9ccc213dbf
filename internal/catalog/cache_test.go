package catalog

import (
	"testing"
	"time"

	"github.com/raidergo/checkout/internal/domain/model"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func TestCacheGetMiss(t *testing.T) {
	cache := NewCache(time.Minute, &fakeClock{now: time.Now()})
	if _, ok := cache.Get("missing"); ok {
		t.Fatal("expected miss for unknown id")
	}
}

func TestCachePutAndExpire(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1_700_000_000, 0)}
	cache := NewCache(time.Minute, clock)

	cache.Put(model.Course{ID: "course-1", Title: "Go Basics", Price: 49.99, Currency: "USD", Active: true})

	got, ok := cache.Get("course-1")
	if !ok {
		t.Fatal("expected hit right after put")
	}
	if got.Title != "Go Basics" || got.Price != 49.99 {
		t.Fatalf("unexpected cached course: %+v", got)
	}

	clock.Advance(time.Minute)
	if _, ok := cache.Get("course-1"); !ok {
		t.Fatal("expected hit at exactly the TTL boundary")
	}

	clock.Advance(time.Second)
	if _, ok := cache.Get("course-1"); ok {
		t.Fatal("expected expired entry to miss")
	}
}

func TestCacheReplace(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1_700_000_000, 0)}
	cache := NewCache(time.Minute, clock)
	cache.Put(model.Course{ID: "stale", Title: "Old"})

	cache.Replace([]model.Course{
		{ID: "course-1", Title: "Go Basics", Active: true},
		{ID: "course-2", Title: "Go Advanced", Active: true},
	})

	if cache.Len() != 2 {
		t.Fatalf("expected 2 entries after replace, got %d", cache.Len())
	}
	if _, ok := cache.Get("stale"); ok {
		t.Fatal("expected stale entry to be dropped")
	}
	if _, ok := cache.Get("course-2"); !ok {
		t.Fatal("expected replaced entry to be present")
	}
}

func TestCacheDefaults(t *testing.T) {
	cache := NewCache(0, nil)
	if cache.ttl != time.Minute {
		t.Fatalf("expected fallback TTL, got %v", cache.ttl)
	}
	if _, ok := cache.clock.(SystemClock); !ok {
		t.Fatalf("expected system clock fallback, got %T", cache.clock)
	}
}
