package catalog

import (
	"sync"
	"time"

	"github.com/raidergo/checkout/internal/domain/model"
)

// Clock abstracts the time source so TTL behaviour is testable.
type Clock interface {
	Now() time.Time
}

// SystemClock is the wall-clock implementation used in production.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

type entry struct {
	course    model.Course
	expiresAt time.Time
}

// Cache is a TTL cache for courses keyed by id. It replaces ad hoc
// module-level caching with an explicit component owning its own clock.
type Cache struct {
	ttl   time.Duration
	clock Clock

	mu      sync.RWMutex
	entries map[string]entry
}

// NewCache builds a cache. A nil clock defaults to the system clock.
func NewCache(ttl time.Duration, clock Clock) *Cache {
	if clock == nil {
		clock = SystemClock{}
	}
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &Cache{
		ttl:     ttl,
		clock:   clock,
		entries: make(map[string]entry),
	}
}

// Get returns a cached course when present and unexpired.
func (c *Cache) Get(id string) (*model.Course, bool) {
	c.mu.RLock()
	e, ok := c.entries[id]
	c.mu.RUnlock()
	if !ok || c.clock.Now().After(e.expiresAt) {
		return nil, false
	}
	course := e.course
	return &course, true
}

// Put stores one course.
func (c *Cache) Put(course model.Course) {
	c.mu.Lock()
	c.entries[course.ID] = entry{course: course, expiresAt: c.clock.Now().Add(c.ttl)}
	c.mu.Unlock()
}

// Replace swaps the full cache contents in one step, used by the
// background refresher.
func (c *Cache) Replace(courses []model.Course) {
	expires := c.clock.Now().Add(c.ttl)
	next := make(map[string]entry, len(courses))
	for _, course := range courses {
		next[course.ID] = entry{course: course, expiresAt: expires}
	}
	c.mu.Lock()
	c.entries = next
	c.mu.Unlock()
}

// Len reports the number of stored entries, expired or not.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
