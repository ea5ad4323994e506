// Package cartcount holds an advisory per-user cart item count so the
// storefront header can paint its badge without a store round trip. The
// cache is never reconciled with the store except by an explicit re-set
// after a successful list fetch; divergence is expected, not a bug.
package cartcount

import (
	"sync"

	"github.com/google/uuid"
)

type Cache struct {
	mu     sync.RWMutex
	counts map[uuid.UUID]int
	subs   map[uuid.UUID]map[chan struct{}]struct{}
}

func New() *Cache {
	return &Cache{
		counts: make(map[uuid.UUID]int),
		subs:   make(map[uuid.UUID]map[chan struct{}]struct{}),
	}
}

// Set stores the count and broadcasts a change notification to every
// subscriber of that user.
func (c *Cache) Set(userID uuid.UUID, count int) {
	c.mu.Lock()
	c.counts[userID] = count
	c.mu.Unlock()

	c.notify(userID)
}

// Get returns the cached count, defaulting to 0 when absent.
func (c *Cache) Get(userID uuid.UUID) int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.counts[userID]
}

// Clear removes the entry and broadcasts a change notification.
func (c *Cache) Clear(userID uuid.UUID) {
	c.mu.Lock()
	delete(c.counts, userID)
	c.mu.Unlock()

	c.notify(userID)
}

// Subscribe registers a listener for the user's count changes. The returned
// channel receives a signal per change; cancel must be called to release it.
func (c *Cache) Subscribe(userID uuid.UUID) (<-chan struct{}, func()) {
	ch := make(chan struct{}, 1)

	c.mu.Lock()
	if c.subs[userID] == nil {
		c.subs[userID] = make(map[chan struct{}]struct{})
	}
	c.subs[userID][ch] = struct{}{}
	c.mu.Unlock()

	cancel := func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if set, ok := c.subs[userID]; ok {
			delete(set, ch)
			if len(set) == 0 {
				delete(c.subs, userID)
			}
		}
	}
	return ch, cancel
}

func (c *Cache) notify(userID uuid.UUID) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for ch := range c.subs[userID] {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}
