// Package dedupe provides a bounded, hash-based set used to suppress
// repeated emission of identical messages and findings.
package dedupe

import (
	"crypto/sha256"
	"sync"
)

// DefaultCapacity bounds the cache when no explicit capacity is given.
const DefaultCapacity = 100

// Cache remembers content digests of recently seen messages up to a fixed
// capacity, evicting in insertion order (FIFO, not access order). Safe for
// concurrent use.
type Cache struct {
	mu       sync.Mutex
	capacity int
	seen     map[[sha256.Size]byte]struct{}
	order    [][sha256.Size]byte
}

func New(capacity int) *Cache {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Cache{
		capacity: capacity,
		seen:     make(map[[sha256.Size]byte]struct{}, capacity),
	}
}

// IsDuplicate reports whether msg was seen before. A previously seen message
// returns true without mutating the cache; a new message is recorded first,
// evicting the oldest entry when the cache is full.
func (c *Cache) IsDuplicate(msg string) bool {
	sum := sha256.Sum256([]byte(msg))

	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.seen[sum]; ok {
		return true
	}
	c.seen[sum] = struct{}{}
	c.order = append(c.order, sum)
	if len(c.order) > c.capacity {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.seen, oldest)
	}
	return false
}

// Len returns the number of entries currently held.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.order)
}
