// Package caching bounds memory for parsed documents and computed selectors
// across repeated compressions of similar HTML. It is a latency optimization
// only: running with a nil *Cache produces identical output.
package caching

import (
	"hash/fnv"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const (
	// DefaultCapacity bounds the number of parsed documents held.
	DefaultCapacity = 100
	// DefaultSweepInterval is how often eviction runs.
	DefaultSweepInterval = 5 * time.Minute

	// fingerprintPrefix is how much of the input the fingerprint reads.
	fingerprintPrefix = 1000
)

type docEntry struct {
	doc *goquery.Document
}

// Cache memoizes parsed documents (keyed by content fingerprint) and
// synthesized selectors (keyed by element shape). All methods are safe for
// concurrent use and are no-ops on a nil receiver.
type Cache struct {
	mu        sync.Mutex
	capacity  int
	interval  time.Duration
	lastSweep time.Time

	docs      map[uint64]docEntry
	order     []uint64 // insertion order, for oldest-half eviction
	selectors map[string]string
}

// New creates a Cache. Zero or negative arguments fall back to the defaults.
func New(capacity int, sweepInterval time.Duration) *Cache {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	if sweepInterval <= 0 {
		sweepInterval = DefaultSweepInterval
	}
	return &Cache{
		capacity:  capacity,
		interval:  sweepInterval,
		lastSweep: time.Now(),
		docs:      make(map[uint64]docEntry),
		selectors: make(map[string]string),
	}
}

// Fingerprint computes a cheap, non-cryptographic key over at most the first
// 1000 characters of the input. Two documents sharing that prefix collide;
// that risk is accepted in exchange for never hashing multi-hundred-KB pages.
func Fingerprint(html string) uint64 {
	if len(html) > fingerprintPrefix {
		html = html[:fingerprintPrefix]
	}
	h := fnv.New64a()
	_, _ = h.Write([]byte(html))
	return h.Sum64()
}

// GetDoc returns a previously parsed document for the fingerprint.
func (c *Cache) GetDoc(key uint64) (*goquery.Document, bool) {
	if c == nil {
		return nil, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.docs[key]
	if !ok {
		return nil, false
	}
	return e.doc, true
}

// PutDoc stores a parsed document under the fingerprint.
func (c *Cache) PutDoc(key uint64, doc *goquery.Document) {
	if c == nil || doc == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.docs[key]; !exists {
		c.order = append(c.order, key)
	}
	c.docs[key] = docEntry{doc: doc}
}

// GetSelector returns a memoized selector for an element shape key.
func (c *Cache) GetSelector(key string) (string, bool) {
	if c == nil {
		return "", false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	sel, ok := c.selectors[key]
	return sel, ok
}

// PutSelector memoizes a synthesized selector.
func (c *Cache) PutSelector(key, sel string) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.selectors[key] = sel
}

// MaybeSweep runs eviction if the sweep interval has elapsed. Called at the
// start of every compression.
func (c *Cache) MaybeSweep() {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if time.Since(c.lastSweep) < c.interval {
		return
	}
	c.sweepLocked()
	c.lastSweep = time.Now()
}

// sweepLocked evicts the oldest half of the document cache when over
// capacity and clears the selector memo wholesale (recomputation is cheap).
func (c *Cache) sweepLocked() {
	if len(c.docs) > c.capacity {
		half := len(c.order) / 2
		for _, key := range c.order[:half] {
			delete(c.docs, key)
		}
		c.order = append([]uint64(nil), c.order[half:]...)
	}
	c.selectors = make(map[string]string)
}

// DocCount reports how many parsed documents are held.
func (c *Cache) DocCount() int {
	if c == nil {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.docs)
}
