package memory

import (
	"context"
	"sync"

	"github.com/aretw0/eventgrid/pkg/domain"
)

// Cache implements ports.DocumentCache in process memory.
// When full, the oldest entry is evicted first.
type Cache struct {
	mu      sync.RWMutex
	data    map[string][]byte
	order   []string
	maxSize int
}

// New creates a cache holding at most maxEntries documents (<= 0 means unbounded).
func New(maxEntries int) *Cache {
	return &Cache{
		data:    make(map[string][]byte),
		maxSize: maxEntries,
	}
}

// Get returns a copy of the document stored under key.
func (c *Cache) Get(_ context.Context, key string) ([]byte, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	doc, ok := c.data[key]
	if !ok {
		return nil, domain.ErrCacheMiss
	}
	return append([]byte(nil), doc...), nil
}

// Put stores a copy of doc under key.
func (c *Cache) Put(_ context.Context, key string, doc []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.data[key]; !exists {
		c.order = append(c.order, key)
	}
	c.data[key] = append([]byte(nil), doc...)

	for c.maxSize > 0 && len(c.order) > c.maxSize {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.data, oldest)
	}
	return nil
}

// Delete removes key.
func (c *Cache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.data[key]; !ok {
		return nil
	}
	delete(c.data, key)
	for i, k := range c.order {
		if k == key {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	return nil
}

// Len returns the number of cached documents.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.data)
}
